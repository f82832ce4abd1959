package domain

import "time"

// Label is a reference entity attached to tasks many-to-many. Names are unique.
type Label struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
