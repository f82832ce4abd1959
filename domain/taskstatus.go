package domain

import "time"

// TaskStatus is a reference entity. Names are unique.
type TaskStatus struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
