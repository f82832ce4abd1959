package domain

import "time"

// Task represents a tracked work item. The author is set from the
// authenticated caller at creation time and never changes afterwards.
type Task struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Author      User       `json:"author"`
	Executor    *User      `json:"executor,omitempty"`
	Labels      []Label    `json:"labels,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthoredBy reports whether the given subject authored this task.
func (t *Task) AuthoredBy(subject string) bool {
	return t != nil && t.Author.Email == subject
}

// LabelIDs returns the ids of all attached labels.
func (t *Task) LabelIDs() []int64 {
	if t == nil || len(t.Labels) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(t.Labels))
	for _, l := range t.Labels {
		ids = append(ids, l.ID)
	}
	return ids
}
