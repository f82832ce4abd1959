package transport

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type TaskRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StatusID    int64   `json:"status_id"`
	ExecutorID  *int64  `json:"executor_id"`
	LabelIDs    []int64 `json:"label_ids"`
}

// NamedRequest covers the simple reference entities (statuses, labels).
type NamedRequest struct {
	Name string `json:"name"`
}
