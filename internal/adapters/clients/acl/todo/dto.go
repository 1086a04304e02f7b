// Package todo translates between the downstream TODO API's JSON bodies and
// the domain todo.Todo.
package todo

// Resource is a todo as the downstream API returns it. Timestamps arrive as
// RFC 3339 strings and are parsed by the translator so that a malformed
// value becomes a fault rather than a decode error.
type Resource struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	Category        string `json:"category"`
	ProgressPercent int    `json:"progress_percent"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// ResourceList is the body of GET /todos.
type ResourceList struct {
	Todos []Resource `json:"todos"`
	Count int64      `json:"count"`
}

// WriteBody is sent on POST /todos and PUT /todos/{id}. PUT replaces the
// whole resource so every field is always present.
type WriteBody struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	Category        string `json:"category"`
	ProgressPercent int    `json:"progress_percent"`
}
