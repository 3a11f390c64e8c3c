package todo

import "errors"

var ErrInvalidTodo = errors.New("invalid todo")

// Todo is a dated checklist item. It has no time of day and is not
// reminder-eligible.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Date is the calendar day in YYYY-MM-DD format.
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

func (t Todo) EntityID() string   { return t.ID }
func (t Todo) EntityDate() string { return t.Date }

func (t Todo) WithID(id string) Todo {
	t.ID = id
	return t
}
