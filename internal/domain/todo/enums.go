package todo

import "slices"

// Status is the completion state of a Todo.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Category groups todos.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryOther    Category = "other"
)

var (
	statuses   = []Status{StatusPending, StatusInProgress, StatusDone}
	categories = []Category{CategoryPersonal, CategoryWork, CategoryOther}
)

// Statuses lists every valid Status in workflow order.
func Statuses() []Status { return slices.Clone(statuses) }

// Categories lists every valid Category.
func Categories() []Category { return slices.Clone(categories) }

func (s Status) IsValid() bool   { return slices.Contains(statuses, s) }
func (c Category) IsValid() bool { return slices.Contains(categories, c) }

func (s Status) String() string   { return string(s) }
func (c Category) String() string { return string(c) }
