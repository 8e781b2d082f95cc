package domain

import "time"

// TaskCategory groups checklist tasks by the kind of preparation they cover.
type TaskCategory string

const (
	CategoryPrep   TaskCategory = "prep"
	CategoryPit    TaskCategory = "pit"
	CategorySafety TaskCategory = "safety"
	CategoryTravel TaskCategory = "travel"
	CategoryTech   TaskCategory = "tech"
)

// validCategories is the closed set of accepted task categories.
var validCategories = map[TaskCategory]struct{}{
	CategoryPrep:   {},
	CategoryPit:    {},
	CategorySafety: {},
	CategoryTravel: {},
	CategoryTech:   {},
}

// IsValid reports whether the category is one of the known values.
func (c TaskCategory) IsValid() bool {
	_, ok := validCategories[c]
	return ok
}

// Task is a single checklist item for a race weekend. An empty AssigneeID
// marks a team-wide task visible to every member.
type Task struct {
	ID          string       `json:"id"`
	EventID     string       `json:"event_id"`
	AssigneeID  string       `json:"assignee_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Priority    int          `json:"priority"` // 1 (high) - 5 (low)
	Completed   bool         `json:"completed"`
	DueAt       *time.Time   `json:"due_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TeamWide reports whether the task has no assignee and belongs to the whole
// team.
func (t *Task) TeamWide() bool {
	return t.AssigneeID == ""
}
