package ports

import (
	"context"
	"time"

	"github.com/raceops/race-weekend-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a checklist task.
type CreateTaskInput struct {
	EventID     string
	Title       string
	Description string
	Category    string
	Priority    int
	DueAt       *time.Time
	AssigneeID  string // empty = team-wide task
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *int
	DueAt       *time.Time
	Completed   *bool
	AssigneeID  *string
}

// ListTasksFilter carries all query parameters for listing tasks.
// AssigneeScope is enforced by the service layer: members only see their own
// and team-wide tasks, admins see everything.
type ListTasksFilter struct {
	AssigneeScope string // empty = no scoping (admin); non-empty = user ID
	EventID       string
	Category      string
	Completed     *bool
	Priority      *int
	Sort          string // id, priority, due_at, title
	Order         string // asc, desc
	Skip          int
	Limit         int
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
}

// TaskCache caches rendered task listings for a short TTL.
type TaskCache interface {
	Get(ctx context.Context, key string) ([]*domain.Task, bool, error)
	Set(ctx context.Context, key string, tasks []*domain.Task) error
}

// TaskService defines use-case operations for checklist tasks.
type TaskService interface {
	CreateTask(ctx context.Context, claims domain.Claims, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, claims domain.Claims, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, claims domain.Claims, id string, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, claims domain.Claims, id string) error
	ListTasks(ctx context.Context, claims domain.Claims, filter ListTasksFilter) ([]*domain.Task, error)
}
