package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/raceops/race-weekend-api/internal/core/authz"
	"github.com/raceops/race-weekend-api/internal/core/domain"
	"github.com/raceops/race-weekend-api/internal/core/ports"
)

const (
	defaultTaskPriority = 3
	maxTaskPageSize     = 100
)

// TaskService manages checklist tasks. Members operate on their own and
// team-wide tasks; admins see and manage everything. Listings are cached for
// a short TTL behind the TaskCache port.
type TaskService struct {
	repo   ports.TaskRepository
	events ports.EventRepository
	cache  ports.TaskCache
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, events ports.EventRepository, cache ports.TaskCache, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, events: events, cache: cache, logger: logger}
}

func (s *TaskService) CreateTask(ctx context.Context, claims domain.Claims, input ports.CreateTaskInput) (*domain.Task, error) {
	category := domain.TaskCategory(input.Category)
	if input.Title == "" || !category.IsValid() {
		return nil, domain.ErrInvalidTask
	}

	if _, err := s.events.FindByID(ctx, input.EventID); err != nil {
		return nil, err
	}

	// Assigning a task to someone else is an admin action.
	if input.AssigneeID != "" && input.AssigneeID != claims.UserID {
		if decision := authz.Authorize(claims, authz.RequireAdmin()); !decision.Allowed {
			return nil, domain.ErrForbidden
		}
	}

	priority := input.Priority
	if priority == 0 {
		priority = defaultTaskPriority
	}

	now := time.Now().UTC()
	task := &domain.Task{
		EventID:     input.EventID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		Priority:    priority,
		DueAt:       input.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", created.ID).
		Str("event_id", created.EventID).
		Str("category", string(created.Category)).
		Msg("task created")
	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, claims domain.Claims, id string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if decision := authz.Authorize(claims, authz.RequireOwner(task.AssigneeID)); !decision.Allowed {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, claims domain.Claims, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if decision := authz.Authorize(claims, authz.RequireOwner(task.AssigneeID)); !decision.Allowed {
		return nil, domain.ErrForbidden
	}

	if input.AssigneeID != nil && *input.AssigneeID != "" && *input.AssigneeID != claims.UserID {
		if decision := authz.Authorize(claims, authz.RequireAdmin()); !decision.Allowed {
			return nil, domain.ErrForbidden
		}
	}

	applyTaskUpdate(task, input)
	if !task.Category.IsValid() {
		return nil, domain.ErrInvalidTask
	}
	task.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, task)
}

func (s *TaskService) DeleteTask(ctx context.Context, claims domain.Claims, id string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Team-wide tasks belong to everyone, so only admins may delete them.
	if task.TeamWide() {
		if decision := authz.Authorize(claims, authz.RequireAdmin()); !decision.Allowed {
			return domain.ErrForbidden
		}
	} else if decision := authz.Authorize(claims, authz.RequireOwner(task.AssigneeID)); !decision.Allowed {
		return domain.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, claims domain.Claims, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	// Members only see their own and team-wide tasks.
	if claims.Role != domain.RoleAdmin {
		filter.AssigneeScope = claims.UserID
	} else {
		filter.AssigneeScope = ""
	}
	if filter.Limit <= 0 || filter.Limit > maxTaskPageSize {
		filter.Limit = 20
	}

	key := listCacheKey(claims.UserID, filter)
	if s.cache != nil {
		tasks, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Msg("task cache read failed")
		} else if hit {
			return tasks, nil
		}
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, tasks); err != nil {
			s.logger.Warn().Err(err).Msg("task cache write failed")
		}
	}
	return tasks, nil
}

func applyTaskUpdate(task *domain.Task, input ports.UpdateTaskInput) {
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		task.Category = domain.TaskCategory(*input.Category)
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueAt != nil {
		task.DueAt = input.DueAt
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.AssigneeID != nil {
		task.AssigneeID = *input.AssigneeID
	}
}

func listCacheKey(userID string, f ports.ListTasksFilter) string {
	completed := "nil"
	if f.Completed != nil {
		completed = fmt.Sprintf("%t", *f.Completed)
	}
	priority := "nil"
	if f.Priority != nil {
		priority = fmt.Sprintf("%d", *f.Priority)
	}
	return fmt.Sprintf("cache:tasks:%s:%d:%d:%s:%s:%s:%s:%s:%s",
		userID, f.Skip, f.Limit, f.EventID, f.Category, completed, priority, f.Sort, f.Order)
}
