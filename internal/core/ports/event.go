package ports

import (
	"context"
	"time"

	"github.com/raceops/race-weekend-api/internal/core/domain"
)

// CreateEventInput carries all data needed to create a race weekend event.
type CreateEventInput struct {
	Name      string
	TrackName string
	City      string
	State     string
	EventDate time.Time
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns all events ordered by event date ascending.
	List(ctx context.Context) ([]*domain.Event, error)
}

// EventService defines use-case operations for events.
type EventService interface {
	CreateEvent(ctx context.Context, claims domain.Claims, input CreateEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]*domain.Event, error)
}
