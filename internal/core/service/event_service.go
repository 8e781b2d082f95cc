package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/raceops/race-weekend-api/internal/core/authz"
	"github.com/raceops/race-weekend-api/internal/core/domain"
	"github.com/raceops/race-weekend-api/internal/core/ports"
)

// EventService manages race weekend events. Creation is admin-only; reads are
// open to every authenticated member.
type EventService struct {
	repo   ports.EventRepository
	logger zerolog.Logger
}

func NewEventService(repo ports.EventRepository, logger zerolog.Logger) *EventService {
	return &EventService{repo: repo, logger: logger}
}

func (s *EventService) CreateEvent(ctx context.Context, claims domain.Claims, input ports.CreateEventInput) (*domain.Event, error) {
	if decision := authz.Authorize(claims, authz.RequireAdmin()); !decision.Allowed {
		return nil, domain.ErrForbidden
	}

	event := &domain.Event{
		Name:      input.Name,
		TrackName: input.TrackName,
		City:      input.City,
		State:     input.State,
		EventDate: input.EventDate,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("event_id", created.ID).
		Str("track", created.TrackName).
		Msg("event created")
	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.List(ctx)
}
