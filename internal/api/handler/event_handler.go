package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/raceops/race-weekend-api/internal/core/domain"
	"github.com/raceops/race-weekend-api/internal/core/ports"
	"github.com/raceops/race-weekend-api/internal/infrastructure/weather"
)

// ForecastProvider fetches the daily forecast for a location.
type ForecastProvider interface {
	DailyForecast(ctx context.Context, city, state string) (*weather.Forecast, error)
}

type EventHandler struct {
	eventService ports.EventService
	forecasts    ForecastProvider
}

func NewEventHandler(eventService ports.EventService, forecasts ForecastProvider) *EventHandler {
	return &EventHandler{eventService: eventService, forecasts: forecasts}
}

type createEventRequest struct {
	Name      string    `json:"name"       validate:"required,max=200"`
	TrackName string    `json:"track_name" validate:"required,max=200"`
	City      string    `json:"city"       validate:"required,max=100"`
	State     string    `json:"state"      validate:"required,min=2,max=50"`
	EventDate time.Time `json:"event_date" validate:"required"`
}

type eventWeatherResponse struct {
	Event    *domain.Event     `json:"event"`
	Forecast *weather.Forecast `json:"forecast"`
}

// Create handles POST /v1/events — admin only.
//
// @Summary      Create a race weekend event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.CreateEvent(c.Request().Context(), claims, ports.CreateEventInput{
		Name:      req.Name,
		TrackName: req.TrackName,
		City:      req.City,
		State:     req.State,
		EventDate: req.EventDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, event)
}

// List handles GET /v1/events — any authenticated member.
//
// @Summary      List events ordered by date
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  map[string]string
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /v1/events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Weather handles GET /v1/events/:id/weather — daily forecast for the
// event's track location.
//
// @Summary      Get the forecast for an event's location
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventWeatherResponse
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/events/{id}/weather [get]
func (h *EventHandler) Weather(c echo.Context) error {
	event, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	forecast, err := h.forecasts.DailyForecast(c.Request().Context(), event.City, event.State)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, eventWeatherResponse{Event: event, Forecast: forecast})
}
