package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/raceops/race-weekend-api/internal/api/middleware"
	"github.com/raceops/race-weekend-api/internal/core/domain"
	"github.com/raceops/race-weekend-api/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, claims domain.Claims, input ports.CreateTaskInput) (*domain.Task, error)
	getFn    func(ctx context.Context, claims domain.Claims, id string) (*domain.Task, error)
	updateFn func(ctx context.Context, claims domain.Claims, id string, input ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, claims domain.Claims, id string) error
	listFn   func(ctx context.Context, claims domain.Claims, filter ports.ListTasksFilter) ([]*domain.Task, error)
}

func (s *stubTaskService) CreateTask(ctx context.Context, claims domain.Claims, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, claims, input)
}

func (s *stubTaskService) GetTask(ctx context.Context, claims domain.Claims, id string) (*domain.Task, error) {
	return s.getFn(ctx, claims, id)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, claims domain.Claims, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, claims, id, input)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, claims domain.Claims, id string) error {
	return s.deleteFn(ctx, claims, id)
}

func (s *stubTaskService) ListTasks(ctx context.Context, claims domain.Claims, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	return s.listFn(ctx, claims, filter)
}

type recordingEnqueuer struct {
	reminders []ports.ReminderInput
}

func (r *recordingEnqueuer) Enqueue(reminder ports.ReminderInput) {
	r.reminders = append(r.reminders, reminder)
}

func memberContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyClaims, domain.Claims{UserID: "user_1", Role: domain.RoleMember})
	return c
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{
		createFn: func(ctx context.Context, claims domain.Claims, input ports.CreateTaskInput) (*domain.Task, error) {
			if claims.UserID != "user_1" {
				t.Fatalf("unexpected claims: %+v", claims)
			}
			if input.Category != "pit" || input.Priority != 2 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{ID: "task_1", EventID: input.EventID, Title: input.Title, Category: domain.CategoryPit, Priority: input.Priority}, nil
		},
	}
	h := NewTaskHandler(svc, &recordingEnqueuer{})

	body := strings.NewReader(`{"event_id":"ev_1","title":"Check tire pressures","category":"pit","priority":2}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := memberContext(e, req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_PriorityOutOfRange(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{
		createFn: func(ctx context.Context, claims domain.Claims, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(svc, &recordingEnqueuer{})

	body := strings.NewReader(`{"event_id":"ev_1","title":"Check tire pressures","category":"pit","priority":9}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := memberContext(e, req, rec)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTaskHandler_Create_MissingClaims(t *testing.T) {
	e := newTestEcho()
	h := NewTaskHandler(&stubTaskService{}, &recordingEnqueuer{})

	body := strings.NewReader(`{"event_id":"ev_1","title":"x","category":"pit","priority":1}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestTaskHandler_List_ParsesFilters(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{
		listFn: func(ctx context.Context, claims domain.Claims, filter ports.ListTasksFilter) ([]*domain.Task, error) {
			if filter.EventID != "ev_1" || filter.Category != "safety" {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			if filter.Completed == nil || *filter.Completed {
				t.Fatalf("expected completed=false, got %+v", filter.Completed)
			}
			if filter.Priority == nil || *filter.Priority != 1 {
				t.Fatalf("expected priority=1, got %+v", filter.Priority)
			}
			if filter.Sort != "due_at" || filter.Order != "desc" || filter.Skip != 10 || filter.Limit != 5 {
				t.Fatalf("unexpected paging: %+v", filter)
			}
			return []*domain.Task{{ID: "task_1"}}, nil
		},
	}
	h := NewTaskHandler(svc, &recordingEnqueuer{})

	target := "/v1/tasks?event_id=ev_1&category=safety&completed=false&priority=1&sort=due_at&order=desc&skip=10&limit=5"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := memberContext(e, req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_List_BadQueryValues(t *testing.T) {
	e := newTestEcho()
	h := NewTaskHandler(&stubTaskService{}, &recordingEnqueuer{})

	for _, target := range []string{
		"/v1/tasks?completed=maybe",
		"/v1/tasks?priority=0",
		"/v1/tasks?priority=six",
		"/v1/tasks?skip=-1",
		"/v1/tasks?limit=0",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := memberContext(e, req, rec)

		err := h.List(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", target, err)
		}
	}
}

func TestTaskHandler_Delete_NoContent(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{
		deleteFn: func(ctx context.Context, claims domain.Claims, id string) error {
			if id != "task_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewTaskHandler(svc, &recordingEnqueuer{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/tasks/task_1", nil)
	rec := httptest.NewRecorder()
	c := memberContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTaskHandler_Remind_EnqueuesReminder(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{
		getFn: func(ctx context.Context, claims domain.Claims, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, Title: "Pack rain tires", AssigneeID: "user_1"}, nil
		},
	}
	enq := &recordingEnqueuer{}
	h := NewTaskHandler(svc, enq)

	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/task_1/remind", nil)
	rec := httptest.NewRecorder()
	c := memberContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task_1")

	if err := h.Remind(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(enq.reminders) != 1 {
		t.Fatalf("expected 1 queued reminder, got %d", len(enq.reminders))
	}
	if r := enq.reminders[0]; r.TaskID != "task_1" || r.Title != "Pack rain tires" || r.AssigneeID != "user_1" {
		t.Fatalf("unexpected reminder: %+v", r)
	}
}

func TestTaskHandler_Remind_TaskNotVisible(t *testing.T) {
	e := newTestEcho()
	svc := &stubTaskService{
		getFn: func(ctx context.Context, claims domain.Claims, id string) (*domain.Task, error) {
			return nil, domain.ErrNotOwner
		},
	}
	enq := &recordingEnqueuer{}
	h := NewTaskHandler(svc, enq)

	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/task_9/remind", nil)
	rec := httptest.NewRecorder()
	c := memberContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("task_9")

	if err := h.Remind(c); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if len(enq.reminders) != 0 {
		t.Fatalf("expected no queued reminders, got %d", len(enq.reminders))
	}
}
