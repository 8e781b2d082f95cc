package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/raceops/race-weekend-api/internal/api/metrics"
	"github.com/raceops/race-weekend-api/internal/core/domain"
	"github.com/raceops/race-weekend-api/internal/core/ports"
)

// ReminderEnqueuer accepts a reminder for background delivery.
type ReminderEnqueuer interface {
	Enqueue(reminder ports.ReminderInput)
}

type TaskHandler struct {
	taskService ports.TaskService
	reminders   ReminderEnqueuer
}

func NewTaskHandler(taskService ports.TaskService, reminders ReminderEnqueuer) *TaskHandler {
	return &TaskHandler{taskService: taskService, reminders: reminders}
}

type createTaskRequest struct {
	EventID     string     `json:"event_id"    validate:"required"`
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Category    string     `json:"category"    validate:"required"`
	Priority    int        `json:"priority"    validate:"required,min=1,max=5"`
	DueAt       *time.Time `json:"due_at"`
	AssigneeID  string     `json:"assignee_id"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Category    *string    `json:"category"`
	Priority    *int       `json:"priority"    validate:"omitempty,min=1,max=5"`
	DueAt       *time.Time `json:"due_at"`
	Completed   *bool      `json:"completed"`
	AssigneeID  *string    `json:"assignee_id"`
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a checklist task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), claims, ports.CreateTaskInput{
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueAt:       req.DueAt,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Category)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /v1/tasks with filtering, sorting and pagination.
//
// @Summary      List checklist tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        event_id   query     string  false  "Filter by event"
// @Param        category   query     string  false  "Filter by category"
// @Param        completed  query     bool    false  "Filter by completion"
// @Param        priority   query     int     false  "Filter by priority"
// @Param        sort       query     string  false  "Sort field: id, priority, due_at, title"
// @Param        order      query     string  false  "Sort order: asc, desc"
// @Param        skip       query     int     false  "Pagination offset"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {array}   domain.Task
// @Failure      401        {object}  map[string]string
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), claims, filter)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a checklist task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  domain.Task
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PATCH /v1/tasks/:id. Only fields present in the body change.
//
// @Summary      Update a checklist task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), claims, c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueAt:       req.DueAt,
		Completed:   req.Completed,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a checklist task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), claims, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Remind handles POST /v1/tasks/:id/remind — queues a background reminder for
// the task's assignee.
//
// @Summary      Queue a reminder for a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      202  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id}/remind [post]
func (h *TaskHandler) Remind(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}

	h.reminders.Enqueue(ports.ReminderInput{
		TaskID:     task.ID,
		Title:      task.Title,
		AssigneeID: task.AssigneeID,
	})
	metrics.RemindersQueuedTotal.Inc()

	return c.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
}

func parseListFilter(c echo.Context) (ports.ListTasksFilter, error) {
	filter := ports.ListTasksFilter{
		EventID:  c.QueryParam("event_id"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Order:    c.QueryParam("order"),
	}

	if v := c.QueryParam("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "completed must be a boolean")
		}
		filter.Completed = &completed
	}
	if v := c.QueryParam("priority"); v != "" {
		priority, err := strconv.Atoi(v)
		if err != nil || priority < 1 || priority > 5 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "priority must be between 1 and 5")
		}
		filter.Priority = &priority
	}
	if v := c.QueryParam("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "skip must be a non-negative integer")
		}
		filter.Skip = skip
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	return filter, nil
}
