package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mnh-itaccess-backend/internal/domain/task"
	"mnh-itaccess-backend/internal/usecase/assignment"
	"mnh-itaccess-backend/internal/usecase/notify"
)

type AssignmentHandler struct {
	uc         *assignment.Usecase
	dispatcher *notify.Dispatcher
}

func NewAssignmentHandler(uc *assignment.Usecase, d *notify.Dispatcher) *AssignmentHandler {
	return &AssignmentHandler{uc: uc, dispatcher: d}
}

type assignOfficerReq struct {
	OfficerID      string `json:"officer_id"       validate:"required,hex32"`
	OfficerName    string `json:"officer_name"     validate:"required"`
	AssignedByID   string `json:"assigned_by_id"   validate:"required,hex32"`
	AssignedByName string `json:"assigned_by_name" validate:"required"`

	Priority string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Notes    string `json:"notes"`
	// Canonical date `YYYY-MM-DD`
	EstimatedCompletion string `json:"estimated_completion" validate:"omitempty,datetime=2006-01-02"`
}

func (h *AssignmentHandler) AssignOfficer(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req assignOfficerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := assignment.AssignInput{
		RequestID:      requestID,
		OfficerID:      req.OfficerID,
		OfficerName:    req.OfficerName,
		AssignedByID:   req.AssignedByID,
		AssignedByName: req.AssignedByName,
		Priority:       task.Priority(req.Priority),
		Notes:          req.Notes,
	}
	if req.EstimatedCompletion != "" {
		t, _ := time.Parse("2006-01-02", req.EstimatedCompletion)
		in.EstimatedCompletion = &t
	}

	dto, ev, err := h.uc.AssignOfficer(c.Request().Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	h.dispatcher.DispatchTaskAssigned(c.Request().Context(), ev)
	return c.JSON(http.StatusCreated, dto)
}

type advanceTaskReq struct {
	ActorID   string `json:"actor_id"   validate:"required,hex32"`
	ActorName string `json:"actor_name" validate:"required"`
	Status    string `json:"status"     validate:"required,oneof=in_progress implemented"`
	Note      string `json:"note"`
}

func (h *AssignmentHandler) AdvanceTask(c echo.Context) error {
	taskID := c.Param("task_id")
	if taskID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing task_id path param"})
	}
	var req advanceTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, ev, err := h.uc.AdvanceTask(c.Request().Context(), assignment.AdvanceInput{
		TaskID:    taskID,
		To:        task.Status(req.Status),
		ActorID:   req.ActorID,
		ActorName: req.ActorName,
		Note:      req.Note,
	})
	if err != nil {
		return domainError(c, err)
	}
	// ev is non-nil only when the ticket just reached implemented
	h.dispatcher.DispatchTransition(c.Request().Context(), ev)
	return c.JSON(http.StatusOK, dto)
}

func (h *AssignmentHandler) GetTask(c echo.Context) error {
	taskID := c.Param("task_id")
	dto, err := h.uc.GetByTaskID(c.Request().Context(), taskID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
