package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/domain/task"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// domainError maps the workflow/task error taxonomy onto HTTP statuses. The
// usecases never see HTTP; this is the only place the mapping lives.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, request.ErrNotFound), errors.Is(err, task.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, request.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, request.ErrStaleStage), errors.Is(err, task.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, request.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, task.ErrPreconditionFailed):
		return c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
