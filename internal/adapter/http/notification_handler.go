package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mnh-itaccess-backend/internal/domain/notification"
)

type NotificationHandler struct {
	repo notification.Repository
}

func NewNotificationHandler(r notification.Repository) *NotificationHandler {
	return &NotificationHandler{repo: r}
}

func (h *NotificationHandler) List(c echo.Context) error {
	userID := strings.TrimSpace(c.Request().Header.Get("Ax-Staff-Id"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing Ax-Staff-Id header"})
	}
	unreadOnly := c.QueryParam("unread") == "true"
	out, err := h.repo.ListByRecipient(c.Request().Context(), userID, unreadOnly)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type markReadReq struct {
	IDs []uint64 `json:"ids" validate:"required,min=1"`
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := strings.TrimSpace(c.Request().Header.Get("Ax-Staff-Id"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing Ax-Staff-Id header"})
	}
	var req markReadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.repo.MarkRead(c.Request().Context(), userID, req.IDs); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
