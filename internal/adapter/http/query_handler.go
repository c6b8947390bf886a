package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	domain "mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/usecase/query"
)

type QueryHandler struct {
	uc *query.Usecase
}

func NewQueryHandler(uc *query.Usecase) *QueryHandler { return &QueryHandler{uc: uc} }

// Inbox returns the actor's three buckets. Identity comes from headers set
// by the auth layer upstream; departments arrive comma-separated.
func (h *QueryHandler) Inbox(c echo.Context) error {
	userID := strings.TrimSpace(c.Request().Header.Get("Ax-Staff-Id"))
	role := strings.TrimSpace(c.QueryParam("role"))
	if userID == "" || role == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing Ax-Staff-Id header or role param"})
	}

	actor := query.Actor{UserID: userID, Role: domain.Role(role)}
	if depts := strings.TrimSpace(c.QueryParam("departments")); depts != "" {
		for _, d := range strings.Split(depts, ",") {
			if d = strings.TrimSpace(d); d != "" {
				actor.DepartmentIDs = append(actor.DepartmentIDs, d)
			}
		}
	}

	dto, err := h.uc.Buckets(c.Request().Context(), actor)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
