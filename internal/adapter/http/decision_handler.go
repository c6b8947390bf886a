package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/usecase/notify"
	"mnh-itaccess-backend/internal/usecase/workflow"
)

type DecisionHandler struct {
	uc         *workflow.Usecase
	dispatcher *notify.Dispatcher
}

func NewDecisionHandler(uc *workflow.Usecase, d *notify.Dispatcher) *DecisionHandler {
	return &DecisionHandler{uc: uc, dispatcher: d}
}

type submitDecisionReq struct {
	ActorID   string `json:"actor_id"   validate:"required,hex32"`
	ActorName string `json:"actor_name" validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=hod divisional_director ict_director head_of_it ict_officer"`
	Stage     string `json:"stage"      validate:"required,oneof=hod divisional ict_director head_it ict_officer"`
	Action    string `json:"action"     validate:"required,oneof=approve reject implement"`
	// Required on reject (reason) and implement (implementation note).
	Comment      string `json:"comment"`
	SignatureRef string `json:"signature_ref"`
}

// SubmitDecision runs one stage decision. Role/department resolution is the
// auth layer's job; by the time a request lands here the role claim is
// trusted input.
func (h *DecisionHandler) SubmitDecision(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req submitDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	stage, ok := domain.StageForKey(req.Stage)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown stage"})
	}

	dto, ev, err := h.uc.SubmitDecision(c.Request().Context(), workflow.SubmitDecisionInput{
		RequestID:    requestID,
		ActorID:      req.ActorID,
		ActorName:    req.ActorName,
		Role:         domain.Role(req.Role),
		Stage:        stage,
		Action:       domain.Action(req.Action),
		Comment:      req.Comment,
		SignatureRef: req.SignatureRef,
	})
	if err != nil {
		return domainError(c, err)
	}

	// fire-and-forget; a notification failure never unwinds the decision
	h.dispatcher.DispatchTransition(c.Request().Context(), ev)
	return c.JSON(http.StatusOK, dto)
}
