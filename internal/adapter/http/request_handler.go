package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domain "mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/usecase/notify"
	requestUC "mnh-itaccess-backend/internal/usecase/request"
)

type RequestHandler struct {
	uc         *requestUC.Usecase
	dispatcher *notify.Dispatcher
}

func NewRequestHandler(uc *requestUC.Usecase, d *notify.Dispatcher) *RequestHandler {
	return &RequestHandler{uc: uc, dispatcher: d}
}

type createRequestReq struct {
	StaffID      string `json:"staff_id"      validate:"required,hex32"`
	StaffName    string `json:"staff_name"    validate:"required"`
	PhoneNumber  string `json:"phone_number"  validate:"omitempty,max=32"`
	DepartmentID string `json:"department_id" validate:"required"`

	Services []string            `json:"services" validate:"required,min=1,dive,oneof=jeeva wellsoft internet"`
	Modules  map[string][]string `json:"modules"`

	AccessMode string `json:"access_mode" validate:"required,oneof=permanent temporary"`
	// Canonical date `YYYY-MM-DD`; required iff access_mode is temporary.
	TemporaryUntil string `json:"temporary_until" validate:"omitempty,datetime=2006-01-02"`
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := requestUC.CreateRequestInput{
		StaffID:      req.StaffID,
		StaffName:    req.StaffName,
		PhoneNumber:  req.PhoneNumber,
		DepartmentID: req.DepartmentID,
		AccessMode:   domain.AccessMode(req.AccessMode),
	}
	for _, s := range req.Services {
		in.Services = append(in.Services, domain.Service(s))
	}
	if len(req.Modules) > 0 {
		in.Modules = make(map[domain.Service][]string, len(req.Modules))
		for k, v := range req.Modules {
			in.Modules[domain.Service(k)] = v
		}
	}
	if req.TemporaryUntil != "" {
		// end of the stated day, so "today" is already in the past
		t, _ := time.Parse("2006-01-02", req.TemporaryUntil)
		t = t.Add(24*time.Hour - time.Second)
		in.TemporaryUntil = &t
	}

	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return domainError(c, err)
	}

	h.dispatcher.DispatchSubmitted(c.Request().Context(), notify.SubmittedEvent{
		EventID:      uuid.NewString(),
		RequestID:    dto.RequestID,
		RefCode:      dto.RefCode,
		StaffID:      dto.StaffID,
		StaffName:    dto.StaffName,
		DepartmentID: dto.DepartmentID,
		OccurredAt:   time.Now().UTC(),
	})
	return c.JSON(http.StatusCreated, dto)
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), requestID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) GetSnapshot(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	dto, err := h.uc.Snapshot(c.Request().Context(), requestID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
