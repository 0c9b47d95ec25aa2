package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	uc "github.com/zoeccivil/licitaciones-engine/internal/usecase/remediation"
)

type RemediationHandler struct{ uc *uc.Usecase }

func NewRemediationHandler(u *uc.Usecase) *RemediationHandler { return &RemediationHandler{uc: u} }

type createRemediationReq struct {
	TenderID   string `json:"tender_id"   validate:"required,hex32"`
	DocumentID uint64 `json:"document_id" validate:"required,gt=0"`
	// WindowDays overrides the tender's configured window when > 0.
	WindowDays int `json:"window_days" validate:"omitempty,gt=0"`
}

func (h *RemediationHandler) Create(c echo.Context) error {
	var req createRemediationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Request(c.Request().Context(), uc.RequestInput{
		TenderID:    req.TenderID,
		DocumentID:  req.DocumentID,
		WindowDays:  req.WindowDays,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RemediationHandler) Deliver(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	dto, err := h.uc.Deliver(c.Request().Context(), uc.DeliverInput{
		RequestID:   requestID,
		DeliveredAt: time.Now().UTC(),
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RemediationHandler) Sweep(c echo.Context) error {
	expired, err := h.uc.ExpireSweep(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int{"expired": expired})
}

func (h *RemediationHandler) History(c echo.Context) error {
	tenderID := c.Param("tender_id")
	list, err := h.uc.History(c.Request().Context(), tenderID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}
