package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	uc "github.com/zoeccivil/licitaciones-engine/internal/usecase/evaluation"
)

type EvaluationHandler struct{ uc *uc.Orchestrator }

func NewEvaluationHandler(o *uc.Orchestrator) *EvaluationHandler { return &EvaluationHandler{uc: o} }

type evaluateReq struct {
	// AsOf is the evaluation date `YYYY-MM-DD`; empty means today.
	AsOf string `json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

func (h *EvaluationHandler) Evaluate(c echo.Context) error {
	tenderID := c.Param("tender_id")
	if tenderID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing tender_id path param"})
	}
	var req evaluateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid as_of date"})
	}
	run, err := h.uc.EvaluateTender(c.Request().Context(), tenderID, asOf)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}

func (h *EvaluationHandler) Results(c echo.Context) error {
	tenderID := c.Param("tender_id")
	run, err := h.uc.Results(c.Request().Context(), tenderID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}

func (h *EvaluationHandler) Summary(c echo.Context) error {
	tenderID := c.Param("tender_id")
	sum, err := h.uc.Summary(c.Request().Context(), tenderID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *EvaluationHandler) Disqualifications(c echo.Context) error {
	tenderID := c.Param("tender_id")
	list, err := h.uc.Disqualifications(c.Request().Context(), tenderID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EvaluationHandler) BidderWins(c echo.Context) error {
	name := c.Param("bidder_name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing bidder_name path param"})
	}
	list, err := h.uc.BidderWins(c.Request().Context(), name)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}
