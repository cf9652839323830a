package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/payment"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// PaymentHandler handles plan purchases
type PaymentHandler struct {
	service   payment.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service payment.Service, log *logger.Logger, val *validator.Validator) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Create submits a pending payment for a plan
// @Summary Purchase plan
// @Description The amount is taken from the plan catalog. An admin confirms the payment.
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentRequest true "Plan and method"
// @Success 201 {object} payment.Payment
// @Failure 400 {object} utils.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	p, err := h.service.Create(r.Context(), userID, tier.ID(req.Tier), req.Method, req.Reference)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Payment submitted for review", p)
}

// List returns the user's payment history
// @Summary List my payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} payment.Payment
// @Router /payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	payments, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, payments)
}

// ListAll returns every payment
// @Summary List all payments
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} payment.Payment
// @Failure 403 {object} utils.ErrorResponse
// @Router /admin/payments [get]
func (h *PaymentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, payments)
}

// UpdateStatus confirms or rejects a pending payment
// @Summary Review payment
// @Description Completing a payment moves its owner to the purchased plan
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param request body dto.PaymentStatusRequest true "completed or failed"
// @Success 200 {object} payment.Payment
// @Failure 409 {object} utils.ErrorResponse "Payment already reviewed"
// @Router /admin/payments/{id} [patch]
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "payment")
	if !ok {
		return
	}

	var req dto.PaymentStatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	p, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}
