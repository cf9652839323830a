package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

// InvoiceHandler handles invoice requests
type InvoiceHandler struct {
	service   invoice.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service invoice.Service, log *logger.Logger, val *validator.Validator) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the user's invoices
// @Summary List invoices
// @Description Newest first. Optional status filter and search over number, client name and email.
// @Tags Invoices
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft, sent, paid or overdue"
// @Param search query string false "Search text"
// @Success 200 {object} dto.InvoiceListResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	filter := invoice.Filter{
		Status: invoice.Status(strings.TrimSpace(r.URL.Query().Get("status"))),
		Search: r.URL.Query().Get("search"),
	}
	if filter.Status == "all" {
		filter.Status = ""
	}

	invoices, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.InvoiceListResponse{
		Invoices: invoices,
		Total:    len(invoices),
	})
}

// Create saves a new invoice from a draft
// @Summary Save invoice
// @Description Counts against the plan's invoice allowance
// @Tags Invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InvoiceDraftRequest true "Invoice draft"
// @Success 201 {object} invoice.Invoice
// @Failure 400 {object} utils.ErrorResponse
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.InvoiceDraftRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	inv, err := h.service.Save(r.Context(), userID, req.ToDraft())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Invoice saved successfully!", inv)
}

// Calculate returns derived amounts for a draft without storing anything
// @Summary Calculate totals
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body dto.InvoiceDraftRequest true "Invoice draft"
// @Success 200 {object} dto.InvoiceTotalsResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /invoices/calculate [post]
func (h *InvoiceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.InvoiceDraftRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	d := req.ToDraft()
	d.Normalize()
	utils.WriteSuccess(w, http.StatusOK, dto.NewInvoiceTotalsResponse(d))
}

// Get returns one invoice
// @Summary Get invoice
// @Tags Invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} invoice.Invoice
// @Failure 404 {object} utils.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "invoice")
	if !ok {
		return
	}

	inv, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, inv)
}

// Update replaces an invoice's contents
// @Summary Update invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Param request body dto.InvoiceDraftRequest true "Invoice draft"
// @Success 200 {object} invoice.Invoice
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "invoice")
	if !ok {
		return
	}

	var req dto.InvoiceDraftRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	inv, err := h.service.Update(r.Context(), userID, id, req.ToDraft())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, inv)
}

// UpdateStatus moves an invoice through its lifecycle
// @Summary Update invoice status
// @Tags Invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Param request body dto.InvoiceStatusRequest true "New status"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "invoice")
	if !ok {
		return
	}

	var req dto.InvoiceStatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	if err := h.service.UpdateStatus(r.Context(), userID, id, invoice.Status(req.Status)); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Invoice status updated", map[string]interface{}{
		"id":     id,
		"status": req.Status,
	})
}

// Delete removes an invoice
// @Summary Delete invoice
// @Tags Invoices
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "invoice")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV downloads every invoice as CSV
// @Summary Export invoices as CSV
// @Tags Invoices
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Router /invoices/export.csv [get]
func (h *InvoiceHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), userID, &buf); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteAttachment(w, "text/csv; charset=utf-8", invoice.CSVFilename, buf.Bytes())
}

// ExportPDF renders a stored invoice
// @Summary Download invoice PDF
// @Description Counts against the plan's PDF export allowance
// @Tags Invoices
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {file} file
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Failure 404 {object} utils.ErrorResponse
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "invoice")
	if !ok {
		return
	}

	doc, err := h.service.ExportPDF(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeDocument(w, doc)
}

// PreviewPDF renders an unsaved draft
// @Summary Download draft PDF
// @Description Counts against the plan's PDF export allowance
// @Tags Invoices
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param request body dto.InvoiceDraftRequest true "Invoice draft"
// @Success 200 {file} file
// @Failure 402 {object} utils.ErrorResponse "Plan limit reached"
// @Router /invoices/preview.pdf [post]
func (h *InvoiceHandler) PreviewPDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.InvoiceDraftRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	doc, err := h.service.PreviewPDF(r.Context(), userID, req.ToDraft())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeDocument(w, doc)
}

func (h *InvoiceHandler) writeDocument(w http.ResponseWriter, doc *invoice.Document) {
	if doc == nil || len(doc.Data) == 0 {
		utils.WriteError(w, errors.Internal(errors.FallbackMessage, nil))
		return
	}
	if doc.ArchiveKey != "" {
		w.Header().Set("X-Archive-Key", doc.ArchiveKey)
	}
	utils.WriteAttachment(w, doc.ContentType, doc.Filename, doc.Data)
}
