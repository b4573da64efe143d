// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bill-export-server/internal/domain"
	"bill-export-server/internal/service"
	apperrors "bill-export-server/pkg/errors"

	"github.com/gorilla/mux"
)

// BillHandler handles bill formatting, export, and messaging requests
type BillHandler struct {
	formatter  *service.BillFormatter
	messenger  *service.Messenger
	exporter   *service.PDFExporter
	exportRepo domain.ExportRepository
	config     domain.Config
	logger     domain.Logger
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	formatter *service.BillFormatter,
	messenger *service.Messenger,
	exporter *service.PDFExporter,
	exportRepo domain.ExportRepository,
	config domain.Config,
	logger domain.Logger,
) *BillHandler {
	return &BillHandler{
		formatter:  formatter,
		messenger:  messenger,
		exporter:   exporter,
		exportRepo: exportRepo,
		config:     config,
		logger:     logger,
	}
}

type formatBillRequest struct {
	HTML string `json:"html"`
}

type formatBillResponse struct {
	Text string `json:"text"`
}

// FormatBill converts an HTML bill into the plain-text messaging rendering.
func (h *BillHandler) FormatBill(w http.ResponseWriter, r *http.Request) {
	var req formatBillRequest
	if !h.decode(w, r, &req) {
		return
	}

	text, err := h.formatter.FormatForMessaging(req.HTML)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, formatBillResponse{Text: text})
}

type exportBillRequest struct {
	HTML     string `json:"html"`
	Filename string `json:"filename"`
}

// ExportBill rasterizes an HTML bill into a paginated PDF and saves it.
func (h *BillHandler) ExportBill(w http.ResponseWriter, r *http.Request) {
	var req exportBillRequest
	if !h.decode(w, r, &req) {
		return
	}

	record, err := h.exporter.Export(r.Context(), req.HTML, req.Filename)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

type buildMessageRequest struct {
	Order   domain.OrderSummary `json:"order"`
	Variant string              `json:"variant"` // "text" embeds the bill, "pdf" sends the handoff notice
}

type buildMessageResponse struct {
	Message string `json:"message"`
}

// BuildMessage renders an outbound order message from order metadata.
func (h *BillHandler) BuildMessage(w http.ResponseWriter, r *http.Request) {
	var req buildMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	var message string
	switch req.Variant {
	case "", "text":
		var err error
		message, err = h.messenger.BuildOrderMessage(req.Order)
		if err != nil {
			h.handleError(w, err)
			return
		}
	case "pdf":
		message = h.messenger.BuildPDFHandoffMessage(req.Order)
	default:
		writeError(w, http.StatusBadRequest, "Unknown message variant: "+req.Variant)
		return
	}

	writeJSON(w, http.StatusOK, buildMessageResponse{Message: message})
}

type whatsappLinkRequest struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
	Web   bool   `json:"web"`
}

type whatsappLinkResponse struct {
	Link  string `json:"link"`
	Phone string `json:"phone"`
}

// BuildWhatsAppLink builds a deep link that opens a pre-filled conversation.
func (h *BillHandler) BuildWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	var req whatsappLinkRequest
	if !h.decode(w, r, &req) {
		return
	}

	link, err := h.messenger.BuildLink(req.Phone, req.Text, req.Web)
	if err != nil {
		h.handleError(w, err)
		return
	}

	phone, _ := h.messenger.NormalizePhone(req.Phone)
	writeJSON(w, http.StatusOK, whatsappLinkResponse{Link: link, Phone: phone})
}

// ListExports returns all recorded exports, newest first.
func (h *BillHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	records, err := h.exportRepo.List()
	if err != nil {
		h.handleError(w, err)
		return
	}
	if records == nil {
		records = make([]*domain.ExportRecord, 0)
	}
	writeJSON(w, http.StatusOK, records)
}

// GetExport returns one export record by ID.
func (h *BillHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	record, err := h.exportRepo.GetByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// decode reads a size-limited JSON body into dst. Returns false after writing
// an error response when the body is unreadable.
func (h *BillHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.GetMaxBillSize())
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// handleError maps service errors to HTTP responses.
func (h *BillHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyBill), errors.Is(err, domain.ErrInvalidPhoneNumber):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrExportNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("Request failed", err)
		writeError(w, apperrors.GetStatusCode(err), err.Error())
	}
}
