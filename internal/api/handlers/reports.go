package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/service"
)

// ReportsHandler serves report building, sharing and export.
type ReportsHandler struct {
	reports  *service.ReportService
	shareTTL time.Duration
}

func NewReportsHandler(reports *service.ReportService, shareTTL time.Duration) *ReportsHandler {
	return &ReportsHandler{reports: reports, shareTTL: shareTTL}
}

type buildRequest struct {
	Claims      service.Claims      `json:"claims,omitempty"`
	Assignments service.Assignments `json:"assignments,omitempty"`
}

type reportResponse struct {
	Report string `json:"report"`
}

// BuildForOne handles POST /api/receipts/{id}/report/one. The body
// carries the session's claimed quantities.
func (h *ReportsHandler) BuildForOne(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, err := h.reports.BuildForOne(r.Context(), r.PathValue("id"), req.Claims)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Report: text})
}

type claimRequest struct {
	Claims  service.Claims `json:"claims,omitempty"`
	Action  string         `json:"action"`
	OrderID string         `json:"order_id,omitempty"`
}

type claimResponse struct {
	Orders []models.Order `json:"orders"`
	Report string         `json:"report"`
}

// AdjustClaim handles POST /api/receipts/{id}/claim: one tap of the
// quantity-split screen. The response carries the updated session claims
// and the rebuilt report.
func (h *ReportsHandler) AdjustClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orders, text, err := h.reports.AdjustClaim(r.Context(), r.PathValue("id"), req.Claims, req.Action, req.OrderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claimResponse{Orders: orders, Report: text})
}

// BuildForAll handles POST /api/receipts/{id}/report/all. The body
// carries the session's consumer assignments.
func (h *ReportsHandler) BuildForAll(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, err := h.reports.BuildForAll(r.Context(), r.PathValue("id"), req.Assignments)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Report: text})
}

// BuildFolder handles POST /api/folders/{id}/report. The format query
// parameter selects the folder report shape, defaulting to the basic one.
func (h *ReportsHandler) BuildFolder(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = service.FormatFolder
	}

	text, err := h.reports.BuildFolder(r.Context(), r.PathValue("id"), format, req.Assignments)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Report: text})
}

// Export handles POST /api/folders/{id}/export and streams back an
// xlsx workbook of the folder split.
func (h *ReportsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.reports.Export(r.Context(), r.PathValue("id"), req.Assignments)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="split.xlsx"`)
	_, _ = w.Write(data)
}

type shareRequest struct {
	Report    string `json:"report"`
	ReceiptID string `json:"receipt_id,omitempty"`
	FolderID  string `json:"folder_id,omitempty"`
	Format    string `json:"format"`
}

// Share handles POST /api/shares: it mints a link token for an
// already-rendered report.
func (h *ReportsHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Report == "" {
		writeError(w, http.StatusBadRequest, "report text is required")
		return
	}

	token, err := h.reports.Share(r.Context(), req.Report, req.ReceiptID, req.FolderID, req.Format, h.shareTTL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// ResolveShare handles GET /api/shares/{token} and returns the report
// text the link was minted for.
func (h *ReportsHandler) ResolveShare(w http.ResponseWriter, r *http.Request) {
	text, err := h.reports.ResolveShare(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Report: text})
}
