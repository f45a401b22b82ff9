package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/service"
)

// maxImageBytes bounds scan uploads.
const maxImageBytes = 10 << 20

// ReceiptsHandler serves the receipt and order lifecycle endpoints.
type ReceiptsHandler struct {
	receipts *service.ReceiptService
}

func NewReceiptsHandler(receipts *service.ReceiptService) *ReceiptsHandler {
	return &ReceiptsHandler{receipts: receipts}
}

// Scan handles POST /api/receipts/scan. The request body is the raw
// image; Content-Type carries the MIME type and the optional folder
// query parameter files the result.
func (h *ReceiptsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	imageData, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}
	if len(imageData) == 0 {
		writeError(w, http.StatusBadRequest, "image is empty")
		return
	}
	if len(imageData) > maxImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	result, err := h.receipts.Scan(r.Context(), imageData, r.Header.Get("Content-Type"), r.URL.Query().Get("folder"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type createReceiptRequest struct {
	Receipt models.Receipt `json:"receipt"`
	Orders  []models.Order `json:"orders"`
}

// Create handles POST /api/receipts for manually entered receipts.
func (h *ReceiptsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.receipts.Create(r.Context(), &req.Receipt, req.Orders); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.ReceiptWithOrders{Receipt: req.Receipt, Orders: req.Orders})
}

// Get handles GET /api/receipts/{id}.
func (h *ReceiptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.receipts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// List handles GET /api/receipts, optionally filtered by folder.
func (h *ReceiptsHandler) List(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.receipts.List(r.Context(), r.URL.Query().Get("folder"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"receipts": receipts,
		"count":    len(receipts),
	})
}

// Update handles PUT /api/receipts/{id}.
func (h *ReceiptsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var receipt models.Receipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	receipt.ID = r.PathValue("id")

	if err := h.receipts.Update(r.Context(), &receipt); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// Delete handles DELETE /api/receipts/{id}.
func (h *ReceiptsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.receipts.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddOrder handles POST /api/receipts/{id}/orders.
func (h *ReceiptsHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	order.ReceiptID = r.PathValue("id")

	if err := h.receipts.AddOrder(r.Context(), &order); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// UpdateOrder handles PUT /api/orders/{id}.
func (h *ReceiptsHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	order.ID = r.PathValue("id")

	if err := h.receipts.UpdateOrder(r.Context(), &order); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/{id}.
func (h *ReceiptsHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.receipts.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
