package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux wires the API routes onto a fresh ServeMux. Cross-cutting
// middleware is layered on top by the caller.
func NewMux(receipts *ReceiptsHandler, reports *ReportsHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/receipts/scan", receipts.Scan)
	mux.HandleFunc("POST /api/receipts", receipts.Create)
	mux.HandleFunc("GET /api/receipts", receipts.List)
	mux.HandleFunc("GET /api/receipts/{id}", receipts.Get)
	mux.HandleFunc("PUT /api/receipts/{id}", receipts.Update)
	mux.HandleFunc("DELETE /api/receipts/{id}", receipts.Delete)
	mux.HandleFunc("POST /api/receipts/{id}/orders", receipts.AddOrder)
	mux.HandleFunc("PUT /api/orders/{id}", receipts.UpdateOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", receipts.DeleteOrder)

	mux.HandleFunc("POST /api/receipts/{id}/claim", reports.AdjustClaim)
	mux.HandleFunc("POST /api/receipts/{id}/report/one", reports.BuildForOne)
	mux.HandleFunc("POST /api/receipts/{id}/report/all", reports.BuildForAll)
	mux.HandleFunc("POST /api/folders/{id}/report", reports.BuildFolder)
	mux.HandleFunc("POST /api/folders/{id}/export", reports.Export)
	mux.HandleFunc("POST /api/shares", reports.Share)
	mux.HandleFunc("GET /api/shares/{token}", reports.ResolveShare)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
