package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/comanda-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
)

// DashboardServicer defines the aggregation methods needed by dashboard
// handlers. Satisfied by *service.Dashboard.
type DashboardServicer interface {
	Stats(ctx context.Context, now time.Time) (service.Stats, error)
	Analytics(ctx context.Context, now time.Time) (service.Analytics, error)
}

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	svc DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc DashboardServicer) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// RegisterRoutes registers dashboard endpoints on the given Chi router.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.Stats)
	r.Get("/analytics", h.Analytics)
}

// --- Response types ---

type statsResponse struct {
	TotalSales          string `json:"totalSales"`
	PendingOrders       int    `json:"pendingOrders"`
	InPreparationOrders int    `json:"inPreparationOrders"`
	ReadyOrders         int    `json:"readyOrders"`
}

type hourlySaleResponse struct {
	Hour  int    `json:"hour"`
	Sales string `json:"sales"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type productSalesResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type analyticsResponse struct {
	SalesByHour             []hourlySaleResponse   `json:"salesByHour"`
	OrderStatusDistribution []statusCountResponse  `json:"orderStatusDistribution"`
	TopSellingProducts      []productSalesResponse `json:"topSellingProducts"`
}

// --- Handlers ---

// Stats returns today's sales total and the all-time in-flight counters.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), time.Now())
	if err != nil {
		log.Printf("ERROR: dashboard stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalSales:          stats.TotalSales.StringFixed(2),
		PendingOrders:       stats.PendingOrders,
		InPreparationOrders: stats.InPreparationOrders,
		ReadyOrders:         stats.ReadyOrders,
	})
}

// Analytics returns the hourly sales, status distribution and top product
// chart data.
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.svc.Analytics(r.Context(), time.Now())
	if err != nil {
		log.Printf("ERROR: dashboard analytics: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	hourly := make([]hourlySaleResponse, len(analytics.SalesByHour))
	for i, b := range analytics.SalesByHour {
		hourly[i] = hourlySaleResponse{Hour: b.Hour, Sales: b.Sales.StringFixed(2)}
	}
	distribution := make([]statusCountResponse, len(analytics.OrderStatusDistribution))
	for i, c := range analytics.OrderStatusDistribution {
		distribution[i] = statusCountResponse{Status: c.Status, Count: c.Count}
	}
	top := make([]productSalesResponse, len(analytics.TopSellingProducts))
	for i, p := range analytics.TopSellingProducts {
		top[i] = productSalesResponse{Name: p.Name, Quantity: p.Quantity}
	}

	writeJSON(w, http.StatusOK, analyticsResponse{
		SalesByHour:             hourly,
		OrderStatusDistribution: distribution,
		TopSellingProducts:      top,
	})
}
