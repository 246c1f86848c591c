// Package http exposes the dashboard over a JSON API. Handlers are thin:
// they parse query parameters, delegate to the service layer and render the
// result, leaving error classification to the central error handler.
package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/conectamos-mx/dashboard-ova/internal/analytics"
	apierrors "github.com/conectamos-mx/dashboard-ova/internal/errors"
	"github.com/conectamos-mx/dashboard-ova/internal/services"
)

// DashboardHandler handles the dashboard API requests.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the /api routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)

	r.Route("/sales", func(r chi.Router) {
		r.Get("/by-type", h.GetSalesByType)
		r.Get("/by-product", h.GetSalesByProduct)
		r.Get("/top-products", h.GetTopProducts)
		r.Get("/ticket-distribution", h.GetTicketDistribution)
		r.Get("/trend", h.GetSalesTrend)
		r.Get("/by-weekday", h.GetSalesByWeekday)
		r.Get("/by-operator", h.GetSalesByOperator)
		r.Get("/top-clients", h.GetTopClients)
	})

	r.Get("/purchases", h.GetPurchases)
	r.Get("/receivables", h.GetReceivables)
	r.Get("/expenses", h.GetExpenses)
	r.Get("/stock", h.GetStock)
	r.Get("/cash-status", h.GetCashStatus)

	r.Route("/metrics", func(r chi.Router) {
		r.Get("/ticket-promedio", h.GetTicketPromedio)
		r.Get("/tasa-cobranza", h.GetTasaCobranza)
		r.Get("/monthly-comparison", h.GetMonthlyComparison)
	})

	r.Get("/health", h.GetHealth)
	r.Get("/debug/ventas", h.GetDebugVentas)

	return r
}

// dateRange reads the optional start_date/end_date query parameters. A value
// that fails to parse is treated as absent rather than rejected, matching
// how the dashboard frontend probes ranges.
func dateRange(r *http.Request) analytics.DateRange {
	return analytics.DateRange{
		Start: parseQueryDate(r.URL.Query().Get("start_date")),
		End:   parseQueryDate(r.URL.Query().Get("end_date")),
	}
}

func parseQueryDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// limitParam reads the optional limit query parameter, falling back to def
// when absent or unparseable.
func limitParam(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// dataEnvelope wraps list payloads the way the dashboard frontend expects.
type dataEnvelope struct {
	Data interface{} `json:"data"`
}

// GetSummary handles GET /api/summary.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetSalesByType handles GET /api/sales/by-type.
func (h *DashboardHandler) GetSalesByType(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.SalesByType(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dataEnvelope{Data: data})
}

// GetSalesByProduct handles GET /api/sales/by-product.
func (h *DashboardHandler) GetSalesByProduct(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.SalesBySegment(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dataEnvelope{Data: data})
}

// GetTopProducts handles GET /api/sales/top-products.
func (h *DashboardHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.TopProducts(r.Context(), dateRange(r), limitParam(r, 5))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dataEnvelope{Data: data})
}

// GetTicketDistribution handles GET /api/sales/ticket-distribution.
func (h *DashboardHandler) GetTicketDistribution(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.TicketDistribution(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dataEnvelope{Data: data})
}

// GetSalesTrend handles GET /api/sales/trend.
func (h *DashboardHandler) GetSalesTrend(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.DailyTrend(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, series)
}

// GetSalesByWeekday handles GET /api/sales/by-weekday.
func (h *DashboardHandler) GetSalesByWeekday(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.WeekdayBreakdown(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, series)
}

// GetSalesByOperator handles GET /api/sales/by-operator.
func (h *DashboardHandler) GetSalesByOperator(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.SalesByOperator(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dataEnvelope{Data: data})
}

// GetTopClients handles GET /api/sales/top-clients.
func (h *DashboardHandler) GetTopClients(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.TopClients(r.Context(), dateRange(r), limitParam(r, 10))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dataEnvelope{Data: data})
}

// GetPurchases handles GET /api/purchases.
func (h *DashboardHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Purchases(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetReceivables handles GET /api/receivables.
func (h *DashboardHandler) GetReceivables(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Receivables(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetExpenses handles GET /api/expenses.
func (h *DashboardHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Expenses(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetStock handles GET /api/stock.
func (h *DashboardHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Stock(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetCashStatus handles GET /api/cash-status. The service degrades to an
// empty session on load failures, so this handler never renders an error.
func (h *DashboardHandler) GetCashStatus(w http.ResponseWriter, r *http.Request) {
	until := parseQueryDate(r.URL.Query().Get("end_date"))
	render.JSON(w, r, h.service.CashStatus(r.Context(), until))
}

// GetTicketPromedio handles GET /api/metrics/ticket-promedio.
func (h *DashboardHandler) GetTicketPromedio(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.AverageTicket(r.Context(), dateRange(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetTasaCobranza handles GET /api/metrics/tasa-cobranza.
func (h *DashboardHandler) GetTasaCobranza(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.CollectionRate(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetMonthlyComparison handles GET /api/metrics/monthly-comparison.
func (h *DashboardHandler) GetMonthlyComparison(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.MonthlyComparison(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetHealth handles GET /api/health.
func (h *DashboardHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Health(r.Context()))
}

// GetDebugVentas handles GET /api/debug/ventas.
func (h *DashboardHandler) GetDebugVentas(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Debug(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

var _ DashboardServiceInterface = (*services.DashboardService)(nil)
