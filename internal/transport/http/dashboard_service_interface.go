package http

import (
	"context"
	"time"

	"github.com/conectamos-mx/dashboard-ova/internal/analytics"
	"github.com/conectamos-mx/dashboard-ova/internal/services"
)

// DashboardServiceInterface is what the handler needs from the service
// layer; tests substitute a fake.
type DashboardServiceInterface interface {
	Summary(ctx context.Context, r analytics.DateRange) (analytics.Summary, error)
	SalesByType(ctx context.Context, r analytics.DateRange) ([]analytics.TypeBreakdown, error)
	SalesBySegment(ctx context.Context, r analytics.DateRange) ([]analytics.SegmentBreakdown, error)
	TopProducts(ctx context.Context, r analytics.DateRange, limit int) ([]analytics.TopProduct, error)
	TicketDistribution(ctx context.Context, r analytics.DateRange) ([]analytics.TicketBucket, error)
	DailyTrend(ctx context.Context, r analytics.DateRange) (analytics.Series, error)
	WeekdayBreakdown(ctx context.Context, r analytics.DateRange) (analytics.Series, error)
	SalesByOperator(ctx context.Context, r analytics.DateRange) ([]analytics.OperatorRank, error)
	TopClients(ctx context.Context, r analytics.DateRange, limit int) ([]analytics.ClientRank, error)
	Purchases(ctx context.Context, r analytics.DateRange) (services.PurchasesResponse, error)
	Receivables(ctx context.Context) (analytics.ReceivablesResult, error)
	Expenses(ctx context.Context, r analytics.DateRange) (services.ExpensesResponse, error)
	Stock(ctx context.Context) (services.StockResponse, error)
	CashStatus(ctx context.Context, until *time.Time) analytics.CashSessionResult
	AverageTicket(ctx context.Context, r analytics.DateRange) (analytics.AverageTicketResult, error)
	CollectionRate(ctx context.Context) (analytics.CollectionRateResult, error)
	MonthlyComparison(ctx context.Context) (analytics.MonthlyComparisonResult, error)
	Health(ctx context.Context) services.HealthResponse
	Debug(ctx context.Context) (services.DebugVentas, error)
}
