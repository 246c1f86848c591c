// Package services hosts the business layer between the HTTP handlers and
// the table source: it loads datasets, normalizes them into records and runs
// the analytics functions that back each endpoint.
package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/conectamos-mx/dashboard-ova/internal/analytics"
	"github.com/conectamos-mx/dashboard-ova/internal/dataset"
	"github.com/conectamos-mx/dashboard-ova/internal/records"
	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

// Version is reported by the health endpoint.
const Version = "2.0.0"

// DashboardService computes every dashboard payload from the configured
// table source.
type DashboardService struct {
	source tablesource.Source
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardService creates a dashboard service over the given source.
func NewDashboardService(source tablesource.Source, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		source: source,
		logger: logger.With(slog.String("component", "dashboard-service")),
		now:    time.Now,
	}
}

func (s *DashboardService) loadContado(ctx context.Context) ([]records.Sale, error) {
	t, err := s.source.ReadTable(ctx, dataset.MustLookup(dataset.VentasContado))
	if err != nil {
		return nil, err
	}
	return records.NormalizeVentasContado(t)
}

func (s *DashboardService) loadCredito(ctx context.Context) ([]records.Sale, error) {
	t, err := s.source.ReadTable(ctx, dataset.MustLookup(dataset.VentasCredito))
	if err != nil {
		return nil, err
	}
	return records.NormalizeVentasCredito(t)
}

// loadSales combines both sales sheets, cash records first.
func (s *DashboardService) loadSales(ctx context.Context) ([]records.Sale, error) {
	contado, err := s.loadContado(ctx)
	if err != nil {
		return nil, err
	}
	credito, err := s.loadCredito(ctx)
	if err != nil {
		return nil, err
	}
	return records.AllSales(contado, credito), nil
}

func (s *DashboardService) loadPurchases(ctx context.Context) ([]records.Purchase, error) {
	tc, err := s.source.ReadTable(ctx, dataset.MustLookup(dataset.ComprasCebolla))
	if err != nil {
		return nil, err
	}
	cebolla, err := records.NormalizeComprasCebolla(tc)
	if err != nil {
		return nil, err
	}
	th, err := s.source.ReadTable(ctx, dataset.MustLookup(dataset.ComprasHuevo))
	if err != nil {
		return nil, err
	}
	huevo, err := records.NormalizeComprasHuevo(th)
	if err != nil {
		return nil, err
	}
	return records.AllPurchases(cebolla, huevo), nil
}

func (s *DashboardService) loadExpenses(ctx context.Context) ([]records.Expense, error) {
	t, err := s.source.ReadTable(ctx, dataset.MustLookup(dataset.Egresos))
	if err != nil {
		return nil, err
	}
	return records.NormalizeEgresos(t)
}

func (s *DashboardService) loadStock(ctx context.Context, id dataset.ID) ([]records.Number, error) {
	t, err := s.source.ReadTable(ctx, dataset.MustLookup(id))
	if err != nil {
		return nil, err
	}
	return records.NormalizeStock(t)
}

func (s *DashboardService) loadCajas(ctx context.Context) ([]records.CashRow, error) {
	t, err := s.source.ReadTable(ctx, dataset.MustLookup(dataset.Cajas))
	if err != nil {
		return nil, err
	}
	return records.NormalizeCajas(t)
}

// Summary builds the headline KPI block. The three ledgers load
// concurrently; a ledger that fails to load contributes zeros instead of
// failing the whole summary.
func (s *DashboardService) Summary(ctx context.Context, r analytics.DateRange) (analytics.Summary, error) {
	var (
		sales     []records.Sale
		purchases []records.Purchase
		expenses  []records.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := s.loadSales(gctx)
		if err != nil {
			s.logger.Warn("summary: sales unavailable", slog.String("error", err.Error()))
			return nil
		}
		sales = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := s.loadPurchases(gctx)
		if err != nil {
			s.logger.Warn("summary: purchases unavailable", slog.String("error", err.Error()))
			return nil
		}
		purchases = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := s.loadExpenses(gctx)
		if err != nil {
			s.logger.Warn("summary: expenses unavailable", slog.String("error", err.Error()))
			return nil
		}
		expenses = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return analytics.Summary{}, err
	}

	return analytics.BuildSummary(
		analytics.FilterSales(sales, r),
		analytics.FilterPurchases(purchases, r),
		analytics.FilterExpenses(expenses, r),
	), nil
}

// SalesByType splits sales by payment type.
func (s *DashboardService) SalesByType(ctx context.Context, r analytics.DateRange) ([]analytics.TypeBreakdown, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SalesByType(analytics.FilterSales(sales, r)), nil
}

// SalesBySegment splits sales by business segment.
func (s *DashboardService) SalesBySegment(ctx context.Context, r analytics.DateRange) ([]analytics.SegmentBreakdown, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SalesBySegment(analytics.FilterSales(sales, r)), nil
}

// TopProducts ranks products by sales volume.
func (s *DashboardService) TopProducts(ctx context.Context, r analytics.DateRange, limit int) ([]analytics.TopProduct, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopProducts(analytics.FilterSales(sales, r), limit), nil
}

// TicketDistribution histograms sales by ticket amount.
func (s *DashboardService) TicketDistribution(ctx context.Context, r analytics.DateRange) ([]analytics.TicketBucket, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TicketDistribution(analytics.FilterSales(sales, r)), nil
}

// DailyTrend returns the per-day sales series.
func (s *DashboardService) DailyTrend(ctx context.Context, r analytics.DateRange) (analytics.Series, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return analytics.Series{}, err
	}
	return analytics.DailyTrend(analytics.FilterSales(sales, r)), nil
}

// WeekdayBreakdown returns the per-weekday sales series.
func (s *DashboardService) WeekdayBreakdown(ctx context.Context, r analytics.DateRange) (analytics.Series, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return analytics.Series{}, err
	}
	return analytics.WeekdayBreakdown(analytics.FilterSales(sales, r)), nil
}

// SalesByOperator splits sales by operator.
func (s *DashboardService) SalesByOperator(ctx context.Context, r analytics.DateRange) ([]analytics.OperatorRank, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SalesByOperator(analytics.FilterSales(sales, r)), nil
}

// TopClients ranks clients by purchase volume.
func (s *DashboardService) TopClients(ctx context.Context, r analytics.DateRange, limit int) ([]analytics.ClientRank, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopClients(analytics.FilterSales(sales, r), limit), nil
}

// PurchasesResponse is the purchases endpoint payload.
type PurchasesResponse struct {
	Data  []analytics.ProductPurchases `json:"data"`
	Total float64                      `json:"total"`
}

// Purchases breaks purchases down by product.
func (s *DashboardService) Purchases(ctx context.Context, r analytics.DateRange) (PurchasesResponse, error) {
	purchases, err := s.loadPurchases(ctx)
	if err != nil {
		return PurchasesResponse{}, err
	}
	byProduct, total := analytics.PurchasesBreakdown(analytics.FilterPurchases(purchases, r))
	return PurchasesResponse{Data: byProduct, Total: total}, nil
}

// Receivables lists outstanding credit accounts over the full credit book.
func (s *DashboardService) Receivables(ctx context.Context) (analytics.ReceivablesResult, error) {
	credito, err := s.loadCredito(ctx)
	if err != nil {
		return analytics.ReceivablesResult{}, err
	}
	return analytics.Receivables(credito, s.now()), nil
}

// ExpensesResponse is the expenses endpoint payload.
type ExpensesResponse struct {
	Total     float64                 `json:"total"`
	NumGastos int                     `json:"num_gastos"`
	PorTipo   []analytics.ExpenseType `json:"por_tipo"`
}

// Expenses breaks expenses down by type.
func (s *DashboardService) Expenses(ctx context.Context, r analytics.DateRange) (ExpensesResponse, error) {
	expenses, err := s.loadExpenses(ctx)
	if err != nil {
		return ExpensesResponse{}, err
	}
	filtered := analytics.FilterExpenses(expenses, r)
	total, byType := analytics.ExpensesBreakdown(filtered)
	return ExpensesResponse{Total: total, NumGastos: len(filtered), PorTipo: byType}, nil
}

// ProductStock is one product's current level.
type ProductStock struct {
	Kg       float64 `json:"kg,omitempty"`
	Cajas    float64 `json:"cajas,omitempty"`
	Producto string  `json:"producto"`
}

// StockResponse is the stock endpoint payload. Onion is tracked in kilos,
// egg in boxes; the aggregate kilo figure therefore only covers onion.
type StockResponse struct {
	Cebolla ProductStock `json:"cebolla"`
	Huevo   ProductStock `json:"huevo"`
	TotalKg float64      `json:"total_kg"`
}

// Stock reads the current warehouse levels, one snapshot per product.
func (s *DashboardService) Stock(ctx context.Context) (StockResponse, error) {
	cebolla, err := s.loadStock(ctx, dataset.StockCebolla)
	if err != nil {
		return StockResponse{}, err
	}
	huevo, err := s.loadStock(ctx, dataset.StockHuevo)
	if err != nil {
		return StockResponse{}, err
	}

	kg := analytics.LastReading(cebolla)
	return StockResponse{
		Cebolla: ProductStock{Kg: kg, Producto: records.ProductoCebolla},
		Huevo:   ProductStock{Cajas: analytics.LastReading(huevo), Producto: records.ProductoHuevo},
		TotalKg: kg,
	}, nil
}

// CashStatus returns the register-session snapshot. A load failure degrades
// to the empty session shape with the error embedded instead of a 5xx, so
// the dashboard keeps rendering.
func (s *DashboardService) CashStatus(ctx context.Context, until *time.Time) analytics.CashSessionResult {
	rows, err := s.loadCajas(ctx)
	if err != nil {
		s.logger.Warn("cash status unavailable", slog.String("error", err.Error()))
		result := analytics.EmptyCashSession()
		result.Error = err.Error()
		return result
	}
	return analytics.CashSession(rows, until)
}

// AverageTicket computes mean ticket sizes.
func (s *DashboardService) AverageTicket(ctx context.Context, r analytics.DateRange) (analytics.AverageTicketResult, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return analytics.AverageTicketResult{}, err
	}
	return analytics.AverageTicket(analytics.FilterSales(sales, r)), nil
}

// CollectionRate computes the collected share of the full credit book.
func (s *DashboardService) CollectionRate(ctx context.Context) (analytics.CollectionRateResult, error) {
	credito, err := s.loadCredito(ctx)
	if err != nil {
		return analytics.CollectionRateResult{}, err
	}
	return analytics.CollectionRate(credito), nil
}

// MonthlyComparison compares current month-to-date sales with the previous
// month.
func (s *DashboardService) MonthlyComparison(ctx context.Context) (analytics.MonthlyComparisonResult, error) {
	sales, err := s.loadSales(ctx)
	if err != nil {
		return analytics.MonthlyComparisonResult{}, err
	}
	return analytics.MonthlyComparison(sales, s.now()), nil
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status     string                 `json:"status"`
	Version    string                 `json:"version"`
	DataSource map[string]interface{} `json:"data_source"`
}

// Health reports the API status and the table source's self-description.
func (s *DashboardService) Health(ctx context.Context) HealthResponse {
	return HealthResponse{
		Status:     "healthy",
		Version:    Version,
		DataSource: s.source.Status(ctx),
	}
}

// SheetDebug describes one sales sheet for the debug endpoint.
type SheetDebug struct {
	TotalRegistros int      `json:"total_registros"`
	EjemploIDs     []string `json:"ejemplo_ids"`
	Columnas       []string `json:"columnas"`
}

// DebugVentas is the debug endpoint payload.
type DebugVentas struct {
	VentasContado  SheetDebug `json:"ventas_contado"`
	VentasCredito  SheetDebug `json:"ventas_credito"`
	TotalCombinado int        `json:"total_combinado"`
	Nota           string     `json:"nota"`
}

// Debug reports row counts and sample identifiers per sales sheet so the
// retained-row filters can be checked against a manual count in Excel.
func (s *DashboardService) Debug(ctx context.Context) (DebugVentas, error) {
	contado, err := s.loadContado(ctx)
	if err != nil {
		return DebugVentas{}, err
	}
	credito, err := s.loadCredito(ctx)
	if err != nil {
		return DebugVentas{}, err
	}
	return DebugVentas{
		VentasContado:  sheetDebug(contado),
		VentasCredito:  sheetDebug(credito),
		TotalCombinado: len(contado) + len(credito),
		Nota:           "Comparar estos números con el conteo manual en Excel",
	}, nil
}

func sheetDebug(sales []records.Sale) SheetDebug {
	d := SheetDebug{
		TotalRegistros: len(sales),
		EjemploIDs:     []string{},
		Columnas:       []string{},
	}
	for i := 0; i < len(sales) && i < 10; i++ {
		d.EjemploIDs = append(d.EjemploIDs, sales[i].ID)
	}
	if len(sales) > 0 {
		d.Columnas = records.SaleColumns
	}
	return d
}
