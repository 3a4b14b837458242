package sales

import "context"

// Repository reads the point-of-sale reporting views. All methods take
// the caller's already-scoped filter.
type Repository interface {
	CountProductSales(ctx context.Context, f Filter) (int64, error)
	ListProductSales(ctx context.Context, f Filter, limit, offset int) ([]ProductSaleRow, error)
	Totals(ctx context.Context, f Filter) (KpiTotals, error)
	DistinctProducts(ctx context.Context, f Filter) (int64, error)
	DistinctTransactions(ctx context.Context, f Filter) (int64, error)
	TopBranch(ctx context.Context, f Filter) (*BranchSales, error)
	SalesByHour(ctx context.Context, f Filter) ([]HourlySale, error)
	TopProducts(ctx context.Context, f Filter, limit int) ([]TopProduct, error)
	SalesByBranch(ctx context.Context, f Filter) ([]BranchSales, error)
}

// TicketRepository reads the per-ticket view.
type TicketRepository interface {
	ListTickets(ctx context.Context, f Filter, limit, offset int) ([]TicketRow, error)
	TicketTotals(ctx context.Context, f Filter) (TicketTotals, error)
	SalesByAgent(ctx context.Context, f Filter) ([]AgentSales, error)
}

// CatalogRepository reads the filter catalogs (branch list, product picker).
type CatalogRepository interface {
	Branches(ctx context.Context) ([]string, error)
	SearchProducts(ctx context.Context, query string, top int) ([]ProductOption, error)
}

// AccessRecorder persists the scope decision taken for a reporting query.
// Recording is best-effort; implementations must not fail the request.
type AccessRecorder interface {
	RecordAccess(ctx context.Context, action string, requested, effective Filter)
}
