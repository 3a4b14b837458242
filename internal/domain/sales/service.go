package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	appctx "ventasapi/internal/core/context"
)

// Service implements the reporting use cases. Every branch-sensitive
// operation resolves the effective branch through ApplyBranchScope
// before anything reaches a repository.
type Service struct {
	repo    Repository
	tickets TicketRepository
	catalog CatalogRepository
	audit   AccessRecorder
	now     func() time.Time
}

// NewService creates the reporting service. audit may be nil.
func NewService(repo Repository, tickets TicketRepository, catalog CatalogRepository, audit AccessRecorder) *Service {
	return &Service{
		repo:    repo,
		tickets: tickets,
		catalog: catalog,
		audit:   audit,
		now:     time.Now,
	}
}

// scope applies the branch gate and records the decision.
func (s *Service) scope(ctx context.Context, action string, f Filter) Filter {
	effective := f
	effective.Branch = ApplyBranchScope(f.Branch, appctx.GetUser(ctx))
	if s.audit != nil {
		s.audit.RecordAccess(ctx, action, f, effective)
	}
	return effective
}

// ListProductSales returns one page of the product sales listing. When
// params.Execute is false it answers an empty first page without
// touching the data source.
func (s *Service) ListProductSales(ctx context.Context, params ListParams) (*ProductSalesPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	size := params.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	if !params.Execute {
		return &ProductSalesPage{Page: page, PageSize: size, Items: []ProductSaleRow{}}, nil
	}

	f := s.scope(ctx, "ventas_producto_rows", params.Filter)

	total, err := s.repo.CountProductSales(ctx, f)
	if err != nil {
		return nil, err
	}
	items := []ProductSaleRow{}
	if total > 0 {
		items, err = s.repo.ListProductSales(ctx, f, size, (page-1)*size)
		if err != nil {
			return nil, err
		}
	}
	return &ProductSalesPage{TotalItems: total, Page: page, PageSize: size, Items: items}, nil
}

// Kpis computes the dashboard headline numbers for the filtered period.
func (s *Service) Kpis(ctx context.Context, filter Filter) (*Kpis, error) {
	f := s.scope(ctx, "dashboard_kpis", filter)

	totals, err := s.repo.Totals(ctx, f)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.DistinctProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.DistinctTransactions(ctx, f)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopBranch(ctx, f)
	if err != nil {
		return nil, err
	}

	k := &Kpis{
		TotalRevenue:     totals.Revenue.Round(2).InexactFloat64(),
		UnitsSold:        totals.Units.Round(2).InexactFloat64(),
		DistinctProducts: products,
	}
	if transactions > 0 {
		avg := totals.Revenue.Div(decimal.NewFromInt(transactions))
		k.AverageTicket = avg.Round(2).InexactFloat64()
	}
	if top != nil {
		k.TopBranch = &top.Branch
		k.TopBranchTotal = &top.Total
	}
	return k, nil
}

// SalesByHour returns the hour-of-day breakdown for the filtered period.
func (s *Service) SalesByHour(ctx context.Context, filter Filter) ([]HourlySale, error) {
	f := s.scope(ctx, "dashboard_ventas_por_hora", filter)
	return s.repo.SalesByHour(ctx, f)
}

// TopProducts returns the product revenue ranking for the filtered period.
func (s *Service) TopProducts(ctx context.Context, filter Filter) ([]TopProduct, error) {
	f := s.scope(ctx, "dashboard_top_productos", filter)
	return s.repo.TopProducts(ctx, f, TopProductsLimit)
}

// SalesByBranch returns the per-branch breakdown. Without any period
// filter it defaults to the current month, then drops rows the caller
// is not entitled to see.
func (s *Service) SalesByBranch(ctx context.Context, filter Filter) ([]BranchSales, error) {
	if filter.DateFrom == nil && filter.DateTo == nil && filter.Month == 0 && filter.Year == 0 {
		now := s.now()
		filter.Month = int(now.Month())
		filter.Year = now.Year()
	}
	f := s.scope(ctx, "dashboard_ventas_por_sucursal", filter)

	items, err := s.repo.SalesByBranch(ctx, f)
	if err != nil {
		return nil, err
	}
	return FilterBranchSales(items, appctx.GetUser(ctx)), nil
}

// ListTickets returns one page of the checkout listing together with
// the ticket KPIs computed across the whole filtered set.
func (s *Service) ListTickets(ctx context.Context, params TicketListParams) (*TicketsPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	size := params.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	f := s.scope(ctx, "tickets_rows", params.Filter)

	rows, err := s.tickets.ListTickets(ctx, f, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	totals, err := s.tickets.TicketTotals(ctx, f)
	if err != nil {
		return nil, err
	}

	kpis := TicketKpis{
		TotalRevenue:  totals.Revenue.Round(2).InexactFloat64(),
		TotalTickets:  totals.Tickets,
		TotalCanceled: totals.Canceled,
	}
	if totals.Tickets > 0 {
		avg := totals.Revenue.Div(decimal.NewFromInt(totals.Tickets))
		kpis.AverageTicket = avg.Round(2).InexactFloat64()
	}

	return &TicketsPage{
		Data:  rows,
		Total: totals.Tickets,
		Page:  page,
		Size:  size,
		Kpis:  kpis,
	}, nil
}

// SalesByAgent returns settled totals per sales agent, best first.
func (s *Service) SalesByAgent(ctx context.Context, filter Filter) ([]AgentSales, error) {
	f := s.scope(ctx, "tickets_agentes", filter)
	return s.tickets.SalesByAgent(ctx, f)
}

// Branches lists the branch catalog narrowed to what the caller may query.
func (s *Service) Branches(ctx context.Context) ([]string, error) {
	branches, err := s.catalog.Branches(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBranches(branches, appctx.GetUser(ctx)), nil
}

// SearchProducts looks up product picker options. top is clamped to
// [1, MaxSearchTop] and defaults to DefaultSearchTop.
func (s *Service) SearchProducts(ctx context.Context, query string, top int) ([]ProductOption, error) {
	if top < 1 {
		top = DefaultSearchTop
	}
	if top > MaxSearchTop {
		top = MaxSearchTop
	}
	return s.catalog.SearchProducts(ctx, query, top)
}

// Export assembles the full, unpaginated row set plus the header labels
// for the tabular renderer. Labels describe the effective filter, so a
// pinned user's file names their own branch.
func (s *Service) Export(ctx context.Context, filter Filter) (*Export, error) {
	f := s.scope(ctx, "ventas_producto_export", filter)

	rows, err := s.repo.ListProductSales(ctx, f, 0, 0)
	if err != nil {
		return nil, err
	}
	return &Export{
		Rows:        rows,
		BranchLabel: BranchLabel(f),
		PeriodLabel: PeriodLabel(f),
	}, nil
}
