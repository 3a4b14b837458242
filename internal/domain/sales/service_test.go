package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "ventasapi/internal/core/context"
)

type stubRepo struct {
	count        int64
	rows         []ProductSaleRow
	totals       KpiTotals
	products     int64
	transactions int64
	topBranch    *BranchSales
	byHour       []HourlySale
	topProducts  []TopProduct
	byBranch     []BranchSales
	ticketRows   []TicketRow
	ticketTotals TicketTotals
	byAgent      []AgentSales

	lastFilter Filter
	lastLimit  int
	lastOffset int
	listCalls  int
	countCalls int
}

func (r *stubRepo) CountProductSales(_ context.Context, f Filter) (int64, error) {
	r.countCalls++
	r.lastFilter = f
	return r.count, nil
}

func (r *stubRepo) ListProductSales(_ context.Context, f Filter, limit, offset int) ([]ProductSaleRow, error) {
	r.listCalls++
	r.lastFilter = f
	r.lastLimit = limit
	r.lastOffset = offset
	return r.rows, nil
}

func (r *stubRepo) Totals(_ context.Context, f Filter) (KpiTotals, error) {
	r.lastFilter = f
	return r.totals, nil
}

func (r *stubRepo) DistinctProducts(context.Context, Filter) (int64, error) {
	return r.products, nil
}

func (r *stubRepo) DistinctTransactions(context.Context, Filter) (int64, error) {
	return r.transactions, nil
}

func (r *stubRepo) TopBranch(context.Context, Filter) (*BranchSales, error) {
	return r.topBranch, nil
}

func (r *stubRepo) SalesByHour(context.Context, Filter) ([]HourlySale, error) {
	return r.byHour, nil
}

func (r *stubRepo) TopProducts(_ context.Context, _ Filter, limit int) ([]TopProduct, error) {
	r.lastLimit = limit
	return r.topProducts, nil
}

func (r *stubRepo) SalesByBranch(_ context.Context, f Filter) ([]BranchSales, error) {
	r.lastFilter = f
	return r.byBranch, nil
}

func (r *stubRepo) ListTickets(_ context.Context, f Filter, limit, offset int) ([]TicketRow, error) {
	r.lastFilter = f
	r.lastLimit = limit
	r.lastOffset = offset
	return r.ticketRows, nil
}

func (r *stubRepo) TicketTotals(_ context.Context, f Filter) (TicketTotals, error) {
	r.lastFilter = f
	return r.ticketTotals, nil
}

func (r *stubRepo) SalesByAgent(_ context.Context, f Filter) ([]AgentSales, error) {
	r.lastFilter = f
	return r.byAgent, nil
}

type stubCatalog struct {
	branches []string
	options  []ProductOption
	lastTop  int
}

func (c *stubCatalog) Branches(context.Context) ([]string, error) {
	return c.branches, nil
}

func (c *stubCatalog) SearchProducts(_ context.Context, _ string, top int) ([]ProductOption, error) {
	c.lastTop = top
	return c.options, nil
}

type recordedAccess struct {
	action    string
	requested Filter
	effective Filter
}

type stubRecorder struct {
	entries []recordedAccess
}

func (a *stubRecorder) RecordAccess(_ context.Context, action string, requested, effective Filter) {
	a.entries = append(a.entries, recordedAccess{action, requested, effective})
}

func adminCtx() context.Context {
	return appctx.WithUser(context.Background(),
		&appctx.UserContext{UserID: 1, Username: "admin", Role: appctx.RoleAdmin, Branch: appctx.BranchAll})
}

func restrictedCtx(branch string) context.Context {
	return appctx.WithUser(context.Background(), restrictedUser(branch))
}

func TestListProductSales_ExecuteGuard(t *testing.T) {
	repo := &stubRepo{count: 99}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	page, err := svc.ListProductSales(adminCtx(), ListParams{Execute: false})
	require.NoError(t, err)

	assert.Equal(t, int64(0), page.TotalItems)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Zero(t, repo.countCalls, "guarded request must not reach the data source")
	assert.Zero(t, repo.listCalls)
}

func TestListProductSales_Pagination(t *testing.T) {
	repo := &stubRepo{count: 120, rows: []ProductSaleRow{{ProductCode: "A-1"}}}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	page, err := svc.ListProductSales(adminCtx(), ListParams{Page: 3, PageSize: 40, Execute: true})
	require.NoError(t, err)

	assert.Equal(t, int64(120), page.TotalItems)
	assert.Equal(t, 40, repo.lastLimit)
	assert.Equal(t, 80, repo.lastOffset)
	assert.Len(t, page.Items, 1)
}

func TestListProductSales_PageSizeClamped(t *testing.T) {
	repo := &stubRepo{count: 1}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	page, err := svc.ListProductSales(adminCtx(), ListParams{Page: -2, PageSize: 9999, Execute: true})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxPageSize, page.PageSize)
	assert.Equal(t, MaxPageSize, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)
}

func TestListProductSales_EmptyResultSkipsListing(t *testing.T) {
	repo := &stubRepo{count: 0}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	page, err := svc.ListProductSales(adminCtx(), ListParams{Execute: true})
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, repo.listCalls)
}

func TestListProductSales_RestrictedBranchOverridden(t *testing.T) {
	repo := &stubRepo{count: 0}
	audit := &stubRecorder{}
	svc := NewService(repo, repo, &stubCatalog{}, audit)

	_, err := svc.ListProductSales(restrictedCtx("Centro"),
		ListParams{Filter: Filter{Branch: "Norte"}, Execute: true})
	require.NoError(t, err)

	assert.Equal(t, "Centro", repo.lastFilter.Branch)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "Norte", audit.entries[0].requested.Branch)
	assert.Equal(t, "Centro", audit.entries[0].effective.Branch)
}

func TestKpis_TicketAverageUsesTransactions(t *testing.T) {
	repo := &stubRepo{
		totals:       KpiTotals{Revenue: decimal.NewFromInt(600), Units: decimal.NewFromInt(5)},
		products:     4,
		transactions: 3,
		topBranch:    &BranchSales{Branch: "Centro", Total: 350},
	}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	k, err := svc.Kpis(adminCtx(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 600.0, k.TotalRevenue)
	assert.Equal(t, 5.0, k.UnitsSold)
	assert.Equal(t, int64(4), k.DistinctProducts)
	assert.Equal(t, 200.0, k.AverageTicket, "average divides by distinct transactions, not line rows")
	require.NotNil(t, k.TopBranch)
	assert.Equal(t, "Centro", *k.TopBranch)
	require.NotNil(t, k.TopBranchTotal)
	assert.Equal(t, 350.0, *k.TopBranchTotal)
}

func TestKpis_NoTransactions(t *testing.T) {
	repo := &stubRepo{totals: KpiTotals{}}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	k, err := svc.Kpis(adminCtx(), Filter{})
	require.NoError(t, err)

	assert.Zero(t, k.AverageTicket)
	assert.Nil(t, k.TopBranch)
	assert.Nil(t, k.TopBranchTotal)
}

func TestSalesByBranch_DefaultsToCurrentMonth(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, repo, &stubCatalog{}, nil)
	svc.now = func() time.Time { return time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC) }

	_, err := svc.SalesByBranch(adminCtx(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 8, repo.lastFilter.Month)
	assert.Equal(t, 2025, repo.lastFilter.Year)
}

func TestSalesByBranch_RestrictedUserSeesOwnRowOnly(t *testing.T) {
	repo := &stubRepo{byBranch: []BranchSales{
		{Branch: "Centro", Total: 100},
		{Branch: "Norte", Total: 200},
	}}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	got, err := svc.SalesByBranch(restrictedCtx("Norte"), Filter{Month: 1, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, []BranchSales{{Branch: "Norte", Total: 200}}, got)
}

func TestBranches_Narrowed(t *testing.T) {
	catalog := &stubCatalog{branches: []string{"Centro", "Norte"}}
	svc := NewService(&stubRepo{}, &stubRepo{}, catalog, nil)

	got, err := svc.Branches(restrictedCtx("Centro"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Centro"}, got)
}

func TestSearchProducts_TopClamped(t *testing.T) {
	catalog := &stubCatalog{}
	svc := NewService(&stubRepo{}, &stubRepo{}, catalog, nil)
	ctx := adminCtx()

	_, err := svc.SearchProducts(ctx, "coca", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSearchTop, catalog.lastTop)

	_, err = svc.SearchProducts(ctx, "coca", 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxSearchTop, catalog.lastTop)
}

func TestListTickets(t *testing.T) {
	repo := &stubRepo{
		ticketRows: []TicketRow{{SaleID: 1, AgentName: "Ana", Total: 100}},
		ticketTotals: TicketTotals{
			Revenue:  decimal.NewFromInt(900),
			Tickets:  4,
			Canceled: 1,
		},
	}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	page, err := svc.ListTickets(adminCtx(), TicketListParams{Page: 2, PageSize: 25})
	require.NoError(t, err)

	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 25, page.Size)
	assert.Equal(t, 25, repo.lastLimit)
	assert.Equal(t, 25, repo.lastOffset)
	require.Len(t, page.Data, 1)

	assert.Equal(t, 900.0, page.Kpis.TotalRevenue)
	assert.Equal(t, int64(4), page.Kpis.TotalTickets)
	assert.Equal(t, int64(1), page.Kpis.TotalCanceled)
	assert.Equal(t, 225.0, page.Kpis.AverageTicket)
}

func TestListTickets_NoTickets(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	page, err := svc.ListTickets(adminCtx(), TicketListParams{})
	require.NoError(t, err)

	assert.Zero(t, page.Total)
	assert.Zero(t, page.Kpis.AverageTicket)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.Size)
}

func TestListTickets_RestrictedBranchOverridden(t *testing.T) {
	repo := &stubRepo{}
	audit := &stubRecorder{}
	svc := NewService(repo, repo, &stubCatalog{}, audit)

	_, err := svc.ListTickets(restrictedCtx("Centro"),
		TicketListParams{Filter: Filter{Branch: "Norte", Week: 35, Year: 2025}})
	require.NoError(t, err)

	assert.Equal(t, "Centro", repo.lastFilter.Branch)
	assert.Equal(t, 35, repo.lastFilter.Week)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "tickets_rows", audit.entries[0].action)
}

func TestSalesByAgent(t *testing.T) {
	repo := &stubRepo{byAgent: []AgentSales{{Agent: "Ana", Total: 500, Tickets: 3}}}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	got, err := svc.SalesByAgent(restrictedCtx("Sur"), Filter{Branch: "Norte"})
	require.NoError(t, err)

	assert.Equal(t, "Sur", repo.lastFilter.Branch)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Agent)
}

func TestExport_LabelsDescribeEffectiveFilter(t *testing.T) {
	repo := &stubRepo{rows: []ProductSaleRow{{ProductCode: "A-1"}}}
	svc := NewService(repo, repo, &stubCatalog{}, nil)

	out, err := svc.Export(restrictedCtx("Centro"), Filter{Branch: "Norte", Month: 12, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, "CENTRO", out.BranchLabel)
	assert.Equal(t, "DICIEMBRE 2025", out.PeriodLabel)
	assert.Equal(t, 0, repo.lastLimit, "export is unpaginated")
	assert.Len(t, out.Rows, 1)
}
