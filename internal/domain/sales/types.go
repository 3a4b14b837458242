// Package sales provides the product-sales reporting domain: filter
// compilation, branch scoping and the read operations built on them.
package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter is one request's optional filter set. Zero values mean "not set";
// the compiler resolves overlapping date inputs, see Compile.
type Filter struct {
	Branch   string     `json:"sucursal,omitempty"`
	Product  string     `json:"producto,omitempty"`
	DateFrom *time.Time `json:"fecha_desde,omitempty"`
	DateTo   *time.Time `json:"fecha_hasta,omitempty"`
	Week     int        `json:"semana,omitempty"`
	Month    int        `json:"mes,omitempty"`
	Year     int        `json:"anio,omitempty"`
}

// Normalize trims string filters and drops blank ones. A branch equal to
// the unrestricted sentinel is also dropped: it means "no branch filter".
// Zero-value date pointers count as absent too, so a cleared date input
// can never shadow the month and year filters.
func (f Filter) Normalize() Filter {
	f.Branch = strings.TrimSpace(f.Branch)
	f.Product = strings.TrimSpace(f.Product)
	if strings.EqualFold(f.Branch, branchAllSentinel) {
		f.Branch = ""
	}
	if f.DateFrom != nil && f.DateFrom.IsZero() {
		f.DateFrom = nil
	}
	if f.DateTo != nil && f.DateTo.IsZero() {
		f.DateTo = nil
	}
	return f
}

// ListParams carries pagination and the execute guard for the row listing.
type ListParams struct {
	Filter
	Page     int
	PageSize int
	// Execute gates the listing: false returns an empty page without
	// touching the data source (the UI's initial-load guard).
	Execute bool
}

// Listing page sizes.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Product search bounds.
const (
	DefaultSearchTop = 50
	MaxSearchTop     = 200
)

// TopProductsLimit is the fixed size of the product ranking.
const TopProductsLimit = 10

// ProductSaleRow is one product line of the reporting view. Read-only.
type ProductSaleRow struct {
	Fecha       string  `db:"fecha" json:"fecha"`
	Hora        string  `db:"hora" json:"hora"`
	Mes         string  `db:"mes" json:"Mes"`
	ProductID   int64   `db:"id_pro" json:"id_pro"`
	ProductCode string  `db:"ccodigoproducto" json:"CCODIGOPRODUCTO"`
	ProductName string  `db:"cnombreproducto" json:"CNOMBREPRODUCTO"`
	Quantity    float64 `db:"cantidad" json:"cantidad"`
	UnitName    *string `db:"cnombreunidad" json:"CNOMBREUNIDAD"`
	Price       float64 `db:"precio" json:"precio"`
	Amount      float64 `db:"importe" json:"Importe"`
	Discount    float64 `db:"descuento" json:"descuento"`
	Tax         float64 `db:"impuesto" json:"impuesto"`
	Total       float64 `db:"total" json:"Total"`
	BranchName  *string `db:"cnombrealmacen" json:"CNOMBREALMACEN"`
}

// ProductSalesPage is the paginated listing response.
type ProductSalesPage struct {
	TotalItems int64            `json:"total_items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Items      []ProductSaleRow `json:"items"`
}

// KpiTotals are the raw aggregates a KPI request needs. Money stays in
// decimal until the response is shaped.
type KpiTotals struct {
	Revenue decimal.Decimal `db:"total_vendido"`
	Units   decimal.Decimal `db:"unidades_vendidas"`
}

// Kpis is the KPI response shape.
type Kpis struct {
	TotalRevenue     float64  `json:"total_vendido"`
	UnitsSold        float64  `json:"unidades_vendidas"`
	DistinctProducts int64    `json:"productos_distintos"`
	AverageTicket    float64  `json:"ticket_promedio"`
	TopBranch        *string  `json:"sucursal_top"`
	TopBranchTotal   *float64 `json:"sucursal_top_total"`
}

// HourlySale is one hour-of-day bucket.
type HourlySale struct {
	Hour         int     `db:"hora" json:"hora"`
	Total        float64 `db:"total_vendido" json:"total_vendido"`
	Transactions int64   `db:"transacciones" json:"transacciones"`
}

// TopProduct is one row of the revenue ranking.
type TopProduct struct {
	Code     string  `db:"codigo" json:"codigo"`
	Name     string  `db:"producto" json:"producto"`
	Total    float64 `db:"total_vendido" json:"total_vendido"`
	Quantity float64 `db:"cantidad_vendida" json:"cantidad_vendida"`
}

// BranchSales is one branch's total in a breakdown.
type BranchSales struct {
	Branch string  `db:"sucursal" json:"sucursal"`
	Total  float64 `db:"total_vendido" json:"total_vendido"`
}

// ProductOption is a catalog entry for the product picker.
type ProductOption struct {
	ID   int64  `db:"id_pro" json:"id_pro"`
	Code string `db:"codigo" json:"codigo"`
	Name string `db:"nombre" json:"nombre"`
}

// Export is the assembled, unpaginated export: the row set plus the
// header descriptor the tabular renderer needs.
type Export struct {
	Rows        []ProductSaleRow
	BranchLabel string
	PeriodLabel string
}

// TicketListParams carries pagination for the ticket listing.
type TicketListParams struct {
	Filter
	Page     int
	PageSize int
}

// TicketRow is one checkout document with its payment split.
type TicketRow struct {
	SaleID     int64   `db:"id_venta" json:"id_venta"`
	AgentName  string  `db:"cnombreagente" json:"CNOMBREAGENTE"`
	Series     *string `db:"serie" json:"serie"`
	Folio      int64   `db:"folio" json:"folio"`
	Fecha      string  `db:"fecha" json:"fecha"`
	Hora       string  `db:"hora" json:"hora"`
	Subtotal   float64 `db:"subtotal" json:"subtotal"`
	Discount   float64 `db:"descuento" json:"descuento"`
	Tax        float64 `db:"impuesto" json:"impuesto"`
	Total      float64 `db:"total" json:"total"`
	Cash       float64 `db:"fefectivo" json:"fEfectivo"`
	Card       float64 `db:"tarjeta" json:"Tarjeta"`
	Vouchers   float64 `db:"fvales" json:"fVales"`
	Transfer   float64 `db:"ftrans" json:"fTrans"`
	Other      float64 `db:"fotro" json:"fOtro"`
	CanceledAt *string `db:"fechacancelado" json:"fechaCancelado"`
	Status     string  `db:"cancelado" json:"cancelado"`
	BranchName *string `db:"cnombrealmacen" json:"CNOMBREALMACEN"`
}

// TicketTotals are the raw ticket aggregates. Revenue counts settled
// tickets only; canceled ones contribute to the counts alone.
type TicketTotals struct {
	Revenue  decimal.Decimal `db:"total_vendido"`
	Tickets  int64           `db:"total_tickets"`
	Canceled int64           `db:"total_cancelados"`
}

// TicketKpis is the ticket KPI response shape.
type TicketKpis struct {
	TotalRevenue  float64 `json:"total_vendido"`
	TotalTickets  int64   `json:"total_tickets"`
	TotalCanceled int64   `json:"total_cancelados"`
	AverageTicket float64 `json:"promedio_ticket"`
}

// TicketsPage is the paginated ticket listing with its KPI block.
type TicketsPage struct {
	Data []TicketRow `json:"data"`
	// Total mirrors the KPI ticket count across the whole filtered set.
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Kpis  TicketKpis `json:"kpis"`
}

// AgentSales is one sales agent's settled total.
type AgentSales struct {
	Agent   string  `db:"agente" json:"agente"`
	Total   float64 `db:"total" json:"total"`
	Tickets int64   `db:"cantidad_tickets" json:"cantidad_tickets"`
}
