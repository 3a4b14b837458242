package dto

import (
	"time"

	"ventasapi/internal/domain/sales"
)

// FiltrosQuery carries the shared report filters. Dates use YYYY-MM-DD.
// Any year is accepted; a year of 0 means "not set".
type FiltrosQuery struct {
	Sucursal   string     `form:"sucursal"`
	Producto   string     `form:"producto"`
	FechaDesde *time.Time `form:"fecha_desde" time_format:"2006-01-02"`
	FechaHasta *time.Time `form:"fecha_hasta" time_format:"2006-01-02"`
	Mes        int        `form:"mes" binding:"omitempty,min=1,max=12"`
	Anio       int        `form:"anio" binding:"omitempty,min=1"`
}

// ToFilter converts the query to the domain filter. An empty date value
// (a cleared date input) binds to a zero time; it is treated as absent
// so it cannot shadow the mes and anio filters.
func (q FiltrosQuery) ToFilter() sales.Filter {
	return sales.Filter{
		Branch:   q.Sucursal,
		Product:  q.Producto,
		DateFrom: presentDate(q.FechaDesde),
		DateTo:   presentDate(q.FechaHasta),
		Month:    q.Mes,
		Year:     q.Anio,
	}
}

func presentDate(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}

// VentasRowsQuery adds pagination and the execute guard to the filters.
type VentasRowsQuery struct {
	FiltrosQuery
	Page     int  `form:"page" binding:"omitempty,min=1"`
	PageSize int  `form:"page_size" binding:"omitempty,min=1,max=500"`
	Ejecutar bool `form:"ejecutar"`
}

// TicketsQuery adds the week filter and pagination to the shared filters.
type TicketsQuery struct {
	FiltrosQuery
	Semana   int `form:"semana" binding:"omitempty,min=1,max=53"`
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// ToFilter converts the query to the domain filter.
func (q TicketsQuery) ToFilter() sales.Filter {
	f := q.FiltrosQuery.ToFilter()
	f.Week = q.Semana
	return f
}

// AgentesQuery is the per-agent breakdown filter set.
type AgentesQuery struct {
	FiltrosQuery
	Semana int `form:"semana" binding:"omitempty,min=1,max=53"`
}

// ToFilter converts the query to the domain filter.
func (q AgentesQuery) ToFilter() sales.Filter {
	f := q.FiltrosQuery.ToFilter()
	f.Week = q.Semana
	return f
}

// ProductosQuery is the product picker lookup.
type ProductosQuery struct {
	Q   string `form:"q"`
	Top int    `form:"top" binding:"omitempty,min=1,max=200"`
}
