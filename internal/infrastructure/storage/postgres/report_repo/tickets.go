package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"ventasapi/internal/core/apperror"
	"ventasapi/internal/domain/sales"
)

const ticketView = "rep_tickets"

// ListTickets returns one page of checkout documents, newest first.
func (r *SalesRepo) ListTickets(ctx context.Context, f sales.Filter, limit, offset int) ([]sales.TicketRow, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.ListTickets")
	defer span.End()

	pred, err := where(f, sales.TicketColumns)
	if err != nil {
		return nil, err
	}

	q := r.builder.
		Select(
			"id_venta",
			"COALESCE(cnombreagente, 'Sin Agente') AS cnombreagente",
			"serie",
			"folio",
			"to_char(fecha, 'YYYY-MM-DD') AS fecha",
			"to_char(hora, 'HH24:MI') AS hora",
			"subtotal",
			"descuento",
			"impuesto",
			"total",
			"COALESCE(fefectivo, 0) AS fefectivo",
			"COALESCE(fdebito, 0) + COALESCE(fcredito, 0) AS tarjeta",
			"COALESCE(fvales, 0) AS fvales",
			"COALESCE(ftrans, 0) AS ftrans",
			"COALESCE(fotro, 0) AS fotro",
			"to_char(fechacancelado, 'YYYY-MM-DD') AS fechacancelado",
			"CASE WHEN fechacancelado IS NOT NULL THEN 'cancelado' ELSE 'cobrado' END AS cancelado",
			"cnombrealmacen",
		).
		From(ticketView).
		Where(pred).
		OrderBy("fecha DESC", "hora DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit)).Offset(uint64(offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	rows := []sales.TicketRow{}
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list tickets: %w", err))
	}
	return rows, nil
}

// TicketTotals aggregates the whole filtered set. Canceled tickets stay
// in the counts but contribute nothing to revenue.
func (r *SalesRepo) TicketTotals(ctx context.Context, f sales.Filter) (sales.TicketTotals, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.TicketTotals")
	defer span.End()

	pred, err := where(f, sales.TicketColumns)
	if err != nil {
		return sales.TicketTotals{}, err
	}
	query, args, err := r.builder.
		Select(
			"COALESCE(SUM(CASE WHEN fechacancelado IS NULL THEN total ELSE 0 END), 0) AS total_vendido",
			"COUNT(*) AS total_tickets",
			"COUNT(fechacancelado) AS total_cancelados",
		).
		From(ticketView).
		Where(pred).
		ToSql()
	if err != nil {
		return sales.TicketTotals{}, apperror.NewInternal(err)
	}

	var totals sales.TicketTotals
	if err := pgxscan.Get(ctx, r.db, &totals, query, args...); err != nil {
		return sales.TicketTotals{}, apperror.NewDatabase(fmt.Errorf("ticket totals: %w", err))
	}
	return totals, nil
}

// SalesByAgent groups settled tickets by sales agent, best first.
func (r *SalesRepo) SalesByAgent(ctx context.Context, f sales.Filter) ([]sales.AgentSales, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.SalesByAgent")
	defer span.End()

	pred, err := where(f, sales.TicketColumns)
	if err != nil {
		return nil, err
	}
	query, args, err := r.builder.
		Select(
			"COALESCE(cnombreagente, 'Sin Agente') AS agente",
			"SUM(total) AS total",
			"COUNT(*) AS cantidad_tickets",
		).
		From(ticketView).
		Where(pred).
		Where("fechacancelado IS NULL").
		GroupBy("COALESCE(cnombreagente, 'Sin Agente')").
		OrderBy("total DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	items := []sales.AgentSales{}
	if err := pgxscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("sales by agent: %w", err))
	}
	return items, nil
}
