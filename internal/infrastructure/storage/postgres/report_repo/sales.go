// Package report_repo reads the point-of-sale reporting views.
package report_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"ventasapi/internal/core/apperror"
	"ventasapi/internal/domain/sales"
)

var tracer = otel.Tracer("ventasapi/report_repo")

// Reporting views exposed by the point-of-sale database.
const (
	detailView  = "rep_ventas_producto"
	summaryView = "rep_ventas_sucursal"
)

// SalesRepo implements sales.Repository against the reporting views.
// All access is read-only.
type SalesRepo struct {
	db      *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewSalesRepo creates a sales repository on the reporting pool.
func NewSalesRepo(db *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// where compiles f against cols into a squirrel predicate. The compiled
// fragment keeps `?` placeholders; the builder rewrites them to the
// dollar format together with its own.
func where(f sales.Filter, cols sales.Columns) (squirrel.Sqlizer, error) {
	pred, args, err := sales.Compile(f, cols)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("compile filter: %w", err))
	}
	return squirrel.Expr(pred, args...), nil
}

func (r *SalesRepo) CountProductSales(ctx context.Context, f sales.Filter) (int64, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.CountProductSales")
	defer span.End()

	pred, err := where(f, sales.DetailColumns)
	if err != nil {
		return 0, err
	}
	query, args, err := r.builder.
		Select("COUNT(*)").
		From(detailView).
		Where(pred).
		ToSql()
	if err != nil {
		return 0, apperror.NewInternal(err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.db, &count, query, args...); err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("count product sales: %w", err))
	}
	return count, nil
}

func (r *SalesRepo) ListProductSales(ctx context.Context, f sales.Filter, limit, offset int) ([]sales.ProductSaleRow, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.ListProductSales")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	pred, err := where(f, sales.DetailColumns)
	if err != nil {
		return nil, err
	}

	q := r.builder.
		Select(
			"to_char(fecha, 'YYYY-MM-DD') AS fecha",
			"to_char(hora, 'HH24:MI') AS hora",
			"mes",
			"id_pro",
			"ccodigoproducto",
			"cnombreproducto",
			"cantidad",
			"cnombreunidad",
			"precio",
			"importe",
			"descuento",
			"impuesto",
			"total",
			"cnombrealmacen",
		).
		From(detailView).
		Where(pred).
		OrderBy("fecha DESC", "hora DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit)).Offset(uint64(offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	rows := []sales.ProductSaleRow{}
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list product sales: %w", err))
	}
	return rows, nil
}

func (r *SalesRepo) Totals(ctx context.Context, f sales.Filter) (sales.KpiTotals, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.Totals")
	defer span.End()

	pred, err := where(f, sales.DetailColumns)
	if err != nil {
		return sales.KpiTotals{}, err
	}
	query, args, err := r.builder.
		Select(
			"COALESCE(SUM(total), 0) AS total_vendido",
			"COALESCE(SUM(cantidad), 0) AS unidades_vendidas",
		).
		From(detailView).
		Where(pred).
		ToSql()
	if err != nil {
		return sales.KpiTotals{}, apperror.NewInternal(err)
	}

	var totals sales.KpiTotals
	if err := pgxscan.Get(ctx, r.db, &totals, query, args...); err != nil {
		return sales.KpiTotals{}, apperror.NewDatabase(fmt.Errorf("sales totals: %w", err))
	}
	return totals, nil
}

func (r *SalesRepo) DistinctProducts(ctx context.Context, f sales.Filter) (int64, error) {
	return r.distinctCount(ctx, "SalesRepo.DistinctProducts", "id_pro", f)
}

// DistinctTransactions counts sale documents, not product lines. The
// ticket average divides by this.
func (r *SalesRepo) DistinctTransactions(ctx context.Context, f sales.Filter) (int64, error) {
	return r.distinctCount(ctx, "SalesRepo.DistinctTransactions", "id_venta", f)
}

func (r *SalesRepo) distinctCount(ctx context.Context, spanName, column string, f sales.Filter) (int64, error) {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	pred, err := where(f, sales.DetailColumns)
	if err != nil {
		return 0, err
	}
	query, args, err := r.builder.
		Select("COUNT(DISTINCT " + column + ")").
		From(detailView).
		Where(pred).
		ToSql()
	if err != nil {
		return 0, apperror.NewInternal(err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.db, &count, query, args...); err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("distinct %s: %w", column, err))
	}
	return count, nil
}

func (r *SalesRepo) TopBranch(ctx context.Context, f sales.Filter) (*sales.BranchSales, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.TopBranch")
	defer span.End()

	pred, err := where(f, sales.DetailColumns)
	if err != nil {
		return nil, err
	}
	query, args, err := r.builder.
		Select(
			"BTRIM(cnombrealmacen) AS sucursal",
			"SUM(total) AS total_vendido",
		).
		From(detailView).
		Where(pred).
		Where("cnombrealmacen IS NOT NULL").
		GroupBy("BTRIM(cnombrealmacen)").
		OrderBy("total_vendido DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var top sales.BranchSales
	if err := pgxscan.Get(ctx, r.db, &top, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabase(fmt.Errorf("top branch: %w", err))
	}
	return &top, nil
}

func (r *SalesRepo) SalesByHour(ctx context.Context, f sales.Filter) ([]sales.HourlySale, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.SalesByHour")
	defer span.End()

	pred, err := where(f, sales.DetailColumns)
	if err != nil {
		return nil, err
	}
	query, args, err := r.builder.
		Select(
			"EXTRACT(HOUR FROM hora)::int AS hora",
			"COALESCE(SUM(total), 0) AS total_vendido",
			"COUNT(DISTINCT id_venta) AS transacciones",
		).
		From(detailView).
		Where(pred).
		GroupBy("EXTRACT(HOUR FROM hora)").
		OrderBy("hora").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	items := []sales.HourlySale{}
	if err := pgxscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("sales by hour: %w", err))
	}
	return items, nil
}

func (r *SalesRepo) TopProducts(ctx context.Context, f sales.Filter, limit int) ([]sales.TopProduct, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.TopProducts")
	defer span.End()

	pred, err := where(f, sales.DetailColumns)
	if err != nil {
		return nil, err
	}
	query, args, err := r.builder.
		Select(
			"ccodigoproducto AS codigo",
			"cnombreproducto AS producto",
			"SUM(total) AS total_vendido",
			"SUM(cantidad) AS cantidad_vendida",
		).
		From(detailView).
		Where(pred).
		GroupBy("ccodigoproducto", "cnombreproducto").
		OrderBy("total_vendido DESC", "codigo ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	items := []sales.TopProduct{}
	if err := pgxscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("top products: %w", err))
	}
	return items, nil
}

func (r *SalesRepo) SalesByBranch(ctx context.Context, f sales.Filter) ([]sales.BranchSales, error) {
	ctx, span := tracer.Start(ctx, "SalesRepo.SalesByBranch")
	defer span.End()

	pred, err := where(f, sales.SummaryColumns)
	if err != nil {
		return nil, err
	}
	query, args, err := r.builder.
		Select(
			"BTRIM(sucursal) AS sucursal",
			"COALESCE(SUM(total), 0) AS total_vendido",
		).
		From(summaryView).
		Where(pred).
		GroupBy("BTRIM(sucursal)").
		OrderBy("total_vendido DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	items := []sales.BranchSales{}
	if err := pgxscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("sales by branch: %w", err))
	}
	return items, nil
}
