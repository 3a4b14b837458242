// Package catalog_repo reads the filter catalogs from the reporting views.
package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"ventasapi/internal/core/apperror"
	"ventasapi/internal/domain/sales"
)

var tracer = otel.Tracer("ventasapi/catalog_repo")

const detailView = "rep_ventas_producto"

// CatalogRepo implements sales.CatalogRepository.
type CatalogRepo struct {
	db      *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewCatalogRepo creates a catalog repository on the reporting pool.
func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Branches lists every branch name present in the sales view, trimmed
// and sorted.
func (r *CatalogRepo) Branches(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "CatalogRepo.Branches")
	defer span.End()

	query, args, err := r.builder.
		Select("DISTINCT BTRIM(cnombrealmacen) AS sucursal").
		From(detailView).
		Where("cnombrealmacen IS NOT NULL AND BTRIM(cnombrealmacen) <> ''").
		OrderBy("sucursal").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	branches := []string{}
	if err := pgxscan.Select(ctx, r.db, &branches, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list branches: %w", err))
	}
	return branches, nil
}

// SearchProducts looks up distinct products by code or name fragment.
func (r *CatalogRepo) SearchProducts(ctx context.Context, query string, top int) ([]sales.ProductOption, error) {
	ctx, span := tracer.Start(ctx, "CatalogRepo.SearchProducts")
	defer span.End()

	q := r.builder.
		Select(
			"DISTINCT id_pro",
			"ccodigoproducto AS codigo",
			"cnombreproducto AS nombre",
		).
		From(detailView).
		OrderBy("codigo").
		Limit(uint64(top))

	if term := strings.TrimSpace(query); term != "" {
		pattern := "%" + term + "%"
		q = q.Where(squirrel.Or{
			squirrel.Expr("ccodigoproducto ILIKE ?", pattern),
			squirrel.Expr("cnombreproducto ILIKE ?", pattern),
		})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	options := []sales.ProductOption{}
	if err := pgxscan.Select(ctx, r.db, &options, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("search products: %w", err))
	}
	return options, nil
}
