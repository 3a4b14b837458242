package sales

import (
	"time"

	"github.com/Masterminds/squirrel"
)

// Columns maps the logical filter fields onto the columns of one target
// relation. Relations that lack product columns leave them empty, which
// disables the product filter for that target.
type Columns struct {
	Branch      string
	Date        string
	ProductCode string
	ProductName string
}

// DetailColumns targets the per-product sales view.
var DetailColumns = Columns{
	Branch:      "cnombrealmacen",
	Date:        "fecha",
	ProductCode: "ccodigoproducto",
	ProductName: "cnombreproducto",
}

// SummaryColumns targets the per-branch summary view, which carries no
// product columns.
var SummaryColumns = Columns{
	Branch: "sucursal",
	Date:   "fecha",
}

// TicketColumns targets the per-ticket view, one row per checkout.
var TicketColumns = Columns{
	Branch: "cnombrealmacen",
	Date:   "fecha",
}

func (c Columns) productFilterEnabled() bool {
	return c.ProductCode != "" && c.ProductName != ""
}

// Compile translates f into a WHERE conjunction against cols. It returns
// the predicate text with `?` placeholders and the parameter list in
// matching order; callers embed it into their statement builder, which
// owns the final placeholder format.
//
// Overlapping date inputs resolve by precedence: an explicit range wins
// over week+year, week+year over month+year, month+year over year alone,
// year alone over month alone. A bare month matches that month across
// all years.
func Compile(f Filter, cols Columns) (string, []any, error) {
	f = f.Normalize()

	conj := squirrel.And{squirrel.Expr("1=1")}

	if f.Branch != "" {
		conj = append(conj, squirrel.Expr("BTRIM("+cols.Branch+") = ?", f.Branch))
	}

	if f.Product != "" && cols.productFilterEnabled() {
		pattern := "%" + f.Product + "%"
		conj = append(conj, squirrel.Or{
			squirrel.Expr(cols.ProductCode+" ILIKE ?", pattern),
			squirrel.Expr(cols.ProductName+" ILIKE ?", pattern),
		})
	}

	switch {
	case f.DateFrom != nil || f.DateTo != nil:
		if f.DateFrom != nil {
			conj = append(conj, squirrel.Expr(cols.Date+" >= ?", *f.DateFrom))
		}
		if f.DateTo != nil {
			// Half-open upper bound so time-of-day on the stored
			// timestamps cannot drop the last day.
			end := f.DateTo.AddDate(0, 0, 1)
			conj = append(conj, squirrel.Expr(cols.Date+" < ?", end))
		}
	case f.Week != 0 && f.Year != 0:
		// ISO week number within the requested calendar year.
		start := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		conj = append(conj,
			squirrel.Expr("EXTRACT(WEEK FROM "+cols.Date+") = ?", f.Week),
			squirrel.Expr(cols.Date+" >= ?", start),
			squirrel.Expr(cols.Date+" < ?", start.AddDate(1, 0, 0)),
		)
	case f.Month != 0 && f.Year != 0:
		start := time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
		conj = append(conj,
			squirrel.Expr(cols.Date+" >= ?", start),
			squirrel.Expr(cols.Date+" < ?", start.AddDate(0, 1, 0)),
		)
	case f.Year != 0:
		start := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		conj = append(conj,
			squirrel.Expr(cols.Date+" >= ?", start),
			squirrel.Expr(cols.Date+" < ?", start.AddDate(1, 0, 0)),
		)
	case f.Month != 0:
		conj = append(conj, squirrel.Expr("EXTRACT(MONTH FROM "+cols.Date+") = ?", f.Month))
	}

	return conj.ToSql()
}
