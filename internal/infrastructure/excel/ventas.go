// Package excel renders report exports as xlsx workbooks.
package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"ventasapi/internal/core/apperror"
	"ventasapi/internal/domain/sales"
)

const sheetName = "Ventas"

var columnTitles = []string{
	"Fecha", "Hora", "Mes", "Código", "Producto", "Cantidad", "Unidad",
	"Precio", "Importe", "Descuento", "Impuesto", "Total", "Sucursal",
}

// FileName returns the download name for an export generated at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("Reporte_Ventas_%s.xlsx", t.Format("2006-01-02"))
}

// VentasRenderer builds the product sales workbook.
type VentasRenderer struct{}

// NewVentasRenderer creates the renderer.
func NewVentasRenderer() *VentasRenderer {
	return &VentasRenderer{}
}

// Render writes the export into an xlsx workbook: a three-line header
// describing scope and period, the column titles, one row per product
// line and a totals row.
func (r *VentasRenderer) Render(export *sales.Export) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, apperror.NewInternal(err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F6228"}},
	})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	qtyFmt := "#,##0.##"
	qtyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &qtyFmt})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	setCell := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, value)
	}

	if err := setCell(1, 1, "REPORTE DE VENTAS POR PRODUCTO"); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := setCell(1, 2, "Sucursal: "+export.BranchLabel); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := setCell(1, 3, "Período: "+export.PeriodLabel); err != nil {
		return nil, apperror.NewInternal(err)
	}

	const headerRow = 5
	for i, title := range columnTitles {
		if err := setCell(i+1, headerRow, title); err != nil {
			return nil, apperror.NewInternal(err)
		}
	}
	lastCol, err := excelize.CoordinatesToCellName(len(columnTitles), headerRow)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	firstCol, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetCellStyle(sheetName, firstCol, lastCol, headerStyle); err != nil {
		return nil, apperror.NewInternal(err)
	}

	var totalQty, totalAmount float64
	for i, row := range export.Rows {
		n := headerRow + 1 + i
		unit := ""
		if row.UnitName != nil {
			unit = *row.UnitName
		}
		branch := ""
		if row.BranchName != nil {
			branch = *row.BranchName
		}
		values := []any{
			row.Fecha, row.Hora, row.Mes, row.ProductCode, row.ProductName,
			row.Quantity, unit, row.Price, row.Amount, row.Discount,
			row.Tax, row.Total, branch,
		}
		for col, v := range values {
			if err := setCell(col+1, n, v); err != nil {
				return nil, apperror.NewInternal(err)
			}
		}
		totalQty += row.Quantity
		totalAmount += row.Total
	}

	if len(export.Rows) > 0 {
		first := headerRow + 1
		last := headerRow + len(export.Rows)
		qtyFirst, _ := excelize.CoordinatesToCellName(6, first)
		qtyLast, _ := excelize.CoordinatesToCellName(6, last)
		if err := f.SetCellStyle(sheetName, qtyFirst, qtyLast, qtyStyle); err != nil {
			return nil, apperror.NewInternal(err)
		}
		moneyFirst, _ := excelize.CoordinatesToCellName(8, first)
		moneyLast, _ := excelize.CoordinatesToCellName(12, last)
		if err := f.SetCellStyle(sheetName, moneyFirst, moneyLast, moneyStyle); err != nil {
			return nil, apperror.NewInternal(err)
		}
	}

	totalsRow := headerRow + len(export.Rows) + 1
	if err := setCell(5, totalsRow, "TOTALES"); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := setCell(6, totalsRow, totalQty); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := setCell(12, totalsRow, totalAmount); err != nil {
		return nil, apperror.NewInternal(err)
	}
	totalsFirst, _ := excelize.CoordinatesToCellName(5, totalsRow)
	totalsLast, _ := excelize.CoordinatesToCellName(12, totalsRow)
	if err := f.SetCellStyle(sheetName, totalsFirst, totalsLast, boldStyle); err != nil {
		return nil, apperror.NewInternal(err)
	}

	widths := []float64{12, 8, 12, 14, 40, 10, 10, 12, 12, 12, 12, 12, 20}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, apperror.NewInternal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return buf, nil
}
