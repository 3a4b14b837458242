package sales

import (
	"fmt"
	"strings"
)

var monthNames = [...]string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// MonthName returns the upper-case Spanish month name, or "" out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// PeriodLabel renders the human-readable period for report headers. It
// follows the same precedence Compile applies, so the label always
// describes the period the rows were actually filtered by.
func PeriodLabel(f Filter) string {
	f = f.Normalize()
	switch {
	case f.DateFrom != nil && f.DateTo != nil:
		return fmt.Sprintf("DEL %s AL %s",
			f.DateFrom.Format("2006-01-02"), f.DateTo.Format("2006-01-02"))
	case f.DateFrom != nil:
		return "DESDE " + f.DateFrom.Format("2006-01-02")
	case f.DateTo != nil:
		return "HASTA " + f.DateTo.Format("2006-01-02")
	case f.Month != 0 && f.Year != 0:
		return fmt.Sprintf("%s %d", MonthName(f.Month), f.Year)
	case f.Year != 0:
		return fmt.Sprintf("AÑO %d", f.Year)
	case f.Month != 0:
		return MonthName(f.Month) + " (TODOS LOS AÑOS)"
	default:
		return "HISTÓRICO COMPLETO"
	}
}

// BranchLabel renders the branch line for report headers.
func BranchLabel(f Filter) string {
	f = f.Normalize()
	if f.Branch == "" {
		return "TODAS LAS SUCURSALES"
	}
	return strings.ToUpper(f.Branch)
}
