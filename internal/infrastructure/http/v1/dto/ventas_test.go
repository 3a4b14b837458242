package dto

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindQuery(t *testing.T, rawQuery string, obj any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	require.NoError(t, c.ShouldBindQuery(obj))
}

func TestFiltrosQuery_EmptyDateDoesNotShadowPeriod(t *testing.T) {
	// A cleared date input arrives as fecha_desde= with no value. Gin
	// binds that to a non-nil zero time, which must not be mistaken
	// for an explicit range start.
	var q FiltrosQuery
	bindQuery(t, "fecha_desde=&mes=12&anio=2025", &q)

	f := q.ToFilter()
	assert.Nil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.Equal(t, 12, f.Month)
	assert.Equal(t, 2025, f.Year)
}

func TestFiltrosQuery_ExplicitDatesSurvive(t *testing.T) {
	var q FiltrosQuery
	bindQuery(t, "fecha_desde=2025-01-10&fecha_hasta=2025-01-20", &q)

	f := q.ToFilter()
	require.NotNil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), *f.DateTo)
}

func TestFiltrosQuery_AnyYearAccepted(t *testing.T) {
	var q FiltrosQuery
	bindQuery(t, "anio=1998", &q)
	assert.Equal(t, 1998, q.ToFilter().Year)
}

func TestTicketsQuery_WeekCarriesThrough(t *testing.T) {
	var q TicketsQuery
	bindQuery(t, "semana=35&anio=2025&page=2&page_size=25", &q)

	f := q.ToFilter()
	assert.Equal(t, 35, f.Week)
	assert.Equal(t, 2025, f.Year)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 25, q.PageSize)
}
