package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ventasapi/internal/domain/sales"
	"ventasapi/internal/infrastructure/http/v1/dto"
)

// DashboardHandler handles the dashboard aggregation endpoints.
type DashboardHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *sales.Service) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, service: service}
}

// Kpis handles GET /dashboard/kpis
func (h *DashboardHandler) Kpis(c *gin.Context) {
	var q dto.FiltrosQuery
	if !h.BindQuery(c, &q) {
		return
	}

	kpis, err := h.service.Kpis(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

// VentasPorSucursal handles GET /dashboard/ventas-por-sucursal
func (h *DashboardHandler) VentasPorSucursal(c *gin.Context) {
	var q dto.FiltrosQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.SalesByBranch(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// VentasPorHora handles GET /dashboard/ventas-por-hora
func (h *DashboardHandler) VentasPorHora(c *gin.Context) {
	var q dto.FiltrosQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.SalesByHour(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// TopProductos handles GET /dashboard/top-productos
func (h *DashboardHandler) TopProductos(c *gin.Context) {
	var q dto.FiltrosQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.TopProducts(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
