package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ventasapi/internal/domain/sales"
	"ventasapi/internal/infrastructure/excel"
	"ventasapi/internal/infrastructure/http/v1/dto"
)

// VentasHandler handles the product sales report endpoints.
type VentasHandler struct {
	*BaseHandler
	service  *sales.Service
	renderer *excel.VentasRenderer
}

// NewVentasHandler creates a new sales report handler.
func NewVentasHandler(base *BaseHandler, service *sales.Service, renderer *excel.VentasRenderer) *VentasHandler {
	return &VentasHandler{BaseHandler: base, service: service, renderer: renderer}
}

// Rows handles GET /ventas-producto/rows
func (h *VentasHandler) Rows(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.VentasRowsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.service.ListProductSales(ctx, sales.ListParams{
		Filter:   q.ToFilter(),
		Page:     q.Page,
		PageSize: q.PageSize,
		Execute:  q.Ejecutar,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Sucursales handles GET /ventas-producto/sucursales
func (h *VentasHandler) Sucursales(c *gin.Context) {
	branches, err := h.service.Branches(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

// Productos handles GET /ventas-producto/productos
func (h *VentasHandler) Productos(c *gin.Context) {
	var q dto.ProductosQuery
	if !h.BindQuery(c, &q) {
		return
	}

	options, err := h.service.SearchProducts(c.Request.Context(), q.Q, q.Top)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// ExportExcel handles GET /ventas-producto/export/excel
func (h *VentasHandler) ExportExcel(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.FiltrosQuery
	if !h.BindQuery(c, &q) {
		return
	}

	export, err := h.service.Export(ctx, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	buf, err := h.renderer.Render(export)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := excel.FileName(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
