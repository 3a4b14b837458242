package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ventasapi/internal/domain/sales"
	"ventasapi/internal/infrastructure/http/v1/dto"
)

// TicketsHandler handles the ticket analysis endpoints.
type TicketsHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewTicketsHandler creates a new ticket analysis handler.
func NewTicketsHandler(base *BaseHandler, service *sales.Service) *TicketsHandler {
	return &TicketsHandler{BaseHandler: base, service: service}
}

// List handles GET /tickets
func (h *TicketsHandler) List(c *gin.Context) {
	var q dto.TicketsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.service.ListTickets(c.Request.Context(), sales.TicketListParams{
		Filter:   q.ToFilter(),
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Agentes handles GET /tickets/agentes
func (h *TicketsHandler) Agentes(c *gin.Context) {
	var q dto.AgentesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.SalesByAgent(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
