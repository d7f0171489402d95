package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/service/tickets"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(public, private *gin.RouterGroup) {
	private.POST("/tickets", h.create)
	private.GET("/tickets", h.list)
	private.GET("/tickets/ticket/:id", h.get)
	private.GET("/tickets/my-tickets/:email", h.listByVendor)
	public.GET("/tickets/approved-tickets", h.approved)
	private.PATCH("/tickets/update/status", h.updateStatus)
	private.PATCH("/tickets/update/onAdd", h.updateOnAdd)
	private.PATCH("/tickets/ticket/update/:id", h.update)
	private.DELETE("/tickets/delete/:id", h.delete)
}

func (h *TicketHandler) create(c *gin.Context) {
	var ticket domain.Ticket
	if err := c.ShouldBindJSON(&ticket); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &ticket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TicketHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TicketHandler) get(c *gin.Context) {
	ticket, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) listByVendor(c *gin.Context) {
	result, err := h.service.ListByVendor(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TicketHandler) approved(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
		return
	}

	result, err := h.service.ApprovedPage(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TicketHandler) updateStatus(c *gin.Context) {
	id := c.Query("id")
	status := c.Query("status")
	if id == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and status are required"})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, domain.TicketStatus(status)); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}

func (h *TicketHandler) updateOnAdd(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	onAdd := c.Query("onAdd") != "false"

	if err := h.service.UpdateOnAdd(c.Request.Context(), id, onAdd); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}

func (h *TicketHandler) update(c *gin.Context) {
	var update domain.TicketUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), update); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}

func (h *TicketHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}
