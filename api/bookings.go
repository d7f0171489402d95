package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/service/bookings"
)

type BookingHandler struct {
	service bookings.BookingUseCase
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(private *gin.RouterGroup) {
	private.POST("/bookings", h.create)
	private.GET("/bookings/my-bookings/:userEmail", h.listByUser)
	private.GET("/bookings/booking-request/:vendorEmail", h.listByVendor)
	private.PATCH("/bookings/update/booking-status", h.updateStatus)
	private.DELETE("/bookings/delete/:id", h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	var booking domain.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &booking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	result, err := h.service.ListByUser(c.Request.Context(), c.Param("userEmail"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) listByVendor(c *gin.Context) {
	result, err := h.service.ListByVendor(c.Request.Context(), c.Param("vendorEmail"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	id := c.Query("id")
	status := c.Query("bookingStatus")
	if id == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and bookingStatus are required"})
		return
	}

	if err := h.service.UpdateBookingStatus(c.Request.Context(), id, domain.BookingStatus(status)); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}

func (h *BookingHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}
