package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/service/checkout"
	"github.com/ticketkinen/server/internal/service/settlement"
)

type PaymentHandler struct {
	checkout   checkout.CheckoutUseCase
	settlement settlement.SettlementUseCase
}

type successPaymentResponse struct {
	Result                     *domain.Payment `json:"result"`
	ResultUpdateStatus         bool            `json:"resultUpdateStatus"`
	ResultUpdateTicketQuantity bool            `json:"resultUpdateTicketQuantity"`
	AlreadySettled             bool            `json:"alreadySettled"`
}

func NewPaymentHandler(co checkout.CheckoutUseCase, se settlement.SettlementUseCase) *PaymentHandler {
	return &PaymentHandler{checkout: co, settlement: se}
}

func (h *PaymentHandler) Register(private *gin.RouterGroup) {
	private.POST("/checkout-payment", h.createCheckout)
	private.POST("/success-payment", h.settle)
}

func (h *PaymentHandler) createCheckout(c *gin.Context) {
	var intent checkout.CheckoutIntent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.checkout.CreateCheckout(c.Request.Context(), intent)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidIntent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *PaymentHandler) settle(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	result, err := h.settlement.Settle(c.Request.Context(), sessionID)
	if err != nil {
		var pe *domain.PersistenceError
		switch {
		case errors.Is(err, domain.ErrPaymentIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment not completed"})
		case errors.Is(err, domain.ErrDanglingReference):
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
		case errors.As(err, &pe):
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "settlement incomplete, retry the request",
				"applied": gin.H{
					"payment": pe.PaymentApplied,
					"booking": pe.BookingApplied,
					"ticket":  pe.TicketApplied,
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, successPaymentResponse{
		Result:                     result.Payment,
		ResultUpdateStatus:         result.BookingUpdated,
		ResultUpdateTicketQuantity: result.TicketUpdated,
		AlreadySettled:             result.AlreadySettled,
	})
}
