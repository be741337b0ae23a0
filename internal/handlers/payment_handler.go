// ./wisdomcell-backend/internal/handlers/payment_handler.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"wisdomcell/backend/internal/services"

	"github.com/gin-gonic/gin"
)

// CheckoutPayload starts a premium purchase. Price is in major currency units.
type CheckoutPayload struct {
	Price     int64  `json:"price" binding:"required,gt=0"`
	UserEmail string `json:"userEmail" binding:"required,email"`
	UserName  string `json:"userName"`
}

// CreateCheckoutSession opens a provider checkout session and returns the
// redirect URL.
func CreateCheckoutSession(svc *services.Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload CheckoutPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		url, err := svc.CreateCheckout(ctx, services.CheckoutInput{
			Price:     payload.Price,
			UserEmail: payload.UserEmail,
			UserName:  payload.UserName,
		})
		if err != nil {
			log.Printf("Error creating checkout session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// PaymentSuccessPayload names the provider session to reconcile.
type PaymentSuccessPayload struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// PaymentSuccess reconciles a checkout session into at most one payment
// record and one premium upgrade. Duplicate calls are answered with a
// non-error "already processed".
func PaymentSuccess(svc *services.Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload PaymentSuccessPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		result, err := svc.Reconcile(ctx, payload.SessionID)
		if err != nil {
			if errors.Is(err, services.ErrPaymentIncomplete) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Payment not completed"})
				return
			}
			log.Printf("Error reconciling payment: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
			return
		}

		if result.AlreadyProcessed {
			c.JSON(http.StatusOK, gin.H{
				"message":       "Payment already processed",
				"transactionId": result.TransactionID,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"transactionId": result.TransactionID,
			"paymentId":     result.PaymentID,
		})
	}
}
