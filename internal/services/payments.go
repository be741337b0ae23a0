// ./wisdomcell-backend/internal/services/payments.go
package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wisdomcell/backend/internal/models"
)

// CheckoutInput is what the client supplies to start a premium purchase.
// Price is in major currency units; the provider gets it scaled to cents.
type CheckoutInput struct {
	Price     int64
	UserEmail string
	UserName  string
}

// CheckoutSession is the provider's view of a session, reduced to the fields
// reconciliation needs. Metadata round-trips the payer identity set at
// creation time.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	PaymentStatus   string
	AmountTotal     int64
	Currency        string
	Metadata        map[string]string
}

// CheckoutProvider abstracts the payment provider (Stripe in production).
type CheckoutProvider interface {
	CreateSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// Payments converts completed checkout sessions into at most one Payment
// record and one premium upgrade per transaction, safe under retries.
type Payments struct {
	Payments PaymentStore
	Users    UserStore
	Provider CheckoutProvider
}

// CreateCheckout starts a provider session and returns the redirect URL.
func (s *Payments) CreateCheckout(ctx context.Context, in CheckoutInput) (string, error) {
	session, err := s.Provider.CreateSession(ctx, in)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// ReconcileResult reports the outcome of a payment-success callback.
type ReconcileResult struct {
	TransactionID    string
	PaymentID        primitive.ObjectID
	AlreadyProcessed bool
}

// Reconcile retrieves the session from the provider and, exactly once per
// payment-intent id, records the payment and upgrades the payer to premium.
// A session the provider does not consider paid is ErrPaymentIncomplete and
// writes nothing. A transaction already recorded short-circuits to a non-error
// "already processed" result without touching the user again.
func (s *Payments) Reconcile(ctx context.Context, sessionID string) (ReconcileResult, error) {
	session, err := s.Provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return ReconcileResult{}, err
	}

	if session.PaymentStatus != "paid" {
		return ReconcileResult{}, ErrPaymentIncomplete
	}

	transactionID := session.PaymentIntentID

	_, err = s.Payments.FindByTransactionID(ctx, transactionID)
	if err == nil {
		return ReconcileResult{TransactionID: transactionID, AlreadyProcessed: true}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return ReconcileResult{}, err
	}

	now := time.Now().UTC()
	payment := &models.Payment{
		TransactionID: transactionID,
		UserEmail:     session.Metadata["userEmail"],
		UserName:      session.Metadata["userName"],
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		PaidAt:        now,
	}
	if err := s.Payments.Insert(ctx, payment); err != nil {
		return ReconcileResult{}, err
	}

	if err := s.Users.SetPremium(ctx, payment.UserEmail, now); err != nil {
		return ReconcileResult{}, err
	}

	return ReconcileResult{TransactionID: transactionID, PaymentID: payment.ID}, nil
}
