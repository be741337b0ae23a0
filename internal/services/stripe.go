// ./wisdomcell-backend/internal/services/stripe.go
package services

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProvider implements CheckoutProvider against Stripe checkout sessions.
type StripeProvider struct {
	clientDomain string
}

func NewStripeProvider(secretKey, clientDomain string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{clientDomain: clientDomain}
}

func (p *StripeProvider) CreateSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("WisdomCell Premium"),
					},
					UnitAmount: stripe.Int64(in.Price * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(in.UserEmail),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(p.clientDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.clientDomain + "/payment-cancel"),
	}
	// The payer identity rides in metadata so reconciliation can recover it
	// from the session alone.
	params.AddMetadata("userEmail", in.UserEmail)
	params.AddMetadata("userName", in.UserName)

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

func (p *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	}
	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		Metadata:      sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	return out
}
