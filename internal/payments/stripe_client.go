package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	pkgstripe "github.com/angelmondragon/storefront-backend/pkg/stripe"
)

type stripeCheckoutClient struct{}

// NewStripeClient wraps the provided Stripe client so checkout can be tested
// against the CheckoutClient interface.
func NewStripeClient(api *pkgstripe.Client) CheckoutClient {
	if api == nil {
		return nil
	}
	return &stripeCheckoutClient{}
}

func (c *stripeCheckoutClient) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	if params.LineItem.Name == "" {
		return nil, fmt.Errorf("line item name required")
	}

	qty := params.LineItem.Quantity
	if qty <= 0 {
		qty = 1
	}

	stripeParams := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(params.CustomerEmail),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(params.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.LineItem.Name),
					},
					UnitAmount: stripe.Int64(params.LineItem.UnitAmount),
				},
				Quantity: stripe.Int64(qty),
			},
		},
	}
	stripeParams.Context = ctx

	created, err := session.New(stripeParams)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:            created.ID,
		PaymentStatus: SessionStatus(created.PaymentStatus),
	}, nil
}

func (c *stripeCheckoutClient) GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	retrieved, err := session.Get(sessionID, params)
	if err != nil {
		return "", err
	}
	return SessionStatus(retrieved.PaymentStatus), nil
}
