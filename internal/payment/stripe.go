// README: Stripe wrapper; creates PaymentIntents and surfaces the client secret.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Intent is the slice of a Stripe PaymentIntent the checkout flow needs: an
// identifier for reconciliation and the client secret the frontend confirms with.
type Intent struct {
	ID           string
	ClientSecret string
}

type StripeService struct {
	api      *client.API
	currency string
}

func NewStripeService(secretKey, currency string) *StripeService {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeService{api: api, currency: currency}
}

// CreateIntent registers a payment for the given major-unit amount. Conversion to
// minor units happens here and nowhere else; pricing stays in major units.
func (s *StripeService) CreateIntent(ctx context.Context, amount float64, orderID string) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", orderID)

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe payment intent: %w", err)
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
