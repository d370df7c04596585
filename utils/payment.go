package utils

import (
	"context"
	"math"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// MinorUnits converts a decimal total into the payment provider's integer
// minor-unit amount (cents). A non-positive total is rejected; no intent
// may ever be requested for it.
func MinorUnits(totalCost float64) (int64, error) {
	if totalCost <= 0 {
		return 0, Validation("totalCost must be a positive amount", "totalCost")
	}
	return int64(math.Round(totalCost * 100)), nil
}

// IntentCreator requests a payment intent for a minor-unit amount and
// returns the provider's client secret. Intent creation is not idempotent,
// so callers must never retry a failed request automatically.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (clientSecret string, err error)
}

// StripeIntents creates payment intents against Stripe.
type StripeIntents struct{}

// NewStripeIntents configures the process-wide Stripe key and returns the
// intent client.
func NewStripeIntents(secretKey string) *StripeIntents {
	stripe.Key = secretKey
	return &StripeIntents{}
}

func (s *StripeIntents) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
