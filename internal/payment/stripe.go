package payment

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"github.com/stripe/stripe-go/v72/webhook"

	"glowcheck/config"
)

// ErrUnknownPlan is returned for plan ids missing from the plan table.
var ErrUnknownPlan = errors.New("unknown plan id")

type StripeClient struct {
	secretKey     string
	publicKey     string
	webhookSecret string
	baseURL       string
}

func NewStripeClient(cfg config.StripeConfig, appBaseURL string) *StripeClient {
	// Set the secret key for backend operations
	stripe.Key = cfg.SecretKey

	return &StripeClient{
		secretKey:     cfg.SecretKey,
		publicKey:     cfg.PublicKey,
		webhookSecret: cfg.WebhookKey,
		baseURL:       appBaseURL,
	}
}

// Enabled reports whether a secret key is configured. Without it the
// payment endpoints answer 503.
func (s *StripeClient) Enabled() bool {
	return s.secretKey != ""
}

func (s *StripeClient) GetWebhookSecret() string {
	return s.webhookSecret
}

func (s *StripeClient) GetPublicKey() string {
	return s.publicKey
}

// CreatePaymentIntent creates an intent for the given plan and returns the
// client secret the browser confirms with Elements. Buyer identity rides
// in the metadata so the webhook can provision without another lookup.
func (s *StripeClient) CreatePaymentIntent(planID, email, name string) (string, int64, error) {
	plan, ok := GetPlan(planID)
	if !ok {
		return "", 0, ErrUnknownPlan
	}

	if stripe.Key != s.secretKey {
		stripe.Key = s.secretKey
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(plan.Amount),
		Currency:     stripe.String(plan.Currency),
		ReceiptEmail: stripe.String(email),
	}
	params.AddMetadata("email", email)
	params.AddMetadata("name", name)
	params.AddMetadata("planId", plan.ID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent.ClientSecret, plan.Amount, nil
}

// CreateCheckoutSession creates a redirect-based checkout for the plan.
// The underlying intent carries the same metadata as the Elements path so
// the webhook handles both identically.
func (s *StripeClient) CreateCheckoutSession(planID, email, name string) (string, string, error) {
	plan, ok := GetPlan(planID)
	if !ok {
		return "", "", ErrUnknownPlan
	}

	if stripe.Key != s.secretKey {
		stripe.Key = s.secretKey
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(plan.Currency),
					UnitAmount: stripe.Int64(plan.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(plan.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.baseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.baseURL + "/pricing"),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{},
	}
	params.PaymentIntentData.Metadata = map[string]string{
		"email":  email,
		"name":   name,
		"planId": plan.ID,
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}

	sess, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return sess.ID, sess.URL, nil
}

func (s *StripeClient) VerifyWebhookSignature(payload []byte, sig string) (stripe.Event, error) {
	if s.webhookSecret == "" {
		return stripe.Event{}, fmt.Errorf("webhook secret is not configured")
	}
	return webhook.ConstructEvent(payload, sig, s.webhookSecret)
}
