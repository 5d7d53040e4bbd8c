package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v72"

	"glowcheck/internal/payment"
	"glowcheck/internal/store"
	"glowcheck/pkg/logger"
)

// WebhookHandler provisions users and subscriptions from Stripe events.
// Only payment_intent.succeeded is acted on; every other verified event is
// acked with 200 so Stripe stops retrying it.
type WebhookHandler struct {
	stripe *payment.StripeClient
	store  store.Store
	log    *logger.Logger
}

func NewWebhookHandler(stripe *payment.StripeClient, st store.Store, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{stripe: stripe, store: st, log: log}
}

// HandleStripe handles POST /api/webhooks/stripe.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Errorw("Failed to read webhook body", "error", err)
		errorJSON(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.log.Errorw("Missing Stripe signature header")
		errorJSON(c, http.StatusBadRequest, "missing signature")
		return
	}

	event, err := h.stripe.VerifyWebhookSignature(body, signature)
	if err != nil {
		h.log.Errorw("Failed to verify webhook signature", "error", err)
		errorJSON(c, http.StatusBadRequest, "invalid signature")
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.log.Errorw("Failed to parse payment intent", "error", err)
			errorJSON(c, http.StatusBadRequest, "failed to parse event data")
			return
		}

		email := intent.Metadata["email"]
		name := intent.Metadata["name"]
		planID := intent.Metadata["planId"]

		if email == "" || planID == "" {
			// Not one of ours. Ack it so Stripe does not keep retrying.
			h.log.Warnw("Payment intent without provisioning metadata", "paymentID", intent.ID)
			break
		}

		if _, ok := payment.GetPlan(planID); !ok {
			h.log.Errorw("Payment intent references unknown plan", "paymentID", intent.ID, "planId", planID)
			break
		}

		user, created, err := store.ProvisionSubscription(c.Request.Context(), h.store, email, name, planID, intent.ID)
		if err != nil {
			h.log.Errorw("Failed to provision subscription", "paymentID", intent.ID, "error", err)
			errorJSON(c, http.StatusInternalServerError, "provisioning failed")
			return
		}

		if created {
			h.log.Infow("Subscription provisioned", "userID", user.ID, "planId", planID, "paymentID", intent.ID)
		} else {
			h.log.Infow("Duplicate webhook delivery ignored", "paymentID", intent.ID)
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.log.Errorw("Failed to parse payment intent", "error", err)
			break
		}
		h.log.Errorw("Payment failed", "paymentID", intent.ID, "error", intent.LastPaymentError)
	}

	// Respond with 200 OK to acknowledge receipt
	c.String(http.StatusOK, "Webhook received")
}
