package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"glowcheck/config"
	"glowcheck/internal/payment"
	"glowcheck/internal/store"
	"glowcheck/pkg/logger"
)

// Provisioning semantics are covered at the store level; these tests pin
// down the transport guards.
func newWebhookRouter(webhookSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	stripeClient := payment.NewStripeClient(config.StripeConfig{
		SecretKey:  "sk_test_x",
		WebhookKey: webhookSecret,
	}, "http://localhost:3000")

	h := NewWebhookHandler(stripeClient, store.NewMemoryStore(), logger.NewNop())

	r := gin.New()
	r.POST("/api/webhooks/stripe", h.HandleStripe)
	return r
}

func TestWebhookRequiresSignature(t *testing.T) {
	r := newWebhookRouter("whsec_test")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe",
		strings.NewReader(`{"type": "payment_intent.succeeded"}`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "signature")
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	r := newWebhookRouter("whsec_test")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe",
		strings.NewReader(`{"type": "payment_intent.succeeded"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid signature")
}

func TestWebhookWithoutConfiguredSecret(t *testing.T) {
	r := newWebhookRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe",
		strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
