package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glowcheck/internal/payment"
	"glowcheck/pkg/logger"
)

type PaymentHandler struct {
	stripe *payment.StripeClient
	log    *logger.Logger
}

func NewPaymentHandler(stripe *payment.StripeClient, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{stripe: stripe, log: log}
}

type paymentIntentRequest struct {
	PlanID string `json:"planId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// CreateIntent handles POST /api/create-payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	if !h.stripe.Enabled() {
		errorJSON(c, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	var req paymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlanID == "" {
		errorJSON(c, http.StatusBadRequest, "planId is required")
		return
	}
	if req.Email == "" {
		errorJSON(c, http.StatusBadRequest, "email is required")
		return
	}

	clientSecret, amount, err := h.stripe.CreatePaymentIntent(req.PlanID, req.Email, req.Name)
	if errors.Is(err, payment.ErrUnknownPlan) {
		errorJSON(c, http.StatusBadRequest, "unrecognized planId")
		return
	}
	if err != nil {
		h.log.Errorw("Failed to create payment intent", "planId", req.PlanID, "error", err)
		errorJSON(c, http.StatusInternalServerError, "payment could not be started")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret, "amount": amount})
}

type checkoutSessionRequest struct {
	PlanID string `json:"planId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// CreateCheckoutSession handles POST /api/create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	if !h.stripe.Enabled() {
		errorJSON(c, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	var req checkoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlanID == "" {
		errorJSON(c, http.StatusBadRequest, "planId is required")
		return
	}

	sessionID, url, err := h.stripe.CreateCheckoutSession(req.PlanID, req.Email, req.Name)
	if errors.Is(err, payment.ErrUnknownPlan) {
		errorJSON(c, http.StatusBadRequest, "unrecognized planId")
		return
	}
	if err != nil {
		h.log.Errorw("Failed to create checkout session", "planId", req.PlanID, "error", err)
		errorJSON(c, http.StatusInternalServerError, "payment could not be started")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "url": url})
}
