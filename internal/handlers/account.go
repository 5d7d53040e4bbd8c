package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"glowcheck/internal/models"
	"glowcheck/internal/payment"
	"glowcheck/internal/store"
	"glowcheck/pkg/logger"
)

const userSessionKey = "user_id"

type AccountHandler struct {
	store store.Store
	log   *logger.Logger
}

func NewAccountHandler(st store.Store, log *logger.Logger) *AccountHandler {
	return &AccountHandler{store: st, log: log}
}

type createAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	PlanID   string `json:"planId"`
}

// Create handles POST /api/create-account. The account may already exist
// from webhook provisioning, in which case this sets its password and
// signs the user in.
func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		errorJSON(c, http.StatusBadRequest, "email is required")
		return
	}
	if len(req.Password) < 8 {
		errorJSON(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Errorw("Failed to hash password", "error", err)
		errorJSON(c, http.StatusInternalServerError, "could not create account")
		return
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := h.store.SaveUser(c.Request.Context(), user); err != nil {
		h.log.Errorw("Failed to save user", "error", err)
		errorJSON(c, http.StatusInternalServerError, "could not create account")
		return
	}

	session := sessions.Default(c)
	session.Set(userSessionKey, user.ID)
	if err := session.Save(); err != nil {
		h.log.Errorw("Failed to save auth session", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account created",
		"user":    user,
	})
}

// Subscription handles GET /api/get-user-subscription. It requires the
// cookie auth session set by Create.
func (h *AccountHandler) Subscription(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get(userSessionKey).(string)
	if !ok || userID == "" {
		errorJSON(c, http.StatusUnauthorized, "not signed in")
		return
	}

	sub, err := h.store.LatestSubscription(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "no subscription found")
		return
	}
	if err != nil {
		h.log.Errorw("Failed to load subscription", "userID", userID, "error", err)
		errorJSON(c, http.StatusInternalServerError, "could not load subscription")
		return
	}

	plan, ok := payment.GetPlan(sub.PlanID)
	if !ok {
		h.log.Errorw("Subscription references unknown plan", "userID", userID, "planId", sub.PlanID)
		errorJSON(c, http.StatusInternalServerError, "could not load subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"planId":         plan.ID,
		"planName":       plan.Name,
		"purchaseDate":   sub.PurchaseDate,
		"expirationDate": sub.ExpirationDate(plan),
		"durationDays":   plan.DurationDays,
	})
}
