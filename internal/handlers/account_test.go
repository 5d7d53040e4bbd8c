package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glowcheck/internal/models"
	"glowcheck/internal/store"
	"glowcheck/pkg/logger"
)

func newAccountRouter(st store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAccountHandler(st, logger.NewNop())

	r := gin.New()
	r.Use(sessions.Sessions("glowcheck_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/api/create-account", h.Create)
	r.GET("/api/get-user-subscription", h.Subscription)
	return r
}

func TestCreateAccountAndFetchSubscription(t *testing.T) {
	st := store.NewMemoryStore()
	r := newAccountRouter(st)

	created := do(t, r, http.MethodPost, "/api/create-account", map[string]any{
		"email":    "buyer@example.com",
		"password": "hunter2hunter2",
		"name":     "Buyer",
		"planId":   "glow_monthly",
	}, nil)
	require.Equal(t, http.StatusOK, created.Code)
	assert.NotContains(t, created.Body.String(), "hunter2", "password material must not leak")

	// No subscription yet.
	rec := do(t, r, http.MethodGet, "/api/get-user-subscription", nil, created)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Simulate the webhook having provisioned a subscription.
	user, err := st.GetUserByEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	_, createdSub, err := store.ProvisionSubscription(context.Background(), st,
		"buyer@example.com", "Buyer", "glow_monthly", "pi_test")
	require.NoError(t, err)
	require.True(t, createdSub)

	rec = do(t, r, http.MethodGet, "/api/get-user-subscription", nil, created)
	require.Equal(t, http.StatusOK, rec.Code)

	var sub map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, "glow_monthly", sub["planId"])
	assert.Equal(t, "Glow Monthly", sub["planName"])
	assert.Equal(t, float64(30), sub["durationDays"])
	assert.NotEmpty(t, sub["expirationDate"])

	// Expiration is derived from the plan, not stored.
	loaded, err := st.LatestSubscription(context.Background(), user.ID)
	require.NoError(t, err)
	plan := models.Plan{DurationDays: 30}
	assert.Equal(t, loaded.PurchaseDate.AddDate(0, 0, 30), loaded.ExpirationDate(plan))
}

func TestSubscriptionRequiresSession(t *testing.T) {
	r := newAccountRouter(store.NewMemoryStore())

	rec := do(t, r, http.MethodGet, "/api/get-user-subscription", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAccountValidation(t *testing.T) {
	r := newAccountRouter(store.NewMemoryStore())

	rec := do(t, r, http.MethodPost, "/api/create-account", map[string]any{
		"password": "hunter2hunter2",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/create-account", map[string]any{
		"email":    "short@example.com",
		"password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password")
}
