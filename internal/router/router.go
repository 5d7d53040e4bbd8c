package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"glowcheck/config"
	"glowcheck/internal/handlers"
	"glowcheck/pkg/logger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Analyze *handlers.AnalyzeHandler
	Chat    *handlers.ChatHandler
	Quiz    *handlers.QuizHandler
	Report  *handlers.ReportHandler
	Payment *handlers.PaymentHandler
	Webhook *handlers.WebhookHandler
	Account *handlers.AccountHandler
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

// Setup builds the gin engine with recovery, request logging, cookie
// sessions and all routes.
func Setup(cfg *config.Config, log *logger.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("glowcheck_session", store))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := router.Group("/api")

	// The analysis endpoints proxy a metered vision API, so they get a
	// per-IP rate limit the rest of the surface does not need.
	analysisLimit := ratelimit.RateLimiter(ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	}), &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	api.POST("/analyze-product", analysisLimit, h.Analyze.Product)
	api.POST("/analyze-product-specialized", analysisLimit, h.Analyze.Specialized)
	api.POST("/analyze-skin", analysisLimit, h.Analyze.Skin)

	api.POST("/glowbot-chat", h.Chat.Glowbot)

	api.GET("/quiz", h.Quiz.Definition)
	api.GET("/quiz/state", h.Quiz.State)
	api.POST("/quiz/advance", h.Quiz.Advance)
	api.POST("/quiz/back", h.Quiz.Back)
	api.POST("/quiz/answer", h.Quiz.Answer)
	api.POST("/quiz/game", h.Quiz.Game)

	api.POST("/generate-report", h.Report.Generate)

	api.POST("/create-payment-intent", h.Payment.CreateIntent)
	api.POST("/create-checkout-session", h.Payment.CreateCheckoutSession)
	api.POST("/webhooks/stripe", h.Webhook.HandleStripe)

	api.POST("/create-account", h.Account.Create)
	api.GET("/get-user-subscription", h.Account.Subscription)

	return router
}
