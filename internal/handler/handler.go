package handler

import (
	"net/http"
	"time"

	"birdai/internal/auth"
	"birdai/internal/insight"
	"birdai/internal/ledger"
	"birdai/internal/service"
	"birdai/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer   trace.Tracer
	market   *service.MarketService
	insights *insight.Service
	emails   *store.EmailStore
	auth     *auth.Authenticator
	ledger   *ledger.Ledger
}

func New(
	tracer trace.Tracer,
	market *service.MarketService,
	insights *insight.Service,
	emails *store.EmailStore,
	authenticator *auth.Authenticator,
	vault *ledger.Ledger,
) *Handler {
	return &Handler{
		tracer:   tracer,
		market:   market,
		insights: insights,
		emails:   emails,
		auth:     authenticator,
		ledger:   vault,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/market-data", h.MarketData)
	api.GET("/market-data/history", h.MarketHistory)
	api.GET("/sentiment", h.Sentiment)
	api.GET("/insights", h.ListInsights)
	api.POST("/insights/generate", h.GenerateInsights)
	api.POST("/collect-email", h.CollectEmail)

	api.POST("/admin/auth/login", h.AdminLogin)
	api.GET("/admin/auth/verify", h.AdminVerify)
	api.POST("/demo/auth/login", h.DemoLogin)
	api.GET("/demo/auth/verify", h.DemoVerify)

	admin := api.Group("/admin", RequireRole(h.auth, auth.RoleAdmin))
	admin.GET("/emails", h.ListEmails)

	api.POST("/ledger/mint", h.Mint)
	api.POST("/ledger/redeem", h.Redeem)
	api.GET("/ledger/history", h.LedgerHistory)
	api.GET("/ledger/reserve", h.LedgerReserve)
}

// respond wraps data in the {success, data, timestamp} envelope the
// dashboard polls for.
func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
