package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cleanspot/internal/core/auth"
	"cleanspot/internal/transport/http/handler"
	mdw "cleanspot/internal/transport/http/middleware"
)

// New builds the single API engine: public operations under /api/v1,
// role-guarded ones under /admin/v1.
func New(l *zap.Logger, h *handler.Handler, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(),
		mdw.Metrics(),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	h.MountUsers(api)
	h.MountSpots(api)
	h.MountSystem(api)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, "admin"))
	h.MountAdmin(admin)

	return r
}
