package api

import (
	"net/http"
	"time"

	authDelivery "qisqa-backend/internal/auth/delivery"
	authUsecase "qisqa-backend/internal/auth/usecase"
	reportDelivery "qisqa-backend/internal/report/delivery"
	reportUsecase "qisqa-backend/internal/report/usecase"
	"qisqa-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
)

type Handler struct {
	config          *config.Config
	resolver        authDelivery.IdentityResolver
	authHandler     *authDelivery.AuthHandler
	reportHandler   *reportDelivery.ReportHandler
	settingsHandler *SettingsHandler
}

func NewHandler(cfg *config.Config, authUc authUsecase.AuthUsecase, reportUc reportUsecase.ReportUsecase) *Handler {
	return &Handler{
		config:          cfg,
		resolver:        authDelivery.NewRequestResolver(authUc, cfg.AuthCookieName),
		authHandler:     authDelivery.NewAuthHandler(),
		reportHandler:   reportDelivery.NewReportHandler(reportUc),
		settingsHandler: NewSettingsHandler(cfg),
	}
}

// Router builds the gin engine with middleware and all routes.
func (h *Handler) Router() *gin.Engine {
	if h.config.GinMode != "" {
		gin.SetMode(h.config.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), h.cors())

	SetupRoutes(r, h.resolver, h.authHandler, h.reportHandler, h.settingsHandler)
	return r
}

// cors answers cross-origin requests only for configured origins. Other
// origins get no CORS headers, so browsers keep their responses opaque.
func (h *Handler) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		c.Writer.Header().Add("Vary", "Origin")

		if h.config.IsOriginAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		} else if origin != "" {
			log.Debug().Str("origin", origin).Str("path", c.Request.URL.Path).Msg("cross-origin request from unlisted origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) Start(addr string) error {
	return h.Router().Run(addr)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry = log.Error()
		}
		entry.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
