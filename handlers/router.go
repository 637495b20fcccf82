// Package handlers wires the dashboard's HTTP surface: artifact browsing,
// downloads and the AI chat passthrough.
package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aiwiki/aiwiki/internal/artifacts"
	"github.com/aiwiki/aiwiki/internal/config"
	"github.com/aiwiki/aiwiki/pkg/middleware"
)

// Dashboard serves the browsing UI. Artifacts are re-read from disk on every
// request; there is no cache to invalidate.
type Dashboard struct {
	store *artifacts.Store
	chat  *chatClient
}

// NewRouter builds the gin engine from an explicit configuration object.
func NewRouter(cfg *config.Config, store *artifacts.Store) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("dashboard").Parse(dashboardTemplate)))

	h := &Dashboard{
		store: store,
		chat:  newChatClient(cfg.Chat),
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", h.Index)
	r.GET("/view/docs", h.ViewDocs)
	r.GET("/view/html", h.ViewHTML)
	r.GET("/view/diagram", h.ViewDiagram)
	r.GET("/download/:filename", h.Download)
	r.GET("/debug", h.Debug)

	ask := r.Group("/")
	if cfg.RateLimit.Enabled {
		ask.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	ask.POST("/ask", h.Ask)

	return r
}
