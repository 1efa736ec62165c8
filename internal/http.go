package app

import (
	_ "embed"
	"log/slog"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"email-intake/internal/config"
	"email-intake/internal/metrics"
	routes "email-intake/internal/routes"
	"email-intake/internal/submission"
)

//go:embed web/templates/index.html.tmpl
var indexTemplate string

//go:embed web/templates/error.html.tmpl
var errorTemplate string

func templates() multitemplate.Render {
	r := multitemplate.New()
	r.AddFromString("index.html.tmpl", indexTemplate)
	r.AddFromString("error.html.tmpl", errorTemplate)
	return r
}

// HTTPServer builds the gin engine serving the form, the intake endpoint
// and the query endpoint on top of svc.
func HTTPServer(cfg *config.Config, svc *submission.Service) *gin.Engine {
	r := gin.Default()
	r.HTMLRender = templates()

	r.Use(securityHeaders)
	// Errors from any later handler, the allow list included, go through
	// the same error page.
	r.Use(routes.ErrorHandler())
	if cfg.AllowedNetworks != "" {
		networks := parseNetworks(cfg.AllowedNetworks)
		slog.Debug("Enabling IP access control", "networks", len(networks))
		r.Use(IPAccessControl(networks))
	}

	// Inject submission service into context
	r.Use(func(c *gin.Context) {
		c.Set(routes.ServiceKey, svc)
		c.Next()
	})

	r.Static("/static", cfg.PublicDir)

	if cfg.Metrics {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	routes.Health(r.Group("/"))
	routes.SubmissionRoutes(r.Group("/"))

	return r
}
