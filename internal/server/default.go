package server

import (
	"net/http"

	"github.com/pulseworks/worktrack/pkg/application"
	"github.com/pulseworks/worktrack/pkg/configuration"
	"github.com/pulseworks/worktrack/pkg/constants"
	"github.com/pulseworks/worktrack/pkg/httpapi"
	"github.com/pulseworks/worktrack/pkg/metrics"
	"github.com/pulseworks/worktrack/pkg/middleware"
	"github.com/pulseworks/worktrack/pkg/server"
)

func notFound(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
}

// Default assembles the HTTP server: the shared middleware chain plus every
// controller the registered modules contributed.
func Default(conf *configuration.Configuration, app application.Application) (*server.HTTPServer, error) {
	app.RegisterMiddleware(
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.LoggerKey, conf.Logger()),
		middleware.ProvidePool(app.DB()),
		middleware.ProvideCaller(conf.CallerIDHeader, conf.CallerRoleHeader),
		middleware.WithLogger(conf.Logger()),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}
	return server.NewHTTPServer(
		app,
		http.HandlerFunc(notFound),
		http.HandlerFunc(methodNotAllowed),
	), nil
}
