package http

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter builds the service's HTTP handler: routes, middleware and
// OpenTelemetry instrumentation.
func NewRouter(menu *MenuHandler, events *EventsHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	menu.Register(mux)
	mux.Handle("/api/v1/events", events)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := Chain(mux,
		RequestID(),
		Logging(logger),
		Recover(logger),
		RequestSizeLimit(MaxBodyBytes),
	)
	return otelhttp.NewHandler(h, "menucat-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
	)
}
