// Package api wires the nwalign HTTP routes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/aria-lang/nwalign/api/handlers"
	"github.com/aria-lang/nwalign/api/middleware"
	"github.com/aria-lang/nwalign/internal/config"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter returns the API mux. Every request gets a request ID, a log line
// and cfg.Server.RequestTimeout to finish.
func NewRouter(cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	align := handlers.NewAlignmentHandler(cfg, logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/alignment", func(r chi.Router) {
			r.Post("/global", align.Global)
			r.Post("/all", align.All)
			r.Post("/table", align.Table)
			r.Post("/score", align.Score)
		})
	})

	// Home page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(homePage))
	})

	return r
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>nwalign API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>nwalign API</h1>
    <p>Needleman-Wunsch global alignment keeping every optimal traceback.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/global</code>
        <p>Best global alignment with its score and the number of optimal paths.</p>
        <pre>{"sequence1": "GATTACA", "sequence2": "GCATGCT"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/all</code>
        <p>Every optimal alignment, up to max_paths.</p>
        <pre>{"sequence1": "A", "sequence2": "T", "scoring": {"transversion": -16}, "max_paths": 10}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/table</code>
        <p>The DP score table and direction sets.</p>
        <pre>{"sequence1": "AG", "sequence2": "AC"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/score</code>
        <p>Optimal score only, in linear memory.</p>
        <pre>{"sequence1": "AG", "sequence2": "AC", "scoring": {"gap": -4}}</pre>
    </div>
</body>
</html>`
