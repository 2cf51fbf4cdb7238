package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaminalder/tic-tac-toe-bot/internal/app"
	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
)

// Options tunes the HTTP surface. Zero values fall back to defaults.
type Options struct {
	Logger            *slog.Logger
	DefaultDifficulty bot.Difficulty
	Heartbeat         time.Duration
}

// NewServer wires routes and returns an http.Handler. It installs a
// renderer on s so broadcasts carry the board fragment.
func NewServer(s *app.Service, sel *bot.Selector, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 15 * time.Second
	}
	h := &handlers{svc: s, sel: sel, tpl: loadTemplates(), level: opts.DefaultDifficulty, heartbeat: opts.Heartbeat}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/join", h.join)
		r.Post("/play", h.play)
		r.Post("/reset", h.reset)
		r.Post("/reset-score", h.resetScore)
		r.Post("/difficulty", h.difficulty)
		r.Get("/events", h.events)
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", h.apiEvaluate)
		r.Post("/move", h.apiMove)
	})
	return r
}

// requestLogger logs method, path, status, bytes and duration through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"dur", time.Since(start).Round(time.Millisecond),
				"req_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
