package http

import (
	"net/http"

	"github.com/Wyydra/calling/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/calling/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	Sessions  *service.SessionService
	Hub       *ws.Hub
	Metrics   http.Handler
	StaticDir string
}

func NewHandler(sessions *service.SessionService, hub *ws.Hub, metrics http.Handler, staticDir string) *Handler {
	return &Handler{
		Sessions:  sessions,
		Hub:       hub,
		Metrics:   metrics,
		StaticDir: staticDir,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(h.StaticDir)))
	r.Handle("/static/*", fs)

	r.Get("/", h.ServePage)
	r.Post("/join", h.Join)
	r.Post("/rejoin", h.Rejoin)
	r.Post("/home", h.Home)
	r.Get("/api/session", h.SessionState)
	r.Get("/ws", h.ServeWS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}

	return r
}
