package http

import (
	"net/http"
	"strings"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// sessionParam carries the page load's session id in forms, redirects and
// the /ws and /api/session URLs. A request without it is a fresh page load.
const sessionParam = "session"

// pageSession returns the session named by the request, or opens a new one.
// Each page load that does not name a session gets its own.
func (h *Handler) pageSession(r *http.Request) (*domain.Session, error) {
	if raw := r.URL.Query().Get(sessionParam); raw != "" {
		if id, err := domain.ParseSessionID(raw); err == nil {
			sess, err := h.Sessions.Get(r.Context(), id)
			if err == nil {
				return sess, nil
			}
			log.Debug().Err(err).Str("session_id", raw).Msg("Session does not resolve, opening a new one")
		}
	}
	return h.Sessions.Open(r.Context())
}

// existingSession never opens a session; used where a fresh one makes no sense.
func (h *Handler) existingSession(r *http.Request) (*domain.Session, error) {
	id, err := domain.ParseSessionID(r.FormValue(sessionParam))
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	return h.Sessions.Get(r.Context(), id)
}

func withSession(location string, id domain.SessionID) string {
	sep := "?"
	if strings.Contains(location, "?") {
		sep = "&"
	}
	return location + sep + sessionParam + "=" + id.String()
}

// hintsPath is the origin with the given hints, like a shared link.
func hintsPath(path string, hints domain.URLHints) string {
	if q := hints.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}
