package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/rs/zerolog/log"
)

func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.pageSession(r)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open session")
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	hints := domain.HintsFromQuery(r.URL.Query())
	view := h.Sessions.View(sess, hints, r.UserAgent())

	status := http.StatusOK
	if view.Kind == domain.ViewUnsupported {
		status = http.StatusNotAcceptable
	}
	renderPage(w, r, status, newPageData(view, hints, sess.ID))
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	hints := domain.HintsFromQuery(r.URL.Query())

	sess, err := h.existingSession(r)
	if err != nil {
		// the page outlived its session; start over from the same link
		http.Redirect(w, r, hintsPath("/", hints), http.StatusSeeOther)
		return
	}

	option, err := domain.ParseCallOption(r.PostForm.Get("option"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	details, err := domain.NewCallDetails(
		r.PostForm.Get("displayName"),
		option,
		r.PostForm.Get("locator"),
		splitCallees(r.PostForm["callees"]),
		domain.ParseRole(r.PostForm.Get("role")),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.Sessions.StartCall(r.Context(), sess.ID, details, hints)
	if err != nil {
		http.Error(w, err.Error(), joinErrorStatus(err))
		return
	}

	location := res.JoinURL
	if location == "" {
		location = hintsPath("/", hints)
	}
	http.Redirect(w, r, withSession(location, sess.ID), http.StatusSeeOther)
}

func joinErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentity):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAttemptInFlight), errors.Is(err, domain.ErrCallInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRoomProvisioning):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrMissingLocator), errors.Is(err, domain.ErrNoCallees):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// splitCallees accepts one identity per field, or several separated by
// commas or newlines.
func splitCallees(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == '\n' || r == '\r'
		})...)
	}
	return out
}

func (h *Handler) Rejoin(w http.ResponseWriter, r *http.Request) {
	hints := domain.HintsFromQuery(r.URL.Query())
	sess, err := h.existingSession(r)
	if err != nil {
		http.Redirect(w, r, hintsPath("/", hints), http.StatusSeeOther)
		return
	}
	if err := h.Sessions.Rejoin(r.Context(), sess.ID); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID.String()).Msg("Failed to rejoin")
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	location := hintsPath("/", hints)
	if joinURL := sess.Snapshot().JoinURL; joinURL != "" {
		location = joinURL
	}
	http.Redirect(w, r, withSession(location, sess.ID), http.StatusSeeOther)
}

// Home drops the call and any URL hints but keeps the page's credentials.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess, err := h.existingSession(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := h.Sessions.GoHome(r.Context(), sess.ID); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID.String()).Msg("Failed to go home")
	}
	http.Redirect(w, r, withSession("/", sess.ID), http.StatusSeeOther)
}

func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	sess, err := h.existingSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	hints := domain.HintsFromQuery(r.URL.Query())
	view := h.Sessions.View(sess, hints, r.UserAgent())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newSessionDTO(sess.Snapshot(), view)); err != nil {
		log.Error().Err(err).Msg("Failed to encode session state")
	}
}
