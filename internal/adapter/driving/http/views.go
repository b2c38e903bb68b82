package http

import (
	"context"
	"io"
	"net/http"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
)

type optionData struct {
	Value domain.CallOption
	Label string
	// NeedsLocator shows the locator field; Direct shows the callees field.
	NeedsLocator bool
	Direct       bool
}

var callOptions = []optionData{
	{Value: domain.OptionACSCall, Label: "Start or join a group call", NeedsLocator: true},
	{Value: domain.OptionTeamsMeeting, Label: "Join a Teams meeting", NeedsLocator: true},
	{Value: domain.OptionRooms, Label: "Join a room", NeedsLocator: true},
	{Value: domain.OptionStartRooms, Label: "Start a new room"},
	{Value: domain.OptionTeamsAdhoc, Label: "Call Teams users", Direct: true},
	{Value: domain.OptionOneToN, Label: "Call users or phone numbers", Direct: true},
}

var roles = []domain.Role{domain.RolePresenter, domain.RoleAttendee, domain.RoleConsumer}

type pageData struct {
	Kind      domain.ViewKind
	Title     string
	SessionID string
	// ShareURL replaces the address bar on the call view so the session id
	// never ends up in a shared link.
	ShareURL     string
	JoinAction   string
	RejoinAction string
	Joining      bool
	Options      []optionData
	Roles        []domain.Role
	Handoff      *handoffDTO
}

func newPageData(view domain.View, hints domain.URLHints, sessionID domain.SessionID) pageData {
	data := pageData{
		Kind:         view.Kind,
		Title:        view.Title,
		SessionID:    sessionID.String(),
		ShareURL:     hintsPath("/", hints),
		JoinAction:   hintsPath("/join", hints),
		RejoinAction: hintsPath("/rejoin", hints),
		Joining:      view.JoiningExistingCall,
		Roles:        roles,
		Handoff:      newHandoffDTO(view.Handoff),
	}
	for _, o := range callOptions {
		if view.JoiningExistingCall && o.Value.CreatesCall() {
			continue
		}
		data.Options = append(data.Options, o)
	}
	return data
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	templ.Handler(page(data),
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			log.Error().Err(err).Str("view", string(data.Kind)).Msg("Failed to render page")
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "render failed", http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}

// markup writes HTML and keeps the first error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) render(ctx context.Context, c templ.Component) {
	if m.err == nil {
		m.err = c.Render(ctx, m.w)
	}
}

func page(d pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		m.text(d.Title)
		m.raw(`</title><link rel="stylesheet" href="/static/app.css"></head>`)
		m.raw(`<body data-view="`)
		m.text(string(d.Kind))
		m.raw(`" data-session="`)
		m.text(d.SessionID)
		if d.Kind == domain.ViewCall {
			m.raw(`" data-share-url="`)
			m.text(d.ShareURL)
		}
		m.raw(`">`)
		m.render(ctx, viewBody(d))
		m.raw(`<script src="/static/page.js"></script></body></html>`)
		return m.err
	})
}

func viewBody(d pageData) templ.Component {
	switch d.Kind {
	case domain.ViewUnsupported:
		return unsupportedView()
	case domain.ViewHome:
		return homeView(d)
	case domain.ViewLoading:
		return loadingView()
	case domain.ViewCall:
		return callView(d)
	default:
		return errorView(d)
	}
}

func unsupportedView() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<main class="unsupported">`+
			`<h1>This browser is not supported</h1>`+
			`<p>On iPhone, open this page in Safari to join the call.</p></main>`)
		return err
	})
}

func sessionInput(m *markup, sessionID string) {
	m.raw(`<input type="hidden" name="session" value="`)
	m.text(sessionID)
	m.raw(`">`)
}

func homeView(d pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		heading, submit := "Start or join a call", "Next"
		if d.Joining {
			heading, submit = "Join call", "Join call"
		}
		m.raw(`<main class="home"><h1>`)
		m.text(heading)
		m.raw(`</h1><form class="join" method="post" action="`)
		m.text(d.JoinAction)
		m.raw(`">`)
		sessionInput(m, d.SessionID)
		m.raw(`<label>Name <input name="displayName" required maxlength="256"></label>`)
		m.raw(`<fieldset><legend>Call type</legend>`)
		for i, o := range d.Options {
			m.raw(`<label><input type="radio" name="option" value="`)
			m.text(string(o.Value))
			m.raw(`"`)
			if i == 0 {
				m.raw(` checked`)
			}
			if o.NeedsLocator {
				m.raw(` data-locator`)
			}
			if o.Direct {
				m.raw(` data-direct`)
			}
			m.raw(`> `)
			m.text(o.Label)
			m.raw(`</label>`)
		}
		m.raw(`</fieldset>`)
		if !d.Joining {
			m.raw(`<label class="locator">Group id, meeting link or room id <input name="locator"></label>`)
			m.raw(`<label class="callees" hidden>Callees, one per line <textarea name="callees" rows="3"></textarea></label>`)
		}
		m.raw(`<label>Room role <select name="role">`)
		for _, role := range d.Roles {
			m.raw(`<option value="`)
			m.text(string(role))
			m.raw(`">`)
			m.text(string(role))
			m.raw(`</option>`)
		}
		m.raw(`</select></label><button type="submit">`)
		m.text(submit)
		m.raw(`</button></form></main>`)
		return m.err
	})
}

func errorView(d pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw(`<main class="error"><h1>Error getting user credentials from server</h1>`)
		m.raw(`<p>Ensure the sample server is running.</p>`)
		m.raw(`<form method="post" action="`)
		m.text(d.RejoinAction)
		m.raw(`">`)
		sessionInput(m, d.SessionID)
		m.raw(`<button type="submit">Retry</button></form>`)
		m.raw(`<form method="post" action="/home">`)
		sessionInput(m, d.SessionID)
		m.raw(`<button type="submit">Go home</button></form></main>`)
		return m.err
	})
}

func loadingView() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<main class="loading" aria-live="assertive">`+
			`<p>Getting user credentials from server</p></main>`)
		return err
	})
}

func callView(d pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw(`<main class="call" id="call-root"></main>`)
		m.render(ctx, templ.JSONScript("handoff", d.Handoff))
		m.raw(`<script src="/static/call.js"></script>`)
		return m.err
	})
}
