package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

type PageState string

const (
	PageHome PageState = "home"
	PageCall PageState = "call"
)

const (
	eventStart  = "start"
	eventRejoin = "rejoin"
	eventHome   = "home"
)

type TransitionFunc func(from, to PageState)

// Session is the state of one page load. All fields are guarded by mu and
// read through Snapshot.
type Session struct {
	ID        SessionID
	CreatedAt time.Time

	mu          sync.Mutex
	page        *fsm.FSM
	credentials *Credentials
	credErr     error
	fetching    bool
	displayName string
	target      CallTarget
	joinURL     string
	attempting  bool
}

func NewSession(onTransition TransitionFunc) *Session {
	s := &Session{
		ID:        NewSessionID(),
		CreatedAt: time.Now(),
	}
	s.page = fsm.NewFSM(
		string(PageHome),
		fsm.Events{
			{Name: eventStart, Src: []string{string(PageHome)}, Dst: string(PageCall)},
			{Name: eventRejoin, Src: []string{string(PageCall)}, Dst: string(PageCall)},
			{Name: eventHome, Src: []string{string(PageHome), string(PageCall)}, Dst: string(PageHome)},
		},
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				if onTransition != nil {
					onTransition(PageState(e.Src), PageState(e.Dst))
				}
			},
		},
	)
	return s
}

// fire treats a self transition (rejoin, home from home) as success.
func (s *Session) fire(ctx context.Context, event string) error {
	err := s.page.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return err
	}
	return nil
}

func (s *Session) Page() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PageState(s.page.Current())
}

// BeginCredentialFetch marks a fetch as running. It returns false if one
// already is.
func (s *Session) BeginCredentialFetch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetching {
		return false
	}
	s.fetching = true
	s.credErr = nil
	return true
}

func (s *Session) SetCredentials(c Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	s.credErr = nil
	s.credentials = &c
}

func (s *Session) SetCredentialError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	s.credErr = err
}

// Credentials returns the fetched credentials, or false while none are held.
func (s *Session) Credentials() (Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credentials == nil {
		return Credentials{}, false
	}
	return *s.credentials, true
}

// BeginAttempt claims the session for one home form submission.
func (s *Session) BeginAttempt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempting {
		return ErrAttemptInFlight
	}
	if PageState(s.page.Current()) != PageHome {
		return ErrCallInProgress
	}
	s.attempting = true
	return nil
}

func (s *Session) EndAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempting = false
}

// StartCall freezes the resolved target and moves the page to call.
func (s *Session) StartCall(ctx context.Context, displayName string, target CallTarget, joinURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(ctx, eventStart); err != nil {
		return err
	}
	s.displayName = displayName
	s.target = target
	s.joinURL = joinURL
	return nil
}

func (s *Session) Rejoin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fire(ctx, eventRejoin)
}

// GoHome drops the call attempt but keeps the credentials.
func (s *Session) GoHome(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(ctx, eventHome); err != nil {
		return err
	}
	s.displayName = ""
	s.target = nil
	s.joinURL = ""
	return nil
}

type SessionSnapshot struct {
	ID                  SessionID
	Page                PageState
	Credentials         *Credentials
	CredentialsFailed   bool
	FetchingCredentials bool
	DisplayName         string
	Target              CallTarget
	JoinURL             string
	Attempting          bool
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := SessionSnapshot{
		ID:                  s.ID,
		Page:                PageState(s.page.Current()),
		CredentialsFailed:   s.credErr != nil,
		FetchingCredentials: s.fetching,
		DisplayName:         s.displayName,
		Target:              s.target,
		JoinURL:             s.joinURL,
		Attempting:          s.attempting,
	}
	if s.credentials != nil {
		c := *s.credentials
		snap.Credentials = &c
	}
	return snap
}

// SessionUpdate is pushed to subscribed tabs; they re-render on receipt.
type SessionUpdate struct {
	SessionID         SessionID
	Page              PageState
	CredentialsReady  bool
	CredentialsFailed bool
	JoinURL           string
}

func (s SessionSnapshot) Update() SessionUpdate {
	return SessionUpdate{
		SessionID:         s.ID,
		Page:              s.Page,
		CredentialsReady:  s.Credentials != nil,
		CredentialsFailed: s.CredentialsFailed,
		JoinURL:           s.JoinURL,
	}
}
