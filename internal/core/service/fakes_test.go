package service

import (
	"context"
	"sync"
	"time"

	"github.com/Wyydra/calling/internal/core/domain"
)

// fakeRooms records provisioning and membership calls.
type fakeRooms struct {
	mu        sync.Mutex
	roomID    string
	createErr error
	addErr    error
	created   int
	added     []addedUser
}

type addedUser struct {
	userID, roomID string
	role           domain.Role
}

func (f *fakeRooms) CreateRoom(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return f.roomID, f.createErr
}

func (f *fakeRooms) AddUserToRoom(ctx context.Context, userID, roomID string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, addedUser{userID, roomID, role})
	return nil
}

func (f *fakeRooms) addedUsers() []addedUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]addedUser(nil), f.added...)
}

// fakeMetrics counts what the services report.
type fakeMetrics struct {
	mu          sync.Mutex
	credentials map[bool]int
	rooms       map[bool]int
	resolved    map[domain.TargetKind]int
	failures    map[string]int
	transitions int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		credentials: map[bool]int{},
		rooms:       map[bool]int{},
		resolved:    map[domain.TargetKind]int{},
		failures:    map[string]int{},
	}
}

func (m *fakeMetrics) CredentialsFetched(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentials[ok]++
}

func (m *fakeMetrics) RoomProvisioned(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[ok]++
}

func (m *fakeMetrics) Resolved(kind domain.TargetKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved[kind]++
}

func (m *fakeMetrics) JoinFailed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[reason]++
}

func (m *fakeMetrics) PageTransition(from, to domain.PageState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions++
}

func (m *fakeMetrics) failureCount(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[reason]
}

func (m *fakeMetrics) credentialCount(ok bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credentials[ok]
}

// fakeIssuer hands out queued results; the last one repeats.
type fakeIssuer struct {
	mu      sync.Mutex
	results []issueResult
	calls   int
	block   chan struct{}
}

type issueResult struct {
	creds domain.Credentials
	err   error
}

func (f *fakeIssuer) IssueCredentials(ctx context.Context) (domain.Credentials, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return domain.Credentials{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	return f.results[i].creds, f.results[i].err
}

func (f *fakeIssuer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeGateway keeps every pushed update.
type fakeGateway struct {
	mu      sync.Mutex
	updates []domain.SessionUpdate
}

func (g *fakeGateway) NotifySessionChanged(ctx context.Context, update domain.SessionUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates = append(g.updates, update)
	return nil
}

func (g *fakeGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.updates)
}

// fakeRepo is a plain map store.
type fakeRepo struct {
	mu       sync.Mutex
	sessions map[domain.SessionID]*domain.Session
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: map[domain.SessionID]*domain.Session{}}
}

func (r *fakeRepo) Save(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeRepo) DeleteCreatedBefore(ctx context.Context, t time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.CreatedAt.Before(t) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
