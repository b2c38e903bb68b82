package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/Wyydra/calling/internal/core/port"
	"github.com/rs/zerolog/log"
)

// SessionService owns every session's lifecycle: credential acquisition,
// the home -> call transition and the screen a tab should show.
type SessionService struct {
	repo         port.SessionRepository
	issuer       port.CredentialIssuer
	calls        *CallService
	gateway      port.SessionGateway
	metrics      port.Metrics
	fetchTimeout time.Duration
	appTitle     string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSessionService(
	repo port.SessionRepository,
	issuer port.CredentialIssuer,
	calls *CallService,
	gateway port.SessionGateway,
	metrics port.Metrics,
	fetchTimeout time.Duration,
	appTitle string,
) *SessionService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionService{
		repo:         repo,
		issuer:       issuer,
		calls:        calls,
		gateway:      gateway,
		metrics:      metrics,
		fetchTimeout: fetchTimeout,
		appTitle:     appTitle,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Open creates a session and starts fetching its credentials in the background.
func (s *SessionService) Open(ctx context.Context) (*domain.Session, error) {
	sess := domain.NewSession(s.metrics.PageTransition)
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	log.Info().Str("session_id", sess.ID.String()).Msg("Session opened")
	s.fetchCredentials(sess)
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.repo.Get(ctx, id)
}

func (s *SessionService) fetchCredentials(sess *domain.Session) {
	if !sess.BeginCredentialFetch() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		l := log.With().Str("session_id", sess.ID.String()).Logger()

		ctx, cancel := context.WithTimeout(s.ctx, s.fetchTimeout)
		defer cancel()

		creds, err := s.issuer.IssueCredentials(ctx)
		if err != nil {
			l.Error().Err(err).Msg("Failed to fetch user credentials")
			sess.SetCredentialError(err)
			s.metrics.CredentialsFetched(false)
		} else {
			l.Info().Str("user_id", creds.User.RawID).Time("expires_on", creds.ExpiresOn).Msg("User credentials fetched")
			sess.SetCredentials(creds)
			s.metrics.CredentialsFetched(true)
		}
		s.notify(sess)
	}()
}

// StartCall resolves the submission and moves the session to the call page.
// Only one attempt per session runs at a time.
func (s *SessionService) StartCall(ctx context.Context, id domain.SessionID, details domain.CallDetails, hints domain.URLHints) (Resolution, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return Resolution{}, err
	}
	if err := sess.BeginAttempt(); err != nil {
		s.metrics.JoinFailed(failureReason(err))
		return Resolution{}, err
	}
	defer sess.EndAttempt()

	// Credentials may still be in flight; only room targets need them now.
	creds, _ := sess.Credentials()

	res, err := s.calls.Resolve(ctx, creds.User, details, hints)
	if err != nil {
		s.metrics.JoinFailed(failureReason(err))
		log.Error().Err(err).Str("session_id", id.String()).Str("option", string(details.Option)).Msg("Failed to resolve call target")
		return Resolution{}, err
	}

	if err := sess.StartCall(ctx, details.DisplayName, res.Target, res.JoinURL); err != nil {
		return Resolution{}, err
	}
	log.Info().
		Str("session_id", id.String()).
		Str("target", string(res.Target.Kind())).
		Str("join_url", res.JoinURL).
		Msg("Call target resolved")

	s.notify(sess)
	return res, nil
}

// Rejoin re-enters the call page and retries the credential fetch when the
// previous one failed.
func (s *SessionService) Rejoin(ctx context.Context, id domain.SessionID) error {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := sess.Rejoin(ctx); err != nil {
		return err
	}
	snap := sess.Snapshot()
	if snap.Credentials == nil && !snap.FetchingCredentials {
		s.fetchCredentials(sess)
	}
	s.notify(sess)
	return nil
}

func (s *SessionService) GoHome(ctx context.Context, id domain.SessionID) error {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := sess.GoHome(ctx); err != nil {
		return err
	}
	s.notify(sess)
	return nil
}

// View picks the screen for one tab of the session.
func (s *SessionService) View(sess *domain.Session, hints domain.URLHints, userAgent string) domain.View {
	return domain.ViewFor(sess.Snapshot(), hints, domain.SupportedPlatform(userAgent), s.appTitle)
}

func (s *SessionService) notify(sess *domain.Session) {
	if err := s.gateway.NotifySessionChanged(s.ctx, sess.Snapshot().Update()); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID.String()).Msg("Failed to push session update")
	}
}

// Close cancels pending credential fetches and waits for them to return.
func (s *SessionService) Close() {
	s.cancel()
	s.wg.Wait()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentity):
		return "invalid_identity"
	case errors.Is(err, domain.ErrRoomProvisioning):
		return "room_provisioning"
	case errors.Is(err, domain.ErrMissingLocator):
		return "missing_locator"
	case errors.Is(err, domain.ErrNoCallees):
		return "no_callees"
	case errors.Is(err, domain.ErrAttemptInFlight), errors.Is(err, domain.ErrCallInProgress):
		return "in_flight"
	default:
		return "other"
	}
}

// RunJanitor drops sessions older than ttl every interval until ctx ends.
func (s *SessionService) RunJanitor(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.repo.DeleteCreatedBefore(ctx, now.Add(-ttl))
			if err != nil {
				log.Error().Err(err).Msg("Failed to sweep sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int("count", n).Msg("Expired sessions removed")
			}
		}
	}
}
