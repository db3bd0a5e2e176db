// Package authclient is the client-side session holder for Go consumers of
// the employee-management API. It keeps at most one access token and one
// refresh token, mirrors them to durable storage for restart survival,
// schedules a proactive refresh ahead of access-token expiry, and enforces a
// hard session ceiling independent of refresh activity.
package authclient

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/token"
)

const (
	// refreshLead is how long before expiry the proactive refresh fires.
	refreshLead = 30 * time.Second
	// minRefreshDelay is the floor on the refresh timer, so a token that is
	// nearly expired still gets a scheduled (not immediate re-entrant) refresh.
	minRefreshDelay = 10 * time.Second
	// sessionCeiling forces logout this long after login regardless of
	// refresh activity.
	sessionCeiling = time.Hour
)

// Session is the server API surface the store depends on.
type Session interface {
	Login(ctx context.Context, email, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID string) error
}

// Store holds the client session. All methods are safe for concurrent use;
// the two timers (proactive refresh, session ceiling) are independently
// cancellable and each concern owns at most one pending timer.
type Store struct {
	api     Session
	storage TokenStorage
	log     zerolog.Logger

	mu     sync.Mutex
	pair   TokenPair
	claims *token.Claims

	refreshTimer timerHandle
	ceilingTimer timerHandle
}

// New constructs a Store. storage may be nil for an ephemeral in-memory
// session.
func New(api Session, storage TokenStorage, log zerolog.Logger) *Store {
	if storage == nil {
		storage = &memoryStorage{}
	}
	return &Store{api: api, storage: storage, log: log}
}

// Load restores a persisted session. An expired access token triggers an
// immediate refresh; a valid one arms the proactive refresh timer. With no
// stored tokens the store stays anonymous.
func (s *Store) Load(ctx context.Context) error {
	pair, err := s.storage.Load()
	if err != nil {
		return err
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil
	}

	claims, err := token.DecodeUnverified(pair.AccessToken)
	if err != nil {
		// Corrupt storage is treated as logged out.
		s.log.Warn().Err(err).Msg("stored access token undecodable, clearing session")
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.pair = pair
	s.claims = claims
	s.mu.Unlock()

	if expiry := claims.ExpiresAt; expiry == nil || !expiry.After(time.Now()) {
		if err := s.Refresh(ctx); err != nil {
			return err
		}
	} else {
		s.armRefresh(time.Until(expiry.Time))
	}

	s.armCeiling()
	return nil
}

// Login authenticates against the server, persists the returned pair, and
// arms both timers.
func (s *Store) Login(ctx context.Context, email, password string) error {
	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.adopt(pair); err != nil {
		return err
	}
	s.armCeiling()
	return nil
}

// Refresh exchanges the held refresh token for a new access token and re-arms
// the proactive refresh timer. Any failure falls back to logout: a stale or
// rejected refresh token means the session is gone server-side.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.pair.RefreshToken
	s.mu.Unlock()

	if refreshToken == "" {
		return nil
	}

	accessToken, err := s.api.Refresh(ctx, refreshToken)
	if err != nil {
		s.log.Info().Err(err).Msg("refresh failed, logging out")
		_ = s.Logout(ctx)
		return err
	}

	return s.adopt(TokenPair{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Logout cancels both timers, clears held and stored tokens, and tells the
// server to revoke the refresh token. Idempotent.
func (s *Store) Logout(ctx context.Context) error {
	s.refreshTimer.cancel()
	s.ceilingTimer.cancel()

	s.mu.Lock()
	userID := ""
	if s.claims != nil {
		userID = s.claims.UserID
	}
	s.pair = TokenPair{}
	s.claims = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		return err
	}

	if userID != "" {
		// Best effort: local state is already cleared either way.
		if err := s.api.Logout(ctx, userID); err != nil {
			s.log.Warn().Err(err).Msg("server logout failed")
		}
	}
	return nil
}

// AccessToken returns the held access token, empty when anonymous.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.AccessToken
}

// Claims returns the decoded claims of the held access token, nil when
// anonymous.
func (s *Store) Claims() *token.Claims {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claims
}

// adopt decodes and stores a new token pair, then re-arms the refresh timer
// from the new expiry.
func (s *Store) adopt(pair TokenPair) error {
	claims, err := token.DecodeUnverified(pair.AccessToken)
	if err != nil {
		return err
	}
	if err := s.storage.Save(pair); err != nil {
		return err
	}

	s.mu.Lock()
	s.pair = pair
	s.claims = claims
	s.mu.Unlock()

	if claims.ExpiresAt != nil {
		s.armRefresh(time.Until(claims.ExpiresAt.Time))
	}
	return nil
}

// armRefresh schedules the proactive refresh at refreshLead before expiry,
// never sooner than minRefreshDelay from now. Re-arming cancels any pending
// refresh timer.
func (s *Store) armRefresh(untilExpiry time.Duration) {
	delay := untilExpiry - refreshLead
	if delay < minRefreshDelay {
		delay = minRefreshDelay
	}
	s.refreshTimer.arm(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = s.Refresh(ctx)
	})
}

// armCeiling starts the hard session ceiling. Refresh activity does not
// extend it.
func (s *Store) armCeiling() {
	s.ceilingTimer.arm(sessionCeiling, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.log.Info().Msg("session ceiling reached, logging out")
		_ = s.Logout(ctx)
	})
}
