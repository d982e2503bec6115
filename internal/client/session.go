package client

import (
	"context"
	"errors"
	"sync"

	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// State is the session's authentication state.
type State string

const (
	StateSignedOut State = "signed_out"
	StateSignedIn  State = "signed_in"
)

// Session tracks the signed-in user across restarts. It adopts a persisted
// token on Load, persists a fresh one on Verify, and notifies the state-change
// callback whenever the authentication state flips.
type Session struct {
	api   *APIClient
	store *TokenStore

	mu    sync.Mutex
	token string
	user  *payload.UserResponse

	onChange func(State)
}

// NewSession creates a Session over the given API client and token store.
func NewSession(api *APIClient, store *TokenStore) *Session {
	return &Session{
		api:   api,
		store: store,
	}
}

// OnStateChange registers a callback invoked after every state transition.
// The UI layer uses this to switch between the auth and main screens.
func (s *Session) OnStateChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Load restores a previous session from the persisted token. A missing,
// rejected, or unverifiable token downgrades silently to the signed-out
// state; Load only fails on storage errors.
func (s *Session) Load(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		s.setState("", nil)
		return nil
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		_ = s.store.Delete()
		s.setState("", nil)
		return nil
	}

	s.setState(token, user)

	return nil
}

// SignIn requests a verification code for the given email.
func (s *Session) SignIn(ctx context.Context, email string) error {
	return s.api.SignIn(ctx, email)
}

// Verify exchanges the emailed code for a token. On success the token is
// persisted and the session flips to signed-in; a rejected code returns
// false without an error.
func (s *Session) Verify(ctx context.Context, email, code string) (bool, error) {
	result, err := s.api.Verify(ctx, email, code)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			return false, nil
		}
		return false, err
	}

	// Persistence failures degrade the session to in-memory only; the
	// user is still signed in for this run.
	_ = s.store.Save(result.Token)

	s.setState(result.Token, &result.User)

	return true, nil
}

// SignOut discards the token and returns to the signed-out state.
func (s *Session) SignOut() error {
	if err := s.store.Delete(); err != nil {
		return err
	}

	s.setState("", nil)

	return nil
}

// UpdateProfile updates the signed-in user's profile and adopts the
// server's response as the current user.
func (s *Session) UpdateProfile(ctx context.Context, req payload.UpdateProfileRequest) (*payload.UserResponse, error) {
	user, err := s.api.UpdateProfile(ctx, s.Token(), req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user, nil
}

// API exposes the underlying APIClient for calls the session does not
// wrap, such as the public plan and feed listings.
func (s *Session) API() *APIClient {
	return s.api
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (s *Session) CurrentUser() *payload.UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the current bearer token, or the empty string when
// signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// State returns the current authentication state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return StateSignedOut
	}
	return StateSignedIn
}

func (s *Session) setState(token string, user *payload.UserResponse) {
	s.mu.Lock()
	s.token = token
	s.user = user
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		if token == "" {
			onChange(StateSignedOut)
		} else {
			onChange(StateSignedIn)
		}
	}
}
