package services

import (
	"context"
	"sync"

	"travelportal/internal/domain/models"
)

// Authenticator is the auth contract a Session needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	LoginWithPhone(ctx context.Context, phone, password string) (AuthResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (models.User, error)
}

var _ Authenticator = AuthService{}

// Session holds one client's token and caches its user. The cache is filled on
// the first User call and only Login, LoginWithPhone and Logout clear it.
type Session struct {
	Auth Authenticator

	mu     sync.Mutex
	token  string
	user   *models.User
	loaded bool
}

func NewSession(auth Authenticator, token string) *Session {
	return &Session{Auth: auth, token: token}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the cached user, fetching it once. A nil user with no error means anonymous.
func (s *Session) User(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.user, nil
	}
	if s.token == "" {
		s.loaded = true
		return nil, nil
	}
	u, err := s.Auth.CurrentUser(ctx, s.token)
	if err != nil {
		return nil, err
	}
	s.user, s.loaded = &u, true
	return s.user, nil
}

func (s *Session) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return s.adopt(s.Auth.Login(ctx, email, password))
}

func (s *Session) LoginWithPhone(ctx context.Context, phone, password string) (AuthResult, error) {
	return s.adopt(s.Auth.LoginWithPhone(ctx, phone, password))
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		if err := s.Auth.Logout(ctx, s.token); err != nil {
			return err
		}
	}
	s.token, s.user, s.loaded = "", nil, true
	return nil
}

func (s *Session) adopt(res AuthResult, err error) (AuthResult, error) {
	if err != nil {
		return res, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := res.User
	s.token, s.user, s.loaded = res.Token, &u, true
	return res, nil
}
