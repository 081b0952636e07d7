package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/utils"
	"travelportal/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token revoked")
)

type UserStore interface {
	Create(ctx context.Context, u models.User, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, string, error)
	FindByPhone(ctx context.Context, phone string) (models.User, string, error)
}

// TokenDenylist remembers logged-out token IDs until the token expires.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Claims is the JWT body issued on login.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthResult is returned by every successful login or signup.
type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

type AuthService struct {
	Users     UserStore
	Tokens    TokenDenylist
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 24 * time.Hour
}

func (s AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, hash, err := s.Users.FindByEmail(ctx, email)
	return s.finishLogin(u, hash, password, err, "login")
}

func (s AuthService) LoginWithPhone(ctx context.Context, phone, password string) (AuthResult, error) {
	u, hash, err := s.Users.FindByPhone(ctx, phone)
	return s.finishLogin(u, hash, password, err, "login_phone")
}

func (s AuthService) finishLogin(u models.User, hash, password string, lookupErr error, action string) (AuthResult, error) {
	if lookupErr != nil {
		if domain.IsNotFound(lookupErr) {
			utils.LogEvent(s.RequestID, "auth", action, "user tidak ditemukan")
			return AuthResult{}, domain.UnauthorizedError{Msg: "Invalid email/phone or password", Err: ErrInvalidCredentials}
		}
		return AuthResult{}, lookupErr
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		utils.LogEvent(s.RequestID, "auth", action, fmt.Sprintf("password salah user_id=%d", u.ID))
		return AuthResult{}, domain.UnauthorizedError{Msg: "Invalid email/phone or password", Err: ErrInvalidCredentials}
	}
	res, err := s.issue(u)
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", action, fmt.Sprintf("user_id=%d", u.ID))
	return res, nil
}

// Signup validates the form, stores the user and logs them in.
func (s AuthService) Signup(ctx context.Context, in models.SignupInput) (AuthResult, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	c := validation.NewChecker().
		Required("name", in.Name, "Name is required").
		Required("email", in.Email, "Email is required").
		Email("email", in.Email).
		Check(len(in.Password) >= minPasswordLength, "password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	if in.Phone != "" {
		c.Phone("phone", in.Phone)
	}
	if errs := c.Errors(); !errs.Empty() {
		return AuthResult{}, domain.FieldErrors(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.Users.Create(ctx, models.User{Name: in.Name, Email: in.Email, Phone: in.Phone, Role: domain.RoleCustomer}, string(hash))
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "signup", fmt.Sprintf("user_id=%d", u.ID))
	return s.issue(u)
}

// Logout revokes the token until its natural expiry.
func (s AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if s.Tokens == nil {
		return nil
	}
	until := s.now().Add(s.ttl())
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.Tokens.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	utils.LogEvent(s.RequestID, "auth", "logout", fmt.Sprintf("user_id=%d", claims.UserID))
	return nil
}

// Verify checks signature, expiry and the denylist.
func (s AuthService) Verify(ctx context.Context, token string) (Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Claims{}, err
	}
	if s.Tokens != nil && claims.ID != "" {
		revoked, err := s.Tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Claims{}, fmt.Errorf("check token: %w", err)
		}
		if revoked {
			return Claims{}, domain.UnauthorizedError{Msg: "Session has ended, please log in again", Err: ErrTokenRevoked}
		}
	}
	return claims, nil
}

func (s AuthService) CurrentUser(ctx context.Context, token string) (models.User, error) {
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if domain.IsNotFound(err) {
		return models.User{}, domain.UnauthorizedError{Msg: "Account no longer exists", Err: err}
	}
	return u, err
}

func (s AuthService) issue(u models.User) (AuthResult, error) {
	now := s.now()
	exp := now.Add(s.ttl())
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{Token: signed, ExpiresAt: exp, User: u}, nil
}

func (s AuthService) parse(token string) (Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Claims{}, domain.UnauthorizedError{Msg: "Missing token"}
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, domain.UnauthorizedError{Msg: "Invalid or expired token", Err: err}
	}
	return claims, nil
}
