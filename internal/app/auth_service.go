package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer signs session tokens for an identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (token string, expiresAt time.Time, err error)
}

// Registration carries the fields of a new account.
type Registration struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      domain.Role
}

// Session is an issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService registers users and opens sessions for them.
type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a service with the given adapters.
func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account with a hashed password.
func (s *AuthService) Register(ctx context.Context, r Registration) (domain.User, error) {
	if !r.Role.Valid() {
		return domain.User{}, &domain.ValidationError{Field: "role", Reason: "must be seller or buyer"}
	}
	if len(r.Password) < MinPasswordLength {
		return domain.User{}, &domain.ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}

	// Check username uniqueness before hashing.
	if _, err := s.users.GetUserByUsername(ctx, r.Username); err == nil {
		return domain.User{}, &domain.UserConflictError{Field: "username", Value: r.Username}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("looking up username: %w", err)
	}

	hash, err := s.hasher.Hash(r.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	id, err := generateID()
	if err != nil {
		return domain.User{}, fmt.Errorf("generating user id: %w", err)
	}

	user := domain.NewUser(id, r.Username, r.Email, r.FirstName, r.LastName, r.Role, hash)
	if err := s.users.CreateUser(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, Session, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, Session{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, Session{}, err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return domain.User{}, Session{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return domain.User{}, Session{}, fmt.Errorf("issuing session token: %w", err)
	}
	return user, Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Me returns the account behind an identity.
func (s *AuthService) Me(ctx context.Context, identity domain.Identity) (domain.User, error) {
	return s.users.GetUserByID(ctx, identity.ID)
}
