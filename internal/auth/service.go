// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
service.go - Account Registration and Login

Registration creates a user and a fresh tenant in one transaction; the
tenant id is a random UUID. Login verifies the bcrypt hash and issues an
HS256 token carrying the user id (sub) and tenant id.

Unknown emails and wrong passwords produce the same ErrInvalidCredentials so
responses do not reveal which accounts exist.
*/

//nolint:staticcheck // File documentation, not package doc
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/logging"
)

var (
	// ErrInvalidCredentials is returned by Login for any email/password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned by Register for an already registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserStore is the persistence the account service needs. *database.DB implements it.
type UserStore interface {
	CreateUser(ctx context.Context, user *database.User) error
	GetUserByEmail(ctx context.Context, email string) (*database.User, error)
}

// Token is the login response.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	TenantID    string    `json:"tenant_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ClientInfo identifies the caller for security logging.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// Service registers accounts and issues tokens.
type Service struct {
	users    UserStore
	jwt      *JWTManager
	policy   config.PasswordPolicy
	security *logging.SecurityLogger
}

// NewService creates the account service with the default password policy.
func NewService(users UserStore, jwtManager *JWTManager) *Service {
	return &Service{
		users:    users,
		jwt:      jwtManager,
		policy:   config.DefaultPasswordPolicy(),
		security: logging.NewSecurityLogger(),
	}
}

// JWT returns the token manager.
func (s *Service) JWT() *JWTManager {
	return s.jwt
}

// Register creates a user owning a new tenant.
func (s *Service) Register(ctx context.Context, email, password string, client ClientInfo) (*database.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.policy.Check(password, email); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &database.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		TenantID:     uuid.NewString(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return nil, err
	}

	s.security.LogRegistration(user.UserID, user.Email, user.TenantID, client.IP)
	return user, nil
}

// Login verifies the password and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string, client ClientInfo) (*Token, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.security.LogLoginFailure(email, client.IP, client.UserAgent, "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		s.security.LogLoginFailure(email, client.IP, client.UserAgent, "wrong password")
		return nil, ErrInvalidCredentials
	}

	signed, err := s.jwt.GenerateToken(user.UserID, user.TenantID)
	if err != nil {
		return nil, err
	}

	s.security.LogLoginSuccess(user.UserID, user.Email, user.TenantID, client.IP, client.UserAgent)

	return &Token{
		AccessToken: signed,
		TokenType:   "bearer",
		TenantID:    user.TenantID,
		ExpiresAt:   s.jwt.now().Add(s.jwt.TTL()).UTC(),
	}, nil
}
