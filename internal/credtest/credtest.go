// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package credtest is an in-memory credential service for tests and offline
// demos. It honors the same contract as the HTTP client and mints real signed
// JWTs, so consumers that inspect token expiry behave the same as against the
// live service.
package credtest

import (
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"passgate/cli/internal/errs"
)

// DefaultTokenTTL is how long minted tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

type record struct {
	id        string
	name      string
	email     string
	password  string
	createdAt time.Time
}

// Service stores accounts in memory and issues HS256-signed tokens.
type Service struct {
	mu       sync.Mutex
	users    map[string]*record // keyed by lowercased email
	revoked  map[string]struct{}
	secret   []byte
	tokenTTL time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTokenTTL overrides the lifetime of minted tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Service) { s.tokenTTL = d }
}

// WithUser seeds an account so Login succeeds without a prior Register.
func WithUser(name, email, password string) Option {
	return func(s *Service) {
		s.users[strings.ToLower(email)] = &record{
			id:        uuid.NewString(),
			name:      name,
			email:     email,
			password:  password,
			createdAt: time.Now().UTC(),
		}
	}
}

// New builds an empty Service with a random signing secret.
func New(opts ...Option) *Service {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("credtest: cannot read random secret: " + err.Error())
	}
	s := &Service{
		users:    make(map[string]*record),
		revoked:  make(map[string]struct{}),
		secret:   secret,
		tokenTTL: DefaultTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the password and returns a session payload in the same shape
// the live service uses.
func (s *Service) Login(ctx context.Context, email, password string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[strings.ToLower(email)]
	if !ok || rec.password != password {
		return nil, errs.New(errs.KindUnauthorized, "invalid credentials")
	}
	token, err := s.mintLocked(rec)
	if err != nil {
		return nil, err
	}
	return payload(rec, token), nil
}

// Register creates the account and logs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.users[key]; exists {
		return nil, errs.New(errs.KindServer, "email is already registered")
	}
	rec := &record{
		id:        uuid.NewString(),
		name:      name,
		email:     email,
		password:  password,
		createdAt: time.Now().UTC(),
	}
	s.users[key] = rec

	token, err := s.mintLocked(rec)
	if err != nil {
		return nil, err
	}
	return payload(rec, token), nil
}

// Logout revokes the token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = struct{}{}
	return nil
}

// Me returns the user payload for a live token.
func (s *Service) Me(ctx context.Context, token string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, gone := s.revoked[token]; gone {
		return nil, errs.New(errs.KindUnauthorized, "token has been revoked")
	}
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errs.Wrap(errs.KindUnauthorized, "token is not valid", err)
	}
	for _, rec := range s.users {
		if rec.id == claims.Subject {
			return map[string]any{"user": userMap(rec)}, nil
		}
	}
	return nil, errs.New(errs.KindUnauthorized, "token does not match a known user")
}

// Health always reports healthy.
func (s *Service) Health(ctx context.Context) error { return nil }

func (s *Service) mintLocked(rec *record) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   rec.id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		ID:        uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(errs.KindServer, "could not sign token", err)
	}
	return token, nil
}

func payload(rec *record, token string) map[string]any {
	return map[string]any{
		"token": token,
		"user":  userMap(rec),
	}
}

func userMap(rec *record) map[string]any {
	return map[string]any{
		"id":         rec.id,
		"email":      rec.email,
		"name":       rec.name,
		"created_at": rec.createdAt.Format(time.RFC3339),
	}
}
