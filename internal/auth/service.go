package auth

import (
	"context"
	"time"

	"invoice-desk/internal/logger"

	"go.uber.org/zap"
)

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

type service struct {
	creds  *Credentials
	tokens *TokenIssuer
}

func NewService(creds *Credentials, tokens *TokenIssuer) Service {
	return &service{creds: creds, tokens: tokens}
}

func (s *service) Login(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	if !s.creds.Verify(username, password) {
		log.Warn("login rejected")
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(username)
	if err != nil {
		log.Error("failed to issue token", zap.Error(err))
		return nil, err
	}

	log.Info("login succeeded")
	return &Session{Token: token, Username: username, ExpiresAt: expires}, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		logger.FromCtx(ctx).Debug("token rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}
	return claims, nil
}
