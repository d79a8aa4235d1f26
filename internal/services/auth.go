package services

import (
	"context"
	"strings"
	"time"

	"event-storefront/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DefaultTokenLifetime applies when the access token carries no exp claim
const DefaultTokenLifetime = 2 * time.Hour

// AuthService signs customers in against the remote auth provider
type AuthService struct {
	api AuthAPI
	log *zap.Logger
	now func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(api AuthAPI, log *zap.Logger) *AuthService {
	return &AuthService{api: api, log: log, now: time.Now}
}

// Login exchanges credentials for a session user holding the bearer token
func (s *AuthService) Login(ctx context.Context, form *models.LoginForm) (*models.SessionUser, error) {
	email := strings.ToLower(strings.TrimSpace(form.Email))
	res, err := s.api.Login(ctx, email, form.Password)
	if err != nil {
		s.log.Info("login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	user := &models.SessionUser{
		ID:          res.ID,
		Name:        res.Name,
		Email:       res.Email,
		Role:        res.Role,
		AccessToken: res.Token,
		ExpiresAt:   TokenExpiry(res.Token, s.now()),
	}
	if user.Email == "" {
		user.Email = email
	}
	if user.ID == "" {
		user.ID = tokenSubject(res.Token)
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID), zap.Time("expires_at", user.ExpiresAt))
	return user, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying it; the API owns
// verification. Tokens without a readable exp expire DefaultTokenLifetime after now.
func TokenExpiry(token string, now time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(DefaultTokenLifetime)
}

func tokenSubject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
