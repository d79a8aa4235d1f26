package pages

import (
	"context"

	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
)

// NewLayout fills the shared page chrome from the request context
func NewLayout(ctx context.Context, title string, flashes []models.Flash) Layout {
	return Layout{
		Title:   title,
		User:    middleware.GetUserFromContext(ctx),
		CSRF:    getCSRFToken(ctx),
		Flashes: flashes,
	}
}

// getCSRFToken gets the CSRF token from the request context
func getCSRFToken(ctx context.Context) string {
	return middleware.CSRFTokenFromContext(ctx)
}
