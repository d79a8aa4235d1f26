package services

import (
	"context"

	"event-storefront/internal/cache"
	"event-storefront/internal/models"

	"go.uber.org/zap"
)

const ToastReviewSubmitted = "Review submitted."

// ReviewService submits post-event reviews
type ReviewService struct {
	api   ReviewAPI
	cache cache.Cache
	log   *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(api ReviewAPI, c cache.Cache, log *zap.Logger) *ReviewService {
	return &ReviewService{api: api, cache: c, log: log}
}

// Submit posts a validated review form and drops the organizer's cached reviews
func (s *ReviewService) Submit(ctx context.Context, token string, form *models.ReviewForm, organizerID int) error {
	if token == "" {
		return models.ErrLoginRequired
	}

	review, err := s.api.CreateReview(ctx, token, models.CreateReviewRequest{
		TransactionID: form.TransactionID,
		EventID:       form.EventID,
		Rating:        form.Rating,
		Comment:       form.Comment,
	})
	if err != nil {
		s.log.Error("failed to submit review",
			zap.String("transaction_id", form.TransactionID),
			zap.Error(err),
		)
		return err
	}

	reviewID := ""
	if review != nil {
		reviewID = review.ID
	}
	s.log.Info("review submitted",
		zap.String("review_id", reviewID),
		zap.String("event_id", form.EventID),
	)

	prefix := cache.PrefixOrgReviews
	if organizerID > 0 {
		prefix = cache.OrganizerReviewsPrefix(organizerID)
	}
	cache.Invalidate(ctx, s.cache, s.log, prefix)
	return nil
}
