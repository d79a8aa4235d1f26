package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Key prefixes for cached list resources
const (
	KeyCategories       = "categories"
	PrefixEvents        = "events:"
	KeyPromotions       = "promotions"
	PrefixOrgPromotions = "promotions:organizer:"
	PrefixOrgReviews    = "reviews:organizer:"
	PrefixDrafts        = "drafts:"
)

// Cache stores JSON-serializable values with a TTL
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// EventsKey builds the key for one /events listing
func EventsKey(page, take int, search string, categoryID, organizerID int) string {
	return fmt.Sprintf("%s%d:%d:%s:%d:%d", PrefixEvents, page, take, strings.ToLower(strings.TrimSpace(search)), categoryID, organizerID)
}

// OrganizerPromotionsKey builds the key for an organizer's promotions
func OrganizerPromotionsKey(organizerID int) string {
	return fmt.Sprintf("%s%d", PrefixOrgPromotions, organizerID)
}

// OrganizerReviewsKey builds the key for an organizer's latest reviews
func OrganizerReviewsKey(organizerID, take int) string {
	return fmt.Sprintf("%s%d", OrganizerReviewsPrefix(organizerID), take)
}

// OrganizerReviewsPrefix covers every cached review page of one organizer
func OrganizerReviewsPrefix(organizerID int) string {
	return fmt.Sprintf("%s%d:", PrefixOrgReviews, organizerID)
}

// DraftKey builds the key for one visitor's purchase draft of an event
func DraftKey(draftID, eventID string) string {
	return DraftsPrefix(draftID) + eventID
}

// DraftsPrefix covers every purchase draft of one visitor
func DraftsPrefix(draftID string) string {
	return PrefixDrafts + draftID + ":"
}

// GetOrLoad returns the cached value for key, calling load and caching its
// result on a miss. Cache failures are logged and never fail the request.
func GetOrLoad[T any](ctx context.Context, c Cache, log *zap.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var out T
	if c != nil {
		hit, err := c.Get(ctx, key, &out)
		if err != nil {
			log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return out, nil
		}
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}

	if c != nil && ttl > 0 {
		if err := c.Set(ctx, key, out, ttl); err != nil {
			log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

// Invalidate drops every key under prefix, logging failures
func Invalidate(ctx context.Context, c Cache, log *zap.Logger, prefix string) {
	if c == nil {
		return
	}
	if err := c.DeletePrefix(ctx, prefix); err != nil {
		log.Warn("cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	log.Debug("cache invalidated", zap.String("prefix", prefix))
}
