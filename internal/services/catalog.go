package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/cache"
	"event-storefront/internal/models"
	"event-storefront/internal/utils"

	"go.uber.org/zap"
)

// CacheTTL holds the lifetime of each cached list resource
type CacheTTL struct {
	Categories time.Duration
	Events     time.Duration
	Promotions time.Duration
	Reviews    time.Duration
}

// OrganizerProfile is the header card of an organizer page
type OrganizerProfile struct {
	ID            int
	Name          string
	Image         string
	AverageRating float64
	Rating        string
	TotalReviews  int
	TotalEvents   int
}

// CatalogService serves events, categories, promotions and organizer data
type CatalogService struct {
	api              CatalogAPI
	cache            cache.Cache
	ttl              CacheTTL
	pageSize         int
	organizerReviews int
	log              *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(api CatalogAPI, c cache.Cache, ttl CacheTTL, pageSize, organizerReviews int, log *zap.Logger) *CatalogService {
	if pageSize <= 0 {
		pageSize = 3
	}
	if organizerReviews <= 0 {
		organizerReviews = 6
	}
	return &CatalogService{
		api:              api,
		cache:            c,
		ttl:              ttl,
		pageSize:         pageSize,
		organizerReviews: organizerReviews,
		log:              log,
	}
}

// NormalizeFilter applies the listing defaults to f
func (s *CatalogService) NormalizeFilter(f models.EventFilter) models.EventFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Take <= 0 {
		f.Take = s.pageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.CategoryID < 0 {
		f.CategoryID = 0
	}
	if f.OrganizerID < 0 {
		f.OrganizerID = 0
	}
	return f
}

// BrowseEvents returns one page of events matching the filter
func (s *CatalogService) BrowseEvents(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error) {
	f = s.NormalizeFilter(f)
	key := cache.EventsKey(f.Page, f.Take, f.Search, f.CategoryID, f.OrganizerID)
	return cache.GetOrLoad(ctx, s.cache, s.log, key, s.ttl.Events, func(ctx context.Context) (*models.Page[models.Event], error) {
		return s.api.ListEvents(ctx, f)
	})
}

// Categories returns all categories sorted by id
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := cache.GetOrLoad(ctx, s.cache, s.log, cache.KeyCategories, s.ttl.Categories, s.api.ListCategories)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// EventBySlug loads the full event for its detail page
func (s *CatalogService) EventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, models.ErrEventNotFound
	}
	event, err := s.api.GetEvent(ctx, slug)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Promotions returns the active promotions; the API only answers logged-in users
func (s *CatalogService) Promotions(ctx context.Context, token string) ([]models.Promotion, error) {
	if token == "" {
		return []models.Promotion{}, nil
	}
	return cache.GetOrLoad(ctx, s.cache, s.log, cache.KeyPromotions, s.ttl.Promotions, func(ctx context.Context) ([]models.Promotion, error) {
		return s.api.ListPromotions(ctx, token)
	})
}

// OrganizerPromotions returns the promotions published by one organizer
func (s *CatalogService) OrganizerPromotions(ctx context.Context, organizerID int) ([]models.Promotion, error) {
	if organizerID <= 0 {
		return nil, models.ErrOrganizerNotFound
	}
	return cache.GetOrLoad(ctx, s.cache, s.log, cache.OrganizerPromotionsKey(organizerID), s.ttl.Promotions, func(ctx context.Context) ([]models.Promotion, error) {
		return s.api.ListOrganizerPromotions(ctx, organizerID)
	})
}

// OrganizerReviews returns the organizer's latest reviews
func (s *CatalogService) OrganizerReviews(ctx context.Context, organizerID int) ([]models.Review, error) {
	if organizerID <= 0 {
		return nil, models.ErrOrganizerNotFound
	}
	take := s.organizerReviews
	reviews, err := cache.GetOrLoad(ctx, s.cache, s.log, cache.OrganizerReviewsKey(organizerID, take), s.ttl.Reviews, func(ctx context.Context) ([]models.Review, error) {
		return s.api.ListOrganizerReviews(ctx, organizerID, take)
	})
	if err != nil {
		return nil, err
	}
	if len(reviews) > take {
		reviews = reviews[:take]
	}
	return reviews, nil
}

// OrganizerProfile derives the organizer card from their newest event
func (s *CatalogService) OrganizerProfile(ctx context.Context, organizerID int) (*OrganizerProfile, error) {
	if organizerID <= 0 {
		return nil, models.ErrOrganizerNotFound
	}
	page, err := s.BrowseEvents(ctx, models.EventFilter{Page: 1, Take: 1, OrganizerID: organizerID})
	if err != nil {
		return nil, err
	}
	if page == nil || len(page.Data) == 0 {
		return nil, models.ErrOrganizerNotFound
	}

	event := page.Data[0]
	profile := &OrganizerProfile{
		ID:          organizerID,
		Name:        event.OrganizerName(),
		Image:       event.OrganizerImage(),
		TotalEvents: page.Meta.Total,
	}
	if event.Organizer != nil {
		profile.AverageRating = float64(event.Organizer.AverageRating)
		profile.TotalReviews = event.Organizer.TotalReviews
	}
	profile.Rating = utils.FormatRating(profile.AverageRating)
	if profile.TotalEvents < len(page.Data) {
		profile.TotalEvents = len(page.Data)
	}
	return profile, nil
}

// CarouselWindow returns the promotions visible at start and the start of the
// next step. With two or fewer promotions everything is shown.
func CarouselWindow(promos []models.Promotion, start int) ([]models.Promotion, int) {
	n := len(promos)
	if n <= 2 {
		return promos, 0
	}
	start = ((start % n) + n) % n
	window := []models.Promotion{promos[start], promos[(start+1)%n]}
	return window, (start + 2) % n
}
