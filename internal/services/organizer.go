package services

import (
	"context"
	"time"

	"event-storefront/internal/cache"
	"event-storefront/internal/models"
	"event-storefront/internal/utils"

	"go.uber.org/zap"
)

const (
	ToastEventCreated     = "Create Event success!"
	ToastPromotionCreated = "Promotion created successfully!"
	eventOptionsTake      = 100
)

// CategoryLister provides the category dropdown
type CategoryLister interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// OrganizerService publishes events and promotions for organizers
type OrganizerService struct {
	api        OrganizerAPI
	categories CategoryLister
	images     ImageNormalizer
	cache      cache.Cache
	loc        *time.Location
	log        *zap.Logger
}

// NewOrganizerService creates a new organizer service. Form datetimes are read in loc.
func NewOrganizerService(api OrganizerAPI, categories CategoryLister, images ImageNormalizer, c cache.Cache, loc *time.Location, log *zap.Logger) *OrganizerService {
	if loc == nil {
		loc = time.Local
	}
	return &OrganizerService{
		api:        api,
		categories: categories,
		images:     images,
		cache:      c,
		loc:        loc,
		log:        log,
	}
}

// Categories returns the category dropdown options
func (s *OrganizerService) Categories(ctx context.Context) ([]models.Category, error) {
	if s.categories != nil {
		return s.categories.Categories(ctx)
	}
	return s.api.ListCategories(ctx)
}

// EventOptions returns the events selectable in the promotion form
func (s *OrganizerService) EventOptions(ctx context.Context) ([]models.Event, error) {
	page, err := s.api.ListEvents(ctx, models.EventFilter{Page: 1, Take: eventOptionsTake})
	if err != nil {
		return nil, err
	}
	if page == nil {
		return []models.Event{}, nil
	}
	return page.Data, nil
}

// CreateEvent publishes a validated create-event form
func (s *OrganizerService) CreateEvent(ctx context.Context, token string, form *models.CreateEventForm) (*models.Event, error) {
	if token == "" {
		return nil, models.ErrLoginRequired
	}

	payload := *form
	payload.StartDate = utils.LocalInputToRFC3339(form.StartDate, s.loc)
	payload.EndDate = utils.LocalInputToRFC3339(form.EndDate, s.loc)

	image, err := s.images.Normalize(form.Image)
	if err != nil {
		return nil, err
	}
	payload.Image = image

	event, err := s.api.CreateEvent(ctx, token, payload)
	if err != nil {
		s.log.Error("failed to create event", zap.String("title", form.Title), zap.Error(err))
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, s.log, cache.PrefixEvents)
	s.log.Info("event created", zap.String("title", form.Title), zap.Int("ticket_types", len(form.Tickets)))
	return event, nil
}

// CreatePromotion publishes a validated create-promotion form
func (s *OrganizerService) CreatePromotion(ctx context.Context, token string, form *models.CreatePromotionForm) (*models.Promotion, error) {
	if token == "" {
		return nil, models.ErrLoginRequired
	}

	payload := *form
	payload.ExpiresAt = utils.LocalInputToRFC3339(form.ExpiresAt, s.loc)

	image, err := s.images.Normalize(form.Image)
	if err != nil {
		return nil, err
	}
	payload.Image = image

	promo, err := s.api.CreatePromotion(ctx, token, payload)
	if err != nil {
		s.log.Error("failed to create promotion", zap.String("code", form.Code), zap.Error(err))
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, s.log, cache.KeyPromotions)
	s.log.Info("promotion created", zap.String("code", form.Code), zap.String("event_id", form.EventID))
	return promo, nil
}
