package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/config"
	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates/pages"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PublicHandler handles the browsing pages and their HTMX partials
type PublicHandler struct {
	catalog  services.CatalogServiceInterface
	sessions *middleware.SessionManager
	options  config.CatalogConfig
	log      *zap.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(catalog services.CatalogServiceInterface, sessions *middleware.SessionManager, options config.CatalogConfig, log *zap.Logger) *PublicHandler {
	return &PublicHandler{
		catalog:  catalog,
		sessions: sessions,
		options:  options,
		log:      log,
	}
}

// HomePage renders the landing page
func (h *PublicHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.browse(w, r, false)
}

// BrowsePage renders the event browser with the optional category filter
func (h *PublicHandler) BrowsePage(w http.ResponseWriter, r *http.Request) {
	h.browse(w, r, true)
}

func (h *PublicHandler) browse(w http.ResponseWriter, r *http.Request, browse bool) {
	ctx := r.Context()
	filter := h.filterFromQuery(r)
	if !browse {
		filter.OrganizerID = 0
	}
	token := middleware.AccessToken(ctx)

	var (
		wg         sync.WaitGroup
		categories categoriesResult
		events     pages.EventsSection
		promotions pages.PromotionsSection
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		categories = h.categoriesSection(ctx, filter.CategoryID)
	}()
	go func() {
		defer wg.Done()
		events = h.eventsSection(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		promotions = h.promotionsSection(ctx, token, 0, 0)
	}()
	wg.Wait()

	title := "Home"
	if browse {
		title = "Browse events"
	}

	render(w, r, http.StatusOK, pages.Home(pages.HomePage{
		Layout:         layout(w, r, h.sessions, title),
		Browse:         browse,
		ActiveCategory: categories.active,
		Categories:     categories.section,
		Events:         events,
		Promotions:     promotions,
	}))
}

// EventsPartial renders the event list for search and pagination swaps
func (h *PublicHandler) EventsPartial(w http.ResponseWriter, r *http.Request) {
	section := h.eventsSection(r.Context(), h.filterFromQuery(r))
	render(w, r, http.StatusOK, pages.EventsList(section))
}

// PromotionsPartial renders the next step of the promotion carousel
func (h *PublicHandler) PromotionsPartial(w http.ResponseWriter, r *http.Request) {
	section := h.promotionsSection(r.Context(), middleware.AccessToken(r.Context()), queryInt(r, "organizer"), queryInt(r, "start"))
	render(w, r, http.StatusOK, pages.PromotionCarousel(section))
}

// OrganizerPage renders an organizer's profile with their events, promotions
// and latest reviews.
func (h *PublicHandler) OrganizerPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	organizerID := positiveInt(chi.URLParam(r, "organizerID"))
	if organizerID == 0 {
		organizerID = queryInt(r, "organizer_id")
	}

	profile, err := h.catalog.OrganizerProfile(ctx, organizerID)
	if err != nil {
		if errors.Is(err, models.ErrOrganizerNotFound) {
			renderError(w, r, h.sessions, http.StatusNotFound, "Organizer not found", "We could not find this organizer.")
			return
		}
		h.log.Error("failed to load organizer", zap.Int("organizer_id", organizerID), zap.Error(err))
		renderError(w, r, h.sessions, http.StatusBadGateway, "Organizer unavailable", apiclient.Message(err, "Failed to load organizer."))
		return
	}

	filter := h.filterFromQuery(r)
	filter.OrganizerID = organizerID
	filter.CategoryID = 0

	var (
		wg           sync.WaitGroup
		events       pages.EventsSection
		promotions   pages.PromotionsSection
		reviews      []models.Review
		reviewsError string
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		events = h.eventsSection(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		promotions = h.promotionsSection(ctx, "", organizerID, 0)
	}()
	go func() {
		defer wg.Done()
		var err error
		reviews, err = h.catalog.OrganizerReviews(ctx, organizerID)
		if err != nil {
			h.log.Warn("failed to load organizer reviews", zap.Int("organizer_id", organizerID), zap.Error(err))
			reviewsError = apiclient.Message(err, "Failed to load reviews.")
		}
	}()
	wg.Wait()

	render(w, r, http.StatusOK, pages.Organizer(pages.OrganizerPage{
		Layout:       layout(w, r, h.sessions, profile.Name),
		Profile:      profile,
		Events:       events,
		Promotions:   promotions,
		Reviews:      reviews,
		ReviewsError: reviewsError,
	}))
}

// categoriesResult pairs the category grid with the selected category
type categoriesResult struct {
	section pages.CategoriesSection
	active  *models.Category
}

func (h *PublicHandler) categoriesSection(ctx context.Context, activeID int) categoriesResult {
	out := categoriesResult{section: pages.CategoriesSection{ActiveID: activeID}}

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.log.Warn("failed to load categories", zap.Error(err))
		out.section.Error = apiclient.Message(err, "Failed to load categories.")
		return out
	}

	out.section.Categories = categories
	for i := range categories {
		if categories[i].ID == activeID {
			out.active = &categories[i]
			break
		}
	}
	return out
}

func (h *PublicHandler) eventsSection(ctx context.Context, filter models.EventFilter) pages.EventsSection {
	section := pages.EventsSection{
		Search:      filter.Search,
		CategoryID:  filter.CategoryID,
		OrganizerID: filter.OrganizerID,
		Debounce:    h.options.SearchDebounce,
		ShowSearch:  true,
	}

	page, err := h.catalog.BrowseEvents(ctx, filter)
	if err != nil {
		h.log.Warn("failed to load events", zap.Error(err))
		section.Error = apiclient.Message(err, "Failed to load events.")
		return section
	}

	section.Events = page.Data
	section.Meta = page.Meta
	return section
}

// promotionsSection loads the carousel: an organizer's public promotions when
// organizerID is set, otherwise the logged-in customer's promotions.
func (h *PublicHandler) promotionsSection(ctx context.Context, token string, organizerID, start int) pages.PromotionsSection {
	section := pages.PromotionsSection{
		OrganizerID: organizerID,
		Interval:    h.options.CarouselInterval,
		LoggedIn:    token != "" || organizerID > 0,
	}
	if !section.LoggedIn {
		return section
	}

	var (
		promos []models.Promotion
		err    error
	)
	if organizerID > 0 {
		promos, err = h.catalog.OrganizerPromotions(ctx, organizerID)
	} else {
		promos, err = h.catalog.Promotions(ctx, token)
	}
	if err != nil {
		h.log.Warn("failed to load promotions", zap.Int("organizer_id", organizerID), zap.Error(err))
		section.Error = apiclient.Message(err, "Failed to load promotions.")
		return section
	}

	section.Promotions, section.Next = services.CarouselWindow(promos, start)
	section.Rotates = len(promos) > 2 && h.options.CarouselInterval > 0
	return section
}

func (h *PublicHandler) filterFromQuery(r *http.Request) models.EventFilter {
	q := r.URL.Query()
	return models.EventFilter{
		Page:        queryInt(r, "page"),
		Search:      strings.TrimSpace(q.Get("search")),
		CategoryID:  queryInt(r, "category"),
		OrganizerID: queryInt(r, "organizer"),
	}
}
