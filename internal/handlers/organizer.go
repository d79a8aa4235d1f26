package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/internal/validation"
	"event-storefront/web/templates/pages"

	"go.uber.org/zap"
)

// OrganizerHandler handles the organizer's create-event and create-promotion forms
type OrganizerHandler struct {
	organizer services.OrganizerServiceInterface
	validator *validation.Validator
	sessions  *middleware.SessionManager
	maxUpload int64
	log       *zap.Logger
}

// NewOrganizerHandler creates a new organizer handler
func NewOrganizerHandler(
	organizer services.OrganizerServiceInterface,
	validator *validation.Validator,
	sessions *middleware.SessionManager,
	maxUpload int64,
	log *zap.Logger,
) *OrganizerHandler {
	return &OrganizerHandler{
		organizer: organizer,
		validator: validator,
		sessions:  sessions,
		maxUpload: maxUpload,
		log:       log,
	}
}

// CreateEventPage renders the empty create-event form
func (h *OrganizerHandler) CreateEventPage(w http.ResponseWriter, r *http.Request) {
	h.renderEventForm(w, r, http.StatusOK, pages.CreateEventPage{
		Form: &models.CreateEventForm{Tickets: []models.TicketTypeInput{{}}},
	})
}

// CreateEvent validates and publishes a new event
func (h *OrganizerHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(r, h.maxUpload); err != nil {
		h.log.Warn("failed to parse create-event form", zap.Error(err))
		rejectUpload(w, r, err)
		return
	}

	form, err := h.parseEventForm(r)
	if err != nil {
		h.log.Warn("failed to read event image", zap.Error(err))
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	if errs := h.validator.CreateEvent(form); errs.Any() {
		h.renderEventForm(w, r, http.StatusUnprocessableEntity, pages.CreateEventPage{
			Form:   withTicketRow(form),
			Errors: foldTicketErrors(errs),
		})
		return
	}

	token := middleware.AccessToken(r.Context())
	if _, err := h.organizer.CreateEvent(r.Context(), token, form); err != nil {
		h.renderEventForm(w, r, statusFor(err), pages.CreateEventPage{
			Form:  withTicketRow(form),
			Error: apiclient.Message(err, "Failed to create event."),
		})
		return
	}

	h.done(w, r, services.ToastEventCreated)
}

// CreatePromotionPage renders the empty create-promotion form
func (h *OrganizerHandler) CreatePromotionPage(w http.ResponseWriter, r *http.Request) {
	h.renderPromotionForm(w, r, http.StatusOK, pages.CreatePromotionPage{
		Form: &models.CreatePromotionForm{EventID: r.URL.Query().Get("event_id")},
	})
}

// CreatePromotion validates and publishes a new promotion
func (h *OrganizerHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(r, h.maxUpload); err != nil {
		h.log.Warn("failed to parse create-promotion form", zap.Error(err))
		rejectUpload(w, r, err)
		return
	}

	image, err := readUpload(r, "image", h.maxUpload)
	if err != nil {
		h.log.Warn("failed to read promotion image", zap.Error(err))
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := &models.CreatePromotionForm{
		Code:           r.FormValue("code"),
		DiscountName:   r.FormValue("discount_name"),
		DiscountAmount: formInt64(r, "discount_amount"),
		Quota:          formInt(r, "quota"),
		ExpiresAt:      strings.TrimSpace(r.FormValue("expires_at")),
		EventID:        r.FormValue("event_id"),
		Image:          image,
	}

	if errs := h.validator.CreatePromotion(form); errs.Any() {
		h.renderPromotionForm(w, r, http.StatusUnprocessableEntity, pages.CreatePromotionPage{
			Form:   form,
			Errors: errs,
		})
		return
	}

	token := middleware.AccessToken(r.Context())
	if _, err := h.organizer.CreatePromotion(r.Context(), token, form); err != nil {
		h.renderPromotionForm(w, r, statusFor(err), pages.CreatePromotionPage{
			Form:  form,
			Error: apiclient.Message(err, "Failed to create promotion."),
		})
		return
	}

	h.done(w, r, services.ToastPromotionCreated)
}

// parseEventForm reads the form fields; ticket types arrive as parallel
// ticket_name / ticket_price / ticket_quota values, one per row.
func (h *OrganizerHandler) parseEventForm(r *http.Request) (*models.CreateEventForm, error) {
	image, err := readUpload(r, "image", h.maxUpload)
	if err != nil {
		return nil, err
	}

	form := &models.CreateEventForm{
		Title:       r.FormValue("title"),
		CategoryID:  formInt(r, "category_id"),
		Description: r.FormValue("description"),
		StartDate:   strings.TrimSpace(r.FormValue("start_date")),
		EndDate:     strings.TrimSpace(r.FormValue("end_date")),
		Location:    r.FormValue("location"),
		Image:       image,
	}

	names := r.Form["ticket_name"]
	prices := r.Form["ticket_price"]
	quotas := r.Form["ticket_quota"]
	for i := range names {
		name := strings.TrimSpace(names[i])
		price := valueAt(prices, i)
		quota := valueAt(quotas, i)
		if name == "" && price == "" && quota == "" {
			continue
		}
		form.Tickets = append(form.Tickets, models.TicketTypeInput{
			Name:  name,
			Price: parseInt64(price, -1),
			Quota: int(parseInt64(quota, 0)),
		})
	}
	return form, nil
}

func (h *OrganizerHandler) renderEventForm(w http.ResponseWriter, r *http.Request, status int, data pages.CreateEventPage) {
	categories, err := h.organizer.Categories(r.Context())
	if err != nil {
		h.log.Warn("failed to load categories for create-event", zap.Error(err))
		if data.Error == "" {
			data.Error = apiclient.Message(err, "Failed to load categories.")
		}
	}
	data.Categories = categories
	data.Layout = layout(w, r, h.sessions, "Create Event")
	render(w, r, status, pages.CreateEvent(data))
}

func (h *OrganizerHandler) renderPromotionForm(w http.ResponseWriter, r *http.Request, status int, data pages.CreatePromotionPage) {
	events, err := h.organizer.EventOptions(r.Context())
	if err != nil {
		h.log.Warn("failed to load events for create-promotion", zap.Error(err))
		if data.Error == "" {
			data.Error = apiclient.Message(err, "Failed to load events.")
		}
	}
	data.Events = events
	data.Layout = layout(w, r, h.sessions, "Create Promotion")
	render(w, r, status, pages.CreatePromotion(data))
}

func (h *OrganizerHandler) done(w http.ResponseWriter, r *http.Request, toast string) {
	session := h.sessions.Get(r)
	h.sessions.AddFlash(session, "success", toast)
	h.sessions.Save(w, r, session)
	middleware.Redirect(w, r, "/")
}

// withTicketRow keeps at least one ticket row on the re-rendered form
func withTicketRow(form *models.CreateEventForm) *models.CreateEventForm {
	if len(form.Tickets) == 0 {
		form.Tickets = []models.TicketTypeInput{{}}
	}
	return form
}

// foldTicketErrors reports one of the per-row ticket errors under "tickets"
func foldTicketErrors(errs validation.FieldErrors) validation.FieldErrors {
	if _, ok := errs["tickets"]; ok {
		return errs
	}
	for field, msg := range errs {
		if strings.HasPrefix(field, "tickets[") {
			errs["tickets"] = msg
			break
		}
	}
	return errs
}

func formInt(r *http.Request, key string) int {
	return int(parseInt64(r.FormValue(key), 0))
}

func formInt64(r *http.Request, key string) int64 {
	return parseInt64(r.FormValue(key), 0)
}

func parseInt64(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return strings.TrimSpace(values[i])
	}
	return ""
}
