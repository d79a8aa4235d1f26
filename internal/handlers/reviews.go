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

const defaultRating = 5

// ReviewHandler handles post-event reviews
type ReviewHandler struct {
	reviews   services.ReviewServiceInterface
	validator *validation.Validator
	sessions  *middleware.SessionManager
	log       *zap.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews services.ReviewServiceInterface, validator *validation.Validator, sessions *middleware.SessionManager, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		validator: validator,
		sessions:  sessions,
		log:       log,
	}
}

// ReviewPage renders the review form for a transaction
func (h *ReviewHandler) ReviewPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.renderForm(w, r, http.StatusOK, pages.ReviewPage{
		Form: models.ReviewForm{
			TransactionID: q.Get("transaction_id"),
			EventID:       q.Get("event_id"),
			Rating:        defaultRating,
		},
		EventTitle:  q.Get("title"),
		OrganizerID: queryInt(r, "organizer"),
	})
}

// SubmitReview validates and posts a review
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := models.ReviewForm{
		TransactionID: r.FormValue("transaction_id"),
		EventID:       r.FormValue("event_id"),
		Rating:        defaultRating,
		Comment:       r.FormValue("comment"),
	}
	if raw := strings.TrimSpace(r.FormValue("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			rating = 0
		}
		form.Rating = rating
	}

	data := pages.ReviewPage{
		Form:        form,
		EventTitle:  r.FormValue("title"),
		OrganizerID: positiveInt(r.FormValue("organizer_id")),
	}

	if errs := h.validator.Review(&form); errs.Any() {
		data.Form = form
		data.Errors = errs
		h.renderForm(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	token := middleware.AccessToken(r.Context())
	if err := h.reviews.Submit(r.Context(), token, &form, data.OrganizerID); err != nil {
		data.Form = form
		data.Error = apiclient.Message(err, "Failed to submit review.")
		h.renderForm(w, r, statusFor(err), data)
		return
	}

	session := h.sessions.Get(r)
	h.sessions.AddFlash(session, "success", services.ToastReviewSubmitted)
	h.sessions.Save(w, r, session)
	middleware.Redirect(w, r, "/transactions")
}

func (h *ReviewHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data pages.ReviewPage) {
	title := "Review"
	if data.EventTitle != "" {
		title += " " + data.EventTitle
	}
	data.Layout = layout(w, r, h.sessions, title)
	render(w, r, status, pages.Review(data))
}
