package handlers

import (
	"errors"
	"net/http"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates/pages"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// PurchaseHandler handles the event page and the ticket purchase flow
type PurchaseHandler struct {
	catalog      services.CatalogServiceInterface
	purchase     services.PurchaseServiceInterface
	transactions services.TransactionServiceInterface
	sessions     *middleware.SessionManager
	log          *zap.Logger
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(
	catalog services.CatalogServiceInterface,
	purchase services.PurchaseServiceInterface,
	transactions services.TransactionServiceInterface,
	sessions *middleware.SessionManager,
	log *zap.Logger,
) *PurchaseHandler {
	return &PurchaseHandler{
		catalog:      catalog,
		purchase:     purchase,
		transactions: transactions,
		sessions:     sessions,
		log:          log,
	}
}

// purchaseState is what every purchase endpoint works on
type purchaseState struct {
	event    *models.Event
	session  *sessions.Session
	draft    *models.PurchaseDraft
	balance  int64
	loggedIn bool
	token    string
}

// EventPage renders the event detail page with the purchase section
func (h *PurchaseHandler) EventPage(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	pricing := h.purchase.Pricing(st.event, st.draft, st.balance)
	render(w, r, http.StatusOK, pages.Event(pages.EventPage{
		Layout: layout(w, r, h.sessions, st.event.Title),
		Event:  st.event,
		Purchase: pages.PurchaseSection{
			Event:    st.event,
			Draft:    st.draft,
			Pricing:  pricing,
			LoggedIn: st.loggedIn,
		},
	}))
}

// IncrementTicket adds one ticket of a type, up to its stock
func (h *PurchaseHandler) IncrementTicket(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(st *purchaseState) (string, error) {
		return "", h.purchase.Increment(st.event, st.draft, chi.URLParam(r, "ticketID"))
	})
}

// DecrementTicket removes one ticket of a type, down to zero
func (h *PurchaseHandler) DecrementTicket(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(st *purchaseState) (string, error) {
		return "", h.purchase.Decrement(st.event, st.draft, chi.URLParam(r, "ticketID"))
	})
}

// ApplyPromo validates the entered promo code for the event
func (h *PurchaseHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(st *purchaseState) (string, error) {
		return h.purchase.ApplyPromo(r.Context(), st.event, st.draft, r.FormValue("code"))
	})
}

// ChangePromoCode stores an edited code and drops the applied promo
func (h *PurchaseHandler) ChangePromoCode(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(st *purchaseState) (string, error) {
		h.purchase.ChangePromoCode(st.draft, r.FormValue("code"))
		return "", nil
	})
}

// ClearPromo removes the promo code and applied promo
func (h *PurchaseHandler) ClearPromo(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(st *purchaseState) (string, error) {
		h.purchase.ClearPromo(st.draft)
		return "", nil
	})
}

// TogglePoints switches the loyalty points discount on or off
func (h *PurchaseHandler) TogglePoints(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(st *purchaseState) (string, error) {
		on := r.FormValue("use_points") == "on"
		pricing := h.purchase.Pricing(st.event, st.draft, st.balance)
		return "", h.purchase.TogglePoints(st.draft, on, st.loggedIn, pricing)
	})
}

// Checkout shows the DRAFT transaction for confirmation
func (h *PurchaseHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	view, err := h.purchase.Checkout(st.event, st.draft, st.loggedIn, st.balance)
	if saveErr := h.saveDraft(w, r, st); saveErr != nil && err == nil {
		err = saveErr
	}

	modal := pages.CheckoutModal{Slug: st.event.Slug, View: view}
	if err != nil {
		modal.Error = err.Error()
	}
	render(w, r, swapStatus(r, err), pages.Checkout(modal))
}

// CreateTransaction sends the order and moves on to the payment-proof upload
func (h *PurchaseHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	view, err := h.purchase.CreateTransaction(r.Context(), st.token, st.event, st.draft, st.balance)
	if err != nil {
		message := apiclient.Message(err, "Failed to create transaction.")
		render(w, r, swapStatus(r, err), pages.Checkout(pages.CheckoutModal{Slug: st.event.Slug, Error: message}))
		return
	}

	if err := h.sessions.DeleteDraft(r.Context(), st.session, st.event.ID); err != nil {
		h.log.Warn("failed to drop purchase draft", zap.String("event_id", st.event.ID), zap.Error(err))
	}

	if view.ID != "" {
		h.sessions.AddFlash(st.session, "success", services.ToastTransactionCreated)
		h.sessions.Save(w, r, st.session)
		middleware.Redirect(w, r, "/transactions/"+view.ID)
		return
	}

	// The API answered without an id, so the card is shown in place.
	h.sessions.Save(w, r, st.session)
	card := pages.TransactionCard{View: view, Notice: services.ToastTransactionCreated}
	if view.Raw != nil {
		card.State = h.transactions.UploadState(view.Raw)
	}
	middleware.TriggerToast(w, "success", services.ToastTransactionCreated)
	render(w, r, http.StatusCreated, pages.TransactionCardPartial(card))
}

// update runs a draft mutation and re-renders the purchase section
func (h *PurchaseHandler) update(w http.ResponseWriter, r *http.Request, mutate func(st *purchaseState) (string, error)) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	toast, err := mutate(st)
	if saveErr := h.saveDraft(w, r, st); saveErr != nil && err == nil {
		err = saveErr
	}

	section := pages.PurchaseSection{
		Event:    st.event,
		Draft:    st.draft,
		Pricing:  h.purchase.Pricing(st.event, st.draft, st.balance),
		LoggedIn: st.loggedIn,
	}

	if err != nil {
		// promo failures are already shown next to the promo field
		if err.Error() != st.draft.PromoError {
			section.Error = err.Error()
		}
		middleware.TriggerToast(w, "error", err.Error())
	} else if toast != "" {
		middleware.TriggerToast(w, "success", toast)
	}

	render(w, r, swapStatus(r, err), pages.Purchase(section))
}

// load fetches the event from the path and the visitor's draft for it
func (h *PurchaseHandler) load(w http.ResponseWriter, r *http.Request) (*purchaseState, bool) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	event, err := h.catalog.EventBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			renderError(w, r, h.sessions, http.StatusNotFound, "Event not found", "The event you are looking for does not exist.")
			return nil, false
		}
		h.log.Error("failed to load event", zap.String("slug", slug), zap.Error(err))
		renderError(w, r, h.sessions, http.StatusBadGateway, "Event unavailable", apiclient.Message(err, "Failed to load event."))
		return nil, false
	}

	session := h.sessions.Get(r)
	token := middleware.AccessToken(ctx)
	return &purchaseState{
		event:    event,
		session:  session,
		draft:    h.sessions.Draft(ctx, session, event.ID),
		balance:  h.purchase.PointsBalance(ctx, token),
		loggedIn: token != "",
		token:    token,
	}, true
}

// saveDraft stores the draft and the session cookie that points at it
func (h *PurchaseHandler) saveDraft(w http.ResponseWriter, r *http.Request, st *purchaseState) error {
	if err := h.sessions.SaveDraft(r.Context(), st.session, st.draft); err != nil {
		h.log.Error("failed to save purchase draft", zap.String("event_id", st.event.ID), zap.Error(err))
		return models.ErrDraftNotSaved
	}
	if err := h.sessions.Save(w, r, st.session); err != nil {
		return models.ErrDraftNotSaved
	}
	return nil
}
