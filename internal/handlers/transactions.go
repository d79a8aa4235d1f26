package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates/pages"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProofNotice is shown once the payment proof has been accepted
const ProofNotice = "Your payment proof is waiting for confirmation. The organizer has 3 days to confirm it."

const suggestionsTake = 3

// TransactionHandler handles the customer's transactions and payment proofs
type TransactionHandler struct {
	transactions services.TransactionServiceInterface
	catalog      services.CatalogServiceInterface
	sessions     *middleware.SessionManager
	maxUpload    int64
	log          *zap.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactions services.TransactionServiceInterface,
	catalog services.CatalogServiceInterface,
	sessions *middleware.SessionManager,
	maxUpload int64,
	log *zap.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		catalog:      catalog,
		sessions:     sessions,
		maxUpload:    maxUpload,
		log:          log,
	}
}

// ListPage renders the status tabs with the matching transactions, event
// suggestions and the promotion carousel.
func (h *TransactionHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.AccessToken(ctx)

	tab := r.URL.Query().Get("tab")
	if _, ok := services.TabStatus(tab); !ok {
		tab = ""
	}
	page := queryInt(r, "page")
	if page < 1 {
		page = 1
	}

	data := pages.TransactionsPage{
		ActiveTab: tab,
		Tabs:      tabLinks(tab),
		Meta:      models.PageMeta{Page: page},
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		list, err := h.transactions.List(ctx, token, tab, page)
		if err != nil {
			h.log.Warn("failed to list transactions", zap.String("tab", tab), zap.Error(err))
			data.Error = apiclient.Message(err, "Failed to load transactions.")
			return
		}
		data.Meta = list.Meta
		for _, trx := range list.Data {
			data.Rows = append(data.Rows, transactionRow(trx))
		}
	}()
	go func() {
		defer wg.Done()
		events, err := h.catalog.BrowseEvents(ctx, models.EventFilter{Page: 1, Take: suggestionsTake})
		if err != nil {
			h.log.Warn("failed to load suggestions", zap.Error(err))
			return
		}
		data.Suggestions = events.Data
	}()
	go func() {
		defer wg.Done()
		data.Promotions = pages.PromotionsSection{LoggedIn: true}
		promos, err := h.catalog.Promotions(ctx, token)
		if err != nil {
			data.Promotions.Error = apiclient.Message(err, "Failed to load promotions.")
			return
		}
		data.Promotions.Promotions, data.Promotions.Next = services.CarouselWindow(promos, 0)
	}()
	wg.Wait()

	if data.Error == "" {
		data.PrevURL, data.NextURL = transactionPageURLs(tab, data.Meta)
	}

	data.Layout = layout(w, r, h.sessions, "My Transactions")
	render(w, r, http.StatusOK, pages.Transactions(data))
}

// DetailPage renders one transaction with its payment-proof upload card
func (h *TransactionHandler) DetailPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	trx, err := h.transactions.Get(ctx, middleware.AccessToken(ctx), id)
	if err != nil {
		h.renderLoadError(w, r, id, err)
		return
	}

	render(w, r, http.StatusOK, pages.Transaction(pages.TransactionPage{
		Layout: layout(w, r, h.sessions, "Transaction"),
		Card:   h.card(trx),
	}))
}

// CardPartial re-renders the upload card, used when the payment countdown
// runs out in the browser
func (h *TransactionHandler) CardPartial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	trx, err := h.transactions.Get(ctx, middleware.AccessToken(ctx), id)
	if err != nil {
		h.renderLoadError(w, r, id, err)
		return
	}
	render(w, r, http.StatusOK, pages.TransactionCardPartial(h.card(trx)))
}

// UploadProof receives the payment proof and re-renders the upload card
func (h *TransactionHandler) UploadProof(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	token := middleware.AccessToken(ctx)

	var updated *models.Transaction
	proof, err := h.readProof(r, id)
	if err == nil {
		updated, err = h.transactions.UploadPaymentProof(ctx, token, id, proof)
	}
	if err != nil {
		trx, getErr := h.transactions.Get(ctx, token, id)
		if getErr != nil {
			h.renderLoadError(w, r, id, getErr)
			return
		}
		card := h.card(trx)
		card.Error = apiclient.Message(err, "Failed to upload payment proof.")
		middleware.TriggerToast(w, "error", card.Error)
		render(w, r, swapStatus(r, err), pages.TransactionCardPartial(card))
		return
	}

	if !middleware.IsHTMXRequest(r) {
		session := h.sessions.Get(r)
		h.sessions.AddFlash(session, "success", services.ToastProofSubmitted)
		h.sessions.Save(w, r, session)
		http.Redirect(w, r, "/transactions/"+url.PathEscape(id), http.StatusSeeOther)
		return
	}

	card := h.card(updated)
	card.Notice = ProofNotice
	middleware.TriggerToast(w, "success", services.ToastProofSubmitted)
	render(w, r, http.StatusOK, pages.TransactionCardPartial(card))
}

// readProof reads the uploaded payment proof. Only an oversized body is an
// error; other parse failures leave the proof empty.
func (h *TransactionHandler) readProof(r *http.Request, id string) (*models.Upload, error) {
	if err := parseUploadForm(r, h.maxUpload); err != nil {
		h.log.Warn("failed to parse payment proof upload", zap.String("transaction_id", id), zap.Error(err))
		if errors.Is(err, models.ErrUploadTooLarge) {
			return nil, err
		}
		return nil, nil
	}
	proof, err := readUpload(r, "payment_proof", h.maxUpload)
	if err != nil {
		h.log.Warn("failed to read payment proof", zap.String("transaction_id", id), zap.Error(err))
		return nil, nil
	}
	return proof, nil
}

func (h *TransactionHandler) card(trx *models.Transaction) pages.TransactionCard {
	return pages.TransactionCard{
		View:  services.NewTransactionView(trx, nil, "", 0, 0),
		State: h.transactions.UploadState(trx),
	}
}

func (h *TransactionHandler) renderLoadError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, models.ErrTransactionNotFound):
		renderError(w, r, h.sessions, http.StatusNotFound, "Transaction not found", "We could not find this transaction.")
	case errors.Is(err, models.ErrLoginRequired), errors.Is(err, models.ErrUnauthorized):
		middleware.Redirect(w, r, middleware.LoginURL(r))
	default:
		h.log.Error("failed to load transaction", zap.String("transaction_id", id), zap.Error(err))
		renderError(w, r, h.sessions, http.StatusBadGateway, "Transaction unavailable", apiclient.Message(err, "Failed to load transaction."))
	}
}

// tabLinks builds the tab bar; the active tab links back to "all"
func tabLinks(active string) []pages.TabLink {
	links := make([]pages.TabLink, 0, len(services.Tabs))
	for _, tab := range services.Tabs {
		href := "/transactions"
		if next := services.NextTab(active, tab.Key); next != "" {
			href += "?tab=" + url.QueryEscape(next)
		}
		links = append(links, pages.TabLink{
			Label:  tab.Label,
			Href:   href,
			Active: tab.Key == active,
		})
	}
	return links
}

func transactionRow(trx models.Transaction) pages.TransactionRow {
	row := pages.TransactionRow{
		Transaction: trx,
		Label:       services.StatusLabel(trx.Status),
		Tone:        services.StatusTone(trx.Status),
	}
	if trx.Status == models.StatusWaitingForReview {
		row.ReviewURL = reviewURL(trx)
	}
	return row
}

func reviewURL(trx models.Transaction) string {
	q := url.Values{}
	q.Set("transaction_id", trx.ID)
	q.Set("event_id", trx.ResolvedEventID())
	q.Set("title", trx.EventTitle())
	if trx.Event != nil && trx.Event.OrganizerID > 0 {
		q.Set("organizer", strconv.Itoa(trx.Event.OrganizerID))
	}
	return "/review?" + q.Encode()
}

func transactionPageURLs(tab string, meta models.PageMeta) (prev, next string) {
	build := func(page int) string {
		q := url.Values{}
		if tab != "" {
			q.Set("tab", tab)
		}
		q.Set("page", strconv.Itoa(page))
		return fmt.Sprintf("/transactions?%s", q.Encode())
	}
	if meta.HasPrev() {
		prev = build(meta.Page - 1)
	}
	if meta.HasNext() {
		next = build(meta.Page + 1)
	}
	return prev, next
}
