package server

import (
	"net/http"

	"event-storefront/internal/handlers"
	"event-storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups the page handlers mounted on the router
type Handlers struct {
	Public       *handlers.PublicHandler
	Purchase     *handlers.PurchaseHandler
	Transactions *handlers.TransactionHandler
	Reviews      *handlers.ReviewHandler
	Organizer    *handlers.OrganizerHandler
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
}

// Options configures the middleware chain
type Options struct {
	Sessions       *middleware.SessionManager
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	MaxBodyBytes   int64
	StaticDir      string
	TrustProxy     bool
	Log            *zap.Logger
}

// NewRouter wires the middleware chain and every storefront route
func NewRouter(h Handlers, opts Options) http.Handler {
	authMiddleware := middleware.NewAuthMiddleware(opts.Sessions, opts.Log)
	csrfMiddleware := middleware.NewCSRFMiddleware(opts.Sessions, opts.Log)

	r := chi.NewRouter()

	if opts.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestIDMiddleware(opts.Log))
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(opts.AllowedOrigins)))
	r.Use(chimiddleware.CleanPath)
	r.Use(chimiddleware.StripSlashes)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", h.Health.Health)

	if opts.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.LimitRequestBody(opts.MaxBodyBytes))
		if opts.RateLimiter != nil {
			r.Use(middleware.RateLimitSubmissions(opts.RateLimiter, opts.Log))
		}
		r.Use(authMiddleware.LoadUser)
		r.Use(csrfMiddleware.CSRFProtection)

		// Public pages
		r.Get("/", h.Public.HomePage)
		r.Get("/browse-event", h.Public.BrowsePage)
		r.Get("/event-organizer-all-event-page/{organizerID}", h.Public.OrganizerPage)
		r.Get("/partials/events", h.Public.EventsPartial)
		r.Get("/partials/promotions", h.Public.PromotionsPartial)

		// Event page and purchase flow; the API answers for a missing token
		r.Route("/event/{slug}", func(r chi.Router) {
			r.Get("/", h.Purchase.EventPage)
			r.Post("/tickets/{ticketID}/inc", h.Purchase.IncrementTicket)
			r.Post("/tickets/{ticketID}/dec", h.Purchase.DecrementTicket)
			r.Post("/promo", h.Purchase.ApplyPromo)
			r.Post("/promo/clear", h.Purchase.ClearPromo)
			r.Post("/promo/code", h.Purchase.ChangePromoCode)
			r.Post("/points", h.Purchase.TogglePoints)
			r.Post("/checkout", h.Purchase.Checkout)
			r.Post("/transactions", h.Purchase.CreateTransaction)
		})

		// Session
		r.Get("/login", h.Auth.LoginPage)
		r.Post("/login", h.Auth.LoginSubmit)
		r.Post("/logout", h.Auth.Logout)

		// Customer and organizer pages
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.Transactions.ListPage)
				r.Get("/{id}", h.Transactions.DetailPage)
				r.Get("/{id}/card", h.Transactions.CardPartial)
				r.Post("/{id}/payment-proof", h.Transactions.UploadProof)
			})

			r.Get("/review", h.Reviews.ReviewPage)
			r.Post("/review", h.Reviews.SubmitReview)

			r.Get("/create-event", h.Organizer.CreateEventPage)
			r.Post("/create-event", h.Organizer.CreateEvent)
			r.Get("/create-promotion", h.Organizer.CreatePromotionPage)
			r.Post("/create-promotion", h.Organizer.CreatePromotion)
		})
	})

	return r
}
