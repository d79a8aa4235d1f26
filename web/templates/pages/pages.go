package pages

import (
	"time"

	"event-storefront/internal/models"
	"event-storefront/internal/services"

	"github.com/a-h/templ"
)

// Layout is the chrome shared by every full page
type Layout struct {
	Title   string
	User    *models.SessionUser
	CSRF    string
	Flashes []models.Flash
}

// LoggedIn reports whether a user is signed in
func (l Layout) LoggedIn() bool {
	return l.User != nil
}

// CategoriesSection is the category grid
type CategoriesSection struct {
	Categories []models.Category
	ActiveID   int
	Error      string
}

// EventsSection is a searchable, paginated event list
type EventsSection struct {
	Events      []models.Event
	Meta        models.PageMeta
	Search      string
	CategoryID  int
	OrganizerID int
	Debounce    time.Duration
	ShowSearch  bool
	Error       string
}

// PromotionsSection is the promotion carousel
type PromotionsSection struct {
	Promotions  []models.Promotion
	Next        int
	OrganizerID int
	Interval    time.Duration
	Rotates     bool
	LoggedIn    bool
	Error       string
}

// HomePage is the landing page and the browse page
type HomePage struct {
	Layout
	Browse         bool
	ActiveCategory *models.Category
	Categories     CategoriesSection
	Events         EventsSection
	Promotions     PromotionsSection
}

// PurchaseSection is the ticket picker with its order summary
type PurchaseSection struct {
	Event    *models.Event
	Draft    *models.PurchaseDraft
	Pricing  services.Pricing
	LoggedIn bool
	Error    string
}

// EventPage is the event detail page
type EventPage struct {
	Layout
	Event    *models.Event
	Purchase PurchaseSection
}

// CheckoutModal shows the DRAFT transaction before it is created
type CheckoutModal struct {
	Slug  string
	View  *services.TransactionView
	Error string
}

// TransactionCard is the transaction summary with the payment-proof upload
type TransactionCard struct {
	View   *services.TransactionView
	State  services.UploadState
	Error  string
	Notice string
}

// TabLink is one status tab of the transactions page
type TabLink struct {
	Label  string
	Href   string
	Active bool
}

// TransactionRow is one transaction in the ongoing list
type TransactionRow struct {
	Transaction models.Transaction
	Label       string
	Tone        string
	ReviewURL   string
}

// TransactionsPage lists the user's transactions by status
type TransactionsPage struct {
	Layout
	Tabs        []TabLink
	ActiveTab   string
	Rows        []TransactionRow
	Meta        models.PageMeta
	PrevURL     string
	NextURL     string
	Error       string
	Suggestions []models.Event
	Promotions  PromotionsSection
}

// TransactionPage shows one transaction and its upload card
type TransactionPage struct {
	Layout
	Card TransactionCard
}

// ReviewPage is the post-event review form
type ReviewPage struct {
	Layout
	Form        models.ReviewForm
	EventTitle  string
	OrganizerID int
	Errors      map[string]string
	Error       string
}

// OrganizerPage shows an organizer with their events, promotions and reviews
type OrganizerPage struct {
	Layout
	Profile      *services.OrganizerProfile
	Events       EventsSection
	Promotions   PromotionsSection
	Reviews      []models.Review
	ReviewsError string
}

// CreateEventPage is the organizer's create-event form
type CreateEventPage struct {
	Layout
	Form       *models.CreateEventForm
	Categories []models.Category
	Errors     map[string]string
	Error      string
}

// CreatePromotionPage is the organizer's create-promotion form
type CreatePromotionPage struct {
	Layout
	Form   *models.CreatePromotionForm
	Events []models.Event
	Errors map[string]string
	Error  string
}

// LoginPage is the sign-in form
type LoginPage struct {
	Layout
	Email    string
	Redirect string
	Errors   map[string]string
	Error    string
}

// ErrorPage is shown for missing or unavailable resources
type ErrorPage struct {
	Layout
	Status  int
	Heading string
	Message string
}

func Home(p HomePage) templ.Component {
	return page("home.html", p)
}

func Event(p EventPage) templ.Component {
	return page("event.html", p)
}

func Transactions(p TransactionsPage) templ.Component {
	return page("transactions.html", p)
}

func Transaction(p TransactionPage) templ.Component {
	return page("transaction.html", p)
}

func Review(p ReviewPage) templ.Component {
	return page("review.html", p)
}

func Organizer(p OrganizerPage) templ.Component {
	return page("organizer.html", p)
}

func CreateEvent(p CreateEventPage) templ.Component {
	return page("create_event.html", p)
}

func CreatePromotion(p CreatePromotionPage) templ.Component {
	return page("create_promotion.html", p)
}

func Login(p LoginPage) templ.Component {
	return page("login.html", p)
}

func Error(p ErrorPage) templ.Component {
	return page("error.html", p)
}

// EventsList renders the event list partial
func EventsList(s EventsSection) templ.Component {
	return partial("events-list", s)
}

// PromotionCarousel renders one carousel step
func PromotionCarousel(s PromotionsSection) templ.Component {
	return partial("promotions-carousel", s)
}

// Purchase renders the ticket picker and order summary
func Purchase(s PurchaseSection) templ.Component {
	return partial("purchase", s)
}

// Checkout renders the DRAFT transaction modal
func Checkout(m CheckoutModal) templ.Component {
	return partial("checkout-modal", m)
}

// TransactionCardPartial renders the upload card
func TransactionCardPartial(c TransactionCard) templ.Component {
	return partial("transaction-card", c)
}
