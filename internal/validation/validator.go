package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"event-storefront/internal/models"
	"event-storefront/internal/utils"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to its first error message
type FieldErrors map[string]string

// Any reports whether at least one field failed
func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// Error joins the messages so FieldErrors can travel as an error
func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, m := range fe {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, " ")
}

// Validator validates form structs by their `validate` tags and reports
// errors under their `form` field names.
type Validator struct {
	validate *validator.Validate
	loc      *time.Location
}

// New creates a validator; datetime-local inputs are read in loc
func New(loc *time.Location) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if loc == nil {
		loc = time.Local
	}
	return &Validator{validate: v, loc: loc}
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// check runs struct validation and translates failures through messages,
// keyed by "<field>.<tag>" with slice indexes removed (tickets.name.required).
func (v *Validator) check(s any, messages map[string]string) FieldErrors {
	errs := FieldErrors{}

	err := v.validate.Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_form"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		key := indexPattern.ReplaceAllString(field, "") + "." + fe.Tag()

		msg, ok := messages[key]
		if !ok {
			msg = defaultMessage(fe)
		}
		if _, exists := errs[field]; !exists {
			errs[field] = msg
		}
	}
	return errs
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required."
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters."
	case "gte":
		return fe.Field() + " must be " + fe.Param() + " or more."
	case "lte":
		return fe.Field() + " must be " + fe.Param() + " or less."
	case "uuid":
		return fe.Field() + " must be a UUID."
	case "email":
		return "Enter a valid email address."
	}
	return fe.Field() + " is invalid."
}

var createEventMessages = map[string]string{
	"title.required":        "Title must be at least 5 characters.",
	"title.min":             "Title must be at least 5 characters.",
	"category_id.gte":       "Category is required.",
	"description.required":  "Description must be at least 10 characters.",
	"description.min":       "Description must be at least 10 characters.",
	"start_date.required":   "Start date is required.",
	"end_date.required":     "End date is required.",
	"location.required":     "Location is required.",
	"image.required":        "Image is required.",
	"tickets.min":           "At least 1 ticket type is required.",
	"tickets.name.required": "Ticket name is required.",
	"tickets.price.gte":     "Price must be 0 or more.",
	"tickets.quota.gte":     "Quota must be at least 1.",
}

// CreateEvent validates the create-event form, including end >= start
func (v *Validator) CreateEvent(form *models.CreateEventForm) FieldErrors {
	form.Title = strings.TrimSpace(form.Title)
	form.Description = strings.TrimSpace(form.Description)
	form.Location = strings.TrimSpace(form.Location)
	for i := range form.Tickets {
		form.Tickets[i].Name = strings.TrimSpace(form.Tickets[i].Name)
	}
	if form.Image.Empty() {
		form.Image = nil
	}

	errs := v.check(form, createEventMessages)

	start, okStart := utils.ParseLocalInput(form.StartDate, v.loc)
	end, okEnd := utils.ParseLocalInput(form.EndDate, v.loc)
	if okStart && okEnd && end.Before(start) {
		if _, exists := errs["end_date"]; !exists {
			errs["end_date"] = "End date must be after start date"
		}
	}
	return errs
}

var createPromotionMessages = map[string]string{
	"code.required":          "Code is required.",
	"discount_name.required": "Promotion name is required.",
	"discount_amount.gte":    "Discount amount must be >= 1.",
	"quota.gte":              "Quota must be >= 1.",
	"expires_at.required":    "Expires date is required.",
	"event_id.required":      "Event ID must be a UUID.",
	"event_id.uuid":          "Event ID must be a UUID.",
	"image.required":         "Image is required.",
}

// CreatePromotion validates the create-promotion form
func (v *Validator) CreatePromotion(form *models.CreatePromotionForm) FieldErrors {
	form.Code = strings.TrimSpace(form.Code)
	form.DiscountName = strings.TrimSpace(form.DiscountName)
	form.EventID = strings.TrimSpace(form.EventID)
	if form.Image.Empty() {
		form.Image = nil
	}
	return v.check(form, createPromotionMessages)
}

var reviewMessages = map[string]string{
	"transaction_id.required": "Transaction ID is missing.",
	"transaction_id.uuid":     "Transaction ID must be a UUID.",
	"event_id.required":       "Event ID is missing.",
	"event_id.uuid":           "Event ID must be a UUID.",
	"rating.gte":              "Rating must be between 1 and 5.",
	"rating.lte":              "Rating must be between 1 and 5.",
	"comment.min":             "Comment must be at least 3 characters.",
}

// Review validates a review submission
func (v *Validator) Review(form *models.ReviewForm) FieldErrors {
	form.TransactionID = strings.TrimSpace(form.TransactionID)
	form.EventID = strings.TrimSpace(form.EventID)
	form.Comment = strings.TrimSpace(form.Comment)
	return v.check(form, reviewMessages)
}

var loginMessages = map[string]string{
	"email.required":    "Email is required.",
	"email.email":       "Enter a valid email address.",
	"password.required": "Password is required.",
}

// Login validates the login form
func (v *Validator) Login(form *models.LoginForm) FieldErrors {
	form.Email = strings.TrimSpace(form.Email)
	return v.check(form, loginMessages)
}
