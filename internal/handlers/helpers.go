package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/logging"
	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates/pages"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

// render writes a component with the given status. The component is rendered
// into a buffer first so a template failure still produces a clean 500.
func render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		logging.FromContext(r.Context()).Error("failed to render page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// layout pops the queued toasts and fills the page chrome
func layout(w http.ResponseWriter, r *http.Request, sessions *middleware.SessionManager, title string) pages.Layout {
	session := sessions.Get(r)
	flashes := sessions.Flashes(session)
	if len(flashes) > 0 {
		sessions.Save(w, r, session)
	}
	return pages.NewLayout(r.Context(), title, flashes)
}

// renderError shows the error page, or an inline fragment for HTMX swaps
func renderError(w http.ResponseWriter, r *http.Request, sessions *middleware.SessionManager, status int, heading, message string) {
	if middleware.IsHTMXRequest(r) {
		middleware.WriteHTMXError(w, status, message)
		return
	}
	render(w, r, status, pages.Error(pages.ErrorPage{
		Layout:  layout(w, r, sessions, heading),
		Status:  status,
		Heading: heading,
		Message: message,
	}))
}

// statusFor maps a service error onto the response status
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrLoginRequired), errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apiclient.ErrNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrTransactionNotFound),
		errors.Is(err, models.ErrOrganizerNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrImageRequired),
		errors.Is(err, models.ErrNotAnImage),
		errors.Is(err, models.ErrProofRequired),
		errors.Is(err, models.ErrProofNotImage),
		errors.Is(err, models.ErrUploadNotAllowed),
		errors.Is(err, models.ErrNoTicketsSelected),
		errors.Is(err, models.ErrPromoNeedsTickets),
		errors.Is(err, models.ErrPointsNeedLogin),
		errors.Is(err, models.ErrMissingCheckoutIDs),
		errors.Is(err, models.ErrTicketNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrDraftNotSaved):
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

// swapStatus is the status for a partial that shows err inline. HTMX only
// swaps 2xx responses, so those get 200.
func swapStatus(r *http.Request, err error) int {
	if err == nil || middleware.IsHTMXRequest(r) {
		return http.StatusOK
	}
	return statusFor(err)
}

// queryInt reads a positive integer query parameter, or 0
func queryInt(r *http.Request, key string) int {
	return positiveInt(r.URL.Query().Get(key))
}

func positiveInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// readUpload loads an optional file field into an Upload, nil when missing
// parseUploadForm parses a multipart form. A body cut off by the request
// size limit yields ErrUploadTooLarge.
func parseUploadForm(r *http.Request, maxBytes int64) error {
	err := r.ParseMultipartForm(maxBytes)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return services.UploadTooLarge(maxBytes)
	}
	return err
}

// rejectUpload answers a multipart form that could not be parsed
func rejectUpload(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusBadRequest, "Invalid form data"
	if errors.Is(err, models.ErrUploadTooLarge) {
		status, message = http.StatusRequestEntityTooLarge, err.Error()
	}
	if middleware.IsHTMXRequest(r) {
		middleware.TriggerToast(w, "error", message)
		middleware.WriteHTMXError(w, status, message)
		return
	}
	http.Error(w, message, status)
}

func readUpload(r *http.Request, field string, maxBytes int64) (*models.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return uploadFrom(file, header, maxBytes)
}

func uploadFrom(file multipart.File, header *multipart.FileHeader, maxBytes int64) (*models.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &models.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// safeRedirect only allows local paths as post-login targets
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
