package handlers

import (
	"errors"
	"net/http"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/internal/validation"
	"event-storefront/web/templates/pages"

	"go.uber.org/zap"
)

const (
	LoggedOutMessage    = "You have been logged out."
	invalidLoginMessage = "Invalid email or password"
)

// AuthHandler handles login and logout against the events API
type AuthHandler struct {
	auth      services.AuthServiceInterface
	validator *validation.Validator
	sessions  *middleware.SessionManager
	log       *zap.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(auth services.AuthServiceInterface, validator *validation.Validator, sessions *middleware.SessionManager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: validator,
		sessions:  sessions,
		log:       log,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirect(r.URL.Query().Get("redirect"))

	// Already logged in users go straight to their destination
	if middleware.GetUserFromContext(r.Context()) != nil {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, pages.LoginPage{Redirect: redirect})
}

// LoginSubmit handles login form submission
func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := &models.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	data := pages.LoginPage{
		Email:    form.Email,
		Redirect: safeRedirect(r.FormValue("redirect")),
	}

	if errs := h.validator.Login(form); errs.Any() {
		data.Email = form.Email
		data.Errors = errs
		h.renderLogin(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	user, err := h.auth.Login(r.Context(), form)
	if err != nil {
		status := statusFor(err)
		data.Error = apiclient.Message(err, "Login failed. Please try again.")
		if errors.Is(err, models.ErrUnauthorized) {
			status = http.StatusUnauthorized
			data.Error = invalidLoginMessage
		}
		h.renderLogin(w, r, status, data)
		return
	}

	session := h.sessions.Get(r)
	if err := h.sessions.SetUser(session, user); err != nil {
		h.log.Error("failed to store session user", zap.Error(err))
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	h.sessions.AddFlash(session, "success", "Welcome back, "+user.DisplayName()+"!")
	if err := h.sessions.Save(w, r, session); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	h.log.Info("user logged in", zap.String("user_id", user.ID))
	middleware.Redirect(w, r, data.Redirect)
}

// Logout clears the session and returns to the home page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Get(r)
	if user := h.sessions.User(session); user != nil {
		h.log.Info("user logged out", zap.String("user_id", user.ID))
	}

	h.sessions.ClearUser(r.Context(), session)
	h.sessions.AddFlash(session, "success", LoggedOutMessage)
	h.sessions.Save(w, r, session)

	middleware.Redirect(w, r, "/")
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data pages.LoginPage) {
	data.Layout = layout(w, r, h.sessions, "Login")
	render(w, r, status, pages.Login(data))
}
