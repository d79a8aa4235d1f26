package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrOrganizerNotFound   = errors.New("organizer not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrUnauthorized        = errors.New("unauthorized access")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAPIUnreachable      = errors.New("events api unreachable")
	ErrLoginRequired       = errors.New("No access token. Please login again.")
	ErrNoTicketsSelected   = errors.New("Pick at least one ticket.")
	ErrPromoNeedsTickets   = errors.New("Pick a ticket before using a promo.")
	ErrPointsNeedLogin     = errors.New("Log in to use points.")
	ErrProofRequired       = errors.New("Payment proof is required.")
	ErrProofNotImage       = errors.New("Payment proof must be an image.")
	ErrUploadNotAllowed    = errors.New("Cannot upload: the transaction is not awaiting payment or has expired.")
	ErrImageRequired       = errors.New("Image is required.")
	ErrNotAnImage          = errors.New("File must be an image.")
	ErrMissingCheckoutIDs  = errors.New("event_id / ticket_id missing from the checkout payload.")
	ErrDraftNotSaved       = errors.New("Your ticket selection could not be saved. Please try again.")
	ErrUploadTooLarge      = errors.New("File is too large.")
)
