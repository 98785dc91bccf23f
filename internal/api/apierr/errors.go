package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpswager/rpswager/internal/ledger"
	"github.com/rpswager/rpswager/internal/model"
	"github.com/rpswager/rpswager/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidMove        = "INVALID_MOVE"
	CodeInvalidCommitment  = "INVALID_COMMITMENT"
	CodeInvalidWager       = "INVALID_WAGER"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotParticipant     = "NOT_PARTICIPANT"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeGameNotOpen        = "GAME_NOT_OPEN"
	CodeInvalidGameStatus  = "INVALID_GAME_STATUS"
	CodeOwnMatch           = "OWN_MATCH"
	CodeInvalidReveal      = "INVALID_REVEAL"
	CodeAlreadyRevealed    = "ALREADY_REVEALED"
	CodeNumericalOverflow  = "NUMERICAL_OVERFLOW"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrGameNotOpen):
		return &httpError{http.StatusConflict, APIError{CodeGameNotOpen, "Match is not open for joining"}}
	case errors.Is(err, model.ErrInvalidGameStatus):
		return &httpError{http.StatusConflict, APIError{CodeInvalidGameStatus, "Operation not valid in current match status"}}
	case errors.Is(err, model.ErrOwnMatch):
		return &httpError{http.StatusConflict, APIError{CodeOwnMatch, "Cannot join your own match"}}
	case errors.Is(err, model.ErrInvalidReveal):
		return &httpError{http.StatusForbidden, APIError{CodeInvalidReveal, "Move and salt do not match the stored commitment"}}
	case errors.Is(err, model.ErrAlreadyRevealed):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRevealed, "Move already revealed"}}
	case errors.Is(err, model.ErrUnauthorizedPlayer):
		return &httpError{http.StatusForbidden, APIError{CodeNotParticipant, "Not a participant in this match"}}
	case errors.Is(err, model.ErrInvalidMove):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMove, "Move must be rock, paper or scissors"}}
	case errors.Is(err, model.ErrInvalidCommitment):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCommitment, "Commitment must be 32 bytes of hex"}}
	case errors.Is(err, model.ErrInvalidWager):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWager, "Invalid wager amount"}}
	case errors.Is(err, model.ErrNumericalOverflow):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNumericalOverflow, "Settlement arithmetic cannot be represented safely"}}

	// Map ledger errors
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return &httpError{http.StatusPaymentRequired, APIError{CodeInsufficientFunds, "Insufficient funds to cover the wager"}}
	case errors.Is(err, ledger.ErrAmountTooLarge):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNumericalOverflow, "Amount exceeds ledger capacity"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
