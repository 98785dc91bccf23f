package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rpswager/rpswager/internal/api/middleware"
	"github.com/rpswager/rpswager/internal/api/request"
	"github.com/rpswager/rpswager/internal/api/response"
	"github.com/rpswager/rpswager/internal/ledger"
	"github.com/rpswager/rpswager/internal/services/auth"
)

// PlayerHandler handles player and account endpoints
type PlayerHandler struct {
	authService *auth.Service
	ledger      ledger.Ledger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service, ledger ledger.Ledger) *PlayerHandler {
	return &PlayerHandler{
		authService: authService,
		ledger:      ledger,
	}
}

// CreateGuest handles POST /api/v1/players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("username and password are required"))
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}

	session, err := h.authService.RegisterPlayer(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// GetBalance handles GET /api/v1/players/me/balance
func (h *PlayerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	balance, err := h.ledger.Balance(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BalanceResponse{
		PlayerID: string(player.ID),
		Balance:  balance,
	})
}

// Faucet handles POST /api/v1/players/me/faucet
func (h *PlayerHandler) Faucet(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.FaucetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Amount == 0 {
		WriteError(w, NewInvalidRequestError("amount must be positive"))
		return
	}

	if err := h.ledger.Credit(r.Context(), player.ID, req.Amount); err != nil {
		WriteError(w, err)
		return
	}

	balance, err := h.ledger.Balance(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BalanceResponse{
		PlayerID: string(player.ID),
		Balance:  balance,
	})
}
