package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rpswager/rpswager/internal/api/middleware"
	"github.com/rpswager/rpswager/internal/api/request"
	"github.com/rpswager/rpswager/internal/api/response"
	"github.com/rpswager/rpswager/internal/model"
	"github.com/rpswager/rpswager/internal/services/match"
)

// MatchHandler handles match lifecycle endpoints
type MatchHandler struct {
	matchController *match.Controller
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchController *match.Controller) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	commitment, err := model.ParseCommitment(req.Commitment)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.Create(r.Context(), player.ID, commitment, req.Wager)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchController.ListOpenMatches(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.MatchListResponse{Matches: []response.MatchResponse{}}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, response.MatchFromModel(m))
	}

	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Join handles POST /api/v1/matches/{id}/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.JoinMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	commitment, err := model.ParseCommitment(req.Commitment)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.matchController.Join(r.Context(), id, player.ID, commitment); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Reveal handles POST /api/v1/matches/{id}/reveal
func (h *MatchHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	move, err := model.ParseMove(req.Move)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.matchController.Reveal(r.Context(), id, player.ID, move, req.Salt); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// RetrySettlement handles POST /api/v1/matches/{id}/settlement/retry
func (h *MatchHandler) RetrySettlement(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	if err := h.matchController.RetrySettlement(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}
