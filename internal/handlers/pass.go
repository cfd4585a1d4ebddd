package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pereval-backend/internal/models"
	"pereval-backend/internal/repository"
	"pereval-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PassService is the business surface the handlers call into.
type PassService interface {
	SubmitPass(ctx context.Context, input *models.PassInput) (int64, error)
	GetPass(ctx context.Context, id int64) (*models.Pass, error)
	UpdatePass(ctx context.Context, id int64, input *models.PassInput) error
	ListPassesByEmail(ctx context.Context, email string) ([]*models.Pass, error)
}

// PassHandler handles mountain pass HTTP requests
type PassHandler struct {
	passService PassService
}

// NewPassHandler creates a new pass handler
func NewPassHandler(passService PassService) *PassHandler {
	return &PassHandler{
		passService: passService,
	}
}

// SubmitData handles POST /submitData
func (h *PassHandler) SubmitData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input models.PassInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.passService.SubmitPass(ctx, &input)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			respondError(w, vErr.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("title", input.Title).Msg("Failed to submit pass")
		respondError(w, "Failed to save submission", http.StatusInternalServerError)
		return
	}

	log.Info().Int64("pass_id", id).Str("title", input.Title).Msg("Pass submitted")

	respondJSON(w, models.SubmitResponse{
		ID:      id,
		Status:  models.StatusNew,
		Message: "Submission accepted for moderation",
	}, http.StatusCreated)
}

// GetPass handles GET /submitData/{id}
func (h *PassHandler) GetPass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid pass ID", http.StatusBadRequest)
		return
	}

	pass, err := h.passService.GetPass(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "Pass not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("pass_id", id).Msg("Failed to get pass")
		respondError(w, "Failed to get pass", http.StatusInternalServerError)
		return
	}

	respondJSON(w, pass, http.StatusOK)
}

// UpdatePass handles PATCH /submitData/{id}
func (h *PassHandler) UpdatePass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, models.UpdateResponse{State: 0, Message: "Invalid pass ID"}, http.StatusBadRequest)
		return
	}

	var input models.PassInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, models.UpdateResponse{State: 0, Message: "Invalid request body"}, http.StatusBadRequest)
		return
	}

	if err := h.passService.UpdatePass(ctx, id, &input); err != nil {
		state := models.UpdateResponse{State: 0, Message: err.Error()}

		var vErr *services.ValidationError
		var editErr *repository.EditNotAllowedError
		var protectedErr *repository.ProtectedFieldsError
		switch {
		case errors.As(err, &vErr):
			respondJSON(w, state, http.StatusBadRequest)
		case errors.Is(err, repository.ErrNotFound):
			respondJSON(w, state, http.StatusNotFound)
		case errors.As(err, &editErr), errors.As(err, &protectedErr):
			respondJSON(w, state, http.StatusUnprocessableEntity)
		default:
			log.Error().Err(err).Int64("pass_id", id).Msg("Failed to update pass")
			state.Message = "Failed to update record"
			respondJSON(w, state, http.StatusInternalServerError)
		}
		return
	}

	log.Info().Int64("pass_id", id).Msg("Pass updated")

	respondJSON(w, models.UpdateResponse{State: 1, Message: "Record updated successfully"}, http.StatusOK)
}

// ListByEmail handles GET /submitData/?user__email=<email>
func (h *PassHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.URL.Query().Get("user__email")
	if email == "" {
		respondError(w, "user__email query parameter is required", http.StatusBadRequest)
		return
	}

	passes, err := h.passService.ListPassesByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to list passes")
		respondError(w, "Failed to list passes", http.StatusInternalServerError)
		return
	}

	respondJSON(w, passes, http.StatusOK)
}
