package handlers

import (
	"context"
	"errors"
	"net/http"

	"gizindir-panel/internal/repository"
	"gizindir-panel/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Service is the business surface behind one entity's REST routes
type Service[T, C, U any] interface {
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in *C) (*T, error)
	Update(ctx context.Context, id int64, in *U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// CRUDHandler serves list/get/create/update/delete for one entity
type CRUDHandler[T, C, U any] struct {
	entity  Entity
	service Service[T, C, U]
}

// NewCRUDHandler creates a new CRUD handler
func NewCRUDHandler[T, C, U any](entity Entity, service Service[T, C, U]) *CRUDHandler[T, C, U] {
	return &CRUDHandler[T, C, U]{entity: entity, service: service}
}

// Routes mounts the entity's endpoints; PUT is registered only for mutable
// entities so other entities answer 405
func (h *CRUDHandler[T, C, U]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	if h.entity.Mutable {
		r.Put("/{id}", h.Update)
	}
	r.Delete("/{id}", h.Delete)
}

// List handles GET /api/{entity}
func (h *CRUDHandler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Str("entity", h.entity.Name).Msg("Failed to list records")
		respondError(w, h.entity.Messages.ListFailed, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// Get handles GET /api/{entity}/{id}
func (h *CRUDHandler[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, h.entity.Messages.InvalidID, http.StatusBadRequest)
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, h.entity.Messages.NotFound, http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("entity", h.entity.Name).Int64("id", id).Msg("Failed to get record")
		respondError(w, h.entity.Messages.GetFailed, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// Create handles POST /api/{entity}
func (h *CRUDHandler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	if err := decodeBody(w, r, &in); err != nil {
		respondInvalid(w, h.entity.Messages.InvalidBody, err)
		return
	}

	record, err := h.service.Create(r.Context(), &in)
	if err != nil {
		if services.IsValidationError(err) {
			respondInvalid(w, h.entity.Messages.InvalidBody, err)
			return
		}
		log.Error().Err(err).Str("entity", h.entity.Name).Msg("Failed to create record")
		respondError(w, h.entity.Messages.CreateFailed, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// Update handles PUT /api/{entity}/{id}. A missing record is reported as a
// failed update, not as 404.
func (h *CRUDHandler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, h.entity.Messages.InvalidID, http.StatusBadRequest)
		return
	}

	var in U
	if err := decodeBody(w, r, &in); err != nil {
		respondInvalid(w, h.entity.Messages.InvalidBody, err)
		return
	}

	record, err := h.service.Update(r.Context(), id, &in)
	if err != nil {
		if services.IsValidationError(err) {
			respondInvalid(w, h.entity.Messages.InvalidBody, err)
			return
		}
		log.Error().Err(err).Str("entity", h.entity.Name).Int64("id", id).Msg("Failed to update record")
		respondError(w, h.entity.Messages.UpdateFailed, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/{entity}/{id}. A missing record is reported as
// a failed delete, not as 404.
func (h *CRUDHandler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, h.entity.Messages.InvalidID, http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("entity", h.entity.Name).Int64("id", id).Msg("Failed to delete record")
		respondError(w, h.entity.Messages.DeleteFailed, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
