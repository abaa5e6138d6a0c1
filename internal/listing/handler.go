package listing

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/offiswap/internal/auth"
	"github.com/redmonkez12/offiswap/internal/httputil"
	"github.com/redmonkez12/offiswap/internal/logging"
)

// Handler contains HTTP handlers for listing endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DeleteResponse confirms a deletion
type DeleteResponse struct {
	Message string `json:"message"`
}

// Create handles listing creation
// @Summary      Create a listing
// @Description  Create a new listing owned by the authenticated user
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        request body CreateInput true "Listing fields"
// @Success      201 {object} Listing
// @Failure      400 {object} httputil.ErrorResponse "Missing or invalid fields"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/listings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token, authorization denied.", httputil.CodeUnauthenticated, http.StatusUnauthorized)
		return
	}

	var in CreateInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		logger.Warn("invalid create listing body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), identity.ID, in)
	if err != nil {
		h.respondError(w, r, err, "creating listing")
		return
	}

	logger.Info("listing created", "listing_id", created.ID, "seller_id", identity.ID)
	httputil.RespondJSON(w, created, http.StatusCreated)
}

// List handles the public listing feed
// @Summary      List available listings
// @Description  All listings with status available, newest first, with seller name
// @Tags         listings
// @Produce      json
// @Success      200 {array} Listing
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/listings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.respondError(w, r, err, "fetching listings")
		return
	}

	httputil.RespondJSON(w, listings, http.StatusOK)
}

// ListMine handles the caller's own listings
// @Summary      List my listings
// @Description  Every listing owned by the authenticated user regardless of status, newest first
// @Tags         listings
// @Produce      json
// @Security     TokenAuth
// @Success      200 {array} Listing
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/listings/my [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token, authorization denied.", httputil.CodeUnauthenticated, http.StatusUnauthorized)
		return
	}

	listings, err := h.service.ListMine(r.Context(), identity.ID)
	if err != nil {
		h.respondError(w, r, err, "fetching user listings")
		return
	}

	httputil.RespondJSON(w, listings, http.StatusOK)
}

// Get handles a single listing lookup
// @Summary      Get a listing
// @Description  One listing of any status, with seller name
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} Listing
// @Failure      400 {object} httputil.ErrorResponse "Malformed ID"
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Router       /api/listings/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	l, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "fetching listing")
		return
	}

	httputil.RespondJSON(w, l, http.StatusOK)
}

// Update handles a partial update by the owner
// @Summary      Update a listing
// @Description  Partial update; omitted fields keep their stored values. Owner only.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id path string true "Listing ID"
// @Param        request body UpdateInput true "Fields to change"
// @Success      200 {object} Listing
// @Failure      400 {object} httputil.ErrorResponse "Malformed ID or invalid fields"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Not the owner"
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Router       /api/listings/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token, authorization denied.", httputil.CodeUnauthenticated, http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var in UpdateInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		logger.Warn("invalid update listing body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid data format for update.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), identity.ID, id, in)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			logger.Warn("listing update denied", "listing_id", id, "user_id", identity.ID)
			httputil.RespondErrorWithCode(w, "User not authorized to update this listing.", httputil.CodeForbidden, http.StatusForbidden)
			return
		}
		h.respondError(w, r, err, "updating listing")
		return
	}

	logger.Info("listing updated", "listing_id", id, "status", updated.Status)
	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles removal by the owner
// @Summary      Delete a listing
// @Description  Owner only.
// @Tags         listings
// @Produce      json
// @Security     TokenAuth
// @Param        id path string true "Listing ID"
// @Success      200 {object} DeleteResponse
// @Failure      400 {object} httputil.ErrorResponse "Malformed ID"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Not the owner"
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Router       /api/listings/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token, authorization denied.", httputil.CodeUnauthenticated, http.StatusUnauthorized)
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.ID, id); err != nil {
		if errors.Is(err, ErrForbidden) {
			logger.Warn("listing delete denied", "listing_id", id, "user_id", identity.ID)
			httputil.RespondErrorWithCode(w, "User not authorized to delete this listing.", httputil.CodeForbidden, http.StatusForbidden)
			return
		}
		h.respondError(w, r, err, "deleting listing")
		return
	}

	logger.Info("listing deleted", "listing_id", id)
	httputil.RespondJSON(w, DeleteResponse{Message: fmt.Sprintf("Listing %s deleted successfully.", id)}, http.StatusOK)
}

// respondError maps service errors that are common to all endpoints
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		httputil.RespondErrorWithCode(w, vErr.Message, httputil.CodeInvalidInput, http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, "Listing not found.", httputil.CodeNotFound, http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		httputil.RespondErrorWithCode(w, "User not authorized to modify this listing.", httputil.CodeForbidden, http.StatusForbidden)
	default:
		logging.GetLoggerFromContext(r.Context()).Error("listing request failed", "action", action, "error", err.Error())
		httputil.RespondErrorWithCode(w, "Server error while "+action+".", httputil.CodeInternalError, http.StatusInternalServerError)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "Invalid listing ID format.", httputil.CodeInvalidInput, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
