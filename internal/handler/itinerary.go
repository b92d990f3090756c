package handler

import (
	"net/http"
	"strconv"

	"github.com/forgo/voyage/api/internal/middleware"
	"github.com/forgo/voyage/api/internal/model"
	"github.com/forgo/voyage/api/internal/service"
)

// ItineraryHandler handles itinerary endpoints
type ItineraryHandler struct {
	itineraryService *service.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(itineraryService *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
	}
}

// DeleteResponse is the body returned on a successful delete
type DeleteResponse struct {
	Success bool `json:"success"`
}

// Create handles POST /v1/itineraries
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateItineraryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	ownerID := middleware.GetUserID(r.Context())
	ownerEmail := middleware.GetUserEmail(r.Context())

	it, err := h.itineraryService.Create(r.Context(), ownerID, ownerEmail, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusCreated, it)
}

// List handles GET /v1/itineraries
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)
	ownerID := middleware.GetUserID(r.Context())

	page, err := h.itineraryService.List(r.Context(), ownerID, query)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /v1/itineraries/{id}
func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	it, err := h.itineraryService.Get(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, it)
}

// Update handles PUT /v1/itineraries/{id}
func (h *ItineraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateItineraryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	ownerID := middleware.GetUserID(r.Context())

	it, err := h.itineraryService.Update(r.Context(), ownerID, r.PathValue("id"), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, it)
}

// Delete handles DELETE /v1/itineraries/{id}
func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	if err := h.itineraryService.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

// GetShared handles GET /v1/itineraries/share/{shareableId}
func (h *ItineraryHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	it, err := h.itineraryService.GetShared(r.Context(), r.PathValue("shareableId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, it)
}

// parseListQuery reads pagination, filter, and sort parameters. Non-numeric
// page and limit values fall through to the service defaults.
func parseListQuery(r *http.Request) *model.ListItinerariesQuery {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return &model.ListItinerariesQuery{
		Page:        page,
		Limit:       limit,
		Destination: q.Get("destination"),
		Sort:        q.Get("sort"),
	}
}
