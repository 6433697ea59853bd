// README: Trip history endpoints: list, replay, like, delete, favourites.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/modules/trip"
	"wayfarer/internal/service"
	"wayfarer/internal/types"
)

type TripHandler struct {
	trips     *trip.Service
	assistant *service.Assistant
}

func NewTripHandler(trips *trip.Service, assistant *service.Assistant) *TripHandler {
	return &TripHandler{trips: trips, assistant: assistant}
}

// List handles GET /api/trips, most recent first.
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}

// Favourites handles GET /api/trips/favourites.
func (h *TripHandler) Favourites(c *gin.Context) {
	trips, err := h.trips.Favourites(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}

type replayResponse struct {
	Trip *trip.TripRecord   `json:"trip"`
	View *service.RoundView `json:"view"`
}

// Replay handles GET /api/trips/:id. The stored response is re-rendered and
// becomes the session's current trip, so follow-up re-evaluation works.
func (h *TripHandler) Replay(c *gin.Context) {
	id := c.Param("id")
	if !isValidTripID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}

	view, rec, err := h.assistant.Replay(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, replayResponse{Trip: rec, View: view})
}

type likeRequest struct {
	Liked bool `json:"liked"`
}

// Like handles POST /api/trips/:id/like.
func (h *TripHandler) Like(c *gin.Context) {
	id := c.Param("id")
	if !isValidTripID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.trips.SetLiked(c.Request.Context(), types.ID(id), req.Liked); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": id, "liked": req.Liked})
}

// Delete handles DELETE /api/trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !isValidTripID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}

	if err := h.trips.Delete(c.Request.Context(), types.ID(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
