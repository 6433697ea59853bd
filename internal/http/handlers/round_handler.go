// README: Planning round endpoints: submit, re-evaluate, preference options.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/planner"
	"wayfarer/internal/service"
)

type RoundHandler struct {
	assistant *service.Assistant
}

func NewRoundHandler(assistant *service.Assistant) *RoundHandler {
	return &RoundHandler{assistant: assistant}
}

// Plan handles POST /api/rounds. The body is the full outbound payload; the
// settled view comes back with markup, points and map state.
func (h *RoundHandler) Plan(c *gin.Context) {
	var payload planner.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Mode != planner.ModeDayOut && payload.Mode != planner.ModeTripPlanner {
		writeError(c, http.StatusBadRequest, "mode must be day-out or trip-planner")
		return
	}
	if payload.UserPrompt == "" {
		writeError(c, http.StatusBadRequest, "user_prompt is required")
		return
	}

	view, err := h.assistant.Plan(c.Request.Context(), payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

type reEvaluateRequest struct {
	Refinement string `json:"refinement"`
}

// ReEvaluate handles POST /api/rounds/reevaluate. Requires a settled round in
// the session; the refinement text is appended to the original prompt.
func (h *RoundHandler) ReEvaluate(c *gin.Context) {
	var req reEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refinement == "" {
		writeError(c, http.StatusBadRequest, "refinement is required")
		return
	}

	view, err := h.assistant.ReEvaluate(c.Request.Context(), req.Refinement)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

type optionsResponse struct {
	AreaTypes     []string `json:"area_types"`
	ActivityTypes []string `json:"activity_types"`
}

// Options handles GET /api/preferences/options. Pools come back shuffled so
// the chips render in a fresh order each time.
func (h *RoundHandler) Options(c *gin.Context) {
	writeJSON(c, http.StatusOK, optionsResponse{
		AreaTypes:     planner.ShuffledOptions(planner.AreaTypeOptions),
		ActivityTypes: planner.ShuffledOptions(planner.ActivityTypeOptions),
	})
}
