// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/modules/auth"
	"wayfarer/internal/modules/share"
	"wayfarer/internal/modules/trip"
	"wayfarer/internal/service"
	"wayfarer/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidTripID matches the generated id shape: millis, dash, base36 suffix.
func isValidTripID(v string) bool {
	if len(v) == 0 || len(v) > 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || c == '-' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	// Planning-service errors carry a user-visible message.
	var planErr *service.PlanError
	if errors.As(err, &planErr) {
		writeError(c, http.StatusBadGateway, planErr.Message)
		return
	}

	switch {
	case errors.Is(err, trip.ErrNotFound), errors.Is(err, auth.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrRoundInFlight):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNoCurrentTrip):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, share.ErrDecode):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		writeError(c, http.StatusUnauthorized, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
