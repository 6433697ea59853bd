// README: Share-link endpoints: mint a token, restore from one.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/service"
)

type ShareHandler struct {
	assistant *service.Assistant
}

func NewShareHandler(assistant *service.Assistant) *ShareHandler {
	return &ShareHandler{assistant: assistant}
}

// Create handles POST /api/share, encoding the current payload/response pair.
func (h *ShareHandler) Create(c *gin.Context) {
	token, err := h.assistant.ShareToken()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"token": token})
}

// Restore handles GET /api/share/:token, rebuilding the view from the token.
func (h *ShareHandler) Restore(c *gin.Context) {
	view, err := h.assistant.Restore(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}
