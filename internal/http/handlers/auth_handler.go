// README: Account endpoints: sign-up, sign-in, sign-out, current user.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/middleware"
	"wayfarer/internal/modules/auth"
)

type AuthHandler struct {
	accounts *auth.Service
}

func NewAuthHandler(accounts *auth.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{ID: string(u.ID), Email: u.Email, CreatedAt: u.CreatedAt}
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.accounts.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toUserResponse(u))
}

// SignIn handles POST /api/auth/signin, returning a bearer token.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.accounts.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"token": token})
}

// SignOut handles POST /api/auth/signout. Tokens are stateless; this exists so
// clients have a uniform lifecycle to call.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.accounts.SignOut(c.Request.Context(), middleware.CallerToken(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/auth/me for the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.accounts.CurrentUser(c.Request.Context(), middleware.CallerToken(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toUserResponse(u))
}
