package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/auth"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	sessions *auth.Manager
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(sessions *auth.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, ok := h.sessions.Login(req.Username, req.Password)
	if !ok {
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("Failed login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout handles POST /v1/auth/logout. Logging out an already-dead
// token still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(bearerToken(c.GetHeader("Authorization")))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
