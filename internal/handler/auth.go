package handler

import (
	"net/http"

	"birdai/internal/auth"

	"github.com/gin-gonic/gin"
)

// AdminLogin godoc
// @Summary      Admin login
// @Description  Checks the configured admin credentials and issues a 24h token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/admin/auth/login [post]
func (h *Handler) AdminLogin(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.admin-login")
	defer span.End()

	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.auth.AuthenticateAdmin(creds)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	respond(c, session)
}

// AdminVerify godoc
// @Summary      Verify an admin token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/admin/auth/verify [get]
func (h *Handler) AdminVerify(c *gin.Context) {
	h.verify(c, auth.RoleAdmin)
}

// DemoLogin godoc
// @Summary      Demo access login
// @Description  Checks the demo access code and issues a 2h token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/demo/auth/login [post]
func (h *Handler) DemoLogin(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.demo-login")
	defer span.End()

	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.auth.AuthenticateDemo(creds)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid access code")
		return
	}
	respond(c, session)
}

// DemoVerify godoc
// @Summary      Verify a demo token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/demo/auth/verify [get]
func (h *Handler) DemoVerify(c *gin.Context) {
	h.verify(c, auth.RoleDemo)
}

func (h *Handler) verify(c *gin.Context, want auth.Role) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.verify-token")
	defer span.End()

	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	claims, err := h.auth.Verify(token)
	if err != nil || claims.Role != want {
		respondError(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	respond(c, gin.H{
		"user": gin.H{
			"role":     claims.Role,
			"username": claims.Username,
		},
		"expiresAt": claims.ExpiresAt,
	})
}
