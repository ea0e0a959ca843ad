package handler

import (
	"log"
	"net/http"
	"strings"

	"birdai/internal/domain"

	"github.com/gin-gonic/gin"
)

// Consumer webmail domains rejected by the capture form; the sales team only
// wants work addresses.
var webmailDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"aol.com":        true,
	"icloud.com":     true,
	"live.com":       true,
	"msn.com":        true,
	"proton.me":      true,
	"protonmail.com": true,
	"gmx.com":        true,
	"mail.com":       true,
}

type collectEmailRequest struct {
	Email    string `json:"email"`
	FileName string `json:"fileName"`
	Source   string `json:"source"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Message  string `json:"message"`
}

// CollectEmail godoc
// @Summary      Capture a lead email
// @Description  Rejects invalid addresses and consumer webmail domains; appends the capture to the email store.
// @Tags         emails
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/collect-email [post]
func (h *Handler) CollectEmail(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.collect-email")
	defer span.End()

	var req collectEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	domainPart, ok := emailDomain(email)
	if !ok {
		respondError(c, http.StatusBadRequest, "Please enter a valid email address")
		return
	}
	if webmailDomains[domainPart] {
		respondError(c, http.StatusBadRequest, "Please use a work email address")
		return
	}

	capture := domain.EmailCapture{
		Email:     email,
		Source:    req.Source,
		FileName:  req.FileName,
		Name:      req.Name,
		Company:   req.Company,
		Message:   req.Message,
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
	if err := h.emails.Append(capture); err != nil {
		log.Printf("email capture write error: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to save email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thanks! We'll be in touch."})
}

// ListEmails godoc
// @Summary      All captured emails, newest first
// @Tags         emails
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/admin/emails [get]
func (h *Handler) ListEmails(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.list-emails")
	defer span.End()

	captures, err := h.emails.All()
	if err != nil {
		log.Printf("email list read error: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to load emails")
		return
	}
	respond(c, captures)
}

// emailDomain extracts the domain of an address, requiring a non-empty local
// part and a dotted domain.
func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	domainPart := email[at+1:]
	if !strings.Contains(domainPart, ".") {
		return "", false
	}
	return domainPart, true
}
