package handler

import (
	"errors"
	"net/http"

	"birdai/internal/ledger"

	"github.com/gin-gonic/gin"
)

type ledgerRequest struct {
	Amount float64 `json:"amount"`
}

// Mint godoc
// @Summary      Mint demo stablecoins
// @Description  Adds the amount to the simulated reserve. In-memory only; state resets on restart.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/ledger/mint [post]
func (h *Handler) Mint(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.ledger-mint")
	defer span.End()

	var req ledgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.ledger.Mint(req.Amount)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	respond(c, tx)
}

// Redeem godoc
// @Summary      Redeem demo stablecoins
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/ledger/redeem [post]
func (h *Handler) Redeem(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.ledger-redeem")
	defer span.End()

	var req ledgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.ledger.Redeem(req.Amount)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ledger.ErrInsufficientReserve) {
			status = http.StatusUnprocessableEntity
		}
		respondError(c, status, err.Error())
		return
	}
	respond(c, tx)
}

// LedgerHistory godoc
// @Summary      Transaction history, most recent first
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ledger/history [get]
func (h *Handler) LedgerHistory(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.ledger-history")
	defer span.End()

	respond(c, h.ledger.History())
}

// LedgerReserve godoc
// @Summary      Current reserve balance
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ledger/reserve [get]
func (h *Handler) LedgerReserve(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.ledger-reserve")
	defer span.End()

	respond(c, gin.H{"reserve": h.ledger.Reserve()})
}
