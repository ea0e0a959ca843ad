package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MarketData godoc
// @Summary      Combined market view
// @Description  Per-asset snapshots, global totals, and Sui network stats. Always 200: upstream failures are replaced with indicative fallback figures.
// @Tags         market
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/market-data [get]
func (h *Handler) MarketData(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.market-data")
	defer span.End()

	respond(c, h.market.GetMarketData(ctx))
}

// MarketHistory godoc
// @Summary      Stored market snapshots, newest first
// @Tags         market
// @Produce      json
// @Param        limit  query  int  false  "Max snapshots (default 20)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/market-data/history [get]
func (h *Handler) MarketHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.market-history")
	defer span.End()

	limit := parseLimit(c, 20, 200)
	snaps, err := h.insights.LatestSnapshots(ctx, limit)
	if err != nil {
		span.RecordError(err)
		respondError(c, http.StatusInternalServerError, "failed to load snapshots")
		return
	}
	respond(c, snaps)
}

// Sentiment godoc
// @Summary      Latest sentiment readings
// @Tags         market
// @Produce      json
// @Param        limit  query  int  false  "Max records (default 20)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/sentiment [get]
func (h *Handler) Sentiment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.sentiment")
	defer span.End()

	limit := parseLimit(c, 20, 100)
	records, err := h.insights.LatestSentiment(ctx, limit)
	if err != nil {
		span.RecordError(err)
		respondError(c, http.StatusInternalServerError, "failed to load sentiment")
		return
	}
	respond(c, records)
}

func parseLimit(c *gin.Context, def, max int) int {
	limit := def
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= max {
			limit = n
		}
	}
	return limit
}
