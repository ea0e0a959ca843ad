package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListInsights godoc
// @Summary      Latest generated insights
// @Tags         insights
// @Produce      json
// @Param        limit  query  int  false  "Max insights (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/insights [get]
func (h *Handler) ListInsights(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-insights")
	defer span.End()

	limit := parseLimit(c, 10, 100)
	insights, err := h.insights.LatestInsights(ctx, limit)
	if err != nil {
		log.Printf("list insights error: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to load insights")
		return
	}
	respond(c, insights)
}

// GenerateInsights godoc
// @Summary      Run the insight pipeline now
// @Description  Runs every scorer once, persists all results, returns the first ten plus the total count. No dedup across calls.
// @Tags         insights
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/insights/generate [post]
func (h *Handler) GenerateInsights(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.generate-insights")
	defer span.End()

	insights, total, err := h.insights.GenerateInsights(ctx)
	if err != nil {
		log.Printf("generate insights error: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to generate insights")
		return
	}
	respond(c, gin.H{
		"insights":        insights,
		"total_generated": total,
	})
}
