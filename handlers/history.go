package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Lingaraj8064/Crop-AI-Sys/models"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 10

// HistoryHandler lists recent analyses
// @Summary      Recent analysis history
// @Description  Return the most recent image analyses, newest first
// @Tags         History
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries to return (capped at 100)"
// @Success      200    {object}  map[string]interface{} "Recent analyses"
// @Failure      400    {object}  map[string]interface{} "Invalid limit"
// @Router       /api/history [get]
func (h *Handlers) HistoryHandler(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			errorResponse(c, http.StatusBadRequest, "INVALID_LIMIT", "Limit must be a positive integer")
			return
		}
		limit = parsed
		if limit > maxHistoryLimit {
			limit = maxHistoryLimit
		}
	}

	records, err := h.db.RecentAnalyses(limit)
	if err != nil {
		log.Printf("[HISTORY HANDLER] Lookup failed: %v", err)
		errorResponse(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load history")
		return
	}

	entries := make([]models.HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, models.HistoryEntry{
			ID:          record.ID,
			PlantName:   record.PlantName,
			DiseaseName: record.DiseaseName,
			IsHealthy:   record.IsHealthy,
			Confidence:  record.Confidence,
			ImageURL:    "/static/uploads/" + record.Filename,
			CreatedAt:   record.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   len(entries),
		"history": entries,
	})
}
