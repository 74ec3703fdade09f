package handlers

import (
	"log"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsHandler reports aggregate usage statistics
// @Summary      System statistics
// @Description  Aggregate counts over stored analyses: health split, confidence distribution, most analyzed plants and most detected diseases
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  map[string]interface{} "Statistics payload"
// @Failure      500  {object}  map[string]interface{} "Internal server error"
// @Router       /api/stats [get]
func (h *Handlers) StatsHandler(c *gin.Context) {
	records, err := h.db.RecentAnalyses(0)
	if err != nil {
		log.Printf("[STATS HANDLER] Failed to load analyses: %v", err)
		errorResponse(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to compute statistics")
		return
	}

	var healthy, high, medium, low int
	var confidenceSum float64
	plantCounts := make(map[string]int)
	diseaseCounts := make(map[string]int)

	for _, record := range records {
		if record.IsHealthy {
			healthy++
		} else if record.DiseaseName != "" {
			diseaseCounts[record.DiseaseName]++
		}
		confidenceSum += record.Confidence
		plantCounts[record.PlantName]++

		switch {
		case record.Confidence >= 90:
			high++
		case record.Confidence >= 70:
			medium++
		default:
			low++
		}
	}

	total := len(records)
	var healthPercentage, avgConfidence float64
	if total > 0 {
		healthPercentage = float64(healthy) / float64(total) * 100
		avgConfidence = confidenceSum / float64(total)
	}

	sessions, err := h.db.ChatSessionCount()
	if err != nil {
		log.Printf("[STATS HANDLER] Failed to count chat sessions: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"overview": gin.H{
				"total_analyses":     total,
				"healthy_count":      healthy,
				"diseased_count":     total - healthy,
				"health_percentage":  math.Round(healthPercentage*10) / 10,
				"average_confidence": math.Round(avgConfidence*10) / 10,
			},
			"activity": gin.H{
				"total_chat_sessions": sessions,
			},
			"top_plants":              topCounts(plantCounts, 10),
			"top_diseases":            topCounts(diseaseCounts, 10),
			"confidence_distribution": gin.H{"high": high, "medium": medium, "low": low},
			"database_info": gin.H{
				"plants_available":   h.plants.Count(),
				"diseases_available": len(h.plants.AllDiseases()),
			},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// topCounts flattens a name->count map into entries sorted by count
// descending, ties by name, trimmed to limit.
func topCounts(counts map[string]int, limit int) []gin.H {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}

	entries := make([]gin.H, 0, len(names))
	for _, name := range names {
		entries = append(entries, gin.H{"name": name, "count": counts[name]})
	}
	return entries
}
