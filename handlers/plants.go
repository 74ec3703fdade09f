package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Lingaraj8064/Crop-AI-Sys/models"

	"github.com/gin-gonic/gin"
)

// PlantsHandler lists the plants in the knowledge base
// @Summary      List plants
// @Description  Return a summary of every plant the system can identify, optionally filtered by a search query
// @Tags         Plants
// @Produce      json
// @Param        q    query     string  false  "Filter by id, name or scientific name"
// @Success      200  {object}  map[string]interface{} "Plant summaries"
// @Router       /api/plants [get]
func (h *Handlers) PlantsHandler(c *gin.Context) {
	plants := h.plants.Search(c.Query("q"))

	summaries := make([]models.PlantSummary, 0, len(plants))
	for _, p := range plants {
		diseases := make([]string, 0, len(p.Diseases))
		for _, d := range p.Diseases {
			diseases = append(diseases, d.Name)
		}
		sort.Strings(diseases)

		summaries = append(summaries, models.PlantSummary{
			ID:             p.ID,
			Name:           p.Name,
			ScientificName: p.ScientificName,
			Category:       p.Category,
			Diseases:       diseases,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   len(summaries),
		"plants":  summaries,
	})
}

// PlantHandler returns one plant's full knowledge base entry
// @Summary      Get plant details
// @Description  Return the full knowledge base entry for a plant, including diseases, care and growing conditions
// @Tags         Plants
// @Produce      json
// @Param        plant_id  path      string  true  "Plant identifier"
// @Success      200       {object}  map[string]interface{} "Plant details"
// @Failure      404       {object}  map[string]interface{} "Unknown plant"
// @Router       /api/plants/{plant_id} [get]
func (h *Handlers) PlantHandler(c *gin.Context) {
	plantID := c.Param("plant_id")

	plant, ok := h.plants.Get(plantID)
	if !ok {
		// tolerate display names in the path ("Tomato" as well as "tomato")
		plant, ok = h.plants.GetByName(plantID)
	}
	if !ok {
		notFound(c, "PLANT_NOT_FOUND", "No plant found with this id")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      plant.ID,
		"plant":   plant,
	})
}

// DiseasesHandler lists every known disease
// @Summary      List diseases
// @Description  Return every disease in the knowledge base with its host plant
// @Tags         Plants
// @Produce      json
// @Success      200  {object}  map[string]interface{} "Disease catalog"
// @Router       /api/diseases [get]
func (h *Handlers) DiseasesHandler(c *gin.Context) {
	entries := h.plants.AllDiseases()

	diseases := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		diseases = append(diseases, gin.H{
			"id":       entry.DiseaseID,
			"plant_id": entry.PlantID,
			"plant":    entry.PlantName,
			"name":     entry.Disease.Name,
			"severity": entry.Disease.Severity,
			"type":     entry.Disease.Type,
			"symptoms": entry.Disease.Symptoms,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"total":    len(diseases),
		"diseases": diseases,
	})
}

// DiseaseHandler returns one disease's full entry
// @Summary      Get disease details
// @Description  Return the full entry for a disease, looked up by its identifier or its display name
// @Tags         Plants
// @Produce      json
// @Param        disease_id  path      string  true  "Disease identifier or name"
// @Success      200         {object}  map[string]interface{} "Disease details"
// @Failure      404         {object}  map[string]interface{} "Unknown disease"
// @Router       /api/diseases/{disease_id} [get]
func (h *Handlers) DiseaseHandler(c *gin.Context) {
	diseaseID := c.Param("disease_id")

	for _, entry := range h.plants.AllDiseases() {
		if entry.DiseaseID == strings.ToLower(strings.TrimSpace(diseaseID)) {
			c.JSON(http.StatusOK, gin.H{
				"success":  true,
				"id":       entry.DiseaseID,
				"plant_id": entry.PlantID,
				"plant":    entry.PlantName,
				"disease":  entry.Disease,
			})
			return
		}
	}

	// fall back to the display name: "early_blight" and "Early Blight"
	// both resolve
	name := strings.ReplaceAll(diseaseID, "_", " ")
	if plant, disease, ok := h.plants.FindDisease(name); ok {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"plant_id": plant.ID,
			"plant":    plant.Name,
			"disease":  disease,
		})
		return
	}

	notFound(c, "DISEASE_NOT_FOUND", "No disease found with this id")
}
