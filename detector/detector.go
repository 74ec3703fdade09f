// Package detector produces crop health classifications. The current
// model is a simulation that samples a plausible diagnosis from the
// knowledge base; the Service boundary is where a real inference
// backend would plug in.
package detector

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lingaraj8064/Crop-AI-Sys/models"
	"github.com/Lingaraj8064/Crop-AI-Sys/plantdb"
)

const ModelVersion = "cropnet-v2.1.0"

const healthyProbability = 0.3

type Service struct {
	plants *plantdb.DB

	mu  sync.Mutex
	rng *rand.Rand
}

func New(plants *plantdb.DB) *Service {
	return &Service{
		plants: plants,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Analyze classifies an uploaded crop image. In simulation mode the
// image content is ignored: a plant is drawn from the knowledge base,
// roughly 30% of results come back healthy, and confidence falls in
// the 85-98 range the way a well-trained classifier would score.
func (s *Service) Analyze() *models.AnalysisResult {
	s.mu.Lock()
	ids := s.plants.IDs()
	plantID := ids[s.rng.Intn(len(ids))]
	healthy := s.rng.Float64() < healthyProbability
	confidence := math.Round((85+s.rng.Float64()*13)*10) / 10
	diseaseRoll := s.rng.Intn(1 << 30)
	s.mu.Unlock()

	plant, ok := s.plants.Get(plantID)
	if !ok {
		// the dataset can be swapped by the file watcher between the
		// IDs call and here; fall back to whatever is loaded now
		plant = s.plants.All()[0]
	}
	if len(plant.Diseases) == 0 {
		healthy = true
	}

	result := &models.AnalysisResult{
		Plant:           plant.Name,
		ScientificName:  plant.ScientificName,
		Confidence:      confidence,
		ConfidenceLevel: ConfidenceLevel(confidence),
		SoilConditions: &models.SoilConditions{
			PHRange:   plant.SoilConditions.PHRange,
			Drainage:  plant.SoilConditions.Drainage,
			Nutrients: plant.SoilConditions.Nutrients,
			Depth:     plant.SoilConditions.Depth,
		},
		WeatherConditions: &models.WeatherConditions{
			Temperature: plant.WeatherConditions.Temperature,
			Rainfall:    plant.WeatherConditions.Rainfall,
			Humidity:    plant.WeatherConditions.Humidity,
			Sunlight:    plant.WeatherConditions.Sunlight,
		},
		SuitableRegions: plant.SuitableRegions,
		ModelVersion:    ModelVersion,
	}

	if healthy {
		result.Status = "Healthy"
		result.CareTips = strings.Join(plant.HealthyInfo.CareTips, "\n")
		result.Harvesting = plant.HealthyInfo.Harvesting
		result.Nutrition = plant.HealthyInfo.Nutrition
		return result
	}

	diseaseIDs := make([]string, 0, len(plant.Diseases))
	for id := range plant.Diseases {
		diseaseIDs = append(diseaseIDs, id)
	}
	sort.Strings(diseaseIDs)
	disease := plant.Diseases[diseaseIDs[diseaseRoll%len(diseaseIDs)]]

	result.Status = "Diseased"
	result.Disease = disease.Name
	result.Severity = disease.Severity
	result.Symptoms = disease.Symptoms
	result.Causes = disease.Causes
	result.Treatments = strings.Join(disease.Treatment, "\n")
	result.Prevention = strings.Join(disease.Prevention, "\n")
	result.ImmediateAction = disease.ImmediateAction
	return result
}

// ConfidenceLevel maps a numeric confidence score onto the label shown
// next to results.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 95:
		return "Very High"
	case confidence >= 85:
		return "High"
	case confidence >= 75:
		return "Medium"
	case confidence >= 60:
		return "Low"
	default:
		return "Very Low"
	}
}

// Recommendations derives actionable follow-ups from a classification.
func Recommendations(result *models.AnalysisResult) []models.Recommendation {
	if result == nil {
		return nil
	}

	if result.Status == "Healthy" {
		return []models.Recommendation{
			{
				Type:        "maintenance",
				Priority:    "low",
				Title:       "Keep up the good care",
				Description: "Your " + result.Plant + " looks healthy. Continue the current watering and feeding routine.",
			},
			{
				Type:        "monitoring",
				Priority:    "low",
				Title:       "Monitor regularly",
				Description: "Check leaves weekly for early signs of pests or disease.",
			},
		}
	}

	recs := []models.Recommendation{
		{
			Type:        "treatment",
			Priority:    "high",
			Title:       "Act now",
			Description: result.ImmediateAction,
		},
	}
	if result.Prevention != "" {
		recs = append(recs, models.Recommendation{
			Type:        "prevention",
			Priority:    "medium",
			Title:       "Prevent reinfection",
			Description: "Follow the prevention steps to stop the " + result.Disease + " from returning next season.",
		})
	}
	recs = append(recs, models.Recommendation{
		Type:        "monitoring",
		Priority:    "medium",
		Title:       "Watch nearby plants",
		Description: "Inspect surrounding plants for the same symptoms over the next two weeks.",
	})
	return recs
}
