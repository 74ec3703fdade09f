package handlers

import (
	"net/http"

	"github.com/Lingaraj8064/Crop-AI-Sys/chatbot"
	"github.com/Lingaraj8064/Crop-AI-Sys/db"
	"github.com/Lingaraj8064/Crop-AI-Sys/detector"
	"github.com/Lingaraj8064/Crop-AI-Sys/plantdb"
	"github.com/Lingaraj8064/Crop-AI-Sys/service"

	"github.com/gin-gonic/gin"
)

// @title           Crop Disease Detection API
// @version         1.0
// @description     Crop Disease Detection API - Upload crop images for AI health analysis and chat with the agricultural assistant

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:5000
// @BasePath  /

// @schemes   http https

type Handlers struct {
	db       *db.DB
	detector *detector.Service
	bot      *chatbot.Bot
	plants   *plantdb.DB
	uploads  *service.UploadStorage
	archive  *service.ArchiveService
}

func New(database *db.DB, det *detector.Service, bot *chatbot.Bot, plants *plantdb.DB, uploads *service.UploadStorage, archive *service.ArchiveService) *Handlers {
	return &Handlers{
		db:       database,
		detector: det,
		bot:      bot,
		plants:   plants,
		uploads:  uploads,
		archive:  archive,
	}
}

// Register wires every API route onto the engine.
func (h *Handlers) Register(r *gin.Engine) {
	r.POST("/upload", h.UploadHandler)
	r.POST("/upload/batch", h.BatchUploadHandler)
	r.GET("/upload/status/:result_id", h.UploadStatusHandler)

	r.POST("/api/chat", h.ChatHandler)
	r.GET("/api/chat/history/:session_id", h.ChatHistoryHandler)
	r.DELETE("/api/chat/clear/:session_id", h.ChatClearHandler)
	r.GET("/api/chat/suggestions", h.ChatSuggestionsHandler)

	r.GET("/api/plants", h.PlantsHandler)
	r.GET("/api/plants/:plant_id", h.PlantHandler)
	r.GET("/api/diseases", h.DiseasesHandler)
	r.GET("/api/diseases/:disease_id", h.DiseaseHandler)
	r.GET("/api/history", h.HistoryHandler)
	r.GET("/api/stats", h.StatsHandler)

	r.GET("/health", h.HealthHandler)
}

// errorResponse writes the uniform error envelope every endpoint uses.
func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func notFound(c *gin.Context, code, message string) {
	errorResponse(c, http.StatusNotFound, code, message)
}
