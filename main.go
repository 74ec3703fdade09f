package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Lingaraj8064/Crop-AI-Sys/cache"
	"github.com/Lingaraj8064/Crop-AI-Sys/chatbot"
	"github.com/Lingaraj8064/Crop-AI-Sys/config"
	"github.com/Lingaraj8064/Crop-AI-Sys/db"
	"github.com/Lingaraj8064/Crop-AI-Sys/detector"
	"github.com/Lingaraj8064/Crop-AI-Sys/handlers"
	"github.com/Lingaraj8064/Crop-AI-Sys/plantdb"
	"github.com/Lingaraj8064/Crop-AI-Sys/service"
	"github.com/Lingaraj8064/Crop-AI-Sys/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// uploads older than this are swept by the background cleanup
const uploadRetention = 7 * 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.GetConfig()

	// Initialize database
	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize plant knowledge base
	plants, err := plantdb.New(cfg.PlantDataFile)
	if err != nil {
		log.Fatalf("Failed to initialize plant database: %v", err)
	}
	defer plants.Close()
	log.Printf("Plant database ready with %d plants", plants.Count())

	// Initialize detector and chatbot
	det := detector.New(plants)
	sessionContexts := cache.New(chatbot.SessionTTL, 10*time.Minute)
	bot := chatbot.New(plants, sessionContexts)

	// Initialize upload storage
	uploads, err := service.NewUploadStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}
	startUploadCleanup(uploads)

	// Initialize archive service (optional)
	var archive *service.ArchiveService
	if cfg.Archive.Server != "" && cfg.Archive.Database != "" {
		archive, err = service.NewArchiveService(cfg.Archive)
		if err != nil {
			log.Printf("Warning: Failed to initialize archive service: %v", err)
			log.Println("Analysis archiving will be unavailable")
		} else {
			defer archive.Close()
			log.Println("Archive service initialized successfully")
		}
	}

	// Initialize handlers
	h := handlers.New(database, det, bot, plants, uploads, archive)

	// Setup Gin router
	r := gin.Default()
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	h.Register(r)

	// Embedded client assets and uploaded images
	r.StaticFS("/assets", http.FS(web.Static()))
	r.Static("/static/uploads", uploads.Dir())
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index())
	})
	r.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index())
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// startUploadCleanup sweeps old uploaded images once a day.
func startUploadCleanup(uploads *service.UploadStorage) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Recovered from upload cleanup panic: %v", r)
			}
		}()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			removed, err := uploads.CleanupOlderThan(uploadRetention)
			if err != nil {
				log.Printf("Upload cleanup failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("Upload cleanup removed %d old files", removed)
			}
		}
	}()
}
