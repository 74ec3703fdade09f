package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Lingaraj8064/Crop-AI-Sys/detector"
	"github.com/Lingaraj8064/Crop-AI-Sys/models"
	"github.com/Lingaraj8064/Crop-AI-Sys/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler accepts a crop image and runs the health analysis
// @Summary      Analyze a crop image
// @Description  Upload a crop image (jpg, png, gif, bmp, webp, tiff) and receive a plant identification with disease diagnosis or care guidance
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Crop image to analyze"
// @Success      200   {object}  models.UploadResponse  "Analysis result"
// @Failure      400   {object}  map[string]interface{} "Validation failure"
// @Failure      500   {object}  map[string]interface{} "Internal server error"
// @Router       /upload [post]
func (h *Handlers) UploadHandler(c *gin.Context) {
	start := time.Now()

	header, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "NO_FILE", "No file provided")
		return
	}

	if verr := validation.ValidateImageUpload(header); verr != nil {
		log.Printf("[UPLOAD HANDLER] Rejected %s: %s", header.Filename, verr.Message)
		errorResponse(c, http.StatusBadRequest, verr.Code, verr.Message)
		return
	}

	record, err := h.processUpload(header, start)
	if err != nil {
		log.Printf("[UPLOAD HANDLER] Failed to save %s: %v", header.Filename, err)
		errorResponse(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store uploaded file")
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		Success:         true,
		ResultID:        record.ID,
		Result:          record.Result,
		Recommendations: detector.Recommendations(record.Result),
		ImageURL:        "/static/uploads/" + record.Filename,
		ProcessingTime:  record.ProcessingTime,
		Timestamp:       record.CreatedAt,
	})
}

// processUpload stores one validated image, runs the analysis and
// persists the record. Persistence failures are logged, not fatal.
func (h *Handlers) processUpload(header *multipart.FileHeader, start time.Time) (models.AnalysisRecord, error) {
	saved, err := h.uploads.Save(header)
	if err != nil {
		return models.AnalysisRecord{}, err
	}

	result := h.detector.Analyze()

	record := models.AnalysisRecord{
		ID:               uuid.New().String(),
		Filename:         saved.Filename,
		OriginalFilename: saved.OriginalFilename,
		FileSize:         saved.Size,
		FileType:         strings.TrimPrefix(saved.Extension, "."),
		PlantName:        result.Plant,
		DiseaseName:      result.Disease,
		IsHealthy:        result.Status == "Healthy",
		Confidence:       result.Confidence,
		Severity:         result.Severity,
		Result:           result,
		ProcessingTime:   time.Since(start).Seconds(),
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.StoreAnalysis(record); err != nil {
		log.Printf("[UPLOAD HANDLER] Failed to persist analysis %s: %v", record.ID, err)
	}

	if h.archive != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[UPLOAD HANDLER] Recovered from archive panic: %v", r)
				}
			}()
			if err := h.archive.RecordAnalysis(record); err != nil {
				log.Printf("[UPLOAD HANDLER] Archive write failed: %v", err)
			}
		}()
	}

	log.Printf("[UPLOAD HANDLER] Analyzed %s: %s / %s (%.1f%%)",
		saved.OriginalFilename, result.Plant, result.Status, result.Confidence)
	return record, nil
}

// maxBatchFiles caps how many images a single batch request may carry.
const maxBatchFiles = 5

// BatchUploadHandler analyzes several crop images in one request
// @Summary      Analyze a batch of crop images
// @Description  Upload up to 5 crop images under the 'files' field and receive a per-file analysis outcome
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Crop images to analyze"
// @Success      200    {object}  map[string]interface{} "Per-file results with a batch summary"
// @Failure      400    {object}  map[string]interface{} "No files or too many files"
// @Router       /upload/batch [post]
func (h *Handlers) BatchUploadHandler(c *gin.Context) {
	start := time.Now()

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		errorResponse(c, http.StatusBadRequest, "NO_FILES", "No files uploaded")
		return
	}
	files := form.File["files"]
	if len(files) > maxBatchFiles {
		errorResponse(c, http.StatusBadRequest, "BATCH_SIZE_EXCEEDED",
			fmt.Sprintf("Too many files. Maximum %d files allowed", maxBatchFiles))
		return
	}

	results := make([]gin.H, 0, len(files))
	var succeeded, failed int

	for i, header := range files {
		if verr := validation.ValidateImageUpload(header); verr != nil {
			log.Printf("[UPLOAD HANDLER] Batch item %d rejected (%s): %s", i, header.Filename, verr.Message)
			results = append(results, gin.H{
				"index":    i,
				"success":  false,
				"filename": header.Filename,
				"error":    verr.Message,
				"code":     verr.Code,
			})
			failed++
			continue
		}

		record, err := h.processUpload(header, start)
		if err != nil {
			log.Printf("[UPLOAD HANDLER] Batch item %d failed (%s): %v", i, header.Filename, err)
			results = append(results, gin.H{
				"index":    i,
				"success":  false,
				"filename": header.Filename,
				"error":    "Failed to store uploaded file",
				"code":     "UPLOAD_FAILED",
			})
			failed++
			continue
		}

		results = append(results, gin.H{
			"index":     i,
			"success":   true,
			"result_id": record.ID,
			"filename":  header.Filename,
			"result":    record.Result,
			"image_url": "/static/uploads/" + record.Filename,
		})
		succeeded++
	}

	log.Printf("[UPLOAD HANDLER] Batch completed: %d/%d successful", succeeded, len(files))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"batch_summary": gin.H{
			"total_files":         len(files),
			"successful_analyses": succeeded,
			"failed_analyses":     failed,
			"processing_time":     time.Since(start).Seconds(),
		},
		"results":   results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// UploadStatusHandler fetches a previously completed analysis
// @Summary      Get analysis by id
// @Description  Retrieve the stored result of a past image analysis
// @Tags         Upload
// @Produce      json
// @Param        result_id  path      string  true  "Analysis identifier"
// @Success      200        {object}  map[string]interface{} "Stored analysis"
// @Failure      404        {object}  map[string]interface{} "Unknown analysis id"
// @Router       /upload/status/{result_id} [get]
func (h *Handlers) UploadStatusHandler(c *gin.Context) {
	resultID := c.Param("result_id")

	record, err := h.db.GetAnalysis(resultID)
	if err != nil {
		log.Printf("[UPLOAD HANDLER] Lookup failed for %s: %v", resultID, err)
		errorResponse(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load analysis")
		return
	}
	if record == nil {
		notFound(c, "NOT_FOUND", "No analysis found for this id")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"result_id": record.ID,
		"status":    "completed",
		"result":    record.Result,
		"image_url": "/static/uploads/" + record.Filename,
		"timestamp": record.CreatedAt,
	})
}
