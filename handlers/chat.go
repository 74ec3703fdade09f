package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Lingaraj8064/Crop-AI-Sys/chatbot"
	"github.com/Lingaraj8064/Crop-AI-Sys/models"
	"github.com/Lingaraj8064/Crop-AI-Sys/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxHistoryLimit = 100

// ChatHandler processes one chat message
// @Summary      Chat with the agricultural assistant
// @Description  Send a message and receive a reply with follow-up quick replies. A blank session_id gets a server-issued session.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      models.ChatRequest   true  "Chat message"
// @Success      200      {object}  models.ChatResponse  "Assistant reply"
// @Failure      400      {object}  map[string]interface{} "Invalid request"
// @Router       /api/chat [post]
func (h *Handlers) ChatHandler(c *gin.Context) {
	start := time.Now()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if !validation.IsValidMessage(req.Message) {
		errorResponse(c, http.StatusBadRequest, "EMPTY_MESSAGE", "Message cannot be empty")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.New().String()
	} else if _, err := uuid.Parse(sessionID); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Session id must be a valid UUID")
		return
	}

	reply := h.bot.Process(sessionID, req.Message)
	processingTime := time.Since(start).Seconds()

	turn := models.ChatTurn{
		SessionID:      sessionID,
		UserMessage:    req.Message,
		BotReply:       reply.Text,
		MessageType:    reply.Type,
		Confidence:     reply.Confidence,
		ProcessingTime: processingTime,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.db.StoreChatTurn(turn); err != nil {
		log.Printf("[CHAT HANDLER] Failed to persist turn for session %s: %v", sessionID, err)
	}

	log.Printf("[CHAT HANDLER] Session: %s, Intent: %s (%.2f)", sessionID, reply.Type, reply.Confidence)

	c.JSON(http.StatusOK, models.ChatResponse{
		Success:        true,
		Reply:          reply.Text,
		SessionID:      sessionID,
		MessageType:    reply.Type,
		Confidence:     reply.Confidence,
		QuickReplies:   reply.Suggestions,
		ProcessingTime: processingTime,
		Timestamp:      turn.CreatedAt,
	})
}

// ChatHistoryHandler lists past turns of a session
// @Summary      Get chat history
// @Description  Return the stored conversation for a session, oldest first
// @Tags         Chat
// @Produce      json
// @Param        session_id  path      string  true   "Session identifier"
// @Param        limit       query     int     false  "Maximum turns to return (capped at 100)"
// @Param        offset      query     int     false  "Turns to skip from the start of the session"
// @Success      200         {object}  map[string]interface{} "Conversation turns"
// @Failure      400         {object}  map[string]interface{} "Invalid session id"
// @Router       /api/chat/history/{session_id} [get]
func (h *Handlers) ChatHistoryHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	if _, err := uuid.Parse(sessionID); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Session id must be a valid UUID")
		return
	}

	limit := maxHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			errorResponse(c, http.StatusBadRequest, "INVALID_LIMIT", "Limit must be a positive integer")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			errorResponse(c, http.StatusBadRequest, "INVALID_OFFSET", "Offset must be a non-negative integer")
			return
		}
		offset = parsed
	}

	turns, err := h.db.ChatHistory(sessionID)
	if err != nil {
		log.Printf("[CHAT HANDLER] History lookup failed for %s: %v", sessionID, err)
		errorResponse(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load chat history")
		return
	}

	total := len(turns)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := turns[offset:end]
	if page == nil {
		page = []models.ChatTurn{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
		"turns":      page,
		"pagination": gin.H{
			"total":    total,
			"limit":    limit,
			"offset":   offset,
			"returned": len(page),
		},
	})
}

// ChatClearHandler deletes a session's conversation
// @Summary      Clear chat history
// @Description  Delete all stored turns and context for a session
// @Tags         Chat
// @Produce      json
// @Param        session_id  path      string  true  "Session identifier"
// @Success      200         {object}  map[string]interface{} "Deletion summary"
// @Failure      400         {object}  map[string]interface{} "Invalid session id"
// @Failure      404         {object}  map[string]interface{} "Unknown session"
// @Router       /api/chat/clear/{session_id} [delete]
func (h *Handlers) ChatClearHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	if _, err := uuid.Parse(sessionID); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Session id must be a valid UUID")
		return
	}

	exists, err := h.db.SessionExists(sessionID)
	if err != nil {
		log.Printf("[CHAT HANDLER] Session lookup failed for %s: %v", sessionID, err)
		errorResponse(c, http.StatusInternalServerError, "CLEAR_FAILED", "Failed to clear chat history")
		return
	}
	if !exists {
		notFound(c, "SESSION_NOT_FOUND", "No stored history for this session")
		return
	}

	deleted, err := h.db.ClearChatSession(sessionID)
	if err != nil {
		log.Printf("[CHAT HANDLER] Clear failed for %s: %v", sessionID, err)
		errorResponse(c, http.StatusInternalServerError, "CLEAR_FAILED", "Failed to clear chat history")
		return
	}
	h.bot.ClearSession(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"session_id":    sessionID,
		"deleted_turns": deleted,
	})
}

// ChatSuggestionsHandler returns starter questions
// @Summary      Get suggested questions
// @Description  List starter questions for a category (general, diseases, growing, organic)
// @Tags         Chat
// @Produce      json
// @Param        category  query     string  false  "Question category"  default(general)
// @Success      200       {object}  map[string]interface{} "Suggested questions"
// @Router       /api/chat/suggestions [get]
func (h *Handlers) ChatSuggestionsHandler(c *gin.Context) {
	category := c.DefaultQuery("category", "general")

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"category":    category,
		"suggestions": chatbot.SuggestedQuestions(category),
	})
}
