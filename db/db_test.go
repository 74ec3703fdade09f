package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lingaraj8064/Crop-AI-Sys/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestStoreAndGetAnalysis(t *testing.T) {
	database := newTestDB(t)

	record := models.AnalysisRecord{
		ID:          "abc-123",
		Filename:    "20250101_120000_1_leaf.jpg",
		PlantName:   "Tomato",
		IsHealthy:   false,
		DiseaseName: "Early Blight",
		Confidence:  91.3,
		Result: &models.AnalysisResult{
			Plant:      "Tomato",
			Status:     "Diseased",
			Disease:    "Early Blight",
			Confidence: 91.3,
		},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	require.NoError(t, database.StoreAnalysis(record))

	got, err := database.GetAnalysis("abc-123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tomato", got.PlantName)
	assert.Equal(t, "Early Blight", got.Result.Disease)

	missing, err := database.GetAnalysis("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecentAnalyses(t *testing.T) {
	database := newTestDB(t)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, database.StoreAnalysis(models.AnalysisRecord{
			ID:        string(rune('a' + i)),
			PlantName: "Apple",
			CreatedAt: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
		}))
	}

	records, err := database.RecentAnalyses(3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// most recent first
	assert.Equal(t, "e", records[0].ID)
	assert.Equal(t, "d", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}

func TestChatHistoryOrdering(t *testing.T) {
	database := newTestDB(t)

	messages := []string{"hello", "my tomato has spots", "thanks"}
	for _, msg := range messages {
		require.NoError(t, database.StoreChatTurn(models.ChatTurn{
			SessionID:   "session-1",
			UserMessage: msg,
			BotReply:    "reply to " + msg,
		}))
	}
	require.NoError(t, database.StoreChatTurn(models.ChatTurn{
		SessionID:   "session-2",
		UserMessage: "other session",
	}))

	turns, err := database.ChatHistory("session-1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	for i, msg := range messages {
		assert.Equal(t, msg, turns[i].UserMessage)
	}

	turns, err = database.ChatHistory("unknown")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestClearChatSession(t *testing.T) {
	database := newTestDB(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, database.StoreChatTurn(models.ChatTurn{
			SessionID:   "session-1",
			UserMessage: "msg",
		}))
	}

	exists, err := database.SessionExists("session-1")
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := database.ClearChatSession("session-1")
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)

	exists, err = database.SessionExists("session-1")
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err = database.ClearChatSession("session-1")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestChatSessionCount(t *testing.T) {
	database := newTestDB(t)

	count, err := database.ChatSessionCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	for _, session := range []string{"session-1", "session-1", "session-2", "session-3"} {
		require.NoError(t, database.StoreChatTurn(models.ChatTurn{
			SessionID:   session,
			UserMessage: "msg",
		}))
	}

	count, err = database.ChatSessionCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
