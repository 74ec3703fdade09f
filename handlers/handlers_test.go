package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lingaraj8064/Crop-AI-Sys/cache"
	"github.com/Lingaraj8064/Crop-AI-Sys/chatbot"
	"github.com/Lingaraj8064/Crop-AI-Sys/db"
	"github.com/Lingaraj8064/Crop-AI-Sys/detector"
	"github.com/Lingaraj8064/Crop-AI-Sys/models"
	"github.com/Lingaraj8064/Crop-AI-Sys/plantdb"
	"github.com/Lingaraj8064/Crop-AI-Sys/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	plants, err := plantdb.New("")
	require.NoError(t, err)
	t.Cleanup(func() { plants.Close() })

	uploads, err := service.NewUploadStorage(t.TempDir())
	require.NoError(t, err)

	bot := chatbot.New(plants, cache.New(time.Minute, time.Minute))
	h := New(database, detector.New(plants), bot, plants, uploads, nil)

	r := gin.New()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// createFormFile mirrors multipart.Writer.CreateFormFile but sets the
// part's Content-Type from the filename, as browsers do.
func createFormFile(t *testing.T, mw *multipart.Writer, fieldname, filename string) io.Writer {
	t.Helper()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+fieldname+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	return part
}

func uploadImage(t *testing.T, r *gin.Engine, filename string, content []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part := createFormFile(t, mw, "file", filename)
	_, err := part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// uploadBatch posts several files under the 'files' field, preserving
// their order.
func uploadBatch(t *testing.T, r *gin.Engine, names []string, contents [][]byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for i, name := range names {
		part := createFormFile(t, mw, "files", name)
		_, err := part.Write(contents[i])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/batch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// pngBytes fills the image with seeded noise so fixtures stay above
// the minimum upload size.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := uploadImage(t, r, "leaf.png", pngBytes(t, 120, 120))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, parsed["success"])
	assert.NotEmpty(t, parsed["result_id"])
	assert.Contains(t, parsed["image_url"], "/static/uploads/")

	result, ok := parsed["result"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, result["plant"])
	confidence := result["confidence"].(float64)
	assert.GreaterOrEqual(t, confidence, 85.0)
	assert.LessOrEqual(t, confidence, 98.0)
	assert.Contains(t, []interface{}{"Very High", "High"}, result["confidence_level"])

	// disease details and healthy care guidance never appear together
	switch result["status"] {
	case "Healthy":
		assert.NotEmpty(t, result["care_tips"])
		assert.Nil(t, result["disease"])
	case "Diseased":
		assert.NotEmpty(t, result["disease"])
		assert.NotEmpty(t, result["treatments"])
		assert.Nil(t, result["care_tips"])
	default:
		t.Fatalf("unexpected status %v", result["status"])
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	assert.Equal(t, false, parsed["success"])
	assert.Equal(t, "NO_FILE", parsed["code"])
}

func TestUploadRejectsBadExtension(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := uploadImage(t, r, "notes.txt", bytes.Repeat([]byte("a"), 2048))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILE_TYPE", parsed["code"])
}

func TestUploadStatus(t *testing.T) {
	r := newTestRouter(t)

	_, uploaded := uploadImage(t, r, "leaf.png", pngBytes(t, 150, 150))
	resultID := uploaded["result_id"].(string)

	w, parsed := doJSON(t, r, http.MethodGet, "/upload/status/"+resultID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", parsed["status"])
	assert.Equal(t, resultID, parsed["result_id"])

	w, parsed = doJSON(t, r, http.MethodGet, "/upload/status/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", parsed["code"])
}

func TestBatchUpload(t *testing.T) {
	r := newTestRouter(t)

	names := []string{"one.png", "notes.txt", "two.png"}
	contents := [][]byte{pngBytes(t, 120, 120), []byte("not an image"), pngBytes(t, 150, 150)}

	w, parsed := uploadBatch(t, r, names, contents)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["success"])

	summary := parsed["batch_summary"].(map[string]interface{})
	assert.Equal(t, float64(3), summary["total_files"])
	assert.Equal(t, float64(2), summary["successful_analyses"])
	assert.Equal(t, float64(1), summary["failed_analyses"])

	results := parsed["results"].([]interface{})
	require.Len(t, results, 3)

	first := results[0].(map[string]interface{})
	assert.Equal(t, true, first["success"])
	assert.NotEmpty(t, first["result_id"])
	assert.Contains(t, first["image_url"], "/static/uploads/")

	second := results[1].(map[string]interface{})
	assert.Equal(t, false, second["success"])
	assert.Equal(t, "notes.txt", second["filename"])
	assert.Equal(t, "INVALID_FILE_TYPE", second["code"])

	// each successful item is retrievable on its own afterwards
	resultID := first["result_id"].(string)
	w, parsed = doJSON(t, r, http.MethodGet, "/upload/status/"+resultID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", parsed["status"])
}

func TestBatchUploadRejectsEmptyForm(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := uploadBatch(t, r, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_FILES", parsed["code"])
}

func TestBatchUploadRejectsTooManyFiles(t *testing.T) {
	r := newTestRouter(t)

	var names []string
	var contents [][]byte
	for i := 0; i < 6; i++ {
		names = append(names, "leaf.png")
		contents = append(contents, pngBytes(t, 120, 120))
	}

	w, parsed := uploadBatch(t, r, names, contents)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BATCH_SIZE_EXCEEDED", parsed["code"])
}

func TestChatIssuesSessionForBlankID(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{Message: "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, parsed["success"])
	assert.NotEmpty(t, parsed["reply"])
	assert.NotEmpty(t, parsed["quick_replies"])

	issued := parsed["session_id"].(string)
	_, err := uuid.Parse(issued)
	assert.NoError(t, err)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{Message: "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_MESSAGE", parsed["code"])
}

func TestChatRejectsMalformedSessionID(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{
		SessionID: "not-a-uuid",
		Message:   "hello",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SESSION_ID", parsed["code"])
}

func TestChatHistoryRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	sessionID := uuid.New().String()
	for _, msg := range []string{"hello", "tomato care tips"} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{
			SessionID: sessionID,
			Message:   msg,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, parsed := doJSON(t, r, http.MethodGet, "/api/chat/history/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pagination := parsed["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["total"])
	turns := parsed["turns"].([]interface{})
	require.Len(t, turns, 2)
	first := turns[0].(map[string]interface{})
	assert.Equal(t, "hello", first["user_message"])

	// limit and offset page through the session in order
	w, parsed = doJSON(t, r, http.MethodGet, "/api/chat/history/"+sessionID+"?limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	turns = parsed["turns"].([]interface{})
	require.Len(t, turns, 1)
	second := turns[0].(map[string]interface{})
	assert.Equal(t, "tomato care tips", second["user_message"])
	pagination = parsed["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["returned"])
}

func TestChatClear(t *testing.T) {
	r := newTestRouter(t)

	sessionID := uuid.New().String()
	doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{SessionID: sessionID, Message: "hello"})

	w, parsed := doJSON(t, r, http.MethodDelete, "/api/chat/clear/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), parsed["deleted_turns"])

	w, parsed = doJSON(t, r, http.MethodGet, "/api/chat/history/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pagination := parsed["pagination"].(map[string]interface{})
	assert.Equal(t, float64(0), pagination["total"])

	// the session is gone now, so a second clear has nothing to delete
	w, parsed = doJSON(t, r, http.MethodDelete, "/api/chat/clear/"+sessionID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", parsed["code"])
}

func TestChatClearUnknownSession(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodDelete, "/api/chat/clear/"+uuid.New().String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", parsed["code"])
}

func TestChatSuggestions(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodGet, "/api/chat/suggestions?category=diseases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "diseases", parsed["category"])
	assert.Len(t, parsed["suggestions"].([]interface{}), 5)
}

func TestPlants(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodGet, "/api/plants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), parsed["total"])

	w, parsed = doJSON(t, r, http.MethodGet, "/api/plants/tomato", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plant := parsed["plant"].(map[string]interface{})
	assert.Equal(t, "Tomato", plant["name"])

	w, parsed = doJSON(t, r, http.MethodGet, "/api/plants/banana", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PLANT_NOT_FOUND", parsed["code"])

	w, parsed = doJSON(t, r, http.MethodGet, "/api/plants?q=malus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), parsed["total"])

	// display names resolve too
	w, parsed = doJSON(t, r, http.MethodGet, "/api/plants/Tomato", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tomato", parsed["id"])
}

func TestDiseases(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodGet, "/api/diseases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(6), parsed["total"])
}

func TestDiseaseDetail(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodGet, "/api/diseases/early_blight", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tomato", parsed["plant_id"])
	disease := parsed["disease"].(map[string]interface{})
	assert.Equal(t, "Early Blight", disease["name"])
	assert.NotEmpty(t, disease["treatment"])

	// display names resolve through the name lookup
	w, parsed = doJSON(t, r, http.MethodGet, "/api/diseases/Fire%20Blight", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "apple", parsed["plant_id"])

	w, parsed = doJSON(t, r, http.MethodGet, "/api/diseases/rust", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "DISEASE_NOT_FOUND", parsed["code"])
}

func TestStats(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 4; i++ {
		uploadImage(t, r, "leaf.png", pngBytes(t, 120, 120))
	}
	sessionID := uuid.New().String()
	doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{SessionID: sessionID, Message: "hello"})

	w, parsed := doJSON(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["success"])

	data := parsed["data"].(map[string]interface{})
	overview := data["overview"].(map[string]interface{})
	assert.Equal(t, float64(4), overview["total_analyses"])
	healthy := overview["healthy_count"].(float64)
	diseased := overview["diseased_count"].(float64)
	assert.Equal(t, float64(4), healthy+diseased)
	assert.Positive(t, overview["average_confidence"].(float64))

	activity := data["activity"].(map[string]interface{})
	assert.Equal(t, float64(1), activity["total_chat_sessions"])

	info := data["database_info"].(map[string]interface{})
	assert.Equal(t, float64(3), info["plants_available"])
	assert.Equal(t, float64(6), info["diseases_available"])

	plants := data["top_plants"].([]interface{})
	require.NotEmpty(t, plants)
	top := plants[0].(map[string]interface{})
	assert.NotEmpty(t, top["name"])
	assert.Positive(t, top["count"].(float64))
}

func TestStatsEmpty(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	overview := data["overview"].(map[string]interface{})
	assert.Equal(t, float64(0), overview["total_analyses"])
	assert.Equal(t, float64(0), overview["average_confidence"])
}

func TestHistory(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 3; i++ {
		uploadImage(t, r, "leaf.png", pngBytes(t, 120, 120))
	}

	w, parsed := doJSON(t, r, http.MethodGet, "/api/history?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), parsed["total"])

	w, parsed = doJSON(t, r, http.MethodGet, "/api/history?limit=0", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_LIMIT", parsed["code"])
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", parsed["status"])
	assert.Equal(t, "not_configured", parsed["archive"])
}
