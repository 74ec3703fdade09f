package validation

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildHeader wraps raw bytes into a parsed multipart.FileHeader the
// way gin would hand one to the upload handler.
func buildHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

// pngBytes fills the image with seeded noise so even small fixtures
// stay above the minimum file size and exercise the dimension checks.
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

func TestValidateImageUpload(t *testing.T) {
	header := buildHeader(t, "leaf.png", "image/png", pngBytes(t, 200, 200))
	assert.Nil(t, ValidateImageUpload(header))
}

func TestValidateImageUploadRejectsExtension(t *testing.T) {
	header := buildHeader(t, "notes.txt", "text/plain", []byte(strings.Repeat("a", 2048)))
	err := ValidateImageUpload(header)
	require.NotNil(t, err)
	assert.Equal(t, "INVALID_FILE_TYPE", err.Code)
}

func TestValidateImageUploadRejectsTinyFile(t *testing.T) {
	header := buildHeader(t, "leaf.png", "image/png", []byte("tiny"))
	err := ValidateImageUpload(header)
	require.NotNil(t, err)
	assert.Equal(t, "FILE_TOO_SMALL", err.Code)
}

func TestValidateImageUploadRejectsCorruptImage(t *testing.T) {
	header := buildHeader(t, "leaf.png", "image/png", []byte(strings.Repeat("x", 4096)))
	err := ValidateImageUpload(header)
	require.NotNil(t, err)
	assert.Equal(t, "CORRUPT_IMAGE", err.Code)
}

func TestValidateImageUploadRejectsSmallDimensions(t *testing.T) {
	content := pngBytes(t, 50, 50)
	require.Greater(t, len(content), MinFileSize, "fixture must pass the size check to reach the dimension check")
	header := buildHeader(t, "leaf.png", "image/png", content)
	err := ValidateImageUpload(header)
	require.NotNil(t, err)
	assert.Equal(t, "IMAGE_TOO_SMALL", err.Code)
}

func TestIsValidMessage(t *testing.T) {
	assert.True(t, IsValidMessage("my tomato leaves have spots"))
	assert.True(t, IsValidMessage("hi"))
	assert.False(t, IsValidMessage(""))
	assert.False(t, IsValidMessage("   "))
	assert.False(t, IsValidMessage(strings.Repeat("a", 2001)))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "leaf_photo.jpg", SanitizeFilename("leaf photo.jpg"))
	assert.Equal(t, "secret.png", SanitizeFilename("../../etc/secret.png"))
	assert.Equal(t, "upload", SanitizeFilename("...."))
	assert.Equal(t, "tomato-1.jpeg", SanitizeFilename("tomato-1.jpeg"))
}
