package validation

import (
	"fmt"
	"image"
	"mime/multipart"
	"path/filepath"
	"strings"

	// Register decoders so image.DecodeConfig can read every format
	// the upload endpoint accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	MinFileSize = 1024             // 1KB
	MaxFileSize = 16 * 1024 * 1024 // 16MB

	MinDimension = 100
	MaxDimension = 4000
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
}

// Error is a validation failure with a stable machine-readable code
// that goes straight into the API error envelope.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidateImageUpload checks an uploaded file's name, size and decoded
// dimensions before it is accepted for analysis.
func ValidateImageUpload(header *multipart.FileHeader) *Error {
	if strings.TrimSpace(header.Filename) == "" {
		return newError("EMPTY_FILENAME", "No file selected")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return newError("INVALID_FILE_TYPE", "File type %s is not supported. Allowed types: jpg, jpeg, png, gif, bmp, webp, tiff", ext)
	}

	if header.Size < MinFileSize {
		return newError("FILE_TOO_SMALL", "File is too small to be a valid image (minimum 1KB)")
	}
	if header.Size > MaxFileSize {
		return newError("FILE_TOO_LARGE", "File exceeds the maximum size of 16MB")
	}

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return newError("INVALID_FILE_TYPE", "Uploaded file is not an image")
	}

	file, err := header.Open()
	if err != nil {
		return newError("INVALID_FILE", "Could not read uploaded file")
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return newError("CORRUPT_IMAGE", "File could not be decoded as an image")
	}

	if cfg.Width < MinDimension || cfg.Height < MinDimension {
		return newError("IMAGE_TOO_SMALL", "Image must be at least %dx%d pixels", MinDimension, MinDimension)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return newError("IMAGE_TOO_LARGE", "Image must be at most %dx%d pixels", MaxDimension, MaxDimension)
	}

	return nil
}

// IsValidMessage checks that a chat message carries actual content.
func IsValidMessage(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}
	if len(trimmed) > 2000 {
		return false
	}
	return true
}

// SanitizeFilename strips path components and any character outside
// the safe set, so user-supplied names cannot escape the uploads
// directory or break URL rendering.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := b.String()
	if sanitized == "" || strings.Trim(sanitized, "._") == "" {
		return "upload"
	}
	return sanitized
}
