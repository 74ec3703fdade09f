package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lingaraj8064/Crop-AI-Sys/models"
	"github.com/Lingaraj8064/Crop-AI-Sys/validation"
)

// UploadStorage persists accepted image uploads on disk under a
// single directory that is also served back at /static/uploads/.
type UploadStorage struct {
	dir string
}

func NewUploadStorage(dir string) (*UploadStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &UploadStorage{dir: dir}, nil
}

func (s *UploadStorage) Dir() string {
	return s.dir
}

// Save writes an uploaded file under a timestamped, sanitized name so
// concurrent uploads of the same filename never collide.
func (s *UploadStorage) Save(header *multipart.FileHeader) (*models.SavedFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	sanitized := validation.SanitizeFilename(header.Filename)
	now := time.Now()
	filename := fmt.Sprintf("%s_%d_%s", now.Format("20060102_150405"), now.Nanosecond(), sanitized)
	path := filepath.Join(s.dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}

	return &models.SavedFile{
		Filename:         filename,
		Path:             path,
		OriginalFilename: header.Filename,
		Size:             size,
		Extension:        strings.ToLower(filepath.Ext(sanitized)),
	}, nil
}

func (s *UploadStorage) Delete(filename string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
}

// CleanupOlderThan removes uploads whose modification time is older
// than the cutoff and returns how many files were deleted.
func (s *UploadStorage) CleanupOlderThan(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read uploads directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}

	return removed, nil
}
