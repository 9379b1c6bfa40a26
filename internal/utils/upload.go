package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
)

type uploadRule struct {
	maxBytes     int64
	allowedExts  []string
	allowedMimes []string
}

// Allow-lists are keyed by the logical field category, not the form field
// itself, so each category gets its own size ceiling and type policy.
var uploadRules = map[string]uploadRule{
	"profile": {
		maxBytes:     5 << 20,
		allowedExts:  []string{".jpg", ".jpeg", ".png", ".webp"},
		allowedMimes: []string{"image/jpeg", "image/png", "image/webp"},
	},
	"material": {
		maxBytes:     20 << 20,
		allowedExts:  []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt", ".md", ".jpg", ".jpeg", ".png"},
		allowedMimes: []string{"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/vnd.ms-powerpoint", "application/vnd.openxmlformats-officedocument.presentationml.presentation", "text/plain", "text/markdown", "image/jpeg", "image/png"},
	},
	"study": {
		maxBytes:     10 << 20,
		allowedExts:  []string{".jpg", ".jpeg", ".png", ".gif"},
		allowedMimes: []string{"image/jpeg", "image/png", "image/gif"},
	},
}

type Uploader struct {
	baseDir string
}

func NewUploader(baseDir string) *Uploader {
	return &Uploader{baseDir: baseDir}
}

// Save validates the uploaded file against its category's allow-list and
// writes it under <baseDir>/<category>/ with a collision-resistant name.
// Returns the stored relative path.
func (u *Uploader) Save(category string, file *multipart.FileHeader) (string, error) {
	rule, ok := uploadRules[category]
	if !ok {
		return "", apperrors.Validation(fmt.Sprintf("Unexpected upload category: %s", category))
	}

	if file.Size > rule.maxBytes {
		return "", apperrors.Validation(fmt.Sprintf("File exceeds the %dMB limit for %s uploads", rule.maxBytes>>20, category))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !contains(rule.allowedExts, ext) {
		return "", apperrors.Validation(fmt.Sprintf("File type %s is not allowed for %s uploads", ext, category))
	}

	declaredMime := file.Header.Get("Content-Type")
	if declaredMime != "" && !contains(rule.allowedMimes, strings.ToLower(declaredMime)) {
		return "", apperrors.Validation(fmt.Sprintf("Content type %s is not allowed for %s uploads", declaredMime, category))
	}

	dir := filepath.Join(u.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	storedPath := filepath.Join(dir, uuid.NewString()+ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(storedPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(storedPath)
		return "", err
	}

	return storedPath, nil
}

// Remove deletes a previously stored file. Missing files are not an error;
// the row is the source of truth, the blob is best-effort.
func (u *Uploader) Remove(storedPath string) error {
	if storedPath == "" {
		return nil
	}

	if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
