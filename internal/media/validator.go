package media

import (
	"fmt"
	"strings"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

type Validator struct {
	maxFileSize int64
}

func NewValidator(maxFileSize int64) *Validator {
	if maxFileSize <= 0 {
		maxFileSize = 50 * 1024 * 1024
	}
	return &Validator{maxFileSize: maxFileSize}
}

// Validate decides accept/reject from the declared content type and size
// before any byte is persisted.
func (v *Validator) Validate(contentType string, size int64) error {
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("%w: %s", ErrRejectedType, contentType)
	}
	if size > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max: %d)", ErrSizeExceeded, size, v.maxFileSize)
	}
	return nil
}

func (v *Validator) MaxFileSize() int64 {
	return v.maxFileSize
}

func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
