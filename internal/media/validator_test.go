package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_AcceptsAllowedTypes(t *testing.T) {
	v := NewValidator(1024)

	for _, contentType := range []string{
		"image/jpeg", "image/png", "image/webp", "image/gif",
		"video/mp4", "video/webm", "video/quicktime",
	} {
		assert.NoError(t, v.Validate(contentType, 512), contentType)
	}
}

func TestValidator_RejectsUnknownTypes(t *testing.T) {
	v := NewValidator(1024)

	for _, contentType := range []string{
		"text/plain", "application/pdf", "image/svg+xml", "video/avi", "",
	} {
		err := v.Validate(contentType, 512)
		assert.ErrorIs(t, err, ErrRejectedType, contentType)
	}
}

func TestValidator_RejectsOversizedFiles(t *testing.T) {
	v := NewValidator(1024)

	assert.NoError(t, v.Validate("image/png", 1024))
	assert.ErrorIs(t, v.Validate("image/png", 1025), ErrSizeExceeded)
}

func TestValidator_DefaultsMaxSizeWhenUnset(t *testing.T) {
	v := NewValidator(0)

	assert.Equal(t, int64(50*1024*1024), v.MaxFileSize())
}
