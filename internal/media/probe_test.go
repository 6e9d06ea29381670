package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeDimensions_ReadsPixelSize(t *testing.T) {
	w, h, err := ProbeDimensions(pngBytes(t, 20, 10))
	require.NoError(t, err)
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)

	w, h, err = ProbeDimensions(jpegBytes(t, 7, 13))
	require.NoError(t, err)
	assert.Equal(t, 7, w)
	assert.Equal(t, 13, h)
}

func TestProbeDimensions_FailsOnUndecodableBytes(t *testing.T) {
	_, _, err := ProbeDimensions([]byte("definitely not an image"))
	assert.Error(t, err)
}
