package media

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/mediabox/mediabox_server/internal/storage"
)

const thumbnailWidth = 400

// Thumbnailer writes downsized previews to a parallel store under the
// same name as the original blob.
type Thumbnailer struct {
	thumbs storage.Backend
}

func NewThumbnailer(thumbs storage.Backend) *Thumbnailer {
	return &Thumbnailer{thumbs: thumbs}
}

// Generate decodes the original, resizes it to a fixed width keeping the
// aspect ratio, and stores the result. The thumbnail keeps the original's
// encoding; formats imaging cannot encode (webp) fail here and the caller
// degrades to "no preview".
func (t *Thumbnailer) Generate(ctx context.Context, name string, data []byte) error {
	format, err := imaging.FormatFromExtension(filepath.Ext(name))
	if err != nil {
		return fmt.Errorf("unsupported thumbnail format for %s: %w", name, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image for thumbnail: %w", err)
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format, imaging.JPEGQuality(80)); err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	if err := t.thumbs.Store(ctx, name, &buf); err != nil {
		return fmt.Errorf("failed to store thumbnail: %w", err)
	}

	return nil
}
