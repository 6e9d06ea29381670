package media

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/mediabox/mediabox_server/internal/storage"
)

// UploadFile is one file of an upload batch as handed to the service.
type UploadFile struct {
	OriginalName string
	ContentType  string
	Size         int64
	Data         io.Reader
}

// Service runs the per-file ingestion pipeline (validate, store,
// derive, catalog) and serves catalog projections.
type Service struct {
	repo        Repository
	blobs       storage.Backend
	thumbs      storage.Backend
	validator   *Validator
	namegen     *NameGenerator
	thumbnailer *Thumbnailer
	baseURL     string
}

func NewService(repo Repository, blobs, thumbs storage.Backend, validator *Validator, baseURL string) *Service {
	return &Service{
		repo:        repo,
		blobs:       blobs,
		thumbs:      thumbs,
		validator:   validator,
		namegen:     NewNameGenerator(),
		thumbnailer: NewThumbnailer(thumbs),
		baseURL:     baseURL,
	}
}

// IngestBatch processes every file independently; one file's failure
// never aborts the rest of the batch.
func (s *Service) IngestBatch(ctx context.Context, files []UploadFile) *BatchResult {
	result := &BatchResult{}
	for i := range files {
		view, err := s.ingestOne(ctx, &files[i])
		if err != nil {
			result.Failures = append(result.Failures, FileFailure{
				OriginalName: files[i].OriginalName,
				Error:        err.Error(),
			})
			continue
		}
		result.Inserted = append(result.Inserted, view)
	}
	return result
}

func (s *Service) ingestOne(ctx context.Context, f *UploadFile) (*View, error) {
	if err := s.validator.Validate(f.ContentType, f.Size); err != nil {
		return nil, err
	}

	// The declared size may lie; re-check while buffering so an
	// oversized upload never completes a full write.
	maxSize := s.validator.MaxFileSize()
	buf := &bytes.Buffer{}
	n, err := io.CopyN(buf, f.Data, maxSize+1)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if n > maxSize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrSizeExceeded, maxSize)
	}

	name := s.namegen.Generate(f.ContentType)
	if err := s.blobs.Store(ctx, name, bytes.NewReader(buf.Bytes())); err != nil {
		log.Error().Err(err).Str("filename", name).Msg("Failed to store uploaded file")
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	m := &Media{
		Filename:     name,
		OriginalName: f.OriginalName,
		MimeType:     f.ContentType,
		Size:         n,
	}

	if IsImage(f.ContentType) {
		if w, h, err := ProbeDimensions(buf.Bytes()); err != nil {
			log.Warn().Err(err).Str("filename", name).Msg("Failed to read image dimensions")
		} else {
			m.Width = &w
			m.Height = &h
		}

		if err := s.thumbnailer.Generate(ctx, name, buf.Bytes()); err != nil {
			log.Warn().Err(err).Str("filename", name).Msg("Failed to generate thumbnail")
		}
	}

	if err := s.repo.Insert(m); err != nil {
		s.blobs.Delete(ctx, name)
		s.thumbs.Delete(ctx, name)
		log.Error().Err(err).Str("filename", name).Msg("Failed to save catalog record")
		return nil, fmt.Errorf("failed to save catalog record: %w", err)
	}

	return s.project(ctx, m), nil
}

func (s *Service) List(ctx context.Context) ([]*View, error) {
	items, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(items))
	for _, m := range items {
		views = append(views, s.project(ctx, m))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*View, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, m), nil
}

func (s *Service) OpenBlob(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.blobs.Get(ctx, name)
}

func (s *Service) OpenThumb(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.thumbs.Get(ctx, name)
}

// project builds the externally addressable view of a catalog row. A
// thumb URL is only advertised when the derivative actually exists, so
// a failed generation never turns into a broken link.
func (s *Service) project(ctx context.Context, m *Media) *View {
	v := &View{
		ID:           m.ID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		Size:         m.Size,
		Width:        m.Width,
		Height:       m.Height,
		CreatedAt:    m.CreatedAt,
		URL:          s.baseURL + "/uploads/" + m.Filename,
	}

	if IsImage(m.MimeType) {
		if ok, err := s.thumbs.Exists(ctx, m.Filename); err == nil && ok {
			thumbURL := s.baseURL + "/thumbs/" + m.Filename
			v.Thumb = &thumbURL
		}
	}

	return v
}
