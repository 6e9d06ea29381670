package media

import "errors"

var (
	ErrRejectedType = errors.New("unsupported content type")
	ErrSizeExceeded = errors.New("file too large")
	ErrNotFound     = errors.New("media not found")
)

// Media is one catalog row: a successfully ingested file. Rows are
// written once and never updated; ID and CreatedAt are assigned by the
// repository at insert time.
type Media struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Width        *int   `json:"width"`
	Height       *int   `json:"height"`
	CreatedAt    int64  `json:"created_at"`
}

// View is a Media row projected with externally addressable URLs.
// Thumb is only set when a thumbnail actually exists.
type View struct {
	ID           int64   `json:"id"`
	Filename     string  `json:"filename"`
	OriginalName string  `json:"originalname"`
	MimeType     string  `json:"mimetype"`
	Size         int64   `json:"size"`
	Width        *int    `json:"width"`
	Height       *int    `json:"height"`
	CreatedAt    int64   `json:"created_at"`
	URL          string  `json:"url"`
	Thumb        *string `json:"thumb"`
}

// FileFailure describes one file of a batch that was not ingested.
type FileFailure struct {
	OriginalName string `json:"originalname"`
	Error        string `json:"error"`
}

// BatchResult aggregates per-file outcomes of one upload request.
type BatchResult struct {
	Inserted []*View
	Failures []FileFailure
}
