package media

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

const maxBatchSize = 8

type Endpoints struct {
	service *Service
}

func NewEndpoints(service *Service) *Endpoints {
	return &Endpoints{service: service}
}

type uploadResponse struct {
	Success  bool          `json:"success"`
	Inserted []*View       `json:"inserted"`
	Failures []FileFailure `json:"failures,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (e *Endpoints) Upload(ctx *fasthttp.RequestCtx) {
	contentType := string(ctx.Request.Header.ContentType())
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		writeError(ctx, "Content-Type must be multipart/form-data", fasthttp.StatusBadRequest)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		writeError(ctx, "Failed to parse multipart form", fasthttp.StatusBadRequest)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		writeError(ctx, "No files received", fasthttp.StatusBadRequest)
		return
	}
	if len(headers) > maxBatchSize {
		writeError(ctx, "Too many files (max 8)", fasthttp.StatusBadRequest)
		return
	}

	result := &BatchResult{}
	var files []UploadFile
	var readers []io.Closer
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			result.Failures = append(result.Failures, FileFailure{
				OriginalName: header.Filename,
				Error:        "failed to open uploaded file",
			})
			continue
		}
		readers = append(readers, file)
		files = append(files, UploadFile{
			OriginalName: header.Filename,
			ContentType:  header.Header.Get("Content-Type"),
			Size:         header.Size,
			Data:         file,
		})
	}

	batch := e.service.IngestBatch(ctx, files)
	for _, reader := range readers {
		reader.Close()
	}

	result.Inserted = batch.Inserted
	result.Failures = append(result.Failures, batch.Failures...)

	response := uploadResponse{
		Success:  len(result.Inserted) > 0,
		Inserted: result.Inserted,
		Failures: result.Failures,
	}
	if response.Inserted == nil {
		response.Inserted = []*View{}
	}

	status := fasthttp.StatusOK
	if len(result.Inserted) == 0 {
		status = fasthttp.StatusBadRequest
	}
	writeJSON(ctx, response, status)
}

func (e *Endpoints) List(ctx *fasthttp.RequestCtx) {
	views, err := e.service.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list media")
		writeError(ctx, "Failed to list media", fasthttp.StatusInternalServerError)
		return
	}

	if views == nil {
		views = []*View{}
	}
	writeJSON(ctx, views, fasthttp.StatusOK)
}

func (e *Endpoints) Get(ctx *fasthttp.RequestCtx) {
	idStr, _ := ctx.UserValue("mediaID").(string)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(ctx, "Not found", fasthttp.StatusNotFound)
		return
	}

	view, err := e.service.Get(ctx, id)
	if err == ErrNotFound {
		writeError(ctx, "Not found", fasthttp.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to get media")
		writeError(ctx, "Failed to get media", fasthttp.StatusInternalServerError)
		return
	}

	writeJSON(ctx, view, fasthttp.StatusOK)
}

func (e *Endpoints) ServeBlob(ctx *fasthttp.RequestCtx) {
	e.serve(ctx, e.service.OpenBlob)
}

func (e *Endpoints) ServeThumb(ctx *fasthttp.RequestCtx) {
	e.serve(ctx, e.service.OpenThumb)
}

func (e *Endpoints) serve(ctx *fasthttp.RequestCtx, open func(ctx context.Context, name string) (io.ReadCloser, error)) {
	name, _ := ctx.UserValue("filename").(string)
	if !ValidName(name) {
		writeError(ctx, "Not found", fasthttp.StatusNotFound)
		return
	}

	reader, err := open(ctx, name)
	if err != nil {
		writeError(ctx, "Not found", fasthttp.StatusNotFound)
		return
	}
	defer reader.Close()

	ctx.SetContentType(ContentTypeFor(name))
	ctx.Response.Header.Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(ctx, reader); err != nil {
		log.Error().Err(err).Str("filename", name).Msg("Failed to stream file")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, body interface{}, status int) {
	response, err := json.Marshal(body)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(response)
}

func writeError(ctx *fasthttp.RequestCtx, message string, status int) {
	writeJSON(ctx, errorResponse{Error: message}, status)
}
