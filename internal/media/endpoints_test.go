package media

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type formFile struct {
	filename    string
	contentType string
	data        []byte
}

func multipartUploadCtx(t *testing.T, files []formFile) *fasthttp.RequestCtx {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.filename))
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod("POST")
	ctx.Request.Header.SetContentType(writer.FormDataContentType())
	ctx.Request.SetBody(body.Bytes())
	return ctx
}

func TestEndpoints_Upload_PartialBatchReportsPerFileOutcomes(t *testing.T) {
	ts := newTestService(t, 1024*1024)
	endpoints := NewEndpoints(ts.service)

	ctx := multipartUploadCtx(t, []formFile{
		{"a.jpg", "image/jpeg", jpegBytes(t, 4, 4)},
		{"notes.txt", "text/plain", []byte("hello")},
		{"b.png", "image/png", pngBytes(t, 4, 4)},
	})
	endpoints.Upload(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var response uploadResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.True(t, response.Success)
	assert.Len(t, response.Inserted, 2)
	require.Len(t, response.Failures, 1)
	assert.Equal(t, "notes.txt", response.Failures[0].OriginalName)
}

func TestEndpoints_Upload_AllRejectedReturnsBadRequest(t *testing.T) {
	ts := newTestService(t, 1024*1024)
	endpoints := NewEndpoints(ts.service)

	ctx := multipartUploadCtx(t, []formFile{
		{"notes.txt", "text/plain", []byte("hello")},
	})
	endpoints.Upload(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var response uploadResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.False(t, response.Success)
	assert.Empty(t, response.Inserted)
	assert.Len(t, response.Failures, 1)
}

func TestEndpoints_Upload_EmptyFormReturnsBadRequest(t *testing.T) {
	ts := newTestService(t, 1024)
	endpoints := NewEndpoints(ts.service)

	ctx := multipartUploadCtx(t, nil)
	endpoints.Upload(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestEndpoints_Upload_TooManyFilesReturnsBadRequest(t *testing.T) {
	ts := newTestService(t, 1024*1024)
	endpoints := NewEndpoints(ts.service)

	var files []formFile
	for i := 0; i < maxBatchSize+1; i++ {
		files = append(files, formFile{fmt.Sprintf("f%d.png", i), "image/png", pngBytes(t, 2, 2)})
	}
	ctx := multipartUploadCtx(t, files)
	endpoints.Upload(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Empty(t, dirEntries(t, ts.uploadDir))
}

func TestEndpoints_Get_UnknownIDReturnsNotFound(t *testing.T) {
	ts := newTestService(t, 1024)
	endpoints := NewEndpoints(ts.service)

	for _, id := range []string{"9999", "not-a-number"} {
		ctx := &fasthttp.RequestCtx{}
		ctx.SetUserValue("mediaID", id)
		endpoints.Get(ctx)

		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode(), id)
		assert.JSONEq(t, `{"error":"Not found"}`, string(ctx.Response.Body()), id)
	}
}

func TestEndpoints_ServeBlob_RoundTripsStoredBytes(t *testing.T) {
	ts := newTestService(t, 1024*1024)
	endpoints := NewEndpoints(ts.service)
	original := pngBytes(t, 6, 6)

	uploadCtx := multipartUploadCtx(t, []formFile{{"pic.png", "image/png", original}})
	endpoints.Upload(uploadCtx)
	require.Equal(t, fasthttp.StatusOK, uploadCtx.Response.StatusCode())

	var response uploadResponse
	require.NoError(t, json.Unmarshal(uploadCtx.Response.Body(), &response))
	require.Len(t, response.Inserted, 1)

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("filename", response.Inserted[0].Filename)
	endpoints.ServeBlob(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "image/png", string(ctx.Response.Header.ContentType()))
	assert.Equal(t, "public, max-age=86400", string(ctx.Response.Header.Peek("Cache-Control")))
	assert.True(t, bytes.Equal(original, ctx.Response.Body()))
}

func TestEndpoints_ServeBlob_RejectsPathTraversal(t *testing.T) {
	ts := newTestService(t, 1024)
	endpoints := NewEndpoints(ts.service)

	for _, name := range []string{"../secret.png", "a/b.png", "..", ""} {
		ctx := &fasthttp.RequestCtx{}
		ctx.SetUserValue("filename", name)
		endpoints.ServeBlob(ctx)

		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode(), name)
	}
}

func TestEndpoints_List_ReturnsEmptyArrayNotNull(t *testing.T) {
	ts := newTestService(t, 1024)
	endpoints := NewEndpoints(ts.service)

	ctx := &fasthttp.RequestCtx{}
	endpoints.List(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "[]", string(ctx.Response.Body()))
}
