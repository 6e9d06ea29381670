package internal

import (
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/mediabox/mediabox_server/internal/chat"
	"github.com/mediabox/mediabox_server/internal/health"
	"github.com/mediabox/mediabox_server/internal/media"
	"github.com/mediabox/mediabox_server/internal/middleware"
)

func NewRequestHandler(config *Config, mediaEndpoints *media.Endpoints, healthEndpoints *health.HealthEndpoints, chatEndpoints *chat.Endpoints) fasthttp.RequestHandler {
	corsMiddleware := middleware.NewCORSMiddleware(config.AllowedOrigins)
	headersMiddleware := middleware.NewSecurityHeadersMiddleware()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(time.Minute, config.RateLimitPerMinute)

	handler := func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())

		switch {
		case path == "/":
			ctx.SetContentType("text/plain; charset=utf-8")
			ctx.SetBodyString("API is running")
		case path == "/health":
			healthEndpoints.Health(ctx)

		case path == "/api/media/upload":
			if string(ctx.Method()) == "POST" {
				mediaEndpoints.Upload(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}
		case path == "/api/media":
			if string(ctx.Method()) == "GET" {
				mediaEndpoints.List(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}
		case strings.HasPrefix(path, "/api/media/"):
			parts := strings.Split(path, "/")
			if len(parts) == 4 && string(ctx.Method()) == "GET" {
				ctx.SetUserValue("mediaID", parts[3])
				mediaEndpoints.Get(ctx)
			} else {
				ctx.Error("Not Found", fasthttp.StatusNotFound)
			}

		case strings.HasPrefix(path, "/uploads/"):
			parts := strings.Split(path, "/")
			if len(parts) == 3 && string(ctx.Method()) == "GET" {
				ctx.SetUserValue("filename", parts[2])
				mediaEndpoints.ServeBlob(ctx)
			} else {
				ctx.Error("Not Found", fasthttp.StatusNotFound)
			}
		case strings.HasPrefix(path, "/thumbs/"):
			parts := strings.Split(path, "/")
			if len(parts) == 3 && string(ctx.Method()) == "GET" {
				ctx.SetUserValue("filename", parts[2])
				mediaEndpoints.ServeThumb(ctx)
			} else {
				ctx.Error("Not Found", fasthttp.StatusNotFound)
			}

		case path == "/api/chat":
			if chatEndpoints == nil {
				ctx.Error("Not Found", fasthttp.StatusNotFound)
			} else if string(ctx.Method()) == "POST" {
				chatEndpoints.Chat(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		default:
			ctx.Error("Not Found", fasthttp.StatusNotFound)
		}
	}

	return corsMiddleware.Handle(headersMiddleware.Handle(rateLimitMiddleware.Handle(handler)))
}
