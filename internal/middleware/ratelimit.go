package middleware

import (
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

// RateLimitMiddleware caps requests per client IP with a fixed window.
type RateLimitMiddleware struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	windows map[string]*requestWindow
}

type requestWindow struct {
	start time.Time
	count int
}

func NewRateLimitMiddleware(window time.Duration, max int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		window:  window,
		max:     max,
		windows: make(map[string]*requestWindow),
	}
}

func (rl *RateLimitMiddleware) Handle(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if rl.max > 0 && !rl.allow(ctx.RemoteIP().String(), time.Now()) {
			ctx.Error("Too Many Requests", fasthttp.StatusTooManyRequests)
			return
		}

		next(ctx)
	}
}

func (rl *RateLimitMiddleware) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[ip]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.prune(now)
		rl.windows[ip] = &requestWindow{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= rl.max
}

// prune drops expired windows so the map does not grow with every
// client ever seen. Called with the lock held.
func (rl *RateLimitMiddleware) prune(now time.Time) {
	for ip, w := range rl.windows {
		if now.Sub(w.start) >= rl.window {
			delete(rl.windows, ip)
		}
	}
}
