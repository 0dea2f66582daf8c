package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/social-blog/internal/config"
)

// captureWriter records the response body and status while forwarding
// everything to the real writer, so a successful response can be stored
// in Redis after the handler runs.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
	skip   bool
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.skip {
		if cw.limit > 0 && cw.size+int64(len(b)) > cw.limit {
			// Oversized responses are served but never cached.
			cw.buf.Reset()
			cw.skip = true
		} else {
			cw.buf.Write(b)
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// ResponseCache returns a middleware that caches GET responses of
// public read endpoints in Redis for the configured TTL. Keys combine
// the route pattern and raw query so /posts/byId/1 and /posts/byId/2
// cache independently. When caching is disabled or no Redis client is
// available, the middleware is a no-op pass-through; correctness never
// depends on the cache.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			if r.Method != http.MethodGet {
				return next(c)
			}
			key := cfg.Prefix + ":" + r.Method + ":" + r.URL.Path + "?" + r.URL.RawQuery

			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			raw, err := rdb.Get(ctx, key).Bytes()
			cancel()
			if err == nil {
				var cr cachedResponse
				if json.Unmarshal(raw, &cr) == nil && cr.Status != 0 {
					return c.JSONBlob(cr.Status, cr.Body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}

			// Only successful, size-bounded responses are stored.
			if cw.status == http.StatusOK && !cw.skip && cw.buf.Len() > 0 {
				if payload, err := json.Marshal(cachedResponse{Status: cw.status, Body: cw.buf.Bytes()}); err == nil {
					ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
					_ = rdb.Set(ctx, key, payload, cfg.TTL).Err()
					cancel()
				}
			}
			return nil
		}
	}
}
