package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Middleware caches successful GET responses keyed by the request URI.
type Middleware struct {
	store Store
	ttl   time.Duration
}

func NewMiddleware(store Store, ttl time.Duration) *Middleware {
	return &Middleware{store: store, ttl: ttl}
}

// Shared caches one response for every caller.
func (m *Middleware) Shared(tags ...string) func(http.Handler) http.Handler {
	return m.handler(false, tags)
}

// PerPrincipal keys the response by the authenticated user id as well, for
// endpoints whose body depends on who is asking.
func (m *Middleware) PerPrincipal(tags ...string) func(http.Handler) http.Handler {
	return m.handler(true, tags)
}

func (m *Middleware) handler(perPrincipal bool, tags []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || m.ttl <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "resp:" + r.URL.RequestURI()
			if perPrincipal {
				claims, err := auth.GetUserClaimsFromContext(r.Context())
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				key = fmt.Sprintf("resp:user:%d:%s", claims.UserID, r.URL.RequestURI())
			}

			log := config.WithContext(r.Context()).WithField("cache_key", key)

			raw, ok, err := m.store.Get(r.Context(), key)
			if err != nil {
				log.WithError(err).Warn("cache read failed")
			}
			if ok {
				var cached cachedResponse
				if err := json.Unmarshal(raw, &cached); err == nil {
					w.Header().Set("Content-Type", cached.ContentType)
					w.Header().Set("X-Cache", "HIT")
					w.WriteHeader(cached.Status)
					_, _ = w.Write(cached.Body)
					return
				}
				log.Warn("discarding unreadable cache entry")
			}

			var buf bytes.Buffer
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)
			ww.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(ww, r)

			if ww.Status() != http.StatusOK {
				return
			}

			payload, err := json.Marshal(cachedResponse{
				Status:      http.StatusOK,
				ContentType: ww.Header().Get("Content-Type"),
				Body:        buf.Bytes(),
			})
			if err != nil {
				return
			}
			// an invalidation landing between next and Set is missed; the entry then lives until ttl
			if err := m.store.Set(r.Context(), key, payload, m.ttl, tags...); err != nil {
				log.WithError(err).Warn("cache write failed")
			}
		})
	}
}

// Invalidate drops every entry tagged with tags. Failures are logged, never
// returned, so a cache outage cannot fail a write that already committed.
func Invalidate(ctx context.Context, inv Invalidator, tags ...string) {
	if inv == nil {
		return
	}
	if err := inv.InvalidateTags(ctx, tags...); err != nil {
		config.WithContext(ctx).WithError(err).WithField("tags", tags).Warn("cache invalidation failed")
	}
}
