package httptransport

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"atelier/internal/preference"
	"atelier/internal/preference/store"
	"atelier/pkg/platform/circuit"
	"atelier/pkg/requestcontext"
)

// Stores yields the preference store backing one request.
type Stores func(w http.ResponseWriter, r *http.Request) preference.Store

// CookieStores keeps the preference in the visitor's browser.
func CookieStores(opts ...store.CookieOption) Stores {
	return func(w http.ResponseWriter, r *http.Request) preference.Store {
		return store.NewCookie(w, r, opts...)
	}
}

// MemoryStores keeps preferences in process, one scope per visitor.
func MemoryStores(m *store.Memory) Stores {
	return func(_ http.ResponseWriter, r *http.Request) preference.Store {
		return m.Scoped(requestcontext.VisitorID(r.Context()))
	}
}

func RedisStores(client *redis.Client, ttl time.Duration) Stores {
	return func(_ http.ResponseWriter, r *http.Request) preference.Store {
		return store.NewRedis(client, requestcontext.VisitorID(r.Context()), ttl)
	}
}

func PostgresStores(db *sql.DB) Stores {
	return func(_ http.ResponseWriter, r *http.Request) preference.Store {
		return store.NewPostgres(db, requestcontext.VisitorID(r.Context()))
	}
}

// GuardedStores puts inner behind breaker; while it is open each visitor is served
// from their scope of fallback.
func GuardedStores(inner Stores, breaker *circuit.Breaker, fallback *store.Memory, logger *slog.Logger) Stores {
	return func(w http.ResponseWriter, r *http.Request) preference.Store {
		return store.NewGuarded(inner(w, r), fallback.Scoped(requestcontext.VisitorID(r.Context())), breaker, logger)
	}
}
