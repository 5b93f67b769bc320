package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twmb/franz-go/pkg/kgo"

	"atelier/internal/boundary"
	"atelier/internal/content"
	"atelier/internal/diagnostics"
	"atelier/internal/platform/config"
	"atelier/internal/platform/kafka"
	"atelier/internal/platform/metrics"
	"atelier/internal/platform/postgres"
	"atelier/internal/platform/redis"
	"atelier/internal/preference/store"
	httptransport "atelier/internal/transport/http"
	"atelier/pkg/platform/circuit"
)

const startupTimeout = 15 * time.Second

// deps holds everything main has to close on the way out.
type deps struct {
	router  http.Handler
	closers []func()
	closed  bool
}

func (d *deps) close() {
	if d.closed {
		return
	}
	d.closed = true
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func buildDeps(ctx context.Context, cfg config.Server, log *slog.Logger) (*deps, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	d := &deps{}
	m := metrics.New()
	opts := []httptransport.Option{
		httptransport.WithLogger(log),
		httptransport.WithMetrics(m),
		httptransport.WithDiagnostics(cfg.DiagnosticsEnabled()),
		httptransport.WithBaseURL(cfg.BaseURL),
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		d.closers = append(d.closers, func() { _ = redisClient.Close() })
		opts = append(opts, httptransport.WithHealthCheck("redis", redisClient.Health))
	}

	var db *sql.DB
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		if db, err = postgres.OpenSQL(ctx, cfg.DatabaseURL); err != nil {
			d.close()
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = db.Close() })
		if pool, err = postgres.OpenPool(ctx, cfg.DatabaseURL); err != nil {
			d.close()
			return nil, err
		}
		d.closers = append(d.closers, pool.Close)
		opts = append(opts, httptransport.WithHealthCheck("postgres", db.PingContext))
	}

	stores, err := preferenceStores(ctx, cfg, redisClient, db, log)
	if err != nil {
		d.close()
		return nil, err
	}
	repo, err := contentRepository(ctx, cfg, pool)
	if err != nil {
		d.close()
		return nil, err
	}

	producer, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		d.close()
		return nil, err
	}
	collectors := []boundary.Collector{diagnostics.NewLog(log), diagnostics.NewMetrics(m), diagnostics.NewTrace()}
	if producer != nil {
		d.closers = append(d.closers, func() { flushKafka(producer, log) })
		collectors = append(collectors, diagnostics.NewKafka(producer, cfg.Kafka.Topic, log))
		log.Info("render faults forwarded to kafka", "topic", cfg.Kafka.Topic, "brokers", strings.Join(cfg.Kafka.Brokers, ","))
	}

	h := httptransport.New(repo, diagnostics.NewMulti(log, m, collectors...), stores, opts...)
	d.router = h.Router()
	return d, nil
}

func preferenceStores(ctx context.Context, cfg config.Server, redisClient *redis.Client, db *sql.DB, log *slog.Logger) (httptransport.Stores, error) {
	secure := strings.HasPrefix(cfg.BaseURL, "https://")
	switch cfg.PreferenceStore {
	case config.StoreCookie:
		return httptransport.CookieStores(store.WithMaxAge(config.PreferenceCookieTTL), store.WithSecure(secure)), nil
	case config.StoreMemory:
		return httptransport.MemoryStores(store.NewMemory()), nil
	case config.StoreRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("preference store %q requires REDIS_URL", cfg.PreferenceStore)
		}
		return guarded(httptransport.RedisStores(redisClient.Client, cfg.Redis.KeyTTL), "redis-preferences", log), nil
	case config.StorePostgres:
		if db == nil {
			return nil, fmt.Errorf("preference store %q requires DATABASE_URL", cfg.PreferenceStore)
		}
		if err := store.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return guarded(httptransport.PostgresStores(db), "postgres-preferences", log), nil
	default:
		return nil, fmt.Errorf("unknown preference store %q", cfg.PreferenceStore)
	}
}

// guarded keeps theme toggles working in memory while a server-side store is down.
func guarded(stores httptransport.Stores, name string, log *slog.Logger) httptransport.Stores {
	return httptransport.GuardedStores(stores, circuit.New(name), store.NewMemory(), log)
}

func contentRepository(ctx context.Context, cfg config.Server, pool *pgxpool.Pool) (content.Repository, error) {
	switch cfg.ContentStore {
	case config.StoreMemory:
		m := content.NewMemory()
		content.Seed(m, time.Now())
		return m, nil
	case config.StorePostgres:
		if pool == nil {
			return nil, fmt.Errorf("content store %q requires DATABASE_URL", cfg.ContentStore)
		}
		if err := content.Migrate(ctx, pool); err != nil {
			return nil, err
		}
		return content.NewPostgres(pool), nil
	default:
		return nil, fmt.Errorf("unknown content store %q", cfg.ContentStore)
	}
}

// flushKafka gives in-flight fault events a moment to reach the broker.
func flushKafka(client *kgo.Client, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Flush(ctx); err != nil {
		log.Warn("kafka flush incomplete", "error", err)
	}
	client.Close()
}
