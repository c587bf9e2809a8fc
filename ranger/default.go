package ranger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/http/admin"
	"github.com/xy-planning-network/lumber/http/middleware"
	"github.com/xy-planning-network/lumber/postgres"
	"golang.org/x/time/rate"
)

// defaultConsole attaches a Console writing to the Ranger's stdout.
func (r *Ranger) defaultConsole() {
	if !r.cfg.Console {
		return
	}

	r.console = appender.NewConsole(r.hub, r.stdout, r.cfg.Color)
	r.console.SetFormat(r.cfg.Format)
	r.console.Begin()
	r.closers = append(r.closers, func(context.Context) error { r.console.Unregister(); return nil })
}

// defaultFile attaches a File when Config.File names one.
func (r *Ranger) defaultFile() error {
	if r.cfg.File.Filename == "" {
		return nil
	}

	f, err := appender.NewFile(r.hub, r.cfg.File)
	if err != nil {
		return err
	}

	f.SetFormat(r.cfg.Format)
	r.file = f
	r.closers = append(r.closers, func(context.Context) error { return f.Close() })
	return nil
}

// defaultMetrics attaches Metrics and registers its counters with a fresh Registry.
func (r *Ranger) defaultMetrics() error {
	r.metrics = appender.NewMetrics(r.hub)
	r.registry = prometheus.NewRegistry()
	for _, c := range r.metrics.Collectors() {
		if err := r.registry.Register(c); err != nil {
			return fmt.Errorf("%w: metrics: %s", lumber.ErrBadConfig, err)
		}
	}

	r.closers = append(r.closers, func(context.Context) error { r.metrics.Unregister(); return nil })
	return nil
}

// defaultMemory attaches a Memory when Config.MemorySize is positive.
func (r *Ranger) defaultMemory() {
	if r.cfg.MemorySize <= 0 {
		return
	}

	r.memory = appender.NewMemory(r.hub, r.cfg.MemorySize)
	r.memory.SetFormat(r.cfg.Format)
	r.closers = append(r.closers, func(context.Context) error { r.memory.Unregister(); return nil })
}

// defaultTopic attaches a Topic when a publisher or redis is configured,
// watching the level topic in the background when one is named and redis is available.
func (r *Ranger) defaultTopic() error {
	if r.pub == nil && r.redis == nil && r.cfg.RedisURL == "" {
		return nil
	}

	if r.pub == nil && r.redis == nil {
		opts, err := redis.ParseURL(r.cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("%w: redis: %s", lumber.ErrBadConfig, err)
		}

		r.redis = redis.NewClient(opts)
		client := r.redis
		r.closers = append(r.closers, func(context.Context) error { return client.Close() })
	}

	pub := r.pub
	if pub == nil {
		pub = r.redis
	}

	topic := appender.NewTopic(r.hub, pub, r.cfg.RedisTopic)
	topic.SetFormat(r.cfg.Format)
	r.topic = topic
	r.flushers = append(r.flushers, topic)
	r.closers = append(r.closers, topic.Close)

	if r.cfg.RedisLevelTopic == "" || r.redis == nil {
		return nil
	}

	r.background(func(ctx context.Context) {
		err := topic.WatchLevel(ctx, r.redis, r.cfg.RedisLevelTopic)
		if err != nil && !errors.Is(err, context.Canceled) {
			r.log.Error("stopped watching level topic %: %", r.cfg.RedisLevelTopic, err)
		}
	})

	return nil
}

// defaultSentry attaches a Sentry when a DSN or *sentry.Hub is configured.
// With a positive Config.SentryRate, a Throttle sits in front of it.
func (r *Ranger) defaultSentry() error {
	if r.sentryHub == nil && r.cfg.SentryDSN == "" {
		return nil
	}

	if r.sentryHub == nil {
		sh, err := appender.NewSentryHub(r.cfg.SentryDSN, r.cfg.Env)
		if err != nil {
			return err
		}
		r.sentryHub = sh
	}

	if r.cfg.SentryRate <= 0 {
		r.sentry = appender.NewSentry(r.hub, r.sentryHub, appender.WithThreshold(r.cfg.SentryLevel))
	} else {
		r.sentry = appender.NewSentry(nil, r.sentryHub, appender.WithThreshold(r.cfg.SentryLevel))
		limiter := rate.NewLimiter(rate.Limit(r.cfg.SentryRate), max(1, r.cfg.SentryBurst))
		r.throttle = appender.NewThrottle(r.hub, limiter, r.sentry)
	}

	if r.throttle != nil {
		r.throttle.SetFormat(r.cfg.Format)
	} else {
		r.sentry.SetFormat(r.cfg.Format)
	}

	r.flushers = append(r.flushers, r.sentry)
	r.closers = append(r.closers, r.sentry.Close)
	if r.throttle != nil {
		r.closers = append(r.closers, func(context.Context) error { r.throttle.Unregister(); return nil })
	}

	return nil
}

// defaultStore attaches a Store when a database is configured,
// connecting and migrating when Config.DatabaseURL names it.
func (r *Ranger) defaultStore() error {
	if r.db == nil && r.cfg.DatabaseURL == "" {
		return nil
	}

	if r.db == nil {
		cfg := &postgres.CxnConfig{URL: r.cfg.DatabaseURL, Logger: r.hub.Logger("postgres")}
		db, err := postgres.Connect(cfg, appender.StoreMigrations(), r.cfg.Env)
		if err != nil {
			return err
		}

		r.db = db
		r.closers = append(r.closers, func(context.Context) error {
			sqlDB, err := db.DB().DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}

	store := appender.NewStore(r.hub, r.db, r.cfg.DBBatch)
	r.store = store
	r.flushers = append(r.flushers, store)
	r.closers = append(r.closers, store.Close)
	return nil
}

// defaultSocket attaches a Socket when Config.SocketAddr names a peer.
func (r *Ranger) defaultSocket() error {
	if r.cfg.SocketAddr == "" {
		return nil
	}

	s, err := appender.NewSocket(r.hub, r.cfg.SocketNetwork, r.cfg.SocketAddr, r.cfg.SocketTimeout)
	if err != nil {
		return err
	}

	s.SetFormat(r.cfg.Format)
	r.socket = s
	r.closers = append(r.closers, func(context.Context) error { return s.Close() })
	return nil
}

// defaultAdmin attaches a Stream and listens on Config.AdminAddr for the admin API.
// Serving begins with Guide.
func (r *Ranger) defaultAdmin() error {
	if r.cfg.AdminAddr == "" {
		return nil
	}

	r.stream = appender.NewStream(r.hub, 0)
	r.stream.SetFormat(r.cfg.Format)

	ln, err := net.Listen("tcp", r.cfg.AdminAddr)
	if err != nil {
		return fmt.Errorf("%w: admin: %s", lumber.ErrBadConfig, err)
	}

	opts := []admin.OptFn{
		admin.WithCORS(r.cfg.AdminCORS),
		admin.WithGatherer(r.registry),
		admin.WithLogger(r.hub.Logger("admin")),
		admin.WithStream(r.stream),
		admin.WithVisitors(middleware.NewVisitors()),
	}
	if r.store != nil {
		opts = append(opts, admin.WithRecords(r.store))
	}
	if r.cfg.AdminAccessLog {
		opts = append(opts, admin.WithAccessLog(r.hub.Logger("access")))
	}

	handler := admin.New(r.hub, opts...)

	r.ln = ln
	r.srv = &http.Server{
		Handler:      handler,
		IdleTimeout:  r.cfg.AdminIdleTimeout,
		ReadTimeout:  r.cfg.AdminReadTimeout,
		WriteTimeout: r.cfg.AdminWriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return r.ctx },
	}

	// NOTE: closers run last to first, so the stream closes after the server shuts down.
	r.closers = append(r.closers, func(context.Context) error { r.stream.Close(); return nil })
	r.closers = append(r.closers, r.shutdownServer)
	return nil
}

// shutdownServer stops the admin server, closing the listener if it never served.
func (r *Ranger) shutdownServer(ctx context.Context) error {
	err := r.srv.Shutdown(ctx)
	if cerr := r.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}

	return err
}

// flushLoop flushes buffered appenders every interval until ctx is done.
func (r *Ranger) flushLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.log.Warn("failed flushing: %", err)
			}
		}
	}
}
