package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/logger"
	"github.com/xy-planning-network/lumber/postgres"
)

// shutdownTimeout bounds the Close Guide calls on its way out.
const shutdownTimeout = 5 * time.Second

// A Ranger assembles and owns a logging stack:
// a Hub, the appenders its Config enables, and the admin server.
type Ranger struct {
	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc
	hub    *logger.Hub
	log    *logger.Logger
	stdout io.Writer

	console  *appender.Console
	file     *appender.File
	memory   *appender.Memory
	metrics  *appender.Metrics
	registry *prometheus.Registry
	socket   *appender.Socket
	store    *appender.Store
	stream   *appender.Stream
	sentry   *appender.Sentry
	throttle *appender.Throttle
	topic    *appender.Topic

	db        *postgres.DB
	pub       appender.Publisher
	redis     *redis.Client
	sentryHub *sentry.Hub
	ln        net.Listener
	srv       *http.Server

	flushers []appender.Flusher
	closers  []func(context.Context) error
	cancels  []context.CancelFunc
	loops    sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// New assembles a *Ranger from cfg.
// Options are applied first, supplying dependencies New otherwise builds from cfg.
//
// If assembling fails, whatever was already built is closed.
func New(ctx context.Context, cfg Config, opts ...RangerOption) (*Ranger, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	r := &Ranger{cfg: cfg, stdout: os.Stdout}
	r.ctx, r.cancel = context.WithCancel(ctx)
	for _, opt := range opts {
		opt(r)
	}

	if err := r.configureHub(); err != nil {
		r.cancel()
		return nil, err
	}

	r.log = r.hub.Logger("ranger")

	r.defaultConsole()
	r.defaultMemory()
	steps := []func() error{
		r.defaultMetrics,
		r.defaultFile,
		r.defaultSocket,
		r.defaultTopic,
		r.defaultSentry,
		r.defaultStore,
		r.defaultAdmin,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = r.Close(closeCtx)
			return nil, fmt.Errorf("%w: %s", lumber.ErrBadConfig, err)
		}
	}

	if len(r.flushers) > 0 && cfg.FlushInterval > 0 {
		r.background(func(ctx context.Context) { r.flushLoop(ctx, cfg.FlushInterval) })
	}

	r.log.Debug("assembled % appenders", len(r.hub.Appenders()))
	return r, nil
}

// configureHub applies the Config's level, time and tail policy to the Hub,
// creating the Hub unless WithHub supplied one.
func (r *Ranger) configureHub() error {
	if err := r.cfg.Level.Valid(); err != nil {
		return fmt.Errorf("%w: %s", lumber.ErrBadConfig, err)
	}

	fn, err := r.cfg.timeFunc(time.Now())
	if err != nil {
		return fmt.Errorf("%w: %s", lumber.ErrBadConfig, err)
	}

	if r.cfg.Format == "" {
		r.cfg.Format = logger.DefaultFormat
	}

	if r.hub == nil {
		r.hub = logger.NewHub(logger.WithTailPolicy(r.cfg.Tail))
	}

	r.hub.SetTimeFunc(fn)
	return r.hub.SetLevel(r.cfg.Level)
}

// background runs fn in a goroutine Close cancels and waits on.
func (r *Ranger) background(fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(r.ctx)
	r.cancels = append(r.cancels, cancel)
	r.loops.Add(1)
	go func() {
		defer r.loops.Done()
		fn(ctx)
	}()
}

// Hub returns the Hub every appender is attached to.
func (r *Ranger) Hub() *logger.Hub { return r.hub }

// Logger returns a Logger on the Ranger's Hub with the context ctx.
func (r *Ranger) Logger(ctx string) *logger.Logger { return r.hub.Logger(ctx) }

// Memory returns the Memory appender, if Config.MemorySize enabled one.
func (r *Ranger) Memory() *appender.Memory { return r.memory }

// Metrics returns the Metrics appender.
func (r *Ranger) Metrics() *appender.Metrics { return r.metrics }

// Registry returns the Prometheus registry the Metrics counters are registered with.
func (r *Ranger) Registry() *prometheus.Registry { return r.registry }

// Topic returns the Topic appender, if redis is configured.
func (r *Ranger) Topic() *appender.Topic { return r.topic }

// AdminAddr returns the address the admin server listens on, or "" when it is disabled.
func (r *Ranger) AdminAddr() string {
	if r.ln == nil {
		return ""
	}

	return r.ln.Addr().String()
}

// Flush flushes every buffered appender, aggregating failures.
func (r *Ranger) Flush(ctx context.Context) error {
	var result *multierror.Error
	for _, f := range r.flushers {
		if err := f.Flush(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Close stops background work and waits for it to return.
// Then it flushes, unregisters and releases every appender
// in the reverse order they were built, aggregating failures.
// Calling Close again returns the first call's result.
func (r *Ranger) Close(ctx context.Context) error {
	r.closeOnce.Do(func() {
		for _, cancel := range r.cancels {
			cancel()
		}
		r.loops.Wait()

		var result *multierror.Error
		for i := len(r.closers) - 1; i >= 0; i-- {
			if err := r.closers[i](ctx); err != nil {
				result = multierror.Append(result, err)
			}
		}

		r.cancel()
		r.closeErr = result.ErrorOrNil()
	})

	return r.closeErr
}

// Guide serves the admin API, when configured, until the Ranger's context is done,
// Shutdown is called, or one of these signals arrives:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
//
// Guide then closes the Ranger and returns the result.
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(
		r.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	serveErr := make(chan error, 1)
	if r.srv != nil {
		go func() {
			r.log.Info("running admin server at %", r.ln.Addr())
			if err := r.srv.Serve(r.ln); !errors.Is(err, http.ErrServerClosed) {
				serveErr <- fmt.Errorf("could not serve: %w", err)
			}
		}()
	}

	var result *multierror.Error
	select {
	case <-ctx.Done():
		r.log.Info("shutting down")
	case err := <-serveErr:
		r.log.Error("%", err)
		result = multierror.Append(result, err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := r.Close(closeCtx); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// Shutdown makes Guide return.
func (r *Ranger) Shutdown() { r.cancel() }
