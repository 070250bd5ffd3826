package userstable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/users-table/internal/config"
	"github.com/magabrotheeeer/users-table/internal/events"
	"github.com/magabrotheeeer/users-table/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
	"github.com/magabrotheeeer/users-table/internal/metrics"
	"github.com/magabrotheeeer/users-table/internal/preference"
	"github.com/magabrotheeeer/users-table/internal/theme"
	"github.com/magabrotheeeer/users-table/internal/usertable"
	"github.com/magabrotheeeer/users-table/internal/usertable/source"
)

const (
	preferencePrefix       = "users-table:"
	defaultShutdownTimeout = 15 * time.Second
)

type App struct {
	server          *http.Server
	logger          *slog.Logger
	table           *usertable.Table
	closers         []io.Closer
	shutdownTimeout time.Duration
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "userstable.New"

	var closers []io.Closer
	fail := func(err error) (*App, error) {
		closeAll(logger, closers)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var store preference.Store = preference.NewMemory()
	if cfg.AddressRedis != "" {
		redisStore, err := preference.NewRedis(ctx, cfg.RedisConnection, preferencePrefix)
		if err != nil {
			return fail(err)
		}
		store = redisStore
		closers = append(closers, redisStore)
	} else {
		logger.Warn("redis address is not set, theme preference is kept in memory")
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.URL != "" {
		conn, err := events.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return fail(err)
		}
		rabbit, err := events.NewRabbitPublisher(conn, cfg.Exchange)
		if err != nil {
			_ = conn.Close()
			return fail(err)
		}
		publisher = rabbit
		closers = append(closers, rabbit)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.New(registry)

	src := source.NewSynthetic(cfg.UserCount, cfg.MaxBalance, cfg.LoadDelay)
	table := usertable.New(src, logger,
		usertable.WithPageSize(cfg.PageSize),
		usertable.WithLoadTimeout(cfg.LoadTimeout),
		usertable.WithPublisher(publisher),
		usertable.WithRecorder(recorder),
	)

	root := &theme.Attribute{}
	themes := theme.New(store, cfg.Key, root, publisher, logger)
	prefersDark := cfg.PrefersDark
	if _, err := themes.Init(ctx, func() bool { return prefersDark }); err != nil {
		return fail(err)
	}

	if _, err := table.Mount(ctx); err != nil {
		return fail(err)
	}

	router := chi.NewRouter()
	limiter := middlewarectx.NewLimiter(cfg.RPS, cfg.Burst)
	RegisterRoutes(router, logger, table, themes, root, registry, limiter)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &App{
		server:          srv,
		logger:          logger,
		table:           table,
		closers:         closers,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Handler возвращает корневой обработчик сервера.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP-сервер и блокируется до отмены ctx или ошибки сервера.
// При остановке сервер завершается корректно, загрузка таблицы отменяется,
// соединения с Redis и RabbitMQ закрываются.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.table.Close()
		closeAll(a.logger, a.closers)
		return err
	})

	return g.Wait()
}

func closeAll(logger *slog.Logger, closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close resource", sl.Err(err))
		}
	}
}
