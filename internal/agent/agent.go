package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/pathways/internal/api"
	config "github.com/mwantia/pathways/internal/config/server"
	"github.com/mwantia/pathways/internal/session"
	"github.com/mwantia/pathways/pkg/catalog"
	"github.com/mwantia/pathways/pkg/db/store"
	"github.com/mwantia/pathways/pkg/inquiry"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/mwantia/pathways/pkg/match"
	"github.com/mwantia/pathways/pkg/metrics"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// PathwaysAgent runs the HTTP API together with its stores, publishers
// and session sweeper.
type PathwaysAgent struct {
	mutex sync.RWMutex

	cfg     *config.BaseServerConfig
	sc      *container.ServiceContainer
	log     log.LoggerService
	metrics *metrics.Metrics

	store     store.InquiryStore
	publisher *inquiry.KafkaPublisher
	sessions  *session.Manager
	api       *api.Server
	server    *http.Server
}

// componentLoggers is filled by the service container; every component
// logs under its own name.
type componentLoggers struct {
	Root    log.LoggerService `fabric:"inject"`
	DB      log.LoggerService `fabric:"logger:db"`
	HTTP    log.LoggerService `fabric:"logger:http"`
	Session log.LoggerService `fabric:"logger:session"`
	Inquiry log.LoggerService `fabric:"logger:inquiry"`
}

func NewAgent(cfg *config.BaseServerConfig) *PathwaysAgent {
	return &PathwaysAgent{
		cfg:     cfg,
		sc:      container.NewServiceContainer(),
		log:     log.NewLoggerService("pathways", cfg.Log),
		metrics: metrics.New(),
	}
}

// OpenStore opens and migrates the configured inquiry store. It returns nil
// when metadata.type is "none".
func OpenStore(ctx context.Context, cfg config.MetadataServerConfig, logger log.LoggerService) (store.InquiryStore, error) {
	switch cfg.Type {
	case "none":
		return nil, nil
	case "sqlite":
		st, err := store.NewSQLiteStore(store.SQLiteConfig{
			Path:   cfg.SQLite.Path,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		if err := st.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgresStore(store.PostgresConfig{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			Logger:       logger,
		})
		if err != nil {
			return nil, err
		}
		if err := st.Connect(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to migrate postgres database: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown metadata type '%s'", cfg.Type)
}

func (pa *PathwaysAgent) setupServices(ctx context.Context) error {
	errs := container.Errors{}

	pa.sc.AddTagProcessor(log.NewLoggerTagProcessor())

	pa.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](pa.sc,
		container.With[log.LoggerService](),
		container.WithInstance(pa.log)))
	errs.Add(container.Register[*componentLoggers](pa.sc))
	if err := errs.Errors(); err != nil {
		return err
	}

	loggers, err := container.Resolve[*componentLoggers](ctx, pa.sc)
	if err != nil {
		return fmt.Errorf("failed to resolve component loggers: %w", err)
	}

	st, err := OpenStore(ctx, pa.cfg.Metadata, loggers.DB)
	if err != nil {
		return err
	}
	pa.store = st

	var submitter inquiry.Submitter
	switch s := st.(type) {
	case *store.SQLiteStore:
		pa.log.Debug("Registering 'InquiryStore' at '%s'...", pa.cfg.Metadata.SQLite.Path)
		errs.Add(container.Register[store.SQLiteStore](pa.sc,
			container.With[store.InquiryStore](),
			container.WithInstance(s)))
		submitter = inquiry.NewStoreSubmitter(st)
	case *store.PostgresStore:
		pa.log.Debug("Registering 'InquiryStore' on postgres...")
		errs.Add(container.Register[store.PostgresStore](pa.sc,
			container.With[store.InquiryStore](),
			container.WithInstance(s)))
		submitter = inquiry.NewStoreSubmitter(st)
	default:
		pa.log.Warn("No metadata store configured; consultation requests are only logged")
		submitter = inquiry.NewLogSubmitter(loggers.Inquiry)
	}

	if publish := pa.cfg.Inquiry.Publish; publish.Enabled() {
		pa.log.Debug("Publishing consultation requests to '%s' via %v", publish.Topic, publish.Brokers)
		publisher, err := inquiry.NewKafkaPublisher(publish.Brokers, publish.Topic)
		if err != nil {
			return err
		}
		pa.publisher = publisher
	}

	if err := errs.Errors(); err != nil {
		return err
	}

	pa.sessions = session.NewManager(pa.cfg.Session.IdleTimeout,
		session.WithLogger(loggers.Session),
		session.WithMetrics(pa.metrics))

	inquiryOpts := []inquiry.Option{inquiry.WithMetrics(pa.metrics)}
	if pa.publisher != nil {
		inquiryOpts = append(inquiryOpts, inquiry.WithPublishers(pa.publisher))
	}

	opts := api.Options{
		Colleges:  catalog.Colleges(),
		Programs:  catalog.Programs(),
		Sessions:  pa.sessions,
		Inquiries: inquiry.NewService(submitter, loggers.Inquiry, inquiryOpts...),
		Tolerances: match.Tolerances{
			GPA:   pa.cfg.Match.GPATolerance,
			Score: pa.cfg.Match.ScoreTolerance,
		},
		Metrics:        pa.metrics,
		ExposeMetrics:  pa.cfg.HTTP.Metrics,
		RequestTimeout: pa.cfg.HTTP.RequestTimeout,
		Logger:         loggers.HTTP,
	}
	if st != nil {
		opts.Health = st
	}

	pa.api = api.NewServer(opts)
	pa.server = &http.Server{
		Addr:              pa.cfg.HTTP.Address,
		Handler:           pa.api.Handler(),
		ReadHeaderTimeout: pa.cfg.HTTP.ReadHeaderTimeout,
	}
	return nil
}

// watchConfig reloads the match tolerances whenever the config file changes.
// Everything else requires a restart.
func (pa *PathwaysAgent) watchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			pa.log.Warn("Ignoring change to '%s': %v", e.Name, err)
			return
		}

		pa.reloadTolerances(cfg.Match)
	})
	viper.WatchConfig()
}

func (pa *PathwaysAgent) reloadTolerances(cfg config.MatchServerConfig) {
	pa.mutex.Lock()
	defer pa.mutex.Unlock()

	tolerances := match.Tolerances{GPA: cfg.GPATolerance, Score: cfg.ScoreTolerance}
	if tolerances == pa.api.Tolerances() {
		return
	}

	pa.log.Info("Reloaded match tolerances (gpa %.2f, score %.0f)", tolerances.GPA, tolerances.Score)
	pa.cfg.Match = cfg
	pa.api.SetTolerances(tolerances)
}

// Serve blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down within the configured timeout.
func (pa *PathwaysAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pa.mutex.Lock()
	if err := pa.setupServices(ctx); err != nil {
		pa.mutex.Unlock()
		return err
	}
	pa.mutex.Unlock()

	pa.watchConfig()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pa.sessions.Run(ctx, pa.cfg.Session.SweepInterval)
		return nil
	})
	g.Go(func() error {
		pa.log.Info("Listening on %s", pa.cfg.HTTP.Address)
		if err := pa.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return pa.shutdown()
	})

	return g.Wait()
}

func (pa *PathwaysAgent) shutdown() error {
	timeout, err := time.ParseDuration(pa.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pa.log.Info("Shutting down...")
	if err := pa.server.Shutdown(ctx); err != nil {
		pa.log.Warn("Failed to shut down http server gracefully: %v", err)
	}

	if err := pa.sc.Cleanup(ctx); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}
	if pa.publisher != nil {
		pa.publisher.Close()
	}
	if pa.store != nil {
		if err := pa.store.Close(); err != nil {
			pa.log.Warn("Failed to close metadata store: %v", err)
		}
	}
	return nil
}
