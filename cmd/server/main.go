package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"registrar/internal/audit"
	"registrar/internal/domains/provisioner"
	domainstore "registrar/internal/domains/store"
	"registrar/internal/notify"
	"registrar/internal/platform/config"
	"registrar/internal/platform/httpserver"
	"registrar/internal/platform/logger"
	platformmetrics "registrar/internal/platform/metrics"
	platformredis "registrar/internal/platform/redis"
	"registrar/internal/registry"
	requesthandler "registrar/internal/request/handler"
	requestmetrics "registrar/internal/request/metrics"
	requestservice "registrar/internal/request/service"
	requeststore "registrar/internal/request/store"
	"registrar/internal/user"
)

// main wires the dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// Stores: Postgres when a database is configured, in-memory otherwise.
	var (
		requests requestservice.Store
		domains  *domainstore.Postgres
		users    user.Store
		txOpt    requestservice.Option
	)
	if cfg.Postgres.URL != "" {
		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			log.Error("cannot open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("cannot reach database", "error", err)
			os.Exit(1)
		}
		requests = requeststore.NewPostgres(db)
		domains = domainstore.NewPostgres(db)
		users = user.NewPostgresStore(db)
		txOpt = requestservice.WithTxRunner(newRequestPostgresTx(db).RunInTx)
	} else {
		log.Info("no DATABASE_URL set, using in-memory stores")
		requests = requeststore.NewMemory()
		users = user.NewMemoryStore()
	}

	var provisionerStore provisioner.Store
	if domains != nil {
		provisionerStore = domains
	} else {
		provisionerStore = domainstore.NewMemory()
	}
	prov := provisioner.New(provisionerStore)

	// Registry client, with a Redis cache in front when configured.
	var registryClient registry.Client = registry.NewMockClient(cfg.Registry.Latency)
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("cannot connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		registryClient = registry.NewCachedClient(registryClient, redisClient.Client, config.RegistryCacheTTL, log)
	}

	// Audit trail: Kafka when brokers are configured, otherwise an in-process
	// worker draining to the memory store.
	var publisher audit.Publisher
	if kafkaPublisher := audit.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic); kafkaPublisher != nil {
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		inbox := make(chan audit.Event, 256)
		publisher = audit.NewChannelPublisher(inbox)
		worker := audit.NewWorker(audit.NewMemoryStore(), inbox)
		g.Go(func() error {
			if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	dispatcher := notify.NewDispatcher(
		&notify.LogSender{Logger: log},
		cfg.Email.FromAddress,
		cfg.Server.IsProduction,
		log,
	)

	appMetrics := platformmetrics.New()
	workflowMetrics := requestmetrics.New()

	opts := []requestservice.Option{
		requestservice.WithLogger(log),
		requestservice.WithAuditPublisher(publisher),
		requestservice.WithMetrics(workflowMetrics),
		requestservice.WithCreatedHook(appMetrics.IncrementRequestsCreated),
		requestservice.WithApprovedHook(appMetrics.IncrementDomainsProvisioned),
	}
	if txOpt != nil {
		opts = append(opts, txOpt)
	}
	workflow := requestservice.New(requests, prov, registryClient, dispatcher, users, opts...)

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())
	requesthandler.New(workflow, log, cfg.Server.JWTSigningKey).Register(router)

	srv := httpserver.New(cfg.Server.Addr, router)

	g.Go(func() error {
		log.Info("starting registrar", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
