package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/strokesense/orchestrator/internal/activities"
	cfg "github.com/strokesense/orchestrator/internal/config"
	"github.com/strokesense/orchestrator/internal/db"
	"github.com/strokesense/orchestrator/internal/eventlog"
	"github.com/strokesense/orchestrator/internal/health"
	"github.com/strokesense/orchestrator/internal/httpapi"
	_ "github.com/strokesense/orchestrator/internal/metrics" // register prometheus collectors
	"github.com/strokesense/orchestrator/internal/symptoms"
	"github.com/strokesense/orchestrator/internal/tracing"
	"github.com/strokesense/orchestrator/internal/workflows"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(config.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	shutdownTracing, err := tracing.Initialize(config.Tracing, logger)
	if err != nil {
		logger.Warn("Tracing init failed, continuing without it", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	// Vocabulary: load once at startup, hot-reload on file change.
	vocabMgr, err := cfg.NewVocabularyManager(config.Vocabulary.Path, logger)
	if err != nil {
		logger.Fatal("Failed to load symptom vocabulary", zap.Error(err))
	}
	if err := vocabMgr.Start(ctx); err != nil {
		logger.Warn("Vocabulary watcher failed to start", zap.Error(err))
	}
	defer vocabMgr.Stop()

	hm := health.NewManager(logger)

	// Event-log sink selection; the collaborator is optional.
	sink, sinkCleanup, err := buildSink(config.EventLog, hm, logger)
	if err != nil {
		logger.Fatal("Failed to initialize event-log sink", zap.Error(err))
	}
	defer sinkCleanup()
	logger.Info("Event-log sink configured", zap.String("backend", sink.Name()))

	// Temporal client and worker.
	temporalClient, err := client.Dial(client.Options{
		HostPort:  config.Temporal.HostPort,
		Namespace: config.Temporal.Namespace,
	})
	if err != nil {
		logger.Fatal("Failed to connect to temporal", zap.Error(err))
	}
	defer temporalClient.Close()

	hm.RegisterChecker(health.NewTemporalChecker(func(ctx context.Context) error {
		_, err := temporalClient.CheckHealth(ctx, &client.CheckHealthRequest{})
		return err
	}, true))

	acts := activities.New(symptoms.NewExtractor(vocabMgr), sink, logger)
	w := worker.New(temporalClient, config.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(workflows.StrokeAssessmentWorkflow, workflow.RegisterOptions{Name: "StrokeAssessmentWorkflow"})
	w.RegisterActivityWithOptions(acts.AnalyzeSymptoms, activity.RegisterOptions{Name: activities.AnalyzeSymptomsActivity})
	w.RegisterActivityWithOptions(acts.PerformTriage, activity.RegisterOptions{Name: activities.PerformTriageActivity})
	w.RegisterActivityWithOptions(acts.DispatchAlert, activity.RegisterOptions{Name: activities.DispatchAlertActivity})
	w.RegisterActivityWithOptions(acts.ProvideCare, activity.RegisterOptions{Name: activities.ProvideCareActivity})
	w.RegisterActivityWithOptions(acts.RecordEvent, activity.RegisterOptions{Name: activities.RecordEventActivity})

	go func() {
		if err := w.Run(worker.InterruptCh()); err != nil {
			logger.Fatal("Worker exited", zap.Error(err))
		}
	}()

	// Admin HTTP server: health probes + prometheus metrics.
	adminMux := http.NewServeMux()
	health.NewHTTPHandler(hm, logger).RegisterRoutes(adminMux)
	adminMux.Handle("/metrics", promhttp.Handler())
	adminServer := newServer(config.Service.HealthPort, adminMux)
	go func() {
		logger.Info("Admin HTTP server listening", zap.Int("port", config.Service.HealthPort))
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Admin HTTP server failed", zap.Error(err))
		}
	}()

	// API server: assessments + status.
	runner := &temporalRunner{
		client:    temporalClient,
		taskQueue: config.Temporal.TaskQueue,
	}
	stats := httpapi.NewStatsTracker()
	limiter := rate.NewLimiter(rate.Limit(config.RateLimit.RequestsPerSecond), config.RateLimit.Burst)
	apiMux := http.NewServeMux()
	httpapi.NewAssessmentHandler(runner, stats, limiter, logger).RegisterRoutes(apiMux)
	httpapi.NewStatusHandler(stats, logger).RegisterRoutes(apiMux)
	apiServer := newServer(config.Service.Port, apiMux)
	go func() {
		logger.Info("API server listening", zap.Int("port", config.Service.Port))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("API server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	_ = apiServer.Shutdown(shutdownCtx)
	_ = adminServer.Shutdown(shutdownCtx)
	_ = shutdownTracing(shutdownCtx)
	w.Stop()
}

// temporalRunner adapts the temporal client to the httpapi runner interface.
type temporalRunner struct {
	client    client.Client
	taskQueue string
}

func (r *temporalRunner) Run(ctx context.Context, input workflows.AssessmentInput) (workflows.AssessmentResult, error) {
	ctx, span := tracing.StartAssessmentSpan(ctx, input.PatientID, input.InputType)
	defer span.End()

	we, err := r.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "stroke-" + uuid.NewString(),
		TaskQueue: r.taskQueue,
	}, "StrokeAssessmentWorkflow", input)
	if err != nil {
		return workflows.AssessmentResult{}, fmt.Errorf("start workflow: %w", err)
	}

	var result workflows.AssessmentResult
	if err := we.Get(ctx, &result); err != nil {
		return workflows.AssessmentResult{}, err
	}
	return result, nil
}

func buildSink(cfgEL cfg.EventLogConfig, hm *health.Manager, logger *zap.Logger) (eventlog.Sink, func(), error) {
	switch cfgEL.Backend {
	case "", "none":
		return eventlog.NopSink{}, func() {}, nil
	case "redis":
		opts, err := redis.ParseURL(cfgEL.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		hm.RegisterChecker(health.NewRedisChecker(rdb, false))
		return eventlog.NewRedisSink(rdb, logger), func() { _ = rdb.Close() }, nil
	case "postgres":
		dbClient, err := db.NewClient(&cfgEL.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		hm.RegisterChecker(health.NewDatabaseChecker(dbClient, false))
		return eventlog.NewPostgresSink(dbClient, logger), func() { _ = dbClient.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown event_log backend %q", cfgEL.Backend)
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func newServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
