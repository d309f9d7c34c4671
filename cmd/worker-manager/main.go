// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/database"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/observability"
	"admission-workers/pkg/registry"

	// Analysis Workers (5)
	ap "admission-workers/internal/workers/analysis/analyze-profile"
	car "admission-workers/internal/workers/analysis/create-analysis-record"
	ea "admission-workers/internal/workers/analysis/enrich-analysis"
	fa "admission-workers/internal/workers/analysis/fetch-analysis"
	vp "admission-workers/internal/workers/analysis/validate-profile"

	// College Workers (3)
	cc "admission-workers/internal/workers/college/categorize-colleges"
	pcl "admission-workers/internal/workers/college/parse-college-list"
	sc "admission-workers/internal/workers/college/search-colleges"

	// Report Workers (2)
	cr "admission-workers/internal/workers/communication/compose-report"
	sr "admission-workers/internal/workers/communication/send-report"
)

// managedTaskTypes lists every task type this manager can register, in
// pipeline order.
var managedTaskTypes = []string{
	vp.TaskType,
	ap.TaskType,
	ea.TaskType,
	car.TaskType,
	fa.TaskType,
	pcl.TaskType,
	sc.TaskType,
	cc.TaskType,
	cr.TaskType,
	sr.TaskType,
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Activity Registry Check ---
	// Deployment metadata only. A stale or missing registry never blocks
	// startup, it just warns so the drift gets fixed.
	if cfg.App.RegistryPath != "" {
		reg, err := registry.LoadRegistry(cfg.App.RegistryPath)
		if err != nil {
			zapLog.Warn("activity registry not loaded",
				zap.String("path", cfg.App.RegistryPath),
				zap.Error(err),
			)
		} else if err := reg.Validate(); err != nil {
			zapLog.Warn("activity registry invalid", zap.Error(err))
		} else {
			for _, taskType := range managedTaskTypes {
				if reg.FindByTaskType(taskType) == nil {
					zapLog.Warn("task type missing from activity registry", zap.String("taskType", taskType))
				}
			}
			zapLog.Info("Activity registry validated", zap.Int("activities", len(reg.Activities)))
		}
	}

	// --- START: Register ALL 10 Workers ---

	// --- 1. Analysis Workers (5) ---
	if cfg.Workers[vp.TaskType].Enabled {
		handler := vp.NewHandler(
			&vp.Config{
				Timeout: time.Duration(cfg.Workers[vp.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, vp.TaskType, cfg.Workers[vp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ap.TaskType].Enabled {
		handler, err := ap.NewHandler(ap.HandlerOptions{
			AppConfig: cfg,
			Camunda:   nil,
			Redis:     redis.Client,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create analyze-profile handler", zap.Error(err))
		}
		startWorker(zeebeClient, ap.TaskType, cfg.Workers[ap.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ea.TaskType].Enabled {
		eaCfg := &ea.Config{
			GenAIBaseURL:    cfg.APIs.GenAI.BaseURL,
			GenAIAPIKey:     cfg.APIs.GenAI.APIKey,
			AnthropicAPIKey: cfg.APIs.Anthropic.APIKey,
			Model:           cfg.APIs.Anthropic.Model,
			MaxTokens:       cfg.APIs.Anthropic.MaxTokens,
			Timeout:         time.Duration(cfg.Workers[ea.TaskType].Timeout) * time.Millisecond,
			MaxRetries:      2,
		}
		// Prefer Anthropic when both backends are configured. An empty
		// provider serves the deterministic result directly.
		switch {
		case cfg.APIs.Anthropic.APIKey != "":
			eaCfg.Provider = "anthropic"
		case cfg.APIs.GenAI.BaseURL != "":
			eaCfg.Provider = "genai"
		}
		handler := ea.NewHandler(eaCfg, log)
		startWorker(zeebeClient, ea.TaskType, cfg.Workers[ea.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[car.TaskType].Enabled {
		handler := car.NewHandler(
			&car.Config{
				Timeout: time.Duration(cfg.Workers[car.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, car.TaskType, cfg.Workers[car.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[fa.TaskType].Enabled {
		handler := fa.NewHandler(
			&fa.Config{
				CacheTTL: time.Duration(cfg.Analysis.CacheTTLMinutes) * time.Minute,
				Timeout:  time.Duration(cfg.Workers[fa.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, fa.TaskType, cfg.Workers[fa.TaskType], handler.Handle, zapLog)
	}

	// --- 2. College Workers (3) ---
	if cfg.Workers[pcl.TaskType].Enabled {
		handler := pcl.NewHandler(
			&pcl.Config{
				Timeout: time.Duration(cfg.Workers[pcl.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, pcl.TaskType, cfg.Workers[pcl.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sc.TaskType].Enabled {
		handler := sc.NewHandler(
			&sc.Config{
				IndexName:  cfg.Database.Elasticsearch.Index,
				MaxResults: 10,
				Timeout:    time.Duration(cfg.Workers[sc.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, sc.TaskType, cfg.Workers[sc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cc.TaskType].Enabled {
		handler := cc.NewHandler(
			&cc.Config{
				Timeout: time.Duration(cfg.Workers[cc.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, cc.TaskType, cfg.Workers[cc.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Report Workers (2) ---
	if cfg.Workers[cr.TaskType].Enabled {
		handler := cr.NewHandler(
			&cr.Config{
				SubjectPrefix: cfg.Reports.SubjectPrefix,
				Timeout:       time.Duration(cfg.Workers[cr.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, cr.TaskType, cfg.Workers[cr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sr.TaskType].Enabled {
		srCfg := &sr.Config{
			EmailEnabled: cfg.Notifications.Email.Enabled,
			SMSEnabled:   cfg.Notifications.SMS.Enabled,
			Provider:     sr.ProviderSES,
			FromEmail:    cfg.Notifications.Email.FromEmail,
			AWSRegion:    cfg.Notifications.AWS.Region,
			SMTPHost:     cfg.Integrations.SMTP.Host,
			SMTPPort:     cfg.Integrations.SMTP.Port,
			SMTPUsername: cfg.Integrations.SMTP.Username,
			SMTPPassword: cfg.Integrations.SMTP.Password,
			SMTPUseTLS:   cfg.Integrations.SMTP.UseTLS,
			Timeout:      time.Duration(cfg.Workers[sr.TaskType].Timeout) * time.Millisecond,
		}
		if srCfg.AWSRegion == "" {
			srCfg.AWSRegion = cfg.Integrations.AWS.Region
		}
		if srCfg.FromEmail == "" {
			srCfg.FromEmail = cfg.Integrations.AWS.SES.FromEmail
		}
		if !cfg.Integrations.AWS.SES.Enabled && cfg.Integrations.SMTP.Host != "" {
			srCfg.Provider = sr.ProviderSMTP
		}
		handler, err := sr.NewHandler(srCfg, log)
		if err != nil {
			zapLog.Fatal("failed to create send-report handler", zap.Error(err))
		}
		startWorker(zeebeClient, sr.TaskType, cfg.Workers[sr.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 10 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
