package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"supplychain-insights/internal/common/analytics"
	awsclient "supplychain-insights/internal/common/aws"
	"supplychain-insights/internal/common/config"
	"supplychain-insights/internal/common/database"
	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/llm"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/observability"
	"supplychain-insights/internal/common/predictor"
	"supplychain-insights/internal/common/sentiment"
	"supplychain-insights/internal/models"
	answerquestion "supplychain-insights/internal/workers/ai-conversation/answer-question"
	formatinsights "supplychain-insights/internal/workers/ai-conversation/format-insights"
	courierperformance "supplychain-insights/internal/workers/analytics/courier-performance"
	"supplychain-insights/internal/workers/analytics/dashboard"
	demandforecast "supplychain-insights/internal/workers/analytics/demand-forecast"
	"supplychain-insights/internal/workers/analytics/dispatch"
	inventoryplanning "supplychain-insights/internal/workers/analytics/inventory-planning"
	reviewsentiment "supplychain-insights/internal/workers/analytics/review-sentiment"
	warehouseefficiency "supplychain-insights/internal/workers/analytics/warehouse-efficiency"
	sendalert "supplychain-insights/internal/workers/communication/send-alert"
	queryelasticsearch "supplychain-insights/internal/workers/data-access/query-elasticsearch"
	querypostgresql "supplychain-insights/internal/workers/data-access/query-postgresql"
	buildresponse "supplychain-insights/internal/workers/infrastructure/build-response"
	classifyintent "supplychain-insights/internal/workers/query-understanding/classify-intent"
	"supplychain-insights/pkg/registry"
)

// app holds everything built from config, shared by serve and ask.
type app struct {
	cfg          *config.Config
	zap          *zap.Logger
	log          logger.Logger
	obs          *observability.Observability
	clients      *database.Clients
	predictors   *predictor.Registry
	generator    llm.Generator
	capabilities *registry.CapabilityRegistry
	answerer     *answerquestion.Handler
	dashboard    *dashboard.Service
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog)
	a := &app{cfg: cfg, zap: zapLog, log: log, capabilities: registry.DefaultRegistry()}
	if capabilitiesFile != "" {
		caps, err := registry.LoadRegistry(capabilitiesFile)
		if err != nil {
			_ = zapLog.Sync()
			return nil, err
		}
		a.capabilities = caps
	}

	tracing := observability.NewNoopTracing()
	if cfg.Tracing.Enabled {
		t, err := observability.NewTracing(observability.TracingConfig{
			ServiceName:    cfg.Tracing.ServiceName,
			JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
			SampleRatio:    cfg.Tracing.SampleRatio,
		})
		if err != nil {
			log.Warn("tracing disabled", map[string]interface{}{"error": err.Error()})
		} else {
			tracing = t
		}
	}
	a.obs = observability.New(cfg.App.Name, observability.WithTracing(tracing))

	clients, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.clients = clients

	catalog, err := dataset.FromConfig(cfg.Analytics, a.sources())
	if err != nil {
		a.close()
		return nil, err
	}

	a.predictors = predictor.NewRegistry(predictor.FileLoader{Dir: cfg.Analytics.ModelsDir}, log)
	loaded := a.predictors.Warm(ctx, a.capabilities.Models()...)
	log.Info("predictors loaded", map[string]interface{}{"count": loaded, "models": a.predictors.Loaded()})

	gen, err := llm.NewGenerator(ctx, cfg.AI, log)
	switch {
	case err != nil:
		log.Warn("generative service unavailable, running keyword-only", map[string]interface{}{"error": err.Error()})
	case gen != nil:
		a.generator = gen
		log.Info("generative service ready", map[string]interface{}{"provider": gen.Name(), "model": gen.Model()})
	}

	alerts, err := a.alerts(ctx)
	if err != nil {
		log.Warn("alerts disabled", map[string]interface{}{"error": err.Error()})
	}

	a.answerer = answerquestion.NewHandler(
		answerquestion.LoadConfig(config.GetWorkerConfig(cfg, answerquestion.TaskType)),
		answerquestion.Dependencies{
			Resolver:      a.resolver(),
			Dispatcher:    a.dispatcher(catalog),
			Formatter:     a.formatter(),
			Builder:       buildresponse.NewBuilder(buildresponse.LoadConfig(), log),
			Alerts:        alerts,
			Observability: a.obs,
			Logger:        log,
		},
	)
	a.dashboard = dashboard.NewService(catalog, sentiment.NewLexiconScorer(), log)
	return a, nil
}

func (a *app) sources() map[string]dataset.Source {
	sources := map[string]dataset.Source{
		config.DatasetKindCSV: dataset.CSVSource{Dir: a.cfg.Analytics.DataDir},
	}
	if a.clients.Postgres != nil {
		sources[config.DatasetKindPostgres] = querypostgresql.NewHandler(querypostgresql.LoadConfig(), a.clients.Postgres.DB, a.log)
	}
	if a.clients.Elasticsearch != nil {
		sources[config.DatasetKindElasticsearch] = queryelasticsearch.NewHandler(queryelasticsearch.LoadConfig(), a.clients.Elasticsearch.Client, a.log)
	}
	return sources
}

func (a *app) resolver() *classifyintent.Resolver {
	if a.generator == nil {
		return classifyintent.NewResolver(nil, a.log)
	}
	ai := classifyintent.NewAIClassifier(classifyintent.LoadConfig(a.cfg.AI), a.generator, a.log)
	return classifyintent.NewResolver(ai, a.log)
}

func (a *app) dispatcher(data analytics.DataLoader) *dispatch.Dispatcher {
	return dispatch.New(a.capabilities, a.log,
		dispatch.Route{
			Intent:     models.IntentForecast,
			Analyzer:   demandforecast.NewHandler(demandforecast.LoadConfig(), a.predictors, data, a.log),
			ErrorTitle: "Forecast Error",
		},
		dispatch.Route{
			Intent:     models.IntentInventory,
			Analyzer:   inventoryplanning.NewHandler(inventoryplanning.LoadConfig(), a.predictors, data, a.log),
			ErrorTitle: "Inventory Analysis Error",
		},
		dispatch.Route{
			Intent:     models.IntentShipping,
			Analyzer:   courierperformance.NewHandler(courierperformance.LoadConfig(), a.predictors, data, a.log),
			ErrorTitle: "Shipping Analysis Error",
		},
		dispatch.Route{
			Intent:     models.IntentSentiment,
			Analyzer:   reviewsentiment.NewHandler(reviewsentiment.LoadConfig(), nil, data, a.log),
			ErrorTitle: "Sentiment Analysis Error",
		},
		dispatch.Route{
			Intent:     models.IntentWarehouse,
			Analyzer:   warehouseefficiency.NewHandler(warehouseefficiency.LoadConfig(), a.predictors, data, a.log),
			ErrorTitle: "Warehouse Analysis Error",
		},
	)
}

func (a *app) formatter() *formatinsights.Formatter {
	f := formatinsights.NewFormatter(formatinsights.LoadConfig(a.cfg.AI), a.generator, a.log)
	if a.clients.Redis != nil {
		f = f.WithCache(a.clients.Redis)
	}
	return f
}

// alerts returns nil when alerting is disabled or cannot be configured.
func (a *app) alerts(ctx context.Context) (*sendalert.Service, error) {
	cfg := sendalert.LoadConfig(a.cfg.Alerts)
	if !cfg.Enabled {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := awsclient.LoadConfig(ctx, a.cfg.Alerts.Region)
	if err != nil {
		return nil, err
	}
	deps := sendalert.ServiceDependencies{Logger: a.log}
	if cfg.TopicARN != "" {
		deps.Publisher = awsclient.NewSNSClient(awsCfg)
	}
	if cfg.EmailEnabled {
		deps.Mailer = awsclient.NewSESClient(awsCfg)
	}
	return sendalert.NewService(deps, cfg), nil
}

func (a *app) close() {
	var errs []error
	if a.clients != nil {
		errs = append(errs, a.clients.Close())
	}
	if a.obs != nil {
		a.obs.Shutdown()
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Warn("shutdown", map[string]interface{}{"error": err.Error()})
	}
	_ = a.zap.Sync()
}
