package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/commands/bus"
	commands_handlers "archibridge/application/commands/handlers"
	"archibridge/application/exporter"
	"archibridge/application/queries"
	querybus "archibridge/application/queries/bus"
	queries_handlers "archibridge/application/queries/handlers"
	"archibridge/application/workspace"
	domainconfig "archibridge/domain/config"
	"archibridge/infrastructure/config"
	"archibridge/infrastructure/messaging/logbus"
	"archibridge/infrastructure/persistence/archivefile"
	"archibridge/infrastructure/persistence/memory"
	"archibridge/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideDomainConfig derives the domain rules from the application config
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return cfg.Domain()
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.Metrics.Namespace)
}

// ProvideEventPublisher creates the in-process event publisher. Model
// counters are fed from published events.
func ProvideEventPublisher(cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) *logbus.Publisher {
	publisher := logbus.NewPublisher(logger)
	if cfg.Metrics.Enabled {
		publisher.Subscribe(logbus.AllEvents, metrics.Observe)
	}
	return publisher
}

// ProvideArchiveStore creates the archive file store
func ProvideArchiveStore(logger *zap.Logger) *archivefile.Store {
	return archivefile.NewStore(logger)
}

// ProvideDocumentRepository creates the open-model workspace
func ProvideDocumentRepository(cfg *config.Config) (*memory.DocumentRepository, func()) {
	repo := memory.NewDocumentRepository(cfg.Workspace.IdleTTL)
	return repo, repo.Close
}

// ProvideDocumentOptions configures new documents
func ProvideDocumentOptions(cfg *config.Config, domain *domainconfig.DomainConfig, store *archivefile.Store, logger *zap.Logger) workspace.Options {
	return workspace.Options{
		UndoLimit: cfg.Workspace.UndoLimit,
		Domain:    domain,
		Persister: store,
		Logger:    logger,
	}
}

// ProvideExportDefaults returns the configured CSV options
func ProvideExportDefaults(cfg *config.Config) exporter.Options {
	return exporter.Options{
		Prefix:              cfg.CSV.Prefix,
		Delimiter:           cfg.CSV.Delimiter,
		Encoding:            cfg.CSV.Encoding,
		WriteHeader:         cfg.CSV.WriteHeader,
		StripNewLines:       cfg.CSV.StripNewLines,
		UseLeadingCharsHack: cfg.CSV.UseLeadingCharsHack,
	}
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// adaptCommand builds an adapter for handlers of the pointer command type C
func adaptCommand[C bus.Command](handle func(context.Context, C) error) *CommandHandlerAdapter {
	return &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			typed, ok := cmd.(C)
			if !ok {
				return fmt.Errorf("invalid command type %T", cmd)
			}
			return handle(ctx, typed)
		},
	}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	repo workspace.Repository,
	store *archivefile.Store,
	publisher *logbus.Publisher,
	docOpts workspace.Options,
	defaults exporter.Options,
	domain *domainconfig.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(&zapLoggerAdapter{logger}),
		bus.MetricsMiddleware(metrics),
	)

	createHandler := commands_handlers.NewCreateModelHandler(repo, docOpts, domain, logger)
	openHandler := commands_handlers.NewOpenModelHandler(repo, store, docOpts, logger)
	saveHandler := commands_handlers.NewSaveModelHandler(repo, publisher, logger)
	undoRedoHandler := commands_handlers.NewUndoRedoHandler(repo, publisher, logger)
	importHandler := commands_handlers.NewImportCSVHandler(repo, publisher, defaults, domain, logger)
	exportHandler := commands_handlers.NewExportCSVHandler(repo, defaults, logger)
	imageHandler := commands_handlers.NewAddImageHandler(repo, publisher, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{&commands.CreateModelCommand{}, adaptCommand(createHandler.Handle)},
		{&commands.OpenModelCommand{}, adaptCommand(openHandler.Handle)},
		{&commands.SaveModelCommand{}, adaptCommand(saveHandler.Handle)},
		{&commands.UndoCommand{}, adaptCommand(undoRedoHandler.HandleUndo)},
		{&commands.RedoCommand{}, adaptCommand(undoRedoHandler.HandleRedo)},
		{&commands.ImportCSVCommand{}, adaptCommand(importHandler.Handle)},
		{&commands.ExportCSVCommand{}, adaptCommand(exportHandler.Handle)},
		{&commands.AddImageCommand{}, adaptCommand(imageHandler.Handle)},
	}
	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// adaptQuery builds an adapter for handlers of the value query type Q
func adaptQuery[Q querybus.Query, R any](handle func(context.Context, Q) (R, error)) *QueryHandlerAdapter {
	return &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			typed, ok := query.(Q)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", query)
			}
			return handle(ctx, typed)
		},
	}
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(repo workspace.Repository, metrics *observability.Collector, logger *zap.Logger) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus().WithMetrics(metrics)

	modelHandler := queries_handlers.NewModelQueryHandler(repo, logger)
	imageHandler := queries_handlers.NewImageQueryHandler(repo, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetModelQuery{}, adaptQuery(modelHandler.HandleGetModel)},
		{queries.ListModelsQuery{}, adaptQuery(modelHandler.HandleListModels)},
		{queries.ListImagesQuery{}, adaptQuery(imageHandler.HandleListImages)},
		{queries.GetImageQuery{}, adaptQuery(imageHandler.HandleGetImage)},
	}
	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// zapLoggerAdapter adapts zap.Logger to the bus.Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}
