package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/exporter"
	"archibridge/application/importer"
	"archibridge/application/ports"
	"archibridge/application/workspace"
	"archibridge/domain/config"
	"archibridge/domain/events"
	"archibridge/infrastructure/csvfile"
	apperrors "archibridge/pkg/errors"
)

// ImportCSVHandler merges CSV sets into open models
type ImportCSVHandler struct {
	repo      workspace.Repository
	publisher ports.EventPublisher
	defaults  exporter.Options
	cfg       *config.DomainConfig
	logger    *zap.Logger
}

// NewImportCSVHandler creates a new import handler. defaults supplies the
// delimiter and encoding when a command leaves them empty.
func NewImportCSVHandler(
	repo workspace.Repository,
	publisher ports.EventPublisher,
	defaults exporter.Options,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *ImportCSVHandler {
	return &ImportCSVHandler{repo: repo, publisher: publisher, defaults: defaults, cfg: cfg, logger: logger}
}

// Handle executes the import command
func (h *ImportCSVHandler) Handle(ctx context.Context, cmd *commands.ImportCSVCommand) error {
	delimiter, err := csvfile.ParseDelimiter(firstNonEmpty(cmd.Delimiter, h.defaults.Delimiter))
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	enc, err := csvfile.ParseEncoding(firstNonEmpty(cmd.Encoding, h.defaults.Encoding))
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return withDocument(ctx, h.repo, cmd.ModelID, func(doc *workspace.Document) error {
		imp := importer.New(doc.Model,
			importer.WithLogger(h.logger),
			importer.WithDelimiter(delimiter),
			importer.WithEncoding(enc),
			importer.WithDomainConfig(h.cfg),
		)
		plan, err := imp.Import(ctx, cmd.Path, doc.Stack)
		if err != nil {
			return err
		}

		created, updated, props := plan.Counts()
		cmd.Result = commands.ImportResult{
			Changed:         !plan.IsEmpty(),
			NewConcepts:     created,
			UpdatedConcepts: updated,
			NewProperties:   props,
		}
		if cmd.Result.Changed {
			doc.Model.RecordEvent(events.NewModelImported(doc.Model.ID(), cmd.Path, created, updated, props, time.Now()))
		}
		publishEvents(ctx, h.publisher, doc.Model, h.logger)
		return nil
	})
}

// ExportCSVHandler writes open models as CSV sets
type ExportCSVHandler struct {
	repo     workspace.Repository
	defaults exporter.Options
	logger   *zap.Logger
}

// NewExportCSVHandler creates a new export handler
func NewExportCSVHandler(repo workspace.Repository, defaults exporter.Options, logger *zap.Logger) *ExportCSVHandler {
	return &ExportCSVHandler{repo: repo, defaults: defaults, logger: logger}
}

// Handle executes the export command
func (h *ExportCSVHandler) Handle(ctx context.Context, cmd *commands.ExportCSVCommand) error {
	opts := h.defaults
	if cmd.Prefix != nil {
		opts.Prefix = *cmd.Prefix
	}
	opts.Delimiter = firstNonEmpty(cmd.Delimiter, opts.Delimiter)
	opts.Encoding = firstNonEmpty(cmd.Encoding, opts.Encoding)
	if cmd.WriteHeader != nil {
		opts.WriteHeader = *cmd.WriteHeader
	}
	if cmd.StripNewLines != nil {
		opts.StripNewLines = *cmd.StripNewLines
	}
	if cmd.UseLeadingCharsHack != nil {
		opts.UseLeadingCharsHack = *cmd.UseLeadingCharsHack
	}

	return withDocument(ctx, h.repo, cmd.ModelID, func(doc *workspace.Document) error {
		files, err := exporter.New(doc.Model, h.logger).Export(ctx, cmd.Directory, opts)
		if err != nil {
			return err
		}
		cmd.Files = files
		return nil
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
