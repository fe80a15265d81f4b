package handlers

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/edits"
	"archibridge/application/ports"
	"archibridge/application/workspace"
	"archibridge/domain/config"
	"archibridge/domain/core/aggregates"
	apperrors "archibridge/pkg/errors"
)

// CreateModelHandler opens new empty models
type CreateModelHandler struct {
	repo    workspace.Repository
	docOpts workspace.Options
	cfg     *config.DomainConfig
	logger  *zap.Logger
}

// NewCreateModelHandler creates a new create model handler
func NewCreateModelHandler(repo workspace.Repository, docOpts workspace.Options, cfg *config.DomainConfig, logger *zap.Logger) *CreateModelHandler {
	return &CreateModelHandler{repo: repo, docOpts: docOpts, cfg: cfg, logger: logger}
}

// Handle executes the create model command
func (h *CreateModelHandler) Handle(ctx context.Context, cmd *commands.CreateModelCommand) error {
	model := aggregates.NewDefaultModel(h.cfg)
	if cmd.Name != "" {
		model.SetName(cmd.Name)
	}
	model.MarkEventsAsCommitted()

	if err := h.repo.Save(ctx, workspace.NewDocument(model, h.docOpts)); err != nil {
		return err
	}
	cmd.ModelID = model.ID()

	h.logger.Info("Model created", zap.String("model_id", model.ID()), zap.String("name", model.Name()))
	return nil
}

// OpenModelHandler loads archive files into the workspace
type OpenModelHandler struct {
	repo    workspace.Repository
	loader  ports.ModelLoader
	docOpts workspace.Options
	logger  *zap.Logger
}

// NewOpenModelHandler creates a new open model handler
func NewOpenModelHandler(repo workspace.Repository, loader ports.ModelLoader, docOpts workspace.Options, logger *zap.Logger) *OpenModelHandler {
	return &OpenModelHandler{repo: repo, loader: loader, docOpts: docOpts, logger: logger}
}

// Handle executes the open model command
func (h *OpenModelHandler) Handle(ctx context.Context, cmd *commands.OpenModelCommand) error {
	model, err := h.loader.Load(ctx, cmd.Path)
	if err != nil {
		return err
	}
	model.SetFile(cmd.Path)

	// an open document is never replaced; its edits and history stay
	if open, err := h.repo.Get(ctx, model.ID()); err == nil {
		dirty := false
		_ = open.Do(func(d *workspace.Document) error {
			dirty = d.Stack.IsDirty()
			return nil
		})
		if dirty {
			return apperrors.NewModelAlreadyOpenError(model.ID(), cmd.Path)
		}
		cmd.ModelID = open.ID()
		h.logger.Info("Model already open", zap.String("model_id", open.ID()), zap.String("path", cmd.Path))
		return nil
	}

	doc := workspace.NewDocument(model, h.docOpts)
	if h.loader.IsArchiveFile(cmd.Path) {
		if err := doc.Images.ConvertImagesFromLegacyArchive(cmd.Path); err != nil {
			return err
		}
	}
	// loading is not an edit
	model.MarkEventsAsCommitted()

	if err := h.repo.Save(ctx, doc); err != nil {
		return err
	}
	cmd.ModelID = model.ID()

	h.logger.Info("Model opened",
		zap.String("model_id", model.ID()),
		zap.String("path", cmd.Path),
		zap.Int("concepts", len(model.Concepts())),
	)
	return nil
}

// SaveModelHandler writes models to their archive files
type SaveModelHandler struct {
	repo      workspace.Repository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewSaveModelHandler creates a new save model handler
func NewSaveModelHandler(repo workspace.Repository, publisher ports.EventPublisher, logger *zap.Logger) *SaveModelHandler {
	return &SaveModelHandler{repo: repo, publisher: publisher, logger: logger}
}

// Handle executes the save model command
func (h *SaveModelHandler) Handle(ctx context.Context, cmd *commands.SaveModelCommand) error {
	return withDocument(ctx, h.repo, cmd.ModelID, func(doc *workspace.Document) error {
		if cmd.Path == "" && doc.Model.File() == "" {
			return apperrors.NewDomainError(apperrors.DomainValidationError, "NO_FILE",
				"model has no file; a path is required")
		}
		if err := doc.Save(ctx, cmd.Path); err != nil {
			return err
		}
		cmd.SavedTo = doc.Model.File()
		publishEvents(ctx, h.publisher, doc.Model, h.logger)
		return nil
	})
}

// UndoRedoHandler walks the edit history of a model
type UndoRedoHandler struct {
	repo      workspace.Repository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUndoRedoHandler creates a new undo/redo handler
func NewUndoRedoHandler(repo workspace.Repository, publisher ports.EventPublisher, logger *zap.Logger) *UndoRedoHandler {
	return &UndoRedoHandler{repo: repo, publisher: publisher, logger: logger}
}

// HandleUndo executes the undo command
func (h *UndoRedoHandler) HandleUndo(ctx context.Context, cmd *commands.UndoCommand) error {
	return withDocument(ctx, h.repo, cmd.ModelID, func(doc *workspace.Document) error {
		e, err := doc.Stack.Undo()
		if errors.Is(err, edits.ErrNothingToUndo) {
			return apperrors.NewNothingToUndoError("undo")
		}
		if err != nil {
			return apperrors.Wrap(err, "undo failed")
		}
		cmd.Label = e.Label()
		publishEvents(ctx, h.publisher, doc.Model, h.logger)
		return nil
	})
}

// HandleRedo executes the redo command
func (h *UndoRedoHandler) HandleRedo(ctx context.Context, cmd *commands.RedoCommand) error {
	return withDocument(ctx, h.repo, cmd.ModelID, func(doc *workspace.Document) error {
		e, err := doc.Stack.Redo()
		if errors.Is(err, edits.ErrNothingToRedo) {
			return apperrors.NewNothingToUndoError("redo")
		}
		if err != nil {
			return apperrors.Wrap(err, "redo failed")
		}
		cmd.Label = e.Label()
		publishEvents(ctx, h.publisher, doc.Model, h.logger)
		return nil
	})
}
