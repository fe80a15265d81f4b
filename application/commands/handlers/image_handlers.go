package handlers

import (
	"context"

	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/edits"
	"archibridge/application/ports"
	"archibridge/application/workspace"
)

// ImageEditLabel names image additions in the undo history
const ImageEditLabel = "Add Image"

// AddImageHandler stores image files in open models
type AddImageHandler struct {
	repo      workspace.Repository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAddImageHandler creates a new add image handler
func NewAddImageHandler(repo workspace.Repository, publisher ports.EventPublisher, logger *zap.Logger) *AddImageHandler {
	return &AddImageHandler{repo: repo, publisher: publisher, logger: logger}
}

// Handle executes the add image command
func (h *AddImageHandler) Handle(ctx context.Context, cmd *commands.AddImageCommand) error {
	return withDocument(ctx, h.repo, cmd.ModelID, func(doc *workspace.Document) error {
		features := doc.Model.Features()
		stored := features.Len()
		key, err := doc.Images.AddImageFromFile(cmd.Path)
		if err != nil {
			return err
		}
		cmd.Key = key

		// a new image is an edit: it marks the model dirty and can be undone
		if features.Len() > stored {
			all := features.All()
			if err := doc.Stack.Execute(edits.NewAddFeature(ImageEditLabel, features, all[len(all)-1])); err != nil {
				return err
			}
		}
		publishEvents(ctx, h.publisher, doc.Model, h.logger)
		return nil
	})
}
