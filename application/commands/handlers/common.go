package handlers

import (
	"context"

	"go.uber.org/zap"

	"archibridge/application/ports"
	"archibridge/application/workspace"
	"archibridge/domain/core/aggregates"
)

// withDocument loads a document and runs fn while holding its lock
func withDocument(ctx context.Context, repo workspace.Repository, modelID string, fn func(*workspace.Document) error) error {
	doc, err := repo.Get(ctx, modelID)
	if err != nil {
		return err
	}
	return doc.Do(fn)
}

// publishEvents hands the model's pending events to the publisher. A publish
// failure is logged and the events stay pending for the next attempt.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, model *aggregates.Model, logger *zap.Logger) {
	pending := model.GetUncommittedEvents()
	if len(pending) == 0 || publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, pending...); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("model_id", model.ID()),
			zap.Int("events", len(pending)),
			zap.Error(err),
		)
		return
	}
	model.MarkEventsAsCommitted()
}
