package ports

import (
	"context"

	"archibridge/domain/core/aggregates"
	"archibridge/domain/events"
)

// ModelPersister writes a model to an archive file
// This is a port in hexagonal architecture - the domain doesn't know about the file format
type ModelPersister interface {
	// Save writes model to path, replacing any existing file
	Save(ctx context.Context, model *aggregates.Model, path string) error
}

// ModelLoader reads a model from an archive file
type ModelLoader interface {
	// Load reads the archive at path. Legacy zip archives are accepted.
	Load(ctx context.Context, path string) (*aggregates.Model, error)

	// IsArchiveFile reports whether path is a legacy zip archive
	IsArchiveFile(path string) bool
}

// ModelStore is the full archive file port
type ModelStore interface {
	ModelPersister
	ModelLoader
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes domain events in order
	Publish(ctx context.Context, events ...events.DomainEvent) error
}
