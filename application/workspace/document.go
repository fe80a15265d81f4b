// Package workspace holds the open models: each Document pairs a model with
// its edit history and image store.
package workspace

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"archibridge/application/archive"
	"archibridge/application/edits"
	"archibridge/application/ports"
	"archibridge/domain/config"
	"archibridge/domain/core/aggregates"
	"archibridge/domain/events"
)

// Document is an open model. Callers hold the lock for the whole of any
// operation that reads or changes it.
type Document struct {
	mu sync.Mutex

	Model  *aggregates.Model
	Stack  *edits.Stack
	Images *archive.Manager
}

// Options configures new documents
type Options struct {
	UndoLimit int
	Domain    *config.DomainConfig
	Persister ports.ModelPersister
	Logger    *zap.Logger
}

// NewDocument wraps model. Undo and redo are recorded on the model as events.
func NewDocument(model *aggregates.Model, opts Options) *Document {
	d := &Document{
		Model:  model,
		Stack:  edits.NewStack(opts.UndoLimit),
		Images: archive.NewManager(model, opts.Persister, opts.Domain, opts.Logger),
	}
	d.Stack.AddListener(func(e edits.StackEvent) {
		switch e.Type {
		case edits.StackUndone:
			model.RecordEvent(events.NewEditReverted(model.ID(), e.Label, time.Now()))
		case edits.StackRedone:
			model.RecordEvent(events.NewEditReapplied(model.ID(), e.Label, time.Now()))
		}
	})
	return d
}

// ID returns the model id
func (d *Document) ID() string {
	return d.Model.ID()
}

// Lock acquires the document
func (d *Document) Lock() { d.mu.Lock() }

// Unlock releases the document
func (d *Document) Unlock() { d.mu.Unlock() }

// Do runs fn with the document locked
func (d *Document) Do(fn func(*Document) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d)
}

// Save writes the model to path, or to its current file when path is empty.
// A successful save marks the edit history clean; a failed one leaves the
// model bound to its previous file.
func (d *Document) Save(ctx context.Context, path string) error {
	previous := d.Model.File()
	if path != "" {
		d.Model.SetFile(path)
	}
	if err := d.Images.SaveModel(ctx); err != nil {
		d.Model.SetFile(previous)
		return err
	}
	if d.Model.File() != "" {
		d.Stack.MarkSaveLocation()
	}
	return nil
}

// Repository keeps the open documents
type Repository interface {
	// Save stores doc under its model id
	Save(ctx context.Context, doc *Document) error

	// Get returns the document for modelID
	Get(ctx context.Context, modelID string) (*Document, error)

	// List returns every open document
	List(ctx context.Context) ([]*Document, error)

	// Delete closes the document for modelID
	Delete(ctx context.Context, modelID string) error
}
