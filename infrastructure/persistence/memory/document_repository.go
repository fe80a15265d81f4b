// Package memory keeps open documents in process memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"archibridge/application/workspace"
	apperrors "archibridge/pkg/errors"
)

var _ workspace.Repository = (*DocumentRepository)(nil)

// DocumentRepository is an in-memory workspace.Repository. With an idle TTL,
// documents without unsaved edits are closed once unused for that long.
type DocumentRepository struct {
	mu    sync.RWMutex
	items map[string]*entry
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type entry struct {
	doc      *workspace.Document
	lastUsed time.Time
}

// NewDocumentRepository creates a repository; idleTTL <= 0 keeps documents forever
func NewDocumentRepository(idleTTL time.Duration) *DocumentRepository {
	r := &DocumentRepository{
		items: make(map[string]*entry),
		ttl:   idleTTL,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if idleTTL > 0 {
		go r.cleanupLoop()
	}
	return r
}

// Save implements workspace.Repository
func (r *DocumentRepository) Save(ctx context.Context, doc *workspace.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[doc.ID()] = &entry{doc: doc, lastUsed: r.now()}
	return nil
}

// Get implements workspace.Repository
func (r *DocumentRepository) Get(ctx context.Context, modelID string) (*workspace.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[modelID]
	if !ok {
		return nil, apperrors.NewModelNotFoundError(modelID)
	}
	e.lastUsed = r.now()
	return e.doc, nil
}

// List implements workspace.Repository. Documents are ordered by model id.
func (r *DocumentRepository) List(ctx context.Context) ([]*workspace.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*workspace.Document, 0, len(r.items))
	for _, e := range r.items {
		docs = append(docs, e.doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID() < docs[j].ID() })
	return docs, nil
}

// Delete implements workspace.Repository
func (r *DocumentRepository) Delete(ctx context.Context, modelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[modelID]; !ok {
		return apperrors.NewModelNotFoundError(modelID)
	}
	delete(r.items, modelID)
	return nil
}

// Close stops the cleanup goroutine
func (r *DocumentRepository) Close() {
	r.once.Do(func() { close(r.stop) })
}

// EvictIdle closes clean documents idle for longer than the TTL and returns
// how many were closed
func (r *DocumentRepository) EvictIdle() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	evicted := 0
	for id, e := range r.items {
		if e.lastUsed.After(cutoff) || e.doc.Stack.IsDirty() {
			continue
		}
		delete(r.items, id)
		evicted++
	}
	return evicted
}

func (r *DocumentRepository) cleanupLoop() {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.EvictIdle()
		case <-r.stop:
			return
		}
	}
}
