package handlers

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"archibridge/application/queries"
	"archibridge/application/workspace"
)

// ModelQueryHandler answers model summary queries
type ModelQueryHandler struct {
	repo   workspace.Repository
	logger *zap.Logger
}

// NewModelQueryHandler creates a new model query handler
func NewModelQueryHandler(repo workspace.Repository, logger *zap.Logger) *ModelQueryHandler {
	return &ModelQueryHandler{repo: repo, logger: logger}
}

// HandleGetModel executes the get model query
func (h *ModelQueryHandler) HandleGetModel(ctx context.Context, query queries.GetModelQuery) (*queries.ModelSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	doc, err := h.repo.Get(ctx, query.ModelID)
	if err != nil {
		return nil, err
	}

	var summary queries.ModelSummary
	_ = doc.Do(func(d *workspace.Document) error {
		summary = summarize(d)
		return nil
	})
	return &summary, nil
}

// HandleListModels executes the list models query
func (h *ModelQueryHandler) HandleListModels(ctx context.Context, _ queries.ListModelsQuery) (*queries.ListModelsResult, error) {
	docs, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	result := &queries.ListModelsResult{Models: make([]queries.ModelSummary, 0, len(docs))}
	for _, doc := range docs {
		_ = doc.Do(func(d *workspace.Document) error {
			result.Models = append(result.Models, summarize(d))
			return nil
		})
	}
	sort.Slice(result.Models, func(i, j int) bool {
		if result.Models[i].Name != result.Models[j].Name {
			return result.Models[i].Name < result.Models[j].Name
		}
		return result.Models[i].ID < result.Models[j].ID
	})

	h.logger.Debug("Listed models", zap.Int("count", len(result.Models)))
	return result, nil
}

// summarize reads the document; the caller holds its lock
func summarize(d *workspace.Document) queries.ModelSummary {
	m := d.Model
	s := queries.ModelSummary{
		ID:        m.ID(),
		Name:      m.Name(),
		Purpose:   m.Purpose(),
		Version:   m.Version(),
		File:      m.File(),
		Diagrams:  len(m.Diagrams()),
		Images:    len(d.Images.LoadedImagePaths()),
		Dirty:     d.Stack.IsDirty(),
		CanUndo:   d.Stack.CanUndo(),
		CanRedo:   d.Stack.CanRedo(),
		UndoLabel: d.Stack.UndoLabel(),
		RedoLabel: d.Stack.RedoLabel(),
	}

	for _, f := range m.Folders() {
		s.Folders = append(s.Folders, queries.FolderSummary{
			Type:     string(f.Type()),
			Name:     f.Name(),
			Concepts: f.Len(),
		})
	}

	s.Elements = len(m.Elements())
	s.Relationships = len(m.Relationships())
	s.Properties = m.Properties().Len()
	for _, c := range m.Concepts() {
		s.Properties += c.Properties().Len()
	}
	return s
}
