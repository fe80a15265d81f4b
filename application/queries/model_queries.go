// Package queries defines the read-side views of open models.
package queries

import apperrors "archibridge/pkg/errors"

// GetModelQuery returns the summary of one open model
type GetModelQuery struct {
	ModelID string
}

// Validate validates the GetModelQuery
func (q GetModelQuery) Validate() error {
	if q.ModelID == "" {
		return apperrors.NewValidationError("model ID is required")
	}
	return nil
}

// ListModelsQuery lists every open model
type ListModelsQuery struct{}

// Validate validates the ListModelsQuery
func (q ListModelsQuery) Validate() error {
	return nil
}

// ModelSummary describes an open model
type ModelSummary struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Purpose       string          `json:"purpose,omitempty"`
	Version       string          `json:"version,omitempty"`
	File          string          `json:"file,omitempty"`
	Folders       []FolderSummary `json:"folders"`
	Elements      int             `json:"elements"`
	Relationships int             `json:"relationships"`
	Properties    int             `json:"properties"`
	Diagrams      int             `json:"diagrams"`
	Images        int             `json:"images"`
	Dirty         bool            `json:"dirty"`
	CanUndo       bool            `json:"canUndo"`
	CanRedo       bool            `json:"canRedo"`
	UndoLabel     string          `json:"undoLabel,omitempty"`
	RedoLabel     string          `json:"redoLabel,omitempty"`
}

// FolderSummary counts the concepts of a top-level folder
type FolderSummary struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Concepts int    `json:"concepts"`
}

// ListModelsResult lists the open models
type ListModelsResult struct {
	Models []ModelSummary `json:"models"`
}
