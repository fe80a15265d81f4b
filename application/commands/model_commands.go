// Package commands defines the write-side operations on open models.
package commands

import "archibridge/pkg/utils"

// CreateModelCommand opens a new empty model
type CreateModelCommand struct {
	Name string `json:"name" validate:"max=500"`

	// ModelID is set by the handler
	ModelID string `json:"-"`
}

// Validate implements bus.Command
func (c *CreateModelCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// OpenModelCommand loads an archive file. Images of legacy zip archives are
// moved into the model.
type OpenModelCommand struct {
	Path string `json:"path" validate:"required"`

	ModelID string `json:"-"`
}

// Validate implements bus.Command
func (c *OpenModelCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// SaveModelCommand writes a model to Path, or to the file it was opened from
type SaveModelCommand struct {
	ModelID string `json:"model_id" validate:"required"`
	Path    string `json:"path"`

	SavedTo string `json:"-"`
}

// Validate implements bus.Command
func (c *SaveModelCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UndoCommand reverts the last edit of a model
type UndoCommand struct {
	ModelID string `json:"model_id" validate:"required"`

	Label string `json:"-"`
}

// Validate implements bus.Command
func (c *UndoCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// RedoCommand re-applies the last undone edit of a model
type RedoCommand struct {
	ModelID string `json:"model_id" validate:"required"`

	Label string `json:"-"`
}

// Validate implements bus.Command
func (c *RedoCommand) Validate() error {
	return utils.ValidateStruct(c)
}
