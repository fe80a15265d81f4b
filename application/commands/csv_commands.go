package commands

import (
	"archibridge/infrastructure/csvfile"
	"archibridge/pkg/utils"
)

// ImportCSVCommand merges a CSV set into a model as one undoable edit
type ImportCSVCommand struct {
	ModelID   string `json:"model_id" validate:"required"`
	Path      string `json:"path" validate:"required"`
	Delimiter string `json:"delimiter"`
	Encoding  string `json:"encoding"`

	Result ImportResult `json:"-"`
}

// ImportResult summarises an applied import
type ImportResult struct {
	Changed         bool `json:"changed"`
	NewConcepts     int  `json:"new_concepts"`
	UpdatedConcepts int  `json:"updated_concepts"`
	NewProperties   int  `json:"new_properties"`
}

// Validate implements bus.Command
func (c *ImportCSVCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ExportCSVCommand writes a model as a CSV set. Unset options fall back to
// the configured defaults.
type ExportCSVCommand struct {
	ModelID             string  `json:"model_id" validate:"required"`
	Directory           string  `json:"directory" validate:"required"`
	Prefix              *string `json:"prefix"`
	Delimiter           string  `json:"delimiter"`
	Encoding            string  `json:"encoding"`
	WriteHeader         *bool   `json:"write_header"`
	StripNewLines       *bool   `json:"strip_newlines"`
	UseLeadingCharsHack *bool   `json:"leading_chars_hack"`

	Files csvfile.FileSet `json:"-"`
}

// Validate implements bus.Command
func (c *ExportCSVCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// AddImageCommand stores an image file in a model
type AddImageCommand struct {
	ModelID string `json:"model_id" validate:"required"`
	Path    string `json:"path" validate:"required"`

	Key string `json:"-"`
}

// Validate implements bus.Command
func (c *AddImageCommand) Validate() error {
	return utils.ValidateStruct(c)
}
