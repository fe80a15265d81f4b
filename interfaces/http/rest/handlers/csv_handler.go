package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/commands/bus"
	"archibridge/pkg/common"
	apperrors "archibridge/pkg/errors"
)

// CSVHandler handles CSV import and export requests
type CSVHandler struct {
	base
}

// NewCSVHandler creates a new CSV handler
func NewCSVHandler(commandBus *bus.CommandBus, errors *apperrors.ErrorHandler, logger *zap.Logger) *CSVHandler {
	return &CSVHandler{base{commandBus: commandBus, errors: errors, logger: logger}}
}

type importCSVRequest struct {
	Path      string `json:"path"`
	Delimiter string `json:"delimiter"`
	Encoding  string `json:"encoding"`
}

type exportCSVRequest struct {
	Directory           string  `json:"directory"`
	Prefix              *string `json:"prefix"`
	Delimiter           string  `json:"delimiter"`
	Encoding            string  `json:"encoding"`
	WriteHeader         *bool   `json:"write_header"`
	StripNewLines       *bool   `json:"strip_newlines"`
	UseLeadingCharsHack *bool   `json:"leading_chars_hack"`
}

type exportCSVResponse struct {
	Elements   string `json:"elements"`
	Relations  string `json:"relations"`
	Properties string `json:"properties"`
}

// ImportCSV handles POST /models/{modelID}/import/csv
func (h *CSVHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	var req importCSVRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.ImportCSVCommand{
		ModelID:   chi.URLParam(r, "modelID"),
		Path:      req.Path,
		Delimiter: req.Delimiter,
		Encoding:  req.Encoding,
	}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusOK, cmd.Result)
}

// ExportCSV handles POST /models/{modelID}/export/csv
func (h *CSVHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var req exportCSVRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.ExportCSVCommand{
		ModelID:             chi.URLParam(r, "modelID"),
		Directory:           req.Directory,
		Prefix:              req.Prefix,
		Delimiter:           req.Delimiter,
		Encoding:            req.Encoding,
		WriteHeader:         req.WriteHeader,
		StripNewLines:       req.StripNewLines,
		UseLeadingCharsHack: req.UseLeadingCharsHack,
	}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusOK, exportCSVResponse{
		Elements:   cmd.Files.Elements,
		Relations:  cmd.Files.Relations,
		Properties: cmd.Files.Properties,
	})
}
