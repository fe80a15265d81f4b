// Package exporter writes a model as the three-file CSV set read by the importer.
package exporter

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
	"archibridge/infrastructure/csvfile"
	apperrors "archibridge/pkg/errors"
	"archibridge/pkg/utils"
)

// Options controls the written files
type Options struct {
	Prefix              string `validate:"max=128"`
	Delimiter           string
	Encoding            string
	WriteHeader         bool
	StripNewLines       bool
	UseLeadingCharsHack bool
}

// DefaultOptions matches what the importer reads without configuration
func DefaultOptions() Options {
	return Options{
		Delimiter:   ",",
		Encoding:    string(csvfile.EncodingUTF8),
		WriteHeader: true,
	}
}

// Exporter writes one model
type Exporter struct {
	model  *aggregates.Model
	logger *zap.Logger
}

// New creates an Exporter; a nil logger discards output
func New(model *aggregates.Model, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{model: model, logger: logger}
}

// Export writes the CSV set into dir and returns the paths written
func (e *Exporter) Export(ctx context.Context, dir string, opts Options) (csvfile.FileSet, error) {
	if err := utils.ValidateStruct(opts); err != nil {
		return csvfile.FileSet{}, err
	}
	delimiter, err := csvfile.ParseDelimiter(opts.Delimiter)
	if err != nil {
		return csvfile.FileSet{}, apperrors.NewValidationError(err.Error())
	}
	enc, err := csvfile.ParseEncoding(opts.Encoding)
	if err != nil {
		return csvfile.FileSet{}, apperrors.NewValidationError(err.Error())
	}

	info, err := os.Stat(dir)
	if err != nil {
		return csvfile.FileSet{}, apperrors.NewFileNotFoundError(dir, err)
	}
	if !info.IsDir() {
		return csvfile.FileSet{}, apperrors.NewValidationError(fmt.Sprintf("not a directory: %s", dir))
	}

	set := csvfile.NewFileSet(dir, opts.Prefix)
	w := writer{opts: opts, write: csvfile.WriteOptions{Delimiter: delimiter, Encoding: enc}}

	files := []struct {
		path string
		rows [][]string
	}{
		{set.Elements, e.elementRows(w)},
		{set.Relations, e.relationRows(w)},
		{set.Properties, e.propertyRows(w)},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return csvfile.FileSet{}, err
		}
		if err := csvfile.WriteFile(f.path, f.rows, w.write); err != nil {
			return csvfile.FileSet{}, apperrors.NewArchiveError("CSV_WRITE_FAILED", "cannot write "+f.path, err)
		}
	}

	e.logger.Info("CSV export written",
		zap.String("directory", dir),
		zap.String("prefix", opts.Prefix),
		zap.Int("elements", len(e.model.Elements())),
		zap.Int("relations", len(e.model.Relationships())),
	)
	return set, nil
}

// writer applies the text options to each cell
type writer struct {
	opts  Options
	write csvfile.WriteOptions
}

func (w writer) text(s string) string {
	if w.opts.StripNewLines {
		s = csvfile.StripNewLines(s)
	}
	if w.opts.UseLeadingCharsHack {
		s = csvfile.LeadingCharsMarker(s)
	}
	return s
}

func (w writer) header(h []string) [][]string {
	if !w.opts.WriteHeader {
		return nil
	}
	return [][]string{h}
}

func (e *Exporter) elementRows(w writer) [][]string {
	rows := w.header(csvfile.ElementsHeader)
	rows = append(rows, []string{
		e.model.ID(), csvfile.ModelType, w.text(e.model.Name()), w.text(e.model.Purpose()), "",
	})
	for _, el := range e.model.Elements() {
		rows = append(rows, []string{
			el.ID(), el.Kind().String(), w.text(el.Name()), w.text(el.Documentation()), w.text(el.Specialization()),
		})
	}
	return rows
}

func (e *Exporter) relationRows(w writer) [][]string {
	rows := w.header(csvfile.RelationsHeader)
	for _, r := range e.model.Relationships() {
		rows = append(rows, []string{
			r.ID(), r.Kind().String(), w.text(r.Name()), w.text(r.Documentation()),
			r.SourceID(), r.TargetID(), w.text(r.Specialization()),
		})
	}
	return rows
}

func (e *Exporter) propertyRows(w writer) [][]string {
	rows := w.header(csvfile.PropertiesHeader)
	add := func(ownerID string, props *entities.Properties) {
		for _, p := range props.All() {
			rows = append(rows, []string{ownerID, w.text(p.Key), w.text(p.Value)})
		}
	}

	add(e.model.ID(), e.model.Properties())
	for _, el := range e.model.Elements() {
		add(el.ID(), el.Properties())
	}
	for _, r := range e.model.Relationships() {
		add(r.ID(), r.Properties())
	}
	return rows
}
