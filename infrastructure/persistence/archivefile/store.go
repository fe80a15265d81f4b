// Package archivefile reads and writes models as XML archive files. Legacy
// archives are zip files holding model.xml next to their images.
package archivefile

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"archibridge/application/archive"
	"archibridge/application/ports"
	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
	apperrors "archibridge/pkg/errors"
)

// LegacyModelEntry is the model entry inside a legacy zip archive
const LegacyModelEntry = "model.xml"

var _ ports.ModelStore = (*Store)(nil)

// Store implements ports.ModelStore on the local file system
type Store struct {
	logger *zap.Logger
}

// NewStore creates a Store
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// IsArchiveFile implements ports.ModelLoader
func (s *Store) IsArchiveFile(path string) bool {
	return archive.IsZipFile(path)
}

// Save implements ports.ModelPersister. The file is replaced atomically.
func (s *Store) Save(ctx context.Context, model *aggregates.Model, path string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := encode(tmp, model); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	s.logger.Debug("Archive written", zap.String("path", path), zap.String("model_id", model.ID()))
	return nil
}

// Load implements ports.ModelLoader
func (s *Store) Load(ctx context.Context, path string) (*aggregates.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewFileNotFoundError(path, err)
	}

	var (
		model *aggregates.Model
		err   error
	)
	if s.IsArchiveFile(path) {
		model, err = s.loadLegacy(path)
	} else {
		model, err = loadFile(path)
	}
	if err != nil {
		if apperrors.GetDomainError(err) != nil {
			return nil, err
		}
		return nil, apperrors.NewArchiveError("ARCHIVE_READ_FAILED", "cannot read model from "+path, err).
			WithRetryable(false).
			WithDetail("path", path)
	}
	return model, nil
}

func loadFile(path string) (*aggregates.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

func (s *Store) loadLegacy(path string) (*aggregates.Model, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	rc, err := zr.Open(LegacyModelEntry)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("archive has no %s entry", LegacyModelEntry)
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	s.logger.Debug("Reading legacy archive", zap.String("path", path))
	return decode(rc)
}

func encode(w io.Writer, model *aggregates.Model) error {
	doc := xmlModel{
		ID:      model.ID(),
		Name:    model.Name(),
		Version: model.Version(),
		Purpose: model.Purpose(),
	}
	doc.Properties = toXMLProperties(model.Properties())
	for _, f := range model.Features().All() {
		doc.Features = append(doc.Features, xmlFeature{Name: f.Name, Value: f.Value})
	}

	for _, folder := range model.Folders() {
		xf := xmlFolder{Type: string(folder.Type()), Name: folder.Name()}
		for _, c := range folder.Concepts() {
			xc := xmlConcept{
				ID:             c.ID(),
				Type:           c.Kind().String(),
				Name:           c.Name(),
				Specialization: c.Specialization(),
				Documentation:  c.Documentation(),
				Properties:     toXMLProperties(c.Properties()),
			}
			if r, ok := c.(*entities.Relationship); ok {
				xc.Source, xc.Target = r.SourceID(), r.TargetID()
			}
			xf.Elements = append(xf.Elements, xc)
		}
		if folder.Type() == entities.FolderDiagrams {
			for _, d := range model.Diagrams() {
				xf.Views = append(xf.Views, xmlView{
					ID:            d.ID(),
					Name:          d.Name(),
					Documentation: d.Documentation(),
					Children:      toXMLChildren(d.Children()),
				})
			}
		}
		doc.Folders = append(doc.Folders, xf)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func decode(r io.Reader) (*aggregates.Model, error) {
	var doc xmlModel
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	model, err := aggregates.NewModel(doc.ID, doc.Name)
	if err != nil {
		return nil, err
	}
	model.SetVersion(doc.Version)
	model.SetPurpose(doc.Purpose)
	addProperties(model.Properties(), doc.Properties)
	for _, f := range doc.Features {
		model.Features().Put(f.Name, f.Value)
	}

	type endpoints struct {
		rel            *entities.Relationship
		source, target string
	}
	var pending []endpoints

	for _, xf := range doc.Folders {
		ft := entities.FolderType(xf.Type)
		if folder := model.Folder(ft); folder != nil && xf.Name != "" {
			folder.SetName(xf.Name)
		}

		for _, xc := range xf.Elements {
			kind, ok := entities.ParseConceptKind(xc.Type)
			if !ok {
				return nil, fmt.Errorf("unknown concept type %q for %s", xc.Type, xc.ID)
			}
			c, err := entities.NewConcept(kind, xc.ID)
			if err != nil {
				return nil, err
			}
			c.SetName(xc.Name)
			c.SetDocumentation(xc.Documentation)
			c.SetSpecialization(xc.Specialization)
			addProperties(c.Properties(), xc.Properties)
			if err := model.AddConcept(c); err != nil {
				return nil, err
			}
			if r, ok := c.(*entities.Relationship); ok {
				pending = append(pending, endpoints{rel: r, source: xc.Source, target: xc.Target})
			}
		}

		for _, xv := range xf.Views {
			d := entities.NewDiagramModel(xv.ID, xv.Name)
			d.SetDocumentation(xv.Documentation)
			for _, child := range fromXMLChildren(xv.Children) {
				d.AddChild(child)
			}
			model.AddDiagram(d)
		}
	}

	for _, p := range pending {
		source, ok := model.ConceptByID(p.source)
		if !ok {
			return nil, fmt.Errorf("relationship %s: source %q not found", p.rel.ID(), p.source)
		}
		target, ok := model.ConceptByID(p.target)
		if !ok {
			return nil, fmt.Errorf("relationship %s: target %q not found", p.rel.ID(), p.target)
		}
		p.rel.Connect(source, target)
	}
	return model, nil
}

func toXMLProperties(props *entities.Properties) []xmlProperty {
	var out []xmlProperty
	for _, p := range props.All() {
		out = append(out, xmlProperty{Key: p.Key, Value: p.Value})
	}
	return out
}

func addProperties(props *entities.Properties, xps []xmlProperty) {
	for _, xp := range xps {
		props.Add(entities.NewProperty(xp.Key, xp.Value))
	}
}

func toXMLChildren(objs []*entities.DiagramObject) []xmlChild {
	var out []xmlChild
	for _, obj := range objs {
		out = append(out, xmlChild{
			ID:         obj.ID,
			Type:       string(obj.Type),
			Name:       obj.Name,
			ConceptRef: obj.ConceptID,
			ImagePath:  obj.ImagePath,
			Children:   toXMLChildren(obj.Children),
		})
	}
	return out
}

func fromXMLChildren(children []xmlChild) []*entities.DiagramObject {
	var out []*entities.DiagramObject
	for _, c := range children {
		out = append(out, &entities.DiagramObject{
			ID:        c.ID,
			Type:      entities.DiagramObjectType(c.Type),
			Name:      c.Name,
			ConceptID: c.ConceptRef,
			ImagePath: c.ImagePath,
			Children:  fromXMLChildren(c.Children),
		})
	}
	return out
}
