// Package importer merges a CSV model export into an existing model as one
// undoable edit.
package importer

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"archibridge/application/edits"
	"archibridge/domain/config"
	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
	"archibridge/domain/core/valueobjects"
	"archibridge/infrastructure/csvfile"
	apperrors "archibridge/pkg/errors"
)

// EditLabel labels the compound edit of an import
const EditLabel = "Import CSV"

// Importer reconciles CSV files against one model
type Importer struct {
	model     *aggregates.Model
	logger    *zap.Logger
	delimiter rune
	encoding  csvfile.Encoding
	newID     func() string
}

// Option configures an Importer
type Option func(*Importer)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithDelimiter sets the field delimiter
func WithDelimiter(d rune) Option {
	return func(i *Importer) { i.delimiter = d }
}

// WithEncoding sets the input encoding
func WithEncoding(enc csvfile.Encoding) Option {
	return func(i *Importer) { i.encoding = enc }
}

// WithIDGenerator replaces the generator used for rows with an empty id
func WithIDGenerator(gen func() string) Option {
	return func(i *Importer) { i.newID = gen }
}

// WithDomainConfig takes the synthetic id prefix from cfg
func WithDomainConfig(cfg *config.DomainConfig) Option {
	return func(i *Importer) {
		prefix := cfg.SyntheticIDPrefix
		i.newID = func() string { return valueobjects.NewConceptID(prefix).String() }
	}
}

// New creates an Importer for model
func New(model *aggregates.Model, opts ...Option) *Importer {
	prefix := config.DefaultDomainConfig().SyntheticIDPrefix
	i := &Importer{
		model:     model,
		logger:    zap.NewNop(),
		delimiter: ',',
		encoding:  csvfile.EncodingUTF8,
		newID:     func() string { return valueobjects.NewConceptID(prefix).String() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Plan is a staged import. Nothing in the model changes until Edit is applied.
type Plan struct {
	Session *Session
	Edit    *edits.Compound
}

// IsEmpty reports whether the import found nothing to change
func (p *Plan) IsEmpty() bool {
	return p.Edit.IsEmpty()
}

// Counts summarises the plan for logs and responses
func (p *Plan) Counts() (newConcepts, updatedConcepts, newProperties int) {
	return len(p.Session.NewConcepts), len(p.Session.UpdatedConcepts), len(p.Session.NewProperties)
}

// Import plans the import of the CSV set containing path and executes it on
// stack as one undoable edit
func (i *Importer) Import(ctx context.Context, path string, stack *edits.Stack) (*Plan, error) {
	plan, err := i.Plan(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if plan.IsEmpty() {
		i.logger.Info("CSV import found no changes", zap.String("path", path))
		return plan, nil
	}
	if err := stack.Execute(plan.Edit); err != nil {
		return nil, apperrors.Wrap(err, "apply CSV import")
	}

	created, updated, props := plan.Counts()
	i.logger.Info("CSV import applied",
		zap.String("path", path),
		zap.Int("new_concepts", created),
		zap.Int("updated_concepts", updated),
		zap.Int("new_properties", props),
	)
	return plan, nil
}

// Plan reads the CSV set containing path and stages every change against the model
func (i *Importer) Plan(ctx context.Context, path string) (*Plan, error) {
	set, err := csvfile.FileSetFor(path)
	if err != nil {
		return nil, apperrors.NewImportError(apperrors.CodeCSVMalformed, "%s", err.Error()).
			WithDetail("path", path)
	}

	elements, err := i.read(set.Elements, csvfile.ElementsMinFields)
	if err != nil {
		return nil, err
	}
	relations, err := i.read(set.Relations, csvfile.RelationsMinFields)
	if err != nil {
		return nil, err
	}
	properties, err := i.read(set.Properties, csvfile.PropertiesMinFields)
	if err != nil {
		return nil, err
	}
	if elements == nil && relations == nil && properties == nil {
		return nil, apperrors.NewFileNotFoundError(path, fs.ErrNotExist)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &run{
		model:   i.model,
		session: NewSession(i.model),
		edit:    edits.NewCompound(EditLabel),
		newID:   i.newID,
	}
	if err := r.elements(set.Elements, elements); err != nil {
		return nil, err
	}
	if err := r.relations(set.Relations, relations); err != nil {
		return nil, err
	}
	if err := r.properties(set.Properties, properties); err != nil {
		return nil, err
	}
	r.finish()

	plan := &Plan{Session: r.session, Edit: r.edit}
	created, updated, props := plan.Counts()
	i.logger.Debug("CSV import planned",
		zap.String("path", path),
		zap.Int("new_concepts", created),
		zap.Int("updated_concepts", updated),
		zap.Int("new_properties", props),
		zap.Int("edits", plan.Edit.Len()),
	)
	return plan, nil
}

// read returns nil records for a missing file
func (i *Importer) read(path string, minFields int) ([]csvfile.Record, error) {
	records, err := csvfile.ReadFile(path, csvfile.ReadOptions{
		Delimiter: i.delimiter,
		Encoding:  i.encoding,
		MinFields: minFields,
	})
	if err == nil {
		if records == nil {
			records = []csvfile.Record{}
		}
		return records, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var perr *csvfile.ParseError
	if errors.As(err, &perr) {
		return nil, apperrors.NewImportError(apperrors.CodeCSVMalformed, "%s", perr.Error()).
			WithDetail("file", perr.File).
			WithDetail("line", perr.Line).
			WithDetail("column", perr.Column).
			WithCause(err)
	}
	return nil, apperrors.NewImportError(apperrors.CodeCSVMalformed, "cannot read %s", path).
		WithDetail("file", path).
		WithCause(err)
}

// CheckIDForInvalidCharacters rejects ids outside [A-Za-z0-9_.-]
func CheckIDForInvalidCharacters(id string) error {
	return checkID(id)
}

// GetProperty returns the first property of owner with key, or nil
func GetProperty(owner *entities.Properties, key string) *entities.Property {
	if owner == nil {
		return nil
	}
	return owner.Get(key)
}

// pendingEndpoints is a relation waiting for its source and target
type pendingEndpoints struct {
	relation *entities.Relationship
	source   string
	target   string
	file     string
	line     int
}

// run carries one Plan call
type run struct {
	model   *aggregates.Model
	session *Session
	edit    *edits.Compound
	newID   func() string

	modelName     *string
	modelPurpose  *string
	endpoints     []pendingEndpoints
	propertyEdits []edits.Edit
}

func (r *run) elements(file string, records []csvfile.Record) error {
	for _, rec := range records {
		id, typ := rec.Field(0), strings.TrimSpace(rec.Field(1))

		if strings.EqualFold(typ, csvfile.ModelType) {
			r.session.modelRowID = id
			name := valueobjects.Normalise(rec.Field(2))
			purpose := valueobjects.Normalise(rec.Field(3))
			r.modelName, r.modelPurpose = &name, &purpose
			continue
		}

		kind, ok := entities.ParseConceptKind(typ)
		if !ok || !kind.IsElement() {
			return unknownType(typ, file, rec.Line)
		}

		specialization, hasSpecialization := optionalField(rec, 4)
		if _, err := r.stage(kind, id, rec.Field(2), rec.Field(3), specialization, hasSpecialization, file, rec.Line); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) relations(file string, records []csvfile.Record) error {
	for _, rec := range records {
		typ := strings.TrimSpace(rec.Field(1))
		kind, ok := entities.ParseConceptKind(typ)
		if !ok || !kind.IsRelationship() {
			return unknownType(typ, file, rec.Line)
		}

		specialization, hasSpecialization := optionalField(rec, 6)
		c, err := r.stage(kind, rec.Field(0), rec.Field(2), rec.Field(3), specialization, hasSpecialization, file, rec.Line)
		if err != nil {
			return err
		}
		r.endpoints = append(r.endpoints, pendingEndpoints{
			relation: c.(*entities.Relationship),
			source:   rec.Field(4),
			target:   rec.Field(5),
			file:     file,
			line:     rec.Line,
		})
	}

	// Endpoints resolve once every relation row is staged so relations can
	// point at relations further down the file.
	for _, p := range r.endpoints {
		source, err := r.reference(p.source, p.file, p.line)
		if err != nil {
			return err
		}
		target, err := r.reference(p.target, p.file, p.line)
		if err != nil {
			return err
		}

		if r.session.isNew(p.relation.ID()) {
			p.relation.Connect(source, target)
			continue
		}
		st := r.session.stagedState(p.relation)
		st.Source, st.Target = source, target
	}
	return nil
}

func (r *run) properties(file string, records []csvfile.Record) error {
	for _, rec := range records {
		ownerID, key, value := rec.Field(0), rec.Field(1), rec.Field(2)

		var (
			owner    *entities.Properties
			slotName = ownerID
		)
		if r.session.isModelID(ownerID) {
			owner = r.model.Properties()
			slotName = r.model.ID()
		} else {
			c, err := r.reference(ownerID, file, rec.Line)
			if err != nil {
				return err
			}
			owner = c.Properties()
			slotName = c.ID()

			if r.session.isNew(c.ID()) {
				prop := entities.NewProperty(key, value)
				owner.Add(prop)
				r.session.NewProperties = append(r.session.NewProperties, NewProperty{OwnerID: c.ID(), Property: prop})
				continue
			}
		}

		// The n-th row with a key updates the n-th property with that key, so an
		// exported set with repeated keys re-imports without changes.
		n := r.session.nextSlot(slotName, key)
		if existing := owner.Nth(key, n); existing != nil {
			if existing.Value != value {
				r.propertyEdits = append(r.propertyEdits, edits.NewSetPropertyValue(existing, value))
			}
			continue
		}

		prop := entities.NewProperty(key, value)
		r.propertyEdits = append(r.propertyEdits, edits.NewAddProperty(owner, prop))
		r.session.NewProperties = append(r.session.NewProperties, NewProperty{OwnerID: slotName, Property: prop})
	}
	return nil
}

// stage records one concept row and returns the concept it refers to
func (r *run) stage(kind entities.ConceptKind, id, name, doc, specialization string, hasSpecialization bool, file string, line int) (entities.Concept, error) {
	if id == "" {
		id = r.session.uniqueID(r.newID)
	} else if err := checkID(id); err != nil {
		return nil, at(err, file, line)
	}
	name = valueobjects.Normalise(name)
	doc = valueobjects.Normalise(doc)

	if c, ok := r.session.NewConcepts[id]; ok {
		if c.Kind() != kind {
			return nil, at(classMismatch(id), file, line)
		}
		c.SetName(name)
		c.SetDocumentation(doc)
		if hasSpecialization {
			c.SetSpecialization(specialization)
		}
		return c, nil
	}

	existing, err := r.session.FindConceptInModel(id, kind)
	if err != nil {
		return nil, at(err, file, line)
	}
	if existing == nil && r.model.HasID(id) {
		return nil, at(classMismatch(id), file, line)
	}

	if existing != nil {
		st := r.session.stagedState(existing)
		st.Name, st.Documentation = name, doc
		if hasSpecialization {
			st.Specialization = specialization
		}
		return existing, nil
	}

	c, err := entities.NewConcept(kind, id)
	if err != nil {
		return nil, at(apperrors.NewImportError(apperrors.CodeCSVInvalidID, "%s", err.Error()), file, line)
	}
	c.SetName(name)
	c.SetDocumentation(doc)
	c.SetSpecialization(specialization)
	r.session.addNew(c)
	return c, nil
}

func (r *run) reference(id, file string, line int) (entities.Concept, error) {
	c, err := r.session.FindReferencedConcept(id)
	if err != nil {
		return nil, at(err, file, line)
	}
	return c, nil
}

// finish builds the compound edit: model fields, new concepts, concept
// updates, then properties in file order
func (r *run) finish() {
	if r.modelName != nil && *r.modelName != r.model.Name() {
		r.edit.Add(edits.NewSetModelName(r.model, *r.modelName))
	}
	if r.modelPurpose != nil && *r.modelPurpose != r.model.Purpose() {
		r.edit.Add(edits.NewSetModelPurpose(r.model, *r.modelPurpose))
	}

	for _, id := range r.session.newOrder {
		r.edit.Add(edits.NewAddConcept(r.model, r.session.NewConcepts[id]))
	}

	for _, id := range r.session.stagedOrder {
		c, _ := r.model.ConceptByID(id)
		st := *r.session.staged[id]
		if st.Equal(entities.StateOf(c)) {
			continue
		}
		r.session.UpdatedConcepts[id] = c.Clone()
		r.edit.Add(edits.NewSetConceptState(c, st))
	}

	for _, e := range r.propertyEdits {
		r.edit.Add(e)
	}
}

func optionalField(rec csvfile.Record, i int) (string, bool) {
	if i < len(rec.Fields) {
		return rec.Fields[i], true
	}
	return "", false
}

func unknownType(typ, file string, line int) error {
	return apperrors.NewImportError(apperrors.CodeCSVUnknownType, "unknown concept type %q", typ).
		WithDetail("type", typ).
		WithDetail("file", file).
		WithDetail("line", line)
}

// at adds the row location to an import error
func at(err error, file string, line int) error {
	if d := apperrors.GetDomainError(err); d != nil {
		d.WithDetail("file", file).WithDetail("line", line)
	}
	return err
}
