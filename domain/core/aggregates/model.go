package aggregates

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"archibridge/domain/config"
	"archibridge/domain/core/entities"
	"archibridge/domain/core/valueobjects"
	"archibridge/domain/events"
)

// Model is the aggregate root for an ArchiMate model. It owns the top-level
// folders, the concept index, diagrams, model properties and the feature bag.
type Model struct {
	id         string
	name       string
	purpose    string
	version    string
	file       string
	properties *entities.Properties
	features   *entities.Features
	folders    map[entities.FolderType]*entities.Folder
	diagrams   []*entities.DiagramModel
	index      map[string]entities.Concept
	events     []events.DomainEvent
}

// NewModel creates a model with every top-level folder and no content
func NewModel(id, name string) (*Model, error) {
	if !valueobjects.IsValidConceptID(id) {
		return nil, fmt.Errorf("invalid model id: %q", id)
	}

	m := &Model{
		id:         id,
		name:       name,
		properties: entities.NewProperties(),
		features:   entities.NewFeatures(),
		folders:    make(map[entities.FolderType]*entities.Folder),
		index:      make(map[string]entities.Concept),
		events:     []events.DomainEvent{},
	}
	for _, ft := range entities.FolderTypes() {
		m.folders[ft] = entities.NewFolder(ft)
	}
	return m, nil
}

// NewDefaultModel creates a model with a generated id, the configured default
// name and one empty view
func NewDefaultModel(cfg *config.DomainConfig) *Model {
	m, _ := NewModel(valueobjects.NewConceptID(cfg.SyntheticIDPrefix).String(), cfg.DefaultModelName)
	m.version = cfg.ModelVersion
	m.diagrams = append(m.diagrams, entities.NewDiagramModel(
		valueobjects.NewConceptID(cfg.SyntheticIDPrefix).String(),
		cfg.DefaultViewName,
	))
	return m
}

func (m *Model) ID() string                       { return m.id }
func (m *Model) Name() string                     { return m.name }
func (m *Model) Purpose() string                  { return m.purpose }
func (m *Model) Version() string                  { return m.version }
func (m *Model) File() string                     { return m.file }
func (m *Model) Properties() *entities.Properties { return m.properties }
func (m *Model) Features() *entities.Features     { return m.features }

// SetName renames the model
func (m *Model) SetName(name string) {
	m.name = name
}

// SetPurpose sets the model purpose text
func (m *Model) SetPurpose(purpose string) {
	m.purpose = purpose
}

// SetVersion records the archive format version
func (m *Model) SetVersion(version string) {
	m.version = version
}

// SetFile binds the model to an archive file path
func (m *Model) SetFile(path string) {
	m.file = path
}

// Folder returns the top-level folder of the given type
func (m *Model) Folder(ft entities.FolderType) *entities.Folder {
	return m.folders[ft]
}

// Folders returns the top-level folders in display order
func (m *Model) Folders() []*entities.Folder {
	out := make([]*entities.Folder, 0, len(m.folders))
	for _, ft := range entities.FolderTypes() {
		out = append(out, m.folders[ft])
	}
	return out
}

// ConceptByID looks a concept up by id
func (m *Model) ConceptByID(id string) (entities.Concept, bool) {
	c, ok := m.index[id]
	return c, ok
}

// HasID reports whether id is used by the model, a concept, a view or a view figure
func (m *Model) HasID(id string) bool {
	if id == m.id {
		return true
	}
	if _, ok := m.index[id]; ok {
		return true
	}
	for _, d := range m.diagrams {
		if d.ID() == id {
			return true
		}
		found := false
		d.Walk(func(obj *entities.DiagramObject) {
			if obj.ID == id {
				found = true
			}
		})
		if found {
			return true
		}
	}
	return false
}

// AddConcept appends c to the folder matching its kind
func (m *Model) AddConcept(c entities.Concept) error {
	return m.InsertConcept(c, -1)
}

// InsertConcept places c at index in the folder matching its kind
func (m *Model) InsertConcept(c entities.Concept, index int) error {
	if c == nil {
		return errors.New("concept required")
	}
	if _, exists := m.index[c.ID()]; exists {
		return fmt.Errorf("concept already in model: %s", c.ID())
	}
	folder := m.folders[c.Kind().Folder()]
	if folder == nil {
		return fmt.Errorf("no folder for concept kind %s", c.Kind())
	}

	folder.Insert(c, index)
	m.index[c.ID()] = c
	m.addEvent(events.NewConceptAdded(m.id, c.ID(), c.Kind().String(), string(folder.Type()), time.Now()))
	return nil
}

// RemoveConcept takes the concept out of its folder and returns its former index
func (m *Model) RemoveConcept(id string) (int, error) {
	c, ok := m.index[id]
	if !ok {
		return -1, fmt.Errorf("concept not in model: %s", id)
	}

	index := m.folders[c.Kind().Folder()].Remove(id)
	delete(m.index, id)
	m.addEvent(events.NewConceptRemoved(m.id, id, time.Now()))
	return index, nil
}

// Concepts returns every concept in folder order
func (m *Model) Concepts() []entities.Concept {
	var out []entities.Concept
	for _, f := range m.Folders() {
		out = append(out, f.Concepts()...)
	}
	return out
}

// Elements returns every element in folder order
func (m *Model) Elements() []*entities.Element {
	var out []*entities.Element
	for _, c := range m.Concepts() {
		if e, ok := c.(*entities.Element); ok {
			out = append(out, e)
		}
	}
	return out
}

// Relationships returns every relationship in folder order
func (m *Model) Relationships() []*entities.Relationship {
	var out []*entities.Relationship
	for _, c := range m.folders[entities.FolderRelations].Concepts() {
		if r, ok := c.(*entities.Relationship); ok {
			out = append(out, r)
		}
	}
	return out
}

// AddDiagram appends a view
func (m *Model) AddDiagram(d *entities.DiagramModel) {
	m.diagrams = append(m.diagrams, d)
}

// Diagrams returns the views in order
func (m *Model) Diagrams() []*entities.DiagramModel {
	out := make([]*entities.DiagramModel, len(m.diagrams))
	copy(out, m.diagrams)
	return out
}

// ReferencedImagePaths returns the sorted set of image paths shown by view figures
func (m *Model) ReferencedImagePaths() []string {
	seen := make(map[string]struct{})
	for _, d := range m.diagrams {
		d.Walk(func(obj *entities.DiagramObject) {
			if obj.ImagePath != "" {
				seen[obj.ImagePath] = struct{}{}
			}
		})
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Validate checks that every relationship is connected to concepts of this model
func (m *Model) Validate() error {
	for _, r := range m.Relationships() {
		if r.Source() == nil || r.Target() == nil {
			return fmt.Errorf("relationship %s is not connected", r.ID())
		}
		if _, ok := m.index[r.SourceID()]; !ok {
			return fmt.Errorf("relationship %s references missing source %s", r.ID(), r.SourceID())
		}
		if _, ok := m.index[r.TargetID()]; !ok {
			return fmt.Errorf("relationship %s references missing target %s", r.ID(), r.TargetID())
		}
	}
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (m *Model) GetUncommittedEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MarkEventsAsCommitted clears all uncommitted events
func (m *Model) MarkEventsAsCommitted() {
	m.events = []events.DomainEvent{}
}

// RecordEvent lets application services attach events raised on the model's behalf
func (m *Model) RecordEvent(event events.DomainEvent) {
	m.addEvent(event)
}

func (m *Model) addEvent(event events.DomainEvent) {
	m.events = append(m.events, event)
}
