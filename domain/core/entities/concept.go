package entities

import (
	"fmt"

	"archibridge/domain/core/valueobjects"
)

// Concept is an element or a relationship. The set of implementations is closed:
// *Element and *Relationship are the only ones.
type Concept interface {
	ID() string
	Kind() ConceptKind
	Name() string
	Documentation() string
	Specialization() string
	Properties() *Properties

	SetName(name string)
	SetDocumentation(documentation string)
	SetSpecialization(specialization string)

	// Clone copies the concept's fields and properties. Relationship
	// endpoints are shared, not cloned.
	Clone() Concept

	isConcept()
}

type conceptBase struct {
	id             string
	kind           ConceptKind
	name           string
	documentation  string
	specialization string
	properties     *Properties
}

func (c *conceptBase) ID() string                { return c.id }
func (c *conceptBase) Kind() ConceptKind         { return c.kind }
func (c *conceptBase) Name() string              { return c.name }
func (c *conceptBase) Documentation() string     { return c.documentation }
func (c *conceptBase) Specialization() string    { return c.specialization }
func (c *conceptBase) Properties() *Properties   { return c.properties }
func (c *conceptBase) SetName(name string)       { c.name = name }
func (c *conceptBase) SetDocumentation(d string) { c.documentation = d }
func (c *conceptBase) SetSpecialization(s string) {
	c.specialization = s
}
func (c *conceptBase) isConcept() {}

func (c *conceptBase) cloneBase() conceptBase {
	clone := *c
	clone.properties = c.properties.Clone()
	return clone
}

// Element is any non-relationship concept
type Element struct {
	conceptBase
}

// Clone implements Concept
func (e *Element) Clone() Concept {
	return &Element{conceptBase: e.cloneBase()}
}

// Relationship connects a source concept to a target concept. Either end may
// itself be a relationship.
type Relationship struct {
	conceptBase
	source Concept
	target Concept
}

func (r *Relationship) Source() Concept { return r.source }
func (r *Relationship) Target() Concept { return r.target }

// Connect sets both endpoints
func (r *Relationship) Connect(source, target Concept) {
	r.source = source
	r.target = target
}

// SourceID returns the source id, or "" when unconnected
func (r *Relationship) SourceID() string {
	if r.source == nil {
		return ""
	}
	return r.source.ID()
}

// TargetID returns the target id, or "" when unconnected
func (r *Relationship) TargetID() string {
	if r.target == nil {
		return ""
	}
	return r.target.ID()
}

// Clone implements Concept
func (r *Relationship) Clone() Concept {
	return &Relationship{conceptBase: r.cloneBase(), source: r.source, target: r.target}
}

// NewConcept creates an empty concept of the given kind
func NewConcept(kind ConceptKind, id string) (Concept, error) {
	if !valueobjects.IsValidConceptID(id) {
		return nil, fmt.Errorf("invalid characters in id: %q", id)
	}

	base := conceptBase{id: id, kind: kind, properties: NewProperties()}
	switch {
	case kind.IsElement():
		return &Element{conceptBase: base}, nil
	case kind.IsRelationship():
		return &Relationship{conceptBase: base}, nil
	default:
		return nil, fmt.Errorf("unknown concept kind %d for id %q", int(kind), id)
	}
}

// ConceptState is the editable field set of a concept
type ConceptState struct {
	Name           string
	Documentation  string
	Specialization string
	Source         Concept
	Target         Concept
}

// StateOf captures the current editable fields of c
func StateOf(c Concept) ConceptState {
	s := ConceptState{
		Name:           c.Name(),
		Documentation:  c.Documentation(),
		Specialization: c.Specialization(),
	}
	if r, ok := c.(*Relationship); ok {
		s.Source = r.source
		s.Target = r.target
	}
	return s
}

// Apply writes the state back onto c. Endpoints are ignored for elements.
func (s ConceptState) Apply(c Concept) {
	c.SetName(s.Name)
	c.SetDocumentation(s.Documentation)
	c.SetSpecialization(s.Specialization)
	if r, ok := c.(*Relationship); ok {
		r.Connect(s.Source, s.Target)
	}
}

// Equal compares field values; endpoints compare by identity
func (s ConceptState) Equal(other ConceptState) bool {
	return s.Name == other.Name &&
		s.Documentation == other.Documentation &&
		s.Specialization == other.Specialization &&
		s.Source == other.Source &&
		s.Target == other.Target
}
