package importer

import (
	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
	"archibridge/domain/core/valueobjects"
	apperrors "archibridge/pkg/errors"
)

// NewProperty records a property created by an import
type NewProperty struct {
	OwnerID  string
	Property *entities.Property
}

// Session is the state of one import run. It is built fresh for every plan
// and never outlives it.
type Session struct {
	// NewConcepts maps ids to concepts created by this run
	NewConcepts map[string]entities.Concept
	// UpdatedConcepts maps ids to a snapshot of each changed concept taken before the change
	UpdatedConcepts map[string]entities.Concept
	// NewProperties lists appended properties in file order
	NewProperties []NewProperty

	model      *aggregates.Model
	modelRowID string

	newOrder    []string
	staged      map[string]*entities.ConceptState
	stagedOrder []string
	keySeen     map[propertySlot]int
}

type propertySlot struct {
	owner string
	key   string
}

// NewSession creates an empty session against model
func NewSession(model *aggregates.Model) *Session {
	return &Session{
		NewConcepts:     make(map[string]entities.Concept),
		UpdatedConcepts: make(map[string]entities.Concept),
		model:           model,
		staged:          make(map[string]*entities.ConceptState),
		keySeen:         make(map[propertySlot]int),
	}
}

// FindConceptInModel returns the model concept with id, or nil when there is
// none. A concept with the same id but another kind is an error.
func (s *Session) FindConceptInModel(id string, kind entities.ConceptKind) (entities.Concept, error) {
	if id == "" {
		return nil, nil
	}
	c, ok := s.model.ConceptByID(id)
	if !ok {
		return nil, nil
	}
	if c.Kind() != kind {
		return nil, classMismatch(id)
	}
	return c, nil
}

// FindReferencedConcept resolves id against the model and the concepts
// created earlier in this run
func (s *Session) FindReferencedConcept(id string) (entities.Concept, error) {
	if id == "" {
		return nil, apperrors.NewImportError(apperrors.CodeCSVReferenceNotFound, "referenced concept id is empty")
	}
	if c, ok := s.NewConcepts[id]; ok {
		return c, nil
	}
	if c, ok := s.model.ConceptByID(id); ok {
		return c, nil
	}
	return nil, apperrors.NewImportError(apperrors.CodeCSVReferenceNotFound, "referenced concept not found: %s", id).
		WithDetail("id", id)
}

// isModelID reports whether id names the model in properties rows
func (s *Session) isModelID(id string) bool {
	return id != "" && (id == s.model.ID() || id == s.modelRowID)
}

// isNew reports whether id was created by this run
func (s *Session) isNew(id string) bool {
	_, ok := s.NewConcepts[id]
	return ok
}

func (s *Session) addNew(c entities.Concept) {
	s.NewConcepts[c.ID()] = c
	s.newOrder = append(s.newOrder, c.ID())
}

// stagedState returns the pending state for an existing concept, seeding it
// from the concept's current fields
func (s *Session) stagedState(c entities.Concept) *entities.ConceptState {
	if st, ok := s.staged[c.ID()]; ok {
		return st
	}
	st := entities.StateOf(c)
	s.staged[c.ID()] = &st
	s.stagedOrder = append(s.stagedOrder, c.ID())
	return &st
}

// nextSlot returns how many rows with key were already seen for owner
func (s *Session) nextSlot(owner, key string) int {
	slot := propertySlot{owner: owner, key: key}
	n := s.keySeen[slot]
	s.keySeen[slot] = n + 1
	return n
}

// uniqueID generates ids until one is free in the model and the session
func (s *Session) uniqueID(generate func() string) string {
	for {
		id := generate()
		if !s.model.HasID(id) && !s.isNew(id) {
			return id
		}
	}
}

func classMismatch(id string) *apperrors.DomainError {
	return apperrors.NewImportError(apperrors.CodeCSVClassMismatch,
		"found element with same id but different class: %s", id).
		WithDetail("id", id)
}

func checkID(id string) error {
	if _, err := valueobjects.NewConceptIDFromString(id); err != nil {
		return apperrors.NewImportError(apperrors.CodeCSVInvalidID, "%s", err.Error()).
			WithDetail("id", id)
	}
	return nil
}
