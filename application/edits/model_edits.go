package edits

import (
	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
)

// AddConcept places a concept in the model; Revert removes it again
type AddConcept struct {
	model   *aggregates.Model
	concept entities.Concept
	index   int
}

// NewAddConcept creates an AddConcept edit that appends to the concept's folder
func NewAddConcept(model *aggregates.Model, concept entities.Concept) *AddConcept {
	return &AddConcept{model: model, concept: concept, index: -1}
}

func (e *AddConcept) Label() string             { return "Add " + e.concept.Kind().String() }
func (e *AddConcept) Concept() entities.Concept { return e.concept }

// Apply implements Edit
func (e *AddConcept) Apply() error {
	return e.model.InsertConcept(e.concept, e.index)
}

// Revert implements Edit
func (e *AddConcept) Revert() error {
	index, err := e.model.RemoveConcept(e.concept.ID())
	if err != nil {
		return err
	}
	e.index = index
	return nil
}

// SetConceptState replaces the editable fields of a concept
type SetConceptState struct {
	concept  entities.Concept
	oldState entities.ConceptState
	newState entities.ConceptState
}

// NewSetConceptState captures the concept's current state as the revert target
func NewSetConceptState(concept entities.Concept, state entities.ConceptState) *SetConceptState {
	return &SetConceptState{concept: concept, oldState: entities.StateOf(concept), newState: state}
}

func (e *SetConceptState) Label() string { return "Update " + e.concept.ID() }

// Apply implements Edit
func (e *SetConceptState) Apply() error {
	e.newState.Apply(e.concept)
	return nil
}

// Revert implements Edit
func (e *SetConceptState) Revert() error {
	e.oldState.Apply(e.concept)
	return nil
}

// SetString changes one string field through a setter
type SetString struct {
	label    string
	set      func(string)
	oldValue string
	newValue string
}

// NewSetString creates a SetString edit
func NewSetString(label string, set func(string), oldValue, newValue string) *SetString {
	return &SetString{label: label, set: set, oldValue: oldValue, newValue: newValue}
}

// NewSetModelName renames the model
func NewSetModelName(model *aggregates.Model, name string) *SetString {
	return NewSetString("Rename model", model.SetName, model.Name(), name)
}

// NewSetModelPurpose changes the model purpose
func NewSetModelPurpose(model *aggregates.Model, purpose string) *SetString {
	return NewSetString("Set model purpose", model.SetPurpose, model.Purpose(), purpose)
}

func (e *SetString) Label() string { return e.label }

// Apply implements Edit
func (e *SetString) Apply() error {
	e.set(e.newValue)
	return nil
}

// Revert implements Edit
func (e *SetString) Revert() error {
	e.set(e.oldValue)
	return nil
}

// AddProperty appends a property to an owner's list
type AddProperty struct {
	owner    *entities.Properties
	property *entities.Property
	index    int
}

// NewAddProperty creates an AddProperty edit
func NewAddProperty(owner *entities.Properties, property *entities.Property) *AddProperty {
	return &AddProperty{owner: owner, property: property, index: -1}
}

func (e *AddProperty) Label() string { return "Add property " + e.property.Key }

// Apply implements Edit
func (e *AddProperty) Apply() error {
	e.owner.Insert(e.property, e.index)
	return nil
}

// Revert implements Edit
func (e *AddProperty) Revert() error {
	e.index = e.owner.Remove(e.property)
	return nil
}

// SetPropertyValue changes a property value
type SetPropertyValue struct {
	property *entities.Property
	oldValue string
	newValue string
}

// NewSetPropertyValue captures the current value as the revert target
func NewSetPropertyValue(property *entities.Property, value string) *SetPropertyValue {
	return &SetPropertyValue{property: property, oldValue: property.Value, newValue: value}
}

func (e *SetPropertyValue) Label() string { return "Set property " + e.property.Key }

// Apply implements Edit
func (e *SetPropertyValue) Apply() error {
	e.property.Value = e.newValue
	return nil
}

// Revert implements Edit
func (e *SetPropertyValue) Revert() error {
	e.property.Value = e.oldValue
	return nil
}

// AddFeature records a feature stored on the model. Apply is a no-op while a
// feature with the same name is present, so it can wrap a store that already
// happened.
type AddFeature struct {
	features *entities.Features
	feature  *entities.Feature
	label    string
}

// NewAddFeature creates an AddFeature edit
func NewAddFeature(label string, features *entities.Features, feature *entities.Feature) *AddFeature {
	return &AddFeature{features: features, feature: feature, label: label}
}

func (e *AddFeature) Label() string { return e.label }

// Apply implements Edit
func (e *AddFeature) Apply() error {
	e.features.AddAll([]*entities.Feature{e.feature})
	return nil
}

// Revert implements Edit
func (e *AddFeature) Revert() error {
	e.features.RemoveAll([]*entities.Feature{e.feature})
	return nil
}
