package events

import "time"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(modelID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: modelID,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// Concept events

// ConceptAdded is raised when a concept is placed in a model folder
type ConceptAdded struct {
	BaseEvent
	ConceptID string `json:"concept_id"`
	Kind      string `json:"kind"`
	Folder    string `json:"folder"`
}

// NewConceptAdded creates a ConceptAdded event
func NewConceptAdded(modelID, conceptID, kind, folder string, timestamp time.Time) ConceptAdded {
	return ConceptAdded{
		BaseEvent: newBase(modelID, "concept.added", timestamp),
		ConceptID: conceptID,
		Kind:      kind,
		Folder:    folder,
	}
}

// ConceptRemoved is raised when a concept leaves the model
type ConceptRemoved struct {
	BaseEvent
	ConceptID string `json:"concept_id"`
}

// NewConceptRemoved creates a ConceptRemoved event
func NewConceptRemoved(modelID, conceptID string, timestamp time.Time) ConceptRemoved {
	return ConceptRemoved{
		BaseEvent: newBase(modelID, "concept.removed", timestamp),
		ConceptID: conceptID,
	}
}

// Model events

// ModelImported is raised after a CSV import has been applied
type ModelImported struct {
	BaseEvent
	Source          string `json:"source"`
	NewConcepts     int    `json:"new_concepts"`
	UpdatedConcepts int    `json:"updated_concepts"`
	NewProperties   int    `json:"new_properties"`
}

// NewModelImported creates a ModelImported event
func NewModelImported(modelID, source string, newConcepts, updatedConcepts, newProperties int, timestamp time.Time) ModelImported {
	return ModelImported{
		BaseEvent:       newBase(modelID, "model.imported", timestamp),
		Source:          source,
		NewConcepts:     newConcepts,
		UpdatedConcepts: updatedConcepts,
		NewProperties:   newProperties,
	}
}

// ModelSaved is raised after the model was written to its archive file
type ModelSaved struct {
	BaseEvent
	Path         string `json:"path"`
	PrunedImages int    `json:"pruned_images"`
}

// NewModelSaved creates a ModelSaved event
func NewModelSaved(modelID, path string, prunedImages int, timestamp time.Time) ModelSaved {
	return ModelSaved{
		BaseEvent:    newBase(modelID, "model.saved", timestamp),
		Path:         path,
		PrunedImages: prunedImages,
	}
}

// EditReverted is raised on undo, EditReapplied on redo
type EditReverted struct {
	BaseEvent
	Label string `json:"label"`
}

// NewEditReverted creates an EditReverted event
func NewEditReverted(modelID, label string, timestamp time.Time) EditReverted {
	return EditReverted{BaseEvent: newBase(modelID, "edit.reverted", timestamp), Label: label}
}

// EditReapplied is raised on redo
type EditReapplied struct {
	BaseEvent
	Label string `json:"label"`
}

// NewEditReapplied creates an EditReapplied event
func NewEditReapplied(modelID, label string, timestamp time.Time) EditReapplied {
	return EditReapplied{BaseEvent: newBase(modelID, "edit.reapplied", timestamp), Label: label}
}

// Image events

// ImageAdded is raised when new image bytes are stored on the model
type ImageAdded struct {
	BaseEvent
	Key  string `json:"key"`
	Size int    `json:"size"`
}

// NewImageAdded creates an ImageAdded event
func NewImageAdded(modelID, key string, size int, timestamp time.Time) ImageAdded {
	return ImageAdded{
		BaseEvent: newBase(modelID, "image.added", timestamp),
		Key:       key,
		Size:      size,
	}
}
