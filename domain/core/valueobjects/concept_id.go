package valueobjects

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var conceptIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ConceptID identifies a concept, diagram or model. IDs are opaque strings
// restricted to letters, digits, '_', '.' and '-'.
type ConceptID string

// NewConceptID creates a random ConceptID carrying the given prefix
func NewConceptID(prefix string) ConceptID {
	return ConceptID(prefix + strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// NewConceptIDFromString validates an existing identifier
func NewConceptIDFromString(id string) (ConceptID, error) {
	if id == "" {
		return "", fmt.Errorf("id cannot be empty")
	}
	if !conceptIDPattern.MatchString(id) {
		return "", fmt.Errorf("invalid characters in id: %q", id)
	}
	return ConceptID(id), nil
}

// IsValidConceptID reports whether id only holds allowed characters
func IsValidConceptID(id string) bool {
	return conceptIDPattern.MatchString(id)
}

// String returns the string representation of the ConceptID
func (id ConceptID) String() string {
	return string(id)
}

// IsZero checks if the ConceptID is the zero value
func (id ConceptID) IsZero() bool {
	return id == ""
}
