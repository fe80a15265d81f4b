// Package edits is the model edit journal. Every change to a model goes through
// an Edit that knows how to revert itself; a Stack keeps the undo/redo history.
package edits

import (
	"errors"
	"fmt"
)

// Edit is a reversible change
type Edit interface {
	Label() string
	Apply() error
	Revert() error
}

// Compound applies a sequence of edits as one unit and reverts them in reverse order
type Compound struct {
	label string
	edits []Edit
}

// NewCompound creates an empty compound edit
func NewCompound(label string) *Compound {
	return &Compound{label: label}
}

// Label implements Edit
func (c *Compound) Label() string {
	return c.label
}

// Add appends an edit; nil edits are ignored
func (c *Compound) Add(e Edit) {
	if e != nil {
		c.edits = append(c.edits, e)
	}
}

// Len returns the number of child edits
func (c *Compound) Len() int {
	return len(c.edits)
}

// IsEmpty reports whether there is nothing to apply
func (c *Compound) IsEmpty() bool {
	return len(c.edits) == 0
}

// Edits returns the child edits in application order
func (c *Compound) Edits() []Edit {
	out := make([]Edit, len(c.edits))
	copy(out, c.edits)
	return out
}

// Apply runs every child edit. If one fails the ones already applied are
// reverted, so the compound either applies fully or not at all.
func (c *Compound) Apply() error {
	for i, e := range c.edits {
		if err := e.Apply(); err != nil {
			rollback := revertAll(c.edits[:i])
			return errors.Join(fmt.Errorf("%s: %w", c.label, err), rollback)
		}
	}
	return nil
}

// Revert undoes every child edit in reverse order
func (c *Compound) Revert() error {
	return revertAll(c.edits)
}

func revertAll(edits []Edit) error {
	var errs []error
	for i := len(edits) - 1; i >= 0; i-- {
		if err := edits[i].Revert(); err != nil {
			errs = append(errs, fmt.Errorf("revert %s: %w", edits[i].Label(), err))
		}
	}
	return errors.Join(errs...)
}
