package edits

import (
	"errors"
	"sync"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// StackEventType identifies a change in the stack
type StackEventType int

const (
	StackExecuted StackEventType = iota
	StackUndone
	StackRedone
	StackFlushed
)

// StackEvent is delivered to listeners after the stack changes
type StackEvent struct {
	Type  StackEventType
	Label string
}

// Listener observes stack changes
type Listener func(StackEvent)

// Stack is the undo/redo history of one model
type Stack struct {
	mu        sync.Mutex
	undo      []Edit
	redo      []Edit
	limit     int
	saveDepth int
	listeners []Listener
}

// NewStack creates a stack. limit <= 0 keeps unlimited history.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// AddListener registers a listener
func (s *Stack) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Execute applies e and pushes it on the undo history. The redo history is discarded.
func (s *Stack) Execute(e Edit) error {
	s.mu.Lock()
	if err := e.Apply(); err != nil {
		s.mu.Unlock()
		return err
	}

	s.undo = append(s.undo, e)
	if s.saveDepth > len(s.undo)-1 {
		// the saved state was on the discarded redo branch
		s.saveDepth = -1
	}
	s.redo = nil
	if s.limit > 0 && len(s.undo) > s.limit {
		drop := len(s.undo) - s.limit
		s.undo = s.undo[drop:]
		s.saveDepth -= drop
		if s.saveDepth < 0 {
			s.saveDepth = -1
		}
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, StackEvent{Type: StackExecuted, Label: e.Label()})
	return nil
}

// Undo reverts the most recent edit
func (s *Stack) Undo() (Edit, error) {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return nil, ErrNothingToUndo
	}

	e := s.undo[len(s.undo)-1]
	if err := e.Revert(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, e)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, StackEvent{Type: StackUndone, Label: e.Label()})
	return e, nil
}

// Redo re-applies the most recently undone edit
func (s *Stack) Redo() (Edit, error) {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return nil, ErrNothingToRedo
	}

	e := s.redo[len(s.redo)-1]
	if err := e.Apply(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, e)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, StackEvent{Type: StackRedone, Label: e.Label()})
	return e, nil
}

// CanUndo reports whether Undo would do something
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would do something
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// UndoLabel returns the label of the edit Undo would revert
func (s *Stack) UndoLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Label()
}

// RedoLabel returns the label of the edit Redo would re-apply
func (s *Stack) RedoLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Label()
}

// MarkSaveLocation records the current position as the saved state
func (s *Stack) MarkSaveLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveDepth = len(s.undo)
}

// IsDirty reports whether the model differs from the saved state
func (s *Stack) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveDepth != len(s.undo)
}

// Flush clears the whole history
func (s *Stack) Flush() {
	s.mu.Lock()
	s.undo = nil
	s.redo = nil
	s.saveDepth = 0
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, StackEvent{Type: StackFlushed})
}

func (s *Stack) snapshotListeners() []Listener {
	out := make([]Listener, len(s.listeners))
	copy(out, s.listeners)
	return out
}

func notify(listeners []Listener, event StackEvent) {
	for _, l := range listeners {
		l(event)
	}
}
