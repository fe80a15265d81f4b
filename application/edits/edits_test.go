package edits

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
)

type recordingEdit struct {
	name     string
	log      *[]string
	applyErr error
}

func (e *recordingEdit) Label() string { return e.name }

func (e *recordingEdit) Apply() error {
	if e.applyErr != nil {
		return e.applyErr
	}
	*e.log = append(*e.log, "apply "+e.name)
	return nil
}

func (e *recordingEdit) Revert() error {
	*e.log = append(*e.log, "revert "+e.name)
	return nil
}

func TestCompound_AppliesInOrderAndRevertsInReverse(t *testing.T) {
	var log []string
	c := NewCompound("batch")
	c.Add(&recordingEdit{name: "a", log: &log})
	c.Add(nil)
	c.Add(&recordingEdit{name: "b", log: &log})

	assert.Equal(t, 2, c.Len())
	require.NoError(t, c.Apply())
	require.NoError(t, c.Revert())
	assert.Equal(t, []string{"apply a", "apply b", "revert b", "revert a"}, log)
}

func TestCompound_FailedApplyRollsBack(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	c := NewCompound("batch")
	c.Add(&recordingEdit{name: "a", log: &log})
	c.Add(&recordingEdit{name: "b", log: &log})
	c.Add(&recordingEdit{name: "c", log: &log, applyErr: boom})

	err := c.Apply()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"apply a", "apply b", "revert b", "revert a"}, log)
}

func TestStack_UndoRedoAndDirtyState(t *testing.T) {
	var log []string
	var events []StackEvent
	s := NewStack(0)
	s.AddListener(func(e StackEvent) { events = append(events, e) })

	assert.False(t, s.IsDirty())
	_, err := s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)

	require.NoError(t, s.Execute(&recordingEdit{name: "a", log: &log}))
	assert.True(t, s.IsDirty())
	s.MarkSaveLocation()
	assert.False(t, s.IsDirty())

	require.NoError(t, s.Execute(&recordingEdit{name: "b", log: &log}))
	assert.Equal(t, "b", s.UndoLabel())

	undone, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "b", undone.Label())
	assert.False(t, s.IsDirty())
	assert.True(t, s.CanRedo())
	assert.Equal(t, "b", s.RedoLabel())

	_, err = s.Redo()
	require.NoError(t, err)
	assert.True(t, s.IsDirty())
	_, err = s.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)

	// diverge from the saved state through the redo branch
	_, _ = s.Undo()
	_, _ = s.Undo()
	require.NoError(t, s.Execute(&recordingEdit{name: "c", log: &log}))
	assert.False(t, s.CanRedo())
	assert.True(t, s.IsDirty())
	_, _ = s.Undo()
	assert.True(t, s.IsDirty())

	assert.Equal(t, StackExecuted, events[0].Type)
	assert.Equal(t, StackUndone, events[2].Type)

	s.Flush()
	assert.False(t, s.CanUndo())
	assert.False(t, s.IsDirty())
}

func TestStack_FailedExecuteLeavesHistoryAlone(t *testing.T) {
	s := NewStack(0)
	var log []string
	err := s.Execute(&recordingEdit{name: "x", log: &log, applyErr: errors.New("no")})
	require.Error(t, err)
	assert.False(t, s.CanUndo())
	assert.False(t, s.IsDirty())
}

func TestStack_Limit(t *testing.T) {
	var log []string
	s := NewStack(2)
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, s.Execute(&recordingEdit{name: n, log: &log}))
	}
	_, _ = s.Undo()
	_, _ = s.Undo()
	assert.False(t, s.CanUndo())
	assert.Equal(t, []string{"apply a", "apply b", "apply c", "revert c", "revert b"}, log)
}

func TestModelEdits_RoundTrip(t *testing.T) {
	model, err := aggregates.NewModel("m1", "before")
	require.NoError(t, err)
	existing, _ := entities.NewConcept(entities.KindBusinessActor, "a1")
	existing.SetName("Actor")
	require.NoError(t, model.AddConcept(existing))
	prop := entities.NewProperty("k", "v1")
	existing.Properties().Add(prop)

	added, _ := entities.NewConcept(entities.KindBusinessRole, "r1")

	state := entities.StateOf(existing)
	state.Name = "Renamed"

	c := NewCompound("import")
	c.Add(NewSetModelName(model, "after"))
	c.Add(NewSetModelPurpose(model, "why"))
	c.Add(NewAddConcept(model, added))
	c.Add(NewSetConceptState(existing, state))
	c.Add(NewSetPropertyValue(prop, "v2"))
	c.Add(NewAddProperty(model.Properties(), entities.NewProperty("mk", "mv")))

	stack := NewStack(0)
	require.NoError(t, stack.Execute(c))

	assert.Equal(t, "after", model.Name())
	assert.Equal(t, "why", model.Purpose())
	assert.Equal(t, "Renamed", existing.Name())
	assert.Equal(t, "v2", prop.Value)
	assert.Equal(t, 1, model.Properties().Len())
	assert.Equal(t, 2, model.Folder(entities.FolderBusiness).Len())

	_, err = stack.Undo()
	require.NoError(t, err)
	assert.Equal(t, "before", model.Name())
	assert.Equal(t, "", model.Purpose())
	assert.Equal(t, "Actor", existing.Name())
	assert.Equal(t, "v1", prop.Value)
	assert.Equal(t, 0, model.Properties().Len())
	assert.Equal(t, 1, model.Folder(entities.FolderBusiness).Len())
	_, found := model.ConceptByID("r1")
	assert.False(t, found)

	_, err = stack.Redo()
	require.NoError(t, err)
	assert.Equal(t, 2, model.Folder(entities.FolderBusiness).Len())
	assert.Equal(t, "Renamed", existing.Name())
}

func TestAddFeature_WrapsStoredFeature(t *testing.T) {
	features := entities.NewFeatures()
	features.Put("images/a.png", "data")
	stored := features.All()[0]

	stack := NewStack(0)
	require.NoError(t, stack.Execute(NewAddFeature("Add Image", features, stored)))
	assert.Equal(t, 1, features.Len())
	assert.True(t, stack.IsDirty())
	assert.Equal(t, "Add Image", stack.UndoLabel())

	_, err := stack.Undo()
	require.NoError(t, err)
	assert.False(t, features.Has("images/a.png"))
	assert.False(t, stack.IsDirty())

	_, err = stack.Redo()
	require.NoError(t, err)
	value, ok := features.Get("images/a.png")
	assert.True(t, ok)
	assert.Equal(t, "data", value)
}
