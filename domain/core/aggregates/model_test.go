package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibridge/domain/config"
	"archibridge/domain/core/entities"
)

func newConcept(t *testing.T, kind entities.ConceptKind, id, name string) entities.Concept {
	t.Helper()
	c, err := entities.NewConcept(kind, id)
	require.NoError(t, err)
	c.SetName(name)
	return c
}

func TestNewModel(t *testing.T) {
	m, err := NewModel("model-1", "My Model")
	require.NoError(t, err)

	assert.Equal(t, "model-1", m.ID())
	assert.Equal(t, "My Model", m.Name())
	assert.Len(t, m.Folders(), 9)
	assert.Equal(t, "Technology & Physical", m.Folder(entities.FolderTechnology).Name())
	assert.Empty(t, m.Concepts())

	_, err = NewModel("bad id", "x")
	assert.Error(t, err)
}

func TestNewDefaultModel(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	m := NewDefaultModel(cfg)

	assert.Equal(t, cfg.DefaultModelName, m.Name())
	assert.Equal(t, cfg.ModelVersion, m.Version())
	require.Len(t, m.Diagrams(), 1)
	assert.Equal(t, cfg.DefaultViewName, m.Diagrams()[0].Name())
	assert.True(t, m.HasID(m.Diagrams()[0].ID()))
}

func TestModel_AddAndRemoveConcepts(t *testing.T) {
	m, err := NewModel("model-1", "m")
	require.NoError(t, err)

	actor := newConcept(t, entities.KindBusinessActor, "a1", "Actor")
	role := newConcept(t, entities.KindBusinessRole, "r1", "Role")
	rel := newConcept(t, entities.KindAssignmentRelationship, "rel1", "")
	rel.(*entities.Relationship).Connect(actor, role)

	require.NoError(t, m.AddConcept(actor))
	require.NoError(t, m.AddConcept(role))
	require.NoError(t, m.AddConcept(rel))

	assert.Equal(t, 2, m.Folder(entities.FolderBusiness).Len())
	assert.Equal(t, 1, m.Folder(entities.FolderRelations).Len())
	assert.Len(t, m.Elements(), 2)
	assert.Len(t, m.Relationships(), 1)
	assert.NoError(t, m.Validate())

	err = m.AddConcept(newConcept(t, entities.KindBusinessRole, "a1", "dup"))
	assert.Error(t, err)

	index, err := m.RemoveConcept("a1")
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	_, ok := m.ConceptByID("a1")
	assert.False(t, ok)
	assert.Error(t, m.Validate())

	require.NoError(t, m.InsertConcept(actor, index))
	assert.Equal(t, "a1", m.Folder(entities.FolderBusiness).Concepts()[0].ID())

	_, err = m.RemoveConcept("missing")
	assert.Error(t, err)

	evts := m.GetUncommittedEvents()
	assert.Len(t, evts, 5)
	assert.Equal(t, "concept.added", evts[0].GetEventType())
	assert.Equal(t, "concept.removed", evts[3].GetEventType())
	m.MarkEventsAsCommitted()
	assert.Empty(t, m.GetUncommittedEvents())
}

func TestModel_ReferencedImagePaths(t *testing.T) {
	m, err := NewModel("model-1", "m")
	require.NoError(t, err)

	view := entities.NewDiagramModel("v1", "View")
	group := &entities.DiagramObject{ID: "g1", Type: entities.DiagramObjectGroup}
	group.Children = append(group.Children,
		&entities.DiagramObject{ID: "i2", Type: entities.DiagramObjectImage, ImagePath: "images/b.png"},
	)
	view.AddChild(&entities.DiagramObject{ID: "i1", Type: entities.DiagramObjectImage, ImagePath: "images/a.png"})
	view.AddChild(group)
	view.AddChild(&entities.DiagramObject{ID: "i3", Type: entities.DiagramObjectImage, ImagePath: "images/a.png"})
	view.AddChild(&entities.DiagramObject{ID: "n1", Type: entities.DiagramObjectNote})
	m.AddDiagram(view)

	assert.Equal(t, []string{"images/a.png", "images/b.png"}, m.ReferencedImagePaths())
	assert.True(t, m.HasID("i2"))
	assert.True(t, m.HasID("model-1"))
	assert.False(t, m.HasID("nope"))
}
