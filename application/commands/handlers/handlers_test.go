package handlers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/exporter"
	"archibridge/application/workspace"
	"archibridge/domain/config"
	"archibridge/domain/events"
	"archibridge/infrastructure/messaging/logbus"
	"archibridge/infrastructure/persistence/archivefile"
	"archibridge/infrastructure/persistence/memory"
	apperrors "archibridge/pkg/errors"
)

const elementsCSV = `"ID","Type","Name","Documentation","Specialization"
"a1","BusinessActor","Customer","",""
"a2","BusinessRole","Buyer","",""
`

const relationsCSV = `"ID","Type","Name","Documentation","Source","Target","Specialization"
"r1","AssignmentRelationship","","","a1","a2",""
`

const propertiesCSV = `"ID","Key","Value"
"a1","Segment","Retail"
`

type harness struct {
	repo      *memory.DocumentRepository
	store     *archivefile.Store
	publisher *logbus.Publisher
	published []string
	docOpts   workspace.Options
	cfg       *config.DomainConfig
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zap.NewNop()
	h := &harness{
		repo:      memory.NewDocumentRepository(0),
		store:     archivefile.NewStore(logger),
		publisher: logbus.NewPublisher(logger),
		cfg:       config.DefaultDomainConfig(),
	}
	t.Cleanup(h.repo.Close)
	h.docOpts = workspace.Options{UndoLimit: 20, Domain: h.cfg, Persister: h.store, Logger: logger}
	h.publisher.Subscribe(logbus.AllEvents, func(_ context.Context, e events.DomainEvent) error {
		h.published = append(h.published, e.GetEventType())
		return nil
	})
	return h
}

func (h *harness) create(t *testing.T, name string) string {
	t.Helper()
	cmd := &commands.CreateModelCommand{Name: name}
	require.NoError(t, NewCreateModelHandler(h.repo, h.docOpts, h.cfg, zap.NewNop()).Handle(context.Background(), cmd))
	require.NotEmpty(t, cmd.ModelID)
	return cmd.ModelID
}

func (h *harness) importSet(t *testing.T, modelID string) *commands.ImportCSVCommand {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "elements.csv"), []byte(elementsCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "relations.csv"), []byte(relationsCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "properties.csv"), []byte(propertiesCSV), 0o644))

	cmd := &commands.ImportCSVCommand{ModelID: modelID, Path: filepath.Join(dir, "elements.csv")}
	handler := NewImportCSVHandler(h.repo, h.publisher, exporter.DefaultOptions(), h.cfg, zap.NewNop())
	require.NoError(t, handler.Handle(context.Background(), cmd))
	return cmd
}

func TestCreateModelHandler(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "Landscape")

	doc, err := h.repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Landscape", doc.Model.Name())
	assert.Empty(t, doc.Model.GetUncommittedEvents())
}

func TestImportCSVHandler(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "Landscape")

	cmd := h.importSet(t, id)
	assert.True(t, cmd.Result.Changed)
	assert.Equal(t, 3, cmd.Result.NewConcepts)
	assert.Equal(t, 0, cmd.Result.UpdatedConcepts)
	assert.Equal(t, 1, cmd.Result.NewProperties)
	assert.Contains(t, h.published, "model.imported")
	assert.Contains(t, h.published, "concept.added")

	doc, err := h.repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, doc.Model.GetUncommittedEvents())
	assert.True(t, doc.Stack.CanUndo())

	// the same set again changes nothing
	h.published = nil
	again := h.importSet(t, id)
	assert.False(t, again.Result.Changed)
	assert.NotContains(t, h.published, "model.imported")
}

func TestImportCSVHandler_Rejections(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "Landscape")
	handler := NewImportCSVHandler(h.repo, h.publisher, exporter.DefaultOptions(), h.cfg, zap.NewNop())

	err := handler.Handle(context.Background(), &commands.ImportCSVCommand{ModelID: id, Path: "x.csv", Delimiter: "|"})
	assert.True(t, apperrors.IsValidation(err))

	err = handler.Handle(context.Background(), &commands.ImportCSVCommand{ModelID: "missing", Path: "x.csv"})
	assert.True(t, apperrors.IsNotFound(err))

	dir := t.TempDir()
	bad := filepath.Join(dir, "elements.csv")
	require.NoError(t, os.WriteFile(bad, []byte(`"ID","Type","Name","Documentation"
"a1","NoSuchType","X",""
`), 0o644))
	err = handler.Handle(context.Background(), &commands.ImportCSVCommand{ModelID: id, Path: bad})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCSVUnknownType))
}

func TestUndoRedoHandler(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "Landscape")
	handler := NewUndoRedoHandler(h.repo, h.publisher, zap.NewNop())

	err := handler.HandleUndo(context.Background(), &commands.UndoCommand{ModelID: id})
	assert.True(t, apperrors.HasCode(err, "NOTHING_TO_UNDO"))

	h.importSet(t, id)
	doc, err := h.repo.Get(context.Background(), id)
	require.NoError(t, err)

	undo := &commands.UndoCommand{ModelID: id}
	require.NoError(t, handler.HandleUndo(context.Background(), undo))
	assert.Equal(t, "Import CSV", undo.Label)
	assert.Empty(t, doc.Model.Concepts())
	assert.Contains(t, h.published, "edit.reverted")

	redo := &commands.RedoCommand{ModelID: id}
	require.NoError(t, handler.HandleRedo(context.Background(), redo))
	assert.Equal(t, "Import CSV", redo.Label)
	assert.Len(t, doc.Model.Concepts(), 3)

	err = handler.HandleRedo(context.Background(), &commands.RedoCommand{ModelID: id})
	assert.True(t, apperrors.HasCode(err, "NOTHING_TO_REDO"))
}

func TestSaveAndOpenModelHandlers(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "Landscape")
	h.importSet(t, id)

	save := NewSaveModelHandler(h.repo, h.publisher, zap.NewNop())
	err := save.Handle(context.Background(), &commands.SaveModelCommand{ModelID: id})
	assert.True(t, apperrors.HasCode(err, "NO_FILE"))

	path := filepath.Join(t.TempDir(), "landscape.archimate")
	cmd := &commands.SaveModelCommand{ModelID: id, Path: path}
	require.NoError(t, save.Handle(context.Background(), cmd))
	assert.Equal(t, path, cmd.SavedTo)
	assert.Contains(t, h.published, "model.saved")

	saved, err := h.repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, saved.Stack.IsDirty())

	// a second workspace opens the saved file
	other := newHarness(t)
	open := &commands.OpenModelCommand{Path: path}
	require.NoError(t, NewOpenModelHandler(other.repo, other.store, other.docOpts, zap.NewNop()).Handle(context.Background(), open))
	assert.Equal(t, id, open.ModelID)

	doc, err := other.repo.Get(context.Background(), open.ModelID)
	require.NoError(t, err)
	assert.Equal(t, "Landscape", doc.Model.Name())
	assert.Len(t, doc.Model.Concepts(), 3)
	assert.Equal(t, path, doc.Model.File())
	assert.False(t, doc.Stack.CanUndo())
	assert.Empty(t, doc.Model.GetUncommittedEvents())
}

func TestOpenModelHandler_ReopenKeepsOpenDocument(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.create(t, "Landscape")

	path := filepath.Join(t.TempDir(), "landscape.archimate")
	save := NewSaveModelHandler(h.repo, h.publisher, zap.NewNop())
	require.NoError(t, save.Handle(ctx, &commands.SaveModelCommand{ModelID: id, Path: path}))
	h.importSet(t, id)

	open := NewOpenModelHandler(h.repo, h.store, h.docOpts, zap.NewNop())
	err := open.Handle(ctx, &commands.OpenModelCommand{Path: path})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, "MODEL_ALREADY_OPEN"))
	assert.Equal(t, 409, apperrors.GetDomainError(err).StatusCode)

	doc, err := h.repo.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, doc.Stack.IsDirty())
	assert.Len(t, doc.Model.Concepts(), 3)
	assert.True(t, doc.Stack.CanUndo())

	// once saved, reopening hands back the same document
	require.NoError(t, save.Handle(ctx, &commands.SaveModelCommand{ModelID: id}))
	cmd := &commands.OpenModelCommand{Path: path}
	require.NoError(t, open.Handle(ctx, cmd))
	assert.Equal(t, id, cmd.ModelID)

	same, err := h.repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Same(t, doc, same)
	assert.True(t, same.Stack.CanUndo())
}

func TestOpenModelHandler_MissingFile(t *testing.T) {
	h := newHarness(t)
	err := NewOpenModelHandler(h.repo, h.store, h.docOpts, zap.NewNop()).
		Handle(context.Background(), &commands.OpenModelCommand{Path: filepath.Join(t.TempDir(), "none.archimate")})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestExportCSVHandler(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "Landscape")
	h.importSet(t, id)

	prefix := "out-"
	header := false
	dir := t.TempDir()
	cmd := &commands.ExportCSVCommand{ModelID: id, Directory: dir, Prefix: &prefix, Delimiter: ";", WriteHeader: &header}
	require.NoError(t, NewExportCSVHandler(h.repo, exporter.DefaultOptions(), zap.NewNop()).Handle(context.Background(), cmd))

	assert.Equal(t, filepath.Join(dir, "out-elements.csv"), cmd.Files.Elements)
	data, err := os.ReadFile(cmd.Files.Elements)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ID;Type")
	assert.Contains(t, string(data), "a1;BusinessActor;Customer")
}

func TestAddImageHandler(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "Landscape")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	cmd := &commands.AddImageCommand{ModelID: id, Path: path}
	require.NoError(t, NewAddImageHandler(h.repo, h.publisher, zap.NewNop()).Handle(context.Background(), cmd))
	assert.Contains(t, cmd.Key, h.cfg.ImageFeaturePrefix)
	assert.Contains(t, h.published, "image.added")

	doc, err := h.repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, doc.Images.HasImageEntry(cmd.Key))
	assert.True(t, doc.Stack.IsDirty())
	assert.Equal(t, ImageEditLabel, doc.Stack.UndoLabel())

	// storing the same bytes again is not a second edit
	again := &commands.AddImageCommand{ModelID: id, Path: path}
	require.NoError(t, NewAddImageHandler(h.repo, h.publisher, zap.NewNop()).Handle(context.Background(), again))
	assert.Equal(t, cmd.Key, again.Key)

	undo := NewUndoRedoHandler(h.repo, h.publisher, zap.NewNop())
	require.NoError(t, undo.HandleUndo(context.Background(), &commands.UndoCommand{ModelID: id}))
	assert.False(t, doc.Images.HasImageEntry(cmd.Key))
	assert.False(t, doc.Stack.CanUndo())
}
