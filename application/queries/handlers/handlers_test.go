package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"archibridge/application/edits"
	"archibridge/application/queries"
	"archibridge/application/workspace"
	"archibridge/domain/config"
	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
	"archibridge/infrastructure/persistence/memory"
	apperrors "archibridge/pkg/errors"
)

func setupRepo(t *testing.T) (*memory.DocumentRepository, *workspace.Document) {
	t.Helper()
	repo := memory.NewDocumentRepository(0)
	t.Cleanup(repo.Close)

	model, err := aggregates.NewModel("model-1", "Landscape")
	require.NoError(t, err)
	model.SetPurpose("Target state")
	doc := workspace.NewDocument(model, workspace.Options{
		UndoLimit: 10,
		Domain:    config.DefaultDomainConfig(),
		Logger:    zap.NewNop(),
	})
	require.NoError(t, repo.Save(context.Background(), doc))
	return repo, doc
}

func addGoal(t *testing.T, doc *workspace.Document, id string) {
	t.Helper()
	goal, err := entities.NewConcept(entities.KindGoal, id)
	require.NoError(t, err)
	goal.Properties().Add(entities.NewProperty("owner", "ops"))
	require.NoError(t, doc.Stack.Execute(edits.NewAddConcept(doc.Model, goal)))
}

func pngData(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestHandleGetModel(t *testing.T) {
	repo, doc := setupRepo(t)
	addGoal(t, doc, "g1")
	h := NewModelQueryHandler(repo, zap.NewNop())

	summary, err := h.HandleGetModel(context.Background(), queries.GetModelQuery{ModelID: "model-1"})
	require.NoError(t, err)

	assert.Equal(t, "Landscape", summary.Name)
	assert.Equal(t, "Target state", summary.Purpose)
	assert.Equal(t, 1, summary.Elements)
	assert.Equal(t, 0, summary.Relationships)
	assert.Equal(t, 1, summary.Properties)
	assert.True(t, summary.Dirty)
	assert.True(t, summary.CanUndo)
	assert.False(t, summary.CanRedo)
	assert.NotEmpty(t, summary.UndoLabel)

	var motivation *queries.FolderSummary
	for i := range summary.Folders {
		if summary.Folders[i].Type == string(entities.FolderMotivation) {
			motivation = &summary.Folders[i]
		}
	}
	require.NotNil(t, motivation)
	assert.Equal(t, 1, motivation.Concepts)
}

func TestHandleGetModel_Errors(t *testing.T) {
	repo, _ := setupRepo(t)
	h := NewModelQueryHandler(repo, zap.NewNop())

	_, err := h.HandleGetModel(context.Background(), queries.GetModelQuery{})
	assert.Error(t, err)

	_, err = h.HandleGetModel(context.Background(), queries.GetModelQuery{ModelID: "missing"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHandleListModels(t *testing.T) {
	repo, _ := setupRepo(t)
	other, err := aggregates.NewModel("model-2", "Baseline")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), workspace.NewDocument(other, workspace.Options{Logger: zap.NewNop()})))

	h := NewModelQueryHandler(repo, zap.NewNop())
	result, err := h.HandleListModels(context.Background(), queries.ListModelsQuery{})
	require.NoError(t, err)

	require.Len(t, result.Models, 2)
	assert.Equal(t, "Baseline", result.Models[0].Name)
	assert.Equal(t, "Landscape", result.Models[1].Name)
}

func TestImageQueries(t *testing.T) {
	repo, doc := setupRepo(t)
	data := pngData(t)
	key := doc.Images.ImageKey(data, "png")
	require.NoError(t, doc.Images.AddByteContentEntry(key, data))

	view := entities.NewDiagramModel("v1", "View")
	view.AddChild(&entities.DiagramObject{ID: "o1", Type: entities.DiagramObjectImage, ImagePath: key})
	doc.Model.AddDiagram(view)

	h := NewImageQueryHandler(repo, zap.NewNop())

	list, err := h.HandleListImages(context.Background(), queries.ListImagesQuery{ModelID: "model-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{key}, list.Referenced)
	assert.Equal(t, []string{key}, list.Stored)

	img, err := h.HandleGetImage(context.Background(), queries.GetImageQuery{ModelID: "model-1", Key: key})
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, data, img.Data)
	assert.True(t, img.ContentAddressed)

	_, err = h.HandleGetImage(context.Background(), queries.GetImageQuery{ModelID: "model-1", Key: "images/none.png"})
	assert.True(t, apperrors.HasCode(err, "IMAGE_NOT_FOUND"))
}

func TestHandleGetImage_KeyKinds(t *testing.T) {
	repo, doc := setupRepo(t)
	data := pngData(t)
	h := NewImageQueryHandler(repo, zap.NewNop())

	// legacy archives keep entry names as keys
	require.NoError(t, doc.Images.AddByteContentEntry("images/logo.png", data))
	img, err := h.HandleGetImage(context.Background(), queries.GetImageQuery{ModelID: "model-1", Key: "images/logo.png"})
	require.NoError(t, err)
	assert.False(t, img.ContentAddressed)

	// features outside the image prefix are not served, even when they decode
	doc.Model.Features().Put("settings/banner", base64.StdEncoding.EncodeToString(data))
	_, err = h.HandleGetImage(context.Background(), queries.GetImageQuery{ModelID: "model-1", Key: "settings/banner"})
	assert.True(t, apperrors.HasCode(err, "IMAGE_NOT_FOUND"))
}

func TestHandleListImages_Empty(t *testing.T) {
	repo, _ := setupRepo(t)
	h := NewImageQueryHandler(repo, zap.NewNop())

	list, err := h.HandleListImages(context.Background(), queries.ListImagesQuery{ModelID: "model-1"})
	require.NoError(t, err)
	assert.NotNil(t, list.Referenced)
	assert.Empty(t, list.Referenced)
	assert.Empty(t, list.Stored)
}
