package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibridge/application/edits"
	"archibridge/application/importer"
	"archibridge/domain/core/aggregates"
	"archibridge/domain/core/entities"
	"archibridge/infrastructure/csvfile"
	apperrors "archibridge/pkg/errors"
)

func sampleModel(t *testing.T) *aggregates.Model {
	t.Helper()
	m, err := aggregates.NewModel("model-1", "Café model")
	require.NoError(t, err)
	m.SetPurpose("Purpose")
	m.Properties().Add(entities.NewProperty("Owner", "Ops"))

	actor, err := entities.NewConcept(entities.KindBusinessActor, "a1")
	require.NoError(t, err)
	actor.SetName("Actor")
	actor.SetDocumentation("0 leading zero doc")
	actor.SetSpecialization("Customer")
	actor.Properties().Add(entities.NewProperty("Code", "007"))
	actor.Properties().Add(entities.NewProperty("Code", "008"))

	role, err := entities.NewConcept(entities.KindBusinessRole, "r1")
	require.NoError(t, err)
	role.SetName("Role")

	rel, err := entities.NewConcept(entities.KindAssignmentRelationship, "rel1")
	require.NoError(t, err)
	rel.(*entities.Relationship).Connect(actor, role)
	rel.Properties().Add(entities.NewProperty("Weight", "1"))

	for _, c := range []entities.Concept{actor, role, rel} {
		require.NoError(t, m.AddConcept(c))
	}
	return m
}

func TestExport_WritesThreeFiles(t *testing.T) {
	dir := t.TempDir()
	set, err := New(sampleModel(t), nil).Export(context.Background(), dir, DefaultOptions())
	require.NoError(t, err)

	elements, err := os.ReadFile(set.Elements)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(elements)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Type,Name,Documentation,Specialization", lines[0])
	assert.Equal(t, "model-1,ArchimateModel,Café model,Purpose,", lines[1])
	assert.Equal(t, "a1,BusinessActor,Actor,0 leading zero doc,Customer", lines[2])

	relations, err := os.ReadFile(set.Relations)
	require.NoError(t, err)
	assert.Contains(t, string(relations), "rel1,AssignmentRelationship,,,a1,r1,")

	props, err := os.ReadFile(set.Properties)
	require.NoError(t, err)
	assert.Equal(t, "ID,Key,Value\nmodel-1,Owner,Ops\na1,Code,007\na1,Code,008\nrel1,Weight,1\n", string(props))
}

func TestExport_Options(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Prefix:              "out-",
		Delimiter:           "tab",
		Encoding:            "ANSI",
		WriteHeader:         false,
		UseLeadingCharsHack: true,
	}
	set, err := New(sampleModel(t), nil).Export(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out-elements.csv"), set.Elements)

	raw, err := os.ReadFile(set.Elements)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "model-1\tArchimateModel\tCaf\xe9 model"))
	assert.Contains(t, string(raw), "\"=\"\"0 leading zero doc\"\"\"")

	props, err := os.ReadFile(set.Properties)
	require.NoError(t, err)
	assert.Contains(t, string(props), "a1\tCode\t\"=\"\"007\"\"\"")
}

func TestExport_StripNewLines(t *testing.T) {
	m := sampleModel(t)
	m.SetPurpose("line one\r\nline two")

	set, err := New(m, nil).Export(context.Background(), t.TempDir(), Options{StripNewLines: true})
	require.NoError(t, err)

	raw, err := os.ReadFile(set.Elements)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "line one line two")
}

func TestExport_RoundTripHasNoChanges(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"defaults", DefaultOptions()},
		{"semicolon ansi no header", Options{Delimiter: ";", Encoding: "ANSI"}},
		{"bom with leading chars", Options{Encoding: "UTF-8 BOM", WriteHeader: true, UseLeadingCharsHack: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sampleModel(t)
			set, err := New(m, nil).Export(context.Background(), t.TempDir(), tt.opts)
			require.NoError(t, err)

			delimiter, err := csvfile.ParseDelimiter(tt.opts.Delimiter)
			require.NoError(t, err)
			enc, err := csvfile.ParseEncoding(tt.opts.Encoding)
			require.NoError(t, err)

			plan, err := importer.New(m,
				importer.WithDelimiter(delimiter),
				importer.WithEncoding(enc),
			).Plan(context.Background(), set.Elements)
			require.NoError(t, err)
			assert.True(t, plan.IsEmpty(), "unexpected edits: %d", plan.Edit.Len())
		})
	}
}

func TestExport_IntoEmptyModelRecreatesContent(t *testing.T) {
	src := sampleModel(t)
	set, err := New(src, nil).Export(context.Background(), t.TempDir(), DefaultOptions())
	require.NoError(t, err)

	dst, err := aggregates.NewModel("model-1", "other")
	require.NoError(t, err)
	_, err = importer.New(dst).Import(context.Background(), set.Properties, edits.NewStack(0))
	require.NoError(t, err)

	assert.Equal(t, "Café model", dst.Name())
	assert.Len(t, dst.Concepts(), 3)
	a1, ok := dst.ConceptByID("a1")
	require.True(t, ok)
	assert.Equal(t, "Customer", a1.Specialization())
	assert.Equal(t, "008", a1.Properties().Nth("Code", 1).Value)
}

func TestExport_Errors(t *testing.T) {
	m := sampleModel(t)

	_, err := New(m, nil).Export(context.Background(), filepath.Join(t.TempDir(), "missing"), DefaultOptions())
	assert.True(t, apperrors.IsNotFound(err))

	_, err = New(m, nil).Export(context.Background(), t.TempDir(), Options{Delimiter: "|"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = New(m, nil).Export(context.Background(), t.TempDir(), Options{Encoding: "EBCDIC"})
	assert.True(t, apperrors.IsValidation(err))
}
