package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	require.Len(t, doc.Fields, 2)
	assert.Equal(t, 50.0, doc.Fields[0].Y)
	assert.Equal(t, 500.0, doc.Fields[1].Y)
	for _, f := range doc.Fields {
		assert.Equal(t, defaultFontSize, f.FontSize)
		assert.Empty(t, f.Text)
		assert.False(t, f.IsEditing)
	}
	assert.NotEqual(t, doc.Fields[0].ID, doc.Fields[1].ID)
	assert.Equal(t, -1, doc.SelectedIndex())
}

func TestAddFieldPlacement(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	f := doc.AddField()
	require.Len(t, doc.Fields, 3)
	assert.Equal(t, 400.0, f.Y)
	assert.Equal(t, defaultFontSize, f.FontSize)

	doc.Select(doc.Fields[1].ID)
	_, _, err := doc.RemoveSelected()
	require.NoError(t, err)
	doc.Select(doc.Fields[1].ID)
	_, _, err = doc.RemoveSelected()
	require.NoError(t, err)
	require.Len(t, doc.Fields, 1)

	assert.Equal(t, 150.0, doc.AddField().Y)
	assert.Len(t, doc.Fields, 2)
}

func TestAddFieldUniqueIDs(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	seen := map[string]bool{}
	for _, f := range doc.Fields {
		seen[f.ID] = true
	}
	for i := 0; i < 5; i++ {
		f := doc.AddField()
		assert.False(t, seen[f.ID], f.ID)
		seen[f.ID] = true
	}
}

func TestRemoveSelected(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())

	_, _, err := doc.RemoveSelected()
	assert.ErrorIs(t, err, ErrNoSelection)

	second := doc.Fields[1]
	doc.Select(second.ID)
	removed, i, err := doc.RemoveSelected()
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, second.ID, removed.ID)
	require.Len(t, doc.Fields, 1)

	doc.Select(doc.Fields[0].ID)
	_, _, err = doc.RemoveSelected()
	assert.ErrorIs(t, err, ErrLastField)
	assert.Len(t, doc.Fields, 1)
}

func TestInsertAndDeleteField(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	first := doc.Fields[0]
	require.True(t, doc.DeleteField(first.ID))
	assert.False(t, doc.DeleteField(doc.Fields[0].ID))
	assert.False(t, doc.DeleteField("nope"))

	first.IsEditing = true
	doc.InsertField(first, 0)
	require.Len(t, doc.Fields, 2)
	assert.Equal(t, first.ID, doc.Fields[0].ID)
	assert.False(t, doc.Fields[0].IsEditing)

	f := doc.AddField()
	assert.NotEqual(t, first.ID, f.ID)
}

func TestSelection(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	doc.Select(doc.Fields[1].ID)
	f, ok := doc.Selected()
	require.True(t, ok)
	assert.Equal(t, doc.Fields[1].ID, f.ID)
	assert.Equal(t, 1, doc.SelectedIndex())

	doc.Select(doc.Fields[0].ID)
	assert.Equal(t, 0, doc.SelectedIndex())
	assert.False(t, doc.Fields[1].IsEditing)

	doc.ClearSelection()
	_, ok = doc.Selected()
	assert.False(t, ok)
}

func TestSetters(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	id := doc.Fields[0].ID

	assert.True(t, doc.SetText(id, "top text"))
	assert.Equal(t, "top text", doc.Fields[0].Text)

	assert.True(t, doc.SetFontSize(id, 1000))
	assert.Equal(t, maxFontSize, doc.Fields[0].FontSize)
	assert.True(t, doc.SetFontSize(id, 1))
	assert.Equal(t, minFontSize, doc.Fields[0].FontSize)

	assert.True(t, doc.SetY(id, 123))
	assert.Equal(t, 123.0, doc.Fields[0].Y)

	assert.False(t, doc.SetText("nope", "x"))
	assert.False(t, doc.SetFontSize("nope", 10))
	assert.False(t, doc.SetY("nope", 10))
}

func TestSeed(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	doc.Seed("top", "bottom")
	assert.Equal(t, "top", doc.Fields[0].Text)
	assert.Equal(t, "bottom", doc.Fields[1].Text)

	require.True(t, doc.DeleteField(doc.Fields[1].ID))
	doc.Seed("a", "b")
	require.Len(t, doc.Fields, 2)
	assert.Equal(t, "a", doc.Fields[0].Text)
	assert.Equal(t, "b", doc.Fields[1].Text)
}

func TestReplaceFields(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	doc.Select(doc.Fields[0].ID)
	keep := doc.Fields[0].ID

	assert.False(t, doc.ReplaceFields(nil))
	assert.Len(t, doc.Fields, 2)

	replacement := []TextField{
		{ID: keep, Text: "one", Y: 10, FontSize: 30},
		{ID: "42", Text: "two", Y: 20, FontSize: 30},
	}
	require.True(t, doc.ReplaceFields(replacement))
	assert.Equal(t, 0, doc.SelectedIndex())
	assert.Equal(t, "two", doc.Fields[1].Text)

	replacement[1].Text = "changed"
	assert.Equal(t, "two", doc.Fields[1].Text)

	assert.Equal(t, "43", doc.AddField().ID)
}

func TestClone(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	doc.Fields[0].Text = "original"
	c := doc.Clone()
	c.Fields[0].Text = "copy"
	c.Style.StrokeWidth = 9
	assert.Equal(t, "original", doc.Fields[0].Text)
	assert.Equal(t, 2.0, doc.Style.StrokeWidth)
}
