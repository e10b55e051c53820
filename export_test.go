package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPNG writes a gray w x h PNG into dir and returns its path.
func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, grayImage(w, h)))
	path := filepath.Join(dir, "source.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExportPNGFile(t *testing.T) {
	dir := t.TempDir()
	doc := NewDocument(defaultRenderStyle())
	doc.Image = writeTestPNG(t, dir, 320, 240)
	doc.Fields[0].Text = "top text"
	doc.Fields[1].Text = "bottom text"
	doc.Select(doc.Fields[0].ID)

	path, err := ExportPNGFile(context.Background(), filepath.Join(dir, "out", "meme"), doc, NewFontRegistry())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "meme.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
}

func TestExportPNGHasNoSelectionChrome(t *testing.T) {
	dir := t.TempDir()
	fonts := NewFontRegistry()
	doc := NewDocument(defaultRenderStyle())
	doc.Image = writeTestPNG(t, dir, 400, 300)
	doc.Fields[0].Text = "top"

	var plain bytes.Buffer
	require.NoError(t, ExportPNG(context.Background(), &plain, doc, fonts))

	doc.Select(doc.Fields[0].ID)
	var selected bytes.Buffer
	require.NoError(t, ExportPNG(context.Background(), &selected, doc, fonts))

	assert.Equal(t, plain.Bytes(), selected.Bytes())
}

func TestExportWithoutImage(t *testing.T) {
	doc := NewDocument(defaultRenderStyle())
	_, err := RenderExport(context.Background(), doc, NewFontRegistry())
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestLoadImageSources(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, 16, 8)

	img, err := LoadImage(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	img, err = LoadImage(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dy())

	notImage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0o644))
	_, err = LoadImage(context.Background(), notImage)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = LoadImage(context.Background(), filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	_, err = LoadImage(context.Background(), "data:image/png;base64")
	assert.Error(t, err)
}

func TestIsLocalRef(t *testing.T) {
	assert.True(t, isLocalRef("cat.png"))
	assert.False(t, isLocalRef(""))
	assert.False(t, isLocalRef("data:image/png;base64,AAAA"))
	assert.False(t, isLocalRef("https://example.com/cat.png"))
}
