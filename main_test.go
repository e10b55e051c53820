package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseFlags(t *testing.T) {
	config := defaultConfig()
	opts, err := parseFlags(config, []string{
		"-render", "-image", "cat.png", "-out", "out.png",
		"-text", "top", "-text", "bottom", "-text", "third",
		"-stroke", "3", "-order", "inner", "-watermark=false",
	})
	require.NoError(t, err)
	assert.True(t, opts.render)
	assert.Equal(t, "cat.png", opts.image)
	assert.Equal(t, "out.png", opts.out)
	assert.Equal(t, textList{"top", "bottom", "third"}, opts.texts)
	assert.Equal(t, 3.0, opts.stroke)
	assert.Equal(t, "inner", opts.order)
	assert.False(t, opts.watermark)
	assert.Equal(t, "Impact", opts.font)
}

func TestParseFlagsPositionalImage(t *testing.T) {
	opts, err := parseFlags(defaultConfig(), []string{"dog.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "dog.jpg", opts.image)
	assert.Equal(t, defaultExportName, opts.out)
	assert.False(t, opts.render)
	assert.True(t, opts.watermark)
}

func TestRenderHeadless(t *testing.T) {
	dir := t.TempDir()
	config := defaultConfig()
	config.SaveDirectory = dir
	fontPath := filepath.Join(dir, "Custom.ttf")
	require.NoError(t, os.WriteFile(fontPath, goregular.TTF, 0o644))

	out := filepath.Join(dir, "result.png")
	opts := options{
		image:     writeTestPNG(t, dir, 200, 150),
		out:       out,
		texts:     textList{"top", "bottom", "third"},
		font:      fontPath,
		stroke:    2,
		order:     "outer",
		watermark: true,
	}
	require.NoError(t, renderHeadless(config, opts))
	assert.FileExists(t, out)
	assert.Equal(t, "Custom", config.Font)
	assert.FileExists(t, filepath.Join(dir, ".memedit", "fonts", "Custom.ttf"))
}

func TestRenderHeadlessNeedsImage(t *testing.T) {
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	assert.Error(t, renderHeadless(config, options{out: "x.png"}))
}

func TestLooksLikeFontFile(t *testing.T) {
	assert.True(t, looksLikeFontFile("fonts/Anton.TTF"))
	assert.True(t, looksLikeFontFile("x.otf"))
	assert.False(t, looksLikeFontFile("Impact"))
}

func TestNewModelSeedsTexts(t *testing.T) {
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := newModel(config, options{image: "cat.png", texts: textList{"a", "b", "c"}, font: "Go"})
	defer m.watcher.Close()

	require.Len(t, m.doc.Fields, 3)
	assert.Equal(t, "c", m.doc.Fields[2].Text)
	assert.Equal(t, "Go", m.doc.Style.FontFamily)
	assert.Equal(t, 1, m.decodeGen)
	assert.NotNil(t, m.Init())
}
