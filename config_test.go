package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileMissing(t *testing.T) {
	config := loadConfigFile(filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, defaultConfig(), config)
	assert.Equal(t, defaultRenderStyle(), config.RenderStyle())
	assert.Equal(t, defaultGenTimeout, config.GeneratorTimeoutDuration())
}

func TestLoadConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	data := `
confirmations = false
stroke_width = 4.2
stroke_order = "inner"
watermark = false
generator_timeout = "5s"
save_directory = "` + filepath.ToSlash(filepath.Join(dir, "out")) + `"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config := loadConfigFile(path)
	assert.False(t, config.Confirmations)
	assert.Equal(t, "Impact", config.Font)
	assert.Equal(t, defaultEndpoint, config.GeneratorEndpoint)
	assert.Equal(t, 5*time.Second, config.GeneratorTimeoutDuration())

	style := config.RenderStyle()
	assert.Equal(t, 4.0, style.StrokeWidth)
	assert.Equal(t, FillFirst, style.StrokeOrder)
	assert.False(t, style.Watermark)

	assert.Equal(t, filepath.Join(dir, "out", "meme.png"), config.GetSavePath("meme.png"))
	assert.Equal(t, filepath.Join(dir, "out", ".memedit"), config.StoreDirectory())
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o644))
	assert.Equal(t, defaultConfig(), loadConfigFile(path))
}

func TestGetSavePathWithoutDirectory(t *testing.T) {
	config := defaultConfig()
	assert.Equal(t, "meme.png", config.GetSavePath("meme.png"))
}

// captureLog redirects the standard logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestGetSavePathLogsUnusableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	buf := captureLog(t)

	config := defaultConfig()
	config.SaveDirectory = filepath.Join(blocker, "out")
	assert.Equal(t, filepath.Join(blocker, "out", "meme.png"), config.GetSavePath("meme.png"))
	assert.Contains(t, buf.String(), "create save directory")
}

func TestParseStrokeOrder(t *testing.T) {
	o, err := parseStrokeOrder(" Inner ")
	require.NoError(t, err)
	assert.Equal(t, FillFirst, o)
	o, err = parseStrokeOrder("outer")
	require.NoError(t, err)
	assert.Equal(t, StrokeFirst, o)
	_, err = parseStrokeOrder("sideways")
	assert.Error(t, err)
}

func TestClampStrokeWidth(t *testing.T) {
	assert.Equal(t, 1.0, clampStrokeWidth(0))
	assert.Equal(t, 10.0, clampStrokeWidth(25))
	assert.Equal(t, 2.5, clampStrokeWidth(2.4))
}
