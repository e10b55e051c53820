package main

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitDisplay(t *testing.T) {
	w, h := fitDisplay(1000, 500, 100, 100)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	w, h = fitDisplay(10, 10, 100, 100)
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)

	w, h = fitDisplay(0, 10, 100, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestHalfBlockLines(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.White)
		}
	}

	lines := halfBlockLines(img, 4, 3, termenv.Ascii)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 4, strings.Count(l, halfBlock))
	}

	assert.Nil(t, halfBlockLines(nil, 4, 4, termenv.Ascii))
	assert.Nil(t, halfBlockLines(img, 0, 4, termenv.Ascii))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#4c1d95", hexColor(color.RGBA{0x4c, 0x1d, 0x95, 0xff}))
}

func TestRefreshPreviewAndPointer(t *testing.T) {
	m := testModel(t)
	m.width, m.height = 80, 40
	m.img = grayImage(400, 200)
	m.refreshPreview()

	require.NotNil(t, m.preview)
	assert.Equal(t, 400, m.preview.Width)
	assert.Equal(t, 200, m.preview.Height)
	assert.Equal(t, 80, m.preview.DisplayWidth)
	assert.Equal(t, 40, m.preview.DisplayHeight)
	assert.Len(t, m.previewLines, 20)
	assert.Equal(t, 0, m.previewLeft)

	relY, ok := m.previewPointer(10, m.previewTop+4)
	require.True(t, ok)
	assert.Equal(t, 9.0, relY)

	_, ok = m.previewPointer(10, 0)
	assert.False(t, ok)
	_, ok = m.previewPointer(80, m.previewTop)
	assert.False(t, ok)
}
