package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapEmpty(t *testing.T) {
	ts := NewFontRegistry().Style(familyGoBold, 48)
	assert.Empty(t, Wrap("", ts, 760))
}

func TestWrapSingleLongWord(t *testing.T) {
	ts := NewFontRegistry().Style(familyGoBold, 48)
	word := "SUPERCALIFRAGILISTICEXPIALIDOCIOUS"
	require.Greater(t, ts.Measure(word), 100.0)

	lines := Wrap(word, ts, 100)
	assert.Equal(t, []string{word}, lines)
}

func TestWrapFitsWidth(t *testing.T) {
	ts := NewFontRegistry().Style(familyGoBold, 48)
	text := "one does not simply walk into mordor without a good meme"
	maxWidth := 300.0

	lines := Wrap(text, ts, maxWidth)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		if strings.Contains(line, " ") {
			assert.LessOrEqual(t, ts.Measure(line), maxWidth, line)
		}
	}
	assert.Equal(t, text, strings.Join(lines, " "))
}

func TestWrapIsStable(t *testing.T) {
	ts := NewFontRegistry().Style(familyGoBold, 48)
	maxWidth := MaxLineWidth(600)
	lines := Wrap("when the code compiles on the first try and you do not trust it", ts, maxWidth)
	for _, line := range lines {
		assert.Equal(t, []string{line}, Wrap(line, ts, maxWidth))
	}
}

func TestWrapShortTextSingleLine(t *testing.T) {
	ts := NewFontRegistry().Style(familyGoBold, 48)
	assert.Equal(t, []string{"HELLO WORLD"}, Wrap("HELLO WORLD", ts, MaxLineWidth(800)))
}

func TestMaxLineWidth(t *testing.T) {
	assert.Equal(t, 760.0, MaxLineWidth(800))
}

func TestLineY(t *testing.T) {
	assert.Equal(t, 50.0, lineY(50, 48, 0))
	assert.InDelta(t, 50+2*48*1.2, lineY(50, 48, 2), 1e-9)
}
