package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const halfBlock = "▀"

// previewArea is the terminal area available to the preview in cells.
func (m *model) previewArea() (cols, rows int) {
	rows = m.height - 3 - len(m.doc.Fields)
	return m.width, max(rows, 0)
}

// refreshPreview redraws the document onto the preview surface at the
// image's native resolution and rebuilds the terminal cells from it. Each
// cell shows two vertically stacked pixels, so the displayed height is
// twice the number of rows used.
func (m *model) refreshPreview() {
	m.previewLines = nil
	if m.img == nil {
		return
	}
	cols, rows := m.previewArea()
	if cols < 1 || rows < 1 {
		return
	}
	b := m.img.Bounds()
	if m.preview == nil || m.preview.Width != b.Dx() || m.preview.Height != b.Dy() {
		m.preview = NewSurfaceFor(m.img)
	}
	RenderFrame(m.preview, m.img, m.doc, m.fonts, true)

	dw, dh := fitDisplay(m.preview.Width, m.preview.Height, cols, rows*2)
	m.preview.DisplayWidth, m.preview.DisplayHeight = dw, dh
	m.previewTop = 1
	m.previewLeft = (cols - dw) / 2
	m.previewLines = halfBlockLines(m.preview.Image(), dw, dh, lipgloss.ColorProfile())
}

// fitDisplay scales w x h down to fit inside maxW x maxH, keeping the
// aspect ratio. It never scales up.
func fitDisplay(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Min(1, math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h)))
	dw := max(1, int(math.Round(float64(w)*scale)))
	dh := max(1, int(math.Round(float64(h)*scale)))
	return dw, dh
}

// halfBlockLines downsamples img to dw x dh pixels and encodes each pair of
// rows as one line of upper-half-block cells.
func halfBlockLines(img image.Image, dw, dh int, profile termenv.Profile) []string {
	if img == nil || dw < 1 || dh < 1 {
		return nil
	}
	small := transform.Resize(img, dw, dh, transform.Linear)
	lines := make([]string, 0, (dh+1)/2)
	for y := 0; y < dh; y += 2 {
		var sb strings.Builder
		for x := 0; x < dw; x++ {
			cell := profile.String(halfBlock).Foreground(profile.Color(hexColor(small.RGBAAt(x, y))))
			if y+1 < dh {
				cell = cell.Background(profile.Color(hexColor(small.RGBAAt(x, y+1))))
			}
			sb.WriteString(cell.String())
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// previewPointer converts a terminal cell under the mouse into a displayed
// pixel offset from the top of the preview. ok is false outside it.
func (m *model) previewPointer(x, y int) (relY float64, ok bool) {
	if m.preview == nil || len(m.previewLines) == 0 {
		return 0, false
	}
	row := y - m.previewTop
	col := x - m.previewLeft
	if row < 0 || row >= len(m.previewLines) || col < 0 || col >= m.preview.DisplayWidth {
		return 0, false
	}
	return float64(row*2 + 1), true
}
