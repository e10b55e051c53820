package main

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Context is the drawing context the renderer issues primitives to.
// *gg.Context implements it; tests substitute a recorder.
type Context interface {
	pathBuilder
	NewSubPath()
	SetColor(c color.Color)
	SetLineWidth(w float64)
	SetDash(dashes ...float64)
	DrawRectangle(x, y, w, h float64)
	DrawImage(im image.Image, x, y int)
	Clear()
	Stroke()
	StrokePreserve()
	Fill()
	FillPreserve()
}

// Surface is a raster target. Width and Height are pixel dimensions; the
// display size is how large the surface is shown, which for the preview
// differs from its pixel size.
type Surface struct {
	Width         int
	Height        int
	DisplayWidth  int
	DisplayHeight int

	ctx Context
	dc  *gg.Context
}

// NewSurface returns a gg-backed surface displayed at its pixel size.
func NewSurface(width, height int) *Surface {
	dc := gg.NewContext(width, height)
	return &Surface{
		Width:         width,
		Height:        height,
		DisplayWidth:  width,
		DisplayHeight: height,
		ctx:           dc,
		dc:            dc,
	}
}

// NewSurfaceFor returns a surface sized 1:1 to img.
func NewSurfaceFor(img image.Image) *Surface {
	b := img.Bounds()
	return NewSurface(b.Dx(), b.Dy())
}

// Context returns the drawing context, or nil for a surface that cannot
// be drawn on.
func (s *Surface) Context() Context {
	if s == nil {
		return nil
	}
	return s.ctx
}

// Image returns the rendered pixels of a gg-backed surface.
func (s *Surface) Image() image.Image {
	if s == nil || s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// ScaleFactor converts displayed pixels into surface pixels vertically.
func (s *Surface) ScaleFactor() float64 {
	if s.DisplayHeight <= 0 {
		return 1
	}
	return float64(s.Height) / float64(s.DisplayHeight)
}

// MapPointerY maps a pointer offset from the displayed top edge into
// surface pixels.
func (s *Surface) MapPointerY(relY float64) float64 {
	return relY * s.ScaleFactor()
}

// Reposition moves the selected field of doc to the surface position under
// a pointer at relY displayed pixels. Without a selection nothing moves.
func Reposition(doc *Document, s *Surface, relY float64) (TextField, bool) {
	f, ok := doc.Selected()
	if !ok {
		return TextField{}, false
	}
	f.Y = s.MapPointerY(relY)
	return *f, true
}
