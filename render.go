package main

import (
	"image"
	"image/color"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	selectionPadding   = 10
	selectionLineWidth = 2
	selectionDash      = 5
	handleSize         = 8

	watermarkText  = "meme generator"
	watermarkSize  = 14
	watermarkInset = 10
)

var (
	strokeColor    color.Color = color.Black
	fillColor      color.Color = color.White
	selectionColor color.Color = color.RGBA{0x4c, 0x1d, 0x95, 0xff}
	watermarkColor color.Color = color.NRGBA{0xff, 0xff, 0xff, 0x80}
)

// RenderFrame clears s and draws bg, every field of doc and, when enabled,
// the watermark. Selection chrome is drawn for the editing field only when
// showSelection is set.
func RenderFrame(s *Surface, bg image.Image, doc *Document, fonts *FontRegistry, showSelection bool) {
	ctx := s.Context()
	if ctx == nil {
		return
	}
	ctx.SetColor(color.Transparent)
	ctx.Clear()
	if bg != nil {
		b := bg.Bounds()
		ctx.DrawImage(bg, -b.Min.X, -b.Min.Y)
	}
	for _, f := range doc.Fields {
		RenderField(s, fonts, f, doc.Style, showSelection && f.IsEditing)
	}
	if doc.Style.Watermark {
		RenderWatermark(s, fonts)
	}
}

// RenderField draws the wrapped, uppercased text of f centred horizontally
// on s, one line every 1.2 font sizes starting at f.Y.
func RenderField(s *Surface, fonts *FontRegistry, f TextField, st RenderStyle, selected bool) {
	ctx := s.Context()
	if ctx == nil {
		return
	}
	ts := fonts.Style(st.FontFamily, float64(f.FontSize))
	cx := float64(s.Width) / 2
	upper := cases.Upper(language.Und)
	for i, line := range Wrap(f.Text, ts, MaxLineWidth(s.Width)) {
		y := lineY(f.Y, f.FontSize, i)
		text := upper.String(line)
		w := drawOutlinedText(ctx, ts, st, text, cx, y)
		if selected {
			drawSelection(ctx, w, float64(f.FontSize), cx, y)
		}
	}
}

// drawOutlinedText draws text centred on (cx, cy) with a black stroke and
// white fill in the order st asks for, and returns the text width.
func drawOutlinedText(ctx Context, ts TextStyle, st RenderStyle, text string, cx, cy float64) float64 {
	w := ts.Measure(text)
	ascent, descent := ts.Metrics()
	ctx.NewSubPath()
	appendTextPath(ctx, ts, text, cx-w/2, cy+(ascent-descent)/2)
	ctx.SetLineWidth(st.StrokeWidth)
	if st.StrokeOrder == FillFirst {
		ctx.SetColor(fillColor)
		ctx.FillPreserve()
		ctx.SetColor(strokeColor)
		ctx.Stroke()
		return w
	}
	ctx.SetColor(strokeColor)
	ctx.StrokePreserve()
	ctx.SetColor(fillColor)
	ctx.Fill()
	return w
}

// drawSelection outlines one line of width w with a dashed padded box and
// puts a square handle on the middle of its left and right edges.
func drawSelection(ctx Context, w, size, cx, cy float64) {
	left := cx - w/2 - selectionPadding
	right := cx + w/2 + selectionPadding

	ctx.SetColor(selectionColor)
	ctx.SetLineWidth(selectionLineWidth)
	ctx.SetDash(selectionDash, selectionDash)
	ctx.DrawRectangle(left, cy-size/2-selectionPadding, w+2*selectionPadding, size+2*selectionPadding)
	ctx.Stroke()
	ctx.SetDash()

	for _, x := range []float64{left, right} {
		ctx.DrawRectangle(x-handleSize/2, cy-handleSize/2, handleSize, handleSize)
		ctx.Fill()
	}
}

// RenderWatermark draws the branding text in the bottom right corner.
func RenderWatermark(s *Surface, fonts *FontRegistry) {
	ctx := s.Context()
	if ctx == nil {
		return
	}
	ts := fonts.Style(familyGo, watermarkSize)
	_, descent := ts.Metrics()
	x := float64(s.Width-watermarkInset) - ts.Measure(watermarkText)
	ctx.NewSubPath()
	appendTextPath(ctx, ts, watermarkText, x, float64(s.Height-watermarkInset)-descent)
	ctx.SetColor(watermarkColor)
	ctx.Fill()
}
