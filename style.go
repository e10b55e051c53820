package main

import (
	"fmt"
	"math"
	"strings"
)

// StrokeOrder selects whether the outline is drawn before or after the
// fill of each line.
type StrokeOrder int

const (
	// StrokeFirst strokes then fills, leaving only the outer half of the
	// stroke visible.
	StrokeFirst StrokeOrder = iota
	// FillFirst fills then strokes, so the stroke overlaps into the fill.
	FillFirst
)

const (
	minStrokeWidth  = 1.0
	maxStrokeWidth  = 10.0
	strokeWidthStep = 0.5
)

func (o StrokeOrder) String() string {
	if o == FillFirst {
		return "inner"
	}
	return "outer"
}

func (o StrokeOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *StrokeOrder) UnmarshalText(b []byte) error {
	v, err := parseStrokeOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func parseStrokeOrder(s string) (StrokeOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outer", "stroke_first", "stroke-first":
		return StrokeFirst, nil
	case "inner", "fill_first", "fill-first":
		return FillFirst, nil
	}
	return StrokeFirst, fmt.Errorf("unknown stroke order %q", s)
}

// RenderStyle is shared by every field of a document.
type RenderStyle struct {
	FontFamily  string      `toml:"font"`
	StrokeWidth float64     `toml:"stroke_width"`
	StrokeOrder StrokeOrder `toml:"stroke_order"`
	Watermark   bool        `toml:"watermark"`
}

func defaultRenderStyle() RenderStyle {
	return RenderStyle{
		FontFamily:  "Impact",
		StrokeWidth: 2,
		StrokeOrder: StrokeFirst,
		Watermark:   true,
	}
}

// clampStrokeWidth snaps w to the 0.5 grid inside [1, 10].
func clampStrokeWidth(w float64) float64 {
	w = math.Round(w/strokeWidthStep) * strokeWidthStep
	return math.Max(minStrokeWidth, math.Min(maxStrokeWidth, w))
}
