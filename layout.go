package main

import "strings"

const (
	horizontalMargin = 40
	linePitch        = 1.2
)

// MaxLineWidth is the widest a wrapped line may be on a surface of the
// given pixel width.
func MaxLineWidth(surfaceWidth int) float64 {
	return float64(surfaceWidth - horizontalMargin)
}

// Wrap greedily breaks text on single spaces into lines whose measured
// width does not exceed maxWidth. A word that is wider than maxWidth on
// its own is never split and ends up alone on an overflowing line.
func Wrap(text string, ts TextStyle, maxWidth float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Split(text, " ") {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if ts.Measure(candidate) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// lineY returns the vertical anchor of line i of a field.
func lineY(y float64, fontSize int, i int) float64 {
	return y + float64(i)*float64(fontSize)*linePitch
}
