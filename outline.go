package main

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// pathBuilder is the subset of a drawing context needed to trace glyph
// outlines.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	ClosePath()
}

// appendTextPath traces the outlines of s with its left edge at x and its
// baseline at y. It returns the advance width in pixels.
func appendTextPath(pb pathBuilder, ts TextStyle, s string, x, y float64) float64 {
	if ts.font == nil {
		return 0
	}
	var gb truetype.GlyphBuf
	dot := fixed.Int26_6(0)
	prev := truetype.Index(0)
	for i, r := range s {
		idx := ts.font.Index(r)
		if i > 0 {
			dot += ts.font.Kern(ts.scale, prev, idx)
		}
		if err := gb.Load(ts.font, ts.scale, idx, font.HintingNone); err == nil {
			ox := x + fixedToFloat(dot)
			start := 0
			for _, end := range gb.Ends {
				appendContour(pb, gb.Points[start:end], ox, y)
				start = end
			}
		}
		dot += ts.advance(prev, idx, false)
		prev = idx
	}
	return fixedToFloat(dot)
}

// appendContour traces one closed TrueType contour. Glyph points are y-up;
// the low flag bit marks on-curve points, and two consecutive off-curve
// points imply an on-curve point at their midpoint.
func appendContour(pb pathBuilder, ps []truetype.Point, dx, dy float64) {
	if len(ps) == 0 {
		return
	}
	pt := func(p truetype.Point) (float64, float64) {
		return dx + fixedToFloat(p.X), dy - fixedToFloat(p.Y)
	}
	sx, sy := pt(ps[0])
	others := ps[1:]
	if ps[0].Flags&0x01 == 0 {
		last := ps[len(ps)-1]
		lx, ly := pt(last)
		if last.Flags&0x01 != 0 {
			sx, sy = lx, ly
			others = ps[:len(ps)-1]
		} else {
			sx, sy = (sx+lx)/2, (sy+ly)/2
			others = ps
		}
	}
	pb.MoveTo(sx, sy)
	qx, qy, on0 := sx, sy, true
	for _, p := range others {
		x, y := pt(p)
		on := p.Flags&0x01 != 0
		switch {
		case on && on0:
			pb.LineTo(x, y)
		case on:
			pb.QuadraticTo(qx, qy, x, y)
		case !on0:
			pb.QuadraticTo(qx, qy, (qx+x)/2, (qy+y)/2)
		}
		qx, qy, on0 = x, y, on
	}
	if on0 {
		pb.LineTo(sx, sy)
	} else {
		pb.QuadraticTo(qx, qy, sx, sy)
	}
	pb.ClosePath()
}
