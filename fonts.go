package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/h2non/filetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	familyGo     = "Go"
	familyGoBold = "Go Bold"
	familyGoMono = "Go Mono"
)

var ErrNotFont = errors.New("not a font file")

// FontRegistry maps family names to parsed fonts. Built-in Go fonts are
// always present; uploaded fonts are added with Register.
type FontRegistry struct {
	mu    sync.RWMutex
	fonts map[string]*truetype.Font
}

func NewFontRegistry() *FontRegistry {
	r := &FontRegistry{fonts: make(map[string]*truetype.Font)}
	builtins := map[string][]byte{
		familyGo:     goregular.TTF,
		familyGoBold: gobold.TTF,
		familyGoMono: gomono.TTF,
	}
	for name, data := range builtins {
		f, err := truetype.Parse(data)
		if err != nil {
			panic(fmt.Sprintf("parse builtin font %s: %v", name, err))
		}
		r.fonts[name] = f
	}
	return r
}

// Register parses data and stores it under name, replacing any previous
// font with the same family.
func (r *FontRegistry) Register(name string, data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	r.mu.Lock()
	r.fonts[name] = f
	r.mu.Unlock()
	return nil
}

func (r *FontRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.fonts[name]
	return ok
}

func (r *FontRegistry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Style returns the TextStyle for family at size pixels. Unknown families
// fall back to the built-in bold face.
func (r *FontRegistry) Style(family string, size float64) TextStyle {
	r.mu.RLock()
	f, ok := r.fonts[family]
	if !ok {
		family = familyGoBold
		f = r.fonts[familyGoBold]
	}
	r.mu.RUnlock()
	return newTextStyle(family, f, size)
}

// importFont reads a font file, checks it really is a font and derives the
// family name from the file name without its extension.
func importFont(path string) (FontRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FontRecord{}, fmt.Errorf("read font: %w", err)
	}
	if !filetype.IsFont(data) {
		return FontRecord{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFont)
	}
	if _, err := truetype.Parse(data); err != nil {
		return FontRecord{}, fmt.Errorf("%s: %w: %v", filepath.Base(path), ErrNotFont, err)
	}
	return FontRecord{Name: fontFamilyName(path), Data: data}, nil
}

func fontFamilyName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

// TextStyle is the one value used both to measure and to draw text, so
// wrapping always agrees with what ends up on the surface.
type TextStyle struct {
	Family string
	Size   float64

	font  *truetype.Font
	face  font.Face
	scale fixed.Int26_6
}

func newTextStyle(family string, f *truetype.Font, size float64) TextStyle {
	return TextStyle{
		Family: family,
		Size:   size,
		font:   f,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		}),
		scale: fixed.Int26_6(size*64 + 0.5),
	}
}

// Measure returns the advance width of s in pixels.
func (ts TextStyle) Measure(s string) float64 {
	if ts.font == nil {
		return 0
	}
	var w fixed.Int26_6
	prev := truetype.Index(0)
	for i, r := range s {
		idx := ts.font.Index(r)
		w += ts.advance(prev, idx, i > 0)
		prev = idx
	}
	return fixedToFloat(w)
}

func (ts TextStyle) advance(prev, idx truetype.Index, kern bool) fixed.Int26_6 {
	a := ts.font.HMetric(ts.scale, idx).AdvanceWidth
	if kern {
		a += ts.font.Kern(ts.scale, prev, idx)
	}
	return a
}

// Metrics returns the ascent and descent of the face in pixels.
func (ts TextStyle) Metrics() (ascent, descent float64) {
	if ts.face == nil {
		return 0, 0
	}
	m := ts.face.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
