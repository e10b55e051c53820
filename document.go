package main

import (
	"errors"
	"strconv"
)

const (
	defaultFontSize = 48
	minFontSize     = 8
	maxFontSize     = 200
	fontSizeStep    = 4
	addFieldOffset  = 100
	addFieldMaxY    = 400
)

var (
	ErrLastField   = errors.New("cannot remove the last text field")
	ErrNoSelection = errors.New("no text field selected")
)

// TextField is one independently positioned line of caption text. Y is in
// native image pixels.
type TextField struct {
	ID        string  `toml:"id"`
	Text      string  `toml:"text"`
	Y         float64 `toml:"y"`
	FontSize  int     `toml:"font_size"`
	IsEditing bool    `toml:"-"`
}

// Document is the editor state the renderer works from: the text fields,
// the shared render style and the source image reference.
type Document struct {
	Fields []TextField
	Style  RenderStyle
	Image  string

	nextID int
}

// NewDocument returns a document with the two default fields.
func NewDocument(style RenderStyle) *Document {
	d := &Document{Style: style}
	d.Fields = []TextField{d.newField(50), d.newField(500)}
	return d
}

func (d *Document) newField(y float64) TextField {
	d.nextID++
	return TextField{
		ID:       strconv.Itoa(d.nextID),
		Y:        y,
		FontSize: defaultFontSize,
	}
}

// AddField appends an empty field 100px below the last one, capped at 400.
func (d *Document) AddField() TextField {
	y := float64(addFieldOffset)
	if n := len(d.Fields); n > 0 {
		y = min(addFieldMaxY, d.Fields[n-1].Y+addFieldOffset)
	}
	f := d.newField(y)
	d.Fields = append(d.Fields, f)
	return f
}

// RemoveSelected removes the selected field and returns it with its index.
// The last remaining field is never removed.
func (d *Document) RemoveSelected() (TextField, int, error) {
	i := d.SelectedIndex()
	if i < 0 {
		return TextField{}, -1, ErrNoSelection
	}
	if len(d.Fields) <= 1 {
		return TextField{}, -1, ErrLastField
	}
	f := d.Fields[i]
	d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
	return f, i, nil
}

// InsertField puts f back at index i. Used by undo.
func (d *Document) InsertField(f TextField, i int) {
	if i < 0 || i > len(d.Fields) {
		i = len(d.Fields)
	}
	f.IsEditing = false
	d.Fields = append(d.Fields, TextField{})
	copy(d.Fields[i+1:], d.Fields[i:])
	d.Fields[i] = f
	if n, err := strconv.Atoi(f.ID); err == nil && n > d.nextID {
		d.nextID = n
	}
}

// DeleteField removes the field with id regardless of selection, keeping
// at least one field.
func (d *Document) DeleteField(id string) bool {
	i := d.index(id)
	if i < 0 || len(d.Fields) <= 1 {
		return false
	}
	d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
	return true
}

// Select marks id as the only field being edited. An unknown id clears
// the selection.
func (d *Document) Select(id string) {
	for i := range d.Fields {
		d.Fields[i].IsEditing = d.Fields[i].ID == id
	}
}

func (d *Document) ClearSelection() {
	d.Select("")
}

func (d *Document) SelectedIndex() int {
	for i, f := range d.Fields {
		if f.IsEditing {
			return i
		}
	}
	return -1
}

func (d *Document) Selected() (*TextField, bool) {
	i := d.SelectedIndex()
	if i < 0 {
		return nil, false
	}
	return &d.Fields[i], true
}

func (d *Document) Field(id string) (*TextField, bool) {
	i := d.index(id)
	if i < 0 {
		return nil, false
	}
	return &d.Fields[i], true
}

func (d *Document) index(id string) int {
	for i, f := range d.Fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// SetText replaces the text of field id.
func (d *Document) SetText(id, text string) bool {
	f, ok := d.Field(id)
	if !ok {
		return false
	}
	f.Text = text
	return true
}

// SetFontSize sets the font size of field id, clamped to the allowed range.
func (d *Document) SetFontSize(id string, size int) bool {
	f, ok := d.Field(id)
	if !ok {
		return false
	}
	f.FontSize = max(minFontSize, min(maxFontSize, size))
	return true
}

// SetY moves field id to the native pixel offset y.
func (d *Document) SetY(id string, y float64) bool {
	f, ok := d.Field(id)
	if !ok {
		return false
	}
	f.Y = y
	return true
}

// Seed writes top and bottom into the first two fields, adding a second
// field when only one exists.
func (d *Document) Seed(top, bottom string) {
	if len(d.Fields) < 2 {
		d.AddField()
	}
	d.Fields[0].Text = top
	d.Fields[1].Text = bottom
}

// ReplaceFields swaps in a whole field collection, keeping the selection
// on the same id when it still exists. An empty collection is refused.
func (d *Document) ReplaceFields(fields []TextField) bool {
	if len(fields) == 0 {
		return false
	}
	selected := ""
	if f, ok := d.Selected(); ok {
		selected = f.ID
	}
	d.Fields = append([]TextField(nil), fields...)
	for i := range d.Fields {
		if n, err := strconv.Atoi(d.Fields[i].ID); err == nil && n > d.nextID {
			d.nextID = n
		}
	}
	d.Select(selected)
	return true
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	c.Fields = append([]TextField(nil), d.Fields...)
	return &c
}
