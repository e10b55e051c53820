package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// imageDecodedMsg carries the result of one decode request. gen is the
// request's generation; only the latest generation may update the model.
type imageDecodedMsg struct {
	gen int
	ref string
	img image.Image
	err error
}

type exportedMsg struct {
	path string
	err  error
}

type captionMsg struct {
	caption Caption
	err     error
}

func decodeCmd(gen int, ref string) tea.Cmd {
	return func() tea.Msg {
		img, err := LoadImage(context.Background(), ref)
		return imageDecodedMsg{gen: gen, ref: ref, img: img, err: err}
	}
}

// requestDecode starts decoding ref and makes every earlier request stale.
func (m *model) requestDecode(ref string) tea.Cmd {
	m.decodeGen++
	m.pendingImage = ref
	m.recordImage = false
	return decodeCmd(m.decodeGen, ref)
}

// openImage is requestDecode for a user-chosen image; a successful decode
// is recorded for undo.
func (m *model) openImage(ref string) tea.Cmd {
	cmd := m.requestDecode(ref)
	m.recordImage = true
	return cmd
}

// handleDecoded applies a finished decode. Stale results are dropped, and
// a failed decode leaves the current image untouched.
func (m *model) handleDecoded(msg imageDecodedMsg) {
	if msg.gen != m.decodeGen {
		return
	}
	m.pendingImage = ""
	if msg.ref == "" && errors.Is(msg.err, ErrNoImage) {
		m.img = nil
		m.doc.Image = ""
		m.preview = nil
		m.refreshPreview()
		return
	}
	if msg.err != nil {
		m.errorMessage = fmt.Sprintf("Error loading image: %s", msg.err)
		return
	}
	if m.recordImage && msg.ref != m.doc.Image {
		m.recordAction(ActionImage, ImageData{New: msg.ref, Old: m.doc.Image})
	}
	m.doc.Image = msg.ref
	m.img = msg.img
	m.preview = nil
	m.watcher.Watch(msg.ref)
	m.refreshPreview()
}

// exportCmd renders a copy of the document so later edits cannot reach the
// export in flight.
func exportCmd(doc *Document, fonts *FontRegistry, filename string) tea.Cmd {
	snapshot := doc.Clone()
	return func() tea.Msg {
		path, err := ExportPNGFile(context.Background(), filename, snapshot, fonts)
		return exportedMsg{path: path, err: err}
	}
}

func generateCmd(g *Generator, prompt string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		c, err := g.Generate(ctx, prompt)
		return captionMsg{caption: c, err: err}
	}
}
