package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshPreview()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case imageDecodedMsg:
		m.handleDecoded(msg)
		return m, nil

	case sourceChangedMsg:
		if m.doc.Image == "" || !isLocalRef(m.doc.Image) {
			return m, nil
		}
		if abs, err := expandPath(m.doc.Image); err != nil || abs != msg.path {
			return m, nil
		}
		return m, m.requestDecode(m.doc.Image)

	case exportedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", msg.err)
			return m, nil
		}
		m.successMessage = fmt.Sprintf("Exported to %s", msg.path)
		if err := writeClipboardText(msg.path); err != nil {
			log.Printf("copy export path: %v", err)
		}
		return m, nil

	case captionMsg:
		m.generating = false
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Error generating caption: %s", msg.err)
			return m, nil
		}
		old := append([]TextField(nil), m.doc.Fields...)
		m.doc.Seed(msg.caption.TopText, msg.caption.BottomText)
		m.recordAction(ActionSeed, FieldsData{New: append([]TextField(nil), m.doc.Fields...), Old: old})
		m.successMessage = "Caption generated"
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.updateHelp(msg)
		}
		switch m.mode {
		case ModeTextInput:
			return m.updateTextInput(msg)
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModePrompt:
			return m.updatePrompt(msg)
		case ModeHistory:
			return m.updateHistory(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	if m.mode == ModeTextInput || m.mode == ModeFileInput || m.mode == ModePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || m.help || msg.Type != tea.MouseLeft {
		return m, nil
	}
	relY, ok := m.previewPointer(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	f, ok := m.doc.Selected()
	if !ok {
		return m, nil
	}
	oldY := f.Y
	moved, ok := Reposition(m.doc, m.preview, relY)
	if !ok {
		return m, nil
	}
	m.recordAction(ActionMoveField, MoveFieldData{ID: moved.ID, NewY: moved.Y, OldY: oldY})
	m.refreshPreview()
	return m, nil
}

func (m model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
		return m, nil
	case "esc":
		m.doc.ClearSelection()
		m.refreshPreview()
		return m, nil
	case "tab":
		m.cycleSelection(1)
		return m, nil
	case "shift+tab":
		m.cycleSelection(-1)
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.selectNumbered(key)
		return m, nil

	case "enter", "e":
		f, ok := m.doc.Selected()
		if !ok {
			m.errorMessage = "Select a text field first (tab)"
			return m, nil
		}
		m.originalText = f.Text
		return m, m.startInput(ModeTextInput, "Text: ", f.Text)

	case "a":
		f := m.doc.AddField()
		m.recordAction(ActionAddField, FieldData{Field: f, Index: len(m.doc.Fields) - 1})
		m.doc.Select(f.ID)
		m.refreshPreview()
		return m, nil

	case "d", "x":
		if _, ok := m.doc.Selected(); !ok {
			m.errorMessage = capitalize(ErrNoSelection.Error())
			return m, nil
		}
		if len(m.doc.Fields) <= 1 {
			m.errorMessage = capitalize(ErrLastField.Error())
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmRemoveField
			return m, nil
		}
		m.removeSelected()
		return m, nil

	case "+", "=", "-":
		f, ok := m.doc.Selected()
		if !ok {
			m.errorMessage = "Select a text field first (tab)"
			return m, nil
		}
		step := fontSizeStep
		if key == "-" {
			step = -step
		}
		oldSize := f.FontSize
		m.doc.SetFontSize(f.ID, oldSize+step)
		if f.FontSize != oldSize {
			m.recordAction(ActionResizeField, ResizeFieldData{ID: f.ID, NewSize: f.FontSize, OldSize: oldSize})
			m.refreshPreview()
		}
		return m, nil

	case "j", "k", "J", "K", "up", "down", "shift+up", "shift+down":
		m.handleNudge(key, m.getMoveSpeed(key))
		return m, nil

	case "s":
		next := m.doc.Style
		if next.StrokeOrder == StrokeFirst {
			next.StrokeOrder = FillFirst
		} else {
			next.StrokeOrder = StrokeFirst
		}
		m.applyStyle(next)
		return m, nil
	case "[", "]":
		next := m.doc.Style
		if key == "[" {
			next.StrokeWidth = clampStrokeWidth(next.StrokeWidth - strokeWidthStep)
		} else {
			next.StrokeWidth = clampStrokeWidth(next.StrokeWidth + strokeWidthStep)
		}
		m.applyStyle(next)
		return m, nil
	case "f":
		next := m.doc.Style
		next.FontFamily = nextFamily(m.fonts.Families(), next.FontFamily)
		m.applyStyle(next)
		return m, nil
	case "w":
		next := m.doc.Style
		next.Watermark = !next.Watermark
		m.applyStyle(next)
		return m, nil

	case "o":
		m.fileOp = FileOpOpenImage
		return m, m.startInput(ModeFileInput, "Open image: ", m.doc.Image)
	case "F":
		m.fileOp = FileOpImportFont
		return m, m.startInput(ModeFileInput, "Import font: ", "")
	case "S":
		if m.doc.Image == "" {
			m.errorMessage = "No image loaded (press o)"
			return m, nil
		}
		m.fileOp = FileOpExportPNG
		return m, m.startInput(ModeFileInput, "Export PNG: ", defaultExportName)

	case "ctrl+s":
		id, err := m.store.PutMeme(Snapshot{
			Created: time.Now(),
			Image:   m.doc.Image,
			Fields:  m.doc.Fields,
			Style:   m.doc.Style,
		})
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error saving meme: %s", err)
			return m, nil
		}
		if id == 0 {
			m.successMessage = "Saving disabled (no store directory)"
			return m, nil
		}
		m.successMessage = fmt.Sprintf("Saved meme #%d", id)
		return m, nil

	case "h":
		ids, err := m.store.ListMemes()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error listing memes: %s", err)
			return m, nil
		}
		if len(ids) == 0 {
			m.errorMessage = "No saved memes"
			return m, nil
		}
		m.history = ids
		m.historyIndex = len(ids) - 1
		m.mode = ModeHistory
		return m, nil

	case "g":
		if m.generating {
			m.errorMessage = "Caption generation already running"
			return m, nil
		}
		return m, m.startInput(ModePrompt, "Describe the meme: ", "")

	case "p":
		f, ok := m.doc.Selected()
		if !ok {
			m.errorMessage = "Select a text field first (tab)"
			return m, nil
		}
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error reading clipboard: %s", err)
			return m, nil
		}
		text = cleanClipboardText(text)
		if text == "" || text == f.Text {
			return m, nil
		}
		m.recordAction(ActionEditText, EditTextData{ID: f.ID, NewText: text, OldText: f.Text})
		m.doc.SetText(f.ID, text)
		m.refreshPreview()
		return m, nil

	case "u":
		cmd := m.undo()
		m.refreshPreview()
		return m, cmd
	case "U":
		cmd := m.redo()
		m.refreshPreview()
		return m, cmd
	}
	return m, nil
}

// startInput switches to an input mode with the line editor primed.
func (m *model) startInput(mode Mode, prompt, value string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) stopInput() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *model) removeSelected() {
	f, i, err := m.doc.RemoveSelected()
	if err != nil {
		m.errorMessage = capitalize(err.Error())
		return
	}
	m.recordAction(ActionRemoveField, FieldData{Field: f, Index: i})
	m.refreshPreview()
}

func (m *model) applyStyle(next RenderStyle) {
	if next == m.doc.Style {
		return
	}
	m.recordAction(ActionStyle, StyleData{New: next, Old: m.doc.Style})
	m.doc.Style = next
	m.refreshPreview()
}

// nextFamily returns the family after current, or the first one when
// current is not registered.
func nextFamily(families []string, current string) string {
	if len(families) == 0 {
		return current
	}
	for i, f := range families {
		if f == current {
			return families[(i+1)%len(families)]
		}
	}
	return families[0]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// updateTextInput edits the selected field live; enter keeps the edit and
// esc restores the text it had before editing started.
func (m model) updateTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := m.doc.Selected()
	if !ok {
		m.stopInput()
		return m, nil
	}
	switch msg.String() {
	case "enter":
		text := cleanClipboardText(m.input.Value())
		m.doc.SetText(f.ID, text)
		if text != m.originalText {
			m.recordAction(ActionEditText, EditTextData{ID: f.ID, NewText: text, OldText: m.originalText})
		}
		m.stopInput()
		m.refreshPreview()
		return m, nil
	case "esc":
		m.doc.SetText(f.ID, m.originalText)
		m.stopInput()
		m.refreshPreview()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.doc.SetText(f.ID, cleanClipboardText(m.input.Value()))
	m.refreshPreview()
	return m, cmd
}

func (m model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.errorMessage = ""
		m.stopInput()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.fileOp {
		case FileOpOpenImage:
			if value == "" {
				m.errorMessage = "Enter a path, data URI or URL"
				return m, nil
			}
			m.stopInput()
			m.errorMessage = ""
			return m, m.openImage(value)

		case FileOpImportFont:
			if value == "" {
				m.errorMessage = "Enter a font file path"
				return m, nil
			}
			path, err := expandPath(value)
			if err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			rec, err := importFont(path)
			if err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			if err := m.fonts.Register(rec.Name, rec.Data); err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			if err := m.store.PutFont(rec); err != nil {
				m.errorMessage = fmt.Sprintf("Font loaded but not saved: %s", err)
			} else {
				m.errorMessage = ""
			}
			m.stopInput()
			next := m.doc.Style
			next.FontFamily = rec.Name
			m.applyStyle(next)
			m.successMessage = fmt.Sprintf("Loaded font %s", rec.Name)
			return m, nil

		case FileOpExportPNG:
			if value == "" {
				value = defaultExportName
			}
			if !strings.HasSuffix(strings.ToLower(value), ".png") {
				value += ".png"
			}
			path := m.config.GetSavePath(value)
			if expanded, err := expandPath(path); err == nil {
				path = expanded
			}
			m.stopInput()
			m.errorMessage = ""
			if _, err := os.Stat(path); err == nil && m.config.Confirmations {
				m.pendingPath = path
				m.mode = ModeConfirm
				m.confirmAction = ConfirmOverwriteFile
				return m, nil
			}
			m.successMessage = "Exporting..."
			return m, exportCmd(m.doc, m.fonts, path)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopInput()
		return m, nil
	case "enter":
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			m.errorMessage = "Enter a description"
			return m, nil
		}
		m.stopInput()
		m.errorMessage = ""
		m.generating = true
		return m, generateCmd(m.generator, prompt, m.config.GeneratorTimeoutDuration())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "h":
		m.mode = ModeNormal
		return m, nil
	case "j", "down":
		if m.historyIndex < len(m.history)-1 {
			m.historyIndex++
		}
		return m, nil
	case "k", "up":
		if m.historyIndex > 0 {
			m.historyIndex--
		}
		return m, nil
	case "enter":
		m.mode = ModeNormal
		if m.historyIndex < 0 || m.historyIndex >= len(m.history) {
			return m, nil
		}
		return m, m.loadSnapshot(m.history[m.historyIndex])
	}
	return m, nil
}

// loadSnapshot restores a saved meme. Fields and style are one undoable
// action; the image is reloaded through the normal decode path.
func (m *model) loadSnapshot(id int) tea.Cmd {
	snap, ok, err := m.store.GetMeme(id)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error loading meme #%d: %s", id, err)
		return nil
	}
	if !ok {
		m.errorMessage = fmt.Sprintf("Meme #%d not found", id)
		return nil
	}
	data := SnapshotData{
		Fields: FieldsData{Old: append([]TextField(nil), m.doc.Fields...)},
		Style:  StyleData{Old: m.doc.Style, New: m.doc.Style},
	}
	if snap.Style.FontFamily != "" {
		data.Style.New = snap.Style
	}
	fieldsChanged := m.doc.ReplaceFields(snap.Fields)
	data.Fields.New = append([]TextField(nil), m.doc.Fields...)
	if fieldsChanged || data.Style.New != data.Style.Old {
		m.doc.Style = data.Style.New
		m.recordAction(ActionLoadSnapshot, data)
	}
	m.successMessage = fmt.Sprintf("Loaded meme #%d", id)
	m.refreshPreview()
	if snap.Image != "" && snap.Image != m.doc.Image {
		return m.openImage(snap.Image)
	}
	return nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmRemoveField:
			m.removeSelected()
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			path := m.pendingPath
			m.pendingPath = ""
			m.successMessage = "Exporting..."
			return m, exportCmd(m.doc, m.fonts, path)
		}
		return m, nil
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}
