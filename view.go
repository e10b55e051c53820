package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#4c1d95")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var helpLines = []string{
	"memedit Help",
	"============",
	"",
	"Fields:",
	"-------",
	"  tab/shift+tab    Select next/previous text field",
	"  1-9              Select field by number",
	"  e/Enter          Edit text of the selected field (Enter=keep, Esc=revert)",
	"  a                Add a text field below the last one",
	"  d/x              Remove the selected field",
	"  +/-              Grow/shrink the selected field's font",
	"  j/k/↓/↑          Move the selected field 10px",
	"  J/K              Move the selected field 50px",
	"  mouse click      Move the selected field to the clicked row",
	"  p                Paste clipboard text into the selected field",
	"  Esc              Clear selection",
	"",
	"Style:",
	"------",
	"  s                Toggle stroke order (outer/inner)",
	"  [/]              Thinner/thicker stroke",
	"  f                Cycle font family",
	"  F                Import a .ttf/.otf font",
	"  w                Toggle watermark",
	"",
	"Image and files:",
	"----------------",
	"  o                Open image (path, data: URI or http(s) URL)",
	"  S                Export as PNG",
	"  Ctrl+S           Save meme to history",
	"  h                Browse saved memes",
	"  g                Generate captions from a description",
	"",
	"General:",
	"--------",
	"  u                Undo last action",
	"  U                Redo last undone action",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	result.WriteString(titleStyle.Render("memedit"))
	if m.doc.Image != "" {
		result.WriteString(" ")
		result.WriteString(dimStyle.Render(truncate(m.doc.Image, max(m.width-12, 8))))
	}
	result.WriteString("\n")

	_, rows := m.previewArea()
	body := m.bodyLines()
	for i := 0; i < rows; i++ {
		if i < len(body) {
			result.WriteString(body[i])
		}
		result.WriteString("\n")
	}

	for i, f := range m.doc.Fields {
		text := f.Text
		if text == "" {
			text = "(empty)"
		}
		line := fmt.Sprintf("%d. y=%-5.0f size=%-3d %s", i+1, f.Y, f.FontSize, text)
		if f.IsEditing {
			result.WriteString(selectedStyle.Render(truncate("> "+line, m.width)))
		} else {
			result.WriteString(truncate("  "+line, m.width))
		}
		result.WriteString("\n")
	}

	switch m.mode {
	case ModeTextInput, ModeFileInput, ModePrompt:
		result.WriteString(m.input.View())
	default:
		st := m.doc.Style
		family := st.FontFamily
		if m.fonts != nil && !m.fonts.Has(family) {
			family += " (using " + familyGoBold + ")"
		}
		result.WriteString(dimStyle.Render(fmt.Sprintf("font: %s | stroke: %.1f %s | watermark: %t",
			family, st.StrokeWidth, st.StrokeOrder, st.Watermark)))
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

// bodyLines is the area between the title and the field list: the preview,
// or the history list while browsing saved memes.
func (m model) bodyLines() []string {
	if m.mode == ModeHistory {
		lines := []string{"Saved memes:"}
		for i, id := range m.history {
			line := fmt.Sprintf("  meme #%d", id)
			if i == m.historyIndex {
				line = selectedStyle.Render(fmt.Sprintf("> meme #%d", id))
			}
			lines = append(lines, line)
		}
		return lines
	}
	if m.img == nil {
		if m.pendingImage != "" {
			return []string{"", "  Loading " + truncate(m.pendingImage, max(m.width-12, 8)) + "..."}
		}
		return []string{"", "  No image loaded. Press o to open one, ? for help."}
	}
	pad := strings.Repeat(" ", max(m.previewLeft, 0))
	lines := make([]string, len(m.previewLines))
	for i, l := range m.previewLines {
		lines[i] = pad + l
	}
	return lines
}

func (m model) statusLine() string {
	var statusLine string
	switch m.mode {
	case ModeTextInput:
		statusLine = "Mode: TEXT | Enter=keep, Esc=revert"
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpOpenImage:
			opStr = "Open image"
		case FileOpImportFont:
			opStr = "Import font"
		case FileOpExportPNG:
			opStr = "Export PNG"
		}
		statusLine = fmt.Sprintf("Mode: FILE | %s | Enter=confirm, Esc=cancel", opStr)
	case ModePrompt:
		statusLine = "Mode: PROMPT | Enter=generate, Esc=cancel"
	case ModeHistory:
		statusLine = "Mode: HISTORY | ↑/↓=navigate, Enter=load, Esc=cancel"
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmRemoveField:
			message = "Remove this text field? (y/n)"
		case ConfirmQuit:
			message = "Quit memedit? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		statusLine = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		statusLine = fmt.Sprintf("Mode: %s", m.modeString())
		if f, ok := m.doc.Selected(); ok {
			statusLine += fmt.Sprintf(" | Selected: %d", m.doc.index(f.ID)+1)
		}
		if m.generating {
			statusLine += " | Generating..."
		}
		if m.successMessage == "" && m.errorMessage == "" {
			statusLine += " | ? for help | q to quit"
		}
	}
	if m.successMessage != "" {
		statusLine += " | " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		statusLine += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	return statusLine
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "TEXT"
	case ModeFileInput:
		return "FILE"
	case ModePrompt:
		return "PROMPT"
	case ModeHistory:
		return "HISTORY"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	end := min(start+visibleHeight, len(helpLines))
	return strings.Join(helpLines[start:end], "\n")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
