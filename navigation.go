package main

import "strconv"

// handleNudge moves the selected field up or down by speed steps and
// records the move for undo.
func (m *model) handleNudge(key string, speed int) {
	f, ok := m.doc.Selected()
	if !ok {
		m.errorMessage = "Select a text field first (tab)"
		return
	}
	oldY := f.Y
	switch key {
	case "k", "up", "K", "shift+up":
		f.Y -= float64(nudgeStep * speed)
	case "j", "down", "J", "shift+down":
		f.Y += float64(nudgeStep * speed)
	}
	m.recordAction(ActionMoveField, MoveFieldData{ID: f.ID, NewY: f.Y, OldY: oldY})
	m.refreshPreview()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "K", "J", "shift+up", "shift+down":
		return 5
	default:
		return 1
	}
}

// cycleSelection selects the next (dir=1) or previous (dir=-1) field,
// wrapping around. With nothing selected it starts at the first field.
func (m *model) cycleSelection(dir int) {
	n := len(m.doc.Fields)
	i := m.doc.SelectedIndex()
	switch {
	case i < 0:
		i = 0
	default:
		i = (i + dir + n) % n
	}
	m.doc.Select(m.doc.Fields[i].ID)
	m.refreshPreview()
}

// selectNumbered handles the 1-9 keys.
func (m *model) selectNumbered(key string) bool {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(m.doc.Fields) {
		return false
	}
	m.doc.Select(m.doc.Fields[n-1].ID)
	m.refreshPreview()
	return true
}
