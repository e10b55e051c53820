package main

import tea "github.com/charmbracelet/bubbletea"

func (m *model) recordAction(actionType ActionType, data interface{}) {
	m.undoStack = append(m.undoStack, Action{Type: actionType, Data: data})
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	var cmd tea.Cmd
	switch action.Type {
	case ActionAddField:
		data := action.Data.(FieldData)
		m.doc.DeleteField(data.Field.ID)
	case ActionRemoveField:
		data := action.Data.(FieldData)
		m.doc.InsertField(data.Field, data.Index)
	case ActionEditText:
		data := action.Data.(EditTextData)
		m.doc.SetText(data.ID, data.OldText)
	case ActionMoveField:
		data := action.Data.(MoveFieldData)
		m.doc.SetY(data.ID, data.OldY)
	case ActionResizeField:
		data := action.Data.(ResizeFieldData)
		m.doc.SetFontSize(data.ID, data.OldSize)
	case ActionStyle:
		data := action.Data.(StyleData)
		m.doc.Style = data.Old
	case ActionSeed:
		data := action.Data.(FieldsData)
		m.doc.ReplaceFields(data.Old)
	case ActionImage:
		data := action.Data.(ImageData)
		cmd = m.requestDecode(data.Old)
	case ActionLoadSnapshot:
		data := action.Data.(SnapshotData)
		m.doc.ReplaceFields(data.Fields.Old)
		m.doc.Style = data.Style.Old
	}

	m.redoStack = append(m.redoStack, action)
	return cmd
}

func (m *model) redo() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	var cmd tea.Cmd
	switch action.Type {
	case ActionAddField:
		data := action.Data.(FieldData)
		m.doc.InsertField(data.Field, data.Index)
	case ActionRemoveField:
		data := action.Data.(FieldData)
		m.doc.DeleteField(data.Field.ID)
	case ActionEditText:
		data := action.Data.(EditTextData)
		m.doc.SetText(data.ID, data.NewText)
	case ActionMoveField:
		data := action.Data.(MoveFieldData)
		m.doc.SetY(data.ID, data.NewY)
	case ActionResizeField:
		data := action.Data.(ResizeFieldData)
		m.doc.SetFontSize(data.ID, data.NewSize)
	case ActionStyle:
		data := action.Data.(StyleData)
		m.doc.Style = data.New
	case ActionSeed:
		data := action.Data.(FieldsData)
		m.doc.ReplaceFields(data.New)
	case ActionImage:
		data := action.Data.(ImageData)
		cmd = m.requestDecode(data.New)
	case ActionLoadSnapshot:
		data := action.Data.(SnapshotData)
		m.doc.ReplaceFields(data.Fields.New)
		m.doc.Style = data.Style.New
	}

	m.undoStack = append(m.undoStack, action)
	return cmd
}
