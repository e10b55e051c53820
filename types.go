package main

import (
	"image"

	"github.com/charmbracelet/bubbles/textinput"
)

type model struct {
	width  int
	height int

	doc       *Document
	fonts     *FontRegistry
	store     Store
	config    *Config
	generator *Generator
	watcher   *imageWatcher

	mode          Mode
	help          bool
	helpScroll    int
	input         textinput.Model
	fileOp        FileOperation
	confirmAction ConfirmAction
	pendingPath   string
	originalText  string

	undoStack []Action
	redoStack []Action

	img          image.Image
	decodeGen    int
	pendingImage string
	recordImage  bool
	preview      *Surface
	previewLines []string
	previewTop   int
	previewLeft  int

	generating   bool
	history      []int
	historyIndex int

	errorMessage   string
	successMessage string
}

type Action struct {
	Type ActionType
	Data interface{}
}

// FieldData records a field and where it sat in the collection.
type FieldData struct {
	Field TextField
	Index int
}

type EditTextData struct {
	ID      string
	NewText string
	OldText string
}

type MoveFieldData struct {
	ID   string
	NewY float64
	OldY float64
}

type ResizeFieldData struct {
	ID      string
	NewSize int
	OldSize int
}

type StyleData struct {
	New RenderStyle
	Old RenderStyle
}

// FieldsData holds whole field collections for actions that touch several
// fields at once.
type FieldsData struct {
	New []TextField
	Old []TextField
}

// SnapshotData is a history load: fields and style change together.
type SnapshotData struct {
	Fields FieldsData
	Style  StyleData
}

type ImageData struct {
	New string
	Old string
}
