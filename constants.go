package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeFileInput
	ModePrompt
	ModeHistory
	ModeConfirm
)

type FileOperation int

const (
	FileOpOpenImage FileOperation = iota
	FileOpImportFont
	FileOpExportPNG
)

type ConfirmAction int

const (
	ConfirmRemoveField ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddField ActionType = iota
	ActionRemoveField
	ActionEditText
	ActionMoveField
	ActionResizeField
	ActionStyle
	ActionSeed
	ActionImage
	ActionLoadSnapshot
)

const (
	nudgeStep = 10 // native pixels per j/k press
)
