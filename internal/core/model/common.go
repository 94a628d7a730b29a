package model

// FileEvent is a change notification for a watched bundle file.
type FileEvent struct {
	Path      string
	Operation string
}

// DisplayMode tracks what the viewer is currently showing so the display can
// clear properly on transitions.
type DisplayMode int

const (
	ModeNormal DisplayMode = iota
	ModeLoading
	ModeHelp
	ModeConfirm
)

// ConfirmDialog is a modal yes/no prompt shown over the viewer.
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// InteractionState holds every toggle the keyboard can flip while viewing.
// Mutated only from the orchestrator's run loop.
type InteractionState struct {
	ShowHelp        bool
	ShowEvents      bool
	ColorByCategory bool
	LayoutStyle     int
	IsLoading       bool
	LoadingMessage  string
	StatusMessage   string
	ConfirmDialog   *ConfirmDialog
}

// LayoutParam carries the terminal geometry into the layout strategies.
type LayoutParam struct {
	Width  int
	Height int
}
