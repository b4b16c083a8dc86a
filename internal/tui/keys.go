package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines editor keybindings.
type KeyMap struct {
	PointerTool   key.Binding
	SegmentTool   key.Binding
	TimestampTool key.Binding

	PlayPause    key.Binding
	SeekBack     key.Binding
	SeekForward  key.Binding
	MarkPlayhead key.Binding

	TrackUp     key.Binding
	TrackDown   key.Binding
	AddTrack    key.Binding
	RenameTrack key.Binding
	LockTrack   key.Binding
	HideTrack   key.Binding
	DeleteTrack key.Binding

	CycleAnnotation  key.Binding
	DeleteAnnotation key.Binding

	FocusDivider  key.Binding
	DividerGrow   key.Binding
	DividerShrink key.Binding
	DividerReset  key.Binding

	Save key.Binding
	Quit key.Binding
	Esc  key.Binding
}

// DefaultKeyMap returns the editor's keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PointerTool:   key.NewBinding(key.WithKeys("1", "v"), key.WithHelp("1", "pointer tool")),
		SegmentTool:   key.NewBinding(key.WithKeys("2", "s"), key.WithHelp("2", "segment tool")),
		TimestampTool: key.NewBinding(key.WithKeys("3", "t"), key.WithHelp("3", "timestamp tool")),

		PlayPause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		SeekBack:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek back")),
		SeekForward:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek forward")),
		MarkPlayhead: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "mark playhead")),

		TrackUp:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous track")),
		TrackDown:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next track")),
		AddTrack:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add track")),
		RenameTrack: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "rename track")),
		LockTrack:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lock track")),
		HideTrack:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide track")),
		DeleteTrack: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete track")),

		CycleAnnotation:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "next annotation")),
		DeleteAnnotation: key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("Del", "delete annotation")),

		FocusDivider:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "cycle divider focus")),
		DividerGrow:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "grow upper pane")),
		DividerShrink: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "shrink upper pane")),
		DividerReset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset divider")),

		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "save project")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Esc:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "cancel")),
	}
}
