package types

import "desearch/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Filter actions
type SetDifficultyAction struct {
	Difficulty domain.Difficulty
}

func (a SetDifficultyAction) Type() string { return "set_difficulty" }

type ToggleTopicAction struct {
	Index int // zero based position in the configured topic list
}

func (a ToggleTopicAction) Type() string { return "toggle_topic" }

type ClearFiltersAction struct{}

func (a ClearFiltersAction) Type() string { return "clear_filters" }

// Result actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type OpenResultAction struct{}

func (a OpenResultAction) Type() string { return "open_result" }

type ViewResultAction struct{}

func (a ViewResultAction) Type() string { return "view_result" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
