package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"desearch/internal/domain"
	"desearch/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.HasSelectedResult() {
			return []types.Action{types.OpenResultAction{}}, true
		}
		return nil, false
	}

	key := msg.String()
	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "/", "i":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery, Data: ctx.Query()}}, true

	case "o":
		if ctx.HasSelectedResult() {
			return []types.Action{types.OpenResultAction{}}, true
		}
		return nil, false
	case "v":
		if ctx.HasSelectedResult() {
			return []types.Action{types.ViewResultAction{}}, true
		}
		return nil, false

	case "e":
		return []types.Action{types.SetDifficultyAction{Difficulty: domain.DifficultyEasy}}, true
	case "m":
		return []types.Action{types.SetDifficultyAction{Difficulty: domain.DifficultyMedium}}, true
	case "h":
		return []types.Action{types.SetDifficultyAction{Difficulty: domain.DifficultyHard}}, true
	case "x":
		return []types.Action{types.ClearFiltersAction{}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	// 1-9 toggle the configured topics
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < ctx.TopicCount() {
			return []types.Action{types.ToggleTopicAction{Index: idx}}, true
		}
	}

	return nil, false
}
