package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"desearch/internal/ui/input/types"
)

type QueryMode struct {
	TextInputMode
}

func NewQueryMode(ti *textinput.Model) *QueryMode {
	return &QueryMode{
		TextInputMode: NewTextInputMode(types.ModeQuery, "query", "Search: ", ti),
	}
}
