package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/pomobubby/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.paneBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Pane:     string(m.Focus),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "space", Action: "start/pause timer"},
		{Key: "r", Action: "reset phase"},
		{Key: "n", Action: "skip to next phase"},
		{Key: "d", Action: "toggle developer timings"},
		{Key: "T", Action: "toggle theme"},
		{Key: m.Keys.Timer + "/" + m.Keys.Board + "/" + m.Keys.Music, Action: "focus timer/board/music"},
		{Key: "tab", Action: "next pane"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Suspend, Action: "suspend to shell"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) paneBindings() []KeyBinding {
	switch m.Focus {
	case views.PaneBoard:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next column"},
			{Key: "j/k", Action: "move selection"},
			{Key: "a", Action: "add task"},
			{Key: "H/L", Action: "move task left/right"},
			{Key: "J/K", Action: "reorder within column"},
			{Key: "x", Action: "delete task"},
		}
	case views.PaneMusic:
		return []KeyBinding{
			{Key: "u/enter", Action: "paste a video url"},
			{Key: "p/s", Action: "play/pause"},
			{Key: "+/-", Action: "volume"},
			{Key: "o", Action: "toggle loop"},
			{Key: "0", Action: "restart track"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "timer keys are global"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.globalBindings(), m.paneBindings()...)
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
