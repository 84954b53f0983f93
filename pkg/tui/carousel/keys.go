package carousel

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Back      key.Binding
	Complete  key.Binding
	Planning  key.Binding
	Treatment key.Binding
	Aftercare key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Back:      key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Complete:  key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "record")),
		Planning:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "stage")),
		Treatment: key.NewBinding(key.WithKeys("2")),
		Aftercare: key.NewBinding(key.WithKeys("3")),
		Submit:    key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("esc")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Back, k.Complete, k.Planning, k.Quit}
}
