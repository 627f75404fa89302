package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Success       key.Binding
	Error         key.Binding
	Warning       key.Binding
	Info          key.Binding
	Pin           key.Binding
	DismissNewest key.Binding
	DismissOldest key.Binding
	Clear         key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Success:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		Error:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		Warning:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning")),
		Info:          key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Pin:           key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pinned")),
		DismissNewest: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss newest")),
		DismissOldest: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss oldest")),
		Clear:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// help returns the bindings in display order.
func (k keyMap) help() []key.Binding {
	return []key.Binding{
		k.Success, k.Error, k.Warning, k.Info, k.Pin,
		k.DismissNewest, k.DismissOldest, k.Clear, k.Quit,
	}
}
