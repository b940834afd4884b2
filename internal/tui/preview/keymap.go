package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the preview step.
type KeyMap struct {
	Images key.Binding
	Export key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings for the preview step.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Images: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate images"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export row"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the short help bindings for the preview step.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Images, k.Export, k.Quit}
}

// FullHelp returns the full help bindings for the preview step.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Images, k.Export, k.Quit},
	}
}
