package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Queue    key.Binding
	Appeals  key.Binding
	Filters  key.Binding
	Stats    key.Binding
	Audit    key.Binding
	UpDown   key.Binding
	Select   key.Binding
	Approve  key.Binding
	Reject   key.Binding
	Escalate key.Binding
	Bulk     key.Binding
	Analyze  key.Binding
	Detail   key.Binding
	New      key.Binding
	Refresh  key.Binding
	Close    key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Queue:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "queue")),
		Appeals:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "appeals")),
		Filters:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "filters")),
		Stats:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "stats")),
		Audit:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "audit")),
		UpDown:   key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("j/k", "navigate")),
		Select:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Approve:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
		Reject:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reject")),
		Escalate: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "escalate")),
		Bulk:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bulk action")),
		Analyze:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "analyze")),
		Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Queue, k.Appeals, k.Filters, k.Stats, k.Audit, k.UpDown, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Queue, k.Appeals, k.Filters, k.Stats, k.Audit},
		{k.UpDown, k.Select, k.Detail, k.Refresh},
		{k.Approve, k.Reject, k.Escalate, k.Bulk, k.Analyze},
		{k.New, k.Close, k.Quit},
	}
}
