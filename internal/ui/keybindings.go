package ui

import "github.com/charmbracelet/bubbles/key"

// --- Key Map ---

type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Filter   key.Binding
	Reload   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	SortCol  key.Binding
	SortPrev key.Binding
	Sort     key.Binding
	PageSize key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	NextFld  key.Binding
	PrevFld  key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	NextPage: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
	SortCol:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "sort column")),
	SortPrev: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "sort column")),
	Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	PageSize: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "page size")),
	Confirm:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	Cancel:   key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	NextFld:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevFld:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
}

// tabIndexForKey maps the digit row to tab indexes.
func tabIndexForKey(k string, count int) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	idx := int(k[0] - '1')
	if idx >= count {
		return 0, false
	}
	return idx, true
}
