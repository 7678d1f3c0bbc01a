package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column maps an entity to a cell. Without Render, the cell is read from the
// entity by Key, which may be a dotted path through nested JSON fields.
type Column[T any] struct {
	Key      string
	Label    string
	Sortable bool
	Width    int
	Align    lipgloss.Position
	Render   func(T) string
}

// Value returns the display text of the column for item.
func (c Column[T]) Value(item T) string {
	if c.Render != nil {
		if v := c.Render(item); v != "" {
			return v
		}
		return Placeholder
	}
	return Display(item, c.Key)
}

// Variant hints how an action is styled.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantPrimary Variant = "primary"
	VariantDanger  Variant = "danger"
)

// Action is a row-scoped operation.
type Action[T any] struct {
	Label               string
	Icon                string
	Key                 string
	Variant             Variant
	Handler             func(T)
	IsVisible           func(T) bool
	IsEnabled           func(T) bool
	RequireConfirmation bool
	ConfirmMessage      string
}

// Visible defaults to true when IsVisible is unset.
func (a Action[T]) Visible(item T) bool {
	return a.IsVisible == nil || a.IsVisible(item)
}

// Enabled defaults to true when IsEnabled is unset.
func (a Action[T]) Enabled(item T) bool {
	return a.IsEnabled == nil || a.IsEnabled(item)
}

// Confirmation is an action waiting for the user to accept or decline.
type Confirmation[T any] struct {
	Action  Action[T]
	Item    T
	Message string
}

// DefaultConfirmMessage is used when a gated action has no message.
const DefaultConfirmMessage = "Are you sure?"

// Table binds columns and actions with the sort and confirmation state of
// one rendered table.
type Table[T any] struct {
	Columns    []Column[T]
	Actions    []Action[T]
	OnActivate func(T)
	OnSort     func(SortState)

	sort    SortState
	pending *Confirmation[T]
}

// Sort returns the current sort.
func (t *Table[T]) Sort() SortState {
	return t.sort
}

// SetSort replaces the sort without notifying OnSort.
func (t *Table[T]) SetSort(s SortState) {
	t.sort = s
}

// ClickHeader cycles the sort of column col. Non-sortable or out of range
// columns are ignored.
func (t *Table[T]) ClickHeader(col int) bool {
	if col < 0 || col >= len(t.Columns) || !t.Columns[col].Sortable {
		return false
	}
	t.sort = t.sort.Cycle(t.Columns[col].Key)
	if t.OnSort != nil {
		t.OnSort(t.sort)
	}
	return true
}

// Activate runs the row handler.
func (t *Table[T]) Activate(item T) {
	if t.OnActivate != nil {
		t.OnActivate(item)
	}
}

// VisibleActions returns the actions shown for item.
func (t *Table[T]) VisibleActions(item T) []Action[T] {
	out := make([]Action[T], 0, len(t.Actions))
	for _, a := range t.Actions {
		if a.Visible(item) {
			out = append(out, a)
		}
	}
	return out
}

// ActionByKey finds an action by its key binding.
func (t *Table[T]) ActionByKey(key string) (Action[T], bool) {
	for _, a := range t.Actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action[T]{}, false
}

// Trigger invokes action a on item. Hidden or disabled actions do nothing.
// Gated actions park a pending confirmation instead of running. The row's
// own activation handler is never called from here.
func (t *Table[T]) Trigger(a Action[T], item T) bool {
	if !a.Visible(item) || !a.Enabled(item) || a.Handler == nil {
		return false
	}
	if a.RequireConfirmation {
		msg := a.ConfirmMessage
		if msg == "" {
			msg = DefaultConfirmMessage
		}
		t.pending = &Confirmation[T]{Action: a, Item: item, Message: msg}
		return true
	}
	a.Handler(item)
	return true
}

// Pending returns the confirmation awaiting an answer, if any.
func (t *Table[T]) Pending() *Confirmation[T] {
	return t.pending
}

// Confirm runs the pending action.
func (t *Table[T]) Confirm() bool {
	p := t.pending
	t.pending = nil
	if p == nil {
		return false
	}
	p.Action.Handler(p.Item)
	return true
}

// Cancel drops the pending action.
func (t *Table[T]) Cancel() {
	t.pending = nil
}

// Headers returns column labels with a marker on the sorted column.
func (t *Table[T]) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		label := c.Label
		if t.sort.Active() && t.sort.Field == c.Key {
			if t.sort.Dir == Ascending {
				label += " ▲"
			} else {
				label += " ▼"
			}
		}
		out[i] = label
	}
	return out
}

// Rows renders items into cell text. Cells are not sanitized for the
// terminal; that is up to the renderer.
func (t *Table[T]) Rows(items []T) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Value(item)
		}
		rows[i] = row
	}
	return rows
}

// Filter keeps items whose visible cells contain query, case-insensitively.
func Filter[T any](items []T, columns []Column[T], query string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, c := range columns {
			if strings.Contains(strings.ToLower(c.Value(item)), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
