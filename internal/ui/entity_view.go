package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/crud"
	"github.com/gravitrone/coursedesk/internal/paging"
	"github.com/gravitrone/coursedesk/internal/status"
	"github.com/gravitrone/coursedesk/internal/table"
	"github.com/gravitrone/coursedesk/internal/ui/components"
)

// pageSizes is the cycle of the page size key.
var pageSizes = []int{10, 20, 50}

// opDoneMsg reports that a manager operation finished. Views re-read the
// manager snapshot, so the message carries only the kind.
type opDoneMsg struct {
	kind api.Kind
}

// tab is one entity screen hosted by the App.
type tab interface {
	Name() string
	Title() string
	// Activate enters the tab from another tab with fresh feedback.
	Activate() tea.Cmd
	Show(r route) tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
	Hints() []components.KeyHint
	// Capturing reports that the tab is reading text and wants every key.
	Capturing() bool
	Close()
}

type viewOptions struct {
	router   *Router
	logger   *zap.Logger
	pageSize int
	after    status.AfterFunc
}

// EntityView is the list, create and edit screens of one kind, driven by a
// crud.Manager.
type EntityView[T crud.Entity, In any] struct {
	def   entityDef[T, In]
	info  api.KindInfo
	mgr   *crud.Manager[T, In]
	table *table.Table[T]
	ctx   context.Context

	screen   screen
	editID   int64
	form     form
	formErrs map[string]string

	cursor    int
	sortCol   int
	filtering bool
	filter    textinput.Model

	queued []tea.Cmd
}

func newEntityView[T crud.Entity, In any](def entityDef[T, In], svc crud.Service[T, In], opts viewOptions) *EntityView[T, In] {
	info := def.kind.Info()
	v := &EntityView[T, In]{
		def:    def,
		info:   info,
		ctx:    context.Background(),
		filter: textinput.New(),
	}
	v.filter.Prompt = "/ "
	v.filter.Placeholder = "filter rows"

	var nav crud.Navigator
	var onChange func()
	if opts.router != nil {
		nav = opts.router
		onChange = opts.router.Poke
	}
	v.mgr = crud.New(crud.Config[T, In]{
		Kind:      def.kind,
		Service:   svc,
		Navigator: nav,
		// Deletes are confirmed by the table before they reach the manager.
		Confirmer: crud.AlwaysConfirm,
		Logger:    opts.logger,
		Paging:    paging.Defaults{PageSize: opts.pageSize},
		OnChange:  onChange,
		AfterFunc: opts.after,
	})

	confirm := fmt.Sprintf("Are you sure you want to delete this %s?", info.Singular)
	edit := func(item T) {
		v.mgr.SelectItem(&item)
		v.mgr.NavigateToEdit(item.EntityID())
	}
	v.table = &table.Table[T]{
		Columns:    def.columns,
		OnActivate: edit,
		OnSort: func(s table.SortState) {
			sortKey := s.Key()
			v.queue(v.run(func(ctx context.Context) { v.mgr.SetSort(ctx, sortKey) }))
		},
		Actions: []table.Action[T]{
			{Label: "Edit", Icon: "✎", Key: "e", Variant: table.VariantPrimary, Handler: edit},
			{
				Label:               "Delete",
				Icon:                "✗",
				Key:                 "d",
				Variant:             table.VariantDanger,
				RequireConfirmation: true,
				ConfirmMessage:      confirm,
				IsEnabled: func(item T) bool {
					st := v.mgr.Snapshot()
					return st.Deleting == nil || *st.Deleting != item.EntityID()
				},
				Handler: func(item T) {
					id := item.EntityID()
					v.queue(v.run(func(ctx context.Context) { v.mgr.DeleteItem(ctx, id, confirm) }))
				},
			},
		},
	}
	v.sortCol = v.firstSortable()
	return v
}

func (v *EntityView[T, In]) Name() string  { return v.info.Name }
func (v *EntityView[T, In]) Title() string { return title(v.info.Plural) }

func (v *EntityView[T, In]) Close() { v.mgr.Close() }

func (v *EntityView[T, In]) Capturing() bool {
	return v.screen != screenList || v.filtering || v.table.Pending() != nil
}

func (v *EntityView[T, In]) Activate() tea.Cmd {
	v.mgr.ClearMessages()
	return v.Show(route{kind: v.info.Name, screen: screenList})
}

// Show switches to the screen named by r.
func (v *EntityView[T, In]) Show(r route) tea.Cmd {
	switch r.screen {
	case screenCreate:
		v.mgr.ClearMessages()
		v.mgr.SelectItem(nil)
		v.openForm(screenCreate, 0, nil)
		return textinput.Blink
	case screenEdit:
		item, ok := v.lookup(r.id)
		if !ok {
			v.screen = screenList
			id := r.id
			return tea.Batch(v.load(), v.run(func(ctx context.Context) {
				if v.mgr.FetchItem(ctx, id) {
					v.mgr.NavigateToEdit(id)
				}
			}))
		}
		v.mgr.ClearMessages()
		v.openForm(screenEdit, r.id, v.def.values(item))
		return textinput.Blink
	default:
		v.screen = screenList
		v.formErrs = nil
		return v.load()
	}
}

func (v *EntityView[T, In]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case opDoneMsg:
		v.clampCursor()
		return nil
	case tea.KeyMsg:
		if v.table.Pending() != nil {
			return v.handleConfirmKeys(msg)
		}
		if v.screen != screenList {
			return v.handleFormKeys(msg)
		}
		if v.filtering {
			return v.handleFilterKeys(msg)
		}
		return v.handleListKeys(msg)
	}
	if v.screen != screenList {
		return v.form.Update(msg)
	}
	return nil
}

// --- Key handling ---

func (v *EntityView[T, In]) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Confirm):
		v.table.Confirm()
	case key.Matches(msg, keys.Cancel):
		v.table.Cancel()
	}
	return v.flush()
}

func (v *EntityView[T, In]) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		v.mgr.ClearMessages()
		v.mgr.NavigateToList()
		return nil
	case key.Matches(msg, keys.Enter):
		return v.submit()
	}
	return v.form.Update(msg)
}

func (v *EntityView[T, In]) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		v.filtering = false
		v.filter.Blur()
		v.filter.SetValue("")
		v.clampCursor()
		return nil
	case key.Matches(msg, keys.Enter):
		v.filtering = false
		v.filter.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.cursor = 0
	return cmd
}

func (v *EntityView[T, In]) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	rows := v.rows()
	switch {
	case key.Matches(msg, keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, keys.Down):
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if item, ok := v.current(rows); ok {
			v.table.Activate(item)
		}
	case key.Matches(msg, keys.New):
		v.mgr.NavigateToCreate()
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Delete):
		item, ok := v.current(rows)
		if !ok {
			break
		}
		if action, found := v.table.ActionByKey(msg.String()); found {
			v.table.Trigger(action, item)
		}
	case key.Matches(msg, keys.Filter):
		v.filtering = true
		return v.filter.Focus()
	case key.Matches(msg, keys.Back):
		v.filter.SetValue("")
		v.mgr.ClearMessages()
	case key.Matches(msg, keys.Reload):
		return v.load()
	case key.Matches(msg, keys.NextPage):
		v.cursor = 0
		return v.run(func(ctx context.Context) { v.mgr.NextPage(ctx) })
	case key.Matches(msg, keys.PrevPage):
		v.cursor = 0
		return v.run(func(ctx context.Context) { v.mgr.PreviousPage(ctx) })
	case key.Matches(msg, keys.SortCol):
		v.sortCol = v.nextSortable(1)
	case key.Matches(msg, keys.SortPrev):
		v.sortCol = v.nextSortable(-1)
	case key.Matches(msg, keys.Sort):
		v.table.ClickHeader(v.sortCol)
	case key.Matches(msg, keys.PageSize):
		size := nextPageSize(v.mgr.Snapshot().PageSize)
		v.cursor = 0
		return v.run(func(ctx context.Context) { v.mgr.SetPageSize(ctx, size) })
	}
	return v.flush()
}

func (v *EntityView[T, In]) submit() tea.Cmd {
	in, errs := v.def.input(v.form.Values())
	if len(errs) > 0 {
		v.formErrs = errs
		return nil
	}
	v.formErrs = nil
	if v.screen == screenEdit {
		id := v.editID
		return v.run(func(ctx context.Context) { v.mgr.UpdateItem(ctx, id, in) })
	}
	return v.run(func(ctx context.Context) { v.mgr.CreateItem(ctx, in) })
}

// --- Rendering ---

func (v *EntityView[T, In]) View(width int) string {
	st := v.mgr.Snapshot()
	var b strings.Builder

	switch v.screen {
	case screenCreate, screenEdit:
		b.WriteString(HeaderStyle.Render(v.formTitle()))
		b.WriteString("\n")
		b.WriteString(v.form.View(mergeErrors(st.ValidationErrors, v.formErrs)))
		if st.Creating || st.Updating {
			b.WriteString("\n\n" + WarningStyle.Render("Saving..."))
		}
	default:
		b.WriteString(HeaderStyle.Render(v.Title()) + "  " + MutedStyle.Render(pageSummary(st)))
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("sort column: "+v.table.Columns[v.sortCol].Label) + "\n")
		if v.filtering || v.filter.Value() != "" {
			b.WriteString(v.filter.View() + "\n\n")
		}
		if pending := v.table.Pending(); pending != nil {
			b.WriteString(components.ConfirmDialog("Delete "+v.info.Singular, pending.Message))
			break
		}
		rows := v.rows()
		switch {
		case st.Loading && len(rows) == 0:
			b.WriteString(MutedStyle.Render("Loading " + v.info.Plural + "..."))
		case len(rows) == 0:
			b.WriteString(MutedStyle.Render("No " + v.info.Plural + " found."))
		default:
			b.WriteString(renderTable(v.table, rows, tableWidth(width), v.cursor))
			if st.Loading {
				b.WriteString("\n" + WarningStyle.Render("Refreshing..."))
			}
		}
	}

	if st.Error != "" {
		b.WriteString("\n\n" + components.ErrorBox("Error", components.SanitizeText(st.Error), width))
	} else if st.SuccessMessage != "" {
		b.WriteString("\n\n" + SuccessStyle.Render("✓ "+components.SanitizeOneLine(st.SuccessMessage)))
	}
	return b.String()
}

func (v *EntityView[T, In]) Hints() []components.KeyHint {
	if v.table.Pending() != nil {
		return components.BindingHints(keys.Confirm, keys.Cancel)
	}
	if v.screen != screenList {
		return append(components.BindingHints(keys.NextFld),
			components.KeyHint{Key: "enter", Desc: "save"},
			components.KeyHint{Key: "esc", Desc: "cancel"},
		)
	}
	if v.filtering {
		return []components.KeyHint{{Key: "enter", Desc: "apply"}, {Key: "esc", Desc: "clear"}}
	}
	hints := []components.KeyHint{{Key: "↑/↓", Desc: "select"}, components.BindingHint(keys.New)}
	if item, ok := v.current(v.rows()); ok {
		for _, a := range v.table.VisibleActions(item) {
			if a.Enabled(item) {
				hints = append(hints, components.KeyHint{Key: a.Key, Desc: a.Icon + " " + a.Label})
			}
		}
	}
	return append(hints, components.BindingHints(keys.NextPage, keys.PrevPage, keys.Sort, keys.PageSize, keys.Filter)...)
}

func (v *EntityView[T, In]) formTitle() string {
	if v.screen == screenEdit {
		return fmt.Sprintf("Edit %s #%d", v.info.Singular, v.editID)
	}
	return "New " + v.info.Singular
}

// --- Internals ---

func (v *EntityView[T, In]) openForm(s screen, id int64, values map[string]string) {
	v.screen = s
	v.editID = id
	v.formErrs = nil
	v.form = newForm(v.def.fields, values)
}

func (v *EntityView[T, In]) lookup(id int64) (T, bool) {
	if sel := v.mgr.Snapshot().Selected; sel != nil && (*sel).EntityID() == id {
		return *sel, true
	}
	return v.mgr.FindItem(id)
}

func (v *EntityView[T, In]) rows() []T {
	return table.Filter(v.mgr.Snapshot().Items, v.table.Columns, v.filter.Value())
}

func (v *EntityView[T, In]) current(rows []T) (T, bool) {
	if v.cursor < 0 || v.cursor >= len(rows) {
		var zero T
		return zero, false
	}
	return rows[v.cursor], true
}

func (v *EntityView[T, In]) clampCursor() {
	n := len(v.rows())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *EntityView[T, In]) load() tea.Cmd {
	return v.run(func(ctx context.Context) { v.mgr.LoadItems(ctx) })
}

// run wraps a blocking manager call in a command.
func (v *EntityView[T, In]) run(op func(ctx context.Context)) tea.Cmd {
	ctx := v.ctx
	kind := v.def.kind
	return func() tea.Msg {
		op(ctx)
		return opDoneMsg{kind: kind}
	}
}

// queue holds commands produced by table handlers until Update returns.
func (v *EntityView[T, In]) queue(cmd tea.Cmd) {
	v.queued = append(v.queued, cmd)
}

func (v *EntityView[T, In]) flush() tea.Cmd {
	if len(v.queued) == 0 {
		return nil
	}
	cmds := v.queued
	v.queued = nil
	return tea.Batch(cmds...)
}

func (v *EntityView[T, In]) firstSortable() int {
	for i, c := range v.table.Columns {
		if c.Sortable {
			return i
		}
	}
	return 0
}

func (v *EntityView[T, In]) nextSortable(dir int) int {
	n := len(v.table.Columns)
	for step := 1; step <= n; step++ {
		i := ((v.sortCol+dir*step)%n + n) % n
		if v.table.Columns[i].Sortable {
			return i
		}
	}
	return v.sortCol
}

func nextPageSize(current int) int {
	for i, s := range pageSizes {
		if s == current {
			return pageSizes[(i+1)%len(pageSizes)]
		}
	}
	return pageSizes[0]
}

// pageSummary renders "11-20 of 42 · page 2/5 · 10 per page · name,asc".
func pageSummary[T any](st crud.State[T]) string {
	if st.TotalElements == 0 {
		return fmt.Sprintf("0 records · %d per page", st.PageSize)
	}
	parts := []string{
		fmt.Sprintf("%d-%d of %d", st.Range.Start, st.Range.End, st.TotalElements),
		fmt.Sprintf("page %d/%d", st.CurrentPage+1, st.TotalPages),
		fmt.Sprintf("%d per page", st.PageSize),
	}
	if st.SortKey != "" {
		parts = append(parts, st.SortKey)
	}
	return strings.Join(parts, " · ")
}

func mergeErrors(server, local map[string]string) map[string]string {
	if len(local) == 0 {
		return server
	}
	out := make(map[string]string, len(server)+len(local))
	for k, v := range server {
		out[k] = v
	}
	for k, v := range local {
		out[k] = v
	}
	return out
}

func tableWidth(width int) int {
	if width <= 0 {
		return 100
	}
	return max(width-4, 40)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
