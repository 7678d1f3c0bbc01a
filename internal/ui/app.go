package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/config"
	"github.com/gravitrone/coursedesk/internal/ui/components"
)

// --- App Model ---

// App is the root TUI model that routes between entity tabs.
type App struct {
	client   *api.Client
	config   *config.Config
	router   *Router
	tabs     []tab
	active   int
	width    int
	height   int
	helpOpen bool
}

// NewApp creates the root application model with one tab per kind.
func NewApp(client *api.Client, cfg *config.Config, logger *zap.Logger) App {
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := config.DefaultPageSize
	if cfg != nil && cfg.PageSize > 0 {
		pageSize = cfg.PageSize
	}
	return newApp(client, cfg, viewOptions{logger: logger, pageSize: pageSize})
}

func newApp(client *api.Client, cfg *config.Config, opts viewOptions) App {
	router := NewRouter()
	opts.router = router

	return App{
		client: client,
		config: cfg,
		router: router,
		tabs: []tab{
			newEntityView(studentDef, client.Students(), opts),
			newEntityView(teacherDef, client.Teachers(), opts),
			newEntityView(subjectDef, client.Subjects(), opts),
			newEntityView(groupDef, client.Groups(), opts),
		},
	}
}

// Run starts the program and blocks until the user quits.
func Run(app App) error {
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	done := make(chan struct{})
	defer close(done)
	app.router.Attach(p.Send, done)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// Close stops every manager. Results still in flight are dropped.
func (a App) Close() {
	for _, t := range a.tabs {
		t.Close()
	}
}

func (a App) Init() tea.Cmd {
	return a.tabs[a.active].Activate()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case refreshMsg:
		// Redraw only; queued routes are applied below.
	case opDoneMsg:
		cmd = a.tabs[a.active].Update(msg)
	case tea.KeyMsg:
		var handled bool
		a, cmd, handled = a.handleGlobalKeys(msg)
		if !handled {
			cmd = a.tabs[a.active].Update(msg)
		}
	default:
		cmd = a.tabs[a.active].Update(msg)
	}
	routeCmd := a.applyRoutes()
	return a, tea.Batch(cmd, routeCmd)
}

func (a App) handleGlobalKeys(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit, true
	}
	if a.helpOpen {
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			a.helpOpen = false
		}
		return a, nil, true
	}
	if a.tabs[a.active].Capturing() {
		return a, nil, false
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit, true
	case key.Matches(msg, keys.Help):
		a.helpOpen = true
		return a, nil, true
	case key.Matches(msg, keys.NextTab):
		return a.switchTab((a.active + 1) % len(a.tabs))
	case key.Matches(msg, keys.PrevTab):
		return a.switchTab((a.active - 1 + len(a.tabs)) % len(a.tabs))
	}
	if idx, ok := tabIndexForKey(msg.String(), len(a.tabs)); ok {
		return a.switchTab(idx)
	}
	return a, nil, false
}

func (a App) switchTab(idx int) (App, tea.Cmd, bool) {
	if idx == a.active {
		return a, nil, true
	}
	a.active = idx
	return a, a.tabs[idx].Activate(), true
}

// applyRoutes drains navigation queued by managers and shows the target.
func (a *App) applyRoutes() tea.Cmd {
	var cmds []tea.Cmd
	for _, path := range a.router.Drain() {
		r, ok := parseRoute(path)
		if !ok {
			continue
		}
		for i, t := range a.tabs {
			if t.Name() == r.kind {
				a.active = i
				cmds = append(cmds, t.Show(r))
				break
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (a App) View() string {
	header := TitleStyle.Render("coursedesk")
	if a.client != nil {
		header += "  " + MutedStyle.Render(components.SanitizeOneLine(a.client.BaseURL()))
	}
	if a.config != nil && a.config.Username != "" {
		header += "  " + MutedStyle.Render("@"+components.SanitizeOneLine(a.config.Username))
	}

	content := a.tabs[a.active].View(a.width)
	if a.helpOpen {
		content = a.renderHelp()
	}

	hints := components.StatusBar(a.statusHints(), a.width)
	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s", header, a.renderTabs(), Divider(a.width), content, hints)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(a.tabs))
	for i, t := range a.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if i == a.active {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) statusHints() []components.KeyHint {
	if a.helpOpen {
		return components.BindingHints(keys.Back)
	}
	hints := a.tabs[a.active].Hints()
	if a.tabs[a.active].Capturing() {
		return hints
	}
	return append(hints, components.BindingHints(keys.NextTab, keys.Help, keys.Quit)...)
}

func (a App) renderHelp() string {
	bindings := []key.Binding{
		keys.Up, keys.Down, keys.Enter, keys.New, keys.Edit, keys.Delete,
		keys.NextPage, keys.PrevPage, keys.SortCol, keys.Sort, keys.PageSize,
		keys.Filter, keys.Reload, keys.NextTab, keys.PrevTab, keys.Quit,
	}
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-10s %s", h.Key, h.Desc))
	}
	return components.TitledBox("Keys", strings.Join(lines, "\n"), a.width)
}
