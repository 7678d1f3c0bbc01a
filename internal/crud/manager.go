package crud

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/paging"
	"github.com/gravitrone/coursedesk/internal/status"
	"github.com/gravitrone/coursedesk/internal/table"
)

// DefaultNavigateDelay leaves a success message on screen briefly before
// navigating back to the list.
const DefaultNavigateDelay = 1500 * time.Millisecond

var (
	// ErrNotConfirmed means the user declined a destructive action.
	ErrNotConfirmed = errors.New("not confirmed")
	// ErrInFlight means the same operation is already running.
	ErrInFlight = errors.New("operation already in progress")
)

// Entity is a record keyed by an integer id.
type Entity interface {
	EntityID() int64
}

// Service is the CRUD surface of one entity kind.
type Service[T any, In any] interface {
	List(ctx context.Context, req paging.Request) (*api.Page[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Routes are the navigation targets of one kind. Edit carries an ":id"
// placeholder.
type Routes struct {
	List   string
	Create string
	Edit   string
}

// EditPath substitutes id into the edit route.
func (r Routes) EditPath(id int64) string {
	return strings.ReplaceAll(r.Edit, ":id", strconv.FormatInt(id, 10))
}

// RoutesFor builds the conventional routes for a kind.
func RoutesFor(kind api.Kind) Routes {
	base := "/" + kind.Info().Name
	return Routes{List: base, Create: base + "/new", Edit: base + "/:id/edit"}
}

// Navigator moves the application to a route.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Confirmer asks the user to accept a destructive action.
type Confirmer func(message string) bool

// AlwaysConfirm accepts every prompt. Use it when confirmation already
// happened upstream, e.g. behind a gated table action or a --yes flag.
func AlwaysConfirm(string) bool { return true }

// Config wires a Manager.
type Config[T any, In any] struct {
	Kind          api.Kind
	Service       Service[T, In]
	Routes        Routes
	Navigator     Navigator
	Confirmer     Confirmer
	Logger        *zap.Logger
	Paging        paging.Defaults
	NavigateDelay time.Duration
	SuccessTTL    time.Duration
	// AfterFunc schedules delayed navigation and message clears.
	AfterFunc status.AfterFunc
	// Validate runs before create and update. Defaults to api.Validate.
	Validate func(In) error
	// OnChange fires after any state change, from any goroutine.
	OnChange func()
}

// State is a point-in-time copy of a Manager for rendering.
type State[T any] struct {
	Items            []T
	Selected         *T
	Loading          bool
	Creating         bool
	Updating         bool
	Deleting         *int64
	Error            string
	ValidationErrors map[string]string
	SuccessMessage   string

	CurrentPage   int
	PageSize      int
	TotalElements int
	TotalPages    int
	SortKey       string
	Range         paging.Range
	HasNext       bool
	HasPrevious   bool
}

// Manager drives the list/create/edit/delete cycle of one entity kind.
// Operations never return errors; they report success as a bool and leave
// failures in State.
type Manager[T Entity, In any] struct {
	cfg    Config[T, In]
	info   api.KindInfo
	logger *zap.Logger
	status *status.Channel

	mu         sync.Mutex
	page       *paging.State
	items      []T
	all        []T
	selected   *T
	loading    bool
	creating   bool
	updating   bool
	deleting   *int64
	validation map[string]string
	loadGen    uint64
	navTimer   status.Timer
	closed     bool

	life   context.Context
	cancel context.CancelFunc
}

// New builds a Manager.
func New[T Entity, In any](cfg Config[T, In]) *Manager[T, In] {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.NavigateDelay <= 0 {
		cfg.NavigateDelay = DefaultNavigateDelay
	}
	if cfg.SuccessTTL <= 0 {
		cfg.SuccessTTL = status.DefaultSuccessTTL
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = status.SystemAfterFunc
	}
	if cfg.Validate == nil {
		cfg.Validate = func(in In) error { return api.Validate(in) }
	}
	if cfg.Routes == (Routes{}) {
		cfg.Routes = RoutesFor(cfg.Kind)
	}
	if cfg.Paging.PageSize <= 0 {
		cfg.Paging.PageSize = 10
	}

	life, cancel := context.WithCancel(context.Background())
	info := cfg.Kind.Info()
	m := &Manager[T, In]{
		cfg:    cfg,
		info:   info,
		logger: cfg.Logger.Named("crud").With(zap.String("kind", info.Name)),
		page:   paging.New(cfg.Paging),
		life:   life,
		cancel: cancel,
	}
	m.status = status.New(
		status.WithTTL(cfg.SuccessTTL),
		status.WithAfterFunc(cfg.AfterFunc),
		status.WithOnChange(m.notify),
	)
	return m
}

// Kind returns the managed kind.
func (m *Manager[T, In]) Kind() api.Kind {
	return m.cfg.Kind
}

// Routes returns the configured routes.
func (m *Manager[T, In]) Routes() Routes {
	return m.cfg.Routes
}

// Snapshot copies the current state.
func (m *Manager[T, In]) Snapshot() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := State[T]{
		Items:            append([]T(nil), m.items...),
		Loading:          m.loading,
		Creating:         m.creating,
		Updating:         m.updating,
		ValidationErrors: maps.Clone(m.validation),
		CurrentPage:      m.page.CurrentPage(),
		PageSize:         m.page.PageSize(),
		TotalElements:    m.page.TotalElements(),
		TotalPages:       m.page.TotalPages(),
		SortKey:          m.page.SortKey(),
		Range:            m.page.CurrentRange(),
		HasNext:          m.page.HasNext(),
		HasPrevious:      m.page.HasPrevious(),
	}
	if m.selected != nil {
		sel := *m.selected
		st.Selected = &sel
	}
	if m.deleting != nil {
		id := *m.deleting
		st.Deleting = &id
	}
	st.Error = m.status.Error()
	st.SuccessMessage = m.status.Success()
	return st
}

// LoadItems fetches the current page. On failure the previous items stay
// visible. When loads overlap, only the most recently issued one applies.
func (m *Manager[T, In]) LoadItems(ctx context.Context) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.loadGen++
	gen := m.loadGen
	m.loading = true
	req := m.page.Request()
	m.mu.Unlock()
	m.notify()

	ctx, done := m.scope(ctx)
	defer done()

	m.logger.Debug("load",
		zap.Int("page", req.Page),
		zap.Int("size", req.Size),
		zap.String("sort", req.Sort),
	)
	page, err := m.cfg.Service.List(ctx, req)

	m.mu.Lock()
	if m.closed || gen != m.loadGen {
		m.mu.Unlock()
		m.logger.Debug("discarding stale load", zap.Uint64("gen", gen))
		return false
	}
	m.loading = false
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("load failed", zap.Error(err))
		m.status.SetError(fmt.Sprintf("Failed to load %s: %s", m.info.Plural, errorText(err)))
		return false
	}

	refetch := false
	if m.info.Paged {
		m.items = append([]T(nil), page.Content...)
		m.page.SetTotalElements(page.TotalElements)
		// The requested page vanished (e.g. its last row was deleted):
		// the state moved down a page and needs that page's rows.
		refetch = m.page.CurrentPage() != req.Page && len(page.Content) == 0 && page.TotalElements > 0
	} else {
		// The sort may have changed locally while the fetch was in flight.
		m.all = table.SortByKey(page.Content, m.page.SortKey())
		m.page.SetTotalElements(len(m.all))
		m.items = paging.Slice(m.all, m.page)
	}
	m.mu.Unlock()
	m.notify()

	if refetch {
		return m.LoadItems(ctx)
	}
	return true
}

// CreateItem validates and submits a new record. On success it schedules
// navigation back to the list.
func (m *Manager[T, In]) CreateItem(ctx context.Context, in In) bool {
	if !m.begin(&m.creating) {
		return false
	}
	defer m.end(&m.creating)

	ctx, done := m.scope(ctx)
	defer done()

	if err := m.cfg.Validate(in); err != nil {
		m.fail("create", err)
		return false
	}
	if _, err := m.cfg.Service.Create(ctx, in); err != nil {
		m.fail("create", err)
		return false
	}
	if m.isClosed() {
		return false
	}
	m.logger.Info("created")
	m.status.SetSuccess(fmt.Sprintf("%s created successfully", title(m.info.Singular)))
	m.scheduleNavigate(m.cfg.Routes.List)
	return true
}

// UpdateItem validates and submits changes to record id.
func (m *Manager[T, In]) UpdateItem(ctx context.Context, id int64, in In) bool {
	if !m.begin(&m.updating) {
		return false
	}
	defer m.end(&m.updating)

	ctx, done := m.scope(ctx)
	defer done()

	if err := m.cfg.Validate(in); err != nil {
		m.fail("update", err)
		return false
	}
	if _, err := m.cfg.Service.Update(ctx, id, in); err != nil {
		m.fail("update", err)
		return false
	}
	if m.isClosed() {
		return false
	}
	m.logger.Info("updated", zap.Int64("id", id))
	m.status.SetSuccess(fmt.Sprintf("%s updated successfully", title(m.info.Singular)))
	m.scheduleNavigate(m.cfg.Routes.List)
	return true
}

// DeleteItem asks for confirmation, deletes id and reloads the list so the
// rows and total stay consistent with the backend. An empty message uses the
// default prompt. Declining is a silent no-op.
func (m *Manager[T, In]) DeleteItem(ctx context.Context, id int64, message string) bool {
	if message == "" {
		message = fmt.Sprintf("Are you sure you want to delete this %s?", m.info.Singular)
	}
	if m.cfg.Confirmer == nil || !m.cfg.Confirmer(message) {
		m.logger.Debug("delete declined", zap.Int64("id", id), zap.Error(ErrNotConfirmed))
		return false
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	if m.deleting != nil && *m.deleting == id {
		m.mu.Unlock()
		m.logger.Debug("delete ignored", zap.Int64("id", id), zap.Error(ErrInFlight))
		return false
	}
	m.deleting = &id
	m.mu.Unlock()
	m.status.ClearError()

	ctx, done := m.scope(ctx)
	defer done()

	err := m.cfg.Service.Delete(ctx, id)

	m.mu.Lock()
	if m.deleting != nil && *m.deleting == id {
		m.deleting = nil
	}
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return false
	}
	if err != nil {
		m.logger.Warn("delete failed", zap.Int64("id", id), zap.Error(err))
		m.status.SetError(fmt.Sprintf("Failed to delete %s: %s", m.info.Singular, errorText(err)))
		return false
	}

	m.logger.Info("deleted", zap.Int64("id", id))
	m.LoadItems(ctx)
	m.status.SetSuccess(fmt.Sprintf("%s deleted successfully", title(m.info.Singular)))
	return true
}

// SelectItem sets the record being edited. nil clears it.
func (m *Manager[T, In]) SelectItem(item *T) {
	m.mu.Lock()
	if item == nil {
		m.selected = nil
	} else {
		sel := *item
		m.selected = &sel
	}
	m.mu.Unlock()
	m.notify()
}

// FindItem returns the loaded record with id.
func (m *Manager[T, In]) FindItem(id int64) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FetchItem loads record id from the service and selects it, for edits of
// records outside the loaded page.
func (m *Manager[T, In]) FetchItem(ctx context.Context, id int64) bool {
	if m.isClosed() {
		return false
	}
	ctx, done := m.scope(ctx)
	defer done()

	item, err := m.cfg.Service.Get(ctx, id)
	if err != nil {
		m.fail("load", err)
		return false
	}
	if m.isClosed() {
		return false
	}
	m.SelectItem(item)
	return true
}

// ClearMessages drops error, success and validation messages together.
func (m *Manager[T, In]) ClearMessages() {
	m.mu.Lock()
	m.validation = nil
	m.mu.Unlock()
	m.status.Clear()
}

// --- Navigation ---

func (m *Manager[T, In]) NavigateToCreate() { m.navigate(m.cfg.Routes.Create) }

func (m *Manager[T, In]) NavigateToEdit(id int64) { m.navigate(m.cfg.Routes.EditPath(id)) }

func (m *Manager[T, In]) NavigateToList() { m.navigate(m.cfg.Routes.List) }

// --- Paging ---

// GoToPage moves to page n and reloads when the page changed.
func (m *Manager[T, In]) GoToPage(ctx context.Context, n int) bool {
	return m.repage(ctx, func(p *paging.State) bool { return p.GoToPage(n) })
}

func (m *Manager[T, In]) NextPage(ctx context.Context) bool {
	return m.repage(ctx, func(p *paging.State) bool { return p.NextPage() })
}

func (m *Manager[T, In]) PreviousPage(ctx context.Context) bool {
	return m.repage(ctx, func(p *paging.State) bool { return p.PreviousPage() })
}

// SetPageSize changes the page size, keeping the first visible row in view.
func (m *Manager[T, In]) SetPageSize(ctx context.Context, size int) bool {
	return m.repage(ctx, func(p *paging.State) bool {
		before := p.Request()
		p.SetPageSize(size)
		return p.Request() != before
	})
}

// SetSort replaces the sort key ("field,asc") and returns to the first page.
func (m *Manager[T, In]) SetSort(ctx context.Context, key string) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.page.SetSort(key)
	if !m.info.Paged {
		m.all = table.SortByKey(m.all, key)
		m.items = paging.Slice(m.all, m.page)
		m.mu.Unlock()
		m.notify()
		return true
	}
	m.mu.Unlock()
	return m.LoadItems(ctx)
}

// Close stops timers, cancels in-flight requests and drops their results.
func (m *Manager[T, In]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.navTimer != nil {
		m.navTimer.Stop()
		m.navTimer = nil
	}
	m.mu.Unlock()
	m.cancel()
	m.status.Stop()
}

// --- internals ---

func (m *Manager[T, In]) repage(ctx context.Context, move func(*paging.State) bool) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	if !move(m.page) {
		m.mu.Unlock()
		return false
	}
	if !m.info.Paged {
		m.items = paging.Slice(m.all, m.page)
		m.mu.Unlock()
		m.notify()
		return true
	}
	m.mu.Unlock()
	return m.LoadItems(ctx)
}

// begin raises an in-flight flag and resets feedback from the previous
// operation. It refuses when the flag is already up.
func (m *Manager[T, In]) begin(flag *bool) bool {
	m.mu.Lock()
	if m.closed || *flag {
		m.mu.Unlock()
		return false
	}
	*flag = true
	m.validation = nil
	m.mu.Unlock()
	m.status.ClearError()
	return true
}

func (m *Manager[T, In]) end(flag *bool) {
	m.mu.Lock()
	*flag = false
	m.mu.Unlock()
	m.notify()
}

// fail routes err to field-level validation errors or the generic error.
func (m *Manager[T, In]) fail(op string, err error) {
	if m.isClosed() {
		return
	}
	var ve *api.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		m.logger.Info(op+" rejected", zap.Int("fields", len(ve.Fields)))
		m.mu.Lock()
		m.validation = maps.Clone(ve.Fields)
		m.mu.Unlock()
		m.notify()
		return
	}
	m.logger.Warn(op+" failed", zap.Error(err))
	m.status.SetError(fmt.Sprintf("Failed to %s %s: %s", op, m.info.Singular, errorText(err)))
}

func (m *Manager[T, In]) scheduleNavigate(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.navTimer != nil {
		m.navTimer.Stop()
	}
	m.navTimer = m.cfg.AfterFunc(m.cfg.NavigateDelay, func() {
		m.mu.Lock()
		closed := m.closed
		m.navTimer = nil
		m.mu.Unlock()
		if !closed {
			m.navigate(path)
		}
	})
}

func (m *Manager[T, In]) navigate(path string) {
	if m.cfg.Navigator == nil {
		return
	}
	m.logger.Debug("navigate", zap.String("path", path))
	m.cfg.Navigator.Navigate(path)
}

// scope ties a request context to the manager lifetime.
func (m *Manager[T, In]) scope(ctx context.Context) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (m *Manager[T, In]) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Manager[T, In]) notify() {
	if m.cfg.OnChange != nil {
		m.cfg.OnChange()
	}
}

func errorText(err error) string {
	var re *api.RequestError
	if errors.As(err, &re) {
		return re.Error()
	}
	return err.Error()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
