package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/status"
)

// backend is an in-memory course API: students are paged, groups are bulk.
type backend struct {
	mu       sync.Mutex
	students []api.Student
	groups   []api.Group
	nextID   int64
	queries  []string
	deletes  []string
	creates  int
}

func newBackend(t *testing.T) (*backend, *api.Client) {
	t.Helper()
	b := &backend{
		students: []api.Student{
			{ID: 1, StudentCode: "S001", FirstName: "Ada", LastName: "Lovelace", Email: "ada@school.edu", Active: true, Group: &api.Ref{ID: 1, Name: "1A"}},
			{ID: 2, StudentCode: "S002", FirstName: "Alan", LastName: "Turing", Email: "alan@school.edu"},
		},
		groups: []api.Group{
			{ID: 1, Name: "1A", Year: 1, Capacity: 30, StudentCount: 1},
			{ID: 2, Name: "2B", Year: 2, Capacity: 25},
		},
		nextID: 100,
	}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, api.NewClient(srv.URL, "test-token")
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/students":
		b.queries = append(b.queries, r.URL.RawQuery)
		b.pageStudents(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/students":
		var in api.StudentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if strings.HasPrefix(in.Email, "taken@") {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Validation failed","errors":{"email":"already registered"}}`))
			return
		}
		b.creates++
		b.nextID++
		s := api.Student{ID: b.nextID, StudentCode: in.StudentCode, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Active: in.Active}
		b.students = append(b.students, s)
		envelope(w, http.StatusCreated, s)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/students/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/students/"), 10, 64)
		for _, s := range b.students {
			if s.ID == id {
				envelope(w, http.StatusOK, s)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"student not found"}`))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/students/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/students/"), 10, 64)
		var in api.StudentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		for i := range b.students {
			if b.students[i].ID == id {
				b.students[i].FirstName = in.FirstName
				b.students[i].LastName = in.LastName
				b.students[i].Email = in.Email
				envelope(w, http.StatusOK, b.students[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/students/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/students/"), 10, 64)
		b.deletes = append(b.deletes, r.URL.Path)
		kept := b.students[:0]
		for _, s := range b.students {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		b.students = kept
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodGet && r.URL.Path == "/api/groups":
		envelope(w, http.StatusOK, b.groups)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *backend) pageStudents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	if size <= 0 {
		size = 10
	}
	all := append([]api.Student(nil), b.students...)
	if strings.HasPrefix(q.Get("sort"), "studentCode,desc") {
		sort.Slice(all, func(i, j int) bool { return all[i].StudentCode > all[j].StudentCode })
	}
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	envelope(w, http.StatusOK, map[string]any{
		"content":       all[start:end],
		"totalElements": len(all),
		"totalPages":    (len(all) + size - 1) / size,
		"size":          size,
		"number":        page,
	})
}

func (b *backend) snapshot() (queries, deletes []string, creates int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...), append([]string(nil), b.deletes...), b.creates
}

func envelope(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"message":   "ok",
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Program driving helpers ---

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) status.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fireAll(d time.Duration) {
	c.mu.Lock()
	var due []*fakeTimer
	for _, t := range c.timers {
		if t.d == d && !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

// settle runs cmd and every command it produces, feeding app messages back
// into the model. Cursor blink and other foreign messages are dropped.
func settle(m tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 100; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case opDoneMsg, refreshMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

// press sends one key and settles the resulting commands.
func press(m tea.Model, msg tea.KeyMsg) tea.Model {
	m, cmd := m.Update(msg)
	return settle(m, cmd)
}

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
