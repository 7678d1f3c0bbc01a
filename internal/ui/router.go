package ui

import (
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenList screen = iota
	screenCreate
	screenEdit
)

// route is a parsed navigation target: "/students", "/students/new" or
// "/students/12/edit".
type route struct {
	kind   string
	screen screen
	id     int64
}

func parseRoute(path string) (route, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return route{}, false
	}
	r := route{kind: parts[0]}
	switch {
	case len(parts) == 1:
		r.screen = screenList
	case len(parts) == 2 && parts[1] == "new":
		r.screen = screenCreate
	case len(parts) == 3 && parts[2] == "edit":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return route{}, false
		}
		r.screen = screenEdit
		r.id = id
	default:
		return route{}, false
	}
	return r, true
}

// refreshMsg asks the program to redraw and apply queued routes. It carries
// nothing: views read their state from the managers.
type refreshMsg struct{}

// Router queues navigation requests from managers. Navigate may run on timer
// goroutines, so routes are drained by the App inside Update.
type Router struct {
	mu      sync.Mutex
	pending []string
	wake    chan struct{}
}

func NewRouter() *Router {
	return &Router{wake: make(chan struct{}, 1)}
}

// Navigate queues path and wakes the program.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.pending = append(r.pending, path)
	r.mu.Unlock()
	r.Poke()
}

// Poke wakes the program without blocking. Wakes coalesce.
func (r *Router) Poke() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Drain returns and clears queued routes.
func (r *Router) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

// Attach forwards wakes to send until done closes. send must not be called
// from inside Update, which is why wakes go through a goroutine.
func (r *Router) Attach(send func(tea.Msg), done <-chan struct{}) {
	go func() {
		for {
			select {
			case <-done:
				return
			case <-r.wake:
				send(refreshMsg{})
			}
		}
	}()
}
