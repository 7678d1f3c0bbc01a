package paging

// Defaults are the construction-time values a State returns to on Reset.
type Defaults struct {
	Page     int
	PageSize int
	Sort     string
}

// Request is the page triple sent to a paginated list endpoint.
// An empty Sort is omitted on the wire.
type Request struct {
	Page int
	Size int
	Sort string
}

// Range is a 1-based inclusive window of visible items.
type Range struct {
	Start int
	End   int
}

// State tracks the current page, page size, total count and sort key.
// Total pages are always derived, never stored.
type State struct {
	defaults      Defaults
	currentPage   int
	pageSize      int
	totalElements int
	sortKey       string
}

// New creates a State from caller defaults. Page sizes below 1 clamp to 1.
func New(d Defaults) *State {
	if d.PageSize < 1 {
		d.PageSize = 1
	}
	if d.Page < 0 {
		d.Page = 0
	}
	s := &State{defaults: d}
	s.Reset()
	return s
}

// Reset restores the construction defaults.
func (s *State) Reset() {
	s.currentPage = s.defaults.Page
	s.pageSize = s.defaults.PageSize
	s.totalElements = 0
	s.sortKey = s.defaults.Sort
	s.clamp()
}

func (s *State) CurrentPage() int   { return s.currentPage }
func (s *State) PageSize() int      { return s.pageSize }
func (s *State) TotalElements() int { return s.totalElements }
func (s *State) SortKey() string    { return s.sortKey }

// TotalPages is ceil(totalElements / pageSize).
func (s *State) TotalPages() int {
	return (s.totalElements + s.pageSize - 1) / s.pageSize
}

func (s *State) HasNext() bool     { return s.currentPage < s.TotalPages()-1 }
func (s *State) HasPrevious() bool { return s.currentPage > 0 }
func (s *State) IsFirst() bool     { return s.currentPage == 0 }
func (s *State) IsLast() bool      { return !s.HasNext() }

// GoToPage clamps n into [0, totalPages-1]. It reports whether the page changed.
func (s *State) GoToPage(n int) bool {
	n = clampInt(n, 0, s.lastPage())
	if n == s.currentPage {
		return false
	}
	s.currentPage = n
	return true
}

// NextPage is a no-op on the last page.
func (s *State) NextPage() bool {
	if !s.HasNext() {
		return false
	}
	s.currentPage++
	return true
}

// PreviousPage is a no-op on the first page.
func (s *State) PreviousPage() bool {
	if !s.HasPrevious() {
		return false
	}
	s.currentPage--
	return true
}

// SetPageSize keeps the previously first visible item on the new page.
func (s *State) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	first := s.currentPage * s.pageSize
	s.pageSize = size
	s.currentPage = first / size
	s.clamp()
}

// SetTotalElements updates the authoritative count. The current page only
// ever moves down to stay in range.
func (s *State) SetTotalElements(n int) {
	if n < 0 {
		n = 0
	}
	s.totalElements = n
	s.clamp()
}

// SetSort replaces the sort key and returns to the first page. An empty key
// clears sorting.
func (s *State) SetSort(key string) {
	s.sortKey = key
	s.currentPage = 0
}

// Request builds the transport page request.
func (s *State) Request() Request {
	return Request{Page: s.currentPage, Size: s.pageSize, Sort: s.sortKey}
}

// CurrentRange returns the visible 1-based window, {0,0} when empty.
func (s *State) CurrentRange() Range {
	if s.totalElements == 0 {
		return Range{}
	}
	start := s.currentPage*s.pageSize + 1
	end := start + s.pageSize - 1
	if end > s.totalElements {
		end = s.totalElements
	}
	return Range{Start: start, End: end}
}

// Slice returns the current page window of an in-memory collection. It is
// used for kinds the server does not paginate.
func Slice[T any](items []T, s *State) []T {
	if len(items) == 0 {
		return nil
	}
	start := s.currentPage * s.pageSize
	if start >= len(items) {
		return nil
	}
	end := start + s.pageSize
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

func (s *State) lastPage() int {
	last := s.TotalPages() - 1
	if last < 0 {
		return 0
	}
	return last
}

func (s *State) clamp() {
	s.currentPage = clampInt(s.currentPage, 0, s.lastPage())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
