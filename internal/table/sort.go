package table

import (
	"slices"
	"strings"
)

// Direction is a column sort direction.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return ""
	}
}

// SortState is the active sort column and direction.
type SortState struct {
	Field string
	Dir   Direction
}

// Active reports whether any sort applies.
func (s SortState) Active() bool {
	return s.Field != "" && s.Dir != Unsorted
}

// Key renders the wire form "field,asc". Unsorted yields "".
func (s SortState) Key() string {
	if !s.Active() {
		return ""
	}
	return s.Field + "," + s.Dir.String()
}

// Cycle advances the sort for a header activation on field:
// unsorted -> ascending -> descending -> unsorted. Activating a different
// field starts that field at ascending.
func (s SortState) Cycle(field string) SortState {
	if s.Field != field || s.Dir == Unsorted {
		return SortState{Field: field, Dir: Ascending}
	}
	if s.Dir == Ascending {
		return SortState{Field: field, Dir: Descending}
	}
	return SortState{}
}

// ParseSortKey is the inverse of Key. Unknown directions default to ascending.
func ParseSortKey(key string) SortState {
	key = strings.TrimSpace(key)
	if key == "" {
		return SortState{}
	}
	field, dir, _ := strings.Cut(key, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return SortState{}
	}
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return SortState{Field: field, Dir: Descending}
	}
	return SortState{Field: field, Dir: Ascending}
}

// SortByKey orders items client side by a "field,dir" key using the same
// dotted-path lookup as cells. The input slice is not modified.
func SortByKey[T any](items []T, key string) []T {
	out := slices.Clone(items)
	st := ParseSortKey(key)
	if !st.Active() || len(out) < 2 {
		return out
	}

	type keyed struct {
		item T
		val  any
		ok   bool
	}
	rows := make([]keyed, len(out))
	for i, item := range out {
		v, ok := Lookup(item, st.Field)
		rows[i] = keyed{item: item, val: v, ok: ok}
	}
	slices.SortStableFunc(rows, func(a, b keyed) int {
		c := compareValues(a.val, b.val, a.ok, b.ok)
		if st.Dir == Descending && a.ok && b.ok {
			c = -c
		}
		return c
	})
	for i := range rows {
		out[i] = rows[i].item
	}
	return out
}
