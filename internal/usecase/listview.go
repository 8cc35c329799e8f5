package usecase

import "strings"

// Field derives one searchable string from a row.
type Field[T any] func(T) string

// Filter keeps the rows where any field contains query, case-insensitively,
// in their original order. An empty query returns items as is.
func Filter[T any](query string, items []T, fields ...Field[T]) []T {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(it)), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

type Keyed interface{ Key() string }

// ListView is the in-memory state of a searchable list page: the full
// collection, the rows matching the current query and the row opened in the
// detail panel.
type ListView[T Keyed] struct {
	all      []T
	filtered []T
	query    string
	fields   []Field[T]
	selected string
}

func NewListView[T Keyed](items []T, fields ...Field[T]) *ListView[T] {
	return &ListView[T]{all: items, filtered: items, fields: fields}
}

func (v *ListView[T]) SetQuery(q string) {
	v.query = q
	v.filtered = Filter(q, v.all, v.fields...)
}

func (v *ListView[T]) Query() string { return v.query }
func (v *ListView[T]) All() []T      { return v.all }
func (v *ListView[T]) Items() []T    { return v.filtered }
func (v *ListView[T]) Empty() bool   { return len(v.filtered) == 0 }

// Select opens id in the detail panel; unknown ids clear the selection.
func (v *ListView[T]) Select(id string) bool {
	if _, ok := FindByKey(id, v.all); ok {
		v.selected = id
		return true
	}
	v.selected = ""
	return false
}

func (v *ListView[T]) Selected() (T, bool) {
	return FindByKey(v.selected, v.all)
}

func (v *ListView[T]) SelectedID() string { return v.selected }

// Remove drops id after the server confirmed its deletion.
func (v *ListView[T]) Remove(id string) {
	v.all = without(v.all, id)
	v.filtered = without(v.filtered, id)
	if v.selected == id {
		v.selected = ""
	}
}

// without copies; all and filtered may share a backing array.
func without[T Keyed](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Key() != id {
			out = append(out, it)
		}
	}
	return out
}
