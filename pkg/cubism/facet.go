package cubism

import (
	"fmt"
	"iter"
)

// Facet is the uniform read surface shared by every model data projection:
// element count, identifier lookup, checked and unchecked fetch, and
// restartable bidirectional iteration in index order.
//
// Fetch yields a fully materialized record. For static projections the error
// is always nil; for DynamicDrawables it carries per-element revalidation
// failures, because the engine may rewrite dynamic flags and opacities on
// every update pass.
type Facet[T any] struct {
	ids   []string
	index map[string]int
	fetch func(int) (T, error)
}

func newFacet[T any](ids []string, index map[string]int, fetch func(int) (T, error)) Facet[T] {
	return Facet[T]{ids: ids, index: index, fetch: fetch}
}

// Count returns the number of elements.
func (f Facet[T]) Count() int {
	return len(f.ids)
}

// IDs returns all identifiers in index order. The caller must not mutate the
// returned slice.
func (f Facet[T]) IDs() []string {
	return f.ids
}

// IndexOf returns the index of the element with the given id.
func (f Facet[T]) IndexOf(id string) (int, bool) {
	i, ok := f.index[id]
	return i, ok
}

// At fetches the element at index. The caller must guarantee
// 0 <= index < Count; anything else panics. GetChecked is the checked form.
func (f Facet[T]) At(index int) (T, error) {
	return f.fetch(index)
}

// Get fetches the element with the given id. An unknown id is a caller bug
// and panics; use IndexOf first when the id is not known to exist.
func (f Facet[T]) Get(id string) (T, error) {
	i, ok := f.index[id]
	if !ok {
		panic(fmt.Sprintf("cubism: id %q does not exist", id))
	}
	return f.fetch(i)
}

// GetChecked bounds-checks index and fetches the element, reporting
// ErrIndexOutOfRange instead of panicking.
func (f Facet[T]) GetChecked(index int) (T, error) {
	if index < 0 || index >= len(f.ids) {
		var zero T
		return zero, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(f.ids))
	}
	return f.fetch(index)
}

// All iterates every element in index order. The sequence is restartable.
func (f Facet[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := 0; i < len(f.ids); i++ {
			if !yield(f.fetch(i)) {
				return
			}
		}
	}
}

// Backward iterates every element in reverse index order.
func (f Facet[T]) Backward() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := len(f.ids) - 1; i >= 0; i-- {
			if !yield(f.fetch(i)) {
				return
			}
		}
	}
}

// Collect materializes all elements in index order, stopping at the first
// fetch failure.
func (f Facet[T]) Collect() ([]T, error) {
	out := make([]T, 0, len(f.ids))
	for i := 0; i < len(f.ids); i++ {
		v, err := f.fetch(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
