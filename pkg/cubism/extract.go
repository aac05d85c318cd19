package cubism

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// epsilon absorbs float round-trip noise in min/max/default/opacity checks.
// Asset compilers emit values that can land a hair outside their declared
// range after serialization.
const epsilon = 1e-4

// The extraction helpers below turn the engine's raw pointer-plus-count pairs
// into Go slices, failing on anything that cannot be trusted: null pointers,
// negative counts, undecodable identifier strings, invariant-violating
// elements. Extraction is fail-fast at model construction so that later
// static accessors never need to re-validate.
//
// The returned slices alias engine memory inside the instance buffer. They
// stay valid exactly as long as the owning Model is alive.

func nonNegative(n int32, domain string) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCount, domain)
	}
	return int(n), nil
}

// view reinterprets an engine array of n elements as a Go slice.
func view[T any](p unsafe.Pointer, n int, field string) ([]T, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidData, field)
	}
	return unsafe.Slice((*T)(p), n), nil
}

// viewChecked is view plus a per-element invariant; one bad element fails the
// whole array.
func viewChecked[T any](p unsafe.Pointer, n int, field string, ok func(i int, v T) bool) ([]T, error) {
	s, err := view[T](p, n, field)
	if err != nil {
		return nil, err
	}
	for i, v := range s {
		if !ok(i, v) {
			return nil, fmt.Errorf("%w: %s[%d]", ErrInvalidData, field, i)
		}
	}
	return s, nil
}

// nestedChecked resolves a count-array/pointer-array pair into per-element
// views, validating each inner count and pointer, and each inner element when
// ok is non-nil.
func nestedChecked[T any](counts []int32, ptrs []unsafe.Pointer, field string, ok func(outer, inner int, v T) bool) ([][]T, error) {
	out := make([][]T, len(counts))
	for i := range counts {
		n, err := nonNegative(counts[i], field)
		if err != nil {
			return nil, err
		}
		var check func(int, T) bool
		if ok != nil {
			check = func(j int, v T) bool { return ok(i, j, v) }
		} else {
			check = func(int, T) bool { return true }
		}
		s, err := viewChecked[T](ptrs[i], n, field, check)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// goStringAt decodes the null-terminated C string at p.
func goStringAt(p unsafe.Pointer) (string, bool) {
	if p == nil {
		return "", false
	}
	n := 0
	for *(*byte)(unsafe.Pointer(uintptr(p) + uintptr(n))) != 0 {
		n++
	}
	s := string(unsafe.Slice((*byte)(p), n))
	return s, utf8.ValidString(s)
}

// extractIDs decodes an identifier pointer array and builds the id→index
// map. Duplicate identifiers keep their first index; the engine is not known
// to emit duplicates.
func extractIDs(p unsafe.Pointer, n int, field string) ([]string, map[string]int, error) {
	ptrs, err := view[unsafe.Pointer](p, n, field)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, n)
	index := make(map[string]int, n)
	for i, sp := range ptrs {
		s, ok := goStringAt(sp)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s[%d]", ErrInvalidData, field, i)
		}
		ids[i] = s
		if _, seen := index[s]; !seen {
			index[s] = i
		}
	}
	return ids, index, nil
}

func validOpacity(o float32) bool {
	return o >= 0-epsilon && o <= 1+epsilon
}
