package bleu

// References builds the reference list for count candidates: count copies
// of first followed by second.
//
// Every copy has its own backing array, so mutating one copy never changes
// a sibling or the inputs. A count of zero or less yields an empty,
// non-nil slice.
//
// The elements are copied shallowly. When T is itself a slice, as in
// References[[]string] for multi-sentence references, the inner slices are
// shared with the inputs.
func References[T any](first, second []T, count int) [][]T {
	if count <= 0 {
		return [][]T{}
	}

	n := len(first) + len(second)
	out := make([][]T, count)
	for i := range out {
		ref := make([]T, n)
		copy(ref, first)
		copy(ref[len(first):], second)
		out[i] = ref
	}
	return out
}
