// Package sortx provides the stable merge sort behind every sortable table.
package sortx

import "cmp"

// MergeSort returns a sorted copy of items ordered by key. The sort is
// stable in both directions: elements with equal keys keep their input
// order whether desc is set or not. items is not modified.
func MergeSort[T any, K cmp.Ordered](items []T, key func(T) K, desc bool) []T {
	less := func(a, b T) int { return cmp.Compare(key(a), key(b)) }
	if desc {
		less = func(a, b T) int { return cmp.Compare(key(b), key(a)) }
	}
	return SortFunc(items, less)
}

// SortFunc is MergeSort with an explicit three-way comparison. On ties the
// element from the left half wins.
func SortFunc[T any](items []T, compare func(a, b T) int) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) < 2 {
		return out
	}
	buf := make([]T, len(out))
	mergeSort(out, buf, compare)
	return out
}

func mergeSort[T any](s, buf []T, compare func(a, b T) int) {
	if len(s) < 2 {
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], buf[:mid], compare)
	mergeSort(s[mid:], buf[mid:], compare)

	copy(buf, s)
	left, right := buf[:mid], buf[mid:len(s)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if compare(right[j], left[i]) < 0 {
			s[k] = right[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}

// ReverseSorted sorts ascending and then reverses the result, so equal keys
// come out in reverse input order. Kept for views that relied on that order.
func ReverseSorted[T any, K cmp.Ordered](items []T, key func(T) K) []T {
	out := MergeSort(items, key, false)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
