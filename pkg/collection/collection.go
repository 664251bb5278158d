// Package collection has the generic slice helpers the catalog and views
// share.
//
//	names := collection.Map(items, func(i models.MenuItem) string { return i.Name })
//	byCourse := collection.GroupBy(items, func(i models.MenuItem) models.CourseID { return i.Course })
//	total := collection.Sum(items, func(i models.MenuItem) float64 { return i.Price })
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true, in order.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// GroupBy buckets s by key. Each bucket keeps the order of s.
func GroupBy[T any, K comparable](s []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		k := key(v)
		out[k] = append(out[k], v)
	}
	return out
}

// Count is the number of elements for which fn returns true.
func Count[T any](s []T, fn func(T) bool) int {
	n := 0
	for _, v := range s {
		if fn(v) {
			n++
		}
	}
	return n
}

// Sum adds up fn over every element.
func Sum[T any](s []T, fn func(T) float64) float64 {
	var total float64
	for _, v := range s {
		total += fn(v)
	}
	return total
}
