package search

import (
	"cmp"
	"sort"
	"strings"
)

// Sort orders
const (
	Asc  = "asc"
	Desc = "desc"
)

// MatchText reports whether any of the fields contains term,
// case-insensitively. An empty term matches everything.
func MatchText(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// GroupBy partitions xs into groups keyed by key(x). Insertion order within
// each group follows the input.
func GroupBy[T any](xs []T, key func(T) string) map[string][]T {
	groups := make(map[string][]T)
	for _, x := range xs {
		k := key(x)
		groups[k] = append(groups[k], x)
	}
	return groups
}

// SortBy returns a new slice ordered by key(x). The sort is stable, so
// equal keys keep their relative input order and re-sorting is a no-op.
func SortBy[T any, K cmp.Ordered](xs []T, key func(T) K, order string) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	sort.SliceStable(out, func(i, j int) bool {
		if order == Desc {
			return key(out[j]) < key(out[i])
		}
		return key(out[i]) < key(out[j])
	})
	return out
}

// UniqueBy keeps the first occurrence per key value, preserving order.
func UniqueBy[T any, K comparable](xs []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(xs))
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		k := key(x)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, x)
	}
	return out
}
