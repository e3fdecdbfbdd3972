package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string
	Status string
	Rent   float64
}

func TestMatchText(t *testing.T) {
	require.True(t, MatchText("a-10", "A-101", "Sunset Apartments"))
	require.True(t, MatchText("sunset", "A-101", "Sunset Apartments"))
	require.True(t, MatchText("", "anything"))
	require.True(t, MatchText("", ""))

	require.False(t, MatchText("b-20", "A-101", "Sunset Apartments"))
	require.False(t, MatchText("sunset"))
}

func TestGroupBy(t *testing.T) {
	rows := []row{
		{ID: "1", Status: "occupied"},
		{ID: "2", Status: "vacant"},
		{ID: "3", Status: "occupied"},
	}

	groups := GroupBy(rows, func(r row) string { return r.Status })
	require.Len(t, groups, 2)
	require.Equal(t, []string{"1", "3"}, ids(groups["occupied"]))
	require.Equal(t, []string{"2"}, ids(groups["vacant"]))
}

func TestSortBy(t *testing.T) {
	rows := []row{
		{ID: "1", Rent: 25000},
		{ID: "2", Rent: 12000},
		{ID: "3", Rent: 18000},
	}

	asc := SortBy(rows, func(r row) float64 { return r.Rent }, Asc)
	require.Equal(t, []string{"2", "3", "1"}, ids(asc))

	desc := SortBy(rows, func(r row) float64 { return r.Rent }, Desc)
	require.Equal(t, []string{"1", "3", "2"}, ids(desc))

	// Input untouched
	require.Equal(t, []string{"1", "2", "3"}, ids(rows))
}

func TestSortByStable(t *testing.T) {
	rows := []row{
		{ID: "1", Rent: 10000},
		{ID: "2", Rent: 10000},
		{ID: "3", Rent: 10000},
	}

	sorted := SortBy(rows, func(r row) float64 { return r.Rent }, Asc)
	require.Equal(t, []string{"1", "2", "3"}, ids(sorted))

	// Re-sorting an already sorted slice is a no-op
	require.Equal(t, ids(sorted), ids(SortBy(sorted, func(r row) float64 { return r.Rent }, Asc)))
}

func TestUniqueBy(t *testing.T) {
	rows := []row{
		{ID: "1", Status: "occupied"},
		{ID: "2", Status: "vacant"},
		{ID: "3", Status: "occupied"},
	}

	unique := UniqueBy(rows, func(r row) string { return r.Status })
	require.Equal(t, []string{"1", "2"}, ids(unique))

	// Re-applying is a no-op
	require.Equal(t, ids(unique), ids(UniqueBy(unique, func(r row) string { return r.Status })))

	require.Empty(t, UniqueBy(nil, func(r row) string { return r.Status }))
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
