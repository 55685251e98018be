package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []Contact {
	return []Contact{
		{ID: 1, Name: "João Silva", Mobile: "11987654321", Landline: "1133334444", Email: "joao@example.com", Favorite: true, Active: true},
		{ID: 2, Name: "Maria Santos", Mobile: "11976543210", Email: "maria@example.com", Active: true},
		{ID: 3, Name: "Pedro Alves", Mobile: "21988887777", Landline: "2122223333", Favorite: true, Active: true},
		{ID: 4, Name: "ana joaquina", Mobile: "31999990000", Active: true},
	}
}

func ids(list []Contact) []int64 {
	out := make([]int64, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		st   FilterState
		want []int64
	}{
		{name: "no filter", st: FilterState{}, want: []int64{1, 2, 3, 4}},
		{name: "blank term is no filter", st: FilterState{SearchTerm: "   "}, want: []int64{1, 2, 3, 4}},
		{name: "favorites only", st: FilterState{FavoritesOnly: true}, want: []int64{1, 3}},
		{name: "name lowercase term", st: FilterState{SearchTerm: "joão"}, want: []int64{1}},
		{name: "name uppercase term", st: FilterState{SearchTerm: "JOÃO"}, want: []int64{1}},
		{name: "decomposed term", st: FilterState{SearchTerm: "joa\u0303o"}, want: []int64{1}},
		{name: "term is trimmed", st: FilterState{SearchTerm: "  maria "}, want: []int64{2}},
		{name: "substring in lowercase field", st: FilterState{SearchTerm: "JOAQ"}, want: []int64{4}},
		{name: "mobile digits", st: FilterState{SearchTerm: "98888"}, want: []int64{3}},
		{name: "landline digits", st: FilterState{SearchTerm: "33334444"}, want: []int64{1}},
		{name: "email", st: FilterState{SearchTerm: "@EXAMPLE.com"}, want: []int64{1, 2}},
		{name: "and composition", st: FilterState{FavoritesOnly: true, SearchTerm: "example"}, want: []int64{1}},
		{name: "nothing matches", st: FilterState{SearchTerm: "zzz"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixtures(), tt.st)))
		})
	}
}

func TestFilter_AbsentFieldsNeverMatch(t *testing.T) {
	list := []Contact{{ID: 9, Name: "X", Mobile: "11987654321"}}
	assert.Empty(t, Filter(list, FilterState{SearchTerm: "@"}))
}

func TestFilter_OrderIndependent(t *testing.T) {
	list := fixtures()
	st := FilterState{FavoritesOnly: true, SearchTerm: "a"}

	favs := Filter(list, FilterState{FavoritesOnly: true})
	thenSearch := Filter(favs, FilterState{SearchTerm: "a"})

	searched := Filter(list, FilterState{SearchTerm: "a"})
	thenFavs := Filter(searched, FilterState{FavoritesOnly: true})

	assert.Equal(t, Filter(list, st), thenSearch)
	assert.Equal(t, thenSearch, thenFavs)
}

func TestFilter_DoesNotAlias(t *testing.T) {
	list := fixtures()
	out := Filter(list, FilterState{})
	require.Len(t, out, len(list))
	out[0].Name = "changed"
	assert.Equal(t, "João Silva", list[0].Name)
}

func TestFilterState_Active(t *testing.T) {
	assert.False(t, FilterState{}.Active())
	assert.False(t, FilterState{SearchTerm: " "}.Active())
	assert.True(t, FilterState{FavoritesOnly: true}.Active())
	assert.True(t, FilterState{SearchTerm: "a"}.Active())
}
