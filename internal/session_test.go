package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchSession(t *testing.T) {
	s := NewSearchSession("7", "q", "a", "b", "c")

	assert.Equal(t, "7", s.ID)
	assert.Equal(t, "q", s.Query)
	assert.Equal(t, []WebResult{{ID: "a"}, {ID: "b"}, {ID: "c"}}, s.WebResults)
	assert.Equal(t, []bool{false, false, false}, s.Clicks())
}

func TestSearchSession_Clicks(t *testing.T) {
	tests := []struct {
		name       string
		clicked    []int
		wantFirst  int
		wantLast   int
		wantClicks []bool
	}{
		{name: "no clicks", wantFirst: -1, wantLast: -1, wantClicks: []bool{false, false, false}},
		{name: "single click", clicked: []int{1}, wantFirst: 1, wantLast: 1, wantClicks: []bool{false, true, false}},
		{name: "two clicks", clicked: []int{0, 2}, wantFirst: 0, wantLast: 2, wantClicks: []bool{true, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearchSession("1", "q", "a", "b", "c")
			for _, rank := range tt.clicked {
				s.WebResults[rank].Click = true
			}

			assert.Equal(t, tt.wantFirst, s.FirstClick())
			assert.Equal(t, tt.wantLast, s.LastClick())
			assert.Equal(t, tt.wantClicks, s.Clicks())
		})
	}
}

func TestQuerySet(t *testing.T) {
	qs := NewQuerySet()

	assert.True(t, qs.Add("b"))
	assert.True(t, qs.Add("a"))
	assert.False(t, qs.Add("b"), "second insertion reports an existing query")

	assert.Equal(t, 2, qs.Len())
	assert.True(t, qs.Contains("a"))
	assert.False(t, qs.Contains("c"))
	assert.Equal(t, []string{"a", "b"}, qs.Sorted())
}

func TestUniqueQueries(t *testing.T) {
	sessions := []*SearchSession{
		NewSearchSession("1", "x"),
		NewSearchSession("2", "y"),
		NewSearchSession("3", "x"),
	}

	assert.Equal(t, []string{"x", "y"}, UniqueQueries(sessions).Sorted())
	assert.Equal(t, 0, UniqueQueries(nil).Len())
}
