package internal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIndex(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 3},
		{7, 5},
		{8, 6},
		{100, 75},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, SplitIndex(tt.n))
		})
	}
}

func TestSplitSessions_Scenario(t *testing.T) {
	s0 := NewSearchSession("0", "a", "r1", "r2")
	s1 := NewSearchSession("1", "b", "r3")
	s2 := NewSearchSession("2", "a", "r4")

	split := SplitSessions([]*SearchSession{s0, s1, s2})

	assert.Equal(t, []*SearchSession{s0, s1}, split.Train)
	assert.Equal(t, []*SearchSession{s2}, split.TestCandidates)
	assert.Equal(t, []*SearchSession{s2}, split.Test)
	assert.Equal(t, []string{"a", "b"}, split.TrainQueries.Sorted())
	assert.Equal(t, []string{"a"}, split.TestQueries.Sorted())
}

func TestSplitSessions_DropsUnseenQueries(t *testing.T) {
	sessions := []*SearchSession{
		NewSearchSession("0", "a", "r1"),
		NewSearchSession("1", "a", "r2"),
		NewSearchSession("2", "a", "r3"),
		NewSearchSession("3", "z", "r4"),
	}

	split := SplitSessions(sessions)

	assert.Len(t, split.Train, 3)
	assert.Len(t, split.TestCandidates, 1)
	assert.Empty(t, split.Test)
	assert.Equal(t, 0, split.TestQueries.Len())
}

func TestSplitSessions_Empty(t *testing.T) {
	for _, sessions := range [][]*SearchSession{nil, {}} {
		split := SplitSessions(sessions)
		assert.Empty(t, split.Train)
		assert.Empty(t, split.TestCandidates)
		assert.Empty(t, split.Test)
		assert.Equal(t, 0, split.TrainQueries.Len())
		assert.Equal(t, 0, split.TestQueries.Len())
	}
}

func TestSplitSessions_SingleSession(t *testing.T) {
	s := NewSearchSession("0", "a", "r1")

	split := SplitSessions([]*SearchSession{s})

	assert.Empty(t, split.Train)
	assert.Equal(t, []*SearchSession{s}, split.TestCandidates)
	assert.Empty(t, split.Test, "nothing is seen in an empty training part")
}

func TestSplitSessions_Properties(t *testing.T) {
	queries := []string{"a", "b", "c", "a", "d", "b", "e", "a", "c", "f", "b"}

	for n := 0; n <= len(queries); n++ {
		sessions := make([]*SearchSession, n)
		for i := 0; i < n; i++ {
			sessions[i] = NewSearchSession(fmt.Sprint(i), queries[i], "r")
		}

		split := SplitSessions(sessions)

		require.Equal(t, n, len(split.Train)+len(split.TestCandidates), "n=%d", n)
		assert.Equal(t, SplitIndex(n), len(split.Train), "n=%d", n)
		assert.Equal(t, sessions, append(append([]*SearchSession{}, split.Train...), split.TestCandidates...), "n=%d", n)

		// test keeps candidate order and only seen queries
		j := 0
		for _, s := range split.TestCandidates {
			if split.TrainQueries.Contains(s.Query) {
				require.Less(t, j, len(split.Test))
				assert.Same(t, s, split.Test[j])
				j++
			}
		}
		assert.Equal(t, j, len(split.Test), "n=%d", n)

		for q := range split.TestQueries {
			assert.True(t, split.TrainQueries.Contains(q), "n=%d query %s", n, q)
		}
		assert.Equal(t, UniqueQueries(split.Train), split.TrainQueries)
	}
}

func TestSplitSessions_SampleLog(t *testing.T) {
	var sessions []*SearchSession
	for i, q := range []string{"q1", "q2", "q1", "q3", "q2", "q1", "q4", "q3"} {
		sessions = append(sessions, NewSearchSession(fmt.Sprint(i+1), q, "d"))
	}

	split := SplitSessions(sessions)

	assert.Len(t, split.Train, 6)
	assert.Equal(t, []string{"q1", "q2", "q3"}, split.TrainQueries.Sorted())
	require.Len(t, split.Test, 1)
	assert.Equal(t, "8", split.Test[0].ID)
	assert.Equal(t, []string{"q3"}, split.TestQueries.Sorted())
}
