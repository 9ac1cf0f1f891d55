package internal

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/clickexp/clickexp/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYandexParser_SampleLog(t *testing.T) {
	path := testutil.WriteSampleLog(t, testutil.CreateTempDir(t))

	sessions, err := NewYandexParser().Parse(path, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 8)

	first := sessions[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "q1", first.Query)
	assert.Equal(t, []WebResult{{ID: "d1", Click: true}, {ID: "d2"}, {ID: "d3"}}, first.WebResults)

	// two clicks in one session
	assert.Equal(t, []bool{false, true, true}, sessions[2].Clicks())
	// no clicks
	assert.Equal(t, []bool{false, false}, sessions[3].Clicks())
	assert.Equal(t, "q4", sessions[6].Query)
	assert.Equal(t, []bool{true, false}, sessions[7].Clicks())
}

func TestYandexParser_Limit(t *testing.T) {
	path := testutil.WriteSampleLog(t, testutil.CreateTempDir(t))

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 0, want: 8},
		{limit: 1, want: 1},
		{limit: 3, want: 3},
		{limit: 8, want: 8},
		{limit: 100, want: 8},
	}

	for _, tt := range tests {
		sessions, err := ParseYandexLog(path, tt.limit)
		require.NoError(t, err)
		assert.Len(t, sessions, tt.want, "limit=%d", tt.limit)
	}
}

func TestYandexParser_LimitKeepsLastSessionClicks(t *testing.T) {
	path := testutil.WriteSampleLog(t, testutil.CreateTempDir(t))

	sessions, err := ParseYandexLog(path, 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, []bool{false, true, true}, sessions[2].Clicks())
}

func TestYandexParser_SkipsMalformedLines(t *testing.T) {
	log := strings.Join([]string{
		"garbage",
		"1\t0\tQ\tq1", // too short for a query
		"1\t0\tQ\tq1\t213\ta\tb",
		"1\t1\tC\tb\textra", // too long for a click
		"2\t1\tC\ta",        // other session
		"1\t2\tC\tzz",       // unknown result
		"1\t3\tX\ta\t0\t0",  // unknown action
		"",
		"1\t4\tC\ta",
	}, "\n")
	path := testutil.WriteFile(t, testutil.CreateTempDir(t), "log.tsv", log)

	sessions, err := ParseYandexLog(path, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, []bool{true, false}, sessions[0].Clicks())
}

func TestYandexParser_ClickBeforeQuery(t *testing.T) {
	path := testutil.WriteFile(t, testutil.CreateTempDir(t), "log.tsv",
		"1\t0\tC\ta\n1\t1\tQ\tq\t0\ta\n")

	sessions, err := ParseYandexLog(path, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, []bool{false}, sessions[0].Clicks())
}

func TestYandexParser_MissingFile(t *testing.T) {
	_, err := ParseYandexLog("/nonexistent/train.tsv", 0)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "/nonexistent/train.tsv", parseErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestYandexParser_EmptyFile(t *testing.T) {
	path := testutil.WriteFile(t, testutil.CreateTempDir(t), "empty.tsv", "")

	sessions, err := ParseYandexLog(path, 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
