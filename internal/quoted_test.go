package internal

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotedWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewQuotedWriter(&buf)

	require.NoError(t, w.Write("a", "r1", "0.1"))
	require.NoError(t, w.Write(`say "hi"`, "x,y", ""))
	require.NoError(t, w.Flush())

	assert.Equal(t, "\"a\",\"r1\",\"0.1\"\n\"say \"\"hi\"\"\",\"x,y\",\"\"\n", buf.String())
}

func TestQuotedWriter_Buffered(t *testing.T) {
	var buf bytes.Buffer
	w := NewQuotedWriter(&buf)

	require.NoError(t, w.Write("a"))
	assert.Empty(t, buf.String(), "nothing reaches the writer before Flush")
	require.NoError(t, w.Flush())
	assert.Equal(t, "\"a\"\n", buf.String())
}

func TestQuotedWriter_CRLF(t *testing.T) {
	var buf bytes.Buffer
	w := NewQuotedWriter(&buf)
	w.UseCRLF = true

	require.NoError(t, w.Write("a", "b"))
	require.NoError(t, w.Write("c"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "\"a\",\"b\"\r\n\"c\"\r\n", buf.String())
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.1, "0.1"},
		{0.5, "0.5"},
		{1, "1.0"},
		{0, "0.0"},
		{100, "100.0"},
		{-0.6931471805599453, "-0.69314718056"},
		{1.0 / 3, "0.333333333333"},
		{1e-10, "1e-10"},
		{1e12, "1e+12"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.in))
		})
	}
}

func TestFormatFloatRepr(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.1, "0.1"},
		{1, "1.0"},
		{0, "0.0"},
		{-0.6931471805599453, "-0.6931471805599453"},
		{1700000000.5, "1700000000.5"},
		{1e-10, "1e-10"},
		{1e16, "1e+16"},
		{math.NaN(), "nan"},
		{math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloatRepr(tt.in))
		})
	}
}
