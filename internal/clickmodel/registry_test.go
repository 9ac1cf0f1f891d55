package clickmodel

import (
	"errors"
	"testing"

	"github.com/clickexp/clickexp/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Names(t *testing.T) {
	names := DefaultRegistry(Options{}).Names()
	assert.Equal(t, []string{"CCM", "CM", "DBN", "DCM", "DCTR", "GCTR", "PBM", "RCTR", "SDBN", "UBM"}, names)
}

func TestRegistry_New(t *testing.T) {
	r := DefaultRegistry(Options{})

	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			m, err := r.New(name)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name())

			other, err := r.New(name)
			require.NoError(t, err)
			assert.NotSame(t, m, other, "every call creates a fresh model")
		})
	}
}

func TestRegistry_UnknownModel(t *testing.T) {
	_, err := DefaultRegistry(Options{}).New("XYZ")
	require.Error(t, err)

	var unknown *internal.UnknownModelError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "XYZ", unknown.Name)
	assert.Contains(t, unknown.Known, "PBM")
}

func TestRegistry_EMIterations(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{name: "default", opts: Options{}, want: DefaultEMIterations},
		{name: "negative", opts: Options{EMIterations: -1}, want: DefaultEMIterations},
		{name: "explicit", opts: Options{EMIterations: 3}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"PBM", "UBM", "DBN", "CCM"} {
				m, err := DefaultRegistry(tt.opts).New(name)
				require.NoError(t, err)
				it, ok := m.(Iterative)
				require.True(t, ok, "%s should be iterative", name)
				assert.Equal(t, tt.want, it.Iterations())
			}
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(Options{})
	assert.Empty(t, r.Names())

	r.Register("MY", func(Options) ClickModel { return NewGCTR() })
	assert.Equal(t, []string{"MY"}, r.Names())

	m, err := r.New("MY")
	require.NoError(t, err)
	assert.Equal(t, "GCTR", m.Name())
}
