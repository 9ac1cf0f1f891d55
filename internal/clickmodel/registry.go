package clickmodel

import (
	"sort"

	"github.com/clickexp/clickexp/internal"
)

// Factory creates an untrained model
type Factory func(opts Options) ClickModel

// Registry resolves model names to factories
type Registry struct {
	factories map[string]Factory
	opts      Options
}

// NewRegistry creates an empty registry whose factories receive opts
func NewRegistry(opts Options) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		opts:      opts,
	}
}

// DefaultRegistry creates a registry holding the whole model catalog
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry(opts)
	r.Register("GCTR", func(Options) ClickModel { return NewGCTR() })
	r.Register("RCTR", func(Options) ClickModel { return NewRCTR() })
	r.Register("DCTR", func(Options) ClickModel { return NewDCTR() })
	r.Register("CM", func(Options) ClickModel { return NewCM() })
	r.Register("PBM", func(o Options) ClickModel { return NewPBM(o.emIterations()) })
	r.Register("UBM", func(o Options) ClickModel { return NewUBM(o.emIterations()) })
	r.Register("DCM", func(Options) ClickModel { return NewDCM() })
	r.Register("SDBN", func(Options) ClickModel { return NewSDBN() })
	r.Register("DBN", func(o Options) ClickModel { return NewDBN(o.emIterations()) })
	r.Register("CCM", func(o Options) ClickModel { return NewCCM(o.emIterations()) })
	return r
}

// Register adds or replaces the factory of name
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New creates a fresh model registered under name
func (r *Registry) New(name string) (ClickModel, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, &internal.UnknownModelError{Name: name, Known: r.Names()}
	}
	return f(r.opts), nil
}

// Names returns the registered names in lexical order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
