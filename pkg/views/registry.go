package views

import (
	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/registry"
)

// Registry maps every output format to its renderer factory
type Registry struct {
	factories registry.Registry[Factory]
}

// NewRegistry builds a registry from a table of factories. Factories are
// registered in canonical format order; every format must be covered.
func NewRegistry(table map[formats.OutputFormat]Factory) (*Registry, error) {
	reg := registry.New[Factory]()
	for _, f := range formats.All() {
		factory, ok := table[f]
		if !ok || factory == nil {
			return nil, errors.Newf(errors.ErrInternal, "no renderer for format %s", f).
				WithDetail("format", f.String())
		}
		if err := reg.Register(f.String(), factory); err != nil {
			return nil, err
		}
	}
	if len(table) != reg.Count() {
		return nil, errors.Newf(errors.ErrInternal, "renderer table has %d entries for %d formats", len(table), reg.Count())
	}
	return &Registry{factories: reg}, nil
}

// Formats returns the registered format names in canonical order
func (r *Registry) Formats() []string {
	return r.factories.List()
}

// Resolve instantiates the renderers of the selected formats only, in
// canonical order, and groups them into a composite.
func (r *Registry) Resolve(set formats.FormatSet, opts Options) (*Composite, error) {
	sorted := set.Sorted()
	if len(sorted) == 0 {
		return nil, errors.New(errors.ErrEmptyFormatSelection, "output format cannot be empty")
	}

	renderers := make([]Renderer, 0, len(sorted))
	for _, f := range sorted {
		if !r.factories.Has(f.String()) {
			return nil, errors.Newf(errors.ErrUnknownFormat, "no renderer registered for %s", f).
				WithDetail("format", f.String())
		}
		factory, err := r.factories.Get(f.String())
		if err != nil {
			return nil, err
		}
		renderers = append(renderers, factory(opts))
	}

	return NewComposite(renderers...), nil
}
