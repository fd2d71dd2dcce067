package views

import (
	"sort"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/arthur-debert/model-extract/pkg/scope"
)

// Composite applies a fixed list of renderers to each structure
type Composite struct {
	renderers []Renderer
}

// NewComposite groups renderers, ordering them by canonical format order
func NewComposite(renderers ...Renderer) *Composite {
	ordered := make([]Renderer, len(renderers))
	copy(ordered, renderers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Format() < ordered[j].Format()
	})
	return &Composite{renderers: ordered}
}

// Formats returns the names of the composed formats in rendering order
func (c *Composite) Formats() []string {
	names := make([]string, len(c.renderers))
	for i, r := range c.renderers {
		names[i] = r.Format().String()
	}
	return names
}

// Generate invokes every renderer with the same arguments. It stops at the
// first failure; artifacts of the renderers that completed stay in out.
func (c *Composite) Generate(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error {
	logger := logging.GetLogger("views").With().
		Str("identifier", identifier).
		Bool("timed", usingClocks).
		Logger()

	completed := make([]string, 0, len(c.renderers))
	for _, r := range c.renderers {
		format := r.Format().String()
		logger.Debug().Str("format", format).Msg("Rendering")

		if err := r.Render(out, s, identifier, usingClocks); err != nil {
			logger.Debug().Err(err).Str("format", format).Msg("Renderer failed")
			return errors.Wrapf(err, errors.ErrRender, "%s renderer failed for %s", format, identifier).
				WithDetail("format", format).
				WithDetail("completed", completed)
		}
		completed = append(completed, format)
	}

	return nil
}
