package countrycodes

import (
	"net/http"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Component bundles the handler, its configuration and the dropdown options
// derived from the same list.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the JSON options handler.
func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.Options())
}

// Path returns the handler route under basePath.
func (c *Component) Path(basePath string) string {
	return mountPath(basePath, c.Options().RoutePath)
}

// RegisterRoutes registers the handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}

// Countries returns the configured list, or the embedded one.
func (c *Component) Countries() ([]Country, error) {
	opts := c.Options()
	if opts.Countries != nil {
		return opts.Countries, nil
	}
	return DefaultCountries()
}

// DropdownOptions returns the configured list as dropdown options.
func (c *Component) DropdownOptions() ([]model.DropdownOption, error) {
	countries, err := c.Countries()
	if err != nil {
		return nil, err
	}
	return DropdownOptions(countries), nil
}
