package countrycodes

import "net/http"

// Query parameters read by the handler.
const (
	queryParam = "q"
	limitParam = "limit"
	isoParam   = "iso"
)

const (
	defaultRoutePath   = "/api/country-codes"
	defaultPageSize    = 25
	defaultMaxPageSize = 100
)

// GuardFunc rejects a lookup before the list is searched. Errors that
// implement HTTPError choose the response status, anything else is a 403.
type GuardFunc func(r *http.Request) error

// Options configures the dialing-code lookup.
type Options struct {
	RoutePath string

	// PageSize is used when the request has no usable limit. MaxPageSize
	// caps whatever the caller asks for.
	PageSize    int
	MaxPageSize int

	// HideOnBlankQuery makes a blank query return no countries instead of
	// the head of the list. The dropdown wants the full list, a typeahead
	// usually does not.
	HideOnBlankQuery bool

	Guard GuardFunc

	// Countries overrides the embedded list. Order is significant: it is
	// the dropdown order and the tie-break order for search.
	Countries []Country
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   defaultRoutePath,
		PageSize:    defaultPageSize,
		MaxPageSize: defaultMaxPageSize,
	}
}

// NewOptions applies fns over the defaults and restores any value an
// override zeroed out.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = defaultMaxPageSize
	}
	if opts.Countries != nil {
		opts.Countries = append([]Country{}, opts.Countries...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithMaxPageSize(size int) OptionFn {
	return func(o *Options) {
		o.MaxPageSize = size
	}
}

func WithHideOnBlankQuery() OptionFn {
	return func(o *Options) {
		o.HideOnBlankQuery = true
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithCountries replaces the embedded list.
func WithCountries(countries []Country) OptionFn {
	return func(o *Options) {
		if countries == nil {
			o.Countries = nil
			return
		}
		o.Countries = append([]Country{}, countries...)
	}
}

// pageSize resolves a requested limit. Zero means the default page, a
// negative limit means an empty page.
func pageSize(limit int, opts Options) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		limit = opts.PageSize
	}
	if limit > opts.MaxPageSize {
		return opts.MaxPageSize
	}
	return limit
}
