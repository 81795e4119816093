package countrycodes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// HTTPError lets guard errors choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is an error carrying an HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler answering GET and HEAD with
// {"data": [...]} filtered by the search and limit parameters. An "iso"
// parameter selects a single country instead.
func HandlerWithOptions(opts Options) http.Handler {
	return &handler{opts: NewOptions(func(o *Options) { *o = opts })}
}

type handler struct {
	opts Options
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		writeStatus(w, http.StatusMethodNotAllowed)
		return
	}
	if err := h.guard(r); err != nil {
		writeStatus(w, statusFor(err, http.StatusForbidden))
		return
	}

	countries, err := h.countries()
	if err != nil {
		writeStatus(w, http.StatusInternalServerError)
		return
	}

	params := r.URL.Query()
	var results []Option
	if iso := strings.TrimSpace(params.Get(isoParam)); iso != "" {
		if c, ok := Lookup(countries, iso); ok {
			results = []Option{c.Option()}
		}
	} else {
		results = SearchOptions(countries, params.Get(queryParam), parseLimit(params.Get(limitParam)), h.opts)
	}
	if results == nil {
		results = []Option{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(optionsResponse{Data: results})
}

func (h *handler) guard(r *http.Request) error {
	if h.opts.Guard == nil {
		return nil
	}
	return h.opts.Guard(r)
}

func (h *handler) countries() ([]Country, error) {
	if h.opts.Countries != nil {
		return h.opts.Countries, nil
	}
	return DefaultCountries()
}

func statusFor(err error, fallback int) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() > 0 {
		return httpErr.StatusCode()
	}
	return fallback
}

func writeStatus(w http.ResponseWriter, code int) {
	http.Error(w, http.StatusText(code), code)
}

func parseLimit(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
