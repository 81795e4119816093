package countrycodes

import (
	"sort"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Option is one JSON option returned by the handler.
type Option struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Flag    string `json:"flag,omitempty"`
	Country string `json:"country"`
	ISO     string `json:"iso"`
}

// Search filters countries by name, ISO code or dialing code. Prefix matches
// rank first; ties keep list order.
func Search(countries []Country, query string, limit int, opts Options) []Country {
	limit = pageSize(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.HideOnBlankQuery {
			return nil
		}
		if len(countries) <= limit {
			return append([]Country{}, countries...)
		}
		return append([]Country{}, countries[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedCountry, 0, 16)
	for _, c := range countries {
		name := strings.ToLower(c.Name)
		iso := strings.ToLower(c.ISO)
		dial := strings.TrimPrefix(c.Dial, "+")
		digits := strings.TrimPrefix(q, "+")

		isPrefix := strings.HasPrefix(name, q) || iso == q || (digits != "" && strings.HasPrefix(dial, digits))
		if !isPrefix && !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, matchedCountry{country: c, isPrefix: isPrefix})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Country, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.country)
	}
	return out
}

// SearchOptions runs Search and converts the results to JSON options.
func SearchOptions(countries []Country, query string, limit int, opts Options) []Option {
	results := Search(countries, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, c := range results {
		out = append(out, c.Option())
	}
	return out
}

// Option returns the JSON option of c.
func (c Country) Option() Option {
	return Option{
		Value:   c.Dial,
		Label:   c.Dial,
		Flag:    c.Flag(),
		Country: c.Name,
		ISO:     c.ISO,
	}
}

// DropdownOptions converts countries into dropdown options keyed by dialing
// code. Countries sharing a code collapse into the first one listed.
func DropdownOptions(countries []Country) []model.DropdownOption {
	out := make([]model.DropdownOption, 0, len(countries))
	seen := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		if _, ok := seen[c.Dial]; ok {
			continue
		}
		seen[c.Dial] = struct{}{}
		out = append(out, model.DropdownOption{
			Value: c.Dial,
			Label: c.Dial,
			Flag:  c.Flag(),
		})
	}
	return out
}

type matchedCountry struct {
	country  Country
	isPrefix bool
}
