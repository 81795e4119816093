package countrycodes

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
)

//go:embed data/country_codes.txt
var dataFS embed.FS

const defaultListPath = "data/country_codes.txt"

// regionalIndicatorA is U+1F1E6, the regional indicator for "A".
const regionalIndicatorA = 0x1F1E6

// Country is one entry of the dialing code list.
type Country struct {
	ISO  string `json:"iso"`
	Dial string `json:"dial"`
	Name string `json:"name"`
}

// Flag returns the flag glyph of the country: the regional indicator pair
// spelling its ISO code.
func (c Country) Flag() string {
	if len(c.ISO) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(c.ISO) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(rune(regionalIndicatorA + (r - 'A')))
	}
	return b.String()
}

var (
	defaultOnce      sync.Once
	defaultCountries []Country
	defaultErr       error
)

// DefaultCountries returns the embedded list in file order.
func DefaultCountries() ([]Country, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		countries, err := LoadCountries(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCountries = countries
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Country{}, defaultCountries...), nil
}

// LoadCountries parses "ISO +code Name" lines. Blank lines and # comments are
// skipped and a repeated ISO code keeps its first entry.
func LoadCountries(r io.Reader) ([]Country, error) {
	if r == nil {
		return nil, fmt.Errorf("countrycodes: missing reader")
	}

	scanner := bufio.NewScanner(r)
	countries := make([]Country, 0, 128)
	seen := map[string]struct{}{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("countrycodes: line %d: want \"ISO +code Name\", got %q", lineNo, line)
		}
		iso := strings.ToUpper(fields[0])
		if len(iso) != 2 || !isLetters(iso) {
			return nil, fmt.Errorf("countrycodes: line %d: invalid ISO code %q", lineNo, fields[0])
		}
		dial := fields[1]
		if !strings.HasPrefix(dial, "+") || len(dial) < 2 || !isDigits(dial[1:]) {
			return nil, fmt.Errorf("countrycodes: line %d: invalid dialing code %q", lineNo, dial)
		}
		if _, ok := seen[iso]; ok {
			continue
		}
		seen[iso] = struct{}{}
		countries = append(countries, Country{
			ISO:  iso,
			Dial: dial,
			Name: strings.Join(fields[2:], " "),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return countries, nil
}

// Lookup returns the country with the given ISO code.
func Lookup(countries []Country, iso string) (Country, bool) {
	iso = strings.ToUpper(strings.TrimSpace(iso))
	for _, c := range countries {
		if c.ISO == iso {
			return c, true
		}
	}
	return Country{}, false
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
