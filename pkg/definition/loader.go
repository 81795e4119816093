package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a store holds no definition with the id.
var ErrNotFound = errors.New("definition: not found")

// Store holds definitions keyed by id.
type Store struct {
	definitions map[string]Definition
}

// LoadFS walks fsys and parses every JSON/YAML file as a definition. When
// fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		def, err := Parse(data, path)
		if err != nil {
			return err
		}
		if existing, ok := store.definitions[def.ID]; ok {
			return fmt.Errorf("definition: duplicate id %q (files %s and %s)", def.ID, existing.Source, path)
		}
		store.definitions[def.ID] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes one definition, trying JSON first and YAML second, and checks
// it for structural problems.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("definition: file %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if yerr := yaml.Unmarshal(data, &def); yerr != nil {
			return Definition{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	def.ID = strings.TrimSpace(def.ID)
	def.Source = source
	if err := Check(def); err != nil {
		return Definition{}, fmt.Errorf("definition: %s: %w", source, err)
	}
	return def, nil
}

// Marshal encodes def as YAML.
func Marshal(def Definition) ([]byte, error) {
	out, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("definition: marshal %q: %w", def.ID, err)
	}
	return out, nil
}

// Check reports structural problems: a missing id, unnamed or duplicate
// controls, unknown types, groups without options and an invalid plan.
func Check(def Definition) error {
	var problems []string
	if def.ID == "" {
		problems = append(problems, "id is required")
	}
	if len(def.Controls) == 0 {
		problems = append(problems, "at least one control is required")
	}
	seen := make(map[string]struct{}, len(def.Controls))
	for i, c := range def.Controls {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			problems = append(problems, fmt.Sprintf("control %d: name is required", i))
			continue
		}
		if _, dup := seen[name]; dup {
			problems = append(problems, fmt.Sprintf("control %q is declared twice", name))
		}
		seen[name] = struct{}{}

		switch c.Type {
		case TypeText, TypeEmail, TypeTel, TypeTextArea:
		case TypeCheckbox, TypeRadio:
			if len(c.Options) == 0 {
				problems = append(problems, fmt.Sprintf("control %q: %s group needs options", name, c.Type))
			}
		case TypeDropdown:
			if len(c.Options) == 0 && c.OptionsFrom == "" {
				problems = append(problems, fmt.Sprintf("control %q: dropdown needs options or options_from", name))
			}
		default:
			problems = append(problems, fmt.Sprintf("control %q: unknown type %q", name, c.Type))
		}
	}
	if len(def.Checks) > 0 {
		if err := def.Checks.Validate(); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Definition returns the definition with the given id.
func (s *Store) Definition(id string) (Definition, error) {
	if s != nil {
		if def, ok := s.definitions[id]; ok {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// IDs returns the stored ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.definitions))
	for id := range s.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definition.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
