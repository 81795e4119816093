package definition

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/components/countrycodes"
	"github.com/goliatone/go-contactform/pkg/dropdown"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// CountryCodesSource is the option source backed by components/countrycodes.
const CountryCodesSource = "country_codes"

// OptionSource supplies dropdown options at build time.
type OptionSource func() ([]model.DropdownOption, error)

// BuildOption customises Build.
type BuildOption func(*builder)

type builder struct {
	sources map[string]OptionSource
}

// WithOptionSource registers (or replaces) a named option source.
func WithOptionSource(name string, source OptionSource) BuildOption {
	return func(b *builder) {
		name = strings.TrimSpace(name)
		if name == "" || source == nil {
			return
		}
		b.sources[name] = source
	}
}

// WithCountryCodes backs the country_codes source with component.
func WithCountryCodes(component *countrycodes.Component) BuildOption {
	return WithOptionSource(CountryCodesSource, component.DropdownOptions)
}

// Build binds the controls of def into a form and returns it with the plan
// checked against the bound controls.
func Build(def Definition, options ...BuildOption) (*model.Form, validation.Plan, error) {
	b := builder{sources: map[string]OptionSource{
		CountryCodesSource: countrycodes.New().DropdownOptions,
	}}
	for _, opt := range options {
		if opt != nil {
			opt(&b)
		}
	}

	if err := Check(def); err != nil {
		return nil, nil, fmt.Errorf("definition: %w", err)
	}

	controls := make([]model.Control, 0, len(def.Controls))
	for _, c := range def.Controls {
		control, err := b.control(c)
		if err != nil {
			return nil, nil, fmt.Errorf("definition: control %q: %w", c.Name, err)
		}
		controls = append(controls, control)
	}

	form, err := model.NewForm(def.ID, controls...)
	if err != nil {
		return nil, nil, fmt.Errorf("definition: bind %q: %w", def.ID, err)
	}
	plan := def.Plan()
	if err := validation.CheckBinding(form, plan); err != nil {
		return nil, nil, fmt.Errorf("definition: %q: %w", def.ID, err)
	}
	return form, plan, nil
}

func (b builder) control(c Control) (model.Control, error) {
	name := strings.TrimSpace(c.Name)
	switch c.Type {
	case TypeText, TypeEmail, TypeTel, TypeTextArea:
		return &model.Field{
			Name:        name,
			Label:       c.Label,
			Kind:        model.FieldKind(c.Type),
			Required:    c.Required,
			Placeholder: c.Placeholder,
		}, nil
	case TypeCheckbox, TypeRadio:
		group := &model.Group{Name: name, Label: c.Label, Kind: model.GroupKind(c.Type)}
		for _, opt := range c.Options {
			group.Options = append(group.Options, model.Option{Value: opt.Value, Label: opt.Label})
		}
		return group, nil
	case TypeDropdown:
		d := &model.Dropdown{Name: name, Label: c.Label, Placeholder: c.Placeholder}
		for _, opt := range c.Options {
			d.Options = append(d.Options, model.DropdownOption{Value: opt.Value, Label: opt.Label, Flag: opt.Flag})
		}
		if c.OptionsFrom != "" {
			source, ok := b.sources[c.OptionsFrom]
			if !ok {
				return nil, fmt.Errorf("unknown options_from %q", c.OptionsFrom)
			}
			extra, err := source()
			if err != nil {
				return nil, fmt.Errorf("options_from %q: %w", c.OptionsFrom, err)
			}
			d.Options = append(d.Options, extra...)
		}
		dropdown.Sync(d)
		return d, nil
	default:
		return nil, fmt.Errorf("unknown type %q", c.Type)
	}
}
