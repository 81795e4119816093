package submit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Entry is one key of the flat submission record. Multi entries come from
// checkbox groups and always serialise as a list.
type Entry struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
	Multi  bool     `json:"multi,omitempty"`
}

// Value returns the first value of the entry.
func (e Entry) Value() string {
	if len(e.Values) == 0 {
		return ""
	}
	return e.Values[0]
}

// Record is the flat key -> value(s) structure handed to a Submitter. ID and
// SubmittedAt identify the submission in logs and are not part of the body.
type Record struct {
	ID          string
	SubmittedAt time.Time
	Entries     []Entry
}

// FromForm serialises the current values of form in declaration order.
// Fields and dropdowns always contribute a key; groups contribute only when
// at least one option is checked.
func FromForm(form *model.Form) Record {
	rec := Record{
		ID:          uuid.NewString(),
		SubmittedAt: time.Now().UTC(),
	}
	for _, c := range form.Controls() {
		switch typed := c.(type) {
		case *model.Group:
			values := typed.Values()
			if len(values) == 0 {
				continue
			}
			rec.Entries = append(rec.Entries, Entry{
				Key:    typed.Name,
				Values: values,
				Multi:  typed.Kind == model.GroupCheckbox,
			})
		default:
			rec.Entries = append(rec.Entries, Entry{
				Key:    c.ControlName(),
				Values: c.Values(),
			})
		}
	}
	return rec
}

// Get returns the entry stored under key.
func (r Record) Get(key string) (Entry, bool) {
	for _, entry := range r.Entries {
		if entry.Key == key {
			return entry, true
		}
	}
	return Entry{}, false
}

// Keys returns the record keys in order.
func (r Record) Keys() []string {
	out := make([]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		out = append(out, entry.Key)
	}
	return out
}

// Map returns the record as key -> string or key -> []string.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.Entries))
	for _, entry := range r.Entries {
		if entry.Multi {
			out[entry.Key] = append([]string{}, entry.Values...)
			continue
		}
		out[entry.Key] = entry.Value()
	}
	return out
}

// MarshalJSON emits the flat body as a JSON object with keys in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range r.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var value any = entry.Value()
		if entry.Multi {
			value = append([]string{}, entry.Values...)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormEncode emits the record as application/x-www-form-urlencoded. Multi
// entries repeat their key with a [] suffix. Pairs keep record order.
func (r Record) FormEncode() string {
	var b strings.Builder
	write := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	for _, entry := range r.Entries {
		if entry.Multi {
			for _, v := range entry.Values {
				write(entry.Key+"[]", v)
			}
			continue
		}
		write(entry.Key, entry.Value())
	}
	return b.String()
}

// Pretty renders one key=value line per value, in record order.
func (r Record) Pretty() string {
	var b strings.Builder
	for _, entry := range r.Entries {
		if entry.Multi {
			for idx, v := range entry.Values {
				fmt.Fprintf(&b, "%s[%d]=%s\n", entry.Key, idx, v)
			}
			continue
		}
		fmt.Fprintf(&b, "%s=%s\n", entry.Key, entry.Value())
	}
	return b.String()
}
