package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ankileveling/companion/internal/character"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Roster holds the characters of characters.json in file order.
type Roster struct {
	characters []*character.Character
	byName     map[string]*character.Character
}

// NewRoster indexes chars by folded name. The first character with a given
// name wins the lookup.
func NewRoster(chars []*character.Character) *Roster {
	r := &Roster{
		characters: chars,
		byName:     make(map[string]*character.Character, len(chars)),
	}
	for _, c := range chars {
		key := foldName(c.Name)
		if _, ok := r.byName[key]; !ok {
			r.byName[key] = c
		}
	}
	return r
}

// LoadRoster loads a list of character records from a JSON or YAML file.
// A record that is malformed degrades to defaults instead of failing the
// file; only a document that is not a list is an error.
func LoadRoster(path string) (*Roster, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}
	chars, err := decodeRoster(format, raw)
	if err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}
	return NewRoster(chars), nil
}

func decodeRoster(format Format, raw []byte) ([]*character.Character, error) {
	if format == FormatYAML {
		var records []yaml.Node
		if err := yaml.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		out := make([]*character.Character, len(records))
		for i := range records {
			// A record that cannot be expressed as JSON decodes to defaults.
			obj, _ := yamlToJSON(&records[i])
			out[i] = character.Decode(obj)
		}
		return out, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	out := make([]*character.Character, len(records))
	for i, rec := range records {
		out[i] = character.Decode(rec)
	}
	return out, nil
}

// All returns the characters in file order.
func (r *Roster) All() []*character.Character {
	return r.characters
}

// At returns the character at index i, or nil if out of range.
func (r *Roster) At(i int) *character.Character {
	if i < 0 || i >= len(r.characters) {
		return nil
	}
	return r.characters[i]
}

// ByName finds a character by name, ignoring case and surrounding space.
func (r *Roster) ByName(name string) *character.Character {
	return r.byName[foldName(name)]
}

// Names returns the character names in file order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.characters))
	for i, c := range r.characters {
		names[i] = c.Name
	}
	return names
}

// Suggest returns roster names close to name.
func (r *Roster) Suggest(name string) []string {
	return Closest(name, r.Names())
}

// Count returns the number of characters.
func (r *Roster) Count() int {
	return len(r.characters)
}

// Empty reports whether the roster holds no characters.
func (r *Roster) Empty() bool {
	return len(r.characters) == 0
}

// Records returns every character in serialized form.
func (r *Roster) Records() []character.Record {
	out := make([]character.Record, len(r.characters))
	for i, c := range r.characters {
		out[i] = c.Record()
	}
	return out
}

// yamlToJSON re-encodes a YAML node as JSON. Strings and timestamps keep
// their literal text; only null, bool and number scalars are typed.
func yamlToJSON(n *yaml.Node) (json.RawMessage, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return json.RawMessage("null"), nil
		}
		return yamlToJSON(n.Content[0])
	case yaml.AliasNode:
		return yamlToJSON(n.Alias)
	case yaml.MappingNode:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := yamlToJSON(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case yaml.SequenceNode:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range n.Content {
			value, err := yamlToJSON(item)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(value)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	switch n.ShortTag() {
	case "!!null":
		return json.RawMessage("null"), nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
	return json.Marshal(n.Value)
}

// foldName builds a fresh Caser per call; a Caser must not be shared
// between goroutines.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
