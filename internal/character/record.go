package character

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Record is the serialized form of a Character. Every field is optional;
// nil means "absent" and is resolved by New.
type Record struct {
	Name              *string                `json:"name,omitempty" yaml:"name,omitempty"`
	DateJoined        *string                `json:"dateJoined,omitempty" yaml:"dateJoined,omitempty"`
	DateLastAdventure *string                `json:"dateLastAdventure,omitempty" yaml:"dateLastAdventure,omitempty"`
	Weapon            *string                `json:"weapon,omitempty" yaml:"weapon,omitempty"`
	Stats             Stats                  `json:"stats,omitempty" yaml:"stats,omitempty"`
	Level             *int                   `json:"level,omitempty" yaml:"level,omitempty"`
	Rank              *Rank                  `json:"rank,omitempty" yaml:"rank,omitempty"`
	CurrentXP         *int                   `json:"currentXP,omitempty" yaml:"currentXP,omitempty"`
	Dungeons          map[Rank]DungeonRecord `json:"dungeons,omitempty" yaml:"dungeons,omitempty"`
}

// Record converts c back to its serialized form. Stats are rebuilt from
// the stat attributes; Dungeons is the map c holds, not a copy.
func (c *Character) Record() Record {
	name, joined, last, weapon := c.Name, c.DateJoined, c.DateLastAdventure, c.Weapon
	level, rank, xp := c.Level, c.Rank, c.CurrentXP
	return Record{
		Name:              &name,
		DateJoined:        &joined,
		DateLastAdventure: &last,
		Weapon:            &weapon,
		Stats:             c.StatMap(),
		Level:             &level,
		Rank:              &rank,
		CurrentXP:         &xp,
		Dungeons:          c.Dungeons,
	}
}

// MarshalJSON encodes c in the Record shape with stats in fixed order.
func (c *Character) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name              string                 `json:"name"`
		DateJoined        string                 `json:"dateJoined"`
		DateLastAdventure string                 `json:"dateLastAdventure"`
		Weapon            string                 `json:"weapon"`
		Stats             Stats                  `json:"stats"`
		Level             int                    `json:"level"`
		Rank              Rank                   `json:"rank"`
		CurrentXP         int                    `json:"currentXP"`
		Dungeons          map[Rank]DungeonRecord `json:"dungeons"`
	}{
		Name:              c.Name,
		DateJoined:        c.DateJoined,
		DateLastAdventure: c.DateLastAdventure,
		Weapon:            c.Weapon,
		Stats:             c.StatMap(),
		Level:             c.Level,
		Rank:              c.Rank,
		CurrentXP:         c.CurrentXP,
		Dungeons:          c.Dungeons,
	})
}

// Stats maps stat names to values. It encodes the five character stats
// first in their fixed order, then any other names sorted.
type Stats map[string]int

func (s Stats) keys() []string {
	keys := make([]string, 0, len(s))
	for _, name := range StatNames {
		if _, ok := s[name]; ok {
			keys = append(keys, name)
		}
	}
	var extra []string
	for name := range s {
		if statIndex(name) < 0 {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func (s Stats) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s[name]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s Stats) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.keys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(s[name])},
		)
	}
	return node, nil
}

func statIndex(name string) int {
	for i, n := range StatNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Decode builds a Character from a JSON object. Fields of the wrong type
// are treated as absent, and input that is not an object yields a
// character with every default.
func Decode(raw []byte) *Character {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return New(Record{})
	}
	return New(recordFromFields(fields))
}

// FromMap builds a Character from an already decoded generic record. Text
// fields must arrive as strings; a value the decoder typed, such as a
// time.Time, is encoded as JSON and may not match its source spelling.
func FromMap(m map[string]any) *Character {
	fields := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		raw, err := json.Marshal(v)
		if err != nil {
			continue
		}
		fields[k] = raw
	}
	return New(recordFromFields(fields))
}

func recordFromFields(fields map[string]json.RawMessage) Record {
	var r Record
	r.Name = decodeString(fields["name"])
	r.DateJoined = decodeString(fields["dateJoined"])
	r.DateLastAdventure = decodeString(fields["dateLastAdventure"])
	r.Weapon = decodeString(fields["weapon"])
	r.Level = decodeInt(fields["level"])
	r.CurrentXP = decodeInt(fields["currentXP"])
	if s := decodeString(fields["rank"]); s != nil {
		rank := Rank(*s)
		r.Rank = &rank
	}

	var stats map[string]json.RawMessage
	if raw, ok := fields["stats"]; ok && json.Unmarshal(raw, &stats) == nil {
		r.Stats = make(Stats, len(stats))
		for name, v := range stats {
			if n := decodeInt(v); n != nil {
				r.Stats[name] = *n
			}
		}
	}

	var dungeons map[string]json.RawMessage
	if raw, ok := fields["dungeons"]; ok && json.Unmarshal(raw, &dungeons) == nil && dungeons != nil {
		r.Dungeons = make(map[Rank]DungeonRecord, len(dungeons))
		for rank, v := range dungeons {
			r.Dungeons[Rank(rank)] = decodeDungeon(v)
		}
	}
	return r
}

func decodeDungeon(raw json.RawMessage) DungeonRecord {
	var fields map[string]json.RawMessage
	var d DungeonRecord
	if json.Unmarshal(raw, &fields) != nil {
		return d
	}
	if n := decodeInt(fields["pass"]); n != nil {
		d.Pass = *n
	}
	if n := decodeInt(fields["fail"]); n != nil {
		d.Fail = *n
	}
	return d
}

func decodeString(raw json.RawMessage) *string {
	if raw == nil {
		return nil
	}
	var s string
	if json.Unmarshal(raw, &s) != nil || string(raw) == "null" {
		return nil
	}
	return &s
}

// decodeInt accepts any JSON number with an integral value that fits an
// int. Integers are parsed exactly; other forms such as 3.0 or 1e3 go
// through float64 and must be exactly representable.
func decodeInt(raw json.RawMessage) *int {
	if len(raw) == 0 || raw[0] == '"' {
		return nil
	}
	var num json.Number
	if json.Unmarshal(raw, &num) != nil || num == "" {
		return nil
	}
	if i, err := strconv.ParseInt(string(num), 10, strconv.IntSize); err == nil {
		n := int(i)
		return &n
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return nil
	}
	n := int(f)
	return &n
}
