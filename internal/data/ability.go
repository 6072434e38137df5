package data

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ability is a named effect shared by class and monster data. The numeric
// fields are display values only.
type Ability struct {
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description" yaml:"description"`
	BaseDamage     float64 `json:"baseDamage" yaml:"baseDamage"`
	Heal           float64 `json:"heal" yaml:"heal"`
	SpeedBuff      float64 `json:"speedBuff" yaml:"speedBuff"`
	SpeedDebuff    float64 `json:"speedDebuff" yaml:"speedDebuff"`
	DefenseBuff    float64 `json:"defenseBuff" yaml:"defenseBuff"`
	DefenseDebuff  float64 `json:"defenseDebuff" yaml:"defenseDebuff"`
	StrengthBuff   float64 `json:"strengthBuff" yaml:"strengthBuff"`
	StrengthDebuff float64 `json:"strengthDebuff" yaml:"strengthDebuff"`
	ManaCost       float64 `json:"manaCost" yaml:"manaCost"`
}

// Effect is one labeled numeric sub-stat of an ability.
type Effect struct {
	Label string
	Value float64
}

// Effects returns the non-zero sub-stats in display order.
func (a *Ability) Effects() []Effect {
	all := [...]Effect{
		{"Damage", a.BaseDamage},
		{"Heal", a.Heal},
		{"Speed+", a.SpeedBuff},
		{"Speed-", a.SpeedDebuff},
		{"Defense+", a.DefenseBuff},
		{"Defense-", a.DefenseDebuff},
		{"Strength+", a.StrengthBuff},
		{"Strength-", a.StrengthDebuff},
		{"Mana Cost", a.ManaCost},
	}
	out := make([]Effect, 0, len(all))
	for _, e := range all {
		if e.Value != 0 {
			out = append(out, e)
		}
	}
	return out
}

// TypedAbility is an ability keyed by its type within a class, e.g.
// "basic" or "ultimate".
type TypedAbility struct {
	Type    string
	Ability Ability
}

// AbilitySet is an ordered mapping from ability type to ability. Source
// order survives decoding and re-encoding in both JSON and YAML.
type AbilitySet []TypedAbility

// Get returns the ability of the given type.
func (s AbilitySet) Get(typ string) (Ability, bool) {
	for _, e := range s {
		if e.Type == typ {
			return e.Ability, true
		}
	}
	return Ability{}, false
}

func (s *AbilitySet) UnmarshalJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("abilities: expected object, got %v", tok)
	}
	var out AbilitySet
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("abilities: unexpected key %v", keyTok)
		}
		var a Ability
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("ability %q: %w", key, err)
		}
		out = append(out, TypedAbility{Type: key, Ability: a})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func (s AbilitySet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(e.Type); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(e.Ability); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *AbilitySet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*s = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("abilities: expected mapping at line %d", node.Line)
	}
	out := make(AbilitySet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var a Ability
		if err := node.Content[i+1].Decode(&a); err != nil {
			return fmt.Errorf("ability %q: %w", node.Content[i].Value, err)
		}
		out = append(out, TypedAbility{Type: node.Content[i].Value, Ability: a})
	}
	*s = out
	return nil
}

func (s AbilitySet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s {
		var value yaml.Node
		if err := value.Encode(e.Ability); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Type},
			&value,
		)
	}
	return node, nil
}
