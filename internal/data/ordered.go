package data

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ordered is a mapping that encodes its entries in Keys order. Keys not
// present in Values are skipped.
type Ordered[V any] struct {
	Keys   []string
	Values map[string]V
}

// ClassDoc is classes.json in file order.
type ClassDoc = Ordered[Ordered[*ClassInfo]]

// MonsterDoc is monsters.json in file order.
type MonsterDoc = Ordered[[]*Monster]

func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	first := true
	for _, k := range o.Keys {
		v, ok := o.Values[k]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o Ordered[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range o.Keys {
		v, ok := o.Values[k]
		if !ok {
			continue
		}
		var value yaml.Node
		if err := value.Encode(v); err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	}
	return node, nil
}

// keyOrder is the key order of a table document: the top-level keys and,
// for each of them, the keys of its object value.
type keyOrder struct {
	keys  []string
	inner map[string][]string
}

// keyOrderOf scans raw for its key order. A document that is not an
// object yields an empty order.
func keyOrderOf(format Format, raw []byte) (keyOrder, error) {
	if format == FormatYAML {
		var doc yaml.Node
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return keyOrder{}, err
		}
		if len(doc.Content) == 0 {
			return keyOrder{}, nil
		}
		return yamlKeyOrder(doc.Content[0]), nil
	}
	return jsonKeyOrder(raw)
}

func yamlKeyOrder(n *yaml.Node) keyOrder {
	order := keyOrder{inner: map[string][]string{}}
	if n.Kind != yaml.MappingNode {
		return order
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		if _, dup := order.inner[key]; dup {
			continue
		}
		var sub []string
		if value.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(value.Content); j += 2 {
				sub = appendUnique(sub, value.Content[j].Value)
			}
		}
		order.keys = append(order.keys, key)
		order.inner[key] = sub
	}
	return order
}

func jsonKeyOrder(raw []byte) (keyOrder, error) {
	order := keyOrder{inner: map[string][]string{}}
	keys, values, err := jsonObject(raw)
	if err != nil || keys == nil {
		return order, err
	}
	for i, key := range keys {
		if _, dup := order.inner[key]; dup {
			continue
		}
		sub, _, err := jsonObject(values[i])
		if err != nil {
			return order, err
		}
		order.keys = append(order.keys, key)
		order.inner[key] = sub
	}
	return order, nil
}

// jsonObject splits a JSON object into its keys, deduplicated in first
// appearance order, and raw values. A non-object gives nil keys.
func jsonObject(raw []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, nil
	}
	var (
		keys   []string
		values []json.RawMessage
		index  = map[string]int{}
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if i, ok := index[key]; ok {
			values[i] = value
			continue
		}
		index[key] = len(keys)
		keys = append(keys, key)
		values = append(values, value)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, values, nil
}

// arrange lists the keys of m in order, then any keys order misses with
// canonical ones first and the rest sorted.
func arrange[V any](m map[string]V, order, canonical []string) []string {
	keys := make([]string, 0, len(m))
	placed := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !placed[k] {
			keys = append(keys, k)
			placed[k] = true
		}
	}
	if len(keys) == len(m) {
		return keys
	}
	rest := make(map[string]V, len(m)-len(keys))
	for k, v := range m {
		if !placed[k] {
			rest[k] = v
		}
	}
	return append(keys, orderKeys(rest, canonical)...)
}

func appendUnique(keys []string, k string) []string {
	for _, have := range keys {
		if have == k {
			return keys
		}
	}
	return append(keys, k)
}
