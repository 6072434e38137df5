package data

import (
	"fmt"
	"sort"

	"github.com/ankileveling/companion/internal/character"
)

// ClassInfo is the class a weapon grants for one stat focus.
type ClassInfo struct {
	Weapon    string     `json:"-" yaml:"-"`
	Stat      string     `json:"-" yaml:"-"`
	Class     string     `json:"class" yaml:"class"`
	Abilities AbilitySet `json:"abilities" yaml:"abilities"`
}

// ClassFile is the on-disk shape of classes.json: weapon → stat → class.
type ClassFile map[string]map[string]*ClassInfo

// ClassTable holds every class indexed by weapon and stat.
type ClassTable struct {
	weapons ClassFile
	order   keyOrder
	count   int
}

// NewClassTable indexes f. A nil f gives an empty table.
func NewClassTable(f ClassFile) *ClassTable {
	t := &ClassTable{weapons: make(ClassFile, len(f))}
	for weapon, stats := range f {
		byStat := make(map[string]*ClassInfo, len(stats))
		for stat, info := range stats {
			if info == nil {
				continue
			}
			info.Weapon = weapon
			info.Stat = stat
			byStat[stat] = info
			t.count++
		}
		t.weapons[weapon] = byStat
	}
	return t
}

// LoadClassTable loads class definitions from a JSON or YAML file. The
// file's weapon and stat order is kept for export.
func LoadClassTable(path string) (*ClassTable, error) {
	var f ClassFile
	format, raw, err := readTable(path, &f)
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	order, err := keyOrderOf(format, raw)
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	t := NewClassTable(f)
	t.order = order
	return t, nil
}

// Get returns the class for weapon and stat, or nil if not found.
func (t *ClassTable) Get(weapon, stat string) *ClassInfo {
	return t.weapons[weapon][stat]
}

// HasWeapon reports whether any entry exists for weapon.
func (t *ClassTable) HasWeapon(weapon string) bool {
	_, ok := t.weapons[weapon]
	return ok
}

// Weapons returns the canonical weapons present in the table followed by
// any other weapons, sorted.
func (t *ClassTable) Weapons() []string {
	return orderKeys(t.weapons, character.Weapons)
}

// Count returns the number of loaded classes.
func (t *ClassTable) Count() int {
	return t.count
}

// Empty reports whether the table holds no weapons at all.
func (t *ClassTable) Empty() bool {
	return len(t.weapons) == 0
}

// File returns the table in its on-disk shape, for export. Weapons and
// stats keep the order of the loaded file; entries the file did not order
// follow in canonical order.
func (t *ClassTable) File() ClassDoc {
	doc := ClassDoc{
		Keys:   arrange(t.weapons, t.order.keys, character.Weapons),
		Values: make(map[string]Ordered[*ClassInfo], len(t.weapons)),
	}
	for weapon, stats := range t.weapons {
		doc.Values[weapon] = Ordered[*ClassInfo]{
			Keys:   arrange(stats, t.order.inner[weapon], character.StatNames),
			Values: stats,
		}
	}
	return doc
}

// orderKeys lists the keys of m: those in canonical first, in that order,
// then the rest sorted.
func orderKeys[V any](m map[string]V, canonical []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(canonical))
	for _, k := range canonical {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
		seen[k] = true
	}
	var extra []string
	for k := range m {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
