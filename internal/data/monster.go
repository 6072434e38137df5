package data

import (
	"fmt"
	"strings"

	"github.com/ankileveling/companion/internal/character"
)

// TierNames holds the three names of a monster's evolution line.
type TierNames struct {
	Tier1 string `json:"tier1" yaml:"tier1"`
	Tier2 string `json:"tier2" yaml:"tier2"`
	Tier3 string `json:"tier3" yaml:"tier3"`
}

// All returns the names from tier 1 to tier 3.
func (n TierNames) All() []string {
	return []string{n.Tier1, n.Tier2, n.Tier3}
}

// Monster is one evolution line in the bestiary.
type Monster struct {
	Name      TierNames      `json:"name" yaml:"name"`
	Stats     map[string]int `json:"stats" yaml:"stats"`
	Abilities []Ability      `json:"abilities" yaml:"abilities"`
}

// TabLabel is the first word of the tier-1 name.
func (m *Monster) TabLabel() string {
	if f := strings.Fields(m.Name.Tier1); len(f) > 0 {
		return f[0]
	}
	return ""
}

// StatValue is one named base stat.
type StatValue struct {
	Name  string
	Value int
}

// StatLine returns the base stats: the five character stats first in their
// fixed order, then any others sorted by name.
func (m *Monster) StatLine() []StatValue {
	keys := orderKeys(m.Stats, character.StatNames)
	out := make([]StatValue, len(keys))
	for i, k := range keys {
		out[i] = StatValue{Name: k, Value: m.Stats[k]}
	}
	return out
}

// Category is a stat-focus grouping of the bestiary.
type Category struct {
	Key   string
	Label string
}

// Tab is the short tab title, the first word of the label.
func (c Category) Tab() string {
	if i := strings.IndexByte(c.Label, ' '); i >= 0 {
		return c.Label[:i]
	}
	return c.Label
}

// Categories lists the bestiary groupings in display order.
var Categories = []Category{
	{character.StatHP, "HP-Focused (Tanks)"},
	{character.StatStrength, "Strength-Focused (Attackers)"},
	{character.StatSpeed, "Speed-Focused (Agile)"},
	{character.StatDefense, "Defense-Focused (Guardians)"},
	{character.StatMP, "MP-Focused (Magical)"},
}

// MonsterFile is the on-disk shape of monsters.json: category → monsters.
type MonsterFile map[string][]*Monster

// MonsterTable holds the bestiary indexed by category key.
type MonsterTable struct {
	categories MonsterFile
	order      []string
	count      int
}

// NewMonsterTable indexes f. A nil f gives an empty table.
func NewMonsterTable(f MonsterFile) *MonsterTable {
	t := &MonsterTable{categories: make(MonsterFile, len(f))}
	for key, monsters := range f {
		list := make([]*Monster, 0, len(monsters))
		for _, m := range monsters {
			if m != nil {
				list = append(list, m)
			}
		}
		t.categories[key] = list
		t.count += len(list)
	}
	return t
}

// LoadMonsterTable loads the bestiary from a JSON or YAML file. The file's
// category order is kept for export.
func LoadMonsterTable(path string) (*MonsterTable, error) {
	var f MonsterFile
	format, raw, err := readTable(path, &f)
	if err != nil {
		return nil, fmt.Errorf("load monsters: %w", err)
	}
	order, err := keyOrderOf(format, raw)
	if err != nil {
		return nil, fmt.Errorf("load monsters: %w", err)
	}
	t := NewMonsterTable(f)
	t.order = order.keys
	return t, nil
}

// Get returns the monsters of a category and whether the category exists.
func (t *MonsterTable) Get(category string) ([]*Monster, bool) {
	m, ok := t.categories[category]
	return m, ok
}

// CategoryKeys returns the canonical categories present, then any others
// sorted.
func (t *MonsterTable) CategoryKeys() []string {
	return orderKeys(t.categories, character.StatNames)
}

// Count returns the number of monsters across all categories.
func (t *MonsterTable) Count() int {
	return t.count
}

// Empty reports whether the table holds no categories.
func (t *MonsterTable) Empty() bool {
	return len(t.categories) == 0
}

// File returns the table in its on-disk shape, for export, with
// categories in the order of the loaded file.
func (t *MonsterTable) File() MonsterDoc {
	return MonsterDoc{
		Keys:   arrange(t.categories, t.order, character.StatNames),
		Values: t.categories,
	}
}
