package data

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const classesJSON = `{
  "Sword": {
    "HP": {
      "class": "Knight",
      "abilities": {
        "ultimate": {"name": "Last Stand", "description": "Hold the line", "baseDamage": 0, "heal": 30, "speedBuff": 0, "speedDebuff": 0, "defenseBuff": 5, "defenseDebuff": 0, "strengthBuff": 0, "strengthDebuff": 0, "manaCost": 20},
        "basic": {"name": "Slash", "description": "A quick cut", "baseDamage": 10, "heal": 0, "speedBuff": 0, "speedDebuff": 0, "defenseBuff": 0, "defenseDebuff": 0, "strengthBuff": 0, "strengthDebuff": 0, "manaCost": 0}
      }
    },
    "Speed": {"class": "Duelist", "abilities": {}}
  },
  "Spear": {
    "MP": {"class": "Lancer", "abilities": {}}
  },
  "Wand": {
    "MP": {"class": "Mage", "abilities": {"basic": {"name": "Spark <1>", "description": "Étincelle", "baseDamage": 4, "manaCost": 2}}}
  }
}`

const monstersJSON = `{
  "HP": [
    {
      "name": {"tier1": "Moss Slime", "tier2": "Bog Slime", "tier3": "Swamp King"},
      "stats": {"MP": 5, "HP": 300, "Luck": 2, "Defense": 8},
      "abilities": [{"name": "Engulf", "description": "Swallows the foe", "baseDamage": 12}]
    }
  ],
  "Speed": []
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAbilityEffectsOrderAndZeroFilter(t *testing.T) {
	a := Ability{BaseDamage: 10, ManaCost: 3, SpeedDebuff: -1, DefenseBuff: 2}
	got := a.Effects()
	want := []Effect{{"Damage", 10}, {"Speed-", -1}, {"Defense+", 2}, {"Mana Cost", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("effects = %+v, want %+v", got, want)
	}
	if n := len((&Ability{}).Effects()); n != 0 {
		t.Fatalf("zero ability effects = %d, want 0", n)
	}
}

func TestLoadClassTableJSON(t *testing.T) {
	table, err := LoadClassTable(writeFile(t, "classes.json", classesJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Count() != 4 {
		t.Fatalf("count = %d, want 4", table.Count())
	}
	knight := table.Get("Sword", "HP")
	if knight == nil || knight.Class != "Knight" {
		t.Fatalf("Get(Sword, HP) = %+v", knight)
	}
	if knight.Weapon != "Sword" || knight.Stat != "HP" {
		t.Fatalf("weapon/stat not indexed: %+v", knight)
	}
	if table.Get("Sword", "MP") != nil || table.Get("Bow", "HP") != nil {
		t.Fatal("expected nil for missing classes")
	}
	if !table.HasWeapon("Wand") || table.HasWeapon("Bow") {
		t.Fatal("HasWeapon mismatch")
	}
	if got, want := table.Weapons(), []string{"Sword", "Wand", "Spear"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("weapons = %v, want %v", got, want)
	}
}

func TestAbilitySetKeepsSourceOrder(t *testing.T) {
	table, err := LoadClassTable(writeFile(t, "classes.json", classesJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	abilities := table.Get("Sword", "HP").Abilities
	if len(abilities) != 2 || abilities[0].Type != "ultimate" || abilities[1].Type != "basic" {
		t.Fatalf("abilities order = %+v", abilities)
	}
	slash, ok := abilities.Get("basic")
	if !ok || slash.Name != "Slash" || slash.BaseDamage != 10 {
		t.Fatalf("Get(basic) = %+v, %v", slash, ok)
	}
	if _, ok := abilities.Get("special"); ok {
		t.Fatal("expected missing ability type")
	}

	raw, err := MarshalJSON(table.File())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if u, b := bytes.Index(raw, []byte(`"ultimate"`)), bytes.Index(raw, []byte(`"basic"`)); u < 0 || b < 0 || u > b {
		t.Fatalf("ability order lost in output:\n%s", raw)
	}
}

func TestWriteJSONKeepsTextUnescaped(t *testing.T) {
	src, err := LoadClassTable(writeFile(t, "classes.json", classesJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out := filepath.Join(t.TempDir(), "export", "classes.json")
	if err := WriteJSON(out, src.File()); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, s := range []string{"Étincelle", "Spark <1>", "\n  \"Spear\": {"} {
		if !strings.Contains(string(raw), s) {
			t.Fatalf("output missing %q:\n%s", s, raw)
		}
	}
	again, err := LoadClassTable(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Count() != src.Count() || again.Get("Wand", "MP").Abilities[0].Ability.ManaCost != 2 {
		t.Fatalf("round trip changed the table")
	}
}

func TestClassTableYAMLRoundTrip(t *testing.T) {
	src, err := LoadClassTable(writeFile(t, "classes.json", classesJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out := filepath.Join(t.TempDir(), "classes.yaml")
	if err := WriteYAML(out, src.File(), "# classes\n"); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	got, err := LoadClassTable(out)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	abilities := got.Get("Sword", "HP").Abilities
	if len(abilities) != 2 || abilities[0].Type != "ultimate" || abilities[0].Ability.Heal != 30 {
		t.Fatalf("yaml abilities = %+v", abilities)
	}
}

func TestLoadMonsterTable(t *testing.T) {
	table, err := LoadMonsterTable(writeFile(t, "monsters.json", monstersJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Count() != 1 {
		t.Fatalf("count = %d, want 1", table.Count())
	}
	hp, ok := table.Get("HP")
	if !ok || len(hp) != 1 {
		t.Fatalf("Get(HP) = %v, %v", hp, ok)
	}
	slime := hp[0]
	if slime.TabLabel() != "Moss" {
		t.Fatalf("tab label = %q, want Moss", slime.TabLabel())
	}
	want := []StatValue{{"HP", 300}, {"Defense", 8}, {"MP", 5}, {"Luck", 2}}
	if got := slime.StatLine(); !reflect.DeepEqual(got, want) {
		t.Fatalf("stat line = %+v, want %+v", got, want)
	}
	if got := slime.Name.All(); got[2] != "Swamp King" {
		t.Fatalf("tiers = %v", got)
	}
	if speed, ok := table.Get("Speed"); !ok || len(speed) != 0 {
		t.Fatalf("Get(Speed) = %v, %v", speed, ok)
	}
	if _, ok := table.Get("MP"); ok {
		t.Fatal("expected MP category to be absent")
	}
	if got, want := table.CategoryKeys(), []string{"HP", "Speed"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("category keys = %v, want %v", got, want)
	}
}

func TestCategoryTab(t *testing.T) {
	tabs := make([]string, len(Categories))
	for i, c := range Categories {
		tabs[i] = c.Tab()
	}
	want := []string{"HP-Focused", "Strength-Focused", "Speed-Focused", "Defense-Focused", "MP-Focused"}
	if !reflect.DeepEqual(tabs, want) {
		t.Fatalf("tabs = %v, want %v", tabs, want)
	}
}

func TestLoadRosterJSON(t *testing.T) {
	path := writeFile(t, "characters.json", `[
		{"name": "Ava", "level": 3, "dungeons": {"F": {"pass": 1, "fail": 1}}},
		{"name": 7},
		"garbage",
		{"name": "Björn"}
	]`)
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Count() != 4 {
		t.Fatalf("count = %d, want 4", r.Count())
	}
	if got, want := r.Names(), []string{"Ava", "Unknown", "Unknown", "Björn"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if c := r.ByName("  ava "); c == nil || c.Level != 3 {
		t.Fatalf("ByName(ava) = %v", c)
	}
	if c := r.ByName("BJÖRN"); c == nil {
		t.Fatal("ByName should fold non-ASCII case")
	}
	if r.At(0).SuccessRate() != 50 || r.At(9) != nil || r.At(-1) != nil {
		t.Fatal("At mismatch")
	}
	if got := r.Suggest("Avva"); !reflect.DeepEqual(got, []string{"Ava"}) {
		t.Fatalf("suggest = %v", got)
	}
	if len(r.Records()) != 4 {
		t.Fatal("records length mismatch")
	}
}

func TestLoadRosterYAML(t *testing.T) {
	path := writeFile(t, "characters.yaml", `
- name: Ava
  weapon: Bow
  dateJoined: 2024-05-01
  dateLastAdventure: 2024-06-01 18:30:00
  currentXP: 3000000000
  level: 2.0
  stats:
    HP: 140
  dungeons:
    S:
      pass: 2
      fail: 0
- 12
`)
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ava := r.ByName("Ava")
	if ava == nil || ava.Weapon != "Bow" || ava.HP != 140 || ava.TotalDungeonPasses() != 2 {
		t.Fatalf("ava = %+v", ava)
	}
	if ava.DateJoined != "2024-05-01" || ava.DateLastAdventure != "2024-06-01 18:30:00" {
		t.Fatalf("dates = %q, %q; want literal text", ava.DateJoined, ava.DateLastAdventure)
	}
	if int64(ava.CurrentXP) != 3000000000 || ava.Level != 2 {
		t.Fatalf("currentXP = %d, level = %d", ava.CurrentXP, ava.Level)
	}
	if r.At(1).Name != "Unknown" {
		t.Fatalf("non-map record should decode to defaults")
	}
}

func TestLoadRosterYAMLAnchors(t *testing.T) {
	path := writeFile(t, "characters.yaml", `
- name: Ava
  dungeons: &record
    F: {pass: 1, fail: 1}
- name: Bram
  dungeons: *record
`)
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := r.ByName("Bram").SuccessRate(); got != 50 {
		t.Fatalf("aliased dungeons success rate = %v, want 50", got)
	}
}

func TestClassExportKeepsFileOrder(t *testing.T) {
	src, err := LoadClassTable(writeFile(t, "classes.json", `{
		"Wand": {"MP": {"class": "Mage", "abilities": {}}},
		"Sword": {
			"Speed": {"class": "Duelist", "abilities": {}},
			"HP": {"class": "Knight", "abilities": {}}
		},
		"Axe": {"HP": {"class": "Brute", "abilities": {}}}
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	raw, err := MarshalJSON(src.File())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertOrder(t, raw, `"Wand"`, `"Sword"`, `"Duelist"`, `"Knight"`, `"Axe"`)

	out := filepath.Join(t.TempDir(), "classes.yaml")
	if err := WriteYAML(out, src.File(), ""); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	again, err := LoadClassTable(out)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	raw, err = MarshalJSON(again.File())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertOrder(t, raw, `"Wand"`, `"Sword"`, `"Duelist"`, `"Knight"`, `"Axe"`)
}

func TestClassFileOrderWithoutSource(t *testing.T) {
	table := NewClassTable(ClassFile{
		"Zed":   {"HP": {Class: "Z"}},
		"Bow":   {"MP": {Class: "Archmage"}, "HP": {Class: "Ranger"}},
		"Sword": {"Speed": {Class: "Duelist"}},
	})
	doc := table.File()
	if want := []string{"Sword", "Bow", "Zed"}; !reflect.DeepEqual(doc.Keys, want) {
		t.Fatalf("weapons = %v, want %v", doc.Keys, want)
	}
	if want := []string{"HP", "MP"}; !reflect.DeepEqual(doc.Values["Bow"].Keys, want) {
		t.Fatalf("bow stats = %v, want %v", doc.Values["Bow"].Keys, want)
	}
}

func TestMonsterExportKeepsFileOrder(t *testing.T) {
	src, err := LoadMonsterTable(writeFile(t, "monsters.json", `{"Speed": [], "Luck": [], "HP": []}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	raw, err := MarshalJSON(src.File())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertOrder(t, raw, `"Speed"`, `"Luck"`, `"HP"`)
}

func assertOrder(t *testing.T, raw []byte, parts ...string) {
	t.Helper()
	last := -1
	for _, p := range parts {
		i := bytes.Index(raw, []byte(p))
		if i <= last {
			t.Fatalf("%s out of order:\n%s", p, raw)
		}
		last = i
	}
}

func TestLoadRosterRejectsNonList(t *testing.T) {
	if _, err := LoadRoster(writeFile(t, "characters.json", `{"name": "Ava"}`)); err == nil {
		t.Fatal("expected error for object document")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadClassTable(filepath.Join(t.TempDir(), "classes.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v, want ErrNotExist", err)
	}
	if _, err := LoadMonsterTable(writeFile(t, "monsters.json", `{"HP": [`)); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadClassTable(writeFile(t, "classes.txt", `{}`)); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.json":    FormatJSON,
		"b.YAML":    FormatYAML,
		"dir/c.yml": FormatYAML,
		"d.Json":    FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		if err != nil || got != want {
			t.Fatalf("FormatOf(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatOf("noext"); err == nil {
		t.Fatal("expected error without extension")
	}
}

func TestClosest(t *testing.T) {
	got := Closest("swrod", []string{"Sword", "Shield", "Wand", "sword"})
	if !reflect.DeepEqual(got, []string{"Sword"}) {
		t.Fatalf("closest = %v", got)
	}
	if got := Closest("", []string{"Sword"}); got != nil {
		t.Fatalf("empty query = %v", got)
	}
	if got := Closest("zzzzzzzz", []string{"Bow"}); len(got) != 0 {
		t.Fatalf("far query = %v", got)
	}
}

func TestEmptyTables(t *testing.T) {
	if !NewClassTable(nil).Empty() || !NewMonsterTable(nil).Empty() || !NewRoster(nil).Empty() {
		t.Fatal("nil inputs should give empty tables")
	}
}
