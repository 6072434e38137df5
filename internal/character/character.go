package character

import "fmt"

// Rank is a dungeon difficulty tier and a character's progression tier.
type Rank string

// Ranks lists the rank scale from lowest to highest.
var Ranks = []Rank{"F", "E", "D", "C", "B", "A", "S"}

// Weapons lists the canonical weapon categories. Character weapons are not
// validated against it.
var Weapons = []string{"Sword", "Hammer", "Bow", "Shield", "Wand"}

// Stat names, in display order.
const (
	StatHP       = "HP"
	StatStrength = "Strength"
	StatSpeed    = "Speed"
	StatDefense  = "Defense"
	StatMP       = "MP"
)

// StatNames lists the five character stats in their fixed order.
var StatNames = []string{StatHP, StatStrength, StatSpeed, StatDefense, StatMP}

// Defaults applied when a record omits a field.
const (
	DefaultName     = "Unknown"
	DefaultDate     = "Unknown"
	DefaultWeapon   = "None"
	DefaultLevel    = 1
	DefaultRank     = Rank("F")
	DefaultXP       = 0
	DefaultHP       = 120
	DefaultBaseStat = 1
)

// DungeonRecord is the pass/fail counter pair for one rank.
type DungeonRecord struct {
	Pass int `json:"pass" yaml:"pass"`
	Fail int `json:"fail" yaml:"fail"`
}

// Character is one player's progress. The five stat attributes are the
// source of truth; the stats mapping is derived from them on demand.
type Character struct {
	Name              string
	DateJoined        string
	DateLastAdventure string
	Weapon            string
	Level             int
	Rank              Rank
	CurrentXP         int

	HP       int
	Strength int
	Speed    int
	Defense  int
	MP       int

	// Dungeons is shared with the Record it was built from and with every
	// Record() it produces.
	Dungeons map[Rank]DungeonRecord
}

// New builds a Character from r, resolving every absent field to its
// default. It never fails.
func New(r Record) *Character {
	c := &Character{
		Name:              strOr(r.Name, DefaultName),
		DateJoined:        strOr(r.DateJoined, DefaultDate),
		DateLastAdventure: strOr(r.DateLastAdventure, DefaultDate),
		Weapon:            strOr(r.Weapon, DefaultWeapon),
		Level:             intOr(r.Level, DefaultLevel),
		Rank:              DefaultRank,
		CurrentXP:         intOr(r.CurrentXP, DefaultXP),
		HP:                DefaultHP,
		Strength:          DefaultBaseStat,
		Speed:             DefaultBaseStat,
		Defense:           DefaultBaseStat,
		MP:                DefaultBaseStat,
		Dungeons:          r.Dungeons,
	}
	if r.Rank != nil {
		c.Rank = *r.Rank
	}
	// Each stat falls back on its own.
	if v, ok := r.Stats[StatHP]; ok {
		c.HP = v
	}
	if v, ok := r.Stats[StatStrength]; ok {
		c.Strength = v
	}
	if v, ok := r.Stats[StatSpeed]; ok {
		c.Speed = v
	}
	if v, ok := r.Stats[StatDefense]; ok {
		c.Defense = v
	}
	if v, ok := r.Stats[StatMP]; ok {
		c.MP = v
	}
	if c.Dungeons == nil {
		c.Dungeons = make(map[Rank]DungeonRecord)
	}
	return c
}

// Stat returns the named stat, or 0 if name is not a character stat.
func (c *Character) Stat(name string) int {
	switch name {
	case StatHP:
		return c.HP
	case StatStrength:
		return c.Strength
	case StatSpeed:
		return c.Speed
	case StatDefense:
		return c.Defense
	case StatMP:
		return c.MP
	}
	return 0
}

// StatMap returns the stats mapping built from the stat attributes.
func (c *Character) StatMap() map[string]int {
	m := make(map[string]int, len(StatNames))
	for _, name := range StatNames {
		m[name] = c.Stat(name)
	}
	return m
}

// DungeonRecord returns the pass/fail pair for rank. Ranks never recorded
// read as zero and are not added to Dungeons.
func (c *Character) DungeonRecord(rank Rank) DungeonRecord {
	return c.Dungeons[rank]
}

// TotalDungeonPasses sums passes over every recorded rank.
func (c *Character) TotalDungeonPasses() int {
	total := 0
	for _, d := range c.Dungeons {
		total += d.Pass
	}
	return total
}

// TotalDungeonFails sums fails over every recorded rank.
func (c *Character) TotalDungeonFails() int {
	total := 0
	for _, d := range c.Dungeons {
		total += d.Fail
	}
	return total
}

// SuccessRate returns the overall dungeon success percentage in [0,100].
// A character with no attempts has a rate of 0.
func (c *Character) SuccessRate() float64 {
	passes := c.TotalDungeonPasses()
	attempts := passes + c.TotalDungeonFails()
	if attempts <= 0 {
		return 0
	}
	return 100 * float64(passes) / float64(attempts)
}

func (c *Character) String() string {
	return fmt.Sprintf("Character: %s (Level %d, Rank %s)", c.Name, c.Level, c.Rank)
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
