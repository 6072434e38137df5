package view

import (
	"io"

	"github.com/ankileveling/companion/internal/character"
	"github.com/ankileveling/companion/internal/data"
)

// Classes renders every canonical weapon with its five stat classes.
func Classes(w io.Writer, t *data.ClassTable) error {
	p := &printer{w: w}
	p.title("Anki Leveling Classes & Abilities")
	for _, weapon := range character.Weapons {
		weaponTab(p, t, weapon)
	}
	return p.err
}

// Weapon renders the classes of a single weapon.
func Weapon(w io.Writer, t *data.ClassTable, weapon string) error {
	p := &printer{w: w}
	weaponTab(p, t, weapon)
	return p.err
}

func weaponTab(p *printer, t *data.ClassTable, weapon string) {
	p.section(weapon)
	if !t.HasWeapon(weapon) {
		p.printf("No data available for %s\n", weapon)
		return
	}
	for _, stat := range character.StatNames {
		info := t.Get(weapon, stat)
		if info == nil {
			p.printf("\n[%s] No %s class available for %s\n", stat, stat, weapon)
			continue
		}
		p.printf("\n[%s] %s - %s - %s\n", stat, weapon, stat, info.Class)
		for _, a := range info.Abilities {
			ability(p, a.Ability, a.Type, 5)
		}
	}
}

// ability renders one ability with an optional type badge and its non-zero
// effects laid out perCol to a row.
func ability(p *printer, a data.Ability, badge string, perCol int) {
	if badge != "" {
		p.printf("  * %s  (%s)\n", a.Name, badge)
	} else {
		p.printf("  * %s\n", a.Name)
	}
	if a.Description != "" {
		p.printf("    %s\n", a.Description)
	}
	effects := a.Effects()
	cells := make([]string, 0, 2*len(effects))
	for _, e := range effects {
		cells = append(cells, e.Label+":", number(e.Value))
	}
	p.grid("    ", chunk(cells, 2*perCol))
}
