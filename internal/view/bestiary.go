package view

import (
	"io"
	"strconv"
	"strings"

	"github.com/ankileveling/companion/internal/data"
)

// Bestiary renders every stat-focus category of the monster table.
func Bestiary(w io.Writer, t *data.MonsterTable) error {
	p := &printer{w: w}
	p.title("Monster Bestiary - Evolution Lines")
	for _, c := range data.Categories {
		categoryTab(p, t, c)
	}
	return p.err
}

// Category renders a single category. key may be a category key such as
// "HP" or an unknown key, which renders as its own label.
func Category(w io.Writer, t *data.MonsterTable, key string) error {
	p := &printer{w: w}
	c := data.Category{Key: key, Label: key}
	for _, known := range data.Categories {
		if known.Key == key {
			c = known
			break
		}
	}
	categoryTab(p, t, c)
	return p.err
}

func categoryTab(p *printer, t *data.MonsterTable, c data.Category) {
	p.section(c.Label)
	monsters, ok := t.Get(c.Key)
	if !ok {
		p.printf("No monsters available for %s\n", c.Label)
		return
	}
	for i, m := range monsters {
		p.printf("\n%d. %s\n", i+1, m.TabLabel())
		p.printf("  %s\n", strings.Join(m.Name.All(), " → "))

		stats := m.StatLine()
		cells := make([]string, 0, 2*len(stats))
		for _, s := range stats {
			cells = append(cells, s.Name+":", strconv.Itoa(s.Value))
		}
		p.line("  Base Stats")
		if len(cells) > 0 {
			p.grid("    ", [][]string{cells})
		}

		p.line("  Abilities")
		for _, a := range m.Abilities {
			ability(p, a, "", 4)
		}
	}
}
