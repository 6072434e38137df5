package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ankileveling/companion/internal/character"
)

// Characters renders the character viewer for chars with the character at
// selected shown in full. A selector line lists every name when there is
// more than one character.
func Characters(w io.Writer, chars []*character.Character, selected int) error {
	p := &printer{w: w}
	p.title("Character Viewer")

	if len(chars) > 1 {
		names := make([]string, len(chars))
		for i, c := range chars {
			if i == selected {
				names[i] = "[" + c.Name + "]"
			} else {
				names[i] = c.Name
			}
		}
		p.printf("Select Character: %s\n", strings.Join(names, "  "))
	}
	if selected < 0 || selected >= len(chars) {
		return p.err
	}
	sheet(p, chars[selected])
	return p.err
}

// Sheet renders the overview, statistics and dungeon sections of c.
func Sheet(w io.Writer, c *character.Character) error {
	p := &printer{w: w}
	sheet(p, c)
	return p.err
}

func sheet(p *printer, c *character.Character) {
	p.section("Character Overview")
	p.line(c.Name)
	p.grid("  ", [][]string{
		{"Level:", strconv.Itoa(c.Level), "Rank:", string(c.Rank)},
		{"Weapon:", c.Weapon, "Current XP:", strconv.Itoa(c.CurrentXP)},
		{"Date Joined:", c.DateJoined, "Last Adventure:", c.DateLastAdventure},
	})

	p.section("Character Statistics")
	cells := make([]string, 0, 2*len(character.StatNames))
	for _, name := range character.StatNames {
		cells = append(cells, name+":", strconv.Itoa(c.Stat(name)))
	}
	p.grid("  ", chunk(cells, 6))

	p.section("Dungeon Records")
	p.printf("Total Passes: %d  Total Fails: %d  Success Rate: %s\n",
		c.TotalDungeonPasses(), c.TotalDungeonFails(), FormatSuccessRate(c.SuccessRate()))
	rows := make([][]string, 0, len(character.Ranks))
	for _, rank := range character.Ranks {
		rec := c.DungeonRecord(rank)
		rows = append(rows, []string{
			fmt.Sprintf("Rank %s", rank),
			fmt.Sprintf("Passes: %d", rec.Pass),
			fmt.Sprintf("Fails: %d", rec.Fail),
		})
	}
	p.grid("  ", rows)
}
