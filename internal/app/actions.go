package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ankileveling/companion/internal/data"
	"github.com/ankileveling/companion/internal/store"
	"github.com/ankileveling/companion/internal/view"
)

// Action is one entry of the tools menu.
type Action struct {
	Name  string // command name, e.g. "view-classes"
	Title string // menu label
	Args  string // argument synopsis, empty when none
	Group int    // menu groups are separated in listings
	run   func(args []string) error
}

// Actions returns the menu in display order.
func (a *App) Actions() []Action {
	return []Action{
		{Name: "view-classes", Title: "View Class Data", Args: "[weapon]", Group: 0, run: a.ShowClasses},
		{Name: "export-classes", Title: "Export Class JSON", Group: 0, run: a.noArgs(a.ExportClasses)},
		{Name: "reload-classes", Title: "Reload Class JSON", Group: 0, run: a.noArgs(a.ReloadClasses)},

		{Name: "view-monsters", Title: "View Monster Bestiary", Args: "[category]", Group: 1, run: a.ShowMonsters},
		{Name: "export-monsters", Title: "Export Monster JSON", Group: 1, run: a.noArgs(a.ExportMonsters)},
		{Name: "reload-monsters", Title: "Reload Monster JSON", Group: 1, run: a.noArgs(a.ReloadMonsters)},

		{Name: "view-characters", Title: "View Characters", Args: "[name]", Group: 2, run: a.ShowCharacters},
		{Name: "reload-characters", Title: "Reload Character JSON", Group: 2, run: a.noArgs(a.ReloadCharacters)},

		{Name: "reload-all", Title: "Reload All Game Data", Group: 3, run: a.noArgs(a.ReloadAll)},
		{Name: "menu", Title: "Show This Menu", Group: 3, run: func([]string) error { return Menu(a.out, a.Actions()) }},
	}
}

func (a *App) actionNames() []string {
	acts := a.Actions()
	names := make([]string, len(acts))
	for i, act := range acts {
		names[i] = act.Name
	}
	return names
}

func (a *App) noArgs(fn func()) func([]string) error {
	return func([]string) error {
		fn()
		return nil
	}
}

// Menu lists actions with a separator between groups.
func Menu(w io.Writer, actions []Action) error {
	var b strings.Builder
	for i, act := range actions {
		if i > 0 && act.Group != actions[i-1].Group {
			b.WriteString("  ----\n")
		}
		cmd := act.Name
		if act.Args != "" {
			cmd += " " + act.Args
		}
		fmt.Fprintf(&b, "  %-28s %s\n", cmd, act.Title)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ShowClasses renders the class viewer, optionally for one weapon.
func (a *App) ShowClasses(args []string) error {
	t := a.store.Classes()
	if t.Empty() {
		a.notify.Notify("No class data loaded. Please ensure classes.json exists in the addon directory and reload the data.")
		return nil
	}
	if len(args) == 0 {
		return view.Classes(a.out, t)
	}
	weapon := strings.Join(args, " ")
	if !t.HasWeapon(weapon) {
		if hint := data.Closest(weapon, t.Weapons()); len(hint) > 0 {
			a.notify.Notify(fmt.Sprintf("No data available for %s. Did you mean %s?", weapon, strings.Join(hint, ", ")))
			return nil
		}
	}
	return view.Weapon(a.out, t, weapon)
}

// ShowMonsters renders the bestiary, optionally for one category.
func (a *App) ShowMonsters(args []string) error {
	t := a.store.Monsters()
	if t.Empty() {
		a.notify.Notify("No monster data loaded. Please ensure monsters.json exists in the addon directory and reload the data.")
		return nil
	}
	if len(args) == 0 {
		return view.Bestiary(a.out, t)
	}
	return view.Category(a.out, t, args[0])
}

// ShowCharacters renders the character viewer. With a name, that
// character is selected; otherwise the first one is.
func (a *App) ShowCharacters(args []string) error {
	r := a.store.Roster()
	if r.Empty() {
		a.notify.Notify("No character data loaded. Please ensure characters.json exists in the addon directory and reload the data.")
		return nil
	}
	selected := 0
	if len(args) > 0 {
		name := strings.Join(args, " ")
		c := r.ByName(name)
		if c == nil {
			msg := fmt.Sprintf("No character named %q.", name)
			if hint := r.Suggest(name); len(hint) > 0 {
				msg += fmt.Sprintf(" Did you mean %s?", strings.Join(hint, ", "))
			}
			a.notify.Notify(msg)
			return nil
		}
		for i, cand := range r.All() {
			if cand == c {
				selected = i
				break
			}
		}
	}
	return view.Characters(a.out, r.All(), selected)
}

// ExportClasses writes the class table back to its file.
func (a *App) ExportClasses() {
	a.export(store.TableClasses, a.store.ExportClasses)
}

// ExportMonsters writes the bestiary back to its file.
func (a *App) ExportMonsters() {
	a.export(store.TableMonsters, a.store.ExportMonsters)
}

func (a *App) export(table store.Table, fn func() (string, error)) {
	lower := strings.ToLower(noun(table))
	path, err := fn()
	switch {
	case errors.Is(err, store.ErrNoData):
		a.notify.Notify(fmt.Sprintf("No %s data to export.", lower))
	case err != nil:
		a.notify.Notify(fmt.Sprintf("Error exporting %s data: %v", lower, errors.Unwrap(err)))
	default:
		a.notify.Notify(fmt.Sprintf("%s data exported to:\n%s", noun(table), path))
	}
}

// ReloadClasses reloads the class table.
func (a *App) ReloadClasses() { a.reload(store.TableClasses) }

// ReloadMonsters reloads the bestiary.
func (a *App) ReloadMonsters() { a.reload(store.TableMonsters) }

// ReloadCharacters reloads the character roster.
func (a *App) ReloadCharacters() { a.reload(store.TableCharacters) }

func (a *App) reload(table store.Table) {
	if a.loadTable(table) {
		a.notify.Notify(fmt.Sprintf("%s data reloaded successfully!", noun(table)))
		return
	}
	a.notify.Notify(fmt.Sprintf("Failed to reload %s data.", strings.ToLower(noun(table))))
}

// ReloadAll reloads classes and monsters and reports both outcomes in one
// message. The roster is reloaded as well; only its failure is reported.
func (a *App) ReloadAll() {
	report := a.store.ReloadAll()
	classOK := a.reportLoad(store.TableClasses, report.Classes)
	monsterOK := a.reportLoad(store.TableMonsters, report.Monsters)
	a.reportLoad(store.TableCharacters, report.Characters)

	switch {
	case classOK && monsterOK:
		a.notify.Notify("All data reloaded successfully!")
	case classOK:
		a.notify.Notify("Class data reloaded successfully!\nFailed to reload monster data.")
	case monsterOK:
		a.notify.Notify("Monster data reloaded successfully!\nFailed to reload class data.")
	default:
		a.notify.Notify("Failed to reload both class and monster data.")
	}
}
