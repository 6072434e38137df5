package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ankileveling/companion/internal/data"
	"github.com/ankileveling/companion/internal/store"
	"go.uber.org/zap"
)

// Notifier shows a message to the user, like the host's info box.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// WriterNotifier prints each message on its own paragraph.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(msg string) {
	fmt.Fprintf(n.W, "%s\n\n", msg)
}

// App runs the menu actions against a store. Viewers render to out and
// every outcome the user should see goes through the notifier.
type App struct {
	store  *store.Store
	out    io.Writer
	notify Notifier
	log    *zap.Logger
}

// New builds an App. The store is owned by the caller.
func New(st *store.Store, out io.Writer, notify Notifier, log *zap.Logger) *App {
	return &App{store: st, out: out, notify: notify, log: log}
}

// Startup loads every table, notifying about each one that fails.
func (a *App) Startup() {
	report := a.store.ReloadAll()
	a.reportLoad(store.TableClasses, report.Classes)
	a.reportLoad(store.TableMonsters, report.Monsters)
	a.reportLoad(store.TableCharacters, report.Characters)
}

// Run dispatches the named action.
func (a *App) Run(name string, args []string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, act := range a.Actions() {
		if act.Name == name {
			a.log.Debug("run action", zap.String("action", name), zap.Strings("args", args))
			return act.run(args)
		}
	}
	if hint := data.Closest(name, a.actionNames()); len(hint) > 0 {
		return fmt.Errorf("unknown action %q (did you mean %s?)", name, strings.Join(hint, ", "))
	}
	return fmt.Errorf("unknown action %q", name)
}

// loadTable loads one table and reports a failure the way the add-on did
// on startup. It returns whether the load succeeded.
func (a *App) loadTable(table store.Table) bool {
	return a.reportLoad(table, a.store.Load(table))
}

// reportLoad notifies about a failed load and reports whether err is nil.
func (a *App) reportLoad(table store.Table, err error) bool {
	if err == nil {
		return true
	}
	file := a.store.FileName(table)
	if errors.Is(err, store.ErrNotFound) {
		a.notify.Notify(fmt.Sprintf("%s not found at:\n%s\n\nPlease ensure the file exists in the addon directory.",
			file, a.store.Path(table)))
		return false
	}
	var le *store.LoadError
	if errors.As(err, &le) {
		err = le.Err
	}
	a.notify.Notify(fmt.Sprintf("Error loading %s: %v", file, err))
	return false
}

// noun is the user-facing name of a table, e.g. "Class".
func noun(table store.Table) string {
	switch table {
	case store.TableClasses:
		return "Class"
	case store.TableMonsters:
		return "Monster"
	case store.TableCharacters:
		return "Character"
	}
	return string(table)
}
