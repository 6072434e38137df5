package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ankileveling/companion/internal/app"
	"github.com/ankileveling/companion/internal/config"
	"github.com/ankileveling/companion/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(dataDir string) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Fprintln(os.Stderr, "\033[36;1m  │\033[0m         Anki Leveling Companion           \033[36;1m│\033[0m")
	fmt.Fprintln(os.Stderr, "\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  \033[1mData:\033[0m %s\n\n", dataDir)
}

func printSection(title string) {
	lineLen := 46 - len([]rune(title)) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Fprintf(os.Stderr, "  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len([]rune(label)) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Fprintf(os.Stderr, "  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Fprintf(os.Stderr, "  \033[32m✓\033[0m %s\n", msg)
}

func run() error {
	cfgPath := os.Getenv("ANKILEVELING_CONFIG")
	flag.StringVar(&cfgPath, "config", cfgPath, "path to a TOML config file")
	quiet := flag.Bool("q", false, "skip the startup banner")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	st := store.New(cfg.Data, log)
	a := app.New(st, os.Stdout, app.WriterNotifier{W: os.Stderr}, log)
	if !*quiet {
		printBanner(cfg.Data.Dir)
	}
	a.Startup()

	if !*quiet {
		printSection("Game data")
		snap := st.Snapshot()
		printStat("Classes", snap.Classes.Count())
		printStat("Monsters", snap.Monsters.Count())
		printStat("Characters", snap.Roster.Count())
		if snap.Classes.Count() > 0 && snap.Monsters.Count() > 0 {
			printOK("Tools menu ready")
		}
		fmt.Fprintln(os.Stderr)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"menu"}
	}
	return a.Run(args[0], args[1:])
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
