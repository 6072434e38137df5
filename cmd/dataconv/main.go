// dataconv converts an Anki Leveling data table between JSON and YAML.
//
// The output format follows the output file's extension. Without an output
// path the input is written next to itself with the other extension.
//
// Usage:
//
//	go run ./cmd/dataconv classes data/classes.json data/yaml/classes.yaml
//	go run ./cmd/dataconv monsters data/yaml/monsters.yaml
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankileveling/companion/internal/data"
)

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintf(os.Stderr, "usage: dataconv classes|monsters|characters <input> [output]\n")
		os.Exit(2)
	}
	kind, inputPath := os.Args[1], os.Args[2]

	outputPath := ""
	if len(os.Args) == 4 {
		outputPath = os.Args[3]
	} else {
		p, err := swapExt(inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		outputPath = p
	}

	format, err := data.FormatOf(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	v, count, err := load(kind, inputPath, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	if format == data.FormatYAML {
		header := fmt.Sprintf("# Anki Leveling %s - converted from %s\n\n", kind, filepath.Base(inputPath))
		err = data.WriteYAML(outputPath, v, header)
	} else {
		err = data.WriteJSON(outputPath, v)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d %s to %s\n", count, kind, outputPath)
}

// load reads a table of the given kind and returns the value to encode
// in format along with the number of entries.
func load(kind, path string, format data.Format) (any, int, error) {
	switch kind {
	case "classes":
		t, err := data.LoadClassTable(path)
		if err != nil {
			return nil, 0, err
		}
		return t.File(), t.Count(), nil
	case "monsters":
		t, err := data.LoadMonsterTable(path)
		if err != nil {
			return nil, 0, err
		}
		return t.File(), t.Count(), nil
	case "characters":
		r, err := data.LoadRoster(path)
		if err != nil {
			return nil, 0, err
		}
		// Characters marshal their full JSON shape; YAML goes through records.
		if format == data.FormatYAML {
			return r.Records(), r.Count(), nil
		}
		return r.All(), r.Count(), nil
	}
	return nil, 0, fmt.Errorf("unknown table kind %q", kind)
}

func swapExt(path string) (string, error) {
	format, err := data.FormatOf(path)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if format == data.FormatJSON {
		return base + ".yaml", nil
	}
	return base + ".json", nil
}
