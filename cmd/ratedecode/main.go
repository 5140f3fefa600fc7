// Command ratedecode decodes a rating program version's instructions into
// their English rendering and prints a manifest summary. It is the CLI
// front door described in SPEC_FULL.md §3; TTY-aware formatting and
// human-friendly counts follow the teacher's CLI conventions
// (go-isatty, go-humanize).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/mikegtech/insbridge-decoder/internal/config"
	"github.com/mikegtech/insbridge-decoder/internal/decoder"
	"github.com/mikegtech/insbridge-decoder/internal/entities"
	"github.com/mikegtech/insbridge-decoder/internal/manifest"
	"github.com/mikegtech/insbridge-decoder/internal/render"
)

func main() {
	var (
		programPath   = flag.String("program", "", "path to a JSON-encoded program version")
		templatesPath = flag.String("templates", "", "path to templates.yml (defaults to the executable's directory)")
		outPath       = flag.String("out", "", "write the decoded manifest as JSON to this path (default: summary only)")
	)
	flag.Parse()

	if *programPath == "" {
		log.Fatal("ratedecode: -program is required")
	}

	cfg, err := config.Default()
	if err != nil {
		log.Fatalf("ratedecode: resolving config: %v", err)
	}
	if *templatesPath != "" {
		cfg = cfg.WithTemplatesPath(*templatesPath)
	}

	set, err := render.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("ratedecode: loading templates: %v", err)
	}
	renderer, err := render.NewRenderer(set)
	if err != nil {
		log.Fatalf("ratedecode: %v", err)
	}

	pv, err := loadProgramVersion(*programPath)
	if err != nil {
		log.Fatalf("ratedecode: loading program version: %v", err)
	}

	res := decoder.New(renderer).DecodeProgram(pv)
	row, err := manifest.BuildRow(res, time.Now())
	if err != nil {
		log.Fatalf("ratedecode: building manifest row: %v", err)
	}

	printSummary(row)

	if *outPath != "" {
		if err := writeManifest(*outPath, row); err != nil {
			log.Fatalf("ratedecode: writing manifest: %v", err)
		}
	}
}

func loadProgramVersion(path string) (*entities.ProgramVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var pv entities.ProgramVersion
	if err := json.Unmarshal(data, &pv); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &pv, nil
}

func writeManifest(path string, row manifest.Row) error {
	data, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func printSummary(row manifest.Row) {
	colorOK := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	stepWord := humanize.Comma(int64(row.InstructionCount))
	line := fmt.Sprintf("decoded %s (v%d): %s steps, %d errors, run %s",
		row.ProgramKey, row.Version, stepWord, row.ErrorCount, row.RunID)

	if colorOK {
		fmt.Println("\033[1;32m" + line + "\033[0m")
	} else {
		fmt.Println(line)
	}
}
