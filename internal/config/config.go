// Package config resolves the decoder's on-disk dependencies — the
// template file, the cache database path — relative to the running
// executable, mirroring the teacher's own config package conventions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// OpcodeTableVersion is stamped into every gRPC DecodeInstruction
// response (opcode_table_version) so a consumer can tell which opcode
// enumeration decoded a given instruction.
const OpcodeTableVersion = "opcode-table-2026.1"

// Config holds the resolved filesystem locations the decoder needs.
type Config struct {
	TemplatesPath string
	CachePath     string
}

// Default resolves template and cache paths relative to the running
// executable's directory, falling back to the current working directory
// if the executable's own path can't be determined (e.g. under `go run`).
func Default() (Config, error) {
	dir, err := executableDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		TemplatesPath: filepath.Join(dir, "templates.yml"),
		CachePath:     filepath.Join(dir, "decodecache.sqlite"),
	}, nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		wd, werr := os.Getwd()
		if werr != nil {
			return "", fmt.Errorf("config: resolving executable path: %w", err)
		}
		return wd, nil
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		resolved = exe
	}
	return filepath.Dir(resolved), nil
}

// WithTemplatesPath returns a copy of c with an explicit template path,
// overriding the executable-relative default — used when a caller passes
// --templates on the command line.
func (c Config) WithTemplatesPath(path string) Config {
	c.TemplatesPath = path
	return c
}

// WithCachePath returns a copy of c with an explicit cache path.
func (c Config) WithCachePath(path string) Config {
	c.CachePath = path
	return c
}
