// Package manifest describes one decoded program version as a single
// exportable row, and the interface for shipping that row somewhere
// durable. Grounded on original_source/prefect/dags/version-export/hourly.py,
// which uploads one JSON manifest row per program version after decoding
// (SPEC_FULL.md §4 item 6), and the teacher's config/output conventions.
package manifest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikegtech/insbridge-decoder/internal/decoder"
)

// Row is one decoded program version's manifest entry.
type Row struct {
	RunID            uuid.UUID
	ProgramKey       string
	Version          int
	DecodedAt        string
	InstructionCount int
	ErrorCount       int
}

// BuildRow summarizes a decode Result into its single manifest row.
// decodedAt is taken as a parameter (rather than computed internally)
// because the decoder core must not depend on wall-clock time to stay
// reproducible — callers stamp the row with whatever time they observed
// the decode to finish.
func BuildRow(res *decoder.Result, decodedAt time.Time) (Row, error) {
	runID, err := uuid.Parse(res.RunID)
	if err != nil {
		return Row{}, fmt.Errorf("manifest: parsing run id %q: %w", res.RunID, err)
	}

	row := Row{
		RunID:      runID,
		ProgramKey: res.ProgramVersion.ProgramID,
		Version:    res.ProgramVersion.Version,
		DecodedAt:  decodedAt.UTC().Format(time.RFC3339),
	}
	for _, algo := range res.Algorithms {
		for _, ins := range algo.Instructions {
			row.InstructionCount++
			if strings.HasPrefix(ins.English, "Repository ERROR") {
				row.ErrorCount++
			}
		}
	}
	return row, nil
}

// Uploader ships a built manifest row somewhere outside the process —
// object storage, a message bus, a shared filesystem. The decoder core
// has no opinion on the destination. cmd/ratedecode does not use an
// Uploader; it writes the row to its -out file itself.
type Uploader interface {
	Upload(row Row) error
}

// NoopUploader is the default Uploader: it reports that no upload
// destination is configured, rather than silently discarding the row.
type NoopUploader struct{}

// Upload always fails with errors.ErrUnsupported, annotated with the row
// that was dropped.
func (NoopUploader) Upload(row Row) error {
	return fmt.Errorf("manifest: no uploader configured for run %s (program %s v%d): %w",
		row.RunID, row.ProgramKey, row.Version, errors.ErrUnsupported)
}

// NewRunID generates a fresh manifest run identifier, independent of the
// decode Result's own RunID — useful when a single decode is exported
// more than once.
func NewRunID() string {
	return uuid.NewString()
}
