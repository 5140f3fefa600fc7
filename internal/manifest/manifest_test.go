package manifest_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mikegtech/insbridge-decoder/internal/decoder"
	"github.com/mikegtech/insbridge-decoder/internal/entities"
	"github.com/mikegtech/insbridge-decoder/internal/manifest"
)

func TestBuildRow(t *testing.T) {
	runID := uuid.NewString()
	res := &decoder.Result{
		RunID:          runID,
		ProgramVersion: &entities.ProgramVersion{ProgramID: "AUTO123", Version: 7},
		Algorithms: []decoder.DecodedAlgorithm{
			{
				Algorithm: &entities.Algorithm{Index: 2},
				Instructions: []decoder.DecodedInstruction{
					{Step: 1, Opcode: 10, StepType: "Calculation", English: "Set X = Y"},
					{Step: 2, Opcode: 20, StepType: "Decision", English: "Repository ERROR: boom"},
				},
			},
			{
				Algorithm: &entities.Algorithm{Index: 3},
				Instructions: []decoder.DecodedInstruction{
					{Step: 3, Opcode: 30, StepType: "Calculation", English: "Set Z = W"},
				},
			},
		},
	}

	when := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	row, err := manifest.BuildRow(res, when)
	if err != nil {
		t.Fatalf("BuildRow() error: %v", err)
	}
	if row.RunID.String() != runID {
		t.Errorf("RunID = %v, want %v", row.RunID, runID)
	}
	if row.ProgramKey != "AUTO123" || row.Version != 7 {
		t.Errorf("row = %+v, want ProgramKey AUTO123, Version 7", row)
	}
	if row.InstructionCount != 3 {
		t.Errorf("InstructionCount = %d, want 3 (across both algorithms)", row.InstructionCount)
	}
	if row.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1 (one Repository ERROR instruction)", row.ErrorCount)
	}
	if row.DecodedAt != "2026-07-31T12:00:00Z" {
		t.Errorf("DecodedAt = %q, want RFC3339 UTC timestamp", row.DecodedAt)
	}
}

func TestBuildRowInvalidRunID(t *testing.T) {
	res := &decoder.Result{
		RunID:          "not-a-uuid",
		ProgramVersion: &entities.ProgramVersion{ProgramID: "X", Version: 1},
	}
	_, err := manifest.BuildRow(res, time.Now())
	if err == nil {
		t.Fatal("BuildRow() error = nil, want an error for a malformed run id")
	}
}

func TestNoopUploaderFailsExplicitly(t *testing.T) {
	row := manifest.Row{RunID: uuid.New(), ProgramKey: "AUTO123", Version: 7}
	err := (manifest.NoopUploader{}).Upload(row)
	if err == nil {
		t.Fatal("Upload() error = nil, want an explicit no-uploader-configured error")
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Upload() error = %v, want it to wrap errors.ErrUnsupported", err)
	}
}

func TestNewRunIDIsUnique(t *testing.T) {
	a := manifest.NewRunID()
	b := manifest.NewRunID()
	if a == "" || b == "" {
		t.Fatal("NewRunID() returned an empty id")
	}
	if a == b {
		t.Errorf("NewRunID() returned the same id twice: %q", a)
	}
}
