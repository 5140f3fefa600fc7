package decoder_test

import (
	"strings"
	"testing"

	"github.com/mikegtech/insbridge-decoder/internal/decoder"
	"github.com/mikegtech/insbridge-decoder/internal/entities"
	"github.com/mikegtech/insbridge-decoder/internal/opcode"
	"github.com/mikegtech/insbridge-decoder/internal/render"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	set := &render.TemplateSet{
		StepTypes: map[string]string{
			"ARITHMETIC": "Calculation",
			"NUMERIC_IF": "Decision",
		},
		Templates: map[string]string{
			"ASSIGNMENT": "Set {{.Target}} = {{.Expr}}",
			"IF_COMPARE": "If {{.Left}} {{.Op}} {{.Right}}{{if .TrueLabel}} Then {{.TrueLabel}}{{end}}{{if .FalseLabel}} Else {{.FalseLabel}}{{end}}",
			"JUMP":       "Go To Step {{.Target}}",
		},
	}
	r, err := render.NewRenderer(set)
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	return r
}

func seq(v int) *int { return &v }

func TestDecodeProgramBasic(t *testing.T) {
	pv := &entities.ProgramVersion{
		ProgramID: "AUTO123", Line: "AUTO", Version: 1,
		DataDictionary: entities.DataDictionary{
			Inputs: []entities.InputVariable{
				{Index: 573, Line: "AUTO", Description: "Driver Age"},
			},
		},
		AlgorithmSeq: []entities.AlgorithmSequence{
			{
				SequenceNumber: 1,
				Algorithm: &entities.Algorithm{
					Description: "Base Rating",
					Steps: []*entities.Instruction{
						{
							Step: 1, Opcode: int(opcode.NumericIf),
							Body: "|GI_573|>|{25}|", SeqTrue: seq(2), SeqFalse: seq(3),
						},
					},
				},
			},
		},
	}

	d := decoder.New(newRenderer(t))
	res := d.DecodeProgram(pv)

	if res.RunID == "" {
		t.Error("RunID is empty, want a generated uuid")
	}
	if len(res.Algorithms) != 1 || len(res.Algorithms[0].Instructions) != 1 {
		t.Fatalf("Algorithms = %+v, want one algorithm with one instruction", res.Algorithms)
	}

	ins := res.Algorithms[0].Instructions[0]
	if !strings.Contains(ins.English, "Driver Age") {
		t.Errorf("English = %q, want it to mention the resolved GI_573 description", ins.English)
	}
	if !strings.Contains(ins.English, "Go To Step 2") || !strings.Contains(ins.English, "Go To Step 3") {
		t.Errorf("English = %q, want both jump targets rendered", ins.English)
	}
}

func TestDecodeInstructionRecoversFromPanic(t *testing.T) {
	pv := &entities.ProgramVersion{
		AlgorithmSeq: []entities.AlgorithmSequence{
			{
				Algorithm: &entities.Algorithm{
					Steps: []*entities.Instruction{
						nil, // a nil step would panic a naive dereference
					},
				},
			},
		},
	}
	d := decoder.New(newRenderer(t))

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("DecodeProgram panicked instead of recovering: %v", r)
		}
	}()
	res := d.DecodeProgram(pv)
	if len(res.Algorithms[0].Instructions) != 1 {
		t.Fatalf("Instructions = %+v, want one degraded entry", res.Algorithms[0].Instructions)
	}
	if !strings.Contains(res.Algorithms[0].Instructions[0].English, "Repository ERROR") {
		t.Errorf("English = %q, want a Repository ERROR fallback", res.Algorithms[0].Instructions[0].English)
	}
}

func TestResolveAssignFilter(t *testing.T) {
	scope := entities.Scope{
		{IBType: entities.IBCalculatedA, CalcIndex: 1, HasCalcIndex: true, Description: "Eligible Flag"},
	}
	got := decoder.ResolveAssignFilter("|PC_1|=|{1}|", scope, nil)
	want := "Eligible Flag [equals] 1"
	if got != want {
		t.Errorf("ResolveAssignFilter() = %q, want %q", got, want)
	}
}

func TestResolveAssignFilterEmpty(t *testing.T) {
	if got := decoder.ResolveAssignFilter("", nil, nil); got != "" {
		t.Errorf("ResolveAssignFilter(\"\") = %q, want empty", got)
	}
}
