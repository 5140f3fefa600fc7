// Package decoder is the tree driver: it walks a program version's
// algorithm sequence, parses and renders every instruction, and recovers
// from a single instruction's failure without losing its siblings.
// Grounded on original_source/.../decoder.py and decode_mif.py's
// try/except-per-instruction policy.
package decoder

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mikegtech/insbridge-decoder/internal/ast"
	"github.com/mikegtech/insbridge-decoder/internal/entities"
	"github.com/mikegtech/insbridge-decoder/internal/opcode"
	"github.com/mikegtech/insbridge-decoder/internal/parser"
	"github.com/mikegtech/insbridge-decoder/internal/render"
	"github.com/mikegtech/insbridge-decoder/internal/symbols"
)

// DecodedInstruction is one instruction's parse+render result.
type DecodedInstruction struct {
	Step     int
	Opcode   int
	StepType string
	Nodes    []ast.Node
	English  string
}

// DecodedAlgorithm groups an Algorithm's decoded steps plus its resolved
// assign-filter English, if it has one.
type DecodedAlgorithm struct {
	Algorithm        *entities.Algorithm
	AssignFilterText string
	Instructions     []DecodedInstruction
}

// Result is the full decode of a program version, stamped with a run ID
// so callers (e.g. internal/decodecache, internal/manifest) can key
// artifacts against a single decode pass.
type Result struct {
	RunID        string
	ProgramVersion *entities.ProgramVersion
	Algorithms   []DecodedAlgorithm
}

// Decoder owns the renderer used to fill in every node's English text.
type Decoder struct {
	renderer *render.Renderer
}

// New builds a Decoder around an already-loaded Renderer.
func New(r *render.Renderer) *Decoder {
	return &Decoder{renderer: r}
}

// DecodeProgram decodes every algorithm in program order. It never
// returns an error: a single instruction that panics mid-parse degrades
// to a "Repository ERROR: ..." Raw node (see decodeInstruction) and
// every other instruction still decodes normally.
func (d *Decoder) DecodeProgram(pv *entities.ProgramVersion) *Result {
	res := &Result{RunID: uuid.NewString(), ProgramVersion: pv}

	for _, seq := range pv.AlgorithmSeq {
		algo := seq.Algorithm
		if algo == nil {
			continue
		}
		scope := buildScope(algo.DependencyVars)

		decoded := DecodedAlgorithm{Algorithm: algo}
		if algo.AssignFilter != "" {
			decoded.AssignFilterText = ResolveAssignFilter(algo.AssignFilter, scope, pv)
		}

		for _, step := range algo.Steps {
			decoded.Instructions = append(decoded.Instructions, d.decodeInstruction(step, scope, pv))
		}
		res.Algorithms = append(res.Algorithms, decoded)
	}

	d.renderAll(res, nil)
	labels := stepLabels(res)
	d.renderAll(res, labels)

	return res
}

// buildScope performs a breadth-first walk of an algorithm's
// dependency_vars, descending into nested dependency_vars only when the
// dependency is itself a calculated variable — table, result, and input
// dependencies never carry meaningful nested chains (spec.md §4.7).
func buildScope(deps []*entities.DependencyBase) entities.Scope {
	var scope entities.Scope
	queue := append([]*entities.DependencyBase{}, deps...)
	for len(queue) > 0 {
		dep := queue[0]
		queue = queue[1:]
		if dep == nil {
			continue
		}
		scope = append(scope, dep)
		if dep.IsCalculatedVariable() {
			queue = append(queue, dep.DependencyVars...)
		}
	}
	return scope
}

// decodeInstruction parses one instruction, recovering from any panic
// (a malformed token the scanner can't bound, an unexpected nil) into a
// single degraded Raw node rather than losing the whole algorithm.
func (d *Decoder) decodeInstruction(ins *entities.Instruction, scope entities.Scope, pv *entities.ProgramVersion) (out DecodedInstruction) {
	defer func() {
		if rec := recover(); rec != nil {
			out.Nodes = []ast.Node{&ast.Raw{
				Common:  ast.Common{Step: out.Step, Opcode: out.Opcode},
				Display: fmt.Sprintf("Repository ERROR: %v", rec),
			}}
			if ins != nil {
				ins.AST = []any{out.Nodes[0]}
			}
		}
	}()

	if ins == nil {
		panic("nil instruction")
	}

	out.Step = ins.Step
	out.Opcode = ins.Opcode
	out.StepType = d.renderer.StepType(opcode.Classify(ins.Opcode).String())

	p := parser.Instruction{
		Step:      ins.Step,
		Opcode:    ins.Opcode,
		Body:      ins.Body,
		Target:    ins.Target,
		HasTarget: ins.HasTarget,
		SeqTrue:   ins.SeqTrue,
		SeqFalse:  ins.SeqFalse,
	}
	out.Nodes = parser.Parse(p, scope, pv)
	ins.AST = make([]any, len(out.Nodes))
	for i, n := range out.Nodes {
		ins.AST[i] = n
	}
	return out
}

// renderAll fills every decoded instruction's top-level node English
// (and every nested node beneath it), using resolve for Jump labels. It
// is run twice by DecodeProgram: once with a nil resolver to produce the
// raw per-step text that stepLabels reads, and once more with the
// resulting label map so Jump nodes can carry a short target preview.
func (d *Decoder) renderAll(res *Result, resolve render.LabelResolver) {
	for ai := range res.Algorithms {
		algo := &res.Algorithms[ai]
		for ii := range algo.Instructions {
			ins := &algo.Instructions[ii]
			var texts []string
			for _, n := range ins.Nodes {
				texts = append(texts, d.renderer.Render(n, resolve))
			}
			ins.English = strings.Join(texts, " ")
		}
	}
}

// stepLabels builds a step-number -> short-English map from a decode
// pass's results, feeding the "jump_label" supplement (SPEC_FULL.md §4
// item 2, grounded on decoder.py's GetNextStepEnglish).
func stepLabels(res *Result) render.LabelResolver {
	labels := make(map[int]string)
	for _, algo := range res.Algorithms {
		for _, ins := range algo.Instructions {
			text := ins.English
			if len(text) > 48 {
				text = text[:48] + "..."
			}
			labels[ins.Step] = text
		}
	}
	return func(step int) string {
		return labels[step]
	}
}

// ResolveAssignFilter renders an algorithm's assign-filter expression —
// the applicability condition gating whether the algorithm runs at all —
// using the same pipe-delimited clause grammar as a single IF, joined by
// AND/OR under the same '+'/'^' convention as a multi-IF body. Grounded
// on original_source/.../decode_filter_rule and entities/algorithm.py's
// assign_filter field (SPEC_FULL.md §4 item 4).
func ResolveAssignFilter(filter string, scope entities.Scope, program *entities.ProgramVersion) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return ""
	}

	var splitChar byte
	joinerWord := "or"
	switch {
	case strings.Contains(filter, "^"):
		splitChar, joinerWord = '^', "or"
	case strings.Contains(filter, "+"):
		splitChar, joinerWord = '+', "and"
	}

	var fragments []string
	if splitChar == 0 {
		fragments = []string{filter}
	} else {
		for _, f := range strings.Split(filter, string(splitChar)) {
			if t := strings.TrimSpace(f); t != "" {
				fragments = append(fragments, t)
			}
		}
	}

	parts := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		left, op, right := parser.SplitIfFragment(frag)
		l := symbols.Describe(left, scope, program)
		o := symbols.Describe(op, scope, program)
		r := symbols.Describe(right, scope, program)
		parts = append(parts, strings.TrimSpace(strings.TrimSpace(l+" "+o)+" "+r))
	}
	return strings.Join(parts, " "+joinerWord+" ")
}
