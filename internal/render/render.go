// Package render turns a decoded AST into its English-language rendering,
// driven by a YAML template set (templates.yml) loaded via gopkg.in/yaml.v3.
// Grounded on original_source/.../renderer.py, whose per-node-type Jinja2
// template filling this package reproduces with Go's text/template against
// the same {{ }} delimiter syntax.
package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/mikegtech/insbridge-decoder/internal/ast"
)

// TemplateSet is the YAML document shape: a step-type label per opcode
// name, and a named template body per TemplateID.
type TemplateSet struct {
	StepTypes map[string]string `yaml:"step_types"`
	Templates map[string]string `yaml:"templates"`
}

// LoadTemplates reads and parses a templates.yml file.
func LoadTemplates(path string) (*TemplateSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: reading template file: %w", err)
	}
	var ts TemplateSet
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("render: parsing template file: %w", err)
	}
	return &ts, nil
}

// LabelResolver looks up the human-readable label for a jump target step,
// letting a Jump node's rendering read e.g. "Go To Step 12 (Results of Step
// 12 determination)" instead of a bare step number. The tree driver in
// internal/decoder supplies the real implementation; render.Render works
// fine with a nil resolver (labels are simply omitted).
type LabelResolver func(targetStep int) string

// Renderer fills in each AST node's English field using a loaded
// TemplateSet. Renderer is safe for concurrent use: it only reads its
// parsed template cache after construction.
type Renderer struct {
	set    *TemplateSet
	parsed map[string]*template.Template
}

// NewRenderer parses every template body up front so a malformed template
// fails fast at startup instead of mid-decode.
func NewRenderer(set *TemplateSet) (*Renderer, error) {
	r := &Renderer{set: set, parsed: make(map[string]*template.Template, len(set.Templates))}
	for id, body := range set.Templates {
		t, err := template.New(id).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("render: parsing template %q: %w", id, err)
		}
		r.parsed[id] = t
	}
	return r, nil
}

// StepType returns the human label for an opcode name, or the opcode name
// itself if the template set carries no entry.
func (r *Renderer) StepType(opcodeName string) string {
	if label, ok := r.set.StepTypes[opcodeName]; ok {
		return label
	}
	return opcodeName
}

// Render fills node.Header().English (and recursively every nested node's
// English) and returns the resulting text. A template lookup or execution
// failure is captured as the node's English text rather than propagated,
// per the decoder's "never abort traversal on a render failure" policy:
// the node falls back to a best-effort plain composition of its own
// fields.
func (r *Renderer) Render(node ast.Node, resolve LabelResolver) string {
	if node == nil {
		return ""
	}
	switch n := node.(type) {
	case *ast.Raw:
		return r.renderRaw(n)
	case *ast.Jump:
		return r.renderJump(n, resolve)
	case *ast.Compare:
		return r.renderCompare(n)
	case *ast.MultiCondition:
		return r.renderMultiCondition(n)
	case *ast.TypeCheck:
		return r.renderTypeCheck(n)
	case *ast.If:
		return r.renderIf(n, resolve)
	case *ast.Arithmetic:
		return r.renderArithmetic(n)
	case *ast.Function:
		return r.renderFunction(n)
	case *ast.Assignment:
		return r.renderAssignment(n, resolve)
	default:
		return ""
	}
}

func (r *Renderer) renderRaw(n *ast.Raw) string {
	text := n.Display
	if text == "" {
		text = n.Text
	}
	n.English = text
	return text
}

func (r *Renderer) renderJump(n *ast.Jump, resolve LabelResolver) string {
	label := JumpLabel(n.Target, n.Step, resolve)
	ctx := map[string]any{"Target": n.Target, "JumpLabel": label}
	fallback := func() string {
		text := fmt.Sprintf("Go To Step %d", n.Target)
		if label != "" {
			text = fmt.Sprintf("%s (%s)", text, label)
		}
		return text
	}
	text := r.exec("JUMP", ctx, fallback)
	n.English = text
	return text
}

// JumpLabel resolves the short English preview a Jump's target step
// carries, for use as the template-exposed {{.JumpLabel}} field (empty
// when resolve is nil, the target has no resolved text yet, or the jump
// targets its own enclosing step). Grounded on
// original_source/.../decoder.py's GetNextStepEnglish (SPEC_FULL.md §4
// item 2).
func JumpLabel(target, currentStep int, resolve LabelResolver) string {
	if resolve == nil || target == currentStep {
		return ""
	}
	return resolve(target)
}

func (r *Renderer) renderCompare(n *ast.Compare) string {
	left := r.renderRaw(n.Left)
	right := r.renderRaw(n.Right)
	text := strings.TrimSpace(fmt.Sprintf("%s %s %s", left, n.Op, right))
	n.English = text
	return text
}

func (r *Renderer) renderMultiCondition(n *ast.MultiCondition) string {
	joinerWord := "or"
	if n.Joiner == "AND" {
		joinerWord = "and"
	}
	parts := make([]string, 0, len(n.Conditions))
	for _, c := range n.Conditions {
		parts = append(parts, r.renderCompare(c))
	}
	text := strings.Join(parts, " "+joinerWord+" ")
	n.English = text
	return text
}

func (r *Renderer) renderTypeCheck(n *ast.TypeCheck) string {
	left := r.renderRaw(n.Left)
	text := fmt.Sprintf("%s is %s", left, n.CheckType)
	n.English = text
	return text
}

func (r *Renderer) renderIf(n *ast.If, resolve LabelResolver) string {
	trueLabel, falseLabel := "", ""
	if len(n.TrueBranch) > 0 {
		trueLabel = r.Render(n.TrueBranch[0], resolve)
	}
	if len(n.FalseBranch) > 0 {
		falseLabel = r.Render(n.FalseBranch[0], resolve)
	}

	templateID := n.TemplateID
	if templateID == "" {
		templateID = "IF_COMPARE"
	}

	var ctx map[string]any
	var fallback func() string

	switch cond := n.Condition.(type) {
	case *ast.Compare:
		left, right := r.renderRaw(cond.Left), r.renderRaw(cond.Right)
		ctx = map[string]any{"Left": left, "Op": cond.Op, "Right": right, "TrueLabel": trueLabel, "FalseLabel": falseLabel}
		fallback = func() string { return ifFallback(left+" "+cond.Op+" "+right, trueLabel, falseLabel) }
	case *ast.MultiCondition:
		conds := r.renderMultiCondition(cond)
		ctx = map[string]any{"Conditions": conds, "TrueLabel": trueLabel, "FalseLabel": falseLabel}
		fallback = func() string { return ifFallback(conds, trueLabel, falseLabel) }
	case *ast.TypeCheck:
		left := r.renderRaw(cond.Left)
		ctx = map[string]any{"Left": left, "CheckType": cond.CheckType, "TrueLabel": trueLabel, "FalseLabel": falseLabel}
		fallback = func() string { return ifFallback(left+" is "+cond.CheckType, trueLabel, falseLabel) }
	default:
		ctx = map[string]any{"TrueLabel": trueLabel, "FalseLabel": falseLabel}
		fallback = func() string { return ifFallback("", trueLabel, falseLabel) }
	}

	text := r.exec(templateID, ctx, fallback)
	n.English = text
	return text
}

func ifFallback(cond, trueLabel, falseLabel string) string {
	text := "If " + cond
	if trueLabel != "" {
		text += " Then " + trueLabel
	}
	if falseLabel != "" {
		text += " Else " + falseLabel
	}
	return text
}

func (r *Renderer) renderArithmetic(n *ast.Arithmetic) string {
	left, right := r.renderRaw(n.Left), r.renderRaw(n.Right)
	roundText := ""
	if n.HasRoundSpec {
		roundText = roundLong(n.RoundSpec)
	}
	ctx := map[string]any{
		"Left": left, "Op": n.Op, "Right": right,
		"HasRoundSpec": n.HasRoundSpec, "RoundLong": roundText,
	}
	fallback := func() string {
		text := strings.TrimSpace(fmt.Sprintf("%s %s %s", left, n.Op, right))
		if n.HasRoundSpec {
			text += " (" + roundText + ")"
		}
		return text
	}
	text := r.exec("ARITHMETIC", ctx, fallback)
	n.English = text
	return text
}

func (r *Renderer) renderFunction(n *ast.Function) string {
	args := make([]string, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, r.renderRaw(a))
	}
	argText := strings.Join(args, ", ")
	roundText := ""
	if n.HasRoundSpec {
		roundText = " (" + roundLong(n.RoundSpec) + ")"
	}

	templateID := n.TemplateID
	if templateID == "" {
		templateID = "FUNCTION_CALL"
	}
	ctx := map[string]any{"Name": n.Name, "Args": argText, "RoundLong": roundText}
	fallback := func() string { return fmt.Sprintf("%s(%s)%s", n.Name, argText, roundText) }
	text := r.exec(templateID, ctx, fallback)
	n.English = text
	return text
}

func (r *Renderer) renderAssignment(n *ast.Assignment, resolve LabelResolver) string {
	exprText := r.Render(n.Expr, resolve)
	ctx := map[string]any{"Target": n.Target, "Expr": exprText}
	fallback := func() string { return fmt.Sprintf("Set %s = %s", n.Target, exprText) }
	text := r.exec("ASSIGNMENT", ctx, fallback)

	for _, j := range n.NextTrue {
		r.Render(j, resolve)
	}
	for _, j := range n.NextFalse {
		r.Render(j, resolve)
	}

	n.English = text
	return text
}

// exec looks up and runs the named template, returning fallback() if the
// template is missing or fails to execute.
func (r *Renderer) exec(templateID string, ctx map[string]any, fallback func() string) string {
	t, ok := r.parsed[templateID]
	if !ok {
		return fallback()
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return fallback()
	}
	return buf.String()
}

// roundLong expands a round-spec code (RN, RP2, RM1, R3, ...) into the
// verbose English vocabulary supplementing the opcode's terse suffix; see
// SPEC_FULL.md §4 item 3.
func roundLong(spec string) string {
	switch {
	case spec == "RN":
		return "with no rounding"
	case strings.HasPrefix(spec, "RP"):
		return "rounded up to " + spec[2:] + " decimal places"
	case strings.HasPrefix(spec, "RM"):
		return "truncated to " + spec[2:] + " decimal places"
	case strings.HasPrefix(spec, "R"):
		return "rounded to " + spec[1:] + " decimal places"
	default:
		return spec
	}
}
