// Package parser assembles typed AST nodes from a tokenized opcode body,
// dispatched by opcode. Grounded on original_source/.../parser.py and
// decode_mif.py.
package parser

import (
	"fmt"
	"strings"

	"github.com/mikegtech/insbridge-decoder/internal/ast"
	"github.com/mikegtech/insbridge-decoder/internal/entities"
	"github.com/mikegtech/insbridge-decoder/internal/lexer"
	"github.com/mikegtech/insbridge-decoder/internal/opcode"
	"github.com/mikegtech/insbridge-decoder/internal/symbols"
)

// Instruction is the minimal instruction shape the parser needs; it
// mirrors entities.Instruction but is passed by value to keep this
// package decoupled from how callers store instructions.
type Instruction struct {
	Step      int
	Opcode    int
	Body      string
	Target    string
	HasTarget bool
	SeqTrue   *int
	SeqFalse  *int
}

// Parse is the main dispatcher: it inspects the instruction's opcode and
// routes to the matching sub-parser, producing the AST nodes for one
// instruction. It never panics on malformed input; degraded fallback
// nodes are produced per spec.md §7.
func Parse(ins Instruction, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	k := opcode.Classify(ins.Opcode)

	if opcode.IsMultiIfCandidate(k) {
		if strings.ContainsAny(ins.Body, "#^+") {
			return decodeMultiIf(ins, k, scope, program)
		}
		return parseIf(ins, k, templateFor(k), scope, program)
	}

	targetDesc := ""
	if ins.HasTarget {
		targetDesc = symbols.Describe(ins.Target, scope, program)
	}

	switch opcode.ParserStrategyFor(k) {
	case opcode.ParseArithmetic:
		return wireAssignmentJumps(ins, k, parseArithmetic(ins, k, scope, program))
	case opcode.ParseCall:
		return parseCall(ins, k, scope, program)
	case opcode.ParseSort:
		return parseSort(ins, k)
	case opcode.ParseMask:
		return parseMask(ins, k)
	case opcode.ParseSetString:
		return wireAssignmentJumps(ins, k, parseSetString(ins, k, targetDesc, scope, program))
	case opcode.ParseNoop:
		return nil
	case opcode.ParseStringConcat:
		return wireAssignmentJumps(ins, k, parseStringAddition(ins, k, targetDesc, scope, program))
	case opcode.ParseDateDiff:
		return parseDateDiff(ins, k, scope, program)
	case opcode.ParseDateAdd:
		return parseDateAddition(ins, k, scope, program)
	case opcode.ParseFunction:
		return parseFunction(ins, k, scope, program)
	case opcode.ParseDataSource:
		return parseDataSource(ins, k, scope, program)
	case opcode.ParseRankFlag:
		return parseRankFlag(ins, k, scope, program)
	case opcode.ParseTypeCheck:
		return parseTypeCheck(ins, k, scope, program)
	default:
		desc := symbols.Describe(ins.Body, scope, program)
		return []ast.Node{&ast.Raw{
			Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode},
			Text:    ins.Body,
			Display: desc,
		}}
	}
}

func templateFor(k opcode.Kind) string {
	if k == opcode.IfDate {
		return "IF_DATE"
	}
	return "IF_COMPARE"
}

// wireAssignmentJumps attaches next_true/next_false Jump nodes to a lone
// Assignment node when the corresponding seq is a concrete (>0) jump
// target, per spec.md §4.4 "Every parser that yields an Assignment
// attaches next_true/next_false ... when the corresponding seq_* > 0" —
// the authoritative reading that supersedes the source's unconditional
// wiring (see DESIGN.md).
func wireAssignmentJumps(ins Instruction, k opcode.Kind, nodes []ast.Node) []ast.Node {
	if len(nodes) == 0 {
		return nodes
	}
	assign, ok := nodes[0].(*ast.Assignment)
	if !ok {
		return nodes
	}
	if ins.SeqTrue != nil && *ins.SeqTrue > 0 {
		assign.NextTrue = []ast.Node{&ast.Jump{
			Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"},
			Target: *ins.SeqTrue,
		}}
	}
	if ins.SeqFalse != nil && *ins.SeqFalse > 0 {
		assign.NextFalse = []ast.Node{&ast.Jump{
			Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"},
			Target: *ins.SeqFalse,
		}}
	}
	return nodes
}

// --- IF / multi-IF -----------------------------------------------------

// parseIf parses a single-clause IF of the form "|LEFT|OP|RIGHT|". Parse
// hands in the full instruction body unmodified; splitIfFragment splits it
// on the pipes.
func parseIf(ins Instruction, k opcode.Kind, templateID string, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	left, op, right := splitIfFragment(ins.Body)

	leftNode := &ast.Raw{
		Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode},
		Text:    left,
		Display: symbols.Describe(left, scope, program),
	}
	rightNode := &ast.Raw{
		Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode},
		Text:    right,
		Display: symbols.Describe(right, scope, program),
	}
	cond := &ast.Compare{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode},
		Left:   leftNode,
		Op:     symbols.Describe(op, scope, program),
		Right:  rightNode,
	}

	node := &ast.If{
		Common:    ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: templateID},
		Condition: cond,
	}
	if ins.SeqTrue != nil && *ins.SeqTrue > 0 {
		node.TrueBranch = []ast.Node{&ast.Jump{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"}, Target: *ins.SeqTrue}}
	}
	if ins.SeqFalse != nil && *ins.SeqFalse > 0 {
		node.FalseBranch = []ast.Node{&ast.Jump{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"}, Target: *ins.SeqFalse}}
	}
	return []ast.Node{node}
}

// splitIfFragment implements the canonical/fallback split described in
// spec.md §4.5 and the MalformedBody policy in §7.3: a clean five-part
// split yields the middle three fragments; four parts (missing a
// trailing pipe) degrades the same way; exactly three parts (no leading
// pipe) treats them positionally; anything else falls back to the whole
// string as left with empty op/right.
// SplitIfFragment is the exported form of splitIfFragment, used by
// internal/decoder to decode an algorithm's assign-filter expression with
// the same pipe-splitting grammar as a single IF clause.
func SplitIfFragment(body string) (left, op, right string) {
	return splitIfFragment(body)
}

func splitIfFragment(body string) (left, op, right string) {
	parts := strings.Split(body, "|")
	switch {
	case len(parts) >= 4:
		return parts[1], parts[2], parts[3]
	case len(parts) == 3:
		return parts[0], parts[1], parts[2]
	default:
		return body, "", ""
	}
}

// decodeMultiIf builds exactly one If node whose condition is a
// MultiCondition joining every sub-clause by a single AND/OR, per
// spec.md §4.5. A malformed fragment is reported as a sibling error Raw
// node after the If.
func decodeMultiIf(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	body := ins.Body
	base := ""
	multiBody := body
	if idx := strings.IndexByte(body, '#'); idx >= 0 {
		base = body[:idx]
		multiBody = body[idx+1:]
	}

	var splitChar byte
	joiner := "OR"
	switch {
	case strings.Contains(multiBody, "^"):
		splitChar, joiner = '^', "OR"
	case strings.Contains(multiBody, "+"):
		splitChar, joiner = '+', "AND"
	}

	var fragments []string
	if strings.TrimSpace(base) != "" {
		fragments = append(fragments, strings.TrimSpace(base))
	}
	if splitChar == 0 {
		if f := strings.TrimSpace(multiBody); f != "" {
			fragments = append(fragments, f)
		}
	} else {
		for _, f := range strings.Split(multiBody, string(splitChar)) {
			if t := strings.TrimSpace(f); t != "" {
				fragments = append(fragments, t)
			}
		}
	}

	var conditions []*ast.Compare
	var errs []ast.Node
	for _, frag := range fragments {
		cond, err := parseCompareFragment(ins, k, frag, scope, program)
		if err != nil {
			errs = append(errs, &ast.Raw{
				Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode},
				Display: fmt.Sprintf("ERROR: %s", err),
			})
			continue
		}
		cond.CondOp = joiner
		conditions = append(conditions, cond)
	}

	multi := &ast.MultiCondition{
		Common:     ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "MULTI_IF"},
		Conditions: conditions,
		Joiner:     joiner,
	}

	node := &ast.If{
		Common:    ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "MULTI_IF"},
		Condition: multi,
	}
	if ins.SeqTrue != nil && *ins.SeqTrue > 0 {
		node.TrueBranch = []ast.Node{&ast.Jump{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"}, Target: *ins.SeqTrue}}
	}
	if ins.SeqFalse != nil && *ins.SeqFalse > 0 {
		node.FalseBranch = []ast.Node{&ast.Jump{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"}, Target: *ins.SeqFalse}}
	}

	out := []ast.Node{node}
	return append(out, errs...)
}

// parseCompareFragment parses one multi-IF sub-clause ("|VAR|OP|VAR|")
// into a Compare node.
func parseCompareFragment(ins Instruction, k opcode.Kind, frag string, scope entities.Scope, program *entities.ProgramVersion) (*ast.Compare, error) {
	left, op, right := splitIfFragment(frag)
	if left == "" && op == "" && right == "" && frag != "" {
		return nil, fmt.Errorf("malformed IF fragment %q", frag)
	}
	leftNode := &ast.Raw{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: left, Display: symbols.Describe(left, scope, program)}
	rightNode := &ast.Raw{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: right, Display: symbols.Describe(right, scope, program)}
	return &ast.Compare{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode},
		Left:   leftNode,
		Op:     symbols.Describe(op, scope, program),
		Right:  rightNode,
	}, nil
}

// --- Arithmetic ----------------------------------------------------------

func parseArithmetic(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	toks, roundSpec, hasRound := stripTrailingRound(toks)
	// With an explicit target the scan tokenizer prepends TARGET and "="
	// tokens; the operands follow them.
	if len(toks) >= 2 && toks[0].Kind == lexer.Target {
		toks = toks[2:]
	}

	if len(toks) < 3 {
		return []ast.Node{&ast.Raw{
			Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode},
			Display: joinTokenValues(toks),
		}}
	}

	leftVal, opVal, rightVal := toks[0].Text, toks[1].Text, toks[2].Text
	leftNode := &ast.Raw{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: leftVal, Display: symbols.Describe(leftVal, scope, program)}
	rightNode := &ast.Raw{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: rightVal, Display: symbols.Describe(rightVal, scope, program)}

	arith := &ast.Arithmetic{
		Common:       ast.Common{Step: ins.Step, Opcode: ins.Opcode},
		Left:         leftNode,
		Op:           opVal,
		Right:        rightNode,
		RoundSpec:    roundSpec,
		HasRoundSpec: hasRound,
	}

	assign := &ast.Assignment{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "ASSIGNMENT"},
		Var:    ins.Target,
		Expr:   arith,
		Target: ins.Target,
	}
	return []ast.Node{assign}
}

// stripTrailingRound removes a trailing "!<token>" round spec from a
// token list, per spec.md §4.4 "Round-spec extraction".
func stripTrailingRound(toks []lexer.Token) ([]lexer.Token, string, bool) {
	if len(toks) == 0 {
		return toks, "", false
	}
	last := toks[len(toks)-1]
	if strings.HasPrefix(last.Text, "!") {
		return toks[:len(toks)-1], last.Text[1:], true
	}
	if last.Kind == lexer.Round {
		return toks[:len(toks)-1], last.Text, true
	}
	return toks, "", false
}

func joinTokenValues(toks []lexer.Token) string {
	vals := make([]string, len(toks))
	for i, t := range toks {
		vals[i] = t.Text
	}
	return strings.Join(vals, " ")
}

// --- Call / Sort / Mask / Empty -----------------------------------------

func parseCall(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	args := make([]*ast.Raw, 0, len(toks))
	for _, t := range toks {
		args = append(args, &ast.Raw{
			Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode},
			Text:    t.Text,
			Display: t.Description,
		})
	}
	fn := &ast.Function{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "FUNCTION_CALL"},
		Name:   "CallOut",
		Args:   args,
	}
	return []ast.Node{fn}
}

func parseSort(ins Instruction, k opcode.Kind) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	return []ast.Node{&ast.Raw{
		Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "FUNCTION_CALL"},
		Display: "Sort: " + joinTokenValues(toks),
	}}
}

func parseMask(ins Instruction, k opcode.Kind) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	return []ast.Node{&ast.Raw{
		Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "MASK"},
		Display: "Mask: " + joinTokenValues(toks),
	}}
}

// --- SET_STRING / STRING_CONCAT ------------------------------------------

func parseSetString(ins Instruction, k opcode.Kind, targetDesc string, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	return []ast.Node{buildStringAssignment(ins, k, "SetString", targetDesc, scope, program)}
}

func parseStringAddition(ins Instruction, k opcode.Kind, targetDesc string, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	return []ast.Node{buildStringAssignment(ins, k, "StringAddition", targetDesc, scope, program)}
}

func buildStringAssignment(ins Instruction, k opcode.Kind, fnName, targetDesc string, scope entities.Scope, program *entities.ProgramVersion) ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	args := make([]*ast.Raw, 0, len(toks))
	for _, t := range toks {
		display := targetDesc
		if t.Kind != lexer.Target {
			display = symbols.Describe(t.Text, scope, program)
		}
		args = append(args, &ast.Raw{
			Common:    ast.Common{Step: ins.Step, Opcode: ins.Opcode},
			Text:      t.Text,
			Display:   display,
			ValueKind: kindName(t.Kind),
		})
	}
	fn := &ast.Function{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "STRING_CONCAT"},
		Name:   fnName,
		Args:   args,
	}
	return &ast.Assignment{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "ASSIGNMENT"},
		Var:    ins.Target,
		Expr:   fn,
		Target: targetDesc,
	}
}

func kindName(k lexer.Kind) string {
	switch k {
	case lexer.Target:
		return "TARGET"
	case lexer.Var:
		return "VAR"
	case lexer.Op:
		return "OP"
	case lexer.Round:
		return "ROUND"
	default:
		return "WORD"
	}
}

// --- Date functions --------------------------------------------------------

func parseDateDiff(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	left, right := "", ""
	if len(toks) >= 1 {
		left = toks[0].Text
	}
	if len(toks) >= 2 {
		right = toks[1].Text
	}
	fn := &ast.Function{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "DATE_DIFF"},
		Name:   "DateDifference",
		Args: []*ast.Raw{
			{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: left, Display: symbols.Describe(left, scope, program)},
			{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: right, Display: symbols.Describe(right, scope, program)},
		},
	}
	return []ast.Node{fn}
}

func parseDateAddition(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	dateVal, offsetVal := "", ""
	if len(toks) >= 1 {
		dateVal = toks[0].Text
	}
	if len(toks) >= 2 {
		offsetVal = toks[1].Text
	}
	fn := &ast.Function{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "DATE_DIFF"},
		Name:   "DateAddition",
		Args: []*ast.Raw{
			{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: dateVal, Display: dateVal},
			{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: offsetVal, Display: offsetVal},
		},
	}
	return []ast.Node{fn}
}

// --- Math / trig functions --------------------------------------------------

var friendlyFuncNames = map[opcode.Kind]string{
	opcode.MathExp:   "Power",
	opcode.MathLog:   "Natural Log",
	opcode.MathLog10: "Log Base 10",
	opcode.MathExpE:  "Exponential",
	opcode.MathSqrt:  "Square Root",
	opcode.TrigCos:   "Cosine",
	opcode.TrigSin:   "Sine",
	opcode.TrigTan:   "Tangent",
	opcode.TrigCosh:  "Hyperbolic Cosine",
	opcode.TrigSinh:  "Hyperbolic Sine",
	opcode.TrigTanh:  "Hyperbolic Tangent",
}

func parseFunction(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	toks, roundSpec, hasRound := stripTrailingRound(toks)

	args := make([]*ast.Raw, 0, len(toks))
	for _, t := range toks {
		args = append(args, &ast.Raw{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: t.Text, Display: t.Text})
	}

	name, ok := friendlyFuncNames[k]
	if !ok {
		name = k.String()
	}

	fn := &ast.Function{
		Common:       ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "FUNCTION_CALL"},
		Name:         name,
		Args:         args,
		RoundSpec:    roundSpec,
		HasRoundSpec: hasRound,
	}
	return []ast.Node{fn}
}

// --- Data source / rank-flag / type-check -----------------------------------

func parseDataSource(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	args := make([]*ast.Raw, 0, len(toks))
	for _, t := range toks {
		args = append(args, &ast.Raw{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode}, Text: t.Text, Display: t.Text})
	}
	fn := &ast.Function{
		Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "QUERY_DATA_SOURCE"},
		Name:   "DataSource",
		Args:   args,
	}
	return []ast.Node{fn}
}

func parseRankFlag(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)
	actionText := titleCase(strings.ReplaceAll(k.String(), "_", " "))

	var expanded []string
	for _, t := range toks {
		if strings.Contains(t.Text, "GI_") || strings.Contains(t.Text, "GC_") {
			expanded = append(expanded, symbols.Describe(t.Text, scope, program))
		} else {
			expanded = append(expanded, t.Text)
		}
	}
	if len(expanded) > 0 {
		actionText += ": " + strings.Join(expanded, ", ")
	}

	templateID := "RANK_FLAG"
	if k == opcode.RankCategoryAvail {
		templateID = "RANK_ACROSS_CATEGORY_ALL_AVAILABLE_ALT"
	}
	return []ast.Node{&ast.Raw{
		Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: templateID},
		Text:    actionText,
		Display: symbols.Describe(actionText, scope, program),
	}}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

var typeCheckKind = map[opcode.Kind]string{
	opcode.IsDate:    "date",
	opcode.IsNumeric: "numeric",
	opcode.IsAlpha:   "alpha",
}

func parseTypeCheck(ins Instruction, k opcode.Kind, scope entities.Scope, program *entities.ProgramVersion) []ast.Node {
	toks := lexer.Tokenize(ins.Body, k, ins.Target, ins.HasTarget)

	// The tilde-then-pipe tokenizer leaves an empty leading field when a
	// pipe directly follows the tilde, e.g. "~|GI_9" tokenizes to
	// ["", "GI_9"]. Skip that placeholder field and
	// use the next one as the checked variable.
	var leftRaw string
	if len(toks) > 1 && toks[0].Text == "" {
		leftRaw = toks[1].Text
	} else if len(toks) > 0 {
		leftRaw = toks[0].Text
	}

	leftNode := &ast.Raw{
		Common:  ast.Common{Step: ins.Step, Opcode: ins.Opcode},
		Text:    leftRaw,
		Display: symbols.Describe(leftRaw, scope, program),
	}

	checkType, ok := typeCheckKind[k]
	if !ok {
		checkType = strings.ToLower(k.String())
	}

	cond := &ast.TypeCheck{
		Common:    ast.Common{Step: ins.Step, Opcode: ins.Opcode},
		Left:      leftNode,
		CheckType: checkType,
	}

	node := &ast.If{
		Common:    ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "TYPE_CHECK"},
		Condition: cond,
	}
	if ins.SeqTrue != nil && *ins.SeqTrue > 0 {
		node.TrueBranch = []ast.Node{&ast.Jump{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"}, Target: *ins.SeqTrue}}
	}
	if ins.SeqFalse != nil && *ins.SeqFalse > 0 {
		node.FalseBranch = []ast.Node{&ast.Jump{Common: ast.Common{Step: ins.Step, Opcode: ins.Opcode, TemplateID: "JUMP"}, Target: *ins.SeqFalse}}
	}
	return []ast.Node{node}
}

// parseRoundSuffix splits a raw string at its first '!' into base text and
// a round spec starting with 'R'. It is unexported and nothing in this
// package calls it.
func parseRoundSuffix(s string) (base, round string, ok bool) {
	idx := strings.IndexByte(s, '!')
	if idx < 0 {
		return s, "", false
	}
	tail := s[idx+1:]
	if tail == "" {
		return s, "", false
	}
	if strings.HasPrefix(tail, "R") {
		return s[:idx], tail, true
	}
	return s, "", false
}
