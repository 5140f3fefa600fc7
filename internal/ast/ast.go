// Package ast defines the AST node variants the parser assembles: a tagged
// union expressed as a Go interface plus concrete structs, per the teacher's
// visitor-free sum-type convention in spec.md §9 ("tagged variants over
// inheritance"). Every node carries a common header (Step, Opcode,
// TemplateID, English); English is filled once the node is rendered and is
// otherwise empty.
package ast

// Node is implemented by every AST node variant. Exhaustive handling is
// enforced by a type switch at each consumer (internal/render, tests) —
// there is no Accept/Visitor indirection here, unlike the teacher's own
// language AST, because these nodes have no nested statement lists to
// traverse generically; each variant's shape is rendered directly.
type Node interface {
	Header() *Common
	isNode()
}

// Common holds the fields every node variant shares.
type Common struct {
	Step       int
	Opcode     int
	English    string
	TemplateID string
	StepType   *int
}

func (c *Common) Header() *Common { return c }

// Raw is a leaf literal or variable reference.
type Raw struct {
	Common
	Text      string // the original token text, e.g. "GI_573"
	Display   string // the resolved description
	ValueKind string // optional: "TARGET", "VAR", "WORD", ...
}

func (*Raw) isNode() {}

// Compare is a binary comparison: Left ∘ Op ∘ Right.
type Compare struct {
	Common
	Left    *Raw
	Op      string
	Right   *Raw
	CondOp  string // set to the joiner when part of a MultiCondition
}

func (*Compare) isNode() {}

// MultiCondition holds several Compare clauses joined by a single AND/OR.
type MultiCondition struct {
	Common
	Conditions []*Compare
	Joiner     string // "AND" or "OR"
}

func (*MultiCondition) isNode() {}

// TypeCheck is a unary date/numeric/alpha check on a single variable.
type TypeCheck struct {
	Common
	Left      *Raw
	CheckType string // "date", "numeric", "alpha"
}

func (*TypeCheck) isNode() {}

// Condition is implemented by Compare, MultiCondition, and TypeCheck: the
// three shapes an If's condition may take.
type Condition interface {
	Node
	isCondition()
}

func (*Compare) isCondition()        {}
func (*MultiCondition) isCondition() {}
func (*TypeCheck) isCondition()      {}

// If wires a Condition to up to one Jump per branch.
type If struct {
	Common
	Condition   Condition
	TrueBranch  []Node // zero or one Jump
	FalseBranch []Node // zero or one Jump
}

func (*If) isNode() {}

// Arithmetic is Left Op Right with an optional trailing round spec.
type Arithmetic struct {
	Common
	Left          *Raw
	Op            string
	Right         *Raw
	RoundSpec     string
	HasRoundSpec  bool
}

func (*Arithmetic) isNode() {}

// Function is a named call with a variadic argument list and an optional
// round spec (math/trig funcs, CallOut, SetString, DateDifference, ...).
type Function struct {
	Common
	Name         string
	Args         []*Raw
	RoundSpec    string
	HasRoundSpec bool
}

func (*Function) isNode() {}

// Assignment wraps a Function/Arithmetic expr with a target variable and
// the instruction's jump wiring.
type Assignment struct {
	Common
	Var        string
	Expr       Node // *Function or *Arithmetic
	Target     string
	NextTrue   []Node // zero or one Jump
	NextFalse  []Node // zero or one Jump
}

func (*Assignment) isNode() {}

// Jump is a symbolic transfer of control to another step.
type Jump struct {
	Common
	Target int
}

func (*Jump) isNode() {}
