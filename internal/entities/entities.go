// Package entities holds the read-only data shapes the decoder consumes:
// program versions, algorithms, dependency chains, and the instructions
// themselves. Nothing here parses XML or touches the filesystem — a
// caller populates these and hands them to internal/decoder; see
// SPEC_FULL.md §4.5 for why these fields exist and §5 for the ZIP/XML
// boundary these stop short of.
package entities

// IBType discriminates a DependencyBase's concrete role, mirroring the
// Python entities' `ib_type` literal discriminator.
type IBType string

const (
	IBCalculatedA IBType = "10"
	IBCalculatedB IBType = "3"
	IBTableA      IBType = "6"
	IBTableB      IBType = "9"
	IBResultA     IBType = "8"
	IBResultB     IBType = "16"
	IBInput       IBType = "4"
)

// Instruction is one algorithm step: {step, opcode, body, target, seq_true,
// seq_false} per spec.md §3. AST is filled in place by the tree driver.
type Instruction struct {
	Step     int
	Opcode   int
	Body     string
	Target   string
	HasTarget bool
	SeqTrue  *int
	SeqFalse *int

	AST []any
}

// DependencyBase is a named, indexed dependency variable: a calculated
// value, a table variable, a result variable, or (rarely) an input alias.
// It may itself carry nested dependency_vars (only calculated variables
// are descended into by the tree driver, per spec.md §4.7).
type DependencyBase struct {
	Description    string
	Index          int
	CalcIndex      int
	HasCalcIndex   bool
	IBType         IBType
	DependencyVars []*DependencyBase
	Steps          []*Instruction
}

// IsCalculatedVariable reports whether this dependency resolves under the
// PC/GC/PP/GP variable-token families (by calc_index).
func (d *DependencyBase) IsCalculatedVariable() bool {
	return d.IBType == IBCalculatedA || d.IBType == IBCalculatedB
}

// IsResultVariable reports whether this dependency resolves under the
// GR/PR variable-token families (by index).
func (d *DependencyBase) IsResultVariable() bool {
	return d.IBType == IBResultA || d.IBType == IBResultB
}

// IsTableVariable reports whether this dependency resolves under the
// PL/GL/PQ/GQ variable-token families (by index).
func (d *DependencyBase) IsTableVariable() bool {
	return d.IBType == IBTableA || d.IBType == IBTableB
}

// Algorithm is a named sequence of instructions plus the dependency list
// that forms its variable scope.
type Algorithm struct {
	Description    string
	Index          int
	AssignFilter   string
	DependencyVars []*DependencyBase
	Steps          []*Instruction
}

// AlgorithmSequence orders an Algorithm within a ProgramVersion.
type AlgorithmSequence struct {
	SequenceNumber int
	Algorithm      *Algorithm
}

// InputVariable is one entry in a program version's global-input data
// dictionary, matched by (Index, Line) per spec.md §4.2 rule 4.
type InputVariable struct {
	Index       int
	Line        string
	Description string
}

// DataDictionary holds the program version's global-input catalogue.
type DataDictionary struct {
	Inputs []InputVariable
}

// ProgramVersion is one snapshot of a rating program: its data dictionary
// plus the ordered algorithm sequence the tree driver walks.
type ProgramVersion struct {
	PrimaryKey   string
	ProgramID    string
	Line         string
	Version      int
	DataDictionary DataDictionary
	AlgorithmSeq []AlgorithmSequence
}

// Scope is anything the symbol resolver can search for a matching
// dependency: an *Algorithm (top-level scope) or a *DependencyBase
// (nested calculated-variable scope). Go has no tagged union for this,
// so callers pass []*DependencyBase directly — see internal/symbols.
type Scope = []*DependencyBase
