package if1

import (
	"strings"

	"github.com/arclang/ifcore/ast"
)

// CodeKind is the closed set of Code node kinds (§3.3). The order
// matches the original's Code_kind enum (and its Code_kind_string
// table), since the serialiser indexes that table by kind.
type CodeKind int

const (
	CodeSub CodeKind = iota
	CodeMove
	CodeSend
	CodeIf
	CodeLabel
	CodeGoto
	CodeSeq
	CodeConc
	CodeNop
)

var codeKindNames = [...]string{
	CodeSub: "SUB", CodeMove: "MOVE", CodeSend: "SEND", CodeIf: "IF",
	CodeLabel: "LABEL", CodeGoto: "GOTO", CodeSeq: "SEQ", CodeConc: "CONC", CodeNop: "NOP",
}

func (k CodeKind) String() string { return codeKindNames[k] }

// isGroup reports whether k carries a Sub list (is_group() in the
// original): SUB, SEQ, and CONC are the three group kinds
// flatten_code hoists children across.
func (k CodeKind) isGroup() bool {
	switch k {
	case CodeSub, CodeSeq, CodeConc:
		return true
	default:
		return false
	}
}

// Label is a branch target (§3.3): bound by exactly one LABEL code in
// its enclosing closure (J3).
type Label struct {
	ID   int
	Live bool
}

// Code is one IF1 instruction or group (§3.3). Group kinds (SUB, SEQ,
// CONC) use Sub; leaf kinds (MOVE, SEND, IF, LABEL, GOTO, NOP) do not.
// Label[0]/Label[1] hold IF's true/false targets, GOTO's target, or
// LABEL's own binding, depending on Kind.
type Code struct {
	Kind CodeKind

	RVals []*Sym
	LVals []*Sym
	Sub   []*Code
	Label [2]*Label

	AST  ast.Node
	Prim *Primitive

	Live bool
	Dead bool
}

func newCode(kind CodeKind) *Code { return &Code{Kind: kind} }

// Pathname reports the source file Code.AST was generated from, or
// "<unknown>" if it carries no AST back-link.
func (c *Code) Pathname() string {
	if c.AST == nil {
		return "<unknown>"
	}
	return c.AST.Pos().File
}

// Filename is Pathname with any directory component stripped.
func (c *Code) Filename() string {
	fn := c.Pathname()
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		return fn[i+1:]
	}
	return fn
}

// Line reports the source line Code.AST was generated from, or 0.
func (c *Code) Line() int {
	if c.AST == nil {
		return 0
	}
	return c.AST.Pos().Line
}
