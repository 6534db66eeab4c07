// Package if1 implements the IF1 intermediate representation (§3.3,
// §4.6-4.8): a block-oriented IR of labels, gotos, branches, and sends
// over closures, a stateful construction API, fixed-point liveness
// analysis with dead-code elimination, and a canonical S-expression
// serialiser. Grounded directly on
// _examples/original_source/compiler/analysis/if1.cpp.
package if1

import "github.com/cockroachdb/apd/v3"

// TypeKind classifies what kind of thing a Sym's own Type denotes,
// mirroring IF1's type_kind field (§3.3).
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypePrimitive
	TypeRecord
)

// Immediate holds the decimal value of a numeric constant Sym;
// Builder.Const sets it for every constant whose type is numeric. The
// serialiser prints it in place of the literal Constant text when that
// text begins with '<' (§3 Supplemented features), the same branch
// if1_write's print_syms takes (`s->constant[0] != '<'`).
type Immediate struct {
	Decimal apd.Decimal
	Set     bool
}

func (im Immediate) String() string {
	if !im.Set {
		return "<none>"
	}
	return im.Decimal.String()
}

// Sym is an IF1 symbol (§3.3): a variable, temporary, constant, or
// closure. Has/Implements/Includes/Constraints are relation vectors
// liveness propagates through (mark_sym_live); Code is non-nil only
// for a closure registered via Builder.Closure.
type Sym struct {
	ID int

	Name string

	IsConstant bool
	Constant   string // canonical text, already through the builder's interner

	IsSymbol     bool
	IsBuiltin    bool
	IsValueClass bool

	Type    *Sym
	TypeSym *Sym

	TypeKind TypeKind
	Signed   bool
	BitWidth int

	In *Sym

	Has         []*Sym
	Implements  []*Sym
	Includes    []*Sym
	Constraints *[]*Sym

	Ret    *Sym
	Cont   *Sym
	Aspect *Sym

	Code *Code

	Live bool
	Imm  Immediate
}

// IsNumeric reports whether s denotes a sized integer or float type —
// the primitive kinds set_primitive_types stamps — as opposed to bool
// or a non-primitive type.
func (s *Sym) IsNumeric() bool {
	return s.TypeKind == TypePrimitive && s.Name != "bool" && s.BitWidth > 0
}
