package ast

// SymExpr is a reference to a symbol: Var starts out pointing at an
// UnresolvedSymbol placeholder and is replaced by the scope-resolution
// pass (§4.3) once the name is looked up.
type SymExpr struct {
	NodeBase
	Var Symbol
}

func (*SymExpr) exprNode() {}

// NewSymExpr builds a reference to sym (or, before resolution, to an
// UnresolvedSymbol).
func NewSymExpr(sym Symbol) *SymExpr {
	return &SymExpr{NodeBase: newNodeBase(), Var: sym}
}

// DefExpr introduces Sym into the scope it is inserted under (§4.4
// rule 4). DefPoint on the introduced symbol is set back to this
// DefExpr by NewDefExpr at construction time, the same moment the
// source's DefExpr constructor does it — insert_help only ever
// derives the scope the symbol is bound into, never the defPoint
// back-link itself.
type DefExpr struct {
	NodeBase
	Sym Symbol
}

func (*DefExpr) exprNode() {}

// NewDefExpr wraps sym in a defining occurrence, stamping sym's own
// DefPoint back to the new DefExpr.
func NewDefExpr(sym Symbol) *DefExpr {
	def := &DefExpr{NodeBase: newNodeBase(), Sym: sym}
	setDefPoint(sym, def)
	return def
}

// setDefPoint stamps def onto whichever per-variant DefPoint field sym
// carries. Every symbol variant has one; the switch exists because the
// field isn't part of the common Symbol interface.
func setDefPoint(sym Symbol, def *DefExpr) {
	switch s := sym.(type) {
	case *VarSymbol:
		s.DefPoint = def
	case *ArgSymbol:
		s.DefPoint = def
	case *FnSymbol:
		s.DefPoint = def
	case *TypeSymbol:
		s.DefPoint = def
	case *LabelSymbol:
		s.DefPoint = def
	case *ModuleSymbol:
		s.DefPoint = def
	}
}

// CallExpr is a call or primitive operation: Callee is evaluated then
// applied to Actuals. Resolved becomes true once overload resolution
// (external to this core) has bound Callee to a concrete FnSymbol;
// Primitive marks a call recognised as a builtin operation rather than
// a user-defined function call.
type CallExpr struct {
	NodeBase
	Callee    Expr
	Actuals   *AList // ordered list of Expr, possibly containing *NamedExpr
	Primitive bool
	Resolved  bool
}

func (*CallExpr) exprNode() {}

// NewCallExpr builds an unresolved, non-primitive call.
func NewCallExpr(callee Expr) *CallExpr {
	return &CallExpr{NodeBase: newNodeBase(), Callee: callee, Actuals: NewAList()}
}

// FindFnSymbol reports the FnSymbol this call targets, if its callee
// is a direct symbol reference to one. compute_call_sites (§4.5) uses
// exactly this to decide membership in FnSymbol.CalledBy.
func (c *CallExpr) FindFnSymbol() (*FnSymbol, bool) {
	se, ok := c.Callee.(*SymExpr)
	if !ok {
		return nil, false
	}
	fn, ok := se.Var.(*FnSymbol)
	return fn, ok
}

// NamedExpr is a named-argument actual (label = actual) produced by
// the parser for keyword-argument call syntax; remove_named_exprs
// (§4.5) strips these down to their Actual once overload resolution no
// longer needs the label.
type NamedExpr struct {
	NodeBase
	Label  string
	Actual Expr
}

func (*NamedExpr) exprNode() {}

// NewNamedExpr builds label = actual.
func NewNamedExpr(label string, actual Expr) *NamedExpr {
	return &NamedExpr{NodeBase: newNodeBase(), Label: label, Actual: actual}
}
