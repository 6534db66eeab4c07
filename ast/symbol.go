package ast

// VarSymbol is a local or module-level variable binding.
type VarSymbol struct {
	NodeBase
	SymName  string
	VarType  Type
	DefPoint *DefExpr  // the DefExpr that introduced this symbol
	Uses     []*SymExpr // derived cache, see sema.ComputeSymUses (I6)
}

func (*VarSymbol) symbolNode()    {}
func (s *VarSymbol) Name() string { return s.SymName }

func NewVarSymbol(name string, typ Type) *VarSymbol {
	return &VarSymbol{NodeBase: newNodeBase(), SymName: name, VarType: typ}
}

// ArgSymbol is a function formal parameter.
type ArgSymbol struct {
	NodeBase
	SymName  string
	ArgType  Type
	DefPoint *DefExpr
}

func (*ArgSymbol) symbolNode()    {}
func (s *ArgSymbol) Name() string { return s.SymName }

func NewArgSymbol(name string, typ Type) *ArgSymbol {
	return &ArgSymbol{NodeBase: newNodeBase(), SymName: name, ArgType: typ}
}

// FnSymbol is a function or method. ArgScope is allocated by the
// mutation engine when the symbol is defined (§4.4 rule 4); Formals is
// the ordered list of *DefExpr(*ArgSymbol) nodes inserted under that
// scope. CalledBy is a derived cache (I5) rebuilt by
// sema.ComputeCallSites; it is nil (not merely empty) until first
// computed, so callers can distinguish "never computed" from "computed,
// zero call sites".
type FnSymbol struct {
	NodeBase
	SymName  string
	ArgScope *Scope
	Formals  *AList // ordered *DefExpr(*ArgSymbol)
	RetType  Type
	FnType   Type
	ThisArg  *ArgSymbol // implicit receiver, nil for free functions
	Body     *BlockStmt
	CalledBy []*CallExpr
	DefPoint *DefExpr
}

func (*FnSymbol) symbolNode()    {}
func (s *FnSymbol) Name() string { return s.SymName }

func NewFnSymbol(name string) *FnSymbol {
	return &FnSymbol{
		NodeBase: newNodeBase(),
		SymName:  name,
		Formals:  NewAList(),
		RetType:  DtUnknown,
		FnType:   DtUnknown,
	}
}

// TypeSymbol names a Type. When SymType is a *ClassType, the mutation
// engine allocates that class's StructScope at the same time as
// defining this symbol.
type TypeSymbol struct {
	NodeBase
	SymName  string
	SymType  Type
	DefPoint *DefExpr
}

func (*TypeSymbol) symbolNode()    {}
func (s *TypeSymbol) Name() string { return s.SymName }

func NewTypeSymbol(name string, typ Type) *TypeSymbol {
	return &TypeSymbol{NodeBase: newNodeBase(), SymName: name, SymType: typ}
}

// LabelSymbol is the binding site referenced by GotoStmt.Label.
type LabelSymbol struct {
	NodeBase
	SymName  string
	DefPoint *DefExpr
}

func (*LabelSymbol) symbolNode()    {}
func (s *LabelSymbol) Name() string { return s.SymName }

func NewLabelSymbol(name string) *LabelSymbol {
	return &LabelSymbol{NodeBase: newNodeBase(), SymName: name}
}

// ModuleSymbol is always a tree root (I1): insert_help terminates
// descent on one (§4.4 rule 1), and a nested DefExpr(ModuleSymbol) is
// spliced out to top level rather than left attached under its
// discovering context.
//
// Because a ModuleSymbol never itself passes through insert_help
// (descent stops at rule 1, before any scope would normally be
// allocated for it), ModScope and InitFn can't be lazily allocated the
// way a BlockStmt's or FnSymbol's scope is — NewModuleSymbol allocates
// both up front so astutil has somewhere to attach top-level
// declarations and a "use <outer>" prelude from the moment the module
// exists.
type ModuleSymbol struct {
	NodeBase
	SymName  string
	ModScope *Scope
	InitFn   *FnSymbol
	Body     *AList // top-level *DefExpr declarations
	DefPoint *DefExpr
}

func (*ModuleSymbol) symbolNode()    {}
func (s *ModuleSymbol) Name() string { return s.SymName }

func NewModuleSymbol(name string) *ModuleSymbol {
	m := &ModuleSymbol{NodeBase: newNodeBase(), SymName: name, Body: NewAList()}
	m.ModScope = NewScope(nil, m)
	m.InitFn = NewFnSymbol(name + ".init")
	m.InitFn.Body = NewBlockStmt(ScopelessBlock)
	return m
}

// UnresolvedSymbol is the placeholder a SymExpr or a DefExpr points at
// before scope resolution (or after a lookup failure, with a
// diagnostic already raised). A scope binding to an UnresolvedSymbol
// is the one case Scope.Define silently replaces rather than rejecting
// as a duplicate.
type UnresolvedSymbol struct {
	NodeBase
	SymName string
}

func (*UnresolvedSymbol) symbolNode()    {}
func (s *UnresolvedSymbol) Name() string { return s.SymName }

func NewUnresolvedSymbol(name string) *UnresolvedSymbol {
	return &UnresolvedSymbol{NodeBase: newNodeBase(), SymName: name}
}
