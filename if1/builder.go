package if1

import (
	"github.com/arclang/ifcore/ast"
	"github.com/arclang/ifcore/diag"
	"github.com/arclang/ifcore/intern"
)

// Config holds the builder's process-level switches — the flags the
// original exposes as globals (e.g. fdce_if1 in if1.cpp): whether
// Finalize runs dead-code elimination or marks every symbol live.
type Config struct {
	DCE bool
}

// Builder is the stateful IF1 construction API (§4.6): it owns every
// table the original IF1 singleton holds (allsyms, allclosures,
// alllabels, the string interner, the constants/symbols/builtins
// tables), encapsulated as a value per the "Global mutable state"
// re-architecture note (§9) rather than a process-global singleton.
type Builder struct {
	Strings *intern.Table

	AllSyms     []*Sym
	AllClosures []*Sym
	AllLabels   []*Label

	Constants    map[intern.ID]*Sym
	Symbols      map[intern.ID]*Sym
	Builtins     map[intern.ID]*Sym
	BuiltinNames map[*Sym]string

	Primitives *PrimitiveRegistry

	Top *Sym

	symSymbol *Sym // bootstrap: the first MakeSymbol result, self-typed

	Config Config
}

// NewBuilder returns an empty builder configured per cfg.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		Strings:      intern.NewTable(),
		Constants:    make(map[intern.ID]*Sym),
		Symbols:      make(map[intern.ID]*Sym),
		Builtins:     make(map[intern.ID]*Sym),
		BuiltinNames: make(map[*Sym]string),
		Primitives:   NewPrimitiveRegistry(),
		Config:       cfg,
	}
}

// register assigns sym the next sequential id and appends it to
// AllSyms, upholding J1 ("every Sym used in any Code is registered in
// allsyms exactly once") for every Sym this builder hands out —
// including constants and operator results, which the original's
// if1_const/if1_operator create via a bare new_Sym() rather than
// if1_register_sym; new_Sym in the original is assumed to perform its
// own equivalent registration, since otherwise J1 could not hold.
func (b *Builder) register(sym *Sym) *Sym {
	sym.ID = len(b.AllSyms)
	b.AllSyms = append(b.AllSyms, sym)
	return sym
}

func (b *Builder) newSym() *Sym {
	return b.register(&Sym{})
}

// RegisterSym assigns sym an id and, if name is non-empty, interns and
// stores its canonical name (if1_register_sym).
func (b *Builder) RegisterSym(sym *Sym, name string) *Sym {
	b.register(sym)
	if name != "" {
		sym.Name = b.Strings.Str(b.Strings.Intern(name))
	}
	return sym
}

// Const returns the canonical constant Sym of type typ denoted by
// text (J5, if1_const): equal (type, canonical text) pairs share one
// Sym. Canonicalisation runs text through apd.Decimal when typ looks
// numeric, so "1.0" and "1" converge on the same constant.
func (b *Builder) Const(typ *Sym, text string) *Sym {
	if typ == nil {
		diag.Internalf(nil, "if1: Const requires a non-nil type")
	}
	typ = unaliasType(typ)
	canon, dec, numeric := canonicalConstantText(typ, text)
	id := b.Strings.Intern(canon)
	if sym, ok := b.Constants[id]; ok {
		if sym.Type != typ {
			diag.Internalf(nil, "if1: constant %q registered under conflicting types", text)
		}
		return sym
	}
	sym := b.newSym()
	sym.IsConstant = true
	sym.Constant = b.Strings.Str(id)
	sym.Type = typ
	if numeric {
		sym.Imm = Immediate{Decimal: dec, Set: true}
	}
	b.Constants[id] = sym
	return sym
}

// MakeSymbol returns the interned, uniqued "symbol literal" Sym named
// name (if1_make_symbol). The first call bootstraps the self-typed
// sym_symbol type every subsequent symbol literal is typed with.
func (b *Builder) MakeSymbol(name string) *Sym {
	id := b.Strings.Intern(name)
	if s, ok := b.Symbols[id]; ok {
		return s
	}
	s := b.newSym()
	s.Name = b.Strings.Str(id)
	s.TypeKind = TypePrimitive
	s.IsSymbol = true
	s.TypeSym = s
	if b.symSymbol == nil {
		b.symSymbol = s
	}
	s.Type = b.symSymbol
	b.Symbols[id] = s
	return s
}

// SetSymbolsType retypes every registered symbol literal to the
// bootstrap sym_symbol type (if1_set_symbols_type) — used when that
// bootstrap type is discovered or replaced after some symbol literals
// were already created.
func (b *Builder) SetSymbolsType() {
	for _, s := range b.Symbols {
		if s != nil {
			s.Type = b.symSymbol
		}
	}
}

// SetBuiltin registers sym as the named builtin. Re-registering the
// same Sym under the same name is a no-op; registering a different Sym
// under a name already taken is fatal (if1_set_builtin).
func (b *Builder) SetBuiltin(sym *Sym, name string) {
	id := b.Strings.Intern(name)
	if existing, ok := b.Builtins[id]; ok {
		if existing == sym {
			return
		}
		diag.Internalf(nil, "if1: duplicate builtin %q", name)
	}
	sym.IsBuiltin = true
	b.Builtins[id] = sym
	b.BuiltinNames[sym] = b.Strings.Str(id)
}

// GetBuiltin looks up a named builtin (if1_get_builtin).
func (b *Builder) GetBuiltin(name string) (*Sym, bool) {
	id := b.Strings.Intern(name)
	s, ok := b.Builtins[id]
	return s, ok
}

func appendInto(into **Code, cc *Code) {
	if into == nil {
		return
	}
	if *into == nil {
		*into = newCode(CodeSub)
	}
	(*into).Sub = append((*into).Sub, cc)
}

// Nop emits a no-op (if1_nop).
func (b *Builder) Nop(into **Code) *Code {
	cc := newCode(CodeNop)
	appendInto(into, cc)
	return cc
}

// Gen appends cc to into unwrapped (if1_gen); a nil cc is a no-op.
func (b *Builder) Gen(into **Code, cc *Code) {
	if cc == nil {
		return
	}
	appendInto(into, cc)
}

// Seq wraps cc in a SEQ group and appends that to into (if1_seq).
func (b *Builder) Seq(into **Code, cc *Code) {
	if cc == nil {
		return
	}
	wrap := newCode(CodeSeq)
	wrap.Sub = append(wrap.Sub, cc)
	appendInto(into, wrap)
}

// Conc wraps cc in a CONC group and appends that to into (if1_conc).
func (b *Builder) Conc(into **Code, cc *Code) {
	if cc == nil {
		return
	}
	wrap := newCode(CodeConc)
	wrap.Sub = append(wrap.Sub, cc)
	appendInto(into, wrap)
}

// Move emits MOVE dst <- src (if1_move).
func (b *Builder) Move(into **Code, src, dst *Sym, node ast.Node) *Code {
	if src == nil || dst == nil {
		diag.Internalf(node, "if1: Move requires non-nil src and dst")
	}
	cc := newCode(CodeMove)
	cc.RVals = append(cc.RVals, src)
	cc.LVals = append(cc.LVals, dst)
	cc.AST = node
	appendInto(into, cc)
	return cc
}

// Goto emits an unconditional branch to label, which may be nil and
// filled in later via SetGoto (if1_goto).
func (b *Builder) Goto(into **Code, label *Label) *Code {
	cc := newCode(CodeGoto)
	cc.Label[0] = label
	appendInto(into, cc)
	return cc
}

// AllocLabel reserves a fresh, unbound label (if1_alloc_label).
func (b *Builder) AllocLabel() *Label {
	l := &Label{ID: len(b.AllLabels)}
	b.AllLabels = append(b.AllLabels, l)
	return l
}

// Label binds label (or a freshly allocated one, if nil) at this point
// in into, returning the bound label (if1_label). Every label is bound
// exactly once (J3); into must be non-nil.
func (b *Builder) Label(into **Code, node ast.Node, label *Label) *Label {
	if into == nil {
		diag.Internalf(node, "if1: Label requires a destination")
	}
	cc := newCode(CodeLabel)
	cc.AST = node
	if label == nil {
		label = b.AllocLabel()
	}
	cc.Label[0] = label
	if *into == nil {
		*into = newCode(CodeSub)
	}
	(*into).Sub = append((*into).Sub, cc)
	return cc.Label[0]
}

// Operator emits a SEND over up to three operands and returns a fresh
// result symbol (if1_operator).
func (b *Builder) Operator(into **Code, a1, a2, a3 *Sym) *Sym {
	cc := newCode(CodeSend)
	res := b.newSym()
	if a1 != nil {
		cc.RVals = append(cc.RVals, a1)
	}
	if a2 != nil {
		cc.RVals = append(cc.RVals, a2)
	}
	if a3 != nil {
		cc.RVals = append(cc.RVals, a3)
	}
	cc.LVals = append(cc.LVals, res)
	appendInto(into, cc)
	if len(cc.RVals) == 0 {
		diag.Internalf(nil, "if1: Operator send has no operands")
	}
	return res
}

// Send emits a SEND over explicit argument and result vectors
// (if1_send); args must be non-empty (J4).
func (b *Builder) Send(into **Code, args, results []*Sym) *Code {
	send := newCode(CodeSend)
	send.RVals = append(send.RVals, args...)
	send.LVals = append(send.LVals, results...)
	appendInto(into, send)
	if len(send.RVals) == 0 {
		diag.Internalf(nil, "if1: Send requires at least one argument")
	}
	return send
}

// Send1 emits an empty SEND that AddSendArg/AddSendResult fill in
// afterward (if1_send1).
func (b *Builder) Send1(into **Code) *Code {
	send := newCode(CodeSend)
	appendInto(into, send)
	return send
}

// AddSendArg appends a to c's rvals (if1_add_send_arg).
func (b *Builder) AddSendArg(c *Code, a *Sym) { c.RVals = append(c.RVals, a) }

// AddSendResult appends r to c's lvals (if1_add_send_result).
func (b *Builder) AddSendResult(c *Code, r *Sym) { c.LVals = append(c.LVals, r) }

// IfGoto emits a conditional branch over cond, with both targets
// unbound until IfLabelTrue/IfLabelFalse fill them in (if1_if_goto).
func (b *Builder) IfGoto(into **Code, cond *Sym, node ast.Node) *Code {
	if cond == nil {
		diag.Internalf(node, "if1: IfGoto requires a condition symbol")
	}
	cc := newCode(CodeIf)
	cc.AST = node
	cc.RVals = append(cc.RVals, cond)
	appendInto(into, cc)
	return cc
}

// SetGoto rebinds an already-emitted GOTO's target (if1_set_goto).
func (b *Builder) SetGoto(g *Code, label *Label) {
	if g.Kind != CodeGoto {
		diag.Internalf(nil, "if1: SetGoto on non-GOTO code")
	}
	g.Label[0] = label
}

// IfLabelTrue sets ifCode's true-branch target (if1_if_label_true).
func (b *Builder) IfLabelTrue(ifCode *Code, label *Label, node ast.Node) {
	if ifCode.Kind != CodeIf {
		diag.Internalf(node, "if1: IfLabelTrue on non-IF code")
	}
	ifCode.Label[0] = label
	ifCode.AST = node
}

// IfLabelFalse sets ifCode's false-branch target (if1_if_label_false).
func (b *Builder) IfLabelFalse(ifCode *Code, label *Label, node ast.Node) {
	if ifCode.Kind != CodeIf {
		diag.Internalf(node, "if1: IfLabelFalse on non-IF code")
	}
	ifCode.Label[1] = label
	ifCode.AST = node
}

// If synthesises a full if/then/else (if1_if), threading result
// through both arms via MOVE when both an arm and result symbol are
// given.
func (b *Builder) If(into **Code, cond *Code, condVar *Sym, thenCode *Code, thenVar *Sym, elseCode *Code, elseVar, result *Sym, node ast.Node) *Code {
	b.Gen(into, cond)
	ifCode := b.IfGoto(into, condVar, node)
	ifCode.AST = node
	b.IfLabelTrue(ifCode, b.Label(into, node, nil), node)
	b.Gen(into, thenCode)
	if thenVar != nil && result != nil {
		b.Move(into, thenVar, result, node)
	}
	if elseCode != nil || elseVar != nil {
		ifGoto := b.Goto(into, nil)
		ifGoto.AST = node
		b.IfLabelFalse(ifCode, b.Label(into, node, nil), node)
		b.Gen(into, elseCode)
		if elseVar != nil && result != nil {
			b.Move(into, elseVar, result, node)
		}
		b.SetGoto(ifGoto, b.Label(into, node, nil))
	} else {
		b.IfLabelFalse(ifCode, b.Label(into, node, nil), node)
	}
	return ifCode
}

// Loop synthesises a loop (if1_loop): a pre-test loop in general, but
// a post-test (do-while) loop when before and body are the same *Code
// by pointer identity — matching the original's raw `before == body`
// comparison rather than any value equality.
func (b *Builder) Loop(into **Code, cont, brk *Label, condVar *Sym, before, cond, after, body *Code, node ast.Node) *Code {
	var ifGoto *Code
	doWhile := before == body
	if doWhile {
		b.Label(into, node, cont)
		b.Gen(into, body)
		b.Gen(into, after)
		b.Gen(into, cond)
		ifGoto = b.IfGoto(into, condVar, node)
		ifGoto.AST = node
		b.IfLabelTrue(ifGoto, cont, node)
	} else {
		b.Gen(into, before)
		b.Label(into, node, cont)
		b.Gen(into, cond)
		ifGoto = b.IfGoto(into, condVar, node)
		ifGoto.AST = node
		b.IfLabelTrue(ifGoto, b.Label(into, node, nil), node)
		b.Gen(into, body)
		b.Gen(into, after)
		b.Goto(into, cont)
	}
	b.IfLabelFalse(ifGoto, brk, node)
	b.Label(into, node, brk)
	return ifGoto
}

// Closure registers f as a closure with body code over args
// (if1_closure).
func (b *Builder) Closure(f *Sym, code *Code, args []*Sym) *Sym {
	f.Has = append(f.Has, args...)
	f.Code = code
	b.AllClosures = append(b.AllClosures, f)
	return f
}

// unaliasType follows a type alias to its underlying definition
// (unalias_type in the original). This core does not yet model type
// aliasing as a relation distinct from a Sym's own TypeSym, so it is
// the identity function.
func unaliasType(t *Sym) *Sym { return t }

// Finalize sequences the end-of-construction pipeline (if1_finalize,
// §4.7): locate the "init" builtin as the program's entry closure,
// recognise primitives, run DCE (or mark everything live if Config.DCE
// is false), then flatten every closure's code into CONC form.
func (b *Builder) Finalize() {
	top, ok := b.GetBuiltin("init")
	if !ok {
		diag.Internalf(nil, `if1: builtin "init" not found`)
	}
	b.Top = top
	b.findPrimitives()
	if b.Config.DCE {
		b.SimpleDeadCodeElimination()
	} else {
		for _, s := range b.AllSyms {
			s.Live = true
		}
	}
	for _, f := range b.AllClosures {
		if f.Code != nil {
			FlattenCode(f.Code, CodeConc)
		}
	}
}
