package ast

// Program is the whole-compilation root: the "all-modules list" of
// §5, encapsulated as a value a driver constructs and owns rather than
// process-global state, per the Global mutable state re-architecture
// note in §9.
type Program struct {
	Modules []*ModuleSymbol
}

// NewProgram returns an empty program.
func NewProgram() *Program { return &Program{} }

// AddModule appends m to the program's module list. Per I1, m must
// already be a standalone tree root (no parentSymbol chain reaching
// further up) — this is the entry point by which a freshly parsed or
// spliced-out module (see astutil.InsertHelp rule 4's module-splice
// case) becomes part of "the program".
func (p *Program) AddModule(m *ModuleSymbol) {
	p.Modules = append(p.Modules, m)
}

// CollectFunctions returns every FnSymbol reachable from any module in
// the program, via preorder traversal over each module's declarations
// (§4.2 collect_functions).
func (p *Program) CollectFunctions() []*FnSymbol {
	var out []*FnSymbol
	for _, m := range p.Modules {
		for _, n := range CollectPreorder(m) {
			if fn, ok := n.(*FnSymbol); ok {
				out = append(out, fn)
			}
		}
	}
	return out
}
