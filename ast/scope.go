package ast

import (
	"fmt"

	"github.com/arclang/ifcore/intern"
)

// Scope is a lexical name table with a parent link (§4.3). AstParent
// is the scope-bearing node that owns it (a BlockStmt, FnSymbol,
// ModuleSymbol, or ClassType) — scope lifetime is tied to
// that node's presence in the tree (§3.2 Lifecycles).
type Scope struct {
	AstParent Node
	Outer     *Scope

	names map[intern.ID]Symbol
	order []Symbol // insertion order, for deterministic iteration
}

// NewScope allocates an empty scope owned by astParent, chained to
// outer.
func NewScope(outer *Scope, astParent Node) *Scope {
	return &Scope{
		AstParent: astParent,
		Outer:     outer,
		names:     make(map[intern.ID]Symbol),
	}
}

// DuplicateBindingError is returned by Define when name is already
// bound in this scope to something other than an UnresolvedSymbol
// placeholder. It is a user error (§4.4 "Failure modes"): the mutation
// engine turns it into a diagnostic with source location rather than
// panicking.
type DuplicateBindingError struct {
	Name string
	Pos  Pos
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("%s: %q is already defined in this scope", e.Pos, e.Name)
}

// Define adds sym under sym.Name() in this scope. If that name is
// already bound to something other than an UnresolvedSymbol, Define
// returns a *DuplicateBindingError and leaves the scope unchanged;
// binding over an UnresolvedSymbol placeholder succeeds silently,
// replacing it in place (preserving its position in Order so
// deterministic iteration order doesn't depend on which pass first
// guessed the name).
//
// Define is also where a symbol's own ParentScope back-link is set —
// not by the mutation engine's insert_help, which only ever derives
// the scope a *new* DefExpr's children see, never writes back onto the
// symbol being defined. Binding and scope-ownership happen together
// here, matching how remove_help can later read a defined symbol's
// ParentScope to undefine it without the insertion path having set it
// explicitly anywhere else.
func (s *Scope) Define(sym Symbol) error {
	key := intern.Intern(sym.Name())
	if existing, ok := s.names[key]; ok {
		if _, isPlaceholder := existing.(*UnresolvedSymbol); !isPlaceholder {
			return &DuplicateBindingError{Name: sym.Name(), Pos: sym.Pos()}
		}
		s.names[key] = sym
		for i, o := range s.order {
			if o == existing {
				s.order[i] = sym
				break
			}
		}
		existing.Base().ParentScope = nil
		sym.Base().ParentScope = s
		return nil
	}
	s.names[key] = sym
	s.order = append(s.order, sym)
	sym.Base().ParentScope = s
	return nil
}

// Undefine removes sym's binding from this scope. It is a no-op if
// sym is not currently bound here (e.g. it was already replaced by a
// later Define).
func (s *Scope) Undefine(sym Symbol) {
	key := intern.Intern(sym.Name())
	cur, ok := s.names[key]
	if !ok || cur != sym {
		return
	}
	delete(s.names, key)
	for i, o := range s.order {
		if o == sym {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	sym.Base().ParentScope = nil
}

// Lookup walks the parent chain starting at s, returning the first
// binding found.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	key := intern.Intern(name)
	for sc := s; sc != nil; sc = sc.Outer {
		if sym, ok := sc.names[key]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Symbols returns the symbols defined directly in this scope (not its
// ancestors), in definition order.
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, len(s.order))
	copy(out, s.order)
	return out
}
