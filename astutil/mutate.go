// Package astutil is the mutation engine (§4.4): the one place that
// attaches or detaches an ast.Node and keeps the back-link invariants
// I1–I3 consistent over the affected subtree. It is where a node's
// ParentExpr/ParentStmt/ParentSymbol/ParentScope fields and a symbol's
// ArgScope/StructScope are written; the exceptions are ast.Scope's
// Define/Undefine, which set and clear a defined symbol's ParentScope,
// ast.NewModuleSymbol, which allocates ModScope, and sema's
// NamedExpr replacement, which clears the replaced node's back-links.
//
// The four entry points below are a direct port of insert_help,
// remove_help, sibling_insert_help and parent_insert_help, including
// the quirks noted in the design discussion: a Type parent whose owner
// symbol happens to be a module is never special-cased the way an
// FnSymbol or ClassType parent is (Open Question 1), and
// actual_to_formal is strict about what it accepts (Open Question 3).
package astutil

import (
	"github.com/arclang/ifcore/ast"
	"github.com/arclang/ifcore/diag"
)

// Context is the four-tuple insert_help threads through a recursive
// descent: the nearest enclosing expression, statement, symbol, and
// scope a freshly attached node's subtree should see. Which fields
// apply to a given node depends on its variant (§4.4 rules 2–4).
type Context struct {
	ParentExpr   ast.Expr
	ParentStmt   ast.Stmt
	ParentSymbol ast.Symbol
	ParentScope  *ast.Scope
}

// InTree reports whether n is currently attached somewhere reachable
// from a module — the check sibling/parent-insert use to no-op on a
// detached reference node rather than walking off into an
// inconsistent subtree.
func InTree(n ast.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*ast.ModuleSymbol); ok {
		return true
	}
	// A type carries no back-links of its own; it is attached exactly
	// when the symbol that names it is.
	if t, ok := n.(ast.Type); ok {
		return InTree(owningSymbol(t))
	}
	b := n.Base()
	return b.ParentScope != nil || b.ParentSymbol != nil || b.ParentExpr != nil || b.ParentStmt != nil
}

// InsertHelp attaches node's subtree under ctx, recursively
// propagating the derived context to every child (§4.4 rules 1–5).
// errs collects any user errors raised along the way (a nested module
// not at module level, a duplicate scope binding); InsertHelp itself
// never returns an error, matching the source's fire-and-forget
// insert_help.
func InsertHelp(node ast.Node, ctx Context, errs *diag.List) {
	if node == nil {
		// A spliced-out module DefExpr's only child (its Sym) is nilled
		// out by insertDefExpr before the children loop below runs;
		// tolerate that the same way the source's get_ast_children
		// does for a null child rather than treating it as malformed.
		return
	}
	if _, ok := node.(*ast.ModuleSymbol); ok {
		return
	}

	switch x := node.(type) {
	case ast.Symbol:
		ctx.ParentSymbol = x
		ctx.ParentExpr = nil
		ctx.ParentStmt = nil

	case ast.Stmt:
		b := x.Base()
		b.ParentScope = ctx.ParentScope
		b.ParentSymbol = ctx.ParentSymbol
		b.ParentStmt = ctx.ParentStmt
		if blk, ok := x.(*ast.BlockStmt); ok && blk.Kind != ast.ScopelessBlock {
			if blk.BlkScope != nil && blk.BlkScope.AstParent == ast.Node(blk) {
				diag.Internalf(blk, "insert_help: block already owns a scope")
			}
			if blk.BlkScope == nil {
				blk.BlkScope = ast.NewScope(ctx.ParentScope, blk)
			}
			ctx.ParentScope = blk.BlkScope
		}
		ctx.ParentStmt = x

	case ast.Expr:
		b := x.Base()
		b.ParentScope = ctx.ParentScope
		b.ParentSymbol = ctx.ParentSymbol
		b.ParentStmt = ctx.ParentStmt
		b.ParentExpr = ctx.ParentExpr

		if def, ok := x.(*ast.DefExpr); ok {
			ctx = insertDefExpr(def, ctx, errs)
		}
		ctx.ParentExpr = x

	default:
		// Type, and anything else with no back-links of its own:
		// context passes through to children unchanged.
	}

	for _, c := range ast.Children(node) {
		InsertHelp(c, ctx, errs)
	}
}

// insertDefExpr implements §4.4 rule 4's DefExpr special case and
// returns the context its children (just Sym) should see.
func insertDefExpr(def *ast.DefExpr, ctx Context, errs *diag.List) Context {
	if mod, ok := def.Sym.(*ast.ModuleSymbol); ok {
		outer, _ := ctx.ParentSymbol.(*ast.ModuleSymbol)

		mod.DefPoint = nil
		def.Sym = nil
		// def itself is list-resident only when the module is declared
		// directly in an AList of expressions; at statement level it is
		// wrapped as ExprStmt{X: def} inside a BlockStmt's Stmts, so the
		// node to detach is the wrapping ExprStmt (def.ParentStmt), not
		// def (mirroring the original's parentStmt->remove()).
		switch {
		case def.Base().EnclosingList() != nil:
			def.Base().EnclosingList().Remove(def)
		case def.ParentStmt != nil && def.ParentStmt.Base().EnclosingList() != nil:
			def.ParentStmt.Base().EnclosingList().Remove(def.ParentStmt)
		}

		if outer == nil {
			errs.Errf(def.Pos(), "nested module not at module level")
		} else {
			use := ast.NewCallExpr(ast.NewSymExpr(outer))
			use.Primitive = true
			useStmt := ast.NewExprStmt(use)
			stmts := mod.InitFn.Body.Stmts
			if stmts.Len() > 0 {
				stmts.InsertBefore(stmts.At(0), useStmt)
			} else {
				stmts.Append(useStmt)
			}
		}

		ctx.ParentScope = mod.ModScope
		return ctx
	}

	if def.Sym != nil {
		if _, unresolved := def.Sym.(*ast.UnresolvedSymbol); !unresolved && ctx.ParentScope != nil {
			if err := ctx.ParentScope.Define(def.Sym); err != nil {
				if dup, ok := err.(*ast.DuplicateBindingError); ok {
					errs.Errf(dup.Pos, "%s", dup.Error())
				}
			}
		}
	}

	if fn, ok := def.Sym.(*ast.FnSymbol); ok {
		if fn.ArgScope != nil {
			diag.Internalf(fn, "insert_help: function already owns an argument scope")
		}
		fn.ArgScope = ast.NewScope(ctx.ParentScope, fn)
		ctx.ParentScope = fn.ArgScope
	}
	if ts, ok := def.Sym.(*ast.TypeSymbol); ok {
		if ct, ok := ts.SymType.(*ast.ClassType); ok {
			if ct.StructScope != nil {
				diag.Internalf(ts, "insert_help: class type already owns a struct scope")
			}
			ct.StructScope = ast.NewScope(ctx.ParentScope, ct)
			ct.Sym = ts
			ctx.ParentScope = ct.StructScope
		}
	}
	return ctx
}

// RemoveHelp detaches node's subtree, post-order, clearing back-links
// and destroying any scope the subtree owned (§4.4 remove_help).
func RemoveHelp(node ast.Node) {
	if node == nil {
		return
	}
	if _, ok := node.(*ast.ModuleSymbol); ok {
		return
	}

	for _, c := range ast.Children(node) {
		RemoveHelp(c)
	}

	switch x := node.(type) {
	case ast.Stmt:
		b := x.Base()
		b.ParentScope, b.ParentSymbol, b.ParentStmt = nil, nil, nil
		if blk, ok := x.(*ast.BlockStmt); ok && blk.Kind != ast.ScopelessBlock {
			if blk.BlkScope != nil && blk.BlkScope.AstParent == ast.Node(blk) {
				blk.BlkScope = nil
			}
		}

	case ast.Expr:
		b := x.Base()
		b.ParentScope, b.ParentSymbol, b.ParentStmt, b.ParentExpr = nil, nil, nil, nil
		if def, ok := x.(*ast.DefExpr); ok && def.Sym != nil {
			if _, isModule := def.Sym.(*ast.ModuleSymbol); !isModule {
				sb := def.Sym.Base()
				if sb.ParentScope != nil {
					sb.ParentScope.Undefine(def.Sym)
				}
				if fn, ok := def.Sym.(*ast.FnSymbol); ok {
					fn.ArgScope = nil
				}
				if ts, ok := def.Sym.(*ast.TypeSymbol); ok {
					if ct, ok := ts.SymType.(*ast.ClassType); ok {
						ct.StructScope = nil
					}
				}
			}
		}
	}
}

// SiblingInsertHelp inserts node using the context derived from
// sibling's own parent links — node becomes a true sibling of sibling
// under the same parent, not a child of it. A no-op if sibling is nil
// or not currently attached.
func SiblingInsertHelp(sibling ast.Node, node ast.Node, errs *diag.List) {
	if !InTree(sibling) {
		return
	}
	var ctx Context
	switch x := sibling.(type) {
	case ast.Expr:
		b := x.Base()
		ctx = Context{ParentExpr: b.ParentExpr, ParentStmt: b.ParentStmt, ParentSymbol: b.ParentSymbol, ParentScope: b.ParentScope}
	case ast.Stmt:
		b := x.Base()
		ctx = Context{ParentStmt: b.ParentStmt, ParentSymbol: b.ParentSymbol, ParentScope: b.ParentScope}
	default:
		diag.Internalf(sibling, "sibling_insert_help: unsupported sibling type %T", sibling)
	}
	if ctx.ParentSymbol != nil {
		InsertHelp(node, ctx, errs)
	}
}

// ParentInsertHelp inserts node as a child of parent, deriving the
// context parent itself implies (§4.4's derivation table). A no-op if
// parent is nil or not currently attached.
func ParentInsertHelp(parent ast.Node, node ast.Node, errs *diag.List) {
	if !InTree(parent) {
		return
	}

	var ctx Context
	switch x := parent.(type) {
	case ast.Expr:
		b := x.Base()
		ctx = Context{ParentExpr: x, ParentStmt: b.ParentStmt, ParentSymbol: b.ParentSymbol, ParentScope: b.ParentScope}

	case ast.Stmt:
		b := x.Base()
		ctx.ParentStmt = x
		ctx.ParentSymbol = b.ParentSymbol
		if blk, ok := x.(*ast.BlockStmt); ok && blk.BlkScope != nil {
			ctx.ParentScope = blk.BlkScope
		} else {
			ctx.ParentScope = b.ParentScope
		}

	case ast.Symbol:
		ctx.ParentSymbol = x
		switch sym := x.(type) {
		case *ast.FnSymbol:
			ctx.ParentScope = sym.ArgScope
		case *ast.ModuleSymbol:
			ctx.ParentScope = sym.ModScope
		default:
			if ct, ok := classTypeOf(x); ok {
				ctx.ParentScope = ct.StructScope
			} else {
				ctx.ParentScope = x.Base().ParentScope
			}
		}

	case ast.Type:
		sym := owningSymbol(x)
		ctx.ParentSymbol = sym
		switch s := sym.(type) {
		case *ast.FnSymbol:
			ctx.ParentScope = s.ArgScope
		// A ModuleSymbol can never be the owning symbol of a Type in
		// this closed type set (only *ast.ClassType carries an owner,
		// and its Sym field is statically a *ast.TypeSymbol) — the
		// branch the source devotes to that case is accordingly
		// unreachable here, preserved as a structural artifact rather
		// than re-derived from the type's own symbol (Open Question 1).
		default:
			if ct, ok := x.(*ast.ClassType); ok {
				ctx.ParentScope = ct.StructScope
			} else if sym != nil {
				ctx.ParentScope = sym.Base().ParentScope
			}
		}

	default:
		diag.Internalf(parent, "parent_insert_help: unsupported parent type %T", parent)
	}

	InsertHelp(node, ctx, errs)
}

// classTypeOf reports the ClassType a symbol's own type names, if any
// — the "symbol->type is a ClassType" branch of the parent derivation
// table, which only ever fires for a TypeSymbol naming a class.
func classTypeOf(sym ast.Symbol) (*ast.ClassType, bool) {
	ts, ok := sym.(*ast.TypeSymbol)
	if !ok {
		return nil, false
	}
	ct, ok := ts.SymType.(*ast.ClassType)
	return ct, ok
}

// owningSymbol reports the symbol that names a type, if any. Only
// ClassType carries one; PrimitiveType (including the three sentinel
// values) never does.
func owningSymbol(t ast.Type) ast.Symbol {
	if ct, ok := t.(*ast.ClassType); ok && ct.Sym != nil {
		return ct.Sym
	}
	return nil
}

// ActualToFormal returns the ArgSymbol actual fills positionally in
// its enclosing call (§4.5 actual_to_formal). actual must be an
// element of a resolved CallExpr's Actuals list — anything else is an
// internal error, not a recoverable one: this is called only after
// overload resolution has already committed to a call shape.
func ActualToFormal(actual ast.Expr) *ast.ArgSymbol {
	call, ok := actual.Base().ParentExpr.(*ast.CallExpr)
	if !ok || !call.Resolved {
		diag.Internalf(actual, "actual_to_formal: bad call to actual_to_formal")
	}
	fn, ok := call.FindFnSymbol()
	if !ok {
		diag.Internalf(actual, "actual_to_formal: bad call to actual_to_formal")
	}

	idx := call.Actuals.IndexOf(actual)
	if idx < 0 || idx >= fn.Formals.Len() {
		diag.Internalf(actual, "actual_to_formal: bad call to actual_to_formal")
	}
	def, ok := fn.Formals.At(idx).(*ast.DefExpr)
	if !ok {
		diag.Internalf(actual, "actual_to_formal: bad call to actual_to_formal")
	}
	arg, ok := def.Sym.(*ast.ArgSymbol)
	if !ok {
		diag.Internalf(actual, "actual_to_formal: bad call to actual_to_formal")
	}
	return arg
}
