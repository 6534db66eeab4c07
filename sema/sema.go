// Package sema holds the semantic passes (§4.5): whole-program or
// whole-function rebuilds of the derived caches and resolved state the
// AST carries — call sites, symbol use lists, types, and the
// overload-resolution cleanup passes that run once a call has been
// bound to a concrete function. Every pass here is re-runnable from
// scratch; none of them thread incremental state between runs.
//
// actual_to_formal lives in package astutil rather than here, even
// though the source groups it with these passes conceptually — it is
// defined in the same astutil.cpp file as insert_help and friends.
// None of the passes below call it.
package sema

import (
	"github.com/mpvl/unique"

	"github.com/arclang/ifcore/ast"
	"github.com/arclang/ifcore/astutil"
	"github.com/arclang/ifcore/diag"
)

// allNodes collects every node reachable from root, or from every
// module in prog if root is nil — the "collect_asts(whole program)"
// fallback every pass below accepts (§4.5: "operates on one function
// or on the whole program").
func allNodes(prog *ast.Program, root ast.Node) []ast.Node {
	if root != nil {
		return ast.CollectPreorder(root)
	}
	var out []ast.Node
	for _, m := range prog.Modules {
		out = append(out, ast.CollectPreorder(m)...)
	}
	return out
}

func allNodesPostorder(prog *ast.Program) []ast.Node {
	var out []ast.Node
	for _, m := range prog.Modules {
		out = append(out, ast.CollectPostorder(m)...)
	}
	return out
}

// callExprsByID sorts *CallExpr by node id so mpvl/unique can find and
// drop adjacent duplicates — a call site can only be reached by more
// than one traversal path under I1 if the tree is momentarily
// inconsistent mid-rebuild, but compute_call_sites dedups anyway
// rather than relying on that never happening.
type callExprsByID []*ast.CallExpr

func (c callExprsByID) Len() int           { return len(c) }
func (c callExprsByID) Less(i, j int) bool { return c[i].ID() < c[j].ID() }
func (c callExprsByID) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c callExprsByID) Equal(i, j int) bool { return c[i] == c[j] }

func dedupCallExprs(c []*ast.CallExpr) []*ast.CallExpr {
	s := callExprsByID(c)
	return s[:unique.Sort(s)]
}

// symExprsByID is the *SymExpr analogue of callExprsByID, used to dedup
// VarSymbol.Uses the same way.
type symExprsByID []*ast.SymExpr

func (s symExprsByID) Len() int           { return len(s) }
func (s symExprsByID) Less(i, j int) bool { return s[i].ID() < s[j].ID() }
func (s symExprsByID) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s symExprsByID) Equal(i, j int) bool { return s[i] == s[j] }

func dedupSymExprs(s []*ast.SymExpr) []*ast.SymExpr {
	w := symExprsByID(s)
	return w[:unique.Sort(w)]
}

// Build is the canonical pre-processing of a newly constructed
// function: cleanup, then scope resolution, then normalization. After
// Build returns, invariants I1–I4 hold for fn (§4.5).
func Build(fn *ast.FnSymbol, errs *diag.List) {
	Cleanup(fn)
	ScopeResolve(fn, errs)
	Normalize(fn)
}

// Cleanup strips parser-convenience placeholders from fn's body. The
// one placeholder this closed node set can produce is an ExprStmt
// wrapping a nil expression (a statement position the parser left
// empty); Cleanup removes those rather than leaving them for later
// passes to trip over.
func Cleanup(fn *ast.FnSymbol) {
	if fn.Body == nil {
		return
	}
	for _, n := range ast.CollectPostorder(fn.Body) {
		es, ok := n.(*ast.ExprStmt)
		if !ok || es.X != nil {
			continue
		}
		if l := es.Base().EnclosingList(); l != nil {
			l.Remove(es)
		}
	}
}

// ScopeResolve walks fn's subtree resolving every SymExpr still
// pointing at an UnresolvedSymbol placeholder: it looks the name up
// starting from the SymExpr's own ParentScope (populated by
// astutil.InsertHelp) and rebinds Var to whatever it finds. A name
// that still doesn't resolve is a user error, not an internal one —
// the program referenced something that doesn't exist.
func ScopeResolve(fn *ast.FnSymbol, errs *diag.List) {
	for _, n := range ast.CollectPreorder(fn) {
		se, ok := n.(*ast.SymExpr)
		if !ok {
			continue
		}
		unresolved, ok := se.Var.(*ast.UnresolvedSymbol)
		if !ok {
			continue
		}
		scope := se.Base().ParentScope
		if scope == nil {
			continue
		}
		if sym, found := scope.Lookup(unresolved.Name()); found {
			se.Var = sym
		} else {
			errs.Errf(se.Pos(), "unresolved name %q", unresolved.Name())
		}
	}
}

// Normalize canonicalizes control-flow constructs it can simplify
// without changing meaning: a ScopedBlock whose only statement is
// itself a ScopelessBlock is flattened into its parent's statement
// list, removing a nesting level normalize's desugaring would
// otherwise leave behind.
func Normalize(fn *ast.FnSymbol) {
	if fn.Body == nil {
		return
	}
	normalizeBlock(fn.Body)
}

func normalizeBlock(blk *ast.BlockStmt) {
	for _, n := range blk.Stmts.Items() {
		if inner, ok := n.(*ast.BlockStmt); ok {
			normalizeBlock(inner)
		}
	}
	if blk.Stmts.Len() != 1 {
		return
	}
	inner, ok := blk.Stmts.At(0).(*ast.BlockStmt)
	if !ok || inner.Kind != ast.ScopelessBlock {
		return
	}
	for _, s := range inner.Stmts.Items() {
		inner.Stmts.Remove(s)
		blk.Stmts.Append(s)
	}
	blk.Stmts.Remove(inner)
}

// ComputeCallSites rebuilds every FnSymbol.CalledBy in prog from
// scratch by scanning all CallExprs whose resolved callee is still in
// the tree. A CallExpr whose callee has been removed is skipped
// silently (§4.5) — the source's own comment notes functions can end
// up still "called" by expressions no longer reachable from any
// module, e.g. a dead initializer stripped by an earlier pass.
func ComputeCallSites(prog *ast.Program) {
	nodes := allNodes(prog, nil)
	for _, n := range nodes {
		if fn, ok := n.(*ast.FnSymbol); ok {
			fn.CalledBy = fn.CalledBy[:0]
			if fn.CalledBy == nil {
				fn.CalledBy = []*ast.CallExpr{}
			}
		}
	}
	for _, n := range nodes {
		call, ok := n.(*ast.CallExpr)
		if !ok || call.Primitive {
			continue
		}
		fn, ok := call.FindFnSymbol()
		if !ok || fn.CalledBy == nil {
			continue
		}
		fn.CalledBy = append(fn.CalledBy, call)
	}
	for _, n := range nodes {
		if fn, ok := n.(*ast.FnSymbol); ok && fn.CalledBy != nil {
			fn.CalledBy = dedupCallExprs(fn.CalledBy)
		}
	}
}

// ComputeSymUses rebuilds VarSymbol.Uses for every symbol reachable
// from root (or the whole program, if root is nil): first it collects
// every live DefExpr, then for each SymExpr referring to a VarSymbol
// whose DefPoint is in that set, appends the SymExpr to the symbol's
// Uses (§4.5, I6). Only VarSymbol carries a Uses cache; other symbol
// kinds are left alone the way the source leaves a function or type's
// (nonexistent) uses list untouched.
func ComputeSymUses(prog *ast.Program, root ast.Node) {
	nodes := allNodes(prog, root)
	defSet := make(map[*ast.DefExpr]bool)
	for _, n := range nodes {
		def, ok := n.(*ast.DefExpr)
		if !ok {
			continue
		}
		defSet[def] = true
		if v, ok := def.Sym.(*ast.VarSymbol); ok {
			v.Uses = nil
		}
	}
	for _, n := range nodes {
		se, ok := n.(*ast.SymExpr)
		if !ok {
			continue
		}
		v, ok := se.Var.(*ast.VarSymbol)
		if !ok || v.DefPoint == nil || !defSet[v.DefPoint] {
			continue
		}
		v.Uses = append(v.Uses, se)
	}
	for _, n := range nodes {
		if def, ok := n.(*ast.DefExpr); ok {
			if v, ok := def.Sym.(*ast.VarSymbol); ok && v.Uses != nil {
				v.Uses = dedupSymExprs(v.Uses)
			}
		}
	}
}

// ClearTypeInfo resets every def-point's symbol type (and, for
// functions, every formal's type and the return type) to
// ast.DtUnknown, preparing root's subtree for a fresh type-inference
// pass (§4.5).
func ClearTypeInfo(root ast.Node) {
	for _, n := range ast.CollectPreorder(root) {
		def, ok := n.(*ast.DefExpr)
		if !ok {
			continue
		}
		switch sym := def.Sym.(type) {
		case *ast.VarSymbol:
			sym.VarType = ast.DtUnknown
		case *ast.ArgSymbol:
			sym.ArgType = ast.DtUnknown
		case *ast.FnSymbol:
			sym.FnType = ast.DtUnknown
			sym.RetType = ast.DtUnknown
			for _, f := range sym.Formals.Items() {
				if fd, ok := f.(*ast.DefExpr); ok {
					if arg, ok := fd.Sym.(*ast.ArgSymbol); ok {
						arg.ArgType = ast.DtUnknown
					}
				}
			}
		}
	}
}

// UpdateSymbols replaces every reference a mapped old node has in
// root's subtree with its replacement, across the exact site kinds the
// source's XSUB macro touches: SymExpr.Var, GotoStmt.Label,
// VarSymbol/ArgSymbol's type, and FnSymbol's type/retType/ThisArg. The
// source also substitutes through a DefExpr's own symbol's type
// field, but since that symbol is itself a separate node CollectPreorder
// already visits (as DefExpr's child), the VarSymbol/ArgSymbol/FnSymbol
// cases below cover that site for those three symbol kinds without a
// redundant DefExpr case; a TypeSymbol's own SymType is not
// substituted. A
// substitution entry whose replacement isn't the right variant for its
// site is an internal error (§4.5) — this is a compiler-internal
// consistency operation, not something a malformed program can
// trigger.
func UpdateSymbols(root ast.Node, substitution map[ast.Node]ast.Node) {
	lookup := func(n ast.Node) (ast.Node, bool) {
		if n == nil {
			return nil, false
		}
		r, ok := substitution[n]
		return r, ok
	}

	for _, n := range ast.CollectPreorder(root) {
		switch x := n.(type) {
		case *ast.SymExpr:
			if r, ok := lookup(x.Var); ok {
				sym, ok := r.(ast.Symbol)
				if !ok {
					diag.Internalf(x, "update_symbols: replacement for SymExpr.Var is not a Symbol")
				}
				x.Var = sym
			}
		case *ast.GotoStmt:
			if r, ok := lookup(x.Label); ok {
				label, ok := r.(*ast.LabelSymbol)
				if !ok {
					diag.Internalf(x, "update_symbols: replacement for GotoStmt.Label is not a LabelSymbol")
				}
				x.Label = label
			}
		case *ast.VarSymbol:
			if r, ok := lookup(x.VarType); ok {
				t, ok := r.(ast.Type)
				if !ok {
					diag.Internalf(x, "update_symbols: replacement for VarSymbol.VarType is not a Type")
				}
				x.VarType = t
			}
		case *ast.ArgSymbol:
			if r, ok := lookup(x.ArgType); ok {
				t, ok := r.(ast.Type)
				if !ok {
					diag.Internalf(x, "update_symbols: replacement for ArgSymbol.ArgType is not a Type")
				}
				x.ArgType = t
			}
		case *ast.FnSymbol:
			if r, ok := lookup(x.FnType); ok {
				t, ok := r.(ast.Type)
				if !ok {
					diag.Internalf(x, "update_symbols: replacement for FnSymbol.FnType is not a Type")
				}
				x.FnType = t
			}
			if r, ok := lookup(x.RetType); ok {
				t, ok := r.(ast.Type)
				if !ok {
					diag.Internalf(x, "update_symbols: replacement for FnSymbol.RetType is not a Type")
				}
				x.RetType = t
			}
			if x.ThisArg != nil {
				if r, ok := lookup(x.ThisArg); ok {
					this, ok := r.(*ast.ArgSymbol)
					if !ok {
						diag.Internalf(x, "update_symbols: replacement for FnSymbol.ThisArg is not an ArgSymbol")
					}
					x.ThisArg = this
				}
			}
		}
	}
}

// RemoveNamedExprs replaces every NamedExpr(label, actual) reachable
// from prog with its Actual, post-order — used once overload
// resolution no longer needs the label (§4.5).
func RemoveNamedExprs(prog *ast.Program, errs *diag.List) {
	for _, n := range allNodesPostorder(prog) {
		named, ok := n.(*ast.NamedExpr)
		if !ok {
			continue
		}
		replaceExpr(named, named.Actual, errs)
	}
}

// RemoveStaticActuals strips actuals whose static type is
// ast.DtMethodToken or ast.DtSetterToken from every resolved call in
// prog — markers overload resolution consumed and call sites no
// longer need (§4.5).
func RemoveStaticActuals(prog *ast.Program) {
	for _, n := range allNodesPostorder(prog) {
		call, ok := n.(*ast.CallExpr)
		if !ok || !call.Resolved {
			continue
		}
		for _, a := range call.Actuals.Items() {
			if isStaticToken(actualType(a)) {
				call.Actuals.Remove(a)
				astutil.RemoveHelp(a)
			}
		}
	}
}

// RemoveStaticFormals strips the formals (and their defining
// DefExprs) whose type is ast.DtMethodToken or ast.DtSetterToken from
// every FnSymbol in prog, mirroring RemoveStaticActuals on the
// declaration side (§4.5).
func RemoveStaticFormals(prog *ast.Program) {
	for _, n := range allNodesPostorder(prog) {
		fn, ok := n.(*ast.FnSymbol)
		if !ok {
			continue
		}
		for _, f := range fn.Formals.Items() {
			def, ok := f.(*ast.DefExpr)
			if !ok {
				continue
			}
			arg, ok := def.Sym.(*ast.ArgSymbol)
			if !ok {
				continue
			}
			if isStaticToken(arg.ArgType) {
				fn.Formals.Remove(def)
				astutil.RemoveHelp(def)
			}
		}
	}
}

func actualType(n ast.Node) ast.Type {
	switch x := n.(type) {
	case *ast.SymExpr:
		switch sym := x.Var.(type) {
		case *ast.VarSymbol:
			return sym.VarType
		case *ast.ArgSymbol:
			return sym.ArgType
		}
	}
	return nil
}

func isStaticToken(t ast.Type) bool {
	return t == ast.DtMethodToken || t == ast.DtSetterToken
}

// replaceExpr substitutes old for its Actual in whichever slot old
// occupies — an AList element or a CallExpr's Callee — and relinks the
// replacement's back-links from old's own (still-valid) context before
// clearing old's. SiblingInsertHelp, not RemoveHelp, does that relink:
// old.Actual is still old's child at this point, so a recursive
// RemoveHelp(old) would walk into replacement and wipe the back-links
// just established for it.
func replaceExpr(old *ast.NamedExpr, replacement ast.Expr, errs *diag.List) {
	b := old.Base()
	if l := b.EnclosingList(); l != nil {
		l.InsertBefore(old, replacement)
		l.Remove(old)
	} else if call, ok := b.ParentExpr.(*ast.CallExpr); ok && call.Callee == old {
		call.Callee = replacement
	}
	astutil.SiblingInsertHelp(old, replacement, errs)
	b.ParentScope, b.ParentSymbol, b.ParentStmt, b.ParentExpr = nil, nil, nil, nil
}
