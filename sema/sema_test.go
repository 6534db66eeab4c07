package sema_test

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/arclang/ifcore/ast"
	"github.com/arclang/ifcore/astutil"
	"github.com/arclang/ifcore/diag"
	"github.com/arclang/ifcore/sema"
)

func newModule(name string) *ast.ModuleSymbol {
	return ast.NewModuleSymbol(name)
}

func insertTop(t *testing.T, mod *ast.ModuleSymbol, decl ast.Expr) *diag.List {
	t.Helper()
	var errs diag.List
	mod.Body.Append(decl)
	astutil.InsertHelp(decl, astutil.Context{ParentScope: mod.ModScope, ParentSymbol: mod}, &errs)
	return &errs
}

func TestCleanupRemovesEmptyExprStmt(t *testing.T) {
	fn := ast.NewFnSymbol("f")
	fn.Body = ast.NewBlockStmt(ast.ScopedBlock)
	empty := ast.NewExprStmt(nil)
	keep := ast.NewExprStmt(ast.NewCallExpr(ast.NewSymExpr(ast.NewUnresolvedSymbol("g"))))
	fn.Body.Stmts.Append(empty)
	fn.Body.Stmts.Append(keep)

	sema.Cleanup(fn)

	qt.Assert(t, qt.Equals(fn.Body.Stmts.Len(), 1))
	qt.Assert(t, qt.Equals(fn.Body.Stmts.At(0), ast.Node(keep)))
}

func TestScopeResolveBindsNameFromEnclosingScope(t *testing.T) {
	mod := newModule("m")
	varDef := ast.NewDefExpr(ast.NewVarSymbol("x", ast.DtUnknown))
	insertTop(t, mod, varDef)

	fn := ast.NewFnSymbol("f")
	fn.Body = ast.NewBlockStmt(ast.ScopedBlock)
	ref := ast.NewSymExpr(ast.NewUnresolvedSymbol("x"))
	fn.Body.Stmts.Append(ast.NewExprStmt(ref))
	fnDef := ast.NewDefExpr(fn)
	insertTop(t, mod, fnDef)

	var errs diag.List
	sema.ScopeResolve(fn, &errs)

	qt.Assert(t, qt.Equals(errs.Len(), 0))
	v, ok := ref.Var.(*ast.VarSymbol)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.SymName, "x"))
}

func TestScopeResolveReportsUnresolvedName(t *testing.T) {
	mod := newModule("m")
	fn := ast.NewFnSymbol("f")
	fn.Body = ast.NewBlockStmt(ast.ScopedBlock)
	ref := ast.NewSymExpr(ast.NewUnresolvedSymbol("nope"))
	fn.Body.Stmts.Append(ast.NewExprStmt(ref))
	fnDef := ast.NewDefExpr(fn)
	insertTop(t, mod, fnDef)

	var errs diag.List
	sema.ScopeResolve(fn, &errs)

	qt.Assert(t, qt.Equals(errs.Len(), 1))
	_, ok := ref.Var.(*ast.UnresolvedSymbol)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestNormalizeFlattensSoleScopelessChild(t *testing.T) {
	fn := ast.NewFnSymbol("f")
	outer := ast.NewBlockStmt(ast.ScopedBlock)
	inner := ast.NewBlockStmt(ast.ScopelessBlock)
	s1 := ast.NewExprStmt(ast.NewCallExpr(ast.NewSymExpr(ast.NewUnresolvedSymbol("a"))))
	s2 := ast.NewExprStmt(ast.NewCallExpr(ast.NewSymExpr(ast.NewUnresolvedSymbol("b"))))
	inner.Stmts.Append(s1)
	inner.Stmts.Append(s2)
	outer.Stmts.Append(inner)
	fn.Body = outer

	sema.Normalize(fn)

	qt.Assert(t, qt.Equals(outer.Stmts.Len(), 2))
	qt.Assert(t, qt.Equals(outer.Stmts.At(0), ast.Node(s1)))
	qt.Assert(t, qt.Equals(outer.Stmts.At(1), ast.Node(s2)))
}

func TestComputeCallSitesFindsDirectCalls(t *testing.T) {
	prog := ast.NewProgram()
	mod := newModule("m")
	prog.AddModule(mod)

	callee := ast.NewFnSymbol("callee")
	callee.Body = ast.NewBlockStmt(ast.ScopedBlock)
	insertTop(t, mod, ast.NewDefExpr(callee))

	caller := ast.NewFnSymbol("caller")
	caller.Body = ast.NewBlockStmt(ast.ScopedBlock)
	call := ast.NewCallExpr(ast.NewSymExpr(callee))
	caller.Body.Stmts.Append(ast.NewExprStmt(call))
	insertTop(t, mod, ast.NewDefExpr(caller))

	sema.ComputeCallSites(prog)

	qt.Assert(t, qt.HasLen(callee.CalledBy, 1))
	qt.Assert(t, qt.Equals(callee.CalledBy[0], call))
	qt.Assert(t, qt.IsNotNil(caller.CalledBy))
	qt.Assert(t, qt.HasLen(caller.CalledBy, 0))
}

func TestComputeCallSitesSkipsPrimitiveCalls(t *testing.T) {
	prog := ast.NewProgram()
	mod := newModule("m")
	prog.AddModule(mod)

	callee := ast.NewFnSymbol("callee")
	callee.Body = ast.NewBlockStmt(ast.ScopedBlock)
	insertTop(t, mod, ast.NewDefExpr(callee))

	call := ast.NewCallExpr(ast.NewSymExpr(callee))
	call.Primitive = true
	mod.InitFn.Body.Stmts.Append(ast.NewExprStmt(call))

	sema.ComputeCallSites(prog)

	qt.Assert(t, qt.HasLen(callee.CalledBy, 0))
}

func TestComputeSymUsesPopulatesVarUses(t *testing.T) {
	mod := newModule("m")
	varDef := ast.NewDefExpr(ast.NewVarSymbol("x", ast.DtUnknown))
	insertTop(t, mod, varDef)
	v := varDef.Sym.(*ast.VarSymbol)

	use1 := ast.NewSymExpr(v)
	use2 := ast.NewSymExpr(v)
	mod.InitFn.Body.Stmts.Append(ast.NewExprStmt(use1))
	mod.InitFn.Body.Stmts.Append(ast.NewExprStmt(use2))

	prog := ast.NewProgram()
	prog.AddModule(mod)
	sema.ComputeSymUses(prog, nil)

	qt.Assert(t, qt.HasLen(v.Uses, 2))
}

func TestComputeSymUsesIgnoresDanglingDefPoint(t *testing.T) {
	mod := newModule("m")
	v := ast.NewVarSymbol("x", ast.DtUnknown)
	_ = ast.NewDefExpr(v) // never inserted: DefPoint won't be in the live def set

	use := ast.NewSymExpr(v)
	mod.InitFn.Body.Stmts.Append(ast.NewExprStmt(use))

	prog := ast.NewProgram()
	prog.AddModule(mod)
	sema.ComputeSymUses(prog, nil)

	qt.Assert(t, qt.HasLen(v.Uses, 0))
}

func TestClearTypeInfoResetsFormalsAndReturn(t *testing.T) {
	mod := newModule("m")
	fn := ast.NewFnSymbol("f")
	fn.Body = ast.NewBlockStmt(ast.ScopedBlock)
	fn.RetType = ast.NewPrimitiveType("int")
	argDef := ast.NewDefExpr(ast.NewArgSymbol("a", ast.NewPrimitiveType("int")))
	insertTop(t, mod, ast.NewDefExpr(fn))
	fn.Formals.Append(argDef)
	arg := argDef.Sym.(*ast.ArgSymbol)

	sema.ClearTypeInfo(mod)

	qt.Assert(t, qt.Equals(fn.RetType, ast.Type(ast.DtUnknown)))
	qt.Assert(t, qt.Equals(arg.ArgType, ast.Type(ast.DtUnknown)))
}

func TestUpdateSymbolsSubstitutesSymExprVar(t *testing.T) {
	oldSym := ast.NewUnresolvedSymbol("x")
	newSym := ast.NewVarSymbol("x", ast.DtUnknown)
	ref := ast.NewSymExpr(oldSym)

	sema.UpdateSymbols(ref, map[ast.Node]ast.Node{oldSym: newSym})

	qt.Assert(t, qt.Equals(ref.Var, ast.Symbol(newSym)))
}

func TestUpdateSymbolsPanicsOnWrongReplacementKind(t *testing.T) {
	oldSym := ast.NewUnresolvedSymbol("x")
	notASymbol := ast.NewPrimitiveType("int")
	ref := ast.NewSymExpr(oldSym)

	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
		_, ok := r.(*diag.InternalError)
		qt.Assert(t, qt.IsTrue(ok))
	}()
	sema.UpdateSymbols(ref, map[ast.Node]ast.Node{oldSym: notASymbol})
	t.Fatal("expected a panic")
}

func TestRemoveNamedExprsReplacesWithActual(t *testing.T) {
	mod := newModule("m")
	actual := ast.NewSymExpr(ast.NewUnresolvedSymbol("v"))
	named := ast.NewNamedExpr("k", actual)
	call := ast.NewCallExpr(ast.NewSymExpr(ast.NewUnresolvedSymbol("f")))
	call.Actuals.Append(named)
	mod.InitFn.Body.Stmts.Append(ast.NewExprStmt(call))

	prog := ast.NewProgram()
	prog.AddModule(mod)
	var errs diag.List
	sema.RemoveNamedExprs(prog, &errs)

	qt.Assert(t, qt.Equals(errs.Len(), 0))
	qt.Assert(t, qt.Equals(call.Actuals.Len(), 1))
	qt.Assert(t, qt.Equals(call.Actuals.At(0), ast.Node(actual)))
}

func TestRemoveStaticActualsStripsTokenTypedActuals(t *testing.T) {
	mod := newModule("m")
	methodTok := ast.NewArgSymbol("self", ast.DtMethodToken)
	ordinary := ast.NewArgSymbol("n", ast.NewPrimitiveType("int"))

	call := ast.NewCallExpr(ast.NewSymExpr(ast.NewUnresolvedSymbol("f")))
	call.Resolved = true
	call.Actuals.Append(ast.NewSymExpr(methodTok))
	call.Actuals.Append(ast.NewSymExpr(ordinary))
	mod.InitFn.Body.Stmts.Append(ast.NewExprStmt(call))

	prog := ast.NewProgram()
	prog.AddModule(mod)
	sema.RemoveStaticActuals(prog)

	qt.Assert(t, qt.Equals(call.Actuals.Len(), 1))
	se, ok := call.Actuals.At(0).(*ast.SymExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(se.Var, ast.Symbol(ordinary)))
}

func TestRemoveStaticFormalsStripsTokenTypedFormals(t *testing.T) {
	mod := newModule("m")
	fn := ast.NewFnSymbol("f")
	fn.Body = ast.NewBlockStmt(ast.ScopedBlock)
	setterDef := ast.NewDefExpr(ast.NewArgSymbol("setter", ast.DtSetterToken))
	argDef := ast.NewDefExpr(ast.NewArgSymbol("n", ast.NewPrimitiveType("int")))
	insertTop(t, mod, ast.NewDefExpr(fn))
	fn.Formals.Append(setterDef)
	fn.Formals.Append(argDef)

	prog := ast.NewProgram()
	prog.AddModule(mod)
	sema.RemoveStaticFormals(prog)

	qt.Assert(t, qt.Equals(fn.Formals.Len(), 1))
	qt.Assert(t, qt.Equals(fn.Formals.At(0), ast.Node(argDef)))
}
