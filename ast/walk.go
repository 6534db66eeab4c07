package ast

import "fmt"

// Children returns n's immediate children in structural order. The
// switch is exhaustive over the closed set of node kinds (§4.2): a
// variant without a case is a programmer error and surfaces as an
// internal failure, the same contract cue/ast's own Walk enforces for
// its closed expression/declaration set.
func Children(n Node) []Node {
	switch x := n.(type) {
	case *SymExpr:
		return nil
	case *DefExpr:
		if x.Sym == nil {
			return nil
		}
		return []Node{x.Sym}
	case *CallExpr:
		out := []Node{x.Callee}
		return append(out, x.Actuals.Items()...)
	case *NamedExpr:
		return []Node{x.Actual}

	case *BlockStmt:
		return x.Stmts.Items()
	case *GotoStmt:
		return nil
	case *ExprStmt:
		if x.X == nil {
			return nil
		}
		return []Node{x.X}
	case *ReturnStmt:
		if x.Value == nil {
			return nil
		}
		return []Node{x.Value}
	case *CondStmt:
		out := []Node{x.Cond, x.Then}
		if x.Else != nil {
			out = append(out, x.Else)
		}
		return out

	case *VarSymbol:
		if x.VarType == nil {
			return nil
		}
		return []Node{x.VarType}
	case *ArgSymbol:
		if x.ArgType == nil {
			return nil
		}
		return []Node{x.ArgType}
	case *FnSymbol:
		var out []Node
		out = append(out, x.Formals.Items()...)
		if x.FnType != nil {
			out = append(out, x.FnType)
		}
		if x.RetType != nil {
			out = append(out, x.RetType)
		}
		if x.ThisArg != nil {
			out = append(out, x.ThisArg)
		}
		if x.Body != nil {
			out = append(out, x.Body)
		}
		return out
	case *TypeSymbol:
		if x.SymType == nil {
			return nil
		}
		return []Node{x.SymType}
	case *LabelSymbol:
		return nil
	case *ModuleSymbol:
		var out []Node
		out = append(out, x.Body.Items()...)
		if x.InitFn != nil {
			out = append(out, x.InitFn)
		}
		return out
	case *UnresolvedSymbol:
		return nil

	case *PrimitiveType:
		return nil
	case *ClassType:
		return nil

	default:
		panic(fmt.Sprintf("ast: Children: unexpected node type %T", n))
	}
}

// CollectPreorder returns root and every descendant, parent before
// children, descending into everything (including symbol bodies).
func CollectPreorder(root Node) []Node {
	var out []Node
	var visit func(Node)
	visit = func(n Node) {
		out = append(out, n)
		for _, c := range Children(n) {
			visit(c)
		}
	}
	visit(root)
	return out
}

// CollectPostorder returns root and every descendant, children before
// their parent.
func CollectPostorder(root Node) []Node {
	var out []Node
	var visit func(Node)
	visit = func(n Node) {
		for _, c := range Children(n) {
			visit(c)
		}
		out = append(out, n)
	}
	visit(root)
	return out
}

// CollectTop returns root and its descendants but does not descend
// into a Symbol encountered below the root — such a symbol is emitted
// but its body is left unwalked. root itself is always descended into
// even when it is a Symbol, so CollectTop(module) yields the module's
// immediate declarations without reaching into every function body.
func CollectTop(root Node) []Node {
	var out []Node
	var visit func(n Node, isRoot bool)
	visit = func(n Node, isRoot bool) {
		out = append(out, n)
		if !isRoot {
			if _, isSymbol := n.(Symbol); isSymbol {
				return
			}
		}
		for _, c := range Children(n) {
			visit(c, false)
		}
	}
	visit(root, true)
	return out
}

// ResetLocation sets (file, line) on n and every descendant.
func ResetLocation(n Node, file string, line int) {
	pos := Pos{File: file, Line: line}
	for _, d := range CollectPreorder(n) {
		d.SetPos(pos)
	}
}

// ResetLocationList applies ResetLocation to every element of l — the
// AList overload the original also exposes (reset_file_info(AList*)),
// since a parser conveniently attaches one file/line pair to a whole
// statement list at a time.
func ResetLocationList(l *AList, file string, line int) {
	for _, item := range l.Items() {
		ResetLocation(item, file, line)
	}
}

// ClearLocation resets n and every descendant's position to the
// ("<internal>", -1) sentinel, NoPos.
func ClearLocation(n Node) {
	for _, d := range CollectPreorder(n) {
		d.SetPos(NoPos)
	}
}

// ClearLocationList is the AList overload of ClearLocation.
func ClearLocationList(l *AList) {
	for _, item := range l.Items() {
		ClearLocation(item)
	}
}
