// Package ast defines the closed set of syntactic node kinds for the
// core — expressions, statements, symbols, and types — along with the
// back-link fields (parentExpr/parentStmt/parentSymbol/parentScope)
// that the mutation engine (package astutil) keeps consistent, and the
// traversal helpers that walk them.
//
// Every concrete node type embeds NodeBase, which is the only place a
// node's identity, position, and back-links live; the constructors
// leave the back-links zero, and the only writes in this package are
// Scope.Define/Undefine setting and clearing a defined symbol's
// ParentScope — ownership of keeping them correct under edits belongs
// to astutil.
package ast

import "sync/atomic"

var nodeSeq int64

// NodeBase is embedded by every concrete node type. It carries the
// node's unique id, its source position, and the four back-links every
// variant may have populated (§3.2): ParentExpr, ParentStmt,
// ParentSymbol, ParentScope. Which of these apply to a given node is
// governed by the insertion rules in §4.4, not by the node's static
// type — a Symbol node's own ParentExpr/ParentStmt are cleared on
// insertion (rule 2), for instance.
type NodeBase struct {
	id  int64
	pos Pos

	ParentExpr   Expr
	ParentStmt   Stmt
	ParentSymbol Symbol
	ParentScope  *Scope

	// list is the AList this node currently lives in, if any; set by
	// AList.insertAt/Append and cleared by AList.Remove.
	list    *AList
	listIdx int
}

// newNodeBase assigns the node a fresh, process-unique id and the
// NoPos sentinel location.
func newNodeBase() NodeBase {
	return NodeBase{id: atomic.AddInt64(&nodeSeq, 1), pos: NoPos}
}

func (b *NodeBase) ID() int64      { return b.id }
func (b *NodeBase) Pos() Pos       { return b.pos }
func (b *NodeBase) SetPos(p Pos)   { b.pos = p }
func (b *NodeBase) Base() *NodeBase { return b }

// EnclosingList reports the AList this node is currently an element
// of, or nil if it is not list-resident (e.g. a symbol referenced only
// via a back-link).
func (b *NodeBase) EnclosingList() *AList { return b.list }

// Node is the common interface of every AST entity: expressions,
// statements, symbols, and types alike.
type Node interface {
	ID() int64
	Pos() Pos
	SetPos(Pos)

	// Base returns the embedded NodeBase, giving astutil (and this
	// package's own traversal code) access to the back-link fields
	// without a type switch.
	Base() *NodeBase
}

// Expr is the marker interface for the four expression variants:
// SymExpr, DefExpr, CallExpr, NamedExpr.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the marker interface for statement variants: BlockStmt,
// GotoStmt, and the source-preserved leaf statements ExprStmt,
// ReturnStmt, CondStmt.
type Stmt interface {
	Node
	stmtNode()
}

// Symbol is the marker interface for the seven symbol variants. Every
// symbol has a Name, even if empty (UnresolvedSymbol's placeholder is
// never empty since names are what triggers lookup).
type Symbol interface {
	Node
	symbolNode()
	Name() string
}

// Type is the marker interface for type variants: PrimitiveType,
// ClassType, and the three sentinel values (dtUnknown, dtMethodToken,
// dtSetterToken).
type Type interface {
	Node
	typeNode()
}
