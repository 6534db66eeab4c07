package ast

// PrimitiveKind classifies a PrimitiveType for the IF1 builder's
// set_primitive_types step (§4.6); Unspecified is the value every
// user-defined primitive carries until that step stamps it.
type PrimitiveKind int

const (
	KindUnspecified PrimitiveKind = iota
	KindBool
	KindInt
	KindFloat
)

// PrimitiveType is a built-in scalar type (bool, the sized integers,
// the floats). Kind/Signed/BitWidth are zero-valued until
// if1.SetPrimitiveTypes stamps the builtins looked up by name.
type PrimitiveType struct {
	NodeBase
	TypeName string
	Kind     PrimitiveKind
	Signed   bool
	BitWidth int
}

func (*PrimitiveType) typeNode() {}

func NewPrimitiveType(name string) *PrimitiveType {
	return &PrimitiveType{NodeBase: newNodeBase(), TypeName: name}
}

// ClassType is a user-defined class/record type. StructScope is
// allocated by the mutation engine the moment a TypeSymbol naming this
// type is defined (§4.4 rule 4), with Sym recording that owner so
// parent_insert_help's "ClassType's symbol" derivation rule (§4.4
// table) can find it again.
type ClassType struct {
	NodeBase
	TypeName    string
	StructScope *Scope
	Sym         *TypeSymbol
}

func (*ClassType) typeNode() {}

func NewClassType(name string) *ClassType {
	return &ClassType{NodeBase: newNodeBase(), TypeName: name}
}

// The three distinguished sentinel types (§3.2). They are ordinary
// *PrimitiveType values distinguished only by identity — reference
// equality against these package-level vars is the intended test, the
// same way the source distinguishes dtUnknown/dtMethodToken/
// dtSetterToken by pointer.
var (
	DtUnknown     = NewPrimitiveType("<unknown>")
	DtMethodToken = NewPrimitiveType("<method-token>")
	DtSetterToken = NewPrimitiveType("<setter-token>")
)
