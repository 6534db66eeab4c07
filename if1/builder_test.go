package if1_test

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/arclang/ifcore/if1"
)

func TestRegisterSymAssignsSequentialIDs(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	a := b.RegisterSym(&if1.Sym{}, "a")
	c := b.RegisterSym(&if1.Sym{}, "")

	qt.Assert(t, qt.Equals(a.ID, 0))
	qt.Assert(t, qt.Equals(c.ID, 1))
	qt.Assert(t, qt.Equals(a.Name, "a"))
	qt.Assert(t, qt.Equals(c.Name, ""))
	qt.Assert(t, qt.HasLen(b.AllSyms, 2))
}

func TestConstCanonicalisesEqualNumericSpellings(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	ty := b.RegisterSym(&if1.Sym{}, "int32")
	ty.TypeKind = if1.TypePrimitive
	ty.BitWidth = 32

	one := b.Const(ty, "1")
	oneDotZero := b.Const(ty, "1.0")

	qt.Assert(t, qt.Equals(one, oneDotZero))
}

func TestConstKeepsDistinctTextForNonNumericType(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	strTy := b.RegisterSym(&if1.Sym{}, "string")

	a := b.Const(strTy, "abc")
	c := b.Const(strTy, "def")

	qt.Assert(t, qt.Not(qt.Equals(a, c)))
	qt.Assert(t, qt.Equals(a.Constant, "abc"))
}

func TestMakeSymbolIsUniquedAndSelfTyped(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	s1 := b.MakeSymbol("foo")
	s2 := b.MakeSymbol("foo")
	s3 := b.MakeSymbol("bar")

	qt.Assert(t, qt.Equals(s1, s2))
	qt.Assert(t, qt.Not(qt.Equals(s1, s3)))
	qt.Assert(t, qt.Equals(s1.Type, s1))
	qt.Assert(t, qt.Equals(s3.Type, s1))
}

func TestSetBuiltinRoundTrips(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	sym := b.RegisterSym(&if1.Sym{}, "init")
	b.SetBuiltin(sym, "init")

	got, ok := b.GetBuiltin("init")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, sym))

	// Re-registering the same Sym under the same name is a no-op.
	b.SetBuiltin(sym, "init")
}

func TestSetBuiltinPanicsOnDuplicate(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	a := b.RegisterSym(&if1.Sym{}, "a")
	c := b.RegisterSym(&if1.Sym{}, "c")
	b.SetBuiltin(a, "init")

	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
	}()
	b.SetBuiltin(c, "init")
	t.Fatal("expected a panic")
}

func TestMoveGotoLabelBuildASimpleLoop(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	x := b.RegisterSym(&if1.Sym{}, "x")
	y := b.RegisterSym(&if1.Sym{}, "y")

	var code *if1.Code
	top := b.Label(&code, nil, nil)
	b.Move(&code, x, y, nil)
	b.Goto(&code, top)

	qt.Assert(t, qt.Equals(code.Kind, if1.CodeSub))
	qt.Assert(t, qt.HasLen(code.Sub, 3))
	qt.Assert(t, qt.Equals(code.Sub[0].Kind, if1.CodeLabel))
	qt.Assert(t, qt.Equals(code.Sub[1].Kind, if1.CodeMove))
	qt.Assert(t, qt.Equals(code.Sub[2].Kind, if1.CodeGoto))
	qt.Assert(t, qt.Equals(code.Sub[2].Label[0], top))
}

func TestOperatorRequiresAtLeastOneOperand(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
	}()
	var code *if1.Code
	b.Operator(&code, nil, nil, nil)
	t.Fatal("expected a panic")
}

func TestLoopDoWhileWhenBeforeIsBody(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	cond := b.RegisterSym(&if1.Sym{}, "cond")
	cont := b.AllocLabel()
	brk := b.AllocLabel()

	body := &if1.Code{Kind: if1.CodeSend}
	var into *if1.Code
	ifCode := b.Loop(&into, cont, brk, cond, body, nil, nil, body, nil)

	qt.Assert(t, qt.Equals(ifCode.Kind, if1.CodeIf))
	qt.Assert(t, qt.Equals(ifCode.Label[0], cont))
	qt.Assert(t, qt.Equals(ifCode.Label[1], brk))
}

func TestClosureRegistersArgsAndCode(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	f := b.RegisterSym(&if1.Sym{}, "f")
	a := b.RegisterSym(&if1.Sym{}, "a")
	code := &if1.Code{Kind: if1.CodeNop}

	b.Closure(f, code, []*if1.Sym{a})

	qt.Assert(t, qt.HasLen(b.AllClosures, 1))
	qt.Assert(t, qt.Equals(b.AllClosures[0], f))
	qt.Assert(t, qt.HasLen(f.Has, 1))
	qt.Assert(t, qt.Equals(f.Has[0], a))
	qt.Assert(t, qt.Equals(f.Code, code))
}

func TestSetPrimitiveTypesStampsBoolAndSizedInts(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	for _, name := range []string{"bool", "uint8", "int8", "uint16", "int16", "uint32", "int32", "uint64", "int64", "float32", "float64", "float128"} {
		b.SetBuiltin(b.RegisterSym(&if1.Sym{}, name), name)
	}

	b.SetPrimitiveTypes()

	boolSym, _ := b.GetBuiltin("bool")
	u8, _ := b.GetBuiltin("uint8")
	i64, _ := b.GetBuiltin("int64")
	f64, _ := b.GetBuiltin("float64")

	qt.Assert(t, qt.Equals(boolSym.BitWidth, 1))
	qt.Assert(t, qt.Equals(u8.BitWidth, 8))
	qt.Assert(t, qt.IsFalse(u8.Signed))
	qt.Assert(t, qt.Equals(i64.BitWidth, 64))
	qt.Assert(t, qt.IsTrue(i64.Signed))
	qt.Assert(t, qt.Equals(f64.BitWidth, 64))
}

func TestSetPrimitiveTypesFatalOnMissingBuiltin(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
	}()
	b.SetPrimitiveTypes()
	t.Fatal("expected a panic")
}

func TestFinalizeFatalsWithoutInitBuiltin(t *testing.T) {
	b := if1.NewBuilder(if1.Config{})
	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
	}()
	b.Finalize()
	t.Fatal("expected a panic")
}
