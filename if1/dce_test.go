package if1_test

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/arclang/ifcore/if1"
)

// buildLiveClosure builds a closure whose body computes y := x then
// returns, with no dead branch: SimpleDeadCodeElimination should leave
// everything live.
func buildLiveClosure(b *if1.Builder) (*if1.Sym, *if1.Sym, *if1.Sym) {
	f := b.RegisterSym(&if1.Sym{}, "f")
	x := b.RegisterSym(&if1.Sym{}, "x")
	y := b.RegisterSym(&if1.Sym{}, "y")
	f.Ret = y

	var code *if1.Code
	b.Move(&code, x, y, nil)
	b.Closure(f, code, []*if1.Sym{x})
	return f, x, y
}

func TestSimpleDeadCodeEliminationKeepsUsedMoveLive(t *testing.T) {
	b := if1.NewBuilder(if1.Config{DCE: true})
	f, x, y := buildLiveClosure(b)

	b.SimpleDeadCodeElimination()

	qt.Assert(t, qt.IsTrue(f.Live))
	qt.Assert(t, qt.IsTrue(x.Live))
	qt.Assert(t, qt.IsTrue(y.Live))
	qt.Assert(t, qt.IsFalse(f.Code.Sub[0].Dead))
}

func TestSimpleDeadCodeEliminationDropsUnreadMove(t *testing.T) {
	b := if1.NewBuilder(if1.Config{DCE: true})
	f := b.RegisterSym(&if1.Sym{}, "f")
	x := b.RegisterSym(&if1.Sym{}, "x")
	dead := b.RegisterSym(&if1.Sym{}, "dead")

	var code *if1.Code
	b.Move(&code, x, dead, nil)
	b.Closure(f, code, []*if1.Sym{x})

	b.SimpleDeadCodeElimination()

	qt.Assert(t, qt.IsTrue(code.Sub[0].Dead))
	qt.Assert(t, qt.IsFalse(dead.Live))
}

func TestSimpleDeadCodeEliminationMarksUnreachableGotoTargetDead(t *testing.T) {
	b := if1.NewBuilder(if1.Config{DCE: true})
	f := b.RegisterSym(&if1.Sym{}, "f")

	var code *if1.Code
	skip := b.AllocLabel()
	b.Goto(&code, skip) // always taken: falls straight past the dead label below
	deadLabel := b.Label(&code, nil, b.AllocLabel())
	x := b.RegisterSym(&if1.Sym{}, "x")
	deadVal := b.RegisterSym(&if1.Sym{}, "deadVal")
	b.Move(&code, x, deadVal, nil)
	b.Label(&code, nil, skip)

	b.Closure(f, code, []*if1.Sym{x})
	b.SimpleDeadCodeElimination()

	qt.Assert(t, qt.IsFalse(deadLabel.Live))
	qt.Assert(t, qt.IsTrue(skip.Live))
}

func TestFinalizeMarksEverythingLiveWhenDCEDisabled(t *testing.T) {
	b := if1.NewBuilder(if1.Config{DCE: false})
	initSym := b.RegisterSym(&if1.Sym{}, "init")
	b.SetBuiltin(initSym, "init")

	f := b.RegisterSym(&if1.Sym{}, "f")
	x := b.RegisterSym(&if1.Sym{}, "x")
	unused := b.RegisterSym(&if1.Sym{}, "unused")

	var code *if1.Code
	b.Move(&code, x, unused, nil)
	b.Closure(f, code, []*if1.Sym{x})

	b.Finalize()

	qt.Assert(t, qt.IsTrue(unused.Live))
	qt.Assert(t, qt.Equals(b.Top, initSym))
}
