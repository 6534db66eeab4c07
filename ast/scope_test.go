package ast

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestScopeDefineLookup(t *testing.T) {
	outer := NewScope(nil, nil)
	x := NewVarSymbol("x", DtUnknown)
	qt.Assert(t, qt.IsNil(outer.Define(x)))

	got, ok := outer.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, Symbol(x)))

	_, ok = outer.Lookup("y")
	qt.Assert(t, qt.IsFalse(ok))
}

func TestScopeLookupWalksParentChain(t *testing.T) {
	outer := NewScope(nil, nil)
	inner := NewScope(outer, nil)
	x := NewVarSymbol("x", DtUnknown)
	qt.Assert(t, qt.IsNil(outer.Define(x)))

	got, ok := inner.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, Symbol(x)))
}

func TestScopeDuplicateBindingIsUserError(t *testing.T) {
	s := NewScope(nil, nil)
	a := NewVarSymbol("x", DtUnknown)
	b := NewVarSymbol("x", DtUnknown)
	qt.Assert(t, qt.IsNil(s.Define(a)))

	err := s.Define(b)
	if err == nil {
		t.Fatal("expected a duplicate-binding error")
	}
	if _, ok := err.(*DuplicateBindingError); !ok {
		t.Fatalf("expected *DuplicateBindingError, got %T", err)
	}
	got, _ := s.Lookup("x")
	qt.Assert(t, qt.Equals(got, Symbol(a)))
}

func TestScopeDefineSilentlyReplacesUnresolved(t *testing.T) {
	s := NewScope(nil, nil)
	placeholder := NewUnresolvedSymbol("x")
	real := NewVarSymbol("x", DtUnknown)
	qt.Assert(t, qt.IsNil(s.Define(placeholder)))
	qt.Assert(t, qt.IsNil(s.Define(real)))

	got, _ := s.Lookup("x")
	qt.Assert(t, qt.Equals(got, Symbol(real)))
	qt.Assert(t, qt.Equals(len(s.Symbols()), 1))
}

func TestScopeUndefine(t *testing.T) {
	s := NewScope(nil, nil)
	x := NewVarSymbol("x", DtUnknown)
	qt.Assert(t, qt.IsNil(s.Define(x)))
	s.Undefine(x)
	_, ok := s.Lookup("x")
	qt.Assert(t, qt.IsFalse(ok))
}
