package if1

import "github.com/arclang/ifcore/diag"

// intTypeNames mirrors int_type_names[IF1_INT_TYPE_NUM][2]: row 0 is
// bool, which has no signed counterpart (empty string); rows 1-4 are
// the sized integers.
var intTypeNames = [5][2]string{
	{"bool", ""},
	{"uint8", "int8"},
	{"uint16", "int16"},
	{"uint32", "int32"},
	{"uint64", "int64"},
}

var floatTypeNames = [3]string{"float32", "float64", "float128"}
var floatTypeSizes = [3]int{32, 64, 128}

// SetPrimitiveTypes populates the integer and floating builtin types
// by name (§4.6, if1_set_primitive_types): bit width for the sized
// integers is 8 << (s-1) — s=1 (uint8/int8) is 8 bits, s=4
// (uint64/int64) is 64 — matching the original table exactly. bool
// (s=0) is special-cased to a 1-bit width rather than evaluating that
// formula, since 8 << (0-1) is a negative shift the original's own
// table computes only because C's shift-by-negative is unchecked;
// preserving that specific UB isn't meaningful in Go.
func (b *Builder) SetPrimitiveTypes() {
	for signed := 0; signed < 2; signed++ {
		for s := 0; s < len(intTypeNames); s++ {
			name := intTypeNames[s][signed]
			if name == "" {
				continue
			}
			sym, ok := b.GetBuiltin(name)
			if !ok {
				diag.Internalf(nil, "if1: unable to find builtin type %q", name)
			}
			bits := 1
			if s > 0 {
				bits = 8 << (s - 1)
			}
			b.setIntType(sym, signed == 1, bits)
		}
	}
	for s, name := range floatTypeNames {
		sym, ok := b.GetBuiltin(name)
		if !ok {
			diag.Internalf(nil, "if1: unable to find builtin type %q", name)
		}
		b.setFloatType(sym, floatTypeSizes[s])
	}
}

func (b *Builder) setIntType(sym *Sym, signed bool, bits int) {
	sym.TypeKind = TypePrimitive
	sym.Signed = signed
	sym.BitWidth = bits
}

func (b *Builder) setFloatType(sym *Sym, bits int) {
	sym.TypeKind = TypePrimitive
	sym.Signed = true
	sym.BitWidth = bits
}
