package if1

import "github.com/cockroachdb/apd/v3"

// canonicalConstantText renders text through apd.Decimal when typ
// looks numeric (§3 Supplemented features, J5), so distinct literal
// spellings of the same value ("1.0", "1") canonicalise to the same
// interned string and therefore the same constant Sym. Non-numeric
// types and unparsable text (string literals, symbol-typed constants)
// pass through unchanged.
func canonicalConstantText(typ *Sym, text string) (canon string, dec apd.Decimal, numeric bool) {
	if typ == nil || !typ.IsNumeric() {
		return text, apd.Decimal{}, false
	}
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return text, apd.Decimal{}, false
	}
	return d.Text('f'), *d, true
}
