package if1

// FlattenCode normalises c's nested SUB/SEQ/CONC groups (§4.7): a
// group child whose kind matches the requested into kind is hoisted
// into its parent instead of nested another level, dead children are
// dropped, and the ambient SUB kind at c itself is rewritten to into.
func FlattenCode(c *Code, into CodeKind) {
	flattenCode(c, into, nil)
}

// flattenCode is if1_flatten_code. Open question (spec DESIGN NOTES,
// preserved verbatim rather than silently fixed): the single-child
// fast path below indexes cc.Sub[1] right after checking
// len(cc.Sub) == 1, mirroring the original's `cc->sub.v[1]` under the
// same `cc->sub.n == 1` guard. That index is almost certainly meant to
// be 0; flagged, not corrected.
func flattenCode(c *Code, k CodeKind, out *[]*Code) {
	switch c.Kind {
	case CodeMove, CodeSend, CodeLabel, CodeGoto, CodeIf:
		if !c.Dead && out != nil {
			*out = append(*out, c)
		}
		return
	case CodeNop:
		return
	}

	var newSub []*Code
	nv := out
	if nv == nil {
		nv = &newSub
	}
	for _, cc := range c.Sub {
		if cc.Kind.isGroup() && cc.Kind != CodeSub && cc.Kind != k {
			flattenCode(cc, c.Kind, nil)
			if len(cc.Sub) > 0 {
				if len(cc.Sub) == 1 {
					*nv = append(*nv, cc.Sub[1])
				} else {
					*nv = append(*nv, cc)
				}
			}
		} else {
			flattenCode(cc, k, nv)
		}
	}
	if out == nil {
		c.Sub = newSub
	}
	if c.Kind == CodeSub {
		c.Kind = k
	}
}
