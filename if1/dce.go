package if1

import "github.com/mpvl/unique"

// labelsByID sorts *Label by id so mpvl/unique can drop adjacent
// duplicates out of a closure's per-round "just went live" label
// worklist — the same label can be pushed twice in one markCodeLive
// pass (once from a GOTO, once from either arm of an IF), and dedup
// keeps that worklist from growing without bound across iterations.
type labelsByID []*Label

func (l labelsByID) Len() int           { return len(l) }
func (l labelsByID) Less(i, j int) bool { return l[i].ID < l[j].ID }
func (l labelsByID) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l labelsByID) Equal(i, j int) bool { return l[i] == l[j] }

func dedupLabels(l []*Label) []*Label {
	w := labelsByID(l)
	return w[:unique.Sort(w)]
}

// markSymLive marks s and everything it transitively references live
// (mark_sym_live), reporting whether s was not already live.
func markSymLive(s *Sym) bool {
	if s.Live {
		return false
	}
	s.Live = true
	if s.Type != nil {
		markSymLive(s.Type)
	}
	if s.In != nil {
		markSymLive(s.In)
	}
	for _, ss := range s.Implements {
		markSymLive(ss)
	}
	for _, ss := range s.Includes {
		markSymLive(ss)
	}
	if s.Constraints != nil {
		for _, ss := range *s.Constraints {
			markSymLive(ss)
		}
	}
	for _, ss := range s.Has {
		markSymLive(ss)
	}
	return true
}

// isFunctional reports whether c's recognised primitive has no
// side effects beyond producing its result (is_functional).
func isFunctional(c *Code) bool {
	return c.Prim != nil && !c.Prim.NonFunctional
}

// markCodeLive flows code_live through a closure's body in program
// order (§4.7): a GOTO or IF consumes the current liveness to mark its
// target label(s) live then drops it; a LABEL picks liveness back up
// once its label is live. pending accumulates labels that flipped live
// this call, for the caller to dedup between rounds.
func markCodeLive(c *Code, codeLive *bool, pending *[]*Label) bool {
	changed := false
	if *codeLive {
		c.Live = true
	}

	switch c.Kind {
	case CodeGoto:
		if *codeLive {
			if !c.Label[0].Live {
				c.Label[0].Live = true
				*pending = append(*pending, c.Label[0])
				changed = true
			}
			*codeLive = false
		}
	case CodeIf:
		if *codeLive {
			if !c.Label[0].Live || !c.Label[1].Live {
				c.Label[0].Live = true
				c.Label[1].Live = true
				*pending = append(*pending, c.Label[0], c.Label[1])
				changed = true
			}
			*codeLive = false
		}
	case CodeLabel:
		if c.Label[0].Live {
			*codeLive = true
			c.Live = true
		}
	case CodeMove, CodeSend:
		// no effect on code_live
	default:
		for _, sub := range c.Sub {
			if markCodeLive(sub, codeLive, pending) {
				changed = true
			}
		}
	}
	return changed
}

// markLive propagates symbol liveness over already-code-live
// instructions (§4.7): an IF's condition, a MOVE whose destination is
// live, or a SEND whose result is live (or has none, or is
// non-functional) makes its operands live.
func markLive(c *Code) bool {
	if !c.Live {
		return false
	}
	changed := false
	switch c.Kind {
	case CodeGoto:
	case CodeIf:
		if markSymLive(c.RVals[0]) {
			changed = true
		}
	case CodeMove:
		if c.LVals[0].Live {
			if markSymLive(c.RVals[0]) {
				changed = true
			}
		}
	case CodeSend:
		if len(c.LVals) == 0 || c.LVals[0].Live || !isFunctional(c) {
			for _, r := range c.RVals {
				if markSymLive(r) {
					changed = true
				}
			}
			for _, l := range c.LVals {
				if markSymLive(l) {
					changed = true
				}
			}
		}
	default:
		for _, sub := range c.Sub {
			if markLive(sub) {
				changed = true
			}
		}
	}
	return changed
}

// markDead sets Dead on whatever markLive's fixed point left
// unreachable or unused (§4.7).
func markDead(c *Code) {
	if !c.Live {
		c.Dead = true
	}
	switch c.Kind {
	case CodeLabel:
		if !c.Label[0].Live {
			c.Dead = true
		}
	case CodeMove:
		if !c.LVals[0].Live {
			c.Dead = true
		}
	case CodeSend:
		if isFunctional(c) && !c.LVals[0].Live {
			c.Dead = true
		}
	}
	for _, sub := range c.Sub {
		markDead(sub)
	}
}

// SimpleDeadCodeElimination runs the three fixed-point liveness
// propagations described for IF1 (§4.7) over every registered closure:
// root symbols, then code reachability, then symbol liveness, before
// marking dead code.
func (b *Builder) SimpleDeadCodeElimination() {
	for _, f := range b.AllClosures {
		markSymLive(f)
		if f.Ret != nil {
			markSymLive(f.Ret)
		}
		for _, a := range f.Has {
			markSymLive(a)
		}
	}

	for _, f := range b.AllClosures {
		if f.Code != nil {
			codeLive := true
			var pending []*Label
			for markCodeLive(f.Code, &codeLive, &pending) {
				pending = dedupLabels(pending)
			}
		}
	}

	again := true
	for again {
		again = false
		for _, f := range b.AllClosures {
			if f.Code != nil {
				if markLive(f.Code) {
					again = true
				}
			}
		}
	}

	for _, f := range b.AllClosures {
		if f.Code != nil {
			markDead(f.Code)
		}
	}
}
