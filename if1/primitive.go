package if1

// Primitive is a recognised built-in operation a SEND may be tagged
// with (§4.7): liveness treats a functional primitive's SEND as
// eligible for elimination when its result is dead, the same way
// is_functional gates mark_live/mark_dead in the original.
type Primitive struct {
	Name          string
	NonFunctional bool
	Recognize     func(c *Code) bool
}

// PrimitiveRegistry holds the primitives a builder recognises;
// FindPrimitives consults it to stamp every Code.Prim before DCE and
// flattening run.
type PrimitiveRegistry struct {
	prims []*Primitive
}

// NewPrimitiveRegistry returns an empty registry.
func NewPrimitiveRegistry() *PrimitiveRegistry {
	return &PrimitiveRegistry{}
}

// Register adds p to the registry. Primitives are tried in
// registration order; the first match wins.
func (r *PrimitiveRegistry) Register(p *Primitive) {
	r.prims = append(r.prims, p)
}

// Find returns the registry's best match for c, or nil.
func (r *PrimitiveRegistry) Find(c *Code) *Primitive {
	if c.Kind != CodeSend {
		return nil
	}
	for _, p := range r.prims {
		if p.Recognize != nil && p.Recognize(c) {
			return p
		}
	}
	return nil
}

// FindPrimitives stamps c.Prim and recurses into c's children, in that
// order — matching find_primitives's own traversal exactly (parent
// before children, not the other way around).
func (r *PrimitiveRegistry) FindPrimitives(c *Code) {
	c.Prim = r.Find(c)
	for _, sub := range c.Sub {
		r.FindPrimitives(sub)
	}
}

// findPrimitives recognises primitives across every closure's code,
// before DCE and flattening run (if1_finalize's find_primitives(p)).
func (b *Builder) findPrimitives() {
	for _, f := range b.AllClosures {
		if f.Code != nil {
			b.Primitives.FindPrimitives(f.Code)
		}
	}
}
