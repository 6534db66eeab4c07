package ast

// AList is the core's single ordered-list container (§3.2 glossary:
// "ordered list container; child of a parent node; each element knows
// its enclosing list"). It owns its elements (§5): removing an element
// from the tree always goes through AList.Remove, which clears the
// element's back-pointer to this list but does not otherwise touch its
// other back-links — that is astutil's job.
type AList struct {
	items []Node
}

// NewAList returns an empty list.
func NewAList() *AList { return &AList{} }

// Len reports the number of elements.
func (l *AList) Len() int { return len(l.items) }

// At returns the i'th element in structural order.
func (l *AList) At(i int) Node { return l.items[i] }

// Items returns a defensive copy of the element slice in order; the
// result is safe to range over while the caller separately mutates
// the list.
func (l *AList) Items() []Node {
	out := make([]Node, len(l.items))
	copy(out, l.items)
	return out
}

// IndexOf reports n's position in this list, or -1 if n is not
// currently a member of it.
func (l *AList) IndexOf(n Node) int {
	b := n.Base()
	if b.list != l {
		return -1
	}
	return b.listIdx
}

// Append adds n as the new last element.
func (l *AList) Append(n Node) {
	l.insertAt(len(l.items), n)
}

// InsertBefore inserts n immediately before ref, which must already be
// a member of this list.
func (l *AList) InsertBefore(ref, n Node) {
	idx := l.IndexOf(ref)
	if idx < 0 {
		panic("ast: InsertBefore: ref is not a member of this list")
	}
	l.insertAt(idx, n)
}

// InsertAfter inserts n immediately after ref, which must already be a
// member of this list.
func (l *AList) InsertAfter(ref, n Node) {
	idx := l.IndexOf(ref)
	if idx < 0 {
		panic("ast: InsertAfter: ref is not a member of this list")
	}
	l.insertAt(idx+1, n)
}

func (l *AList) insertAt(idx int, n Node) {
	b := n.Base()
	if b.list != nil {
		panic("ast: node is already a member of an AList")
	}
	l.items = append(l.items, nil)
	copy(l.items[idx+1:], l.items[idx:])
	l.items[idx] = n
	b.list = l
	l.reindexFrom(idx)
}

// Remove detaches n from the list. It is a no-op if n is not a member
// of this list.
func (l *AList) Remove(n Node) {
	idx := l.IndexOf(n)
	if idx < 0 {
		return
	}
	b := n.Base()
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	b.list = nil
	b.listIdx = 0
	l.reindexFrom(idx)
}

func (l *AList) reindexFrom(start int) {
	for i := start; i < len(l.items); i++ {
		l.items[i].Base().listIdx = i
	}
}
