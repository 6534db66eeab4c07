// Package diag is the diagnostics collaborator (§7): two channels, user
// errors and internal errors, plus the process-lifecycle hooks
// (clean_exit, signal catching) the core traps to rather than
// recovering locally.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/arclang/ifcore/ast"
)

// UserError is a non-resumable, source-located diagnostic reporting a
// malformed program: a nested module not at module level, an
// unresolved name, a duplicate scope binding that isn't a placeholder.
type UserError struct {
	Pos ast.Pos
	Msg string
}

func (e *UserError) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// Position reports where in the source the error was raised, matching
// the Position() accessor cue/errors.Error exposes on its own
// positional errors.
func (e *UserError) Position() ast.Pos { return e.Pos }

// Newf builds a UserError at pos.
func Newf(pos ast.Pos, format string, args ...any) *UserError {
	return &UserError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// List accumulates UserErrors in report order — insertion order,
// matching the core's determinism guarantee (§5) — for a pass that
// wants to keep going and report everything wrong rather than bailing
// on the first failure.
type List struct {
	errs []*UserError
}

// Add appends e to the list.
func (l *List) Add(e *UserError) { l.errs = append(l.errs, e) }

// Errf builds and appends a UserError in one call.
func (l *List) Errf(pos ast.Pos, format string, args ...any) {
	l.Add(Newf(pos, format, args...))
}

// Len reports how many errors have been reported.
func (l *List) Len() int { return len(l.errs) }

// Errors returns a defensive copy of the reported errors, in order.
func (l *List) Errors() []*UserError {
	out := make([]*UserError, len(l.errs))
	copy(out, l.errs)
	return out
}

// Print renders every error, one per line, to w.
func (l *List) Print(w io.Writer) {
	for _, e := range l.errs {
		fmt.Fprintln(w, e.Error())
	}
}

// Err returns l as an error if it holds any, or nil.
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

func (l *List) Error() string {
	var b strings.Builder
	for i, e := range l.errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}
