package diag

import (
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/kr/pretty"

	"github.com/arclang/ifcore/ast"
)

// InternalError is the payload of a panic raised by Internalf: a
// violated structural invariant (§7) — an AST variant missing from a
// switch, a pre-existing scope already present, a type-mismatched
// substitution. ID tags the occurrence so independent crash reports
// carrying the same message can still be told apart once aggregated
// by a driver's logging.
type InternalError struct {
	ID           uuid.UUID
	CompilerFile string
	CompilerLine int
	Node         ast.Node
	UserPos      ast.Pos
	Msg          string
}

func (e *InternalError) Error() string {
	loc := fmt.Sprintf("%s(%d)", e.CompilerFile, e.CompilerLine)
	if e.UserPos.IsValid() {
		return fmt.Sprintf("INTERNAL ERROR in %s: %s (%s)", loc, e.Msg, e.UserPos)
	}
	return fmt.Sprintf("INTERNAL ERROR in %s: %s", loc, e.Msg)
}

// Internalf raises an internal fatal error. It always panics with
// *InternalError: there is no local recovery inside the core (§7),
// only Recover/CleanExit at the driver boundary decide the process's
// fate. node, if non-nil, is pretty-printed into the message so the
// report carries full node state rather than a bare one-line
// description.
func Internalf(node ast.Node, format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	msg := fmt.Sprintf(format, args...)
	if node != nil {
		msg = fmt.Sprintf("%s\n%# v", msg, pretty.Formatter(node))
	}
	var pos ast.Pos
	if node != nil {
		pos = node.Pos()
	}
	panic(&InternalError{
		ID:           uuid.New(),
		CompilerFile: file,
		CompilerLine: line,
		Node:         node,
		UserPos:      pos,
		Msg:          msg,
	})
}

// Warn is the hook Warningf reports through. The default writes to
// stderr; a driver may replace it to route warnings into its own log.
var Warn = func(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// Warningf raises a non-fatal internal warning (§7): an inconsistency
// worth surfacing but not worth aborting the compilation for.
func Warningf(format string, args ...any) {
	Warn(fmt.Sprintf("INTERNAL WARNING: %s", fmt.Sprintf(format, args...)))
}

// CleanExit is the driver-provided clean_exit collaborator (§7),
// invoked by Recover once an InternalError has propagated to the top
// of the core. The default implementation prints the error and exits
// with status 2; tests replace it to assert on the error instead of
// tearing down the test binary.
var CleanExit = func(err *InternalError) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(2)
}

// Recover should be deferred at the driver's entry point around each
// call into the core. It routes a recovered *InternalError to
// CleanExit; any other panic value is not part of this package's
// fatal-error contract and is re-raised unchanged.
func Recover() {
	r := recover()
	if r == nil {
		return
	}
	ierr, ok := r.(*InternalError)
	if !ok {
		panic(r)
	}
	CleanExit(ierr)
}
