package if1

import (
	"fmt"
	"io"
	"strings"
)

const maxIndent = 40

// Write renders every live symbol in b as the deterministic
// S-expression dump (§4.8, if1_write/print_syms): one (SYMBOL ...)
// form per live Sym, in id order — AllSyms is already in id order
// since ids are assigned sequentially at registration.
func Write(w io.Writer, b *Builder) error {
	var buf strings.Builder
	for _, sym := range b.AllSyms {
		if !sym.Live {
			continue
		}
		writeSymbol(&buf, sym)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// symRef renders sym's own leading form: (var "name" id) if named,
// (const "text" id) if constant, (temp id) otherwise (if1_dump_sym).
func symRef(s *Sym) string {
	switch {
	case s.Name != "":
		return fmt.Sprintf("(var %q %d)", s.Name, s.ID)
	case s.IsConstant:
		return fmt.Sprintf("(const %q %d)", s.Constant, s.ID)
	default:
		return fmt.Sprintf("(temp %d)", s.ID)
	}
}

func writeSymbol(buf *strings.Builder, sym *Sym) {
	buf.WriteString("(SYMBOL ")
	buf.WriteString(symRef(sym))
	if sym.Type != nil {
		buf.WriteString(" :TYPE ")
		buf.WriteString(symRef(sym.Type))
	}
	if sym.IsConstant {
		buf.WriteString(" :CONSTANT ")
		if sym.Type != nil && !strings.HasPrefix(sym.Constant, "<") {
			buf.WriteString(sym.Constant)
		} else {
			buf.WriteString(sym.Imm.String())
		}
	}
	if sym.Aspect != nil {
		buf.WriteString(" :ASPECT ")
		buf.WriteString(symRef(sym.Aspect))
	}
	if sym.In != nil {
		buf.WriteString(" :IN ")
		buf.WriteString(symRef(sym.In))
	}
	writeSymList(buf, " :HAS ", sym.Has)
	writeSymList(buf, " :IMPLEMENTS ", sym.Implements)
	writeSymList(buf, " :INCLUDES ", sym.Includes)
	if sym.Ret != nil {
		buf.WriteString(" :RET ")
		buf.WriteString(symRef(sym.Ret))
	}
	if sym.Cont != nil {
		buf.WriteString(" :CONT ")
		buf.WriteString(symRef(sym.Cont))
	}
	if sym.IsValueClass {
		buf.WriteString(" :VALUE true")
	}
	if sym.Code != nil {
		buf.WriteString(" :CODE\n")
		writeCode(buf, sym.Code, 1, false)
	}
	buf.WriteString(")\n")
}

func writeSymList(buf *strings.Builder, tag string, syms []*Sym) {
	if len(syms) == 0 {
		return
	}
	buf.WriteString(tag)
	buf.WriteString("(")
	for i, s := range syms {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(symRef(s))
	}
	buf.WriteString(")")
}

func indentTo(buf *strings.Builder, n int) {
	if n > maxIndent {
		n = maxIndent
	}
	buf.WriteString(strings.Repeat(" ", n))
}

// writeCode renders c at the given indent, matching print_code: a
// dead MOVE or LABEL is omitted entirely (rather than emitted with a
// :DEAD marker, unlike if1_dump_code's raw debug form); SEND's results
// render as (FUTURE ...).
func writeCode(buf *strings.Builder, c *Code, indent int, lf bool) {
	if indent > maxIndent {
		indent = maxIndent
	}
	switch c.Kind {
	case CodeSub:
		for i, sub := range c.Sub {
			childLF := true
			if i == len(c.Sub)-1 {
				childLF = lf
			}
			writeCode(buf, sub, indent, childLF)
		}
		return
	case CodeMove:
		if !c.Dead {
			indentTo(buf, indent)
			buf.WriteString("(MOVE ")
			buf.WriteString(symRef(c.RVals[0]))
			buf.WriteString(" ")
			buf.WriteString(symRef(c.LVals[0]))
			buf.WriteString(")")
		}
	case CodeSend:
		indentTo(buf, indent)
		buf.WriteString("(SEND")
		if len(c.LVals) > 0 {
			buf.WriteString(" (FUTURE ")
			for i, l := range c.LVals {
				buf.WriteString(symRef(l))
				if i < len(c.LVals)-1 {
					buf.WriteString(" ")
				}
			}
			buf.WriteString(")")
		}
		for _, r := range c.RVals {
			buf.WriteString(" ")
			buf.WriteString(symRef(r))
		}
		buf.WriteString(")")
	case CodeIf:
		indentTo(buf, indent)
		buf.WriteString("(IF ")
		buf.WriteString(symRef(c.RVals[0]))
		fmt.Fprintf(buf, " %d %d)", c.Label[0].ID, c.Label[1].ID)
	case CodeLabel:
		if !c.Dead {
			indentTo(buf, indent)
			fmt.Fprintf(buf, "(LABEL %d)", c.Label[0].ID)
		}
	case CodeGoto:
		indentTo(buf, indent)
		fmt.Fprintf(buf, "(GOTO %d)", c.Label[0].ID)
	case CodeSeq, CodeConc:
		indentTo(buf, indent)
		fmt.Fprintf(buf, "(%s\n", c.Kind)
		for i, sub := range c.Sub {
			childLF := true
			if i == len(c.Sub)-1 {
				childLF = false
			}
			writeCode(buf, sub, indent+1, childLF)
		}
		buf.WriteString(")")
	case CodeNop:
		indentTo(buf, indent)
		buf.WriteString("(NOP)")
	}
	if c.Kind != CodeSub && lf {
		buf.WriteString("\n")
	}
}
