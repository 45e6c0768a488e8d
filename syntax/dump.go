package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Dump writes an indented debug rendering of e, one element per line:
//
//	ModuleHeader@0..31
//	  ModuleKw@0..6 "module"
func Dump[K Kind](w io.Writer, e Element[K]) error {
	return dump(w, e, 0)
}

// DebugString returns the Dump rendering of e.
func DebugString[K Kind](e Element[K]) string {
	var sb strings.Builder
	_ = Dump(&sb, e)
	return sb.String()
}

func dump[K Kind](w io.Writer, e Element[K], depth int) error {
	r := e.TextRange()
	indent := strings.Repeat("  ", depth)
	switch x := e.(type) {
	case *Token[K]:
		_, err := fmt.Fprintf(w, "%s%s@%d..%d %q\n", indent, QuoteKindName(x.lang.KindName(x.Kind())), r.Start, r.End, x.Text())
		return err
	case *Node[K]:
		if _, err := fmt.Fprintf(w, "%s%s@%d..%d\n", indent, QuoteKindName(x.lang.KindName(x.Kind())), r.Start, r.End); err != nil {
			return err
		}
		for c := range x.ChildrenWithTokens() {
			if err := dump(w, c, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// QuoteKindName returns name unchanged when it is an identifier and as a Go
// string literal otherwise. Punctuation kinds such as "(" or "\n" then stay
// on one line of a dump.
func QuoteKindName(name string) string {
	if isIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
