package events

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arjunmahishi/cst/green"
	"github.com/arjunmahishi/cst/syntax"
)

// KindLookup resolves a kind name used in a script to its raw code.
type KindLookup func(name string) (green.Kind, bool)

// KindNamer renders a raw code as the name scripts use for it.
type KindNamer func(kind green.Kind) string

// Parse reads a line-oriented event script:
//
//	# comment
//	start Module
//	  token ModuleKw "module"
//	  checkpoint lhs
//	  start_at lhs Pair
//	  finish
//	finish
//
// Indentation is ignored. Token text is a Go string literal. A kind name
// that is not an identifier, such as "(" or "\n", is written as a Go string
// literal too.
func Parse(r io.Reader, lookup KindLookup) ([]Event, error) {
	var evs []Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := parseLine(line, lookup)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		evs = append(evs, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return evs, nil
}

// ParseString is Parse over a string.
func ParseString(script string, lookup KindLookup) ([]Event, error) {
	return Parse(strings.NewReader(script), lookup)
}

func parseLine(line string, lookup KindLookup) (Event, error) {
	op, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	kind := func(name string) (green.Kind, error) {
		if name == "" {
			return 0, fmt.Errorf("%s: missing kind", op)
		}
		k, ok := lookup(name)
		if !ok {
			return 0, fmt.Errorf("%s: unknown kind %q", op, name)
		}
		return k, nil
	}

	switch op {
	case "start":
		name, extra, err := cutKindName(rest)
		if err != nil {
			return Event{}, fmt.Errorf("start: %w", err)
		}
		if extra != "" {
			return Event{}, fmt.Errorf("start: unexpected argument %q", extra)
		}
		k, err := kind(name)
		return Event{Op: OpStart, Kind: k}, err
	case "token":
		name, lit, err := cutKindName(rest)
		if err != nil {
			return Event{}, fmt.Errorf("token: %w", err)
		}
		k, err := kind(name)
		if err != nil {
			return Event{}, err
		}
		text, err := strconv.Unquote(lit)
		if err != nil {
			return Event{}, fmt.Errorf("token: bad text literal %s: %w", lit, err)
		}
		return Event{Op: OpToken, Kind: k, Text: text}, nil
	case "finish":
		if rest != "" {
			return Event{}, fmt.Errorf("finish: unexpected argument %q", rest)
		}
		return Event{Op: OpFinish}, nil
	case "checkpoint":
		if rest == "" || strings.Contains(rest, " ") {
			return Event{}, fmt.Errorf("checkpoint: expected a single label, got %q", rest)
		}
		return Event{Op: OpCheckpoint, Label: rest}, nil
	case "start_at":
		label, tail, _ := strings.Cut(rest, " ")
		if label == "" {
			return Event{}, fmt.Errorf("start_at: missing label")
		}
		name, extra, err := cutKindName(strings.TrimSpace(tail))
		if err != nil {
			return Event{}, fmt.Errorf("start_at: %w", err)
		}
		if extra != "" {
			return Event{}, fmt.Errorf("start_at: unexpected argument %q", extra)
		}
		k, err := kind(name)
		return Event{Op: OpStartAt, Kind: k, Label: label}, err
	}
	return Event{}, fmt.Errorf("unknown op %q", op)
}

// cutKindName splits a leading kind name, bare or quoted, off s.
func cutKindName(s string) (name, rest string, err error) {
	if !strings.HasPrefix(s, `"`) {
		name, rest, _ = strings.Cut(s, " ")
		return name, strings.TrimSpace(rest), nil
	}
	lit, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", fmt.Errorf("bad kind literal %s", s)
	}
	name, err = strconv.Unquote(lit)
	if err != nil {
		return "", "", fmt.Errorf("bad kind literal %s: %w", lit, err)
	}
	return name, strings.TrimSpace(s[len(lit):]), nil
}

// Write renders evs in the script format read by Parse, indenting by
// nesting depth.
func Write(w io.Writer, evs []Event, name KindNamer) error {
	bw := bufio.NewWriter(w)
	depth := 0
	for _, ev := range evs {
		if ev.Op == OpFinish && depth > 0 {
			depth--
		}
		bw.WriteString(strings.Repeat("  ", depth))
		switch ev.Op {
		case OpStart:
			fmt.Fprintf(bw, "start %s\n", syntax.QuoteKindName(name(ev.Kind)))
			depth++
		case OpToken:
			fmt.Fprintf(bw, "token %s %s\n", syntax.QuoteKindName(name(ev.Kind)), strconv.Quote(ev.Text))
		case OpFinish:
			bw.WriteString("finish\n")
		case OpCheckpoint:
			fmt.Fprintf(bw, "checkpoint %s\n", ev.Label)
		case OpStartAt:
			fmt.Fprintf(bw, "start_at %s %s\n", ev.Label, syntax.QuoteKindName(name(ev.Kind)))
			depth++
		}
	}
	return bw.Flush()
}

// FromTree flattens a green tree into the start/token/finish events that
// rebuild it.
func FromTree(root *green.Node) []Event {
	var evs []Event
	var walk func(e green.Element)
	walk = func(e green.Element) {
		switch x := e.(type) {
		case *green.Token:
			evs = append(evs, Event{Op: OpToken, Kind: x.Kind(), Text: x.Text()})
		case *green.Node:
			evs = append(evs, Event{Op: OpStart, Kind: x.Kind()})
			for _, c := range x.Children() {
				walk(c)
			}
			evs = append(evs, Event{Op: OpFinish})
		}
	}
	walk(root)
	return evs
}
