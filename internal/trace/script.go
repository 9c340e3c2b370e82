package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind of a script operation.
type Kind byte

const (
	Insert Kind = iota
	Remove
	Contains
	IndexOf
	Clear
	Size
	Capacity
	Empty
	Dump
	Copy
	Restore
)

var kindNames = [...]string{"insert", "remove", "contains", "indexof", "clear", "size", "capacity", "empty", "dump", "copy", "restore"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// HasArg reports whether operations of kind k take a value.
func (k Kind) HasArg() bool {
	return k <= IndexOf
}

func parseKind(s string) (Kind, bool) {
	s = strings.ToLower(s)
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Op is a single line of a script.
type Op struct {
	Kind Kind
	Arg  int
	Line int
}

func (o Op) String() string {
	if o.Kind.HasArg() {
		return o.Kind.String() + " " + strconv.Itoa(o.Arg)
	}
	return o.Kind.String()
}

type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Msg)
}

// ParseLine parses one script line. ok is false for blank and comment lines.
func ParseLine(line int, text string) (op Op, ok bool, err error) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return op, false, nil
	}
	k, known := parseKind(fields[0])
	if !known {
		return op, false, &ParseError{Line: line, Text: text, Msg: "unknown operation"}
	}
	op = Op{Kind: k, Line: line}
	switch {
	case k.HasArg() && len(fields) != 2:
		return op, false, &ParseError{Line: line, Text: text, Msg: k.String() + " takes exactly one value"}
	case !k.HasArg() && len(fields) != 1:
		return op, false, &ParseError{Line: line, Text: text, Msg: k.String() + " takes no value"}
	case k.HasArg():
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return op, false, &ParseError{Line: line, Text: text, Msg: err.Error()}
		}
		op.Arg = v
	}
	return op, true, nil
}

// Parse a whole script.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	err := scan(r, func(o Op) error {
		ops = append(ops, o)
		return nil
	})
	return ops, err
}

// scan calls f on every operation of r in order, stopping at the first error.
func scan(r io.Reader, f func(Op) error) error {
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		op, ok, err := ParseLine(line, sc.Text())
		if err != nil {
			return err
		}
		if ok {
			if err = f(op); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}
