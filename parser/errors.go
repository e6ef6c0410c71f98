package parser

import (
	"fmt"
	"strings"

	"github.com/dennwc/genbind/ast"
	"github.com/dennwc/genbind/errors"
)

// ErrSyntax is matched by every error returned from ParseFile.
var ErrSyntax = errors.New("webidl syntax error")

// SyntaxError is a single syntax error with its location.
type SyntaxError struct {
	File    string
	Offset  int
	Line    int // 1-based
	Column  int // 1-based, in bytes
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// SyntaxErrors is the list of syntax errors found in one file.
type SyntaxErrors []*SyntaxError

func (e SyntaxErrors) Error() string {
	switch len(e) {
	case 0:
		return "no syntax errors"
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(e[0].Error())
	fmt.Fprintf(&sb, " (and %d more errors)", len(e)-1)
	return sb.String()
}

// ParseFile parses the given WebIDL source. All syntax errors found are
// returned together, along with the partial tree.
func ParseFile(name, input string) (*ast.File, error) {
	f, nodes := parse(input)
	if len(nodes) == 0 {
		return f, nil
	}
	list := make(SyntaxErrors, 0, len(nodes))
	for _, n := range nodes {
		line, col := position(input, n.Start)
		list = append(list, &SyntaxError{
			File:    name,
			Offset:  n.Start,
			Line:    line,
			Column:  col,
			Message: n.Message,
		})
	}
	return f, errors.Mark(list, ErrSyntax)
}

// position converts a byte offset into a line and column.
func position(input string, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}
	if offset < 0 {
		offset = 0
	}
	before := input[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndex(before, "\n")
	return line, col
}
