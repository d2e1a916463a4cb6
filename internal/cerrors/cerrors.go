// Package cerrors formats the compiler's closed error set with source
// context, mirroring the source-line-plus-caret rendering used across the
// rest of this toolchain's ancestry.
package cerrors

import (
	"fmt"
	"strings"
)

// Kind identifies which member of the closed compiler-error set an Error
// represents, so callers can match on it programmatically instead of
// parsing the message.
type Kind int

const (
	SyntaxError Kind = iota
	MissingStateBlock
	UnresolvedName
	UnresolvedStateVar
	ArityMismatch
	TypeConflict
	UninferredType
	InternalCompilerError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case MissingStateBlock:
		return "MissingStateBlock"
	case UnresolvedName:
		return "UnresolvedName"
	case UnresolvedStateVar:
		return "UnresolvedStateVar"
	case ArityMismatch:
		return "ArityMismatch"
	case TypeConflict:
		return "TypeConflict"
	case UninferredType:
		return "UninferredType"
	case InternalCompilerError:
		return "InternalCompilerError"
	default:
		return "UnknownError"
	}
}

// Position is a 1-indexed line/column pair, produced from a byte offset
// only at the boundary to an embedder — every pass before that deals in
// raw byte ranges.
type Position struct {
	Line, Column int
}

// Error is a single compiler error: a Kind, a human message, and the
// position it was attached to via the with-entity-range combinator at the
// point it was raised.
type Error struct {
	Kind    Kind
	Message string
	Pos     Position
	File    string
	Source  string
}

// New constructs an Error. Pos and Source may be zero-valued if the error
// could not be attached to a source range (this should not happen for any
// error this compiler raises, but Format degrades gracefully if it does).
func New(kind Kind, message string, pos Position, file, source string) *Error {
	return &Error{Kind: kind, Message: message, Pos: pos, File: file, Source: source}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the error as a header line, the offending source line, a
// caret under the column, and the message. If color is true, ANSI escapes
// highlight the caret and message.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "error[%s] in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "error[%s] at %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *Error) sourceLine(line int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// List is an ordered collection of errors with a combined Format. The
// compiler passes and the CLI each report a single *Error and do not build
// a List.
type List []*Error

// Error implements the error interface over the whole list.
func (l List) Error() string {
	return l.Format(false)
}

// Format renders every error in the list, numbered when there is more than
// one.
func (l List) Format(color bool) string {
	if len(l) == 0 {
		return ""
	}
	if len(l) == 1 {
		return l[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(l))
	for i, e := range l {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(l))
		sb.WriteString(e.Format(color))
		if i < len(l)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
