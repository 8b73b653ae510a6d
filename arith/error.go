package arith

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind uint8

const (
	LexError ErrorKind = iota + 1
	ParseError
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	}
	return "error"
}

var (
	ErrLex   = errors.New("lex error")
	ErrParse = errors.New("parse error")
)

// Error is the only error kind produced by the front end.
type Error struct {
	Kind ErrorKind
	Pos  Pos
	// Char is the offending character of a LexError
	Char rune
	Msg  string
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrLex:
		return e.Kind == LexError
	case ErrParse:
		return e.Kind == ParseError
	}
	return false
}

func (e *Error) Error() string {
	if e.Pos.Source == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s at %s:%d:%d\n", e.Kind, e.Msg, e.Pos.Source.Name, e.Pos.Line, e.Pos.Column))

	lines := e.Pos.Source.Lines
	idx := e.Pos.Line - 1
	if idx >= 0 && idx < len(lines) {
		line := lines[idx]
		sb.WriteString(line)
		sb.WriteString("\n")

		runes := []rune(line)
		col := e.Pos.Column - 1
		for i, r := range runes {
			if i >= col {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				sb.WriteString(strings.Repeat(" ", runeWidth(r)))
			}
		}
		sb.WriteString("^\n")
	}

	return sb.String()
}

func parseErrorf(pos Pos, format string, args ...any) error {
	return &Error{
		Kind: ParseError,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
