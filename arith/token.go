package arith

import (
	"fmt"
	"strconv"
)

type Token struct {
	Kind TokenKind
	Text string
	// Value is only meaningful for TokenNumber
	Value int64
	Pos   Pos
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenReserved
	TokenNumber
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenReserved:
		return "reserved"
	case TokenNumber:
		return "number"
	case TokenEOF:
		return "end of input"
	}
	return "invalid"
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number " + strconv.FormatInt(t.Value, 10)
	}
	return fmt.Sprintf("%q", t.Text)
}

func (t *Token) Is(op string) bool {
	return t.Kind == TokenReserved && t.Text == op
}
