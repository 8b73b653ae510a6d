package arith

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Tokenizer produces tokens on demand. Once it has returned the EOF token or
// an error, it keeps returning the same result.
type Tokenizer struct {
	source  *Source
	reader  *bufio.Reader
	current *Token
	err     error

	currPos Pos
	prevPos Pos
}

var _ TokenStream = new(Tokenizer)

func NewTokenizer(source *Source) *Tokenizer {
	return &Tokenizer{
		source: source,
		reader: bufio.NewReader(strings.NewReader(source.Content)),
		currPos: Pos{
			Source: source,
			Line:   1,
			Column: 1,
		},
	}
}

func (t *Tokenizer) readRune() (rune, error) {
	r, size, err := t.reader.ReadRune()
	if err != nil {
		return 0, err
	}

	t.prevPos = t.currPos
	t.currPos.Offset += size
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}

	return r, nil
}

func (t *Tokenizer) unreadRune() {
	t.reader.UnreadRune()
	t.currPos = t.prevPos
}

func (t *Tokenizer) Current() (*Token, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.current == nil {
		t.current, t.err = t.parseNext()
		if t.err != nil {
			return nil, t.err
		}
	}
	return t.current, nil
}

func (t *Tokenizer) Consume() {
	if t.current != nil && t.current.Kind == TokenEOF {
		return
	}
	t.current = nil
}

func (t *Tokenizer) parseNext() (*Token, error) {
	t.skipWhitespace()
	startPos := t.currPos

	r, err := t.readRune()
	if err == io.EOF {
		return &Token{Kind: TokenEOF, Pos: startPos}, nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case isDigit(r):
		t.unreadRune()
		return t.parseNumber()
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')':
		return &Token{
			Kind: TokenReserved,
			Text: string(r),
			Pos:  startPos,
		}, nil
	}

	return nil, &Error{
		Kind: LexError,
		Pos:  startPos,
		Char: r,
		Msg:  "unexpected character " + strconv.QuoteRune(r),
	}
}

func (t *Tokenizer) skipWhitespace() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(r) {
			t.unreadRune()
			return
		}
	}
}

// parseNumber accumulates digits into an int64 that wraps on overflow.
func (t *Tokenizer) parseNumber() (*Token, error) {
	startPos := t.currPos
	var sb strings.Builder
	var value int64
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !isDigit(r) {
			t.unreadRune()
			break
		}
		sb.WriteRune(r)
		value = value*10 + int64(r-'0')
	}
	return &Token{
		Kind:  TokenNumber,
		Text:  sb.String(),
		Value: value,
		Pos:   startPos,
	}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Tokenize reads the whole source. On error no tokens are returned.
func Tokenize(source *Source) ([]*Token, error) {
	t := NewTokenizer(source)
	var tokens []*Token
	for {
		tok, err := t.Current()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		t.Consume()
	}
}
