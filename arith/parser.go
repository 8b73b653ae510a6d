package arith

const DefaultMaxDepth = 1000

type Options struct {
	// MaxDepth bounds nesting through parentheses and unary prefixes. Zero means DefaultMaxDepth.
	MaxDepth int
	// AllowTrailing accepts tokens left over after a complete expression.
	AllowTrailing bool
}

// Parser implements
//
//	expr    := mul (("+" | "-") mul)*
//	mul     := unary (("*" | "/") unary)*
//	unary   := ("+" | "-") unary | primary
//	primary := Number | "(" expr ")"
type Parser struct {
	tokens   TokenStream
	maxDepth int
	trailing bool
	depth    int
}

func NewParser(tokens TokenStream, options *Options) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}
	if options != nil {
		if options.MaxDepth > 0 {
			p.maxDepth = options.MaxDepth
		}
		p.trailing = options.AllowTrailing
	}
	return p
}

func Parse(tokens TokenStream, options *Options) (Node, error) {
	return NewParser(tokens, options).Parse()
}

// ParseString tokenizes the whole source before parsing, so a LexError anywhere in the input takes precedence.
func ParseString(name string, content string, options *Options) (Node, error) {
	tokens, err := Tokenize(NewSource(name, content))
	if err != nil {
		return nil, err
	}
	return Parse(NewSliceTokenStream(tokens), options)
}

func (p *Parser) Parse() (Node, error) {
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.trailing {
		tok, err := p.tokens.Current()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenEOF {
			return nil, parseErrorf(tok.Pos, "unexpected %s after expression", tok)
		}
	}
	return node, nil
}

func (p *Parser) consume(op string) (*Token, bool, error) {
	tok, err := p.tokens.Current()
	if err != nil {
		return nil, false, err
	}
	if !tok.Is(op) {
		return tok, false, nil
	}
	p.tokens.Consume()
	return tok, true, nil
}

func (p *Parser) expect(op string) error {
	tok, ok, err := p.consume(op)
	if err != nil {
		return err
	}
	if !ok {
		return parseErrorf(tok.Pos, "expected %q, got %s", op, tok)
	}
	return nil
}

func (p *Parser) expectNumber() (*Token, error) {
	tok, err := p.tokens.Current()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenNumber {
		return nil, parseErrorf(tok.Pos, "expected a number, got %s", tok)
	}
	p.tokens.Consume()
	return tok, nil
}

func (p *Parser) enter(pos Pos) error {
	p.depth++
	if p.depth > p.maxDepth {
		return parseErrorf(pos, "nesting deeper than %d", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) expr() (Node, error) {
	node, err := p.mul()
	if err != nil {
		return nil, err
	}
	for {
		kind, tok, err := p.binaryOp("+", NodeAdd, "-", NodeSub)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return node, nil
		}
		right, err := p.mul()
		if err != nil {
			return nil, err
		}
		b := MakeBinary(kind, node, right)
		b.Pos = tok.Pos
		node = b
	}
}

func (p *Parser) mul() (Node, error) {
	node, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		kind, tok, err := p.binaryOp("*", NodeMul, "/", NodeDiv)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return node, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		b := MakeBinary(kind, node, right)
		b.Pos = tok.Pos
		node = b
	}
}

// binaryOp consumes one of two operators of the same tier. A nil token means neither matched.
func (p *Parser) binaryOp(op1 string, kind1 NodeKind, op2 string, kind2 NodeKind) (NodeKind, *Token, error) {
	tok, ok, err := p.consume(op1)
	if err != nil {
		return 0, nil, err
	}
	if ok {
		return kind1, tok, nil
	}
	tok, ok, err = p.consume(op2)
	if err != nil {
		return 0, nil, err
	}
	if ok {
		return kind2, tok, nil
	}
	return 0, nil, nil
}

func (p *Parser) unary() (Node, error) {
	tok, ok, err := p.consume("+")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := p.enter(tok.Pos); err != nil {
			return nil, err
		}
		defer p.leave()
		return p.unary()
	}

	tok, ok, err = p.consume("-")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := p.enter(tok.Pos); err != nil {
			return nil, err
		}
		defer p.leave()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		zero := MakeLeaf(0)
		zero.Pos = tok.Pos
		b := MakeBinary(NodeSub, zero, operand)
		b.Pos = tok.Pos
		return b, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Node, error) {
	tok, ok, err := p.consume("(")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := p.enter(tok.Pos); err != nil {
			return nil, err
		}
		defer p.leave()
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return node, nil
	}

	tok, err = p.expectNumber()
	if err != nil {
		return nil, err
	}
	leaf := MakeLeaf(tok.Value)
	leaf.Pos = tok.Pos
	return leaf, nil
}
