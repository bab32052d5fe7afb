package parser

import (
	"strconv"

	"github.com/Virtosync/VirtoLang/lexer"
)

// parseExpression implements precedence-climbing Pratt parsing: parse a
// prefix form, then keep absorbing infix/postfix operators whose
// precedence exceeds minPrec. Grounded on go-mix's parseInternal loop
// shape, generalized to VirtoLang's operator set (spec.md §4.2).
func (p *Parser) parseExpression(minPrec int) Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		// `not in`: only a valid continuation when NOT is immediately
		// followed by IN (spec.md §4.2's documented lookahead rule).
		if p.curr.Type == lexer.NOT && p.next.Type == lexer.IN && precCompare > minPrec {
			span := p.curr.Span
			p.advance() // consume not
			p.advance() // consume in
			right := p.parseExpression(precCompare + 1)
			left = &BinaryExpr{base: base{span}, Op: "not in", Left: left, Right: right}
			continue
		}
		// `is` / `is not`.
		if p.curr.Type == lexer.IS && precCompare > minPrec {
			span := p.curr.Span
			p.advance() // consume is
			op := "is"
			if p.curr.Type == lexer.NOT {
				op = "is not"
				p.advance() // consume not
			}
			if !p.canStartExpression(p.curr.Type) {
				p.addHintedError("expected an expression after '"+op+"'", p.curr.Span,
					"Did you mean 'not in' or 'is not'?")
				return left
			}
			right := p.parseExpression(precCompare + 1)
			left = &BinaryExpr{base: base{span}, Op: op, Left: left, Right: right}
			continue
		}

		prec := precedenceOf(p.curr.Type)
		if prec <= minPrec {
			break
		}

		switch p.curr.Type {
		case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PCT,
			lexer.EQ, lexer.NE, lexer.LT, lexer.GT, lexer.LE, lexer.GE,
			lexer.AND, lexer.OR, lexer.IN:
			op := string(p.curr.Type)
			span := p.curr.Span
			p.advance()
			right := p.parseExpression(prec)
			left = &BinaryExpr{base: base{span}, Op: op, Left: left, Right: right}
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.LBRACKET:
			left = p.parseIndex(left)
		case lexer.DOT:
			left = p.parseAttribute(left)
		default:
			return left
		}
	}
	return left
}

// canStartExpression reports whether t can begin a prefix expression;
// used to detect the dangling `is not)` / `not)` case spec.md §4.2
// documents a hint for.
func (p *Parser) canStartExpression(t lexer.Type) bool {
	switch t {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NULL,
		lexer.IDENT, lexer.LPAREN, lexer.LBRACKET, lexer.MINUS, lexer.NOT,
		lexer.AWAIT, lexer.RUN, lexer.RUNASYNC, lexer.DEF, lexer.ASYNC:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrefix() Expr {
	switch p.curr.Type {
	case lexer.INT:
		return p.parseIntLit()
	case lexer.FLOAT:
		return p.parseFloatLit()
	case lexer.STRING:
		lit := &StringLit{base: base{p.curr.Span}, Value: p.curr.Literal}
		p.advance()
		return lit
	case lexer.TRUE, lexer.FALSE:
		lit := &BoolLit{base: base{p.curr.Span}, Value: p.curr.Type == lexer.TRUE}
		p.advance()
		return lit
	case lexer.NULL:
		lit := &NullLit{base{p.curr.Span}}
		p.advance()
		return lit
	case lexer.IDENT:
		return p.parseIdentifierOrConstructor()
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpression(lowest)
		p.expectAdvance(lexer.RPAREN)
		return inner
	case lexer.LBRACKET:
		return p.parseListLit()
	case lexer.MINUS:
		span := p.curr.Span
		p.advance()
		right := p.parseExpression(precUnary)
		return &UnaryExpr{base: base{span}, Op: "-", Right: right}
	case lexer.NOT:
		span := p.curr.Span
		p.advance()
		if !p.canStartExpression(p.curr.Type) {
			p.addHintedError("expected an expression after 'not'", p.curr.Span,
				"Did you mean 'not in' or 'is not'?")
			return nil
		}
		right := p.parseExpression(precNot)
		return &UnaryExpr{base: base{span}, Op: "not", Right: right}
	case lexer.AWAIT:
		span := p.curr.Span
		p.advance()
		val := p.parseExpression(precUnary)
		return &AwaitExpr{base: base{span}, Value: val}
	case lexer.RUN, lexer.RUNASYNC:
		isAsync := p.curr.Type == lexer.RUNASYNC
		span := p.curr.Span
		p.advance()
		if p.curr.Type == lexer.STRING {
			// Historic statement-form `run "x.vlang"` accepted as an
			// expression too: treat the string as the sole argument.
			str := &StringLit{base: base{p.curr.Span}, Value: p.curr.Literal}
			p.advance()
			return &RunExpr{base: base{span}, Value: str, Async: isAsync}
		}
		p.expectAdvance(lexer.LPAREN)
		val := p.parseExpression(lowest)
		p.expectAdvance(lexer.RPAREN)
		return &RunExpr{base: base{span}, Value: val, Async: isAsync}
	case lexer.DEF, lexer.ASYNC:
		return p.parseLambda()
	default:
		p.addError("unexpected token "+string(p.curr.Type)+" in expression", p.curr.Span)
		return nil
	}
}

func (p *Parser) parseIntLit() Expr {
	v, err := strconv.ParseInt(p.curr.Literal, 10, 64)
	if err != nil {
		p.addError("invalid integer literal "+p.curr.Literal, p.curr.Span)
	}
	lit := &IntLit{base: base{p.curr.Span}, Value: v}
	p.advance()
	return lit
}

func (p *Parser) parseFloatLit() Expr {
	v, err := strconv.ParseFloat(p.curr.Literal, 64)
	if err != nil {
		p.addError("invalid float literal "+p.curr.Literal, p.curr.Span)
	}
	lit := &FloatLit{base: base{p.curr.Span}, Value: v}
	p.advance()
	return lit
}

func (p *Parser) parseListLit() Expr {
	span := p.curr.Span
	p.advance() // consume [
	elems := []Expr{}
	for p.curr.Type != lexer.RBRACKET && p.curr.Type != lexer.EOF {
		elems = append(elems, p.parseExpression(lowest))
		if p.curr.Type == lexer.COMMA {
			p.advance()
		}
	}
	p.expectAdvance(lexer.RBRACKET)
	return &ListLit{base: base{span}, Elements: elems}
}

// parseIdentifierOrConstructor handles plain identifiers plus the
// `dict(...)`, `set(...)`, `tuple(...)` construction forms, which are
// distinguished from ordinary calls per spec.md §3.2's "dict call".
func (p *Parser) parseIdentifierOrConstructor() Expr {
	name := p.curr.Literal
	span := p.curr.Span
	if (name == "dict" || name == "set" || name == "tuple") && p.next.Type == lexer.LPAREN {
		p.advance() // consume name
		p.advance() // consume (
		switch name {
		case "dict":
			return p.finishDictCall(span)
		case "set":
			return p.finishSetOrTupleCall(span, true)
		default:
			return p.finishSetOrTupleCall(span, false)
		}
	}
	p.advance()
	if p.curr.Type == lexer.ASSIGN {
		// Assignment-expression form, e.g. `while ((line = read_line()) != null)`.
		p.advance()
		val := p.parseExpression(lowest)
		return &AssignExpr{base: base{span}, Name: name, Value: val}
	}
	return &Identifier{base: base{span}, Name: name}
}

func (p *Parser) finishDictCall(span lexer.Span) Expr {
	entries := []DictEntry{}
	for p.curr.Type != lexer.RPAREN && p.curr.Type != lexer.EOF {
		if !p.expect(lexer.IDENT) {
			break
		}
		key := p.curr.Literal
		p.advance()
		p.expectAdvance(lexer.ASSIGN)
		val := p.parseExpression(lowest)
		entries = append(entries, DictEntry{Key: key, Value: val})
		if p.curr.Type == lexer.COMMA {
			p.advance()
		}
	}
	p.expectAdvance(lexer.RPAREN)
	return &DictCall{base: base{span}, Entries: entries}
}

func (p *Parser) finishSetOrTupleCall(span lexer.Span, isSet bool) Expr {
	elems := p.parseArgList(lexer.RPAREN)
	p.expectAdvance(lexer.RPAREN)
	if isSet {
		return &SetCall{base: base{span}, Elements: elems}
	}
	return &TupleCall{base: base{span}, Elements: elems}
}

func (p *Parser) parseArgList(end lexer.Type) []Expr {
	args := []Expr{}
	for p.curr.Type != end && p.curr.Type != lexer.EOF {
		args = append(args, p.parseExpression(lowest))
		if p.curr.Type == lexer.COMMA {
			p.advance()
		}
	}
	return args
}

func (p *Parser) parseCall(callee Expr) Expr {
	span := p.curr.Span
	p.advance() // consume (
	args := p.parseArgList(lexer.RPAREN)
	p.expectAdvance(lexer.RPAREN)
	return &CallExpr{base: base{span}, Callee: callee, Args: args}
}

func (p *Parser) parseIndex(target Expr) Expr {
	span := p.curr.Span
	p.advance() // consume [
	idx := p.parseExpression(lowest)
	p.expectAdvance(lexer.RBRACKET)
	return &IndexExpr{base: base{span}, Target: target, Index: idx}
}

func (p *Parser) parseAttribute(target Expr) Expr {
	span := p.curr.Span
	p.advance() // consume .
	if !p.expect(lexer.IDENT) {
		return target
	}
	name := p.curr.Literal
	p.advance()
	return &AttributeExpr{base: base{span}, Target: target, Name: name}
}

// parseLambda parses the optional `[async] def (params) { body }`
// anonymous function expression form.
func (p *Parser) parseLambda() Expr {
	span := p.curr.Span
	isAsync := false
	if p.curr.Type == lexer.ASYNC {
		isAsync = true
		p.advance()
	}
	if !p.expectAdvance(lexer.DEF) {
		return nil
	}
	p.expectAdvance(lexer.LPAREN)
	params := p.parseParamList()
	p.expectAdvance(lexer.RPAREN)
	body := p.parseBlock()
	return &LambdaExpr{base: base{span}, Params: params, Body: body, Async: isAsync}
}

func (p *Parser) parseParamList() []string {
	params := []string{}
	for p.curr.Type != lexer.RPAREN && p.curr.Type != lexer.EOF {
		if p.expect(lexer.IDENT) {
			params = append(params, p.curr.Literal)
			p.advance()
		}
		if p.curr.Type == lexer.COMMA {
			p.advance()
		}
	}
	return params
}
