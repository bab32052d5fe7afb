package parser

import "github.com/Virtosync/VirtoLang/lexer"

// parseStatement dispatches on the current token to the right
// statement-specific parse method. Grounded on go-mix's
// Parser.parseStatement switch shape, generalized to VirtoLang's
// statement set (spec.md §3.3/§4).
func (p *Parser) parseStatement() Stmt {
	switch p.curr.Type {
	case lexer.VAR:
		return p.parseAssignStmt(true)
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.RAISE:
		return p.parseRaiseStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.IMPORT:
		return p.parseImportStmt()
	case lexer.DEF:
		return p.parseFuncDefStmt(false)
	case lexer.ASYNC:
		return p.parseAsyncStmt()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IDENT:
		if p.next.Type == lexer.ASSIGN {
			return p.parseAssignStmt(false)
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseAsyncStmt handles `async def NAME(...) { ... }` at statement
// level. It does not recognise the `async def (...) { ... }` lambda
// form: an anonymous async def at the start of a statement is reported
// as a missing function name.
func (p *Parser) parseAsyncStmt() Stmt {
	// curr is ASYNC; peeking requires consuming def first to reach the
	// name, so just delegate to parseFuncDefStmt which consumes `async`.
	return p.parseFuncDefStmt(true)
}

func (p *Parser) parseAssignStmt(hasVar bool) Stmt {
	span := p.curr.Span
	if hasVar {
		p.advance() // consume var
	}
	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := p.curr.Literal
	p.advance()
	if !p.expectAdvance(lexer.ASSIGN) {
		return nil
	}
	val := p.parseExpression(lowest)
	return &AssignStmt{base: base{span}, HasVar: hasVar, Name: name, Value: val}
}

func (p *Parser) parseExprStmt() Stmt {
	span := p.curr.Span
	x := p.parseExpression(lowest)
	if x == nil {
		return nil
	}
	if idx, ok := x.(*IndexExpr); ok && p.curr.Type == lexer.ASSIGN {
		p.advance() // consume =
		val := p.parseExpression(lowest)
		return &IndexAssignStmt{base: base{span}, Target: idx.Target, Index: idx.Index, Value: val}
	}
	return &ExprStmt{base: base{span}, X: x}
}

// parseBlock parses `{ stmt* }`. Like ParseProgram, it never advances
// between statements on its own — parseStatement already leaves curr at
// the next unconsumed token, whether that's the start of another
// statement or the closing brace.
func (p *Parser) parseBlock() *BlockStmt {
	span := p.curr.Span
	p.expectAdvance(lexer.LBRACE)
	block := &BlockStmt{base: base{span}}
	for p.curr.Type != lexer.RBRACE && p.curr.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else if p.curr.Type != lexer.RBRACE && p.curr.Type != lexer.EOF {
			p.advance()
		}
	}
	p.expectAdvance(lexer.RBRACE)
	return block
}

// parseIfStmt flattens if/elif*/else into parallel Conds/Blocks slices
// (see IfStmt's doc comment in ast.go).
func (p *Parser) parseIfStmt() Stmt {
	span := p.curr.Span
	stmt := &IfStmt{base: base{span}}

	p.advance() // consume if
	p.expectAdvance(lexer.LPAREN)
	cond := p.parseExpression(lowest)
	p.expectAdvance(lexer.RPAREN)
	body := p.parseBlock()
	stmt.Conds = append(stmt.Conds, cond)
	stmt.Blocks = append(stmt.Blocks, body)

	for p.curr.Type == lexer.ELIF {
		p.advance()
		p.expectAdvance(lexer.LPAREN)
		c := p.parseExpression(lowest)
		p.expectAdvance(lexer.RPAREN)
		b := p.parseBlock()
		stmt.Conds = append(stmt.Conds, c)
		stmt.Blocks = append(stmt.Blocks, b)
	}

	if p.curr.Type == lexer.ELSE {
		p.advance()
		stmt.Else = p.parseBlock()
	}

	return stmt
}

func (p *Parser) parseWhileStmt() Stmt {
	span := p.curr.Span
	p.advance() // consume while
	p.expectAdvance(lexer.LPAREN)
	cond := p.parseExpression(lowest)
	p.expectAdvance(lexer.RPAREN)
	body := p.parseBlock()
	return &WhileStmt{base: base{span}, Cond: cond, Body: body}
}

// parseForStmt parses `for (IDENT in expr) { body }`.
func (p *Parser) parseForStmt() Stmt {
	span := p.curr.Span
	p.advance() // consume for
	p.expectAdvance(lexer.LPAREN)
	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := p.curr.Literal
	p.advance()
	if !p.expectAdvance(lexer.IN) {
		return nil
	}
	iterable := p.parseExpression(lowest)
	p.expectAdvance(lexer.RPAREN)
	body := p.parseBlock()
	return &ForStmt{base: base{span}, Var: name, Iterable: iterable, Body: body}
}

func (p *Parser) parseReturnStmt() Stmt {
	span := p.curr.Span
	p.advance() // consume return
	if p.curr.Type == lexer.RBRACE || p.curr.Type == lexer.EOF {
		return &ReturnStmt{base: base{span}}
	}
	val := p.parseExpression(lowest)
	return &ReturnStmt{base: base{span}, Value: val}
}

func (p *Parser) parseRaiseStmt() Stmt {
	span := p.curr.Span
	p.advance() // consume raise
	val := p.parseExpression(lowest)
	return &RaiseStmt{base: base{span}, Value: val}
}

// parseTryStmt parses `try { } except KIND [as NAME] { } ... [finally { }]`.
func (p *Parser) parseTryStmt() Stmt {
	span := p.curr.Span
	p.advance() // consume try
	tryBlock := p.parseBlock()
	stmt := &TryStmt{base: base{span}, Try: tryBlock}

	for p.curr.Type == lexer.EXCEPT {
		p.advance()
		clause := ExceptClause{}
		if p.curr.Type == lexer.IDENT {
			clause.Kind = p.curr.Literal
			p.advance()
		}
		if p.curr.Type == lexer.AS {
			p.advance()
			if p.expect(lexer.IDENT) {
				clause.As = p.curr.Literal
				p.advance()
			}
		}
		clause.Body = p.parseBlock()
		stmt.Excepts = append(stmt.Excepts, clause)
	}

	if p.curr.Type == lexer.FINALLY {
		p.advance()
		stmt.Finally = p.parseBlock()
	}

	return stmt
}

// parseImportStmt parses `import NAME` or `import "path"`.
func (p *Parser) parseImportStmt() Stmt {
	span := p.curr.Span
	p.advance() // consume import
	if p.curr.Type == lexer.STRING {
		name := p.curr.Literal
		p.advance()
		return &ImportStmt{base: base{span}, Name: name, IsString: true}
	}
	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := p.curr.Literal
	p.advance()
	return &ImportStmt{base: base{span}, Name: name}
}

// parseFuncDefStmt parses `[async] def NAME(params) { body }`.
func (p *Parser) parseFuncDefStmt(isAsync bool) Stmt {
	span := p.curr.Span
	if isAsync {
		p.advance() // consume async
	}
	if !p.expectAdvance(lexer.DEF) {
		return nil
	}
	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := p.curr.Literal
	p.advance()
	p.expectAdvance(lexer.LPAREN)
	params := p.parseParamList()
	p.expectAdvance(lexer.RPAREN)
	body := p.parseBlock()
	return &FuncDefStmt{base: base{span}, Name: name, Params: params, Body: body, Async: isAsync}
}
