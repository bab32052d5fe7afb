package parser

import (
	"fmt"

	"github.com/Virtosync/VirtoLang/lexer"
	"github.com/Virtosync/VirtoLang/source"
)

// ParseError is a single parser diagnostic: a message, the offending
// span, and an optional hint (e.g. the `not in`/`is not` suggestion from
// spec.md §4.2).
type ParseError struct {
	Message string
	Span    lexer.Span
	Hint    string
}

func (e *ParseError) Error() string { return e.Message }

// Parser is a two-token-lookahead recursive-descent/Pratt parser.
// Grounded on go-mix's Parser (CurrToken/NextToken fields, advance/
// expectAdvance/expectNext helpers, error-accumulation-instead-of-panic
// idiom) but without the teacher's parse-time constant folding: this
// parser only ever builds AST nodes.
type Parser struct {
	lex *lexer.Lexer

	curr lexer.Token
	next lexer.Token

	Errors []*ParseError
}

// New creates a Parser over src registered as file in fs.
func New(fs *source.FileSet, file source.ID, src string) *Parser {
	p := &Parser{lex: lexer.New(fs, file, src)}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.curr = p.next
	for {
		p.next = p.lex.NextToken()
		if p.lex.Err != nil {
			p.Errors = append(p.Errors, &ParseError{
				Message: p.lex.Err.Message,
				Span:    p.lex.Err.Span,
			})
			p.lex.Err = nil
			continue
		}
		// Newlines are optional statement separators (spec.md §3.1): the
		// token stream the rest of the parser sees never contains them.
		if p.next.Type == lexer.NEWLINE || p.next.Type == lexer.SEMI {
			continue
		}
		break
	}
}

func (p *Parser) addError(msg string, span lexer.Span) {
	p.Errors = append(p.Errors, &ParseError{Message: msg, Span: span})
}

func (p *Parser) addHintedError(msg string, span lexer.Span, hint string) {
	p.Errors = append(p.Errors, &ParseError{Message: msg, Span: span, Hint: hint})
}

// expect checks the current token's type, recording an error if it
// doesn't match. It never advances.
func (p *Parser) expect(t lexer.Type) bool {
	if p.curr.Type != t {
		p.addError(fmt.Sprintf("expected %s, got %s", t, p.curr.Type), p.curr.Span)
		return false
	}
	return true
}

// expectAdvance requires the current token to match t, then advances
// past it.
func (p *Parser) expectAdvance(t lexer.Type) bool {
	if !p.expect(t) {
		return false
	}
	p.advance()
	return true
}

// HasErrors reports whether any parse errors were recorded.
func (p *Parser) HasErrors() bool { return len(p.Errors) > 0 }

// ParseProgram parses the whole token stream into a Program. Each
// parseStatement call already leaves curr positioned at the start of
// the next token (every leaf parse step advances past what it
// consumes), so the loop never advances on its own between statements
// — doing so would skip the first token of whatever follows.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for p.curr.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else if p.curr.Type != lexer.EOF {
			// parseStatement failed without consuming anything (a bare
			// parse error): force progress so the loop can't spin forever.
			p.advance()
		}
	}
	return prog
}
