package lexer

import (
	"fmt"
	"strings"

	"github.com/Virtosync/VirtoLang/source"
)

// Lexer scans VirtoLang source text byte by byte, tracking line/column
// for span reporting. Grounded on go-mix's Lexer (Current/Position/
// Line/Column fields, Peek/Advance helpers), adapted to emit spans tied
// to a source.ID instead of bare line/column pairs.
type Lexer struct {
	file    source.ID
	src     string
	pos     int
	current byte
	line    int
	col     int

	// Err is set when the lexer hits a malformed token: an unterminated
	// string literal or an unexpected character. NextToken never clears
	// it; the caller reads and resets it. After an unterminated string
	// the source is exhausted and NextToken returns EOF; after an
	// unexpected character scanning continues with the next byte.
	Err *SyntaxError
}

// SyntaxError is raised by the lexer for malformed tokens (unterminated
// strings, stray characters). The parser wraps these into diagnostics.
type SyntaxError struct {
	Message string
	Span    Span
}

func (e *SyntaxError) Error() string { return e.Message }

// New creates a Lexer over src, registered under file in fs.
func New(fs *source.FileSet, file source.ID, src string) *Lexer {
	l := &Lexer{file: file, src: src, line: 1, col: 1}
	if len(src) > 0 {
		l.current = src[0]
	}
	return l
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() {
	if l.atEnd() {
		l.current = 0
		return
	}
	if l.current == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
	if l.pos < len(l.src) {
		l.current = l.src[l.pos]
	} else {
		l.current = 0
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.current == ' ' || l.current == '\t' || l.current == '\r':
			l.advance()
		case l.current == '#':
			for !l.atEnd() && l.current != '\n' {
				l.advance()
			}
		case l.current == '/' && l.peek() == '*':
			l.advance()
			l.advance()
			for !l.atEnd() && !(l.current == '*' && l.peek() == '/') {
				l.advance()
			}
			if !l.atEnd() {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) mkSpan(startLine, startCol, startPos int) Span {
	return Span{File: l.file, Line: startLine, Col: startCol, Start: startPos, End: l.pos}
}

func (l *Lexer) tok(typ Type, lit string, startLine, startCol, startPos int) Token {
	return Token{Type: typ, Literal: lit, Span: l.mkSpan(startLine, startCol, startPos)}
}

// NextToken returns the next token in the stream, or an EOF token once
// the source is exhausted.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	line, col, pos := l.line, l.col, l.pos

	if l.atEnd() {
		return l.tok(EOF, "", line, col, pos)
	}

	if l.current == '\n' {
		l.advance()
		return l.tok(NEWLINE, "\n", line, col, pos)
	}

	c := l.current

	switch {
	case isLetter(c):
		return l.readIdentifier(line, col, pos)
	case isDigit(c):
		return l.readNumber(line, col, pos)
	case c == '"' || c == '\'':
		return l.readString(c, line, col, pos)
	}

	// Longest-match operators first.
	two := string(c) + string(l.peek())
	switch two {
	case "==":
		l.advance()
		l.advance()
		return l.tok(EQ, "==", line, col, pos)
	case "!=":
		l.advance()
		l.advance()
		return l.tok(NE, "!=", line, col, pos)
	case "<=":
		l.advance()
		l.advance()
		return l.tok(LE, "<=", line, col, pos)
	case ">=":
		l.advance()
		l.advance()
		return l.tok(GE, ">=", line, col, pos)
	}

	single := map[byte]Type{
		'{': LBRACE, '}': RBRACE, '(': LPAREN, ')': RPAREN,
		'[': LBRACKET, ']': RBRACKET, ',': COMMA, '.': DOT,
		';': SEMI, ':': COLON, '+': PLUS, '-': MINUS, '*': STAR,
		'/': SLASH, '%': PCT, '<': LT, '>': GT, '=': ASSIGN,
	}
	if typ, ok := single[c]; ok {
		l.advance()
		return l.tok(typ, string(c), line, col, pos)
	}

	l.advance()
	l.Err = &SyntaxError{
		Message: fmt.Sprintf("unexpected character %q", c),
		Span:    l.mkSpan(line, col, pos),
	}
	return l.tok(INVALID, string(c), line, col, pos)
}

func (l *Lexer) readIdentifier(line, col, pos int) Token {
	var sb strings.Builder
	for isLetter(l.current) || isDigit(l.current) {
		sb.WriteByte(l.current)
		l.advance()
	}
	lit := sb.String()
	return l.tok(lookupIdent(lit), lit, line, col, pos)
}

func (l *Lexer) readNumber(line, col, pos int) Token {
	var sb strings.Builder
	isFloat := false
	for isDigit(l.current) {
		sb.WriteByte(l.current)
		l.advance()
	}
	if l.current == '.' && isDigit(l.peek()) {
		isFloat = true
		sb.WriteByte(l.current)
		l.advance()
		for isDigit(l.current) {
			sb.WriteByte(l.current)
			l.advance()
		}
	}
	typ := INT
	if isFloat {
		typ = FLOAT
	}
	return l.tok(typ, sb.String(), line, col, pos)
}

func (l *Lexer) readString(quote byte, line, col, pos int) Token {
	l.advance() // consume opening quote
	var sb strings.Builder
	for {
		if l.atEnd() {
			l.Err = &SyntaxError{
				Message: "unterminated string literal",
				Span:    l.mkSpan(line, col, pos),
			}
			return l.tok(STRING, sb.String(), line, col, pos)
		}
		if l.current == quote {
			l.advance()
			break
		}
		if l.current == '\\' {
			l.advance()
			switch l.current {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			default:
				sb.WriteByte('\\')
				sb.WriteByte(l.current)
			}
			l.advance()
			continue
		}
		sb.WriteByte(l.current)
		l.advance()
	}
	return l.tok(STRING, sb.String(), line, col, pos)
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
