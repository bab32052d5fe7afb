package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Virtosync/VirtoLang/source"
)

func collectTypes(src string) []Type {
	fs := source.NewFileSet()
	id := fs.Add("<test>", src)
	l := New(fs, id, src)
	var types []Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	return types
}

func TestNextToken_Operators(t *testing.T) {
	types := collectTypes(`+ - * / % == != < > <= >= =`)
	assert.Equal(t, []Type{PLUS, MINUS, STAR, SLASH, PCT, EQ, NE, LT, GT, LE, GE, ASSIGN, EOF}, types)
}

func TestNextToken_Keywords(t *testing.T) {
	types := collectTypes(`if elif else while for in is not and or`)
	assert.Equal(t, []Type{IF, ELIF, ELSE, WHILE, FOR, IN, IS, NOT, AND, OR, EOF}, types)
}

func TestNextToken_NewlinesAndSemicolonsAreSeparateTokens(t *testing.T) {
	types := collectTypes("x = 1\ny = 2;")
	assert.Equal(t, []Type{IDENT, ASSIGN, INT, NEWLINE, IDENT, ASSIGN, INT, SEMI, EOF}, types)
}

func TestNextToken_StringEscapes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("<test>", `"line1\nline2\t\"quoted\""`)
	l := New(fs, id, `"line1\nline2\t\"quoted\""`)
	tok := l.NextToken()
	assert.Equal(t, STRING, tok.Type)
	assert.Equal(t, "line1\nline2\t\"quoted\"", tok.Literal)
}

func TestNextToken_UnterminatedStringSetsErr(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("<test>", `"no closing quote`)
	l := New(fs, id, `"no closing quote`)
	l.NextToken()
	assert.NotNil(t, l.Err)
	assert.Contains(t, l.Err.Message, "unterminated")
}

func TestNextToken_IntAndFloat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("<test>", `42 3.14 7.`)
	l := New(fs, id, `42 3.14 7.`)

	tok := l.NextToken()
	assert.Equal(t, INT, tok.Type)
	assert.Equal(t, "42", tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, FLOAT, tok.Type)
	assert.Equal(t, "3.14", tok.Literal)

	// "7." with no following digit is not a float continuation: the
	// trailing dot is its own DOT token.
	tok = l.NextToken()
	assert.Equal(t, INT, tok.Type)
	assert.Equal(t, "7", tok.Literal)
	tok = l.NextToken()
	assert.Equal(t, DOT, tok.Type)
}

func TestNextToken_CommentsAreSkipped(t *testing.T) {
	types := collectTypes("x = 1 # trailing comment\n/* block\ncomment */y = 2")
	assert.Equal(t, []Type{IDENT, ASSIGN, INT, NEWLINE, IDENT, ASSIGN, INT, EOF}, types)
}

func TestNextToken_UnexpectedCharacter(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("<test>", `@`)
	l := New(fs, id, `@`)
	tok := l.NextToken()
	assert.Equal(t, INVALID, tok.Type)
	assert.NotNil(t, l.Err)
}

func TestNextToken_SpanTracksLineAndColumn(t *testing.T) {
	fs := source.NewFileSet()
	src := "x\ny"
	id := fs.Add("<test>", src)
	l := New(fs, id, src)

	tok := l.NextToken() // x
	assert.Equal(t, 1, tok.Span.Line)
	assert.Equal(t, 1, tok.Span.Col)

	l.NextToken() // newline

	tok = l.NextToken() // y
	assert.Equal(t, 2, tok.Span.Line)
	assert.Equal(t, 1, tok.Span.Col)
}
