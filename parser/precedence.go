package parser

import "github.com/Virtosync/VirtoLang/lexer"

// Precedence levels, lowest to highest, per spec.md §4.2. Grounded on
// go-mix's parser_precedence.go constant-table idiom.
const (
	lowest = iota
	precOr
	precAnd
	precNot
	precCompare // == != < > <= >= in/not in is/is not (non-associative tier)
	precAdd     // + -
	precMul     // * / %
	precUnary   // unary -
	precPostfix // call / index / attribute
)

func precedenceOf(t lexer.Type) int {
	switch t {
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.EQ, lexer.NE, lexer.LT, lexer.GT, lexer.LE, lexer.GE, lexer.IN, lexer.IS:
		return precCompare
	case lexer.NOT:
		// only reached for "not in"; parseExpression looks ahead for it.
		return precCompare
	case lexer.PLUS, lexer.MINUS:
		return precAdd
	case lexer.STAR, lexer.SLASH, lexer.PCT:
		return precMul
	case lexer.LPAREN, lexer.LBRACKET, lexer.DOT:
		return precPostfix
	default:
		return lowest
	}
}
