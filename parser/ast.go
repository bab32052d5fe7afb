// Package parser turns a lexer.Token stream into an abstract syntax
// tree, and defines that tree's node types. Grounded on go-mix's
// Pratt-parser core (parser.go's UnaryFuncs/BinaryFuncs dispatch table
// and parser_precedence.go's precedence constants), but — unlike the
// teacher — this parser never evaluates anything at parse time: it only
// builds the tree, which the eval package later walks against a live
// scope chain. That split is required for VirtoLang's closures, async
// functions, and exception handling to behave per spec.md §4.3/§4.7.
package parser

import "github.com/Virtosync/VirtoLang/lexer"

// Expr is implemented by every expression node. Each carries its own
// span, per spec.md §3.2.
type Expr interface {
	Span() lexer.Span
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Span() lexer.Span
	stmtNode()
}

type base struct{ span lexer.Span }

func (b base) Span() lexer.Span { return b.span }

// ---- literals & identifiers ----

type IntLit struct {
	base
	Value int64
}

type FloatLit struct {
	base
	Value float64
}

type StringLit struct {
	base
	Value string
}

type BoolLit struct {
	base
	Value bool
}

type NullLit struct{ base }

type Identifier struct {
	base
	Name string
}

// ---- compound literals ----

type ListLit struct {
	base
	Elements []Expr
}

// DictEntry is one `key = value` pair in a DictCall expression.
type DictEntry struct {
	Key   string
	Value Expr
}

// DictCall is the `dict(k1 = v1, k2 = v2)` construction form — named
// "call" per spec.md §3.2 because it reuses call syntax rather than a
// brace literal.
type DictCall struct {
	base
	Entries []DictEntry
}

// SetCall is the analogous `set(v1, v2, v3)` construction form.
type SetCall struct {
	base
	Elements []Expr
}

// TupleCall is the analogous `tuple(v1, v2, v3)` construction form.
type TupleCall struct {
	base
	Elements []Expr
}

// ---- postfix ----

type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

type IndexExpr struct {
	base
	Target Expr
	Index  Expr
}

type AttributeExpr struct {
	base
	Target Expr
	Name   string
}

// ---- operators ----

type UnaryExpr struct {
	base
	Op    string // "-" or "not"
	Right Expr
}

type BinaryExpr struct {
	base
	Op          string // arithmetic/comparison/logical/"in"/"not in"/"is"/"is not"
	Left, Right Expr
}

// ---- control-flow expression forms ----

type AwaitExpr struct {
	base
	Value Expr
}

// RunExpr models both `run(expr)` and `run_async(expr)`, distinguished
// by Async.
type RunExpr struct {
	base
	Value Expr
	Async bool
}

// LambdaExpr is the optional anonymous-function expression form.
type LambdaExpr struct {
	base
	Params []string
	Body   *BlockStmt
	Async  bool
}

// AssignExpr is assignment used in expression position (e.g. inside a
// while condition), per spec.md §3.2's "assignment-expression".
type AssignExpr struct {
	base
	Name  string
	Value Expr
}

// ---- statements ----

type BlockStmt struct {
	base
	Statements []Stmt
}

// AssignStmt is `[var] IDENT = expr`. HasVar records whether the
// optional legacy `var` prefix was present; it carries no semantic
// weight per spec.md §9's Open Questions resolution.
type AssignStmt struct {
	base
	HasVar bool
	Name   string
	Value  Expr
}

type ExprStmt struct {
	base
	X Expr
}

// IndexAssignStmt is `target[index] = expr`, the only mutating form
// dicts and lists get beyond append() (spec.md §3/§9: both are
// reference-shared and mutable, so something has to be able to put a
// key or overwrite an element).
type IndexAssignStmt struct {
	base
	Target Expr
	Index  Expr
	Value  Expr
}

// IfStmt flattens an if/elif*/else chain into parallel Conds/Blocks
// slices plus an optional Else block, rather than nesting IfStmt inside
// an else branch — this keeps eval's walk a simple linear scan.
type IfStmt struct {
	base
	Conds  []Expr
	Blocks []*BlockStmt
	Else   *BlockStmt
}

type WhileStmt struct {
	base
	Cond Expr
	Body *BlockStmt
}

// ForStmt is `for (IDENT in expr) { body }`; Var binds into the
// enclosing scope per spec.md §3.4.
type ForStmt struct {
	base
	Var      string
	Iterable Expr
	Body     *BlockStmt
}

type ReturnStmt struct {
	base
	Value Expr // nil for bare `return`
}

type RaiseStmt struct {
	base
	Value Expr
}

// ExceptClause is one `except NAME [as BINDING] { body }` arm.
type ExceptClause struct {
	Kind string
	As   string
	Body *BlockStmt
}

type TryStmt struct {
	base
	Try     *BlockStmt
	Excepts []ExceptClause
	Finally *BlockStmt
}

// ImportStmt is `import NAME` or `import "path"`.
type ImportStmt struct {
	base
	Name     string
	IsString bool
}

type FuncDefStmt struct {
	base
	Name   string
	Params []string
	Body   *BlockStmt
	Async  bool
}

// Program is the root of a parsed file: a flat sequence of statements.
type Program struct {
	Statements []Stmt
}

func (*IntLit) exprNode()        {}
func (*FloatLit) exprNode()      {}
func (*StringLit) exprNode()     {}
func (*BoolLit) exprNode()       {}
func (*NullLit) exprNode()       {}
func (*Identifier) exprNode()    {}
func (*ListLit) exprNode()       {}
func (*DictCall) exprNode()      {}
func (*SetCall) exprNode()       {}
func (*TupleCall) exprNode()     {}
func (*CallExpr) exprNode()      {}
func (*IndexExpr) exprNode()     {}
func (*AttributeExpr) exprNode() {}
func (*UnaryExpr) exprNode()     {}
func (*BinaryExpr) exprNode()    {}
func (*AwaitExpr) exprNode()     {}
func (*RunExpr) exprNode()       {}
func (*LambdaExpr) exprNode()    {}
func (*AssignExpr) exprNode()    {}

func (*BlockStmt) stmtNode()       {}
func (*AssignStmt) stmtNode()      {}
func (*ExprStmt) stmtNode()        {}
func (*IndexAssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()          {}
func (*WhileStmt) stmtNode()       {}
func (*ForStmt) stmtNode()         {}
func (*ReturnStmt) stmtNode()      {}
func (*RaiseStmt) stmtNode()       {}
func (*TryStmt) stmtNode()         {}
func (*ImportStmt) stmtNode()      {}
func (*FuncDefStmt) stmtNode()     {}
