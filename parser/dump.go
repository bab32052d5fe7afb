package parser

import (
	"bytes"
	"fmt"
)

const indentSize = 2

// Dumper renders a parsed Program as an indented tree, in the spirit of
// go-mix's PrintingVisitor but as a plain recursive type switch rather
// than a visitor-pattern Accept/Visit pair, since this AST's node set is
// closed and fixed at parse time. Wired behind cmd/vlang's --dump-ast flag.
type Dumper struct {
	indent int
	buf    bytes.Buffer
}

func (d *Dumper) line(format string, args ...interface{}) {
	for i := 0; i < d.indent; i++ {
		d.buf.WriteByte(' ')
	}
	fmt.Fprintf(&d.buf, format, args...)
	d.buf.WriteByte('\n')
}

func (d *Dumper) nested(f func()) {
	d.indent += indentSize
	f()
	d.indent -= indentSize
}

// Dump renders prog and returns the accumulated text.
func Dump(prog *Program) string {
	d := &Dumper{}
	d.line("Program")
	d.nested(func() {
		for _, s := range prog.Statements {
			d.stmt(s)
		}
	})
	return d.buf.String()
}

func (d *Dumper) stmt(s Stmt) {
	switch n := s.(type) {
	case *BlockStmt:
		d.line("Block")
		d.nested(func() {
			for _, inner := range n.Statements {
				d.stmt(inner)
			}
		})
	case *AssignStmt:
		d.line("Assign %s", n.Name)
		d.nested(func() { d.expr(n.Value) })
	case *IndexAssignStmt:
		d.line("IndexAssign")
		d.nested(func() {
			d.expr(n.Target)
			d.expr(n.Index)
			d.expr(n.Value)
		})
	case *ExprStmt:
		d.line("ExprStmt")
		d.nested(func() { d.expr(n.X) })
	case *IfStmt:
		d.line("If")
		d.nested(func() {
			for i, c := range n.Conds {
				d.line("Cond[%d]", i)
				d.nested(func() { d.expr(c) })
				d.line("Block[%d]", i)
				d.nested(func() { d.stmt(n.Blocks[i]) })
			}
			if n.Else != nil {
				d.line("Else")
				d.nested(func() { d.stmt(n.Else) })
			}
		})
	case *WhileStmt:
		d.line("While")
		d.nested(func() {
			d.expr(n.Cond)
			d.stmt(n.Body)
		})
	case *ForStmt:
		d.line("For %s in", n.Var)
		d.nested(func() {
			d.expr(n.Iterable)
			d.stmt(n.Body)
		})
	case *ReturnStmt:
		d.line("Return")
		if n.Value != nil {
			d.nested(func() { d.expr(n.Value) })
		}
	case *RaiseStmt:
		d.line("Raise")
		d.nested(func() { d.expr(n.Value) })
	case *TryStmt:
		d.line("Try")
		d.nested(func() {
			d.stmt(n.Try)
			for _, ex := range n.Excepts {
				d.line("Except %s as %s", ex.Kind, ex.As)
				d.nested(func() { d.stmt(ex.Body) })
			}
			if n.Finally != nil {
				d.line("Finally")
				d.nested(func() { d.stmt(n.Finally) })
			}
		})
	case *ImportStmt:
		d.line("Import %s", n.Name)
	case *FuncDefStmt:
		d.line("FuncDef %s(async=%t) %v", n.Name, n.Async, n.Params)
		d.nested(func() { d.stmt(n.Body) })
	default:
		d.line("<unknown stmt>")
	}
}

func (d *Dumper) expr(e Expr) {
	switch n := e.(type) {
	case *IntLit:
		d.line("Int %d", n.Value)
	case *FloatLit:
		d.line("Float %g", n.Value)
	case *StringLit:
		d.line("String %q", n.Value)
	case *BoolLit:
		d.line("Bool %t", n.Value)
	case *NullLit:
		d.line("Null")
	case *Identifier:
		d.line("Ident %s", n.Name)
	case *ListLit:
		d.line("List")
		d.nested(func() {
			for _, el := range n.Elements {
				d.expr(el)
			}
		})
	case *DictCall:
		d.line("DictCall")
		d.nested(func() {
			for _, ent := range n.Entries {
				d.line("%s =", ent.Key)
				d.nested(func() { d.expr(ent.Value) })
			}
		})
	case *SetCall:
		d.line("SetCall")
		d.nested(func() {
			for _, el := range n.Elements {
				d.expr(el)
			}
		})
	case *TupleCall:
		d.line("TupleCall")
		d.nested(func() {
			for _, el := range n.Elements {
				d.expr(el)
			}
		})
	case *CallExpr:
		d.line("Call")
		d.nested(func() {
			d.expr(n.Callee)
			for _, a := range n.Args {
				d.expr(a)
			}
		})
	case *IndexExpr:
		d.line("Index")
		d.nested(func() {
			d.expr(n.Target)
			d.expr(n.Index)
		})
	case *AttributeExpr:
		d.line("Attribute .%s", n.Name)
		d.nested(func() { d.expr(n.Target) })
	case *UnaryExpr:
		d.line("Unary %s", n.Op)
		d.nested(func() { d.expr(n.Right) })
	case *BinaryExpr:
		d.line("Binary %s", n.Op)
		d.nested(func() {
			d.expr(n.Left)
			d.expr(n.Right)
		})
	case *AwaitExpr:
		d.line("Await")
		d.nested(func() { d.expr(n.Value) })
	case *RunExpr:
		d.line("Run(async=%t)", n.Async)
		d.nested(func() { d.expr(n.Value) })
	case *LambdaExpr:
		d.line("Lambda(async=%t) %v", n.Async, n.Params)
		d.nested(func() { d.stmt(n.Body) })
	case *AssignExpr:
		d.line("AssignExpr %s", n.Name)
		d.nested(func() { d.expr(n.Value) })
	default:
		d.line("<unknown expr>")
	}
}
