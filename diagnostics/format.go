// Package diagnostics renders parse/runtime errors as human-readable,
// colorized reports following spec.md §4.6's literal layout: a
// "<Kind>: <message>" headline (with any hint suffixed onto that same
// line), a `File "<path>", line <L>, col <C>` location line, and the
// offending source line with a caret under the column. Grounded on
// go-mix's banner-printing idiom in repl.go (fatih/color used for
// status banners), generalized into a reusable formatter shared by the
// REPL, the CLI, and module-load failures.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Virtosync/VirtoLang/lexer"
	"github.com/Virtosync/VirtoLang/source"
)

// Report is one formattable diagnostic. Trace holds the call-site spans
// accumulated as the error unwound through nested function calls
// (spec.md §4.5); each is rendered as a preceding frame indented under
// the primary stanza (spec.md §4.6).
type Report struct {
	Kind    string // "SyntaxError", "NameError", "TypeError", etc.
	Message string
	Span    lexer.Span
	Hint    string
	Trace   []lexer.Span
}

// Format renders r against fs, with ANSI color unless fatih/color's
// global color.NoColor is set. That package defaults NoColor from
// whether stdout is a terminal; cmd/vlang sets it explicitly.
func Format(w io.Writer, fs *source.FileSet, r Report) {
	headline := color.New(color.FgRed, color.Bold).Sprintf("%s:", r.Kind)
	message := r.Message
	if r.Hint != "" {
		message += " " + color.New(color.FgGreen).Sprint(r.Hint)
	}
	fmt.Fprintf(w, "%s %s\n", headline, message)

	writeFrame(w, fs, r.Span, 0)
	for _, span := range r.Trace {
		writeFrame(w, fs, span, 1)
	}
}

// writeFrame renders one stanza of the spec.md §4.6 layout:
//
//	  File "<path>", line <L>, col <C>
//	    <source line text>
//	    <caret spaces><^>
//
// depth indents a call-trace frame two further spaces under the
// primary (depth 0) stanza.
func writeFrame(w io.Writer, fs *source.FileSet, span lexer.Span, depth int) {
	if span.File == source.NoFile {
		return
	}
	indent := strings.Repeat("  ", depth)
	loc := color.New(color.FgCyan).Sprintf("%q", fs.Path(span.File))
	fmt.Fprintf(w, "%s  File %s, line %d, col %d\n", indent, loc, span.Line, span.Col)

	line := fs.Line(span.File, span.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "%s    %s\n", indent, line)
	caretCol := span.Col - 1
	if caretCol < 0 {
		caretCol = 0
	}
	fmt.Fprintf(w, "%s    %s%s\n", indent, strings.Repeat(" ", caretCol), color.New(color.FgYellow).Sprint("^"))
}

// FormatAll renders a batch of reports in order, separated by a blank
// line, for the parser's multi-error accumulation mode.
func FormatAll(w io.Writer, fs *source.FileSet, reports []Report) {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		Format(w, fs, r)
	}
}
