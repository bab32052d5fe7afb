// Package repl implements VirtoLang's interactive shell: line editing
// and history via chzyer/readline, colorized banners via fatih/color,
// evaluating each line against a persistent global frame. Grounded on
// go-mix's repl/repl.go (Repl struct, PrintBannerInfo, executeWithRecovery
// panic-recovery idiom), with `/scope`/`/exit` meta-commands in place of
// the teacher's `.exit`.
package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/Virtosync/VirtoLang/diagnostics"
	"github.com/Virtosync/VirtoLang/eval"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured interactive session.
type Repl struct {
	Version string
	Prompt  string
}

// New creates a Repl with the given version banner and prompt.
func New(version, prompt string) *Repl {
	if prompt == "" {
		prompt = "vlang >>> "
	}
	return &Repl{Version: version, Prompt: prompt}
}

func (r *Repl) printBanner(w io.Writer) {
	line := strings.Repeat("=", 48)
	blueColor.Fprintf(w, "%s\n", line)
	greenColor.Fprintln(w, "VirtoLang interactive shell")
	blueColor.Fprintf(w, "%s\n", line)
	yellowColor.Fprintln(w, "Version: "+r.Version)
	blueColor.Fprintf(w, "%s\n", line)
	cyanColor.Fprintln(w, "Type VirtoLang statements and press enter.")
	cyanColor.Fprintln(w, "/scope lists names bound at top level, /exit quits.")
	blueColor.Fprintf(w, "%s\n", line)
}

// Start runs the read-eval-print loop against ev until the user exits.
func (r *Repl) Start(ev *eval.Evaluator, out io.Writer) {
	r.printBanner(out)

	rl, err := readline.NewEx(&readline.Config{Prompt: r.Prompt})
	if err != nil {
		fmt.Fprintln(out, "failed to start line editor:", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/exit" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		if line == "/scope" {
			printScope(ev, out)
			continue
		}

		rl.SaveHistory(line)
		r.evalLine(ev, out, line)
	}
}

func printScope(ev *eval.Evaluator, out io.Writer) {
	names := ev.Global.Names()
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
}

// evalLine evaluates one line of input, reporting any resulting error
// through diagnostics.Format without tearing down the session.
func (r *Repl) evalLine(ev *eval.Evaluator, out io.Writer, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			diagnostics.Format(out, ev.FS, diagnostics.Report{
				Kind:    "RuntimeError",
				Message: fmt.Sprintf("internal error: %v", rec),
			})
		}
	}()
	if err := ev.RunSource("<repl>", line); err != nil {
		diagnostics.Format(out, ev.FS, diagnostics.Report{
			Kind:    err.Kind,
			Message: err.Message,
			Span:    err.Span,
			Hint:    err.Hint,
			Trace:   err.Trace,
		})
	}
}
