// Command vlang is VirtoLang's command-line launcher: it reads a file
// path or a `-C`/`--code` string and hands it to the eval package,
// registering the starter built-in library first. Grounded on go-mix's
// main/main.go (file/REPL/inline-code dispatch, colorized error
// banners, panic-recovery wrapper), rebuilt on github.com/spf13/cobra
// per SPEC_FULL.md §4's CLI expansion (learned from
// opal-lang-opal/cli/main.go's cobra.Command{Use, RunE,
// PersistentFlags} shape).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Virtosync/VirtoLang/diagnostics"
	"github.com/Virtosync/VirtoLang/eval"
	"github.com/Virtosync/VirtoLang/parser"
	"github.com/Virtosync/VirtoLang/repl"
	"github.com/Virtosync/VirtoLang/source"
	"github.com/Virtosync/VirtoLang/std"
)

// version is overridden at build time via -ldflags.
var version = "dev"

const (
	exitOK        = 0
	exitRuntime   = 1
	exitCLIMisuse = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var codeFlag string
	var showVersion bool
	var dumpAST bool

	root := &cobra.Command{
		Use:           "vlang [file]",
		Short:         "VirtoLang interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
	}
	root.Flags().StringVarP(&codeFlag, "code", "C", "", "evaluate a code string instead of a file")
	root.Flags().BoolVarP(&showVersion, "version", "V", false, "print version and exit")
	root.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST instead of evaluating it")
	_ = root.Flags().MarkHidden("dump-ast")

	exitCode := exitOK
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Println("vlang", version)
			return nil
		}

		cfg, err := loadConfig(".")
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			exitCode = exitCLIMisuse
			return nil
		}
		if cfg.Color != nil {
			color.NoColor = !*cfg.Color
		}

		switch {
		case codeFlag != "":
			exitCode = evalAndReport(cfg, "<code>", codeFlag, dumpAST)
		case len(args) == 1:
			data, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, "cannot read file:", err)
				exitCode = exitCLIMisuse
				return nil
			}
			exitCode = evalAndReport(cfg, args[0], string(data), dumpAST)
		default:
			startREPL(cfg)
		}
		return nil
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCLIMisuse
	}
	return exitCode
}

func startREPL(cfg Config) {
	ev := eval.New(source.NewFileSet(), ".")
	if len(cfg.SearchPaths) > 0 {
		ev.Loader.SearchPaths = cfg.SearchPaths
	}
	std.Register(ev)
	prompt := cfg.Prompt
	r := repl.New(version, prompt)
	r.Start(ev, os.Stdout)
}

// evalAndReport runs src (named name) to completion, optionally dumping
// its AST instead of evaluating it, and returns the process exit code
// that should follow (spec.md §6: 0 clean, 1 uncaught error).
func evalAndReport(cfg Config, name, src string, dumpAST bool) (code int) {
	fs := source.NewFileSet()

	// Mirrors the teacher's executeFileWithRecovery: a bug in the
	// evaluator itself (a Go panic, not a VirtoLang-level raise) must
	// still exit cleanly with a diagnostic instead of crashing the
	// process.
	defer func() {
		if r := recover(); r != nil {
			diagnostics.Format(os.Stderr, fs, diagnostics.Report{
				Kind:    "RuntimeError",
				Message: fmt.Sprintf("internal error: %v", r),
			})
			code = exitRuntime
		}
	}()

	if dumpAST {
		id := fs.Add(name, src)
		p := parser.New(fs, id, src)
		prog := p.ParseProgram()
		if p.HasErrors() {
			reportParseErrors(fs, p)
			return exitRuntime
		}
		fmt.Print(parser.Dump(prog))
		return exitOK
	}

	ev := eval.New(fs, filepath.Dir(name))
	if len(cfg.SearchPaths) > 0 {
		ev.Loader.SearchPaths = cfg.SearchPaths
	}
	std.Register(ev)

	if err := ev.RunSource(name, src); err != nil {
		diagnostics.Format(os.Stderr, fs, diagnostics.Report{
			Kind: err.Kind, Message: err.Message, Span: err.Span, Hint: err.Hint, Trace: err.Trace,
		})
		return exitRuntime
	}
	return exitOK
}

func reportParseErrors(fs *source.FileSet, p *parser.Parser) {
	reports := make([]diagnostics.Report, len(p.Errors))
	for i, pe := range p.Errors {
		reports[i] = diagnostics.Report{Kind: "SyntaxError", Message: pe.Message, Span: pe.Span, Hint: pe.Hint}
	}
	diagnostics.FormatAll(os.Stderr, fs, reports)
}

func init() {
	color.NoColor = false
}
