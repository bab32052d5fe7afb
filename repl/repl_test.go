package repl

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/Virtosync/VirtoLang/eval"
	"github.com/Virtosync/VirtoLang/objects"
	"github.com/Virtosync/VirtoLang/source"
	"github.com/Virtosync/VirtoLang/std"
)

func newEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	ev := eval.New(source.NewFileSet(), t.TempDir())
	std.Register(ev)
	return ev
}

func TestPrintScope_ListsNamesSorted(t *testing.T) {
	ev := newEvaluator(t)
	ev.Global.SetLocal("zebra", objects.NullValue)
	ev.Global.SetLocal("apple", objects.NullValue)

	var buf bytes.Buffer
	printScope(ev, &buf)

	out := buf.String()
	assert.True(t, bytes.Index([]byte(out), []byte("apple")) < bytes.Index([]byte(out), []byte("zebra")))
}

func TestEvalLine_SuccessProducesNoOutput(t *testing.T) {
	ev := newEvaluator(t)
	r := New("test", "")

	var buf bytes.Buffer
	r.evalLine(ev, &buf, `x = 1 + 1`)

	assert.Empty(t, buf.String())
}

func TestEvalLine_ErrorIsReportedViaDiagnostics(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ev := newEvaluator(t)
	r := New("test", "")

	var buf bytes.Buffer
	r.evalLine(ev, &buf, `print(undefined_name)`)

	out := buf.String()
	assert.Contains(t, out, "NameError:")
	assert.Contains(t, out, "undefined_name")
}

func TestPrintBanner_IncludesVersionAndHints(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	r := New("1.2.3", "")
	var buf bytes.Buffer
	r.printBanner(&buf)

	out := buf.String()
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "/scope")
	assert.Contains(t, out, "/exit")
}

func TestNew_DefaultsPromptWhenEmpty(t *testing.T) {
	r := New("1.0", "")
	assert.Equal(t, "vlang >>> ", r.Prompt)
}
