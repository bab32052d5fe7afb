package eval_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtosync/VirtoLang/eval"
	"github.com/Virtosync/VirtoLang/source"
	"github.com/Virtosync/VirtoLang/std"
)

// newEvaluator builds an Evaluator with the starter library registered
// and stdout captured into a buffer the test can inspect.
func newEvaluator(t *testing.T) (*eval.Evaluator, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ev := eval.New(source.NewFileSet(), t.TempDir())
	ev.Stdout = &buf
	std.Register(ev)
	return ev, &buf
}

func run(t *testing.T, src string) (string, *eval.Evaluator) {
	t.Helper()
	ev, buf := newEvaluator(t)
	err := ev.RunSource("<test>", src)
	require.Nil(t, err, "unexpected runtime error: %+v", err)
	return buf.String(), ev
}

// --- spec.md §8 end-to-end scenarios ---

func TestScenario_IntegerDivisionYieldsFloat(t *testing.T) {
	out, _ := run(t, `print(6 / 2)`)
	assert.Equal(t, "3.0\n", out)
}

func TestScenario_FunctionDefinitionAndCall(t *testing.T) {
	out, _ := run(t, "def add(a,b){ return a+b }\nprint(add(2,3))")
	assert.Equal(t, "5\n", out)
}

func TestScenario_FizzBuzz(t *testing.T) {
	out, _ := run(t, `
parts = []
for (i in range(1, 16)) {
	piece = str(i)
	if (i % 15 == 0) { piece = "FizzBuzz" }
	elif (i % 3 == 0) { piece = "Fizz" }
	elif (i % 5 == 0) { piece = "Buzz" }
	parts = append(parts, piece)
}
print(join(parts, " "))
`)
	assert.Equal(t, "1 2 Fizz 4 Buzz Fizz 7 8 Fizz Buzz 11 Fizz 13 14 FizzBuzz\n", out)
}

func TestScenario_TryExceptFinally(t *testing.T) {
	out, _ := run(t, `try { raise Error("fail!") } except Error as e { print(e) } finally { print("done") }`)
	assert.Equal(t, "fail!\ndone\n", out)
}

func TestScenario_AsyncAwait(t *testing.T) {
	out, _ := run(t, `
async def f(){ await sleep(0); return 42 }
t = f()
print(await t)
`)
	assert.Equal(t, "42\n", out)
}

func TestScenario_IsNotOperator(t *testing.T) {
	out, _ := run(t, `if (5 is not 3) { print("yes") }`)
	assert.Equal(t, "yes\n", out)
}

func TestScenario_DanglingIsNotIsASyntaxError(t *testing.T) {
	ev, _ := newEvaluator(t)
	err := ev.RunSource("<test>", `if (5 is not) { print("x") }`)
	require.NotNil(t, err)
	assert.Equal(t, "SyntaxError", err.Kind)
	assert.Equal(t, "Did you mean 'not in' or 'is not'?", err.Hint)
}

// --- additional targeted coverage ---

func TestBlockAssignmentMutatesEnclosingFrameNotANewScope(t *testing.T) {
	out, _ := run(t, `
count = 0
i = 0
while (i < 3) {
	count = count + 1
	i = i + 1
}
print(count)
`)
	assert.Equal(t, "3\n", out)
}

func TestForLoopBindsIntoEnclosingScope(t *testing.T) {
	out, _ := run(t, `
for (x in [1, 2, 3]) {}
print(x)
`)
	assert.Equal(t, "3\n", out)
}

func TestUndefinedNameRaisesNameError(t *testing.T) {
	ev, _ := newEvaluator(t)
	err := ev.RunSource("<test>", `print(undefined_name)`)
	require.NotNil(t, err)
	assert.Equal(t, "NameError", err.Kind)
}

func TestDivisionByZeroRaisesRuntimeError(t *testing.T) {
	ev, _ := newEvaluator(t)
	err := ev.RunSource("<test>", `x = 1 / 0`)
	require.NotNil(t, err)
	assert.Equal(t, "RuntimeError", err.Kind)
}

func TestTypeMismatchRaisesTypeError(t *testing.T) {
	ev, _ := newEvaluator(t)
	err := ev.RunSource("<test>", `x = 1 + "a"`)
	require.NotNil(t, err)
	assert.Equal(t, "TypeError", err.Kind)
}

func TestUncaughtRaiseEscapesAsRaised(t *testing.T) {
	ev, _ := newEvaluator(t)
	err := ev.RunSource("<test>", `raise Error("boom")`)
	require.NotNil(t, err)
	assert.Equal(t, "Error", err.Kind)
	assert.Equal(t, "boom", err.Message)
}

func TestExceptClauseOnlyCatchesMatchingKind(t *testing.T) {
	ev, _ := newEvaluator(t)
	err := ev.RunSource("<test>", `
try {
	raise Error("bad input", "ValueError")
} except TypeError as e {
	print("wrong handler")
}
`)
	require.NotNil(t, err)
	assert.Equal(t, "ValueError", err.Kind)
}

func TestExceptErrorSuperTagCatchesAnyKind(t *testing.T) {
	out, _ := run(t, `
try {
	raise Error("bad input", "ValueError")
} except Error as e {
	print(e.kind)
}
`)
	assert.Equal(t, "ValueError\n", out)
}

func TestFinallyReplacesReturnSignal(t *testing.T) {
	out, _ := run(t, `
def f() {
	try {
		return 1
	} finally {
		return 2
	}
}
print(f())
`)
	assert.Equal(t, "2\n", out)
}

// TestCustomExceptionClassTagging exercises the tag-by-function-name
// convention: a named function that constructs and returns a
// default-kind Error is treated as that error's class.
func TestCustomExceptionClassTagging(t *testing.T) {
	out, _ := run(t, `
def ValueError(msg) {
	return Error(msg)
}

try {
	raise ValueError("bad value")
} except ValueError as e {
	print(e.message)
}
`)
	assert.Equal(t, "bad value\n", out)
}

func TestClosureCapturesDefiningFrameNotCallerFrame(t *testing.T) {
	out, _ := run(t, `
def make_adder(n) {
	return def(x) { return x + n }
}
add5 = make_adder(5)
print(add5(10))
`)
	assert.Equal(t, "15\n", out)
}

func TestListsAreSharedByReference(t *testing.T) {
	out, _ := run(t, `
a = [1, 2]
b = a
append(b, 3)
print(a)
`)
	assert.Equal(t, "[1, 2, 3]\n", out)
}

func TestMembershipOperators(t *testing.T) {
	out, _ := run(t, `
print(2 in [1, 2, 3])
print(5 not in [1, 2, 3])
print("ell" in "hello")
`)
	assert.Equal(t, "true\ntrue\ntrue\n", out)
}

func TestDictIndexAssignPutsAndReadsBack(t *testing.T) {
	out, _ := run(t, `
d = dict()
d["a"] = 1
d["b"] = 2
print(d["a"])
print(d["b"])
print(keys(d))
`)
	assert.Equal(t, "1\n2\n[\"a\", \"b\"]\n", out)
}

func TestListIndexAssignOverwritesElement(t *testing.T) {
	out, _ := run(t, `
xs = [1, 2, 3]
xs[1] = 99
print(xs)
`)
	assert.Equal(t, "[1, 99, 3]\n", out)
}

func TestTupleIndexAssignIsATypeError(t *testing.T) {
	ev, _ := newEvaluator(t)
	err := ev.RunSource("<test>", `
t = tuple(1, 2)
t[0] = 5
`)
	require.NotNil(t, err)
	assert.Equal(t, "TypeError", err.Kind)
}

func TestImportBindsModuleNamesIntoImportingFrame(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/helpers.vlang", []byte("greeting = \"hi\"\n"), 0o644))

	ev := eval.New(source.NewFileSet(), dir)
	var buf bytes.Buffer
	ev.Stdout = &buf
	std.Register(ev)

	err := ev.RunSource(dir+"/main.vlang", `
import "./helpers.vlang"
print(greeting)
`)
	require.Nil(t, err)
	assert.Equal(t, "hi\n", buf.String())
}
