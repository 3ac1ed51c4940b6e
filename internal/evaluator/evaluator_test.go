package evaluator_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/funvibe/polymodal/internal/analyzer"
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/evaluator"
	"github.com/funvibe/polymodal/internal/lexer"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/parser"
)

func parse(input string) *ast.Program {
	return parser.Parse(lexer.Tokenize(input))
}

func newEvaluator(out *bytes.Buffer) *evaluator.Evaluator {
	eval := evaluator.New()
	eval.Out = out
	eval.Logger = slog.New(slog.DiscardHandler)
	return eval
}

// run interprets input and returns everything it printed.
func run(t *testing.T, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newEvaluator(&out).Interpret(parse(input))
	return out.String(), err
}

func expectOutput(t *testing.T, input, want string) {
	t.Helper()
	got, err := run(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v\ninput:\n%s", err, input)
	}
	if got != want {
		t.Errorf("output = %q, want %q\ninput:\n%s", got, want, input)
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"let and print", "[Interpreted]\nlet x = 2 + 3\nprint(x)", "5\n"},
		{"for over list", "[Interpreted]\nfor i in [1,2,3] { print(i) }", "1\n2\n3\n"},
		{"match statement", "[Interpreted]\nmatch 5 { 5 => print(\"five\"), _ => print(\"other\") }", "five\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, tt.input, tt.want)
		})
	}
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"division", "print(7 / 2)", "3.5\n"},
		{"modulo", "print(7 % 3)", "1\n"},
		{"float sum", "print(0.5 + 0.25)", "0.75\n"},
		{"string concatenation", `print("n=" + 4 + "!")`, "n=4!\n"},
		{"number before string", `print(4 + "!")`, "4!\n"},
		{"comparison and logic", "print(1 < 2 && 2 <= 2)", "true\n"},
		{"short circuit", "print(false && missing)\nprint(true || missing)", "false\ntrue\n"},
		{"negation", "print(!true)\nprint(-(2 - 5))", "false\n3\n"},
		{"structural equality", "print([1, [2]] == [1, [2]])\nprint({a: 1} != {a: 2})", "true\ntrue\n"},
		{"none compares with anything", "print(none == 1)\nprint(none == none)", "false\ntrue\n"},
		{"large count is iterated lazily", "fn first() {\n for i in 100000000000 {\n  if i == 3 { return i }\n }\n}\nprint(first())", "3\n"},
		{"empty range", "print(range(5, 2))", "[]\n"},
		{"none prints", "print(none)", "None\n"},
		{"recursion", "fn fact(n) {\n  if n <= 1 { return 1 }\n  return n * fact(n - 1)\n}\nprint(fact(5))", "120\n"},
		{"last statement is the result", "fn double(x) { x * 2 }\nprint(double(4))", "8\n"},
		{"functions are hoisted", "print(triple(2))\nfn triple(x) { x * 3 }", "6\n"},
		{"value semantics", "let a = [1, 2]\nlet b = a\nb = push(b, 3)\nprint(a)\nprint(b)", "[1, 2]\n[1, 2, 3]\n"},
		{"builtins", `print(len("héllo"))
print(range(2, 5))
print(type_of({}))
print(str(1.5) + "x")
print(len({a: 1, b: 2}))`, "5\n[2, 3, 4]\nmap\n1.5x\n2\n"},
		{"map access", "let m = {name: \"ada\", \"age\": 36}\nprint(m.name)\nprint(m[\"age\"])\nprint(m)", "ada\n36\n{age: 36, name: ada}\n"},
		{"while", "let i = 0\nwhile i < 3 { i = i + 1 }\nprint(i)", "3\n"},
		{"block scope", "let x = 1\n{\n  let x = 2\n  print(x)\n}\nprint(x)", "2\n1\n"},
		{"assignment reaches outer binding", "let total = 0\nfor i in [1, 2, 3] { total = total + i }\nprint(total)", "6\n"},
		{"integer range loop", "for i in 3 { print(i) }", "0\n1\n2\n"},
		{"elif chain", "let n = 0\nif n > 0 { print(\"pos\") } elif n < 0 { print(\"neg\") } else { print(\"zero\") }", "zero\n"},
		{"truthiness", "if \"\" { print(\"t\") } else { print(\"f\") }\nif 2 { print(\"t\") }\nif none { print(\"t\") } else { print(\"f\") }", "f\nt\nf\n"},
		{"match expression with guard", `fn classify(p) {
  return match p {
    (0, 0) => "origin"
    (x, _) if x > 0 => "right"
    _ => "other"
  }
}
print(classify([0, 0]))
print(classify([3, 1]))
print(classify([-1, 1]))`, "origin\nright\nother\n"},
		{"failed guard does not bind", `let v = 10
match 3 {
  v if v > 5 => print("big")
  _ => print(v)
}`, "10\n"},
		{"arm bindings", "match [1, 2] { [a, b] => print(a + b), _ => print(0) }", "3\n"},
		{"struct pattern", "let p = {x: 1, y: 2}\nmatch p { Point { x: 1, y } => print(y), _ => print(\"no\") }", "2\n"},
		{"or pattern", "match 2 { 1 | 2 => print(\"small\"), _ => print(\"big\") }", "small\n"},
		{"binding pattern", "match [1, 2] { all @ [1, _] => print(all), _ => print(0) }", "[1, 2]\n"},
		{"destructuring", "let (a, [b, _]) = [1, [2, 3]]\nprint(a + b)", "3\n"},
		{"actor methods bind self", `actor Counter {
  state let count = 41
  fn next() { return self.count + 1 }
}
print(Counter.next())
print(Counter.count)`, "42\n41\n"},
		{"contract", `contract Token {
  state let supply: u64 = 100
  fn total() -> u64 { return self.supply }
}
print(Token.total())`, "100\n"},
		{"generator", "let xs = generator {\n  yield 1\n  yield 2\n}\nprint(xs)", "[1, 2]\n"},
		{"coroutine", "let c = coroutine { 7 }\nprint(resume c)", "7\n"},
		{"coroutine function", "coroutine fn ticks() { 3 }\nprint(ticks())", "3\n"},
		{"async and await", "async fn inc(x) { x + 1 }\nprint(await inc(1))\nprint(async 5)", "2\n5\n"},
		{"suspend", "print(suspend)", "None\n"},
		{"parallel for runs in order", "parallel for x in [1, 2] { print(x) }", "1\n2\n"},
		{"declarations have no effect", "module app\nimport math\ncomponent Button() { print(\"never\") }\nflow Main { print(\"never\") }\nprint(\"ok\")", "ok\n"},
		{"builtin shadowed by user function", "fn len(x) { 99 }\nprint(len([1]))", "99\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, tt.input, tt.want)
		})
	}
}

func TestRunResult(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3"},
		{"let x = 1", "None"},
		{"parallel map x in [1, 2, 3] { x * 10 }", "[10, 20, 30]"},
		{"return 4\nprint(5)", "4"},
		{"if true { \"yes\" } else { \"no\" }", "yes"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		result, err := newEvaluator(&out).Run(parse(tt.input))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if result.Inspect() != tt.want {
			t.Errorf("%q: result = %s, want %s", tt.input, result.Inspect(), tt.want)
		}
	}
}

func TestReturnUnwindsToCallBoundary(t *testing.T) {
	input := `fn first_even(xs) {
  for x in xs {
    if x % 2 == 0 {
      return x
    }
  }
  return -1
}
fn countdown(n) {
  while true {
    if n == 0 { return "done" }
    n = n - 1
  }
}
print(first_even([1, 3, 4, 5]))
print(first_even([1]))
print(countdown(3))`
	expectOutput(t, input, "4\n-1\ndone\n")
}

func TestTopLevelReturnStopsProgram(t *testing.T) {
	expectOutput(t, "print(1)\nif true {\n  return\n}\nprint(2)", "1\n")
}

func TestReturnInsideMatchExpression(t *testing.T) {
	input := `fn pick(n) {
  let label = match n {
    0 => { return "zero" }
    _ => "some"
  }
  return label + "thing"
}
print(pick(0))
print(pick(1))`
	expectOutput(t, input, "zero\nsomething\n")
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"division by zero", "print(1 / 0)", "division by zero"},
		{"modulo by zero", "print(1 % 0)", "modulo by zero"},
		{"undefined variable", "print(y)", "undefined variable: y"},
		{"assignment to unknown", "x = 1", "undefined variable: x"},
		{"arity", "fn f(a) { a }\nf(1, 2)", "f expects 1 arguments, got 2"},
		{"builtin arity", "len()", "len expects 1 arguments, got 0"},
		{"index out of bounds", "print([1][3])", "out of bounds"},
		{"range too large", "let r = range(100000000000)", "exceeds the limit"},
		{"huge index", "let l = [1, 2]\nprint(l[100000000000000000000])", "out of bounds"},
		{"negative index", "print([1][-1])", "out of bounds"},
		{"missing key", "let m = {a: 1}\nprint(m[\"b\"])", `key "b" not found`},
		{"missing member", "let m = {a: 1}\nprint(m.b)", "no member b"},
		{"mixed comparison", `print(1 == "1")`, "cannot compare number and string"},
		{"mismatched operands", "print(true + 1)", "cannot apply + to bool and number"},
		{"logical needs bools", "print(1 && true)", "&& requires bool operands"},
		{"not a function", "let x = 1\nx(2)", "number is not a function"},
		{"no arm matched", "match 3 { 1 => print(1) }", "no match arm matched 3"},
		{"overlapping arms", "match 1 { 1 => print(1), 1 => print(2) }", "overlapping patterns: arms 1 and 2"},
		{"destructuring mismatch", "let (a, b) = [1]", "does not match"},
		{"yield outside generator", "yield 1", "yield outside of a generator"},
		{"not iterable", "for c in \"abc\" { print(c) }", "cannot iterate over string"},
		{"resume non-function", "resume 3", "cannot resume number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.input)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			var rerr *evaluator.RuntimeError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
			}
			if !strings.Contains(rerr.Message, tt.want) {
				t.Errorf("message = %q, want it to contain %q", rerr.Message, tt.want)
			}
		})
	}
}

func TestRuntimeErrorPosition(t *testing.T) {
	_, err := run(t, "let a = 1\nprint(a / 0)")
	var rerr *evaluator.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %v", err)
	}
	if rerr.Line != 2 || rerr.Column != 9 {
		t.Errorf("position = %d:%d, want 2:9", rerr.Line, rerr.Column)
	}
	if !strings.HasPrefix(rerr.Error(), "runtime error at 2:9: ") {
		t.Errorf("Error() = %q", rerr.Error())
	}
}

func TestFramesReleasedOnError(t *testing.T) {
	var out bytes.Buffer
	eval := newEvaluator(&out)
	input := "fn f() {\n  let x = 1\n  for i in [1] {\n    {\n      print(x / 0)\n    }\n  }\n}\nf()"
	if err := eval.Interpret(parse(input)); err == nil {
		t.Fatal("expected division error")
	}
	if depth := eval.FrameDepth(); depth != 0 {
		t.Fatalf("frames leaked: depth %d after error", depth)
	}

	// The evaluator stays usable after a failed run.
	if err := eval.Interpret(parse("print(\"again\")")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "again\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestCallDepthIsBounded(t *testing.T) {
	var out bytes.Buffer
	eval := newEvaluator(&out)
	eval.MaxDepth = 50

	err := eval.Interpret(parse("fn down(n) { down(n + 1) }\ndown(0)"))
	var rerr *evaluator.RuntimeError
	if !errors.As(err, &rerr) || !strings.Contains(rerr.Message, "maximum call depth 50 exceeded") {
		t.Fatalf("expected call depth error, got %v", err)
	}
	if eval.FrameDepth() != 0 {
		t.Errorf("frames leaked: depth %d", eval.FrameDepth())
	}

	// Depth below the bound succeeds.
	input := "fn sum(n) {\n  if n == 0 { return 0 }\n  return n + sum(n - 1)\n}\nprint(sum(40))"
	if err := eval.Interpret(parse(input)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "820\n" {
		t.Errorf("output = %q", out.String())
	}
}

// A program the type checker accepts may still fail at runtime, because
// the checker treats any arithmetic with a str operand as str.
func TestCheckerAndRuntimeDiverge(t *testing.T) {
	input := "[Compiled]\nlet s = \"a\" - 1\nprint(s)"
	program := parse(input)

	checker := analyzer.NewTypeChecker(input)
	if !checker.Check(program) {
		t.Fatalf("expected the checker to accept the program: %v", checker.Diagnostics())
	}

	_, err := run(t, input)
	var rerr *evaluator.RuntimeError
	if !errors.As(err, &rerr) || !strings.Contains(rerr.Message, "cannot apply - to string and number") {
		t.Fatalf("expected operand error at runtime, got %v", err)
	}
}

func TestMatchStatementWarnings(t *testing.T) {
	tests := []struct {
		input    string
		warnings int
	}{
		{"match 2 { 1 => print(1), n => print(n) }", 0},
		{"match 2 { 2 => print(2), _ => print(0) }", 0},
		{"match 2 { 2 => print(2) }", 1},
		{"match 2 { 2 => print(2), _ if false => print(0) }", 1},
		{"let x = match 2 { 2 => 2 }", 0},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		eval := newEvaluator(&out)
		if err := eval.Interpret(parse(tt.input)); err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		warnings := eval.Warnings()
		if len(warnings) != tt.warnings {
			t.Errorf("%q: got %d warnings, want %d", tt.input, len(warnings), tt.warnings)
			continue
		}
		for _, w := range warnings {
			if w.Code != diagnostics.WarnR002 || w.Level != diagnostics.LevelWarning {
				t.Errorf("%q: unexpected warning %v", tt.input, w)
			}
		}
	}
}

func TestCallFunctionAndExecuteInFrame(t *testing.T) {
	var out bytes.Buffer
	eval := newEvaluator(&out)
	if err := eval.Interpret(parse("fn add(a, b) { a + b }")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	global, ok := eval.Global("add")
	if !ok {
		t.Fatal("add is not defined")
	}
	add, ok := global.(*object.Function)
	if !ok {
		t.Fatalf("add is %T", global)
	}

	result, err := eval.CallFunction(add, []object.Object{&object.Number{Value: 2}, &object.Number{Value: 3}})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if result.Inspect() != "5" {
		t.Errorf("add(2, 3) = %s", result.Inspect())
	}
	if _, err := eval.CallFunction(add, nil); err == nil {
		t.Error("expected arity error")
	}

	frame := map[string]object.Object{"who": &object.String{Value: "mailbox"}}
	result, err = eval.ExecuteInFrame(parse("print(who)\nreturn add(1, 1)\nprint(\"unreached\")").Statements, frame)
	if err != nil {
		t.Fatalf("ExecuteInFrame: %v", err)
	}
	if result.Inspect() != "2" {
		t.Errorf("result = %s, want 2", result.Inspect())
	}
	if out.String() != "mailbox\n" {
		t.Errorf("output = %q", out.String())
	}
	if eval.FrameDepth() != 0 {
		t.Errorf("frames leaked: depth %d", eval.FrameDepth())
	}
}
