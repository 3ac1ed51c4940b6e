package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/lexer"
	"github.com/funvibe/polymodal/internal/parser"
)

// checkSource parses a Compiled program and type checks it.
func checkSource(input string) (bool, []*diagnostics.Diagnostic) {
	program := parser.Parse(lexer.Tokenize("[Compiled]\n" + input))
	checker := NewTypeChecker(input)
	ok := checker.Check(program)
	return ok, checker.Diagnostics()
}

func formatDiagnostics(diags []*diagnostics.Diagnostic) string {
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Error())
	}
	return strings.Join(msgs, "\n")
}

// expectCheckError asserts that at least one error with the given code is produced.
func expectCheckError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.Diagnostic {
	t.Helper()
	ok, diags := checkSource(input)
	if ok {
		t.Fatalf("expected error %s, but check passed\ninput: %s\ndiagnostics:\n%s", code, input, formatDiagnostics(diags))
	}
	for _, d := range diags {
		if d.Code == code && d.IsError() {
			return d
		}
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, formatDiagnostics(diags), input)
	return nil
}

// expectNoCheckErrors asserts that checking passes; warnings are allowed.
func expectNoCheckErrors(t *testing.T, input string) []*diagnostics.Diagnostic {
	t.Helper()
	ok, diags := checkSource(input)
	if !ok {
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", formatDiagnostics(diags), input)
	}
	return diags
}

func expectWarning(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	diags := expectNoCheckErrors(t, input)
	for _, d := range diags {
		if d.Code == code && d.Level == diagnostics.LevelWarning {
			return
		}
	}
	t.Fatalf("expected warning %s, got:\n%s\ninput: %s", code, formatDiagnostics(diags), input)
}

func TestLetAnnotationMismatch(t *testing.T) {
	d := expectCheckError(t, `let x: i32 = "hi"`, diagnostics.ErrT001)
	if !strings.Contains(d.Message, "expected i32, got str") {
		t.Errorf("unexpected message: %s", d.Message)
	}
}

func TestInterpretedProgramsAreNotChecked(t *testing.T) {
	body := "let x: i32 = \"hi\"\nprint(y)\nlet z = 1 && 2"

	compiled := parser.Parse(lexer.Tokenize("[Compiled]\n" + body))
	cc := NewTypeChecker(body)
	if cc.Check(compiled) {
		t.Fatal("Compiled program should fail")
	}
	if len(cc.Diagnostics()) == 0 {
		t.Fatal("Compiled program should produce diagnostics")
	}

	interpreted := parser.Parse(lexer.Tokenize("[Interpreted]\n" + body))
	ic := NewTypeChecker(body)
	if !ic.Check(interpreted) {
		t.Error("Interpreted program should pass trivially")
	}
	if n := len(ic.Diagnostics()); n != 0 {
		t.Errorf("Interpreted program produced %d diagnostics", n)
	}
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"literal widening", "let a: i64 = 5\nlet b: f32 = 2\nlet c: u8 = 255\nlet d: f64 = 1.5"},
		{"variable widening", "let a: i8 = 1\nlet b: i64 = a\nlet c: f64 = b"},
		{"string concat", `let s = "n=" + 3`},
		{"list annotation", "let xs: list[f64] = [1, 2.5, 3]"},
		{"empty list", "let xs: list[str] = []"},
		{"map annotation", `let m: map[str, i32] = { a: 1, "b": 2 }`},
		{"option", "let o: option[i32] = none\nlet p: option[i32] = 3"},
		{"forward reference", "fn a() -> i32 { return b() }\nfn b() -> i32 { return 1 }"},
		{"call with coercion", "fn f(x: i64) -> i64 { return x }\nlet y: i8 = 1\nf(y)"},
		{"untyped params", "fn f(x, y) { return x + y }\nf(1, \"a\")"},
		{"for over list", "for i in [1, 2, 3] { let j: i32 = i }"},
		{"for over range", "for i in range(1, 4) { print(i * 2) }"},
		{"for over integer", "for i in 3 { print(i) }"},
		{"while", "let n = 0\nwhile n < 3 { n = n + 1 }"},
		{"builtins", "let xs = [1]\nlet n: i32 = len(xs)\nlet s: str = str(n)\nlet t = type_of(s)\nlet ys = push(xs, 2)"},
		{"index", "let xs = [1, 2]\nlet a: i32 = xs[0]\nlet m = { k: true }\nlet b: bool = m[\"k\"]"},
		{"member", "let m = { k: 1 }\nlet v = m.k"},
		{"containers", "contract Token {\n state let supply: u64 = 100\n fn total() -> u64 { return self.supply }\n}\nlet t: Token = Token\nToken.total()"},
		{"any interactions", "fn f(x) { let a = x + 1\nlet b = x == \"s\"\nlet c = x < 3\nlet d = x && true }"},
		{"assignment", "let x = 1\nx = 2"},
		{"match", "let v = 3\nmatch v { 1 => print(\"one\"), n if n > 1 => print(n), _ => print(\"other\") }"},
		{"destructure", "let (a, b) = [1, 2]\nlet c: i32 = a + b"},
		{"logical", "let ok = !(1 < 2) || true && false"},
		{"extensions", "let g = generator { yield 1 }\nlet c = coroutine { suspend }\nresume c\nasync fn w() { return 1 }\nawait w()"},
		{"imports", "import math\nmath.sqrt(4)"},
		{"nested function", "fn outer() -> i32 {\n fn inner(a: i32) -> i32 { return a }\n return inner(1)\n}"},
		{"top-level return", "return"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectNoCheckErrors(t, tt.input)
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
	}{
		{"narrowing", "let a: i64 = 5\nlet b: i32 = a", diagnostics.ErrT001},
		{"literal out of range", "let a: u8 = 256", diagnostics.ErrT001},
		{"fraction into integer", "let a: i32 = 1.5", diagnostics.ErrT001},
		{"list element", `let xs: list[i32] = [1, "a"]`, diagnostics.ErrT001},
		{"return mismatch", `fn f() -> i32 { return "x" }`, diagnostics.ErrT001},
		{"missing return value", "fn f() -> i32 { return }", diagnostics.ErrT001},
		{"unknown type", "let p: Point = 1", diagnostics.ErrT002},
		{"unknown nested type", "fn f(ps: list[Point]) { }", diagnostics.ErrT002},
		{"undefined variable", "print(y)", diagnostics.ErrT003},
		{"assign undefined", "y = 1", diagnostics.ErrT003},
		{"if condition", "if 1 { print(1) }", diagnostics.ErrT004},
		{"while condition", `while "s" { }`, diagnostics.ErrT004},
		{"guard condition", "match 1 { n if n => print(n), _ => print(0) }", diagnostics.ErrT004},
		{"iterate string", `for c in "abc" { }`, diagnostics.ErrT005},
		{"iterate float", "for i in 1.5 { }", diagnostics.ErrT005},
		{"string index", "let xs = [1]\nxs[\"a\"]", diagnostics.ErrT006},
		{"index bool", "let b = true\nb[0]", diagnostics.ErrT006},
		{"arity", "fn f(a: i32) { }\nf(1, 2)", diagnostics.ErrT007},
		{"argument type", "fn f(a: i32) { }\nf(\"x\")", diagnostics.ErrT007},
		{"range argument", `range("a")`, diagnostics.ErrT007},
		{"len arity", "len()", diagnostics.ErrT007},
		{"push type", "let xs = [1]\npush(xs, \"a\")", diagnostics.ErrT007},
		{"unknown function", "missing(1)", diagnostics.ErrT008},
		{"call non-function", "let x = 1\nx()", diagnostics.ErrT008},
		{"member on number", "let x = 1\nx.y", diagnostics.ErrT009},
		{"bool arithmetic", "let x = true + 1", diagnostics.ErrT010},
		{"ordering strings", `let x = "a" < "b"`, diagnostics.ErrT010},
		{"logical numbers", "let x = 1 && 2", diagnostics.ErrT010},
		{"compare incompatible", `let x = 1 == "a"`, diagnostics.ErrT010},
		{"negate string", `let x = -"a"`, diagnostics.ErrT010},
		{"not number", "let x = !1", diagnostics.ErrT010},
		{"const assignment", "const k: i32 = 1\nk = 2", diagnostics.ErrT011},
		{"assign to function", "fn f() { }\nf = 1", diagnostics.ErrT011},
		{"pattern type", `let s = "a"` + "\nmatch s { 1 => print(1), _ => print(2) }", diagnostics.ErrT001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCheckError(t, tt.input, tt.code)
		})
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
	}{
		{"uninferable let", "fn f() { return 1 }\nlet xs = [missing]", diagnostics.WarnW001},
		{"mixed list", `let xs = [1, "a"]`, diagnostics.WarnW002},
		{"mixed map", `let m = { a: 1, b: "x" }`, diagnostics.WarnW002},
		{"divergent branches", "let c = true\nif c { 1 } else { \"one\" }", diagnostics.WarnW003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code == diagnostics.WarnW001 {
				// The undefined name is itself an error; the warning is
				// reported alongside it.
				_, diags := checkSource(tt.input)
				for _, d := range diags {
					if d.Code == tt.code && d.Level == diagnostics.LevelWarning {
						return
					}
				}
				t.Fatalf("expected warning %s, got:\n%s", tt.code, formatDiagnostics(diags))
			}
			expectWarning(t, tt.input, tt.code)
		})
	}
}

func TestNumericBranchesDoNotWarn(t *testing.T) {
	diags := expectNoCheckErrors(t, "let c = true\nif c { print(1) } else { print(2) }")
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics:\n%s", formatDiagnostics(diags))
	}
}

func TestCheckingContinuesAfterErrors(t *testing.T) {
	_, diags := checkSource("let a: i32 = \"x\"\nprint(b)\nlet c: bool = 1")
	errors := 0
	for _, d := range diags {
		if d.IsError() {
			errors++
		}
	}
	if errors != 3 {
		t.Errorf("expected 3 errors, got %d:\n%s", errors, formatDiagnostics(diags))
	}
}

func TestDiagnosticPositions(t *testing.T) {
	d := expectCheckError(t, "let ok = 1\nprint(missing)", diagnostics.ErrT003)
	if d.Location == nil {
		t.Fatal("expected a location")
	}
	// Line 1 is the [Compiled] header added by checkSource.
	if d.Location.Line != 3 || d.Location.Column != 7 {
		t.Errorf("location = %d:%d, want 3:7", d.Location.Line, d.Location.Column)
	}
}

func TestScopesDoNotLeak(t *testing.T) {
	expectCheckError(t, "if true { let inner = 1 }\nprint(inner)", diagnostics.ErrT003)
	expectCheckError(t, "for i in [1] { }\nprint(i)", diagnostics.ErrT003)
	expectCheckError(t, "fn f(p) { }\nprint(p)", diagnostics.ErrT003)
	expectCheckError(t, "match 1 { n => print(n) }\nprint(n)", diagnostics.ErrT003)
}
