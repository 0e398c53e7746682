package parser

import (
	"testing"

	"github.com/example/jsgo/ast"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(input)
	prog, errs := p.ParseProgram()
	if len(errs) > 0 {
		for _, e := range errs {
			t.Errorf("parser error: %s", e)
		}
		t.FailNow()
	}
	return prog
}

func parseWithErrors(input string) (*ast.Program, []error) {
	p := New(input)
	return p.ParseProgram()
}

func expectStmtCount(t *testing.T, prog *ast.Program, n int) {
	t.Helper()
	if len(prog.Statements) != n {
		t.Fatalf("expected %d statements, got %d", n, len(prog.Statements))
	}
}

func TestVarLetConstDeclarations(t *testing.T) {
	prog := parse(t, `var x = 1; let y = 2; const z = 3;`)
	expectStmtCount(t, prog, 3)
	kinds := []string{"var", "let", "const"}
	for i, want := range kinds {
		decl, ok := prog.Statements[i].(*ast.VariableDeclaration)
		if !ok {
			t.Fatalf("statement %d: expected VariableDeclaration, got %T", i, prog.Statements[i])
		}
		if decl.Kind != want {
			t.Errorf("statement %d: kind = %s, want %s", i, decl.Kind, want)
		}
	}
}

func TestMultipleDeclarators(t *testing.T) {
	prog := parse(t, `var a = 1, b = 2, c;`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	if len(decl.Declarations) != 3 {
		t.Fatalf("expected 3 declarators, got %d", len(decl.Declarations))
	}
	if decl.Declarations[2].Value != nil {
		t.Error("expected nil value for uninitialized declarator c")
	}
}

func TestDestructuringObjectAndArray(t *testing.T) {
	prog := parse(t, `const { a, b: c } = obj; let [x, , y] = arr;`)
	expectStmtCount(t, prog, 2)
	if _, ok := prog.Statements[0].(*ast.VariableDeclaration).Declarations[0].Name.(*ast.ObjectPattern); !ok {
		t.Error("expected ObjectPattern for first declarator")
	}
	if _, ok := prog.Statements[1].(*ast.VariableDeclaration).Declarations[0].Name.(*ast.ArrayPattern); !ok {
		t.Error("expected ArrayPattern for second declarator")
	}
}

func TestBinaryOperatorPrecedence(t *testing.T) {
	prog := parse(t, `1 + 2 * 3;`)
	es := prog.Statements[0].(*ast.ExpressionStatement)
	bin, ok := es.Expression.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected BinaryExpression, got %T", es.Expression)
	}
	if bin.Operator != "+" {
		t.Fatalf("outer operator = %s, want +", bin.Operator)
	}
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("right side should be nested BinaryExpression (2 * 3), got %T", bin.Right)
	}
}

func TestFunctionDeclarationAndExpression(t *testing.T) {
	prog := parse(t, `function add(a, b) { return a + b; } const f = function(x) { return x; };`)
	expectStmtCount(t, prog, 2)
	fd, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", prog.Statements[0])
	}
	if len(fd.Params) != 2 {
		t.Errorf("expected 2 params, got %d", len(fd.Params))
	}
}

func TestArrowFunctions(t *testing.T) {
	prog := parse(t, `const f = (x, y) => x + y; const g = x => x * 2;`)
	expectStmtCount(t, prog, 2)
}

func TestClassDeclaration(t *testing.T) {
	prog := parse(t, `class Point extends Base { constructor(x) { this.x = x; } get x() { return this._x; } }`)
	expectStmtCount(t, prog, 1)
	if _, ok := prog.Statements[0].(*ast.ClassDeclaration); !ok {
		t.Fatalf("expected ClassDeclaration, got %T", prog.Statements[0])
	}
}

func TestTemplateLiteralExpression(t *testing.T) {
	prog := parse(t, "let s = `a${1+1}b`;")
	expectStmtCount(t, prog, 1)
}

func TestIfElseAndLoops(t *testing.T) {
	prog := parse(t, `if (a) { b(); } else { c(); } for (let i = 0; i < 10; i++) { d(); } while (e) { f(); }`)
	expectStmtCount(t, prog, 3)
}

func TestTryCatchFinally(t *testing.T) {
	prog := parse(t, `try { a(); } catch (e) { b(); } finally { c(); }`)
	expectStmtCount(t, prog, 1)
	if _, ok := prog.Statements[0].(*ast.TryStatement); !ok {
		t.Fatalf("expected TryStatement, got %T", prog.Statements[0])
	}
}

func TestSpreadAndRestParameters(t *testing.T) {
	prog := parse(t, `function f(a, ...rest) { return rest; } const arr = [1, ...xs, 2];`)
	expectStmtCount(t, prog, 2)
	fd := prog.Statements[0].(*ast.FunctionDeclaration)
	if fd.Rest == nil {
		t.Error("expected non-nil Rest parameter")
	}
}

func TestOptionalChainingAndNullishCoalescing(t *testing.T) {
	prog := parse(t, `const v = a?.b?.c ?? d;`)
	expectStmtCount(t, prog, 1)
}

func TestSyntaxErrorsAreReported(t *testing.T) {
	_, errs := parseWithErrors(`let = ;`)
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error for malformed declaration")
	}
}

// StrictMode directive-prologue detection: a leading "use strict" string
// literal statement marks the enclosing Program or function body strict.
func TestProgramStrictModeDirective(t *testing.T) {
	prog := parse(t, `"use strict"; var x = 1;`)
	if !prog.StrictMode {
		t.Error("expected Program.StrictMode = true")
	}
}

func TestProgramWithoutDirectiveIsNotStrict(t *testing.T) {
	prog := parse(t, `var x = 1;`)
	if prog.StrictMode {
		t.Error("expected Program.StrictMode = false")
	}
}

func TestFunctionOwnStrictModeDirective(t *testing.T) {
	prog := parse(t, `function f() { "use strict"; return 1; }`)
	fd := prog.Statements[0].(*ast.FunctionDeclaration)
	if !fd.StrictMode {
		t.Error("expected FunctionDeclaration.StrictMode = true from own directive prologue")
	}
}

func TestFunctionExpressionStrictModeDirective(t *testing.T) {
	prog := parse(t, `const f = function() { "use strict"; return 1; };`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	fe := decl.Declarations[0].Value.(*ast.FunctionExpression)
	if !fe.StrictMode {
		t.Error("expected FunctionExpression.StrictMode = true from own directive prologue")
	}
}

func TestNodePosReflectsTokenPosition(t *testing.T) {
	prog := parse(t, "\nvar x = 1;")
	pos := prog.Statements[0].Pos()
	if pos.Line != 2 {
		t.Errorf("statement Pos().Line = %d, want 2", pos.Line)
	}
}
