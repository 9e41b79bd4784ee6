package core_test

import (
	"math"
	"strings"
	"testing"

	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/errs"
	. "src.rambutan.dev/pkg/eval/evaltest"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/mods/console"
	"src.rambutan.dev/pkg/mods/core"
	"src.rambutan.dev/pkg/parse"
)

func setup(in *eval.Interpreter) {
	core.Install(in)
	console.Install(in)
}

func sym(name string) *vals.Atom { return vals.NewAtom(name) }

func TestLiterals(t *testing.T) {
	TestWithSetup(t, setup,
		That("t").Returns(vals.Bool(true)),
		That("nil").Returns(vals.Nil),
		That("42").Returns(vals.Num(42)),
		// Literals are never looked up.
		That("(list t nil 1)").WithSetup(func(in *eval.Interpreter) {
			in.SetGlobal("t", vals.Num(1))
			in.SetGlobal("nil", vals.Num(2))
			in.SetGlobal("1", vals.Num(3))
		}).Returns(ListOf(vals.Bool(true), vals.Nil, vals.Num(1))),
		That("(setq t 1)").Throws(ErrorWithType(errs.BadValue{})),
	)
}

func TestDefun(t *testing.T) {
	TestWithSetup(t, setup,
		That("(defun sq (x) (* x x))", "(sq 5)").Returns(vals.Num(25)),
		That("(defun f () 1)").Returns(AnyFn),
		That(
			"(defun fact (n) (if (<= n 1) 1 (* n (fact (- n 1)))))",
			"(fact 10)").Returns(vals.Num(3628800)),
		That("(defun f nil 2)", "(f)").Returns(vals.Num(2)),
		That("(defun f (x &rest xs) xs)", "(f 1 2 3)").Returns(ListOf(vals.Num(2), vals.Num(3))),
		// Functions defined inside a let see its bindings.
		That("(let ((n 10)) (defun add-n (x) (+ x n)))", "(add-n 1)").Returns(vals.Num(11)),
		// Body forms are evaluated in order.
		That("(defun f () (log 1) (log 2) 3)", "(f)").Prints("1\n2\n").Returns(vals.Num(3)),
		That("(defun)").Throws(errs.ArityMismatch{
			What: "arguments", ValidLow: 2, ValidHigh: -1, Actual: 0}),
		That(`(defun "f" ())`).Throws(errs.BadValue{
			What: "function name", Valid: "symbol", Actual: `"f"`}),
		That("(defun f 1)").Throws(errs.BadValue{
			What: "parameter list", Valid: "list", Actual: "1"}),
	)
}

func TestLambda(t *testing.T) {
	TestWithSetup(t, setup,
		That("((lambda (x y) (- x y)) 5 2)").Returns(vals.Num(3)),
		That("(setq inc (lambda (x) (+ x 1)))", "(inc 1)").Returns(vals.Num(2)),
		That(
			"(defun make-counter ()",
			"  (let ((n 0)) (lambda () (set n (+ n 1)))))",
			"(setq c (make-counter))",
			"(c) (c) (c)").Returns(vals.Num(3)),
		// Counters do not share state.
		That(
			"(defun make-counter ()",
			"  (let ((n 0)) (lambda () (set n (+ n 1)))))",
			"(setq c1 (make-counter) c2 (make-counter))",
			"(c1) (c1) (c2)").Returns(vals.Num(1)),
	)
}

func TestSetAndLet(t *testing.T) {
	TestWithSetup(t, setup,
		// let bindings are local and torn down after the body.
		That("(let ((x 1)) (set x 2) x)").Returns(vals.Num(2)),
		That("(let ((x 1)) (set x 2) x)", "x").Returns(vals.Nil),
		That("(let ((x 1)) (set x 2) x)").Then("x").InStrictMode().
			Throws(&eval.UnboundSymbol{Name: "x"}),
		// setq inside the body binds a global name.
		That("(let ((x 1)) (setq x 3) x)").Returns(vals.Num(1)),
		That("(let ((x 1)) (setq x 3) x)", "x").Returns(vals.Num(3)),
		That("(let ((x 1)) (setq x 3))").Then("x").Returns(vals.Num(3)),
		// set of an unbound name binds a global name.
		That("(set y 2)", "y").Returns(vals.Num(2)),
		That("(set a 1 b 2)", "(list a b)").Returns(ListOf(vals.Num(1), vals.Num(2))),
		That("(setq x 1)", "(let ((x 2)) (set x 3))", "x").Returns(vals.Num(1)),
		// Later initializers see earlier bindings.
		That("(let ((x 1) (y (+ x 1))) (list x y))").Returns(ListOf(vals.Num(1), vals.Num(2))),
		That("(let (x (y)) (list x y))").Returns(ListOf(vals.Nil, vals.Nil)),
		That("(let nil 1)").Returns(vals.Num(1)),
		// Inner let shadows outer let.
		That("(let ((x 1)) (let ((x 2)) x))").Returns(vals.Num(2)),
		That("(let ((x 1)) (let ((x 2)) x) x)").Returns(vals.Num(1)),
		// Siblings do not see each other's bindings.
		That("(list (let ((x 1)) x) x)").Returns(ListOf(vals.Num(1), vals.Nil)),
		// Two-operand let binds in the enclosing form.
		That("(let z 5)", "z").Returns(vals.Num(5)),
		That("(defun f () (let z 5) (+ z 1))", "(f)").Returns(vals.Num(6)),
		That("(defun f () (let z 5) (+ z 1))", "(f)", "z").Returns(vals.Nil),
		That("(set)").Throws(ErrorWithType(errs.ArityMismatch{})),
		That("(set x)").Throws(ErrorWithType(errs.ArityMismatch{})),
		That("(setq 1 2)").Throws(ErrorWithType(errs.BadValue{})),
		That("(let ((1 2)) 1)").Throws(ErrorWithType(errs.BadValue{})),
		That(`(let "x")`).Throws(ErrorWithType(errs.BadValue{})),
	)
}

func TestIf(t *testing.T) {
	TestWithSetup(t, setup,
		That("(if nil (log 1) (log 2))").Prints("2\n").Returns(vals.Nil),
		That("(if t (log 1) (log 2))").Prints("1\n"),
		That("(if t 1 2)").Returns(vals.Num(1)),
		That("(if 0 1 2)").Returns(vals.Num(2)),
		That(`(if "" 1 2)`).Returns(vals.Num(2)),
		That("(if '() 1 2)").Returns(vals.Num(1)),
		That("(if nil 1)").Returns(vals.Nil),
		That("(if t)").Returns(vals.Nil),
		// The else forms are evaluated like progn.
		That("(if nil 1 (log 2) 3)").Prints("2\n").Returns(vals.Num(3)),
		That("(if (= 1 1) 'yes 'no)").Returns(sym("yes")),
		That("(if)").Throws(ErrorWithType(errs.ArityMismatch{})),
	)
}

func TestQuote(t *testing.T) {
	TestWithSetup(t, setup,
		That("'(+ 1 2)").Returns(ListOf(sym("+"), vals.Num(1), vals.Num(2))),
		That("(+ 1 2)").Returns(vals.Num(3)),
		That("(quote (+ 1 2))").Returns(ListOf(sym("+"), vals.Num(1), vals.Num(2))),
		That("(quote x)").Returns(sym("x")),
		That("(quote 1)").Returns(vals.Num(1)),
		That("(setq x 5)", "`(x ,x ,(+ x 1))").Returns(ListOf(sym("x"), vals.Num(5), vals.Num(6))),
		That("(eval '(+ 1 2))").Returns(vals.Num(3)),
		That("(setq x 5)", "(eval 'x)").Returns(vals.Num(5)),
		That("(eval (list '+ 1 2))").Returns(vals.Num(3)),
		That("(quote)").Throws(ErrorWithType(errs.ArityMismatch{})),
	)
}

func TestPrognAndList(t *testing.T) {
	TestWithSetup(t, setup,
		That("(progn)").Returns(vals.Nil),
		That("(progn (log 1) 2)").Prints("1\n").Returns(vals.Num(2)),
		That("(list)").Returns(ListOf()),
		That(`(list 1 "a" (list t))`).Returns(ListOf(vals.Num(1), vals.Str("a"), ListOf(vals.Bool(true)))),
	)
}

func TestLogic(t *testing.T) {
	TestWithSetup(t, setup,
		That("(and 1 0 1)").Returns(vals.Bool(false)),
		That("(and 1 2)").Returns(vals.Bool(true)),
		That("(and)").Returns(vals.Bool(true)),
		That("(or nil 0 1)").Returns(vals.Bool(true)),
		That("(or nil)").Returns(vals.Bool(false)),
		That("(not nil)").Returns(vals.Bool(true)),
		That("(not 1)").Returns(vals.Bool(false)),
		// and is eager: all operands are evaluated.
		That("(and nil (log 1))").Prints("1\n").Returns(vals.Bool(false)),
		That("(not)").Throws(ErrorWithType(errs.ArityMismatch{})),
	)
}

func TestComparison(t *testing.T) {
	TestWithSetup(t, setup,
		That("(= 1 1 1)").Returns(vals.Bool(true)),
		That("(= 1 2)").Returns(vals.Bool(false)),
		That(`(= 1 "1")`).Returns(vals.Bool(true)),
		That(`(= "a" "a")`).Returns(vals.Bool(true)),
		That("(= '(1 a) '(1 a))").Returns(vals.Bool(true)),
		That("(= 'a 'b)").Returns(vals.Bool(false)),
		That("(!= 1 2 1)").Returns(vals.Bool(true)),
		That("(!= 1 1)").Returns(vals.Bool(false)),
		That("(< 1 2 3)").Returns(vals.Bool(true)),
		That("(< 1 3 2)").Returns(vals.Bool(false)),
		That("(<= 1 1 2)").Returns(vals.Bool(true)),
		That("(> 3 2 1)").Returns(vals.Bool(true)),
		That("(>= 1 2)").Returns(vals.Bool(false)),
		That(`(< "a" "b")`).Returns(vals.Bool(true)),
		That(`(< "10" 9)`).Returns(vals.Bool(false)),
		That("(< 1)").Returns(vals.Bool(true)),
		That("(setq nan (/ 0 0))", "(list (< nan 1) (>= nan 1) (= nan nan))").Returns(
			ListOf(vals.Bool(false), vals.Bool(false), vals.Bool(false))),
		That("(< 'a 1)").Throws(ErrorWithType(errs.BadValue{})),
	)
}

func TestArithmetic(t *testing.T) {
	TestWithSetup(t, setup,
		That("(+)").Returns(vals.Num(0)),
		That("(+ 1 2 3.5)").Returns(vals.Num(6.5)),
		That(`(+ "1" 2)`).Returns(vals.Num(3)),
		That("(+ nil t)").Returns(vals.Num(1)),
		That("(- 5)").Returns(vals.Num(-5)),
		That("(- 10 3 2)").Returns(vals.Num(5)),
		That("(-)").Returns(vals.Num(0)),
		That("(*)").Returns(vals.Num(1)),
		That("(* 2 3 4)").Returns(vals.Num(24)),
		That("(/ 4)").Returns(vals.Num(0.25)),
		That("(/ 12 2 3)").Returns(vals.Num(2)),
		That("(/ 1 0)").Returns(vals.Num(math.Inf(1))),
		That("(/ 0.3 0.1)").Returns(Approximately(3)),
		That("(+ 1 'a)").Throws(errs.BadValue{What: "argument 2", Valid: "number", Actual: "a"}),
		That(`(* "x")`).Throws(ErrorWithType(errs.BadValue{})),
	)
}

func TestConcat(t *testing.T) {
	TestWithSetup(t, setup,
		That(".").Returns(AnyFn),
		That("(.)").Returns(vals.Str("")),
		That(`(. "a" 1 "b" t nil '(x))`).Returns(vals.Str("a1btnil(x)")),
		That(`(. "third=" (/ 3))`).Returns(StringMatching(`^third=0\.333`)),
	)
}

func TestRegistrationPolicy(t *testing.T) {
	TestWithSetup(t, setup,
		That("(defun if (c a b) b)", "(if 1 2 3)").
			Returns(vals.Num(3)),
		// Lisp functions bound to a delayed name get evaluated arguments.
		That("(defun if (c a b) b)", "(if 1 2 (+ 1 2))").
			Returns(vals.Num(3)),
		That("(let ((set (lambda (x) x))) (set (+ 1 2)))").
			Returns(vals.Num(3)),
		That("").WithSetup(func(in *eval.Interpreter) {
			in.Register("if", func() {}, false)
		}).Warns("if re-registered as eager, was delayed"),
	)
}

func TestNewInterpreter(t *testing.T) {
	in := core.NewInterpreter(eval.Config{})
	for _, name := range []string{"defun", "if", "+", "log"} {
		if _, ok := in.Lookup(name); !ok {
			t.Errorf("%s is not installed", name)
		}
	}
	if !in.IsDelayed("let") || in.IsDelayed("and") {
		t.Errorf("wrong policies for let and and")
	}
}

func TestReprRoundTripEvaluatesIdentically(t *testing.T) {
	codes := []string{
		"(defun sq (x) (* x x)) (sq 7)",
		"(let ((x 1) (y \"a\\\"b\")) (. y x))",
		"'(+ 1 2)",
		"(setq x 4) `(x ,x ,(- x))",
		"(if (and 1 (not nil)) (list 1 -2.5 .5) 'no)",
	}
	for _, code := range codes {
		want := evalAll(t, code)
		in := core.NewInterpreter(eval.Config{})
		forms, err := parse.Parse(parse.Source{Name: "[test]", Code: code})
		if err != nil {
			t.Fatal(err)
		}
		var printed []string
		for _, form := range forms {
			printed = append(printed, vals.Repr(form))
		}
		got, err := in.Eval(strings.Join(printed, "\n"))
		if err != nil {
			t.Errorf("evaluating printed form of %q: %v", code, err)
		}
		if !vals.Equal(got, want) {
			t.Errorf("%q evaluates to %s after printing, want %s",
				code, vals.Repr(got), vals.Repr(want))
		}
	}
}

func evalAll(t *testing.T, code string) vals.Value {
	t.Helper()
	v, err := core.NewInterpreter(eval.Config{}).Eval(code)
	if err != nil {
		t.Fatalf("Eval(%q): %v", code, err)
	}
	return v
}
