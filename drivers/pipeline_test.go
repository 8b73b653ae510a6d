package drivers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taicc/arith"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/modes"
	"github.com/reusee/taicc/stackvm"
)

func newScope(t *testing.T, defs ...any) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(logs.Writer(new(bytes.Buffer))),
	).Fork(defs...)
}

func TestCompile(t *testing.T) {
	newScope(t).Call(func(
		compile Compile,
	) {
		buf := new(bytes.Buffer)
		if err := compile(context.Background(), "test", "5*(9-6)", buf); err != nil {
			t.Fatal(err)
		}
		expected := `.intel_syntax noprefix
.section .note.GNU-stack,"",@progbits
.text
.globl main
main:
  push 5
  push 9
  push 6
  pop rdi
  pop rax
  sub rax, rdi
  push rax
  pop rdi
  pop rax
  imul rax, rdi
  push rax
  pop rax
  ret
`
		if buf.String() != expected {
			t.Fatalf("got %s", buf.String())
		}
	})
}

func TestCompileError(t *testing.T) {
	newScope(t).Call(func(
		compile Compile,
	) {
		for _, input := range []string{
			"",
			"(1",
			"1)",
			"5+*3",
			"+",
			"1 $ 2",
		} {
			buf := new(bytes.Buffer)
			err := compile(context.Background(), "test", input, buf)
			var arithErr *arith.Error
			if !errors.As(err, &arithErr) {
				t.Fatalf("%q: got %v", input, err)
			}
			if !strings.Contains(err.Error(), "unit: ") {
				t.Fatalf("got %v", err)
			}
			if buf.Len() > 0 {
				t.Fatalf("%q: partial output %q", input, buf.String())
			}
		}
	})
}

func TestEvaluate(t *testing.T) {
	newScope(t).Call(func(
		evaluate Evaluate,
	) {
		for input, expected := range map[string]int64{
			"123":          123,
			"5+20-4":       21,
			" 12 + 34 - 5 ": 41,
			"5*(9-6)":      15,
			"(3+5)/2":      4,
			"-10+20":       10,
			"- -10":        10,
		} {
			got, err := evaluate(context.Background(), "test", input)
			if err != nil {
				t.Fatal(err)
			}
			if got != expected {
				t.Fatalf("%q: got %d", input, got)
			}
		}

		_, err := evaluate(context.Background(), "test", "1/(2-2)")
		if !errors.Is(err, stackvm.ErrDivisionByZero) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestOverride(t *testing.T) {
	scope := newScope(t).Fork(
		dscope.Provide(Target("riscv64")),
		dscope.Provide(EntryName("calc")),
	)
	scope.Call(func(
		compile Compile,
	) {
		buf := new(bytes.Buffer)
		if err := compile(context.Background(), "test", "42", buf); err != nil {
			t.Fatal(err)
		}
		expected := `.section .note.GNU-stack,"",@progbits
.text
.globl calc
calc:
  li t0, 42
  addi sp, sp, -8
  sd t0, 0(sp)
  ld a0, 0(sp)
  addi sp, sp, 8
  ret
`
		if buf.String() != expected {
			t.Fatalf("got %s", buf.String())
		}
	})

	scope.Fork(
		dscope.Provide(Target("m68k")),
	).Call(func(
		compile Compile,
	) {
		err := compile(context.Background(), "test", "42", new(bytes.Buffer))
		if err == nil || !strings.Contains(err.Error(), `unknown target "m68k"`) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestTrailingAndDepth(t *testing.T) {
	newScope(t,
		func() AllowTrailing {
			return true
		},
		func() MaxDepth {
			return 2
		},
	).Call(func(
		evaluate Evaluate,
	) {
		got, err := evaluate(context.Background(), "test", "1 2")
		if err != nil {
			t.Fatal(err)
		}
		if got != 1 {
			t.Fatalf("got %d", got)
		}
		if _, err := evaluate(context.Background(), "test", "((1))"); err != nil {
			t.Fatal(err)
		}
		_, err = evaluate(context.Background(), "test", "(((1)))")
		if !errors.Is(err, arith.ErrParse) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "taicc.cue"), []byte(`
target: "ir"
entry: "f"
max_depth: 3
allow_trailing: true
`), 0644); err != nil {
		t.Fatal(err)
	}
	newScope(t,
		func() ConfigDirs {
			return ConfigDirs{dir}
		},
	).Call(func(
		target Target,
		entry EntryName,
		maxDepth MaxDepth,
		allowTrailing AllowTrailing,
		compile Compile,
	) {
		if target != "ir" {
			t.Fatalf("got %v", target)
		}
		if entry != "f" {
			t.Fatalf("got %v", entry)
		}
		if maxDepth != 3 {
			t.Fatalf("got %v", maxDepth)
		}
		if !allowTrailing {
			t.Fatal()
		}
		buf := new(bytes.Buffer)
		if err := compile(context.Background(), "test", "1+2 3", buf); err != nil {
			t.Fatal(err)
		}
		expected := `.entry f
  push 1
  push 2
  pop B
  pop A
  add A, B
  push A
  pop A
  ret
`
		if buf.String() != expected {
			t.Fatalf("got %s", buf.String())
		}
	})
}

func TestBadConfigFile(t *testing.T) {
	for _, content := range []string{
		`target: "vax"`,
		`max_depth: "deep"`,
		`unknown: 1`,
		`target: `,
	} {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".taicc.cue"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		newScope(t,
			func() ConfigDirs {
				return ConfigDirs{dir}
			},
		).Call(func(
			check CheckConfig,
		) {
			err := check()
			if err == nil {
				t.Fatalf("%q: should error", content)
			}
			if !strings.HasPrefix(err.Error(), "config: ") {
				t.Fatalf("got %v", err)
			}
		})
	}

	newScope(t).Call(func(
		check CheckConfig,
	) {
		if err := check(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestDefaults(t *testing.T) {
	newScope(t).Call(func(
		dirs ConfigDirs,
		target Target,
		entry EntryName,
		maxDepth MaxDepth,
		allowTrailing AllowTrailing,
	) {
		if len(dirs) != 0 {
			t.Fatalf("got %v", dirs)
		}
		if target != "x86_64" {
			t.Fatalf("got %v", target)
		}
		if entry != "main" {
			t.Fatalf("got %v", entry)
		}
		if maxDepth != arith.DefaultMaxDepth {
			t.Fatalf("got %v", maxDepth)
		}
		if allowTrailing {
			t.Fatal()
		}
	})
}
