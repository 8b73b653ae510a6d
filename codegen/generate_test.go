package codegen

import (
	"strings"
	"testing"

	"github.com/reusee/taicc/arith"
)

func listing(code []Instruction) string {
	var lines []string
	for _, inst := range code {
		lines = append(lines, inst.String())
	}
	return strings.Join(lines, "\n")
}

func TestGenerateLeaf(t *testing.T) {
	code := Function(arith.MakeLeaf(123))
	if str := listing(code); str != "push 123\npop A\nret" {
		t.Fatalf("got %s", str)
	}
}

func TestGenerateOperandOrder(t *testing.T) {
	tree := arith.MakeBinary(arith.NodeSub, arith.MakeLeaf(5), arith.MakeLeaf(3))
	code := Generate(tree)
	expected := strings.Join([]string{
		"push 5",
		"push 3",
		"pop B",
		"pop A",
		"sub A, B",
		"push A",
	}, "\n")
	if str := listing(code); str != expected {
		t.Fatalf("got %s", str)
	}
}

func TestGenerateOps(t *testing.T) {
	for kind, op := range map[arith.NodeKind]Op{
		arith.NodeAdd: OpAdd,
		arith.NodeSub: OpSub,
		arith.NodeMul: OpMul,
		arith.NodeDiv: OpDiv,
	} {
		code := Generate(arith.MakeBinary(kind, arith.MakeLeaf(1), arith.MakeLeaf(2)))
		b, ok := code[4].(Binary)
		if !ok {
			t.Fatalf("got %T", code[4])
		}
		if b.Op != op || b.Dst != RegA || b.Src != RegB {
			t.Fatalf("got %v", b)
		}
	}
}

func TestGeneratePostOrder(t *testing.T) {
	tree, err := arith.ParseString("", "1+2*3", nil)
	if err != nil {
		t.Fatal(err)
	}
	expected := strings.Join([]string{
		"push 1",
		"push 2",
		"push 3",
		"pop B",
		"pop A",
		"mul A, B",
		"push A",
		"pop B",
		"pop A",
		"add A, B",
		"push A",
		"pop A",
		"ret",
	}, "\n")
	if str := listing(Function(tree)); str != expected {
		t.Fatalf("got %s", str)
	}
}

func TestMaxStack(t *testing.T) {
	for input, expected := range map[string]int{
		"1":           1,
		"1+2":         2,
		"1+2+3+4":     2,
		"1+(2+(3+4))": 4,
	} {
		tree, err := arith.ParseString("", input, nil)
		if err != nil {
			t.Fatal(err)
		}
		code := Function(tree)
		if n := MaxStack(code); n != expected {
			t.Fatalf("%s: got %d", input, n)
		}
	}
}

func TestGenerateBalanced(t *testing.T) {
	tree, err := arith.ParseString("", "-(1+2)*(3-4)/5", nil)
	if err != nil {
		t.Fatal(err)
	}
	depth := 0
	for _, inst := range Generate(tree) {
		switch inst.(type) {
		case PushImm, Push:
			depth++
		case Pop:
			depth--
		}
		if depth < 0 {
			t.Fatal("stack underflow")
		}
	}
	if depth != 1 {
		t.Fatalf("got %d", depth)
	}
}
