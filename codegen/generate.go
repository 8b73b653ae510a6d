package codegen

import (
	"fmt"

	"github.com/reusee/taicc/arith"
)

// Generate emits the post-order stack protocol for root. Running the result leaves exactly one value on the stack.
func Generate(root arith.Node) []Instruction {
	g := new(generator)
	g.gen(root)
	return g.code
}

// Function wraps the body with the epilogue that pops the result into RegA and returns.
func Function(root arith.Node) []Instruction {
	g := new(generator)
	g.gen(root)
	g.emit(Pop{Dst: RegA})
	g.emit(Return{})
	return g.code
}

type generator struct {
	code []Instruction
}

func (g *generator) emit(inst Instruction) {
	g.code = append(g.code, inst)
}

func (g *generator) gen(node arith.Node) {
	switch node := node.(type) {

	case *arith.Num:
		g.emit(PushImm{Value: node.Value})

	case *arith.Binary:
		// left first: operand order of sub and div depends on it
		g.gen(node.Left)
		g.gen(node.Right)
		g.emit(Pop{Dst: RegB})
		g.emit(Pop{Dst: RegA})
		g.emit(Binary{
			Op:  opOf(node.Op),
			Dst: RegA,
			Src: RegB,
		})
		g.emit(Push{Src: RegA})

	default:
		panic(fmt.Errorf("unknown node type: %T", node))
	}
}

func opOf(kind arith.NodeKind) Op {
	switch kind {
	case arith.NodeAdd:
		return OpAdd
	case arith.NodeSub:
		return OpSub
	case arith.NodeMul:
		return OpMul
	case arith.NodeDiv:
		return OpDiv
	}
	panic(fmt.Errorf("not a binary operator: %v", kind))
}

// MaxStack returns the deepest evaluation stack the instructions reach.
func MaxStack(code []Instruction) int {
	depth, deepest := 0, 0
	for _, inst := range code {
		switch inst.(type) {
		case PushImm, Push:
			depth++
		case Pop:
			depth--
		}
		deepest = max(deepest, depth)
	}
	return deepest
}
