package codegen

import (
	"fmt"
	"strconv"
)

type Reg uint8

const (
	// RegA holds the left operand, the result, and finally the return value
	RegA Reg = iota + 1
	// RegB holds the right operand
	RegB
)

func (r Reg) String() string {
	switch r {
	case RegA:
		return "A"
	case RegB:
		return "B"
	}
	return "Reg(" + strconv.Itoa(int(r)) + ")"
}

type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	// OpDiv is signed division truncated toward zero
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// Instruction is one of PushImm, Push, Pop, Binary or Return.
type Instruction interface {
	String() string
	instruction()
}

type PushImm struct {
	Value int64
}

type Push struct {
	Src Reg
}

type Pop struct {
	Dst Reg
}

// Binary computes Dst = Dst Op Src
type Binary struct {
	Op  Op
	Dst Reg
	Src Reg
}

type Return struct{}

var (
	_ Instruction = PushImm{}
	_ Instruction = Push{}
	_ Instruction = Pop{}
	_ Instruction = Binary{}
	_ Instruction = Return{}
)

func (PushImm) instruction() {}
func (Push) instruction()    {}
func (Pop) instruction()     {}
func (Binary) instruction()  {}
func (Return) instruction()  {}

func (i PushImm) String() string {
	return "push " + strconv.FormatInt(i.Value, 10)
}

func (i Push) String() string {
	return "push " + i.Src.String()
}

func (i Pop) String() string {
	return "pop " + i.Dst.String()
}

func (i Binary) String() string {
	return fmt.Sprintf("%s %s, %s", i.Op, i.Dst, i.Src)
}

func (Return) String() string {
	return "ret"
}
