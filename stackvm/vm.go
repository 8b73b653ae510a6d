package stackvm

import (
	"errors"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUnbalanced     = errors.New("operand stack not empty at return")
	ErrNoReturn       = errors.New("function ended without return")
)

type VM struct {
	CurrentFun   *Function
	IP           int
	OperandStack []int64
	SP           int
	// Regs is indexed by codegen.Reg
	Regs     [3]int64
	Returned bool
}

func NewVM(fn *Function) *VM {
	return &VM{
		CurrentFun:   fn,
		OperandStack: make([]int64, 64),
	}
}

func (v *VM) push(val int64) {
	if v.SP >= len(v.OperandStack) {
		v.growOperandStack()
	}
	v.OperandStack[v.SP] = val
	v.SP++
}

func (v *VM) growOperandStack() {
	newCap := len(v.OperandStack) * 2
	if newCap == 0 {
		newCap = 8
	}
	newStack := make([]int64, newCap)
	copy(newStack, v.OperandStack)
	v.OperandStack = newStack
}

func (v *VM) pop() (int64, error) {
	if v.SP <= 0 {
		return 0, ErrStackUnderflow
	}
	v.SP--
	return v.OperandStack[v.SP], nil
}

// Stack returns the live part of the operand stack, bottom first.
func (v *VM) Stack() []int64 {
	return v.OperandStack[:v.SP]
}
