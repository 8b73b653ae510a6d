package stackvm

import (
	"errors"
	"fmt"

	"github.com/reusee/taicc/codegen"
)

type Function struct {
	Name      string
	Code      []OpCode
	Constants []int64
}

var ErrTooManyConstants = errors.New("too many constants")

type assembler struct {
	fn     *Function
	consts map[int64]int
	// largest constant index
	maxIndex int
}

func (a *assembler) emit(op OpCode) {
	a.fn.Code = append(a.fn.Code, op)
}

func (a *assembler) addConst(val int64) (int, error) {
	if idx, ok := a.consts[val]; ok {
		return idx, nil
	}
	idx := len(a.fn.Constants)
	if idx > a.maxIndex {
		return 0, ErrTooManyConstants
	}
	a.fn.Constants = append(a.fn.Constants, val)
	a.consts[val] = idx
	return idx, nil
}

func reg(r codegen.Reg) (int, error) {
	switch r {
	case codegen.RegA, codegen.RegB:
		return int(r), nil
	}
	return 0, fmt.Errorf("unknown register: %v", r)
}

// Assemble encodes generated instructions into a Function.
func Assemble(name string, code []codegen.Instruction) (*Function, error) {
	a := &assembler{
		fn: &Function{
			Name: name,
		},
		consts:   make(map[int64]int),
		maxIndex: MaxArg,
	}

	for i, inst := range code {
		switch inst := inst.(type) {

		case codegen.PushImm:
			idx, err := a.addConst(inst.Value)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			a.emit(OpLoadConst.With(idx))

		case codegen.Push:
			r, err := reg(inst.Src)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			a.emit(OpPush.With(r))

		case codegen.Pop:
			r, err := reg(inst.Dst)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			a.emit(OpPop.With(r))

		case codegen.Binary:
			dst, err := reg(inst.Dst)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			src, err := reg(inst.Src)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			var op OpCode
			switch inst.Op {
			case codegen.OpAdd:
				op = OpAdd
			case codegen.OpSub:
				op = OpSub
			case codegen.OpMul:
				op = OpMul
			case codegen.OpDiv:
				op = OpDiv
			default:
				return nil, fmt.Errorf("instruction %d: unknown operator: %v", i, inst.Op)
			}
			a.emit(op.With(binaryArg(dst, src)))

		case codegen.Return:
			a.emit(OpReturn)

		default:
			return nil, fmt.Errorf("instruction %d: unknown instruction: %T", i, inst)
		}
	}

	return a.fn, nil
}

// Exec assembles and runs code in a fresh VM.
func Exec(name string, code []codegen.Instruction) (int64, error) {
	fn, err := Assemble(name, code)
	if err != nil {
		return 0, err
	}
	return NewVM(fn).Run()
}
