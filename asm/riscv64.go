package asm

import (
	"fmt"

	"github.com/reusee/taicc/codegen"
)

// RISCV64 emits GNU assembler syntax for RV64IM. A is a0, B is a1, t0 is scratch.
type RISCV64 struct{}

var _ Target = RISCV64{}

func (RISCV64) Name() string {
	return "riscv64"
}

func (RISCV64) Preamble(entry string) []string {
	return []string{
		noExecStack,
		".text",
		".globl " + entry,
		entry + ":",
	}
}

func (RISCV64) reg(r codegen.Reg) (string, error) {
	switch r {
	case codegen.RegA:
		return "a0", nil
	case codegen.RegB:
		return "a1", nil
	}
	return "", fmt.Errorf("unknown register: %v", r)
}

func (r RISCV64) Lower(inst codegen.Instruction) ([]string, error) {
	switch inst := inst.(type) {

	case codegen.PushImm:
		return []string{
			fmt.Sprintf("li t0, %d", inst.Value),
			"addi sp, sp, -8",
			"sd t0, 0(sp)",
		}, nil

	case codegen.Push:
		src, err := r.reg(inst.Src)
		if err != nil {
			return nil, err
		}
		return []string{
			"addi sp, sp, -8",
			"sd " + src + ", 0(sp)",
		}, nil

	case codegen.Pop:
		dst, err := r.reg(inst.Dst)
		if err != nil {
			return nil, err
		}
		return []string{
			"ld " + dst + ", 0(sp)",
			"addi sp, sp, 8",
		}, nil

	case codegen.Binary:
		dst, err := r.reg(inst.Dst)
		if err != nil {
			return nil, err
		}
		src, err := r.reg(inst.Src)
		if err != nil {
			return nil, err
		}
		var mnemonic string
		switch inst.Op {
		case codegen.OpAdd:
			mnemonic = "add"
		case codegen.OpSub:
			mnemonic = "sub"
		case codegen.OpMul:
			mnemonic = "mul"
		case codegen.OpDiv:
			// div rounds toward zero
			mnemonic = "div"
		default:
			return nil, fmt.Errorf("unknown operator: %v", inst.Op)
		}
		return []string{
			fmt.Sprintf("%s %s, %s, %s", mnemonic, dst, dst, src),
		}, nil

	case codegen.Return:
		return []string{"ret"}, nil

	}
	return nil, fmt.Errorf("unknown instruction: %T", inst)
}
