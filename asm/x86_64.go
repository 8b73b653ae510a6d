package asm

import (
	"fmt"
	"math"

	"github.com/reusee/taicc/codegen"
)

// X86_64 emits Intel-syntax assembly for the System V ABI. A is rax, B is rdi.
type X86_64 struct{}

var _ Target = X86_64{}

func (X86_64) Name() string {
	return "x86_64"
}

func (X86_64) Preamble(entry string) []string {
	return []string{
		".intel_syntax noprefix",
		noExecStack,
		".text",
		".globl " + entry,
		entry + ":",
	}
}

func (X86_64) reg(r codegen.Reg) (string, error) {
	switch r {
	case codegen.RegA:
		return "rax", nil
	case codegen.RegB:
		return "rdi", nil
	}
	return "", fmt.Errorf("unknown register: %v", r)
}

func (x X86_64) Lower(inst codegen.Instruction) ([]string, error) {
	switch inst := inst.(type) {

	case codegen.PushImm:
		if inst.Value >= math.MinInt32 && inst.Value <= math.MaxInt32 {
			return []string{
				fmt.Sprintf("push %d", inst.Value),
			}, nil
		}
		// push only takes a sign-extended imm32; rax is dead between protocol steps
		return []string{
			fmt.Sprintf("mov rax, %d", inst.Value),
			"push rax",
		}, nil

	case codegen.Push:
		src, err := x.reg(inst.Src)
		if err != nil {
			return nil, err
		}
		return []string{"push " + src}, nil

	case codegen.Pop:
		dst, err := x.reg(inst.Dst)
		if err != nil {
			return nil, err
		}
		return []string{"pop " + dst}, nil

	case codegen.Binary:
		dst, err := x.reg(inst.Dst)
		if err != nil {
			return nil, err
		}
		src, err := x.reg(inst.Src)
		if err != nil {
			return nil, err
		}
		switch inst.Op {
		case codegen.OpAdd:
			return []string{"add " + dst + ", " + src}, nil
		case codegen.OpSub:
			return []string{"sub " + dst + ", " + src}, nil
		case codegen.OpMul:
			return []string{"imul " + dst + ", " + src}, nil
		case codegen.OpDiv:
			if inst.Dst != codegen.RegA {
				return nil, fmt.Errorf("idiv needs the dividend in rax, got %s", dst)
			}
			// sign-extend rax into rdx:rax
			return []string{
				"cqo",
				"idiv " + src,
			}, nil
		}
		return nil, fmt.Errorf("unknown operator: %v", inst.Op)

	case codegen.Return:
		return []string{"ret"}, nil

	}
	return nil, fmt.Errorf("unknown instruction: %T", inst)
}
