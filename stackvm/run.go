package stackvm

import (
	"fmt"

	"github.com/reusee/taicc/codegen"
)

type Step struct {
	IP int
	Op OpCode
	// SP after the step
	SP int
}

// Steps executes one instruction per iteration. An error stops execution.
func (v *VM) Steps(yield func(Step, error) bool) {
	for !v.Returned {
		if v.IP < 0 || v.IP >= len(v.CurrentFun.Code) {
			yield(Step{IP: v.IP, SP: v.SP}, ErrNoReturn)
			return
		}

		ip := v.IP
		inst := v.CurrentFun.Code[v.IP]
		v.IP++

		if err := v.exec(inst); err != nil {
			yield(Step{IP: ip, Op: inst, SP: v.SP}, fmt.Errorf("%s at %d: %w", inst, ip, err))
			return
		}

		if !yield(Step{IP: ip, Op: inst, SP: v.SP}, nil) {
			return
		}
	}
}

func (v *VM) exec(inst OpCode) error {
	switch inst.Op() {

	case OpLoadConst:
		idx := inst.Arg()
		if idx >= len(v.CurrentFun.Constants) {
			return fmt.Errorf("constant %d out of range", idx)
		}
		v.push(v.CurrentFun.Constants[idx])

	case OpPush:
		r := inst.Arg()
		if r <= 0 || r >= len(v.Regs) {
			return fmt.Errorf("bad register %d", r)
		}
		v.push(v.Regs[r])

	case OpPop:
		r := inst.Arg()
		if r <= 0 || r >= len(v.Regs) {
			return fmt.Errorf("bad register %d", r)
		}
		val, err := v.pop()
		if err != nil {
			return err
		}
		v.Regs[r] = val

	case OpAdd, OpSub, OpMul, OpDiv:
		arg := inst.Arg()
		dst, src := arg&0xf, arg>>4
		if dst <= 0 || dst >= len(v.Regs) || src <= 0 || src >= len(v.Regs) {
			return fmt.Errorf("bad registers %d, %d", dst, src)
		}
		a, b := v.Regs[dst], v.Regs[src]
		switch inst.Op() {
		case OpAdd:
			v.Regs[dst] = a + b
		case OpSub:
			v.Regs[dst] = a - b
		case OpMul:
			v.Regs[dst] = a * b
		case OpDiv:
			if b == 0 {
				return ErrDivisionByZero
			}
			// MinInt64 / -1 wraps to MinInt64, where idiv would trap
			v.Regs[dst] = a / b
		}

	case OpReturn:
		if v.SP != 0 {
			return ErrUnbalanced
		}
		v.Returned = true

	default:
		return fmt.Errorf("unknown opcode %d", inst.Op())
	}

	return nil
}

// Run executes to the return instruction and returns the value of register A.
func (v *VM) Run() (int64, error) {
	for _, err := range v.Steps {
		if err != nil {
			return 0, err
		}
	}
	if !v.Returned {
		return 0, ErrNoReturn
	}
	return v.Regs[codegen.RegA], nil
}
