package stackvm

type OpCode uint32

const (
	OpLoadConst OpCode = iota + 8
	OpPush
	OpPop
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpReturn
)

// MaxArg bounds operands; they share the word with the 8-bit opcode.
const MaxArg = 1<<24 - 1

func (o OpCode) With(arg int) OpCode {
	return o | (OpCode(arg) << 8)
}

func (o OpCode) Op() OpCode {
	return o & 0xff
}

func (o OpCode) Arg() int {
	return int(o >> 8)
}

// binary operators pack the destination register in the low nibble of the argument
func binaryArg(dst, src int) int {
	return dst | src<<4
}

func (o OpCode) String() string {
	switch o.Op() {
	case OpLoadConst:
		return "load_const"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpReturn:
		return "return"
	}
	return "unknown"
}
