package debugs

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/reusee/taicc/arith"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Reference evaluates the tree with Starlark's arbitrary-precision integers.
// Division truncates toward zero.
func Reference(node arith.Node) (*big.Int, error) {
	ret, _, err := reference(node, false)
	return ret, err
}

const overflowKey = "overflow"

// reference also reports whether any intermediate result left the int64 range, when checked is true.
func reference(node arith.Node, checked bool) (ret *big.Int, overflow bool, err error) {
	var sb strings.Builder
	if err := writeStarlarkExpr(&sb, node, checked); err != nil {
		return nil, false, err
	}
	thread := &starlark.Thread{
		Name: "reference",
	}
	value, err := starlark.EvalOptions(
		&syntax.FileOptions{},
		thread,
		"reference",
		sb.String(),
		starlark.StringDict{
			"tdiv": tdiv,
			"chk":  chk,
		},
	)
	overflow, _ = thread.Local(overflowKey).(bool)
	if err != nil {
		return nil, overflow, err
	}
	i, ok := value.(starlark.Int)
	if !ok {
		return nil, overflow, fmt.Errorf("expecting int, got %s", value.Type())
	}
	return i.BigInt(), overflow, nil
}

func writeStarlarkExpr(sb *strings.Builder, node arith.Node, checked bool) error {
	if checked {
		if _, ok := node.(*arith.Binary); ok {
			sb.WriteString("chk(")
			defer sb.WriteString(")")
		}
	}
	switch node := node.(type) {

	case *arith.Num:
		sb.WriteString("(")
		sb.WriteString(strconv.FormatInt(node.Value, 10))
		sb.WriteString(")")

	case *arith.Binary:
		if node.Op == arith.NodeDiv {
			sb.WriteString("tdiv(")
			if err := writeStarlarkExpr(sb, node.Left, checked); err != nil {
				return err
			}
			sb.WriteString(", ")
			if err := writeStarlarkExpr(sb, node.Right, checked); err != nil {
				return err
			}
			sb.WriteString(")")
			return nil
		}
		var op string
		switch node.Op {
		case arith.NodeAdd:
			op = " + "
		case arith.NodeSub:
			op = " - "
		case arith.NodeMul:
			op = " * "
		default:
			return fmt.Errorf("unknown operator: %v", node.Op)
		}
		sb.WriteString("(")
		if err := writeStarlarkExpr(sb, node.Left, checked); err != nil {
			return err
		}
		sb.WriteString(op)
		if err := writeStarlarkExpr(sb, node.Right, checked); err != nil {
			return err
		}
		sb.WriteString(")")

	default:
		return fmt.Errorf("unknown node type: %T", node)
	}
	return nil
}

var tdiv = starlark.NewBuiltin("tdiv", func(
	thread *starlark.Thread,
	fn *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	a, ok := x.(starlark.Int)
	if !ok {
		return nil, fmt.Errorf("%s: expecting int, got %s", fn.Name(), x.Type())
	}
	b, ok := y.(starlark.Int)
	if !ok {
		return nil, fmt.Errorf("%s: expecting int, got %s", fn.Name(), y.Type())
	}
	if b.Sign() == 0 {
		return nil, fmt.Errorf("%s: division by zero", fn.Name())
	}
	// Quo truncates, Div would floor
	return starlark.MakeBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
})

var chk = starlark.NewBuiltin("chk", func(
	thread *starlark.Thread,
	fn *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var x starlark.Int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	if _, ok := x.Int64(); !ok {
		thread.SetLocal(overflowKey, true)
	}
	return x, nil
})
