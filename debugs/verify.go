package debugs

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/reusee/taicc/arith"
)

var ErrMismatch = errors.New("result mismatch")

var (
	modulus = new(big.Int).Lsh(big.NewInt(1), 64)
	mask    = new(big.Int).Sub(modulus, big.NewInt(1))
	signBit = new(big.Int).Lsh(big.NewInt(1), 63)
)

// Wrap reduces i to the int64 two's complement range.
func Wrap(i *big.Int) int64 {
	r := new(big.Int).And(i, mask)
	if r.Cmp(signBit) >= 0 {
		r.Sub(r, modulus)
	}
	return r.Int64()
}

// Verify checks the outcome of running the compiled program against the reference evaluation of node.
// Results of + - * are compared modulo 2^64. When a quotient depends on an intermediate that overflowed,
// the wrapped and unbounded semantics differ, including whether a divisor is zero, and the outcome is not checked.
func Verify(node arith.Node, got int64, runErr error) error {
	want, overflow, err := reference(node, true)
	if overflow && hasDivision(node) {
		return nil
	}
	if err != nil {
		if runErr == nil {
			return fmt.Errorf("%w: reference failed with %v, program returned %d", ErrMismatch, err, got)
		}
		return nil
	}
	if runErr != nil {
		return fmt.Errorf("%w: program failed with %v, reference is %s", ErrMismatch, runErr, want)
	}
	if w := Wrap(want); w != got {
		return fmt.Errorf("%w: got %d, reference is %s", ErrMismatch, got, want)
	}
	return nil
}

func hasDivision(node arith.Node) bool {
	switch node := node.(type) {
	case *arith.Binary:
		return node.Op == arith.NodeDiv ||
			hasDivision(node.Left) ||
			hasDivision(node.Right)
	}
	return false
}
