package debugs

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/reusee/taicc/arith"
	"github.com/reusee/taicc/codegen"
	"github.com/reusee/taicc/stackvm"
)

// randomTokens builds a well-formed expression of at most depth levels.
func randomTokens(r *rand.Rand, depth int) []string {
	n := r.IntN(8)
	switch {

	case depth <= 0 || n < 2:
		var value uint64
		switch r.IntN(10) {
		case 0:
			// wide, may overflow in arithmetic
			value = r.Uint64N(1 << 63)
		case 1:
			value = 0
		default:
			value = r.Uint64N(1000)
		}
		return []string{strconv.FormatUint(value, 10)}

	case n == 2:
		ret := []string{"("}
		ret = append(ret, randomTokens(r, depth-1)...)
		return append(ret, ")")

	case n == 3:
		sign := "-"
		if r.IntN(3) == 0 {
			sign = "+"
		}
		return append([]string{sign}, randomTokens(r, depth-1)...)

	}

	ret := randomTokens(r, depth-1)
	ret = append(ret, string("+-*/"[r.IntN(4)]))
	return append(ret, randomTokens(r, depth-1)...)
}

var spaces = []string{" ", "\t", "\n", "  ", " \r\n "}

func joinTokens(r *rand.Rand, tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		if r.IntN(2) == 0 {
			sb.WriteString(spaces[r.IntN(len(spaces))])
		}
		sb.WriteString(tok)
	}
	if r.IntN(2) == 0 {
		sb.WriteString(spaces[r.IntN(len(spaces))])
	}
	return sb.String()
}

func run(t *testing.T, input string) (arith.Node, int64, error) {
	tree, err := arith.ParseString("", input, nil)
	if err != nil {
		t.Fatalf("%q: %v", input, err)
	}
	value, err := stackvm.Exec("main", codegen.Function(tree))
	return tree, value, err
}

func TestRandomExpressions(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 2))
	for range 5000 {
		tokens := randomTokens(r, 1+r.IntN(6))

		// operators are single characters and numbers never touch, so no spacing is needed
		compact := strings.Join(tokens, "")
		tree, value, err := run(t, compact)
		if e := Verify(tree, value, err); e != nil {
			t.Fatalf("%q: %v", compact, e)
		}

		for range 3 {
			spaced := joinTokens(r, tokens)
			_, value2, err2 := run(t, spaced)
			if (err == nil) != (err2 == nil) {
				t.Fatalf("%q: got %v, %q: got %v", compact, err, spaced, err2)
			}
			if value2 != value {
				t.Fatalf("%q: got %d, %q: got %d", compact, value, spaced, value2)
			}
		}
	}
}
