package drivers

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/taicc/arith"
	"github.com/reusee/taicc/asm"
	"github.com/reusee/taicc/codegen"
	"github.com/reusee/taicc/debugs"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/modes"
	"github.com/reusee/taicc/stackvm"
)

// Parse runs the front end: lexing and parsing with the configured limits.
type Parse func(ctx context.Context, name string, source string) (arith.Node, error)

func (Module) Parse(
	maxDepth MaxDepth,
	allowTrailing AllowTrailing,
	logger logs.Logger,
) Parse {
	options := &arith.Options{
		MaxDepth:      int(maxDepth),
		AllowTrailing: bool(allowTrailing),
	}
	return func(ctx context.Context, name string, source string) (arith.Node, error) {
		node, err := arith.ParseString(name, source, options)
		if err != nil {
			return nil, err
		}
		logger.DebugContext(ctx, "parsed",
			"tree", node,
			"depth", arith.Depth(node),
		)
		return node, nil
	}
}

// Generate runs the front end and code generation.
type Generate func(ctx context.Context, name string, source string) (arith.Node, []codegen.Instruction, error)

func (Module) Generate(
	parse Parse,
	mode modes.Mode,
	logger logs.Logger,
) Generate {
	return func(ctx context.Context, name string, source string) (arith.Node, []codegen.Instruction, error) {
		node, err := parse(ctx, name, source)
		if err != nil {
			return nil, nil, err
		}
		code := codegen.Function(node)
		logger.DebugContext(ctx, "generated",
			"instructions", len(code),
			"max stack", codegen.MaxStack(code),
		)

		if mode == modes.ModeDevelopment {
			got, runErr := stackvm.Exec(name, code)
			if err := debugs.Verify(node, got, runErr); err != nil {
				return nil, nil, fmt.Errorf("self check: %w", err)
			}
		}

		return node, code, nil
	}
}

// Compile writes the assembly for source to w. Nothing is written on error.
type Compile func(ctx context.Context, name string, source string, w io.Writer) error

func (Module) Compile(
	generate Generate,
	target Target,
	entry EntryName,
	newUnit logs.NewUnit,
	logger logs.Logger,
) Compile {
	return func(ctx context.Context, name string, source string, w io.Writer) (err error) {
		ctx, _ = newUnit(ctx, name)
		defer func() {
			err = logs.WrapUnit(ctx, err)
		}()

		t, err := asm.Lookup(string(target))
		if err != nil {
			return err
		}

		_, code, err := generate(ctx, name, source)
		if err != nil {
			return err
		}

		if err := asm.Emit(w, t, string(entry), code); err != nil {
			return err
		}
		logger.InfoContext(ctx, "compiled",
			"name", name,
			"target", t.Name(),
			"entry", entry,
		)

		return nil
	}
}

// Evaluate compiles source and runs it on the stack VM.
type Evaluate func(ctx context.Context, name string, source string) (int64, error)

func (Module) Evaluate(
	generate Generate,
	newUnit logs.NewUnit,
	logger logs.Logger,
) Evaluate {
	return func(ctx context.Context, name string, source string) (ret int64, err error) {
		ctx, _ = newUnit(ctx, name)
		defer func() {
			err = logs.WrapUnit(ctx, err)
		}()

		_, code, err := generate(ctx, name, source)
		if err != nil {
			return 0, err
		}

		fn, err := stackvm.Assemble(name, code)
		if err != nil {
			return 0, err
		}
		vm := stackvm.NewVM(fn)
		for step, err := range vm.Steps {
			if err != nil {
				return 0, err
			}
			logger.DebugContext(ctx, "step",
				"ip", step.IP,
				"op", step.Op,
				"sp", step.SP,
			)
		}
		ret = vm.Regs[codegen.RegA]

		logger.InfoContext(ctx, "evaluated",
			"name", name,
			"value", ret,
		)
		return ret, nil
	}
}
