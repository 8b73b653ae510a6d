package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/reusee/dscope"
	"github.com/reusee/taicc/arith"
	"github.com/reusee/taicc/asm"
	"github.com/reusee/taicc/cmds"
	"github.com/reusee/taicc/debugs"
	"github.com/reusee/taicc/drivers"
	"github.com/reusee/taicc/modes"
	"github.com/reusee/taicc/nets"
	"golang.org/x/term"
)

var (
	runFlag    = cmds.Switch("-run", "print the value instead of assembly")
	tokensFlag = cmds.Switch("-tokens", "print tokens")
	astFlag    = cmds.Switch("-ast", "print the syntax tree")
	tapFlag    = cmds.Switch("-tap", "inspect the pipeline in a starlark repl")
	serveAddr  = cmds.Var[string]("-serve", "run the compile service on addr")
)

func init() {
	cmds.Define("-targets", cmds.Func(func() {
		for _, name := range asm.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}).Desc("list output targets"))
}

func main() {
	args := cmds.Positional()
	if err := cmds.Execute(os.Args[1:]); err != nil {
		usageError(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)
	scope.Call(func(
		check drivers.CheckConfig,
	) {
		if err := check(); err != nil {
			fail(err)
		}
	})

	if *serveAddr != "" {
		if len(*args) > 0 {
			usageError(fmt.Errorf("unexpected input %q with -serve", (*args)[0]))
		}
		scope.Call(func(
			serve nets.Serve,
		) {
			if err := serve(ctx, *serveAddr); err != nil {
				fail(err)
			}
		})
		return
	}

	if len(*args) != 1 {
		usageError(fmt.Errorf("expecting one expression, got %d", len(*args)))
	}
	name, source := "<expr>", (*args)[0]
	if source == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			fail(err)
		}
		name, source = "<stdin>", string(content)
	}

	switch {

	case *tokensFlag:
		tokens, err := arith.Tokenize(arith.NewSource(name, source))
		if err != nil {
			fail(err)
		}
		for _, token := range tokens {
			fmt.Printf("%d:%d\t%s\n", token.Pos.Line, token.Pos.Column, token)
		}

	case *astFlag:
		scope.Call(func(
			parse drivers.Parse,
		) {
			node, err := parse(ctx, name, source)
			if err != nil {
				fail(err)
			}
			fmt.Println(node)
		})

	case *tapFlag:
		scope.Call(func(
			generate drivers.Generate,
			tap debugs.Tap,
		) {
			tokens, err := arith.Tokenize(arith.NewSource(name, source))
			if err != nil {
				fail(err)
			}
			node, code, err := generate(ctx, name, source)
			if err != nil {
				fail(err)
			}
			tap(ctx, name, map[string]any{
				"source": source,
				"tokens": tokens,
				"tree":   node,
				"code":   code,
			})
		})

	case *runFlag:
		scope.Call(func(
			evaluate drivers.Evaluate,
		) {
			value, err := evaluate(ctx, name, source)
			if err != nil {
				fail(err)
			}
			fmt.Println(value)
		})

	default:
		scope.Call(func(
			compile drivers.Compile,
		) {
			if err := compile(ctx, name, source, os.Stdout); err != nil {
				fail(err)
			}
		})

	}
}

func usageError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n\nusage: taicc [options] <expr>\n\n", err)
	cmds.PrintUsage()
	os.Exit(1)
}

const (
	colorError = "\033[1;31m"
	colorReset = "\033[0m"
)

// fail reports err and exits. Diagnostics with a source position are printed with the caret line.
func fail(err error) {
	msg := err.Error()
	var arithErr *arith.Error
	if errors.As(err, &arithErr) {
		msg = arithErr.Error()
	}
	msg = strings.TrimRight(msg, "\n")
	if term.IsTerminal(int(os.Stderr.Fd())) {
		header, rest, _ := strings.Cut(msg, "\n")
		msg = colorError + header + colorReset
		if rest != "" {
			msg += "\n" + rest
		}
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
