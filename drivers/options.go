package drivers

import (
	"github.com/reusee/taicc/arith"
	"github.com/reusee/taicc/asm"
	"github.com/reusee/taicc/cmds"
	"github.com/reusee/taicc/configs"
	"github.com/reusee/taicc/vars"
)

type Target string

var targetFlag = cmds.Var[string]("-target", "output target: x86_64, riscv64 or ir")

func (Module) Target(
	loader configs.Loader,
) Target {
	return Target(vars.FirstNonZero(
		*targetFlag,
		configs.First[string](loader, "target"),
		asm.DefaultTarget,
	))
}

type EntryName string

const DefaultEntryName = "main"

var entryFlag = cmds.Var[string]("-entry", "symbol of the emitted function")

func (Module) EntryName(
	loader configs.Loader,
) EntryName {
	return EntryName(vars.FirstNonZero(
		*entryFlag,
		configs.First[string](loader, "entry"),
		DefaultEntryName,
	))
}

type MaxDepth int

var maxDepthFlag = cmds.Var[int]("-max-depth", "maximum nesting of parentheses and signs")

func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	if *maxDepthFlag > 0 {
		return MaxDepth(*maxDepthFlag)
	}
	if n := configs.First[int](loader, "max_depth"); n > 0 {
		return MaxDepth(n)
	}
	return arith.DefaultMaxDepth
}

type AllowTrailing bool

var allowTrailingFlag = cmds.Switch("-allow-trailing", "ignore tokens after a complete expression")

func (Module) AllowTrailing(
	loader configs.Loader,
) AllowTrailing {
	return AllowTrailing(
		*allowTrailingFlag ||
			configs.First[bool](loader, "allow_trailing"),
	)
}
