package asm

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/reusee/taicc/codegen"
)

type Target interface {
	Name() string
	Preamble(entry string) []string
	Lower(inst codegen.Instruction) ([]string, error)
}

var targets = make(map[string]Target)

func register(target Target) {
	if _, ok := targets[target.Name()]; ok {
		panic(fmt.Errorf("duplicated target: %s", target.Name()))
	}
	targets[target.Name()] = target
}

func init() {
	register(X86_64{})
	register(RISCV64{})
	register(IR{})
}

const DefaultTarget = "x86_64"

// marks the stack non-executable for the linker
const noExecStack = `.section .note.GNU-stack,"",@progbits`

func Lookup(name string) (Target, error) {
	target, ok := targets[name]
	if !ok {
		return nil, fmt.Errorf("unknown target %q, expecting one of %s", name, strings.Join(Names(), ", "))
	}
	return target, nil
}

func Names() []string {
	var names []string
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Emit renders the whole program before writing, so nothing reaches w if lowering fails.
func Emit(w io.Writer, target Target, entry string, code []codegen.Instruction) error {
	var sb strings.Builder
	for _, line := range target.Preamble(entry) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	for _, inst := range code {
		lines, err := target.Lower(inst)
		if err != nil {
			return fmt.Errorf("%s: %w", target.Name(), err)
		}
		for _, line := range lines {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
