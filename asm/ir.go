package asm

import "github.com/reusee/taicc/codegen"

// IR prints the target-independent instructions as generated.
type IR struct{}

var _ Target = IR{}

func (IR) Name() string {
	return "ir"
}

func (IR) Preamble(entry string) []string {
	return []string{
		".entry " + entry,
	}
}

func (IR) Lower(inst codegen.Instruction) ([]string, error) {
	return []string{inst.String()}, nil
}
