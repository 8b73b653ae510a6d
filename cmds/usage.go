package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	seen := make(map[*Command]bool)
	for _, name := range slices.Sorted(maps.Keys(p.commands)) {
		command := p.commands[name]
		// aliases share the command; list it once under its primary name
		if seen[command] || slices.Contains(command.Aliases, name) {
			continue
		}
		seen[command] = true

		usage := name
		fnType := command.Func.Type()
		for i := range fnType.NumIn() {
			t := fnType.In(i)
			if t.Kind() == reflect.Pointer {
				usage += " [" + t.Elem().Kind().String() + "]"
			} else {
				usage += " <" + t.Kind().String() + ">"
			}
		}

		line := "  " + usage
		if command.Description != "" {
			line += strings.Repeat(" ", max(1, 28-len(line))) + command.Description
		}
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}
