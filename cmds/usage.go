package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

var exit = os.Exit

var usageOutput io.Writer = os.Stderr

// PrintUsage lists the commands, each once, with its parameters and aliases.
func (p *Executor) PrintUsage() {
	w := tabwriter.NewWriter(usageOutput, 0, 4, 2, ' ', 0)
	names := make([]string, 0, len(p.commands))
	for name := range p.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	seen := make(map[*Command]bool)
	for _, name := range names {
		command := p.commands[name]
		if seen[command] || slices.Contains(command.Aliases, name) {
			continue
		}
		seen[command] = true
		line := name
		if params := command.Params(); params != "" {
			line += " " + params
		}
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "  %s\t%s\n", line, command.Description)
	}
	w.Flush()
}
