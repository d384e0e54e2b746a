package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/doccheck/internal/discovery"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	mod, refs, err := discovery.Resolve(cfg.Examples)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(g.Out, "module %s\n", mod)
	for _, r := range refs {
		count := "?"
		if r.Examples != discovery.UnknownExamples {
			count = fmt.Sprintf("%d", r.Examples)
		}
		var tags []string
		if r.Excluded {
			tags = append(tags, "excluded")
		}
		if r.Optional {
			tags = append(tags, "optional")
		}
		if r.ParseErr != nil {
			tags = append(tags, "parse error")
		}
		line := fmt.Sprintf("  %-60s %3s examples", r.ImportPath, count)
		if len(tags) > 0 {
			line += " " + dim("["+strings.Join(tags, ", ")+"]")
		}
		_, _ = fmt.Fprintln(g.Out, line)
	}
	return nil
}
