package commands

import (
	"fmt"
	"io"
	"os"

	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
	"git.home.luguber.info/inful/doccheck/internal/logfields"
	"git.home.luguber.info/inful/doccheck/internal/sitecheck"
)

// FilterCmd implements the 'filter' command.
type FilterCmd struct {
	File string `arg:"" optional:"" help:"Saved builder stderr; standard input when omitted" type:"path"`
}

func (f *FilterCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	rules, err := sitecheck.CompileRules(cfg.Site.IgnoreWarnings)
	if err != nil {
		return err
	}

	var data []byte
	if f.File == "" {
		data, err = io.ReadAll(g.In)
	} else {
		data, err = os.ReadFile(f.File)
	}
	if err != nil {
		return ferrors.FileSystemError(err, "cannot read builder output").
			WithContext("path", f.File).Build()
	}

	kept, dropped := sitecheck.FilterLines(sitecheck.SplitLines(string(data)), rules)
	g.Recorder.AddFilteredLines(len(kept), dropped)
	g.Logger.Info("Filtered diagnostics", logfields.Kept(len(kept)), logfields.Dropped(dropped))
	for _, line := range kept {
		_, _ = fmt.Fprintln(g.Out, line)
	}
	if len(kept) > 0 {
		return ferrors.SiteBuildError(fmt.Sprintf("%d diagnostic line(s) not covered by the ignore-list", len(kept))).
			WithContext("dropped", dropped).Build()
	}
	return nil
}
