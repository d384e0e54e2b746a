package main

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/doccheck/cmd/doccheck/commands"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal(os.Stdin, os.Stdout, os.Stderr)

	parser, err := commands.New(context.Background(), cli, global)
	if err != nil {
		ferrors.NewCLIErrorAdapter(true, slog.Default()).
			HandleError(ferrors.InternalError(err, "cannot build command-line parser").Build())
		return
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = commands.Execute(kctx, cli, global)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}

