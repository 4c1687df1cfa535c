// Package cli implements the jack command line interface: a kong-parsed
// flag set shared by two modes of operation. With a source argument (or
// piped stdin) it evaluates one expression and prints its JSON result.
// Without one it starts a REPL.
package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nojimay/jack/pkg"
)

// CLI is the top-level command-line interface for jack.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Format outputFormat `default:"json" enum:"json,yaml" help:"Output serialization format." short:"f"`

	Source string `arg:"" default:"" help:"Source file to evaluate, or '-' for stdin. Omit to read piped stdin, or to start a REPL when stdin is a terminal." optional:"" type:"path"`
}

// Run parses args and executes the jack CLI with the given context.
// The exit function is called with the appropriate exit code upon completion.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	vars := kong.Vars{}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		vars,
	)
	if err != nil {
		return err
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// stop is a no-op unless built with tag pprof and enabled.
	stop := cli.Pprof.start(ctx)
	defer stop()

	// Without a source argument, a stdin that is not a terminal (a pipe or a
	// redirected file) is evaluated once instead of starting a REPL.
	if cli.Source == "" {
		if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
			cli.Source = "-"
		}
	}

	if cli.Source != "" {
		return runSource(ctx, cli.Source, cli.Format)
	}

	return runREPL(ctx, cli.Format)
}
