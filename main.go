package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"spritegen/classify"
	"spritegen/convert"
	"spritegen/parallel"
	"spritegen/preview"

	"github.com/alecthomas/kong"
)

// Configuration files read in order, later files win. Flags win over both.
var configPaths = []string{"~/.config/spritegen.json", "spritegen.json"}

type CLI struct {
	LogLevel  slog.Level `help:"Minimum log level (debug, info, warn, error)" default:"info"`
	LogFormat string     `help:"Log output format" enum:"text,json" default:"text"`
	Workers   int        `help:"Number of parallel workers, 0 uses every CPU" default:"0"`

	Convert  convert.CLICmd  `cmd:"" help:"Convert images into four direction sprites"`
	Classify classify.CLICmd `cmd:"" help:"Sort images by the sprite archetype they get"`
	Preview  preview.CLICmd  `cmd:"" help:"Show a sprite in the terminal"`
	Version  VersionCmd      `cmd:"" help:"Print version information"`
}

type VersionCmd struct{}

func (VersionCmd) Run(kctx *kong.Context) error {
	_, err := fmt.Fprintln(kctx.Stdout, Version())
	return err
}

func newParser(cli *CLI, configs []string, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name(AppName),
		kong.Description("Turns images into small four direction pixel art sprites."),
		kong.UsageOnError(),
		kong.DefaultEnvars("SPRITEGEN"),
		kong.Configuration(kong.JSON, configs...),
	}, options...)...)
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	var cli CLI
	parser, err := newParser(&cli, configPaths)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	slog.SetDefault(newLogger(os.Stderr, cli.LogFormat, cli.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := parallel.Start(ctx, cli.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers)

	kctx.BindTo(ctx, (*context.Context)(nil))
	err = kctx.Run(pool.Do, pool.Wait)
	stop()
	kctx.FatalIfErrorf(err)
}
