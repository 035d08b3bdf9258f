package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/broady/openenum/cmd/openenum/internal/check"
	"github.com/broady/openenum/cmd/openenum/internal/gen"
	"github.com/broady/openenum/cmd/openenum/internal/logging"
	"github.com/broady/openenum/openenumgen/definition"
)

type CLI struct {
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info" env:"OPENENUM_LOG_LEVEL"`
	LogFormat string `help:"Log format." enum:"auto,text,json" default:"auto" env:"OPENENUM_LOG_FORMAT"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate open enum types."`
	Check   check.Cmd  `cmd:"" help:"Validate definitions without generating files."`
	Schema  SchemaCmd  `cmd:"" help:"Print the JSON Schema for definition files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type SchemaCmd struct{}

func (c *SchemaCmd) Run() error {
	data, err := json.MarshalIndent(definition.JSONSchema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Printf("%s\n", data)
	return err
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("openenum"),
		kong.Description("Generate open enumerations: Go types with named values that accept any value."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger := logging.New(os.Stderr, logging.Format(cli.LogFormat), logging.ParseLevel(cli.LogLevel))
	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(logger)
	stop()
	kctx.FatalIfErrorf(err)
}
