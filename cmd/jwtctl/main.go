package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/boddle/jwtplay/cmd/jwtctl/cli"
)

type app struct {
	cli.Cli

	Encode     cli.EncodeCmd     `cmd:"" help:"sign a header and payload"`
	Decode     cli.DecodeCmd     `cmd:"" help:"print a token without checking its signature"`
	Verify     cli.VerifyCmd     `cmd:"" help:"check a token signature"`
	Algorithms cli.AlgorithmsCmd `cmd:"" help:"list supported algorithms"`
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("jwtctl"),
		kong.Description("HS256/HS384/HS512 JWT tools"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}))
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	parser.FatalIfErrorf(err)

	if ctx != nil {
		err = ctx.Run(&cl.Cli)
		ctx.FatalIfErrorf(err)
	}
}
