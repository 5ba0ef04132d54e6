package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/xpgp/cmd/pgp-tool/cli"
	"github.com/effective-security/xpgp/internal/version"
	"github.com/effective-security/xpgp/x/ctl"
)

type app struct {
	cli.Cli

	Packets cli.PacketsCmd `cmd:"" help:"print packets of a message or key ring"`
	Keys    cli.KeysCmd    `cmd:"" help:"print keys with fingerprints"`
	Literal cli.LiteralCmd `cmd:"" help:"create Literal Data message"`
	UserID  cli.UserIDCmd  `cmd:"" name:"userid" help:"create User ID packet"`
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
		kong.Name("pgp-tool"),
		kong.Description("OpenPGP packet tools"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.Current().String(),
		})
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
