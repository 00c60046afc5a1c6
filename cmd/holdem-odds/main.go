package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Classify a 5-7 card hand"`
	Odds    OddsCmd          `cmd:"" help:"Compute the hand category distribution and EV for a partial board"`
	Serve   ServeCmd         `cmd:"" help:"Run the WebSocket odds service"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-odds"),
		kong.Description("Hold'em hand category odds and expected value calculator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
