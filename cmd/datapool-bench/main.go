package main

import (
	"context"

	"github.com/alecthomas/kong"
	mangokong "github.com/alecthomas/mango-kong"
)

var CLI struct {
	Bench BenchCommand      `cmd:"" help:"Run a borrow/return load against an in-memory pool."`
	Man   mangokong.ManFlag `help:"Write man page." hidden:""`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kongCtx := kong.Parse(
		&CLI,
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.ConfigureHelp(kong.HelpOptions{
			Tree:    true,
			Compact: true,
		}),
		kong.Description(`benchmarking tool for the datapool session-data pool

Spawns workers which borrow and return handles as fast as they can and reports reuse rates once per second.
		`),
	)
	err := kongCtx.Run()
	kongCtx.FatalIfErrorf(err)
}
