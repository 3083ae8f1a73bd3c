/*
Renders the still-life scene: a textured table with fruit, flowers, a vase,
a candle and a teapot lit by a single Phong light.
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/stilllife/engine"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/platform"
	"github.com/spaghettifunk/stilllife/engine/renderer/opengl"
	"github.com/spaghettifunk/stilllife/stilllife"
)

func main() {
	os.Exit(run())
}

func run() int {
	game := stilllife.NewStillLife("assets", core.InfoLevel, true)

	p := platform.New()
	e, err := engine.New(game.Game, p, opengl.New(p))
	if err != nil {
		return core.ExitCode(err)
	}
	defer e.Shutdown()

	if err := e.Initialize(); err != nil {
		core.LogError("failed to initialize: %s", err)
		return core.ExitCode(err)
	}

	// capture sigterm and sigint as a quit request
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := e.Run(ctx); err != nil {
		return core.ExitCode(err)
	}
	return core.ExitOK
}
