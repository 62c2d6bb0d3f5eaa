package cmd

import (
	"github.com/urfave/cli"

	"github.com/reverb3d/reverb/log"
)

var logger = log.New("reverb")

// Apply the global verbosity flags. Wired as the app's Before hook.
func SetupLogging(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
