package cmd

import (
	"github.com/Dark565/octaray/log"
	"github.com/urfave/cli"
)

var logger = log.New("octaray")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
