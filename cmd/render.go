package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Dark565/octaray/renderer"
	"github.com/Dark565/octaray/scene/reader"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func rendererOptions(ctx *cli.Context) renderer.Options {
	return renderer.Options{
		FrameW:      ctx.Int("width"),
		FrameH:      ctx.Int("height"),
		NumBounces:  ctx.Int("num-bounces"),
		Frames:      ctx.Int("frames"),
		Exposure:    ctx.Float64("exposure"),
		Gamma:       ctx.Float64("gamma"),
		Attenuation: ctx.Float64("attenuation"),
		OutFile:     ctx.String("out"),
	}
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	r, err := renderer.NewStill(sc, rendererOptions(ctx))
	if err != nil {
		return err
	}
	defer r.Close()

	if err = r.Render(); err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	return nil
}

// Render an interactive view of the scene.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	r, err := renderer.NewInteractive(sc, rendererOptions(ctx))
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Render()
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Rays", "Avg bounces", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Frames),
		fmt.Sprintf("%d", stats.Rays),
		fmt.Sprintf("%.2f", stats.AvgBounces),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
