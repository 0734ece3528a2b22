package main

import (
	"os"

	"github.com/Dark565/octaray/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "octaray"
	app.Usage = "render scenes using an octree-accelerated cpu path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	frameFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "num-bounces",
			Value: 6,
			Usage: "max ray bounces",
		},
		cli.Float64Flag{
			Name:  "exposure",
			Value: 1.0,
			Usage: "camera exposure for tone-mapping",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Value: 2.2,
			Usage: "gamma for tone-mapping",
		},
		cli.Float64Flag{
			Name:  "attenuation",
			Value: 0.1,
			Usage: "light falloff coefficient",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render single frame",
					Description: `Accumulate a number of traced frames and write the tone-mapped result to a png file.`,
					ArgsUsage:   "scene.json",
					Flags: append(frameFlags,
						cli.IntFlag{
							Name:  "frames",
							Value: 16,
							Usage: "number of accumulated frames",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					),
					Action: cmd.RenderFrame,
				},
				{
					Name:        "interactive",
					Usage:       "render interactive view of the scene",
					Description: `Open a window and keep integrating frames; wasd moves the camera, dragging the mouse looks around.`,
					ArgsUsage:   "scene.json",
					Flags:       frameFlags,
					Action:      cmd.RenderInteractive,
				},
			},
		},
		{
			Name:      "info",
			Usage:     "display scene information",
			ArgsUsage: "scene.json",
			Action:    cmd.ShowSceneInfo,
		},
	}

	app.Run(os.Args)
}
