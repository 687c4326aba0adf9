package cmd

import "github.com/urfave/cli"

// GlobalFlags are accepted before any command
var GlobalFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "v",
		Usage: "enable verbose logging",
	},
	cli.BoolFlag{
		Name:  "vv",
		Usage: "enable even more verbose logging",
	},
}

// Commands returns the CLI commands. Flags left unset fall back to the
// RAYTRACER_* environment and then to the scene's own settings.
func Commands() []cli.Command {
	return []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Build the named scene, trace it with one goroutine per block of image rows and
write the frame as PNG or PPM depending on the output file extension.

A per-worker statistics table is logged when the frame is done.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "name of a built-in scene (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width; the height follows the scene aspect ratio",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounce depth",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render goroutines; 0 uses one per CPU",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed; equal seeds give identical frames",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename (.png or .ppm); defaults to <output dir>/<scene>/render_<timestamp>.png",
				},
				cli.BoolTFlag{
					Name:  "bvh",
					Usage: "trace against the BVH; --bvh=false uses the flat shape list",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Usage: "port to listen on",
				},
			},
			Action: Serve,
		},
	}
}
