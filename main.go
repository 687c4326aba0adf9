package main

import (
	"os"

	"github.com/df07/go-bvh-pathtracer/cmd"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-bvh-pathtracer"
	app.Usage = "render sphere scenes with a BVH-accelerated path tracer"
	app.Version = "0.1.0"
	app.Flags = cmd.GlobalFlags
	app.Commands = cmd.Commands()

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
