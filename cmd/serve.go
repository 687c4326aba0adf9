package cmd

import (
	"github.com/df07/go-bvh-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve renders over HTTP until the listener fails.
func Serve(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	port := cfg.Port
	if ctx.IsSet("port") {
		port = ctx.Int("port")
	}

	return server.NewServer(port, *cfg).Start()
}
