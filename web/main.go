package main

import (
	"flag"
	"os"

	"github.com/df07/go-bvh-pathtracer/pkg/config"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/web/server"
)

var logger = log.New("web")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	port := flag.Int("port", cfg.Port, "Port to serve on")
	flag.Parse()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		logger.Warning(err)
	}

	webServer := server.NewServer(*port, *cfg)
	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		logger.Errorf("error starting server: %v", err)
		os.Exit(1)
	}
}
