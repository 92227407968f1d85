/*
Light sculpture simulator: renders the rods of the sculpture and recolours
them live from the TCP update stream.

	lumina [-settings lumina.toml] [emitters.json]
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/lumina/engine"
	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/platform"
	"github.com/spaghettifunk/lumina/engine/renderer/opengl"
)

func main() {
	settings := flag.String("settings", engine.DEFAULT_SETTINGS_FILE, "application settings (TOML), optional")
	flag.Parse()

	_, explicit := lookupFlag("settings")
	config, err := engine.LoadApplicationConfig(*settings, !explicit)
	if err != nil {
		core.LogError("settings: %s", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		config.Emitters = flag.Arg(0)
	}

	e, err := engine.New(config, platform.New(), opengl.New())
	if err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}

	if err := e.Initialize(); err != nil {
		core.LogError("startup failed: %s", err)
		_ = e.Shutdown()
		os.Exit(1)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		e.Stop()
	}()

	// run engine
	if err := e.Run(); err != nil {
		core.LogError("%s", err)
	}
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
		os.Exit(1)
	}
}

func lookupFlag(name string) (*flag.Flag, bool) {
	var found *flag.Flag
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = f
		}
	})
	return found, found != nil
}
