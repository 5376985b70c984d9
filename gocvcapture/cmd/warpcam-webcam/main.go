// Command warpcam-webcam runs the warp viewer on a live camera feed.
package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/phanxgames/warpcam"
	"github.com/phanxgames/warpcam/gocvcapture"
)

func main() {
	app := kingpin.New("warpcam-webcam", "Interactive CPU/GPU warp viewer on a live camera")
	app.HelpFlag.Short('h')

	var (
		configPath = app.Flag("config", "TOML config file").Short('c').ExistingFile()
		device     = app.Flag("device", "Camera index").Short('d').Default("0").Int()
		width      = app.Flag("width", "Requested capture width").Default("640").Int()
		height     = app.Flag("height", "Requested capture height").Default("480").Int()
	)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(*configPath, *device, *width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, device, width, height int) error {
	cfg := warpcam.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = warpcam.LoadConfig(configPath); err != nil {
			return err
		}
	}
	lvl, err := warpcam.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	warpcam.SetLogger(warpcam.NewLogger(os.Stderr, lvl))

	cam, err := gocvcapture.Open(device, width, height)
	if err != nil {
		return err
	}
	defer cam.Close()

	viewer, err := warpcam.NewApp(cfg, cam)
	if err != nil {
		return err
	}
	return warpcam.Run(viewer, viewer.RunConfig())
}
