// Command warpcam opens an interactive warp viewer on a still image or a
// generated test pattern.
package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/phanxgames/warpcam"
)

func main() {
	app := kingpin.New("warpcam", "Interactive CPU/GPU image warp viewer")
	app.HelpFlag.Short('h')

	var (
		configPath = app.Flag("config", "TOML config file").Short('c').ExistingFile()
		logLevel   = app.Flag("log-level", "Log level (debug, info, warn, error)").String()
	)

	view := app.Command("view", "Open the viewer").Default()
	var (
		imagePath  = view.Flag("image", "Still image to warp (PNG, JPEG, BMP, WebP)").Short('i').ExistingFile()
		mode       = view.Flag("mode", "Initial render mode (cpu, gpu)").Short('m').String()
		filter     = view.Flag("filter", "Initial filter (none, grayscale, pixelate, edge, stylize, median)").Short('f').String()
		resolution = view.Flag("resolution", "Resolution preset 1-4 (480, 720, 1080, 1600 px)").Short('r').Default("0").Int()
		workers    = view.Flag("workers", "CPU warp workers").Short('w').Default("0").Int()
		script     = view.Flag("script", "JSON input script to run, exits when done").ExistingFile()
		showFPS    = view.Flag("show-fps", "Keep the status overlay with FPS on screen").Bool()
	)

	show := app.Command("config", "Print the effective configuration")

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := loadConfig(*configPath)
	if err == nil {
		err = overrideConfig(&cfg, *logLevel, *mode, *filter, *resolution, *workers)
	}
	if *showFPS {
		cfg.ShowFPS = true
	}
	if err == nil {
		err = setupLogging(cfg.LogLevel)
	}
	if err == nil {
		switch command {
		case view.FullCommand():
			err = doView(cfg, *imagePath, *script)
		case show.FullCommand():
			err = doShowConfig(cfg)
		default:
			err = fmt.Errorf("unknown command: %q", command)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (warpcam.Config, error) {
	if path == "" {
		return warpcam.DefaultConfig(), nil
	}
	return warpcam.LoadConfig(path)
}

// overrideConfig applies command line flags that were given over cfg.
func overrideConfig(cfg *warpcam.Config, logLevel, mode, filter string, resolution, workers int) error {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if filter != "" {
		cfg.Filter = filter
	}
	if resolution > 0 {
		cfg.Resolution = resolution - 1
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg.Validate()
}

func setupLogging(level string) error {
	lvl, err := warpcam.ParseLogLevel(level)
	if err != nil {
		return err
	}
	warpcam.SetLogger(warpcam.NewLogger(os.Stderr, lvl))
	return nil
}

func doView(cfg warpcam.Config, imagePath, scriptPath string) error {
	var src warpcam.Source
	if imagePath != "" {
		still, err := warpcam.LoadStillSource(imagePath)
		if err != nil {
			return err
		}
		src = still
	} else {
		src = warpcam.NewStillSource(warpcam.TestPattern(640, 480))
	}

	viewer, err := warpcam.NewApp(cfg, src)
	if err != nil {
		return err
	}
	if scriptPath != "" {
		runner, err := warpcam.LoadTestScriptFile(scriptPath)
		if err != nil {
			return err
		}
		runner.ExitWhenDone = true
		viewer.SetTestRunner(runner)
	}
	return warpcam.Run(viewer, viewer.RunConfig())
}

func doShowConfig(cfg warpcam.Config) error {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
