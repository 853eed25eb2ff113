package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/gekko3d/painter"
	"github.com/gekko3d/painter/app"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	scenePath := flag.String("scene", "", "YAML scene file loaded after the demo scene")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *debug)
	if err != nil {
		log.Fatal(err)
	}
	logger := painter.NewDefaultLogger("painter", cfg.Debug)

	p, err := painter.New(cfg, painter.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	if err := buildDemo(p); err != nil {
		logger.Errorf("demo scene: %v", err)
	}
	if *scenePath != "" {
		if _, err := painter.LoadSceneFile(p, *scenePath); err != nil {
			logger.Errorf("scene %s: %v", *scenePath, err)
		}
	}

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()

	application := app.NewApp(window, p)
	if err := application.Init(); err != nil {
		log.Fatal(err)
	}
	defer application.Release()

	application.Run()
}

// loadConfig reads path, or starts from the defaults with the camera placed
// to overlook the demo scene and dolly steps sized to it.
func loadConfig(path string, debug bool) (painter.Config, error) {
	var cfg painter.Config
	if path != "" {
		var err error
		if cfg, err = painter.LoadConfig(path); err != nil {
			return cfg, err
		}
	} else {
		cfg = painter.DefaultConfig()
		cfg.Camera.Position = [3]float32{150, 150, 350}
		cfg.Camera.LookDistance = 350
		cfg.Navigation.DollyWheelSensitivity = 8
		cfg.Navigation.DollyDragSensitivity = 2
		cfg.Window.Title = "Painter Demo"
	}
	cfg.Debug = cfg.Debug || debug
	return cfg, nil
}
