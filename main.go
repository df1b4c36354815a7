package main

import (
	"log/slog"

	"SketchPad/internal/config"
	applog "SketchPad/internal/log"
	"SketchPad/internal/surface"
	"SketchPad/internal/ui"
)

func main() {
	cfg := config.Defaults()
	path, pathErr := config.DefaultPath()
	var loadErr error
	if pathErr == nil {
		cfg, loadErr = config.Load(path)
	}
	config.ApplyEnv(&cfg)

	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("main")
	switch {
	case pathErr != nil:
		l.Warn("no config directory, using defaults", slog.Any("err", pathErr))
	case loadErr != nil:
		l.Warn("config not loaded, using defaults", slog.Any("err", loadErr))
	}
	surface.UseLogger(applog.WithComponent("gg"))

	l.Info("starting", slog.String("title", cfg.Window.Title),
		slog.Float64("dpr", cfg.Display.DevicePixelRatio))
	ui.RunApp(cfg)
}
