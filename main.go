package main

import (
	"embed"

	"haunt/internal/config"
	"haunt/internal/logger"
	"haunt/internal/valapi"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	settings, err := config.Load()
	if err != nil {
		println("Error:", err.Error())
		return
	}

	log := logger.Init(settings.LogLevel)

	cache, err := valapi.OpenCatalogCache(settings.CatalogDBPath)
	if err != nil {
		// the app still works without the offline catalog cache
		log.Warn("catalog cache unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	app := NewApp(settings, log, cache)

	err = wails.Run(&options.App{
		Title:  "Haunt",
		Width:  900,
		Height: 620,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 20, G: 20, B: 20, A: 255},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		Windows: &windows.Options{
			DisableWindowIcon: true,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
