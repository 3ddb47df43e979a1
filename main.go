package main

import (
	"embed"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/Mkellyeng/floorspace/pkg/config"
)

//go:embed all:frontend/dist
var assets embed.FS

// configPath is looked up relative to the working directory.
const configPath = "floorspace.yml"

func main() {
	log := logrus.New()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Warn("bad config, using defaults")
	}

	app := NewApp(cfg, log)

	err = wails.Run(&options.App{
		Title:  "Floorspace",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.WithError(err).Fatal("wails run failed")
	}
}
