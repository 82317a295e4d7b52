package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/latheworks/lathe/pkg/scene"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	app := NewApp()
	viewer := scene.DefaultOptions()

	err := wails.Run(&options.App{
		Title:  "Lathe",
		Width:  viewer.Width,
		Height: viewer.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
