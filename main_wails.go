//go:build wails

package main

import (
	"embed"
	"io/fs"

	"go-cmdgui/cmd/cli"
	"go-cmdgui/internal/core/config"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
	"go-cmdgui/internal/gui"
)

//go:embed all:frontend/dist
var assets embed.FS

func init() {
	cli.RegisterWebLauncher(func(sess *session.Session, ui config.UIConfig, logger *utils.Logger) error {
		dist, err := fs.Sub(assets, "frontend/dist")
		if err != nil {
			return err
		}
		return gui.NewApp(sess, ui, logger).RunWithAssets(dist)
	})
}
