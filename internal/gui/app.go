package gui

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"go-cmdgui/internal/core/config"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
)

type App struct {
	ctx     context.Context
	ui      config.UIConfig
	logger  *utils.Logger
	service *Service
}

func NewApp(sess *session.Session, ui config.UIConfig, logger *utils.Logger) *App {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &App{
		ui:      ui,
		logger:  logger,
		service: NewService(sess, logger),
	}
}

func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx
	a.service.SetEmitter(func(event string, data ...interface{}) {
		runtime.EventsEmit(ctx, event, data...)
	})
	a.logger.Info("Web GUI started")
}

func (a *App) OnDomReady(ctx context.Context) {
	a.logger.Debug("DOM ready")
}

func (a *App) OnShutdown(ctx context.Context) {
	a.service.Stop()
	a.logger.Info("Web GUI shutting down")
}

// RunWithAssets serves the frontend from assets and blocks until the window closes.
func (a *App) RunWithAssets(assets fs.FS) error {
	a.logger.Info("Starting Wails GUI application")

	width, height := a.ui.Width, a.ui.Height
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 700
	}

	background := &options.RGBA{R: 250, G: 250, B: 250, A: 1}
	if a.ui.Dark {
		background = &options.RGBA{R: 27, G: 38, B: 54, A: 1}
	}

	err := wails.Run(&options.App{
		Title:            a.service.GetSchema().Name,
		Width:            width,
		Height:           height,
		BackgroundColour: background,
		AssetServer:      &assetserver.Options{Assets: assets},
		OnStartup:        a.OnStartup,
		OnDomReady:       a.OnDomReady,
		OnShutdown:       a.OnShutdown,
		Bind: []interface{}{
			a,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to run Wails application: %w", err)
	}
	return nil
}

// Methods below are bound to the frontend.

func (a *App) GetSchema() SchemaData {
	return a.service.GetSchema()
}

func (a *App) Preview(form FormData) (string, error) {
	return a.service.Preview(form)
}

func (a *App) Run(form FormData) error {
	err := a.service.Run(form)
	if err != nil {
		a.logger.WithError(err).Warn("Run rejected")
	}
	return err
}

func (a *App) Stop() bool {
	return a.service.Stop()
}

func (a *App) IsDark() bool {
	return a.ui.Dark
}
