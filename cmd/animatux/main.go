// Lite build of AnimaTux: the character library and overlay windows without
// Steam Workshop integration, for installs that never ship steamcmd.
package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/animatux/animatux/internal/config"
	"github.com/animatux/animatux/internal/convert"
	"github.com/animatux/animatux/internal/library"
	"github.com/animatux/animatux/internal/logging"
	"github.com/animatux/animatux/internal/overlay"
	"github.com/animatux/animatux/internal/platform"
	"github.com/animatux/animatux/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "io.github.animatux.lite"
	AppName = "AnimaTux Lite"

	WindowWidth  = 400
	WindowHeight = 520
)

func main() {
	logger := logging.New(platform.LogPath(), log.InfoLevel)
	logger.Info("AnimaTux Lite starting", "version", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewOverlayTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settingsStore := config.NewStore(platform.SettingsPath(), logger)
	convertSvc := convert.NewService(logger)

	lib := library.NewStore(platform.LibraryPath(), convertSvc, logger)
	lib.Load()

	host := ui.NewFyneHost(myApp)
	manager := overlay.NewManager(host, lib, logger)

	// A nil workshop service hides the download affordances.
	ui.NewRootUI(myWindow, myApp, settingsStore, lib, nil, manager, logger)

	myWindow.ShowAndRun()
}
