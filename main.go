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
	"github.com/animatux/animatux/internal/workshop"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "io.github.animatux"
	AppName = "AnimaTux"

	WindowWidth  = 400
	WindowHeight = 520
)

func main() {
	logger := logging.New(platform.LogPath(), log.InfoLevel)
	logger.Info("AnimaTux starting", "version", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewOverlayTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize stores and services
	settingsStore := config.NewStore(platform.SettingsPath(), logger)
	convertSvc := convert.NewService(logger)

	lib := library.NewStore(platform.LibraryPath(), convertSvc, logger)
	lib.Load()

	contentDir := platform.WorkshopContentDir(workshop.ContentAppID())
	workshopSvc := workshop.NewService(contentDir, convertSvc, logger)

	host := ui.NewFyneHost(myApp)
	manager := overlay.NewManager(host, lib, logger)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, settingsStore, lib, workshopSvc, manager, logger)

	// Show and run
	myWindow.ShowAndRun()
}
