package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/animatux/animatux/internal/config"
	"github.com/animatux/animatux/internal/library"
	"github.com/animatux/animatux/internal/model"
	"github.com/animatux/animatux/internal/overlay"
	"github.com/animatux/animatux/internal/workshop"
)

// TickInterval is the cadence of the orchestrator reconciliation pass.
const TickInterval = 500 * time.Millisecond

// RootUI is the main control window: library management, workshop
// downloads, global playback settings.
type RootUI struct {
	window fyne.Window
	app    fyne.App
	logger *log.Logger

	settingsStore *config.Store
	settings      config.Settings
	lib           *library.Store
	workshopSvc   *workshop.Service
	manager       *overlay.Manager

	idEntry       *widget.Entry
	statusLabel   *widget.Label
	characterList *fyne.Container

	quitting    bool
	mainVisible bool
	listState   string // fingerprint of the last rendered character list
	stopTick    chan struct{}
}

// NewRootUI creates and wires the main UI.
func NewRootUI(
	window fyne.Window,
	app fyne.App,
	settingsStore *config.Store,
	lib *library.Store,
	workshopSvc *workshop.Service,
	manager *overlay.Manager,
	logger *log.Logger,
) *RootUI {
	if logger == nil {
		logger = log.Default()
	}

	ui := &RootUI{
		window:        window,
		app:           app,
		logger:        logger,
		settingsStore: settingsStore,
		settings:      settingsStore.Load(),
		lib:           lib,
		workshopSvc:   workshopSvc,
		manager:       manager,
		mainVisible:   true,
		stopTick:      make(chan struct{}),
	}

	window.Resize(fyne.NewSize(ui.settings.WindowWidth, ui.settings.WindowHeight))

	// Global sliders seed newly added characters.
	lib.SetDefaults(ui.settings.Speed, ui.settings.Scale)

	// Bring back the character in use when the app last exited.
	if path := ui.settings.CurrentImagePath; path != "" {
		if index, ok := lib.IndexByPath(path); ok {
			if err := lib.SetEnabled(index, true); err != nil {
				logger.Warn("failed to restore last used character", "path", path, "err", err)
			}
		}
	}

	// Closing the control window hides it; character overlays keep
	// running headless until an explicit Exit.
	window.SetCloseIntercept(func() {
		if ui.quitting {
			window.Close()
			return
		}
		ui.mainVisible = false
		window.Hide()
	})

	manager.SetToggleMainHandler(ui.toggleMainWindow)

	// The lite build ships without workshop support.
	if ui.workshopSvc != nil {
		ui.workshopSvc.SetUpdateCallback(ui.onWorkshopUpdate)
	}

	ui.setupUI()
	ui.startTicker()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	heading := widget.NewLabelWithStyle("AnimaTux", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	addBtn := widget.NewButton("Add from File", ui.onAddFromFile)

	ui.characterList = container.NewVBox()
	ui.refreshCharacterList()

	ui.statusLabel = widget.NewLabel("")

	speedLabel := widget.NewLabel(fmt.Sprintf("Framerate: %d (0 for default)", ui.settings.Speed))
	speedSlider := widget.NewSlider(0, SpeedSliderMax)
	speedSlider.Step = 1
	speedSlider.Value = float64(ui.settings.Speed)
	speedSlider.OnChanged = func(v float64) {
		ui.settings.Speed = int(v)
		speedLabel.SetText(fmt.Sprintf("Framerate: %d (0 for default)", ui.settings.Speed))
		ui.lib.SetDefaults(ui.settings.Speed, ui.settings.Scale)
		ui.settingsStore.Save(ui.settings)
	}

	scaleLabel := widget.NewLabel(fmt.Sprintf("Scale: %.1f", ui.settings.Scale))
	scaleSlider := widget.NewSlider(ScaleSliderMin, ScaleSliderMax)
	scaleSlider.Step = ScaleSliderStep
	scaleSlider.Value = float64(ui.settings.Scale)
	scaleSlider.OnChanged = func(v float64) {
		ui.settings.Scale = float32(v)
		scaleLabel.SetText(fmt.Sprintf("Scale: %.1f", ui.settings.Scale))
		ui.lib.SetDefaults(ui.settings.Speed, ui.settings.Scale)
		ui.settingsStore.Save(ui.settings)
	}

	exitBtn := widget.NewButton("Exit", ui.onExit)

	content := container.NewVBox(
		heading,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("My Characters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		addBtn,
		ui.characterList,
	)

	if ui.workshopSvc != nil {
		ui.idEntry = widget.NewEntry()
		ui.idEntry.SetPlaceHolder("Workshop ID or URL")
		downloadBtn := widget.NewButton("Download", ui.onDownload)
		browseBtn := widget.NewButton("Downloaded Items", ui.onBrowseDownloaded)
		workshopRow := container.NewBorder(nil, nil, nil, downloadBtn, ui.idEntry)

		content.Add(widget.NewSeparator())
		content.Add(widget.NewLabelWithStyle("Download from Workshop", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		content.Add(workshopRow)
		content.Add(browseBtn)
	}

	content.Add(ui.statusLabel)
	content.Add(widget.NewSeparator())
	content.Add(speedLabel)
	content.Add(speedSlider)
	content.Add(scaleLabel)
	content.Add(scaleSlider)
	content.Add(widget.NewSeparator())
	content.Add(exitBtn)

	ui.window.SetContent(content)
}

// refreshCharacterList rebuilds the character rows from the library. The
// rebuild is skipped when nothing visible changed, so the orchestrator tick
// does not churn widgets every interval.
func (ui *RootUI) refreshCharacterList() {
	characters := ui.lib.Characters()

	state := ""
	for _, c := range characters {
		state += fmt.Sprintf("%s|%s|%v;", c.Name, c.Path, c.Enabled)
	}
	if state == ui.listState {
		return
	}
	ui.listState = state

	ui.characterList.RemoveAll()
	if len(characters) == 0 {
		ui.characterList.Add(widget.NewLabel("No characters yet. Add some!"))
		ui.characterList.Refresh()
		return
	}

	for i, c := range characters {
		index := i
		check := widget.NewCheck(c.Name, func(enabled bool) {
			if err := ui.lib.SetEnabled(index, enabled); err != nil {
				ui.logger.Warn("failed to toggle character", "index", index, "err", err)
			}
		})
		check.Checked = c.Enabled

		removeBtn := widget.NewButton("Remove", func() {
			if err := ui.lib.Remove(index); err != nil {
				ui.logger.Warn("failed to remove character", "index", index, "err", err)
				return
			}
			ui.refreshCharacterList()
		})

		ui.characterList.Add(container.NewBorder(nil, nil, nil, removeBtn, check))
	}
	ui.characterList.Refresh()
}

// onAddFromFile opens the native picker and registers the chosen media.
func (ui *RootUI) onAddFromFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		ui.setStatus("Adding " + path + "...")

		// Conversion may shell out to ffmpeg; keep the UI responsive.
		go func() {
			addErr := ui.lib.Add(path)
			fyne.Do(func() {
				if addErr != nil {
					ui.setStatus(fmt.Sprintf("Add failed: %v", addErr))
					return
				}
				ui.enableLatest()
				ui.refreshCharacterList()
				ui.setStatus("")
			})
		}()
	}, ui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(model.SupportedExtensions))
	fileDialog.Show()
}

// enableLatest auto-enables the most recently added character and records
// it as the current image, so the next launch restores it.
func (ui *RootUI) enableLatest() {
	n := ui.lib.Len()
	if n == 0 {
		return
	}
	if err := ui.lib.SetEnabled(n-1, true); err != nil {
		ui.logger.Warn("failed to auto-enable character", "err", err)
		return
	}
	if c, ok := ui.lib.Get(n - 1); ok {
		ui.settings.CurrentImagePath = c.Path
		ui.settingsStore.Save(ui.settings)
	}
}

// onDownload kicks off a background workshop download.
func (ui *RootUI) onDownload() {
	raw := ui.idEntry.Text
	if raw == "" {
		return
	}

	task, err := ui.workshopSvc.StartDownload(raw)
	if err != nil {
		ui.setStatus(fmt.Sprintf("Download not started: %v", err))
		return
	}
	ui.setStatus("Downloading workshop item " + task.ContentID + "...")
}

// onWorkshopUpdate reacts to download task transitions; called from the
// service goroutine.
func (ui *RootUI) onWorkshopUpdate(task *model.WorkshopTask) {
	fyne.Do(func() {
		switch {
		case task.Status == model.TaskStatusError:
			ui.setStatus("Download failed: " + task.LastError)
		case task.Status == model.TaskStatusStopped:
			ui.setStatus("Download stopped")
		case task.Status == model.TaskStatusCompleted && task.Result != nil:
			ui.setStatus("")
			ui.showDownloadResult(task.Result)
		}
	})
}

// showDownloadResult offers to register the downloaded files as a character.
func (ui *RootUI) showDownloadResult(result *model.DownloadResult) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Character name")

	items := container.NewVBox(widget.NewLabel("Downloaded to: " + result.Dir))
	for _, file := range result.Files {
		items.Add(widget.NewLabel("  - " + file))
	}
	items.Add(widget.NewLabel("Character name:"))
	items.Add(nameEntry)

	dialog.ShowCustomConfirm("Download Complete", "Add to Library & Use", "Cancel", items,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			path := result.FirstFile()
			if path == "" {
				return
			}
			name := nameEntry.Text
			if name == "" {
				name = model.DeriveName(path)
			}
			if err := ui.lib.AddNamed(path, name); err != nil {
				ui.setStatus(fmt.Sprintf("Add failed: %v", err))
				return
			}
			ui.enableLatest()
			ui.refreshCharacterList()
		}, ui.window)
}

// onBrowseDownloaded lists already-downloaded workshop content.
func (ui *RootUI) onBrowseDownloaded() {
	ids := ui.workshopSvc.List()
	if len(ids) == 0 {
		dialog.ShowInformation("Downloaded Items", "No downloaded workshop content found.", ui.window)
		return
	}

	list := widget.NewList(
		func() int { return len(ids) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(ids[i])
		},
	)

	var d dialog.Dialog
	list.OnSelected = func(i widget.ListItemID) {
		path := ui.workshopSvc.ContentPath(ids[i])
		if err := ui.lib.AddNamed(path, model.DeriveName(path)); err != nil {
			ui.setStatus(fmt.Sprintf("Add failed: %v", err))
		} else {
			ui.enableLatest()
			ui.refreshCharacterList()
		}
		d.Hide()
	}

	content := container.NewStack(list)
	content.Resize(fyne.NewSize(360, 300))
	d = dialog.NewCustom("Downloaded Items", "Close", content, ui.window)
	d.Resize(fyne.NewSize(380, 340))
	d.Show()
}

// toggleMainWindow hides or reveals the control surface, refocusing it
// when revealed. Fyne cannot query visibility, so it is tracked here.
func (ui *RootUI) toggleMainWindow() {
	fyne.Do(func() {
		if ui.mainVisible {
			ui.mainVisible = false
			ui.window.Hide()
			return
		}
		ui.mainVisible = true
		ui.window.Show()
		ui.window.RequestFocus()
	})
}

// onExit persists settings and terminates the application for real.
func (ui *RootUI) onExit() {
	ui.quitting = true
	close(ui.stopTick)

	size := ui.window.Canvas().Size()
	ui.settings.WindowWidth = size.Width
	ui.settings.WindowHeight = size.Height
	ui.settingsStore.Save(ui.settings)

	ui.manager.Close()
	ui.app.Quit()
}

// setStatus updates the status line.
func (ui *RootUI) setStatus(text string) {
	ui.statusLabel.SetText(text)
}

// startTicker drives the orchestrator at frame-equivalent cadence on the
// UI thread.
func (ui *RootUI) startTicker() {
	ticker := time.NewTicker(TickInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ui.stopTick:
				return
			case <-ticker.C:
				fyne.Do(func() {
					ui.manager.Tick()
					ui.refreshCharacterList()
				})
			}
		}
	}()
}
