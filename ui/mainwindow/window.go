// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"strings"

	"retouch/internal/editor"
	"retouch/internal/imageio"
	"retouch/internal/version"
	"retouch/ui/canvas"
	"retouch/ui/dialogs"
	"retouch/ui/panels"
	"retouch/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastOpenDir = "lastOpenDirectory"
	prefKeyLastSaveDir = "lastSaveDirectory"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	ctx       *editor.Context
	settings  *prefs.Prefs
	canvas    *canvas.EditorCanvas
	sidePanel *panels.SidePanel

	statusBar  *widget.Label
	fileLabel  *widget.Label
	sizeLabel  *widget.Label
	statsLabel *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, ctx *editor.Context, settings *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Retouch")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		ctx:      ctx,
		settings: settings,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(1400, 1000))

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.ctx)

	mw.sidePanel = panels.NewSidePanel(mw.ctx, mw.settings)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")
	mw.fileLabel = widget.NewLabel("No image")
	mw.sizeLabel = widget.NewLabel("")
	mw.statsLabel = widget.NewLabel("")

	// Transient messages on the left, file facts on the right.
	statusRow := container.NewBorder(
		nil,
		nil,
		nil,
		container.NewHBox(mw.fileLabel, mw.sizeLabel, mw.statsLabel),
		mw.statusBar,
	)

	// Create main layout: side panel | canvas
	split := container.NewHSplit(
		mw.sidePanel.Container(),
		mw.canvas,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	// Main container with status bar at bottom
	content := container.NewBorder(
		nil,                          // top
		container.NewPadded(statusRow), // bottom
		nil,                          // left
		nil,                          // right
		split,                        // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", func() {
			mw.onOpenImage()
		}),
		fyne.NewMenuItem("Save As...", func() {
			mw.onSaveImageAs()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.app.Quit()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			mw.ctx.Undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			mw.ctx.Redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Apply Changes", func() {
			mw.ctx.ApplyAction()
		}),
		fyne.NewMenuItem("Cancel Changes", func() {
			mw.ctx.Cancel()
		}),
		fyne.NewMenuItem("Revert to Original", func() {
			mw.ctx.RevertAction()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			dialogs.NewSettingsDialog(mw.settings, mw.Window, func() {
				mw.updateStatus("Settings saved")
			}).Show()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			mw.onAbout()
		}),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupShortcuts wires keyboard handling that is not covered by menus.
func (mw *MainWindow) setupShortcuts() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.ctx.Cancel()
		}
	})
}

// setupEventHandlers connects editor events to UI updates.
func (mw *MainWindow) setupEventHandlers() {
	mw.ctx.On(editor.EventImageLoaded, func(data interface{}) {
		if path, ok := data.(string); ok && path != "" {
			base := filepath.Base(path)
			mw.SetTitle("Retouch - " + base)
			mw.fileLabel.SetText(base)
			mw.updateStatus("Loaded " + base)
		} else {
			mw.SetTitle("Retouch")
			mw.fileLabel.SetText("No image")
		}
		mw.refreshImageInfo()
	})

	mw.ctx.On(editor.EventCommitted, func(data interface{}) {
		mw.refreshImageInfo()
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(message string) {
	mw.statusBar.SetText(message)
}

// refreshImageInfo recomputes the dimension and luminance readouts from the
// committed image.
func (mw *MainWindow) refreshImageInfo() {
	committed := mw.ctx.CommittedImage()
	if committed == nil {
		mw.sizeLabel.SetText("")
		mw.statsLabel.SetText("")
		return
	}

	bounds := committed.Bounds()
	mw.sizeLabel.SetText(fmt.Sprintf("%d x %d", bounds.Dx(), bounds.Dy()))

	if stats, ok := mw.ctx.CommittedStats(); ok {
		mw.statsLabel.SetText(fmt.Sprintf("L %.1f ± %.1f", stats.Mean, stats.StdDev))
	} else {
		mw.statsLabel.SetText("")
	}
}

// ReportError surfaces an editor error in a dialog and on the status bar.
func (mw *MainWindow) ReportError(err error) {
	if err == nil {
		return
	}
	mw.updateStatus("Error: " + err.Error())
	dialog.ShowError(err, mw.Window)
}

// getLastDir returns the last used directory for the given preference key.
func (mw *MainWindow) getLastDir(key string) fyne.ListableURI {
	lastDir := mw.app.Preferences().String(key)
	if lastDir == "" {
		return nil
	}
	uri := storage.NewFileURI(lastDir)
	lister, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return lister
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(key, path string) {
	mw.app.Preferences().SetString(key, filepath.Dir(path))
}

// onOpenImage shows the open dialog and loads the chosen image file.
func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mw.saveLastDir(prefKeyLastOpenDir, path)
		mw.openImage(path)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(imageio.LoadFormats()))
	if loc := mw.getLastDir(prefKeyLastOpenDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// openImage decodes a file from disk and installs it in the editor.
func (mw *MainWindow) openImage(path string) {
	img, err := imageio.Load(path)
	if err != nil {
		mw.ReportError(err)
		return
	}
	if err := mw.ctx.LoadImage(img, path); err != nil {
		mw.ReportError(err)
	}
}

// onSaveImageAs shows the save dialog and writes the committed image.
func (mw *MainWindow) onSaveImageAs() {
	if !mw.ctx.HasImage() {
		mw.updateStatus("No image to save")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		path = imageio.EnsureSaveExtension(path)
		mw.saveLastDir(prefKeyLastSaveDir, path)

		if err := imageio.Save(path, mw.ctx.CommittedImage(), mw.settings.JPEGQuality()); err != nil {
			mw.ReportError(err)
			return
		}
		mw.updateStatus("Saved " + filepath.Base(path))
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(imageio.SaveFormats()))
	fd.SetFileName(mw.defaultSaveName())
	if loc := mw.getLastDir(prefKeyLastSaveDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// defaultSaveName derives a suggested file name from the loaded image.
func (mw *MainWindow) defaultSaveName() string {
	path := mw.ctx.FilePath()
	if path == "" {
		return "untitled.png"
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_edited.png"
}

// onAbout shows the about dialog.
func (mw *MainWindow) onAbout() {
	aboutText := fmt.Sprintf(
		"Retouch %s\n\n"+
			"An interactive image editor.\n\n"+
			"Crop, draw and stamp text with a live preview,\n"+
			"stack filters and adjustments, and step back\n"+
			"through the edit history at any time.",
		version.String(),
	)
	dialog.ShowInformation("About Retouch", aboutText, mw.Window)
}
