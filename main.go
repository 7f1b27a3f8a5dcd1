// Package main provides the entry point for the Retouch application.
package main

import (
	"log"
	"os"
	"time"

	"retouch/internal/app"
	"retouch/internal/editor"
	"retouch/internal/imageio"
	"retouch/internal/version"
	"retouch/ui/mainwindow"
	"retouch/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Retouch %s", version.String())

	fyneApp := fyneapp.NewWithID("io.retouch.editor")
	fyneApp.Settings().SetTheme(&app.EditorTheme{})

	settings := prefs.Load()

	// The window does not exist yet when the context is created, so the
	// error sink resolves it late.
	var win *mainwindow.MainWindow
	ctx := editor.NewContext(settings.HistoryCapacity(), func(err error) {
		log.Printf("editor: %v", err)
		if win != nil {
			win.ReportError(err)
		}
	})

	win = mainwindow.New(fyneApp, ctx, settings)
	win.SetCloseIntercept(func() {
		if err := settings.Save(); err != nil {
			log.Printf("Saving settings failed: %v", err)
		}
		win.Close()
	})

	// Handle command line arguments
	if len(os.Args) > 1 {
		path := os.Args[1]
		if err := openInitialImage(ctx, path); err != nil {
			log.Printf("Failed to load image %s: %v", path, err)
		}
	}

	if os.Getenv("RETOUCH_DEV") == "1" {
		setupHotReload(win, settings)
	}

	win.ShowAndRun()
}

// openInitialImage loads an image passed on the command line.
func openInitialImage(ctx *editor.Context, path string) error {
	img, err := imageio.Load(path)
	if err != nil {
		return err
	}
	return ctx.LoadImage(img, path)
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow, settings *prefs.Prefs) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.BaselineTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		confirm := dialog.NewConfirm(
			"New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: saving settings before restart...")
				if err := settings.Save(); err != nil {
					log.Printf("Hot reload: saving settings failed: %v", err)
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win)
		confirm.Show()
	})

	reloader.Start()
}
