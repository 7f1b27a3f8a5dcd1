// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"retouch/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SettingsDialog provides a property sheet for the persisted editor settings.
type SettingsDialog struct {
	settings *prefs.Prefs
	window   fyne.Window

	// Tool defaults
	defaultTextEntry *widget.Entry
	strokeEntry      *widget.Entry

	// File output
	qualityEntry *widget.Entry

	// History
	capacityEntry *widget.Entry

	// Callback
	onSave func()
}

// NewSettingsDialog creates a new settings dialog.
func NewSettingsDialog(settings *prefs.Prefs, window fyne.Window, onSave func()) *SettingsDialog {
	return &SettingsDialog{
		settings: settings,
		window:   window,
		onSave:   onSave,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		content,
		func(save bool) {
			if save {
				d.applyChanges()
				if d.onSave != nil {
					d.onSave()
				}
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(420, 380))
	dlg.Show()
}

func (d *SettingsDialog) createContent() fyne.CanvasObject {
	d.defaultTextEntry = widget.NewEntry()
	d.defaultTextEntry.SetText(d.settings.DefaultText())

	d.strokeEntry = widget.NewEntry()
	d.strokeEntry.SetText(fmt.Sprintf("%d", d.settings.StrokeWidth()))

	toolsForm := widget.NewForm(
		widget.NewFormItem("Default text", d.defaultTextEntry),
		widget.NewFormItem("Stroke width (px)", d.strokeEntry),
	)

	d.qualityEntry = widget.NewEntry()
	d.qualityEntry.SetText(fmt.Sprintf("%d", d.settings.JPEGQuality()))

	savingForm := widget.NewForm(
		widget.NewFormItem("JPEG quality (1-100)", d.qualityEntry),
	)

	d.capacityEntry = widget.NewEntry()
	d.capacityEntry.SetText(fmt.Sprintf("%d", d.settings.HistoryCapacity()))

	historyForm := widget.NewForm(
		widget.NewFormItem("Undo depth (next start)", d.capacityEntry),
	)

	return container.NewVBox(
		widget.NewCard("Tools", "", toolsForm),
		widget.NewCard("Saving", "", savingForm),
		widget.NewCard("History", "", historyForm),
	)
}

func (d *SettingsDialog) applyChanges() {
	d.settings.SetDefaultText(d.defaultTextEntry.Text)
	if v, err := strconv.Atoi(d.strokeEntry.Text); err == nil && v >= 1 {
		d.settings.SetStrokeWidth(v)
	}
	if v, err := strconv.Atoi(d.qualityEntry.Text); err == nil && v >= 1 && v <= 100 {
		d.settings.SetJPEGQuality(v)
	}
	if v, err := strconv.Atoi(d.capacityEntry.Text); err == nil && v >= 1 {
		d.settings.SetHistoryCapacity(v)
	}
	if err := d.settings.Save(); err != nil {
		dialog.ShowError(err, d.window)
	}
}
