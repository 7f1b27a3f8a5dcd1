// Package panels provides the editor side panel.
package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"retouch/internal/editor"
	"retouch/ui/prefs"
)

// SidePanel provides the tool tabs and the action bar under them.
type SidePanel struct {
	ctx      *editor.Context
	settings *prefs.Prefs

	tabs      *container.AppTabs
	container fyne.CanvasObject

	// Tab content
	toolsPanel     *ToolsPanel
	filtersPanel   *FiltersPanel
	adjustPanel    *AdjustPanel
	transformPanel *TransformPanel
	actionBar      *ActionBar
}

// NewSidePanel creates a new side panel bound to the edit context.
func NewSidePanel(ctx *editor.Context, settings *prefs.Prefs) *SidePanel {
	sp := &SidePanel{
		ctx:      ctx,
		settings: settings,
	}

	// Create individual panels
	sp.toolsPanel = NewToolsPanel(ctx, settings)
	sp.filtersPanel = NewFiltersPanel(ctx)
	sp.adjustPanel = NewAdjustPanel(ctx)
	sp.transformPanel = NewTransformPanel(ctx)
	sp.actionBar = NewActionBar(ctx)

	// Create tabbed container
	sp.tabs = container.NewAppTabs(
		container.NewTabItem("Tools", sp.toolsPanel.Container()),
		container.NewTabItem("Filters", sp.filtersPanel.Container()),
		container.NewTabItem("Adjust", sp.adjustPanel.Container()),
		container.NewTabItem("Transform", sp.transformPanel.Container()),
	)

	// Action bar stays visible regardless of the selected tab
	sp.container = container.NewBorder(nil, sp.actionBar.Container(), nil, nil, sp.tabs)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.toolsPanel.SetWindow(w)
}

// ToolsPanel holds the interactive tool buttons and their options.
type ToolsPanel struct {
	ctx       *editor.Context
	settings  *prefs.Prefs
	window    fyne.Window
	container fyne.CanvasObject

	activeLabel *widget.Label
	textEntry   *widget.Entry
	drawSwatch  *fynecanvas.Rectangle
	textSwatch  *fynecanvas.Rectangle
}

// NewToolsPanel creates a new tools panel.
func NewToolsPanel(ctx *editor.Context, settings *prefs.Prefs) *ToolsPanel {
	tp := &ToolsPanel{
		ctx:      ctx,
		settings: settings,
	}

	tp.activeLabel = widget.NewLabel("No active tool")

	tp.drawSwatch = fynecanvas.NewRectangle(settings.DrawColor())
	tp.drawSwatch.SetMinSize(fyne.NewSize(28, 28))
	tp.textSwatch = fynecanvas.NewRectangle(settings.TextColor())
	tp.textSwatch.SetMinSize(fyne.NewSize(28, 28))

	tp.textEntry = widget.NewEntry()
	tp.textEntry.SetText(settings.DefaultText())
	tp.textEntry.OnChanged = func(s string) {
		settings.SetDefaultText(s)
		if ts, ok := tp.ctx.ActiveSession().(*editor.TextSession); ok {
			ts.SetText(s)
		}
	}

	cropButton := widget.NewButton("Crop", func() {
		tp.ctx.BeginSession(editor.NewCropSession(tp.ctx))
	})
	drawButton := widget.NewButton("Draw", func() {
		ds := editor.NewDrawSession(tp.ctx, tp.settings.DrawColor())
		ds.SetWidth(float64(tp.settings.StrokeWidth()))
		tp.ctx.BeginSession(ds)
	})
	textButton := widget.NewButton("Text", func() {
		tp.ctx.BeginSession(editor.NewTextSession(
			tp.ctx, tp.textEntry.Text, tp.settings.TextColor()))
	})

	drawColorButton := widget.NewButton("Stroke Color...", func() {
		tp.pickColor("Stroke Color", tp.drawSwatch, func(c color.NRGBA) {
			tp.settings.SetDrawColor(c)
			if ds, ok := tp.ctx.ActiveSession().(*editor.DrawSession); ok {
				ds.SetColor(c)
			}
		})
	})
	textColorButton := widget.NewButton("Text Color...", func() {
		tp.pickColor("Text Color", tp.textSwatch, func(c color.NRGBA) {
			tp.settings.SetTextColor(c)
			if ts, ok := tp.ctx.ActiveSession().(*editor.TextSession); ok {
				ts.SetColor(c)
			}
		})
	})

	// Layout
	tp.container = container.NewVBox(
		widget.NewCard("Tools", "", container.NewVBox(
			cropButton,
			drawButton,
			textButton,
			tp.activeLabel,
		)),
		widget.NewCard("Draw", "", container.NewVBox(
			container.NewHBox(tp.drawSwatch, drawColorButton),
		)),
		widget.NewCard("Text", "", container.NewVBox(
			widget.NewLabel("Text to place:"),
			tp.textEntry,
			container.NewHBox(tp.textSwatch, textColorButton),
		)),
	)

	// Register for events
	ctx.On(editor.EventSessionChanged, func(interface{}) {
		tp.updateActiveTool()
	})

	return tp
}

// SetWindow sets the parent window for dialogs.
func (tp *ToolsPanel) SetWindow(w fyne.Window) {
	tp.window = w
}

// Container returns the panel container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.container
}

func (tp *ToolsPanel) updateActiveTool() {
	session := tp.ctx.ActiveSession()
	if session == nil {
		tp.activeLabel.SetText("No active tool")
		return
	}
	tp.activeLabel.SetText(fmt.Sprintf("Active: %s", session.Kind()))
}

// pickColor opens the color picker and routes the choice to the swatch and
// the given setter.
func (tp *ToolsPanel) pickColor(title string, swatch *fynecanvas.Rectangle, set func(color.NRGBA)) {
	if tp.window == nil {
		return
	}
	picker := dialog.NewColorPicker(title, "", func(c color.Color) {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = 255
		swatch.FillColor = nrgba
		swatch.Refresh()
		set(nrgba)
	}, tp.window)
	picker.Advanced = true
	picker.Show()
}

// FiltersPanel holds one checkbox per filter. Checks mirror the context's
// toggle set, which keeps at most one filter active.
type FiltersPanel struct {
	ctx       *editor.Context
	container fyne.CanvasObject

	checks map[editor.FilterKind]*widget.Check
}

// NewFiltersPanel creates a new filters panel.
func NewFiltersPanel(ctx *editor.Context) *FiltersPanel {
	fp := &FiltersPanel{
		ctx:    ctx,
		checks: make(map[editor.FilterKind]*widget.Check),
	}

	var items []fyne.CanvasObject
	for _, kind := range editor.AllFilterKinds() {
		k := kind
		check := widget.NewCheck(k.String(), func(checked bool) {
			// SetChecked during a resync arrives with the model value;
			// only a user click differs from it.
			if checked != fp.ctx.FilterActive(k) {
				fp.ctx.ToggleFilter(k)
			}
		})
		fp.checks[k] = check
		items = append(items, check)
	}

	fp.container = container.NewVBox(
		widget.NewCard("Filters", "", container.NewVBox(items...)),
	)

	sync := func(interface{}) { fp.syncChecks() }
	ctx.On(editor.EventPreviewChanged, sync)
	ctx.On(editor.EventCommitted, sync)
	ctx.On(editor.EventImageLoaded, sync)

	return fp
}

// Container returns the panel container.
func (fp *FiltersPanel) Container() fyne.CanvasObject {
	return fp.container
}

func (fp *FiltersPanel) syncChecks() {
	for k, check := range fp.checks {
		if active := fp.ctx.FilterActive(k); check.Checked != active {
			check.SetChecked(active)
		}
	}
}

// AdjustPanel holds the blur, brightness and saturation controls.
type AdjustPanel struct {
	ctx       *editor.Context
	container fyne.CanvasObject

	blurKind        *widget.RadioGroup
	blurSize        *widget.Slider
	blurLabel       *widget.Label
	brightness      *widget.Slider
	brightnessLabel *widget.Label
	saturation      *widget.Slider
	saturationLabel *widget.Label

	syncing bool
}

// NewAdjustPanel creates a new adjust panel.
func NewAdjustPanel(ctx *editor.Context) *AdjustPanel {
	ap := &AdjustPanel{ctx: ctx}

	blurKinds := []string{
		editor.BlurAverage.String(),
		editor.BlurGaussian.String(),
		editor.BlurMedian.String(),
	}
	ap.blurKind = widget.NewRadioGroup(blurKinds, func(string) {
		if ap.syncing {
			return
		}
		// Re-run the blur with the new kernel at the current size
		if size := int(ap.blurSize.Value); size > 0 {
			ap.ctx.ApplyBlur(ap.selectedBlurKind(), size)
		}
	})
	ap.blurKind.Horizontal = true
	ap.blurKind.SetSelected(editor.BlurAverage.String())

	ap.blurLabel = widget.NewLabel("0")
	ap.blurSize = widget.NewSlider(0, editor.MaxBlurSize)
	ap.blurSize.Step = 1
	ap.blurSize.OnChanged = func(v float64) {
		ap.blurLabel.SetText(fmt.Sprintf("%.0f", v))
		if ap.syncing {
			return
		}
		ap.ctx.ApplyBlur(ap.selectedBlurKind(), int(v))
	}

	ap.brightnessLabel = widget.NewLabel("1.00")
	ap.brightness = widget.NewSlider(editor.MinBrightness, editor.MaxBrightness)
	ap.brightness.Step = 0.01
	ap.brightness.Value = editor.NeutralBrightness
	ap.brightness.OnChanged = func(v float64) {
		ap.brightnessLabel.SetText(fmt.Sprintf("%.2f", v))
		if ap.syncing {
			return
		}
		ap.ctx.AdjustBrightness(v)
	}

	ap.saturationLabel = widget.NewLabel("0")
	ap.saturation = widget.NewSlider(editor.MinSaturation, editor.MaxSaturation)
	ap.saturation.Step = 1
	ap.saturation.Value = 0
	ap.saturation.OnChanged = func(v float64) {
		ap.saturationLabel.SetText(fmt.Sprintf("%.0f", v))
		if ap.syncing {
			return
		}
		ap.ctx.AdjustSaturation(v)
	}

	// Layout
	ap.container = container.NewVBox(
		widget.NewCard("Blur", "", container.NewVBox(
			ap.blurKind,
			container.NewBorder(nil, nil, widget.NewLabel("Size:"), ap.blurLabel, ap.blurSize),
		)),
		widget.NewCard("Brightness", "", container.NewVBox(
			container.NewBorder(nil, nil, nil, ap.brightnessLabel, ap.brightness),
		)),
		widget.NewCard("Saturation", "", container.NewVBox(
			container.NewBorder(nil, nil, nil, ap.saturationLabel, ap.saturation),
		)),
	)

	// Sliders snap back to neutral when a new committed state lands; a
	// plain cancel keeps their position, like the sliders they replace.
	reset := func(interface{}) { ap.resetControls() }
	ctx.On(editor.EventCommitted, reset)
	ctx.On(editor.EventImageLoaded, reset)

	return ap
}

// Container returns the panel container.
func (ap *AdjustPanel) Container() fyne.CanvasObject {
	return ap.container
}

func (ap *AdjustPanel) selectedBlurKind() editor.BlurKind {
	switch ap.blurKind.Selected {
	case editor.BlurGaussian.String():
		return editor.BlurGaussian
	case editor.BlurMedian.String():
		return editor.BlurMedian
	default:
		return editor.BlurAverage
	}
}

func (ap *AdjustPanel) resetControls() {
	ap.syncing = true
	ap.blurSize.SetValue(0)
	ap.brightness.SetValue(editor.NeutralBrightness)
	ap.saturation.SetValue(0)
	ap.syncing = false
}

// TransformPanel holds the rotate and flip buttons. Transforms stack on the
// preview until applied or cancelled.
type TransformPanel struct {
	ctx       *editor.Context
	container fyne.CanvasObject
}

// NewTransformPanel creates a new transform panel.
func NewTransformPanel(ctx *editor.Context) *TransformPanel {
	tp := &TransformPanel{ctx: ctx}

	transformButton := func(k editor.TransformKind) *widget.Button {
		return widget.NewButton(k.String(), func() {
			tp.ctx.ApplyTransform(k)
		})
	}

	tp.container = container.NewVBox(
		widget.NewCard("Rotate", "", container.NewVBox(
			transformButton(editor.RotateLeft),
			transformButton(editor.RotateRight),
		)),
		widget.NewCard("Flip", "", container.NewVBox(
			transformButton(editor.FlipHorizontal),
			transformButton(editor.FlipVertical),
		)),
	)

	return tp
}

// Container returns the panel container.
func (tp *TransformPanel) Container() fyne.CanvasObject {
	return tp.container
}

// ActionBar holds the commit controls and the history cursor display.
type ActionBar struct {
	ctx       *editor.Context
	container fyne.CanvasObject

	applyButton  *widget.Button
	cancelButton *widget.Button
	revertButton *widget.Button
	undoButton   *widget.Button
	redoButton   *widget.Button
	historyLabel *widget.Label
}

// NewActionBar creates the apply/cancel/revert/undo/redo bar.
func NewActionBar(ctx *editor.Context) *ActionBar {
	ab := &ActionBar{ctx: ctx}

	ab.applyButton = widget.NewButton("Apply Changes", func() {
		ab.ctx.ApplyAction()
	})
	ab.applyButton.Importance = widget.HighImportance

	ab.cancelButton = widget.NewButton("Cancel", func() {
		ab.ctx.Cancel()
	})

	ab.revertButton = widget.NewButton("Revert All", func() {
		ab.ctx.RevertAction()
	})

	ab.undoButton = widget.NewButton("Undo", func() {
		ab.ctx.Undo()
	})
	ab.redoButton = widget.NewButton("Redo", func() {
		ab.ctx.Redo()
	})

	ab.historyLabel = widget.NewLabel("History: 0/0")
	ab.historyLabel.Alignment = fyne.TextAlignCenter

	ab.container = widget.NewCard("", "", container.NewVBox(
		ab.applyButton,
		container.NewGridWithColumns(2, ab.cancelButton, ab.revertButton),
		container.NewGridWithColumns(2, ab.undoButton, ab.redoButton),
		ab.historyLabel,
	))

	refresh := func(interface{}) { ab.refresh() }
	ctx.On(editor.EventHistoryChanged, refresh)
	ctx.On(editor.EventImageLoaded, refresh)

	ab.refresh()
	return ab
}

// Container returns the bar container.
func (ab *ActionBar) Container() fyne.CanvasObject {
	return ab.container
}

func (ab *ActionBar) refresh() {
	hasImage := ab.ctx.HasImage()
	setEnabled(ab.applyButton, hasImage)
	setEnabled(ab.cancelButton, hasImage)
	setEnabled(ab.revertButton, hasImage)

	info := ab.ctx.HistoryInfo()
	setEnabled(ab.undoButton, info.CanUndo)
	setEnabled(ab.redoButton, info.CanRedo)
	ab.historyLabel.SetText(fmt.Sprintf("History: %d/%d", info.Position+1, info.Total))
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
