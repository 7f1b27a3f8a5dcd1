// Package editor implements the interaction core of the retouch application:
// the dual-buffer edit model (committed image vs. live preview), a bounded
// linear undo/redo history over committed snapshots, the viewport layout and
// canvas-to-image coordinate mapping shared by every pointer tool, and the
// commit controller that keeps all of them consistent across apply, cancel,
// revert, undo and redo.
//
// The package is UI-toolkit free. The rendering side consumes the preview
// buffer and publishes the viewport layout back through SetViewport; pointer
// events arrive already translated to canvas-space coordinates.
package editor

import (
	"fmt"
	"image"
	"log"
	"sync"

	"retouch/pkg/geometry"
)

// EditState tracks whether a tool session or one-shot operation may have
// diverged the preview from the committed image.
type EditState int

const (
	StateIdle EditState = iota
	StatePreviewActive
)

// EventType identifies editor state-change notifications.
type EventType int

const (
	// EventImageLoaded fires after LoadImage; data is the file path.
	EventImageLoaded EventType = iota

	// EventPreviewChanged fires whenever the preview buffer's content or
	// dimensions changed and should be re-rendered.
	EventPreviewChanged

	// EventCommitted fires when the committed buffer was replaced (apply,
	// revert, undo, redo).
	EventCommitted

	// EventHistoryChanged fires when the undo/redo cursor or count moved.
	EventHistoryChanged

	// EventSessionChanged fires when the active tool session was bound or
	// unbound.
	EventSessionChanged

	// EventViewportChanged fires when the rendering side published a new
	// layout.
	EventViewportChanged

	// EventOverlayChanged fires when the selection rectangle or stroke
	// feedback overlay needs redrawing.
	EventOverlayChanged
)

// EventListener is called synchronously after the state change that raised
// the event has completed and the context lock has been released.
type EventListener func(data interface{})

type pendingEvent struct {
	event EventType
	data  interface{}
}

// Context owns the edit buffers, the history stack, the filter toggles, the
// current viewport and the active tool session, and orchestrates every
// transition between them. There is one Context per window, created at
// startup and passed to each component constructor.
//
// All exported methods serialize on an internal mutex; events and errors are
// queued during a mutation and delivered after the lock is released, so
// listeners may call back into the Context freely.
type Context struct {
	mu sync.RWMutex

	buffers  EditBuffers
	history  *HistoryStack
	toggles  *FilterToggleSet
	viewport ViewportState
	state    EditState
	session  PointerHandler

	filePath string

	sink      ErrorSink
	listeners map[EventType][]EventListener

	pending  []pendingEvent
	pendErrs []error
}

// NewContext creates an editor context with the given history capacity and
// error sink. A nil sink falls back to the standard logger.
func NewContext(historyCapacity int, sink ErrorSink) *Context {
	if sink == nil {
		sink = func(err error) { log.Printf("editor: %v", err) }
	}
	return &Context{
		history:   NewHistoryStack(historyCapacity),
		toggles:   NewFilterToggleSet(),
		sink:      sink,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (c *Context) On(event EventType, listener EventListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners[event] = append(c.listeners[event], listener)
}

// pend queues an event for delivery once the current mutation completes.
// Callers hold the write lock.
func (c *Context) pend(event EventType) {
	c.pending = append(c.pending, pendingEvent{event: event})
}

// pendData queues an event carrying data. Callers hold the write lock.
func (c *Context) pendData(event EventType, data interface{}) {
	c.pending = append(c.pending, pendingEvent{event: event, data: data})
}

// pendErr queues an error for the sink. Callers hold the write lock.
func (c *Context) pendErr(err error) {
	c.pendErrs = append(c.pendErrs, err)
}

// flush delivers queued events and errors outside the write lock.
func (c *Context) flush() {
	c.mu.Lock()
	events := c.pending
	errs := c.pendErrs
	c.pending = nil
	c.pendErrs = nil
	c.mu.Unlock()

	for _, pe := range events {
		c.mu.RLock()
		listeners := c.listeners[pe.event]
		c.mu.RUnlock()
		for _, listener := range listeners {
			listener(pe.data)
		}
	}
	for _, err := range errs {
		c.sink(err)
	}
}

// LoadImage installs a decoded image as the original, committed and preview
// content, clears the history and filter toggles, and unbinds any active
// session. Load failures never reach this method, so an existing image is
// only ever replaced by a complete one.
func (c *Context) LoadImage(img image.Image, path string) error {
	if img == nil {
		return fmt.Errorf("load: %w", ErrInvalidDimensions)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("load: %w", ErrInvalidDimensions)
	}

	c.mu.Lock()
	if c.session != nil {
		c.session.Cancel()
		c.session = nil
	}
	c.buffers.Load(img)
	c.history.Clear()
	c.toggles.Reset()
	c.state = StateIdle
	c.filePath = path
	c.pendData(EventImageLoaded, path)
	c.pend(EventSessionChanged)
	c.pend(EventHistoryChanged)
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
	return nil
}

// BeginSession binds h as the only active pointer session. The previous
// session, if any, is cancelled first, and the preview is reseeded from the
// committed image so the new tool starts from accepted state.
func (c *Context) BeginSession(h PointerHandler) {
	c.mu.Lock()
	if c.session != nil {
		c.session.Cancel()
	}
	c.session = h
	c.buffers.BeginPreview()
	if c.buffers.HasImage() {
		c.state = StatePreviewActive
	}
	c.pend(EventSessionChanged)
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
}

// EndSession unbinds the active session, discarding its transient state but
// leaving the preview as it stands.
func (c *Context) EndSession() {
	c.mu.Lock()
	if c.session != nil {
		c.session.Cancel()
		c.session = nil
		c.pend(EventSessionChanged)
	}
	c.mu.Unlock()
	c.flush()
}

// ActiveSession returns the bound pointer session, or nil.
func (c *Context) ActiveSession() PointerHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// PointerDown forwards a canvas-space press to the active session.
func (c *Context) PointerDown(p geometry.Point2D) {
	c.mu.Lock()
	if c.session != nil && c.buffers.HasImage() {
		c.session.Down(p)
	}
	c.mu.Unlock()
	c.flush()
}

// PointerMove forwards a canvas-space drag movement to the active session.
func (c *Context) PointerMove(p geometry.Point2D) {
	c.mu.Lock()
	if c.session != nil && c.buffers.HasImage() {
		c.session.Move(p)
	}
	c.mu.Unlock()
	c.flush()
}

// PointerUp forwards a canvas-space release to the active session.
func (c *Context) PointerUp(p geometry.Point2D) {
	c.mu.Lock()
	if c.session != nil && c.buffers.HasImage() {
		c.session.Up(p)
	}
	c.mu.Unlock()
	c.flush()
}

// Apply commits the preview: the committed buffer is replaced by an
// independent copy, a snapshot is pushed onto the history, and every filter
// toggle resets. Calling Apply while idle is tolerated; it fails with
// ErrNoPreview only before the first load.
func (c *Context) Apply() error {
	c.mu.Lock()
	if err := c.buffers.CommitPreview(); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("apply: %w", err)
	}
	c.history.Push(c.buffers.Committed())
	c.toggles.Reset()
	c.state = StateIdle
	c.pend(EventCommitted)
	c.pend(EventHistoryChanged)
	c.mu.Unlock()
	c.flush()
	return nil
}

// Cancel discards in-progress edits: the preview is restored to a copy of
// the committed image and the active session's transient state cleared.
// Cancel never fails; before the first load it is a no-op.
func (c *Context) Cancel() {
	c.mu.Lock()
	c.buffers.ResetPreview()
	if c.session != nil {
		c.session.Cancel()
	}
	c.state = StateIdle
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
}

// Revert restores the as-loaded image into committed and preview, clears the
// history and resets all tool and filter state. Fails with ErrNoOriginal
// before the first load, leaving everything unchanged.
func (c *Context) Revert() error {
	c.mu.Lock()
	if err := c.buffers.RevertToOriginal(); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("revert: %w", err)
	}
	c.history.Clear()
	c.toggles.Reset()
	if c.session != nil {
		c.session.Cancel()
	}
	c.state = StateIdle
	c.pend(EventCommitted)
	c.pend(EventHistoryChanged)
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
	return nil
}

// Undo steps the committed image one state back. Returns false, with nothing
// changed, when no earlier state exists.
func (c *Context) Undo() bool {
	c.mu.Lock()
	snap, ok := c.history.Undo()
	if ok {
		c.buffers.Restore(snap)
		c.state = StateIdle
		c.pend(EventCommitted)
		c.pend(EventHistoryChanged)
		c.pend(EventPreviewChanged)
	}
	c.mu.Unlock()
	c.flush()
	return ok
}

// Redo steps the committed image one state forward. Returns false, with
// nothing changed, when no later state exists.
func (c *Context) Redo() bool {
	c.mu.Lock()
	snap, ok := c.history.Redo()
	if ok {
		c.buffers.Restore(snap)
		c.state = StateIdle
		c.pend(EventCommitted)
		c.pend(EventHistoryChanged)
		c.pend(EventPreviewChanged)
	}
	c.mu.Unlock()
	c.flush()
	return ok
}

// ApplyAction is the UI boundary for Apply with the documented degradation
// chain: a failed apply is reported and falls back to Cancel, which restores
// a consistent idle state. Cancel itself cannot fail; RevertAction remains
// the manual escape hatch beyond that.
func (c *Context) ApplyAction() {
	if err := c.Apply(); err != nil {
		c.sink(err)
		c.Cancel()
	}
}

// RevertAction is the UI boundary for Revert. A failure here is terminal for
// the action: it is reported through the sink and the state left unchanged.
func (c *Context) RevertAction() {
	if err := c.Revert(); err != nil {
		c.sink(err)
	}
}

// ToggleFilter flips one filter flag and recomputes the preview from the
// committed image: toggled on applies that kernel alone, toggled off
// restores a plain copy. Toggles never compose; the last toggle wins.
func (c *Context) ToggleFilter(k FilterKind) {
	c.mu.Lock()
	if !c.buffers.HasImage() {
		c.mu.Unlock()
		return
	}
	if c.toggles.toggle(k) {
		c.buffers.SetPreview(applyFilter(k, c.buffers.Committed()))
	} else {
		c.buffers.ResetPreview()
	}
	c.state = StatePreviewActive
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
}

// FilterActive reports whether the given filter is toggled on.
func (c *Context) FilterActive(k FilterKind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.toggles.Active(k)
}

// ApplyBlur recomputes the preview as a blur of the committed image. A size
// of zero or less clears the effect.
func (c *Context) ApplyBlur(kind BlurKind, size int) {
	c.mu.Lock()
	if !c.buffers.HasImage() {
		c.mu.Unlock()
		return
	}
	if size <= 0 {
		c.buffers.ResetPreview()
	} else {
		if size > MaxBlurSize {
			size = MaxBlurSize
		}
		c.buffers.SetPreview(applyBlur(kind, c.buffers.Committed(), size))
	}
	c.state = StatePreviewActive
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
}

// AdjustBrightness recomputes the preview with the brightness slider value
// (0..2, 1.0 neutral) applied to the committed image.
func (c *Context) AdjustBrightness(value float64) {
	c.mu.Lock()
	if !c.buffers.HasImage() {
		c.mu.Unlock()
		return
	}
	value = clampFloat(value, MinBrightness, MaxBrightness)
	c.buffers.SetPreview(applyBrightness(c.buffers.Committed(), value))
	c.state = StatePreviewActive
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
}

// AdjustSaturation recomputes the preview with the saturation slider value
// (-200..200, 0 neutral) applied to the committed image.
func (c *Context) AdjustSaturation(value float64) {
	c.mu.Lock()
	if !c.buffers.HasImage() {
		c.mu.Unlock()
		return
	}
	value = clampFloat(value, MinSaturation, MaxSaturation)
	c.buffers.SetPreview(applySaturation(c.buffers.Committed(), value))
	c.state = StatePreviewActive
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
}

// ApplyTransform rotates or mirrors the current preview in place, so
// consecutive transforms compose until the next apply or cancel.
func (c *Context) ApplyTransform(k TransformKind) {
	c.mu.Lock()
	src := c.buffers.Preview()
	if src == nil {
		c.mu.Unlock()
		return
	}
	c.buffers.SetPreview(applyTransform(k, src))
	c.state = StatePreviewActive
	c.pend(EventPreviewChanged)
	c.mu.Unlock()
	c.flush()
}

// SetViewport publishes the layout computed by the rendering side; sessions
// map pointer coordinates through it until the next update.
func (c *Context) SetViewport(v ViewportState) {
	c.mu.Lock()
	changed := v != c.viewport
	c.viewport = v
	if changed {
		c.pend(EventViewportChanged)
	}
	c.mu.Unlock()
	c.flush()
}

// Viewport returns the current viewport state.
func (c *Context) Viewport() ViewportState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewport
}

// PreviewImage returns the buffer the canvas renders. Read-only for callers.
func (c *Context) PreviewImage() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buffers.Preview()
}

// CommittedImage returns the last accepted buffer. Read-only for callers.
func (c *Context) CommittedImage() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buffers.Committed()
}

// OriginalImage returns the as-loaded buffer. Read-only for callers.
func (c *Context) OriginalImage() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buffers.Original()
}

// HasImage reports whether an image is loaded.
func (c *Context) HasImage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buffers.HasImage()
}

// FilePath returns the path of the last loaded image.
func (c *Context) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// State returns Idle or PreviewActive.
func (c *Context) State() EditState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// HistoryInfo returns the undo/redo cursor summary for display.
func (c *Context) HistoryInfo() HistoryInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.Info()
}

// SelectionRect returns the crop selection in canvas space while a crop drag
// is in progress.
func (c *Context) SelectionRect() (geometry.Rect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cs, ok := c.session.(*CropSession); ok {
		return cs.Selection()
	}
	return geometry.Rect{}, false
}

// OverlayStrokes returns the canvas-space feedback segments of the draw
// gesture in progress.
func (c *Context) OverlayStrokes() []Stroke {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ds, ok := c.session.(*DrawSession); ok {
		return ds.Segments()
	}
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
