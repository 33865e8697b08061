package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pinchzoom/pkg/engine"
)

var fitModes = []engine.FitMode{
	engine.FitCenter,
	engine.Center,
	engine.CenterCrop,
	engine.CenterInside,
	engine.FitStart,
	engine.FitEnd,
	engine.FitXY,
}

// Toolbar provides file, zoom, rotation and fit controls.
type Toolbar struct {
	container *fyne.Container

	// Callbacks
	OnOpen        func()
	OnZoomIn      func()
	OnZoomOut     func()
	OnRotateLeft  func()
	OnRotateRight func()
	OnReset       func()
	OnFitMode     func(m engine.FitMode)

	// Components
	zoomInBtn  *widget.Button
	zoomOutBtn *widget.Button
	rotateL    *widget.Button
	rotateR    *widget.Button
	resetBtn   *widget.Button
	fitSelect  *widget.Select
}

// NewToolbar creates a new toolbar.
func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.build()
	return t
}

func fire(fn func()) {
	if fn != nil {
		fn()
	}
}

func (t *Toolbar) build() {
	openBtn := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() { fire(t.OnOpen) })

	t.zoomOutBtn = widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { fire(t.OnZoomOut) })
	t.zoomInBtn = widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { fire(t.OnZoomIn) })
	t.rotateL = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() { fire(t.OnRotateLeft) })
	t.rotateR = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() { fire(t.OnRotateRight) })
	t.resetBtn = widget.NewButtonWithIcon("Reset", theme.ViewRestoreIcon(), func() { fire(t.OnReset) })

	names := make([]string, len(fitModes))
	for i, m := range fitModes {
		names[i] = m.String()
	}
	t.fitSelect = widget.NewSelect(names, func(s string) {
		m, err := engine.ParseFitMode(s)
		if err == nil && t.OnFitMode != nil {
			t.OnFitMode(m)
		}
	})
	t.fitSelect.SetSelectedIndex(0)

	t.container = container.NewHBox(
		openBtn,
		widget.NewSeparator(),
		t.zoomOutBtn,
		t.zoomInBtn,
		widget.NewSeparator(),
		t.rotateL,
		t.rotateR,
		t.resetBtn,
		widget.NewSeparator(),
		t.fitSelect,
	)
	t.Disable()
}

// Container returns the toolbar container.
func (t *Toolbar) Container() *fyne.Container {
	return t.container
}

// SetFitMode selects m without firing OnFitMode.
func (t *Toolbar) SetFitMode(m engine.FitMode) {
	cb := t.OnFitMode
	t.OnFitMode = nil
	t.fitSelect.SetSelected(m.String())
	t.OnFitMode = cb
}

// SetRotatable enables the rotate buttons, which need an aspect
// preserving fit mode.
func (t *Toolbar) SetRotatable(ok bool) {
	for _, b := range []*widget.Button{t.rotateL, t.rotateR} {
		if ok {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

// Enable enables the controls that need a photo.
func (t *Toolbar) Enable() {
	t.zoomInBtn.Enable()
	t.zoomOutBtn.Enable()
	t.resetBtn.Enable()
	t.fitSelect.Enable()
	t.SetRotatable(true)
}

// Disable disables the controls that need a photo.
func (t *Toolbar) Disable() {
	t.zoomInBtn.Disable()
	t.zoomOutBtn.Disable()
	t.resetBtn.Disable()
	t.fitSelect.Disable()
	t.SetRotatable(false)
}

// StatusBar provides status information.
type StatusBar struct {
	container *fyne.Container
	label     *widget.Label
	zoomLabel *widget.Label
	rotLabel  *widget.Label
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{
		label:     widget.NewLabel("Ready"),
		zoomLabel: widget.NewLabel("100%"),
		rotLabel:  widget.NewLabel("0°"),
	}

	s.container = container.NewHBox(
		s.label,
		widget.NewSeparator(),
		s.zoomLabel,
		widget.NewSeparator(),
		s.rotLabel,
	)

	return s
}

// Container returns the status bar container.
func (s *StatusBar) Container() *fyne.Container {
	return s.container
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.label.SetText(msg)
}

// SetZoom sets the zoom percentage display.
func (s *StatusBar) SetZoom(percent int) {
	s.zoomLabel.SetText(strconv.Itoa(percent) + "%")
}

// SetRotation shows the quarter-turn orientation.
func (s *StatusBar) SetRotation(r engine.Rotation) {
	s.rotLabel.SetText(r.String())
}
