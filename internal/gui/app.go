// Package gui provides a native desktop photo viewer using Fyne.
package gui

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"pinchzoom/internal/config"
	"pinchzoom/pkg/api"
	"pinchzoom/pkg/engine"
)

// panStep is the keyboard pan distance.
const panStep = 40

// App represents the photo viewer application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        config.Config
	cfgPath    string

	// UI components
	view    *ZoomView
	toolbar *Toolbar
	status  *StatusBar
}

// NewApp creates a new viewer application using the settings at cfgPath.
// An empty path skips persisting them.
func NewApp(cfg config.Config, cfgPath string) (*App, error) {
	a := &App{
		fyneApp: app.New(),
		cfg:     cfg,
		cfgPath: cfgPath,
	}

	a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	a.mainWindow = a.fyneApp.NewWindow("PinchZoom")
	a.mainWindow.Resize(fyne.NewSize(900, 700))

	if err := a.buildUI(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run starts the application.
func (a *App) Run() {
	a.mainWindow.ShowAndRun()
	a.view.Detach()
}

// RunWithFile starts the application with a photo already loaded.
func (a *App) RunWithFile(path string) {
	if err := a.loadFile(path); err != nil {
		dialog.ShowError(err, a.mainWindow)
	}
	a.Run()
}

// buildUI constructs the user interface.
func (a *App) buildUI() error {
	view, err := NewZoomView(a.cfg.Renderer(), a.cfg.EngineOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create view: %w", err)
	}
	a.view = view
	a.toolbar = NewToolbar()
	a.status = NewStatusBar()
	a.toolbar.SetFitMode(a.cfg.FitMode)

	a.view.OnStateChanged = a.showState
	a.toolbar.OnOpen = a.openFile
	a.toolbar.OnZoomIn = func() { a.stepZoom(1) }
	a.toolbar.OnZoomOut = func() { a.stepZoom(-1) }
	a.toolbar.OnRotateLeft = func() { a.rotate(false) }
	a.toolbar.OnRotateRight = func() { a.rotate(true) }
	a.toolbar.OnReset = a.reset
	a.toolbar.OnFitMode = a.setFitMode

	a.view.Do(func(e *engine.Engine) {
		e.Observe(engine.Observer{
			OnContentTap: func(x, y float64) {
				slog.Debug("content tap", "x", x, "y", y)
			},
			OnLongPress: func(x, y float64) {
				slog.Debug("long press", "x", x, "y", y)
			},
		})
	})

	content := container.NewBorder(
		container.NewPadded(a.toolbar.Container()),
		a.status.Container(),
		nil,
		nil,
		a.view,
	)
	a.mainWindow.SetContent(content)
	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
	return nil
}

// handleKey handles keyboard navigation.
func (a *App) handleKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyPlus, fyne.KeyEqual:
		a.stepZoom(1)
	case fyne.KeyMinus:
		a.stepZoom(-1)
	case fyne.KeyR:
		a.rotate(true)
	case fyne.KeyL:
		a.rotate(false)
	case fyne.Key0, fyne.KeyHome:
		a.reset()
	case fyne.KeyLeft:
		a.view.Do(func(e *engine.Engine) { e.PanBy(panStep, 0) })
	case fyne.KeyRight:
		a.view.Do(func(e *engine.Engine) { e.PanBy(-panStep, 0) })
	case fyne.KeyUp:
		a.view.Do(func(e *engine.Engine) { e.PanBy(0, panStep) })
	case fyne.KeyDown:
		a.view.Do(func(e *engine.Engine) { e.PanBy(0, -panStep) })
	}
}

// openFile shows a file dialog and loads the selected photo.
func (a *App) openFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if reader == nil {
			return // Cancelled
		}
		defer reader.Close()

		if err := a.loadFile(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}, a.mainWindow)
}

// loadFile loads a photo into the view.
func (a *App) loadFile(path string) error {
	p, err := api.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open photo: %w", err)
	}

	a.view.SetPhoto(p)
	a.mainWindow.SetTitle(fmt.Sprintf("PinchZoom - %s", filepath.Base(path)))
	info := p.Info()
	a.status.SetStatus(fmt.Sprintf("%s %dx%d", info.Format, info.Width, info.Height))
	a.toolbar.Enable()
	a.toolbar.SetRotatable(a.cfg.FitMode.AspectPreserving())

	a.cfg.LastOpened = path
	a.saveConfig()
	return nil
}

func (a *App) stepZoom(delta int) {
	a.view.Do(func(e *engine.Engine) {
		if err := e.StepZoom(delta); err != nil {
			slog.Debug("zoom step rejected", "error", err)
		}
	})
}

func (a *App) rotate(clockwise bool) {
	a.view.Do(func(e *engine.Engine) {
		if err := e.RotateBy90(clockwise, true); err != nil {
			a.status.SetStatus(err.Error())
		}
	})
}

func (a *App) reset() {
	a.view.Do(func(e *engine.Engine) {
		e.ClearScaleEffect()
	})
}

func (a *App) setFitMode(m engine.FitMode) {
	a.view.Do(func(e *engine.Engine) {
		e.SetFitMode(m)
	})
	a.toolbar.SetRotatable(m.AspectPreserving())
	a.cfg.FitMode = m
	a.saveConfig()
}

func (a *App) showState(st State) {
	a.status.SetZoom(st.Percent())
	a.status.SetRotation(st.Rotation)
}

func (a *App) saveConfig() {
	if a.cfgPath == "" {
		return
	}
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		slog.Warn("couldn't save config", "error", err)
	}
}
