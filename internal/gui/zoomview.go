package gui

import (
	"image"
	"log/slog"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"pinchzoom/pkg/api"
	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/geom"
	"pinchzoom/pkg/raster"
)

// wheelStep is the scroll distance that zooms by a factor of e.
const wheelStep = 240.0

// State is a snapshot of the view after an engine call.
type State struct {
	Scale        float64
	Compensation float64
	Rotation     engine.Rotation
	Rect         geom.Rect
	HasRect      bool
}

// Percent is the zoom relative to the fitted size, after rotation
// compensation.
func (s State) Percent() int {
	if s.Compensation <= 0 {
		return 0
	}
	return int(math.Round(s.Scale / s.Compensation * 100))
}

// ZoomView is a widget that shows a photo and drives an engine from
// pointer, wheel and tap input.
type ZoomView struct {
	widget.BaseWidget

	// OnStateChanged is called after every input that reached the engine,
	// outside the view's lock.
	OnStateChanged func(State)

	mu       sync.Mutex
	engine   *engine.Engine
	viewport *api.Viewport
	renderer *raster.Renderer
	queue    []func()
	down     bool
	tracker  velocityTracker
	now      func() time.Time
	log      *slog.Logger

	raster    *canvas.Raster
	animation *fyne.Animation
}

// NewZoomView creates an empty view. opts are applied after the view's own
// frame scheduler.
func NewZoomView(r *raster.Renderer, opts ...engine.Option) (*ZoomView, error) {
	if r == nil {
		r = raster.NewRenderer()
	}
	v := &ZoomView{
		viewport: api.NewViewport(nil, 0, 0),
		renderer: r,
		now:      time.Now,
		log:      slog.Default().With("component", "zoomview"),
	}
	all := append([]engine.Option{
		engine.WithScheduler(v),
		engine.WithZoomInterpolator(Curve(fyne.AnimationEaseInOut)),
		engine.WithLogger(v.log),
	}, opts...)
	e, err := engine.New(v.viewport, all...)
	if err != nil {
		return nil, err
	}
	v.engine = e
	v.raster = canvas.NewRaster(v.draw)
	v.animation = fyne.NewAnimation(time.Second, func(float32) { v.tick() })
	v.animation.Curve = fyne.AnimationLinear
	v.animation.RepeatCount = fyne.AnimationRepeatForever
	v.ExtendBaseWidget(v)
	return v, nil
}

// Curve adapts a fyne animation curve to an engine interpolator.
func Curve(c fyne.AnimationCurve) engine.Interpolator {
	return func(t float64) float64 {
		return float64(c(float32(t)))
	}
}

// PostFrame implements engine.FrameScheduler. The engine calls it with the
// view's lock held.
func (v *ZoomView) PostFrame(fn func()) {
	v.queue = append(v.queue, fn)
}

// Do runs fn with exclusive access to the engine, then refreshes the view.
func (v *ZoomView) Do(fn func(e *engine.Engine)) {
	v.mu.Lock()
	fn(v.engine)
	st := v.stateLocked()
	v.mu.Unlock()

	v.raster.Refresh()
	if v.OnStateChanged != nil {
		v.OnStateChanged(st)
	}
}

// State returns the current snapshot.
func (v *ZoomView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stateLocked()
}

func (v *ZoomView) stateLocked() State {
	rect, ok := v.engine.DisplayRect()
	return State{
		Scale:        v.engine.Scale(),
		Compensation: v.engine.CompensationFactor(),
		Rotation:     v.engine.Rotation(),
		Rect:         rect,
		HasRect:      ok,
	}
}

// tick runs one animation frame.
func (v *ZoomView) tick() {
	v.mu.Lock()
	q := v.queue
	v.queue = nil
	if len(q) == 0 {
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	v.Do(func(*engine.Engine) {
		for _, fn := range q {
			fn()
		}
	})
}

// Animating reports whether frames are queued.
func (v *ZoomView) Animating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.queue) > 0
}

// SetPhoto shows p, or clears the view when p is nil.
func (v *ZoomView) SetPhoto(p *api.Photo) {
	v.Do(func(e *engine.Engine) {
		v.viewport.SetPhoto(p)
		e.Update()
	})
}

// Photo returns the photo on display.
func (v *ZoomView) Photo() *api.Photo {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport.Photo()
}

// Resize resizes the widget and relays the new viewport to the engine.
func (v *ZoomView) Resize(size fyne.Size) {
	v.Do(func(e *engine.Engine) {
		w, h := v.viewport.ViewportSize()
		if w == float64(size.Width) && h == float64(size.Height) {
			return
		}
		v.viewport.Resize(float64(size.Width), float64(size.Height))
		e.Layout()
	})
	v.BaseWidget.Resize(size)
}

// Snapshot renders the current frame at the viewport size.
func (v *ZoomView) Snapshot() (*image.RGBA, error) {
	v.mu.Lock()
	f := v.viewport.Frame(v.engine.DisplayMatrix())
	v.mu.Unlock()
	return v.renderer.Render(f)
}

// draw renders for canvas.Raster, which asks for device pixels.
func (v *ZoomView) draw(w, h int) image.Image {
	v.mu.Lock()
	f := v.viewport.Frame(v.engine.DisplayMatrix())
	v.mu.Unlock()

	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if f.Width > 0 && f.Height > 0 {
		sx := float64(w) / float64(f.Width)
		sy := float64(h) / float64(f.Height)
		f.Display = f.Display.Multiply(geom.Scale(sx, sy))
	}
	f.Width, f.Height = w, h
	img, err := v.renderer.Render(f)
	if err != nil {
		v.log.Debug("render failed", "error", err)
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return img
}

// Detach stops the frame ticker and releases the engine's surface.
func (v *ZoomView) Detach() {
	v.animation.Stop()
	v.Do(func(e *engine.Engine) {
		v.queue = nil
		e.Detach()
	})
}

func (v *ZoomView) pointerDown() {
	v.Do(func(e *engine.Engine) {
		v.down = true
		v.tracker.reset()
		e.PointerDown()
	})
}

func (v *ZoomView) pointerUp(fling bool) {
	now := v.now()
	v.Do(func(e *engine.Engine) {
		if !v.down {
			return
		}
		v.down = false
		if fling {
			if vx, vy := v.tracker.velocity(now); vx != 0 || vy != 0 {
				e.Fling(vx, vy)
			}
		}
		e.PointerUp()
	})
}

// MouseDown implements desktop.Mouseable.
func (v *ZoomView) MouseDown(*desktop.MouseEvent) {
	v.pointerDown()
}

// MouseUp implements desktop.Mouseable.
func (v *ZoomView) MouseUp(*desktop.MouseEvent) {
	v.pointerUp(false)
}

// Dragged implements fyne.Draggable.
func (v *ZoomView) Dragged(ev *fyne.DragEvent) {
	if !v.isDown() {
		// Touch drivers do not send MouseDown.
		v.pointerDown()
	}
	dx, dy := float64(ev.Dragged.DX), float64(ev.Dragged.DY)
	now := v.now()
	v.Do(func(e *engine.Engine) {
		v.tracker.add(dx, dy, now)
		e.Drag(dx, dy)
	})
}

// DragEnd implements fyne.Draggable.
func (v *ZoomView) DragEnd() {
	v.pointerUp(true)
}

func (v *ZoomView) isDown() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.down
}

// Scrolled implements fyne.Scrollable as a one-step pinch about the
// cursor.
func (v *ZoomView) Scrolled(ev *fyne.ScrollEvent) {
	factor := math.Exp(float64(ev.Scrolled.DY) / wheelStep)
	x, y := float64(ev.Position.X), float64(ev.Position.Y)
	v.Do(func(e *engine.Engine) {
		e.Pinch(factor, x, y)
		e.PinchEnd()
		if !v.down {
			e.PointerUp()
		}
	})
}

// Tapped implements fyne.Tappable. Fyne delays it until a double tap is
// ruled out.
func (v *ZoomView) Tapped(ev *fyne.PointEvent) {
	x, y := float64(ev.Position.X), float64(ev.Position.Y)
	v.Do(func(e *engine.Engine) {
		e.SingleTapConfirmed(x, y)
	})
}

// DoubleTapped implements fyne.DoubleTappable.
func (v *ZoomView) DoubleTapped(ev *fyne.PointEvent) {
	x, y := float64(ev.Position.X), float64(ev.Position.Y)
	v.Do(func(e *engine.Engine) {
		e.DoubleTap(x, y)
	})
}

// TappedSecondary implements fyne.SecondaryTappable and reports a long
// press.
func (v *ZoomView) TappedSecondary(ev *fyne.PointEvent) {
	x, y := float64(ev.Position.X), float64(ev.Position.Y)
	v.Do(func(e *engine.Engine) {
		e.LongPress(x, y)
	})
}

// CreateRenderer implements fyne.Widget and starts the frame ticker.
func (v *ZoomView) CreateRenderer() fyne.WidgetRenderer {
	v.animation.Start()
	return &zoomViewRenderer{view: v}
}

type zoomViewRenderer struct {
	view *ZoomView
}

func (r *zoomViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Move(fyne.NewPos(0, 0))
	r.view.raster.Resize(size)
}

func (r *zoomViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *zoomViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *zoomViewRenderer) Refresh() {
	r.view.raster.Refresh()
}

func (r *zoomViewRenderer) Destroy() {
	r.view.animation.Stop()
}
