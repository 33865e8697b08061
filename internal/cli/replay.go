package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pinchzoom/internal/config"
	"pinchzoom/pkg/api"
	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/frame"
	"pinchzoom/pkg/geom"
)

// maxSettleFrames bounds "settle" so a runaway transition cannot hang a
// replay.
const maxSettleFrames = 10000

// Command is one line of a gesture script.
type Command struct {
	Line int
	Verb string
	Args []string
}

// arity lists the accepted argument counts per verb.
var arity = map[string][2]int{
	"down":      {0, 0},
	"up":        {0, 0},
	"cancel":    {0, 0},
	"drag":      {2, 2},
	"pinch":     {3, 3},
	"pinchend":  {0, 0},
	"fling":     {2, 2},
	"doubletap": {2, 2},
	"tap":       {2, 2},
	"longpress": {2, 2},
	"rotate":    {2, 3},
	"scale":     {1, 2},
	"step":      {1, 1},
	"pan":       {2, 2},
	"fit":       {1, 1},
	"resize":    {2, 2},
	"reset":     {0, 0},
	"frames":    {1, 1},
	"settle":    {0, 0},
	"print":     {0, 0},
}

// ParseScript reads one command per line. Blank lines and text after '#'
// are ignored.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		verb := strings.ToLower(fields[0])
		ar, ok := arity[verb]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown command %q", n, fields[0])
		}
		if args := len(fields) - 1; args < ar[0] || args > ar[1] {
			return nil, fmt.Errorf("line %d: %s takes %d to %d arguments, got %d", n, verb, ar[0], ar[1], args)
		}
		cmds = append(cmds, Command{Line: n, Verb: verb, Args: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}
	return cmds, nil
}

// ReplayArgs configure a replay.
type ReplayArgs struct {
	Width, Height int
	// Output, when set, receives a render of the final frame.
	Output string
	Config config.Config
}

// Replay runs a gesture script against a headless engine driven by a
// deterministic frame loop, printing events and the final state to w.
func Replay(w io.Writer, p *api.Photo, cmds []Command, ra ReplayArgs) error {
	loop := frame.NewLoop(time.Unix(0, 0), frame.DefaultInterval)
	opts := append(ra.Config.EngineOptions(),
		engine.WithScheduler(loop),
		engine.WithClock(loop.Now),
	)
	e, v, err := api.NewEngine(p, float64(ra.Width), float64(ra.Height), opts...)
	if err != nil {
		return err
	}
	e.Observe(engine.Observer{
		OnContentTap: func(x, y float64) { fmt.Fprintf(w, "content tap %.3f,%.3f\n", x, y) },
		OnOutsideTap: func() { fmt.Fprintln(w, "outside tap") },
		OnLongPress:  func(x, y float64) { fmt.Fprintf(w, "long press %.1f,%.1f\n", x, y) },
	})

	r := &replayer{w: w, e: e, v: v, loop: loop}
	for _, c := range cmds {
		if err := r.run(c); err != nil {
			return fmt.Errorf("line %d: %s: %w", c.Line, c.Verb, err)
		}
	}
	loop.Run(maxSettleFrames)
	r.print()

	if ra.Output != "" {
		opts := api.DefaultRenderOptions()
		opts.Width, opts.Height = int(r.width()), int(r.height())
		opts.Quality = ra.Config.Quality
		img, err := api.RenderEngine(e, v, opts)
		if err != nil {
			return err
		}
		if err := save(ra.Output, img); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Saved %s\n", ra.Output)
	}
	return nil
}

type replayer struct {
	w    io.Writer
	e    *engine.Engine
	v    *api.Viewport
	loop *frame.Loop
}

func (r *replayer) width() float64 {
	w, _ := r.v.ViewportSize()
	return w
}

func (r *replayer) height() float64 {
	_, h := r.v.ViewportSize()
	return h
}

func (r *replayer) run(c Command) error {
	f, err := floats(c.Args)
	switch c.Verb {
	case "down":
		r.e.PointerDown()
	case "up":
		r.e.PointerUp()
	case "cancel":
		r.e.PointerCancel()
	case "pinchend":
		r.e.PinchEnd()
	case "reset":
		r.e.ClearScaleEffect()
	case "settle":
		r.loop.Run(maxSettleFrames)
	case "print":
		r.print()

	case "drag", "pinch", "fling", "doubletap", "tap", "longpress", "pan", "resize":
		if err != nil {
			return err
		}
		r.gesture(c.Verb, f)

	case "rotate":
		deg, err := ParseRotation(c.Args[0])
		if err != nil {
			return err
		}
		var clockwise bool
		switch c.Args[1] {
		case "cw":
			clockwise = true
		case "ccw":
		default:
			return fmt.Errorf("direction must be cw or ccw, got %q", c.Args[1])
		}
		return r.e.RotateTo(deg, clockwise, animated(c.Args[2:]))
	case "scale":
		s, err := strconv.ParseFloat(c.Args[0], 64)
		if err != nil {
			return err
		}
		return r.e.SetScale(s, animated(c.Args[1:]))
	case "step":
		n, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return err
		}
		return r.e.StepZoom(n)
	case "fit":
		m, err := engine.ParseFitMode(c.Args[0])
		if err != nil {
			return err
		}
		r.e.SetFitMode(m)
	case "frames":
		n, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			r.loop.Step()
		}
	}
	return nil
}

func (r *replayer) gesture(verb string, f []float64) {
	switch verb {
	case "drag":
		r.e.Drag(f[0], f[1])
	case "pinch":
		r.e.Pinch(f[0], f[1], f[2])
	case "fling":
		r.e.Fling(f[0], f[1])
	case "doubletap":
		r.e.DoubleTap(f[0], f[1])
	case "tap":
		r.e.SingleTapConfirmed(f[0], f[1])
	case "longpress":
		r.e.LongPress(f[0], f[1])
	case "pan":
		r.e.PanBy(f[0], f[1])
	case "resize":
		r.v.Resize(f[0], f[1])
		r.e.Layout()
	}
}

func (r *replayer) print() {
	rect, ok := r.e.DisplayRect()
	if !ok {
		rect = geom.Rect{}
	}
	fmt.Fprintf(r.w, "scale=%.4f rotation=%s rect=%s frames=%d\n",
		r.e.Scale(), r.e.Rotation(), formatRect(rect.X, rect.Y, rect.Width, rect.Height), r.loop.Frames())
}

func animated(args []string) bool {
	return len(args) > 0 && (args[0] == "anim" || args[0] == "animate")
}

func floats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}
