package netviz

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rdvisser/socionet/pkg/vistable"
)

// Viewer is the embeddable network component. It implements ebiten.Game:
// Update drains external mutations, polls input and advances the animation
// state machine; Draw repaints only when something changed. All scene
// state is owned by the event loop; Enqueue is the only way in from other
// goroutines.
type Viewer struct {
	opts      Options
	scene     *Scene
	transform *Transform
	sched     *Scheduler
	slider    *Slider
	popup     *Popup
	ctrl      *Controller
	renderer  *Renderer
	images    *ImageCache

	pending chan func()
	canvas  *ebiten.Image

	// OnReady fires once, after the initial stabilization and first draw.
	OnReady func()
	// OnSelect fires whenever the selection set changes; consumers re-read
	// the selection through Selection().
	OnSelect func()

	drawnOnce  bool
	readyFired bool
}

// New builds a viewer for the given tables. The nodes table is required;
// links and packages may be nil.
func New(nodes, links, packages *vistable.Table, opts Options) (*Viewer, error) {
	if nodes == nil {
		return nil, &InvalidArgumentError{Reason: "a nodes table is required"}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, &InvalidArgumentError{Reason: "viewer width and height must be positive"}
	}
	opts.applyDefaults()

	v := &Viewer{
		opts:    opts,
		pending: make(chan func(), 64),
	}
	v.scene = NewScene(&v.opts)
	v.transform = NewTransform()
	v.popup = &Popup{}
	v.sched = NewScheduler(v.scene, &v.opts)
	v.images = NewImageCache(func() {
		// Image loads finish on their own goroutines; hop back onto the
		// event loop before touching shared state.
		v.Enqueue(func() { v.sched.RequestRedraw() })
	})

	renderer, err := NewRenderer(v.images)
	if err != nil {
		return nil, err
	}
	v.renderer = renderer

	if err := v.scene.SetNodes(nodes); err != nil {
		return nil, err
	}
	if links != nil {
		if err := v.scene.SetLinks(links); err != nil {
			return nil, err
		}
	}
	if packages != nil {
		if err := v.scene.SetPackages(packages); err != nil {
			return nil, err
		}
	}

	v.slider = NewSlider(v.scene.Timestamps())
	v.slider.OnChange = func(ts float64) {
		// Filter errors cannot occur here: the rows already passed
		// ingestion once and filtering only narrows the set of nodes a
		// row can reference, which surfaces as a missing endpoint.
		// Treat that as an empty frame rather than a crash.
		_ = v.scene.FilterNodes(ts)
		_ = v.scene.FilterLinks(ts)
		_ = v.scene.FilterPackages(ts)
		v.sched.RequestRedraw()
	}

	v.ctrl = NewController(v.scene, v.transform, v.sched, v.slider, v.popup, &v.opts)
	v.ctrl.OnSelectionChange = func() {
		if v.OnSelect != nil {
			v.OnSelect()
		}
	}

	if v.opts.Stabilize {
		v.scene.Stabilize()
	}
	v.sched.Start()
	return v, nil
}

// Enqueue schedules fn onto the event loop; it runs at the start of the
// next Update tick.
func (v *Viewer) Enqueue(fn func()) {
	select {
	case v.pending <- fn:
	default:
		// A full queue means the loop is far behind; drop rather than
		// block an image-load goroutine.
	}
}

func (v *Viewer) Update() error {
	for {
		select {
		case fn := <-v.pending:
			fn()
			continue
		default:
		}
		break
	}

	v.ctrl.PollInput()
	v.sched.Tick()
	v.slider.Tick()

	if v.drawnOnce && !v.readyFired {
		v.readyFired = true
		if v.OnReady != nil {
			v.OnReady()
		}
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.canvas == nil {
		v.canvas = ebiten.NewImage(v.opts.Width, v.opts.Height)
		v.sched.RequestRedraw()
	}
	if v.sched.ConsumeRedraw() {
		v.renderer.DrawScene(v.canvas, v.scene, v.transform, &v.opts)
		if x, y, w, h, active := v.ctrl.RubberBand(); active {
			v.renderer.DrawRubberBand(v.canvas, x, y, w, h)
		}
		v.renderer.DrawSlider(v.canvas, v.slider, &v.opts)
		v.renderer.DrawPopup(v.canvas, v.popup)
	}
	screen.DrawImage(v.canvas, nil)
	v.drawnOnce = true
}

func (v *Viewer) Layout(w, h int) (int, int) { return v.opts.Width, v.opts.Height }

// --- public query surface ---

func (v *Viewer) Selection() []int { return v.scene.Selection() }

func (v *Viewer) SetSelection(indices []int) error {
	if err := v.scene.SetSelection(indices); err != nil {
		return err
	}
	v.sched.RequestRedraw()
	return nil
}

// TimestampRange reports the [start, end] range across all loaded tables.
func (v *Viewer) TimestampRange() (start, end float64, ok bool) {
	return v.scene.TimestampRange()
}

// SetTimestamp moves the playback cutoff and re-filters the scene. Values
// outside the loaded range clamp to the nearest timestamp.
func (v *Viewer) SetTimestamp(ts float64) { v.slider.SetTimestamp(ts) }

func (v *Viewer) StartPlayback() { v.slider.Play() }
func (v *Viewer) StopPlayback() { v.slider.StopPlayback() }
func (v *Viewer) StepPlayback() { v.slider.Step() }

// Scene exposes the live scene for embedders that push incremental table
// updates; call it only from Enqueue'd functions or before RunGame.
func (v *Viewer) Scene() *Scene { return v.scene }

// StartAnimation kicks the scheduler, e.g. after external mutations.
func (v *Viewer) StartAnimation() { v.sched.Start() }

// StopAnimation halts the animation loop unconditionally.
func (v *Viewer) StopAnimation() { v.sched.Stop() }
