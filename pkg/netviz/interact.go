package netviz

import (
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// gestureMode tracks the single active pointer gesture.
type gestureMode int

const (
	gestureNone gestureMode = iota
	gestureDrag
	gesturePan
	gestureRubberBand
	gestureSlider
)

// Controller translates pointer input into scene mutations: node dragging,
// selection, rubber-band selection, panning, zooming, slider scrubbing and
// hover tooltips. The gesture methods are pure with respect to the input
// backend; PollInput feeds them from ebiten each tick.
type Controller struct {
	scene     *Scene
	transform *Transform
	sched     *Scheduler
	slider    *Slider
	popup     *Popup
	opts      *Options

	mode gestureMode

	dragNode   *Node
	origXFixed bool
	origYFixed bool
	grabDX     float64
	grabDY     float64

	pressX, pressY float64
	lastX, lastY   float64
	moved          bool

	// Rubber-band rectangle corners in screen space.
	bandX1, bandY1 float64
	bandX2, bandY2 float64

	// Hover state.
	hoverX, hoverY float64
	idleTicks      int

	// OnSelectionChange fires whenever the selection set changes.
	OnSelectionChange func()
}

func NewController(scene *Scene, tr *Transform, sched *Scheduler, slider *Slider, popup *Popup, opts *Options) *Controller {
	return &Controller{
		scene:     scene,
		transform: tr,
		sched:     sched,
		slider:    slider,
		popup:     popup,
		opts:      opts,
	}
}

// RubberBand returns the active selection rectangle in screen space.
func (c *Controller) RubberBand() (x, y, w, h float64, active bool) {
	if c.mode != gestureRubberBand {
		return 0, 0, 0, 0, false
	}
	x = math.Min(c.bandX1, c.bandX2)
	y = math.Min(c.bandY1, c.bandY2)
	w = math.Abs(c.bandX2 - c.bandX1)
	h = math.Abs(c.bandY2 - c.bandY1)
	return x, y, w, h, true
}

// PollInput reads the ebiten input state for this tick.
func (c *Controller) PollInput() {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	additive := ebiten.IsKeyPressed(ebiten.KeyShift) ||
		ebiten.IsKeyPressed(ebiten.KeyControl) ||
		ebiten.IsKeyPressed(ebiten.KeyMeta)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.Press(fx, fy, additive)
	}
	if c.mode != gestureNone {
		c.Move(fx, fy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		c.Release(fx, fy, additive)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		c.Wheel(fx, fy, dy)
	}
	if c.mode == gestureNone {
		c.HoverTick(fx, fy)
	}
}

// Press begins a gesture at the given screen position.
func (c *Controller) Press(x, y float64, additive bool) {
	c.pressX, c.pressY = x, y
	c.lastX, c.lastY = x, y
	c.moved = false
	c.popup.Hide()

	if c.slider != nil && c.slider.Enabled() && c.sliderHit(y) {
		c.mode = gestureSlider
		c.slider.SetFraction(c.sliderFraction(x))
		c.sched.RequestRedraw()
		return
	}

	cx, cy := c.transform.ScreenToCanvas(x, y)
	if n := c.hitNode(cx, cy); n != nil {
		c.mode = gestureDrag
		c.dragNode = n
		c.origXFixed = n.XFixed
		c.origYFixed = n.YFixed
		// Pin for the duration of the drag so the simulation does not
		// fight the pointer.
		n.XFixed = true
		n.YFixed = true
		n.VX = 0
		n.VY = 0
		c.grabDX = n.X - cx
		c.grabDY = n.Y - cy
		if c.opts.Selectable && c.scene.selectNode(n, additive) {
			c.fireSelect()
		}
		c.sched.RequestRedraw()
		return
	}

	if additive {
		c.mode = gestureRubberBand
		c.bandX1, c.bandY1 = x, y
		c.bandX2, c.bandY2 = x, y
		return
	}

	c.mode = gesturePan
}

// Move continues the active gesture at the new pointer position.
func (c *Controller) Move(x, y float64) {
	if math.Abs(x-c.pressX) > 2 || math.Abs(y-c.pressY) > 2 {
		c.moved = true
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y

	switch c.mode {
	case gestureDrag:
		cx, cy := c.transform.ScreenToCanvas(x, y)
		if !c.origXFixed {
			c.dragNode.X = cx + c.grabDX
		}
		if !c.origYFixed {
			c.dragNode.Y = cy + c.grabDY
		}
		c.sched.Start()
		c.sched.RequestRedraw()
	case gestureRubberBand:
		c.bandX2, c.bandY2 = x, y
		c.sched.RequestRedraw()
	case gesturePan:
		// Panning redraws immediately; it is not gated by the scheduler.
		c.transform.Pan(dx, dy)
		c.sched.RequestRedraw()
	case gestureSlider:
		c.slider.SetFraction(c.sliderFraction(x))
		c.sched.RequestRedraw()
	}
}

// Release ends the active gesture.
func (c *Controller) Release(x, y float64, additive bool) {
	switch c.mode {
	case gestureDrag:
		// A transient drag must not permanently pin a free node.
		c.dragNode.XFixed = c.origXFixed
		c.dragNode.YFixed = c.origYFixed
		c.dragNode = nil
		c.sched.Start()
	case gestureRubberBand:
		c.selectRubberBand(additive)
	case gesturePan:
		if !c.moved && c.opts.Selectable {
			// A plain click on empty space clears the selection.
			if c.scene.ClearSelection() {
				c.fireSelect()
				c.sched.RequestRedraw()
			}
		}
	}
	c.mode = gestureNone
}

// Wheel zooms multiplicatively around the cursor.
func (c *Controller) Wheel(x, y, delta float64) {
	factor := math.Pow(1.1, delta)
	c.transform.ZoomAt(factor, x, y)
	c.sched.RequestRedraw()
}

// HoverTick runs on idle pointer movement: after the debounce delay it
// hit-tests packages, then nodes, then links for a title to show.
func (c *Controller) HoverTick(x, y float64) {
	if x != c.hoverX || y != c.hoverY {
		c.hoverX, c.hoverY = x, y
		c.idleTicks = 0
		if c.popup.Visible && !c.overlapsTarget(x, y) {
			c.popup.Hide()
			c.sched.RequestRedraw()
		}
		return
	}
	if c.popup.Visible {
		return
	}
	c.idleTicks++
	if c.idleTicks < c.hoverDelayTicks() {
		return
	}
	cx, cy := c.transform.ScreenToCanvas(x, y)
	if target, title := c.hitTitled(cx, cy); target != nil {
		c.popup.Show(target, title, x, y)
		c.sched.RequestRedraw()
	}
}

func (c *Controller) hoverDelayTicks() int {
	ticks := int(c.opts.HoverDelay / c.opts.Physics.Interval)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// hitNode returns the topmost node under the canvas point. Nodes later in
// the collection draw on top, so scan back to front.
func (c *Controller) hitNode(cx, cy float64) *Node {
	for i := len(c.scene.Nodes) - 1; i >= 0; i-- {
		if c.scene.Nodes[i].Contains(cx, cy) {
			return c.scene.Nodes[i]
		}
	}
	return nil
}

// hitTitled finds the first entity with a non-empty title under the point,
// in priority order packages, nodes, links.
func (c *Controller) hitTitled(cx, cy float64) (any, string) {
	for i := len(c.scene.Packages) - 1; i >= 0; i-- {
		p := c.scene.Packages[i]
		if strings.TrimSpace(p.Title) != "" && p.Contains(cx, cy) {
			return p, p.Title
		}
	}
	for i := len(c.scene.Nodes) - 1; i >= 0; i-- {
		n := c.scene.Nodes[i]
		if strings.TrimSpace(n.Title) != "" && n.Contains(cx, cy) {
			return n, n.Title
		}
	}
	threshold := c.opts.LinkHitThreshold / c.transform.Scale
	for i := len(c.scene.Links) - 1; i >= 0; i-- {
		l := c.scene.Links[i]
		if strings.TrimSpace(l.Title) != "" && l.DistanceTo(cx, cy) <= threshold {
			return l, l.Title
		}
	}
	return nil, ""
}

func (c *Controller) overlapsTarget(x, y float64) bool {
	cx, cy := c.transform.ScreenToCanvas(x, y)
	switch t := c.popup.Target().(type) {
	case *Package:
		return t.Contains(cx, cy)
	case *Node:
		return t.Contains(cx, cy)
	case *Link:
		return t.DistanceTo(cx, cy) <= c.opts.LinkHitThreshold/c.transform.Scale
	default:
		return false
	}
}

// selectRubberBand selects every node overlapping the final rectangle.
func (c *Controller) selectRubberBand(additive bool) {
	if !c.opts.Selectable {
		return
	}
	x1, y1 := c.transform.ScreenToCanvas(math.Min(c.bandX1, c.bandX2), math.Min(c.bandY1, c.bandY2))
	x2, y2 := c.transform.ScreenToCanvas(math.Max(c.bandX1, c.bandX2), math.Max(c.bandY1, c.bandY2))

	changed := false
	if !additive {
		for _, n := range c.scene.Nodes {
			if n.Selected {
				n.Selected = false
				changed = true
			}
		}
	}
	for _, n := range c.scene.Nodes {
		left, top, w, h := n.Bounds()
		if left <= x2 && left+w >= x1 && top <= y2 && top+h >= y1 && !n.Selected {
			n.Selected = true
			changed = true
		}
	}
	if changed {
		c.fireSelect()
		c.sched.RequestRedraw()
	}
}

func (c *Controller) sliderHit(y float64) bool {
	trackY := float64(c.opts.Height) - 16
	return math.Abs(y-trackY) <= 10
}

func (c *Controller) sliderFraction(x float64) float64 {
	margin := 20.0
	trackW := float64(c.opts.Width) - 2*margin
	return (x - margin) / trackW
}

func (c *Controller) fireSelect() {
	if c.OnSelectionChange != nil {
		c.OnSelectionChange()
	}
}
