package netviz

// Scheduler is the animation state machine. It owns the single recurring
// "timer": while Running, every viewer tick performs a physics step, link
// phase and package progress advances, and a redraw; when nothing moves
// anymore it transitions back to Idle on its own. Start is idempotent and
// Stop is unconditional, so there is never more than one live schedule.
type Scheduler struct {
	scene *Scene
	opts  *Options

	running     bool
	needsRedraw bool
}

func NewScheduler(scene *Scene, opts *Options) *Scheduler {
	return &Scheduler{scene: scene, opts: opts, needsRedraw: true}
}

func (sc *Scheduler) Running() bool { return sc.running }

// Start transitions to Running. Calling it while already Running is a
// no-op; there is no second timer to create. Forces are primed so the
// movement predicate sees the real layout state on the first tick.
func (sc *Scheduler) Start() {
	if sc.running {
		return
	}
	sc.scene.CalculateForces()
	sc.running = true
}

// Stop forces Idle regardless of pending motion.
func (sc *Scheduler) Stop() {
	sc.running = false
}

// RequestRedraw marks the scene dirty outside the animation loop, for
// event-driven changes like panning or selection.
func (sc *Scheduler) RequestRedraw() {
	sc.needsRedraw = true
}

// ConsumeRedraw reports whether a redraw is due and clears the flag.
func (sc *Scheduler) ConsumeRedraw() bool {
	if sc.needsRedraw || sc.running {
		sc.needsRedraw = false
		return true
	}
	return false
}

// anythingMoving re-evaluates the Running condition: nodes in motion,
// animated link styles, or unfinished auto-progress packages.
func (sc *Scheduler) anythingMoving() bool {
	if sc.scene.IsMoving() {
		return true
	}
	for _, l := range sc.scene.Links {
		if l.Animated() {
			return true
		}
	}
	for _, p := range sc.scene.Packages {
		if p.AutoProgress && !p.Finished() {
			return true
		}
	}
	return false
}

// Tick advances one animation period. It is a no-op while Idle.
func (sc *Scheduler) Tick() {
	if !sc.running {
		return
	}

	if sc.scene.IsMoving() {
		sc.scene.CalculateForces()
		sc.scene.DiscreteStep()
	}

	for _, l := range sc.scene.Links {
		if l.Animated() {
			l.AdvancePhases(sc.opts.LinkAnimationSpeed)
		}
	}

	if len(sc.scene.Packages) > 0 {
		live := sc.scene.Packages[:0]
		for _, p := range sc.scene.Packages {
			p.Advance(sc.opts.Physics.Interval)
			if !p.Finished() {
				live = append(live, p)
			}
		}
		sc.scene.Packages = live
	}

	sc.needsRedraw = true
	if !sc.anythingMoving() {
		sc.running = false
	}
}
