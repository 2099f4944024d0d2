package world

import "time"

// LoopState says whether the loop advances the world
type LoopState uint8

const (
	LoopPaused LoopState = iota
	LoopPlaying
)

// Controller issues commands before each tick, such as an AI player or a
// replay feed.
type Controller interface {
	Control(w *World)
}

// Loop runs the world at a fixed tick rate independent of the caller's frame
// rate, so the simulation stays deterministic.
type Loop struct {
	World       *World
	Controllers []Controller
	State       LoopState

	accumulator int64 // ms
	lastTime    time.Time
	now         func() time.Time
}

// NewLoop creates a paused loop
func NewLoop(w *World, cs ...Controller) *Loop {
	return &Loop{
		World:       w,
		Controllers: cs,
		now:         time.Now,
		lastTime:    time.Now(),
	}
}

// Update should be called every render frame. It runs as many ticks as the
// wall time since the last call allows and returns the interpolation alpha
// for smooth rendering.
func (l *Loop) Update() float64 {
	now := l.now()
	frame := now.Sub(l.lastTime).Milliseconds()
	l.lastTime = now
	l.Advance(frame)
	return l.Alpha()
}

// Advance feeds frameMillis of time into the loop and returns how many ticks
// ran. Frame time is capped to avoid a spiral of death.
func (l *Loop) Advance(frameMillis int64) int {
	cfg := l.World.Config()
	if frameMillis > cfg.MaxFrameMillis {
		frameMillis = cfg.MaxFrameMillis
	}
	if l.State != LoopPlaying {
		return 0
	}
	l.accumulator += frameMillis

	ticks := 0
	for l.accumulator >= cfg.TickDelay {
		l.Step()
		l.accumulator -= cfg.TickDelay
		ticks++
	}
	return ticks
}

// Step runs the controllers and a single tick
func (l *Loop) Step() {
	for _, c := range l.Controllers {
		c.Control(l.World)
	}
	l.World.Tick(l.World.Config().TickDelay)
}

// Alpha is how far the accumulator is into the next tick
func (l *Loop) Alpha() float64 {
	return float64(l.accumulator) / float64(l.World.Config().TickDelay)
}

// Play starts or resumes the loop
func (l *Loop) Play() {
	l.State = LoopPlaying
	l.lastTime = l.now()
}

// Pause stops the loop from ticking
func (l *Loop) Pause() {
	l.State = LoopPaused
}

// CurrentTick returns the current simulation tick
func (l *Loop) CurrentTick() uint64 {
	return l.World.CurrentTick()
}
