package sprites

// Animation walks through the frames of one sequence over a fixed number of
// ticks. It only counts; looking up the image for the current frame is a
// separate, pure step.
type Animation struct {
	seq    Sequence
	frames int
	length int
	loop   bool
	tick   int
}

// NewAnimation spreads frames evenly over length ticks. A non-looping
// animation is finished once length ticks have elapsed.
func NewAnimation(seq Sequence, frames, length int, loop bool) Animation {
	if frames < 1 {
		frames = 1
	}
	if length < 1 {
		length = 1
	}
	return Animation{seq: seq, frames: frames, length: length, loop: loop}
}

// Advance moves the animation on by one tick
func (a *Animation) Advance() {
	if a.Finished() {
		return
	}
	a.tick++
	if a.loop && a.tick >= a.length {
		a.tick = 0
	}
}

// Finished reports whether a non-looping animation has played out
func (a *Animation) Finished() bool {
	return !a.loop && a.tick >= a.length
}

// Index is the frame to show for the current tick
func (a *Animation) Index() int {
	i := a.tick * a.frames / a.length
	if i >= a.frames {
		i = a.frames - 1
	}
	return i
}

func (a *Animation) Sequence() Sequence { return a.seq }
func (a *Animation) Tick() int          { return a.tick }
func (a *Animation) Length() int        { return a.length }
