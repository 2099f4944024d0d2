package world

import "github.com/1siamBot/rts-engine/engine/command"

// Replay is a Controller that re-issues recorded commands on their ticks
type Replay struct {
	cmds []command.Command
	next int
}

func NewReplay(cmds []command.Command) *Replay {
	return &Replay{cmds: cmds}
}

func (r *Replay) Control(w *World) {
	now := w.CurrentTick()
	for r.next < len(r.cmds) && r.cmds[r.next].Tick <= now {
		c := r.cmds[r.next]
		r.next++
		if c.Tick < now {
			w.Logger().Printf("replay: dropping late command %v", c)
			continue
		}
		if err := w.Command(c); err != nil {
			w.Logger().Printf("replay: %v", err)
		}
	}
}

// Done reports whether every command has been issued
func (r *Replay) Done() bool { return r.next >= len(r.cmds) }
