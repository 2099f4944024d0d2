package command

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/1siamBot/rts-engine/engine/core"
)

// Kind identifies a command
type Kind uint8

const (
	Move Kind = iota
	Attack
	PickUp
	Stop
	kindCount
)

var kindNames = [kindCount]string{"move", "attack", "pick_up", "stop"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Command sets a unit's target. Commands are the only external input to a
// running simulation, so recording them is enough to replay a match.
type Command struct {
	Tick   uint64
	Kind   Kind
	Unit   core.Handle
	X, Y   float64     // Move destination
	Target core.Handle // Attack unit or PickUp item
}

func (c Command) String() string {
	switch c.Kind {
	case Move:
		return fmt.Sprintf("@%d %v move (%.2f,%.2f)", c.Tick, c.Unit, c.X, c.Y)
	case Attack, PickUp:
		return fmt.Sprintf("@%d %v %s %v", c.Tick, c.Unit, c.Kind, c.Target)
	}
	return fmt.Sprintf("@%d %v %s", c.Tick, c.Unit, c.Kind)
}

// Encode writes a command in little-endian binary
func (c *Command) Encode(w io.Writer) error {
	fields := []any{
		c.Tick, c.Kind,
		c.Unit.Index, c.Unit.Gen,
		c.X, c.Y,
		c.Target.Index, c.Target.Gen,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a command written by Encode. A clean end of input before the
// first field returns io.EOF.
func (c *Command) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	fields := []any{
		&c.Kind,
		&c.Unit.Index, &c.Unit.Gen,
		&c.X, &c.Y,
		&c.Target.Index, &c.Target.Gen,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
	}
	if c.Kind >= kindCount {
		return fmt.Errorf("command: unknown kind %d", uint8(c.Kind))
	}
	return nil
}
