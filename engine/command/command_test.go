package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/1siamBot/rts-engine/engine/core"
)

var sample = []Command{
	{Tick: 0, Kind: Move, Unit: core.Handle{Index: 0, Gen: 1}, X: 4.5, Y: -2},
	{Tick: 3, Kind: Attack, Unit: core.Handle{Index: 1, Gen: 1}, Target: core.Handle{Index: 2, Gen: 3}},
	{Tick: 3, Kind: Stop, Unit: core.Handle{Index: 0, Gen: 1}},
	{Tick: 9, Kind: PickUp, Unit: core.Handle{Index: 4, Gen: 2}, Target: core.Handle{Index: 0, Gen: 1}},
}

func TestRecorder_LoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.replay")
	id := uuid.New()
	rec, err := NewRecorder(path, id)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	for _, c := range sample {
		if err := rec.Record(c); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	gotID, cmds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotID != id {
		t.Fatalf("match id = %v, want %v", gotID, id)
	}
	if len(cmds) != len(sample) {
		t.Fatalf("loaded %d commands, want %d", len(cmds), len(sample))
	}
	for i := range sample {
		if cmds[i] != sample[i] {
			t.Fatalf("command %d = %v, want %v", i, cmds[i], sample[i])
		}
	}
	if n := len(ForTick(cmds, 3)); n != 2 {
		t.Fatalf("ForTick(3) = %d commands", n)
	}
}

func TestRead_BadHeader(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("NOPE and then some more bytes")))
	if !errors.Is(err, ErrBadHeader) {
		t.Fatalf("err = %v, want ErrBadHeader", err)
	}
	_, _, err = Read(bytes.NewReader([]byte("RT")))
	if !errors.Is(err, ErrBadHeader) {
		t.Fatalf("short header: err = %v", err)
	}
}

func TestRead_TruncatedEntry(t *testing.T) {
	var buf bytes.Buffer
	if err := writeHeader(&buf, uuid.New()); err != nil {
		t.Fatal(err)
	}
	c := sample[0]
	if err := c.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	buf.Write([]byte{1, 2, 3})
	_, cmds, err := Read(&buf)
	if err == nil || len(cmds) != 1 {
		t.Fatalf("expected one command then an error, got %d, %v", len(cmds), err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nothing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}
