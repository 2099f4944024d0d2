package command

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// ErrBadHeader means a file is not a replay this version can read
var ErrBadHeader = errors.New("command: bad replay header")

var magic = []byte("RTSR")

const version = 1

// Recorder appends commands to a replay file as they are issued
type Recorder struct {
	matchID  uuid.UUID
	commands []Command
	file     *os.File
	writer   *bufio.Writer
}

// NewRecorder creates a replay file for the given match
func NewRecorder(path string, matchID uuid.UUID) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("command: create replay: %w", err)
	}
	r := &Recorder{matchID: matchID, file: f, writer: bufio.NewWriter(f)}
	if err := writeHeader(r.writer, matchID); err != nil {
		f.Close()
		return nil, fmt.Errorf("command: write replay header: %w", err)
	}
	return r, nil
}

func writeHeader(w io.Writer, matchID uuid.UUID) error {
	var hdr bytes.Buffer
	hdr.Write(magic)
	hdr.WriteByte(version)
	hdr.Write(matchID[:])
	_, err := w.Write(hdr.Bytes())
	return err
}

// Record writes a command to the replay file
func (r *Recorder) Record(cmd Command) error {
	r.commands = append(r.commands, cmd)
	return cmd.Encode(r.writer)
}

// Commands returns everything recorded so far
func (r *Recorder) Commands() []Command { return r.commands }

func (r *Recorder) MatchID() uuid.UUID { return r.matchID }

// Close flushes and closes the replay file
func (r *Recorder) Close() error {
	if r.writer != nil {
		if err := r.writer.Flush(); err != nil {
			r.file.Close()
			return err
		}
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Load reads a replay file
func Load(path string) (uuid.UUID, []Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("command: open replay: %w", err)
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// Read decodes a replay stream: header, then commands until EOF
func Read(r io.Reader) (uuid.UUID, []Command, error) {
	hdr := make([]byte, len(magic)+1+16)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if !bytes.Equal(hdr[:len(magic)], magic) || hdr[len(magic)] != version {
		return uuid.Nil, nil, ErrBadHeader
	}
	id, err := uuid.FromBytes(hdr[len(magic)+1:])
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	var cmds []Command
	for {
		var c Command
		err := c.Decode(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return id, cmds, fmt.Errorf("command: replay entry %d: %w", len(cmds), err)
		}
		cmds = append(cmds, c)
	}
	return id, cmds, nil
}

// ForTick returns the commands issued on the given tick, in recorded order
func ForTick(cmds []Command, tick uint64) []Command {
	var out []Command
	for _, c := range cmds {
		if c.Tick == tick {
			out = append(out, c)
		}
	}
	return out
}
