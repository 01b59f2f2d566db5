// Package supervisor exposes the non-UI primitives a host front end
// drives: loading an image as a new process, toggling a process's BRK flag,
// restarting a process, running one scheduler tick, and reading back a
// snapshot of process state or the tty buffer. None of this package
// touches a terminal; it is the API a TUI — or a test, or a script —
// calls into.
package supervisor

import (
	"errors"
	"fmt"
	"io"

	"github.com/ipc-labs/mcim/internal/format"
	"github.com/ipc-labs/mcim/pkg/vm"
)

// MaxProcesses bounds the process table. LoadImage returns
// ErrProcessTableFull past this point; slots are never reclaimed during
// a run.
const MaxProcesses = 4096

// ErrProcessTableFull is returned by LoadImage once MaxProcesses
// processes have been loaded.
var ErrProcessTableFull = errors.New("supervisor: process table full")

// ErrNoSuchProcess is returned by operations indexing a process outside
// [0, len(Procs)).
var ErrNoSuchProcess = errors.New("supervisor: no such process")

// Supervisor owns the shared arena, tty, and process table and is the
// only thing in this module a host front end needs to hold onto.
type Supervisor struct {
	Machine vm.Machine
}

// New returns an empty supervisor: no processes loaded, a zero-length
// arena, an empty tty.
func New() *Supervisor {
	return &Supervisor{}
}

// LoadImage parses one object file from r (internal/format's 4-byte
// length header plus body), appends its body to the shared arena, and
// appends a new Process whose epc and pc are the offset the body was
// appended at. It returns the new process's index.
func (s *Supervisor) LoadImage(r io.Reader) (int, error) {
	if len(s.Machine.Procs) >= MaxProcesses {
		return 0, ErrProcessTableFull
	}
	body, err := format.Read(r)
	if err != nil {
		return 0, fmt.Errorf("supervisor: loading image: %w", err)
	}
	off := s.Machine.Arena.Append(body)
	p := &vm.Process{EPC: uint32(off), PC: uint32(off)}
	s.Machine.Procs = append(s.Machine.Procs, p)
	return len(s.Machine.Procs) - 1, nil
}

// ToggleBreak flips process i's BRK flag: set it to pause the process,
// flip again to resume.
func (s *Supervisor) ToggleBreak(i int) error {
	p, err := s.proc(i)
	if err != nil {
		return err
	}
	p.Stat ^= vm.StatBrk
	return nil
}

// Restart zeroes process i's registers, resets pc to epc, and clears
// its status flags. epc itself is untouched.
func (s *Supervisor) Restart(i int) error {
	p, err := s.proc(i)
	if err != nil {
		return err
	}
	p.Restart()
	return nil
}

// Tick runs exactly one scheduler pass over every loaded process, in
// insertion order.
func (s *Supervisor) Tick() error {
	return s.Machine.Tick()
}

// TTY returns the live contents of the tty ring buffer.
func (s *Supervisor) TTY() []byte {
	return s.Machine.TTY.Bytes()
}

// Memory returns the live arena contents, the read surface behind a
// front end's memory view. Callers must not retain the slice across a
// Tick — a store instruction may grow the arena and reallocate it.
func (s *Supervisor) Memory() []byte {
	return s.Machine.Arena.Bytes()
}

// NumProcs returns how many processes are loaded.
func (s *Supervisor) NumProcs() int {
	return len(s.Machine.Procs)
}

// ProcessView is a read-only snapshot of one process's state, the
// information a front end's process display renders.
type ProcessView struct {
	Index int
	EPC   uint32
	PC    uint32
	R     [vm.NumRegisters]uint32
	Stat  uint32
}

// Snapshot returns a read-only copy of every loaded process's state.
// Formatting it for display is a front end's job, not this package's.
func (s *Supervisor) Snapshot() []ProcessView {
	views := make([]ProcessView, len(s.Machine.Procs))
	for i, p := range s.Machine.Procs {
		views[i] = ProcessView{Index: i, EPC: p.EPC, PC: p.PC, R: p.R, Stat: p.Stat}
	}
	return views
}

func (s *Supervisor) proc(i int) (*vm.Process, error) {
	if i < 0 || i >= len(s.Machine.Procs) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchProcess, i)
	}
	return s.Machine.Procs[i], nil
}
