package vm

// Status flags for Process.Stat.
const (
	StatExit = 1 << 1 // terminal: process never executes again
	StatBrk  = 1 << 2 // paused by inspector; reversible
)

// NumRegisters is the number of general-purpose registers per process.
const NumRegisters = 16

// LinkReg is the register written by jal and read by the caller's jr.
const LinkReg = 3

// BaseReg is the data-segment base implicitly added to every load/store
// address.
const BaseReg = 8

// Process is one loaded program's execution state. Its registers, PC
// and flags are private to the process; the arena it executes against
// is shared with every other Process in the same Supervisor.
type Process struct {
	EPC  uint32 // entry point: arena offset where this image begins
	PC   uint32 // absolute offset of the next instruction to decode
	R    [NumRegisters]uint32
	Stat uint32
}

// Runnable reports whether the scheduler may dispatch this process:
// neither EXIT nor BRK is set.
func (p *Process) Runnable() bool {
	return p.Stat&(StatExit|StatBrk) == 0
}

// Restart zeroes the registers, resets pc to epc, and clears stat
// (including BRK). epc itself is untouched; only r, pc, and stat reset.
func (p *Process) Restart() {
	p.R = [NumRegisters]uint32{}
	p.PC = p.EPC
	p.Stat = 0
}
