package vm

// SCHCNT is the maximum number of instructions a process runs per
// scheduler tick (the quantum).
const SCHCNT = 300

// Machine ties the shared arena, tty, and process table together and
// runs a cooperative round-robin scheduler: one bounded quantum per
// process per tick, in insertion order.
//
// There is no locking anywhere in this package: the design explicitly
// rejects a concurrency contract that would require it. Callers must
// not run Tick concurrently with anything else that touches the same
// Machine.
type Machine struct {
	Arena Arena
	TTY   TTY
	Procs []*Process
}

// Tick runs exactly one scheduler pass: for each process, in insertion
// order, decode-and-execute up to SCHCNT instructions, stopping early if
// the process sets EXIT or BRK. A fatal error (reserved opcode, illegal
// syscall) aborts the whole tick and is returned to the caller, which
// terminates the supervisor: the VM has no recoverable error channel
// at runtime.
func (m *Machine) Tick() error {
	for _, p := range m.Procs {
		n := SCHCNT
		for n > 0 && p.Runnable() {
			n--
			if err := p.Step(&m.Arena, &m.TTY); err != nil {
				return err
			}
		}
	}
	return nil
}
