package vm

// Opcode identifies one of the dense, position-sensitive instruction
// table entries shared by pkg/asm (encoder) and pkg/vm (decoder). The
// numeric value of each constant IS the byte the assembler emits and the
// byte the VM dispatches on — renumbering this table breaks the object
// format.
type Opcode byte

const (
	OpLW Opcode = iota
	OpLWU
	OpLB
	OpLI
	OpSW
	OpSWU
	OpSB
	OpSR
	OpADD
	OpADDI
	OpSUB
	OpMUL
	OpDIV
	OpBLE
	OpBGT
	OpBEQ
	OpBNE
	OpJ
	OpJR
	OpJAL
	OpSYS

	NumOpcodes
)

// Operand format codes used in InstructionTable.
const (
	FmtReg = 'r' // one-byte register index
	FmtImm = 'i' // four-byte little-endian immediate
)

// InstructionEntry describes one opcode: its mnemonic, its operand
// format string (one char per operand, in encoding order), and whether
// the VM actually implements it. Reserved entries occupy their index in
// the table (so the assembler still assigns them a byte) and decode
// normally, but have no execution semantics; executing one is a fatal
// error, not a no-op.
type InstructionEntry struct {
	Mnemonic    string
	Format      string
	Implemented bool
}

// InstructionTable is the single declaration shared by the assembler and
// the VM. Its index order must never change.
var InstructionTable = [NumOpcodes]InstructionEntry{
	OpLW:   {"lw", "ri", true},
	OpLWU:  {"lwu", "ri", false},
	OpLB:   {"lb", "ri", true},
	OpLI:   {"li", "ri", true},
	OpSW:   {"sw", "ri", true},
	OpSWU:  {"swu", "ri", false},
	OpSB:   {"sb", "ri", true},
	OpSR:   {"sr", "ri", false},
	OpADD:  {"add", "rrr", true},
	OpADDI: {"addi", "rir", true},
	OpSUB:  {"sub", "rrr", false},
	OpMUL:  {"mul", "rrr", false},
	OpDIV:  {"div", "rrr", false},
	OpBLE:  {"ble", "rri", true},
	OpBGT:  {"bgt", "rri", true},
	OpBEQ:  {"beq", "rri", true},
	OpBNE:  {"bne", "rri", true},
	OpJ:    {"j", "i", true},
	OpJR:   {"jr", "r", true},
	OpJAL:  {"jal", "i", true},
	OpSYS:  {"sys", "r", true},
}

// LookupMnemonic returns the opcode whose mnemonic matches s, and
// whether it was found.
func LookupMnemonic(s string) (Opcode, bool) {
	for i, e := range InstructionTable {
		if e.Mnemonic == s {
			return Opcode(i), true
		}
	}
	return 0, false
}

// Syscall numbers dispatched by the SYS instruction (r[0] convention;
// the assembler does not enforce which register holds the selector).
const (
	SYSE = 0 // exit
	SYSP = 1 // reserved
	SYSW = 2 // write one byte to tty
)
