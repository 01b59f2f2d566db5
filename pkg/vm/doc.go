// Package vm implements the mcim virtual machine: a shared byte-addressed
// arena, a 16-register process record, a variable-length instruction
// decoder, per-opcode semantics, and a cooperative round-robin scheduler
// across however many processes have been loaded into it.
//
// Every process shares one Arena (one flat address space). There is no
// memory protection between processes: jr can jump to any arena offset,
// and a store from one process is visible to every other process's
// loads. Do not add per-process address spaces — jr and cross-process
// memory observation depend on the flat space.
//
// Instruction format
//
// Each instruction is variable-length: one opcode byte followed by a
// typed operand stream dictated by the opcode's format string (see
// InstructionTable in opcodes.go). There are two operand kinds: a
// one-byte register index ('r') and a four-byte little-endian immediate
// ('i'). The table is dense and position-sensitive — an opcode's value
// IS its index in InstructionTable — and pkg/asm imports this exact
// table rather than keeping its own copy, so the two halves of the
// object-file contract can never drift apart.
//
// Reserved opcodes (lwu, swu, sr, sub, mul, div) occupy their slot in
// the table but have no case in exec.go's switch; Process.Step returns
// ErrReserved if one is executed.
package vm
