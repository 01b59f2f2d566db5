// Package asm implements the mcim assembler: a line-oriented lexer, a
// two-pass label resolver, an instruction encoder driven by the opcode
// table shared with pkg/vm, and an .include preprocessor.
package asm

import (
	"fmt"
	"strconv"

	"github.com/ipc-labs/mcim/internal/format"
	"github.com/ipc-labs/mcim/pkg/vm"
)

const outputChunk = 8192 // initial/growth unit for the output buffer, cosmetic only in Go

// Assembler holds state for one assembly run: the output buffer, the
// label table, and the accumulated diagnostics.
type Assembler struct {
	buf    []byte
	labels *Labels
	diags  *Diagnostics
}

// Assemble reads path (following any .include directives it contains),
// encodes it into an object-file body, resolves labels, and returns the
// complete object file bytes (header + body) per internal/format. The
// returned Diagnostics lists every soft error encountered; if it is
// non-empty the caller should treat the run as failed even though the
// bytes are still returned for inspection.
func Assemble(path string) ([]byte, *Diagnostics, error) {
	diags := &Diagnostics{}
	tokens := collectTokens(path, diags)

	a := &Assembler{labels: NewLabels(), diags: diags}
	a.buf = make([]byte, 0, outputChunk)
	a.encode(tokens)
	a.labels.Resolve(a.buf, diags)

	if len(a.buf) > format.MemLim {
		diags.Add(0, fmt.Errorf("assembled image of %d bytes exceeds MEMLIM", len(a.buf)))
	}
	return format.Encode(a.buf), diags, nil
}

// encode is the instruction-encoding pass: a single walk over the
// flattened token stream, emitting bytes for each instruction and
// defining labels at the current output offset.
func (a *Assembler) encode(tokens []Token) {
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Kind {
		case KindLabel:
			if already := a.labels.Define(tok.Text, uint32(len(a.buf))); already {
				a.diags.Add(tok.Line, fmt.Errorf("redefining label %q", tok.Text))
			}
			i++
		case KindIdent:
			i = a.encodeInstruction(tokens, i)
		default:
			a.diags.Add(tok.Line, fmt.Errorf("expected instruction, got operand %q", tok.Text))
			i++
		}
	}
}

// encodeInstruction consumes the IDNT token at tokens[i] plus however
// many operand tokens its format string calls for, and returns the
// index of the next unconsumed token.
func (a *Assembler) encodeInstruction(tokens []Token, i int) int {
	tok := tokens[i]
	i++
	op, ok := vm.LookupMnemonic(tok.Text)
	if !ok {
		a.diags.Add(tok.Line, fmt.Errorf("invalid instruction %q", tok.Text))
		return i
	}
	a.putByte(byte(op))
	entry := vm.InstructionTable[op]
	for _, c := range entry.Format {
		switch c {
		case vm.FmtReg:
			i = a.encodeReg(tokens, i, tok.Line)
		case vm.FmtImm:
			i = a.encodeImm(tokens, i, tok.Line)
		}
	}
	return i
}

// encodeReg consumes one register operand token.
func (a *Assembler) encodeReg(tokens []Token, i int, instrLine int) int {
	if i >= len(tokens) {
		a.diags.Add(instrLine, fmt.Errorf("expected register"))
		return i
	}
	tok := tokens[i]
	if tok.Kind != KindReg {
		a.diags.Add(tok.Line, fmt.Errorf("expected register"))
		return i + 1
	}
	n, err := strconv.ParseUint(tok.Text, 16, 32)
	if err != nil {
		a.diags.Add(tok.Line, fmt.Errorf("bad register %q", tok.Text))
		return i + 1
	}
	if n >= vm.NumRegisters {
		a.diags.Add(tok.Line, fmt.Errorf("bad register %02x", n))
		return i + 1
	}
	a.putByte(byte(n))
	return i + 1
}

// encodeImm consumes one immediate operand token: either a literal
// $ADDR value or an IDNT naming a label (which becomes a fixup).
func (a *Assembler) encodeImm(tokens []Token, i int, instrLine int) int {
	if i >= len(tokens) {
		a.diags.Add(instrLine, fmt.Errorf("expected immediate"))
		return i
	}
	tok := tokens[i]
	switch tok.Kind {
	case KindAddr:
		n, err := strconv.ParseUint(tok.Text, 16, 32)
		if err != nil {
			a.diags.Add(tok.Line, fmt.Errorf("bad address %q", tok.Text))
			n = 0
		}
		a.putU32(uint32(n))
		return i + 1
	case KindIdent:
		a.labels.Reference(tok.Text, len(a.buf), tok.Line)
		a.putU32(0)
		return i + 1
	default:
		a.diags.Add(tok.Line, fmt.Errorf("expected immediate, got %q", tok.Text))
		return i + 1
	}
}

func (a *Assembler) putByte(b byte) {
	a.buf = append(a.buf, b)
}

func (a *Assembler) putU32(v uint32) {
	a.buf = append(a.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
