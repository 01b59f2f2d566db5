package asm

import "fmt"

// Fixup records an unresolved label reference: the name to resolve, the
// output offset of the four zero bytes standing in for it, and the
// source line for diagnostics.
type Fixup struct {
	Name   string
	Offset int
	Line   int
}

// Labels is the label table: a map keyed by name to the offset it was
// defined at, plus the pending fixup list. Only the
// define/reference/resolve semantics matter to the output bytes; the
// table's internal shape does not.
type Labels struct {
	defined map[string]uint32
	fixups  []Fixup
}

// NewLabels returns an empty label table.
func NewLabels() *Labels {
	return &Labels{defined: make(map[string]uint32)}
}

// Define records name at offset. If name is already defined, the first
// definition wins and the caller should report a diagnostic — Define
// reports whether it was already defined so the caller can do so.
func (l *Labels) Define(name string, offset uint32) (alreadyDefined bool) {
	if _, ok := l.defined[name]; ok {
		return true
	}
	l.defined[name] = offset
	return false
}

// Reference records a pending fixup for name at the given output
// offset and source line.
func (l *Labels) Reference(name string, offset, line int) {
	l.fixups = append(l.fixups, Fixup{Name: name, Offset: offset, Line: line})
}

// Resolve walks the fixup list and overwrites each recorded offset in
// buf with the little-endian resolved address. Unresolved names are
// reported through diags and leave the corresponding four bytes as
// zero. Fixups are consumed (the list is left empty) whether or not
// they resolved.
func (l *Labels) Resolve(buf []byte, diags *Diagnostics) {
	for _, fx := range l.fixups {
		addr, ok := l.defined[fx.Name]
		if !ok {
			diags.Add(fx.Line, fmt.Errorf("no such label %q", fx.Name))
			continue
		}
		putU32(buf[fx.Offset:fx.Offset+4], addr)
	}
	l.fixups = nil
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
