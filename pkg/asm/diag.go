package asm

import "fmt"

// Diagnostic is one soft error recorded during assembly: a syntax or
// semantic problem (bad register, unknown mnemonic, redefined label,
// ...) that does not stop the pass.
type Diagnostic struct {
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Err)
}

// Diagnostics accumulates soft errors across an assembly pass instead of
// stopping at the first one. Diagnostics does not itself implement the
// error interface; its Err method renders the final count as a single
// error so callers can treat "one or more diagnostics were recorded" as
// one terminal error.
type Diagnostics struct {
	items []Diagnostic
}

// Add records a diagnostic at the given line.
func (d *Diagnostics) Add(line int, err error) {
	d.items = append(d.items, Diagnostic{Line: line, Err: err})
}

// Count returns how many diagnostics have been recorded.
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// Items returns the recorded diagnostics in emission order.
func (d *Diagnostics) Items() []Diagnostic {
	return d.items
}

// Err returns nil if no diagnostics were recorded, else an error
// describing the count (and the first diagnostic, for convenience).
func (d *Diagnostics) Err() error {
	if len(d.items) == 0 {
		return nil
	}
	plural := ""
	if len(d.items) > 1 {
		plural = "s"
	}
	return fmt.Errorf("%d error%s (first: %s)", len(d.items), plural, d.items[0])
}
