// Package format implements the object-file header that is the wire
// contract between pkg/asm and pkg/vm: a 4-byte little-endian length
// prefix followed by the opcode-stream body.
package format

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MemLim is the maximum body size accepted at load time (MEMLIM).
const MemLim = 0x000FF000

// HeaderSize is the size in bytes of the length prefix.
const HeaderSize = 4

// ErrTooLarge indicates that an image body exceeds MemLim.
var ErrTooLarge = errors.New("format: image exceeds MEMLIM")

// ErrTruncated indicates that fewer bytes were available than the
// header declared.
var ErrTruncated = errors.New("format: truncated image")

// Encode renders body as a complete object file: the 4-byte little-endian
// length of body followed by body itself.
func Encode(body []byte) []byte {
	out := make([]byte, HeaderSize+len(body))
	binary.LittleEndian.PutUint32(out, uint32(len(body)))
	copy(out[HeaderSize:], body)
	return out
}

// Read parses one object file from r: a 4-byte little-endian length N
// followed by N bytes of body. It returns an error if N exceeds MemLim
// or fewer than N body bytes are available.
func Read(r io.Reader) ([]byte, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("format: reading header: %w", err)
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	if n > MemLim {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, n, MemLim)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTruncated, err)
	}
	return body, nil
}
