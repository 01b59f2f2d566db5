package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeRead(t *testing.T) {
	body := []byte{0x03, 0xaa, 0xbb, 0xcc, 0xdd}
	out := Encode(body)
	if len(out) != HeaderSize+len(body) {
		t.Fatalf("unexpected length: %d", len(out))
	}
	got, err := Read(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("got %x want %x", got, body)
	}
}

func TestReadTruncated(t *testing.T) {
	out := Encode([]byte{1, 2, 3, 4})
	_, err := Read(bytes.NewReader(out[:len(out)-2]))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadTooLarge(t *testing.T) {
	var hdr [4]byte
	hdr[0], hdr[1], hdr[2], hdr[3] = 0x01, 0x00, 0x10, 0x00 // 0x00100001 > MemLim
	_, err := Read(bytes.NewReader(hdr[:]))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
