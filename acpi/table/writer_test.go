package table

import (
	"errors"
	"testing"

	"acpigen/acpi/acpierr"

	"github.com/google/go-cmp/cmp"
)

func TestFieldWriter(t *testing.T) {
	buf := make([]byte, 20)
	w := NewFieldWriter(buf)
	w.U8(0x01)
	w.U16(0x0302)
	w.U32(0x07060504)
	w.U64(0x0f0e0d0c0b0a0908)
	w.Bytes([]byte{0x10, 0x11})
	w.Zero(3)

	if err := w.Err(); err != nil {
		t.Fatal(err)
	}

	if got := w.Offset(); got != len(buf) {
		t.Fatalf("expected offset %d; got %d", len(buf), got)
	}

	exp := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x10, 0x11,
		0, 0, 0,
	}
	if diff := cmp.Diff(exp, buf); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldWriterBufferTooSmall(t *testing.T) {
	buf := make([]byte, 5)
	w := NewFieldWriter(buf)
	w.U32(0xaabbccdd)
	w.U16(0x1122)

	if err := w.Err(); !errors.Is(err, acpierr.ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall; got %v", err)
	}

	// Writes after the first failure are ignored even if they would fit.
	w.U8(0x33)
	if got := w.Offset(); got != 4 {
		t.Fatalf("expected offset to remain at 4; got %d", got)
	}

	if buf[4] != 0 {
		t.Fatalf("expected trailing byte to be untouched; got 0x%x", buf[4])
	}
}
