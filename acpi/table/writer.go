package table

import (
	"encoding/binary"

	"acpigen/acpi/acpierr"
)

// FieldWriter serializes little-endian fields into a fixed-size buffer. It is
// used by producers of fixed-layout tables to fill their structures.
//
// The first write that does not fit records an ErrBufferTooSmall error;
// subsequent writes become no-ops so callers only need to check Err once.
type FieldWriter struct {
	buf    []byte
	offset int
	err    error
}

// NewFieldWriter returns a writer that fills buf starting at offset 0.
func NewFieldWriter(buf []byte) *FieldWriter {
	return &FieldWriter{buf: buf}
}

// Offset returns the current write offset.
func (w *FieldWriter) Offset() int { return w.offset }

// Err returns the first error encountered by the writer.
func (w *FieldWriter) Err() error { return w.err }

// U8 writes a single byte.
func (w *FieldWriter) U8(v uint8) {
	if b := w.next(1); b != nil {
		b[0] = v
	}
}

// U16 writes a little-endian word.
func (w *FieldWriter) U16(v uint16) {
	if b := w.next(2); b != nil {
		binary.LittleEndian.PutUint16(b, v)
	}
}

// U32 writes a little-endian dword.
func (w *FieldWriter) U32(v uint32) {
	if b := w.next(4); b != nil {
		binary.LittleEndian.PutUint32(b, v)
	}
}

// U64 writes a little-endian qword.
func (w *FieldWriter) U64(v uint64) {
	if b := w.next(8); b != nil {
		binary.LittleEndian.PutUint64(b, v)
	}
}

// Bytes copies data verbatim.
func (w *FieldWriter) Bytes(data []byte) {
	if b := w.next(len(data)); b != nil {
		copy(b, data)
	}
}

// Zero writes count reserved zero bytes.
func (w *FieldWriter) Zero(count int) {
	if b := w.next(count); b != nil {
		for i := range b {
			b[i] = 0
		}
	}
}

func (w *FieldWriter) next(n int) []byte {
	if w.err != nil {
		return nil
	}

	if n < 0 || len(w.buf)-w.offset < n {
		w.err = acpierr.New("acpi_table", acpierr.KindBufferTooSmall,
			"writing %d bytes at offset %d overflows %d byte buffer", n, w.offset, len(w.buf))
		return nil
	}

	b := w.buf[w.offset : w.offset+n]
	w.offset += n
	return b
}
