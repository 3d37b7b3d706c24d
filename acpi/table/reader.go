package table

import (
	"encoding/binary"

	"acpigen/acpi/acpierr"
)

var (
	errChecksumMismatch = &acpierr.Error{Module: "acpi_table", Kind: acpierr.KindInvalidArgument, Message: "detected checksum mismatch while parsing ACPI table header"}
)

// headerReader reads little-endian fields from a byte slice. Like
// FieldWriter, the first read past the end records an ErrBufferTooSmall error
// and every later read returns zero values, so callers only need to check Err
// once.
type headerReader struct {
	offset int
	data   []byte
	err    error
}

// EOF returns true if the end of the stream has been reached.
func (r *headerReader) EOF() bool {
	return r.offset == len(r.data)
}

// Err returns the first error encountered by the reader.
func (r *headerReader) Err() error { return r.err }

// next returns the following n bytes or nil if they are not available.
func (r *headerReader) next(n int) []byte {
	if r.err != nil {
		return nil
	}

	if len(r.data)-r.offset < n {
		r.err = acpierr.New("acpi_table", acpierr.KindBufferTooSmall, "read of %d bytes at offset %d overruns %d-byte buffer", n, r.offset, len(r.data))
		return nil
	}

	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b
}

// Bytes copies len(dst) bytes from the stream into dst.
func (r *headerReader) Bytes(dst []byte) {
	if b := r.next(len(dst)); b != nil {
		copy(dst, b)
	}
}

// U8 returns the next byte from the stream.
func (r *headerReader) U8() uint8 {
	if b := r.next(1); b != nil {
		return b[0]
	}
	return 0
}

// U32 returns the next little-endian dword from the stream.
func (r *headerReader) U32() uint32 {
	if b := r.next(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// ReadHeader decodes the SDTHeader at the start of data. It fails with
// ErrBufferTooSmall if data is shorter than the header or than the length
// the header declares.
func ReadHeader(data []byte) (SDTHeader, error) {
	var (
		hdr SDTHeader
		r   = headerReader{data: data}
	)

	r.Bytes(hdr.Signature[:])
	hdr.Length = r.U32()
	hdr.Revision = r.U8()
	hdr.Checksum = r.U8()
	r.Bytes(hdr.OEMID[:])
	r.Bytes(hdr.OEMTableID[:])
	hdr.OEMRevision = r.U32()
	r.Bytes(hdr.CreatorID[:])
	hdr.CreatorRevision = r.U32()
	if err := r.Err(); err != nil {
		return SDTHeader{}, err
	}

	if hdr.Length < HeaderSize || uint64(hdr.Length) > uint64(len(data)) {
		return hdr, acpierr.New("acpi_table", acpierr.KindBufferTooSmall,
			"table %q declares length %d; buffer holds %d bytes", string(hdr.Signature[:]), hdr.Length, len(data))
	}

	return hdr, nil
}

// ValidateTable decodes the header at the start of data and verifies that
// the checksum covers the declared table length.
func ValidateTable(data []byte) (SDTHeader, error) {
	hdr, err := ReadHeader(data)
	if err != nil {
		return hdr, err
	}

	if !Valid(data[:hdr.Length]) {
		return hdr, errChecksumMismatch
	}

	return hdr, nil
}
