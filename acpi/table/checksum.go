package table

import (
	"math"

	"acpigen/acpi/acpierr"
)

// checksumOffset is the offset of the checksum byte inside SDTHeader.
const checksumOffset = 9

// Checksum returns the value that, when added to the byte sum of data,
// yields 0 modulo 256.
func Checksum(data []byte) uint8 {
	return -sum(data)
}

// Valid returns true if the bytes in data add up to 0 modulo 256.
func Valid(data []byte) bool {
	return sum(data) == 0
}

func sum(data []byte) uint8 {
	var s uint8
	for _, b := range data {
		s += b
	}
	return s
}

// Finalize assembles a complete table from hdr and body. The returned buffer
// contains the header, with its Length and Checksum fields computed, followed
// by a copy of body. The byte sum of the returned buffer is 0 modulo 256.
//
// The Length and Checksum values supplied in hdr are ignored.
func Finalize(hdr SDTHeader, body []byte) ([]byte, error) {
	total := uint64(HeaderSize) + uint64(len(body))
	if total > math.MaxUint32 {
		return nil, acpierr.New("acpi_table", acpierr.KindLengthOverflow,
			"table %q length %d exceeds the 32-bit length field", string(hdr.Signature[:]), total)
	}

	hdr.Length = uint32(total)
	hdr.Checksum = 0

	buf := make([]byte, total)
	if err := hdr.MarshalTo(buf[:HeaderSize]); err != nil {
		return nil, err
	}
	copy(buf[HeaderSize:], body)

	buf[checksumOffset] = Checksum(buf)
	return buf, nil
}
