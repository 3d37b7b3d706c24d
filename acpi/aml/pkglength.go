package aml

import "acpigen/acpi/acpierr"

// maxPkgLength is the largest value representable by a 4-byte PkgLength: 4
// bits in the lead byte plus 3 full bytes.
const maxPkgLength = 1<<28 - 1

// pkgLengthLimits holds, for each encoding width, the exclusive upper bound
// of the body length that fits. A width-n field can hold totals up to
// 2^(4+8(n-1)) - 1 except for the single byte form which holds 6 bits; the
// bound subtracts the field's own width from that capacity.
var pkgLengthLimits = [...]int{
	1: 1<<6 - 1,
	2: 1<<12 - 2,
	3: 1<<20 - 3,
	4: 1<<28 - 4,
}

// PkgLengthWidth returns the number of bytes needed to encode a PkgLength
// for a body of bodyLen bytes. It fails with ErrLengthOverflow if bodyLen
// cannot be represented.
func PkgLengthWidth(bodyLen int) (int, error) {
	for width := 1; width < len(pkgLengthLimits); width++ {
		if bodyLen < pkgLengthLimits[width] {
			return width, nil
		}
	}

	return 0, acpierr.New("acpi_aml", acpierr.KindLengthOverflow,
		"body length %d exceeds the maximum PkgLength of %d", bodyLen, maxPkgLength)
}

// AppendPkgLength appends a PkgLength describing a body of bodyLen bytes.
// The encoded value includes the width of the PkgLength itself.
//
// Grammar:
// PkgLength := PkgLeadByte | <PkgLeadByte ByteData> |
//   <PkgLeadByte ByteData ByteData> | <PkgLeadByte ByteData ByteData ByteData>
func AppendPkgLength(dst []byte, bodyLen int) ([]byte, error) {
	if bodyLen < 0 {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "negative body length %d", bodyLen)
	}

	width, err := PkgLengthWidth(bodyLen)
	if err != nil {
		return nil, err
	}

	return appendEncodedLength(dst, uint32(bodyLen+width), width), nil
}

// AppendFieldLength appends a field unit bit length. Field lengths use the
// PkgLength encoding but, unlike package lengths, do not count the bytes of
// the length field.
func AppendFieldLength(dst []byte, bits uint32) ([]byte, error) {
	var width int
	switch {
	case bits < 1<<6:
		width = 1
	case bits < 1<<12:
		width = 2
	case bits < 1<<20:
		width = 3
	case bits <= maxPkgLength:
		width = 4
	default:
		return nil, acpierr.New("acpi_aml", acpierr.KindLengthOverflow,
			"field length %d exceeds the maximum of %d bits", bits, maxPkgLength)
	}

	return appendEncodedLength(dst, bits, width), nil
}

// appendEncodedLength writes value using width bytes. The high 2 bits of the
// lead byte indicate how many bytes follow; when bytes follow, the lead byte
// only carries the low nybble of value.
func appendEncodedLength(dst []byte, value uint32, width int) []byte {
	if width == 1 {
		return append(dst, byte(value))
	}

	dst = append(dst, byte(width-1)<<6|byte(value&0xf))
	for shift := uint(4); width > 1; width, shift = width-1, shift+8 {
		dst = append(dst, byte(value>>shift))
	}

	return dst
}

// appendPkg appends op followed by a PkgLength covering body and then body.
func appendPkg(dst []byte, op AMLOpcode, body []byte) ([]byte, error) {
	dst = appendOpcode(dst, op)
	dst, err := AppendPkgLength(dst, len(body))
	if err != nil {
		return nil, err
	}

	return append(dst, body...), nil
}
