package aml

import (
	"encoding/binary"

	"acpigen/acpi/acpierr"
)

// maxPackageElements is the largest element count a Package can declare.
// Larger packages must use VarPackage.
const maxPackageElements = 255

// String is a null-terminated ASCII string constant.
//
// Grammar:
// String := StringPrefix AsciiCharList NullChar
// AsciiChar := 0x01 - 0x7F
type String string

func (s String) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0x00 || s[i] > 0x7f {
			return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "string %q contains non-ASCII byte 0x%x at index %d", string(s), s[i], i)
		}
	}

	dst = append(dst, byte(OpStringPrefix))
	dst = append(dst, s...)
	return append(dst, 0x00), nil
}

// Buffer is an initialized byte buffer.
//
// Grammar:
// DefBuffer := BufferOp PkgLength BufferSize ByteList
type Buffer []byte

func (b Buffer) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return appendBuffer(dst, b)
}

func appendBuffer(dst []byte, data []byte) ([]byte, error) {
	body := AppendInteger(nil, uint64(len(data)))
	body = append(body, data...)
	return appendPkg(dst, OpBuffer, body)
}

// Package is a fixed-size list of data objects.
//
// Grammar:
// DefPackage := PackageOp PkgLength NumElements PackageElementList
type Package []Term

func (p Package) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if len(p) > maxPackageElements {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "package has %d elements; at most %d are supported, use VarPackage instead", len(p), maxPackageElements)
	}

	body, err := appendTermList([]byte{byte(len(p))}, ctx, p)
	if err != nil {
		return nil, err
	}

	return appendPkg(dst, OpPackage, body)
}

// VarPackage is a package whose element count is computed at run time.
//
// Grammar:
// DefVarPackage := VarPackageOp PkgLength VarNumElements PackageElementList
// VarNumElements := TermArg => Integer
type VarPackage struct {
	// NumElements defaults to the number of Elements when nil.
	NumElements Term
	Elements    []Term
}

func (p *VarPackage) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	var (
		body []byte
		err  error
	)

	if p.NumElements == nil {
		body = AppendInteger(body, uint64(len(p.Elements)))
	} else if body, err = appendTerm(body, ctx, p.NumElements); err != nil {
		return nil, err
	}

	if body, err = appendTermList(body, ctx, p.Elements); err != nil {
		return nil, err
	}

	return appendPkg(dst, OpVarPackage, body)
}

// EISAName is a 7-character EISA/PNP identifier such as "PNP0A03". It is
// encoded as a compressed DWord constant.
type EISAName string

// Value returns the compressed 32-bit form of the identifier.
func (e EISAName) Value() (uint32, error) {
	id := string(e)
	if len(id) != 7 {
		return 0, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "EISA id %q must be 7 characters long", id)
	}

	var v uint32
	for i := 0; i < 3; i++ {
		if id[i] < 'A' || id[i] > 'Z' {
			return 0, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "EISA id %q: vendor characters must be 'A'-'Z'", id)
		}
		v = v<<5 | uint32(id[i]-0x40)
	}

	for i := 3; i < 7; i++ {
		nibble, ok := hexDigit(id[i])
		if !ok {
			return 0, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "EISA id %q: product characters must be hex digits", id)
		}
		v = v<<4 | uint32(nibble)
	}

	// The compressed id is stored big-endian.
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (e EISAName) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	v, err := e.Value()
	if err != nil {
		return nil, err
	}

	return binary.LittleEndian.AppendUint32(append(dst, byte(OpDwordPrefix)), v), nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
