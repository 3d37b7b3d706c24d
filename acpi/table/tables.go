package table

import "acpigen/acpi/acpierr"

// HeaderSize is the encoded size of SDTHeader.
const HeaderSize = 36

// SDTHeader defines the common header for all ACPI-related tables.
type SDTHeader struct {
	// The signature defines the table type.
	Signature [4]byte

	// The length of the table including the header. Finalize overwrites
	// this field.
	Length uint32

	// For DSDT/SSDT tables the revision also tells the interpreter
	// whether integers are 32-bits (revision < 2) or 64-bits
	// (revision >= 2).
	Revision uint8

	// A value that when added to the sum of all other bytes in the table
	// should result in the value 0. Finalize overwrites this field.
	Checksum uint8

	// OEM specific information
	OEMID       [6]byte
	OEMTableID  [8]byte
	OEMRevision uint32

	// Information about the tool that generated this table
	CreatorID       [4]byte
	CreatorRevision uint32
}

// MarshalTo writes the little-endian encoding of the header into the first
// HeaderSize bytes of buf.
func (h *SDTHeader) MarshalTo(buf []byte) error {
	w := NewFieldWriter(buf)
	w.Bytes(h.Signature[:])
	w.U32(h.Length)
	w.U8(h.Revision)
	w.U8(h.Checksum)
	w.Bytes(h.OEMID[:])
	w.Bytes(h.OEMTableID[:])
	w.U32(h.OEMRevision)
	w.Bytes(h.CreatorID[:])
	w.U32(h.CreatorRevision)
	return w.Err()
}

// AddressSpace defines the location where a set of registers resides.
type AddressSpace uint8

// The list of supported address space types.
const (
	AddressSpaceSysMemory AddressSpace = iota
	AddressSpaceSysIO
	AddressSpacePCI
	AddressSpaceEmbController
	AddressSpaceSMBus
	AddressSpaceSystemCMOS
	AddressSpacePCIBarTarget
	AddressSpaceIPMI
	AddressSpaceGPIO
	AddressSpaceGenericSerialBus
	AddressSpacePCC
	AddressSpaceFuncFixedHW = 0x7f
)

// AccessSize describes the access width used for a GenericAddress.
type AccessSize uint8

// The list of supported access sizes.
const (
	AccessSizeUndefined AccessSize = iota
	AccessSizeByte
	AccessSizeWord
	AccessSizeDword
	AccessSizeQword
)

// GenericAddressSize is the encoded size of GenericAddress.
const GenericAddressSize = 12

// GenericAddress specifies a register range located in a particular address
// space.
type GenericAddress struct {
	Space      AddressSpace
	BitWidth   uint8
	BitOffset  uint8
	AccessSize AccessSize
	Address    uint64
}

// MarshalTo writes the 12-byte encoding of the structure into buf.
func (ga *GenericAddress) MarshalTo(buf []byte) error {
	w := NewFieldWriter(buf)
	ga.write(w)
	return w.Err()
}

// AppendTo appends the encoding of the structure to dst.
func (ga *GenericAddress) AppendTo(dst []byte) []byte {
	var buf [GenericAddressSize]byte
	ga.write(NewFieldWriter(buf[:]))
	return append(dst, buf[:]...)
}

func (ga *GenericAddress) write(w *FieldWriter) {
	w.U8(uint8(ga.Space))
	w.U8(ga.BitWidth)
	w.U8(ga.BitOffset)
	w.U8(uint8(ga.AccessSize))
	w.U64(ga.Address)
}

// PadID copies id into a fixed-size identifier field padding the remaining
// bytes with spaces. It fails if id is longer than dst or contains
// non-printable characters.
func PadID(dst []byte, id string) error {
	if len(id) > len(dst) {
		return acpierr.New("acpi_table", acpierr.KindInvalidArgument, "identifier %q exceeds %d bytes", id, len(dst))
	}

	for i := 0; i < len(dst); i++ {
		if i >= len(id) {
			dst[i] = ' '
			continue
		}

		if id[i] < 0x20 || id[i] > 0x7e {
			return acpierr.New("acpi_table", acpierr.KindInvalidArgument, "identifier %q contains non-printable character 0x%x", id, id[i])
		}
		dst[i] = id[i]
	}

	return nil
}
