package aml

import (
	"encoding/binary"

	"acpigen/acpi/acpierr"
	"acpigen/acpi/table"
)

// Resource descriptor tags.
const (
	tagIO             = 0x47
	tagEnd            = 0x79
	tagGenericReg     = 0x82
	tagMemory32Fixed  = 0x86
	tagDWordAddress   = 0x87
	tagWordAddress    = 0x88
	tagExtendedIRQ    = 0x89
	tagQWordAddress   = 0x8a
	genericRegBodyLen = 0x0c
)

// Resource is a descriptor that can be placed inside a ResourceTemplate.
type Resource interface {
	appendResource(dst []byte) ([]byte, error)
}

// ResourceTemplate is a buffer holding a list of resource descriptors
// terminated by an end tag, as returned by _CRS and friends.
type ResourceTemplate []Resource

func (rt ResourceTemplate) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	for _, r := range rt {
		if isNil(r) {
			return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "nil resource descriptor")
		}

		if data, err = r.appendResource(data); err != nil {
			return nil, err
		}
	}

	// A zero checksum tells the consumer to skip verification.
	data = append(data, tagEnd, 0x00)
	return appendBuffer(dst, data)
}

// Memory32Fixed describes a fixed 32-bit memory range.
type Memory32Fixed struct {
	ReadWrite bool
	Base      uint32
	Length    uint32
}

func (m *Memory32Fixed) appendResource(dst []byte) ([]byte, error) {
	dst = append(dst, tagMemory32Fixed, 9, 0, boolByte(m.ReadWrite))
	dst = binary.LittleEndian.AppendUint32(dst, m.Base)
	return binary.LittleEndian.AppendUint32(dst, m.Length), nil
}

// IO describes a range of I/O ports with 16-bit decoding.
type IO struct {
	Min, Max  uint16
	Alignment uint8
	Length    uint8
}

func (r *IO) appendResource(dst []byte) ([]byte, error) {
	if r.Max < r.Min {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "I/O range max 0x%x is below min 0x%x", r.Max, r.Min)
	}

	dst = append(dst, tagIO, 1)
	dst = binary.LittleEndian.AppendUint16(dst, r.Min)
	dst = binary.LittleEndian.AppendUint16(dst, r.Max)
	return append(dst, r.Alignment, r.Length), nil
}

// Interrupt describes a single extended interrupt.
type Interrupt struct {
	Consumer      bool
	EdgeTriggered bool
	ActiveLow     bool
	Shared        bool
	Number        uint32
}

func (i *Interrupt) appendResource(dst []byte) ([]byte, error) {
	flags := boolByte(i.Shared)<<3 | boolByte(i.ActiveLow)<<2 | boolByte(i.EdgeTriggered)<<1 | boolByte(i.Consumer)
	dst = append(dst, tagExtendedIRQ, 6, 0, flags, 1)
	return binary.LittleEndian.AppendUint32(dst, i.Number), nil
}

// Register describes a register through a generic address structure.
type Register struct {
	Address table.GenericAddress
}

func (r *Register) appendResource(dst []byte) ([]byte, error) {
	dst = append(dst, tagGenericReg, genericRegBodyLen, 0)
	return r.Address.AppendTo(dst), nil
}

// AddressSpaceType is the kind of resource an address space descriptor
// covers.
type AddressSpaceType uint8

// The list of supported address space resource types.
const (
	AddressSpaceMemory AddressSpaceType = iota
	AddressSpaceIO
	AddressSpaceBusNumber
)

// AddressWidth selects the Word, DWord or QWord address space descriptor.
type AddressWidth uint8

// The list of supported descriptor widths.
const (
	AddressWidthWord  AddressWidth = 2
	AddressWidthDWord AddressWidth = 4
	AddressWidthQWord AddressWidth = 8
)

// Cacheability is the memory attribute of a memory address space.
type Cacheability uint8

// The list of supported memory attributes.
const (
	NotCacheable Cacheability = iota
	Cacheable
	WriteCombining
	Prefetchable
)

// AddressSpace is a Word/DWord/QWord address space descriptor with fixed
// minimum and maximum addresses.
type AddressSpace struct {
	Type      AddressSpaceType
	Width     AddressWidth
	Min, Max  uint64
	TypeFlags uint8
}

// NewMemoryAddressSpace returns a memory range descriptor. The narrowest
// descriptor (DWord or QWord) that holds max is selected.
func NewMemoryAddressSpace(min, max uint64, cache Cacheability, readWrite bool) *AddressSpace {
	width := AddressWidthDWord
	if max > 0xffffffff {
		width = AddressWidthQWord
	}

	return &AddressSpace{
		Type:      AddressSpaceMemory,
		Width:     width,
		Min:       min,
		Max:       max,
		TypeFlags: uint8(cache)<<1 | boolByte(readWrite),
	}
}

// NewIOAddressSpace returns an I/O port range descriptor covering the entire
// ISA and non-ISA range.
func NewIOAddressSpace(min, max uint16) *AddressSpace {
	return &AddressSpace{Type: AddressSpaceIO, Width: AddressWidthWord, Min: uint64(min), Max: uint64(max), TypeFlags: 3}
}

// NewBusNumberAddressSpace returns a bus number range descriptor.
func NewBusNumberAddressSpace(min, max uint16) *AddressSpace {
	return &AddressSpace{Type: AddressSpaceBusNumber, Width: AddressWidthWord, Min: uint64(min), Max: uint64(max)}
}

func (a *AddressSpace) appendResource(dst []byte) ([]byte, error) {
	var (
		tag      byte
		size     int
		maxValue uint64
	)

	switch a.Width {
	case AddressWidthWord:
		tag, size, maxValue = tagWordAddress, 2, 0xffff
	case AddressWidthDWord:
		tag, size, maxValue = tagDWordAddress, 4, 0xffffffff
	case AddressWidthQWord:
		tag, size, maxValue = tagQWordAddress, 8, ^uint64(0)
	default:
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "unsupported address space width %d", a.Width)
	}

	switch {
	case a.Type > AddressSpaceBusNumber:
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "unsupported address space type %d", a.Type)
	case a.Max < a.Min:
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "address range max 0x%x is below min 0x%x", a.Max, a.Min)
	case a.Max > maxValue:
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "address 0x%x does not fit a %d-byte descriptor", a.Max, size)
	case a.Max-a.Min == ^uint64(0):
		// The range length does not fit the 64-bit length field.
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "address range 0x%x-0x%x is too long to encode", a.Min, a.Max)
	}

	// Min Fixed and Max Fixed are always set.
	const generalFlags = 1<<2 | 1<<3

	bodyLen := 3 + 5*size
	dst = append(dst, tag, byte(bodyLen), byte(bodyLen>>8), byte(a.Type), generalFlags, a.TypeFlags)
	for _, v := range []uint64{0, a.Min, a.Max, 0, a.Max - a.Min + 1} {
		dst = appendUintN(dst, v, size)
	}

	return dst, nil
}

func appendUintN(dst []byte, v uint64, size int) []byte {
	for i := 0; i < size; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
