package aml

import (
	"acpigen/acpi/acpierr"
	"acpigen/acpi/table"
)

// OpRegion declares an operation region: a window into an address space that
// fields can be declared over.
//
// Grammar:
// DefOpRegion := OpRegionOp NameString RegionSpace RegionOffset RegionLen
// RegionOffset := TermArg => Integer
// RegionLen := TermArg => Integer
type OpRegion struct {
	Name   string
	Space  table.AddressSpace
	Offset Term
	Length Term
}

func (r *OpRegion) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	dst = appendOpcode(dst, OpOpRegion)
	dst, err := appendName(dst, r.Name)
	if err != nil {
		return nil, err
	}

	dst = append(dst, byte(r.Space))
	if dst, err = appendTerm(dst, ctx, r.Offset); err != nil {
		return nil, err
	}

	return appendTerm(dst, ctx, r.Length)
}

// FieldAccess is the access width used for a field's units.
type FieldAccess uint8

// The list of supported field access types.
const (
	FieldAccessAny FieldAccess = iota
	FieldAccessByte
	FieldAccessWord
	FieldAccessDWord
	FieldAccessQWord
	FieldAccessBuffer
)

// FieldUpdate describes how bits outside a written unit are treated.
type FieldUpdate uint8

// The list of supported field update rules.
const (
	FieldUpdatePreserve FieldUpdate = iota
	FieldUpdateWriteAsOnes
	FieldUpdateWriteAsZeros
)

// FieldEntry is one element of a field list. An entry with an empty Name is
// a reserved gap of Bits bits.
//
// Grammar:
// NamedField := NameSeg PkgLength
// ReservedField := 0x00 PkgLength
type FieldEntry struct {
	Name string
	Bits uint32
}

func (e FieldEntry) appendTo(dst []byte) ([]byte, error) {
	var err error
	if e.Name == "" {
		dst = append(dst, 0x00)
	} else if dst, err = appendNameSeg(dst, e.Name); err != nil {
		return nil, err
	}

	return AppendFieldLength(dst, e.Bits)
}

// Field declares named bit ranges inside an operation region.
//
// Grammar:
// DefField := FieldOp PkgLength NameString FieldFlags FieldList
// FieldFlags := ByteData // bit 0-3: AccessType
//                        // bit 4: LockRule
//                        // bit 5-6: UpdateRule
type Field struct {
	Region  string
	Access  FieldAccess
	Lock    bool
	Update  FieldUpdate
	Entries []FieldEntry
}

// Flags returns the packed FieldFlags byte.
func (f *Field) Flags() (uint8, error) {
	if f.Access > FieldAccessBuffer {
		return 0, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "field %q: unsupported access type %d", f.Region, f.Access)
	}
	if f.Update > FieldUpdateWriteAsZeros {
		return 0, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "field %q: unsupported update rule %d", f.Region, f.Update)
	}

	flags := uint8(f.Access) | uint8(f.Update)<<5
	if f.Lock {
		flags |= 1 << 4
	}

	return flags, nil
}

func (f *Field) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	flags, err := f.Flags()
	if err != nil {
		return nil, err
	}

	body, err := appendName(nil, f.Region)
	if err != nil {
		return nil, err
	}

	body = append(body, flags)
	for _, entry := range f.Entries {
		if body, err = entry.appendTo(body); err != nil {
			return nil, err
		}
	}

	return appendPkg(dst, OpField, body)
}

// BufferField creates a fixed-width field over a buffer. Use one of the
// CreateXXXField helpers to construct it.
//
// Grammar:
// DefCreateDWordField := CreateDWordFieldOp SourceBuff ByteIndex NameString
// (and likewise for the Bit, Byte, Word and QWord variants)
type BufferField struct {
	Op     AMLOpcode
	Source Term
	Index  Term
	Name   string
}

// CreateBitField creates a 1-bit field at bit offset index.
func CreateBitField(source, index Term, name string) *BufferField {
	return &BufferField{Op: OpCreateBitField, Source: source, Index: index, Name: name}
}

// CreateByteField creates an 8-bit field at byte offset index.
func CreateByteField(source, index Term, name string) *BufferField {
	return &BufferField{Op: OpCreateByteField, Source: source, Index: index, Name: name}
}

// CreateWordField creates a 16-bit field at byte offset index.
func CreateWordField(source, index Term, name string) *BufferField {
	return &BufferField{Op: OpCreateWordField, Source: source, Index: index, Name: name}
}

// CreateDWordField creates a 32-bit field at byte offset index.
func CreateDWordField(source, index Term, name string) *BufferField {
	return &BufferField{Op: OpCreateDWordField, Source: source, Index: index, Name: name}
}

// CreateQWordField creates a 64-bit field at byte offset index.
func CreateQWordField(source, index Term, name string) *BufferField {
	return &BufferField{Op: OpCreateQWordField, Source: source, Index: index, Name: name}
}

func (f *BufferField) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !opIsBufferField(f.Op) {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "opcode 0x%x does not create a buffer field", uint16(f.Op))
	}

	dst = appendOpcode(dst, f.Op)
	dst, err := appendTerm(dst, ctx, f.Source)
	if err != nil {
		return nil, err
	}

	if dst, err = appendTerm(dst, ctx, f.Index); err != nil {
		return nil, err
	}

	return appendName(dst, f.Name)
}

// CreateField creates a field of arbitrary bit width over a buffer.
//
// Grammar:
// DefCreateField := CreateFieldOp SourceBuff BitIndex NumBits NameString
type CreateField struct {
	Source   Term
	BitIndex Term
	NumBits  Term
	Name     string
}

func (f *CreateField) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	dst = appendOpcode(dst, OpCreateField)
	dst, err := appendTermList(dst, ctx, []Term{f.Source, f.BitIndex, f.NumBits})
	if err != nil {
		return nil, err
	}

	return appendName(dst, f.Name)
}
