package aml

import (
	"errors"
	"testing"

	"acpigen/acpi/acpierr"
	"acpigen/acpi/table"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeRegionObjects(t *testing.T) {
	specs := []struct {
		descr string
		term  Term
		exp   []byte
	}{
		{
			"operation region",
			&OpRegion{Name: "PCFG", Space: table.AddressSpaceSysMemory, Offset: Integer(0xfed40000), Length: Integer(0x1000)},
			[]byte{
				0x5b, 0x80, 'P', 'C', 'F', 'G', 0x00,
				0x0c, 0x00, 0x00, 0xd4, 0xfe,
				0x0b, 0x00, 0x10,
			},
		},
		{
			"field",
			&Field{
				Region: "PCFG",
				Access: FieldAccessDWord,
				Lock:   true,
				Update: FieldUpdateWriteAsZeros,
				Entries: []FieldEntry{
					{Name: "ST0", Bits: 32},
					{Bits: 32},
					{Name: "CTRL", Bits: 8},
				},
			},
			[]byte{
				0x5b, 0x81, 0x12, 'P', 'C', 'F', 'G', 0x53,
				'S', 'T', '0', '_', 0x20,
				0x00, 0x20,
				'C', 'T', 'R', 'L', 0x08,
			},
		},
		{
			"dword buffer field",
			CreateDWordField(Path("BUF0"), Integer(4), "REG0"),
			[]byte{0x8a, 'B', 'U', 'F', '0', 0x0a, 0x04, 'R', 'E', 'G', '0'},
		},
		{
			"bit buffer field",
			CreateBitField(Path("BUF0"), Integer(9), "FLG0"),
			[]byte{0x8d, 'B', 'U', 'F', '0', 0x0a, 0x09, 'F', 'L', 'G', '0'},
		},
		{
			"arbitrary width field",
			&CreateField{Source: Path("BUF0"), BitIndex: Integer(3), NumBits: Integer(5), Name: "BITS"},
			[]byte{0x5b, 0x13, 'B', 'U', 'F', '0', 0x0a, 0x03, 0x0a, 0x05, 'B', 'I', 'T', 'S'},
		},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			got, err := Encode(spec.term)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(spec.exp, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldFlags(t *testing.T) {
	specs := []struct {
		field    Field
		expFlags uint8
	}{
		{Field{}, 0x00},
		{Field{Access: FieldAccessByte}, 0x01},
		{Field{Access: FieldAccessBuffer, Lock: true}, 0x15},
		{Field{Access: FieldAccessAny, Update: FieldUpdateWriteAsOnes}, 0x20},
	}

	for specIndex, spec := range specs {
		flags, err := spec.field.Flags()
		if err != nil {
			t.Errorf("[spec %d] unexpected error: %v", specIndex, err)
			continue
		}

		if flags != spec.expFlags {
			t.Errorf("[spec %d] expected flags 0x%02x; got 0x%02x", specIndex, spec.expFlags, flags)
		}
	}
}

func TestEncodeRegionErrors(t *testing.T) {
	specs := []struct {
		descr  string
		term   Term
		expErr error
	}{
		{"bad access type", &Field{Region: "PCFG", Access: FieldAccessBuffer + 1}, acpierr.ErrInvalidArgument},
		{"bad update rule", &Field{Region: "PCFG", Update: FieldUpdateWriteAsZeros + 1}, acpierr.ErrInvalidArgument},
		{"bad field name", &Field{Region: "PCFG", Entries: []FieldEntry{{Name: "TOOLONG", Bits: 1}}}, acpierr.ErrInvalidName},
		{"field length overflow", &Field{Region: "PCFG", Entries: []FieldEntry{{Name: "BIG", Bits: 1 << 28}}}, acpierr.ErrLengthOverflow},
		{"missing region offset", &OpRegion{Name: "PCFG", Length: One}, acpierr.ErrInvalidArgument},
		{"bad buffer field opcode", &BufferField{Op: OpAdd, Source: Path("BUF0"), Index: Zero, Name: "FOO"}, acpierr.ErrInvalidArgument},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			if _, err := Encode(spec.term); !errors.Is(err, spec.expErr) {
				t.Fatalf("expected error %v; got %v", spec.expErr, err)
			}
		})
	}
}
