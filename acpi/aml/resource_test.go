package aml

import (
	"errors"
	"testing"

	"acpigen/acpi/acpierr"
	"acpigen/acpi/table"

	"github.com/google/go-cmp/cmp"
)

func TestAppendResource(t *testing.T) {
	specs := []struct {
		descr string
		res   Resource
		exp   []byte
	}{
		{
			"memory32 fixed",
			&Memory32Fixed{ReadWrite: true, Base: 0xfec00000, Length: 0x1000},
			[]byte{0x86, 0x09, 0x00, 0x01, 0x00, 0x00, 0xc0, 0xfe, 0x00, 0x10, 0x00, 0x00},
		},
		{
			"io",
			&IO{Min: 0x3f8, Max: 0x3f8, Alignment: 1, Length: 8},
			[]byte{0x47, 0x01, 0xf8, 0x03, 0xf8, 0x03, 0x01, 0x08},
		},
		{
			"edge triggered interrupt",
			&Interrupt{Consumer: true, EdgeTriggered: true, Number: 4},
			[]byte{0x89, 0x06, 0x00, 0x03, 0x01, 0x04, 0x00, 0x00, 0x00},
		},
		{
			"shared level interrupt",
			&Interrupt{Consumer: true, ActiveLow: true, Shared: true, Number: 0x20},
			[]byte{0x89, 0x06, 0x00, 0x0d, 0x01, 0x20, 0x00, 0x00, 0x00},
		},
		{
			"generic register",
			&Register{Address: table.GenericAddress{
				Space:      table.AddressSpaceSysIO,
				BitWidth:   8,
				AccessSize: table.AccessSizeByte,
				Address:    0xb2,
			}},
			[]byte{
				0x82, 0x0c, 0x00,
				0x01, 0x08, 0x00, 0x01,
				0xb2, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			"io address space",
			NewIOAddressSpace(0, 0xcf7),
			[]byte{
				0x88, 0x0d, 0x00, 0x01, 0x0c, 0x03,
				0x00, 0x00, // granularity
				0x00, 0x00, // min
				0xf7, 0x0c, // max
				0x00, 0x00, // translation
				0xf8, 0x0c, // length
			},
		},
		{
			"bus number address space",
			NewBusNumberAddressSpace(0, 0xff),
			[]byte{
				0x88, 0x0d, 0x00, 0x02, 0x0c, 0x00,
				0x00, 0x00,
				0x00, 0x00,
				0xff, 0x00,
				0x00, 0x00,
				0x00, 0x01,
			},
		},
		{
			"32-bit memory address space",
			NewMemoryAddressSpace(0xc0000000, 0xfebfffff, NotCacheable, true),
			[]byte{
				0x87, 0x17, 0x00, 0x00, 0x0c, 0x01,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0xc0,
				0xff, 0xff, 0xbf, 0xfe,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0xc0, 0x3e,
			},
		},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			got, err := spec.res.appendResource(nil)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(spec.exp, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemoryAddressSpaceWidth(t *testing.T) {
	as := NewMemoryAddressSpace(0x8000000000, 0xffffffffff, Prefetchable, true)
	if as.Width != AddressWidthQWord {
		t.Fatalf("expected a QWord descriptor for a 64-bit range; got width %d", as.Width)
	}

	got, err := as.appendResource(nil)
	if err != nil {
		t.Fatal(err)
	}

	if exp := 3 + 3 + 5*8; len(got) != exp {
		t.Fatalf("expected %d bytes; got %d", exp, len(got))
	}

	if got[0] != tagQWordAddress || got[1] != 0x2b || got[5] != 0x07 {
		t.Fatalf("unexpected descriptor header % x", got[:6])
	}
}

func TestEncodeResourceTemplate(t *testing.T) {
	got, err := Encode(ResourceTemplate{})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]byte{0x11, 0x05, 0x0a, 0x02, 0x79, 0x00}, got); diff != "" {
		t.Fatalf("empty template mismatch (-want +got):\n%s", diff)
	}

	got, err = Encode(&Name{Name: "_CRS", Value: ResourceTemplate{
		&Memory32Fixed{Base: 0xfed00000, Length: 0x400},
		&IO{Min: 0x60, Max: 0x60, Alignment: 1, Length: 1},
	}})
	if err != nil {
		t.Fatal(err)
	}

	// 12 + 8 descriptor bytes plus the end tag.
	exp := []byte{0x08, '_', 'C', 'R', 'S', 0x11, 0x19, 0x0a, 0x16}
	if diff := cmp.Diff(exp, got[:len(exp)]); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}

	if tail := got[len(got)-2:]; tail[0] != 0x79 || tail[1] != 0x00 {
		t.Fatalf("expected template to end with an end tag; got % x", tail)
	}

	if exp := len(exp) + 22; len(got) != exp {
		t.Fatalf("expected %d bytes; got %d", exp, len(got))
	}
}

func TestResourceErrors(t *testing.T) {
	specs := []struct {
		descr string
		term  Term
	}{
		{"nil descriptor", ResourceTemplate{nil}},
		{"nil descriptor pointer", ResourceTemplate{(*Memory32Fixed)(nil)}},
		{"full 64-bit range", ResourceTemplate{&AddressSpace{Width: AddressWidthQWord, Min: 0, Max: ^uint64(0)}}},
		{"io range", ResourceTemplate{&IO{Min: 0x100, Max: 0xff}}},
		{"address range", ResourceTemplate{&AddressSpace{Width: AddressWidthDWord, Min: 2, Max: 1}}},
		{"address too wide", ResourceTemplate{&AddressSpace{Width: AddressWidthWord, Max: 0x10000}}},
		{"bad width", ResourceTemplate{&AddressSpace{Width: 3}}},
		{"bad type", ResourceTemplate{&AddressSpace{Type: AddressSpaceBusNumber + 1, Width: AddressWidthWord}}},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			if _, err := Encode(spec.term); !errors.Is(err, acpierr.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument; got %v", err)
			}
		})
	}
}
