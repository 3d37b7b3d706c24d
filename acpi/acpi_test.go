package acpi

import (
	"bytes"
	"fmt"
	"testing"

	"acpigen/acpi/acpierr"
	"acpigen/acpi/aml"
	"acpigen/acpi/table"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBuildEmptyBody(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	tbl, err := b.Build("FACP", 6, nil)
	require.NoError(t, err)

	require.Equal(t, table.HeaderSize, tbl.Len())
	require.Equal(t, "FACP", tbl.Signature())

	data := tbl.Bytes()
	require.True(t, table.Valid(data))
	require.Equal(t, []byte{36, 0, 0, 0}, data[4:8])
	require.Equal(t, uint8(6), data[8])
	require.Equal(t, tbl.Checksum(), data[9])
	require.Equal(t, []byte(DefaultOEMID), data[10:16])
	require.Equal(t, []byte(DefaultOEMTableID), data[16:24])
	require.Equal(t, []byte(DefaultCreatorID), data[28:32])
}

func TestBuildHeaderFields(t *testing.T) {
	b, err := NewBuilder(
		WithOEM("VMM", "DSDTTBL", 0x20),
		WithCreator("TEST", 0x1234),
	)
	require.NoError(t, err)

	body := []byte{1, 2, 3, 4, 5}
	tbl, err := b.Build("SSDT", 2, body)
	require.NoError(t, err)

	hdr, err := table.ValidateTable(tbl.Bytes())
	require.NoError(t, err)

	require.Equal(t, uint32(table.HeaderSize+len(body)), hdr.Length)
	require.Equal(t, uint8(2), hdr.Revision)
	require.Equal(t, "VMM   ", string(hdr.OEMID[:]))
	require.Equal(t, "DSDTTBL ", string(hdr.OEMTableID[:]))
	require.Equal(t, uint32(0x20), hdr.OEMRevision)
	require.Equal(t, "TEST", string(hdr.CreatorID[:]))
	require.Equal(t, uint32(0x1234), hdr.CreatorRevision)
	require.Equal(t, body, tbl.Bytes()[table.HeaderSize:])
}

func TestBuildAML(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	tbl, err := b.BuildAML("DSDT", 2, &aml.Scope{
		Name: `\_SB`,
		Terms: []aml.Term{
			&aml.Device{
				Name:  "PCI0",
				Terms: []aml.Term{&aml.Name{Name: "_HID", Value: aml.Integer(0x0a03)}},
			},
		},
	})
	require.NoError(t, err)

	exp := []byte{
		0x10, 0x15, '\\', '_', 'S', 'B', '_',
		0x5b, 0x82, 0x0d, 'P', 'C', 'I', '0',
		0x08, '_', 'H', 'I', 'D', 0x0b, 0x03, 0x0a,
	}
	require.Equal(t, exp, tbl.Bytes()[table.HeaderSize:])
	require.Equal(t, table.HeaderSize+len(exp), tbl.Len())
	require.True(t, table.Valid(tbl.Bytes()))
}

func TestBuildChecksumGrowingTable(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	var terms []aml.Term
	for i := 0; i < 100; i++ {
		terms = append(terms, &aml.Name{Name: fmt.Sprintf("N%03d", i), Value: aml.Integer(uint64(i) * 0x01010101)})

		tbl, err := b.BuildAML("SSDT", 2, terms...)
		require.NoError(t, err)
		require.True(t, table.Valid(tbl.Bytes()), "table with %d names has a bad checksum", i+1)
	}
}

func TestBuildErrors(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	specs := []struct {
		descr     string
		signature string
		terms     []aml.Term
		expErr    error
	}{
		{"short signature", "DSD", nil, acpierr.ErrInvalidArgument},
		{"long signature", "DSDTX", nil, acpierr.ErrInvalidArgument},
		{"non-printable signature", "DS\x00T", nil, acpierr.ErrInvalidArgument},
		{"invalid name", "DSDT", []aml.Term{&aml.Name{Name: "_HID_", Value: aml.One}}, acpierr.ErrInvalidName},
		{"return outside method", "DSDT", []aml.Term{&aml.Return{}}, acpierr.ErrInvalidPlacement},
		{"bad method flags", "DSDT", []aml.Term{&aml.Method{Name: "FOO", Args: 9}}, acpierr.ErrInvalidMethodFlags},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			tbl, err := b.BuildAML(spec.signature, 2, spec.terms...)
			require.ErrorIs(t, err, spec.expErr)
			require.Nil(t, tbl)
		})
	}
}

func TestNewBuilderErrors(t *testing.T) {
	specs := []struct {
		descr string
		opt   Option
	}{
		{"oem id too long", WithOEM("TOOLONGID", "TABLE", 1)},
		{"oem table id too long", WithOEM("OEM", "TABLEIDXX", 1)},
		{"creator id too long", WithCreator("CREATOR", 1)},
		{"non-printable creator", WithCreator("A\tB", 1)},
		{"nil logger", WithLogger(nil)},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			b, err := NewBuilder(spec.opt)
			require.ErrorIs(t, err, acpierr.ErrInvalidArgument)
			require.Nil(t, b)
		})
	}
}

func TestTableIsImmutable(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	body := []byte{0xaa, 0xbb}
	tbl, err := b.Build("TEST", 1, body)
	require.NoError(t, err)

	body[0] = 0
	data := tbl.Bytes()
	data[table.HeaderSize] = 0

	require.Equal(t, byte(0xaa), tbl.Bytes()[table.HeaderSize])
	require.True(t, table.Valid(tbl.Bytes()))
}

func TestTableWriteTo(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	tbl, err := b.Build("TEST", 1, []byte{1, 2, 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(tbl.Len()), n)
	require.Equal(t, tbl.Bytes(), buf.Bytes())
}

func TestBuildLogsTable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	b, err := NewBuilder(WithLogger(zap.New(core)))
	require.NoError(t, err)

	tbl, err := b.Build("APIC", 5, []byte{0x01})
	require.NoError(t, err)

	entries := logs.FilterMessage("finalized table").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "APIC", fields["signature"])
	require.Equal(t, int64(tbl.Len()), fields["length"])
	require.Equal(t, tbl.Checksum(), fields["checksum"])
}

func TestConcurrentBuilds(t *testing.T) {
	b, err := NewBuilder(WithOEM("OEM", "TABLE", 1))
	require.NoError(t, err)

	reference, err := b.BuildAML("SSDT", 2, &aml.Device{Name: "DEV0"})
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			tbl, err := b.BuildAML("SSDT", 2, &aml.Device{Name: "DEV0"})
			if err != nil {
				return err
			}
			if !bytes.Equal(reference.Bytes(), tbl.Bytes()) {
				return fmt.Errorf("concurrent build produced different output")
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}
