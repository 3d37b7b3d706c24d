// Package acpi assembles complete ACPI system description tables from a raw
// body or a tree of AML terms.
package acpi

import (
	"io"

	"acpigen/acpi/acpierr"
	"acpigen/acpi/aml"
	"acpigen/acpi/table"

	"go.uber.org/zap"
)

// Default identification fields stamped into generated table headers.
const (
	DefaultOEMID           = "ACPIGN"
	DefaultOEMTableID      = "ACPIGEN "
	DefaultOEMRevision     = 1
	DefaultCreatorID       = "AGEN"
	DefaultCreatorRevision = 1
)

// Builder stamps the SDT header of generated tables. A Builder is read-only
// once constructed and may be shared by concurrent Build calls.
type Builder struct {
	oemID           [6]byte
	oemTableID      [8]byte
	oemRevision     uint32
	creatorID       [4]byte
	creatorRevision uint32

	logger *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithOEM sets the OEM identification fields. id and tableID are padded with
// spaces and must fit 6 and 8 bytes respectively.
func WithOEM(id, tableID string, revision uint32) Option {
	return func(b *Builder) error {
		if err := table.PadID(b.oemID[:], id); err != nil {
			return err
		}
		if err := table.PadID(b.oemTableID[:], tableID); err != nil {
			return err
		}
		b.oemRevision = revision
		return nil
	}
}

// WithCreator sets the identification of the tool that created the table.
func WithCreator(id string, revision uint32) Option {
	return func(b *Builder) error {
		if err := table.PadID(b.creatorID[:], id); err != nil {
			return err
		}
		b.creatorRevision = revision
		return nil
	}
}

// WithLogger sets the logger used to report finalized tables.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			return acpierr.New("acpi", acpierr.KindInvalidArgument, "nil logger")
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder returns a Builder configured with the supplied options applied
// on top of the package defaults.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		oemRevision:     DefaultOEMRevision,
		creatorRevision: DefaultCreatorRevision,
		logger:          zap.NewNop(),
	}

	// The defaults are known to be valid.
	_ = table.PadID(b.oemID[:], DefaultOEMID)
	_ = table.PadID(b.oemTableID[:], DefaultOEMTableID)
	_ = table.PadID(b.creatorID[:], DefaultCreatorID)

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build wraps body with an SDT header and returns the finalized table.
func (b *Builder) Build(signature string, revision uint8, body []byte) (*Table, error) {
	hdr := table.SDTHeader{
		Revision:        revision,
		OEMID:           b.oemID,
		OEMTableID:      b.oemTableID,
		OEMRevision:     b.oemRevision,
		CreatorID:       b.creatorID,
		CreatorRevision: b.creatorRevision,
	}

	if err := setSignature(&hdr, signature); err != nil {
		return nil, err
	}

	data, err := table.Finalize(hdr, body)
	if err != nil {
		return nil, err
	}

	tbl := &Table{data: data}
	b.logger.Debug("finalized table",
		zap.String("signature", signature),
		zap.Int("length", tbl.Len()),
		zap.Uint8("checksum", tbl.Checksum()),
	)

	return tbl, nil
}

// BuildAML encodes terms as a definition block and wraps it with an SDT
// header. It is used for DSDT and SSDT tables.
func (b *Builder) BuildAML(signature string, revision uint8, terms ...aml.Term) (*Table, error) {
	body, err := aml.EncodeTermList(terms...)
	if err != nil {
		b.logger.Debug("AML encoding failed", zap.String("signature", signature), zap.Error(err))
		return nil, err
	}

	return b.Build(signature, revision, body)
}

// setSignature validates signature and copies it into the header.
func setSignature(hdr *table.SDTHeader, signature string) error {
	if len(signature) != len(hdr.Signature) {
		return acpierr.New("acpi", acpierr.KindInvalidArgument, "table signature %q must be %d characters long", signature, len(hdr.Signature))
	}

	for i := 0; i < len(signature); i++ {
		if signature[i] < 0x20 || signature[i] > 0x7e {
			return acpierr.New("acpi", acpierr.KindInvalidArgument, "table signature %q contains non-printable character 0x%x", signature, signature[i])
		}
		hdr.Signature[i] = signature[i]
	}

	return nil
}

// Table is a finalized ACPI table. Its contents never change after Build
// returns it.
type Table struct {
	data []byte
}

// Bytes returns a copy of the table contents.
func (t *Table) Bytes() []byte {
	return append([]byte(nil), t.data...)
}

// Len returns the table length in bytes.
func (t *Table) Len() int {
	return len(t.data)
}

// Signature returns the 4-character table signature.
func (t *Table) Signature() string {
	return string(t.data[:4])
}

// Checksum returns the checksum byte stored in the header.
func (t *Table) Checksum() uint8 {
	return t.data[9]
}

// WriteTo writes the table contents to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.data)
	return int64(n), err
}
