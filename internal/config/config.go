// Package config loads platform descriptions that drive table generation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"acpigen/acpi"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Platform describes the tables generated for one machine.
type Platform struct {
	// Identification stamped into every table header
	OEM     OEMConfig     `yaml:"oem" toml:"oem"`
	Creator CreatorConfig `yaml:"creator" toml:"creator"`

	// Tables to generate, written in declaration order
	Tables []TableConfig `yaml:"tables" toml:"tables"`

	// dir is the directory of the file the platform was loaded from. Body
	// paths are resolved against it.
	dir string
}

// OEMConfig holds the OEM identification fields.
type OEMConfig struct {
	ID       string `yaml:"id" toml:"id"`
	TableID  string `yaml:"table_id" toml:"table_id"`
	Revision uint32 `yaml:"revision" toml:"revision"`
}

// CreatorConfig identifies the tool that created the tables.
type CreatorConfig struct {
	ID       string `yaml:"id" toml:"id"`
	Revision uint32 `yaml:"revision" toml:"revision"`
}

// TableConfig describes a single table. AML tables list Devices; any other
// table supplies its pre-built body through Body or is emitted with an empty
// body.
type TableConfig struct {
	Signature string         `yaml:"signature" toml:"signature"`
	Revision  uint8          `yaml:"revision" toml:"revision"`
	Body      string         `yaml:"body" toml:"body"`
	Devices   []DeviceConfig `yaml:"devices" toml:"devices"`
}

// DeviceConfig describes a device object declared in an AML table.
type DeviceConfig struct {
	// Scope defaults to \_SB.
	Scope string `yaml:"scope" toml:"scope"`
	Name  string `yaml:"name" toml:"name"`

	// HID is either a 7-character EISA id such as PNP0A03 or a string id
	// such as ACPI0007.
	HID string  `yaml:"hid" toml:"hid"`
	UID *uint64 `yaml:"uid" toml:"uid"`
	ADR *uint64 `yaml:"adr" toml:"adr"`

	// Status, when set, is returned by a generated _STA method. A status of
	// 0 reports the device as absent.
	Status *uint8 `yaml:"status" toml:"status"`

	Resources []ResourceConfig `yaml:"resources" toml:"resources"`
}

// ResourceConfig describes one entry of a device's _CRS template.
type ResourceConfig struct {
	// Type is one of memory32-fixed, memory, io, io-range, bus or irq.
	Type string `yaml:"type" toml:"type"`

	Base     uint64 `yaml:"base" toml:"base"`
	Length   uint64 `yaml:"length" toml:"length"`
	ReadOnly bool   `yaml:"read_only" toml:"read_only"`

	// Memory ranges only
	Cacheable bool `yaml:"cacheable" toml:"cacheable"`

	// Interrupts only
	Number    uint32 `yaml:"number" toml:"number"`
	Edge      bool   `yaml:"edge" toml:"edge"`
	ActiveLow bool   `yaml:"active_low" toml:"active_low"`
	Shared    bool   `yaml:"shared" toml:"shared"`
}

// DefaultPlatform returns a platform with the default identification and no
// tables.
func DefaultPlatform() *Platform {
	return &Platform{
		OEM: OEMConfig{
			ID:       acpi.DefaultOEMID,
			TableID:  strings.TrimSpace(acpi.DefaultOEMTableID),
			Revision: acpi.DefaultOEMRevision,
		},
		Creator: CreatorConfig{
			ID:       acpi.DefaultCreatorID,
			Revision: acpi.DefaultCreatorRevision,
		},
	}
}

// Load reads a platform description from a .yaml, .yml or .toml file.
// Fields that are absent keep their default values; unknown fields are
// rejected.
func Load(path string) (*Platform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read platform config: %w", err)
	}

	p := DefaultPlatform()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse platform config: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse platform config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse platform config: unknown field %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported platform config format %q (valid: .yaml, .yml, .toml)", ext)
	}

	p.dir = filepath.Dir(path)
	p.applyEnvOverrides()

	return p, nil
}

// applyEnvOverrides applies environment variable overrides.
func (p *Platform) applyEnvOverrides() {
	if id := os.Getenv("ACPIGEN_OEM_ID"); id != "" {
		p.OEM.ID = id
	}
	if id := os.Getenv("ACPIGEN_OEM_TABLE_ID"); id != "" {
		p.OEM.TableID = id
	}
	if id := os.Getenv("ACPIGEN_CREATOR_ID"); id != "" {
		p.Creator.ID = id
	}
}

// BuilderOptions returns the table builder options matching the platform
// identification fields.
func (p *Platform) BuilderOptions() []acpi.Option {
	return []acpi.Option{
		acpi.WithOEM(p.OEM.ID, p.OEM.TableID, p.OEM.Revision),
		acpi.WithCreator(p.Creator.ID, p.Creator.Revision),
	}
}

// BodyPath returns the location of the table body file, resolved relative
// to the platform file.
func (p *Platform) BodyPath(t *TableConfig) string {
	if t.Body == "" || filepath.IsAbs(t.Body) {
		return t.Body
	}
	return filepath.Join(p.dir, t.Body)
}

// ValidResourceTypes lists the supported resource descriptor types.
var ValidResourceTypes = []string{"memory32-fixed", "memory", "io", "io-range", "bus", "irq"}

// Validate checks the structure of the platform description. Name syntax
// and value ranges are checked when the tables are encoded.
func (p *Platform) Validate() error {
	if len(p.Tables) == 0 {
		return fmt.Errorf("platform declares no tables")
	}

	seen := make(map[string]bool)
	for i := range p.Tables {
		t := &p.Tables[i]
		if len(t.Signature) != 4 {
			return fmt.Errorf("table %d: signature %q must be 4 characters long", i, t.Signature)
		}

		// Only secondary tables may appear more than once.
		if seen[t.Signature] && t.Signature != "SSDT" {
			return fmt.Errorf("table %d: duplicate %s table", i, t.Signature)
		}
		seen[t.Signature] = true

		switch {
		case t.Body != "" && len(t.Devices) > 0:
			return fmt.Errorf("table %s: body and devices are mutually exclusive", t.Signature)
		case len(t.Devices) > 0 && !t.IsAML():
			return fmt.Errorf("table %s: devices can only be declared in DSDT and SSDT tables", t.Signature)
		}

		for _, dev := range t.Devices {
			if dev.Name == "" {
				return fmt.Errorf("table %s: device without a name", t.Signature)
			}
			for _, res := range dev.Resources {
				if !isValidResourceType(res.Type) {
					return fmt.Errorf("device %s: invalid resource type: %s (valid: %v)", dev.Name, res.Type, ValidResourceTypes)
				}
			}
		}
	}

	return nil
}

// IsAML returns true if the table body is a definition block.
func (t *TableConfig) IsAML() bool {
	return t.Signature == "DSDT" || t.Signature == "SSDT"
}

func isValidResourceType(typ string) bool {
	for _, valid := range ValidResourceTypes {
		if typ == valid {
			return true
		}
	}
	return false
}
