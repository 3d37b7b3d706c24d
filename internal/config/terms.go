package config

import (
	"fmt"

	"acpigen/acpi/aml"
)

// defaultScope is the scope devices are declared in when none is given.
const defaultScope = `\_SB`

// Terms converts the devices of an AML table into a definition block. Devices
// are grouped into one Scope per distinct scope path, in order of first
// appearance.
func (t *TableConfig) Terms() ([]aml.Term, error) {
	var (
		scopes []*aml.Scope
		index  = make(map[string]*aml.Scope)
	)

	for i := range t.Devices {
		dev := &t.Devices[i]

		devTerm, err := dev.Term()
		if err != nil {
			return nil, err
		}

		path := dev.Scope
		if path == "" {
			path = defaultScope
		}

		scope, ok := index[path]
		if !ok {
			scope = &aml.Scope{Name: path}
			index[path] = scope
			scopes = append(scopes, scope)
		}
		scope.Terms = append(scope.Terms, devTerm)
	}

	terms := make([]aml.Term, 0, len(scopes))
	for _, scope := range scopes {
		terms = append(terms, scope)
	}

	return terms, nil
}

// Term returns the Device object described by d.
func (d *DeviceConfig) Term() (*aml.Device, error) {
	dev := &aml.Device{Name: d.Name}

	if d.HID != "" {
		dev.Terms = append(dev.Terms, &aml.Name{Name: "_HID", Value: hardwareID(d.HID)})
	}
	if d.UID != nil {
		dev.Terms = append(dev.Terms, &aml.Name{Name: "_UID", Value: aml.Integer(*d.UID)})
	}
	if d.ADR != nil {
		dev.Terms = append(dev.Terms, &aml.Name{Name: "_ADR", Value: aml.Integer(*d.ADR)})
	}

	if len(d.Resources) > 0 {
		var tmpl aml.ResourceTemplate
		for _, rc := range d.Resources {
			res, err := rc.Resource()
			if err != nil {
				return nil, fmt.Errorf("device %s: %w", d.Name, err)
			}
			tmpl = append(tmpl, res)
		}
		dev.Terms = append(dev.Terms, &aml.Name{Name: "_CRS", Value: tmpl})
	}

	if d.Status != nil {
		dev.Terms = append(dev.Terms, &aml.Method{
			Name: "_STA",
			Body: []aml.Term{&aml.Return{Value: aml.Integer(*d.Status)}},
		})
	}

	return dev, nil
}

// hardwareID returns the compressed form of EISA ids and a string for
// anything else.
func hardwareID(id string) aml.Term {
	if _, err := aml.EISAName(id).Value(); err == nil {
		return aml.EISAName(id)
	}
	return aml.String(id)
}

// Resource returns the descriptor described by r.
func (r *ResourceConfig) Resource() (aml.Resource, error) {
	if r.Type == "irq" {
		return &aml.Interrupt{
			Consumer:      true,
			EdgeTriggered: r.Edge,
			ActiveLow:     r.ActiveLow,
			Shared:        r.Shared,
			Number:        r.Number,
		}, nil
	}

	if r.Length == 0 {
		return nil, fmt.Errorf("%s resource at 0x%x has zero length", r.Type, r.Base)
	}

	last := r.Base + r.Length - 1
	if last < r.Base {
		return nil, fmt.Errorf("%s resource at 0x%x: length 0x%x overflows", r.Type, r.Base, r.Length)
	}

	switch r.Type {
	case "memory32-fixed":
		if last > 0xffffffff {
			return nil, fmt.Errorf("memory32-fixed resource 0x%x-0x%x exceeds 32 bits", r.Base, last)
		}
		return &aml.Memory32Fixed{ReadWrite: !r.ReadOnly, Base: uint32(r.Base), Length: uint32(r.Length)}, nil
	case "memory":
		cache := aml.NotCacheable
		if r.Cacheable {
			cache = aml.Cacheable
		}
		return aml.NewMemoryAddressSpace(r.Base, last, cache, !r.ReadOnly), nil
	case "io":
		if last > 0xffff || r.Length > 0xff {
			return nil, fmt.Errorf("io resource 0x%x+0x%x does not fit a fixed I/O descriptor", r.Base, r.Length)
		}
		return &aml.IO{Min: uint16(r.Base), Max: uint16(r.Base), Alignment: 1, Length: uint8(r.Length)}, nil
	case "io-range":
		if last > 0xffff {
			return nil, fmt.Errorf("io-range resource 0x%x-0x%x exceeds 16 bits", r.Base, last)
		}
		return aml.NewIOAddressSpace(uint16(r.Base), uint16(last)), nil
	case "bus":
		if last > 0xff {
			return nil, fmt.Errorf("bus resource %d-%d exceeds bus 255", r.Base, last)
		}
		return aml.NewBusNumberAddressSpace(uint16(r.Base), uint16(last)), nil
	default:
		return nil, fmt.Errorf("invalid resource type: %s (valid: %v)", r.Type, ValidResourceTypes)
	}
}
