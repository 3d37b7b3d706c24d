package aml

import (
	"strings"

	"acpigen/acpi/acpierr"
)

// maxSegments is the largest segment count a MultiNamePath can declare.
const maxSegments = 255

// NameSeg is a single 4-character name component.
//
// Grammar:
// NameSeg := <LeadNameChar NameChar NameChar NameChar>
// LeadNameChar := 'A'-'Z' | '_'
// NameChar := DigitChar | LeadNameChar
type NameSeg [4]byte

// NewNameSeg validates s and right-pads it with '_' to 4 characters. Segments
// longer than 4 characters are rejected rather than truncated.
func NewNameSeg(s string) (NameSeg, error) {
	var seg NameSeg

	if len(s) == 0 || len(s) > len(seg) {
		return seg, acpierr.New("acpi_aml", acpierr.KindInvalidName, "name segment %q must be 1 to 4 characters long", s)
	}

	for i := 0; i < len(seg); i++ {
		if i >= len(s) {
			seg[i] = '_'
			continue
		}
		seg[i] = s[i]
	}

	if err := seg.validate(); err != nil {
		return NameSeg{}, err
	}

	return seg, nil
}

// validate checks that every character of s is legal at its position.
func (s NameSeg) validate() error {
	for i, c := range s {
		switch {
		case c == '_', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return acpierr.New("acpi_aml", acpierr.KindInvalidName, "name segment %q contains invalid character %q at index %d", s[:], c, i)
		}
	}

	return nil
}

// String returns the segment characters.
func (s NameSeg) String() string {
	return string(s[:])
}

// NameString is a reference to an object in the ACPI namespace. A NameString
// is either absolute (Root set), relative to an ancestor scope (Parents > 0)
// or relative to the current scope with the usual upward search rules.
//
// Grammar:
// NameString := <RootChar NamePath> | <PrefixPath NamePath>
// PrefixPath := Nothing | <'^' PrefixPath>
// NamePath := NameSeg | DualNamePath | MultiNamePath | NullName
type NameString struct {
	Root     bool
	Parents  int
	Segments []NameSeg
}

// NewNameString builds a NameString from its components, validating and
// padding each segment.
func NewNameString(root bool, parents int, segments ...string) (NameString, error) {
	ns := NameString{Root: root, Parents: parents}
	if err := ns.validate(); err != nil {
		return NameString{}, err
	}

	if len(segments) > maxSegments {
		return NameString{}, acpierr.New("acpi_aml", acpierr.KindInvalidName, "name path has %d segments; at most %d are supported", len(segments), maxSegments)
	}

	for _, s := range segments {
		seg, err := NewNameSeg(s)
		if err != nil {
			return NameString{}, err
		}
		ns.Segments = append(ns.Segments, seg)
	}

	return ns, nil
}

// ParsePath parses an ASL-style path such as `\_SB.PCI0`, `^^FOO` or
// `_HID` into a NameString. An empty path yields the null name.
func ParsePath(path string) (NameString, error) {
	var (
		root    bool
		parents int
		rest    = path
	)

	switch {
	case strings.HasPrefix(rest, string(rootChar)):
		root, rest = true, rest[1:]
	default:
		for strings.HasPrefix(rest, string(parentPrefix)) {
			parents, rest = parents+1, rest[1:]
		}
	}

	if rest == "" {
		return NewNameString(root, parents)
	}

	return NewNameString(root, parents, strings.Split(rest, ".")...)
}

func (ns NameString) validate() error {
	switch {
	case ns.Parents < 0:
		return acpierr.New("acpi_aml", acpierr.KindInvalidName, "negative parent prefix count %d", ns.Parents)
	case ns.Root && ns.Parents > 0:
		return acpierr.New("acpi_aml", acpierr.KindInvalidName, "a name cannot be both absolute and parent-relative")
	case len(ns.Segments) > maxSegments:
		return acpierr.New("acpi_aml", acpierr.KindInvalidName, "name path has %d segments; at most %d are supported", len(ns.Segments), maxSegments)
	}

	for _, seg := range ns.Segments {
		if err := seg.validate(); err != nil {
			return err
		}
	}

	return nil
}

// AppendTo appends the AML encoding of the name to dst.
func (ns NameString) AppendTo(dst []byte) ([]byte, error) {
	if err := ns.validate(); err != nil {
		return nil, err
	}

	if ns.Root {
		dst = append(dst, rootChar)
	}
	for i := 0; i < ns.Parents; i++ {
		dst = append(dst, parentPrefix)
	}

	switch len(ns.Segments) {
	case 0:
		return append(dst, nullName), nil
	case 1:
	case 2:
		dst = append(dst, dualNamePrefix)
	default:
		dst = append(dst, multiNamePrefix, byte(len(ns.Segments)))
	}

	for _, seg := range ns.Segments {
		dst = append(dst, seg[:]...)
	}

	return dst, nil
}

// String returns the ASL representation of the name.
func (ns NameString) String() string {
	var sb strings.Builder
	if ns.Root {
		sb.WriteByte(rootChar)
	}
	for i := 0; i < ns.Parents; i++ {
		sb.WriteByte(parentPrefix)
	}
	for i, seg := range ns.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.Write(seg[:])
	}
	return sb.String()
}

func (ns NameString) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return ns.AppendTo(dst)
}

// Path is a name reference expressed in ASL syntax. It is parsed when the
// enclosing tree is encoded.
type Path string

func (p Path) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return appendName(dst, string(p))
}

// appendName parses path and appends its encoding to dst.
func appendName(dst []byte, path string) ([]byte, error) {
	ns, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	return ns.AppendTo(dst)
}

// appendNameSeg validates a single segment name and appends it to dst.
func appendNameSeg(dst []byte, name string) ([]byte, error) {
	seg, err := NewNameSeg(name)
	if err != nil {
		return nil, err
	}

	return append(dst, seg[:]...), nil
}
