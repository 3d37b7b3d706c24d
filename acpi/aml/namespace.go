package aml

import "acpigen/acpi/acpierr"

// Name binds a data object to a name in the current scope.
//
// Grammar:
// DefName := NameOp NameString DataRefObject
type Name struct {
	Name  string
	Value Term
}

func (n *Name) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	dst = appendOpcode(dst, OpName)
	dst, err := appendName(dst, n.Name)
	if err != nil {
		return nil, err
	}

	return appendTerm(dst, ctx, n.Value)
}

// Scope opens an existing namespace scope and declares Terms inside it.
//
// Grammar:
// DefScope := ScopeOp PkgLength NameString TermList
type Scope struct {
	Name  string
	Terms []Term
}

func (s *Scope) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	return appendNamedBlock(dst, OpScope, s.Name, nil, ctx.namespaceBody(), s.Terms)
}

// Device declares a device object and its contents.
//
// Grammar:
// DefDevice := DeviceOp PkgLength NameString TermList
type Device struct {
	Name  string
	Terms []Term
}

func (d *Device) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	return appendNamedBlock(dst, OpDevice, d.Name, nil, ctx.namespaceBody(), d.Terms)
}

// PowerResource declares a power resource object.
//
// Grammar:
// DefPowerRes := PowerResOp PkgLength NameString SystemLevel ResourceOrder TermList
type PowerResource struct {
	Name          string
	SystemLevel   uint8
	ResourceOrder uint16
	Terms         []Term
}

func (p *PowerResource) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	fixed := []byte{p.SystemLevel, byte(p.ResourceOrder), byte(p.ResourceOrder >> 8)}
	return appendNamedBlock(dst, OpPowerRes, p.Name, fixed, ctx.namespaceBody(), p.Terms)
}

// Method limits.
const (
	MaxMethodArgs      = 7
	MaxMethodSyncLevel = 15
)

// Method declares a control method.
//
// Grammar:
// DefMethod := MethodOp PkgLength NameString MethodFlags TermList
// MethodFlags := ByteData // bit 0-2: ArgCount (0-7)
//                         // bit 3: SerializeFlag
//                         // bit 4-7: SyncLevel (0x00-0x0f)
type Method struct {
	Name       string
	Args       uint8
	Serialized bool
	SyncLevel  uint8
	Body       []Term
}

// Flags returns the packed MethodFlags byte.
func (m *Method) Flags() (uint8, error) {
	if m.Args > MaxMethodArgs {
		return 0, acpierr.New("acpi_aml", acpierr.KindInvalidMethodFlags, "method %q declares %d args; at most %d are supported", m.Name, m.Args, MaxMethodArgs)
	}

	if m.SyncLevel > MaxMethodSyncLevel {
		return 0, acpierr.New("acpi_aml", acpierr.KindInvalidMethodFlags, "method %q sync level %d exceeds %d", m.Name, m.SyncLevel, MaxMethodSyncLevel)
	}

	flags := m.Args | m.SyncLevel<<4
	if m.Serialized {
		flags |= 1 << 3
	}

	return flags, nil
}

func (m *Method) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	flags, err := m.Flags()
	if err != nil {
		return nil, err
	}

	return appendNamedBlock(dst, OpMethod, m.Name, []byte{flags}, ctx.methodBody(), m.Body)
}

// appendNamedBlock encodes the common layout
// Op PkgLength NameString FixedFields TermList.
func appendNamedBlock(dst []byte, op AMLOpcode, name string, fixed []byte, ctx encodeCtx, terms []Term) ([]byte, error) {
	body, err := appendName(nil, name)
	if err != nil {
		return nil, err
	}

	body = append(body, fixed...)
	if body, err = appendTermList(body, ctx, terms); err != nil {
		return nil, err
	}

	return appendPkg(dst, op, body)
}

// Mutex declares a mutex synchronization object.
//
// Grammar:
// DefMutex := MutexOp NameString SyncFlags
// SyncFlags := ByteData // bit 0-3: SyncLevel (0x00-0x0f), bit 4-7: Reserved
type Mutex struct {
	Name      string
	SyncLevel uint8
}

func (m *Mutex) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	if m.SyncLevel > MaxMethodSyncLevel {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "mutex %q sync level %d exceeds %d", m.Name, m.SyncLevel, MaxMethodSyncLevel)
	}

	dst = appendOpcode(dst, OpMutex)
	dst, err := appendName(dst, m.Name)
	if err != nil {
		return nil, err
	}

	return append(dst, m.SyncLevel), nil
}
