package aml

import "io"

// amlReader decodes the primitive encodings produced by this package so
// tests can check that encoded values reconstruct their inputs.
type amlReader struct {
	offset int
	data   []byte
}

func newAMLReader(data []byte) *amlReader {
	return &amlReader{data: data}
}

// EOF returns true if the end of the stream has been reached.
func (r *amlReader) EOF() bool {
	return r.offset == len(r.data)
}

// ReadByte returns the next byte from the stream.
func (r *amlReader) ReadByte() (byte, error) {
	if r.EOF() {
		return 0, io.EOF
	}

	r.offset++
	return r.data[r.offset-1], nil
}

// PeekByte returns the next byte from the stream without advancing the read pointer.
func (r *amlReader) PeekByte() (byte, error) {
	if r.EOF() {
		return 0, io.EOF
	}

	return r.data[r.offset], nil
}

// readPkgLength parses a PkgLength value returning the decoded value and the
// number of bytes it occupied.
func (r *amlReader) readPkgLength() (uint32, int, bool) {
	lead, err := r.ReadByte()
	if err != nil {
		return 0, 0, false
	}

	// The high 2 bits of the lead byte indicate how many bytes follow.
	extra := int(lead >> 6)
	if extra == 0 {
		return uint32(lead), 1, true
	}

	// lead bits 0-3 are the lsb of the length nybble
	pkgLen := uint32(lead & 0xf)
	for i := 0; i < extra; i++ {
		next, err := r.ReadByte()
		if err != nil {
			return 0, 0, false
		}
		pkgLen |= uint32(next) << (4 + 8*uint(i))
	}

	return pkgLen, extra + 1, true
}

// readInteger parses a ConstObj or a byte/word/dword/qword constant returning
// the value and the payload width in bytes.
func (r *amlReader) readInteger() (uint64, int, bool) {
	prefix, err := r.ReadByte()
	if err != nil {
		return 0, 0, false
	}

	var numBytes int
	switch AMLOpcode(prefix) {
	case OpZero:
		return 0, 0, true
	case OpOne:
		return 1, 0, true
	case OpBytePrefix:
		numBytes = 1
	case OpWordPrefix:
		numBytes = 2
	case OpDwordPrefix:
		numBytes = 4
	case OpQwordPrefix:
		numBytes = 8
	default:
		return 0, 0, false
	}

	var res uint64
	for c := 0; c < numBytes; c++ {
		next, err := r.ReadByte()
		if err != nil {
			return 0, 0, false
		}

		res |= uint64(next) << (8 * uint(c))
	}

	return res, numBytes, true
}

// readNameString parses a NameString.
func (r *amlReader) readNameString() (NameString, bool) {
	var ns NameString

	next, err := r.PeekByte()
	if err != nil {
		return ns, false
	}

	switch next {
	case rootChar:
		ns.Root = true
		_, _ = r.ReadByte()
	case parentPrefix:
		for next == parentPrefix {
			ns.Parents++
			_, _ = r.ReadByte()
			if next, err = r.PeekByte(); err != nil {
				return ns, false
			}
		}
	}

	next, err = r.ReadByte()
	if err != nil {
		return ns, false
	}

	var segCount int
	switch next {
	case nullName:
		return ns, true
	case dualNamePrefix:
		segCount = 2
	case multiNamePrefix:
		count, err := r.ReadByte()
		if count == 0 || err != nil {
			return ns, false
		}
		segCount = int(count)
	default:
		if (next < 'A' || next > 'Z') && next != '_' {
			return ns, false
		}
		r.offset--
		segCount = 1
	}

	for i := 0; i < segCount; i++ {
		var seg NameSeg
		for j := range seg {
			if seg[j], err = r.ReadByte(); err != nil {
				return ns, false
			}
		}
		ns.Segments = append(ns.Segments, seg)
	}

	return ns, true
}
