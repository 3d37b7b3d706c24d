// Package aml encodes trees of AML terms into the byte code stored in
// DSDT/SSDT tables.
//
// A tree is built from plain values (Integer, String, Package, ...) and
// records (Scope, Device, Method, ...), all of which implement Term. Encoding
// walks the tree depth-first in declaration order; composite terms encode
// their children first and then prefix the result with their opcode and a
// PkgLength. Encoding never mutates the tree so the same tree always yields
// the same bytes.
package aml

import (
	"reflect"

	"acpigen/acpi/acpierr"
)

// Term is implemented by every AML node kind defined in this package. Record
// kinds are used through pointers; a nil interface or nil pointer fails with
// ErrInvalidArgument.
type Term interface {
	appendAML(dst []byte, ctx encodeCtx) ([]byte, error)
}

// encodeCtx tracks the enclosing constructs of the term being encoded so
// that terms that are only legal inside method or loop bodies can be
// rejected.
type encodeCtx struct {
	inMethod bool
	inLoop   bool
}

// methodBody returns the context for the body of a control method.
func (encodeCtx) methodBody() encodeCtx {
	return encodeCtx{inMethod: true}
}

// loopBody returns the context for the body of a While loop.
func (ctx encodeCtx) loopBody() encodeCtx {
	ctx.inLoop = true
	return ctx
}

// namespaceBody returns the context for the body of a scope-like term whose
// contents are declarations rather than executable statements.
func (encodeCtx) namespaceBody() encodeCtx {
	return encodeCtx{}
}

// Encode returns the byte code for a single term.
func Encode(t Term) ([]byte, error) {
	return appendTerm(nil, encodeCtx{}, t)
}

// EncodeTermList returns the byte code for a list of top-level terms, as
// stored in the body of a definition block.
func EncodeTermList(terms ...Term) ([]byte, error) {
	return appendTermList(nil, encodeCtx{}, terms)
}

func appendTerm(dst []byte, ctx encodeCtx, t Term) ([]byte, error) {
	if isNil(t) {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "nil term")
	}

	return t.appendAML(dst, ctx)
}

// isNil reports whether v is nil or holds a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// appendTermList encodes terms in order. Any failure discards dst.
func appendTermList(dst []byte, ctx encodeCtx, terms []Term) ([]byte, error) {
	var err error
	for _, t := range terms {
		if dst, err = appendTerm(dst, ctx, t); err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// appendTarget encodes an optional Target operand. A nil target is encoded as
// a NullName.
//
// Grammar:
// Target := SuperName | NullName
func appendTarget(dst []byte, ctx encodeCtx, target Term) ([]byte, error) {
	if target == nil {
		return append(dst, nullName), nil
	}

	return appendTerm(dst, ctx, target)
}

// Raw is a pre-encoded byte sequence that is copied verbatim into the output.
// It is meant for byte code produced by other tools; the encoder does not
// validate its contents.
type Raw []byte

func (r Raw) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return append(dst, r...), nil
}
