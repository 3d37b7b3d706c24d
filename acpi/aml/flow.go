package aml

import "acpigen/acpi/acpierr"

// If executes Then when Predicate evaluates to a non-zero integer and Else
// otherwise. The Else block is only emitted when Else is non-nil.
//
// Grammar:
// DefIfElse := IfOp PkgLength Predicate TermList DefElse
// DefElse := Nothing | <ElseOp PkgLength TermList>
type If struct {
	Predicate Term
	Then      []Term
	Else      []Term
}

func (s *If) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	body, err := appendTerm(nil, ctx, s.Predicate)
	if err != nil {
		return nil, err
	}

	if body, err = appendTermList(body, ctx, s.Then); err != nil {
		return nil, err
	}

	if dst, err = appendPkg(dst, OpIf, body); err != nil {
		return nil, err
	}

	if s.Else == nil {
		return dst, nil
	}

	elseBody, err := appendTermList(nil, ctx, s.Else)
	if err != nil {
		return nil, err
	}

	return appendPkg(dst, OpElse, elseBody)
}

// While executes Body as long as Predicate evaluates to a non-zero integer.
//
// Grammar:
// DefWhile := WhileOp PkgLength Predicate TermList
type While struct {
	Predicate Term
	Body      []Term
}

func (s *While) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	body, err := appendTerm(nil, ctx, s.Predicate)
	if err != nil {
		return nil, err
	}

	if body, err = appendTermList(body, ctx.loopBody(), s.Body); err != nil {
		return nil, err
	}

	return appendPkg(dst, OpWhile, body)
}

// Return exits the enclosing method. A nil Value returns Zero.
//
// Grammar:
// DefReturn := ReturnOp ArgObject
type Return struct {
	Value Term
}

func (r *Return) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !ctx.inMethod {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidPlacement, "Return outside of a method body")
	}

	dst = appendOpcode(dst, OpReturn)
	if r.Value == nil {
		return AppendInteger(dst, 0), nil
	}

	return appendTerm(dst, ctx, r.Value)
}

// loopControl implements Break and Continue.
type loopControl AMLOpcode

func (l loopControl) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !ctx.inLoop {
		name := "Break"
		if AMLOpcode(l) == OpContinue {
			name = "Continue"
		}
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidPlacement, "%s outside of a While body", name)
	}

	return appendOpcode(dst, AMLOpcode(l)), nil
}

// Break exits the innermost While loop; Continue starts its next iteration.
var (
	Break    Term = loopControl(OpBreak)
	Continue Term = loopControl(OpContinue)
)

type noop struct{}

func (noop) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return appendOpcode(dst, OpNoop), nil
}

// Noop is the no-operation statement.
var Noop Term = noop{}
