package cpu

import (
	"errors"

	"github.com/ezrec/asmjr/translate"
)

var f = translate.From

var (
	// Internal errors
	ErrImpossible = errors.New(f("this should not be possible"))

	// Instruction encode errors
	ErrEmptyInstruction = errors.New(f("empty instruction"))

	// Program decode errors
	ErrProgramTruncated = errors.New(f("program truncated"))
	ErrProgramTrailing  = errors.New(f("program has trailing data"))
)

// ErrGrammar is a source text failure that is not bound to an assembled line.
type ErrGrammar string

func (err ErrGrammar) Error() string {
	return f("grammar: %v", string(err))
}

// ErrUnknownAlias is an alias definition whose value is neither a register
// number nor a known alias.
type ErrUnknownAlias string

func (err ErrUnknownAlias) Error() string {
	return f("invalid alias: %q", string(err))
}

// ErrUnknownMnemonic is an instruction name not in the mnemonic table.
type ErrUnknownMnemonic string

func (err ErrUnknownMnemonic) Error() string {
	return f("unrecognized opcode: [%v]", string(err))
}

// ErrOperandCount is an instruction with the wrong number of operands.
type ErrOperandCount struct {
	Got      int
	Expected int
}

func (err ErrOperandCount) Error() string {
	return f("wrong number of arguments: got %d, expected %d", err.Got, err.Expected)
}

type ErrUnresolvedImmediate string

func (err ErrUnresolvedImmediate) Error() string {
	return f("immediate %q is not a literal or known label", string(err))
}

type ErrUnresolvedRegister string

func (err ErrUnresolvedRegister) Error() string {
	return f("register %q is not a literal or known alias", string(err))
}

// ErrParseExpression is a $(...) expression that did not evaluate to a number.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an error on a line of the assembly source.
type ErrSyntax struct {
	LineNo int    // 1-based source line number.
	Line   string // Raw source line text.
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d [\"%v\"] %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
