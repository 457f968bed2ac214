package cpu

import (
	"errors"
	"maps"
	"math"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/asmjr/internal"
)

// Symbols are the alias and constant tables of a single assembly.
//
// A Symbols is not safe for concurrent use; every assembly owns its own.
type Symbols struct {
	Alias    map[string]uint8   // Register aliases.
	Constant map[string]float64 // Labels, memory map and defined constants.
}

// NewSymbols returns symbol tables holding only the built-in register aliases.
func NewSymbols() *Symbols {
	return &Symbols{
		Alias:    maps.Collect(internal.IterSeq2Concat(maps.All(sysAlias), registerNames())),
		Constant: make(map[string]float64),
	}
}

// parseInteger parses a decimal, or 0x, 0o or 0b prefixed integer.
func parseInteger(word string, bitSize int) (neg bool, value uint64, ok bool) {
	digits := word
	switch {
	case strings.HasPrefix(digits, "-"):
		neg = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			digits = digits[2:]
		}
	}

	value, err := strconv.ParseUint(digits, base, bitSize)
	ok = err == nil
	return
}

// registerLiteral parses an unsigned 8-bit integer literal.
func registerLiteral(word string) (reg uint8, ok bool) {
	neg, value, ok := parseInteger(word, 8)
	if !ok || neg {
		return 0, false
	}
	return uint8(value), true
}

// integerLiteral parses a signed 64-bit integer literal.
func integerLiteral(word string) (value float64, ok bool) {
	neg, u64, ok := parseInteger(word, 64)
	if !ok {
		return
	}
	switch {
	case neg && u64 <= 1<<63:
		value = -float64(u64)
	case !neg && u64 <= math.MaxInt64:
		value = float64(u64)
	default:
		ok = false
	}
	return
}

// floatLiteral parses a decimal floating point literal.
func floatLiteral(word string) (value float64, ok bool) {
	unsigned := strings.TrimLeft(word, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return
	}
	value, err := strconv.ParseFloat(word, 64)
	// Out of range literals saturate to an infinity.
	ok = err == nil || errors.Is(err, strconv.ErrRange)
	return
}

// stringLiteral packs the bytes of a quoted string into an immediate,
// first byte least significant. A backslash takes the next byte literally.
func stringLiteral(word string) (value float64, ok bool) {
	if len(word) < 2 || word[0] != '"' || word[len(word)-1] != '"' {
		return
	}

	mult := 1.0
	escaped := false
	for _, c := range []byte(word[1 : len(word)-1]) {
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		value += float64(c) * mult
		mult *= 256
	}

	return value, true
}

// isExpression reports if word is a $(...) expression.
func isExpression(word string) bool {
	return len(word) >= 3 && strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")")
}

// parenEval does compile-time $(...) evaluations
func (syms *Symbols) parenEval(expr string) (value float64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, constant := range syms.Constant {
		// '$' memory map names are not identifiers.
		if strings.HasPrefix(key, "$") {
			continue
		}
		if constant == math.Trunc(constant) && math.Abs(constant) < 1<<53 {
			pred[key] = starlark.MakeInt64(int64(constant))
		} else {
			pred[key] = starlark.Float(constant)
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	switch rc := dict["rc"].(type) {
	case starlark.Int:
		st_int64, ok := rc.Int64()
		if !ok {
			err = ErrParseExpression(expr)
			return
		}
		value = float64(st_int64)
	case starlark.Float:
		value = float64(rc)
	default:
		err = ErrParseExpression(expr)
	}
	return
}

// Register resolves a register operand: an 8-bit literal or an alias.
func (syms *Symbols) Register(word string) (reg uint8, err error) {
	reg, ok := registerLiteral(word)
	if ok {
		return
	}
	reg, ok = syms.Alias[word]
	if !ok {
		err = ErrUnresolvedRegister(word)
	}
	return
}

// Immediate resolves an immediate operand for the instruction at ip.
//
// Literals are taken as-is. Named constants (including labels) are made
// relative to ip when relative is set.
func (syms *Symbols) Immediate(word string, ip uint32, relative bool) (value float64, err error) {
	if value, ok := stringLiteral(word); ok {
		return value, nil
	}
	if isExpression(word) {
		return syms.parenEval(word[2 : len(word)-1])
	}
	if value, ok := floatLiteral(word); ok {
		return value, nil
	}
	if value, ok := integerLiteral(word); ok {
		return value, nil
	}

	value, ok := syms.Constant[word]
	if !ok {
		err = ErrUnresolvedImmediate(word)
		return
	}
	if relative {
		value -= float64(ip)
	}

	return
}

// DefineAlias makes name refer to the register given by value,
// either a literal or an existing alias.
func (syms *Symbols) DefineAlias(name string, value string) (err error) {
	reg, ok := registerLiteral(value)
	if !ok {
		reg, ok = syms.Alias[value]
	}
	if !ok {
		err = ErrUnknownAlias(value)
		return
	}
	syms.Alias[name] = reg
	return
}

// DefineConstant sets name to the absolute immediate value.
func (syms *Symbols) DefineConstant(name string, value string) (err error) {
	imm, err := syms.Immediate(value, 0, false)
	if err != nil {
		return
	}
	syms.Constant[name] = imm
	return
}

// Encode encodes an instruction, given as its mnemonic followed by its
// operands, for the instruction address ip.
func (syms *Symbols) Encode(words []string, ip uint32) (code Code, err error) {
	if len(words) == 0 {
		err = ErrEmptyInstruction
		return
	}

	mn, err := Lookup(words[0])
	if err != nil {
		return
	}

	args := words[1:]
	if len(args) != mn.Arity() {
		err = ErrOperandCount{Got: len(args), Expected: mn.Arity()}
		return
	}

	code.Op = mn.Op
	for n, word := range args {
		role := mn.Args[n]
		switch {
		case role == ROLE_IMM:
			code.Imm, err = syms.Immediate(word, ip, mn.Relative)
		case role.Register():
			var reg uint8
			reg, err = syms.Register(word)
			if err == nil {
				err = code.setRegister(role, reg)
			}
		default:
			err = ErrImpossible
		}
		if err != nil {
			code = Code{}
			return
		}
	}

	return
}
