// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/asmjr/internal"
)

// Assembler is a two pass assembler for the ECJR instruction set.
//
// The Assembler only holds configuration; symbol tables are created fresh
// by every call to Parse, so one Assembler may be used for several
// concurrent assemblies once configured.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]float64 // Predefined constants.
}

// Predefine defines a new constant or redefines an existing constant
// for all following assemblies.
func (asm *Assembler) Predefine(name string, value float64) {
	if asm.predefine == nil {
		asm.predefine = map[string]float64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// findLabels records the instruction address of every label.
func findLabels(lines []Line) map[string]float64 {
	labels := make(map[string]float64)

	var ip uint32
	for _, line := range lines {
		switch line.Kind {
		case LINE_LABEL:
			labels[line.Name] = float64(ip)
		case LINE_OP:
			ip++
		}
	}

	return labels
}

// Parse parses an input stream into a Program.
//
// Errors on a source line are returned as *ErrSyntax. Nothing is returned
// on error; there is no partial program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lines, err := Tokenize(input)
	if err != nil {
		return
	}

	// An instruction may refer to a label defined further on,
	// so all labels are placed before anything is encoded.
	syms := NewSymbols()
	maps.Insert(syms.Constant, internal.IterSeq2Concat(
		maps.All(findLabels(lines)),
		MemoryMap(),
		maps.All(asm.predefine),
	))

	opcodes := make([]Opcode, 0, len(lines))
	for _, line := range lines {
		if asm.Verbose {
			log.Printf("%v: %v %v\n", line.LineNo, line.Kind, strings.TrimSpace(line.Text))
		}

		ip := uint32(len(opcodes))

		switch line.Kind {
		case LINE_LABEL:
			// Placed by findLabels.
		case LINE_ALIAS:
			err = syms.DefineAlias(line.Name, line.Words[0])
		case LINE_CONST:
			err = syms.DefineConstant(line.Name, line.Words[0])
		case LINE_OP:
			var code Code
			code, err = syms.Encode(line.Words, ip)
			if err == nil {
				opcodes = append(opcodes, Opcode{LineNo: line.LineNo, Ip: ip, Words: line.Words, Code: code})
			}
		default:
			err = ErrImpossible
		}

		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}
	}

	prog = &Program{
		Opcodes: opcodes,
	}

	return
}

// Assemble assembles source text with a default Assembler.
func Assemble(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}
