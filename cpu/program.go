package cpu

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"math"
	"strings"
)

const (
	PROGRAM_COUNT_SIZE = 4 // Little-endian u32 instruction count.
	PROGRAM_IMM_SIZE   = 8 // Little-endian f64 immediate, per instruction.
	PROGRAM_OP_SIZE    = 4 // Opcode, rd, rs1, rs2, per instruction.
)

// Opcode is an assembled instruction and where it came from.
type Opcode struct {
	LineNo int      // Source line number, 0 if not assembled from source.
	Ip     uint32   // Instruction address.
	Words  []string // Source mnemonic and operands.
	Code   Code     // Encoded instruction.
}

// Program is an assembled instruction sequence.
// The address of each instruction is its index.
type Program struct {
	Opcodes []Opcode
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Debug returns the opcode at ip, or nil if ip is outside the program.
func (prog *Program) Debug(ip uint32) (op *Opcode) {
	if int64(ip) < int64(len(prog.Opcodes)) {
		op = &prog.Opcodes[ip]
	}
	return
}

// Codes iterates over the instructions and their addresses.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(ip uint32, code Code) bool) {
		for n, op := range prog.Opcodes {
			if !yield(uint32(n), op.Code) {
				return
			}
		}
	}
}

// MarshalBinary serializes the program: the instruction count, then every
// immediate, then the opcode and register bytes of every instruction.
func (prog *Program) MarshalBinary() (data []byte, err error) {
	count := len(prog.Opcodes)
	if uint64(count) > math.MaxUint32 {
		err = ErrImpossible
		return
	}

	data = make([]byte, 0, PROGRAM_COUNT_SIZE+count*(PROGRAM_IMM_SIZE+PROGRAM_OP_SIZE))
	data = binary.LittleEndian.AppendUint32(data, uint32(count))
	for _, code := range prog.Codes() {
		data = binary.LittleEndian.AppendUint64(data, math.Float64bits(code.Imm))
	}
	for _, code := range prog.Codes() {
		data = append(data, code.Op, code.Rd, code.Rs1, code.Rs2)
	}

	return
}

// UnmarshalBinary replaces the program with one decoded from data.
// Decoded opcodes have no source location.
func (prog *Program) UnmarshalBinary(data []byte) (err error) {
	if len(data) < PROGRAM_COUNT_SIZE {
		err = ErrProgramTruncated
		return
	}

	count := uint64(binary.LittleEndian.Uint32(data))
	data = data[PROGRAM_COUNT_SIZE:]

	need := count * (PROGRAM_IMM_SIZE + PROGRAM_OP_SIZE)
	switch {
	case uint64(len(data)) < need:
		err = ErrProgramTruncated
		return
	case uint64(len(data)) > need:
		err = ErrProgramTrailing
		return
	}

	imms := data[:count*PROGRAM_IMM_SIZE]
	ops := data[count*PROGRAM_IMM_SIZE:]

	opcodes := make([]Opcode, count)
	for n := range opcodes {
		imm := imms[n*PROGRAM_IMM_SIZE:]
		op := ops[n*PROGRAM_OP_SIZE:]
		opcodes[n] = Opcode{
			Ip: uint32(n),
			Code: Code{
				Op:  op[0],
				Rd:  op[1],
				Rs1: op[2],
				Rs2: op[3],
				Imm: math.Float64frombits(binary.LittleEndian.Uint64(imm)),
			},
		}
	}

	prog.Opcodes = opcodes

	return
}

// Listing writes one line per instruction: its address, its disassembly,
// and its source line when known.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		if op.LineNo > 0 {
			_, err = fmt.Fprintf(w, "%v: %v\t; %d: %v\n", op.Ip, op.Code, op.LineNo, strings.Join(op.Words, " "))
		} else {
			_, err = fmt.Fprintf(w, "%v: %v\n", op.Ip, op.Code)
		}
		if err != nil {
			return
		}
	}

	return
}
