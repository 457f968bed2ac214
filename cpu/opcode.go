package cpu

import (
	"fmt"
	"maps"
	"strings"
)

// Role is the part an operand plays in an instruction.
type Role int

//go:generate go tool stringer -linecomment -type=Role
const (
	ROLE_NONE = Role(0) // -
	ROLE_RD   = Role(1) // rd
	ROLE_RS1  = Role(2) // rs1
	ROLE_RS2  = Role(3) // rs2
	ROLE_IMM  = Role(4) // imm
)

// Register reports if the role is filled by a register number.
func (role Role) Register() bool {
	return role == ROLE_RD || role == ROLE_RS1 || role == ROLE_RS2
}

// Mnemonic describes the encoding of one instruction name.
type Mnemonic struct {
	Op       uint8   // Opcode byte.
	Args     [3]Role // Operand roles, in source order, padded with ROLE_NONE.
	Relative bool    // If set, label immediates are relative to the instruction address.
}

// Arity returns the number of operands the mnemonic takes.
func (mn Mnemonic) Arity() (count int) {
	for _, role := range mn.Args {
		if role != ROLE_NONE {
			count++
		}
	}
	return
}

// Operand shapes.
var (
	argsNone = [3]Role{ROLE_NONE, ROLE_NONE, ROLE_NONE}
	argsD    = [3]Role{ROLE_RD, ROLE_NONE, ROLE_NONE}
	argsDI   = [3]Role{ROLE_RD, ROLE_IMM, ROLE_NONE}
	argsDR   = [3]Role{ROLE_RD, ROLE_RS1, ROLE_NONE}
	argsDRR  = [3]Role{ROLE_RD, ROLE_RS1, ROLE_RS2}
	argsDRI  = [3]Role{ROLE_RD, ROLE_RS1, ROLE_IMM}
	argsRRI  = [3]Role{ROLE_RS1, ROLE_RS2, ROLE_IMM}
)

// mnemonicMap is the instruction set, keyed by lower case name.
var mnemonicMap = map[string]Mnemonic{
	"kill":  {0, argsDI, false},
	"spawn": {1, argsRRI, true},
	"xkill": {2, argsDRI, false},
	"xres":  {3, argsDRI, false},
	"crid":  {4, argsD, false},
	"crcfg": {5, argsDR, false},
	"crcnd": {6, argsDR, false},
	"crclk": {7, argsDR, false},
	"crct":  {8, argsD, false},
	"clk":   {9, argsD, false},
	"mv":    {10, argsDR, false},
	"nop":   {11, argsNone, false},
	"add":   {12, argsDRR, false},
	"addi":  {13, argsDRI, false},
	"sub":   {14, argsDRR, false},
	"subi":  {15, argsDRI, false},
	"mul":   {16, argsDRR, false},
	"muli":  {17, argsDRI, false},
	"div":   {18, argsDRR, false},
	"divi":  {19, argsDRI, false},
	"mod":   {20, argsDRR, false},
	"modi":  {21, argsDRI, false},
	"pow":   {22, argsDRR, false},
	"powi":  {23, argsDRI, false},
	"min":   {24, argsDRR, false},
	"mini":  {25, argsDRI, false},
	"max":   {26, argsDRR, false},
	"maxi":  {27, argsDRI, false},
	"eq":    {28, argsDRR, false},
	"eqi":   {29, argsDRI, false},
	"neq":   {30, argsDRR, false},
	"neqi":  {31, argsDRI, false},
	"geq":   {32, argsDRR, false},
	"geqi":  {33, argsDRI, false},
	"leq":   {34, argsDRR, false},
	"leqi":  {35, argsDRI, false},
	"lt":    {36, argsDRR, false},
	"lti":   {37, argsDRI, false},
	"gt":    {38, argsDRR, false},
	"gti":   {39, argsDRI, false},
	"and":   {40, argsDRR, false},
	"andi":  {41, argsDRI, false},
	"or":    {42, argsDRR, false},
	"ori":   {43, argsDRI, false},
	"xor":   {44, argsDRR, false},
	"xori":  {45, argsDRI, false},
	"lsh":   {46, argsDRR, false},
	"lshi":  {47, argsDRI, false},
	"rsh":   {48, argsDRR, false},
	"rshi":  {49, argsDRI, false},
	"li":    {50, argsDI, false},
	"aipc":  {51, argsDI, true},
	"jal":   {52, argsDI, true},
	"jalr":  {53, argsDRI, false},
	"beq":   {54, argsRRI, true},
	"bne":   {55, argsRRI, true},
	"blt":   {56, argsRRI, true},
	"bge":   {57, argsRRI, true},
	"load":  {58, argsDRI, false},
	"store": {59, argsDRI, false},
	"pushi": {60, argsDRI, false},
	"unpki": {61, argsDRI, false},
	"cas":   {62, argsDRR, false},
	"smprm": {63, argsDRI, false},
	"srprm": {64, argsDRI, false},
	"swprm": {65, argsDRI, false},
	"sxprm": {66, argsDRI, false},
	"abs":   {67, argsDR, false},
	"sin":   {68, argsDR, false},
	"cos":   {69, argsDR, false},
	"atan":  {70, argsDRR, false},
}

// opcodeName maps opcode bytes back to their mnemonic, for listings.
var opcodeName [256]string

func init() {
	for name, mn := range mnemonicMap {
		opcodeName[mn.Op] = name
	}
}

// Lookup finds the mnemonic for an instruction name, ignoring case.
func Lookup(name string) (mn Mnemonic, err error) {
	name = strings.ToLower(name)
	mn, ok := mnemonicMap[name]
	if !ok {
		err = ErrUnknownMnemonic(name)
		return
	}
	return
}

// Mnemonics returns the instruction set, keyed by lower case name.
func Mnemonics() map[string]Mnemonic {
	return maps.Clone(mnemonicMap)
}

// Code is a single encoded instruction.
// Register slots not used by the mnemonic are zero.
type Code struct {
	Op  uint8
	Rd  uint8
	Rs1 uint8
	Rs2 uint8
	Imm float64
}

// setRegister stores a register number in the slot for role.
func (code *Code) setRegister(role Role, reg uint8) (err error) {
	switch role {
	case ROLE_RD:
		code.Rd = reg
	case ROLE_RS1:
		code.Rs1 = reg
	case ROLE_RS2:
		code.Rs2 = reg
	default:
		err = ErrImpossible
	}
	return
}

// Name returns the mnemonic of the opcode, or "" if it is not in the table.
func (code Code) Name() string {
	return opcodeName[code.Op]
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	name := code.Name()
	mn, ok := mnemonicMap[name]
	if !ok {
		return fmt.Sprintf("op%d x%d x%d x%d %v", code.Op, code.Rd, code.Rs1, code.Rs2, code.Imm)
	}

	words := []string{name}
	for _, role := range mn.Args {
		switch role {
		case ROLE_RD:
			words = append(words, fmt.Sprintf("x%d", code.Rd))
		case ROLE_RS1:
			words = append(words, fmt.Sprintf("x%d", code.Rs1))
		case ROLE_RS2:
			words = append(words, fmt.Sprintf("x%d", code.Rs2))
		case ROLE_IMM:
			words = append(words, fmt.Sprintf("%v", code.Imm))
		}
	}

	return strings.Join(words, " ")
}
