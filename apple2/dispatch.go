package apple2

// OpcodeInfo is the static metadata attached to every one of the 256
// possible opcode bytes: its mnemonic (for the disassembler), its
// addressing mode, its handler, and its base cycle cost before any
// addressing-mode or branch penalty.
type OpcodeInfo struct {
	Mnemonic string
	Mode     AddressingMode
	Exec     func(*CPU) int
	Cycles   byte
}

func op(mnemonic string, mode AddressingMode, exec func(*CPU) int, cycles byte) OpcodeInfo {
	return OpcodeInfo{Mnemonic: mnemonic, Mode: mode, Exec: exec, Cycles: cycles}
}

func illegal() OpcodeInfo {
	return OpcodeInfo{Mnemonic: "NOP", Mode: Implied, Exec: (*CPU).opIllegal, Cycles: 2}
}

// opcodeTable maps every opcode byte to its OpcodeInfo. Illegal opcodes
// (the 105 bytes unused by the documented instruction set) map to NOP
// and consume 2 cycles -- spec.md section 4.2's "Failure semantics".
//
// This table and the disassembler's decoder (disasm.go) are built from
// the same data so the two can never drift out of lockstep.
var opcodeTable = [256]OpcodeInfo{
	0x00: op("BRK", Implied, (*CPU).opBRK, 7), 0x01: op("ORA", IndexedIndirectX, (*CPU).opORA, 6), 0x02: illegal(), 0x03: illegal(),
	0x04: illegal(), 0x05: op("ORA", ZeroPage, (*CPU).opORA, 3), 0x06: op("ASL", ZeroPage, (*CPU).opASL, 5), 0x07: illegal(),
	0x08: op("PHP", Implied, (*CPU).opPHP, 3), 0x09: op("ORA", Immediate, (*CPU).opORA, 2), 0x0A: op("ASL", Accumulator, (*CPU).opASL, 2), 0x0B: illegal(),
	0x0C: illegal(), 0x0D: op("ORA", Absolute, (*CPU).opORA, 4), 0x0E: op("ASL", Absolute, (*CPU).opASL, 6), 0x0F: illegal(),

	0x10: op("BPL", Relative, (*CPU).opBPL, 2), 0x11: op("ORA", IndirectIndexedY, (*CPU).opORA, 5), 0x12: illegal(), 0x13: illegal(),
	0x14: illegal(), 0x15: op("ORA", ZeroPageX, (*CPU).opORA, 4), 0x16: op("ASL", ZeroPageX, (*CPU).opASL, 6), 0x17: illegal(),
	0x18: op("CLC", Implied, (*CPU).opCLC, 2), 0x19: op("ORA", AbsoluteY, (*CPU).opORA, 4), 0x1A: illegal(), 0x1B: illegal(),
	0x1C: illegal(), 0x1D: op("ORA", AbsoluteX, (*CPU).opORA, 4), 0x1E: op("ASL", AbsoluteX, (*CPU).opASL, 7), 0x1F: illegal(),

	0x20: op("JSR", Absolute, (*CPU).opJSR, 6), 0x21: op("AND", IndexedIndirectX, (*CPU).opAND, 6), 0x22: illegal(), 0x23: illegal(),
	0x24: op("BIT", ZeroPage, (*CPU).opBIT, 3), 0x25: op("AND", ZeroPage, (*CPU).opAND, 3), 0x26: op("ROL", ZeroPage, (*CPU).opROL, 5), 0x27: illegal(),
	0x28: op("PLP", Implied, (*CPU).opPLP, 4), 0x29: op("AND", Immediate, (*CPU).opAND, 2), 0x2A: op("ROL", Accumulator, (*CPU).opROL, 2), 0x2B: illegal(),
	0x2C: op("BIT", Absolute, (*CPU).opBIT, 4), 0x2D: op("AND", Absolute, (*CPU).opAND, 4), 0x2E: op("ROL", Absolute, (*CPU).opROL, 6), 0x2F: illegal(),

	0x30: op("BMI", Relative, (*CPU).opBMI, 2), 0x31: op("AND", IndirectIndexedY, (*CPU).opAND, 5), 0x32: illegal(), 0x33: illegal(),
	0x34: illegal(), 0x35: op("AND", ZeroPageX, (*CPU).opAND, 4), 0x36: op("ROL", ZeroPageX, (*CPU).opROL, 6), 0x37: illegal(),
	0x38: op("SEC", Implied, (*CPU).opSEC, 2), 0x39: op("AND", AbsoluteY, (*CPU).opAND, 4), 0x3A: illegal(), 0x3B: illegal(),
	0x3C: illegal(), 0x3D: op("AND", AbsoluteX, (*CPU).opAND, 4), 0x3E: op("ROL", AbsoluteX, (*CPU).opROL, 7), 0x3F: illegal(),

	0x40: op("RTI", Implied, (*CPU).opRTI, 6), 0x41: op("EOR", IndexedIndirectX, (*CPU).opEOR, 6), 0x42: illegal(), 0x43: illegal(),
	0x44: illegal(), 0x45: op("EOR", ZeroPage, (*CPU).opEOR, 3), 0x46: op("LSR", ZeroPage, (*CPU).opLSR, 5), 0x47: illegal(),
	0x48: op("PHA", Implied, (*CPU).opPHA, 3), 0x49: op("EOR", Immediate, (*CPU).opEOR, 2), 0x4A: op("LSR", Accumulator, (*CPU).opLSR, 2), 0x4B: illegal(),
	0x4C: op("JMP", Absolute, (*CPU).opJMP, 3), 0x4D: op("EOR", Absolute, (*CPU).opEOR, 4), 0x4E: op("LSR", Absolute, (*CPU).opLSR, 6), 0x4F: illegal(),

	0x50: op("BVC", Relative, (*CPU).opBVC, 2), 0x51: op("EOR", IndirectIndexedY, (*CPU).opEOR, 5), 0x52: illegal(), 0x53: illegal(),
	0x54: illegal(), 0x55: op("EOR", ZeroPageX, (*CPU).opEOR, 4), 0x56: op("LSR", ZeroPageX, (*CPU).opLSR, 6), 0x57: illegal(),
	0x58: op("CLI", Implied, (*CPU).opCLI, 2), 0x59: op("EOR", AbsoluteY, (*CPU).opEOR, 4), 0x5A: illegal(), 0x5B: illegal(),
	0x5C: illegal(), 0x5D: op("EOR", AbsoluteX, (*CPU).opEOR, 4), 0x5E: op("LSR", AbsoluteX, (*CPU).opLSR, 7), 0x5F: illegal(),

	0x60: op("RTS", Implied, (*CPU).opRTS, 6), 0x61: op("ADC", IndexedIndirectX, (*CPU).opADC, 6), 0x62: illegal(), 0x63: illegal(),
	0x64: illegal(), 0x65: op("ADC", ZeroPage, (*CPU).opADC, 3), 0x66: op("ROR", ZeroPage, (*CPU).opROR, 5), 0x67: illegal(),
	0x68: op("PLA", Implied, (*CPU).opPLA, 4), 0x69: op("ADC", Immediate, (*CPU).opADC, 2), 0x6A: op("ROR", Accumulator, (*CPU).opROR, 2), 0x6B: illegal(),
	0x6C: op("JMP", Indirect, (*CPU).opJMP, 5), 0x6D: op("ADC", Absolute, (*CPU).opADC, 4), 0x6E: op("ROR", Absolute, (*CPU).opROR, 6), 0x6F: illegal(),

	0x70: op("BVS", Relative, (*CPU).opBVS, 2), 0x71: op("ADC", IndirectIndexedY, (*CPU).opADC, 5), 0x72: illegal(), 0x73: illegal(),
	0x74: illegal(), 0x75: op("ADC", ZeroPageX, (*CPU).opADC, 4), 0x76: op("ROR", ZeroPageX, (*CPU).opROR, 6), 0x77: illegal(),
	0x78: op("SEI", Implied, (*CPU).opSEI, 2), 0x79: op("ADC", AbsoluteY, (*CPU).opADC, 4), 0x7A: illegal(), 0x7B: illegal(),
	0x7C: illegal(), 0x7D: op("ADC", AbsoluteX, (*CPU).opADC, 4), 0x7E: op("ROR", AbsoluteX, (*CPU).opROR, 7), 0x7F: illegal(),

	0x80: illegal(), 0x81: op("STA", IndexedIndirectX, (*CPU).opSTA, 6), 0x82: illegal(), 0x83: illegal(),
	0x84: op("STY", ZeroPage, (*CPU).opSTY, 3), 0x85: op("STA", ZeroPage, (*CPU).opSTA, 3), 0x86: op("STX", ZeroPage, (*CPU).opSTX, 3), 0x87: illegal(),
	0x88: op("DEY", Implied, (*CPU).opDEY, 2), 0x89: illegal(), 0x8A: op("TXA", Implied, (*CPU).opTXA, 2), 0x8B: illegal(),
	0x8C: op("STY", Absolute, (*CPU).opSTY, 4), 0x8D: op("STA", Absolute, (*CPU).opSTA, 4), 0x8E: op("STX", Absolute, (*CPU).opSTX, 4), 0x8F: illegal(),

	0x90: op("BCC", Relative, (*CPU).opBCC, 2), 0x91: op("STA", IndirectIndexedY, (*CPU).opSTA, 6), 0x92: illegal(), 0x93: illegal(),
	0x94: op("STY", ZeroPageX, (*CPU).opSTY, 4), 0x95: op("STA", ZeroPageX, (*CPU).opSTA, 4), 0x96: op("STX", ZeroPageY, (*CPU).opSTX, 4), 0x97: illegal(),
	0x98: op("TYA", Implied, (*CPU).opTYA, 2), 0x99: op("STA", AbsoluteY, (*CPU).opSTA, 5), 0x9A: op("TXS", Implied, (*CPU).opTXS, 2), 0x9B: illegal(),
	0x9C: illegal(), 0x9D: op("STA", AbsoluteX, (*CPU).opSTA, 5), 0x9E: illegal(), 0x9F: illegal(),

	0xA0: op("LDY", Immediate, (*CPU).opLDY, 2), 0xA1: op("LDA", IndexedIndirectX, (*CPU).opLDA, 6), 0xA2: op("LDX", Immediate, (*CPU).opLDX, 2), 0xA3: illegal(),
	0xA4: op("LDY", ZeroPage, (*CPU).opLDY, 3), 0xA5: op("LDA", ZeroPage, (*CPU).opLDA, 3), 0xA6: op("LDX", ZeroPage, (*CPU).opLDX, 3), 0xA7: illegal(),
	0xA8: op("TAY", Implied, (*CPU).opTAY, 2), 0xA9: op("LDA", Immediate, (*CPU).opLDA, 2), 0xAA: op("TAX", Implied, (*CPU).opTAX, 2), 0xAB: illegal(),
	0xAC: op("LDY", Absolute, (*CPU).opLDY, 4), 0xAD: op("LDA", Absolute, (*CPU).opLDA, 4), 0xAE: op("LDX", Absolute, (*CPU).opLDX, 4), 0xAF: illegal(),

	0xB0: op("BCS", Relative, (*CPU).opBCS, 2), 0xB1: op("LDA", IndirectIndexedY, (*CPU).opLDA, 5), 0xB2: illegal(), 0xB3: illegal(),
	0xB4: op("LDY", ZeroPageX, (*CPU).opLDY, 4), 0xB5: op("LDA", ZeroPageX, (*CPU).opLDA, 4), 0xB6: op("LDX", ZeroPageY, (*CPU).opLDX, 4), 0xB7: illegal(),
	0xB8: op("CLV", Implied, (*CPU).opCLV, 2), 0xB9: op("LDA", AbsoluteY, (*CPU).opLDA, 4), 0xBA: op("TSX", Implied, (*CPU).opTSX, 2), 0xBB: illegal(),
	0xBC: op("LDY", AbsoluteX, (*CPU).opLDY, 4), 0xBD: op("LDA", AbsoluteX, (*CPU).opLDA, 4), 0xBE: op("LDX", AbsoluteY, (*CPU).opLDX, 4), 0xBF: illegal(),

	0xC0: op("CPY", Immediate, (*CPU).opCPY, 2), 0xC1: op("CMP", IndexedIndirectX, (*CPU).opCMP, 6), 0xC2: illegal(), 0xC3: illegal(),
	0xC4: op("CPY", ZeroPage, (*CPU).opCPY, 3), 0xC5: op("CMP", ZeroPage, (*CPU).opCMP, 3), 0xC6: op("DEC", ZeroPage, (*CPU).opDEC, 5), 0xC7: illegal(),
	0xC8: op("INY", Implied, (*CPU).opINY, 2), 0xC9: op("CMP", Immediate, (*CPU).opCMP, 2), 0xCA: op("DEX", Implied, (*CPU).opDEX, 2), 0xCB: illegal(),
	0xCC: op("CPY", Absolute, (*CPU).opCPY, 4), 0xCD: op("CMP", Absolute, (*CPU).opCMP, 4), 0xCE: op("DEC", Absolute, (*CPU).opDEC, 6), 0xCF: illegal(),

	0xD0: op("BNE", Relative, (*CPU).opBNE, 2), 0xD1: op("CMP", IndirectIndexedY, (*CPU).opCMP, 5), 0xD2: illegal(), 0xD3: illegal(),
	0xD4: illegal(), 0xD5: op("CMP", ZeroPageX, (*CPU).opCMP, 4), 0xD6: op("DEC", ZeroPageX, (*CPU).opDEC, 6), 0xD7: illegal(),
	0xD8: op("CLD", Implied, (*CPU).opCLD, 2), 0xD9: op("CMP", AbsoluteY, (*CPU).opCMP, 4), 0xDA: illegal(), 0xDB: illegal(),
	0xDC: illegal(), 0xDD: op("CMP", AbsoluteX, (*CPU).opCMP, 4), 0xDE: op("DEC", AbsoluteX, (*CPU).opDEC, 7), 0xDF: illegal(),

	0xE0: op("CPX", Immediate, (*CPU).opCPX, 2), 0xE1: op("SBC", IndexedIndirectX, (*CPU).opSBC, 6), 0xE2: illegal(), 0xE3: illegal(),
	0xE4: op("CPX", ZeroPage, (*CPU).opCPX, 3), 0xE5: op("SBC", ZeroPage, (*CPU).opSBC, 3), 0xE6: op("INC", ZeroPage, (*CPU).opINC, 5), 0xE7: illegal(),
	0xE8: op("INX", Implied, (*CPU).opINX, 2), 0xE9: op("SBC", Immediate, (*CPU).opSBC, 2), 0xEA: op("NOP", Implied, (*CPU).opNOP, 2), 0xEB: illegal(),
	0xEC: op("CPX", Absolute, (*CPU).opCPX, 4), 0xED: op("SBC", Absolute, (*CPU).opSBC, 4), 0xEE: op("INC", Absolute, (*CPU).opINC, 6), 0xEF: illegal(),

	0xF0: op("BEQ", Relative, (*CPU).opBEQ, 2), 0xF1: op("SBC", IndirectIndexedY, (*CPU).opSBC, 5), 0xF2: illegal(), 0xF3: illegal(),
	0xF4: illegal(), 0xF5: op("SBC", ZeroPageX, (*CPU).opSBC, 4), 0xF6: op("INC", ZeroPageX, (*CPU).opINC, 6), 0xF7: illegal(),
	0xF8: op("SED", Implied, (*CPU).opSED, 2), 0xF9: op("SBC", AbsoluteY, (*CPU).opSBC, 4), 0xFA: illegal(), 0xFB: illegal(),
	0xFC: illegal(), 0xFD: op("SBC", AbsoluteX, (*CPU).opSBC, 4), 0xFE: op("INC", AbsoluteX, (*CPU).opINC, 7), 0xFF: illegal(),
}

// AddressingModeOf returns the addressing mode the static table assigns
// to opcode, independent of any live CPU instance. Used by tests that
// check the opcode->mode table directly (spec invariant 2) and by the
// disassembler.
func AddressingModeOf(opcode byte) AddressingMode {
	return opcodeTable[opcode].Mode
}

// MnemonicOf returns the mnemonic the static table assigns to opcode.
func MnemonicOf(opcode byte) string {
	return opcodeTable[opcode].Mnemonic
}

// CyclesOf returns the base cycle cost the static table assigns to
// opcode, before any addressing-mode or branch penalty.
func CyclesOf(opcode byte) byte {
	return opcodeTable[opcode].Cycles
}

// operandBytes returns how many bytes of operand follow the opcode byte
// for the given addressing mode -- used by the disassembler to walk the
// instruction stream without executing it.
func (m AddressingMode) operandBytes() int {
	switch m {
	case Accumulator, Implied:
		return 0
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, IndexedIndirectX, IndirectIndexedY, Relative:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 0
}

var branchOpcodes = map[string]bool{
	"BPL": true, "BMI": true, "BVC": true, "BVS": true,
	"BCC": true, "BCS": true, "BNE": true, "BEQ": true,
}

// isJumpLabelSource reports whether mnemonic names one of
// the ones the disassembler's lookahead pass treats as establishing a
// jump-label target: JMP, JSR, BRK, or any branch (spec.md section 3).
func isJumpLabelSource(mnemonic string) bool {
	return mnemonic == "JMP" || mnemonic == "JSR" || mnemonic == "BRK" || branchOpcodes[mnemonic]
}
