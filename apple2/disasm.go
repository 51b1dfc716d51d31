package apple2

import (
	"bytes"
	"fmt"
)

// Disassembler walks a memory segment and renders it as 6502 assembly
// listing text, sharing the CPU's own opcode and addressing-mode tables
// so the two can never describe a different instruction set.
//
// It runs in two passes, mirroring the source disassembler: the first
// pass walks the range purely to record which addresses are the target
// of a JMP, JSR, BRK, or branch, without emitting any text; the second
// pass walks the same range again and emits one line per instruction,
// prefixing a label at any address the first pass marked.
type Disassembler struct {
	mem    *Segment
	labels map[uint16]bool
}

// NewDisassembler creates a Disassembler reading from mem.
func NewDisassembler(mem *Segment) *Disassembler {
	return &Disassembler{mem: mem, labels: make(map[uint16]bool)}
}

// decoded is one instruction as read off the stream, before formatting.
type decoded struct {
	addr     uint16
	opcode   byte
	mnemonic string
	mode     AddressingMode
	operand  uint16
	size     int
}

func (d *Disassembler) decodeAt(addr uint16) decoded {
	opcode := d.mem.DirectGet(int(addr))
	info := opcodeTable[opcode]
	n := info.Mode.operandBytes()

	var operand uint16
	switch n {
	case 1:
		operand = uint16(d.mem.DirectGet(int(addr) + 1))
	case 2:
		lo := uint16(d.mem.DirectGet(int(addr) + 1))
		hi := uint16(d.mem.DirectGet(int(addr) + 2))
		operand = hi<<8 | lo
	}

	return decoded{
		addr:     addr,
		opcode:   opcode,
		mnemonic: info.Mnemonic,
		mode:     info.Mode,
		operand:  operand,
		size:     n + 1,
	}
}

// jumpTarget returns the address a JMP/JSR/BRK/branch instruction
// resolves to, the way the addressing-mode resolver would, without
// touching a live CPU.
func jumpTarget(ins decoded) uint16 {
	if ins.mode == Relative {
		disp := int8(byte(ins.operand))
		return uint16(int32(ins.addr) + int32(ins.size) + int32(disp))
	}
	return ins.operand
}

// ScanLabels runs the lookahead pass over [start, end), recording the
// jump target of every JMP, JSR, BRK, and branch instruction found.
func (d *Disassembler) ScanLabels(start, end uint16) {
	addr := uint32(start)
	for addr < uint32(end) {
		ins := d.decodeAt(uint16(addr))
		if isJumpLabelSource(ins.mnemonic) {
			d.labels[jumpTarget(ins)] = true
		}
		addr += uint32(ins.size)
	}
}

// ClearLabels discards any labels recorded by a previous scan.
func (d *Disassembler) ClearLabels() {
	d.labels = make(map[uint16]bool)
}

func label(addr uint16) string {
	return fmt.Sprintf("ADDR_%04X", addr)
}

func formatOperand(ins decoded) string {
	switch ins.mode {
	case Accumulator, Implied:
		return ""
	case Immediate:
		return fmt.Sprintf("#$%02X", ins.operand)
	case ZeroPage:
		return fmt.Sprintf("$%02X", ins.operand)
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", ins.operand)
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", ins.operand)
	case Absolute:
		return fmt.Sprintf("$%04X", ins.operand)
	case AbsoluteX:
		return fmt.Sprintf("$%04X,X", ins.operand)
	case AbsoluteY:
		return fmt.Sprintf("$%04X,Y", ins.operand)
	case Indirect:
		return fmt.Sprintf("($%04X)", ins.operand)
	case IndexedIndirectX:
		return fmt.Sprintf("($%02X,X)", ins.operand)
	case IndirectIndexedY:
		return fmt.Sprintf("($%02X),Y", ins.operand)
	case Relative:
		return label(jumpTarget(ins))
	}
	return ""
}

// Listing runs the emission pass over [start, end) and returns one
// formatted line per instruction, in address order, with a label line
// inserted wherever ScanLabels marked a jump target.
func (d *Disassembler) Listing(start, end uint16) []string {
	var lines []string
	addr := uint32(start)
	for addr < uint32(end) {
		ins := d.decodeAt(uint16(addr))

		if d.labels[ins.addr] {
			lines = append(lines, label(ins.addr)+":")
		}

		var buf bytes.Buffer
		fmt.Fprintf(&buf, "$%04X:  %s", ins.addr, ins.mnemonic)
		if operand := formatOperand(ins); operand != "" {
			fmt.Fprintf(&buf, "  %s", operand)
		}
		lines = append(lines, buf.String())

		addr += uint32(ins.size)
	}
	return lines
}

// Disassemble runs both passes over [start, end) and joins the listing
// into a single text block, one instruction or label per line.
func (d *Disassembler) Disassemble(start, end uint16) string {
	d.ClearLabels()
	d.ScanLabels(start, end)
	lines := d.Listing(start, end)

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.String()
}
