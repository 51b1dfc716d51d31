package apple2

// AddressingMode identifies one of the 6502's 13 operand-resolution
// schemes. Every opcode is looked up in a 256-entry table to find its
// mode; the resolver for that mode reads zero, one, or two operand
// bytes following the opcode and leaves the operand value and effective
// address on the CPU for the instruction handler to use.
type AddressingMode int

const (
	Accumulator AddressingMode = iota
	Immediate
	Absolute
	AbsoluteX
	AbsoluteY
	ZeroPage
	ZeroPageX
	ZeroPageY
	Indirect
	IndexedIndirectX
	IndirectIndexedY
	Relative
	Implied
)

// resolve runs the resolver for m against c, leaving c.operand and
// c.LastEffectiveAddress set, and returns any extra cycle the
// addressing mode itself incurs (a page-boundary cross on an indexed
// read).
func (m AddressingMode) resolve(c *CPU) int {
	switch m {
	case Accumulator:
		c.operand = c.A
		c.LastEffectiveAddress = 0
		return 0

	case Implied:
		return 0

	case Immediate:
		c.LastEffectiveAddress = c.PC
		c.operand = c.read(c.PC)
		c.PC++
		return 0

	case ZeroPage:
		addr := uint16(c.read(c.PC))
		c.PC++
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return 0

	case ZeroPageX:
		// Indexed without carry: the addition wraps within page 0.
		addr := uint16(c.read(c.PC) + c.X)
		c.PC++
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return 0

	case ZeroPageY:
		addr := uint16(c.read(c.PC) + c.Y)
		c.PC++
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return 0

	case Absolute:
		addr := c.readWord(c.PC)
		c.PC += 2
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return 0

	case AbsoluteX:
		base := c.readWord(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return pageCrossPenalty(base, addr)

	case AbsoluteY:
		base := c.readWord(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return pageCrossPenalty(base, addr)

	case Indirect:
		ptr := c.readWord(c.PC)
		c.PC += 2
		// Effective address is read from the pointer; JMP is the only
		// consumer of this mode.
		lo := c.read(ptr)
		hi := c.read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF))
		c.LastEffectiveAddress = uint16(hi)<<8 | uint16(lo)
		return 0

	case IndexedIndirectX:
		zp := uint16(c.read(c.PC) + c.X)
		c.PC++
		lo := c.read(zp & 0x00FF)
		hi := c.read((zp + 1) & 0x00FF)
		addr := uint16(hi)<<8 | uint16(lo)
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return 0

	case IndirectIndexedY:
		zp := uint16(c.read(c.PC))
		c.PC++
		lo := c.read(zp & 0x00FF)
		hi := c.read((zp + 1) & 0x00FF)
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.Y)
		c.LastEffectiveAddress = addr
		c.operand = c.read(addr)
		return pageCrossPenalty(base, addr)

	case Relative:
		// The operand is a signed displacement; the canonical
		// sign-extension form is honored here rather than the
		// approximation some sources use (see DESIGN.md).
		disp := int8(c.read(c.PC))
		c.PC++
		c.LastEffectiveAddress = uint16(int32(c.PC) + int32(disp))
		c.operand = 0
		return 0
	}

	return 0
}

// pageCrossPenalty returns 1 if base and effective fall on different
// 256-byte pages, else 0.
func pageCrossPenalty(base, effective uint16) int {
	if base&0xFF00 != effective&0xFF00 {
		return 1
	}
	return 0
}
