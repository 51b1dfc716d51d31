package apple2

import (
	"os"

	"github.com/davecgh/go-spew/spew"
)

// memSize is the CPU's full 64 KiB address space.
const memSize = 0x10000

// diskControllerBase/diskControllerEnd bound the 32 addresses this
// implementation maps a single drive pair onto: two sixteen-address
// Disk II controller blocks, $C0E0-$C0EF and $C0F0-$C0FF. The traps
// dispatch on the low nibble alone, so the upper block mirrors the lower.
const (
	diskControllerBase = 0xC0E0
	diskControllerEnd  = 0xC0FF
)

// Config carries everything a Machine needs to construct itself, built
// once by the CLI layer and passed in rather than read from package
// globals (Design Notes' "explicit dependency graph" guidance).
type Config struct {
	Width, Height int
	EnableDisasm  bool
}

// Machine owns the CPU's memory segment, the CPU itself, and both disk
// drives. Nothing outside Machine holds a pointer into it except via
// explicit call arguments; Segment, CPU, and Drive never hold a
// back-pointer to their owning Machine.
type Machine struct {
	Config Config

	Memory *Segment
	CPU    *CPU

	drive1, drive2 *Drive
	selectedDrive  *Drive
	disasm         *Disassembler
	Log            *Logger
}

// NewMachine builds the full dependency graph in one place: memory,
// CPU, both drives, and the soft-switch traps that wire the drives into
// memory. It fails with BadOption when the configured window width or
// height is not positive.
func NewMachine(cfg Config, log *Logger) (*Machine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, newError(BadOption, "window dimensions must be positive, got %dx%d", cfg.Width, cfg.Height)
	}

	mem := NewSegment(memSize)
	m := &Machine{
		Config: cfg,
		Memory: mem,
		CPU:    NewCPU(mem),
		drive1: NewDrive(),
		drive2: NewDrive(),
		Log:    log,
	}
	if cfg.EnableDisasm {
		m.disasm = NewDisassembler(mem)
	}

	m.installDiskSoftswitches()

	return m, nil
}

func (m *Machine) installDiskSoftswitches() {
	sel := &driveSelector{drive1: m.drive1, drive2: m.drive2, selected: &m.selectedDrive}
	m.Memory.InstallReadTrapRange(diskControllerBase, diskControllerEnd, diskReadTrap(sel))
	m.Memory.InstallWriteTrapRange(diskControllerBase, diskControllerEnd, diskWriteTrap(sel))
}

// InsertDisk opens the image file at path and loads it into drive slot
// 1 or 2.
func (m *Machine) InsertDisk(slot int, path string, kind ImageType) error {
	drive, err := m.driveForSlot(slot)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return newError(BadFile, "opening disk image %q: %v", path, err)
	}

	if err := drive.Insert(f, kind); err != nil {
		f.Close()
		return err
	}
	return nil
}

func (m *Machine) driveForSlot(slot int) (*Drive, error) {
	switch slot {
	case 1:
		return m.drive1, nil
	case 2:
		return m.drive2, nil
	default:
		return nil, newError(BadOption, "no such drive slot %d", slot)
	}
}

// SelectedDrive returns whichever drive is currently selected by the
// soft-switch bank, defaulting to drive 1 if nothing has selected one
// yet -- the same default the original dd.c source applies.
func (m *Machine) SelectedDrive() *Drive {
	if m.selectedDrive != nil {
		return m.selectedDrive
	}
	return m.drive1
}

// Boot resets the CPU, loading PC from the reset vector at $FFFC. Tests
// and hosts without an Apple II ROM image mapped at that address should
// set CPU.PC directly instead.
func (m *Machine) Boot() error {
	m.CPU.Reset()
	if m.Log != nil {
		m.Log.Info("machine booted, PC=$%04X", m.CPU.PC)
	}
	return nil
}

// Step executes one CPU instruction and, if disassembly logging is
// enabled, writes the decoded instruction to the log first.
func (m *Machine) Step() int {
	if m.disasm != nil {
		ins := m.disasm.decodeAt(m.CPU.PC)
		m.Log.Debug("%04X: %s %s", ins.addr, ins.mnemonic, formatOperand(ins))
	}
	return m.CPU.Step()
}

// DebugDump renders the machine's CPU and drive state for diagnostics,
// used by the CLI when a boot or disk-insert operation fails.
func (m *Machine) DebugDump() string {
	return spew.Sdump(m.CPU) + spew.Sdump(m.drive1) + spew.Sdump(m.drive2)
}
