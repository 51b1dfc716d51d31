package apple2

// The Disk II controller occupies sixteen addresses per slot; Machine
// maps the drive pair across $C0E0-$C0FF. Every address runs the same
// low-nibble dispatch regardless of whether the access is a read or a
// write; only the read/write-step switch ($C0nC) and the latch switch
// ($C0nD) differ in what a read does versus what a write does.
// softswitchPhaseOrDrive captures that shared shape so both the read
// trap and the write trap that NewMachine installs can call into it.

// driveSelector resolves which drive a soft-switch access should affect.
// A nil currently-selected drive defaults to drive 1, matching the
// original dd.c behavior.
type driveSelector struct {
	drive1, drive2 *Drive
	selected       **Drive
}

func (s *driveSelector) current() *Drive {
	if *s.selected != nil {
		return *s.selected
	}
	return s.drive1
}

// softswitchPhaseOrDrive handles every address below $8 (phase switches)
// and the drive-select/mode-set addresses ($8, $9, $A, $B, $E, $F),
// which are identical in a read or a write context.
func softswitchPhaseOrDrive(s *driveSelector, nib int) {
	switch {
	case nib < 0x8:
		phase := -1
		switch nib {
		case 0x1:
			phase = 1
		case 0x3:
			phase = 2
		case 0x5:
			phase = 3
		case 0x7:
			phase = 4
		}
		s.current().Phaser(phase)
	case nib < 0xC || nib > 0xD:
		switch nib {
		case 0x8:
			s.drive1.TurnOn(false)
			s.drive2.TurnOn(false)
		case 0x9:
			s.current().TurnOn(true)
		case 0xA:
			*s.selected = s.drive1
		case 0xB:
			*s.selected = s.drive2
		case 0xE:
			s.current().SetMode(ModeRead)
		case 0xF:
			s.current().SetMode(ModeWrite)
		}
	}
}

// diskReadTrap is installed as the ReadTrap for every address in the
// drive's controller block.
func diskReadTrap(s *driveSelector) ReadTrap {
	return func(_ *Segment, addr int) byte {
		nib := addr & 0xF
		softswitchPhaseOrDrive(s, nib)

		switch nib {
		case 0xC:
			return s.current().readWrite()
		case 0xD:
			s.current().latchRead()
		}
		return s.current().randomByte()
	}
}

// diskWriteTrap is installed as the WriteTrap for every address in the
// drive's controller block. Writing to $C0nC still runs the read/write
// dispatch (it's possible to "read" via a write access -- all that does
// is shift the drive forward); writing to $C0nD is the only way to get
// a non-zero latch value.
func diskWriteTrap(s *driveSelector) WriteTrap {
	return func(_ *Segment, addr int, value byte) {
		nib := addr & 0xF
		softswitchPhaseOrDrive(s, nib)

		switch nib {
		case 0xC:
			s.current().readWrite()
		case 0xD:
			s.current().setLatch(value)
		}
	}
}
