package apple2

import "io"

// Mode is the disk drive's read/write head state. Exactly one applies at
// a time; there is no mixed mode.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// MaxDriveSteps bounds track_pos (half-tracks) at the innermost track
// the stepper can reach: 35 tracks, two half-tracks each.
const MaxDriveSteps = 2*35 - 1

// phaseTransitions is the stepper motor's phase adjacency table, indexed
// by (lastPhase*5 + newPhase). Energizing a phase adjacent to the last
// one steps the head in or out by a half-track; energizing the same or
// opposite phase does nothing. See spec.md's stepper table and dd.c's
// apple2_dd_phaser for the hardware rationale: software only ever
// observes the phase it last settled on, never the transient overlap of
// two energized coils.
var phaseTransitions = [25]int{
	// 0   1   2   3   4     (new phase, by column)
	0, 0, 0, 0, 0, // no phase energized yet
	0, 0, 1, 0, -1, // last settled: phase 1
	0, -1, 0, 1, 0, // last settled: phase 2
	0, 0, -1, 0, 1, // last settled: phase 3
	0, 1, 0, -1, 0, // last settled: phase 4
}

// Drive models one Disk II disk drive: its stepper motor position, its
// read/write latch, and the disk media loaded into it. The CPU never
// touches a Drive directly -- NewMachine installs the Segment traps
// built in softswitch.go, which forward $C0E0-$C0FF accesses here.
type Drive struct {
	image     *Segment // logical (un-nibblized) image, the form saved back to file
	data      *Segment // nibblized on-media image, what the head actually reads/writes
	imageType ImageType

	trackPos  int // half-tracks, 0..MaxDriveSteps
	sectorPos int // byte offset within the current track's nibblized data
	phase     int // last stepper phase settled on, 0..4

	mode         Mode
	latch        byte
	online       bool
	writeProtect bool
	locked       bool // true while position must not shift, e.g. mid-checksum
	randomByte   func() byte
}

// NewDrive returns an empty, offline, write-protected drive with no disk
// loaded -- matching apple2_dd_create's defaults.
func NewDrive() *Drive {
	return &Drive{
		writeProtect: true,
		mode:         ModeRead,
		randomByte:   pseudoFloatingBusByte,
	}
}

// pseudoFloatingBusByte stands in for arc4random() & 0xff: real hardware
// returns whatever stale value happened to be on the data bus for
// addresses that aren't the read/write switch. Any fixed byte is as
// faithful as another for addresses software isn't supposed to rely on,
// so this returns a constant rather than pulling in a CSPRNG dependency
// for a value no correct program reads.
func pseudoFloatingBusByte() byte { return 0xFF }

// Insert loads a disk image of size logicalImageSize from r and encodes
// it into the drive's nibblized media, replacing whatever was
// previously loaded. A source holding fewer or more than
// logicalImageSize bytes is rejected with BadFile. Any prior disk is
// ejected first; Eject does not save it.
func (d *Drive) Insert(r io.ReadWriter, imageType ImageType) error {
	seg := NewSegment(logicalImageSize)
	if err := seg.ReadFile(r, 0, logicalImageSize); err != nil {
		return err
	}
	var extra [1]byte
	if n, _ := r.Read(extra[:]); n > 0 {
		return newError(BadFile, "disk image is larger than %d bytes", logicalImageSize)
	}

	d.Eject()

	d.online = true
	d.image = seg
	d.imageType = imageType
	d.trackPos = 0
	d.sectorPos = 0

	return d.Encode()
}

// Encode rebuilds the drive's nibblized media from its logical image.
func (d *Drive) Encode() error {
	data, err := EncodeDisk(d.image, d.imageType)
	if err != nil {
		return err
	}
	d.data = data
	return nil
}

// Decode rebuilds the drive's logical image from its nibblized media,
// the inverse of Encode -- run before saving back to a file.
func (d *Drive) Decode() error {
	image, err := DecodeDisk(d.data, d.imageType)
	if err != nil {
		return err
	}
	d.image = image
	return nil
}

// Save decodes the drive's current media and writes the logical image
// out to w. Callers that back the drive with a real file are expected
// to rewind it first; Save itself only ever writes from offset zero.
func (d *Drive) Save(w io.Writer) error {
	if d.data == nil {
		return nil
	}
	if err := d.Decode(); err != nil {
		return err
	}
	return d.image.WriteFile(w, 0, d.image.Size())
}

// Eject frees the drive's media and resets the head to track zero. It
// does not save the media: the drive keeps no backing stream, so
// anything written to the disk is lost unless Save is called first.
func (d *Drive) Eject() {
	d.data = nil
	d.image = nil
	d.trackPos = 0
	d.sectorPos = 0
}

// Online reports whether the drive motor is spun up.
func (d *Drive) Online() bool { return d.online }

// TurnOn spins the drive motor up or down.
func (d *Drive) TurnOn(on bool) { d.online = on }

// WriteProtect sets or clears the disk's write-protect tab.
func (d *Drive) WriteProtect(protect bool) { d.writeProtect = protect }

// SetMode switches the drive between read and write. Unlike dd.c's
// apple2_dd_set_mode, invalid values simply aren't representable --
// Mode is a two-valued type -- so there's nothing to validate here.
func (d *Drive) SetMode(m Mode) { d.mode = m }

// Track returns the current track number (0..34), derived from the
// half-track stepper position.
func (d *Drive) Track() int { return d.trackPos / 2 }

// Phaser energizes stepper phase (0-4, where 0 means "none") and steps
// the head in or out by a half-track according to phaseTransitions.
func (d *Drive) Phaser(phase int) {
	if phase < 0 || phase > 4 {
		return
	}
	step := phaseTransitions[d.phase*5+phase]
	d.Step(step)
	d.phase = phase
}

// Step moves the head by the given number of half-tracks, clamped to
// [0, MaxDriveSteps], and resets the within-track byte position --
// moving between tracks always lands at the start of the new track's
// data, same as a real drive's head settling.
func (d *Drive) Step(halfTracks int) {
	d.trackPos += halfTracks
	if d.trackPos > MaxDriveSteps {
		d.trackPos = MaxDriveSteps
	} else if d.trackPos < 0 {
		d.trackPos = 0
	}
	d.sectorPos = 0
}

// Shift advances the within-track byte position by n bytes (n may be
// negative). When locked, the position does not move at all.
//
// Position wraps back to zero once it reaches a full track's worth of
// bytes (ENC_ETRACK) -- it does NOT advance trackPos. This preserves an
// apparent quirk of the original source (see DESIGN.md): software that
// reads past the end of a track sees the track's data repeat rather
// than the drive advancing to the next track on its own, matching real
// Disk II behavior where only the stepper motor changes tracks.
func (d *Drive) Shift(n int) {
	if d.locked {
		return
	}
	d.sectorPos += n
	if d.sectorPos >= ENC_ETRACK || d.sectorPos < 0 {
		d.sectorPos = 0
	}
}

// position returns the drive's current offset into the nibblized data
// segment, combining the track and within-track byte position.
func (d *Drive) position() int {
	if d.data == nil {
		return 0
	}
	return d.Track()*ENC_ETRACK + d.sectorPos
}

// readByte reads the byte at the drive's current position, latches it,
// and advances the head by one byte. With no disk loaded, it always
// returns zero.
func (d *Drive) readByte() byte {
	if d.data == nil {
		return 0
	}
	b := d.data.DirectGet(d.position())
	d.latch = b
	d.Shift(1)
	return b
}

// writeByte commits the latch to the drive's current position and
// advances the head by one byte, but only when the latch's high bit is
// set -- the Disk II write circuitry requires a "sync-like" marker bit
// before it will commit a nibble, matching apple2_dd_write.
func (d *Drive) writeByte() {
	if d.data == nil {
		return
	}
	if d.latch&0x80 != 0 {
		d.data.DirectSet(d.position(), d.latch)
		d.Shift(1)
	}
}

// readWrite is the $C0nC switch: reads (and shifts) whenever the drive
// is in read mode or the disk is write-protected; otherwise commits the
// latch via writeByte. The returned byte only means something in read
// mode -- $C0nC writes ignore it.
func (d *Drive) readWrite() byte {
	if d.mode == ModeRead || d.writeProtect {
		return d.readByte()
	}
	d.writeByte()
	return 0
}

// latchRead is the $C0nD switch in a read context: it zeroes the latch,
// but only takes effect if the drive is in write mode (matching
// apple2_dd_switch_latch -- reading the latch switch while in read mode
// is a no-op).
func (d *Drive) latchRead() {
	d.setLatch(0)
}

// setLatch commits value to the latch, but only while in write mode.
// This is the only way to get a non-zero latch value: a $C0nD write
// while the drive is in write mode.
func (d *Drive) setLatch(value byte) {
	if d.mode == ModeWrite {
		d.latch = value
	}
}
