package apple2

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriveDefaults(t *testing.T) {
	d := NewDrive()
	assert.False(t, d.Online())
	assert.True(t, d.writeProtect)
	assert.Equal(t, ModeRead, d.mode)
	assert.Equal(t, 0, d.Track())
}

func TestPhaserStepsInOnAdjacentPhase(t *testing.T) {
	d := NewDrive()
	d.Phaser(1)
	assert.Equal(t, 0, d.trackPos, "settling on the first phase alone doesn't move the head")

	d.Phaser(2)
	assert.Equal(t, 1, d.trackPos, "phase 1 -> 2 steps in by one half-track")

	d.Phaser(3)
	assert.Equal(t, 2, d.trackPos)

	d.Phaser(4)
	assert.Equal(t, 3, d.trackPos)

	d.Phaser(1)
	assert.Equal(t, 4, d.trackPos, "phase wraps 4 -> 1 same as 1 -> 2")
}

func TestPhaserStepsOutOnOppositeAdjacentPhase(t *testing.T) {
	d := NewDrive()
	d.Phaser(1)
	d.Phaser(2)
	d.Phaser(3)
	require.Equal(t, 2, d.trackPos)

	d.Phaser(2)
	assert.Equal(t, 1, d.trackPos, "phase 3 -> 2 steps out by one half-track")
}

func TestPhaserSamePhaseIsNoOp(t *testing.T) {
	d := NewDrive()
	d.Phaser(1)
	d.Phaser(2)
	require.Equal(t, 1, d.trackPos)

	d.Phaser(2)
	assert.Equal(t, 1, d.trackPos, "re-energizing the same phase doesn't move the head")
}

func TestPhaserOppositePhaseIsNoOp(t *testing.T) {
	d := NewDrive()
	d.Phaser(1)
	require.Equal(t, 0, d.trackPos)

	d.Phaser(3)
	assert.Equal(t, 0, d.trackPos, "phase 1 -> 3 (opposite coil) is a no-op")
}

func TestStepClampsAtTrackBoundaries(t *testing.T) {
	d := NewDrive()
	d.Step(-5)
	assert.Equal(t, 0, d.trackPos)

	d.Step(MaxDriveSteps + 100)
	assert.Equal(t, MaxDriveSteps, d.trackPos)
}

func TestStepResetsWithinTrackPosition(t *testing.T) {
	d := NewDrive()
	d.sectorPos = 500
	d.Step(1)
	assert.Equal(t, 0, d.sectorPos)
}

func TestShiftWrapsWithoutAdvancingTrack(t *testing.T) {
	d := NewDrive()
	d.sectorPos = ENC_ETRACK - 1
	trackBefore := d.trackPos

	d.Shift(1)

	assert.Equal(t, 0, d.sectorPos, "position wraps back to the start of the same track")
	assert.Equal(t, trackBefore, d.trackPos, "shifting past a track's end never advances the stepper")
}

func TestShiftDoesNothingWhenLocked(t *testing.T) {
	d := NewDrive()
	d.locked = true
	d.sectorPos = 10
	d.Shift(5)
	assert.Equal(t, 10, d.sectorPos)
}

func TestPositionCombinesTrackAndSectorOffset(t *testing.T) {
	d := NewDrive()
	d.data = NewSegment(nibImageSize)
	d.trackPos = 4 // track 2
	d.sectorPos = 17

	assert.Equal(t, 2*ENC_ETRACK+17, d.position())
}

func TestPositionIsZeroWithNoMedia(t *testing.T) {
	d := NewDrive()
	d.trackPos = 10
	d.sectorPos = 10
	assert.Equal(t, 0, d.position())
}

func TestReadByteWithNoMediaReturnsZero(t *testing.T) {
	d := NewDrive()
	assert.Equal(t, byte(0), d.readByte())
}

func TestReadByteLatchesAndAdvances(t *testing.T) {
	d := NewDrive()
	d.data = NewSegment(nibImageSize)
	d.data.DirectSet(0, 0xD5)
	d.data.DirectSet(1, 0xAA)

	got := d.readByte()
	assert.Equal(t, byte(0xD5), got)
	assert.Equal(t, byte(0xD5), d.latch)
	assert.Equal(t, 1, d.sectorPos)

	got = d.readByte()
	assert.Equal(t, byte(0xAA), got)
	assert.Equal(t, 2, d.sectorPos)
}

func TestWriteByteRequiresHighBitSet(t *testing.T) {
	d := NewDrive()
	d.data = NewSegment(nibImageSize)
	d.latch = 0x42 // high bit clear

	d.writeByte()
	assert.Equal(t, byte(0), d.data.DirectGet(0), "write without the marker bit is ignored")
	assert.Equal(t, 0, d.sectorPos)

	d.latch = 0xC3
	d.writeByte()
	assert.Equal(t, byte(0xC3), d.data.DirectGet(0))
	assert.Equal(t, 1, d.sectorPos)
}

func TestReadWriteDispatchesToReadWhenWriteProtected(t *testing.T) {
	d := NewDrive()
	d.data = NewSegment(nibImageSize)
	d.data.DirectSet(0, 0x55)
	d.mode = ModeWrite
	d.writeProtect = true

	got := d.readWrite()
	assert.Equal(t, byte(0x55), got, "write-protected media is always read, even in write mode")
}

func TestReadWriteCommitsLatchInWriteMode(t *testing.T) {
	d := NewDrive()
	d.data = NewSegment(nibImageSize)
	d.mode = ModeWrite
	d.writeProtect = false
	d.latch = 0xFF

	got := d.readWrite()
	assert.Equal(t, byte(0), got)
	assert.Equal(t, byte(0xFF), d.data.DirectGet(0))
}

func TestSetLatchOnlyTakesEffectInWriteMode(t *testing.T) {
	d := NewDrive()
	d.mode = ModeRead
	d.setLatch(0x77)
	assert.Equal(t, byte(0), d.latch, "latch write is ignored while in read mode")

	d.mode = ModeWrite
	d.setLatch(0x77)
	assert.Equal(t, byte(0x77), d.latch)
}

func TestLatchReadZeroesLatchOnlyInWriteMode(t *testing.T) {
	d := NewDrive()
	d.mode = ModeWrite
	d.latch = 0x99
	d.latchRead()
	assert.Equal(t, byte(0), d.latch)
}

func TestInsertEncodesAndEjectClearsMedia(t *testing.T) {
	d := NewDrive()
	img := sampleLogicalImage()
	var buf bytes.Buffer
	require.NoError(t, img.WriteFile(&buf, 0, logicalImageSize))

	require.NoError(t, d.Insert(bytes.NewBuffer(buf.Bytes()), ImageDOS))
	assert.True(t, d.Online())
	assert.Equal(t, nibImageSize, d.data.Size())

	d.Eject()
	assert.Nil(t, d.data)
	assert.Nil(t, d.image)
	assert.Equal(t, 0, d.Track())
}

func TestInsertRejectsWrongSizedImage(t *testing.T) {
	d := NewDrive()
	err := d.Insert(bytes.NewBuffer(make([]byte, 100)), ImageDOS)
	require.Error(t, err)
	var apErr *Error
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, BadFile, apErr.Kind)
}

func TestSaveRoundTripsThroughEncodeDecode(t *testing.T) {
	d := NewDrive()
	img := sampleLogicalImage()
	var in bytes.Buffer
	require.NoError(t, img.WriteFile(&in, 0, logicalImageSize))
	require.NoError(t, d.Insert(bytes.NewBuffer(in.Bytes()), ImageProDOS))

	var out bytes.Buffer
	require.NoError(t, d.Save(&out))
	assert.Equal(t, in.Bytes(), out.Bytes())
}

func TestStepperWalkAcrossWholeDiskScenario(t *testing.T) {
	// Walks the head from track 0 to track 34 and back down using only
	// phase energize calls, as software driving the real stepper would.
	// The very first energize settles the initial phase without moving
	// the head, so reaching half-track 68 (track 34) takes 69 calls.
	d := NewDrive()
	up := []int{1, 2, 3, 4}
	for step := 0; step < 34*2+1; step++ {
		d.Phaser(up[step%4])
	}
	assert.Equal(t, 34, d.Track())

	down := []int{4, 3, 2, 1}
	for step := 0; step < 34*2; step++ {
		d.Phaser(down[step%4])
	}
	assert.Equal(t, 0, d.Track())
}
