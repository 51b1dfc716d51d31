package apple2

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	var logBuf bytes.Buffer
	m, err := NewMachine(Config{Width: 560, Height: 384}, NewLogger(&logBuf))
	require.NoError(t, err)
	return m
}

func TestNewMachineRejectsNonPositiveDimensions(t *testing.T) {
	_, err := NewMachine(Config{Width: 0, Height: 384}, nil)
	require.Error(t, err)
	var apErr *Error
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, BadOption, apErr.Kind)
}

func TestBootLoadsPCFromResetVector(t *testing.T) {
	m := newTestMachine(t)
	m.Memory.DirectSet(0xFFFC, 0x00)
	m.Memory.DirectSet(0xFFFD, 0x80)

	require.NoError(t, m.Boot())
	assert.Equal(t, uint16(0x8000), m.CPU.PC)
}

func TestSelectedDriveDefaultsToDriveOne(t *testing.T) {
	m := newTestMachine(t)
	assert.Same(t, m.drive1, m.SelectedDrive())
}

func TestInsertDiskRejectsUnknownSlot(t *testing.T) {
	m := newTestMachine(t)
	err := m.InsertDisk(3, "/nonexistent", ImageDOS)
	require.Error(t, err)
	var apErr *Error
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, BadOption, apErr.Kind)
}

func TestInsertDiskRejectsMissingFile(t *testing.T) {
	m := newTestMachine(t)
	err := m.InsertDisk(1, "/nonexistent/disk.dsk", ImageDOS)
	require.Error(t, err)
	var apErr *Error
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, BadFile, apErr.Kind)
}

func TestSoftswitchPhaseAddressStepsSelectedDrive(t *testing.T) {
	m := newTestMachine(t)

	m.Memory.Get(0xC0E1) // phase 1
	m.Memory.Get(0xC0E3) // phase 2: steps in by one half-track
	assert.Equal(t, 1, m.drive1.trackPos)
}

func TestSoftswitchDriveSelectSwitchesWhichDriveStepsRespond(t *testing.T) {
	m := newTestMachine(t)

	m.Memory.Get(0xC0EB) // select drive 2
	m.Memory.Get(0xC0E1) // phase 1 (settles, no step)
	m.Memory.Get(0xC0E3) // phase 2 (steps in)

	assert.Equal(t, 0, m.drive1.trackPos)
	assert.Equal(t, 1, m.drive2.trackPos)
}

func TestSoftswitchReadWriteAddressReadsLatchedByte(t *testing.T) {
	m := newTestMachine(t)
	m.drive1.data = NewSegment(nibImageSize)
	m.drive1.data.DirectSet(0, 0x5A)

	got := m.Memory.Get(0xC0EC)
	assert.Equal(t, byte(0x5A), got)
}
