package apple2

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentPlainReadWrite(t *testing.T) {
	seg := NewSegment(256)

	seg.Set(0x10, 0x42)
	assert.Equal(t, byte(0x42), seg.Get(0x10))

	// Reading back the most recently stored value at an untrapped
	// address (spec invariant 5).
	seg.Set(0x10, 0x99)
	assert.Equal(t, byte(0x99), seg.Get(0x10))
}

func TestSegmentReadTrapOverridesRaw(t *testing.T) {
	seg := NewSegment(16)
	seg.DirectSet(4, 0xAA)

	seg.InstallReadTrap(4, func(s *Segment, addr int) byte {
		return 0x55
	})

	assert.Equal(t, byte(0x55), seg.Get(4))
	assert.Equal(t, byte(0xAA), seg.DirectGet(4), "direct access bypasses the trap")
}

func TestSegmentWriteTrapOverridesRaw(t *testing.T) {
	seg := NewSegment(16)
	var captured byte

	seg.InstallWriteTrap(4, func(s *Segment, addr int, value byte) {
		captured = value
		s.DirectSet(addr, value^0xFF)
	})

	seg.Set(4, 0x0F)
	assert.Equal(t, byte(0x0F), captured)
	assert.Equal(t, byte(0xF0), seg.DirectGet(4))
}

func TestSegmentTrapRemoval(t *testing.T) {
	seg := NewSegment(16)
	seg.InstallReadTrap(0, func(s *Segment, addr int) byte { return 0x7F })
	require.Equal(t, byte(0x7F), seg.Get(0))

	seg.InstallReadTrap(0, nil)
	seg.DirectSet(0, 0x01)
	assert.Equal(t, byte(0x01), seg.Get(0))
}

func TestSegmentOutOfBounds(t *testing.T) {
	seg := NewSegment(4)
	assert.Equal(t, byte(0), seg.Get(10))
	seg.Set(10, 0xFF) // no-op, must not panic
}

func TestCopyRangeBypassesTraps(t *testing.T) {
	src := NewSegment(8)
	dst := NewSegment(8)
	for i := 0; i < 8; i++ {
		src.DirectSet(i, byte(i+1))
	}

	trapCalls := 0
	dst.InstallWriteTrap(0, func(s *Segment, addr int, value byte) {
		trapCalls++
		s.DirectSet(addr, value)
	})

	err := CopyRange(src, 0, dst, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, trapCalls)
	for i := 0; i < 8; i++ {
		assert.Equal(t, byte(i+1), dst.DirectGet(i))
	}
}

func TestCopyRangeOutOfBounds(t *testing.T) {
	src := NewSegment(4)
	dst := NewSegment(4)
	err := CopyRange(src, 0, dst, 0, 100)
	require.Error(t, err)
	var apErr *Error
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, OutOfBounds, apErr.Kind)
}

func TestSegmentReadFileWriteFile(t *testing.T) {
	seg := NewSegment(16)
	src := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	require.NoError(t, seg.ReadFile(src, 4, 8))
	assert.Equal(t, byte(1), seg.DirectGet(4))
	assert.Equal(t, byte(8), seg.DirectGet(11))

	var out bytes.Buffer
	require.NoError(t, seg.WriteFile(&out, 4, 8))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, out.Bytes())
}

func TestSegmentReadFileShortRead(t *testing.T) {
	seg := NewSegment(16)
	src := bytes.NewReader([]byte{1, 2, 3})
	err := seg.ReadFile(src, 0, 8)
	require.Error(t, err)
	var apErr *Error
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, BadFile, apErr.Kind)
}
