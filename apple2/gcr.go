package apple2

// GCR 6-and-2 encoding/decoding for the Disk II nibble format: packs 256
// logical bytes per sector into 342 six-bit staging values plus a
// trailing checksum, each mapped through the 64-entry gcr62 table onto
// a self-clocking on-media nibble. Framing constants and the table
// itself are carried from the source encoder; the staging layout here
// works natively in 6-bit space (see DESIGN.md) rather than pre-shifting
// into the top of an 8-bit byte, which keeps the decoder -- absent from
// the retrieved source -- a well-defined, provably exact inverse.

// ImageType identifies the on-disk layout a Drive's backing file holds.
type ImageType int

const (
	ImageNone ImageType = iota
	ImageDOS
	ImageProDOS
	ImageNIB
)

const (
	logicalImageSize = 35 * 16 * 256 // 143,360 bytes
	sectorsPerTrack  = 16
	bytesPerSector   = 256
	bytesPerTrack    = sectorsPerTrack * bytesPerSector // 4096

	trackPrefixSync    = 48
	addrFieldSize      = 14  // D5 AA 96 + 4x 4-and-4 + DE AA EB
	dataFieldPrefix    = 3   // D5 AA AD
	dataFieldSync      = 6
	dataFieldBody      = 343 // staging values + checksum, gcr62-mapped
	dataFieldSuffix    = 3   // DE AA EB
	dataFieldTrailSync = 27

	dataFieldSize = dataFieldPrefix + dataFieldSync + dataFieldBody + dataFieldSuffix + dataFieldTrailSync // 382
	sectorSize    = addrFieldSize + dataFieldSize                                                          // 396

	// ENC_ETRACK: bytes occupied by one encoded track, computed exactly
	// from the framing above rather than the source comment's rounded
	// figure (see DESIGN.md).
	ENC_ETRACK = trackPrefixSync + sectorsPerTrack*sectorSize // 6,384

	nibImageSize = 35 * ENC_ETRACK

	twoBitSectionLen  = 0x56  // 86
	sixBitSectionLen  = 0x100 // 256
	stagingLen        = twoBitSectionLen + sixBitSectionLen // 342
	vacWrapGuardIndex = 84                                  // beyond this, the "ac" pair wraps onto bytes 0/1 and is masked
)

var gcr62 = [64]byte{
	0x96, 0x97, 0x9a, 0x9b, 0x9d, 0x9e, 0x9f, 0xa6, 0xa7, 0xab, 0xac, 0xad, 0xae, 0xaf, 0xb2, 0xb3,
	0xb4, 0xb5, 0xb6, 0xb7, 0xb9, 0xba, 0xbb, 0xbc, 0xbd, 0xbe, 0xbf, 0xcb, 0xcd, 0xce, 0xcf, 0xd3,
	0xd6, 0xd7, 0xd9, 0xda, 0xdb, 0xdc, 0xdd, 0xde, 0xdf, 0xe5, 0xe6, 0xe7, 0xe9, 0xea, 0xeb, 0xec,
	0xed, 0xee, 0xef, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe, 0xff,
}

var reverseGcr62 = func() map[byte]byte {
	m := make(map[byte]byte, len(gcr62))
	for i, v := range gcr62 {
		m[v] = byte(i)
	}
	return m
}()

// dosSectorOrder and prodosSectorOrder map a logical (DOS-visible)
// sector number to the physical slot it occupies on an encoded track,
// the skew the original hardware used to reduce rotational latency
// between consecutively requested sectors. NIB images carry no skew.
var dosSectorOrder = [16]byte{0, 13, 11, 9, 7, 5, 3, 1, 14, 12, 10, 8, 6, 4, 2, 15}
var prodosSectorOrder = [16]byte{0, 2, 4, 6, 8, 10, 12, 14, 1, 3, 5, 7, 9, 11, 13, 15}
var nibSectorOrder = [16]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

func sectorOrderFor(t ImageType) [16]byte {
	switch t {
	case ImageDOS:
		return dosSectorOrder
	case ImageProDOS:
		return prodosSectorOrder
	default:
		return nibSectorOrder
	}
}

// pack2 reverses the two low bits of v: bit0<->bit1. It is its own
// inverse, so the same function packs at encode time and unpacks at
// decode time.
func pack2(v byte) byte {
	return (v&0x01)<<1 | (v&0x02)>>1
}

// encode4n4 writes the two-byte 4-and-4 encoding of val.
func encode4n4(val byte) [2]byte {
	return [2]byte{((val >> 1) & 0x55) | 0xAA, (val & 0x55) | 0xAA}
}

// decode4n4 inverts encode4n4.
func decode4n4(b0, b1 byte) byte {
	return (b0&0x55)<<1 | (b1 & 0x55)
}

// encodeSectorData packs 256 source bytes into 343 on-media nibbles:
// 342 staging values (86 two-bit-packed, 256 six-bit) XOR-chained with
// a trailing checksum nibble, each run through gcr62.
func encodeSectorData(src []byte) [dataFieldBody]byte {
	var buf [stagingLen]byte

	for i := 0; i < twoBitSectionLen; i++ {
		v00 := src[i]
		v56 := src[(i+0x56)&0xFF]
		var vac byte
		if i < vacWrapGuardIndex {
			vac = pack2(src[(i+0xAC)&0xFF])
		}
		v := vac
		v = (v << 2) | pack2(v56)
		v = (v << 2) | pack2(v00)
		buf[i] = v
	}
	for i := 0; i < sixBitSectionLen; i++ {
		buf[twoBitSectionLen+i] = src[i] >> 2
	}

	var out [dataFieldBody]byte
	var last byte
	for i := 0; i < stagingLen; i++ {
		out[i] = buf[i] ^ last
		last = buf[i]
	}
	out[stagingLen] = last

	var nibbles [dataFieldBody]byte
	for i, v := range out {
		nibbles[i] = gcr62[v]
	}
	return nibbles
}

// decodeSectorData inverts encodeSectorData exactly, returning the 256
// original bytes, or a *Error of Kind BadFile if the nibble stream
// doesn't decode to a legal staging value or the checksum fails.
func decodeSectorData(nibbles [dataFieldBody]byte) ([]byte, error) {
	var chained [dataFieldBody]byte
	for i, n := range nibbles {
		v, ok := reverseGcr62[n]
		if !ok {
			return nil, newError(BadFile, "illegal gcr nibble %#02x at offset %d", n, i)
		}
		chained[i] = v
	}

	var buf [stagingLen]byte
	var last byte
	for i := 0; i < stagingLen; i++ {
		buf[i] = chained[i] ^ last
		last = buf[i]
	}
	if chained[stagingLen] != last {
		return nil, newError(BadFile, "gcr checksum mismatch")
	}

	dst := make([]byte, bytesPerSector)
	for i := 0; i < sixBitSectionLen; i++ {
		dst[i] = buf[twoBitSectionLen+i] << 2
	}
	for i := 0; i < twoBitSectionLen; i++ {
		v := buf[i]
		v00pair := v & 0x03
		v56pair := (v >> 2) & 0x03
		vacpair := (v >> 4) & 0x03
		dst[i] |= pack2(v00pair)
		dst[(i+0x56)&0xFF] |= pack2(v56pair)
		if i < vacWrapGuardIndex {
			dst[(i+0xAC)&0xFF] |= pack2(vacpair)
		}
	}
	return dst, nil
}

// EncodeDisk nibblizes image (logicalImageSize bytes) into a fresh
// nibImageSize-byte Segment per imageType's sector skew. NIB images
// pass through: the source is already in on-media form.
func EncodeDisk(image *Segment, imageType ImageType) (*Segment, error) {
	if imageType == ImageNIB {
		dst := NewSegment(image.Size())
		if err := CopyRange(image, 0, dst, 0, image.Size()); err != nil {
			return nil, err
		}
		return dst, nil
	}
	if image.Size() != logicalImageSize {
		return nil, newError(BadFile, "logical image must be %d bytes, got %d", logicalImageSize, image.Size())
	}

	dst := NewSegment(nibImageSize)
	order := sectorOrderFor(imageType)

	for track := 0; track < 35; track++ {
		trackOff := track * ENC_ETRACK
		imgOff := track * bytesPerTrack

		var physicalSector [sectorsPerTrack]byte
		for logical := 0; logical < sectorsPerTrack; logical++ {
			physicalSector[order[logical]] = byte(logical)
		}

		pos := trackOff
		for i := 0; i < trackPrefixSync; i++ {
			dst.DirectSet(pos%dst.Size(), 0xFF)
			pos++
		}

		for slot := 0; slot < sectorsPerTrack; slot++ {
			logical := physicalSector[slot]
			pos = writeSectorHeader(dst, pos, track, int(logical))

			src := make([]byte, bytesPerSector)
			for i := range src {
				src[i] = image.DirectGet(imgOff + int(logical)*bytesPerSector + i)
			}
			pos = writeSectorDataField(dst, pos, src)
		}
	}

	return dst, nil
}

func writeSectorHeader(dst *Segment, pos, track, sector int) int {
	dst.DirectSet(pos, 0xD5)
	dst.DirectSet(pos+1, 0xAA)
	dst.DirectSet(pos+2, 0x96)
	pos += 3

	fields := []byte{0xFE, byte(track), byte(sector), 0xFE ^ byte(track) ^ byte(sector)}
	for _, f := range fields {
		b := encode4n4(f)
		dst.DirectSet(pos, b[0])
		dst.DirectSet(pos+1, b[1])
		pos += 2
	}

	dst.DirectSet(pos, 0xDE)
	dst.DirectSet(pos+1, 0xAA)
	dst.DirectSet(pos+2, 0xEB)
	pos += 3
	return pos
}

func writeSectorDataField(dst *Segment, pos int, src []byte) int {
	dst.DirectSet(pos, 0xD5)
	dst.DirectSet(pos+1, 0xAA)
	dst.DirectSet(pos+2, 0xAD)
	pos += 3
	for i := 0; i < dataFieldSync; i++ {
		dst.DirectSet(pos, 0xFF)
		pos++
	}

	nibbles := encodeSectorData(src)
	for _, n := range nibbles {
		dst.DirectSet(pos, n)
		pos++
	}

	dst.DirectSet(pos, 0xDE)
	dst.DirectSet(pos+1, 0xAA)
	dst.DirectSet(pos+2, 0xEB)
	pos += 3
	for i := 0; i < dataFieldTrailSync; i++ {
		dst.DirectSet(pos, 0xFF)
		pos++
	}
	return pos
}

// DecodeDisk inverts EncodeDisk, reconstructing the logicalImageSize
// logical image from a nibblized Segment of nibImageSize bytes.
func DecodeDisk(nib *Segment, imageType ImageType) (*Segment, error) {
	if imageType == ImageNIB {
		dst := NewSegment(nib.Size())
		if err := CopyRange(nib, 0, dst, 0, nib.Size()); err != nil {
			return nil, err
		}
		return dst, nil
	}
	if nib.Size() != nibImageSize {
		return nil, newError(BadFile, "nibblized image must be %d bytes, got %d", nibImageSize, nib.Size())
	}

	dst := NewSegment(logicalImageSize)

	for track := 0; track < 35; track++ {
		pos := track*ENC_ETRACK + trackPrefixSync
		imgOff := track * bytesPerTrack

		for slot := 0; slot < sectorsPerTrack; slot++ {
			sector, newPos, err := readSectorHeader(nib, pos, track)
			if err != nil {
				return nil, err
			}
			pos = newPos

			data, newPos, err := readSectorDataField(nib, pos)
			if err != nil {
				return nil, err
			}
			pos = newPos

			if err := CopyRangeFromBytes(data, dst, imgOff+sector*bytesPerSector); err != nil {
				return nil, err
			}
		}
	}

	return dst, nil
}

func readSectorHeader(nib *Segment, pos, expectedTrack int) (sector int, next int, err error) {
	pos += 3 // D5 AA 96
	var fields [4]byte
	for i := range fields {
		b0 := nib.DirectGet(pos)
		b1 := nib.DirectGet(pos + 1)
		fields[i] = decode4n4(b0, b1)
		pos += 2
	}
	pos += 3 // DE AA EB

	volume, track, sect, checksum := fields[0], fields[1], fields[2], fields[3]
	if checksum != volume^track^sect {
		return 0, pos, newError(BadFile, "sector header checksum mismatch at track %d", expectedTrack)
	}
	return int(sect), pos, nil
}

func readSectorDataField(nib *Segment, pos int) (data []byte, next int, err error) {
	pos += 3 + dataFieldSync // D5 AA AD + sync

	var nibbles [dataFieldBody]byte
	for i := range nibbles {
		nibbles[i] = nib.DirectGet(pos)
		pos++
	}
	pos += 3 + dataFieldTrailSync // DE AA EB + sync

	data, err = decodeSectorData(nibbles)
	if err != nil {
		return nil, pos, err
	}
	return data, pos, nil
}

// CopyRangeFromBytes stores a plain byte slice into dst starting at
// dstOff, bypassing traps -- used when the source is a transient Go
// slice rather than another Segment.
func CopyRangeFromBytes(src []byte, dst *Segment, dstOff int) error {
	if dstOff < 0 || dstOff+len(src) > dst.Size() {
		return newError(OutOfBounds, "copy exceeds segment bounds")
	}
	for i, b := range src {
		dst.DirectSet(dstOff+i, b)
	}
	return nil
}
