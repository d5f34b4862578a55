// ABOUTME: File header: magic, version, stream shape, and chunk geometry
// ABOUTME: Layout per spec.md §3's Header fields table
package sea

import "encoding/binary"

// Magic is the fixed 4-byte file signature.
var Magic = [4]byte{'S', 'E', 'A', 'C'}

// Version is the only header version this package writes or accepts.
const Version uint8 = 0x01

// HeaderSize is the fixed byte length of the header, before metadata.
const HeaderSize = 4 + 1 + 1 + 2 + 2 + 4 + 4 + 4

// Header is the fixed-size preamble of a SEA file.
type Header struct {
	Channels        uint8
	ChunkSize       uint16
	FramesPerChunk  uint16
	SampleRate      uint32
	TotalFrames     uint32 // 0 means "stream until EOF"
	MetadataSize    uint32
}

// Encode writes the header's fixed 22 bytes in the layout spec.md §3 defines.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	buf[4] = Version
	buf[5] = h.Channels
	binary.LittleEndian.PutUint16(buf[6:8], h.ChunkSize)
	binary.LittleEndian.PutUint16(buf[8:10], h.FramesPerChunk)
	binary.LittleEndian.PutUint32(buf[10:14], h.SampleRate)
	binary.LittleEndian.PutUint32(buf[14:18], h.TotalFrames)
	binary.LittleEndian.PutUint32(buf[18:22], h.MetadataSize)
	return buf
}

// ParseHeader reads and validates the fixed header from the start of
// buf, returning the header and the byte offset immediately after it.
func ParseHeader(buf []byte) (Header, int, error) {
	if len(buf) < HeaderSize {
		return Header{}, 0, ErrTruncated
	}
	if buf[0] != Magic[0] || buf[1] != Magic[1] || buf[2] != Magic[2] || buf[3] != Magic[3] {
		return Header{}, 0, ErrBadMagic
	}
	if buf[4] != Version {
		return Header{}, 0, ErrUnsupportedVersion
	}

	h := Header{
		Channels:       buf[5],
		ChunkSize:      binary.LittleEndian.Uint16(buf[6:8]),
		FramesPerChunk: binary.LittleEndian.Uint16(buf[8:10]),
		SampleRate:     binary.LittleEndian.Uint32(buf[10:14]),
		TotalFrames:    binary.LittleEndian.Uint32(buf[14:18]),
		MetadataSize:   binary.LittleEndian.Uint32(buf[18:22]),
	}
	if h.Channels == 0 || h.FramesPerChunk == 0 {
		return Header{}, 0, ErrParamOutOfRange
	}
	return h, HeaderSize, nil
}
