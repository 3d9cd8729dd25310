package chunk

import (
	"mcproxy/internal/convert"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// v9Encoder implements the 1.9-1.12 paletted chunk format: a u16 section
// bitmap, varint total length, then per present section a u8 bits-per-
// entry, (if bpe<=8) a varint-length palette of old IDs, a varint
// long-count, the packed long array (old pre-1.16 "entries may span a
// long" layout), block-light and sky-light nibbles, and a trailing
// varint-zero for block entities. The paletted-section shape is grounded on
// sc_server/src/net/serialize/v1_9.rs.
type v9Encoder struct{}

func (v9Encoder) Encode(c *Column, conv *convert.Tables, ver version.Protocol) []byte {
	body := protocol.NewWriteBuffer(ver)
	body.WriteU16(c.bitMap())

	sectionsBuf := protocol.NewWriteBuffer(ver)
	for _, s := range c.Sections {
		if s == nil {
			continue
		}
		writeSection1_9(sectionsBuf, s, conv, ver)
		// Per-section light.
		sectionsBuf.WriteBytes(fullBrightNibbles())
		sectionsBuf.WriteBytes(fullBrightNibbles())
	}
	if c.Full {
		sectionsBuf.WriteBytes(make([]byte, 256))
	}
	sectionBytes := sectionsBuf.Bytes()

	body.WriteVarInt(int32(len(sectionBytes)))
	body.WriteBytes(sectionBytes)
	body.WriteVarInt(0) // no block entities
	return body.Bytes()
}

func writeSection1_9(buf *protocol.Buffer, s *Section, conv *convert.Tables, ver version.Protocol) {
	oldPalette := make([]int32, len(s.Palette))
	for i, canon := range s.Palette {
		oldPalette[i] = conv.ToOld(convert.FamilyBlock, ver, canon)
	}

	bpe := bitsFor(len(oldPalette))
	if bpe < 4 {
		bpe = 4
	}
	buf.WriteU8(uint8(bpe))
	if bpe <= 8 {
		buf.WriteVarInt(int32(len(oldPalette)))
		for _, id := range oldPalette {
			buf.WriteVarInt(id)
		}
	}

	values := make([]int32, 4096)
	for i := 0; i < 4096; i++ {
		values[i] = int32(s.Data.Get(i))
	}
	var longs []uint64
	if bpe <= 8 {
		longs = packOldStyle(bpe, values)
	} else {
		// Global palette: write old block IDs directly.
		direct := make([]int32, len(values))
		for i, pi := range values {
			if int(pi) < len(oldPalette) {
				direct[i] = oldPalette[pi]
			}
		}
		longs = packOldStyle(bpe, direct)
	}
	buf.WriteVarInt(int32(len(longs)))
	for _, l := range longs {
		buf.WriteU64(l)
	}
}

// bitsFor returns the minimum number of bits needed to address n distinct
// palette entries.
func bitsFor(n int) int {
	bits := 0
	for (1 << uint(bits)) < n {
		bits++
	}
	return bits
}

func fullBrightNibbles() []byte {
	b := make([]byte, 2048)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}
