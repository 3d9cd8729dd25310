package chunk

import (
	"mcproxy/internal/convert"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// v8Encoder implements the 1.8 fixed chunk format: a u16 section bitmap, a
// varint total payload length, then for each present section 8192 bytes of
// little-endian u16 block data (12 bits id, 4 bits metadata) in YZX order,
// block-light nibbles, optional sky-light nibbles, and an optional
// 256-byte biome array. Grounded line-for-line on
// bb_proxy/src/packet/v1_8.rs's chunk function.
type v8Encoder struct{}

func (v8Encoder) Encode(c *Column, conv *convert.Tables, ver version.Protocol) []byte {
	bitmap := c.bitMap()
	sectionCount := 0
	for _, s := range c.Sections {
		if s != nil {
			sectionCount++
		}
	}
	actualSections := sectionCount
	totalSections := sectionCount
	if totalSections == 0 {
		totalSections = 1
	}

	body := protocol.NewWriteBuffer(ver)
	if actualSections == 0 {
		body.WriteU16(1)
	} else {
		body.WriteU16(bitmap)
	}

	dataLen := totalSections*16*16*16*2 + totalSections*16*16*16/2*2
	if c.Full {
		dataLen += 256
	}
	body.WriteVarInt(int32(dataLen))

	if actualSections == 0 {
		body.WriteBytes(make([]byte, 16*16*16*2))
	} else {
		for sy, s := range c.Sections {
			if s == nil {
				continue
			}
			_ = sy
			for y := 0; y < 16; y++ {
				for z := 0; z < 16; z++ {
					for x := 0; x < 16; x++ {
						canonical := s.blockAt(x, y, z)
						if canonical == 0 {
							body.WriteU8(0)
							body.WriteU8(0)
							continue
						}
						old := conv.ToOld(convert.FamilyBlock, ver, canonical)
						body.WriteU8(byte(old))
						body.WriteU8(byte(old >> 8))
					}
				}
			}
		}
	}

	for i := 0; i < totalSections*16*16*16/2; i++ {
		body.WriteU8(0xFF)
	}
	for i := 0; i < totalSections*16*16*16/2; i++ {
		body.WriteU8(0xFF)
	}
	if c.Full {
		for i := 0; i < 256; i++ {
			body.WriteU8(127)
		}
	}

	return body.Bytes()
}
