package chunk

import "mcproxy/internal/protocol"

// writeLightBitsets writes the four light bitsets (sky present, block
// present, sky empty, block empty) plus the present-section nibble arrays,
// for the 1.17+ wire format where light data travels inside ChunkData
// itself. Grounded line-for-line on bb_proxy/src/packet/v1_18.rs's
// sky/block bitmap construction (the one-extra-bit-below/above-the-world
// shift dance below mirrors that file exactly). Shared by v14 (1.17+),
// v18, and v20.
func writeLightBitsets(buf *protocol.Buffer, sky, block [16][]byte) {
	var skyBitmap, skyEmptyBitmap uint64
	var skyLen int32
	for y := 0; y < 16; y++ {
		if sky[y] != nil {
			skyBitmap |= 1 << uint(y)
			skyLen++
		} else {
			skyEmptyBitmap |= 1 << uint(y)
		}
	}
	var blockBitmap, blockEmptyBitmap uint64
	var blockLen int32
	for y := 0; y < 16; y++ {
		if block[y] != nil {
			blockBitmap |= 1 << uint(y)
			blockLen++
		} else {
			blockEmptyBitmap |= 1 << uint(y)
		}
	}

	skyBitmap <<= 1
	skyEmptyBitmap <<= 1
	skyEmptyBitmap |= 1 | (1 << 17)
	blockBitmap <<= 1
	blockEmptyBitmap <<= 1
	blockEmptyBitmap |= 1 | (1 << 17)

	buf.WriteVarInt(1)
	buf.WriteU64(skyBitmap)
	buf.WriteVarInt(1)
	buf.WriteU64(blockBitmap)
	buf.WriteVarInt(1)
	buf.WriteU64(skyEmptyBitmap)
	buf.WriteVarInt(1)
	buf.WriteU64(blockEmptyBitmap)

	buf.WriteVarInt(skyLen)
	for y := 0; y < 16; y++ {
		if sky[y] != nil {
			buf.WriteVarInt(int32(len(sky[y])))
			buf.WriteBytes(sky[y])
		}
	}
	buf.WriteVarInt(blockLen)
	for y := 0; y < 16; y++ {
		if block[y] != nil {
			buf.WriteVarInt(int32(len(block[y])))
			buf.WriteBytes(block[y])
		}
	}
}
