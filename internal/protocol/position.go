package protocol

import "mcproxy/internal/version"

// Pos is a block position. Grounded on bamboo/proxy/src/packet.rs's
// write_pos/read_pos, which select an encoding based on the buffer's
// protocol version.
type Pos struct {
	X, Y, Z int32
}

// ReadPos decodes a packed 64-bit position using the layout appropriate for
// the buffer's protocol version: pre-1.14 packs (26 x, 12 y, 26 z) with y in
// the middle; 1.14+ packs (26 x, 26 z, 12 y) with y at the bottom.
func (b *Buffer) ReadPos() (Pos, error) {
	v, err := b.ReadU64()
	if err != nil {
		return Pos{}, err
	}
	if b.ver < version.V1_14 {
		return posFromOldU64(v), nil
	}
	return posFromU64(v), nil
}

// WritePos encodes p using the layout for the buffer's protocol version.
func (b *Buffer) WritePos(p Pos) {
	if b.ver < version.V1_14 {
		b.WriteU64(p.toOldU64())
	} else {
		b.WriteU64(p.toU64())
	}
}

func signExtend(v int64, bits uint) int64 {
	shift := 64 - bits
	return (v << shift) >> shift
}

// posFromOldU64 decodes the pre-1.14 layout: 26 bits x, 12 bits y, 26 bits z,
// y in the middle.
func posFromOldU64(v uint64) Pos {
	x := signExtend(int64(v>>38), 26)
	y := signExtend(int64(v>>26)&0xFFF, 12)
	z := signExtend(int64(v)&0x3FFFFFF, 26)
	return Pos{X: int32(x), Y: int32(y), Z: int32(z)}
}

func (p Pos) toOldU64() uint64 {
	return (uint64(p.X)&0x3FFFFFF)<<38 | (uint64(p.Y)&0xFFF)<<26 | (uint64(p.Z) & 0x3FFFFFF)
}

// posFromU64 decodes the 1.14+ layout: 26 bits x, 26 bits z, 12 bits y, y at
// the bottom.
func posFromU64(v uint64) Pos {
	x := signExtend(int64(v>>38), 26)
	z := signExtend(int64(v>>12)&0x3FFFFFF, 26)
	y := signExtend(int64(v)&0xFFF, 12)
	return Pos{X: int32(x), Y: int32(y), Z: int32(z)}
}

func (p Pos) toU64() uint64 {
	return (uint64(p.X)&0x3FFFFFF)<<38 | (uint64(p.Z)&0x3FFFFFF)<<12 | (uint64(p.Y) & 0xFFF)
}
