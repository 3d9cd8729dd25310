// Package protocol implements the typed, cursor-based packet buffer used to
// read and write Minecraft protocol primitives.
//
// Grounded on protocol.go's ReadVarInt/WriteVarInt/WriteString, generalized
// with explicit error returns in place of a best-effort style, a
// version-aware cursor for fields whose layout depends on protocol version,
// and var-long/zig-zag/NBT/position/item-stack support.
package protocol

import "errors"

// ErrVarIntTooBig is returned when a varint/var-long continuation run
// exceeds the maximum byte count for its width -- the decoder rejects a
// continuation bit set on the fifth byte of a 32-bit varint.
var ErrVarIntTooBig = errors.New("protocol: varint is too big")

// ErrBufferUnderrun is returned when a read would go past the end of the
// buffer.
var ErrBufferUnderrun = errors.New("protocol: buffer underrun")

const (
	maxVarIntBytes  = 5
	maxVarLongBytes = 10
)

// ReadVarInt reads a 32-bit signed varint (native two's-complement
// reinterpretation, not zig-zag) from b starting at the current cursor.
func (b *Buffer) ReadVarInt() (int32, error) {
	var result int32
	var numRead uint
	for {
		by, err := b.readByte()
		if err != nil {
			return 0, err
		}
		result |= int32(by&0x7f) << (7 * numRead)
		numRead++
		if by&0x80 == 0 {
			break
		}
		if numRead >= maxVarIntBytes {
			return 0, ErrVarIntTooBig
		}
	}
	return result, nil
}

// WriteVarInt writes v as a 32-bit signed varint.
func (b *Buffer) WriteVarInt(v int32) {
	uv := uint32(v)
	for {
		by := byte(uv & 0x7f)
		uv >>= 7
		if uv != 0 {
			by |= 0x80
		}
		b.writeByte(by)
		if uv == 0 {
			break
		}
	}
}

// VarIntLen returns the number of bytes WriteVarInt(v) would emit, used by
// frame length-prefix calculations.
func VarIntLen(v int32) int {
	uv := uint32(v)
	n := 1
	for uv >= 0x80 {
		uv >>= 7
		n++
	}
	return n
}

// ReadVarLong reads a 64-bit signed var-long.
func (b *Buffer) ReadVarLong() (int64, error) {
	var result int64
	var numRead uint
	for {
		by, err := b.readByte()
		if err != nil {
			return 0, err
		}
		result |= int64(by&0x7f) << (7 * numRead)
		numRead++
		if numRead > maxVarLongBytes {
			return 0, ErrVarIntTooBig
		}
		if by&0x80 == 0 {
			break
		}
	}
	return result, nil
}

// WriteVarLong writes v as a 64-bit signed var-long.
func (b *Buffer) WriteVarLong(v int64) {
	uv := uint64(v)
	for {
		by := byte(uv & 0x7f)
		uv >>= 7
		if uv != 0 {
			by |= 0x80
		}
		b.writeByte(by)
		if uv == 0 {
			break
		}
	}
}

// ZigZag32 bijectively maps a signed 32-bit integer to an unsigned one. Used
// only by internal message formats; the Minecraft wire protocol's own
// varints are never zig-zag encoded.
func ZigZag32(n int32) uint32 { return uint32((n << 1) ^ (n >> 31)) }

// UnZigZag32 inverts ZigZag32.
func UnZigZag32(n uint32) int32 { return int32(n>>1) ^ -int32(n&1) }

// ZigZag64 is the 64-bit analogue of ZigZag32.
func ZigZag64(n int64) uint64 { return uint64((n << 1) ^ (n >> 63)) }

// UnZigZag64 inverts ZigZag64.
func UnZigZag64(n uint64) int64 { return int64(n>>1) ^ -int64(n&1) }
