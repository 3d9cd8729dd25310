package protocol

import (
	"encoding/binary"
	"errors"
	"math"

	"mcproxy/internal/version"
)

// ErrStringTooLong is returned by ReadString when the decoded length exceeds
// the caller-supplied cap.
var ErrStringTooLong = errors.New("protocol: string exceeds max length")

// Buffer is a mutable byte slice plus a read/write cursor, tagged with the
// protocol version it is being read or written against. Several field
// encodings -- block positions, item
// stacks, NBT framing -- change shape across versions, so the cursor
// carries the version instead of every call site threading it through.
type Buffer struct {
	data []byte
	pos  int
	ver  version.Protocol
}

// NewBuffer wraps data for reading/writing against protocol version ver.
func NewBuffer(data []byte, ver version.Protocol) *Buffer {
	return &Buffer{data: data, ver: ver}
}

// NewWriteBuffer returns an empty, growable buffer for writing.
func NewWriteBuffer(ver version.Protocol) *Buffer {
	return &Buffer{data: make([]byte, 0, 64), ver: ver}
}

// Version returns the protocol version this buffer is tagged with.
func (b *Buffer) Version() version.Protocol { return b.ver }

// Bytes returns the full backing slice.
func (b *Buffer) Bytes() []byte { return b.data }

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int { return len(b.data) - b.pos }

// Index returns the current cursor position.
func (b *Buffer) Index() int { return b.pos }

// Seek moves the cursor to an absolute position.
func (b *Buffer) Seek(pos int) { b.pos = pos }

func (b *Buffer) readByte() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, ErrBufferUnderrun
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

func (b *Buffer) writeByte(v byte) { b.data = append(b.data, v) }

// ReadBytes reads exactly n raw bytes.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+n > len(b.data) {
		return nil, ErrBufferUnderrun
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:b.pos+n])
	b.pos += n
	return out, nil
}

// WriteBytes appends raw bytes verbatim.
func (b *Buffer) WriteBytes(v []byte) { b.data = append(b.data, v...) }

// ReadBool reads a single boolean byte.
func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.readByte()
	return v != 0, err
}

// WriteBool writes a single boolean byte.
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.writeByte(1)
	} else {
		b.writeByte(0)
	}
}

func (b *Buffer) ReadU8() (uint8, error)  { v, err := b.readByte(); return v, err }
func (b *Buffer) WriteU8(v uint8)         { b.writeByte(v) }
func (b *Buffer) ReadI8() (int8, error)   { v, err := b.readByte(); return int8(v), err }
func (b *Buffer) WriteI8(v int8)          { b.writeByte(byte(v)) }

func (b *Buffer) ReadU16() (uint16, error) {
	buf, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}
func (b *Buffer) WriteU16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	b.WriteBytes(buf[:])
}
func (b *Buffer) ReadI16() (int16, error) { v, err := b.ReadU16(); return int16(v), err }
func (b *Buffer) WriteI16(v int16)        { b.WriteU16(uint16(v)) }

func (b *Buffer) ReadU32() (uint32, error) {
	buf, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}
func (b *Buffer) WriteU32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.WriteBytes(buf[:])
}
func (b *Buffer) ReadI32() (int32, error) { v, err := b.ReadU32(); return int32(v), err }
func (b *Buffer) WriteI32(v int32)        { b.WriteU32(uint32(v)) }

func (b *Buffer) ReadU64() (uint64, error) {
	buf, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}
func (b *Buffer) WriteU64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	b.WriteBytes(buf[:])
}
func (b *Buffer) ReadI64() (int64, error) { v, err := b.ReadU64(); return int64(v), err }
func (b *Buffer) WriteI64(v int64)        { b.WriteU64(uint64(v)) }

func (b *Buffer) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	return math.Float32frombits(v), err
}
func (b *Buffer) WriteF32(v float32) { b.WriteU32(math.Float32bits(v)) }

func (b *Buffer) ReadF64() (float64, error) {
	v, err := b.ReadU64()
	return math.Float64frombits(v), err
}
func (b *Buffer) WriteF64(v float64) { b.WriteU64(math.Float64bits(v)) }

// ReadString reads a varint-length-prefixed UTF-8 string, failing if the
// declared length exceeds maxLen bytes.
func (b *Buffer) ReadString(maxLen int) (string, error) {
	n, err := b.ReadVarInt()
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > maxLen {
		return "", ErrStringTooLong
	}
	buf, err := b.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteString writes a varint-length-prefixed UTF-8 string.
func (b *Buffer) WriteString(s string) {
	b.WriteVarInt(int32(len(s)))
	b.WriteBytes([]byte(s))
}

// ReadByteArray reads a varint-length-prefixed raw byte array.
func (b *Buffer) ReadByteArray(maxLen int) ([]byte, error) {
	n, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if n < 0 || int(n) > maxLen {
		return nil, ErrBufferUnderrun
	}
	return b.ReadBytes(int(n))
}

// WriteByteArray writes a varint-length-prefixed raw byte array.
func (b *Buffer) WriteByteArray(v []byte) {
	b.WriteVarInt(int32(len(v)))
	b.WriteBytes(v)
}

// ReadUUID reads a 128-bit UUID as two big-endian u64 halves.
func (b *Buffer) ReadUUID() ([16]byte, error) {
	var out [16]byte
	buf, err := b.ReadBytes(16)
	if err != nil {
		return out, err
	}
	copy(out[:], buf)
	return out, nil
}

// WriteUUID writes a 128-bit UUID.
func (b *Buffer) WriteUUID(v [16]byte) { b.WriteBytes(v[:]) }
