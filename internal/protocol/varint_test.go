package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcproxy/internal/version"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 127, 128, 255, 25565, -2147483648, 2147483647}
	for _, v := range values {
		buf := NewWriteBuffer(version.Canonical)
		buf.WriteVarInt(v)

		r := NewBuffer(buf.Bytes(), version.Canonical)
		got, err := r.ReadVarInt()
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf.Bytes()), VarIntLen(v))
	}
}

func TestVarIntRejectsOverlongContinuation(t *testing.T) {
	// Five bytes, every one with the continuation bit set: no terminator,
	// so a 32-bit varint decoder must reject it rather than loop forever.
	data := []byte{0xff, 0xff, 0xff, 0xff, 0xff}
	r := NewBuffer(data, version.Canonical)
	_, err := r.ReadVarInt()
	assert.ErrorIs(t, err, ErrVarIntTooBig)
}

func TestVarLongRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 40, -(1 << 40), 9223372036854775807, -9223372036854775808}
	for _, v := range values {
		buf := NewWriteBuffer(version.Canonical)
		buf.WriteVarLong(v)

		r := NewBuffer(buf.Bytes(), version.Canonical)
		got, err := r.ReadVarLong()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 2, -2, 2147483647, -2147483648} {
		assert.Equal(t, v, UnZigZag32(ZigZag32(v)))
	}
	for _, v := range []int64{0, 1, -1, 2, -2, 9223372036854775807, -9223372036854775808} {
		assert.Equal(t, v, UnZigZag64(ZigZag64(v)))
	}
}

func TestBufferUnderrun(t *testing.T) {
	r := NewBuffer(nil, version.Canonical)
	_, err := r.ReadVarInt()
	assert.ErrorIs(t, err, ErrBufferUnderrun)
}

func TestStringRoundTripAndCap(t *testing.T) {
	w := NewWriteBuffer(version.Canonical)
	w.WriteString("hello")
	r := NewBuffer(w.Bytes(), version.Canonical)
	got, err := r.ReadString(255)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	w2 := NewWriteBuffer(version.Canonical)
	w2.WriteString("this string is too long")
	r2 := NewBuffer(w2.Bytes(), version.Canonical)
	_, err = r2.ReadString(4)
	assert.ErrorIs(t, err, ErrStringTooLong)
}
