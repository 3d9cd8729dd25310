package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcproxy/internal/version"
)

func TestPosRoundTripBothLayouts(t *testing.T) {
	positions := []Pos{
		{X: 0, Y: 0, Z: 0},
		{X: 100, Y: 64, Z: -100},
		{X: -33554432, Y: -2048, Z: 33554431},
		{X: 18, Y: 255, Z: -18},
	}

	for _, ver := range []version.Protocol{version.V1_8, version.V1_13_2, version.V1_14_4, version.Canonical} {
		for _, p := range positions {
			w := NewWriteBuffer(ver)
			w.WritePos(p)
			r := NewBuffer(w.Bytes(), ver)
			got, err := r.ReadPos()
			require.NoError(t, err)
			assert.Equal(t, p, got, "version %v", ver)
		}
	}
}

func TestPosLayoutDiffersAcrossEraBoundary(t *testing.T) {
	p := Pos{X: 1, Y: 2, Z: 3}

	oldBuf := NewWriteBuffer(version.V1_13_2)
	oldBuf.WritePos(p)

	newBuf := NewWriteBuffer(version.V1_14_4)
	newBuf.WritePos(p)

	assert.NotEqual(t, oldBuf.Bytes(), newBuf.Bytes())

	// Decoding the new-layout bytes with the old layout must not silently
	// produce the same position back.
	r := NewBuffer(newBuf.Bytes(), version.V1_13_2)
	got, err := r.ReadPos()
	require.NoError(t, err)
	assert.NotEqual(t, p, got)
}
