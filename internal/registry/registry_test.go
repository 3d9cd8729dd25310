package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcproxy/internal/packetid"
	"mcproxy/internal/version"
)

func TestAddAndResolveCB(t *testing.T) {
	tbl := New()
	tbl.AddCB(version.V1_8, 0x23, packetid.CBJoinGame)

	kind, err := tbl.CBKind(version.V1_8, 0x23)
	require.NoError(t, err)
	assert.Equal(t, packetid.CBJoinGame, kind)

	id, err := tbl.CBId(version.V1_8, packetid.CBJoinGame)
	require.NoError(t, err)
	assert.Equal(t, int32(0x23), id)
}

func TestUnknownPacketReturnsError(t *testing.T) {
	tbl := New()
	tbl.AddCB(version.V1_8, 0x00, packetid.CBKeepAlive)

	_, err := tbl.CBKind(version.V1_8, 0x99)
	assert.ErrorIs(t, err, ErrUnknownPacket)

	_, err = tbl.CBId(version.V1_8, packetid.CBJoinGame)
	assert.ErrorIs(t, err, ErrUnknownPacket)
}

func TestEquivalentVersionSharesRegistration(t *testing.T) {
	tbl := New()
	tbl.AddSB(version.V1_16_2, 0x05, packetid.SBChatMessage)

	kind, err := tbl.SBKind(version.V1_16_5, 0x05)
	require.NoError(t, err)
	assert.Equal(t, packetid.SBChatMessage, kind)
}

func TestKnownReflectsRegisteredVersionsOnly(t *testing.T) {
	tbl := New()
	assert.False(t, tbl.Known(version.V1_8))
	tbl.AddCB(version.V1_8, 0, packetid.CBKeepAlive)
	assert.True(t, tbl.Known(version.V1_8))
}

func TestMergeOverlaysWithoutLosingExistingEntries(t *testing.T) {
	base := New()
	base.AddCB(version.V1_8, 0x00, packetid.CBKeepAlive)

	other := New()
	other.AddCB(version.V1_8, 0x01, packetid.CBJoinGame)

	base.Merge(other)

	k, err := base.CBKind(version.V1_8, 0x00)
	require.NoError(t, err)
	assert.Equal(t, packetid.CBKeepAlive, k)

	k, err = base.CBKind(version.V1_8, 0x01)
	require.NoError(t, err)
	assert.Equal(t, packetid.CBJoinGame, k)
}

func TestDefaultRegistersEveryVersionsHandshakeFamily(t *testing.T) {
	tbl := Default()
	for _, v := range version.Supported {
		assert.True(t, tbl.Known(v), "expected version %v to be registered", v)
	}
}
