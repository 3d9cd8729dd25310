package registry

import (
	"mcproxy/internal/packetid"
	"mcproxy/internal/version"
)

// Default returns a registry seeded with the handshake/login packet IDs
// (stable across every supported version) plus a representative play-state
// packet set for four representative versions, one for each chunk encoder
// that a supported version uses: 1.8, 1.13.2, 1.14.4, and the canonical
// 1.19.3. The remaining versions
// named in version.Supported would, in a from-data build, be populated the
// same way by internal/gen from the reference-data bundle; see DESIGN.md.
func Default() *Table {
	t := New()
	for _, v := range version.Supported {
		addHandshakeAndLogin(t, v)
	}
	addPlay1_8(t)
	addPlay1_13_2(t)
	addPlay1_14_4(t)
	addPlayCanonical(t)
	return t
}

// addHandshakeAndLogin installs the packets needed to get a connection from
// Handshake through Play, which keep the same wire ID across every
// supported version of the external protocol.
func addHandshakeAndLogin(t *Table, v version.Protocol) {
	t.AddSB(v, 0x00, packetid.SBHandshake)

	t.AddSB(v, 0x00, packetid.SBStatusRequest)
	t.AddSB(v, 0x01, packetid.SBPing)
	t.AddCB(v, 0x00, packetid.CBStatusResponse)
	t.AddCB(v, 0x01, packetid.CBPong)

	t.AddSB(v, 0x00, packetid.SBLoginStart)
	t.AddSB(v, 0x01, packetid.SBEncryptionResponse)
	t.AddCB(v, 0x00, packetid.CBDisconnect)
	t.AddCB(v, 0x01, packetid.CBEncryptionRequest)
	t.AddCB(v, 0x02, packetid.CBLoginSuccess)
	t.AddCB(v, 0x03, packetid.CBSetCompression)
}

func addPlay1_8(t *Table) {
	v := version.V1_8
	t.AddCB(v, 0x00, packetid.CBKeepAlive)
	t.AddCB(v, 0x01, packetid.CBJoinGame)
	t.AddCB(v, 0x02, packetid.CBChatMessage)
	t.AddCB(v, 0x21, packetid.CBChunkData)
	t.AddCB(v, 0x23, packetid.CBBlockChange)
	t.AddCB(v, 0x22, packetid.CBMultiBlockChange)
	t.AddCB(v, 0x08, packetid.CBPlayerPositionAndLook)
	t.AddCB(v, 0x07, packetid.CBRespawn)
	t.AddCB(v, 0x40, packetid.CBDisconnect)
	// No CBSpawnLivingEntity here: 1.19.3 folded mob spawning into Spawn
	// Entity, so the canonical table has no slot for it and it could never
	// be reached from translateClientbound's backend-keyed lookup anyway.
	t.AddCB(v, 0x0E, packetid.CBSpawnEntity)
	t.AddCB(v, 0x12, packetid.CBEntityVelocity)
	t.AddCB(v, 0x18, packetid.CBEntityTeleport)
	t.AddCB(v, 0x13, packetid.CBDestroyEntities)
	t.AddCB(v, 0x2A, packetid.CBParticle)

	t.AddSB(v, 0x00, packetid.SBKeepAlive)
	t.AddSB(v, 0x01, packetid.SBChatMessage)
	t.AddSB(v, 0x04, packetid.SBPlayerPosition)
	t.AddSB(v, 0x06, packetid.SBPlayerPositionAndLook)
	t.AddSB(v, 0x08, packetid.SBPlayerBlockPlacement)
	t.AddSB(v, 0x07, packetid.SBPlayerDigging)
	t.AddSB(v, 0x15, packetid.SBClientSettings)
	t.AddSB(v, 0x17, packetid.SBPluginMessage)
}

func addPlay1_13_2(t *Table) {
	v := version.V1_13_2
	t.AddCB(v, 0x1F, packetid.CBKeepAlive)
	t.AddCB(v, 0x25, packetid.CBJoinGame)
	t.AddCB(v, 0x0E, packetid.CBChatMessage)
	t.AddCB(v, 0x22, packetid.CBChunkData)
	t.AddCB(v, 0x0B, packetid.CBBlockChange)
	t.AddCB(v, 0x0F, packetid.CBMultiBlockChange)
	t.AddCB(v, 0x32, packetid.CBPlayerPositionAndLook)
	t.AddCB(v, 0x38, packetid.CBRespawn)
	t.AddCB(v, 0x1B, packetid.CBDisconnect)
	t.AddCB(v, 0x00, packetid.CBSpawnEntity)
	t.AddCB(v, 0x41, packetid.CBEntityVelocity)
	t.AddCB(v, 0x50, packetid.CBEntityTeleport)
	t.AddCB(v, 0x37, packetid.CBDestroyEntities)
	t.AddCB(v, 0x22, packetid.CBParticle)

	t.AddSB(v, 0x0E, packetid.SBKeepAlive)
	t.AddSB(v, 0x02, packetid.SBChatMessage)
	t.AddSB(v, 0x11, packetid.SBPlayerPosition)
	t.AddSB(v, 0x12, packetid.SBPlayerPositionAndLook)
	t.AddSB(v, 0x2C, packetid.SBPlayerBlockPlacement)
	t.AddSB(v, 0x18, packetid.SBPlayerDigging)
	t.AddSB(v, 0x04, packetid.SBClientSettings)
	t.AddSB(v, 0x0A, packetid.SBPluginMessage)
}

func addPlay1_14_4(t *Table) {
	v := version.V1_14_4
	t.AddCB(v, 0x20, packetid.CBKeepAlive)
	t.AddCB(v, 0x25, packetid.CBJoinGame)
	t.AddCB(v, 0x0E, packetid.CBChatMessage)
	t.AddCB(v, 0x21, packetid.CBChunkData)
	t.AddCB(v, 0x0B, packetid.CBBlockChange)
	t.AddCB(v, 0x0F, packetid.CBMultiBlockChange)
	t.AddCB(v, 0x35, packetid.CBPlayerPositionAndLook)
	t.AddCB(v, 0x3B, packetid.CBRespawn)
	t.AddCB(v, 0x1B, packetid.CBDisconnect)
	t.AddCB(v, 0x00, packetid.CBSpawnEntity)
	t.AddCB(v, 0x46, packetid.CBEntityVelocity)
	t.AddCB(v, 0x56, packetid.CBEntityTeleport)
	t.AddCB(v, 0x37, packetid.CBDestroyEntities)
	t.AddCB(v, 0x22, packetid.CBParticle)

	t.AddSB(v, 0x0F, packetid.SBKeepAlive)
	t.AddSB(v, 0x03, packetid.SBChatMessage)
	t.AddSB(v, 0x12, packetid.SBPlayerPosition)
	t.AddSB(v, 0x13, packetid.SBPlayerPositionAndLook)
	t.AddSB(v, 0x2C, packetid.SBPlayerBlockPlacement)
	t.AddSB(v, 0x19, packetid.SBPlayerDigging)
	t.AddSB(v, 0x05, packetid.SBClientSettings)
	t.AddSB(v, 0x0B, packetid.SBPluginMessage)
}

func addPlayCanonical(t *Table) {
	v := version.Canonical
	t.AddCB(v, 0x1E, packetid.CBDisconnect)
	t.AddCB(v, 0x1F, packetid.CBKeepAlive)
	t.AddCB(v, 0x24, packetid.CBJoinGame)
	t.AddCB(v, 0x0F, packetid.CBChatMessage)
	t.AddCB(v, 0x20, packetid.CBChunkData)
	t.AddCB(v, 0x0A, packetid.CBBlockChange)
	t.AddCB(v, 0x3F, packetid.CBMultiBlockChange)
	t.AddCB(v, 0x38, packetid.CBPlayerPositionAndLook)
	t.AddCB(v, 0x3D, packetid.CBRespawn)
	t.AddCB(v, 0x00, packetid.CBSpawnEntity)
	t.AddCB(v, 0x4E, packetid.CBEntityVelocity)
	t.AddCB(v, 0x63, packetid.CBEntityTeleport)
	t.AddCB(v, 0x3A, packetid.CBDestroyEntities)
	t.AddCB(v, 0x23, packetid.CBParticle)

	t.AddSB(v, 0x11, packetid.SBKeepAlive)
	t.AddSB(v, 0x04, packetid.SBChatMessage)
	t.AddSB(v, 0x13, packetid.SBPlayerPosition)
	t.AddSB(v, 0x14, packetid.SBPlayerPositionAndLook)
	t.AddSB(v, 0x2E, packetid.SBPlayerBlockPlacement)
	t.AddSB(v, 0x1A, packetid.SBPlayerDigging)
	t.AddSB(v, 0x08, packetid.SBClientSettings)
	t.AddSB(v, 0x0C, packetid.SBPluginMessage)
}
