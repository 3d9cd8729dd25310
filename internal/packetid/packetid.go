// Package packetid defines the canonical packet-kind enumerations: the
// union of clientbound and serverbound packet names across every supported
// protocol version. In a from-JSON build these would be emitted by
// internal/gen from the reference-data bundle; the set below is the
// hand-grounded subset needed to exercise handshake,
// login, and a representative slice of play traffic end to end, named
// after bamboo/bb_common/src/net/{cb,sb}.rs's Packet enum variants.
package packetid

// CB is a clientbound (server-to-client) canonical packet kind.
type CB int

const (
	CBUnknown CB = iota
	CBDisconnect
	CBEncryptionRequest
	CBLoginSuccess
	CBSetCompression
	CBJoinGame
	CBChatMessage
	CBKeepAlive
	CBChunkData
	CBUnloadChunk
	CBBlockChange
	CBMultiBlockChange
	CBSpawnEntity
	CBSpawnLivingEntity
	CBEntityVelocity
	CBEntityTeleport
	CBEntityPosition
	CBPlayerPositionAndLook
	CBRespawn
	CBWindowItems
	CBSetSlot
	CBParticle
	CBDestroyEntities
	CBStatusResponse
	CBPong
)

// SB is a serverbound (client-to-server) canonical packet kind.
type SB int

const (
	SBUnknown SB = iota
	SBHandshake
	SBLoginStart
	SBEncryptionResponse
	SBKeepAlive
	SBChatMessage
	SBPlayerPosition
	SBPlayerPositionAndLook
	SBPlayerBlockPlacement
	SBPlayerDigging
	SBClientSettings
	SBPluginMessage
	SBStatusRequest
	SBPing
)

func (k CB) String() string { return cbNames[k] }
func (k SB) String() string { return sbNames[k] }

var cbByName map[string]CB
var sbByName map[string]SB

func init() {
	cbByName = make(map[string]CB, len(cbNames))
	for k, name := range cbNames {
		cbByName[name] = k
	}
	sbByName = make(map[string]SB, len(sbNames))
	for k, name := range sbNames {
		sbByName[name] = k
	}
}

// CBByName looks up the canonical clientbound kind with this exact name,
// used by internal/gen to join a bundle's protocol packet names against
// the compiled-in kind set.
func CBByName(name string) (CB, bool) {
	k, ok := cbByName[name]
	return k, ok
}

// SBByName mirrors CBByName for serverbound kinds.
func SBByName(name string) (SB, bool) {
	k, ok := sbByName[name]
	return k, ok
}

var cbNames = map[CB]string{
	CBUnknown:               "Unknown",
	CBDisconnect:            "Disconnect",
	CBEncryptionRequest:     "EncryptionRequest",
	CBLoginSuccess:          "LoginSuccess",
	CBSetCompression:        "SetCompression",
	CBJoinGame:              "JoinGame",
	CBChatMessage:           "ChatMessage",
	CBKeepAlive:             "KeepAlive",
	CBChunkData:             "ChunkData",
	CBUnloadChunk:           "UnloadChunk",
	CBBlockChange:           "BlockChange",
	CBMultiBlockChange:      "MultiBlockChange",
	CBSpawnEntity:           "SpawnEntity",
	CBSpawnLivingEntity:     "SpawnLivingEntity",
	CBEntityVelocity:        "EntityVelocity",
	CBEntityTeleport:        "EntityTeleport",
	CBEntityPosition:        "EntityPosition",
	CBPlayerPositionAndLook: "PlayerPositionAndLook",
	CBRespawn:               "Respawn",
	CBWindowItems:           "WindowItems",
	CBSetSlot:               "SetSlot",
	CBParticle:              "Particle",
	CBDestroyEntities:       "DestroyEntities",
	CBStatusResponse:        "StatusResponse",
	CBPong:                  "Pong",
}

var sbNames = map[SB]string{
	SBUnknown:               "Unknown",
	SBHandshake:             "Handshake",
	SBLoginStart:            "LoginStart",
	SBEncryptionResponse:    "EncryptionResponse",
	SBKeepAlive:             "KeepAlive",
	SBChatMessage:           "ChatMessage",
	SBPlayerPosition:        "PlayerPosition",
	SBPlayerPositionAndLook: "PlayerPositionAndLook",
	SBPlayerBlockPlacement:  "PlayerBlockPlacement",
	SBPlayerDigging:         "PlayerDigging",
	SBClientSettings:        "ClientSettings",
	SBPluginMessage:         "PluginMessage",
	SBStatusRequest:         "StatusRequest",
	SBPing:                  "Ping",
}
