package session

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// deterministicUUID derives a player UUID from a username using Mojang's
// offline-mode convention (MD5 of "OfflinePlayer:<name>" as a version-3
// name-based UUID), held in github.com/google/uuid's UUID type.
func deterministicUUID(username string) [16]byte {
	u := uuid.UUID(md5.Sum([]byte("OfflinePlayer:" + username)))
	u[6] = (u[6] & 0x0f) | 0x30 // version 3
	u[8] = (u[8] & 0x3f) | 0x80 // RFC 4122 variant
	var out [16]byte
	copy(out[:], u[:])
	return out
}
