// Package chunk implements the chunk column codec: one Encoder per
// version.BlockEra, translating a canonical chunk column into the wire
// bytes for a ChunkData packet body. Grounded file-for-file on
// bamboo/bb_proxy/src/packet/{v1_8,v1_18}.rs (see v8.go/v18.go doc
// comments), since no v1_9.rs/v1_14.rs chunk encoder was present in the
// retrieval pack (sc_server/src/net/serialize/v1_9.rs grounds the 1.9
// paletted-section shape instead; see v9.go).
package chunk

import (
	"mcproxy/internal/convert"
	"mcproxy/internal/version"
)

// Pos identifies a chunk column by its integer chunk coordinates.
type Pos struct {
	X, Z int32
}

// Section is one 16x16x16 paletted region of a chunk column. Palette[i] is
// a canonical block-state ID; Data is a bit-packed array of per-voxel
// palette indices in YZX order, using the "entries never span a long"
// packing (1.16+ vanilla convention) as the canonical in-memory
// representation regardless of target wire era -- each Encoder re-packs
// into whatever layout its era's wire format requires.
type Section struct {
	BitsPerEntry int
	Palette      []int32
	Data         *BitStorage
	NonAirCount  int
}

// blockAt returns the canonical block-state ID at in-section position
// (x,y,z), indexed YZX (index = y*256 + z*16 + x).
func (s *Section) blockAt(x, y, z int) int32 {
	if s == nil {
		return 0
	}
	idx := y*256 + z*16 + x
	if s.BitsPerEntry == 0 {
		if len(s.Palette) == 0 {
			return 0
		}
		return s.Palette[0]
	}
	pi := s.Data.Get(idx)
	if int(pi) >= len(s.Palette) {
		return 0
	}
	return s.Palette[pi]
}

// Biomes is a per-section paletted biome container (4x4x4 = 64 entries),
// present only when Column.Full is set and the target era uses per-section
// biomes (1.18+); older eras store biomes at the column level (256 bytes,
// handled directly in v8.go/v14.go).
type Biomes struct {
	BitsPerEntry int
	Palette      []int32
	Data         *BitStorage
}

// Column is the canonical in-memory chunk column: a position, up to 16
// sections (nil = absent), optional per-block light,
// and a flag for whether biome data accompanies this send (a "full" load
// vs. an incremental section update).
type Column struct {
	Pos        Pos
	Sections   [16]*Section
	Biomes     [16]*Biomes // 1.18+ per-section; ignored by older eras
	ColumnBiomes []byte    // 256-byte (1.15+) or 1024-int (1.14) column biome ids, older eras
	SkyLight   [16][]byte // 2048-byte nibble arrays, nil section = absent
	BlockLight [16][]byte
	Full       bool
}

// bitMap reports which of the 16 sections are present, bit i set iff
// Sections[i] != nil.
func (c *Column) bitMap() uint16 {
	var m uint16
	for i, s := range c.Sections {
		if s != nil {
			m |= 1 << uint(i)
		}
	}
	return m
}

// Encoder serializes a canonical chunk column into the wire body for one
// version.BlockEra (the ChunkData packet's payload, not including the
// packet ID or outer frame). conv remaps canonical block-state IDs found
// in the column's palettes to the wire IDs for v; v identifies the exact
// protocol (distinct from the era) so the encoder can resolve conv.ToOld.
type Encoder interface {
	Encode(c *Column, conv *convert.Tables, v version.Protocol) []byte
}

// ForEra returns the Encoder appropriate for a block era.
func ForEra(era version.BlockEra) Encoder {
	switch era {
	case version.Era1_8:
		return v8Encoder{}
	case version.Era1_9, version.Era1_12, version.Era1_13:
		return v9Encoder{}
	case version.Era1_14, version.Era1_15, version.Era1_16, version.Era1_17:
		return v14Encoder{}
	case version.Era1_18, version.Era1_19:
		return v18Encoder{}
	case version.Era1_20:
		return v20Encoder{}
	default:
		return v18Encoder{}
	}
}
