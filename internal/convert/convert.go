// Package convert implements the per-version ID conversion tables: four
// independent families (block-state, item, entity, particle), each a pair
// of parallel lookup vectors per non-canonical version. Grounded on
// bamboo/bb_proxy's `conv::Conv` (block_to_old / block_to_new /
// item_to_old / item_to_new), generalized from "block and item only" to
// all four families, using plain maps and slices throughout rather than
// generics.
package convert

import "mcproxy/internal/version"

// Family names one of the four independently-numbered ID spaces.
type Family int

const (
	FamilyBlock Family = iota
	FamilyItem
	FamilyEntity
	FamilyParticle
)

// noneParticle is the canonical ID convention for "no mapping" in the
// particle family.
const noneParticle int32 = -1

// VersionTable holds the two parallel vectors for one (family, version)
// pair. ToOld is indexed by canonical ID and yields the wire ID for that
// version; ToNew is indexed by wire ID and yields the canonical ID.
type VersionTable struct {
	ToOld []int32
	ToNew []int32
}

// oldID looks up the wire-side ID for a canonical ID in O(1) via direct
// vector indexing, falling back to 0 (air/empty/stone by family
// convention) when out of range.
func (t *VersionTable) oldID(canonical int32) int32 {
	if t == nil || canonical < 0 || int(canonical) >= len(t.ToOld) {
		return 0
	}
	return t.ToOld[canonical]
}

// newID looks up the canonical ID for a wire-side ID, falling back to 0.
func (t *VersionTable) newID(old int32) int32 {
	if t == nil || old < 0 || int(old) >= len(t.ToNew) {
		return 0
	}
	return t.ToNew[old]
}

// Tables is the full set of conversion vectors across all four families and
// all non-canonical protocol versions, populated at startup either by
// Default's identity seed or by internal/gen loading a reference-data
// bundle at runtime. No code in this package calls the registerGenerated
// function that cmd/mcdatagen can emit.
type Tables struct {
	block    map[version.Protocol]*VersionTable
	item     map[version.Protocol]*VersionTable
	entity   map[version.Protocol]*VersionTable
	particle map[version.Protocol]*VersionTable
}

// New returns an empty table set ready for Set calls from a loader.
func New() *Tables {
	return &Tables{
		block:    map[version.Protocol]*VersionTable{},
		item:     map[version.Protocol]*VersionTable{},
		entity:   map[version.Protocol]*VersionTable{},
		particle: map[version.Protocol]*VersionTable{},
	}
}

func (t *Tables) familyMap(f Family) map[version.Protocol]*VersionTable {
	switch f {
	case FamilyBlock:
		return t.block
	case FamilyItem:
		return t.item
	case FamilyEntity:
		return t.entity
	case FamilyParticle:
		return t.particle
	default:
		return nil
	}
}

// Set installs the conversion vectors for one (family, version) pair. v
// should be an equivalent-version-resolved protocol (see version.Protocol.
// Equivalent) since equivalent versions share one table.
func (t *Tables) Set(f Family, v version.Protocol, vt *VersionTable) {
	m := t.familyMap(f)
	if m == nil {
		return
	}
	m[v] = vt
}

// ToOld converts a canonical ID to the wire ID for v in family f. v ==
// version.Canonical is the identity mapping (no table needed).
func (t *Tables) ToOld(f Family, v version.Protocol, canonical int32) int32 {
	if v.Equivalent() == version.Canonical {
		return canonical
	}
	return t.familyMap(f)[v.Equivalent()].oldID(canonical)
}

// ToNew converts a wire ID from version v in family f to the canonical ID.
func (t *Tables) ToNew(f Family, v version.Protocol, old int32) int32 {
	if v.Equivalent() == version.Canonical {
		return old
	}
	return t.familyMap(f)[v.Equivalent()].newID(old)
}

// NoMapping reports the "no mapping" sentinel for a family, used by the
// particle translator to represent None; the other three families use 0
// (air/empty/zero-entity) as their sentinel directly.
func NoMapping(f Family) int32 {
	if f == FamilyParticle {
		return noneParticle
	}
	return 0
}
