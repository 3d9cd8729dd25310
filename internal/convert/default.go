package convert

import "mcproxy/internal/version"

// identityRange is large enough to cover every vanilla ID in the block,
// entity, and particle families for the representative version set this
// proxy ships with by default.
const identityRange = 1 << 15

func identityTable() *VersionTable {
	vec := make([]int32, identityRange)
	for i := range vec {
		vec[i] = int32(i)
	}
	// A second, independent copy: ToOld and ToNew must not alias, since
	// callers are free to mutate neither but a shared backing array would
	// still be a correctness trap if that ever changed.
	vec2 := make([]int32, identityRange)
	copy(vec2, vec)
	return &VersionTable{ToOld: vec, ToNew: vec2}
}

// Default returns a minimal seeded Tables: every registered non-canonical
// version gets an identity mapping (wire ID == canonical ID) for the block,
// entity, and particle families; the item family gets no table, so item IDs
// still convert to 0. It exists so the proxy does something faithful out of the box --
// translating block/entity/particle IDs as a no-op rather than collapsing
// everything to air/ID-0 -- without requiring a `-data` bundle. It is
// deliberately not a substitute for real per-version tables: IDs that
// actually moved between a registered version and the canonical version
// (the whole reason internal/gen and reference-data bundles exist) will
// still translate incorrectly under Default, just not silently to air.
// Mirrors registry.Default's hand-seeded fallback for the same versions.
func Default() *Tables {
	t := New()
	for _, v := range []version.Protocol{version.V1_8, version.V1_13_2, version.V1_14_4} {
		t.Set(FamilyBlock, v, identityTable())
		t.Set(FamilyEntity, v, identityTable())
		t.Set(FamilyParticle, v, identityTable())
	}
	return t
}
