package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcproxy/internal/version"
)

func TestCanonicalVersionIsIdentity(t *testing.T) {
	tbl := New()
	assert.Equal(t, int32(123), tbl.ToOld(FamilyBlock, version.Canonical, 123))
	assert.Equal(t, int32(123), tbl.ToNew(FamilyBlock, version.Canonical, 123))
}

func TestToOldToNewRoundTrip(t *testing.T) {
	tbl := New()
	tbl.Set(FamilyBlock, version.V1_8, &VersionTable{
		ToOld: []int32{0, 10, 20, 30},
		ToNew: []int32{0, 1, 2, 3},
	})

	assert.Equal(t, int32(20), tbl.ToOld(FamilyBlock, version.V1_8, 2))
	assert.Equal(t, int32(2), tbl.ToNew(FamilyBlock, version.V1_8, 20))
}

func TestOutOfRangeFallsBackToZero(t *testing.T) {
	tbl := New()
	tbl.Set(FamilyBlock, version.V1_8, &VersionTable{
		ToOld: []int32{0, 10},
		ToNew: []int32{0, 1},
	})

	assert.Equal(t, int32(0), tbl.ToOld(FamilyBlock, version.V1_8, 999))
	assert.Equal(t, int32(0), tbl.ToNew(FamilyBlock, version.V1_8, 999))
}

func TestMissingVersionTableFallsBackToZero(t *testing.T) {
	tbl := New()
	assert.Equal(t, int32(0), tbl.ToOld(FamilyItem, version.V1_12_2, 5))
}

func TestEquivalentVersionSharesTable(t *testing.T) {
	tbl := New()
	tbl.Set(FamilyBlock, version.V1_16_2, &VersionTable{
		ToOld: []int32{0, 7},
		ToNew: []int32{0, 1},
	})
	// V1_16_5 is equivalent to V1_16_2 per version.equivalentProtocol.
	assert.Equal(t, int32(7), tbl.ToOld(FamilyBlock, version.V1_16_5, 1))
}

func TestNoMappingSentinel(t *testing.T) {
	assert.Equal(t, int32(-1), NoMapping(FamilyParticle))
	assert.Equal(t, int32(0), NoMapping(FamilyBlock))
	assert.Equal(t, int32(0), NoMapping(FamilyItem))
	assert.Equal(t, int32(0), NoMapping(FamilyEntity))
}
