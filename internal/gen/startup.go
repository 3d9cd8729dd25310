package gen

import "mcproxy/internal/convert"

// LoadAtStartup loads a reference-data bundle from path and builds a full
// convert.Tables across all four families directly in memory, without
// emitting Go source. This is the interpreter-style alternative to the
// text/template codegen pipeline cmd/mcdatagen drives: a deployment
// without a pre-generated tables_gen.go can point cmd/mcproxy's -data
// flag at a bundle file instead.
func LoadAtStartup(path string) (*convert.Tables, error) {
	b, err := LoadBundle(path)
	if err != nil {
		return nil, err
	}
	t := convert.New()
	for _, f := range []convert.Family{
		convert.FamilyBlock,
		convert.FamilyItem,
		convert.FamilyEntity,
		convert.FamilyParticle,
	} {
		BuildTables(b, f, t)
	}
	return t, nil
}
