package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"mcproxy/internal/convert"
)

// tablesTemplate emits internal/convert/tables_gen.go: a compiled-in
// registerGenerated function populating a Tables with every family's
// per-version vectors. Nothing in internal/convert or cmd/mcproxy calls
// registerGenerated, so the generated vectors are not used at runtime;
// the runtime paths are convert.Default and the -data flag. Grounded on
// bamboo/data-gen/src/protocol/mod.rs's generate_ids, which hand-rolls
// Rust source text the same way; re-expressed as a Go text/template since
// Go has no derive/macro system to drive this from struct tags instead.
var tablesTemplate = template.Must(template.New("tables_gen").Parse(`// Code generated by cmd/mcdatagen. DO NOT EDIT.

package convert

import "mcproxy/internal/version"

// registerGenerated installs every compiled-in per-version conversion
// vector built from the reference-data bundle at generation time.
func registerGenerated(t *Tables) {
{{- range .Families }}
	// {{ .Name }}
{{- range .Versions }}
	t.Set({{ .Family }}, version.Protocol({{ .Proto }}), &VersionTable{
		ToOld: []int32{ {{ .ToOld }} },
		ToNew: []int32{ {{ .ToNew }} },
	})
{{- end }}
{{- end }}
}
`))

type familyVersions struct {
	Name     string
	Versions []versionVectors
}

type versionVectors struct {
	Family string
	Proto  int32
	ToOld  string
	ToNew  string
}

var familyNames = map[convert.Family]string{
	convert.FamilyBlock:    "FamilyBlock",
	convert.FamilyItem:     "FamilyItem",
	convert.FamilyEntity:   "FamilyEntity",
	convert.FamilyParticle: "FamilyParticle",
}

// GenerateTablesGo renders internal/convert/tables_gen.go's source from a
// bundle, gofmt'd.
func GenerateTablesGo(b Bundle) ([]byte, error) {
	families := make([]familyVersions, 0, 4)
	for _, f := range []convert.Family{
		convert.FamilyBlock, convert.FamilyItem, convert.FamilyEntity, convert.FamilyParticle,
	} {
		vecs, err := perVersionVectors(b, f)
		if err != nil {
			return nil, err
		}
		families = append(families, familyVersions{Name: familyNames[f], Versions: vecs})
	}

	var buf bytes.Buffer
	if err := tablesTemplate.Execute(&buf, struct{ Families []familyVersions }{families}); err != nil {
		return nil, fmt.Errorf("gen: render tables_gen.go: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: gofmt tables_gen.go: %w", err)
	}
	return out, nil
}

func perVersionVectors(b Bundle, f convert.Family) ([]versionVectors, error) {
	canonVer, canonKey := canonicalVersion(b)
	if canonKey == "" {
		return nil, nil
	}
	canonEntries := entriesFor(canonVer, f)
	canonIndexByName := make(map[string]int32, len(canonEntries))
	for _, e := range canonEntries {
		canonIndexByName[e.Name] = e.ID
	}

	var out []versionVectors
	for key, vb := range b {
		if key == canonKey {
			continue
		}
		p, ok := protocolForKey(key)
		if !ok {
			continue
		}
		entries := entriesForBundle(vb, f)

		maxCanon := int32(0)
		for _, id := range canonIndexByName {
			if id > maxCanon {
				maxCanon = id
			}
		}
		toOld := make([]int32, maxCanon+1)
		maxOld := int32(0)
		for _, e := range entries {
			if e.ID > maxOld {
				maxOld = e.ID
			}
		}
		toNew := make([]int32, maxOld+1)

		for _, e := range entries {
			canonName := resolveName(f, e.Name)
			if canonID, ok := canonIndexByName[canonName]; ok {
				if int(canonID) < len(toOld) {
					toOld[canonID] = e.ID
				}
				if int(e.ID) < len(toNew) && toNew[e.ID] == 0 {
					toNew[e.ID] = canonID
				}
			}
		}

		out = append(out, versionVectors{
			Family: familyNames[f],
			Proto:  int32(p),
			ToOld:  joinInt32s(toOld),
			ToNew:  joinInt32s(toNew),
		})
	}
	return out, nil
}

func joinInt32s(vs []int32) string {
	var buf bytes.Buffer
	for i, v := range vs {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%d", v)
	}
	return buf.String()
}
