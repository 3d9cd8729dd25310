package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"text/template"
)

// GenerateIDsGo renders internal/packetid/ids_gen.go's source: the union of
// every packet name seen across all versions' protocol descriptions in b,
// including names the hand-grounded CB/SB set in packetid.go already covers.
// Grounded on data-gen/src/protocol/mod.rs's generate_ids, which derives
// its enum variant list the same way (union of names across the newest
// protocol.json's packet tables).
func GenerateIDsGo(b Bundle) ([]byte, error) {
	cbNames := map[string]bool{}
	sbNames := map[string]bool{}
	for _, vb := range b {
		for name := range vb.Protocol.Clientbound {
			cbNames[name] = true
		}
		for name := range vb.Protocol.Serverbound {
			sbNames[name] = true
		}
	}

	cbList := sortedKeys(cbNames)
	sbList := sortedKeys(sbNames)

	var buf bytes.Buffer
	if err := idsTemplate.Execute(&buf, struct {
		CB []string
		SB []string
	}{cbList, sbList}); err != nil {
		return nil, fmt.Errorf("gen: render ids_gen.go: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: gofmt ids_gen.go: %w", err)
	}
	return out, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// idsTemplate emits a supplementary name table: every packet name the
// bundle contains, whether or not packetid.go's hand-grounded CB/SB
// constants already cover it. A from-data build would use this list (not
// the hand-grounded one) to generate packetid's actual CB/SB const blocks;
// since cmd/mcdatagen here targets the existing hand-grounded enumeration,
// it emits this as an informational completeness report instead of
// overwriting packetid.go's const blocks (see DESIGN.md's Open Question
// decision on why the const blocks stay hand-authored).
var idsTemplate = template.Must(template.New("ids_gen").Parse(`// Code generated by cmd/mcdatagen. DO NOT EDIT.

package packetid

// BundleClientboundNames lists every clientbound packet name observed in
// the reference-data bundle used to generate this file, for comparison
// against the hand-grounded CB enumeration in packetid.go.
var BundleClientboundNames = []string{
{{- range .CB }}
	"{{ . }}",
{{- end }}
}

// BundleServerboundNames mirrors BundleClientboundNames for serverbound
// packets.
var BundleServerboundNames = []string{
{{- range .SB }}
	"{{ . }}",
{{- end }}
}
`))
