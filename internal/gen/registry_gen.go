package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"mcproxy/internal/packetid"
	"mcproxy/internal/registry"
	"mcproxy/internal/version"
)

// registryEntry is one (version, direction, wire id, kind name) row, ready
// for the registry_gen.go template.
type registryEntry struct {
	Proto int32
	Dir   string // "CB" or "SB"
	ID    int32
	Kind  string
}

// BuildRegistryEntries walks every version in b's protocol descriptions,
// joining each named packet against packetid's compiled-in kind set
// (packetid.CBByName / SBByName). Names with no matching compiled-in kind
// are skipped, since packetid's hand-grounded subset only names a
// representative slice of packets (see packetid's doc comment).
func BuildRegistryEntries(b Bundle) []registryEntry {
	var out []registryEntry
	for key, vb := range b {
		p, ok := protocolForKey(key)
		if !ok {
			continue
		}
		for name, id := range vb.Protocol.Clientbound {
			if kind, ok := packetid.CBByName(name); ok {
				out = append(out, registryEntry{Proto: int32(p), Dir: "CB", ID: id, Kind: kind.String()})
			}
		}
		for name, id := range vb.Protocol.Serverbound {
			if kind, ok := packetid.SBByName(name); ok {
				out = append(out, registryEntry{Proto: int32(p), Dir: "SB", ID: id, Kind: kind.String()})
			}
		}
	}
	return out
}

var registryTemplate = template.Must(template.New("registry_gen").Parse(`// Code generated by cmd/mcdatagen. DO NOT EDIT.

package registry

import (
	"mcproxy/internal/packetid"
	"mcproxy/internal/version"
)

// registerGenerated installs every compiled-in per-version packet ID
// mapping built from the reference-data bundle at generation time.
func registerGenerated(t *Table) {
{{- range . }}
	t.Add{{ .Dir }}(version.Protocol({{ .Proto }}), {{ .ID }}, packetid.{{ .Dir }}{{ .Kind }})
{{- end }}
}
`))

// GenerateRegistryGo renders internal/registry/registry_gen.go's source
// from a bundle, gofmt'd.
func GenerateRegistryGo(b Bundle) ([]byte, error) {
	entries := BuildRegistryEntries(b)
	var buf bytes.Buffer
	if err := registryTemplate.Execute(&buf, entries); err != nil {
		return nil, fmt.Errorf("gen: render registry_gen.go: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: gofmt registry_gen.go: %w", err)
	}
	return out, nil
}

// LoadRegistryAtStartup builds a *registry.Table directly from a bundle
// without emitting Go source, the interpreter-style counterpart to
// GenerateRegistryGo. Entries for packet names outside packetid's
// compiled-in kind set are skipped (see BuildRegistryEntries). Handshake
// and login/status packets, whose IDs never move across versions, are
// layered in separately by registry.Default; this only contributes the
// data-driven Play subset.
func LoadRegistryAtStartup(path string) (*registry.Table, error) {
	b, err := LoadBundle(path)
	if err != nil {
		return nil, err
	}
	t := registry.New()
	for _, e := range BuildRegistryEntries(b) {
		switch e.Dir {
		case "CB":
			if kind, ok := packetid.CBByName(e.Kind); ok {
				t.AddCB(version.Protocol(e.Proto), e.ID, kind)
			}
		case "SB":
			if kind, ok := packetid.SBByName(e.Kind); ok {
				t.AddSB(version.Protocol(e.Proto), e.ID, kind)
			}
		}
	}
	return t, nil
}
