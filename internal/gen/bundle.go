// Package gen implements the reference-data generator: parsing the
// gzip-compressed, per-version reference-data bundle into the canonical
// Kind enumerations and the conversion vectors of internal/convert, plus
// (via cmd/mcdatagen) emitting Go source for the compiled-in tables.
// Grounded on bamboo/bb_data/src/dl.rs's Downloader (the bundle shape) and
// data-gen/src/protocol/mod.rs's store() (the per-version JSON keys).
package gen

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mcproxy/internal/convert"
	"mcproxy/internal/version"
)

// VersionBundle is one version's slice of the reference-data archive,
// keyed by its release name ("1.8", "1.19.3", ...) as returned by
// version.LabelFor.
type VersionBundle struct {
	Blocks    []NamedEntry `json:"blocks"`
	Items     []NamedEntry `json:"items"`
	Entities  []NamedEntry `json:"entities"`
	Particles []NamedEntry `json:"particles"`
	Protocol  ProtocolDesc `json:"protocol"`
}

// NamedEntry is one entry in a block/item/entity/particle list: a stable
// name (the join key across versions) and the numeric ID that version
// uses on the wire.
type NamedEntry struct {
	Name string `json:"name"`
	ID   int32  `json:"id"`
}

// ProtocolDesc is the subset of the minecraft-data-shaped protocol JSON
// the generator consumes: per-state packet ID-to-name maps. Grounded on
// gens/src/protocol/parse.rs's JsonProtocolVersion shape, trimmed to the
// fields this generator actually joins on (full field-kind schemas are
// out of scope for the hand-authored subset; see DESIGN.md).
type ProtocolDesc struct {
	Clientbound map[string]int32 `json:"clientbound"`
	Serverbound map[string]int32 `json:"serverbound"`
}

// Bundle is the full top-level archive: version string -> VersionBundle.
type Bundle map[string]VersionBundle

// LoadBundle reads and gzip-decompresses a reference-data archive from
// path.
func LoadBundle(path string) (Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gen: open %s: %w", path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gen: gzip %s: %w", path, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gen: read %s: %w", path, err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("gen: decode %s: %w", path, err)
	}
	return b, nil
}

// flattenRenames is the hand-written 1.12->1.13 "flattening" rename
// table: old name -> 1.13+ name. Most entries rename; a few (stone_slab,
// cobblestone, dirt) map a name to itself. Covers only the small set this proxy's
// representative packet coverage touches; a from-data build would load
// this from a larger, checked-in table instead (see DESIGN.md).
var flattenRenames = map[string]string{
	"grass":          "grass_block",
	"log":            "oak_log",
	"log2":           "acacia_log",
	"leaves":         "oak_leaves",
	"leaves2":        "acacia_leaves",
	"stone_slab":     "stone_slab",
	"cobblestone":    "cobblestone",
	"dirt":           "dirt",
	"double_plant":   "sunflower",
	"red_flower":     "poppy",
	"yellow_flower":  "dandelion",
	"stained_hardened_clay": "terracotta",
}

// particleRenames maps 1.12-era particle names to 1.13+ names. It lists
// only the entries below, some of which map a name to itself (bubble,
// splash, crit, smoke); a 1.12-era name not listed here is joined by its
// unchanged name.
var particleRenames = map[string]string{
	"explode":            "poof",
	"largeexplode":       "explosion",
	"hugeexplosion":      "explosion_emitter",
	"fireworksSpark":     "firework",
	"bubble":             "bubble",
	"splash":             "splash",
	"wake":               "fishing",
	"suspended":          "underwater",
	"depthsuspend":       "dolphin",
	"crit":               "crit",
	"magiccrit":          "enchanted_hit",
	"smoke":              "smoke",
	"largesmoke":         "large_smoke",
	"spell":              "effect",
	"instantspell":       "instant_effect",
	"mobspell":           "entity_effect",
	"mobspellambient":    "ambient_entity_effect",
	"witchmagic":         "witch",
	"dripwater":          "dripping_water",
	"driplava":           "dripping_lava",
	"angryvillager":      "angry_villager",
	"happyvillager":      "happy_villager",
}

// resolveName applies the flattening/particle rename tables for family f,
// falling back to the identity rename when old didn't change name.
func resolveName(f convert.Family, old string) string {
	var table map[string]string
	switch f {
	case convert.FamilyParticle:
		table = particleRenames
	case convert.FamilyBlock, convert.FamilyItem:
		table = flattenRenames
	}
	if renamed, ok := table[old]; ok {
		return renamed
	}
	return old
}

// BuildTables joins every non-canonical version's entries against the
// canonical (newest) version's name set by NamedEntry.Name (applying
// resolveName first), installing the resulting ToOld/ToNew vectors for
// family f into t.
func BuildTables(b Bundle, f convert.Family, t *convert.Tables) {
	canonVer, canonKey := canonicalVersion(b)
	if canonKey == "" {
		return
	}
	canonEntries := entriesFor(canonVer, f)

	canonIndexByName := make(map[string]int32, len(canonEntries))
	for _, e := range canonEntries {
		canonIndexByName[e.Name] = e.ID
	}

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
		t.Set(f, p, &convert.VersionTable{ToOld: toOld, ToNew: toNew})
	}
}

func entriesFor(vb VersionBundle, f convert.Family) []NamedEntry {
	return entriesForBundle(vb, f)
}

func entriesForBundle(vb VersionBundle, f convert.Family) []NamedEntry {
	switch f {
	case convert.FamilyBlock:
		return vb.Blocks
	case convert.FamilyItem:
		return vb.Items
	case convert.FamilyEntity:
		return vb.Entities
	case convert.FamilyParticle:
		return vb.Particles
	default:
		return nil
	}
}

// canonicalVersion returns the bundle entry for the newest version key
// present, ranked by each key's resolved Protocol ID (not string order,
// since "1.19.3" sorts before "1.8" lexically).
func canonicalVersion(b Bundle) (VersionBundle, string) {
	var newestKey string
	var newestProto version.Protocol = -1
	for key := range b {
		p, ok := protocolForKey(key)
		if !ok {
			continue
		}
		if p > newestProto {
			newestProto = p
			newestKey = key
		}
	}
	if newestKey == "" {
		return VersionBundle{}, ""
	}
	return b[newestKey], newestKey
}

// protocolForKey maps a bundle version-string key to the Protocol this
// proxy knows it as. Returns ok=false for keys outside version.Supported
// (e.g. a bundle covering versions newer than this proxy understands).
func protocolForKey(key string) (version.Protocol, bool) {
	for _, p := range version.Supported {
		if version.LabelFor(p) == key {
			return p, true
		}
	}
	return 0, false
}
