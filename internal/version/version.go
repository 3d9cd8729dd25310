// Package version defines the set of Minecraft wire protocol versions this
// proxy understands, and the coarser "block era" each one uses for its
// block-state/chunk encoding.
//
// Grounded on bamboo/common/src/version.rs (ProtocolVersion/BlockVersion),
// adapted to a flat Go named-int type instead of a Rust enum.
package version

import "fmt"

// Protocol is a Minecraft handshake protocol ID, e.g. 47 for 1.8.
type Protocol int32

// Supported protocol versions. Named after the most recognizable release
// in each protocol-ID bucket.
const (
	Invalid Protocol = 0

	V1_8 Protocol = 47

	V1_9   Protocol = 107
	V1_9_2 Protocol = 109
	V1_9_4 Protocol = 110

	V1_10 Protocol = 210

	V1_11   Protocol = 315
	V1_11_2 Protocol = 316

	V1_12   Protocol = 335
	V1_12_1 Protocol = 338
	V1_12_2 Protocol = 340

	V1_13   Protocol = 393
	V1_13_1 Protocol = 401
	V1_13_2 Protocol = 404

	V1_14   Protocol = 477
	V1_14_1 Protocol = 480
	V1_14_2 Protocol = 485
	V1_14_3 Protocol = 490
	V1_14_4 Protocol = 498

	V1_15   Protocol = 573
	V1_15_1 Protocol = 575
	V1_15_2 Protocol = 578

	V1_16   Protocol = 735
	V1_16_1 Protocol = 736
	V1_16_2 Protocol = 751
	V1_16_3 Protocol = 753
	V1_16_5 Protocol = 754

	V1_17   Protocol = 756
	V1_18   Protocol = 757
	V1_18_2 Protocol = 758

	V1_19   Protocol = 759
	V1_19_3 Protocol = 761
)

// BlockEra coarsens a Protocol down to the era of block-state/chunk encoding
// it uses. Several protocol versions share a block era (e.g. 1.9-1.12).
type BlockEra int

const (
	EraInvalid BlockEra = iota
	Era1_8
	Era1_9
	Era1_12
	Era1_13
	Era1_14
	Era1_15
	Era1_16
	Era1_17
	Era1_18
	Era1_19
	Era1_20
)

func (e BlockEra) String() string {
	switch e {
	case Era1_8:
		return "1.8"
	case Era1_9:
		return "1.9"
	case Era1_12:
		return "1.12"
	case Era1_13:
		return "1.13"
	case Era1_14:
		return "1.14"
	case Era1_15:
		return "1.15"
	case Era1_16:
		return "1.16"
	case Era1_17:
		return "1.17"
	case Era1_18:
		return "1.18"
	case Era1_19:
		return "1.19"
	case Era1_20:
		return "1.20"
	default:
		return "invalid"
	}
}

// protocolToBlock maps every supported protocol ID to its block era.
// A protocol missing here reports EraInvalid from Block and false from
// Known.
var protocolToBlock = map[Protocol]BlockEra{
	V1_8:    Era1_8,
	V1_9:    Era1_9,
	V1_9_2:  Era1_9,
	V1_9_4:  Era1_9,
	V1_10:   Era1_9,
	V1_11:   Era1_9,
	V1_11_2: Era1_9,
	V1_12:   Era1_12,
	V1_12_1: Era1_12,
	V1_12_2: Era1_12,
	V1_13:   Era1_13,
	V1_13_1: Era1_13,
	V1_13_2: Era1_13,
	V1_14:   Era1_14,
	V1_14_1: Era1_14,
	V1_14_2: Era1_14,
	V1_14_3: Era1_14,
	V1_14_4: Era1_14,
	V1_15:   Era1_15,
	V1_15_1: Era1_15,
	V1_15_2: Era1_15,
	V1_16:   Era1_16,
	V1_16_1: Era1_16,
	V1_16_2: Era1_16,
	V1_16_3: Era1_16,
	V1_16_5: Era1_16,
	V1_17:   Era1_17,
	V1_18:   Era1_18,
	V1_18_2: Era1_18,
	V1_19:   Era1_19,
	V1_19_3: Era1_19,
}

// equivalentProtocol maps a protocol version whose wire layout is byte-for-
// byte identical to another (newer) version's layout, onto that version.
// Lookups in the registry follow this pointer once: 1.16, 1.16.1, 1.16.3,
// and 1.16.5 all share 1.16.2's layout.
var equivalentProtocol = map[Protocol]Protocol{
	V1_16:   V1_16_2,
	V1_16_1: V1_16_2,
	V1_16_3: V1_16_2,
	V1_16_5: V1_16_2,
	V1_9_2:  V1_9_4,
	V1_11:   V1_11_2,
	V1_12:   V1_12_2,
	V1_12_1: V1_12_2,
	V1_13:   V1_13_2,
	V1_13_1: V1_13_2,
	V1_14:   V1_14_4,
	V1_14_1: V1_14_4,
	V1_14_2: V1_14_4,
	V1_14_3: V1_14_4,
	V1_15:   V1_15_2,
	V1_15_1: V1_15_2,
	V1_18:   V1_18_2,
}

// Canonical is the newest protocol version this proxy speaks to the
// backend. All internal IDs are expressed in this version's numbering.
const Canonical = V1_19_3

// Block returns the block-state/chunk encoding era used by this protocol
// version.
func (p Protocol) Block() BlockEra {
	if e, ok := protocolToBlock[p]; ok {
		return e
	}
	return EraInvalid
}

// Equivalent follows the equivalent-version pointer (if any) exactly once,
// returning the version whose registry entry should be used for p.
func (p Protocol) Equivalent() Protocol {
	if e, ok := equivalentProtocol[p]; ok {
		return e
	}
	return p
}

// Known reports whether p is one of the protocol versions this proxy
// understands.
func (p Protocol) Known() bool {
	_, ok := protocolToBlock[p]
	return ok
}

func (p Protocol) String() string {
	if !p.Known() {
		return fmt.Sprintf("protocol(%d)", int32(p))
	}
	return fmt.Sprintf("protocol(%d, %s)", int32(p), p.Block())
}

// Supported is the set of protocol IDs this proxy handles, in ascending
// order. Used by the version registry and the data generator to know which
// versions must have a full packet schema.
var Supported = []Protocol{
	47, 107, 109, 110, 210, 315, 316, 335, 338, 340, 393, 401, 404, 477, 480,
	485, 490, 498, 573, 575, 578, 735, 736, 751, 753, 754, 756, 758, 761,
}

// labels gives every Supported protocol its release-name label, matching
// the version-string keys a reference-data bundle is keyed by (e.g.
// "1.19.3"). Used only by internal/gen to join a bundle's per-version
// entries against the Protocol this proxy knows it as.
var labels = map[Protocol]string{
	V1_8:    "1.8",
	V1_9:    "1.9",
	V1_9_2:  "1.9.2",
	V1_9_4:  "1.9.4",
	V1_10:   "1.10",
	V1_11:   "1.11",
	V1_11_2: "1.11.2",
	V1_12:   "1.12",
	V1_12_1: "1.12.1",
	V1_12_2: "1.12.2",
	V1_13:   "1.13",
	V1_13_1: "1.13.1",
	V1_13_2: "1.13.2",
	V1_14:   "1.14",
	V1_14_1: "1.14.1",
	V1_14_2: "1.14.2",
	V1_14_3: "1.14.3",
	V1_14_4: "1.14.4",
	V1_15:   "1.15",
	V1_15_1: "1.15.1",
	V1_15_2: "1.15.2",
	V1_16:   "1.16",
	V1_16_1: "1.16.1",
	V1_16_2: "1.16.2",
	V1_16_3: "1.16.3",
	V1_16_5: "1.16.5",
	V1_17:   "1.17",
	V1_18:   "1.18",
	V1_18_2: "1.18.2",
	V1_19:   "1.19",
	V1_19_3: "1.19.3",
}

// LabelFor returns p's release-name label (e.g. "1.19.3"), or "" if p has
// no entry in labels.
func LabelFor(p Protocol) string {
	return labels[p]
}
