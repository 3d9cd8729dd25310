// Package registry implements the version registry: a static table, keyed
// by protocol version, of wire-ID <-> canonical-kind mappings for both
// directions, plus the handshake protocol-ID->version lookup and
// equivalent-version aliasing.
//
// Grounded on bamboo/bb_proxy/src/packet/mod.rs's per-version
// `cb()`/`sb()` ID-to-enum match arms, and on protocol.go's `PacketID`
// byte constants, generalized from one fixed version to one table per
// supported version.
package registry

import (
	"fmt"

	"mcproxy/internal/packetid"
	"mcproxy/internal/version"
)

// ErrUnknownPacket is returned when a wire ID has no entry in a version's
// table. Callers in Play log-and-drop on this; callers in Handshake/Login
// disconnect.
var ErrUnknownPacket = fmt.Errorf("registry: unknown packet id for this version/state/direction")

// versionTable holds both directions' ID<->Kind tables for one protocol
// version.
type versionTable struct {
	cbByID   map[int32]packetid.CB
	cbByKind map[packetid.CB]int32
	sbByID   map[int32]packetid.SB
	sbByKind map[packetid.SB]int32
}

func newVersionTable() *versionTable {
	return &versionTable{
		cbByID:   map[int32]packetid.CB{},
		cbByKind: map[packetid.CB]int32{},
		sbByID:   map[int32]packetid.SB{},
		sbByKind: map[packetid.SB]int32{},
	}
}

// Table is the full registry: one versionTable per distinct (non-aliased)
// protocol version.
type Table struct {
	versions map[version.Protocol]*versionTable
}

// New returns an empty registry. Populate it via AddCB/AddSB, typically
// from internal/gen-produced tables.
func New() *Table {
	return &Table{versions: map[version.Protocol]*versionTable{}}
}

func (t *Table) table(v version.Protocol) *versionTable {
	v = v.Equivalent()
	vt, ok := t.versions[v]
	if !ok {
		vt = newVersionTable()
		t.versions[v] = vt
	}
	return vt
}

// AddCB registers a clientbound wire ID <-> canonical kind mapping for v.
func (t *Table) AddCB(v version.Protocol, id int32, kind packetid.CB) {
	vt := t.table(v)
	vt.cbByID[id] = kind
	vt.cbByKind[kind] = id
}

// AddSB registers a serverbound wire ID <-> canonical kind mapping for v.
func (t *Table) AddSB(v version.Protocol, id int32, kind packetid.SB) {
	vt := t.table(v)
	vt.sbByID[id] = kind
	vt.sbByKind[kind] = id
}

// CBKind resolves a clientbound wire ID to its canonical kind for v.
func (t *Table) CBKind(v version.Protocol, id int32) (packetid.CB, error) {
	vt, ok := t.versions[v.Equivalent()]
	if !ok {
		return packetid.CBUnknown, ErrUnknownPacket
	}
	k, ok := vt.cbByID[id]
	if !ok {
		return packetid.CBUnknown, ErrUnknownPacket
	}
	return k, nil
}

// CBId resolves a canonical clientbound kind back to the wire ID for v.
func (t *Table) CBId(v version.Protocol, kind packetid.CB) (int32, error) {
	vt, ok := t.versions[v.Equivalent()]
	if !ok {
		return 0, ErrUnknownPacket
	}
	id, ok := vt.cbByKind[kind]
	if !ok {
		return 0, ErrUnknownPacket
	}
	return id, nil
}

// SBKind resolves a serverbound wire ID to its canonical kind for v.
func (t *Table) SBKind(v version.Protocol, id int32) (packetid.SB, error) {
	vt, ok := t.versions[v.Equivalent()]
	if !ok {
		return packetid.SBUnknown, ErrUnknownPacket
	}
	k, ok := vt.sbByID[id]
	if !ok {
		return packetid.SBUnknown, ErrUnknownPacket
	}
	return k, nil
}

// SBId resolves a canonical serverbound kind back to the wire ID for v.
func (t *Table) SBId(v version.Protocol, kind packetid.SB) (int32, error) {
	vt, ok := t.versions[v.Equivalent()]
	if !ok {
		return 0, ErrUnknownPacket
	}
	id, ok := vt.sbByKind[kind]
	if !ok {
		return 0, ErrUnknownPacket
	}
	return id, nil
}

// Known reports whether a version has any registered table, i.e. whether
// it is one of the versions the proxy actually supports.
func (t *Table) Known(v version.Protocol) bool {
	_, ok := t.versions[v.Equivalent()]
	return ok
}

// Merge layers every entry from other into t, overwriting any existing
// entry for the same (version, direction, id/kind). Used to combine the
// compiled-in defaults with a data-driven load from internal/gen without
// losing the handshake/login/status entries Default seeds that a bundle's
// protocol description doesn't cover.
func (t *Table) Merge(other *Table) {
	for v, ovt := range other.versions {
		for id, kind := range ovt.cbByID {
			t.AddCB(v, id, kind)
		}
		for id, kind := range ovt.sbByID {
			t.AddSB(v, id, kind)
		}
	}
}
