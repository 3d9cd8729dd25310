package session

import (
	"log"
	"time"

	"mcproxy/internal/chunk"
	"mcproxy/internal/convert"
	"mcproxy/internal/frame"
	"mcproxy/internal/metrics"
	"mcproxy/internal/packetid"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// translateServerbound maps a client Play packet's ID to the canonical
// (backend) version and re-encodes the block positions of PlayerDigging and
// PlayerBlockPlacement; every other payload is forwarded unchanged, and no
// IDs inside serverbound payloads are mapped through internal/convert.
// This is the single point at which per-version dispatch happens.
func (c *Conn) translateServerbound(pkt *frame.Packet) error {
	kind, err := c.shared.Registry.SBKind(c.ver, pkt.ID)
	if err != nil {
		metrics.PacketsDroppedTotal.WithLabelValues("serverbound", "unknown_id").Inc()
		log.Printf("session: unknown serverbound packet id %#x for version %d, dropping", pkt.ID, c.ver)
		return nil
	}

	r := pkt.Reader()
	w := protocol.NewWriteBuffer(c.backend.Version())

	switch kind {
	case packetid.SBPlayerBlockPlacement:
		pos, err := r.ReadPos()
		if err != nil {
			return nil
		}
		rest, _ := r.ReadBytes(r.Remaining())
		w.WritePos(pos)
		w.WriteBytes(rest)
	case packetid.SBPlayerDigging:
		// Status precedes the packed Position, which ReadPos/WritePos
		// re-encode across the pre-1.14 / 1.14+ layout split.
		status, err := r.ReadI8()
		if err != nil {
			return nil
		}
		pos, err := r.ReadPos()
		if err != nil {
			return nil
		}
		rest, _ := r.ReadBytes(r.Remaining())
		w.WriteI8(status)
		w.WritePos(pos)
		w.WriteBytes(rest)
	default:
		rest, _ := r.ReadBytes(r.Remaining())
		w.WriteBytes(rest)
	}

	id, err := c.shared.Registry.SBId(c.backend.Version(), kind)
	if err != nil {
		metrics.PacketsDroppedTotal.WithLabelValues("serverbound", "no_target_id").Inc()
		return nil
	}
	metrics.PacketsTranslatedTotal.WithLabelValues("serverbound", kind.String()).Inc()
	return c.backend.Write(id, w.Bytes())
}

// translateClientbound mirrors translateServerbound for backend->client
// traffic, additionally re-encoding chunk columns through internal/chunk
// for the client's block era.
func (c *Conn) translateClientbound(pkt *frame.Packet) error {
	kind, err := c.shared.Registry.CBKind(c.backend.Version(), pkt.ID)
	if err != nil {
		metrics.PacketsDroppedTotal.WithLabelValues("clientbound", "unknown_id").Inc()
		log.Printf("session: unknown clientbound packet id %#x from backend, dropping", pkt.ID)
		return nil
	}

	r := pkt.Reader()

	switch kind {
	case packetid.CBChunkData:
		return c.translateChunkData(r)
	case packetid.CBBlockChange:
		return c.translateBlockChange(r)
	case packetid.CBSpawnEntity:
		return c.translateSpawnEntity(r)
	case packetid.CBParticle:
		return c.translateParticle(r)
	}

	w := protocol.NewWriteBuffer(c.ver)
	rest, _ := r.ReadBytes(r.Remaining())
	w.WriteBytes(rest)
	id, err := c.shared.Registry.CBId(c.ver, kind)
	if err != nil {
		metrics.PacketsDroppedTotal.WithLabelValues("clientbound", "no_target_id").Inc()
		return nil
	}
	metrics.PacketsTranslatedTotal.WithLabelValues("clientbound", kind.String()).Inc()
	return c.client.Write(id, w.Bytes())
}

func (c *Conn) translateBlockChange(r *protocol.Buffer) error {
	pos, err := r.ReadPos()
	if err != nil {
		return nil
	}
	canonical, err := r.ReadVarInt()
	if err != nil {
		return nil
	}
	old := c.shared.Convert.ToOld(convert.FamilyBlock, c.ver, canonical)

	w := protocol.NewWriteBuffer(c.ver)
	w.WritePos(pos)
	w.WriteVarInt(old)

	id, err := c.shared.Registry.CBId(c.ver, packetid.CBBlockChange)
	if err != nil {
		return nil
	}
	metrics.PacketsTranslatedTotal.WithLabelValues("clientbound", "BlockChange").Inc()
	return c.client.Write(id, w.Bytes())
}

// translateSpawnEntity remaps the entity-type ID carried by Spawn Entity,
// and re-encodes the packet's position/velocity fields across the 1.8
// fixed-point-byte-type layout and the 1.9+ double/varint-type layout used
// by every other registered version including the canonical backend.
func (c *Conn) translateSpawnEntity(r *protocol.Buffer) error {
	backendVer := c.backend.Version()

	entityID, err := r.ReadVarInt()
	if err != nil {
		return nil
	}

	var uuid [16]byte
	var oldType int32
	var x, y, z float64
	var pitch, yaw int8
	var data int32
	var velX, velY, velZ int16

	if backendVer < version.V1_9 {
		t, err := r.ReadI8()
		if err != nil {
			return nil
		}
		xi, err := r.ReadI32()
		if err != nil {
			return nil
		}
		yi, err := r.ReadI32()
		if err != nil {
			return nil
		}
		zi, err := r.ReadI32()
		if err != nil {
			return nil
		}
		x, y, z = float64(xi)/32, float64(yi)/32, float64(zi)/32
		if pitch, err = r.ReadI8(); err != nil {
			return nil
		}
		if yaw, err = r.ReadI8(); err != nil {
			return nil
		}
		if data, err = r.ReadI32(); err != nil {
			return nil
		}
		if data != 0 {
			if velX, err = r.ReadI16(); err != nil {
				return nil
			}
			if velY, err = r.ReadI16(); err != nil {
				return nil
			}
			if velZ, err = r.ReadI16(); err != nil {
				return nil
			}
		}
		canonical := c.shared.Convert.ToNew(convert.FamilyEntity, backendVer, int32(t))
		oldType = c.shared.Convert.ToOld(convert.FamilyEntity, c.ver, canonical)
	} else {
		if uuid, err = r.ReadUUID(); err != nil {
			return nil
		}
		typ, err := r.ReadVarInt()
		if err != nil {
			return nil
		}
		if x, err = r.ReadF64(); err != nil {
			return nil
		}
		if y, err = r.ReadF64(); err != nil {
			return nil
		}
		if z, err = r.ReadF64(); err != nil {
			return nil
		}
		if pitch, err = r.ReadI8(); err != nil {
			return nil
		}
		if yaw, err = r.ReadI8(); err != nil {
			return nil
		}
		if data, err = r.ReadI32(); err != nil {
			return nil
		}
		if velX, err = r.ReadI16(); err != nil {
			return nil
		}
		if velY, err = r.ReadI16(); err != nil {
			return nil
		}
		if velZ, err = r.ReadI16(); err != nil {
			return nil
		}
		canonical := c.shared.Convert.ToNew(convert.FamilyEntity, backendVer, typ)
		oldType = c.shared.Convert.ToOld(convert.FamilyEntity, c.ver, canonical)
	}

	w := protocol.NewWriteBuffer(c.ver)
	w.WriteVarInt(entityID)
	if c.ver < version.V1_9 {
		w.WriteI8(int8(oldType))
		w.WriteI32(int32(x * 32))
		w.WriteI32(int32(y * 32))
		w.WriteI32(int32(z * 32))
		w.WriteI8(pitch)
		w.WriteI8(yaw)
		w.WriteI32(data)
		if data != 0 {
			w.WriteI16(velX)
			w.WriteI16(velY)
			w.WriteI16(velZ)
		}
	} else {
		w.WriteUUID(uuid)
		w.WriteVarInt(oldType)
		w.WriteF64(x)
		w.WriteF64(y)
		w.WriteF64(z)
		w.WriteI8(pitch)
		w.WriteI8(yaw)
		w.WriteI32(data)
		w.WriteI16(velX)
		w.WriteI16(velY)
		w.WriteI16(velZ)
	}

	id, err := c.shared.Registry.CBId(c.ver, packetid.CBSpawnEntity)
	if err != nil {
		metrics.PacketsDroppedTotal.WithLabelValues("clientbound", "no_target_id").Inc()
		return nil
	}
	metrics.PacketsTranslatedTotal.WithLabelValues("clientbound", "SpawnEntity").Inc()
	return c.client.Write(id, w.Bytes())
}

// translateParticle remaps the particle ID carried by the Particle packet.
// The trailing particle-specific payload (present for a handful of
// particle types) is forwarded unexamined, since its shape depends on the
// particle kind, not the protocol version.
func (c *Conn) translateParticle(r *protocol.Buffer) error {
	backendVer := c.backend.Version()

	id, err := r.ReadI32()
	if err != nil {
		return nil
	}
	longDistance, err := r.ReadBool()
	if err != nil {
		return nil
	}
	x, err := r.ReadF64()
	if err != nil {
		return nil
	}
	y, err := r.ReadF64()
	if err != nil {
		return nil
	}
	z, err := r.ReadF64()
	if err != nil {
		return nil
	}
	offX, err := r.ReadF32()
	if err != nil {
		return nil
	}
	offY, err := r.ReadF32()
	if err != nil {
		return nil
	}
	offZ, err := r.ReadF32()
	if err != nil {
		return nil
	}
	pdata, err := r.ReadF32()
	if err != nil {
		return nil
	}
	count, err := r.ReadI32()
	if err != nil {
		return nil
	}
	extra, _ := r.ReadBytes(r.Remaining())

	canonical := c.shared.Convert.ToNew(convert.FamilyParticle, backendVer, id)
	old := c.shared.Convert.ToOld(convert.FamilyParticle, c.ver, canonical)

	w := protocol.NewWriteBuffer(c.ver)
	w.WriteI32(old)
	w.WriteBool(longDistance)
	w.WriteF64(x)
	w.WriteF64(y)
	w.WriteF64(z)
	w.WriteF32(offX)
	w.WriteF32(offY)
	w.WriteF32(offZ)
	w.WriteF32(pdata)
	w.WriteI32(count)
	w.WriteBytes(extra)

	outID, err := c.shared.Registry.CBId(c.ver, packetid.CBParticle)
	if err != nil {
		metrics.PacketsDroppedTotal.WithLabelValues("clientbound", "no_target_id").Inc()
		return nil
	}
	metrics.PacketsTranslatedTotal.WithLabelValues("clientbound", "Particle").Inc()
	return c.client.Write(outID, w.Bytes())
}

func (c *Conn) translateChunkData(r *protocol.Buffer) error {
	timer := metrics.ChunkEncodeSeconds.WithLabelValues(c.era.String())
	chunkX, err := r.ReadI32()
	if err != nil {
		return nil
	}
	chunkZ, err := r.ReadI32()
	if err != nil {
		return nil
	}
	rest, err := r.ReadBytes(r.Remaining())
	if err != nil {
		return nil
	}

	col, err := chunk.DecodeCanonical(rest)
	if err != nil {
		metrics.PacketsDroppedTotal.WithLabelValues("clientbound", "chunk_decode_error").Inc()
		return nil
	}
	col.Pos = chunk.Pos{X: chunkX, Z: chunkZ}

	start := time.Now()
	encoded := c.encoder.Encode(col, c.shared.Convert, c.ver)
	timer.Observe(time.Since(start).Seconds())

	w := protocol.NewWriteBuffer(c.ver)
	w.WriteI32(chunkX)
	w.WriteI32(chunkZ)
	w.WriteBytes(encoded)

	id, err := c.shared.Registry.CBId(c.ver, packetid.CBChunkData)
	if err != nil {
		return nil
	}
	metrics.PacketsTranslatedTotal.WithLabelValues("clientbound", "ChunkData").Inc()
	return c.client.Write(id, w.Bytes())
}
