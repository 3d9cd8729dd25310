package chunk

import (
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// DecodeCanonical parses a ChunkData packet body encoded in the canonical
// (1.18+, no-bitmap) wire format -- the format the backend always speaks,
// since the proxy's backend channel announces the canonical protocol
// version regardless of client version, which is always
// version.Canonical (era Era1_19, so the trust-edges bool is always
// present; see v18Encoder). This is the mechanical inverse of
// v18Encoder.Encode, stopping short of NBT-decoding the heightmap (the
// proxy re-synthesizes it per client era instead of forwarding the
// backend's copy).
func DecodeCanonical(data []byte) (*Column, error) {
	ver := version.Canonical
	buf := protocol.NewBuffer(data, ver)

	// Skip the heightmap NBT compound: tag byte (0x0A compound), name
	// (u16 len 0), then recursively skip to the matching TAG_End. We
	// don't need its contents, only to advance the cursor past it.
	if err := skipNBTCompound(buf); err != nil {
		return nil, err
	}

	dataLen, err := buf.ReadVarInt()
	if err != nil {
		return nil, err
	}
	sectionBytes, err := buf.ReadBytes(int(dataLen))
	if err != nil {
		return nil, err
	}
	if _, err := buf.ReadVarInt(); err != nil { // block entity count (0)
		return nil, err
	}

	sbuf := protocol.NewBuffer(sectionBytes, ver)
	col := &Column{Full: true}
	for i := 0; i < 16; i++ {
		nonAir, err := sbuf.ReadU16()
		if err != nil {
			return nil, err
		}
		bpe, err := sbuf.ReadU8()
		if err != nil {
			return nil, err
		}
		var palette []int32
		switch {
		case bpe == 0:
			v, err := sbuf.ReadVarInt()
			if err != nil {
				return nil, err
			}
			palette = []int32{v}
		case bpe <= 8:
			n, err := sbuf.ReadVarInt()
			if err != nil {
				return nil, err
			}
			palette = make([]int32, n)
			for j := range palette {
				v, err := sbuf.ReadVarInt()
				if err != nil {
					return nil, err
				}
				palette[j] = v
			}
		}
		longCount, err := sbuf.ReadVarInt()
		if err != nil {
			return nil, err
		}
		longs := make([]uint64, longCount)
		for j := range longs {
			v, err := sbuf.ReadU64()
			if err != nil {
				return nil, err
			}
			longs[j] = v
		}

		if nonAir > 0 || len(palette) > 1 {
			col.Sections[i] = &Section{
				BitsPerEntry: int(bpe),
				Palette:      palette,
				Data:         FromLongs(int(bpe), 4096, longs),
				NonAirCount:  int(nonAir),
			}
		}

		// Biome paletted container.
		bbpe, err := sbuf.ReadU8()
		if err != nil {
			return nil, err
		}
		var bpal []int32
		switch {
		case bbpe == 0:
			v, err := sbuf.ReadVarInt()
			if err != nil {
				return nil, err
			}
			bpal = []int32{v}
		case bbpe <= 3:
			n, err := sbuf.ReadVarInt()
			if err != nil {
				return nil, err
			}
			bpal = make([]int32, n)
			for j := range bpal {
				v, err := sbuf.ReadVarInt()
				if err != nil {
					return nil, err
				}
				bpal[j] = v
			}
		}
		blongCount, err := sbuf.ReadVarInt()
		if err != nil {
			return nil, err
		}
		blongs := make([]uint64, blongCount)
		for j := range blongs {
			v, err := sbuf.ReadU64()
			if err != nil {
				return nil, err
			}
			blongs[j] = v
		}
		col.Biomes[i] = &Biomes{BitsPerEntry: int(bbpe), Palette: bpal, Data: FromLongs(int(bbpe), 64, blongs)}
	}

	if _, err := buf.ReadBool(); err != nil { // trust edges, always present for the canonical era
		return nil, err
	}

	if err := readLightBitsets(buf, col); err != nil {
		return nil, err
	}

	return col, nil
}

func skipNBTCompound(buf *protocol.Buffer) error {
	tag, err := buf.ReadU8()
	if err != nil {
		return err
	}
	if tag == 0 {
		return nil
	}
	nameLen, err := buf.ReadU16()
	if err != nil {
		return err
	}
	if _, err := buf.ReadBytes(int(nameLen)); err != nil {
		return err
	}
	return skipNBTPayload(buf, tag)
}

func skipNBTPayload(buf *protocol.Buffer, tag uint8) error {
	switch tag {
	case 1: // byte
		_, err := buf.ReadI8()
		return err
	case 2: // short
		_, err := buf.ReadI16()
		return err
	case 3: // int
		_, err := buf.ReadI32()
		return err
	case 4: // long
		_, err := buf.ReadI64()
		return err
	case 5: // float
		_, err := buf.ReadF32()
		return err
	case 6: // double
		_, err := buf.ReadF64()
		return err
	case 7: // byte array
		n, err := buf.ReadI32()
		if err != nil {
			return err
		}
		_, err = buf.ReadBytes(int(n))
		return err
	case 8: // string
		n, err := buf.ReadU16()
		if err != nil {
			return err
		}
		_, err = buf.ReadBytes(int(n))
		return err
	case 9: // list
		elemTag, err := buf.ReadU8()
		if err != nil {
			return err
		}
		n, err := buf.ReadI32()
		if err != nil {
			return err
		}
		for i := int32(0); i < n; i++ {
			if err := skipNBTPayload(buf, elemTag); err != nil {
				return err
			}
		}
		return nil
	case 10: // compound
		for {
			childTag, err := buf.ReadU8()
			if err != nil {
				return err
			}
			if childTag == 0 {
				return nil
			}
			nameLen, err := buf.ReadU16()
			if err != nil {
				return err
			}
			if _, err := buf.ReadBytes(int(nameLen)); err != nil {
				return err
			}
			if err := skipNBTPayload(buf, childTag); err != nil {
				return err
			}
		}
	case 11: // int array
		n, err := buf.ReadI32()
		if err != nil {
			return err
		}
		for i := int32(0); i < n; i++ {
			if _, err := buf.ReadI32(); err != nil {
				return err
			}
		}
		return nil
	case 12: // long array
		n, err := buf.ReadI32()
		if err != nil {
			return err
		}
		for i := int32(0); i < n; i++ {
			if _, err := buf.ReadI64(); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func readLightBitsets(buf *protocol.Buffer, col *Column) error {
	if _, err := buf.ReadVarInt(); err != nil {
		return err
	}
	skyBitmap, err := buf.ReadU64()
	if err != nil {
		return err
	}
	if _, err := buf.ReadVarInt(); err != nil {
		return err
	}
	blockBitmap, err := buf.ReadU64()
	if err != nil {
		return err
	}
	if _, err := buf.ReadVarInt(); err != nil {
		return err
	}
	if _, err := buf.ReadU64(); err != nil { // sky empty bitmap, unused
		return err
	}
	if _, err := buf.ReadVarInt(); err != nil {
		return err
	}
	if _, err := buf.ReadU64(); err != nil { // block empty bitmap, unused
		return err
	}

	skyBitmap >>= 1
	blockBitmap >>= 1

	skyLen, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	for i := int32(0); i < skyLen; i++ {
		n, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		data, err := buf.ReadBytes(int(n))
		if err != nil {
			return err
		}
		y := nextSetBit(&skyBitmap)
		if y >= 0 && y < 16 {
			col.SkyLight[y] = data
		}
	}
	blockLen, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	for i := int32(0); i < blockLen; i++ {
		n, err := buf.ReadVarInt()
		if err != nil {
			return err
		}
		data, err := buf.ReadBytes(int(n))
		if err != nil {
			return err
		}
		y := nextSetBit(&blockBitmap)
		if y >= 0 && y < 16 {
			col.BlockLight[y] = data
		}
	}
	return nil
}

// nextSetBit pops the lowest set bit's position from bitmap and clears it.
func nextSetBit(bitmap *uint64) int {
	if *bitmap == 0 {
		return -1
	}
	for y := 0; y < 64; y++ {
		if *bitmap&(1<<uint(y)) != 0 {
			*bitmap &^= 1 << uint(y)
			return y
		}
	}
	return -1
}
