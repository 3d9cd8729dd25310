package chunk

// buildMotionBlockingHeightmap scans each of the 256 (x,z) columns
// top-down across all 16 sections and records one more than the Y of the
// first non-air block found (0 for an all-air column), matching
// bb_common's Chunk::build_heightmap_new. The result is always packed 9
// bits per entry (sufficient for Y in [0,384) on 1.18+); the 1.14-1.17
// encoder writes this same 9-bit packing, and no narrower packing is
// produced for older versions.
func buildMotionBlockingHeightmap(c *Column) []int64 {
	heights := make([]int32, 256)
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			y := highestNonAir(c, x, z)
			heights[z*16+x] = int32(y + 1)
		}
	}
	const bpe = 9
	bs := NewBitStorage(bpe, 256)
	for i, h := range heights {
		bs.Set(i, int64(h))
	}
	return toInt64s(bs.Longs())
}

// highestNonAir returns the Y (sectionIndex*16 + in-section y) of the
// highest non-air block in column (x,z), or -1 if the whole column is air.
func highestNonAir(c *Column, x, z int) int {
	for sy := 15; sy >= 0; sy-- {
		s := c.Sections[sy]
		if s == nil {
			continue
		}
		for y := 15; y >= 0; y-- {
			if s.blockAt(x, y, z) != 0 {
				return sy*16 + y
			}
		}
	}
	return -1
}

func toInt64s(longs []uint64) []int64 {
	out := make([]int64, len(longs))
	for i, v := range longs {
		out[i] = int64(v)
	}
	return out
}
