package protocol

import (
	"mcproxy/internal/nbt"
	"mcproxy/internal/version"
)

// ItemStack is the canonical in-memory representation of an inventory slot.
// Pre-1.13 wire format: `short id, byte count, short damage, NBT` (id -1
// means empty, matching absent-NBT semantics). 1.13+ wire format:
// `bool present, varint id, byte count, NBT`. Grounded on
// bamboo/proxy/src/packet.rs's read_item.
type ItemStack struct {
	Present bool
	ID      int32
	Count   int8
	Damage  int16
	NBT     *nbt.Tag
}

// ReadItemStack decodes an item stack using the encoding appropriate to the
// buffer's protocol version.
func (b *Buffer) ReadItemStack() (ItemStack, error) {
	if b.ver < version.V1_13 {
		id, err := b.ReadI16()
		if err != nil {
			return ItemStack{}, err
		}
		if id == -1 {
			return ItemStack{Present: false}, nil
		}
		count, err := b.ReadI8()
		if err != nil {
			return ItemStack{}, err
		}
		damage, err := b.ReadI16()
		if err != nil {
			return ItemStack{}, err
		}
		tag, err := b.readItemNBT()
		if err != nil {
			return ItemStack{}, err
		}
		return ItemStack{Present: true, ID: int32(id), Count: count, Damage: damage, NBT: tag}, nil
	}

	present, err := b.ReadBool()
	if err != nil {
		return ItemStack{}, err
	}
	if !present {
		return ItemStack{Present: false}, nil
	}
	id, err := b.ReadVarInt()
	if err != nil {
		return ItemStack{}, err
	}
	count, err := b.ReadI8()
	if err != nil {
		return ItemStack{}, err
	}
	tag, err := b.readItemNBT()
	if err != nil {
		return ItemStack{}, err
	}
	return ItemStack{Present: true, ID: id, Count: count, NBT: tag}, nil
}

// WriteItemStack encodes an item stack using the encoding appropriate to the
// buffer's protocol version.
func (b *Buffer) WriteItemStack(it ItemStack) {
	if b.ver < version.V1_13 {
		if !it.Present {
			b.WriteI16(-1)
			return
		}
		b.WriteI16(int16(it.ID))
		b.WriteI8(it.Count)
		b.WriteI16(it.Damage)
		b.writeItemNBT(it.NBT)
		return
	}

	b.WriteBool(it.Present)
	if !it.Present {
		return
	}
	b.WriteVarInt(it.ID)
	b.WriteI8(it.Count)
	b.writeItemNBT(it.NBT)
}

// readItemNBT reads a single NBT tag, where a leading TAG_End byte means "no
// tag present" (the vanilla convention for an item's tag compound).
func (b *Buffer) readItemNBT() (*nbt.Tag, error) {
	remaining, err := b.ReadBytes(b.Remaining())
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 || nbt.Kind(remaining[0]) == nbt.KindEnd {
		b.Seek(b.pos - len(remaining) + 1)
		return nil, nil
	}
	_, tag, n, err := nbt.Decode(remaining)
	if err != nil {
		return nil, err
	}
	b.Seek(b.pos - len(remaining) + n)
	return &tag, nil
}

func (b *Buffer) writeItemNBT(tag *nbt.Tag) {
	if tag == nil {
		b.WriteU8(0) // TAG_End: no data
		return
	}
	b.WriteBytes(nbt.Encode("", *tag))
}
