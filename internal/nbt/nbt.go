// Package nbt implements a minimal Named Binary Tag codec: a single-byte tag
// type, then (for non-End tags) a u16-length-prefixed UTF-8 name, then the
// payload recursively.
//
// Grounded on the shape described in bamboo/bb_common/src/nbt and
// bamboo/common/src/util/nbt/deserialize.rs, and on the hand-written NBT
// writer in handler.go's MinecraftConn.Write (TAG_Compound/TAG_Long_Array
// emitted by hand), generalized here into a full recursive codec instead
// of one fixed shape.
package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Kind is an NBT tag type.
type Kind byte

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

// ErrUnknownTag is returned when a tag byte outside the closed Kind set is
// encountered while decoding.
var ErrUnknownTag = errors.New("nbt: unknown tag type")

// Tag is one NBT node. Only the field matching Kind is meaningful.
type Tag struct {
	Kind      Kind
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	Str       string
	ListKind  Kind
	List      []Tag
	Compound  map[string]Tag
	// CompoundOrder preserves insertion order for deterministic re-encoding.
	CompoundOrder []string
	IntArray      []int32
	LongArray     []int64
}

// Named is a tag plus the name it was read/written with (the root tag and
// every compound entry carry one).
type Named struct {
	Name string
	Tag  Tag
}

func Byte(v int8) Tag    { return Tag{Kind: KindByte, Byte: v} }
func Short(v int16) Tag  { return Tag{Kind: KindShort, Short: v} }
func Int(v int32) Tag    { return Tag{Kind: KindInt, Int: v} }
func Long(v int64) Tag   { return Tag{Kind: KindLong, Long: v} }
func Float(v float32) Tag { return Tag{Kind: KindFloat, Float: v} }
func Double(v float64) Tag { return Tag{Kind: KindDouble, Double: v} }
func String(v string) Tag { return Tag{Kind: KindString, Str: v} }
func LongArray(v []int64) Tag { return Tag{Kind: KindLongArray, LongArray: v} }
func IntArray(v []int32) Tag  { return Tag{Kind: KindIntArray, IntArray: v} }

// Compound builds a compound tag from an ordered list of (name, tag) pairs,
// preserving the given order on re-encode.
func Compound(entries ...Named) Tag {
	t := Tag{Kind: KindCompound, Compound: make(map[string]Tag, len(entries))}
	for _, e := range entries {
		if _, exists := t.Compound[e.Name]; !exists {
			t.CompoundOrder = append(t.CompoundOrder, e.Name)
		}
		t.Compound[e.Name] = e.Tag
	}
	return t
}

// Entry is a convenience constructor for a Named compound member.
func Entry(name string, t Tag) Named { return Named{Name: name, Tag: t} }

type writer struct{ buf []byte }

func (w *writer) u8(v byte)  { w.buf = append(w.buf, v) }
func (w *writer) i16(v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	w.buf = append(w.buf, b[:]...)
}
func (w *writer) i32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
}
func (w *writer) i64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}
func (w *writer) str(s string) {
	w.i16(int16(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) payload(t Tag) {
	switch t.Kind {
	case KindByte:
		w.u8(byte(t.Byte))
	case KindShort:
		w.i16(t.Short)
	case KindInt:
		w.i32(t.Int)
	case KindLong:
		w.i64(t.Long)
	case KindFloat:
		w.i32(int32(math.Float32bits(t.Float)))
	case KindDouble:
		w.i64(int64(math.Float64bits(t.Double)))
	case KindByteArray:
		w.i32(int32(len(t.ByteArray)))
		w.buf = append(w.buf, t.ByteArray...)
	case KindString:
		w.str(t.Str)
	case KindList:
		w.u8(byte(t.ListKind))
		w.i32(int32(len(t.List)))
		for _, e := range t.List {
			w.payload(e)
		}
	case KindCompound:
		for _, name := range t.CompoundOrder {
			child := t.Compound[name]
			w.u8(byte(child.Kind))
			w.str(name)
			w.payload(child)
		}
		w.u8(byte(KindEnd))
	case KindIntArray:
		w.i32(int32(len(t.IntArray)))
		for _, v := range t.IntArray {
			w.i32(v)
		}
	case KindLongArray:
		w.i32(int32(len(t.LongArray)))
		for _, v := range t.LongArray {
			w.i64(v)
		}
	}
}

// Encode serializes a root tag with the given name: tag byte, u16-prefixed
// name, payload.
func Encode(name string, t Tag) []byte {
	w := &writer{}
	w.u8(byte(t.Kind))
	w.str(name)
	w.payload(t)
	return w.buf
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) u8() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, errors.New("nbt: unexpected eof")
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}
func (r *reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return errors.New("nbt: unexpected eof")
	}
	return nil
}
func (r *reader) i16() (int16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return int16(v), nil
}
func (r *reader) i32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return int32(v), nil
}
func (r *reader) i64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return int64(v), nil
}
func (r *reader) str() (string, error) {
	n, err := r.i16()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

func (r *reader) payload(kind Kind) (Tag, error) {
	switch kind {
	case KindByte:
		v, err := r.u8()
		return Tag{Kind: kind, Byte: int8(v)}, err
	case KindShort:
		v, err := r.i16()
		return Tag{Kind: kind, Short: v}, err
	case KindInt:
		v, err := r.i32()
		return Tag{Kind: kind, Int: v}, err
	case KindLong:
		v, err := r.i64()
		return Tag{Kind: kind, Long: v}, err
	case KindFloat:
		v, err := r.i32()
		return Tag{Kind: kind, Float: math.Float32frombits(uint32(v))}, err
	case KindDouble:
		v, err := r.i64()
		return Tag{Kind: kind, Double: math.Float64frombits(uint64(v))}, err
	case KindByteArray:
		n, err := r.i32()
		if err != nil {
			return Tag{}, err
		}
		if err := r.need(int(n)); err != nil {
			return Tag{}, err
		}
		v := make([]byte, n)
		copy(v, r.buf[r.pos:r.pos+int(n)])
		r.pos += int(n)
		return Tag{Kind: kind, ByteArray: v}, nil
	case KindString:
		s, err := r.str()
		return Tag{Kind: kind, Str: s}, err
	case KindList:
		ek, err := r.u8()
		if err != nil {
			return Tag{}, err
		}
		n, err := r.i32()
		if err != nil {
			return Tag{}, err
		}
		list := make([]Tag, 0, n)
		for i := int32(0); i < n; i++ {
			e, err := r.payload(Kind(ek))
			if err != nil {
				return Tag{}, err
			}
			list = append(list, e)
		}
		return Tag{Kind: kind, ListKind: Kind(ek), List: list}, nil
	case KindCompound:
		t := Tag{Kind: kind, Compound: map[string]Tag{}}
		for {
			ck, err := r.u8()
			if err != nil {
				return Tag{}, err
			}
			if Kind(ck) == KindEnd {
				break
			}
			name, err := r.str()
			if err != nil {
				return Tag{}, err
			}
			child, err := r.payload(Kind(ck))
			if err != nil {
				return Tag{}, err
			}
			if _, exists := t.Compound[name]; !exists {
				t.CompoundOrder = append(t.CompoundOrder, name)
			}
			t.Compound[name] = child
		}
		return t, nil
	case KindIntArray:
		n, err := r.i32()
		if err != nil {
			return Tag{}, err
		}
		v := make([]int32, n)
		for i := range v {
			v[i], err = r.i32()
			if err != nil {
				return Tag{}, err
			}
		}
		return Tag{Kind: kind, IntArray: v}, nil
	case KindLongArray:
		n, err := r.i32()
		if err != nil {
			return Tag{}, err
		}
		v := make([]int64, n)
		for i := range v {
			v[i], err = r.i64()
			if err != nil {
				return Tag{}, err
			}
		}
		return Tag{Kind: kind, LongArray: v}, nil
	default:
		return Tag{}, fmt.Errorf("%w: %d", ErrUnknownTag, kind)
	}
}

// Decode parses a root tag from buf, returning its name, the tag, and the
// number of bytes consumed.
func Decode(buf []byte) (string, Tag, int, error) {
	r := &reader{buf: buf}
	k, err := r.u8()
	if err != nil {
		return "", Tag{}, 0, err
	}
	if Kind(k) == KindEnd {
		return "", Tag{Kind: KindEnd}, r.pos, nil
	}
	name, err := r.str()
	if err != nil {
		return "", Tag{}, 0, err
	}
	t, err := r.payload(Kind(k))
	if err != nil {
		return "", Tag{}, 0, err
	}
	return name, t, r.pos, nil
}
