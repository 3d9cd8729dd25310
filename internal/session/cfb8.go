package session

import "crypto/cipher"

// cfb8 implements AES-128-CFB8, the byte-at-a-time cipher feedback mode
// the Minecraft protocol uses for its post-handshake symmetric encryption.
// crypto/cipher's CFB implementation is block-at-a-time (segment size ==
// block size) and cannot produce this; no ecosystem example in the
// retrieval pack supplies a CFB8 implementation either, so this is a
// deliberate, narrowly-scoped stdlib-primitive composition, not a
// hand-rolled cipher (see DESIGN.md).
type cfb8 struct {
	block     cipher.Block
	shift     []byte
	blockSize int
	decrypt   bool
}

func newCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) *cfb8 {
	bs := block.BlockSize()
	shift := make([]byte, bs)
	copy(shift, iv)
	return &cfb8{block: block, shift: shift, blockSize: bs, decrypt: decrypt}
}

func (c *cfb8) XORKeyStream(dst, src []byte) {
	tmp := make([]byte, c.blockSize)
	for i := range src {
		c.block.Encrypt(tmp, c.shift)
		var out byte
		if c.decrypt {
			out = src[i] ^ tmp[0]
			copy(c.shift, c.shift[1:])
			c.shift[c.blockSize-1] = src[i]
		} else {
			out = src[i] ^ tmp[0]
			copy(c.shift, c.shift[1:])
			c.shift[c.blockSize-1] = out
		}
		dst[i] = out
	}
}
