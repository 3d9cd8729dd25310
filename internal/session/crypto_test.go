package session

import (
	"crypto/aes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePublicKeyRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	der, err := encodePublicKey(&priv.PublicKey)
	require.NoError(t, err)

	parsed, err := x509.ParsePKIXPublicKey(der)
	require.NoError(t, err)
	pub, ok := parsed.(*rsa.PublicKey)
	require.True(t, ok)
	assert.Equal(t, priv.PublicKey.N, pub.N)
	assert.Equal(t, priv.PublicKey.E, pub.E)
}

func TestDecryptSecretRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	secret := []byte("0123456789ABCDEF")
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, secret)
	require.NoError(t, err)

	got, err := decryptSecret(priv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestNewVerifyTokenLength(t *testing.T) {
	tok, err := newVerifyToken()
	require.NoError(t, err)
	assert.Len(t, tok, 4)
}

func TestCFB8EncryptDecryptRoundTrip(t *testing.T) {
	secret := []byte("0123456789ABCDEF")
	decryptStream, encryptStream, err := newAESCFB8Streams(secret)
	require.NoError(t, err)

	plain := []byte("the quick brown fox jumps over the lazy dog, 1234567890")
	cipherOut := make([]byte, len(plain))
	encryptStream.XORKeyStream(cipherOut, plain)

	plainOut := make([]byte, len(cipherOut))
	decryptStream.XORKeyStream(plainOut, cipherOut)

	assert.Equal(t, plain, plainOut)
}

func TestServerIDHashKnownVectors(t *testing.T) {
	// Known-answer vectors from the external protocol's documented examples
	// for the signed-hex session hash: sha1("Notch") and sha1("jeb_").
	got := serverIDHash("Notch", nil, nil)
	assert.Equal(t, "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48", got)

	got = serverIDHash("jeb_", nil, nil)
	assert.Equal(t, "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1", got)
}

func TestCFB8MatchesAESBlockOnFirstByte(t *testing.T) {
	// The first output byte of CFB8 is always plaintext[0] XOR
	// E(key, iv)[0], directly checkable against crypto/aes.
	secret := []byte("0123456789ABCDEF")
	block, err := aes.NewCipher(secret)
	require.NoError(t, err)

	var expected [16]byte
	block.Encrypt(expected[:], secret)

	_, encryptStream, err := newAESCFB8Streams(secret)
	require.NoError(t, err)

	plain := []byte{0x42}
	out := make([]byte, 1)
	encryptStream.XORKeyStream(out, plain)
	assert.Equal(t, plain[0]^expected[0], out[0])
}
