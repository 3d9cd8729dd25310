package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"errors"
	"math/big"
)

// ErrVerifyTokenMismatch is returned when a client's encryption-response
// verify token doesn't match the one the server sent in EncryptionRequest.
var ErrVerifyTokenMismatch = errors.New("session: verify token mismatch")

// encodePublicKey DER-encodes a public key as a SubjectPublicKeyInfo
// structure, matching bb_common/src/math/der.rs's encode(): a SEQUENCE of
// (AlgorithmIdentifier, BIT STRING of a SEQUENCE(modulus, exponent)) --
// exactly the ASN.1 shape crypto/x509.MarshalPKIXPublicKey already
// produces for an *rsa.PublicKey, so no hand-rolled ASN.1 writer is
// needed (see DESIGN.md).
func encodePublicKey(pub *rsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pub)
}

// newVerifyToken returns a fresh 4-byte random verify token, per the
// external protocol's EncryptionRequest contract.
func newVerifyToken() ([]byte, error) {
	tok := make([]byte, 4)
	_, err := rand.Read(tok)
	return tok, err
}

// decryptSecret decrypts a PKCS#1 v1.5 padded ciphertext (the client's
// encrypted shared secret or verify token) with the server's RSA private
// key.
func decryptSecret(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
}

// newAESCFB8Streams builds the paired read/write AES-128-CFB8 streams used
// for the rest of the connection, with the shared secret as both key and
// IV.
func newAESCFB8Streams(secret []byte) (decrypt, encrypt cipher.Stream, err error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, nil, err
	}
	decrypt = newCFB8Decrypter(block, secret)
	encrypt = newCFB8Encrypter(block, secret)
	return decrypt, encrypt, nil
}

// serverIDHash computes the session-server hash: SHA-1 of (serverID ||
// secret || publicKey), encoded as Minecraft's quirky signed hex
// representation. No login path calls it, in online or offline mode; this
// proxy never contacts the session server.
func serverIDHash(serverID string, secret, pubKeyDER []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(secret)
	h.Write(pubKeyDER)
	sum := h.Sum(nil)

	negative := sum[0]&0x80 != 0
	n := new(big.Int).SetBytes(sum)
	if negative {
		n = new(big.Int).Neg(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(len(sum)*8)), n))
	}
	s := n.Text(16)
	if negative {
		s = "-" + s
	}
	return s
}
