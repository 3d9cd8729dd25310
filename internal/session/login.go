package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"

	"mcproxy/internal/frame"
	"mcproxy/internal/packetid"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// statusResponse is the JSON document sent for a Status Response packet,
// shaped per the external protocol (not part of the closed field-kind
// set, since it travels as a single length-prefixed JSON string).
type statusResponse struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
}

func (c *Conn) handleStatus(pkt *frame.Packet) error {
	switch pkt.ID {
	case 0x00:
		resp := statusResponse{}
		resp.Version.Name = "mcproxy"
		resp.Version.Protocol = int32(c.ver)
		resp.Players.Max = 20
		resp.Description.Text = "mcproxy translation proxy"
		body, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		w := protocol.NewWriteBuffer(c.ver)
		w.WriteString(string(body))
		return c.client.Write(0x00, w.Bytes())
	case 0x01:
		return c.client.Write(0x01, pkt.Payload)
	}
	return nil
}

func (c *Conn) handleLogin(pkt *frame.Packet) error {
	r := pkt.Reader()
	switch pkt.ID {
	case 0x00: // LoginStart
		name, err := r.ReadString(16)
		if err != nil {
			return err
		}
		c.username = name
		if c.shared.Online {
			return c.sendEncryptionRequest()
		}
		return c.completeLogin()
	case 0x01: // EncryptionResponse
		return c.handleEncryptionResponse(r)
	}
	return nil
}

func (c *Conn) sendEncryptionRequest() error {
	pub, err := encodePublicKey(&c.shared.Key.PublicKey)
	if err != nil {
		return err
	}
	tok, err := newVerifyToken()
	if err != nil {
		return err
	}
	c.verifyToken = tok

	w := protocol.NewWriteBuffer(c.ver)
	w.WriteString("") // server ID, empty in offline-style flows
	w.WriteByteArray(pub)
	w.WriteByteArray(tok)
	return c.client.Write(0x01, w.Bytes())
}

func (c *Conn) handleEncryptionResponse(r *protocol.Buffer) error {
	secretEnc, err := r.ReadByteArray(256)
	if err != nil {
		return err
	}
	tokenEnc, err := r.ReadByteArray(256)
	if err != nil {
		return err
	}
	token, err := decryptSecret(c.shared.Key, tokenEnc)
	if err != nil {
		return err
	}
	if !bytes.Equal(token, c.verifyToken) {
		return ErrVerifyTokenMismatch
	}
	secret, err := decryptSecret(c.shared.Key, secretEnc)
	if err != nil {
		return err
	}
	dec, enc, err := newAESCFB8Streams(secret)
	if err != nil {
		return err
	}
	c.client.EnableEncryption(dec, enc)
	return c.completeLogin()
}

// completeLogin sends SetCompression (if configured) + LoginSuccess, then
// dials the backend and replays the canonical-version handshake+login so
// the backend sees a normal client.
func (c *Conn) completeLogin() error {
	if c.shared.Compress > 0 {
		w := protocol.NewWriteBuffer(c.ver)
		w.WriteVarInt(int32(c.shared.Compress))
		if err := c.client.Write(0x03, w.Bytes()); err != nil {
			return err
		}
		c.client.SetCompression(c.shared.Compress)
	}

	w := protocol.NewWriteBuffer(c.ver)
	uuid := deterministicUUID(c.username)
	w.WriteUUID(uuid)
	w.WriteString(c.username)
	w.WriteVarInt(0) // no properties
	if err := c.client.Write(0x02, w.Bytes()); err != nil {
		return err
	}

	if err := c.dialBackend(); err != nil {
		return err
	}
	c.state = StatePlay
	return nil
}

func (c *Conn) dialBackend() error {
	sock, err := net.Dial("tcp", c.shared.Backend)
	if err != nil {
		return fmt.Errorf("session: dial backend: %w", err)
	}
	c.backend = frame.New(sock, version.Canonical)

	hs := protocol.NewWriteBuffer(c.backend.Version())
	hs.WriteVarInt(int32(c.backend.Version()))
	hs.WriteString("mcproxy")
	hs.WriteU16(0)
	hs.WriteVarInt(2) // next state: Login
	if err := c.backend.Write(0x00, hs.Bytes()); err != nil {
		return err
	}

	ls := protocol.NewWriteBuffer(c.backend.Version())
	ls.WriteString(c.username)
	if err := c.backend.Write(0x00, ls.Bytes()); err != nil {
		return err
	}
	if c.shared.Compress > 0 {
		c.backend.SetCompression(c.shared.Compress)
	}
	return nil
}

// disconnectClient writes a canonical Disconnect and closes, following the
// failure semantics for Handshake/Login errors.
func (c *Conn) disconnectClient(reason string) error {
	body, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: reason})
	if err != nil {
		return err
	}
	w := protocol.NewWriteBuffer(c.ver)
	w.WriteString(string(body))

	var id int32 = 0x00
	if c.state == StatePlay {
		id, _ = c.shared.Registry.CBId(c.ver, packetid.CBDisconnect)
	}
	_ = c.client.Write(id, w.Bytes())
	_ = c.client.Flush()
	c.Close()
	return ErrClosed
}
