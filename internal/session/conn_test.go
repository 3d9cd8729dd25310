package session

import (
	"crypto/rand"
	"crypto/rsa"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcproxy/internal/convert"
	"mcproxy/internal/frame"
	"mcproxy/internal/packetid"
	"mcproxy/internal/protocol"
	"mcproxy/internal/registry"
	"mcproxy/internal/version"
)

func newTestShared(t *testing.T, backendAddr string) *Shared {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	return &Shared{
		Registry: registry.Default(),
		Key:      key,
		Backend:  backendAddr,
	}
}

func handshakePacket(proto int32, next int32) *frame.Packet {
	w := protocol.NewWriteBuffer(version.V1_8)
	w.WriteVarInt(proto)
	w.WriteString("localhost")
	w.WriteU16(25565)
	w.WriteVarInt(next)
	return &frame.Packet{ID: 0, Payload: w.Bytes(), Version: version.V1_8}
}

// readOnePacketFrom polls and reads a single frame off an already-wrapped
// *frame.Conn, retrying until one arrives. Callers expecting more than one
// packet off the same socket must reuse one *frame.Conn across calls,
// since each instance buffers any surplus bytes read past a frame
// boundary.
func readOnePacketFrom(t *testing.T, fc *frame.Conn) *frame.Packet {
	t.Helper()
	for i := 0; i < 100; i++ {
		err := fc.Poll(50 * time.Millisecond)
		if err != nil && err != frame.ErrWouldBlock {
			require.NoError(t, err)
		}
		pkt, err := fc.Read()
		require.NoError(t, err)
		if pkt != nil {
			return pkt
		}
	}
	t.Fatal("timed out waiting for a packet")
	return nil
}

func TestHandleHandshakeSetsVersionAndState(t *testing.T) {
	client, other := net.Pipe()
	defer client.Close()
	defer other.Close()

	shared := newTestShared(t, "")
	c := New(shared, client)

	err := c.handleHandshake(handshakePacket(int32(version.V1_14_4), 2))
	require.NoError(t, err)
	assert.Equal(t, version.V1_14_4, c.ver)
	assert.Equal(t, StateLogin, c.state)
	assert.Equal(t, version.Era1_14, c.era)
}

func TestHandleHandshakeUnknownVersionDisconnects(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	shared := newTestShared(t, "")
	c := New(shared, client)
	serverFrame := frame.New(server, version.V1_8)

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.handleHandshake(handshakePacket(999999, 2))
	}()

	pkt := readOnePacketFrom(t, serverFrame)
	require.NotNil(t, pkt)
	assert.Equal(t, int32(0x00), pkt.ID)

	err := <-errCh
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHandleStatusRespondsWithVersionJSON(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	shared := newTestShared(t, "")
	c := New(shared, client)
	require.NoError(t, c.handleHandshake(handshakePacket(int32(version.V1_8), 1)))
	assert.Equal(t, StateStatus, c.state)

	serverFrame := frame.New(server, version.V1_8)
	statusReq := &frame.Packet{ID: 0x00, Payload: nil, Version: version.V1_8}
	go func() {
		c.handleStatus(statusReq)
		c.client.Flush()
	}()

	pkt := readOnePacketFrom(t, serverFrame)
	assert.Equal(t, int32(0x00), pkt.ID)
	r := pkt.Reader()
	body, err := r.ReadString(1 << 16)
	require.NoError(t, err)
	assert.Contains(t, body, "mcproxy")
}

func TestLoginOfflineModeDialsBackendAndEntersPlay(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	backendDone := make(chan struct{})
	go func() {
		defer close(backendDone)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		fc := frame.New(conn, version.Canonical)
		// Drain the replayed handshake + login-start the proxy sends to
		// the backend, per completeLogin's dialBackend.
		hs := readOnePacketFrom(t, fc)
		assert.Equal(t, int32(0x00), hs.ID)
		ls := readOnePacketFrom(t, fc)
		assert.Equal(t, int32(0x00), ls.ID)
	}()

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	shared := newTestShared(t, ln.Addr().String())
	c := New(shared, client)
	require.NoError(t, c.handleHandshake(handshakePacket(int32(version.V1_8), 2)))
	assert.Equal(t, StateLogin, c.state)

	serverFrame := frame.New(server, version.V1_8)
	loginStart := protocol.NewWriteBuffer(version.V1_8)
	loginStart.WriteString("Steve")
	errCh := make(chan error, 1)
	go func() {
		err := c.handleLogin(&frame.Packet{ID: 0x00, Payload: loginStart.Bytes(), Version: version.V1_8})
		if err == nil {
			c.client.Flush()
			if c.backend != nil {
				c.backend.Flush()
			}
		}
		errCh <- err
	}()

	pkt := readOnePacketFrom(t, serverFrame)
	assert.Equal(t, int32(0x02), pkt.ID)

	require.NoError(t, <-errCh)
	assert.Equal(t, StatePlay, c.state)
	assert.NotNil(t, c.backend)

	<-backendDone
}

func TestTranslateServerboundUnknownIDIsDroppedNotFatal(t *testing.T) {
	client, other := net.Pipe()
	defer client.Close()
	defer other.Close()

	shared := newTestShared(t, "")
	c := New(shared, client)
	c.ver = version.V1_8
	c.state = StatePlay

	err := c.translateServerbound(&frame.Packet{ID: 0x7F, Payload: nil, Version: version.V1_8})
	assert.NoError(t, err)
}

func TestTranslateClientboundBlockChangeRemapsID(t *testing.T) {
	clientSock, clientPeer := net.Pipe()
	defer clientSock.Close()
	defer clientPeer.Close()
	backendSock, backendPeer := net.Pipe()
	defer backendSock.Close()
	defer backendPeer.Close()

	reg := registry.New()
	reg.AddCB(version.Canonical, 0x0B, packetid.CBBlockChange)
	reg.AddCB(version.V1_8, 0x23, packetid.CBBlockChange)

	shared := &Shared{Registry: reg, Convert: convert.Default()}
	c := New(shared, clientSock)
	c.ver = version.V1_8
	c.backend = frame.New(backendSock, version.Canonical)
	c.state = StatePlay

	w := protocol.NewWriteBuffer(version.Canonical)
	w.WritePos(protocol.Pos{X: 1, Y: 2, Z: 3})
	w.WriteVarInt(77)
	pkt := &frame.Packet{ID: 0x0B, Payload: w.Bytes(), Version: version.Canonical}

	clientPeerFrame := frame.New(clientPeer, version.V1_8)
	go func() {
		require.NoError(t, c.translateClientbound(pkt))
		c.client.Flush()
	}()

	got := readOnePacketFrom(t, clientPeerFrame)
	assert.Equal(t, int32(0x23), got.ID)
	r := got.Reader()
	pos, err := r.ReadPos()
	require.NoError(t, err)
	assert.Equal(t, protocol.Pos{X: 1, Y: 2, Z: 3}, pos)
	id, err := r.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(77), id)
}
