package session

import (
	"crypto/rsa"
	"errors"
	"log"
	"net"
	"time"

	"mcproxy/internal/chunk"
	"mcproxy/internal/convert"
	"mcproxy/internal/frame"
	"mcproxy/internal/metrics"
	"mcproxy/internal/registry"
	"mcproxy/internal/version"
)

// Shared, read-only-after-init collaborators every connection references:
// conversion tables and the version registry are read-only after
// initialization and shared by all connections without locking.
type Shared struct {
	Registry *registry.Table
	Convert  *convert.Tables
	Key      *rsa.PrivateKey
	Backend  string // canonical-protocol backend address
	Compress int
	Online   bool
}

// Conn is one client connection's full state: both framed sockets, the
// current protocol state/version, and login scratch. Grounded on the
// per-connection locals in handleConnection/processPacket, generalized
// into a struct so state survives across the non-blocking poll loop's
// many short calls instead of living in one function's stack frame.
type Conn struct {
	shared *Shared

	client *frame.Conn
	backend *frame.Conn

	state   State
	ver     version.Protocol
	era     version.BlockEra
	encoder chunk.Encoder

	username     string
	verifyToken  []byte
	closed       bool
}

// ErrClosed is returned by Conn methods once the connection has been torn
// down.
var ErrClosed = errors.New("session: connection closed")

// New wraps an accepted client socket. The backend socket is dialed lazily
// once login completes, mirroring the real server's login-then-play
// ordering.
func New(shared *Shared, clientSock net.Conn) *Conn {
	metrics.ConnectionsOpenTotal.Inc()
	metrics.ConnectionsActive.Inc()
	return &Conn{
		shared: shared,
		client: frame.New(clientSock, version.V1_8),
		state:  StateHandshake,
		ver:    version.V1_8,
	}
}

// Close tears down both sockets and updates the active-connection gauge.
// Safe to call more than once.
func (c *Conn) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.client.Close()
	if c.backend != nil {
		c.backend.Close()
	}
	metrics.ConnectionsActive.Dec()
}

// Run drives the connection until either socket fails with an error other
// than ErrWouldBlock: one goroutine per connection, blocking reads bounded
// by a deadline instead of a central readiness notifier.
func (c *Conn) Run() {
	defer c.Close()
	for {
		if err := c.pumpClient(); err != nil {
			if !errors.Is(err, frame.ErrWouldBlock) {
				return
			}
		}
		if c.backend != nil {
			if err := c.pumpBackend(); err != nil {
				if !errors.Is(err, frame.ErrWouldBlock) {
					return
				}
			}
		}
	}
}

func (c *Conn) pumpClient() error {
	if err := c.client.Poll(50 * time.Millisecond); err != nil && !errors.Is(err, frame.ErrWouldBlock) {
		return err
	}
	for {
		pkt, err := c.client.Read()
		if err != nil {
			metrics.FrameErrorsTotal.WithLabelValues("client_read").Inc()
			return err
		}
		if pkt == nil {
			break
		}
		if err := c.handleClientPacket(pkt); err != nil {
			return err
		}
	}
	return c.client.Flush()
}

func (c *Conn) pumpBackend() error {
	if err := c.backend.Poll(50 * time.Millisecond); err != nil && !errors.Is(err, frame.ErrWouldBlock) {
		return err
	}
	for {
		pkt, err := c.backend.Read()
		if err != nil {
			metrics.FrameErrorsTotal.WithLabelValues("backend_read").Inc()
			return err
		}
		if pkt == nil {
			break
		}
		if err := c.handleBackendPacket(pkt); err != nil {
			return err
		}
	}
	return c.backend.Flush()
}

func (c *Conn) handleClientPacket(pkt *frame.Packet) error {
	switch c.state {
	case StateHandshake:
		return c.handleHandshake(pkt)
	case StateStatus:
		return c.handleStatus(pkt)
	case StateLogin:
		return c.handleLogin(pkt)
	case StatePlay:
		return c.translateServerbound(pkt)
	default:
		return nil
	}
}

func (c *Conn) handleBackendPacket(pkt *frame.Packet) error {
	if c.state != StatePlay {
		return nil
	}
	return c.translateClientbound(pkt)
}

func (c *Conn) handleHandshake(pkt *frame.Packet) error {
	if pkt.ID != 0 {
		return nil
	}
	r := pkt.Reader()
	protoID, err := r.ReadVarInt()
	if err != nil {
		return err
	}
	if _, err := r.ReadString(255); err != nil { // server address, ignored
		return err
	}
	if _, err := r.ReadU16(); err != nil { // server port, ignored
		return err
	}
	next, err := r.ReadVarInt()
	if err != nil {
		return err
	}

	c.ver = version.Protocol(protoID)
	c.client.SetVersion(c.ver)
	c.era = c.ver.Block()
	c.encoder = chunk.ForEra(c.era)

	switch next {
	case 1:
		c.state = StateStatus
	case 2:
		c.state = StateLogin
	}
	if !c.shared.Registry.Known(c.ver) {
		log.Printf("session: unsupported protocol version %d, disconnecting", protoID)
		return c.disconnectClient("Unsupported protocol version")
	}
	return nil
}
