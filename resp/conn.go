package resp

import (
	"io"
	"sync"
)

// Conn pairs a Decoder and an Encoder over a single byte stream, typically a
// network connection, and provides synchronized writes so responses may be
// sent from multiple goroutines. Reads must stay sequential, per the
// Decoder contract.
type Conn struct {
	rwc     io.ReadWriteCloser
	decoder *Decoder
	encoder *Encoder
	mu      sync.Mutex
}

var _ Stream = (*Conn)(nil)

// NewConn wraps a duplex byte stream into a RESP endpoint
func NewConn(rwc io.ReadWriteCloser) *Conn {
	return &Conn{
		rwc:     rwc,
		decoder: NewDecoder(rwc),
		encoder: NewEncoder(rwc),
	}
}

// Read decodes the next value from the stream
func (c *Conn) Read() (Value, error) {
	return c.decoder.Read()
}

// Write encodes a value into the output buffer.
// This method is thread-safe and can be called from multiple goroutines
func (c *Conn) Write(v Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encoder.Write(v)
}

// Flush sends all buffered output to the stream
func (c *Conn) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encoder.Flush()
}

// Buffered returns the number of input bytes already read past the last
// decoded value's boundary
func (c *Conn) Buffered() int {
	return c.decoder.Buffered()
}

// Close terminates the underlying stream
func (c *Conn) Close() error {
	return c.rwc.Close()
}
