package resp

import "io"

type Reader interface {
	Read() (Value, error)
}

type Writer interface {
	Write(v Value) error
}

// Stream is a full duplex RESP endpoint, typically backed by one network
// connection. See Conn for the canonical implementation.
type Stream interface {
	Reader
	Writer
	io.Closer
}
