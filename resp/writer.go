package resp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Encoder handles the serialization of RESP Value objects into an output stream.
//
// Writes are buffered; call Flush to push them to the underlying sink.
// Encoding is deterministic and fails only on a sink error, an unknown value
// kind, or CR/LF inside SimpleString/Error text (ErrUnsafeText). The
// protocol cannot frame such text, so it is rejected instead of producing a
// corrupt frame.
type Encoder struct {
	writer *bufio.Writer
}

// NewEncoder initializes an Encoder with a buffered writer
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		writer: bufio.NewWriter(w)}
}

// Write serializes a RESP Value into the encoder's buffer
func (e *Encoder) Write(v Value) error {
	switch v.Type {
	case TypeInteger:
		return e.writeHeader(TypeInteger, v.Integer)

	case TypeSimpleString, TypeError:
		if bytes.ContainsAny(v.String, "\r\n") {
			return fmt.Errorf("%w: %q", ErrUnsafeText, v.String)
		}
		return e.writeLine(v.Type, v.String)

	case TypeBulkString:
		if v.IsNull {
			_, err := e.writer.WriteString("$-1\r\n")
			return err
		}
		if err := e.writeHeader(TypeBulkString, int64(len(v.String))); err != nil {
			return err
		}
		if _, err := e.writer.Write(v.String); err != nil {
			return err
		}
		_, err := e.writer.WriteString("\r\n")
		return err

	case TypeArray:
		if v.IsNull {
			_, err := e.writer.WriteString("*-1\r\n")
			return err
		}
		if err := e.writeHeader(TypeArray, int64(len(v.Array))); err != nil {
			return err
		}
		for _, el := range v.Array {
			if err := e.Write(el); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownType, v.Type)
}

// Flush pushes all buffered output to the underlying sink
func (e *Encoder) Flush() error {
	return e.writer.Flush()
}

// writeHeader writes the type prefix, numeric value, and CRLF
func (e *Encoder) writeHeader(prefix byte, n int64) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	e.appendInt(n)
	_, err := e.writer.WriteString("\r\n")
	return err
}

// writeLine writes the type prefix, raw bytes, and CRLF (for SimpleString and Error)
func (e *Encoder) writeLine(prefix byte, b []byte) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	if _, err := e.writer.Write(b); err != nil {
		return err
	}
	_, err := e.writer.WriteString("\r\n")
	return err
}

// appendInt converts an integer to its decimal ASCII form and writes it to the buffer
func (e *Encoder) appendInt(n int64) {
	b := e.writer.AvailableBuffer()
	b = strconv.AppendInt(b, n, 10)
	e.writer.Write(b) //nolint:errcheck
}
