package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"
)

// Decoder reads RESP values from a byte stream, one value per Read call.
//
// The decoder owns its read-ahead buffer: bytes past the boundary of the
// value returned by Read stay buffered and are consumed by the next Read on
// the same Decoder. One stream must therefore be served by exactly one
// Decoder, and calls on it must be sequential.
type Decoder struct {
	rd *bufio.Reader
}

// NewDecoder wraps rd for value-at-a-time decoding. If rd already is a
// *bufio.Reader it is used directly, so bytes the caller has buffered are
// never lost to a second buffering layer.
func NewDecoder(rd io.Reader) *Decoder {
	br, ok := rd.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(rd)
	}
	return &Decoder{rd: br}
}

// Buffered returns the number of look-ahead bytes currently held by the decoder.
func (d *Decoder) Buffered() int {
	return d.rd.Buffered()
}

// Read decodes exactly one value. On success the read position has advanced
// exactly past the bytes of that value and no further.
//
// io.EOF is returned only when the stream ends cleanly before a type tag;
// truncation anywhere inside a value is io.ErrUnexpectedEOF. After any
// decode error the stream position is indeterminate. RESP has no
// resynchronization, so the source must be discarded.
func (d *Decoder) Read() (Value, error) {
	_type, err := d.rd.ReadByte()
	if err != nil {
		return Value{}, err
	}

	val := Value{
		Type: _type,
	}

	switch _type {
	case TypeSimpleString, TypeError:
		str, err := d.readSimpleString()
		if err != nil {
			return Value{}, err
		}

		val.String = str
		return val, nil

	case TypeInteger:
		num, err := d.readInteger()
		if err != nil {
			return Value{}, err
		}

		val.Integer = num
		return val, nil

	case TypeBulkString:
		return d.readBulkString(val)

	case TypeArray:
		return d.readArray(val)
	}

	return Value{}, fmt.Errorf("%w: %q", ErrUnknownType, _type)
}

// readLine reads bytes up to and including CRLF and returns the content
// without the terminator. A bare LF, a CR anywhere inside the content, or
// end of input before the terminator is a framing error.
func (d *Decoder) readLine() ([]byte, error) {
	line, err := d.rd.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, ErrInvalidEnding
	}

	line = line[:len(line)-2]
	if bytes.IndexByte(line, '\r') != -1 {
		return nil, ErrInvalidEnding
	}

	return line, nil
}

// readSimpleString reads the CRLF-terminated content of a SimpleString or
// Error and requires it to be valid UTF-8.
func (d *Decoder) readSimpleString() ([]byte, error) {
	line, err := d.readLine()
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(line) {
		return nil, ErrInvalidText
	}

	return line, nil
}

func (d *Decoder) readInteger() (int64, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}

	num, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrIntegerRange, line)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteger, line)
	}

	return num, nil
}

// readLength parses the header of a bulk string or array. -1 is the null
// marker; any other negative number is invalid.
func (d *Decoder) readLength() (int64, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrIntegerRange, line)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, line)
	}

	if n < -1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	return n, nil
}

// readBulkString reads the declared number of payload bytes verbatim and
// requires an immediate CRLF after them. The payload is binary-safe and may
// itself contain CR or LF.
func (d *Decoder) readBulkString(val Value) (Value, error) {
	length, err := d.readLength()
	if err != nil {
		return Value{}, err
	}

	if length == -1 {
		val.IsNull = true
		return val, nil
	}

	// The body buffer needs length+2 addressable bytes, so headers near
	// the integer limit cannot be satisfied on any stream.
	if length > math.MaxInt-2 {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	body := make([]byte, length+2)
	if _, err := io.ReadFull(d.rd, body); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	if body[length] != '\r' || body[length+1] != '\n' {
		return Value{}, ErrInvalidEnding
	}

	val.String = body[:length]
	return val, nil
}

func (d *Decoder) readArray(val Value) (Value, error) {
	count, err := d.readLength()
	if err != nil {
		return Value{}, err
	}

	if count == -1 {
		val.IsNull = true
		return val, nil
	}

	// Capacity comes from an untrusted header; cap the pre-allocation and
	// grow by appending, so an overstated count fails on the missing
	// elements instead of the allocation.
	capHint := count
	if capHint > 1024 {
		capHint = 1024
	}

	val.Array = make([]Value, 0, capHint)
	for i := int64(0); i < count; i++ {
		elem, err := d.Read()
		if err != nil {
			// End of input between elements still leaves this array
			// unterminated.
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
		val.Array = append(val.Array, elem)
	}

	return val, nil
}
