package resp

import (
	"bytes"
	"io"
	"strings"
)

// countingWriter tracks how many bytes actually reached the sink.
type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}

// EncodeTo encodes one value into w and reports the number of bytes written.
func EncodeTo(w io.Writer, v Value) (int, error) {
	cw := &countingWriter{w: w}
	enc := NewEncoder(cw)
	if err := enc.Write(v); err != nil {
		return cw.n, err
	}
	err := enc.Flush()
	return cw.n, err
}

// Marshal renders v to its exact wire encoding.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := EncodeTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalString renders v to its wire encoding as a string. Bulk string
// payloads are binary-safe, so the result is not necessarily valid UTF-8.
func MarshalString(v Value) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Unmarshal decodes exactly one value from b. Bytes past that value's
// boundary are ignored; use a Decoder to read consecutive values.
func Unmarshal(b []byte) (Value, error) {
	return NewDecoder(bytes.NewReader(b)).Read()
}

// UnmarshalString decodes exactly one value from s.
func UnmarshalString(s string) (Value, error) {
	return NewDecoder(strings.NewReader(s)).Read()
}

// SerializeCommand encodes a client request in its canonical wire form: an
// array of bulk strings with the command name first
func SerializeCommand(cmd string, args ...Value) ([]byte, error) {
	elements := make([]Value, 1+len(args))

	elements[0] = MakeBulkString(cmd)

	copy(elements[1:], args)

	return Marshal(MakeArray(elements))
}
