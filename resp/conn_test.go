package resp_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/eternalApril/respwire/resp"
)

type fakeConn struct {
	in     *bytes.Reader
	out    bytes.Buffer
	closed bool
}

func (c *fakeConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }
func (c *fakeConn) Close() error                { c.closed = true; return nil }

func TestConn_ReadWrite(t *testing.T) {
	input := "*2\r\n$4\r\nECHO\r\n$5\r\nhello\r\n+extra\r\n"
	fc := &fakeConn{in: bytes.NewReader([]byte(input))}

	conn := resp.NewConn(fc)

	request, err := conn.Read()
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	want := resp.MakeArray([]resp.Value{
		resp.MakeBulkString("ECHO"),
		resp.MakeBulkString("hello"),
	})
	if !request.Equal(want) {
		t.Errorf("Read() got = %+v, want %+v", request, want)
	}

	// The trailing value must still be waiting in the connection's buffer.
	if n := conn.Buffered(); n != len("+extra\r\n") {
		t.Errorf("Buffered() = %d, want %d", n, len("+extra\r\n"))
	}

	if err := conn.Write(resp.MakeBulkString("hello")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	// Output stays buffered until an explicit flush.
	if fc.out.Len() != 0 {
		t.Errorf("sink received %d bytes before Flush()", fc.out.Len())
	}

	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if got := fc.out.String(); got != "$5\r\nhello\r\n" {
		t.Errorf("Flush() wrote %q, want %q", got, "$5\r\nhello\r\n")
	}

	extra, err := conn.Read()
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if !extra.Equal(resp.MakeSimpleString("extra")) {
		t.Errorf("Read() got = %+v, want +extra", extra)
	}

	if _, err := conn.Read(); err != io.EOF {
		t.Errorf("Read() at end of stream error = %v, want io.EOF", err)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if !fc.closed {
		t.Error("Close() did not close the underlying stream")
	}
}
