package resp_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/eternalApril/respwire/resp"
)

func TestEncoder_Write(t *testing.T) {
	tests := []struct {
		name     string
		input    resp.Value
		expected string
	}{
		{
			name:     "Integer positive",
			input:    resp.MakeInteger(100),
			expected: ":100\r\n",
		},
		{
			name:     "Integer negative",
			input:    resp.MakeInteger(-42),
			expected: ":-42\r\n",
		},
		{
			name:     "Integer zero",
			input:    resp.MakeInteger(0),
			expected: ":0\r\n",
		},
		{
			name:     "Integer min",
			input:    resp.MakeInteger(-9223372036854775808),
			expected: ":-9223372036854775808\r\n",
		},
		{
			name:     "Simple String",
			input:    resp.MakeSimpleString("OK"),
			expected: "+OK\r\n",
		},
		{
			name:     "Simple String empty",
			input:    resp.MakeSimpleString(""),
			expected: "+\r\n",
		},
		{
			name:     "Error",
			input:    resp.MakeError("ERR unknown command 'foobar'"),
			expected: "-ERR unknown command 'foobar'\r\n",
		},
		{
			name:     "Bulk String",
			input:    resp.MakeBulkString("hello"),
			expected: "$5\r\nhello\r\n",
		},
		{
			name:     "Bulk String Empty",
			input:    resp.MakeBulkString(""),
			expected: "$0\r\n\r\n",
		},
		{
			name:     "Bulk String Null",
			input:    resp.MakeNilBulkString(),
			expected: "$-1\r\n",
		},
		{
			name:     "Bulk String binary payload",
			input:    resp.MakeBulkBytes([]byte("a\r\nb\x00c")),
			expected: "$7\r\na\r\nb\x00c\r\n",
		},
		{
			name: "Array of Strings",
			input: resp.MakeArray([]resp.Value{
				resp.MakeBulkString("fff"),
				resp.MakeBulkString("ttt"),
			}),
			expected: "*2\r\n$3\r\nfff\r\n$3\r\nttt\r\n",
		},
		{
			name:     "Array Null",
			input:    resp.MakeNilArray(),
			expected: "*-1\r\n",
		},
		{
			name:     "Array Empty",
			input:    resp.MakeArray(nil),
			expected: "*0\r\n",
		},
		{
			name: "Mixed Array",
			input: resp.MakeArray([]resp.Value{
				resp.MakeInteger(1),
				resp.MakeArray([]resp.Value{
					resp.MakeSimpleString("inner"),
				}),
			}),
			expected: "*2\r\n:1\r\n*1\r\n+inner\r\n",
		},
		{
			name: "Array with null elements",
			input: resp.MakeArray([]resp.Value{
				resp.MakeBulkString("foo"),
				resp.MakeNilBulkString(),
				resp.MakeBulkString("bar"),
			}),
			expected: "*3\r\n$3\r\nfoo\r\n$-1\r\n$3\r\nbar\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := resp.NewEncoder(&buf)

			err := enc.Write(tt.input)
			if err != nil {
				t.Fatalf("Write() failed: %v", err)
			}

			err = enc.Flush()
			if err != nil {
				t.Fatalf("Flush() failed: %v", err)
			}

			if buf.String() != tt.expected {
				t.Errorf("Write() got = %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

// TestEncoder_WorkedExample covers the protocol's own seven-element example
// down to the exact byte sequence.
func TestEncoder_WorkedExample(t *testing.T) {
	input := resp.MakeArray([]resp.Value{
		resp.MakeSimpleString("simple string"),
		resp.MakeError("error string"),
		resp.MakeInteger(42),
		resp.MakeBulkString("bulk string"),
		resp.MakeNilBulkString(),
		resp.MakeArray([]resp.Value{
			resp.MakeSimpleString("arrays of arrays!"),
			resp.MakeArray([]resp.Value{
				resp.MakeSimpleString("OK ENOUGH!"),
			}),
		}),
		resp.MakeNilArray(),
	})

	expected := "*7\r\n" +
		"+simple string\r\n" +
		"-error string\r\n" +
		":42\r\n" +
		"$11\r\nbulk string\r\n" +
		"$-1\r\n" +
		"*2\r\n+arrays of arrays!\r\n*1\r\n+OK ENOUGH!\r\n" +
		"*-1\r\n"

	got, err := resp.MarshalString(input)
	if err != nil {
		t.Fatalf("MarshalString() failed: %v", err)
	}

	if got != expected {
		t.Errorf("MarshalString() got = %q, want %q", got, expected)
	}
}

func TestEncoder_RejectsUnsafeText(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Value
	}{
		{"Simple String with CR", resp.MakeSimpleString("bad\rtext")},
		{"Simple String with LF", resp.MakeSimpleString("bad\ntext")},
		{"Error with CRLF", resp.MakeError("bad\r\ntext")},
		{"Nested in array", resp.MakeArray([]resp.Value{
			resp.MakeInteger(1),
			resp.MakeSimpleString("ok\nnot"),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resp.Marshal(tt.input)
			if !errors.Is(err, resp.ErrUnsafeText) {
				t.Errorf("Marshal() error = %v, want ErrUnsafeText", err)
			}
		})
	}
}

func TestEncoder_RejectsUnknownType(t *testing.T) {
	_, err := resp.Marshal(resp.Value{Type: '!'})
	if !errors.Is(err, resp.ErrUnknownType) {
		t.Errorf("Marshal() error = %v, want ErrUnknownType", err)
	}
}

func TestEncodeTo_ByteCount(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Value
		want  int
	}{
		{"Simple String", resp.MakeSimpleString("OK"), len("+OK\r\n")},
		{"Null Bulk String", resp.MakeNilBulkString(), len("$-1\r\n")},
		{"Bulk String", resp.MakeBulkString("hello"), len("$5\r\nhello\r\n")},
		{"Array", resp.MakeArray([]resp.Value{resp.MakeInteger(7)}), len("*1\r\n:7\r\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := resp.EncodeTo(&buf, tt.input)
			if err != nil {
				t.Fatalf("EncodeTo() failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("EncodeTo() n = %d, want %d", n, tt.want)
			}
			if buf.Len() != tt.want {
				t.Errorf("EncodeTo() wrote %d bytes, want %d", buf.Len(), tt.want)
			}
		})
	}
}

func TestEncoder_SinkFailure(t *testing.T) {
	errWriter := &errorWriter{}
	enc := resp.NewEncoder(errWriter)

	val := resp.MakeSimpleString("test")

	err := enc.Write(val)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	err = enc.Flush()
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Flush() error = %v, want io.ErrClosedPipe", err)
	}
}

type errorWriter struct{}

func (e *errorWriter) Write(_ []byte) (n int, err error) {
	return 0, io.ErrClosedPipe
}
