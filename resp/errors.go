package resp

import "errors"

// Decode and encode failure sentinels. I/O errors from the underlying
// source or sink are passed through untouched; everything the codec itself
// detects wraps one of these and can be matched with errors.Is.
//
// A truncated source surfaces as io.ErrUnexpectedEOF, except when the
// stream ends cleanly before a type tag, which is plain io.EOF.
var (
	// ErrInvalidEnding marks a line that does not terminate with CRLF, or a
	// length-prefixed body that is not immediately followed by CRLF.
	ErrInvalidEnding = errors.New("invalid line ending")

	// ErrUnknownType marks a leading byte that is none of + - : $ *.
	ErrUnknownType = errors.New("unknown type prefix")

	// ErrInvalidLength marks a bulk string or array header that is not a
	// number, or a negative number other than the -1 null marker.
	ErrInvalidLength = errors.New("invalid length header")

	// ErrInvalidInteger marks an integer line that is empty or contains
	// non-digit characters.
	ErrInvalidInteger = errors.New("invalid integer")

	// ErrIntegerRange marks an integer or length whose magnitude does not
	// fit in a signed 64-bit value.
	ErrIntegerRange = errors.New("integer out of 64-bit range")

	// ErrInvalidText marks simple string or error content that is not
	// valid UTF-8.
	ErrInvalidText = errors.New("invalid utf-8 in simple string")

	// ErrUnsafeText is returned by the encoder when a simple string or
	// error payload contains CR or LF. The protocol has no escaping for
	// these kinds, so such a value cannot be framed correctly.
	ErrUnsafeText = errors.New("simple string contains CR or LF")
)
