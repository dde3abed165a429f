package resp

// Wire type tags. The first byte of every encoded value identifies its kind.
const (
	TypeSimpleString = '+'
	TypeError        = '-'
	TypeInteger      = ':'
	TypeBulkString   = '$'
	TypeArray        = '*'
)

// Value holds exactly one RESP value of any of the five protocol kinds.
// Which payload field is meaningful depends on Type; the others stay zero.
//
// A Value is treated as immutable after construction: the Decoder produces
// whole values and the Encoder only reads them. Array elements are owned
// exclusively by their parent, so the structure is always a tree.
type Value struct {
	String  []byte  // payload of SimpleString, Error and BulkString
	Array   []Value // elements of Array
	Integer int64   // payload of Integer
	Type    byte    // one of the Type* tag constants
	IsNull  bool    // null BulkString or null Array ($-1 / *-1 on the wire)
}
