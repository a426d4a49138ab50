// Package der encodes and decodes ASN.1 DER tag-length-value structures,
// just enough of the standard to carry PKCS#1 key material: small
// single-byte tags, definite lengths in short or long form, and minimal
// two's-complement integers. Decoding preserves primitive content bytes
// verbatim, so any value that parses re-encodes byte-identically.
package der

import (
	"fmt"
	"math/big"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
)

// Universal tags used by the key codecs. Bit 0x20 marks constructed values.
const (
	TagInteger     = 0x02
	TagOctetString = 0x04
	TagNull        = 0x05
	TagSequence    = 0x30
)

// Node is one DER value: a primitive holding raw content bytes, or a
// constructed value holding child nodes. Exactly one of Value and Children
// is meaningful, selected by the constructed bit of Tag.
type Node struct {
	Tag      byte
	Value    []byte
	Children []Node
}

// Constructed reports whether the node holds children rather than bytes.
func (n Node) Constructed() bool {
	return n.Tag&0x20 != 0
}

// Integer builds an INTEGER node from a non-negative value in minimal
// big-endian two's-complement form, inserting a leading zero byte when the
// high bit would otherwise read as a sign. Negative values are not part of
// any format this package serves and panic.
func Integer(v *big.Int) Node {
	if v.Sign() < 0 {
		panic("der: negative integers are not supported")
	}
	if v.Sign() == 0 {
		return Node{Tag: TagInteger, Value: []byte{0x00}}
	}
	b := v.Bytes()
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return Node{Tag: TagInteger, Value: b}
}

// Sequence builds a constructed SEQUENCE node.
func Sequence(children ...Node) Node {
	return Node{Tag: TagSequence, Children: children}
}

// OctetString builds an OCTET STRING node.
func OctetString(b []byte) Node {
	return Node{Tag: TagOctetString, Value: b}
}

// Null builds a NULL node.
func Null() Node {
	return Node{Tag: TagNull}
}

// Int reads the node as a non-negative INTEGER. It rejects wrong tags,
// empty content, padded (non-minimal) encodings, and negative values.
func (n Node) Int() (*big.Int, error) {
	if n.Tag != TagInteger {
		return nil, fmt.Errorf("%w: expected INTEGER, found tag 0x%02x", jerrors.ErrMalformedDER, n.Tag)
	}
	if len(n.Value) == 0 {
		return nil, fmt.Errorf("%w: INTEGER with empty content", jerrors.ErrMalformedDER)
	}
	if n.Value[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: negative INTEGER", jerrors.ErrMalformedDER)
	}
	if len(n.Value) > 1 && n.Value[0] == 0x00 && n.Value[1]&0x80 == 0 {
		return nil, fmt.Errorf("%w: INTEGER not minimally encoded", jerrors.ErrMalformedDER)
	}
	return new(big.Int).SetBytes(n.Value), nil
}

// Marshal encodes the node and everything below it.
func Marshal(n Node) []byte {
	content := marshalContent(n)
	out := make([]byte, 0, 4+len(content))
	out = append(out, n.Tag)
	out = appendLength(out, len(content))
	return append(out, content...)
}

func marshalContent(n Node) []byte {
	if !n.Constructed() {
		return n.Value
	}
	var buf []byte
	for _, child := range n.Children {
		buf = append(buf, Marshal(child)...)
	}
	return buf
}

// appendLength writes a definite length: one byte below 0x80, otherwise the
// minimal count of big-endian bytes prefixed by 0x80|count.
func appendLength(out []byte, length int) []byte {
	if length < 0x80 {
		return append(out, byte(length))
	}
	var tmp [8]byte
	i := len(tmp)
	for v := uint64(length); v > 0; v >>= 8 {
		i--
		tmp[i] = byte(v)
	}
	out = append(out, 0x80|byte(len(tmp)-i))
	return append(out, tmp[i:]...)
}

// Unmarshal decodes exactly one DER value spanning the whole input.
// Anything else, including trailing bytes after a well-formed value, fails
// with ErrMalformedDER.
func Unmarshal(data []byte) (Node, error) {
	node, rest, err := parseNode(data)
	if err != nil {
		return Node{}, err
	}
	if len(rest) != 0 {
		return Node{}, fmt.Errorf("%w: %d trailing bytes after value", jerrors.ErrMalformedDER, len(rest))
	}
	return node, nil
}

func parseNode(data []byte) (Node, []byte, error) {
	if len(data) == 0 {
		return Node{}, nil, fmt.Errorf("%w: missing tag", jerrors.ErrMalformedDER)
	}
	tag := data[0]
	if tag&0x1f == 0x1f {
		return Node{}, nil, fmt.Errorf("%w: multi-byte tags not supported", jerrors.ErrMalformedDER)
	}

	length, rest, err := parseLength(data[1:])
	if err != nil {
		return Node{}, nil, err
	}
	if len(rest) < length {
		return Node{}, nil, fmt.Errorf("%w: content truncated, need %d bytes, have %d", jerrors.ErrMalformedDER, length, len(rest))
	}
	content, rest := rest[:length], rest[length:]

	if tag&0x20 == 0 {
		value := make([]byte, len(content))
		copy(value, content)
		return Node{Tag: tag, Value: value}, rest, nil
	}

	var children []Node
	for len(content) > 0 {
		var child Node
		child, content, err = parseNode(content)
		if err != nil {
			return Node{}, nil, err
		}
		children = append(children, child)
	}
	return Node{Tag: tag, Children: children}, rest, nil
}

func parseLength(data []byte) (int, []byte, error) {
	if len(data) == 0 {
		return 0, nil, fmt.Errorf("%w: missing length", jerrors.ErrMalformedDER)
	}
	first := data[0]
	if first < 0x80 {
		return int(first), data[1:], nil
	}
	if first == 0x80 {
		return 0, nil, fmt.Errorf("%w: indefinite length not allowed in DER", jerrors.ErrMalformedDER)
	}

	numBytes := int(first & 0x7f)
	if numBytes > 4 {
		return 0, nil, fmt.Errorf("%w: length field of %d bytes is too large", jerrors.ErrMalformedDER, numBytes)
	}
	if len(data) < 1+numBytes {
		return 0, nil, fmt.Errorf("%w: length field truncated", jerrors.ErrMalformedDER)
	}
	if data[1] == 0x00 {
		return 0, nil, fmt.Errorf("%w: length not minimally encoded", jerrors.ErrMalformedDER)
	}

	length := 0
	for i := 0; i < numBytes; i++ {
		length = length<<8 | int(data[1+i])
	}
	if length < 0x80 {
		return 0, nil, fmt.Errorf("%w: length not minimally encoded", jerrors.ErrMalformedDER)
	}
	return length, data[1+numBytes:], nil
}
