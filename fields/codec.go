// Package fields converts values into the fixed-width field elements read
// by the ACVM and back.
//
// Encoding never reduces modulo the field characteristic: a value has to fit
// in the codec width as it is, otherwise encoding fails with
// ErrEncodingOverflow. Byte sequences are big-endian magnitudes, so a short
// sequence is a small number, not a truncated one. Fixed-width integers
// such as addresses and scalars are encoded by value, so they fit any codec
// wide enough for the number they hold.
package fields

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Codec encodes values into elements of a fixed byte width. A Codec holds
// no mutable state and is safe for concurrent use.
type Codec struct {
	width int
}

var defaultCodec = &Codec{width: FrBytes}

// Default returns the codec for the BN254 scalar field.
func Default() *Codec { return defaultCodec }

// NewCodec returns a codec producing elements of width bytes.
func NewCodec(width int) (*Codec, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return &Codec{width: width}, nil
}

// Width returns the element byte width.
func (c *Codec) Width() int { return c.width }

// Zero returns the all-zero element.
func (c *Codec) Zero() Element {
	return Element(hexutil.Encode(make([]byte, c.width)))
}

// Encode converts v into its canonical element.
func (c *Codec) Encode(v Value) (Element, error) {
	switch v := v.(type) {
	case bytesValue:
		return c.fromBytes(v)
	case boolValue:
		if v {
			return c.fromBytes([]byte{1})
		}
		return c.fromBytes(nil)
	case uint64Value:
		return c.fromBytes(new(big.Int).SetUint64(uint64(v)).Bytes())
	case bigValue:
		if v.n == nil {
			return "", fmt.Errorf("%w: nil integer", ErrUnsupportedValueType)
		}
		if v.n.Sign() < 0 {
			return "", fmt.Errorf("%w: negative integer %s", ErrUnsupportedValueType, v.n)
		}
		return c.fromBytes(v.n.Bytes())
	case wordValue:
		if v.n == nil {
			return "", fmt.Errorf("%w: nil word", ErrUnsupportedValueType)
		}
		return c.fromBytes(v.n.Bytes())
	case addressValue:
		return c.fromBytes(bytes.TrimLeft(v[:], "\x00"))
	case Fr:
		return c.fromBytes(bytes.TrimLeft(v[:], "\x00"))
	case Element:
		if b, err := v.Bytes(); err == nil && len(b) == c.width && string(v) == hexutil.Encode(b) {
			return v, nil
		}
		return c.Parse(string(v))
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValueType, v)
	}
}

// EncodeAll encodes values in order. The first failure aborts the whole
// sequence.
func (c *Codec) EncodeAll(values []Value) ([]Element, error) {
	out := make([]Element, len(values))
	for i, v := range values {
		e, err := c.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

// Parse reads a 0x-prefixed hex numeral returned by the ACVM and
// canonicalizes it to the codec width. Leading zeros are ignored; the
// numeric value must fit in the width.
func (c *Codec) Parse(s string) (Element, error) {
	if !has0xPrefix(s) || len(s) == 2 {
		return "", fmt.Errorf("%w: %q: want 0x-prefixed hex", ErrInvalidElement, s)
	}
	digits := strings.TrimLeft(s[2:], "0")
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hexutil.Decode("0x" + digits)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidElement, s, err)
	}
	return c.fromBytes(b)
}

// fromBytes right-aligns b into a zeroed buffer of the codec width.
func (c *Codec) fromBytes(b []byte) (Element, error) {
	if len(b) > c.width {
		return "", fmt.Errorf("%w: %d bytes, width %d", ErrEncodingOverflow, len(b), c.width)
	}
	buf := make([]byte, c.width)
	copy(buf[c.width-len(b):], b)
	return Element(hexutil.Encode(buf)), nil
}
