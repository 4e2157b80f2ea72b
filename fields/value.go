package fields

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Value is anything the codec can turn into a field element. The set of
// implementations is closed: values are built with the constructors below,
// or are an Element or Fr already.
type Value interface {
	isValue()
}

type (
	bytesValue   []byte
	boolValue    bool
	uint64Value  uint64
	bigValue     struct{ n *big.Int }
	wordValue    struct{ n *uint256.Int }
	addressValue common.Address
)

func (bytesValue) isValue()   {}
func (boolValue) isValue()    {}
func (uint64Value) isValue()  {}
func (bigValue) isValue()     {}
func (wordValue) isValue()    {}
func (addressValue) isValue() {}
func (Element) isValue()      {}
func (Fr) isValue()           {}

// Bytes wraps a big-endian magnitude. It must not be longer than the codec
// width.
func Bytes(b []byte) Value { return bytesValue(b) }

// Bool encodes as 0 or 1.
func Bool(b bool) Value { return boolValue(b) }

// Uint64 wraps a native unsigned integer.
func Uint64(n uint64) Value { return uint64Value(n) }

// BigUint wraps an arbitrary-precision integer. Negative and nil integers
// are rejected at encode time.
func BigUint(n *big.Int) Value { return bigValue{n: n} }

// Word wraps a 256-bit unsigned integer.
func Word(n *uint256.Int) Value { return wordValue{n: n} }

// EthAddress wraps a 20-byte L1 address.
func EthAddress(a common.Address) Value { return addressValue(a) }
