package fields

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Element is a field element in the text form the ACVM parses directly:
// "0x" followed by the big-endian bytes in lowercase hex, left-padded with
// zeros to the codec width. Elements produced by a Codec are always in
// this form.
type Element string

// String implements fmt.Stringer.
func (e Element) String() string { return string(e) }

// Bytes returns the big-endian bytes of e.
func (e Element) Bytes() ([]byte, error) {
	b, err := hexutil.Decode(string(e))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidElement, string(e), err)
	}
	return b, nil
}

// Width returns the byte width of e.
func (e Element) Width() (int, error) {
	b, err := e.Bytes()
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// Big returns the numeric value of e.
func (e Element) Big() (*big.Int, error) {
	b, err := e.Bytes()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// Uint64 returns the value of e if it fits in 64 bits.
func (e Element) Uint64() (uint64, error) {
	n, err := e.Big()
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit in uint64", ErrValueOutOfRange, e)
	}
	return n.Uint64(), nil
}

// Bool returns the boolean held by e. Only zero and one are accepted.
func (e Element) Bool() (bool, error) {
	n, err := e.Uint64()
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%w: %s is not a boolean", ErrValueOutOfRange, e)
}

// Word returns the value of e as a 256-bit integer.
func (e Element) Word() (*uint256.Int, error) {
	n, err := e.Big()
	if err != nil {
		return nil, err
	}
	w, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fmt.Errorf("%w: %s exceeds 256 bits", ErrValueOutOfRange, e)
	}
	return w, nil
}

// Fr returns the scalar held by e.
func (e Element) Fr() (Fr, error) {
	n, err := e.Big()
	if err != nil {
		return ZeroFr, err
	}
	return NewFr(n)
}

// EthAddress returns the L1 address held in the low 20 bytes of e. The
// remaining high bytes must be zero.
func (e Element) EthAddress() (common.Address, error) {
	n, err := e.Big()
	if err != nil {
		return common.Address{}, err
	}
	if n.BitLen() > common.AddressLength*8 {
		return common.Address{}, fmt.Errorf("%w: %s is not an address", ErrValueOutOfRange, e)
	}
	return common.BigToAddress(n), nil
}
