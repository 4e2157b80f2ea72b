package fields

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// FrBytes is the byte width of a BN254 scalar.
const FrBytes = fr.Bytes

// Fr is a BN254 scalar field element stored big-endian. Values built with
// the constructors in this file are always below the field modulus.
type Fr [FrBytes]byte

// ZeroFr is the additive identity.
var ZeroFr Fr

// Modulus returns a copy of the BN254 scalar field modulus.
func Modulus() *big.Int { return fr.Modulus() }

// NewFr converts n into a scalar. Unlike ReduceFr it does not reduce: n
// must lie in [0, q).
func NewFr(n *big.Int) (Fr, error) {
	if n == nil || n.Sign() < 0 {
		return ZeroFr, fmt.Errorf("%w: %v", ErrNotInField, n)
	}
	if n.Cmp(fr.Modulus()) >= 0 {
		return ZeroFr, fmt.Errorf("%w: %#x", ErrNotInField, n)
	}
	var f Fr
	n.FillBytes(f[:])
	return f, nil
}

// FrFromUint64 returns the scalar equal to n.
func FrFromUint64(n uint64) Fr {
	var f Fr
	binary.BigEndian.PutUint64(f[FrBytes-8:], n)
	return f
}

// FrFromBool returns one for true and zero for false.
func FrFromBool(b bool) Fr {
	if b {
		return FrFromUint64(1)
	}
	return ZeroFr
}

// FrFromBytes interprets b as a big-endian integer.
func FrFromBytes(b []byte) (Fr, error) {
	if len(b) > FrBytes {
		return ZeroFr, fmt.Errorf("%w: %d bytes", ErrEncodingOverflow, len(b))
	}
	return NewFr(new(big.Int).SetBytes(b))
}

// HexToFr parses a 0x-prefixed hex numeral.
func HexToFr(s string) (Fr, error) {
	n, err := hexutil.DecodeBig(trimHexZeros(s))
	if err != nil {
		return ZeroFr, fmt.Errorf("%w: %q: %v", ErrInvalidElement, s, err)
	}
	return NewFr(n)
}

// ReduceFr interprets b as a big-endian integer and reduces it modulo q.
// Hash outputs are mapped into the field this way.
func ReduceFr(b []byte) Fr {
	var e fr.Element
	e.SetBytes(b)
	return Fr(e.Bytes())
}

// Big returns f as an integer.
func (f Fr) Big() *big.Int { return new(big.Int).SetBytes(f[:]) }

// IsZero reports whether f is zero.
func (f Fr) IsZero() bool { return f == ZeroFr }

// Hex returns the 0x-prefixed, zero-padded hex form of f.
func (f Fr) Hex() string { return hexutil.Encode(f[:]) }

// String implements fmt.Stringer.
func (f Fr) String() string { return f.Hex() }

// trimHexZeros strips leading zero digits, which hexutil.DecodeBig rejects.
func trimHexZeros(s string) string {
	if !has0xPrefix(s) {
		return s
	}
	digits := s[2:]
	i := 0
	for i < len(digits)-1 && digits[i] == '0' {
		i++
	}
	return "0x" + digits[i:]
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
