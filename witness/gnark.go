package witness

import (
	"errors"
	"fmt"
	"math/big"

	gnarkwitness "github.com/consensys/gnark/backend/witness"

	"github.com/eth2030/acvmwitness/fields"
)

// ErrNoField is returned when Gnark is given no field modulus.
var ErrNoField = errors.New("witness: missing field modulus")

// Gnark copies m into a gnark witness over the scalar field with the given
// modulus, for backends that take a dense vector instead of a map. The
// indices must be contiguous; the lowest nbPublic of them become public
// inputs.
func (m Map) Gnark(field *big.Int, nbPublic int) (gnarkwitness.Witness, error) {
	if field == nil || field.Sign() <= 0 {
		return nil, ErrNoField
	}
	idx := m.Indices()
	if len(idx) == 0 {
		return nil, ErrEmptyWitness
	}
	if nbPublic < 0 || nbPublic > len(idx) {
		return nil, fmt.Errorf("witness: %d public of %d entries", nbPublic, len(idx))
	}
	values := make(chan any, len(idx))
	for i, index := range idx {
		if index != idx[0]+uint32(i) {
			return nil, fmt.Errorf("%w: %d", ErrMissingIndex, idx[0]+uint32(i))
		}
		n, err := m[index].Big()
		if err != nil {
			return nil, fmt.Errorf("witness: index %d: %w", index, err)
		}
		if n.Cmp(field) >= 0 {
			return nil, fmt.Errorf("witness: index %d: %w", index, fields.ErrNotInField)
		}
		values <- n
	}
	close(values)

	w, err := gnarkwitness.New(field)
	if err != nil {
		return nil, fmt.Errorf("witness: new gnark witness: %w", err)
	}
	if err := w.Fill(nbPublic, len(idx)-nbPublic, values); err != nil {
		return nil, fmt.Errorf("witness: fill gnark witness: %w", err)
	}
	return w, nil
}
