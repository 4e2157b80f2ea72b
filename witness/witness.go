// Package witness places field elements into the sparse, index-addressed
// witness map handed to the ACVM.
package witness

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/eth2030/acvmwitness/fields"
)

// Witness map errors.
var (
	ErrIndexOverflow  = errors.New("witness: index overflows uint32")
	ErrMissingIndex   = errors.New("witness: missing index")
	ErrIndexOverwrite = errors.New("witness: index already assigned")
	ErrEmptyWitness   = errors.New("witness: empty witness")
)

// Map assigns field elements to witness indices. Entries are never
// overwritten once assembled.
type Map map[uint32]fields.Element

// Assemble encodes values and places them at start, start+1, ... in order.
// The map is returned only when every value encoded; on failure the caller
// gets no entries at all. A nil codec selects fields.Default.
func Assemble(codec *fields.Codec, start uint32, values []fields.Value) (Map, error) {
	if codec == nil {
		codec = fields.Default()
	}
	if err := checkWindow(start, len(values)); err != nil {
		return nil, err
	}
	m := make(Map, len(values))
	for i, v := range values {
		idx := start + uint32(i)
		e, err := codec.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("witness: index %d: %w", idx, err)
		}
		m[idx] = e
	}
	return m, nil
}

// AssembleElements is Assemble for sequences produced by the flatteners.
func AssembleElements(codec *fields.Codec, start uint32, elems []fields.Element) (Map, error) {
	values := make([]fields.Value, len(elems))
	for i, e := range elems {
		values[i] = e
	}
	return Assemble(codec, start, values)
}

func checkWindow(start uint32, n int) error {
	if uint64(start)+uint64(n) > math.MaxUint32+1 {
		return fmt.Errorf("%w: start %d, %d values", ErrIndexOverflow, start, n)
	}
	return nil
}

// Indices returns the assigned indices in ascending order.
func (m Map) Indices() []uint32 {
	idx := make([]uint32, 0, len(m))
	for i := range m {
		idx = append(idx, i)
	}
	slices.Sort(idx)
	return idx
}

// Window reads n consecutive entries starting at start, such as the return
// values of a solved circuit.
func (m Map) Window(start uint32, n int) ([]fields.Element, error) {
	if err := checkWindow(start, n); err != nil {
		return nil, err
	}
	out := make([]fields.Element, n)
	for i := range out {
		idx := start + uint32(i)
		e, ok := m[idx]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrMissingIndex, idx)
		}
		out[i] = e
	}
	return out, nil
}

// Merge adds the entries of other to m. It fails without modifying m if any
// index is already assigned.
func (m Map) Merge(other Map) error {
	for i := range other {
		if _, ok := m[i]; ok {
			return fmt.Errorf("%w: %d", ErrIndexOverwrite, i)
		}
	}
	for i, e := range other {
		m[i] = e
	}
	return nil
}
