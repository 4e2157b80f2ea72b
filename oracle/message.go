// Package oracle encodes and decodes the records exchanged with the ACVM
// through oracle calls, the callbacks a circuit issues mid-execution to
// obtain data computed outside it. These records are supplied per call and
// never become part of the main witness.
package oracle

import (
	"errors"
	"fmt"

	"github.com/eth2030/acvmwitness/abi"
	"github.com/eth2030/acvmwitness/fields"
	"github.com/eth2030/acvmwitness/flatten"
)

// ErrFieldCount is returned when an oracle payload has the wrong length.
var ErrFieldCount = errors.New("oracle: unexpected field count")

// MessageLoadOracleInputsLength is the length of an encoded L1-to-L2
// message load: message, leaf index, sibling path and tree root.
const MessageLoadOracleInputsLength = abi.L1ToL2MessageLength + 1 + abi.L1ToL2MsgTreeHeight + 1

// MessageLoadOracleInputs is an L1-to-L2 message together with its
// membership proof in the message tree.
type MessageLoadOracleInputs struct {
	Message     [abi.L1ToL2MessageLength]fields.Fr
	Index       uint64
	SiblingPath [abi.L1ToL2MsgTreeHeight]fields.Fr
}

// EncodeMessageLoadOracleInputs flattens a message load result followed by
// the root of the tree it was proven against.
func EncodeMessageLoadOracleInputs(f *flatten.Flattener, in *MessageLoadOracleInputs, root fields.Fr) ([]fields.Element, error) {
	if in == nil {
		return nil, fmt.Errorf("oracle: %w: message load inputs", flatten.ErrNilRecord)
	}
	w := f.NewWriter("message load oracle inputs", MessageLoadOracleInputsLength)
	w.PutFrs("message", in.Message[:])
	w.Put("index", fields.Uint64(in.Index))
	w.PutFrs("sibling path", in.SiblingPath[:])
	w.Put("l1 to l2 messages tree root", root)
	return w.Finish()
}

// DecodeMessageLoadOracleInputs reverses EncodeMessageLoadOracleInputs.
func DecodeMessageLoadOracleInputs(elems []fields.Element) (*MessageLoadOracleInputs, fields.Fr, error) {
	if len(elems) != MessageLoadOracleInputsLength {
		return nil, fields.ZeroFr, fmt.Errorf("%w: message load: got %d, want %d",
			ErrFieldCount, len(elems), MessageLoadOracleInputsLength)
	}
	out := new(MessageLoadOracleInputs)
	pos := 0
	for i := range out.Message {
		f, err := elems[pos].Fr()
		if err != nil {
			return nil, fields.ZeroFr, fmt.Errorf("oracle: message[%d]: %w", i, err)
		}
		out.Message[i] = f
		pos++
	}
	index, err := elems[pos].Uint64()
	if err != nil {
		return nil, fields.ZeroFr, fmt.Errorf("oracle: index: %w", err)
	}
	out.Index = index
	pos++
	for i := range out.SiblingPath {
		f, err := elems[pos].Fr()
		if err != nil {
			return nil, fields.ZeroFr, fmt.Errorf("oracle: sibling path[%d]: %w", i, err)
		}
		out.SiblingPath[i] = f
		pos++
	}
	root, err := elems[pos].Fr()
	if err != nil {
		return nil, fields.ZeroFr, fmt.Errorf("oracle: tree root: %w", err)
	}
	return out, root, nil
}
