package oracle

import (
	"context"
	"fmt"

	"github.com/eth2030/acvmwitness/abi"
	"github.com/eth2030/acvmwitness/fields"
	"github.com/eth2030/acvmwitness/flatten"
)

// Oracle names as declared by the contract libraries.
const (
	GetL1ToL2MessageOracle          = "getL1ToL2Message"
	EnqueuePublicFunctionCallOracle = "enqueuePublicFunctionCall"
)

// MessageLookup resolves an L1-to-L2 message by its key and returns the
// membership proof together with the message tree root it was taken from.
type MessageLookup func(ctx context.Context, key fields.Fr) (*MessageLoadOracleInputs, fields.Fr, error)

// MessageLoadHandler serves getL1ToL2Message. Its single argument is the
// message key.
func MessageLoadHandler(f *flatten.Flattener, lookup MessageLookup) Handler {
	return func(ctx context.Context, args [][]fields.Element) ([]fields.Element, error) {
		key, err := scalarArg(args, 0, "message key")
		if err != nil {
			return nil, err
		}
		in, root, err := lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		return EncodeMessageLoadOracleInputs(f, in, root)
	}
}

// RequestBuilder turns the arguments of an enqueue oracle call into the
// public call request to encode, typically by loading the packed arguments
// the call refers to.
type RequestBuilder func(ctx context.Context, args [][]fields.Element) (*abi.PublicCallRequest, error)

// EnqueuePublicCallHandler serves enqueuePublicFunctionCall.
func EnqueuePublicCallHandler(f *flatten.Flattener, hasher ArgsHasher, build RequestBuilder) Handler {
	return func(ctx context.Context, args [][]fields.Element) ([]fields.Element, error) {
		req, err := build(ctx, args)
		if err != nil {
			return nil, err
		}
		return EncodeEnqueuedPublicCallRequest(ctx, f, hasher, req)
	}
}

// scalarArg reads the single-element parameter at position i.
func scalarArg(args [][]fields.Element, i int, name string) (fields.Fr, error) {
	if i >= len(args) || len(args[i]) != 1 {
		return fields.ZeroFr, fmt.Errorf("%w: %s", ErrFieldCount, name)
	}
	f, err := args[i][0].Fr()
	if err != nil {
		return fields.ZeroFr, fmt.Errorf("oracle: %s: %w", name, err)
	}
	return f, nil
}
