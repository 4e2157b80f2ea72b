package oracle

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/eth2030/acvmwitness/abi"
	"github.com/eth2030/acvmwitness/fields"
	"github.com/eth2030/acvmwitness/flatten"
)

// ErrNoArgsHasher is returned when no argument hasher is supplied.
var ErrNoArgsHasher = errors.New("oracle: no args hasher")

// EnqueuedPublicCallRequestLength is the length of an encoded enqueued
// public call: contract address, function data, call context, args hash.
const EnqueuedPublicCallRequestLength = 1 + flatten.FunctionDataLength + flatten.CallContextLength + 1

// ArgsHasher computes the argument hash of a public call request. The hash
// function lives outside this module; implementations may block, and must
// return promptly once ctx is done.
type ArgsHasher interface {
	ArgsHash(ctx context.Context, req *abi.PublicCallRequest) (fields.Fr, error)
}

// ArgsHasherFunc adapts a function to ArgsHasher.
type ArgsHasherFunc func(ctx context.Context, req *abi.PublicCallRequest) (fields.Fr, error)

// ArgsHash implements ArgsHasher.
func (fn ArgsHasherFunc) ArgsHash(ctx context.Context, req *abi.PublicCallRequest) (fields.Fr, error) {
	return fn(ctx, req)
}

// EncodeEnqueuedPublicCallRequest flattens a request to run a public
// function, in the form returned to the circuit's enqueue oracle. Only the
// request fields are encoded; a request carries no execution result.
//
// A request may carry at most abi.ArgsLength arguments. The fixed fields
// are encoded while the argument hash is resolved. If
// hashing fails or ctx is cancelled first, no fields are returned.
func EncodeEnqueuedPublicCallRequest(ctx context.Context, f *flatten.Flattener, hasher ArgsHasher, req *abi.PublicCallRequest) ([]fields.Element, error) {
	if req == nil {
		return nil, fmt.Errorf("oracle: %w: public call request", flatten.ErrNilRecord)
	}
	if hasher == nil {
		return nil, ErrNoArgsHasher
	}
	if len(req.Args) > abi.ArgsLength {
		return nil, fmt.Errorf("oracle: %w: %d args, capacity %d", abi.ErrArrayOverflow, len(req.Args), abi.ArgsLength)
	}

	var (
		head     []fields.Element
		argsHash fields.Fr
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := resolveArgsHash(gctx, hasher, req)
		if err != nil {
			return err
		}
		argsHash = h
		return nil
	})
	g.Go(func() error {
		w := f.NewWriter("enqueued public call request", EnqueuedPublicCallRequestLength)
		w.Put("contract address", req.ContractAddress.Fr())
		w.FunctionData(&req.FunctionData)
		w.CallContext(&req.CallContext)
		var err error
		head, err = w.Finish()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("oracle: enqueue public call: %w", err)
	}

	tail, err := f.Codec().Encode(argsHash)
	if err != nil {
		return nil, fmt.Errorf("oracle: enqueue public call: args hash: %w", err)
	}
	return append(head, tail), nil
}

// resolveArgsHash waits for the hasher or for ctx, whichever comes first.
func resolveArgsHash(ctx context.Context, hasher ArgsHasher, req *abi.PublicCallRequest) (fields.Fr, error) {
	type result struct {
		hash fields.Fr
		err  error
	}
	done := make(chan result, 1)
	go func() {
		h, err := hasher.ArgsHash(ctx, req)
		done <- result{h, err}
	}()
	select {
	case <-ctx.Done():
		return fields.ZeroFr, fmt.Errorf("args hash: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return fields.ZeroFr, fmt.Errorf("args hash: %w", r.err)
		}
		return r.hash, nil
	}
}

// KeccakArgsHasher hashes the 32-byte encodings of the arguments with
// keccak-256 and reduces the digest into the scalar field. An empty
// argument list hashes to zero. It is a reference hasher for tests and
// local tooling, not the hash the production circuits use.
type KeccakArgsHasher struct{}

// ArgsHash implements ArgsHasher.
func (KeccakArgsHasher) ArgsHash(ctx context.Context, req *abi.PublicCallRequest) (fields.Fr, error) {
	if err := ctx.Err(); err != nil {
		return fields.ZeroFr, err
	}
	if len(req.Args) == 0 {
		return fields.ZeroFr, nil
	}
	h := sha3.NewLegacyKeccak256()
	for _, a := range req.Args {
		h.Write(a[:])
	}
	return fields.ReduceFr(h.Sum(nil)), nil
}
