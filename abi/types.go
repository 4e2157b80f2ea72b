// Package abi defines the records passed between the simulator and the
// private and public circuits. Fixed-capacity sequences are arrays sized by
// the circuit constants, so a record's shape cannot vary with its contents.
package abi

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/eth2030/acvmwitness/fields"
)

// ErrArrayOverflow is returned by FillArray when the source does not fit.
var ErrArrayOverflow = errors.New("abi: sequence exceeds array capacity")

// AztecAddress is an L2 contract or account address. It is a field element.
type AztecAddress fields.Fr

// HexToAztecAddress parses a 0x-prefixed address.
func HexToAztecAddress(s string) (AztecAddress, error) {
	f, err := fields.HexToFr(s)
	if err != nil {
		return AztecAddress{}, fmt.Errorf("abi: aztec address: %w", err)
	}
	return AztecAddress(f), nil
}

// Fr returns the address as a scalar.
func (a AztecAddress) Fr() fields.Fr { return fields.Fr(a) }

// IsZero reports whether a is the zero address.
func (a AztecAddress) IsZero() bool { return fields.Fr(a).IsZero() }

// String implements fmt.Stringer.
func (a AztecAddress) String() string { return fields.Fr(a).Hex() }

// FunctionSelector identifies a contract function: the first four bytes of
// the keccak-256 hash of its signature.
type FunctionSelector [FunctionSelectorLength]byte

// SelectorFromSignature computes the selector of a signature such as
// "transfer(field,field)".
func SelectorFromSignature(sig string) FunctionSelector {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	var s FunctionSelector
	copy(s[:], h.Sum(nil))
	return s
}

// Bytes returns the raw selector bytes.
func (s FunctionSelector) Bytes() []byte { return s[:] }

// Fr returns the selector as a scalar.
func (s FunctionSelector) Fr() fields.Fr {
	f, _ := fields.FrFromBytes(s[:]) // four bytes always fit
	return f
}

// IsZero reports whether s is the empty selector.
func (s FunctionSelector) IsZero() bool { return s == FunctionSelector{} }

// FunctionData describes the function being called.
type FunctionData struct {
	Selector      FunctionSelector
	IsInternal    bool
	IsPrivate     bool
	IsConstructor bool
}

// CallContext is the caller-visible context of a call.
type CallContext struct {
	MsgSender              AztecAddress
	StorageContractAddress AztecAddress
	PortalContractAddress  common.Address
	FunctionSelector       FunctionSelector
	IsDelegateCall         bool
	IsStaticCall           bool
	IsContractDeployment   bool
}

// Point is an affine curve point.
type Point struct {
	X fields.Fr
	Y fields.Fr
}

// ContractDeploymentData carries the parameters of a contract deployment.
type ContractDeploymentData struct {
	DeployerPublicKey     Point
	ConstructorVkHash     fields.Fr
	FunctionTreeRoot      fields.Fr
	ContractAddressSalt   fields.Fr
	PortalContractAddress common.Address
}

// HistoricBlockData holds the tree roots of the block a transaction is
// simulated against.
type HistoricBlockData struct {
	PrivateDataTreeRoot    fields.Fr
	NullifierTreeRoot      fields.Fr
	ContractTreeRoot       fields.Fr
	L1ToL2MessagesTreeRoot fields.Fr
	BlocksTreeRoot         fields.Fr
	PublicDataTreeRoot     fields.Fr
	GlobalVariablesHash    fields.Fr
}

// GlobalVariables are the block-level globals visible to public functions.
type GlobalVariables struct {
	ChainID     fields.Fr
	Version     fields.Fr
	BlockNumber fields.Fr
	Timestamp   fields.Fr
}

// PrivateCircuitPublicInputs are the public inputs of a private function
// circuit.
type PrivateCircuitPublicInputs struct {
	CallContext CallContext
	ArgsHash    fields.Fr

	ReturnValues         [ReturnValuesLength]fields.Fr
	ReadRequests         [MaxReadRequestsPerCall]fields.Fr
	NewCommitments       [MaxNewCommitmentsPerCall]fields.Fr
	NewNullifiers        [MaxNewNullifiersPerCall]fields.Fr
	NullifiedCommitments [MaxNewNullifiersPerCall]fields.Fr
	PrivateCallStack     [MaxPrivateCallStackLengthPerCall]fields.Fr
	PublicCallStack      [MaxPublicCallStackLengthPerCall]fields.Fr
	NewL2ToL1Msgs        [MaxNewL2ToL1MsgsPerCall]fields.Fr
	EncryptedLogsHash    [NumFieldsPerSHA256]fields.Fr
	UnencryptedLogsHash  [NumFieldsPerSHA256]fields.Fr

	EncryptedLogPreimagesLength   fields.Fr
	UnencryptedLogPreimagesLength fields.Fr

	HistoricBlockData      HistoricBlockData
	ContractDeploymentData ContractDeploymentData

	ChainID fields.Fr
	Version fields.Fr
}

// PrivateCallStackItem is a private call together with its public inputs.
type PrivateCallStackItem struct {
	ContractAddress    AztecAddress
	FunctionData       FunctionData
	PublicInputs       PrivateCircuitPublicInputs
	IsExecutionRequest bool
}

// PublicCallRequest is a request, made from a private function, to run a
// public function later in the transaction.
type PublicCallRequest struct {
	ContractAddress AztecAddress
	FunctionData    FunctionData
	CallContext     CallContext
	Args            []fields.Fr
}

// FillArray copies src into the fixed-capacity dst and zeroes the unused
// tail. Producers use it to pad variable-length results before handing a
// record to a flattener.
func FillArray[T any](dst, src []T) error {
	if len(src) > len(dst) {
		return fmt.Errorf("%w: %d > %d", ErrArrayOverflow, len(src), len(dst))
	}
	n := copy(dst, src)
	var zero T
	for i := n; i < len(dst); i++ {
		dst[i] = zero
	}
	return nil
}
