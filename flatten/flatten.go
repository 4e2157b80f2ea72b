// Package flatten turns circuit records into the ordered field elements the
// ACVM expects. The order of every layout is fixed by the circuit
// definition; it never depends on the values being flattened.
package flatten

import (
	"errors"
	"fmt"

	"github.com/eth2030/acvmwitness/abi"
	"github.com/eth2030/acvmwitness/fields"
)

// ErrNilRecord is returned when a flattener is handed a nil record.
var ErrNilRecord = errors.New("flatten: nil record")

// Layout lengths, in field elements.
const (
	FunctionDataLength           = 4
	CallContextLength            = 7
	ContractDeploymentDataLength = 6
	HistoricBlockDataLength      = 7
	GlobalVariablesLength        = 4

	PublicInputsLength = CallContextLength + 1 +
		abi.ReturnValuesLength +
		abi.MaxReadRequestsPerCall +
		abi.MaxNewCommitmentsPerCall +
		abi.MaxNewNullifiersPerCall +
		abi.MaxNewNullifiersPerCall +
		abi.MaxPrivateCallStackLengthPerCall +
		abi.MaxPublicCallStackLengthPerCall +
		abi.MaxNewL2ToL1MsgsPerCall +
		2*abi.NumFieldsPerSHA256 +
		2 +
		HistoricBlockDataLength +
		ContractDeploymentDataLength +
		2

	PrivateCallStackItemLength = 1 + FunctionDataLength + PublicInputsLength + 1
)

// Flattener flattens records with a fixed codec. It is stateless and safe
// for concurrent use.
type Flattener struct {
	codec *fields.Codec
}

// New returns a flattener encoding with codec. A nil codec selects
// fields.Default.
func New(codec *fields.Codec) *Flattener {
	if codec == nil {
		codec = fields.Default()
	}
	return &Flattener{codec: codec}
}

// Codec returns the codec used by f. A nil Flattener uses fields.Default,
// so it behaves like New(nil).
func (f *Flattener) Codec() *fields.Codec {
	if f == nil || f.codec == nil {
		return fields.Default()
	}
	return f.codec
}

// FunctionData flattens a function descriptor.
func (f *Flattener) FunctionData(d *abi.FunctionData) ([]fields.Element, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: function data", ErrNilRecord)
	}
	w := f.NewWriter("function data", FunctionDataLength)
	w.FunctionData(d)
	return w.Finish()
}

// CallContext flattens a call context.
func (f *Flattener) CallContext(c *abi.CallContext) ([]fields.Element, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: call context", ErrNilRecord)
	}
	w := f.NewWriter("call context", CallContextLength)
	w.CallContext(c)
	return w.Finish()
}

// ContractDeploymentData flattens contract deployment parameters.
func (f *Flattener) ContractDeploymentData(d *abi.ContractDeploymentData) ([]fields.Element, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: contract deployment data", ErrNilRecord)
	}
	w := f.NewWriter("contract deployment data", ContractDeploymentDataLength)
	w.contractDeploymentData(d)
	return w.Finish()
}

// HistoricBlockData flattens historic tree roots.
func (f *Flattener) HistoricBlockData(d *abi.HistoricBlockData) ([]fields.Element, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: historic block data", ErrNilRecord)
	}
	w := f.NewWriter("historic block data", HistoricBlockDataLength)
	w.historicBlockData(d)
	return w.Finish()
}

// GlobalVariables flattens block globals.
func (f *Flattener) GlobalVariables(g *abi.GlobalVariables) ([]fields.Element, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: global variables", ErrNilRecord)
	}
	w := f.NewWriter("global variables", GlobalVariablesLength)
	w.Put("chain id", g.ChainID)
	w.Put("version", g.Version)
	w.Put("block number", g.BlockNumber)
	w.Put("timestamp", g.Timestamp)
	return w.Finish()
}

// PublicInputs flattens the public inputs of a private circuit. The result
// always has PublicInputsLength elements.
func (f *Flattener) PublicInputs(pi *abi.PrivateCircuitPublicInputs) ([]fields.Element, error) {
	if pi == nil {
		return nil, fmt.Errorf("%w: public inputs", ErrNilRecord)
	}
	w := f.NewWriter("public inputs", PublicInputsLength)
	w.publicInputs(pi)
	return w.Finish()
}

// PrivateCallStackItem flattens a private call stack item. The result always
// has PrivateCallStackItemLength elements.
func (f *Flattener) PrivateCallStackItem(item *abi.PrivateCallStackItem) ([]fields.Element, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: private call stack item", ErrNilRecord)
	}
	w := f.NewWriter("private call stack item", PrivateCallStackItemLength)
	w.Put("contract address", item.ContractAddress.Fr())
	w.FunctionData(&item.FunctionData)
	w.publicInputs(&item.PublicInputs)
	w.Put("is execution request", fields.Bool(item.IsExecutionRequest))
	return w.Finish()
}
