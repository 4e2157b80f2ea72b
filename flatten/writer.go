package flatten

import (
	"fmt"

	"github.com/eth2030/acvmwitness/abi"
	"github.com/eth2030/acvmwitness/fields"
)

// Writer appends encoded elements in layout order. After the first failure
// it ignores further writes, so layouts read as straight-line code. Other
// encoders in this module use it to compose the same layouts.
type Writer struct {
	codec  *fields.Codec
	record string
	out    []fields.Element
	err    error
}

// NewWriter starts a layout for record with room for size elements.
func (f *Flattener) NewWriter(record string, size int) *Writer {
	return &Writer{
		codec:  f.Codec(),
		record: record,
		out:    make([]fields.Element, 0, size),
	}
}

// Put appends a single value.
func (w *Writer) Put(name string, v fields.Value) {
	if w.err != nil {
		return
	}
	e, err := w.codec.Encode(v)
	if err != nil {
		w.err = fmt.Errorf("%s: %w", name, err)
		return
	}
	w.out = append(w.out, e)
}

// PutFrs appends a fixed-length sequence of scalars in index order.
func (w *Writer) PutFrs(name string, frs []fields.Fr) {
	for i, f := range frs {
		if w.err != nil {
			return
		}
		e, err := w.codec.Encode(f)
		if err != nil {
			w.err = fmt.Errorf("%s[%d]: %w", name, i, err)
			return
		}
		w.out = append(w.out, e)
	}
}

// Finish returns the elements, or the first error with its field path.
func (w *Writer) Finish() ([]fields.Element, error) {
	if w.err != nil {
		return nil, fmt.Errorf("flatten: %s: %w", w.record, w.err)
	}
	return w.out, nil
}

// FunctionData appends a function descriptor.
func (w *Writer) FunctionData(d *abi.FunctionData) {
	w.Put("function data: selector", fields.Bytes(d.Selector.Bytes()))
	w.Put("function data: is internal", fields.Bool(d.IsInternal))
	w.Put("function data: is private", fields.Bool(d.IsPrivate))
	w.Put("function data: is constructor", fields.Bool(d.IsConstructor))
}

// CallContext appends a call context.
func (w *Writer) CallContext(c *abi.CallContext) {
	w.Put("call context: msg sender", c.MsgSender.Fr())
	w.Put("call context: storage contract address", c.StorageContractAddress.Fr())
	w.Put("call context: portal contract address", fields.EthAddress(c.PortalContractAddress))
	w.Put("call context: function selector", c.FunctionSelector.Fr())
	w.Put("call context: is delegate call", fields.Bool(c.IsDelegateCall))
	w.Put("call context: is static call", fields.Bool(c.IsStaticCall))
	w.Put("call context: is contract deployment", fields.Bool(c.IsContractDeployment))
}

func (w *Writer) contractDeploymentData(d *abi.ContractDeploymentData) {
	w.Put("contract deployment data: deployer public key x", d.DeployerPublicKey.X)
	w.Put("contract deployment data: deployer public key y", d.DeployerPublicKey.Y)
	w.Put("contract deployment data: constructor vk hash", d.ConstructorVkHash)
	w.Put("contract deployment data: function tree root", d.FunctionTreeRoot)
	w.Put("contract deployment data: contract address salt", d.ContractAddressSalt)
	w.Put("contract deployment data: portal contract address", fields.EthAddress(d.PortalContractAddress))
}

func (w *Writer) historicBlockData(d *abi.HistoricBlockData) {
	w.Put("historic block data: private data tree root", d.PrivateDataTreeRoot)
	w.Put("historic block data: nullifier tree root", d.NullifierTreeRoot)
	w.Put("historic block data: contract tree root", d.ContractTreeRoot)
	w.Put("historic block data: l1 to l2 messages tree root", d.L1ToL2MessagesTreeRoot)
	w.Put("historic block data: blocks tree root", d.BlocksTreeRoot)
	w.Put("historic block data: public data tree root", d.PublicDataTreeRoot)
	w.Put("historic block data: global variables hash", d.GlobalVariablesHash)
}

func (w *Writer) publicInputs(pi *abi.PrivateCircuitPublicInputs) {
	w.CallContext(&pi.CallContext)
	w.Put("args hash", pi.ArgsHash)

	w.PutFrs("return values", pi.ReturnValues[:])
	w.PutFrs("read requests", pi.ReadRequests[:])
	w.PutFrs("new commitments", pi.NewCommitments[:])
	w.PutFrs("new nullifiers", pi.NewNullifiers[:])
	w.PutFrs("nullified commitments", pi.NullifiedCommitments[:])
	w.PutFrs("private call stack", pi.PrivateCallStack[:])
	w.PutFrs("public call stack", pi.PublicCallStack[:])
	w.PutFrs("new l2 to l1 msgs", pi.NewL2ToL1Msgs[:])
	w.PutFrs("encrypted logs hash", pi.EncryptedLogsHash[:])
	w.PutFrs("unencrypted logs hash", pi.UnencryptedLogsHash[:])

	w.Put("encrypted log preimages length", pi.EncryptedLogPreimagesLength)
	w.Put("unencrypted log preimages length", pi.UnencryptedLogPreimagesLength)

	w.historicBlockData(&pi.HistoricBlockData)
	w.contractDeploymentData(&pi.ContractDeploymentData)

	w.Put("chain id", pi.ChainID)
	w.Put("version", pi.Version)
}
