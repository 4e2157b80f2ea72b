package flatten

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/eth2030/acvmwitness/abi"
	"github.com/eth2030/acvmwitness/fields"
)

func enc(t *testing.T, v fields.Value) fields.Element {
	t.Helper()
	e, err := fields.Default().Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return e
}

func fr(n uint64) fields.Fr { return fields.FrFromUint64(n) }

func sampleCallContext() abi.CallContext {
	return abi.CallContext{
		MsgSender:              abi.AztecAddress(fr(0x11)),
		StorageContractAddress: abi.AztecAddress(fr(0x22)),
		PortalContractAddress:  common.HexToAddress("0x3333333333333333333333333333333333333333"),
		FunctionSelector:       abi.FunctionSelector{0xde, 0xad, 0xbe, 0xef},
		IsDelegateCall:         true,
		IsStaticCall:           false,
		IsContractDeployment:   true,
	}
}

// samplePublicInputs fills every scalar with a distinct value so ordering
// mistakes show up as mismatches.
func samplePublicInputs() abi.PrivateCircuitPublicInputs {
	pi := abi.PrivateCircuitPublicInputs{CallContext: sampleCallContext()}
	next := uint64(100)
	seq := func() fields.Fr { next++; return fr(next) }

	pi.ArgsHash = seq()
	for _, arr := range [][]fields.Fr{
		pi.ReturnValues[:], pi.ReadRequests[:], pi.NewCommitments[:], pi.NewNullifiers[:],
		pi.NullifiedCommitments[:], pi.PrivateCallStack[:], pi.PublicCallStack[:],
		pi.NewL2ToL1Msgs[:], pi.EncryptedLogsHash[:], pi.UnencryptedLogsHash[:],
	} {
		for i := range arr {
			arr[i] = seq()
		}
	}
	pi.EncryptedLogPreimagesLength = seq()
	pi.UnencryptedLogPreimagesLength = seq()
	pi.HistoricBlockData = abi.HistoricBlockData{
		PrivateDataTreeRoot:    seq(),
		NullifierTreeRoot:      seq(),
		ContractTreeRoot:       seq(),
		L1ToL2MessagesTreeRoot: seq(),
		BlocksTreeRoot:         seq(),
		PublicDataTreeRoot:     seq(),
		GlobalVariablesHash:    seq(),
	}
	pi.ContractDeploymentData = abi.ContractDeploymentData{
		DeployerPublicKey:     abi.Point{X: seq(), Y: seq()},
		ConstructorVkHash:     seq(),
		FunctionTreeRoot:      seq(),
		ContractAddressSalt:   seq(),
		PortalContractAddress: common.HexToAddress("0x4444444444444444444444444444444444444444"),
	}
	pi.ChainID = seq()
	pi.Version = seq()
	return pi
}

func TestFunctionData(t *testing.T) {
	d := abi.FunctionData{
		Selector:      abi.FunctionSelector{0x12, 0x34, 0x56, 0x78},
		IsInternal:    true,
		IsPrivate:     false,
		IsConstructor: true,
	}
	got, err := New(nil).FunctionData(&d)
	if err != nil {
		t.Fatalf("FunctionData: %v", err)
	}
	if len(got) != FunctionDataLength {
		t.Fatalf("len = %d, want %d", len(got), FunctionDataLength)
	}
	if got[0] != enc(t, fields.Bytes(d.Selector.Bytes())) {
		t.Errorf("selector = %s", got[0])
	}
	zero, one := enc(t, fields.Uint64(0)), enc(t, fields.Uint64(1))
	want := []fields.Element{one, zero, one}
	for i, w := range want {
		if got[i+1] != w {
			t.Errorf("flag %d = %s, want %s", i, got[i+1], w)
		}
	}
}

func TestCallContext(t *testing.T) {
	c := sampleCallContext()
	got, err := New(nil).CallContext(&c)
	if err != nil {
		t.Fatalf("CallContext: %v", err)
	}
	want := []fields.Element{
		enc(t, fr(0x11)),
		enc(t, fr(0x22)),
		enc(t, fields.EthAddress(c.PortalContractAddress)),
		enc(t, fields.Uint64(0xdeadbeef)),
		enc(t, fields.Bool(true)),
		enc(t, fields.Bool(false)),
		enc(t, fields.Bool(true)),
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFixedRecords(t *testing.T) {
	f := New(nil)

	cdd := abi.ContractDeploymentData{
		DeployerPublicKey:     abi.Point{X: fr(1), Y: fr(2)},
		ConstructorVkHash:     fr(3),
		FunctionTreeRoot:      fr(4),
		ContractAddressSalt:   fr(5),
		PortalContractAddress: common.BigToAddress(common.Big1),
	}
	got, err := f.ContractDeploymentData(&cdd)
	if err != nil {
		t.Fatalf("ContractDeploymentData: %v", err)
	}
	assertCounting(t, got, 1, ContractDeploymentDataLength)

	hbd := abi.HistoricBlockData{
		PrivateDataTreeRoot:    fr(1),
		NullifierTreeRoot:      fr(2),
		ContractTreeRoot:       fr(3),
		L1ToL2MessagesTreeRoot: fr(4),
		BlocksTreeRoot:         fr(5),
		PublicDataTreeRoot:     fr(6),
		GlobalVariablesHash:    fr(7),
	}
	got, err = f.HistoricBlockData(&hbd)
	if err != nil {
		t.Fatalf("HistoricBlockData: %v", err)
	}
	assertCounting(t, got, 1, HistoricBlockDataLength)

	gv := abi.GlobalVariables{ChainID: fr(1), Version: fr(2), BlockNumber: fr(3), Timestamp: fr(4)}
	got, err = f.GlobalVariables(&gv)
	if err != nil {
		t.Fatalf("GlobalVariables: %v", err)
	}
	assertCounting(t, got, 1, GlobalVariablesLength)
}

// assertCounting checks that elems hold first, first+1, ... in order.
func assertCounting(t *testing.T, elems []fields.Element, first uint64, n int) {
	t.Helper()
	if len(elems) != n {
		t.Fatalf("len = %d, want %d", len(elems), n)
	}
	for i, e := range elems {
		v, err := e.Uint64()
		if err != nil {
			t.Fatalf("element %d: %v", i, err)
		}
		if v != first+uint64(i) {
			t.Errorf("element %d = %d, want %d", i, v, first+uint64(i))
		}
	}
}

func TestPublicInputsLayout(t *testing.T) {
	pi := samplePublicInputs()
	got, err := New(nil).PublicInputs(&pi)
	if err != nil {
		t.Fatalf("PublicInputs: %v", err)
	}
	if len(got) != PublicInputsLength {
		t.Fatalf("len = %d, want %d", len(got), PublicInputsLength)
	}
	if PublicInputsLength != 59 {
		t.Fatalf("PublicInputsLength = %d, want 59", PublicInputsLength)
	}

	cc, _ := New(nil).CallContext(&pi.CallContext)
	for i := range cc {
		if got[i] != cc[i] {
			t.Fatalf("call context field %d mismatch", i)
		}
	}
	// Everything after the call context except the contract deployment
	// portal address was numbered sequentially from 101.
	rest := got[CallContextLength:]
	portal := 1 + 34 + 2 + HistoricBlockDataLength + 5
	for i, e := range rest {
		if i == portal {
			if e != enc(t, fields.EthAddress(pi.ContractDeploymentData.PortalContractAddress)) {
				t.Errorf("portal address at %d = %s", i, e)
			}
			continue
		}
		want := uint64(101 + i)
		if i > portal {
			want--
		}
		v, err := e.Uint64()
		if err != nil || v != want {
			t.Errorf("field %d = %s, want %d", CallContextLength+i, e, want)
		}
	}
}

func TestPublicInputsLengthIndependentOfUse(t *testing.T) {
	var empty abi.PrivateCircuitPublicInputs
	full := samplePublicInputs()

	a, err := New(nil).PublicInputs(&empty)
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	b, err := New(nil).PublicInputs(&full)
	if err != nil {
		t.Fatalf("full: %v", err)
	}
	if len(a) != len(b) || len(a) != PublicInputsLength {
		t.Fatalf("lengths %d and %d, want %d", len(a), len(b), PublicInputsLength)
	}
}

func TestPrivateCallStackItem(t *testing.T) {
	item := abi.PrivateCallStackItem{
		ContractAddress:    abi.AztecAddress(fr(7)),
		FunctionData:       abi.FunctionData{Selector: abi.FunctionSelector{1, 2, 3, 4}, IsPrivate: true},
		PublicInputs:       samplePublicInputs(),
		IsExecutionRequest: true,
	}
	f := New(nil)
	got, err := f.PrivateCallStackItem(&item)
	if err != nil {
		t.Fatalf("PrivateCallStackItem: %v", err)
	}
	if len(got) != PrivateCallStackItemLength || PrivateCallStackItemLength != 65 {
		t.Fatalf("len = %d, const = %d", len(got), PrivateCallStackItemLength)
	}
	if got[0] != enc(t, fr(7)) {
		t.Errorf("contract address = %s", got[0])
	}
	fd, _ := f.FunctionData(&item.FunctionData)
	pi, _ := f.PublicInputs(&item.PublicInputs)
	for i := range fd {
		if got[1+i] != fd[i] {
			t.Errorf("function data %d mismatch", i)
		}
	}
	for i := range pi {
		if got[1+FunctionDataLength+i] != pi[i] {
			t.Errorf("public inputs %d mismatch", i)
		}
	}
	if got[len(got)-1] != enc(t, fields.Bool(true)) {
		t.Errorf("is execution request = %s", got[len(got)-1])
	}
}

func TestFlattenErrors(t *testing.T) {
	f := New(nil)
	if _, err := f.CallContext(nil); !errors.Is(err, ErrNilRecord) {
		t.Fatalf("nil call context: err = %v", err)
	}
	if _, err := f.PublicInputs(nil); !errors.Is(err, ErrNilRecord) {
		t.Fatalf("nil public inputs: err = %v", err)
	}

	// The portal address has 20 significant bytes.
	narrow, err := fields.NewCodec(16)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	c := sampleCallContext()
	out, err := New(narrow).CallContext(&c)
	if !errors.Is(err, fields.ErrEncodingOverflow) {
		t.Fatalf("err = %v, want ErrEncodingOverflow", err)
	}
	if !strings.Contains(err.Error(), "portal contract address") {
		t.Errorf("error should name the field: %v", err)
	}
	if out != nil {
		t.Fatalf("partial output returned: %v", out)
	}
}

func TestFlattenNarrowCodec(t *testing.T) {
	narrow, err := fields.NewCodec(16)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	c := sampleCallContext()
	c.PortalContractAddress = common.BigToAddress(big.NewInt(0x33))
	out, err := New(narrow).CallContext(&c)
	if err != nil {
		t.Fatalf("CallContext: %v", err)
	}
	if len(out) != CallContextLength {
		t.Fatalf("len = %d, want %d", len(out), CallContextLength)
	}
	for i, e := range out {
		if w, _ := e.Width(); w != 16 {
			t.Errorf("field %d width = %d, want 16", i, w)
		}
	}
	if v, _ := out[2].Uint64(); v != 0x33 {
		t.Errorf("portal address = %s", out[2])
	}
}

func TestFlattenDeterministic(t *testing.T) {
	pi := samplePublicInputs()
	f := New(nil)
	a, _ := f.PublicInputs(&pi)
	b, _ := f.PublicInputs(&pi)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("field %d differs between runs", i)
		}
	}
}

func TestNilFlattenerUsesDefaultCodec(t *testing.T) {
	var f *Flattener
	if f.Codec() != fields.Default() {
		t.Fatal("nil flattener should use the default codec")
	}
	c := sampleCallContext()
	got, err := f.CallContext(&c)
	if err != nil {
		t.Fatalf("CallContext: %v", err)
	}
	want, _ := New(nil).CallContext(&c)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %s, want %s", i, got[i], want[i])
		}
	}
}
