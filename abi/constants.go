package abi

// Capacities of the fixed-length sequences in circuit records. They are part
// of the circuit definitions and change only together with them.
const (
	ArgsLength                       = 16
	ReturnValuesLength               = 4
	MaxReadRequestsPerCall           = 4
	MaxNewCommitmentsPerCall         = 4
	MaxNewNullifiersPerCall          = 4
	MaxPrivateCallStackLengthPerCall = 4
	MaxPublicCallStackLengthPerCall  = 4
	MaxNewL2ToL1MsgsPerCall          = 2
	NumFieldsPerSHA256               = 2

	L1ToL2MessageLength = 8
	L1ToL2MsgTreeHeight = 16

	FunctionSelectorLength = 4
)
