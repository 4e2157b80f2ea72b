package metrics

// Names of the oracle dispatcher metrics.
const (
	// OracleCallsName counts oracle callbacks served.
	OracleCallsName = "oracle.calls"
	// OracleErrorsName counts oracle callbacks whose handler failed.
	OracleErrorsName = "oracle.errors"
	// OracleLatencyName records handler time in microseconds.
	OracleLatencyName = "oracle.call_us"
	// OracleFieldsName counts field elements returned to circuits.
	OracleFieldsName = "oracle.fields_returned"
	// OracleRegisteredName tracks the number of registered oracles.
	OracleRegisteredName = "oracle.registered"
)
