package domain

// VehicleState is the state of the vehicle as seen by the dispatcher.
type VehicleState string

const (
	VehicleStateUnknown     VehicleState = "UNKNOWN"
	VehicleStateUnavailable VehicleState = "UNAVAILABLE"
	VehicleStateError       VehicleState = "ERROR"
	VehicleStateIdle        VehicleState = "IDLE"
	VehicleStateExecuting   VehicleState = "EXECUTING"
	VehicleStateCharging    VehicleState = "CHARGING"
)

// ConnectionState is the state of the link to the vehicle. Idle is tracked apart from it.
type ConnectionState string

const (
	ConnectionDisabled     ConnectionState = "DISABLED"
	ConnectionDisconnected ConnectionState = "DISCONNECTED"
	ConnectionConnecting   ConnectionState = "CONNECTING"
	ConnectionConnected    ConnectionState = "CONNECTED"
)

// Explanation is a yes/no answer with the reason for a no.
type Explanation struct {
	Executable bool   `json:"executable"`
	Reason     string `json:"reason,omitempty"`
}

func Accepted() Explanation {
	return Explanation{Executable: true}
}

func Rejected(reason string) Explanation {
	return Explanation{Executable: false, Reason: reason}
}
