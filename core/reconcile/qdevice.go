package reconcile

import (
	"strings"

	"github.com/YanChii/pcstopo/core/topology"
)

type (
	QDeviceAction int

	// QDeviceResult is the outcome of the quorum device state machine.
	// Old is nil when no quorum device was detected.
	QDeviceResult struct {
		Action QDeviceAction
		Old    *topology.QDevice
		New    *topology.QDevice
	}

	// QDeviceConflictError is returned when the detected quorum device
	// differs from the desired one but the policy forbids updates.
	// Both mismatched properties are reported in one error.
	QDeviceConflictError struct {
		HostMismatch      bool
		AlgorithmMismatch bool
		Desired           topology.QDevice
		Detected          topology.QDevice
	}
)

const (
	QDeviceNoOp QDeviceAction = iota
	QDeviceAdd
	QDeviceUpdate
	QDeviceRemove
)

func (e *QDeviceConflictError) Error() string {
	msgs := make([]string, 0, 2)
	if e.HostMismatch {
		msgs = append(msgs, "detected qdevice '"+e.Detected.Host+"' and requested qdevice '"+e.Desired.Host+"' are different, but changes are not allowed")
	}
	if e.AlgorithmMismatch {
		msgs = append(msgs, "detected algorithm '"+e.Detected.Algorithm+"' and requested algorithm '"+e.Desired.Algorithm+"' are different, but changes are not allowed")
	}
	return strings.Join(msgs, "; ")
}

// ReconcileQDevice runs the quorum device state machine. detected is
// nil when no device block exists in the cluster configuration.
func ReconcileQDevice(detected *topology.QDevice, desired topology.QDevice, policy QDevicePolicy, state State) (QDeviceResult, error) {
	r := QDeviceResult{Old: detected}
	switch {
	case state == StateAbsent:
		if detected != nil {
			r.Action = QDeviceRemove
		} else {
			r.Action = QDeviceNoOp
		}
	case detected == nil:
		r.Action = QDeviceAdd
		r.New = &desired
	case detected.Equal(desired):
		r.Action = QDeviceNoOp
	case policy == QDeviceChangesUpdate:
		r.Action = QDeviceUpdate
		r.New = &desired
	default:
		return r, &QDeviceConflictError{
			HostMismatch:      detected.Host != desired.Host,
			AlgorithmMismatch: detected.Algorithm != desired.Algorithm,
			Desired:           desired,
			Detected:          *detected,
		}
	}
	return r, nil
}
