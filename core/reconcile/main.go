// Package reconcile computes the convergence action closing the gap
// between a desired and a detected cluster topology, under a caller
// declared change policy. Each facet is a pure function of its inputs
// returning a single action value.
package reconcile

type (
	// State is the desired existence of the reconciled object.
	State string

	// NodePolicy gates membership changing actions.
	NodePolicy string

	// QDevicePolicy gates quorum device value changes.
	QDevicePolicy string
)

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"

	NodeChangesNone   NodePolicy = "none"
	NodeChangesAdd    NodePolicy = "add"
	NodeChangesRemove NodePolicy = "remove"

	QDeviceChangesNone   QDevicePolicy = "none"
	QDeviceChangesUpdate QDevicePolicy = "update"
)
