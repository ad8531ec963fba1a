package reconcile

import (
	"fmt"

	"github.com/YanChii/pcstopo/core/topology"
)

type (
	MembershipAction int

	// Membership is the outcome of the membership state machine: one
	// action plus the diff data the caller reports.
	Membership struct {
		Action        MembershipAction
		DetectedNodes []string
		NodesToAdd    []string
		NodesToRemove []string
	}

	// MembershipInputs feeds the membership state machine.
	MembershipInputs struct {
		Desired *topology.Cluster
		// Detected is the topology parsed from corosync.conf. Nil
		// when the file does not exist or is unreadable.
		Detected *topology.Cluster
		State    State
		Policy   NodePolicy
		// HasAnyConfig is true when any cluster configuration
		// artifact exists on the host (cluster.conf, corosync.conf or
		// a started CIB).
		HasAnyConfig bool
		// HasCorosyncConf is true when corosync.conf exists, which is
		// the configuration source node membership is detected from.
		HasCorosyncConf bool
	}

	// MembershipConflictError is returned when the desired and
	// detected node sets differ but the policy forbids changes. Both
	// sets are reported.
	MembershipConflictError struct {
		DesiredNodes  []string
		DetectedNodes []string
	}
)

const (
	MembershipNoOp MembershipAction = iota
	MembershipCreate
	MembershipAddNodes
	MembershipRemoveNodes
	MembershipDestroy
)

func (e *MembershipConflictError) Error() string {
	return fmt.Sprintf(
		"detected node list %v and requested node list %v are different, but changes are not allowed",
		e.DetectedNodes, e.DesiredNodes,
	)
}

// ReconcileMembership runs the membership state machine.
func ReconcileMembership(in MembershipInputs) (Membership, error) {
	detected := in.Detected
	if detected == nil {
		detected = topology.NewCluster()
	}
	m := Membership{DetectedNodes: detected.Names()}
	switch {
	case in.State == StatePresent && !in.HasAnyConfig:
		m.Action = MembershipCreate
	case in.State == StateAbsent && in.HasAnyConfig:
		m.Action = MembershipDestroy
	case in.State == StateAbsent:
		m.Action = MembershipNoOp
	case in.HasCorosyncConf && in.Desired.Equal(detected):
		m.Action = MembershipNoOp
	case in.HasCorosyncConf && in.Policy == NodeChangesAdd:
		m.Action = MembershipAddNodes
		m.NodesToAdd = in.Desired.Diff(detected)
	case in.HasCorosyncConf && in.Policy == NodeChangesRemove:
		m.Action = MembershipRemoveNodes
		m.NodesToRemove = detected.Diff(in.Desired)
	case in.HasCorosyncConf:
		return m, &MembershipConflictError{
			DesiredNodes:  in.Desired.Names(),
			DetectedNodes: detected.Names(),
		}
	default:
		// a CIB or cluster.conf exists but membership can not be
		// detected without corosync.conf, leave the cluster alone
		m.Action = MembershipNoOp
	}
	return m, nil
}
