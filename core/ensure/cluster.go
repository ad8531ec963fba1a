package ensure

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/YanChii/pcstopo/core/cib"
	"github.com/YanChii/pcstopo/core/corosyncconf"
	"github.com/YanChii/pcstopo/core/nodelist"
	"github.com/YanChii/pcstopo/core/reconcile"
	"github.com/YanChii/pcstopo/core/topology"
	"github.com/YanChii/pcstopo/util/pcs"
)

type (
	// Cluster converges the membership facet.
	Cluster struct {
		State              reconcile.State
		NodeList           string
		ClusterName        string
		Token              int
		Transport          string
		TransportOptions   string
		AllowedNodeChanges reconcile.NodePolicy
		CheckMode          bool

		Log    *zerolog.Logger
		Runner pcs.Runner
		// Dialect skips version detection when set, for callers that
		// already know the tool version.
		Dialect pcs.Dialect

		// Paths overridable for tests.
		CorosyncConfPath string
		ClusterConfPath  string
		CIBPath          string
	}

	ClusterResult struct {
		Changed       bool     `json:"changed"`
		Msg           string   `json:"msg,omitempty"`
		DetectedNodes []string `json:"detected_nodes,omitempty"`
		NodesToAdd    []string `json:"nodes_to_add,omitempty"`
		NodesToRemove []string `json:"nodes_to_remove,omitempty"`
		Commands      []string `json:"commands,omitempty"`
	}
)

func (t *Cluster) corosyncConfPath() string {
	if t.CorosyncConfPath != "" {
		return t.CorosyncConfPath
	}
	return corosyncconf.DefaultPath
}

func (t *Cluster) clusterConfPath() string {
	if t.ClusterConfPath != "" {
		return t.ClusterConfPath
	}
	return ClusterConfPath
}

func (t *Cluster) cibPath() string {
	if t.CIBPath != "" {
		return t.CIBPath
	}
	return cib.DefaultPath
}

func (t *Cluster) runner() pcs.Runner {
	if t.Runner != nil {
		return t.Runner
	}
	return pcs.New(pcs.WithLogger(t.Log))
}

func (t *Cluster) validate() error {
	switch t.State {
	case reconcile.StatePresent, reconcile.StateAbsent:
	default:
		return ErrBadState
	}
	switch t.AllowedNodeChanges {
	case reconcile.NodeChangesNone, reconcile.NodeChangesAdd, reconcile.NodeChangesRemove:
	default:
		return ErrBadNodePolicy
	}
	if t.Transport != "" && !pcs.IsValidTransport(t.Transport) {
		return ErrBadTransport
	}
	if t.State == reconcile.StatePresent && (t.NodeList == "" || t.ClusterName == "") {
		return ErrMissingNodeList
	}
	return nil
}

// detect parses the membership from corosync.conf. An unreadable file
// yields a nil topology, the host is not yet configured. A malformed
// file is a hard error.
func (t *Cluster) detect() (*topology.Cluster, error) {
	f, err := os.Open(t.corosyncConfPath())
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	root, err := corosyncconf.Parse(f)
	if err != nil {
		return nil, err
	}
	return corosyncconf.Nodes(root)
}

// Ensure runs the membership convergence pass.
func (t *Cluster) Ensure() (ClusterResult, error) {
	res := ClusterResult{}
	if err := t.validate(); err != nil {
		return res, err
	}
	runner := t.runner()
	dialect := t.Dialect
	if dialect == "" {
		var err error
		if dialect, err = pcs.DetectDialect(runner); err != nil {
			return res, err
		}
	}
	desired, err := nodelist.Parse(t.NodeList)
	if err != nil {
		return res, err
	}
	hasCorosyncConf := fileExists(t.corosyncConfPath())
	hasAnyConfig := hasCorosyncConf || fileExists(t.clusterConfPath()) || fileExists(t.cibPath())
	var detected *topology.Cluster
	if hasCorosyncConf {
		if detected, err = t.detect(); err != nil {
			return res, err
		}
	}
	m, err := reconcile.ReconcileMembership(reconcile.MembershipInputs{
		Desired:         desired,
		Detected:        detected,
		State:           t.State,
		Policy:          t.AllowedNodeChanges,
		HasAnyConfig:    hasAnyConfig,
		HasCorosyncConf: hasCorosyncConf,
	})
	if err != nil {
		res.DetectedNodes = m.DetectedNodes
		return res, err
	}
	switch m.Action {
	case reconcile.MembershipCreate:
		return t.create(res, runner, dialect, desired)
	case reconcile.MembershipAddNodes:
		res.DetectedNodes = m.DetectedNodes
		res.NodesToAdd = m.NodesToAdd
		return t.addNodes(res, runner, dialect, desired, m.NodesToAdd)
	case reconcile.MembershipRemoveNodes:
		res.DetectedNodes = m.DetectedNodes
		res.NodesToRemove = m.NodesToRemove
		return t.removeNodes(res, runner, m.NodesToRemove)
	case reconcile.MembershipDestroy:
		return t.destroy(res, runner)
	default:
		if t.State == reconcile.StateAbsent {
			res.Msg = "No change needed, cluster is not present."
		} else if hasCorosyncConf {
			res.Msg = "No change needed, cluster is present."
		}
		return res, nil
	}
}

func (t *Cluster) create(res ClusterResult, runner pcs.Runner, dialect pcs.Dialect, desired *topology.Cluster) (ClusterResult, error) {
	cmdline, err := pcs.SetupCommand(dialect, pcs.SetupRequest{
		ClusterName:      t.ClusterName,
		Cluster:          desired,
		Token:            t.Token,
		Transport:        t.Transport,
		TransportOptions: t.TransportOptions,
	})
	if err != nil {
		return res, err
	}
	res.Changed = true
	res.Commands = append(res.Commands, cmdline)
	if t.CheckMode {
		return res, nil
	}
	if err := run(runner, cmdline); err != nil {
		return res, errors.Wrap(err, "failed to create cluster")
	}
	return res, nil
}

func (t *Cluster) addNodes(res ClusterResult, runner pcs.Runner, dialect pcs.Dialect, desired *topology.Cluster, names []string) (ClusterResult, error) {
	for _, name := range names {
		node, ok := desired.Node(name)
		if !ok {
			continue
		}
		cmdline, err := pcs.NodeAddCommand(dialect, node)
		if err != nil {
			return res, err
		}
		res.Changed = true
		res.Commands = append(res.Commands, cmdline)
		if t.CheckMode {
			continue
		}
		if err := run(runner, cmdline); err != nil {
			return res, errors.Wrapf(err, "failed to add node '%s' to cluster", name)
		}
	}
	return res, nil
}

func (t *Cluster) removeNodes(res ClusterResult, runner pcs.Runner, names []string) (ClusterResult, error) {
	for _, name := range names {
		cmdline := pcs.NodeRemoveCommand(name)
		res.Changed = true
		res.Commands = append(res.Commands, cmdline)
		if t.CheckMode {
			continue
		}
		if err := run(runner, cmdline); err != nil {
			return res, errors.Wrapf(err, "failed to remove node '%s' from cluster", name)
		}
	}
	return res, nil
}

func (t *Cluster) destroy(res ClusterResult, runner pcs.Runner) (ClusterResult, error) {
	cmdline := pcs.DestroyCommand()
	res.Changed = true
	res.Commands = append(res.Commands, cmdline)
	if t.CheckMode {
		return res, nil
	}
	if err := run(runner, cmdline); err != nil {
		return res, errors.Wrap(err, "failed to destroy cluster")
	}
	return res, nil
}
