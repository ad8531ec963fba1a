// Package ensure drives one single shot convergence pass per facet:
// probe the configuration sources, parse them, reconcile against the
// desired state, render the pcs commands and dispatch them in sequence.
// The first failing command aborts the remaining batch.
package ensure

import (
	"os"

	"github.com/pkg/errors"

	"github.com/YanChii/pcstopo/util/pcs"
)

// ClusterConfPath is the EL 6 cluster configuration file.
const ClusterConfPath = "/etc/cluster/cluster.conf"

var (
	ErrMissingNodeList     = errors.New("when creating/expanding/shrinking cluster you must specify both node_list and cluster_name")
	ErrMissingQDevice      = errors.New("when creating/updating qdevice you must specify qdevice name")
	ErrNoClusterForQDevice = errors.New("when creating/updating qdevice you must have a cluster set")
	ErrBadState            = errors.New("state must be present or absent")
	ErrBadNodePolicy       = errors.New("allowed_node_changes must be none, add or remove")
	ErrBadQDevicePolicy    = errors.New("allowed_qdevice_changes must be none or update")
	ErrBadTransport        = errors.New("transport must be default, udp, udpu or knet")
	ErrBadAlgorithm        = errors.New("algorithm must be ffsplit or lms")
	ErrBadLevel            = errors.New("level must be an integer between 1 and 9")
)

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// run dispatches one command line and maps a non zero exit to an
// ExecError carrying the command text and its captured output.
func run(r pcs.Runner, cmdline string) error {
	exitCode, stdout, stderr, err := r.Run(cmdline)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return &pcs.ExecError{Cmd: cmdline, ExitCode: exitCode, Stdout: stdout, Stderr: stderr}
	}
	return nil
}
