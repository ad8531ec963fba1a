package ensure

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/YanChii/pcstopo/core/corosyncconf"
	"github.com/YanChii/pcstopo/core/reconcile"
	"github.com/YanChii/pcstopo/core/topology"
	"github.com/YanChii/pcstopo/util/pcs"
)

type (
	// QDevice converges the quorum device facet.
	QDevice struct {
		State                 reconcile.State
		Host                  string
		Algorithm             string
		AllowedQDeviceChanges reconcile.QDevicePolicy
		CheckMode             bool

		Log     *zerolog.Logger
		Runner  pcs.Runner
		Dialect pcs.Dialect

		CorosyncConfPath string
	}

	QDeviceResult struct {
		Changed        bool     `json:"changed"`
		Msg            string   `json:"msg,omitempty"`
		OldQDevice     string   `json:"old_qdevice,omitempty"`
		NewQDevice     string   `json:"new_qdevice,omitempty"`
		OldAlgorithm   string   `json:"old_algorithm,omitempty"`
		NewAlgorithm   string   `json:"new_algorithm,omitempty"`
		DeletedQDevice string   `json:"delete_qdevice,omitempty"`
		Commands       []string `json:"commands,omitempty"`
	}
)

func (t *QDevice) corosyncConfPath() string {
	if t.CorosyncConfPath != "" {
		return t.CorosyncConfPath
	}
	return corosyncconf.DefaultPath
}

func (t *QDevice) runner() pcs.Runner {
	if t.Runner != nil {
		return t.Runner
	}
	return pcs.New(pcs.WithLogger(t.Log))
}

func (t *QDevice) validate() error {
	switch t.State {
	case reconcile.StatePresent, reconcile.StateAbsent:
	default:
		return ErrBadState
	}
	switch t.AllowedQDeviceChanges {
	case reconcile.QDeviceChangesNone, reconcile.QDeviceChangesUpdate:
	default:
		return ErrBadQDevicePolicy
	}
	if t.State == reconcile.StatePresent {
		if t.Host == "" {
			return ErrMissingQDevice
		}
		if !topology.IsValidAlgorithm(t.Algorithm) {
			return ErrBadAlgorithm
		}
	}
	return nil
}

// Ensure runs the quorum device convergence pass.
func (t *QDevice) Ensure() (QDeviceResult, error) {
	res := QDeviceResult{}
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
	if dialect != pcs.Dialect010 {
		return res, &pcs.UnsupportedVersionError{Version: string(dialect)}
	}
	if t.State == reconcile.StatePresent && !fileExists(t.corosyncConfPath()) {
		return res, ErrNoClusterForQDevice
	}
	f, err := os.Open(t.corosyncConfPath())
	if err != nil {
		return res, errors.Wrap(err, "could not open corosync.conf")
	}
	root, err := corosyncconf.Parse(f)
	f.Close()
	if err != nil {
		return res, err
	}
	detected := corosyncconf.QDevice(root)
	desired := topology.QDevice{Host: t.Host, Algorithm: t.Algorithm}
	r, err := reconcile.ReconcileQDevice(detected, desired, t.AllowedQDeviceChanges, t.State)
	if err != nil {
		return res, err
	}
	var cmdline string
	switch r.Action {
	case reconcile.QDeviceAdd:
		if cmdline, err = pcs.QDeviceAddCommand(dialect, desired.Host, desired.Algorithm); err != nil {
			return res, err
		}
		res.NewQDevice = desired.Host
		res.NewAlgorithm = desired.Algorithm
	case reconcile.QDeviceUpdate:
		if cmdline, err = pcs.QDeviceUpdateCommand(dialect, desired.Host, desired.Algorithm); err != nil {
			return res, err
		}
		res.OldQDevice = r.Old.Host
		res.OldAlgorithm = r.Old.Algorithm
		res.NewQDevice = desired.Host
		res.NewAlgorithm = desired.Algorithm
	case reconcile.QDeviceRemove:
		if cmdline, err = pcs.QDeviceRemoveCommand(dialect); err != nil {
			return res, err
		}
		res.DeletedQDevice = r.Old.Host
	default:
		res.Msg = "No change needed."
		return res, nil
	}
	res.Changed = true
	res.Commands = append(res.Commands, cmdline)
	if t.CheckMode {
		return res, nil
	}
	if err := run(runner, cmdline); err != nil {
		return res, errors.Wrap(err, "failed to setup qdevice")
	}
	return res, nil
}
