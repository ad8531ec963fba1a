package ensure

import (
	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/YanChii/pcstopo/core/cib"
	"github.com/YanChii/pcstopo/core/reconcile"
	"github.com/YanChii/pcstopo/util/pcs"
)

type (
	// StonithLevel converges one fencing level triple.
	StonithLevel struct {
		State         reconcile.State
		Level         int
		NodeName      string
		StonithDevice string
		// CIBFile targets an offline configuration snapshot instead
		// of the live cluster.
		CIBFile   string
		CheckMode bool

		Log    *zerolog.Logger
		Runner pcs.Runner
	}

	StonithLevelResult struct {
		Changed              bool     `json:"changed"`
		FenceLevelWasMatched bool     `json:"fence_level_was_matched"`
		Level                string   `json:"level,omitempty"`
		NodeName             string   `json:"node_name,omitempty"`
		Devices              string   `json:"devices,omitempty"`
		FenceLevelID         string   `json:"fence_level_id,omitempty"`
		Commands             []string `json:"commands,omitempty"`
	}
)

var (
	ErrMissingNodeName      = errors.New("node_name is required")
	ErrMissingStonithDevice = errors.New("stonith_device is required")
)

func (t *StonithLevel) runner() pcs.Runner {
	if t.Runner != nil {
		return t.Runner
	}
	return pcs.New(pcs.WithLogger(t.Log))
}

func (t *StonithLevel) validate() error {
	switch t.State {
	case reconcile.StatePresent, reconcile.StateAbsent:
	default:
		return ErrBadState
	}
	if t.Level < 1 || t.Level > 9 {
		return ErrBadLevel
	}
	if t.NodeName == "" {
		return ErrMissingNodeName
	}
	if t.StonithDevice == "" {
		return ErrMissingStonithDevice
	}
	return nil
}

// load returns the CIB document, from the configuration snapshot file
// when CIBFile is set, else from a live configuration dump. A CIB that
// can not be read is fatal, there is no cluster to attach to.
func (t *StonithLevel) load(runner pcs.Runner) (*xmlquery.Node, error) {
	if t.CIBFile != "" {
		if !fileExists(t.CIBFile) {
			return nil, errors.Errorf("%s is not a file or doesn't exist", t.CIBFile)
		}
		doc, err := cib.ParseFile(t.CIBFile)
		if err != nil {
			return nil, errors.Wrap(err, "error encountered parsing the cib_file")
		}
		return doc, nil
	}
	cmdline := pcs.ClusterCIBCommand()
	exitCode, stdout, stderr, err := runner.Run(cmdline)
	if err != nil {
		return nil, err
	}
	if exitCode != 0 {
		return nil, errors.Wrap(
			&pcs.ExecError{Cmd: cmdline, ExitCode: exitCode, Stdout: stdout, Stderr: stderr},
			"failed to load cluster configuration",
		)
	}
	return cib.ParseString(stdout)
}

// Ensure runs the fencing level convergence pass.
func (t *StonithLevel) Ensure() (StonithLevelResult, error) {
	res := StonithLevelResult{}
	if err := t.validate(); err != nil {
		return res, err
	}
	runner := t.runner()
	doc, err := t.load(runner)
	if err != nil {
		return res, err
	}
	levels, err := cib.FencingLevels(doc)
	if err != nil {
		return res, err
	}
	f := reconcile.ReconcileFenceLevel(levels, t.Level, t.NodeName, t.StonithDevice, t.State)
	if f.Matched != nil {
		res.FenceLevelWasMatched = true
		res.Level = f.Matched.Index
		res.NodeName = f.Matched.Target
		res.Devices = f.Matched.Devices
		res.FenceLevelID = f.Matched.ID
	}
	var cmdline string
	switch f.Action {
	case reconcile.FenceCreate:
		cmdline = pcs.StonithLevelAddCommand(t.Level, t.NodeName, t.StonithDevice, t.CIBFile)
	case reconcile.FenceDelete:
		cmdline = pcs.StonithLevelRemoveCommand(t.Level, t.NodeName, t.StonithDevice, t.CIBFile)
	default:
		return res, nil
	}
	res.Changed = true
	res.Commands = append(res.Commands, cmdline)
	if t.CheckMode {
		return res, nil
	}
	if err := run(runner, cmdline); err != nil {
		verb := "create"
		if f.Action == reconcile.FenceDelete {
			verb = "delete"
		}
		return res, errors.Wrapf(err, "failed to %s stonith level", verb)
	}
	return res, nil
}
